package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	config "github.com/maheshrc27/pageflow/configs"
	"github.com/maheshrc27/pageflow/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upstreamCall struct {
	path string
	form url.Values
}

// fakeGraph stands in for the Graph API and records every call it receives.
type fakeGraph struct {
	status int
	body   string
	calls  []upstreamCall
}

func (f *fakeGraph) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		f.calls = append(f.calls, upstreamCall{path: r.URL.Path, form: r.PostForm})
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
	}
}

func newTestService(t *testing.T, graph *fakeGraph) FacebookService {
	t.Helper()
	server := httptest.NewServer(graph.handler())
	t.Cleanup(server.Close)

	cfg := config.Config{
		GraphBaseURL:    server.URL,
		GraphVersion:    "v19.0",
		UpstreamTimeout: 5 * time.Second,
	}
	return NewFacebookService(cfg)
}

func TestPublishValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     transfer.PublishRequest
		wantMsg string
	}{
		{
			name:    "missing everything",
			req:     transfer.PublishRequest{},
			wantMsg: "Missing required pageId, accessToken, or message.",
		},
		{
			name:    "whitespace only message",
			req:     transfer.PublishRequest{PageID: "123", AccessToken: "tok", Message: "   "},
			wantMsg: "Missing required pageId, accessToken, or message.",
		},
		{
			name:    "whitespace only token",
			req:     transfer.PublishRequest{PageID: "123", AccessToken: "\t", Message: "hello"},
			wantMsg: "Missing required pageId, accessToken, or message.",
		},
		{
			name:    "unknown mode",
			req:     transfer.PublishRequest{PageID: "123", AccessToken: "tok", Message: "hello", Mode: "later"},
			wantMsg: "Invalid mode provided.",
		},
		{
			name:    "unparseable scheduledTime",
			req:     transfer.PublishRequest{PageID: "123", AccessToken: "tok", Message: "hello", ScheduledTime: "tomorrow"},
			wantMsg: "scheduledTime must be an ISO date.",
		},
		{
			name: "scheduledTime one hour in the past",
			req: transfer.PublishRequest{
				PageID: "123", AccessToken: "tok", Message: "hello",
				Mode:          transfer.ModeSchedule,
				ScheduledTime: time.Now().Add(-time.Hour).Format(time.RFC3339),
			},
			wantMsg: "scheduledTime must be in the future.",
		},
		{
			name: "scheduledTime equal to now",
			req: transfer.PublishRequest{
				PageID: "123", AccessToken: "tok", Message: "hello",
				ScheduledTime: time.Now().Format(time.RFC3339),
			},
			wantMsg: "scheduledTime must be in the future.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			graph := &fakeGraph{status: http.StatusOK, body: `{"id":"999"}`}
			s := newTestService(t, graph)

			result, err := s.Publish(context.Background(), &tc.req)
			require.Error(t, err)
			assert.Nil(t, result)

			var perr *PublishError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, http.StatusBadRequest, perr.Status)
			assert.Equal(t, tc.wantMsg, perr.Message)

			// Validation failures never reach the upstream API.
			assert.Empty(t, graph.calls)
		})
	}
}

func TestPublishImmediateFeedPost(t *testing.T) {
	graph := &fakeGraph{status: http.StatusOK, body: `{"id":"999"}`}
	s := newTestService(t, graph)

	result, err := s.Publish(context.Background(), &transfer.PublishRequest{
		PageID:      "123",
		AccessToken: " tok ",
		Message:     " hello ",
		Mode:        transfer.ModeNow,
	})
	require.NoError(t, err)
	assert.Equal(t, "999", result.ID)

	require.Len(t, graph.calls, 1)
	call := graph.calls[0]
	assert.Equal(t, "/v19.0/123/feed", call.path)
	assert.Equal(t, "tok", call.form.Get("access_token"))
	assert.Equal(t, "hello", call.form.Get("message"))
	assert.False(t, call.form.Has("published"))
	assert.False(t, call.form.Has("scheduled_publish_time"))
	assert.False(t, call.form.Has("link"))
}

func TestPublishFeedPostWithLink(t *testing.T) {
	graph := &fakeGraph{status: http.StatusOK, body: `{"id":"1"}`}
	s := newTestService(t, graph)

	_, err := s.Publish(context.Background(), &transfer.PublishRequest{
		PageID:      "123",
		AccessToken: "tok",
		Message:     "hello",
		Link:        "https://example.com",
	})
	require.NoError(t, err)

	require.Len(t, graph.calls, 1)
	assert.Equal(t, "https://example.com", graph.calls[0].form.Get("link"))
}

func TestPublishPhotoPostDropsLink(t *testing.T) {
	graph := &fakeGraph{status: http.StatusOK, body: `{"id":"42"}`}
	s := newTestService(t, graph)

	_, err := s.Publish(context.Background(), &transfer.PublishRequest{
		PageID:      "123",
		AccessToken: "tok",
		Message:     "hello",
		Link:        "https://example.com",
		ImageURL:    "https://example.com/cat.jpg",
	})
	require.NoError(t, err)

	require.Len(t, graph.calls, 1)
	call := graph.calls[0]
	assert.Equal(t, "/v19.0/123/photos", call.path)
	assert.Equal(t, "https://example.com/cat.jpg", call.form.Get("url"))
	assert.False(t, call.form.Has("link"))
	// The photos edge needs the publish flag spelled out.
	assert.Equal(t, "true", call.form.Get("published"))
}

func TestPublishScheduledPost(t *testing.T) {
	graph := &fakeGraph{status: http.StatusOK, body: `{"id":"7"}`}
	s := newTestService(t, graph)

	scheduledAt := time.Now().Add(time.Hour).Truncate(time.Second)
	_, err := s.Publish(context.Background(), &transfer.PublishRequest{
		PageID:        "123",
		AccessToken:   "tok",
		Message:       "hello",
		Mode:          transfer.ModeSchedule,
		ScheduledTime: scheduledAt.Format(time.RFC3339),
	})
	require.NoError(t, err)

	require.Len(t, graph.calls, 1)
	form := graph.calls[0].form
	assert.Equal(t, strconv.FormatInt(scheduledAt.Unix(), 10), form.Get("scheduled_publish_time"))
	assert.Equal(t, "false", form.Get("published"))
}

func TestPublishUpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "string error",
			status:     http.StatusBadRequest,
			body:       `{"error":"bad token"}`,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "bad token",
		},
		{
			name:       "object error with message",
			status:     http.StatusForbidden,
			body:       `{"error":{"message":"permission denied","code":200}}`,
			wantStatus: http.StatusForbidden,
			wantMsg:    "permission denied",
		},
		{
			name:       "success status without id",
			status:     http.StatusOK,
			body:       `{}`,
			wantStatus: http.StatusOK,
			wantMsg:    "Failed to publish post.",
		},
		{
			name:       "non-JSON body",
			status:     http.StatusBadGateway,
			body:       `<html>upstream exploded</html>`,
			wantStatus: http.StatusBadGateway,
			wantMsg:    "Failed to publish post.",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			graph := &fakeGraph{status: tc.status, body: tc.body}
			s := newTestService(t, graph)

			result, err := s.Publish(context.Background(), &transfer.PublishRequest{
				PageID: "123", AccessToken: "tok", Message: "hello",
			})
			require.Error(t, err)
			assert.Nil(t, result)

			var perr *PublishError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tc.wantStatus, perr.Status)
			assert.Equal(t, tc.wantMsg, perr.Message)
		})
	}
}

func TestPublishTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // refuse connections

	cfg := config.Config{
		GraphBaseURL:    server.URL,
		GraphVersion:    "v19.0",
		UpstreamTimeout: time.Second,
	}
	s := NewFacebookService(cfg)

	_, err := s.Publish(context.Background(), &transfer.PublishRequest{
		PageID: "123", AccessToken: "tok", Message: "hello",
	})
	require.Error(t, err)

	var perr *PublishError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusInternalServerError, perr.Status)
	assert.NotEmpty(t, perr.Message)
}
