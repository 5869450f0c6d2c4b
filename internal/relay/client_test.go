package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/maheshrc27/pageflow/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRelayStub(t *testing.T, status int, body string) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/publish", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req transfer.PublishRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL, time.Second)
}

func TestClientPublishSuccess(t *testing.T) {
	client := newRelayStub(t, http.StatusOK, `{"id":"999"}`)

	result, err := client.Publish(context.Background(), &transfer.PublishRequest{
		PageID: "123", AccessToken: "tok", Message: "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, "999", result.ID)
}

func TestClientPublishRelayError(t *testing.T) {
	client := newRelayStub(t, http.StatusBadRequest, `{"error":"scheduledTime must be in the future."}`)

	_, err := client.Publish(context.Background(), &transfer.PublishRequest{
		PageID: "123", AccessToken: "tok", Message: "hello",
	})
	require.Error(t, err)
	assert.Equal(t, "scheduledTime must be in the future.", err.Error())
}

func TestClientPublishUnreadableResponse(t *testing.T) {
	client := newRelayStub(t, http.StatusOK, `<html>`)

	_, err := client.Publish(context.Background(), &transfer.PublishRequest{
		PageID: "123", AccessToken: "tok", Message: "hello",
	})
	require.Error(t, err)
}

func TestClientPublishTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Publish(context.Background(), &transfer.PublishRequest{
		PageID: "123", AccessToken: "tok", Message: "hello",
	})
	require.Error(t, err)
}
