package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	config "github.com/maheshrc27/pageflow/configs"
	"github.com/maheshrc27/pageflow/internal/transfer"
)

const (
	endpointFeed   = "feed"
	endpointPhotos = "photos"
)

// scheduledTime layouts, tried in order. The second is what datetime-local
// inputs produce.
var scheduledTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

type FacebookService interface {
	Publish(ctx context.Context, req *transfer.PublishRequest) (*transfer.PublishResult, error)
}

type facebookService struct {
	cfg    config.Config
	client *http.Client
}

func NewFacebookService(cfg config.Config) FacebookService {
	return &facebookService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.UpstreamTimeout},
	}
}

func (s *facebookService) Publish(ctx context.Context, req *transfer.PublishRequest) (*transfer.PublishResult, error) {
	pageID := strings.TrimSpace(req.PageID)
	accessToken := strings.TrimSpace(req.AccessToken)
	message := strings.TrimSpace(req.Message)

	if pageID == "" || accessToken == "" || message == "" {
		err := NewPublishError(http.StatusBadRequest, "Missing required pageId, accessToken, or message.")
		slog.Info(err.Message)
		return nil, err
	}

	if req.Mode != "" && req.Mode != transfer.ModeNow && req.Mode != transfer.ModeSchedule {
		err := NewPublishError(http.StatusBadRequest, "Invalid mode provided.")
		slog.Info(err.Message)
		return nil, err
	}

	var scheduledAt time.Time
	if raw := strings.TrimSpace(req.ScheduledTime); raw != "" {
		parsed, err := parseScheduledTime(raw)
		if err != nil {
			perr := NewPublishError(http.StatusBadRequest, "scheduledTime must be an ISO date.")
			slog.Info(perr.Message)
			return nil, perr
		}
		// Sub-second precision is discarded before the future check.
		scheduledAt = parsed.Truncate(time.Second)
		if !scheduledAt.After(time.Now().Truncate(time.Second)) {
			perr := NewPublishError(http.StatusBadRequest, "scheduledTime must be in the future.")
			slog.Info(perr.Message)
			return nil, perr
		}
	}

	endpoint := endpointFeed
	data := url.Values{}
	data.Set("access_token", accessToken)
	data.Set("message", message)

	// Photo and feed posts are mutually exclusive: a link only travels on a
	// feed post, an image forces the photos edge and drops the link.
	if imageURL := strings.TrimSpace(req.ImageURL); imageURL != "" {
		endpoint = endpointPhotos
		data.Set("url", imageURL)
	} else if link := strings.TrimSpace(req.Link); link != "" {
		data.Set("link", link)
	}

	if !scheduledAt.IsZero() {
		data.Set("scheduled_publish_time", strconv.FormatInt(scheduledAt.Unix(), 10))
		data.Set("published", "false")
	} else if endpoint == endpointPhotos {
		// The photos edge defaults to unpublished on some Graph versions,
		// so an immediate photo post carries the flag explicitly.
		data.Set("published", "true")
	}

	postURL := fmt.Sprintf("%s/%s/%s/%s", s.cfg.GraphBaseURL, s.cfg.GraphVersion, pageID, endpoint)
	return s.post(ctx, postURL, data)
}

func (s *facebookService) post(ctx context.Context, postURL string, data url.Values) (*transfer.PublishResult, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, postURL, strings.NewReader(data.Encode()))
	if err != nil {
		slog.Error(err.Error())
		return nil, NewPublishError(http.StatusInternalServerError, err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		slog.Error(err.Error())
		return nil, NewPublishError(http.StatusInternalServerError, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error(err.Error())
		return nil, NewPublishError(http.StatusInternalServerError, err.Error())
	}

	// A non-JSON or empty body is treated the same as an explicit failure.
	var graph transfer.GraphResponse
	_ = json.Unmarshal(body, &graph)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 && graph.ID != "" {
		return &transfer.PublishResult{ID: graph.ID}, nil
	}

	message := graph.Error.Message()
	if message == "" {
		message = "Failed to publish post."
	}
	status := resp.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	slog.Info(fmt.Sprintf("graph publish failed: status=%d error=%s", status, message))
	return nil, NewPublishError(status, message)
}

func parseScheduledTime(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range scheduledTimeLayouts {
		t, err := time.ParseInLocation(layout, raw, time.Local)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
