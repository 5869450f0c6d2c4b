package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/maheshrc27/pageflow/internal/models"
	"github.com/maheshrc27/pageflow/internal/repository"
	"github.com/maheshrc27/pageflow/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	FeedbackSuccess = "success"
	FeedbackError   = "error"
)

var scheduledTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// Publisher sends one publish request to the relay and reports the outcome.
// The relay HTTP client implements it; tests substitute a fake.
type Publisher interface {
	Publish(ctx context.Context, req *transfer.PublishRequest) (*transfer.PublishResult, error)
}

// Composer holds the fields the user is editing for the next submission.
type Composer struct {
	Message       string
	Link          string
	ImageURL      string
	Mode          string
	ScheduledTime string
}

// Feedback is the single most-recent dashboard-level message, distinct from
// per-entry status badges in the queue.
type Feedback struct {
	Kind    string
	Message string
}

// Controller owns the client-resident state: credentials, composer,
// template library, and the submission queue. Credentials and templates
// write through to their repositories on every change; the queue lives only
// for the session.
type Controller struct {
	publisher Publisher
	cr        repository.CredentialsRepository
	tr        repository.TemplateRepository

	mu          sync.Mutex
	wg          sync.WaitGroup
	credentials models.Credentials
	templates   []models.PostTemplate
	composer    Composer
	queue       []models.QueuedPost
	feedback    *Feedback
	now         func() time.Time
}

func NewController(
	publisher Publisher,
	cr repository.CredentialsRepository,
	tr repository.TemplateRepository) (*Controller, error) {

	creds, err := cr.Load()
	if err != nil {
		return nil, err
	}
	templates, err := tr.Load()
	if err != nil {
		return nil, err
	}

	return &Controller{
		publisher:   publisher,
		cr:          cr,
		tr:          tr,
		credentials: *creds,
		templates:   templates,
		composer:    Composer{Mode: transfer.ModeNow},
		now:         time.Now,
	}, nil
}

func (c *Controller) Credentials() models.Credentials {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.credentials
}

func (c *Controller) SetCredentials(pageID, accessToken string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.credentials = models.Credentials{PageID: pageID, AccessToken: accessToken}
	return c.cr.Save(&c.credentials)
}

func (c *Controller) Composer() Composer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.composer
}

func (c *Controller) SetComposer(composer Composer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.composer = composer
}

// Submit gates the current composer against the credentials, inserts a
// pending queue entry at the head, and resolves it asynchronously once the
// relay call settles. The returned id identifies the queue entry.
func (c *Controller) Submit(ctx context.Context) (string, error) {
	c.mu.Lock()
	creds := c.credentials
	comp := c.composer
	c.mu.Unlock()

	pageID := strings.TrimSpace(creds.PageID)
	accessToken := strings.TrimSpace(creds.AccessToken)
	message := strings.TrimSpace(comp.Message)
	if pageID == "" || accessToken == "" || message == "" {
		err := errors.New("pageId, accessToken, and message are required")
		slog.Info(err.Error())
		c.setFeedback(FeedbackError, err.Error())
		return "", err
	}

	mode := comp.Mode
	if mode == "" {
		mode = transfer.ModeNow
	}

	scheduledTime := ""
	if mode == transfer.ModeSchedule {
		// Re-validated here regardless of any earlier check.
		parsed, err := parseScheduledTime(strings.TrimSpace(comp.ScheduledTime))
		if err != nil || !parsed.Truncate(time.Second).After(c.now().Truncate(time.Second)) {
			err := errors.New("scheduled time must be in the future")
			slog.Info(err.Error())
			c.setFeedback(FeedbackError, err.Error())
			return "", err
		}
		scheduledTime = strings.TrimSpace(comp.ScheduledTime)
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Error(err.Error())
		return "", err
	}

	entry := models.QueuedPost{
		ID:            id,
		Message:       message,
		Link:          strings.TrimSpace(comp.Link),
		ImageURL:      strings.TrimSpace(comp.ImageURL),
		Mode:          mode,
		ScheduledTime: scheduledTime,
		CreatedAt:     c.now(),
		Status:        models.PostStatusPending,
	}

	// The pending entry is visible before the relay call is issued.
	c.mu.Lock()
	c.queue = append([]models.QueuedPost{entry}, c.queue...)
	c.mu.Unlock()

	req := &transfer.PublishRequest{
		PageID:        pageID,
		AccessToken:   accessToken,
		Message:       message,
		Link:          entry.Link,
		ImageURL:      entry.ImageURL,
		ScheduledTime: scheduledTime,
		Mode:          mode,
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		result, err := c.publisher.Publish(ctx, req)
		if err != nil {
			c.resolve(id, models.PostStatusError, &models.PostResponse{Error: err.Error()})
			c.setFeedback(FeedbackError, err.Error())
			return
		}
		c.resolve(id, models.PostStatusSuccess, &models.PostResponse{ID: result.ID})
		c.setFeedback(FeedbackSuccess, "Post submitted successfully.")
	}()

	return id, nil
}

// Wait blocks until every in-flight submission has resolved.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) Queue() []models.QueuedPost {
	c.mu.Lock()
	defer c.mu.Unlock()
	queue := make([]models.QueuedPost, len(c.queue))
	copy(queue, c.queue)
	return queue
}

func (c *Controller) Feedback() *Feedback {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.feedback == nil {
		return nil
	}
	feedback := *c.feedback
	return &feedback
}

// SaveTemplate stores the current composer fields under the given name.
// A template already holding that name is replaced, and the replacement
// gets a fresh identifier.
func (c *Controller) SaveTemplate(name string) (*models.PostTemplate, error) {
	name = strings.TrimSpace(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	message := strings.TrimSpace(c.composer.Message)
	if name == "" || message == "" {
		err := errors.New("template name and message are required")
		slog.Info(err.Error())
		return nil, err
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Error(err.Error())
		return nil, err
	}

	tmpl := models.PostTemplate{
		ID:       id,
		Name:     name,
		Message:  message,
		Link:     strings.TrimSpace(c.composer.Link),
		ImageURL: strings.TrimSpace(c.composer.ImageURL),
	}

	kept := make([]models.PostTemplate, 0, len(c.templates)+1)
	for _, t := range c.templates {
		if t.Name != name {
			kept = append(kept, t)
		}
	}
	c.templates = append(kept, tmpl)

	if err := c.tr.Save(c.templates); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// ApplyTemplate copies a template's message, link, and image into the
// composer. Credentials, mode, and scheduling fields are untouched.
func (c *Controller) ApplyTemplate(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, t := range c.templates {
		if t.ID == id {
			c.composer.Message = t.Message
			c.composer.Link = t.Link
			c.composer.ImageURL = t.ImageURL
			return nil
		}
	}
	return errors.New("template not found")
}

func (c *Controller) DeleteTemplate(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := make([]models.PostTemplate, 0, len(c.templates))
	for _, t := range c.templates {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	c.templates = kept
	return c.tr.Save(c.templates)
}

func (c *Controller) Templates() []models.PostTemplate {
	c.mu.Lock()
	defer c.mu.Unlock()
	templates := make([]models.PostTemplate, len(c.templates))
	copy(templates, c.templates)
	return templates
}

func (c *Controller) resolve(id, status string, response *models.PostResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue = Resolve(c.queue, id, status, response)
}

func (c *Controller) setFeedback(kind, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.feedback = &Feedback{Kind: kind, Message: message}
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
