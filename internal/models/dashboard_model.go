package models

import "time"

// Credentials identify the page every submission targets. Persisted under
// their own storage key, independent of templates.
type Credentials struct {
	PageID      string `json:"pageId"`
	AccessToken string `json:"accessToken"`
}

// PostTemplate is a named, reusable bundle of composer fields. Names are
// unique among templates; saving under an existing name replaces it.
type PostTemplate struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Message  string `json:"message"`
	Link     string `json:"link,omitempty"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// QueuedPost tracks one submission and its eventual outcome. Queue entries
// live only for the session and are never persisted.
type QueuedPost struct {
	ID            string        `json:"id"`
	Message       string        `json:"message"`
	Link          string        `json:"link,omitempty"`
	ImageURL      string        `json:"imageUrl,omitempty"`
	Mode          string        `json:"mode"`
	ScheduledTime string        `json:"scheduledTime,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	Status        string        `json:"status"`
	Response      *PostResponse `json:"response,omitempty"`
}

// PostResponse annotates a resolved queue entry with the relay's outcome.
type PostResponse struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

const (
	PostStatusPending = "pending"
	PostStatusSuccess = "success"
	PostStatusError   = "error"
)
