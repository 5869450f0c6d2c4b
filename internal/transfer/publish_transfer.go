package transfer

import "encoding/json"

const (
	ModeNow      = "now"
	ModeSchedule = "schedule"
)

// PublishRequest is the JSON body the dashboard sends to the relay endpoint.
type PublishRequest struct {
	PageID        string `json:"pageId"`
	AccessToken   string `json:"accessToken"`
	Message       string `json:"message"`
	Link          string `json:"link,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
	ScheduledTime string `json:"scheduledTime,omitempty"`
	Mode          string `json:"mode,omitempty"`
}

// PublishResult is the relay's success response body.
type PublishResult struct {
	ID string `json:"id"`
}

// GraphResponse is the decoded upstream body. A response counts as success
// only when the HTTP status was successful and ID is non-empty.
type GraphResponse struct {
	ID    string      `json:"id"`
	Error *GraphError `json:"error,omitempty"`
}

// GraphError is the upstream error field, which arrives either as a bare
// string or as an object carrying a message.
type GraphError struct {
	Text   string
	Detail struct {
		Message string `json:"message"`
	}
}

func (e *GraphError) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		e.Text = s
		return nil
	}
	// Unknown shapes are tolerated; Message falls back to empty.
	_ = json.Unmarshal(data, &e.Detail)
	return nil
}

// Message returns the string form if present, else the nested message,
// else empty.
func (e *GraphError) Message() string {
	if e == nil {
		return ""
	}
	if e.Text != "" {
		return e.Text
	}
	return e.Detail.Message
}
