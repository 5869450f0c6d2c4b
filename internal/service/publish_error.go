package service

// PublishError is a relay failure carrying the HTTP status the endpoint
// should answer with, either a validation code or the propagated upstream
// status.
type PublishError struct {
	Status  int
	Message string
}

func NewPublishError(status int, message string) *PublishError {
	return &PublishError{Status: status, Message: message}
}

func (e *PublishError) Error() string {
	return e.Message
}
