package dashboard

import "github.com/maheshrc27/pageflow/internal/models"

// Resolve returns a new queue in which the entry matching id has moved to
// the given terminal status and carries the response. All other entries are
// untouched; an unknown id returns the queue unchanged.
func Resolve(entries []models.QueuedPost, id, status string, response *models.PostResponse) []models.QueuedPost {
	next := make([]models.QueuedPost, len(entries))
	copy(next, entries)
	for i := range next {
		if next[i].ID == id {
			next[i].Status = status
			next[i].Response = response
			break
		}
	}
	return next
}
