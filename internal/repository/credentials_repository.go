package repository

import (
	"encoding/json"
	"log/slog"

	"github.com/maheshrc27/pageflow/internal/models"
	"github.com/maheshrc27/pageflow/internal/storage"
)

const credentialsKey = "pageflow_credentials"

type CredentialsRepository interface {
	Load() (*models.Credentials, error)
	Save(creds *models.Credentials) error
}

type credentialsRepository struct {
	store storage.Store
}

func NewCredentialsRepository(store storage.Store) CredentialsRepository {
	return &credentialsRepository{store: store}
}

func (r *credentialsRepository) Load() (*models.Credentials, error) {
	raw, ok, err := r.store.Get(credentialsKey)
	if err != nil {
		slog.Error(err.Error())
		return nil, err
	}
	if !ok {
		return &models.Credentials{}, nil
	}

	var creds models.Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		// Corrupt stored data is discarded, not surfaced.
		slog.Info("discarding unparseable stored credentials")
		if err := r.store.Delete(credentialsKey); err != nil {
			slog.Error(err.Error())
		}
		return &models.Credentials{}, nil
	}

	return &creds, nil
}

func (r *credentialsRepository) Save(creds *models.Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		slog.Error(err.Error())
		return err
	}
	return r.store.Set(credentialsKey, string(data))
}
