package repository

import (
	"encoding/json"
	"log/slog"

	"github.com/maheshrc27/pageflow/internal/models"
	"github.com/maheshrc27/pageflow/internal/storage"
)

const templatesKey = "pageflow_templates"

type TemplateRepository interface {
	Load() ([]models.PostTemplate, error)
	Save(templates []models.PostTemplate) error
}

type templateRepository struct {
	store storage.Store
}

func NewTemplateRepository(store storage.Store) TemplateRepository {
	return &templateRepository{store: store}
}

func (r *templateRepository) Load() ([]models.PostTemplate, error) {
	raw, ok, err := r.store.Get(templatesKey)
	if err != nil {
		slog.Error(err.Error())
		return nil, err
	}
	if !ok {
		return []models.PostTemplate{}, nil
	}

	var templates []models.PostTemplate
	if err := json.Unmarshal([]byte(raw), &templates); err != nil {
		slog.Info("discarding unparseable stored templates")
		if err := r.store.Delete(templatesKey); err != nil {
			slog.Error(err.Error())
		}
		return []models.PostTemplate{}, nil
	}

	return templates, nil
}

func (r *templateRepository) Save(templates []models.PostTemplate) error {
	data, err := json.Marshal(templates)
	if err != nil {
		slog.Error(err.Error())
		return err
	}
	return r.store.Set(templatesKey, string(data))
}
