package editor

import (
	"errors"
	"fmt"

	"residence/server/internal/content"
	"residence/server/internal/models"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrItemNotFound    = errors.New("item not found")
)

// ProjectStore is where drafts are committed
type ProjectStore interface {
	Project(id string) (models.Project, bool)
	AddProject(p models.Project)
	UpdateProject(p models.Project)
}

// ProjectEditor stages changes to one project. Nothing reaches the
// store until Save is called.
type ProjectEditor struct {
	store ProjectStore
	draft models.Project
	isNew bool
	dirty bool
}

// NewProject starts a draft for a project that does not exist yet
func NewProject(store ProjectStore) *ProjectEditor {
	return &ProjectEditor{
		store: store,
		draft: models.Project{
			ID:             models.NewID(),
			Slug:           "new-project",
			Name:           "Новый проект",
			Tags:           []string{},
			HeroImage:      content.PlaceholderImage,
			Gallery:        []string{content.PlaceholderImage},
			TotalFloors:    models.DefaultTotalFloors,
			Features:       []models.Feature{},
			Plans:          []models.ApartmentPlan{},
			Promos:         []models.PromoOffer{},
			Infrastructure: []models.InfrastructureItem{},
			Timeline:       []models.TimelineItem{},
		},
		isNew: true,
		dirty: true,
	}
}

// Open stages a copy of an existing project
func Open(store ProjectStore, id string) (*ProjectEditor, error) {
	p, ok := store.Project(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return &ProjectEditor{store: store, draft: models.Clone(p)}, nil
}

// Draft returns a copy of the staged project
func (e *ProjectEditor) Draft() models.Project {
	return models.Clone(e.draft)
}

func (e *ProjectEditor) IsNew() bool {
	return e.isNew
}

// Dirty reports whether the draft has changes that were not saved
func (e *ProjectEditor) Dirty() bool {
	return e.dirty
}

// Edit changes top level fields of the draft
func (e *ProjectEditor) Edit(fn func(p *models.Project)) {
	id := e.draft.ID
	fn(&e.draft)
	e.draft.ID = id
	e.dirty = true
}

// Save commits the draft: added on first save, replaced afterwards
func (e *ProjectEditor) Save() {
	p := models.Clone(e.draft)
	if e.isNew {
		e.store.AddProject(p)
		e.isNew = false
	} else {
		e.store.UpdateProject(p)
	}
	e.dirty = false
}

func (e *ProjectEditor) Plans() *PlanEditor {
	return &PlanEditor{e: e}
}

func (e *ProjectEditor) Promos() *PromoEditor {
	return &PromoEditor{e: e}
}

func (e *ProjectEditor) Infrastructure() *InfrastructureEditor {
	return &InfrastructureEditor{e: e}
}

func (e *ProjectEditor) Timeline() *TimelineEditor {
	return &TimelineEditor{e: e}
}

func replaceItem[T any](items []T, id string, idOf func(T) string, v T) error {
	for i := range items {
		if idOf(items[i]) == id {
			items[i] = v
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

func removeItem[T any](items []T, id string, idOf func(T) string) ([]T, error) {
	for i := range items {
		if idOf(items[i]) == id {
			return append(items[:i:i], items[i+1:]...), nil
		}
	}
	return items, fmt.Errorf("%w: %s", ErrItemNotFound, id)
}
