package editor

import (
	"fmt"

	"github.com/paulmach/orb"

	"residence/server/internal/geometry"
	"residence/server/internal/models"
)

func infraID(i models.InfrastructureItem) string { return i.ID }

// InfrastructureEditor places pins over the neighbourhood image
type InfrastructureEditor struct {
	e *ProjectEditor
}

func (ie *InfrastructureEditor) List() []models.InfrastructureItem {
	return models.Clone(ie.e.draft.Infrastructure)
}

// PlacePin converts a click on the rendered image into pin coordinates
func (ie *InfrastructureEditor) PlacePin(click orb.Point, rendered orb.Bound) (orb.Point, error) {
	return geometry.ImagePercent(click, rendered)
}

// Add appends a pin at pos, given in image percentages
func (ie *InfrastructureEditor) Add(kind models.InfrastructureType, name string, pos orb.Point) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown infrastructure type %q", kind)
	}
	item := models.InfrastructureItem{
		ID:   models.NewID(),
		Type: kind,
		Name: name,
		X:    pos.X(),
		Y:    pos.Y(),
	}
	ie.e.draft.Infrastructure = append(ie.e.draft.Infrastructure, item)
	ie.e.dirty = true
	return item.ID, nil
}

func (ie *InfrastructureEditor) Remove(id string) error {
	items, err := removeItem(ie.e.draft.Infrastructure, id, infraID)
	if err != nil {
		return err
	}
	ie.e.draft.Infrastructure = items
	ie.e.dirty = true
	return nil
}
