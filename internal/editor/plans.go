package editor

import (
	"fmt"

	"residence/server/internal/models"
)

func planID(p models.ApartmentPlan) string { return p.ID }

// PlanEditor edits the apartment plans of a draft
type PlanEditor struct {
	e *ProjectEditor
}

func (pe *PlanEditor) List() []models.ApartmentPlan {
	return models.Clone(pe.e.draft.Plans)
}

// Add appends plan, generating an id when it has none
func (pe *PlanEditor) Add(plan models.ApartmentPlan) string {
	if plan.ID == "" {
		plan.ID = models.NewID()
	}
	pe.e.draft.Plans = append(pe.e.draft.Plans, plan)
	pe.e.dirty = true
	return plan.ID
}

func (pe *PlanEditor) Update(plan models.ApartmentPlan) error {
	if err := replaceItem(pe.e.draft.Plans, plan.ID, planID, plan); err != nil {
		return err
	}
	pe.e.dirty = true
	return nil
}

func (pe *PlanEditor) Remove(id string) error {
	plans, err := removeItem(pe.e.draft.Plans, id, planID)
	if err != nil {
		return err
	}
	pe.e.draft.Plans = plans
	pe.e.dirty = true
	return nil
}

func (pe *PlanEditor) SetStatus(id string, status models.PlanStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown plan status %q", status)
	}
	for i := range pe.e.draft.Plans {
		if pe.e.draft.Plans[i].ID == id {
			pe.e.draft.Plans[i].Status = status
			pe.e.dirty = true
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// FloorRange is the hint shown next to the floor input. Floors outside
// the range are still accepted.
func (pe *PlanEditor) FloorRange() string {
	return fmt.Sprintf("1-%d", pe.e.draft.TotalFloors)
}
