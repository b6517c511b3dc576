package editor

import (
	"fmt"
	"time"

	"residence/server/internal/models"
)

const dateLayout = "2006-01-02"

func timelineID(t models.TimelineItem) string { return t.ID }

type TimelineEditor struct {
	e *ProjectEditor
}

func (te *TimelineEditor) List() []models.TimelineItem {
	return models.Clone(te.e.draft.Timeline)
}

func validDate(date string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	return nil
}

func (te *TimelineEditor) Add(item models.TimelineItem) (string, error) {
	if err := validDate(item.Date); err != nil {
		return "", err
	}
	if item.ID == "" {
		item.ID = models.NewID()
	}
	te.e.draft.Timeline = append(te.e.draft.Timeline, item)
	te.e.dirty = true
	return item.ID, nil
}

func (te *TimelineEditor) Update(item models.TimelineItem) error {
	if err := validDate(item.Date); err != nil {
		return err
	}
	if err := replaceItem(te.e.draft.Timeline, item.ID, timelineID, item); err != nil {
		return err
	}
	te.e.dirty = true
	return nil
}

func (te *TimelineEditor) Remove(id string) error {
	items, err := removeItem(te.e.draft.Timeline, id, timelineID)
	if err != nil {
		return err
	}
	te.e.draft.Timeline = items
	te.e.dirty = true
	return nil
}
