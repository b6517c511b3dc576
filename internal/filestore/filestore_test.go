package filestore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"residence/server/internal/models"
)

func TestContentFile_LoadMissing(t *testing.T) {
	f := NewContentFile(filepath.Join(t.TempDir(), "data.json"))

	data, ok, err := f.Load()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, data)
}

func TestContentFile_SaveLoadRoundTrip(t *testing.T) {
	f := NewContentFile(filepath.Join(t.TempDir(), "nested", "data.json"))
	floor := 4
	in := models.AllData{
		Projects: []models.Project{{
			ID:    "p1",
			Name:  "Северный",
			Tags:  []string{"Комфорт"},
			Plans: []models.ApartmentPlan{{ID: "pl", Rooms: 0, Area: 25.5, Price: "по запросу", Floor: &floor}},
		}},
		News:         []models.NewsItem{{ID: "n", Content: "<p>raw <b>html</b></p>"}},
		SiteSettings: &models.SiteSettings{Phone: "+7"},
	}
	raw, err := json.Marshal(in)
	require.NoError(t, err)

	require.NoError(t, f.Save(raw))

	stored, ok, err := f.Load()
	require.NoError(t, err)
	assert.True(t, ok)

	var out models.AllData
	require.NoError(t, json.Unmarshal(stored, &out))
	assert.Equal(t, in, out)
}

func TestContentFile_SaveKeepsDocumentAsPosted(t *testing.T) {
	f := NewContentFile(filepath.Join(t.TempDir(), "data.json"))
	doc := `{"projects":[{"id":"p","apartmentsLeft":12}],"promotions":[{"title":"x"}],"projectFilters":{"rooms":["studio"]},"price":1e3}`

	require.NoError(t, f.Save(json.RawMessage(doc)))

	stored, _, err := f.Load()
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(stored))
	assert.Contains(t, string(stored), "1e3", "numbers are not re-encoded")
}

func TestContentFile_SaveRejectsNonObject(t *testing.T) {
	f := NewContentFile(filepath.Join(t.TempDir(), "data.json"))

	for _, doc := range []string{`[]`, `null`, `42`, `{"a":`, ``} {
		assert.ErrorIs(t, f.Save(json.RawMessage(doc)), ErrNotObject, doc)
	}

	_, ok, err := f.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestContentFile_SaveOverwritesWholeDocument(t *testing.T) {
	f := NewContentFile(filepath.Join(t.TempDir(), "data.json"))

	require.NoError(t, f.Save(json.RawMessage(`{"news":[{"id":"old"}]}`)))
	require.NoError(t, f.Save(json.RawMessage(`{"team":[{"id":"t"}]}`)))

	stored, _, err := f.Load()
	require.NoError(t, err)
	assert.JSONEq(t, `{"team":[{"id":"t"}]}`, string(stored))
}

func TestContentFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, _, err := NewContentFile(path).Load()
	assert.Error(t, err)
}

func projectName(t *testing.T, p json.RawMessage) string {
	t.Helper()
	var head struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(p, &head))
	return head.Name
}

func TestContentFile_ProjectCRUD(t *testing.T) {
	f := NewContentFile(filepath.Join(t.TempDir(), "data.json"))

	projects, err := f.Projects()
	require.NoError(t, err)
	assert.Empty(t, projects)

	created, err := f.CreateProject(json.RawMessage(`{"name":"A"}`))
	require.NoError(t, err)
	id := projectID(created)
	assert.NotEmpty(t, id)

	_, err = f.CreateProject(json.RawMessage(`{"id":"b","name":"B"}`))
	require.NoError(t, err)

	updated, err := f.UpdateProject(id, json.RawMessage(`{"name":"A2","apartmentsLeft":3}`))
	require.NoError(t, err)
	assert.Equal(t, id, projectID(updated))

	got, err := f.Project(id)
	require.NoError(t, err)
	assert.Equal(t, "A2", projectName(t, got))
	assert.Contains(t, string(got), `"apartmentsLeft":3`)

	_, err = f.UpdateProject("missing", json.RawMessage(`{}`))
	assert.ErrorIs(t, err, ErrProjectNotFound)
	assert.ErrorIs(t, f.DeleteProject("missing"), ErrProjectNotFound)

	_, err = f.CreateProject(json.RawMessage(`"project"`))
	assert.ErrorIs(t, err, ErrNotObject)

	require.NoError(t, f.DeleteProject(id))
	projects, err = f.Projects()
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "b", projectID(projects[0]))

	_, err = f.Project(id)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestContentFile_ProjectCRUDKeepsOtherKeys(t *testing.T) {
	f := NewContentFile(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, f.Save(json.RawMessage(`{"news":[{"id":"n","views":7}],"promotions":["spring"]}`)))

	_, err := f.CreateProject(json.RawMessage(`{"id":"p"}`))
	require.NoError(t, err)

	stored, _, err := f.Load()
	require.NoError(t, err)
	assert.JSONEq(t, `{"news":[{"id":"n","views":7}],"promotions":["spring"],"projects":[{"id":"p"}]}`, string(stored))
}

func TestContentFile_NumericProjectID(t *testing.T) {
	f := NewContentFile(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, f.Save(json.RawMessage(`{"projects":[{"id":7,"name":"Old"}]}`)))

	got, err := f.Project("7")
	require.NoError(t, err)
	assert.Equal(t, "Old", projectName(t, got))
}

func TestBookingLog_AppendAndList(t *testing.T) {
	ctx := context.Background()
	log := NewBookingLog(filepath.Join(t.TempDir(), "bookings.json"))

	list, err := log.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, log.Append(ctx, models.Booking{ID: "1", Name: "Ivan", Phone: "+7", CreatedAt: now}))
	require.NoError(t, log.Append(ctx, models.Booking{ID: "2", Name: "Olga", Phone: "+7", CreatedAt: now}))

	list, err = log.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "2", list[1].ID)
	assert.True(t, now.Equal(list[0].CreatedAt))
}

func TestDocument_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	doc := NewDocument(filepath.Join(dir, "doc.json"))

	require.NoError(t, doc.Save(map[string]int{"a": 1}))
	require.NoError(t, doc.Save(map[string]int{"a": 2}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "doc.json", entries[0].Name())
}
