package filestore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"residence/server/internal/models"
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrNotObject       = errors.New("content must be a JSON object")
)

// object is a JSON object whose values are kept as written
type object map[string]json.RawMessage

func decodeObject(data []byte) (object, error) {
	var obj object
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, ErrNotObject
	}
	return obj, nil
}

// ContentFile stores the whole site content snapshot exactly as the site
// posted it. The server does not own the content schema, so nothing is
// decoded beyond what the legacy project endpoints need.
type ContentFile struct {
	doc *Document
}

func NewContentFile(path string) *ContentFile {
	return &ContentFile{doc: NewDocument(path)}
}

// Load returns the stored snapshot and whether the file existed
func (f *ContentFile) Load() (json.RawMessage, bool, error) {
	var data json.RawMessage
	ok, err := f.doc.Load(&data)
	return data, ok, err
}

// Save replaces the snapshot with data, which must be a JSON object
func (f *ContentFile) Save(data json.RawMessage) error {
	if _, err := decodeObject(data); err != nil {
		return err
	}
	return f.doc.Save(data)
}

func projectsOf(doc object) ([]json.RawMessage, error) {
	projects := []json.RawMessage{}
	raw, ok := doc["projects"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return projects, nil
	}
	if err := json.Unmarshal(raw, &projects); err != nil {
		return nil, fmt.Errorf("projects is not a list: %w", err)
	}
	if projects == nil {
		projects = []json.RawMessage{}
	}
	return projects, nil
}

func projectID(p json.RawMessage) string {
	var head struct {
		ID models.FreeText `json:"id"`
	}
	if err := json.Unmarshal(p, &head); err != nil {
		return ""
	}
	return head.ID.String()
}

func withID(p object, id string) (json.RawMessage, error) {
	raw, err := json.Marshal(id)
	if err != nil {
		return nil, err
	}
	p["id"] = raw
	return json.Marshal(p)
}

// Projects returns the projects collection of the stored snapshot
func (f *ContentFile) Projects() ([]json.RawMessage, error) {
	var doc object
	if _, err := f.doc.Load(&doc); err != nil {
		return nil, err
	}
	return projectsOf(doc)
}

func (f *ContentFile) Project(id string) (json.RawMessage, error) {
	projects, err := f.Projects()
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		if projectID(p) == id {
			return p, nil
		}
	}
	return nil, ErrProjectNotFound
}

// updateProjects applies fn to the projects collection and writes the
// snapshot back with every other key untouched
func (f *ContentFile) updateProjects(fn func([]json.RawMessage) ([]json.RawMessage, error)) error {
	var doc object
	return f.doc.Update(&doc, func() (bool, error) {
		if doc == nil {
			doc = object{}
		}
		projects, err := projectsOf(doc)
		if err != nil {
			return false, err
		}
		if projects, err = fn(projects); err != nil {
			return false, err
		}
		raw, err := json.Marshal(projects)
		if err != nil {
			return false, err
		}
		doc["projects"] = raw
		return true, nil
	})
}

// CreateProject appends p, assigning an id when it has none
func (f *ContentFile) CreateProject(p json.RawMessage) (json.RawMessage, error) {
	obj, err := decodeObject(p)
	if err != nil {
		return nil, err
	}
	id := projectID(p)
	if id == "" {
		id = models.NewID()
	}
	created, err := withID(obj, id)
	if err != nil {
		return nil, err
	}

	err = f.updateProjects(func(projects []json.RawMessage) ([]json.RawMessage, error) {
		return append(projects, created), nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateProject replaces the project with the given id by p
func (f *ContentFile) UpdateProject(id string, p json.RawMessage) (json.RawMessage, error) {
	obj, err := decodeObject(p)
	if err != nil {
		return nil, err
	}
	updated, err := withID(obj, id)
	if err != nil {
		return nil, err
	}

	err = f.updateProjects(func(projects []json.RawMessage) ([]json.RawMessage, error) {
		for i := range projects {
			if projectID(projects[i]) == id {
				projects[i] = updated
				return projects, nil
			}
		}
		return nil, ErrProjectNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (f *ContentFile) DeleteProject(id string) error {
	return f.updateProjects(func(projects []json.RawMessage) ([]json.RawMessage, error) {
		for i := range projects {
			if projectID(projects[i]) == id {
				return append(projects[:i], projects[i+1:]...), nil
			}
		}
		return nil, ErrProjectNotFound
	})
}
