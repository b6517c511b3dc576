package persistence

import (
	"encoding/json"
	"fmt"

	"residence/server/internal/filestore"
	"residence/server/internal/models"
)

// Entry is what the cache holds. Unsynced is set while the content has
// local edits the server has not acknowledged yet, across restarts too.
type Entry struct {
	Unsynced bool           `json:"unsynced"`
	Content  models.AllData `json:"content"`
}

// Cache is the local copy of the content that survives restarts
// without a reachable server.
type Cache struct {
	doc *filestore.Document
}

func NewCache(path string) *Cache {
	return &Cache{doc: filestore.NewDocument(path)}
}

func (c *Cache) Path() string {
	return c.doc.Path()
}

// Load reports false when nothing was cached yet. A cache written as bare
// content, without the entry wrapper, loads as synced.
func (c *Cache) Load() (Entry, bool, error) {
	var raw json.RawMessage
	found, err := c.doc.Load(&raw)
	if err != nil || !found {
		return Entry{}, found, err
	}

	var head struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return Entry{}, false, fmt.Errorf("failed to parse %s: %w", c.Path(), err)
	}

	var entry Entry
	if head.Content != nil {
		err = json.Unmarshal(raw, &entry)
	} else {
		err = json.Unmarshal(raw, &entry.Content)
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to parse %s: %w", c.Path(), err)
	}
	return entry, true, nil
}

func (c *Cache) Save(data models.AllData, unsynced bool) error {
	return c.doc.Save(Entry{Unsynced: unsynced, Content: data})
}
