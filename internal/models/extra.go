package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

// Extra holds object keys the site uses that these types do not declare.
// They are read alongside the known fields and written back unchanged.
type Extra map[string]json.RawMessage

var knownKeys sync.Map // reflect.Type -> map[string]bool

func fieldKeys(t reflect.Type) map[string]bool {
	if keys, ok := knownKeys.Load(t); ok {
		return keys.(map[string]bool)
	}
	keys := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name := strings.Split(f.Tag.Get("json"), ",")[0]
		switch {
		case name == "-" || !f.IsExported():
			continue
		case name == "":
			name = f.Name
		}
		keys[name] = true
	}
	knownKeys.Store(t, keys)
	return keys
}

// decodeWithExtra decodes data into the struct pointed to by v and
// collects the keys v has no field for into extra.
func decodeWithExtra(data []byte, v interface{}, extra *Extra) error {
	*extra = nil
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil || all == nil {
		return nil
	}
	known := fieldKeys(reflect.TypeOf(v).Elem())
	for key := range all {
		if known[key] {
			delete(all, key)
		}
	}
	if len(all) > 0 {
		*extra = all
	}
	return nil
}

// encodeWithExtra encodes v and adds the extra keys it does not already carry
func encodeWithExtra(v interface{}, extra Extra) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for key, raw := range extra {
		if _, ok := all[key]; !ok && json.Valid(raw) {
			all[key] = raw
		}
	}
	return json.Marshal(all)
}

type (
	allDataFields        AllData
	projectFields        Project
	homePageFields       HomePageContent
	projectFiltersFields ProjectFilters
	siteSettingsFields   SiteSettings
)

func (d *AllData) UnmarshalJSON(data []byte) error {
	return decodeWithExtra(data, (*allDataFields)(d), &d.Extra)
}

func (d AllData) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(allDataFields(d), d.Extra)
}

func (p *Project) UnmarshalJSON(data []byte) error {
	return decodeWithExtra(data, (*projectFields)(p), &p.Extra)
}

func (p Project) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(projectFields(p), p.Extra)
}

func (h *HomePageContent) UnmarshalJSON(data []byte) error {
	return decodeWithExtra(data, (*homePageFields)(h), &h.Extra)
}

func (h HomePageContent) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(homePageFields(h), h.Extra)
}

func (f *ProjectFilters) UnmarshalJSON(data []byte) error {
	return decodeWithExtra(data, (*projectFiltersFields)(f), &f.Extra)
}

func (f ProjectFilters) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(projectFiltersFields(f), f.Extra)
}

func (s *SiteSettings) UnmarshalJSON(data []byte) error {
	return decodeWithExtra(data, (*siteSettingsFields)(s), &s.Extra)
}

func (s SiteSettings) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(siteSettingsFields(s), s.Extra)
}
