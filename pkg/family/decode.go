package family

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/lineagemap/pkg/errors"
)

// AliasTable lists, per concept, the JSON keys accepted for it in priority
// order. The first present, non-empty value wins.
type AliasTable struct {
	People        []string
	Relationships []string
	ParentID      []string
	ChildID       []string
	Name          []string
	Photo         []string
	Born          []string
	Died          []string
}

// DefaultAliases is the alias table used by [Decode].
var DefaultAliases = AliasTable{
	People:        []string{"people", "persons", "nodes"},
	Relationships: []string{"relationships", "edges", "links"},
	ParentID:      []string{"parentId", "parent", "sourceId", "source"},
	ChildID:       []string{"childId", "child", "targetId", "target"},
	Name:          []string{"name", "label", "fullName"},
	Photo:         []string{"photo", "photoUrl", "image", "img"},
	Born:          []string{"born", "birth", "birthDate"},
	Died:          []string{"died", "death", "deathDate"},
}

// Decode parses a family document with [DefaultAliases].
func Decode(data []byte) (*Document, []string, error) {
	return DefaultAliases.Decode(data)
}

// Decode parses a family document, tolerating the key spellings in t.
// Records that cannot be used are skipped and reported as warnings; only
// malformed JSON is an error.
func (t AliasTable) Decode(data []byte) (*Document, []string, error) {
	if !gjson.ValidBytes(data) {
		return nil, nil, errors.New(errors.ErrCodeInvalidFamily, "family document is not valid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, nil, errors.New(errors.ErrCodeInvalidFamily, "family document must be a JSON object")
	}

	var warnings []string
	doc := &Document{
		People:        []Person{},
		Relationships: []Relationship{},
	}
	decodeMeta(root.Get("meta"), &doc.Meta)

	seen := make(map[string]bool)
	t.firstList(root, t.People).ForEach(func(key, rec gjson.Result) bool {
		if !rec.IsObject() {
			warnings = append(warnings, fmt.Sprintf("people[%d]: not an object", key.Int()))
			return true
		}
		p := t.decodePerson(rec)
		if p.ID == "" {
			warnings = append(warnings, fmt.Sprintf("people[%d]: missing id", key.Int()))
			return true
		}
		if seen[p.ID] {
			warnings = append(warnings, fmt.Sprintf("people[%d]: duplicate id %q", key.Int(), p.ID))
			return true
		}
		seen[p.ID] = true
		doc.People = append(doc.People, p)
		return true
	})

	t.firstList(root, t.Relationships).ForEach(func(key, rec gjson.Result) bool {
		parent := idString(first(rec, t.ParentID))
		child := idString(first(rec, t.ChildID))
		if parent == "" || child == "" {
			warnings = append(warnings, fmt.Sprintf("relationships[%d]: missing parent or child id", key.Int()))
			return true
		}
		doc.Relationships = append(doc.Relationships, Relationship{ParentID: parent, ChildID: child})
		return true
	})

	return doc, warnings, nil
}

func (t AliasTable) decodePerson(rec gjson.Result) Person {
	p := Person{
		ID:    idString(rec.Get("id")),
		Name:  first(rec, t.Name).String(),
		Born:  first(rec, t.Born).String(),
		Died:  first(rec, t.Died).String(),
		Photo: first(rec, t.Photo).String(),
	}
	if loc := rec.Get("location"); loc.IsObject() {
		p.Location = &Location{
			City:    loc.Get("city").String(),
			Region:  loc.Get("region").String(),
			Country: loc.Get("country").String(),
			Lat:     loc.Get("lat").Float(),
			Lng:     loc.Get("lng").Float(),
			X:       loc.Get("x").Float(),
			Y:       loc.Get("y").Float(),
		}
	}
	rec.Get("events").ForEach(func(_, ev gjson.Result) bool {
		p.Events = append(p.Events, Event{
			Date:        ev.Get("date").String(),
			Title:       ev.Get("title").String(),
			Description: ev.Get("description").String(),
		})
		return true
	})
	return p
}

func decodeMeta(m gjson.Result, meta *Meta) {
	if !m.IsObject() {
		return
	}
	meta.FamilyName = m.Get("family_name").String()
	meta.Starter = m.Get("starter").Bool()
	meta.Owner = m.Get("owner").String()
	meta.Public = m.Get("public").Bool()
	meta.PublicSlug = m.Get("public_slug").String()
	if ts := m.Get("created_at"); ts.Exists() {
		meta.CreatedAt = ts.Time()
	}
}

// firstList returns the first key in keys holding a non-empty array.
func (t AliasTable) firstList(root gjson.Result, keys []string) gjson.Result {
	for _, k := range keys {
		if v := root.Get(k); v.IsArray() && len(v.Array()) > 0 {
			return v
		}
	}
	return gjson.Result{}
}

// first returns the value of the first key in keys that is present and not
// empty.
func first(rec gjson.Result, keys []string) gjson.Result {
	for _, k := range keys {
		v := rec.Get(gjson.Escape(k))
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if v.Type == gjson.String && strings.TrimSpace(v.Str) == "" {
			continue
		}
		return v
	}
	return gjson.Result{}
}

// idString normalizes an id value. Numbers are stringified; objects (as left
// behind by force-directed renderers) contribute their own "id" field.
func idString(v gjson.Result) string {
	if v.IsObject() {
		v = v.Get("id")
	}
	switch v.Type {
	case gjson.String, gjson.Number:
		return strings.TrimSpace(v.String())
	}
	return ""
}
