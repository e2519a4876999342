package family

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is a family as stored per owner: people plus parent→child
// relationships. It is the only shape the layout engine consumes.
type Document struct {
	Meta          Meta           `json:"meta" bson:"meta"`
	People        []Person       `json:"people" bson:"people"`
	Relationships []Relationship `json:"relationships" bson:"relationships"`
}

// Meta carries document-level attributes that never affect layout.
type Meta struct {
	FamilyName string    `json:"family_name,omitempty" bson:"family_name,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitzero" bson:"created_at,omitempty"`
	Starter    bool      `json:"starter,omitempty" bson:"starter,omitempty"`
	Owner      string    `json:"owner,omitempty" bson:"owner,omitempty"`
	Public     bool      `json:"public,omitempty" bson:"public,omitempty"`
	PublicSlug string    `json:"public_slug,omitempty" bson:"public_slug,omitempty"`
}

// Person is one individual in a family document.
// Dates are free-form strings ("1901", "1901-05", "12 May 1901").
type Person struct {
	ID       string    `json:"id" bson:"id"`
	Name     string    `json:"name" bson:"name"`
	Born     string    `json:"born,omitempty" bson:"born,omitempty"`
	Died     string    `json:"died,omitempty" bson:"died,omitempty"`
	Photo    string    `json:"photo,omitempty" bson:"photo,omitempty"`
	Location *Location `json:"location,omitempty" bson:"location,omitempty"`
	Events   []Event   `json:"events,omitempty" bson:"events,omitempty"`
}

// DisplayName returns the name if set, otherwise the ID.
func (p Person) DisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return p.ID
}

// Location places a person for the map view. Lat/Lng are geographic
// coordinates; X/Y are percentage positions on a fixed map image.
type Location struct {
	City    string  `json:"city,omitempty" bson:"city,omitempty"`
	Region  string  `json:"region,omitempty" bson:"region,omitempty"`
	Country string  `json:"country,omitempty" bson:"country,omitempty"`
	Lat     float64 `json:"lat,omitempty" bson:"lat,omitempty"`
	Lng     float64 `json:"lng,omitempty" bson:"lng,omitempty"`
	X       float64 `json:"x,omitempty" bson:"x,omitempty"`
	Y       float64 `json:"y,omitempty" bson:"y,omitempty"`
}

// Label joins the non-empty place components, most specific first.
func (l *Location) Label() string {
	if l == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, s := range []string{l.City, l.Region, l.Country} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// Event is a dated life event shown on the timeline.
type Event struct {
	Date        string `json:"date,omitempty" bson:"date,omitempty"`
	Title       string `json:"title,omitempty" bson:"title,omitempty"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

// Relationship is a directed parent→child edge. Several relationships with
// the same child and different parents denote co-parents.
type Relationship struct {
	ParentID string `json:"parentId" bson:"parentId"`
	ChildID  string `json:"childId" bson:"childId"`
}

// PersonByID returns the person with the given id.
func (d *Document) PersonByID(id string) (Person, bool) {
	for _, p := range d.People {
		if p.ID == id {
			return p, true
		}
	}
	return Person{}, false
}

// Marshal serializes the document in its normalized shape.
func (d *Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// NewStarter builds the two-person document a new family starts with.
func NewStarter(familyName string, now time.Time) *Document {
	if familyName == "" {
		familyName = "My Family"
	}
	return &Document{
		Meta: Meta{
			FamilyName: familyName,
			CreatedAt:  now.UTC(),
			Starter:    true,
		},
		People: []Person{
			{ID: newPersonID(), Location: &Location{}},
			{ID: newPersonID(), Location: &Location{}},
		},
		Relationships: []Relationship{},
	}
}

func newPersonID() string {
	return "p_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}
