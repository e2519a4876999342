package family

import (
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/lineagemap/pkg/errors"
)

func TestDecode_RelationshipAliases(t *testing.T) {
	data := []byte(`{
		"people": [{"id": "a"}, {"id": "b"}, {"id": "c"}, {"id": "d"}],
		"relationships": [
			{"parentId": "a", "childId": "c"},
			{"parent": "b", "child": "c"},
			{"sourceId": "a", "targetId": "d"},
			{"source": {"id": "b"}, "target": {"id": "d"}},
			{"parentId": "", "parent": "a", "childId": "d"}
		]
	}`)

	doc, warnings, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	want := []Relationship{
		{ParentID: "a", ChildID: "c"},
		{ParentID: "b", ChildID: "c"},
		{ParentID: "a", ChildID: "d"},
		{ParentID: "b", ChildID: "d"},
		{ParentID: "a", ChildID: "d"},
	}
	if len(doc.Relationships) != len(want) {
		t.Fatalf("got %d relationships, want %d", len(doc.Relationships), len(want))
	}
	for i, r := range want {
		if doc.Relationships[i] != r {
			t.Errorf("relationships[%d] = %+v, want %+v", i, doc.Relationships[i], r)
		}
	}
}

func TestDecode_AliasPriority(t *testing.T) {
	// parentId wins over parent when both are present.
	data := []byte(`{"people":[],"relationships":[{"parentId":"x","parent":"y","childId":"z"}]}`)
	doc, _, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Relationships[0].ParentID; got != "x" {
		t.Errorf("ParentID = %q, want %q", got, "x")
	}
}

func TestDecode_DocumentAliases(t *testing.T) {
	data := []byte(`{
		"persons": [{"id": 1, "label": "Ned", "image": "/p/ned.jpg", "birth": "1901"}],
		"links": [{"source": 1, "target": 2}]
	}`)

	doc, _, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(doc.People) != 1 {
		t.Fatalf("got %d people, want 1", len(doc.People))
	}
	p := doc.People[0]
	if p.ID != "1" || p.Name != "Ned" || p.Photo != "/p/ned.jpg" || p.Born != "1901" {
		t.Errorf("person = %+v", p)
	}
	if len(doc.Relationships) != 1 || doc.Relationships[0] != (Relationship{ParentID: "1", ChildID: "2"}) {
		t.Errorf("relationships = %+v", doc.Relationships)
	}
}

func TestDecode_Leniency(t *testing.T) {
	data := []byte(`{
		"people": [{"id": "a"}, {"name": "no id"}, 7, {"id": "a"}],
		"relationships": [{"parent": "a"}, {"child": "a"}]
	}`)

	doc, warnings, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if len(doc.People) != 1 {
		t.Errorf("got %d people, want 1", len(doc.People))
	}
	if len(doc.Relationships) != 0 {
		t.Errorf("got %d relationships, want 0", len(doc.Relationships))
	}
	if len(warnings) != 5 {
		t.Errorf("got %d warnings, want 5: %v", len(warnings), warnings)
	}
}

func TestDecode_Invalid(t *testing.T) {
	for _, input := range []string{`{`, `[]`, `"people"`} {
		_, _, err := Decode([]byte(input))
		if !errors.Is(err, errors.ErrCodeInvalidFamily) {
			t.Errorf("Decode(%q) error = %v, want INVALID_FAMILY", input, err)
		}
	}
}

func TestDecode_Empty(t *testing.T) {
	doc, warnings, err := Decode([]byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if doc.People == nil || doc.Relationships == nil {
		t.Error("empty document should have non-nil slices")
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestYear(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"1901", 1901, true},
		{"1901-05", 1901, true},
		{"1901-05-12", 1901, true},
		{"c. 1850", 1850, true},
		{"abt 1900", 1900, true},
		{"", 0, false},
		{"unknown", 0, false},
	}

	for _, tt := range tests {
		got, ok := Year(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Year(%q) = %d, %v; want %d, %v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLifespan(t *testing.T) {
	tests := []struct {
		p    Person
		want string
	}{
		{Person{Born: "1917-05-29", Died: "1963-11-22"}, "1917 – 1963"},
		{Person{Born: "1990"}, "b. 1990"},
		{Person{Died: "c. 1850"}, "d. 1850"},
		{Person{}, ""},
	}

	for _, tt := range tests {
		if got := tt.p.Lifespan(); got != tt.want {
			t.Errorf("Lifespan(%+v) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestLocationLabel(t *testing.T) {
	l := &Location{City: "Winterfell", Country: "The North"}
	if got := l.Label(); got != "Winterfell, The North" {
		t.Errorf("Label() = %q", got)
	}
	var nilLoc *Location
	if got := nilLoc.Label(); got != "" {
		t.Errorf("nil Label() = %q", got)
	}
}

func TestNewStarter(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	doc := NewStarter("", now)

	if doc.Meta.FamilyName != "My Family" || !doc.Meta.Starter || !doc.Meta.CreatedAt.Equal(now) {
		t.Errorf("meta = %+v", doc.Meta)
	}
	if len(doc.People) != 2 {
		t.Fatalf("got %d people, want 2", len(doc.People))
	}
	a, b := doc.People[0].ID, doc.People[1].ID
	if a == b {
		t.Error("starter ids should differ")
	}
	for _, id := range []string{a, b} {
		if !strings.HasPrefix(id, "p_") || len(id) != 8 {
			t.Errorf("starter id %q, want p_ + 6 hex chars", id)
		}
	}

	data, err := doc.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	round, _, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(round.People) != 2 || round.Meta.FamilyName != "My Family" {
		t.Errorf("round trip lost data: %+v", round)
	}
}

func TestDisplayName(t *testing.T) {
	if got := (Person{ID: "x", Name: "  "}).DisplayName(); got != "x" {
		t.Errorf("DisplayName() = %q, want id fallback", got)
	}
	if got := (Person{ID: "x", Name: "Arya"}).DisplayName(); got != "Arya" {
		t.Errorf("DisplayName() = %q", got)
	}
}
