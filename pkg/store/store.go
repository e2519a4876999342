package store

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/lineagemap/pkg/errors"
	"github.com/matzehuels/lineagemap/pkg/family"
)

// Store persists one family document per name.
//
// Get fails with errors.ErrCodeFamilyNotFound when no document exists.
// Names are validated with errors.ValidateFamilyName and compared
// case-insensitively.
type Store interface {
	// Name identifies the backend in cache keys and logs.
	Name() string
	Get(ctx context.Context, name string) (*family.Document, error)
	Put(ctx context.Context, name string, doc *family.Document) error
	// SetVisibility publishes or hides a family. The slug is created on first
	// publication and kept afterwards, so links stay valid across toggles.
	SetVisibility(ctx context.Context, name string, public bool) (Visibility, error)
	// GetPublic returns the family published under slug. Private families
	// are reported as not found.
	GetPublic(ctx context.Context, slug string) (*family.Document, error)
	// List returns stored family names, sorted.
	List(ctx context.Context) ([]string, error)
	Close() error
}

// Visibility is the public state of a family.
type Visibility struct {
	Public bool   `json:"public" bson:"public"`
	Slug   string `json:"slug,omitempty" bson:"slug,omitempty"`
}

// storageName validates name and returns its normalized form.
func storageName(name string) (string, error) {
	if err := errors.ValidateFamilyName(name); err != nil {
		return "", err
	}
	return strings.ToLower(name), nil
}

// newSlug returns an unguessable public slug.
func newSlug() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

func notFound(name, where string) error {
	if where == "" {
		return errors.New(errors.ErrCodeFamilyNotFound, "family %q not found", name)
	}
	return errors.New(errors.ErrCodeFamilyNotFound, "family %q not found (expected %s)", name, where)
}
