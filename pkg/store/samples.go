package store

import (
	"context"
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/lineagemap/pkg/errors"
	"github.com/matzehuels/lineagemap/pkg/family"
)

// DefaultSample is shown when no family is selected.
const DefaultSample = "stark"

// AllowedSamples lists the built-in sample ids.
var AllowedSamples = []string{"ambani", "gupta", "jackson", "kardashian", "kennedy", "lannister", "sen", "stark", "windsor"}

//go:embed samples/*.json
var embedded embed.FS

// Samples serves the built-in sample families. Files are looked up in the
// configured directories first, then in the samples shipped with the binary.
type Samples struct {
	dirs []string
}

// NewSamples searches dirs in order before the embedded samples.
func NewSamples(dirs ...string) *Samples {
	return &Samples{dirs: dirs}
}

// Names returns the allowed sample ids, sorted.
func (s *Samples) Names() []string { return slices.Clone(AllowedSamples) }

// IsAllowed reports whether id names a built-in sample.
func IsAllowed(id string) bool {
	return slices.Contains(AllowedSamples, normalizeSample(id))
}

// Resolve maps a requested id to an allowed one. Unknown and empty ids
// resolve to [DefaultSample].
func Resolve(id string) string {
	id = normalizeSample(id)
	if slices.Contains(AllowedSamples, id) {
		return id
	}
	return DefaultSample
}

// Get loads a sample. Ids outside the allow-list fail with
// errors.ErrCodeSampleNotFound, as do allowed samples with no data file.
func (s *Samples) Get(ctx context.Context, id string) (*family.Document, error) {
	id = normalizeSample(id)
	if !slices.Contains(AllowedSamples, id) {
		return nil, errors.New(errors.ErrCodeSampleNotFound, "sample %q not found", id)
	}

	data, err := s.read(id + ".json")
	if err != nil {
		return nil, err
	}
	doc, _, err := family.Decode(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode sample %q", id)
	}
	if len(doc.People) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "sample %q loaded but produced 0 people", id)
	}
	return doc, nil
}

func (s *Samples) read(file string) ([]byte, error) {
	looked := make([]string, 0, len(s.dirs)+1)
	for _, dir := range s.dirs {
		path := filepath.Join(dir, file)
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		looked = append(looked, path)
	}
	data, err := fs.ReadFile(embedded, "samples/"+file)
	if err == nil {
		return data, nil
	}
	looked = append(looked, "built-in")
	return nil, errors.New(errors.ErrCodeSampleNotFound, "sample %q not found; looked in: %s",
		strings.TrimSuffix(file, ".json"), strings.Join(looked, ", "))
}

func normalizeSample(id string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(id)), ".json")
}
