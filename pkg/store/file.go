package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/lineagemap/pkg/errors"
	"github.com/matzehuels/lineagemap/pkg/family"
)

const visibilityFile = "visibility.json"

// FileStore keeps families as JSON files in a data directory:
// family_<name>.json, falling back to <name>.json for older files.
// Publication state lives in visibility.json.
type FileStore struct {
	dir    string
	logger *log.Logger
	mu     sync.Mutex // guards visibility.json and writes
}

// NewFileStore opens (and creates) the data directory.
func NewFileStore(dir string, logger *log.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnavailable, err, "create data dir %s", dir)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (s *FileStore) Name() string { return "file" }

// Dir returns the data directory.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file a family is read from: the preferred name when it
// exists, else the legacy name when that exists, else the preferred name.
func (s *FileStore) Path(name string) string {
	preferred := filepath.Join(s.dir, "family_"+name+".json")
	if _, err := os.Stat(preferred); err == nil {
		return preferred
	}
	legacy := filepath.Join(s.dir, name+".json")
	if _, err := os.Stat(legacy); err == nil {
		return legacy
	}
	return preferred
}

func (s *FileStore) Get(ctx context.Context, name string) (*family.Document, error) {
	name, err := storageName(name)
	if err != nil {
		return nil, err
	}
	return s.read(name)
}

func (s *FileStore) read(name string) (*family.Document, error) {
	path := s.Path(name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, notFound(name, path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read family %q", name)
	}
	doc, warnings, err := family.Decode(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFamily, err, "decode %s", filepath.Base(path))
	}
	for _, w := range warnings {
		s.logger.Debug("family document", "family", name, "warning", w)
	}
	return doc, nil
}

func (s *FileStore) Put(ctx context.Context, name string, doc *family.Document) error {
	name, err := storageName(name)
	if err != nil {
		return err
	}
	data, err := doc.Marshal()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFamily, err, "encode family %q", name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return writeAtomic(s.Path(name), data)
}

func (s *FileStore) SetVisibility(ctx context.Context, name string, public bool) (Visibility, error) {
	name, err := storageName(name)
	if err != nil {
		return Visibility{}, err
	}
	if _, err := os.Stat(s.Path(name)); err != nil {
		return Visibility{}, notFound(name, s.Path(name))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	all, err := s.loadVisibility()
	if err != nil {
		return Visibility{}, err
	}
	v := all[name]
	v.Public = public
	if public && v.Slug == "" {
		v.Slug = newSlug()
	}
	all[name] = v

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return Visibility{}, errors.Wrap(errors.ErrCodeInternal, err, "encode visibility")
	}
	if err := writeAtomic(filepath.Join(s.dir, visibilityFile), data); err != nil {
		return Visibility{}, err
	}
	return v, nil
}

func (s *FileStore) GetPublic(ctx context.Context, slug string) (*family.Document, error) {
	s.mu.Lock()
	all, err := s.loadVisibility()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	for name, v := range all {
		if v.Public && v.Slug != "" && v.Slug == slug {
			return s.read(name)
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no public family at %q", slug)
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list %s", s.dir)
	}
	var names []string
	for _, e := range entries {
		base, ok := strings.CutSuffix(e.Name(), ".json")
		if e.IsDir() || !ok || e.Name() == visibilityFile {
			continue
		}
		base = strings.TrimPrefix(base, "family_")
		if errors.ValidateFamilyName(base) == nil {
			names = append(names, strings.ToLower(base))
		}
	}
	slices.Sort(names)
	return slices.Compact(names), nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) loadVisibility() (map[string]Visibility, error) {
	all := make(map[string]Visibility)
	data, err := os.ReadFile(filepath.Join(s.dir, visibilityFile))
	if os.IsNotExist(err) {
		return all, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read visibility")
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode visibility")
	}
	return all, nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", filepath.Base(path))
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", filepath.Base(path))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", filepath.Base(path))
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", filepath.Base(path))
	}
	return nil
}

var _ Store = (*FileStore)(nil)
