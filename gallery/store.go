package gallery

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Store persists the gallery list.
//
// Load reports false when nothing usable is stored; callers then start from
// an empty gallery. Storage problems are never fatal for the caller.
type Store interface {
	Load() (List, bool)
	Save(List) error
}

// DefaultFile is the name of the gallery file inside the storage directory.
const DefaultFile = "gallery.json"

// FileStore keeps the gallery as a JSON document on a filesystem.
type FileStore struct {
	fs   afero.Fs
	path string
	log  logrus.FieldLogger
}

// NewFileStore returns a store writing the gallery to path on fs.
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{
		fs:   fs,
		path: path,
		log:  logrus.StandardLogger(),
	}
}

// NewOsFileStore returns a store writing to path on the local disk.
func NewOsFileStore(path string) *FileStore {
	return NewFileStore(afero.NewOsFs(), path)
}

// WithLogger sets the logger used to report the ignored failures.
func (s *FileStore) WithLogger(l logrus.FieldLogger) *FileStore {
	s.log = l
	return s
}

// Path returns the location of the gallery file.
func (s *FileStore) Path() string {
	return s.path
}

// Load implements Store. A missing, unreadable or malformed file yields
// an empty gallery.
func (s *FileStore) Load() (List, bool) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.WithError(err).WithField("path", s.path).Debug("gallery unreadable")
		}
		return nil, false
	}

	var list List
	if err := json.Unmarshal(data, &list); err != nil {
		s.log.WithError(err).WithField("path", s.path).Debug("gallery malformed")
		return nil, false
	}
	if len(list) > MaxEntries {
		list = list[:MaxEntries]
	}
	return list, true
}

// Save implements Store.
func (s *FileStore) Save(list List) error {
	if list == nil {
		list = List{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("could not encode the gallery: %w", err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("could not create the gallery directory: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.path, data, 0644); err != nil {
		return fmt.Errorf("could not write the gallery: %w", err)
	}
	return nil
}

// MemStore keeps the gallery in memory.
type MemStore struct {
	mu    sync.Mutex
	list  List
	saved bool
}

// Load implements Store.
func (s *MemStore) Load() (List, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.saved {
		return nil, false
	}
	return append(List(nil), s.list...), true
}

// Save implements Store.
func (s *MemStore) Save(list List) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.list = append(List(nil), list...)
	s.saved = true
	return nil
}
