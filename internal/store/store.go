// Package store manages the persistent merchant-name to category dictionary.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"fjacquet/budget-csv/internal/budgeterror"
	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"

	"github.com/gocarina/gocsv"
)

// CategoryStore holds the in-memory merchant-name to category mapping and its
// backing CSV file. The file contract is a two-column table with header
// "Name,Category", rows sorted by (Category, Name).
//
// Names iterate in insertion order: file order on load, then append order for
// names learned during the session.
type CategoryStore struct {
	path    string
	entries map[string]string
	order   []string
	dirty   bool
	logger  logging.Logger
}

// NewCategoryStore creates a store backed by the given CSV file.
func NewCategoryStore(path string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &CategoryStore{
		path:    path,
		entries: make(map[string]string),
		order:   []string{},
		logger:  logger,
	}
}

// Load reads the category table from disk. A missing file is the valid empty
// state, not an error.
func (s *CategoryStore) Load() error {
	s.entries = make(map[string]string)
	s.order = []string{}
	s.dirty = false

	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField(logging.FieldFile, s.path).Info("Category table not found, starting with empty dictionary")
			return nil
		}
		return fmt.Errorf("error opening category table: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close category table")
		}
	}()

	var rows []models.CategoryEntry
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		if err == gocsv.ErrEmptyCSVFile {
			return nil
		}
		return fmt.Errorf("error parsing category table: %w", err)
	}

	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		if _, exists := s.entries[row.Name]; !exists {
			s.order = append(s.order, row.Name)
		}
		s.entries[row.Name] = row.Category
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: s.path},
		logging.Field{Key: logging.FieldCount, Value: len(s.entries)},
	).Debug("Loaded category table")
	return nil
}

// Save writes the category table to disk, sorted by (Category, Name),
// overwriting the previous contents.
func (s *CategoryStore) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return &budgeterror.PersistenceError{Path: s.path, Op: "write", Err: err}
	}

	file, err := os.Create(s.path)
	if err != nil {
		return &budgeterror.PersistenceError{Path: s.path, Op: "write", Err: err}
	}
	defer func() {
		if err := file.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close category table")
		}
	}()

	entries := s.Entries()
	if err := gocsv.MarshalFile(&entries, file); err != nil {
		return &budgeterror.PersistenceError{Path: s.path, Op: "write", Err: err}
	}

	s.dirty = false
	s.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: s.path},
		logging.Field{Key: logging.FieldCount, Value: len(s.entries)},
	).Debug("Saved category table")
	return nil
}

// SaveIfDirty writes the table only when it has unsaved mutations.
func (s *CategoryStore) SaveIfDirty() error {
	if !s.dirty {
		return nil
	}
	return s.Save()
}

// Get returns the category for a name and whether the name is known.
func (s *CategoryStore) Get(name string) (string, bool) {
	category, ok := s.entries[name]
	return category, ok
}

// Upsert adds or updates an entry. The key is case-sensitive as stored.
func (s *CategoryStore) Upsert(name, category string) {
	if _, exists := s.entries[name]; !exists {
		s.order = append(s.order, name)
	}
	s.entries[name] = category
	s.dirty = true
}

// Remove deletes an entry if present.
func (s *CategoryStore) Remove(name string) {
	if _, exists := s.entries[name]; !exists {
		return
	}
	delete(s.entries, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.dirty = true
}

// Rename changes an entry's key, keeping its category and order position.
// Renaming onto an existing different entry is rejected with a
// DuplicateNameError and the store is left unchanged.
func (s *CategoryStore) Rename(oldName, newName string) error {
	if oldName == newName {
		return nil
	}
	category, exists := s.entries[oldName]
	if !exists {
		return nil
	}
	if _, collision := s.entries[newName]; collision {
		return &budgeterror.DuplicateNameError{Name: newName}
	}

	delete(s.entries, oldName)
	s.entries[newName] = category
	for i, n := range s.order {
		if n == oldName {
			s.order[i] = newName
			break
		}
	}
	s.dirty = true
	return nil
}

// Names returns the stored names in insertion order.
func (s *CategoryStore) Names() []string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	return names
}

// Entries returns all entries sorted by (Category, Name), the persisted order.
func (s *CategoryStore) Entries() []models.CategoryEntry {
	entries := make([]models.CategoryEntry, 0, len(s.entries))
	for name, category := range s.entries {
		entries = append(entries, models.CategoryEntry{Name: name, Category: category})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Category != entries[j].Category {
			return entries[i].Category < entries[j].Category
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}

// Len returns the number of entries.
func (s *CategoryStore) Len() int {
	return len(s.entries)
}

// Dirty reports whether the store has unsaved mutations.
func (s *CategoryStore) Dirty() bool {
	return s.dirty
}

// Path returns the backing file path.
func (s *CategoryStore) Path() string {
	return s.path
}
