package cleaner

import (
	"bytes"
	"path/filepath"
	"testing"

	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/prompt"
	"fjacquet/budget-csv/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *store.CategoryStore {
	t.Helper()
	s := store.NewCategoryStore(filepath.Join(t.TempDir(), "Categories.csv"), &logging.MockLogger{})
	require.NoError(t, s.Load())
	s.Upsert("ALDI", "Groceries")
	s.Upsert("SHELL", "Gas")
	s.Upsert("ZAXBY'S", "Dining")
	require.NoError(t, s.Save())
	return s
}

func runCleaner(t *testing.T, s *store.CategoryStore, answers []string) (*prompt.ScriptedPrompter, *bytes.Buffer) {
	t.Helper()
	scripted := &prompt.ScriptedPrompter{Answers: answers}
	var out bytes.Buffer
	require.NoError(t, New(s, scripted, &logging.MockLogger{}, &out).Run())
	return scripted, &out
}

func TestRunKeepsEverythingOnEnter(t *testing.T) {
	s := newTestStore(t)

	scripted, _ := runCleaner(t, s, nil)

	assert.Len(t, scripted.Prompts, 3)
	assert.Equal(t, 3, s.Len())
}

func TestRunEditsNameAndCategory(t *testing.T) {
	s := newTestStore(t)

	// Rename ALDI, recategorize SHELL, keep ZAXBY'S
	runCleaner(t, s, []string{"aldi sud,", ",fuel", ""})

	_, ok := s.Get("ALDI")
	assert.False(t, ok)
	category, ok := s.Get("ALDI SUD")
	assert.True(t, ok)
	assert.Equal(t, "Groceries", category)

	category, _ = s.Get("SHELL")
	assert.Equal(t, "Fuel", category)
}

func TestRunDeleteWithConfirmation(t *testing.T) {
	s := newTestStore(t)

	_, out := runCleaner(t, s, []string{"d", "", "", "y"})

	_, ok := s.Get("ALDI")
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
	assert.Contains(t, out.String(), "- ALDI, Groceries")

	// Deletion survives a reload
	reloaded := store.NewCategoryStore(s.Path(), &logging.MockLogger{})
	require.NoError(t, reloaded.Load())
	assert.Equal(t, 2, reloaded.Len())
}

func TestRunDeclinedConfirmationAbandonsSession(t *testing.T) {
	s := newTestStore(t)

	// Delete one entry and edit another, then answer "n" at the confirmation
	_, out := runCleaner(t, s, []string{"d", ",fuel", "", "n"})

	assert.Equal(t, 3, s.Len())
	category, _ := s.Get("SHELL")
	assert.Equal(t, "Gas", category, "edits are discarded with the session")
	assert.Contains(t, out.String(), "No changes were made")
}

func TestRunSkipJumpsToConfirmation(t *testing.T) {
	s := newTestStore(t)

	scripted, _ := runCleaner(t, s, []string{"d", "s", "y"})

	// Only two entry prompts plus the confirmation were issued
	assert.Len(t, scripted.Prompts, 3)
	assert.Equal(t, 2, s.Len())
}

func TestRunRefusesDuplicateRename(t *testing.T) {
	s := newTestStore(t)

	_, out := runCleaner(t, s, []string{"shell,", "", ""})

	assert.Contains(t, out.String(), "Duplicate name detected: SHELL")
	category, ok := s.Get("ALDI")
	assert.True(t, ok)
	assert.Equal(t, "Groceries", category)
}

func TestRunEmptyStore(t *testing.T) {
	s := store.NewCategoryStore(filepath.Join(t.TempDir(), "Categories.csv"), &logging.MockLogger{})
	require.NoError(t, s.Load())

	scripted, out := runCleaner(t, s, nil)

	assert.Empty(t, scripted.Prompts)
	assert.Contains(t, out.String(), "nothing to clean")
}
