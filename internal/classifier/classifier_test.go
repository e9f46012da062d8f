package classifier

import (
	"path/filepath"
	"testing"

	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"
	"fjacquet/budget-csv/internal/prompt"
	"fjacquet/budget-csv/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T, scripted *prompt.ScriptedPrompter) (*Classifier, *store.CategoryStore) {
	t.Helper()
	s := store.NewCategoryStore(filepath.Join(t.TempDir(), "Categories.csv"), &logging.MockLogger{})
	require.NoError(t, s.Load())
	return New(s, scripted, nil, &logging.MockLogger{}), s
}

func TestResolveNameKnownSubstringNoPrompt(t *testing.T) {
	scripted := &prompt.ScriptedPrompter{}
	c, s := newTestClassifier(t, scripted)
	s.Upsert("STARBUCKS", "Coffee")

	name, err := c.ResolveName("STARBUCKS #4521 CHAPEL HILL NC")
	require.NoError(t, err)

	assert.Equal(t, "STARBUCKS", name)
	assert.Empty(t, scripted.Prompts, "known merchant must not prompt")
}

func TestResolveNameMatchIsCaseInsensitive(t *testing.T) {
	c, s := newTestClassifier(t, &prompt.ScriptedPrompter{})
	s.Upsert("Trader Joe's", "Groceries")

	name, err := c.ResolveName("TRADER JOE'S #055")
	require.NoError(t, err)
	assert.Equal(t, "Trader Joe's", name, "stored key returned unchanged")
}

func TestResolveNameLongestMatchWins(t *testing.T) {
	c, s := newTestClassifier(t, &prompt.ScriptedPrompter{})
	s.Upsert("JOE'S", "Dining")
	s.Upsert("JOE'S PIZZA", "Dining")

	name, err := c.ResolveName("TST* Joe's Pizza #1234")
	require.NoError(t, err)
	assert.Equal(t, "JOE'S PIZZA", name)
}

func TestResolveNameTieBreaksLexicographically(t *testing.T) {
	c, s := newTestClassifier(t, &prompt.ScriptedPrompter{})
	s.Upsert("CAFE", "Dining")
	s.Upsert("BODE", "Dining")

	name, err := c.ResolveName("BODE CAFE DURHAM")
	require.NoError(t, err)
	assert.Equal(t, "BODE", name)
}

func TestResolveNameNewMerchantKeepDefault(t *testing.T) {
	scripted := &prompt.ScriptedPrompter{} // empty answer keeps the cleaned name
	c, s := newTestClassifier(t, scripted)

	name, err := c.ResolveName("TST* Blue Door Cafe #99")
	require.NoError(t, err)

	assert.Equal(t, "BLUE DOOR CAFE", name)
	category, ok := s.Get("BLUE DOOR CAFE")
	assert.True(t, ok)
	assert.Equal(t, models.CategoryUncategorized, category)
	assert.Len(t, scripted.Prompts, 1)
}

func TestResolveNameNewMerchantEdited(t *testing.T) {
	scripted := &prompt.ScriptedPrompter{Answers: []string{"blue door"}}
	c, s := newTestClassifier(t, scripted)

	name, err := c.ResolveName("BLUE DOOR CAFE LLC 12345")
	require.NoError(t, err)

	// The edited answer itself passes through normalization
	assert.Equal(t, "BLUE DOOR", name)
	_, ok := s.Get("BLUE DOOR")
	assert.True(t, ok)
}

func TestResolveNamePersistsNewEntry(t *testing.T) {
	scripted := &prompt.ScriptedPrompter{}
	c, s := newTestClassifier(t, scripted)

	_, err := c.ResolveName("HARRIS TEETER #123")
	require.NoError(t, err)

	// Write-through: a fresh store sees the new entry immediately
	reloaded := store.NewCategoryStore(s.Path(), &logging.MockLogger{})
	require.NoError(t, reloaded.Load())
	_, ok := reloaded.Get("HARRIS TEETER")
	assert.True(t, ok)
}

func TestResolveNameKeywordRuleSeedsCategory(t *testing.T) {
	s := store.NewCategoryStore(filepath.Join(t.TempDir(), "Categories.csv"), &logging.MockLogger{})
	require.NoError(t, s.Load())
	rules := []KeywordRule{{Category: "Groceries", Keywords: []string{"TEETER", "ALDI"}}}
	c := New(s, &prompt.ScriptedPrompter{}, rules, &logging.MockLogger{})

	_, err := c.ResolveName("HARRIS TEETER #123")
	require.NoError(t, err)

	category, ok := s.Get("HARRIS TEETER")
	assert.True(t, ok)
	assert.Equal(t, "Groceries", category)
}

func TestResolveCategoryPromptsOnceForUncategorized(t *testing.T) {
	scripted := &prompt.ScriptedPrompter{Answers: []string{"dining OUT"}}
	c, s := newTestClassifier(t, scripted)
	s.Upsert("ZAXBY'S", models.CategoryUncategorized)

	category, err := c.ResolveCategory("ZAXBY'S")
	require.NoError(t, err)

	assert.Equal(t, "Dining out", category)
	stored, _ := s.Get("ZAXBY'S")
	assert.Equal(t, "Dining out", stored)
	assert.Len(t, scripted.Prompts, 1)

	// Second resolution returns the stored category without prompting
	category, err = c.ResolveCategory("ZAXBY'S")
	require.NoError(t, err)
	assert.Equal(t, "Dining out", category)
	assert.Len(t, scripted.Prompts, 1)
}

func TestResolveCategoryEmptyAnswerLeavesUncategorized(t *testing.T) {
	scripted := &prompt.ScriptedPrompter{}
	c, s := newTestClassifier(t, scripted)
	s.Upsert("MYSTERY SHOP", models.CategoryUncategorized)

	category, err := c.ResolveCategory("MYSTERY SHOP")
	require.NoError(t, err)

	assert.Equal(t, models.CategoryUncategorized, category)
	stored, _ := s.Get("MYSTERY SHOP")
	assert.Equal(t, models.CategoryUncategorized, stored)
}

func TestResolveCategoryCategorizedNeverPrompts(t *testing.T) {
	scripted := &prompt.ScriptedPrompter{Answers: []string{"should not be used"}}
	c, s := newTestClassifier(t, scripted)
	s.Upsert("DUKE ENERGY", "Utilities")

	category, err := c.ResolveCategory("DUKE ENERGY")
	require.NoError(t, err)

	assert.Equal(t, "Utilities", category)
	assert.Empty(t, scripted.Prompts)
}
