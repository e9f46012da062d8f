package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/budget-csv/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadKeywordRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	content := `- category: Groceries
  keywords: ["teeter", "aldi", "food lion"]
- category: Gas
  keywords: ["shell", "exxon"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	rules, err := LoadKeywordRules(path, &logging.MockLogger{})
	require.NoError(t, err)

	require.Len(t, rules, 2)
	assert.Equal(t, "Groceries", rules[0].Category)
	assert.Equal(t, []string{"teeter", "aldi", "food lion"}, rules[0].Keywords)
}

func TestLoadKeywordRulesMissingFile(t *testing.T) {
	rules, err := LoadKeywordRules(filepath.Join(t.TempDir(), "missing.yaml"), &logging.MockLogger{})
	assert.NoError(t, err)
	assert.Nil(t, rules)
}

func TestLoadKeywordRulesMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not valid: yaml: here}"), 0600))

	_, err := LoadKeywordRules(path, &logging.MockLogger{})
	assert.Error(t, err)
}

func TestMatchKeyword(t *testing.T) {
	rules := []KeywordRule{
		{Category: "Groceries", Keywords: []string{"teeter", "aldi"}},
		{Category: "Gas", Keywords: []string{"shell"}},
	}

	category, ok := MatchKeyword(rules, "HARRIS TEETER")
	assert.True(t, ok)
	assert.Equal(t, "Groceries", category)

	category, ok = MatchKeyword(rules, "SHELL OIL")
	assert.True(t, ok)
	assert.Equal(t, "Gas", category)

	_, ok = MatchKeyword(rules, "NETFLIX")
	assert.False(t, ok)

	_, ok = MatchKeyword(nil, "ANYTHING")
	assert.False(t, ok)
}
