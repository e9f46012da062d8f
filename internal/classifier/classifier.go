// Package classifier resolves raw merchant names to canonical dictionary
// entries and categories, learning new merchants from user decisions.
package classifier

import (
	"strings"

	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"
	"fjacquet/budget-csv/internal/normalize"
	"fjacquet/budget-csv/internal/prompt"
	"fjacquet/budget-csv/internal/store"
)

// Classifier matches normalized merchant names against the category store.
// On a miss it asks the prompter for a decision and records the answer,
// persisting the store after every mutation so an interrupted run loses at
// most the in-flight edit.
type Classifier struct {
	store    *store.CategoryStore
	prompter prompt.Prompter
	rules    []KeywordRule
	logger   logging.Logger
}

// New creates a Classifier. rules may be nil when no keyword file is configured.
func New(categoryStore *store.CategoryStore, prompter prompt.Prompter, rules []KeywordRule, logger logging.Logger) *Classifier {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Classifier{
		store:    categoryStore,
		prompter: prompter,
		rules:    rules,
		logger:   logger,
	}
}

// ResolveName normalizes rawName and returns the stored key it matches, or
// learns a new entry when nothing matches.
//
// A stored key matches when it appears as a case-insensitive substring of the
// normalized name. When several keys match, the longest wins; equal lengths
// resolve to the lexicographically smaller key, so resolution does not depend
// on iteration order.
func (c *Classifier) ResolveName(rawName string) (string, error) {
	cleaned := normalize.Clean(rawName)

	if key, ok := c.MatchName(cleaned); ok {
		return key, nil
	}

	// New merchant: let the user confirm or edit the normalized name.
	answer, err := c.prompter.RequestEdit("Edit name for:", cleaned)
	if err != nil {
		return "", err
	}

	name := cleaned
	if answer != "" {
		name = normalize.Clean(answer)
		if name == "" {
			name = cleaned
		}
	}
	if name == "" {
		return "", nil
	}

	category := models.CategoryUncategorized
	if hinted, ok := MatchKeyword(c.rules, name); ok {
		c.logger.WithFields(
			logging.Field{Key: logging.FieldName, Value: name},
			logging.Field{Key: logging.FieldCategory, Value: hinted},
		).Debug("Keyword rule matched new merchant")
		category = hinted
	}

	c.store.Upsert(name, category)
	c.persist()
	return name, nil
}

// ResolveCategory returns the category for a canonical name, asking the user
// for one when the entry is still uncategorized. Already-categorized names
// never prompt.
func (c *Classifier) ResolveCategory(name string) (string, error) {
	current, known := c.store.Get(name)
	if known && current != models.CategoryUncategorized {
		return current, nil
	}

	answer, err := c.prompter.RequestEdit("Enter category for:", name)
	if err != nil {
		return "", err
	}
	if answer == "" {
		// Leave uncategorized; the user can supply it on a later run.
		return models.CategoryUncategorized, nil
	}

	category := models.Capitalize(answer)
	c.store.Upsert(name, category)
	c.persist()
	return category, nil
}

// MatchName returns the stored key contained in the normalized name, if any.
func (c *Classifier) MatchName(cleaned string) (string, bool) {
	upper := strings.ToUpper(cleaned)

	var best string
	found := false
	for _, key := range c.store.Names() {
		if key == "" || !strings.Contains(upper, strings.ToUpper(key)) {
			continue
		}
		if !found || len(key) > len(best) || (len(key) == len(best) && key < best) {
			best = key
			found = true
		}
	}
	return best, found
}

// persist writes the store through after a mutation. A failed write is
// reported but does not abort the session; the in-memory state stands and
// will be retried on the next save.
func (c *Classifier) persist() {
	if err := c.store.Save(); err != nil {
		c.logger.WithError(err).Warn("Failed to save category table, continuing with unsaved changes")
	}
}
