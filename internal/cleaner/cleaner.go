// Package cleaner implements interactive maintenance of the category
// dictionary: entries can be renamed, recategorized or deleted one by one,
// with deletions confirmed in bulk before anything is written back.
package cleaner

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/budget-csv/internal/logging"
	"fjacquet/budget-csv/internal/models"
	"fjacquet/budget-csv/internal/prompt"
	"fjacquet/budget-csv/internal/store"
)

// editOp is one staged change to an entry. Nothing touches the store
// until the whole editing session is confirmed.
type editOp struct {
	oldName  string
	newName  string
	category string
}

// Cleaner walks the user through the category dictionary entry by entry.
type Cleaner struct {
	store    *store.CategoryStore
	prompter prompt.Prompter
	logger   logging.Logger
	out      io.Writer
}

// New creates a Cleaner. out receives the informational session text and
// defaults to stdout.
func New(s *store.CategoryStore, p prompt.Prompter, logger logging.Logger, out io.Writer) *Cleaner {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if out == nil {
		out = os.Stdout
	}
	return &Cleaner{store: s, prompter: p, logger: logger, out: out}
}

// Run edits the dictionary interactively. Per entry: Enter keeps it, "d"
// marks it for deletion, "s" skips ahead to the deletion confirmation and
// "name,category" rewrites either field (a blank side keeps that field).
// Declining the deletion confirmation abandons the whole session.
func (c *Cleaner) Run() error {
	if c.store.Len() == 0 {
		fmt.Fprintln(c.out, "Category dictionary is empty, nothing to clean.")
		return nil
	}

	fmt.Fprintln(c.out, "Edit transaction names and categories.")
	fmt.Fprintln(c.out, "Press Enter to keep, 'd' to delete, or 's' to skip to the end.")
	fmt.Fprintln(c.out, "Editing format: name,category (a blank side keeps that value).")

	updated := make(map[string]string, c.store.Len())
	for _, name := range c.store.Names() {
		category, _ := c.store.Get(name)
		updated[name] = category
	}

	var (
		edits    []editOp
		toRemove = map[string]bool{}
		removals []string
	)

	for _, name := range c.store.Names() {
		if toRemove[name] {
			continue
		}
		category := updated[name]

		answer, err := c.prompter.RequestEdit("Edit entry:", name+", "+category)
		if err != nil {
			return fmt.Errorf("error reading edit input: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			continue
		case "s":
			fmt.Fprintln(c.out, "Skipping to deletion confirmation...")
		case "d":
			toRemove[name] = true
			removals = append(removals, name)
			continue
		default:
			if op, ok := c.stageEdit(name, category, answer, updated, toRemove); ok {
				edits = append(edits, op)
			}
			continue
		}
		break
	}

	if len(removals) > 0 {
		confirmed, err := c.confirmRemovals(removals)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Fprintln(c.out, "No changes were made to the categories.")
			return nil
		}
	}

	c.apply(removals, edits)
	if err := c.store.Save(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Categories file has been cleaned and updated.")
	return nil
}

// stageEdit parses a "name,category" answer against the staged state.
// A rename that collides with another surviving entry is refused.
func (c *Cleaner) stageEdit(name, category, answer string, updated map[string]string, toRemove map[string]bool) (editOp, bool) {
	newName, newCategory := name, category
	parts := strings.SplitN(answer, ",", 2)
	if trimmed := strings.TrimSpace(parts[0]); trimmed != "" {
		newName = strings.ToUpper(trimmed)
	}
	if len(parts) > 1 {
		if trimmed := strings.TrimSpace(parts[1]); trimmed != "" {
			newCategory = models.Capitalize(trimmed)
		}
	}

	if _, exists := updated[newName]; exists && newName != name && !toRemove[newName] {
		fmt.Fprintf(c.out, "Duplicate name detected: %s. Retaining original entry.\n", newName)
		c.logger.WithField(logging.FieldName, newName).Warn("Refusing rename onto existing entry")
		return editOp{}, false
	}

	if newName != name {
		delete(updated, name)
	}
	updated[newName] = newCategory
	return editOp{oldName: name, newName: newName, category: newCategory}, true
}

func (c *Cleaner) confirmRemovals(removals []string) (bool, error) {
	fmt.Fprintln(c.out, "The following entries will be permanently removed:")
	for _, name := range removals {
		category, _ := c.store.Get(name)
		fmt.Fprintf(c.out, "- %s, %s\n", name, category)
	}

	answer, err := c.prompter.RequestEdit("Are you sure you want to proceed? (y/n)", "n")
	if err != nil {
		return false, fmt.Errorf("error reading confirmation input: %w", err)
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y"), nil
}

// apply commits the staged session to the store: removals first so
// renames can reuse freed names, then edits in the order they were made.
func (c *Cleaner) apply(removals []string, edits []editOp) {
	for _, name := range removals {
		c.store.Remove(name)
	}
	for _, op := range edits {
		if op.newName != op.oldName {
			if err := c.store.Rename(op.oldName, op.newName); err != nil {
				c.logger.WithError(err).WithField(logging.FieldName, op.oldName).Warn("Skipping conflicting rename")
				continue
			}
		}
		c.store.Upsert(op.newName, op.category)
	}
}
