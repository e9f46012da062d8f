package classifier

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/budget-csv/internal/logging"

	"gopkg.in/yaml.v3"
)

// KeywordRule maps substring keywords to a category. Rules are an optional
// pre-seeded shortcut consulted before prompting for a brand-new merchant.
type KeywordRule struct {
	Category string   `yaml:"category"`
	Keywords []string `yaml:"keywords"`
}

// LoadKeywordRules reads keyword rules from a YAML file. A missing file is
// not an error; it simply disables the keyword shortcut.
func LoadKeywordRules(path string, logger logging.Logger) ([]KeywordRule, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.WithField(logging.FieldFile, path).Debug("Keyword rules file not found, skipping")
			return nil, nil
		}
		return nil, fmt.Errorf("error reading keyword rules: %w", err)
	}

	var rules []KeywordRule
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("error parsing keyword rules: %w", err)
	}

	logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: path},
		logging.Field{Key: logging.FieldCount, Value: len(rules)},
	).Debug("Loaded keyword rules")
	return rules, nil
}

// MatchKeyword returns the category of the first rule whose keyword appears
// in the name, case-insensitively. Rules are checked in file order.
func MatchKeyword(rules []KeywordRule, name string) (string, bool) {
	upper := strings.ToUpper(name)
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if keyword == "" {
				continue
			}
			if strings.Contains(upper, strings.ToUpper(keyword)) {
				return rule.Category, true
			}
		}
	}
	return "", false
}
