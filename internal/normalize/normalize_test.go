package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain name", "Starbucks", "STARBUCKS"},
		{"tst prefix", "TST* Blue Door Cafe", "BLUE DOOR CAFE"},
		{"sq prefix", "SQ *COFFEE CART", "COFFEE CART"},
		{"sq prefix with space", "SQ * COFFEE CART", "COFFEE CART"},
		{"store code", "TARGET #791", "TARGET"},
		{"store code with space", "HARRIS TEETER # 20816", "HARRIS TEETER"},
		{"phone number hyphens", "DOMINO'S 919-678-1444", "DOMINO'S"},
		{"phone number bare", "UBER TRIP 3122422019", "UBER TRIP"},
		{"digit run", "AMZN MKTP 12345", "AMZN MKTP"},
		{"dot com", "NETFLIX.COM", "NETFLIX"},
		{"dot com lower", "netflix.com", "NETFLIX"},
		{"digits inside token kept", "7-ELEVEN 36412", "7-ELEVEN"},
		{"everything at once", "TST* Joe's Pizza #1234 919-555-1212 joespizza.com", "JOE'S PIZZA JOESPIZZA"},
		{"whitespace collapsed", "  WHOLE   FOODS  ", "WHOLE FOODS"},
		{"empty", "", ""},
		{"only noise", "#123 456-789-0123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}

func TestCleanIdempotent(t *testing.T) {
	inputs := []string{
		"TST* Joe's Pizza #1234 919-555-1212 joespizza.com",
		"SQ *COFFEE CART",
		"STARBUCKS #4521 CHAPEL HILL NC",
		"netflix.com",
		"WHOLE FOODS",
		"",
	}

	for _, input := range inputs {
		once := Clean(input)
		assert.Equal(t, once, Clean(once), "Clean should be idempotent for %q", input)
	}
}

func TestCleanOrderMatters(t *testing.T) {
	// The store code must be removed before digit stripping so "#1234" does not
	// leave a bare digit run behind, and prefix removal must happen while the
	// prefix is still at the start of the string.
	assert.Equal(t, "PIZZA", Clean("TST*PIZZA #1234"))
	assert.Equal(t, "SHOP", Clean("SHOP # 555"))
}
