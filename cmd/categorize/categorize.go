// Package categorize handles single-merchant categorization commands
package categorize

import (
	"fmt"

	"fjacquet/budget-csv/cmd/root"

	"github.com/spf13/cobra"
)

var merchantName string

// Cmd represents the categorize command
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Resolve one merchant name against the category dictionary",
	Long: `Categorize normalizes a raw merchant description, resolves it against
the dictionary (prompting for unknown merchants) and prints the canonical
name and category.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVarP(&merchantName, "name", "n", "", "Raw merchant description to resolve")
	if err := Cmd.MarkFlagRequired("name"); err != nil {
		panic(err)
	}
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	cl := root.C.GetClassifier()

	name, err := cl.ResolveName(merchantName)
	if err != nil {
		return err
	}
	category, err := cl.ResolveCategory(name)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s => %s (%s)\n", merchantName, name, category)
	return nil
}
