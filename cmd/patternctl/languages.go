package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/prettyknit/pattern-service/internal/language"
)

func newLanguagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the languages a pattern can be published in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := language.Default()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tENGLISH\tSOURCE")
			for _, lang := range registry.All() {
				source := ""
				if registry.IsSource(lang.Code) {
					source = "yes"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", lang.Code, lang.DisplayName, lang.EnglishName, source)
			}
			return w.Flush()
		},
	}
}
