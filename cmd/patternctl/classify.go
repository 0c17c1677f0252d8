package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/prettyknit/pattern-service/internal/layout"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <file>",
		Short: "Show how each line of a pattern will be laid out",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read pattern: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "LINE\tKIND\tTEXT")
			for i, line := range layout.ClassifyAll(string(content)) {
				text := line.Text
				if line.Kind == layout.Labeled {
					text = fmt.Sprintf("[%s]%s", line.Label, line.Value)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", i+1, line.Kind, text)
			}
			return w.Flush()
		},
	}
}
