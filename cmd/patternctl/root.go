package main

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "patternctl",
		Short: "Translate knitting patterns into PDF bundles",
		Long: `patternctl runs the pattern pipeline locally: classify pattern lines,
translate them into the published languages and write the PDF archive.

Configuration is read from the environment (and a .env file), the same
way the server reads it. Without OPENAI_API_KEY the glossary dictionary
is used for translation.`,
		Version:      version,
		SilenceUsage: true,
	}

	root.AddCommand(
		newLanguagesCmd(),
		newClassifyCmd(),
		newGenerateCmd(),
	)
	return root
}
