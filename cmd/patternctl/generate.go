package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/prettyknit/pattern-service/internal/app"
	"github.com/prettyknit/pattern-service/internal/config"
	"github.com/prettyknit/pattern-service/internal/document"
	"github.com/prettyknit/pattern-service/internal/services/pattern"
)

type generateOptions struct {
	title       string
	contentPath string
	imagePath   string
	languages   []string
	outDir      string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Translate a pattern and write the PDF archive",
		Example: `  patternctl generate --title "Sibelle" --content sibelle.txt --image cover.jpg
  patternctl generate --title "Sibelle" --content sibelle.txt --lang en,de --out dist`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.title, "title", "", "pattern title (required)")
	f.StringVar(&opts.contentPath, "content", "", "file holding the Swedish pattern text (required)")
	f.StringVar(&opts.imagePath, "image", "", "cover image (PNG, JPEG or GIF)")
	f.StringSliceVar(&opts.languages, "lang", nil, "target language codes, default all")
	f.StringVar(&opts.outDir, "out", ".", "directory the archive is written to")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	content, err := os.ReadFile(opts.contentPath)
	if err != nil {
		return fmt.Errorf("failed to read pattern: %w", err)
	}

	var img *document.Image
	if opts.imagePath != "" {
		data, err := os.ReadFile(opts.imagePath)
		if err != nil {
			return fmt.Errorf("failed to read image: %w", err)
		}
		if img, err = document.NewImage(data); err != nil {
			return err
		}
	}

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	archive, err := a.Service.GenerateArchive(ctx, pattern.Pattern{
		Title:     opts.title,
		Content:   string(content),
		Image:     img,
		Languages: opts.languages,
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	target := filepath.Join(opts.outDir, archive.Filename)
	if err := os.WriteFile(target, archive.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write archive: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, name := range archive.Files {
		fmt.Fprintf(out, "  %s\n", name)
	}
	fmt.Fprintf(out, "wrote %s (%d documents)\n", target, len(archive.Files))
	return nil
}
