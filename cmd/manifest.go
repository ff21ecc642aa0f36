package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/folio/internal/domain/manifest"
	"github.com/okian/folio/pkg/logger"
)

func newManifestCommand(state *cliState) *cobra.Command {
	var template, out, author string
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Render the web-app manifest with the author name",
		Example: `  folio manifest --template manifest.template.json --out public/manifest.json
  folio manifest --template manifest.template.json --out manifest.json --author "Jane Doe"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if author == "" {
				author = state.cfg.AuthorName
			}
			tpl, err := os.ReadFile(template)
			if err != nil {
				return fmt.Errorf("read template: %w", err)
			}
			rendered, err := manifest.Render(tpl, author)
			if err != nil {
				return fmt.Errorf("render %s: %w", template, err)
			}
			if err := os.WriteFile(out, rendered, 0o644); err != nil {
				return fmt.Errorf("write manifest: %w", err)
			}
			state.log.Info(cmd.Context(), "manifest generated", logger.String("out", out))
			return nil
		},
	}
	cmd.Flags().StringVar(&template, "template", "", "manifest template containing "+manifest.Placeholder)
	cmd.Flags().StringVar(&out, "out", "", "output path for the rendered manifest")
	cmd.Flags().StringVar(&author, "author", "", "author name (default from config author_name)")
	_ = cmd.MarkFlagRequired("template")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}
