package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/folio/pkg/logger"
)

func newSnapshotCommand(state *cliState) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Build the page once and print it as JSON",
		Long: `Build the page once from the configured sources and write the Page JSON
to stdout, or to --out. Source failures yield empty sections, so the command
only fails when the output cannot be written. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if out == "" {
				return runSnapshot(cmd.Context(), state, cmd.OutOrStdout())
			}
			f, err := createSnapshotFile(out)
			if err != nil {
				return err
			}
			if err := runSnapshot(cmd.Context(), state, f); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", out, err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the snapshot to this file instead of stdout")
	return cmd
}

// runSnapshot builds exactly one page, bypassing the page cache so the
// output never comes from another process's build.
func runSnapshot(ctx context.Context, state *cliState, w io.Writer) error {
	cfg := *state.cfg
	cfg.RevalidateSeconds = 0
	cfg.RedisAddr = ""
	svc := newPageService(ctx, &cfg, state.log)

	page := svc.Page(ctx)
	state.log.Info(ctx, "snapshot built",
		logger.String("buildId", page.BuildID),
		logger.Int("pinnedRepos", len(page.View.PinnedRepos)),
		logger.Int("skills", len(page.View.Skills)))

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(page); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// snapshotFile buffers writes; Close reports flush and close failures.
type snapshotFile struct {
	*bufio.Writer
	f *os.File
}

func createSnapshotFile(path string) (*snapshotFile, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return &snapshotFile{Writer: bufio.NewWriter(f), f: f}, nil
}

func (s *snapshotFile) Close() error {
	return errors.Join(s.Flush(), s.f.Close())
}
