package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cropall/internal/config"
	"cropall/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var input string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show crops recorded in the history database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("history is disabled (history.enabled = false)")
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return err
			}
			defer store.Close()

			var entries []history.Entry
			if strings.TrimSpace(input) != "" {
				path, err := config.ExpandPath(input)
				if err != nil {
					return fmt.Errorf("resolve input path: %w", err)
				}
				entries, err = store.ForInput(cmd.Context(), path)
				if err != nil {
					return err
				}
			} else {
				entries, err = store.List(cmd.Context(), limit)
				if err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No crops recorded")
				return nil
			}
			fmt.Fprintln(out, renderHistoryTable(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of entries to show (0 for all)")
	cmd.Flags().StringVar(&input, "input", "", "Only show crops of this source image")
	return cmd
}

func renderHistoryTable(entries []history.Entry) string {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.ID),
			e.CreatedAt.Local().Format(time.DateTime),
			shortSession(e.SessionID),
			e.InputPath,
			e.OutputPath,
			e.Rect.String(),
			fmt.Sprintf("%dx%d", e.SourceWidth, e.SourceHeight),
		})
	}
	return renderTable(
		[]string{"ID", "When", "Session", "Input", "Output", "Crop", "Source"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight},
	)
}

func shortSession(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
