package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cropall/internal/config"
	"cropall/internal/naming"
	"cropall/internal/scanner"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [folder]",
		Short: "List the images a session would visit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			dir := cfg.Cropall.InputFolder
			if len(args) > 0 {
				dir = args[0]
			}
			if strings.TrimSpace(dir) == "" {
				return errors.New("scan: no folder given and cropall.input_folder is empty")
			}
			dir, err = config.ExpandPath(dir)
			if err != nil {
				return fmt.Errorf("resolve folder: %w", err)
			}

			images, err := scanner.Require(cmd.Context(), logger, dir, cfg.Cropall.ImageExtensions)
			if err != nil {
				return err
			}

			outputDir := naming.OutputFolder(dir, cfg.Cropall.OutputFolder)
			rows := make([][]string, 0, len(images))
			for i, name := range images {
				outName := naming.OutputFilename(name, cfg.Cropall.AppendSuffix, cfg.Cropall.OutputSuffix)
				_, statErr := os.Stat(filepath.Join(outputDir, outName))
				rows = append(rows, []string{fmt.Sprintf("%d", i+1), name, outName, yesNo(statErr == nil)})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable([]string{"#", "Image", "Output", "Exists"}, rows, []columnAlignment{alignRight}))
			fmt.Fprintf(out, "%d images in %s, output to %s\n", len(images), dir, outputDir)
			return nil
		},
	}
}
