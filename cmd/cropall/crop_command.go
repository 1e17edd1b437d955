package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cropall/internal/config"
	"cropall/internal/cropper"
	"cropall/internal/history"
	"cropall/internal/logging"
	"cropall/internal/naming"
	"cropall/internal/preflight"
	"cropall/internal/scanner"
	"cropall/internal/session"
	"cropall/internal/ui"
)

type cropFlags struct {
	auto   bool
	output string
	suffix string
	dryRun bool
	reuse  bool
}

// applyCropFlags layers command-line overrides onto cfg for this run only.
func applyCropFlags(cmd *cobra.Command, cfg *config.Config, flags *cropFlags) {
	if cmd.Flags().Changed("output") && strings.TrimSpace(flags.output) != "" {
		cfg.Cropall.OutputFolder = strings.TrimSpace(flags.output)
	}
	if cmd.Flags().Changed("suffix") && strings.TrimSpace(flags.suffix) != "" {
		cfg.Cropall.AppendSuffix = true
		cfg.Cropall.OutputSuffix = strings.TrimSpace(flags.suffix)
		cfg.Cropper.ConfirmOverwrite = false
	}
}

func runCrop(cmd *cobra.Command, ctx *commandContext, args []string, flags *cropFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	runCfg := *cfg
	applyCropFlags(cmd, &runCfg, flags)

	interactive := !flags.auto && isTerminal(cmd)
	console := logging.NewDeferred(cmd.ErrOrStderr())
	logger, err := ctx.logger(console)
	if err != nil {
		return err
	}
	base := cmd.Context()

	inputDir, err := resolveInputFolder(base, &runCfg, args, interactive)
	if err != nil {
		return err
	}
	if inputDir == "" {
		return session.ErrNoDirectory
	}

	images, err := scanner.Require(base, logger, inputDir, runCfg.Cropall.ImageExtensions)
	if err != nil {
		return err
	}

	outputDir := naming.OutputFolder(inputDir, runCfg.Cropall.OutputFolder)
	if err := preflight.Err(preflight.RunAll(inputDir, outputDir)); err != nil {
		return err
	}

	aspect, err := cropper.ParseAspect(runCfg.Cropper.AspectRatio)
	if err != nil {
		return fmt.Errorf("cropper.aspect_ratio: %w", err)
	}

	var confirmer cropper.Confirmer
	if interactive {
		confirmer = ui.Confirmer{}
	}
	crop := cropper.New(cropper.Options{
		JPEGQuality:      runCfg.JPEGQualityOrDefault(),
		ConfirmOverwrite: runCfg.Cropper.ConfirmOverwrite,
		DryRun:           flags.dryRun,
	}, logger, confirmer)

	opts := session.Options{
		InputDir:        inputDir,
		OutputDir:       outputDir,
		Images:          images,
		AppendSuffix:    runCfg.Cropall.AppendSuffix,
		Suffix:          runCfg.Cropall.OutputSuffix,
		Cropper:         crop,
		Logger:          logger,
		Detect:          runCfg.Cropper.AutoDetect || flags.auto,
		BorderThreshold: runCfg.Cropper.BorderThreshold,
		Inset:           runCfg.InsetFraction(),
		Aspect:          aspect,
		ReusePrevious:   flags.reuse,
		Selector:        session.AutoSelector{},
	}

	if runCfg.History.Enabled && !flags.dryRun {
		store, err := history.Open(runCfg.History.Path)
		if err != nil {
			logger.Warn("crop history unavailable", logging.Error(err))
		} else {
			defer store.Close()
			opts.History = store
		}
	}

	if interactive {
		opts.Selector = ui.NewSelector(ui.CropSettings{
			StepFraction:    runCfg.StepFraction(),
			BorderThreshold: runCfg.Cropper.BorderThreshold,
			Inset:           runCfg.InsetFraction(),
		})
		console.Hold()
	}

	summary, runErr := session.Run(base, opts)
	if err := console.Release(); err != nil {
		return fmt.Errorf("flush log output: %w", err)
	}
	if runErr != nil {
		return runErr
	}

	out := cmd.OutOrStdout()
	writeSummary(out, summary, flags.dryRun)

	if !flags.dryRun {
		rememberSession(logger, ctx.configPath, inputDir)
	}
	return nil
}

// resolveInputFolder returns the folder argument, or asks for one in the
// terminal. Without a terminal the result is empty.
func resolveInputFolder(ctx context.Context, cfg *config.Config, args []string, interactive bool) (string, error) {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		dir, err := config.ExpandPath(strings.TrimSpace(args[0]))
		if err != nil {
			return "", fmt.Errorf("resolve input folder: %w", err)
		}
		return dir, nil
	}
	if !interactive {
		return "", nil
	}
	dir, err := ui.PickDirectory(ctx, cfg.Cropall.InputFolder)
	if err != nil {
		return "", fmt.Errorf("pick input folder: %w", err)
	}
	return dir, nil
}

// rememberSession clears first_run and stores the input folder in the user
// config file. Values overridden by flags are not persisted.
func rememberSession(logger *slog.Logger, path, inputDir string) {
	if path == "" {
		return
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		logger.Warn("config not updated", logging.Error(err))
		return
	}
	cfg.RememberSession(inputDir)
	if err := cfg.Save(path); err != nil {
		logger.Warn("config not updated", logging.Error(err))
		return
	}
	logger.Debug("config updated", logging.String("path", path))
}

func writeSummary(out io.Writer, summary session.Summary, dryRun bool) {
	rows := make([][]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		crop := "-"
		if r.Status == session.StatusCropped {
			crop = r.Rect.String()
		}
		detail := filepath.Base(r.Output)
		if r.Err != nil {
			detail = r.Err.Error()
		}
		rows = append(rows, []string{r.Name, string(r.Status), crop, detail})
	}
	if len(rows) > 0 {
		fmt.Fprintln(out, renderTable([]string{"Image", "Status", "Crop", "Output"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
	}

	line := fmt.Sprintf("Cropped %d, skipped %d, failed %d in %s", summary.Cropped, summary.Skipped, summary.Failed, summary.Elapsed.Round(10*time.Millisecond))
	if summary.Quit {
		line += " (stopped early)"
	}
	if dryRun {
		line += " (dry run, nothing written)"
	}
	fmt.Fprintln(out, line)
}
