package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"cropall/internal/config"
	"cropall/internal/cropper"
	"cropall/internal/history"
	"cropall/internal/naming"
	"cropall/internal/preflight"
	"cropall/internal/scanner"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [folder]",
		Short: "Check configuration, folders, and history before a session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			problems := 0

			line := func(label string, kind statusKind, msg string) {
				if kind == statusError {
					problems++
				}
				fmt.Fprintln(out, renderStatusLine(label, kind, msg, colorize))
			}

			fmt.Fprintln(out, renderSectionHeader("Configuration", colorize))
			if ctx.configExists {
				line("Config file", statusOK, ctx.configPath)
			} else {
				line("Config file", statusWarn, ctx.configPath+" (missing, defaults in use)")
			}
			aspect, _ := cropper.ParseAspect(cfg.Cropper.AspectRatio)
			line("Aspect", statusOK, aspect.String())
			line("Append suffix", statusOK, fmt.Sprintf("%s (%s)", yesNo(cfg.Cropall.AppendSuffix), cfg.Cropall.OutputSuffix))
			line("Confirm", statusOK, yesNo(cfg.Cropper.ConfirmOverwrite))
			line("Terminal", statusOK, yesNo(isTerminal(cmd)))

			fmt.Fprintln(out)
			fmt.Fprintln(out, renderSectionHeader("Folders", colorize))
			folder := cfg.Cropall.InputFolder
			if len(args) > 0 {
				folder = args[0]
			}
			if strings.TrimSpace(folder) == "" {
				line("Input folder", statusWarn, "none given and cropall.input_folder is empty")
			} else {
				folder, err = config.ExpandPath(folder)
				if err != nil {
					return fmt.Errorf("resolve folder: %w", err)
				}
				for _, r := range preflight.RunAll(folder, naming.OutputFolder(folder, cfg.Cropall.OutputFolder)) {
					kind := statusOK
					if !r.Passed {
						kind = statusError
					}
					line(r.Name, kind, r.Detail)
				}
				logger, err := ctx.logger(cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				images, err := scanner.Scan(cmd.Context(), logger, folder, cfg.Cropall.ImageExtensions)
				switch {
				case err != nil:
					line("Images", statusError, err.Error())
				case len(images) == 0:
					line("Images", statusWarn, "no images match "+cfg.Cropall.ImageExtensions)
				default:
					line("Images", statusOK, fmt.Sprintf("%d found", len(images)))
				}
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, renderSectionHeader("History", colorize))
			if !cfg.History.Enabled {
				line("Database", statusWarn, "disabled")
			} else if store, err := history.Open(cfg.History.Path); err != nil {
				line("Database", statusError, err.Error())
			} else {
				entries, err := store.List(cmd.Context(), 0)
				_ = store.Close()
				if err != nil {
					line("Database", statusError, err.Error())
				} else {
					line("Database", statusOK, fmt.Sprintf("%s (%d crops)", cfg.History.Path, len(entries)))
				}
			}

			if problems > 0 {
				return errors.New("doctor found problems")
			}
			return nil
		},
	}
}
