package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var flags cropFlags

	ctx := newCommandContext(&configFlag, &logLevelFlag)

	rootCmd := &cobra.Command{
		Use:           "cropall [input_folder]",
		Short:         "Crop every image in a folder",
		Long:          "cropall walks a folder of images and writes a cropped copy of each one into an output folder.\nWithout input_folder a directory picker is shown.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCrop(cmd, ctx, args, &flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override logging.level (debug, info, warn, error)")

	rootCmd.Flags().BoolVar(&flags.auto, "auto", false, "Crop without the terminal editor, using detected borders")
	rootCmd.Flags().StringVar(&flags.output, "output", "", "Output folder name or path (overrides cropall.output_folder)")
	rootCmd.Flags().StringVar(&flags.suffix, "suffix", "", "Append this suffix to output names (enables cropall.append_suffix)")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Walk the session without writing files")
	rootCmd.Flags().BoolVar(&flags.reuse, "reuse", false, "Start each image from its last recorded crop")

	rootCmd.AddCommand(newScanCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))
	rootCmd.AddCommand(newDoctorCommand(ctx))

	return rootCmd
}
