package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cardctl",
	Short: "Compose and export trading card images",
	Long: `cardctl renders trading cards to 720x1000 JPEG images from card files,
runs prompts through an image generator and prints share QR codes.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")
	RootCmd.AddCommand(renderCmd, generateCmd, qrCmd)
}
