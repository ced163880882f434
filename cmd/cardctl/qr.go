package main

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	imagepkg "github.com/youruser/cardgen/internal/image"
)

var qrCmd = &cobra.Command{
	Use:   "qr [text]",
	Short: "Write a QR code PNG, e.g. for a card download link",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		size, _ := cmd.Flags().GetInt("size")
		out, _ := cmd.Flags().GetString("out")

		b, err := imagepkg.GenerateQRPNG(args[0], size)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, b, 0o644); err != nil {
			return fmt.Errorf("error writing %s: %w", out, err)
		}
		colorize.New(colorize.FgGreen).Printf("✔ %s\n", out)
		return nil
	},
}

func init() {
	qrCmd.Flags().Int("size", imagepkg.DefaultQRSize, "Image size in pixels")
	qrCmd.Flags().StringP("out", "o", "qr.png", "Output file")
}
