package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/youruser/cardgen/internal/cards"
	"github.com/youruser/cardgen/internal/generate"
	"github.com/youruser/cardgen/internal/util"
)

var generateCmd = &cobra.Command{
	Use:   "generate [prompt...]",
	Short: "Generate a card image and stats from a prompt",
	Long: `Generate sends the prompt to a generation endpoint (or the built-in
generator when --endpoint is empty), merges the returned metadata into the
default card and prints the result. With --out the card is also rendered.

Examples:
  cardctl generate an ancient fire dragon with sharp claws
  cardctl generate --endpoint http://localhost:8080/api/generate --out build a storm eagle`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint, _ := cmd.Flags().GetString("endpoint")
		imagesDir, _ := cmd.Flags().GetString("images")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		outDir, _ := cmd.Flags().GetString("out")

		var gen generate.Generator
		if endpoint != "" {
			gen = generate.NewClient(&http.Client{Timeout: timeout}, endpoint, slog.Default())
		} else {
			pool := generate.NewPool(imagesDir, "file://"+imagesDir)
			gen = generate.NewLocal(pool, generate.StdRNG{}, slog.Default())
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		res, err := gen.Generate(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}

		card := cards.Default().Merge(res.Metadata)
		out, err := json.MarshalIndent(struct {
			ImageURL       string     `json:"image_url"`
			GenerationTime float64    `json:"generation_time"`
			Card           cards.Card `json:"card"`
		}{res.ImageURL, res.GenerationTime, card}, "", "  ")
		if err != nil {
			return fmt.Errorf("error encoding result: %w", err)
		}
		fmt.Println(string(out))

		if outDir == "" {
			return nil
		}
		if err := util.EnsureDir(outDir); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
		src, err := loadImage(ctx, strings.TrimPrefix(res.ImageURL, "file://"))
		if err != nil {
			colorize.New(colorize.FgYellow).Fprintf(os.Stderr, "warning: %v; rendering without image\n", err)
		}
		path, err := writeCard(outDir, card, src)
		if err != nil {
			return err
		}
		colorize.New(colorize.FgGreen).Printf("✔ %s\n", path)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringP("endpoint", "e", "", "Generation endpoint URL (default: built-in generator)")
	generateCmd.Flags().String("images", "static/images", "Placeholder image directory for the built-in generator")
	generateCmd.Flags().Duration("timeout", 60*time.Second, "Generation request timeout")
	generateCmd.Flags().StringP("out", "o", "", "Render the generated card into this directory")
}
