package main

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/youruser/cardgen/internal/cards"
	imagepkg "github.com/youruser/cardgen/internal/image"
	"github.com/youruser/cardgen/internal/util"
)

var renderCmd = &cobra.Command{
	Use:   "render [card-file]",
	Short: "Render cards from a TOML, JSON or CSV file",
	Long: `Render draws every card in the file and writes one JPEG per card, named
after the card ("Fire Drake" becomes Fire_Drake_card.jpg).

CSV files need a header row with name, hp, type, rarity, flavor_text and
attacks columns; attacks are "Name:Damage:Description" entries separated by "/".

Examples:
  cardctl render dragon.toml
  cardctl render --image art/dragon.png --out build dragon.toml
  cardctl render --image https://example.com/wolf.jpg deck.csv`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imageRef, _ := cmd.Flags().GetString("image")
		outDir, _ := cmd.Flags().GetString("out")
		printText, _ := cmd.Flags().GetBool("text")

		list, err := cards.LoadCards(args[0])
		if err != nil {
			return err
		}

		var src image.Image
		if imageRef != "" {
			src, err = loadImage(cmd.Context(), imageRef)
			if err != nil {
				return fmt.Errorf("error loading image: %w", err)
			}
		}

		if err := util.EnsureDir(outDir); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}

		ok := colorize.New(colorize.FgGreen).SprintFunc()
		for _, c := range list {
			warnUnknown(c)
			path, err := writeCard(outDir, c, src)
			if err != nil {
				return err
			}
			fmt.Printf("%s %s\n", ok("✔"), path)
			if printText {
				fmt.Println(cards.ExportText(c))
				fmt.Println()
			}
		}
		return nil
	},
}

func init() {
	renderCmd.Flags().StringP("image", "i", "", "Background image: a file path, http(s) URL or data URL")
	renderCmd.Flags().StringP("out", "o", ".", "Output directory")
	renderCmd.Flags().Bool("text", false, "Also print a text summary of each card")
}

func writeCard(dir string, c cards.Card, src image.Image) (string, error) {
	path := filepath.Join(dir, cards.Filename(c.Name))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("error creating %s: %w", path, err)
	}
	if err := imagepkg.Export(f, c, src); err != nil {
		f.Close()
		return "", fmt.Errorf("error rendering %s: %w", c.Name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("error writing %s: %w", path, err)
	}
	return path, nil
}

// warnUnknown flags values the renderer will fall back on.
func warnUnknown(c cards.Card) {
	warn := colorize.New(colorize.FgYellow)
	if !cards.IsKnownType(c.Type) {
		warn.Fprintf(os.Stderr, "warning: %s: unknown type %q, badge shows %q (known: %s)\n",
			c.Name, c.Type, cards.UnknownTypeSymbol, strings.Join(cards.Types, ", "))
	}
	if !cards.IsKnownRarity(c.Rarity) {
		warn.Fprintf(os.Stderr, "warning: %s: unknown rarity %q, using Common colors (known: %s)\n",
			c.Name, c.Rarity, strings.Join(cards.Rarities, ", "))
	}
}

// loadImage reads a local file or downloads a URL.
func loadImage(ctx context.Context, ref string) (image.Image, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") || strings.HasPrefix(ref, "data:") {
		return imagepkg.DownloadImage(ctx, &http.Client{Timeout: 30 * time.Second}, ref)
	}
	b, err := os.ReadFile(ref)
	if err != nil {
		return nil, err
	}
	return imagepkg.DecodeImage(b)
}
