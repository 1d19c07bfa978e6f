// Command geomap browses a directory of GeoJSON layers in the terminal
// and plots the selected ones to a bitmap image.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"geomap/internal/app"
	"geomap/internal/chart"
	"geomap/internal/config"
	"geomap/internal/geo"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "geomap:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		dataDir    string
		outputDir  string
		outputName string
		tick       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "geomap",
		Short: "Browse GeoJSON layers and plot them to an image",
		Long: `geomap scans a directory of .geojson files, lets you fuzzy-filter,
multi-select and color-tag them in a terminal UI, and renders the
selected layers to a bitmap chart.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dataDir != "" {
				cfg.Data.Dir = dataDir
			}
			if outputDir != "" {
				cfg.Output.Dir = outputDir
			}
			if outputName != "" {
				cfg.Output.Name = outputName
			}
			if tick > 0 {
				cfg.UI.Tick = tick
			}

			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return fmt.Errorf("stdout is not a terminal")
			}

			return run(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory of .geojson layers")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "directory for rendered images")
	cmd.Flags().StringVar(&outputName, "output", "", "output image name (.png, .jpg, .jpeg or .bmp)")
	cmd.Flags().DurationVar(&tick, "tick", 0, "render loop tick interval")

	return cmd
}

func run(ctx context.Context, cfg config.Config) error {
	files, err := geo.Scan(cfg.Data.Dir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := app.New(cfg, files).Run(ctx)
	if err != nil {
		return err
	}
	if res == nil {
		fmt.Println("No layers selected. Exited without generating a plot.")
		return nil
	}

	img := chart.Render(res.Layers, res.Options)
	if err := chart.Save(img, res.OutputPath); err != nil {
		return err
	}
	fmt.Printf("Plotted %d layers to %s\n", len(res.Layers), res.OutputPath)
	return nil
}
