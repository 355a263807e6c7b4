// render is the offline front-end: it computes one viewport, colors the
// value buffer and saves it as a PNG file.
package main

import (
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/deepzoom/mandel"
	"github.com/deepzoom/mandel/palette"
)

// named shortcuts for the predefined landmark regions
var regions = map[string]mandel.Region{
	"home":       mandel.Home,
	"seahorse":   mandel.SeahorseValley,
	"elephant":   mandel.ElephantValley,
	"spiral":     mandel.SpiralMinibrot,
	"triple":     mandel.TripleSpiral,
	"dragon":     mandel.ValleyOfTheDragon,
	"minispiral": mandel.MinibrotInMiniSpiral,
}

var flags struct {
	region                 string
	xmin, xmax, ymin, ymax string
	zoom                   string
	width, height          int
	maxIter                int
	workers                int
	out                    string
	verbose                bool
}

func main() {
	cmd := &cobra.Command{
		Use:          "render",
		Short:        "Render a Mandelbrot viewport to a PNG file",
		Long:         "Render computes smoothed escape times for a viewport and writes the colored result as PNG.\nBounds are decimal strings, so arbitrarily deep zooms keep full precision.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run()
		},
	}

	cmd.Flags().StringVar(&flags.region, "region", "", "predefined region (home, seahorse, elephant, spiral, triple, dragon, minispiral, deep)")
	cmd.Flags().StringVar(&flags.xmin, "xmin", "-2.5", "left bound, decimal string")
	cmd.Flags().StringVar(&flags.xmax, "xmax", "1.0", "right bound, decimal string")
	cmd.Flags().StringVar(&flags.ymin, "ymin", "-1.5", "bottom bound, decimal string")
	cmd.Flags().StringVar(&flags.ymax, "ymax", "1.5", "top bound, decimal string")
	cmd.Flags().StringVar(&flags.zoom, "zoom", "", "shrink the view spans by this decimal factor about the center, e.g. 0.01")
	cmd.Flags().IntVar(&flags.width, "width", 1920, "output width in pixels")
	cmd.Flags().IntVar(&flags.height, "height", 1080, "output height in pixels")
	cmd.Flags().IntVar(&flags.maxIter, "iter", 1000, "iteration cap")
	cmd.Flags().IntVar(&flags.workers, "workers", 0, "worker goroutines, 0 = all CPUs")
	cmd.Flags().StringVar(&flags.out, "out", "mandel.png", "output file")
	cmd.Flags().BoolVar(&flags.verbose, "verbose", false, "engine debug logging to stderr")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	if flags.verbose {
		mandel.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	vp, err := viewport()
	if err != nil {
		return err
	}
	if flags.zoom != "" {
		if vp, err = vp.Zoomed(flags.zoom); err != nil {
			return err
		}
	}

	log.Printf("computing %dx%d, max %d iterations", vp.Width, vp.Height, flags.maxIter)
	start := time.Now()
	values, err := mandel.Compute(vp, flags.maxIter, mandel.WithWorkers(flags.workers))
	if err != nil {
		return fmt.Errorf("compute: %w", err)
	}
	log.Printf("computed in %v", time.Since(start))

	f, err := os.Create(flags.out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, palette.Image(values, vp.Width, vp.Height)); err != nil {
		return fmt.Errorf("encode PNG: %w", err)
	}
	log.Printf("saved to %q", flags.out)
	return nil
}

func viewport() (mandel.Viewport, error) {
	if flags.region == "deep" {
		return mandel.DeepSpiral(flags.width, flags.height)
	}
	if flags.region != "" {
		r, ok := regions[flags.region]
		if !ok {
			return mandel.Viewport{}, fmt.Errorf("unknown region %q", flags.region)
		}
		return mandel.ViewportFromRegion(r, flags.width, flags.height)
	}
	return mandel.NewViewport(flags.xmin, flags.xmax, flags.ymin, flags.ymax, flags.width, flags.height)
}
