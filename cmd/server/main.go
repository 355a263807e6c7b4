// server renders one viewport on a local worker pool and serves the result
// progressively: connected browsers watch tiles appear over a websocket
// stream, and /image.png returns the finished frame.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/deepzoom/mandel"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run: %+v", err)
	}
}

func run() error {
	addr := flag.String("addr", ":8080", "http listen address")
	width := flag.Int("width", 1920, "image width")
	height := flag.Int("height", 1080, "image height")
	maxIter := flag.Int("iter", 1000, "iteration cap")
	tile := flag.Int("tile", 64, "tile edge in pixels")
	workers := flag.Int("workers", 4, "parallel tile workers")
	xmin := flag.String("xmin", "", "left bound, decimal string (all four required together)")
	xmax := flag.String("xmax", "", "right bound")
	ymin := flag.String("ymin", "", "bottom bound")
	ymax := flag.String("ymax", "", "top bound")
	flag.Parse()

	vp, err := viewport(*xmin, *xmax, *ymin, *ymax, *width, *height)
	if err != nil {
		return err
	}

	scheduler := newTileScheduler(vp, *maxIter, *tile)
	for i := 0; i < *workers; i++ {
		go scheduler.render()
	}

	srv := webServer(scheduler, *addr)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// viewport uses SeahorseValley unless explicit bounds are given.
func viewport(xmin, xmax, ymin, ymax string, width, height int) (mandel.Viewport, error) {
	if xmin == "" && xmax == "" && ymin == "" && ymax == "" {
		return mandel.ViewportFromRegion(mandel.SeahorseValley, width, height)
	}
	return mandel.NewViewport(xmin, xmax, ymin, ymax, width, height)
}
