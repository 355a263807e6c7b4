package main

import (
	"context"
	"image"
	"image/draw"
	"log"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/deepzoom/mandel"
	"github.com/deepzoom/mandel/palette"
)

// tileScheduler splits the image into tiles, hands them to render workers
// and assembles the results. Finished tiles are broadcast to every
// subscribed viewer so browsers see the image build up progressively.
type tileScheduler struct {
	vp      mandel.Viewport
	maxIter int
	img     *image.RGBA

	ctx       context.Context
	ctxCancel context.CancelFunc

	totalPixels    int
	finishedPixels int
	workers        int

	unstarted   map[image.Rectangle]struct{}
	inProcess   map[image.Rectangle]struct{}
	subscribers map[chan tileMsg]struct{}
	m           sync.Mutex
}

func newTileScheduler(vp mandel.Viewport, maxIter, tileSize int) *tileScheduler {
	img := image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))
	allTilesSlice := splitRectNoClip(img.Bounds(), tileSize, tileSize)
	allTiles := make(map[image.Rectangle]struct{}, len(allTilesSlice))
	for _, t := range allTilesSlice {
		allTiles[t] = struct{}{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &tileScheduler{
		vp:          vp,
		maxIter:     maxIter,
		img:         img,
		unstarted:   allTiles,
		inProcess:   make(map[image.Rectangle]struct{}),
		subscribers: make(map[chan tileMsg]struct{}),
		totalPixels: vp.Width * vp.Height,
		ctx:         ctx,
		ctxCancel:   cancel,
	}
}

func (ts *tileScheduler) popTile() (tile image.Rectangle, found bool) {
	ts.m.Lock()
	defer ts.m.Unlock()

	if len(ts.unstarted) > 0 {
		for tile = range ts.unstarted {
			break
		}
		delete(ts.unstarted, tile)
		ts.inProcess[tile] = struct{}{}
		return tile, true
	}
	return image.Rectangle{}, false
}

func (ts *tileScheduler) finished() float32 {
	ts.m.Lock()
	defer ts.m.Unlock()
	return float32(ts.finishedPixels) / float32(ts.totalPixels)
}

// tileFinished draws the rendered tile into the full image and pushes it to
// every subscriber. Slow subscribers miss frames rather than stalling the
// render; they still get the final image from the done snapshot.
func (ts *tileScheduler) tileFinished(tileImg *image.RGBA) {
	rect := tileImg.Bounds()

	ts.m.Lock()
	defer ts.m.Unlock()

	draw.Draw(ts.img, rect, tileImg, rect.Min, draw.Src)

	if _, found := ts.inProcess[rect]; found {
		ts.finishedPixels += rect.Dx() * rect.Dy()
	}
	delete(ts.inProcess, rect)

	msg := tileMsg{
		Type: "tile",
		X:    rect.Min.X, Y: rect.Min.Y,
		W: rect.Dx(), H: rect.Dy(),
		Pixels:   tileBytes(tileImg),
		Progress: float32(ts.finishedPixels) / float32(ts.totalPixels),
	}
	for ch := range ts.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}

	if len(ts.unstarted) == 0 && len(ts.inProcess) == 0 {
		log.Printf("render complete")
		ts.ctxCancel()
	}
}

// subscribe registers a viewer and returns its frame channel plus a
// snapshot frame of everything rendered so far.
func (ts *tileScheduler) subscribe() (ch chan tileMsg, snapshot tileMsg) {
	ts.m.Lock()
	defer ts.m.Unlock()

	ch = make(chan tileMsg, 256)
	ts.subscribers[ch] = struct{}{}
	snapshot = tileMsg{
		Type: "tile",
		X:    0, Y: 0,
		W: ts.vp.Width, H: ts.vp.Height,
		Pixels:   tileBytes(ts.img),
		Progress: float32(ts.finishedPixels) / float32(ts.totalPixels),
	}
	return ch, snapshot
}

func (ts *tileScheduler) unsubscribe(ch chan tileMsg) {
	ts.m.Lock()
	defer ts.m.Unlock()
	delete(ts.subscribers, ch)
}

// fullImage blocks until the render is complete, then returns the image.
func (ts *tileScheduler) fullImage() *image.RGBA {
	<-ts.ctx.Done()
	return ts.img
}

func (ts *tileScheduler) incActiveWorkers() {
	ts.m.Lock()
	ts.workers++
	w := ts.workers
	ts.m.Unlock()

	log.Printf("workers: %d", w)
}

func (ts *tileScheduler) decActiveWorkers() {
	ts.m.Lock()
	ts.workers--
	w := ts.workers
	ts.m.Unlock()

	log.Printf("workers: %d", w)
}

// render pulls tiles until none are left. Runs on several goroutines in
// parallel; the engine itself runs single-worker per tile since the tiles
// are already the parallelism.
func (ts *tileScheduler) render() {
	ts.incActiveWorkers()
	defer ts.decActiveWorkers()

	for {
		tile, found := ts.popTile()
		if !found {
			return
		}
		tvp, err := tileViewport(ts.vp, tile)
		if err != nil {
			log.Printf("tile %s viewport: %v", tile, err)
			continue
		}
		values, err := mandel.Compute(tvp, ts.maxIter, mandel.WithWorkers(1))
		if err != nil {
			log.Printf("tile %s render: %v", tile, err)
			continue
		}
		tileImg := image.NewRGBA(tile)
		draw.Draw(tileImg, tile, palette.Image(values, tile.Dx(), tile.Dy()), image.Point{}, draw.Src)
		ts.tileFinished(tileImg)
	}
}

// tileViewport carves the tile's bounds out of the full viewport in decimal
// arithmetic, keeping enough division precision that the error stays far
// below one pixel at any supported depth.
func tileViewport(vp mandel.Viewport, tile image.Rectangle) (mandel.Viewport, error) {
	spanX := vp.Xmax.Sub(vp.Xmin)
	spanY := vp.Ymax.Sub(vp.Ymin)
	prec := divPrecision(spanX)

	dx := spanX.DivRound(decimal.NewFromInt(int64(vp.Width)), prec)
	dy := spanY.DivRound(decimal.NewFromInt(int64(vp.Height)), prec)

	at := func(base decimal.Decimal, step decimal.Decimal, n int) decimal.Decimal {
		return base.Add(step.Mul(decimal.NewFromInt(int64(n))))
	}
	return mandel.NewViewport(
		at(vp.Xmin, dx, tile.Min.X).String(),
		at(vp.Xmin, dx, tile.Max.X).String(),
		at(vp.Ymin, dy, tile.Min.Y).String(),
		at(vp.Ymin, dy, tile.Max.Y).String(),
		tile.Dx(), tile.Dy(),
	)
}

// divPrecision: decimal places so that step rounding error is ~1e-12 of the
// span, whatever the span's magnitude.
func divPrecision(span decimal.Decimal) int32 {
	p := -span.Exponent() + 12
	if p < 20 {
		p = 20
	}
	return p
}

func tileBytes(img *image.RGBA) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		rowStart := img.PixOffset(b.Min.X, y)
		out = append(out, img.Pix[rowStart:rowStart+b.Dx()*4]...)
	}
	return out
}

// splitRectNoClip splits r into tiles of size tileW × tileH.
// Tiles at the right and bottom edges are smaller if r is not divisible.
func splitRectNoClip(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	if tileW <= 0 || tileH <= 0 {
		panic("tile dimensions must be positive")
	}

	w := r.Dx()
	h := r.Dy()

	var tiles []image.Rectangle

	for oy := 0; oy < h; oy += tileH {
		th := tileH
		if oy+th > h {
			th = h - oy
		}

		for ox := 0; ox < w; ox += tileW {
			tw := tileW
			if ox+tw > w {
				tw = w - ox
			}

			tile := image.Rect(
				r.Min.X+ox,
				r.Min.Y+oy,
				r.Min.X+ox+tw,
				r.Min.Y+oy+th,
			)
			tiles = append(tiles, tile)
		}
	}

	return tiles
}
