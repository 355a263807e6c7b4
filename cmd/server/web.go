package main

import (
	"embed"
	"fmt"
	"image/png"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

//go:embed static
var staticFiles embed.FS

// tileMsg is one frame of the viewer protocol. Pixels is raw RGBA, row
// major, W*H*4 bytes (base64 on the wire via JSON).
type tileMsg struct {
	Type     string  `json:"type"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
	W        int     `json:"w"`
	H        int     `json:"h"`
	Pixels   []byte  `json:"pixels"`
	Progress float32 `json:"progress"`
}

type initMsg struct {
	Type   string `json:"type"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// webServer serves the viewer page, a live tile stream on /ws and the
// finished image on /image.png.
func webServer(ts *tileScheduler, addr string) *http.Server {
	static, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("embedded static files: %v", err))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", websocketHandler(ts))
	mux.HandleFunc("/image.png", imageHandler(ts))
	mux.Handle("/", http.FileServer(http.FS(static)))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("listening on http://localhost%s", addr)
	return srv
}

// websocketHandler upgrades the connection and streams tile frames: first
// the image dimensions, then a snapshot of everything rendered so far, then
// live tiles as workers finish them.
func websocketHandler(ts *tileScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			OriginPatterns: []string{"*"}, // TODO: tighten in prod
		})
		if err != nil {
			log.Println(err)
			return
		}
		defer c.CloseNow()

		ch, snapshot := ts.subscribe()
		defer ts.unsubscribe(ch)

		ctx := r.Context()
		if err := wsjson.Write(ctx, c, initMsg{Type: "init", Width: ts.vp.Width, Height: ts.vp.Height}); err != nil {
			return
		}
		if err := wsjson.Write(ctx, c, snapshot); err != nil {
			return
		}
		for {
			select {
			case msg := <-ch:
				if err := wsjson.Write(ctx, c, msg); err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}
}

// imageHandler blocks until the full render is done, then serves it as PNG.
func imageHandler(ts *tileScheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-ts.ctx.Done():
		case <-r.Context().Done():
			return
		}
		w.Header().Set("Content-Type", "image/png")
		if err := png.Encode(w, ts.fullImage()); err != nil {
			log.Printf("encode PNG: %v", err)
		}
	}
}
