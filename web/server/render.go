package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/GIP2000/Computer-Graphics/pkg/output"
	"github.com/GIP2000/Computer-Graphics/pkg/renderer"
)

// ProgressUpdate is sent as each tile finishes
type ProgressUpdate struct {
	TilesDone  int `json:"tilesDone"`
	TotalTiles int `json:"totalTiles"`
}

// CompleteUpdate carries the finished image and its statistics
type CompleteUpdate struct {
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	Duration  string `json:"duration"`
}

// sseWriter writes server-sent events. All writes happen on the handler goroutine.
type sseWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
	console <-chan ConsoleMessage
}

func newSSEWriter(w http.ResponseWriter, console <-chan ConsoleMessage) *sseWriter {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	flusher, _ := w.(http.Flusher)
	return &sseWriter{w: w, flusher: flusher, console: console}
}

// send writes one event with a JSON payload
func (s *sseWriter) send(eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte(fmt.Sprintf(`{"error":%q}`, err.Error()))
	}
	fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", eventType, data)
	if s.flusher != nil {
		s.flusher.Flush()
	}
}

// drainConsole forwards pending console messages without blocking
func (s *sseWriter) drainConsole() {
	for {
		select {
		case msg := <-s.console:
			s.send("console", msg)
		default:
			return
		}
	}
}

// handleRender renders a scene and streams progress via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	consoleChan := make(chan ConsoleMessage, 100)
	events := newSSEWriter(w, consoleChan)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		events.send("error", map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	sceneObj, config, err := s.sceneAndConfig(req)
	if err != nil {
		events.send("error", map[string]string{"error": err.Error()})
		return
	}

	renderID := fmt.Sprintf("%s-%d", req.Scene, req.Seed)
	logger := NewWebLogger(renderID, consoleChan, s.logger)

	camera, err := renderer.NewCamera(sceneObj.CameraConfig)
	if err != nil {
		events.send("error", map[string]string{"error": errors.Wrap(err, "camera").Error()})
		return
	}
	raytracer, err := renderer.NewRaytracer(sceneObj.World, sceneObj.Materials, camera, config, logger)
	if err != nil {
		events.send("error", map[string]string{"error": err.Error()})
		return
	}

	// Progress runs on this goroutine, so it can write events directly
	raytracer.SetProgressFunc(func(done, total int) {
		events.drainConsole()
		events.send("progress", ProgressUpdate{TilesDone: done, TotalTiles: total})
	})

	frame, stats, err := raytracer.Render(r.Context())
	events.drainConsole()
	if err != nil {
		s.logger.Warn().Err(err).Str("render", renderID).Msg("Render failed")
		events.send("error", map[string]string{"error": err.Error()})
		return
	}

	imageData, err := frameToBase64PNG(frame)
	if err != nil {
		events.send("error", map[string]string{"error": err.Error()})
		return
	}

	events.send("complete", CompleteUpdate{
		Width:     frame.Width,
		Height:    frame.Height,
		ImageData: imageData,
		Duration:  stats.Duration.String(),
		Stats: Stats{
			TotalPixels:     stats.TotalPixels,
			TotalSamples:    stats.TotalSamples,
			AverageSamples:  stats.AverageSamples,
			MeanLuminance:   stats.MeanLuminance,
			LuminanceStdDev: stats.LuminanceStdDev,
			Workers:         stats.Workers,
		},
	})
}

// frameToBase64PNG encodes the gamma-corrected frame as a base64 PNG
func frameToBase64PNG(frame *renderer.Frame) (string, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, output.Image(frame), imaging.PNG); err != nil {
		return "", errors.Wrap(err, "encode PNG")
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
