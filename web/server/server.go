package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/GIP2000/Computer-Graphics/pkg/renderer"
	"github.com/GIP2000/Computer-Graphics/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port      int
	scenesDir string
	logger    zerolog.Logger
}

// NewServer creates a new web server. Scene files are listed from scenesDir.
func NewServer(port int, scenesDir string, logger zerolog.Logger) *Server {
	return &Server{port: port, scenesDir: scenesDir, logger: logger}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string  `json:"scene"`           // Builtin scene name (e.g., "random")
	Width           int     `json:"width"`           // Image width
	AspectRatio     float64 `json:"aspectRatio"`     // Width / height
	SamplesPerPixel int     `json:"samplesPerPixel"` // Samples per pixel
	MaxDepth        int     `json:"maxDepth"`        // Maximum bounce depth
	Seed            int64   `json:"seed"`            // Scene and sampling seed
}

// Stats represents render statistics
type Stats struct {
	TotalPixels     int     `json:"totalPixels"`
	TotalSamples    int     `json:"totalSamples"`
	AverageSamples  float64 `json:"averageSamples"`
	MeanLuminance   float64 `json:"meanLuminance"`
	LuminanceStdDev float64 `json:"luminanceStdDev"`
	Workers         int     `json:"workers"`
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	return mux
}

// Start serves until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info().Str("addr", srv.Addr).Msg("Starting web server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "web server")
	}
	return nil
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists builtin scenes and scene files
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	files, err := scene.ListSceneFiles(s.scenesDir)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"builtin": scene.Builtins(),
		"files":   files,
	})
}

// parseRenderRequest parses request parameters; zero values take the scene's defaults
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	values := r.URL.Query()
	req := &RenderRequest{Scene: values.Get("scene")}
	if req.Scene == "" {
		req.Scene = "three-spheres"
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 0, 1, 2000); err != nil {
		return nil, err
	}
	if req.AspectRatio, err = parseFloatParam(values, "aspectRatio", 0, 0.1, 10); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "samples", 0, 1, 10000); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "maxDepth", -1, 0, 1000); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", 0, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	return req, nil
}

// sceneAndConfig builds the requested scene and its render configuration
func (s *Server) sceneAndConfig(req *RenderRequest) (*scene.Scene, renderer.Config, error) {
	sceneObj, err := scene.ByName(req.Scene, req.Seed)
	if err != nil {
		return nil, renderer.Config{}, err
	}

	config := sceneObj.RenderConfig()
	if req.Width > 0 {
		config.Width = req.Width
	}
	if req.AspectRatio > 0 {
		config.AspectRatio = req.AspectRatio
	}
	if req.SamplesPerPixel > 0 {
		config.SamplesPerPixel = req.SamplesPerPixel
	}
	if req.MaxDepth >= 0 {
		config.MaxDepth = req.MaxDepth
	}
	sceneObj.CameraConfig.AspectRatio = config.AspectRatio

	return sceneObj, config, config.Validate()
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, errors.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, errors.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, errors.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, errors.Errorf("%s must be between %f and %f, got: %f", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "three-spheres"
	}

	sceneObj, err := scene.ByName(sceneName, 0)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.SamplingConfig
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene":   sceneName,
		"objects": sceneObj.GetPrimitiveCount(),
		"defaults": map[string]interface{}{
			"width":           config.Width,
			"aspectRatio":     config.AspectRatio,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"limits": map[string]interface{}{
			"width":    map[string]int{"min": 1, "max": 2000},
			"samples":  map[string]int{"min": 1, "max": 10000},
			"maxDepth": map[string]int{"min": 0, "max": 1000},
		},
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
