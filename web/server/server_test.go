package server

import (
	"bufio"
	"encoding/base64"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GIP2000/Computer-Graphics/pkg/scene"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.yaml"), []byte("name: one-sphere\ndescription: a single sphere\n"), 0o644))

	ts := httptest.NewServer(NewServer(0, dir, zerolog.Nop()).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, target interface{}) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(target))
	return resp.StatusCode
}

type sseEvent struct {
	name string
	data string
}

func readEvents(t *testing.T, url string) []sseEvent {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	var events []sseEvent
	var current sseEvent
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			current.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			current.data = strings.TrimPrefix(line, "data: ")
		case line == "" && current.name != "":
			events = append(events, current)
			current = sseEvent{}
		}
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	var body map[string]string
	status := getJSON(t, ts.URL+"/api/health", &body)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestScenes(t *testing.T) {
	ts := newTestServer(t)

	var body struct {
		Builtin []scene.SceneInfo `json:"builtin"`
		Files   []scene.SceneInfo `json:"files"`
	}
	status := getJSON(t, ts.URL+"/api/scenes", &body)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body.Builtin, len(scene.Builtins()))
	require.Len(t, body.Files, 1)
	assert.Equal(t, "one-sphere", body.Files[0].Name)
}

func TestSceneConfig(t *testing.T) {
	ts := newTestServer(t)

	var body struct {
		Scene    string         `json:"scene"`
		Objects  int            `json:"objects"`
		Defaults map[string]any `json:"defaults"`
	}
	status := getJSON(t, ts.URL+"/api/scene-config?scene=three-spheres", &body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "three-spheres", body.Scene)
	assert.Equal(t, 5, body.Objects)
	assert.Contains(t, body.Defaults, "samplesPerPixel")

	var errBody map[string]string
	status = getJSON(t, ts.URL+"/api/scene-config?scene=nonexistent", &errBody)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, errBody["error"])
}

func TestRenderStreamsProgressAndImage(t *testing.T) {
	ts := newTestServer(t)

	events := readEvents(t, ts.URL+"/api/render?scene=empty&width=8&aspectRatio=2&samples=1&maxDepth=2")
	require.NotEmpty(t, events)

	var progress int
	for _, e := range events {
		if e.name == "progress" {
			progress++
		}
	}
	assert.Equal(t, 1, progress, "8x4 image fits in a single tile")

	last := events[len(events)-1]
	require.Equal(t, "complete", last.name, "last event: %s %s", last.name, last.data)

	var complete CompleteUpdate
	require.NoError(t, json.Unmarshal([]byte(last.data), &complete))
	assert.Equal(t, 8, complete.Width)
	assert.Equal(t, 4, complete.Height)
	assert.Equal(t, 32, complete.Stats.TotalPixels)

	png, err := base64.StdEncoding.DecodeString(complete.ImageData)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(png), "\x89PNG"))
}

func TestRenderInvalidRequest(t *testing.T) {
	ts := newTestServer(t)

	events := readEvents(t, ts.URL+"/api/render?scene=empty&width=abc")
	require.Len(t, events, 1)
	assert.Equal(t, "error", events[0].name)
	assert.Contains(t, events[0].data, "invalid width")

	events = readEvents(t, ts.URL+"/api/render?scene=nonexistent")
	require.Len(t, events, 1)
	assert.Equal(t, "error", events[0].name)
}

func TestInspect(t *testing.T) {
	ts := newTestServer(t)

	var sky InspectResponse
	require.Equal(t, http.StatusOK, getJSON(t, ts.URL+"/api/inspect?scene=empty&width=40&aspectRatio=2&x=0&y=0", &sky))
	assert.False(t, sky.Hit)

	// The camera looks at the center of the middle sphere
	base := ts.URL + "/api/inspect?scene=three-spheres&width=40&aspectRatio=2"
	var center InspectResponse
	require.Equal(t, http.StatusOK, getJSON(t, base+"&x=20&y=10", &center))
	require.True(t, center.Hit)
	assert.Equal(t, "lambertian", center.Material)
	assert.True(t, center.FrontFace)
	assert.Greater(t, center.T, 0.0)

	// The hit point lies on the middle sphere's surface
	p := center.Point
	assert.InDelta(t, 0.5, math.Sqrt(p[0]*p[0]+p[1]*p[1]+(p[2]+1)*(p[2]+1)), 1e-6)
	assert.Contains(t, center.Props, "albedo")

	var bad map[string]string
	assert.Equal(t, http.StatusBadRequest, getJSON(t, base+"&x=40&y=0", &bad))
	assert.Equal(t, http.StatusBadRequest, getJSON(t, base+"&y=0", &bad))
}
