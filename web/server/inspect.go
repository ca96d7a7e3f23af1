package server

import (
	"math"
	"net/http"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
	"github.com/GIP2000/Computer-Graphics/pkg/integrator"
	"github.com/GIP2000/Computer-Graphics/pkg/material"
	"github.com/GIP2000/Computer-Graphics/pkg/renderer"
)

// InspectResponse describes the surface seen through a pixel
type InspectResponse struct {
	Hit       bool                   `json:"hit"`
	X         int                    `json:"x"`
	Y         int                    `json:"y"`
	T         float64                `json:"t,omitempty"`
	Point     [3]float64             `json:"point,omitempty"`
	Normal    [3]float64             `json:"normal,omitempty"`
	FrontFace bool                   `json:"frontFace,omitempty"`
	Material  string                 `json:"materialType,omitempty"`
	Handle    int                    `json:"materialHandle"`
	Props     map[string]interface{} `json:"materialProperties,omitempty"`
}

// handleInspect casts the ray through a pixel center and reports the closest hit
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	sceneObj, config, err := s.sceneAndConfig(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	height := config.Height()
	values := r.URL.Query()
	x, err := parseIntParam(values, "x", -1, 0, config.Width-1)
	if err == nil && x < 0 {
		err = errMissingParam("x")
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	y, err := parseIntParam(values, "y", -1, 0, height-1)
	if err == nil && y < 0 {
		err = errMissingParam("y")
	}
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// Pinhole camera so the ray goes exactly through the pixel center
	cameraConfig := sceneObj.CameraConfig
	cameraConfig.Aperture = 0
	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	u := (float64(x) + 0.5) / float64(config.Width)
	v := (float64(height-1-y) + 0.5) / float64(height)
	ray := camera.GetRay(u, v, core.NewSeededSampler(0))

	response := InspectResponse{X: x, Y: y}
	hit, ok := sceneObj.World.Hit(ray, integrator.ShadowAcneEpsilon, math.Inf(1))
	if ok {
		response.Hit = true
		response.T = hit.T
		response.Point = [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z}
		response.Normal = [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z}
		response.FrontFace = hit.FrontFace
		response.Handle = int(hit.Material)

		if mat, found := sceneObj.Materials.Get(hit.Material); found {
			response.Material = mat.Kind.String()
			response.Props = materialProperties(mat)
		}
	}

	writeJSON(w, http.StatusOK, response)
}

func materialProperties(mat material.Material) map[string]interface{} {
	albedo := [3]float64{mat.Albedo.X, mat.Albedo.Y, mat.Albedo.Z}
	switch mat.Kind {
	case material.KindLambertian:
		return map[string]interface{}{"albedo": albedo}
	case material.KindMetal:
		return map[string]interface{}{"albedo": albedo, "fuzz": mat.Fuzz}
	case material.KindDielectric:
		return map[string]interface{}{"refractiveIndex": mat.RefractiveIndex}
	}
	return nil
}

type errMissingParam string

func (e errMissingParam) Error() string {
	return "missing required parameter: " + string(e)
}
