/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package clinic

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	sm "github.com/flopp/go-staticmaps"
	"github.com/golang/geo/s2"
)

const (
	minZoom = 1
	maxZoom = 18
)

// MapConfig holds configuration for the rendered locations map.
type MapConfig struct {
	Width      int
	Height     int
	Zoom       int // 0 fits the zoom to the branches
	OutputPath string
}

// DefaultMapConfig returns the map settings used by the landing page.
func DefaultMapConfig() MapConfig {
	return MapConfig{
		Width:      800,
		Height:     500,
		OutputPath: "clinic_locations.png",
	}
}

type mapContext interface {
	SetSize(width, height int)
	SetZoom(zoom int)
	SetCenter(center s2.LatLng)
	AddObject(object sm.MapObject)
	Attribution() string
	OverrideAttribution(attribution string)
	Render() (image.Image, error)
}

var (
	newMapContext = func() mapContext { return sm.NewContext() }
	createFile    = func(path string) (io.WriteCloser, error) { return os.Create(path) }
	encodePNG     = png.Encode
)

var markerColor = color.RGBA{0x7c, 0x3a, 0xed, 0xff}

// RenderLocationsMap renders a map with a marker on every branch and
// saves it as a PNG at config.OutputPath.
func RenderLocationsMap(config MapConfig) error {
	if len(locations) == 0 {
		return errNoLocations
	}

	ctx := newMapContext()
	ctx.SetSize(config.Width, config.Height)

	minLat, maxLat := locations[0].Lat, locations[0].Lat
	minLng, maxLng := locations[0].Lng, locations[0].Lng

	for _, l := range locations {
		minLat = math.Min(minLat, l.Lat)
		maxLat = math.Max(maxLat, l.Lat)
		minLng = math.Min(minLng, l.Lng)
		maxLng = math.Max(maxLng, l.Lng)

		ctx.AddObject(sm.NewMarker(s2.LatLngFromDegrees(l.Lat, l.Lng), markerColor, 16.0))
	}

	zoom := config.Zoom
	if zoom == 0 {
		zoom = calculateZoomLevel(minLat, maxLat, minLng, maxLng, config.Width, config.Height)
	}

	ctx.SetZoom(zoom)
	ctx.SetCenter(s2.LatLngFromDegrees((minLat+maxLat)/2, (minLng+maxLng)/2))
	ctx.OverrideAttribution(fmt.Sprintf("%s\n%s", DoctorName, ctx.Attribution()))

	img, err := ctx.Render()
	if err != nil {
		return fmt.Errorf("failed to render map: %w", err)
	}

	if err := saveImage(img, config.OutputPath); err != nil {
		return err
	}

	logger.Info("Rendered locations map", "path", config.OutputPath, "zoom", zoom)

	return nil
}

// calculateZoomLevel picks the largest tile zoom that fits the bounding
// box into width x height pixels with one level of margin.
func calculateZoomLevel(minLat, maxLat, minLng, maxLng float64, width, height int) int {
	const tileSize = 256.0

	latSpan := maxLat - minLat
	lngSpan := maxLng - minLng

	if latSpan <= 0 && lngSpan <= 0 {
		return maxZoom
	}

	zoom := math.Inf(1)
	if lngSpan > 0 {
		zoom = math.Min(zoom, math.Log2(float64(width)*360/(lngSpan*tileSize)))
	}
	if latSpan > 0 {
		zoom = math.Min(zoom, math.Log2(float64(height)*360/(latSpan*tileSize)))
	}

	level := int(math.Floor(zoom)) - 1
	if level < minZoom {
		return minZoom
	}
	if level > maxZoom {
		return maxZoom
	}

	return level
}

func saveImage(img image.Image, path string) error {
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn("Failed to close map file", "path", path, "error", err)
		}
	}()

	if err := encodePNG(f, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}

	return nil
}
