package heatfield

import "math"

// CanvasDimensions holds the raster sizes derived from a field's aspect
// ratio: the display size (fit inside a maximum box, aspect preserved) and
// the canvas size the engines actually compute at (display size times the
// resolution multiplier).
type CanvasDimensions struct {
	DisplayWidth  int
	DisplayHeight int

	CanvasWidth  int
	CanvasHeight int

	ResolutionMultiplier int
}

// ComputeCanvasDimensions fits a raster with the given aspect ratio inside
// a maxWidth by maxHeight box. Display dimensions are rounded to the
// nearest integer pixel before the resolution multiplier is applied, so
// canvas dimensions are always exact integer multiples of the multiplier.
func ComputeCanvasDimensions(aspectRatio float64, maxWidth, maxHeight, resolutionMultiplier int) CanvasDimensions {
	if aspectRatio <= 0 {
		aspectRatio = 1
	}
	if resolutionMultiplier < 1 {
		resolutionMultiplier = 1
	}

	var w, h int
	boxRatio := float64(maxWidth) / float64(maxHeight)
	if aspectRatio >= boxRatio {
		// Width-constrained: the field is wider than the box.
		w = maxWidth
		h = int(math.Round(float64(maxWidth) / aspectRatio))
	} else {
		h = maxHeight
		w = int(math.Round(float64(maxHeight) * aspectRatio))
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	return CanvasDimensions{
		DisplayWidth:         w,
		DisplayHeight:        h,
		CanvasWidth:          w * resolutionMultiplier,
		CanvasHeight:         h * resolutionMultiplier,
		ResolutionMultiplier: resolutionMultiplier,
	}
}

// GPSToGrid converts a GPS coordinate to fractional canvas pixel
// coordinates. Row 0 corresponds to the north edge of the bounded field;
// the vertical axis is inverted relative to latitude. Every consumer of a
// density grid depends on this convention.
func GPSToGrid(lat, lng float64, b FieldBounds, d CanvasDimensions) (x, y float64) {
	if b.BoundedLngRange > 0 {
		x = (lng - b.BoundedMinLng) / b.BoundedLngRange * float64(d.CanvasWidth)
	}
	if b.BoundedLatRange > 0 {
		y = (b.BoundedMaxLat - lat) / b.BoundedLatRange * float64(d.CanvasHeight)
	}
	return x, y
}

// GridToGPS is the inverse of GPSToGrid: it converts canvas pixel
// coordinates back to a GPS coordinate.
func GridToGPS(x, y float64, b FieldBounds, d CanvasDimensions) (lat, lng float64) {
	lat = b.BoundedMaxLat
	lng = b.BoundedMinLng
	if d.CanvasHeight > 0 {
		lat -= y / float64(d.CanvasHeight) * b.BoundedLatRange
	}
	if d.CanvasWidth > 0 {
		lng += x / float64(d.CanvasWidth) * b.BoundedLngRange
	}
	return lat, lng
}
