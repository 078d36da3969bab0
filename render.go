package heatfield

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// RenderImage converts a density map to an RGBA raster at canvas
// resolution, normalizing by MaxDensity and applying the thermal ramp.
// Zero-density cells come out fully transparent, so the raster can be
// overlaid directly on a map layer.
func RenderImage(m *DensityMap) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	if m.MaxDensity == 0 {
		return img
	}
	for y := 0; y < m.Height; y++ {
		row := m.Data[y*m.Width : (y+1)*m.Width]
		for x, v := range row {
			c := ThermalColor(v / m.MaxDensity).NRGBA()
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
		}
	}
	return img
}

// RenderDisplayImage renders the map and downsamples it from canvas
// resolution to display resolution. With a resolution multiplier above 1
// this supersamples the heatmap, smoothing kernel edges.
func RenderDisplayImage(m *DensityMap) *image.NRGBA {
	full := RenderImage(m)
	if m.Dims.DisplayWidth == m.Width && m.Dims.DisplayHeight == m.Height {
		return full
	}
	out := image.NewNRGBA(image.Rect(0, 0, m.Dims.DisplayWidth, m.Dims.DisplayHeight))
	xdraw.BiLinear.Scale(out, out.Bounds(), full, full.Bounds(), xdraw.Src, nil)
	return out
}
