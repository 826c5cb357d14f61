package plot

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	xdraw "golang.org/x/image/draw"
)

// stampText draws text near the bottom-left corner of img on a light box. The 7x13 bitmap face
// is rendered once and scaled up by an integer factor so it stays legible on high-DPI output.
func stampText(img image.Image, text string, scale int) image.Image {
	if img == nil || text == "" {
		return img
	}
	if scale < 1 {
		scale = 1
	}
	face := basicfont.Face7x13
	pad := 3
	dr := &font.Drawer{Face: face}
	tw := dr.MeasureString(text).Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	descent := face.Metrics().Descent.Ceil()

	label := image.NewRGBA(image.Rect(0, 0, tw+2*pad, ascent+descent+2*pad))
	draw.Draw(label, label.Bounds(), image.NewUniform(color.RGBA{R: 255, G: 255, B: 255, A: 220}), image.Point{}, draw.Src)
	dr.Dst = label
	dr.Src = image.NewUniform(color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255})
	dr.Dot = fixed.Point26_6{X: fixed.I(pad), Y: fixed.I(pad + ascent)}
	dr.DrawString(text)

	b := img.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)
	lw, lh := label.Bounds().Dx()*scale, label.Bounds().Dy()*scale
	margin := 4 * scale
	dst := image.Rect(b.Min.X+margin, b.Max.Y-margin-lh, b.Min.X+margin+lw, b.Max.Y-margin)
	xdraw.NearestNeighbor.Scale(out, dst, label, label.Bounds(), draw.Over, nil)
	return out
}
