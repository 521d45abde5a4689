package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	cardWidth  = 1200
	cardHeight = 630
)

var (
	cardBackground = color.RGBA{250, 247, 245, 255}
	cardAccent     = color.RGBA{168, 1, 39, 255} // matches ColorRecent
	cardText       = color.RGBA{34, 34, 34, 255}
	cardMuted      = color.RGBA{120, 120, 120, 255}
)

// SummaryCard renders a PNG card with a season's headline numbers, for
// sharing alongside the charts.
func SummaryCard(title string, totalHa float64, fires int, updatedAt time.Time) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{cardBackground}, image.Point{}, draw.Src)

	// Accent band across the top.
	draw.Draw(img, image.Rect(0, 0, cardWidth, 16), &image.Uniform{cardAccent}, image.Point{}, draw.Src)

	drawTextScaled(img, title, 60, 110, 3, cardText)
	drawTextScaled(img, fmt.Sprintf("%s ha quemadas", formatThousands(totalHa)), 60, 260, 6, cardAccent)
	drawTextScaled(img, fmt.Sprintf("%d incendios de 30 ha o más", fires), 60, 370, 3, cardText)
	drawTextScaled(img, "Actualizado "+updatedAt.UTC().Format("2006-01-02"), 60, 560, 2, cardMuted)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode card: %w", err)
	}
	return buf.Bytes(), nil
}

// drawTextScaled renders with the basicfont face into an offscreen strip and
// scales it up by an integer factor; crude, but keeps the binary free of
// embedded font assets.
func drawTextScaled(dst *image.RGBA, text string, x, y, scale int, col color.Color) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, text).Ceil()
	h := face.Metrics().Height.Ceil()

	strip := image.NewRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  strip,
		Src:  &image.Uniform{col},
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)

	for sy := 0; sy < h; sy++ {
		for sx := 0; sx < w; sx++ {
			c := strip.RGBAAt(sx, sy)
			if c.A == 0 {
				continue
			}
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					px, py := x+sx*scale+dx, y-h*scale+sy*scale+dy
					if (image.Point{px, py}).In(dst.Bounds()) {
						dst.SetRGBA(px, py, c)
					}
				}
			}
		}
	}
}

// formatThousands renders hectares with Spanish thousands separators:
// 344543 -> "344.543".
func formatThousands(v float64) string {
	n := int64(v + 0.5)
	if n < 0 {
		return fmt.Sprintf("%d", n)
	}
	s := fmt.Sprintf("%d", n)
	var out []byte
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, '.')
		}
		out = append(out, c)
	}
	return string(out)
}
