package chart

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/nbenitez/fuegos/internal/models"
)

// Palette of the published graphics: fires on or after the cutoff date in
// dark red, the rest of the season in pink.
const (
	ColorRecent  = "#a80127"
	ColorSeason  = "#fac4c5"
	ColorNeutral = "#d8d0d0"
)

// GridOptions control the small-multiples layout.
type GridOptions struct {
	Cols   int
	Cell   int
	Margin int
	Cutoff time.Time // zero disables the two-color rule
}

func (o GridOptions) withDefaults() GridOptions {
	if o.Cols <= 0 {
		o.Cols = 14
	}
	if o.Cell <= 0 {
		o.Cell = 64
	}
	if o.Margin <= 0 {
		o.Margin = 24
	}
	return o
}

// FireGrid renders one square per fire, area-proportional side lengths on a
// global scale, ordered by descending burned area. Features without a usable
// area are skipped; the two-color date rule colors each cell.
func FireGrid(features []models.FireFeature, opts GridOptions) string {
	opts = opts.withDefaults()

	withArea := make([]models.FireFeature, 0, len(features))
	for _, f := range features {
		if f.AreaHa != nil && *f.AreaHa > 0 {
			withArea = append(withArea, f)
		}
	}
	sort.Slice(withArea, func(i, j int) bool {
		if *withArea[i].AreaHa != *withArea[j].AreaHa {
			return *withArea[i].AreaHa > *withArea[j].AreaHa
		}
		return withArea[i].ID < withArea[j].ID
	})

	n := len(withArea)
	rows := (n + opts.Cols - 1) / opts.Cols
	if rows == 0 {
		rows = 1
	}
	width := opts.Margin*2 + opts.Cols*opts.Cell
	height := opts.Margin*2 + rows*opts.Cell

	innerPad := 4
	inner := float64(opts.Cell - innerPad*2)

	// Side length proportional to sqrt(area) so cell areas compare like
	// hectares do; the biggest fire fills its cell.
	var maxArea float64
	for _, f := range withArea {
		if *f.AreaHa > maxArea {
			maxArea = *f.AreaHa
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)

	for i, f := range withArea {
		r, c := i/opts.Cols, i%opts.Cols
		cx := float64(opts.Margin+c*opts.Cell+innerPad) + inner/2
		cy := float64(opts.Margin+r*opts.Cell+innerPad) + inner/2

		side := inner
		if maxArea > 0 {
			side = inner * math.Sqrt(*f.AreaHa/maxArea)
		}

		fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			cx-side/2, cy-side/2, side, side, cellColor(f, opts.Cutoff))
	}

	b.WriteString("</svg>\n")
	return b.String()
}

// cellColor applies the two-color rule: on/after the cutoff dark red,
// otherwise pink. A missing date falls on the pink side.
func cellColor(f models.FireFeature, cutoff time.Time) string {
	if cutoff.IsZero() {
		return ColorRecent
	}
	if f.FireDate != nil && !f.FireDate.Before(cutoff) {
		return ColorRecent
	}
	return ColorSeason
}

// RegionBars renders a horizontal bar chart of aggregate rows, largest at
// the top (the rows arrive pre-sorted from the aggregator).
func RegionBars(rows []models.AggregateRow) string {
	const (
		labelWidth = 200
		barMax     = 480
		barHeight  = 18
		gap        = 8
		margin     = 24
	)

	width := margin*2 + labelWidth + barMax
	height := margin*2 + len(rows)*(barHeight+gap)

	var maxArea float64
	for _, r := range rows {
		if r.AreaHa > maxArea {
			maxArea = r.AreaHa
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		width, height, width, height)

	for i, r := range rows {
		y := margin + i*(barHeight+gap)
		w := 0.0
		if maxArea > 0 {
			w = barMax * r.AreaHa / maxArea
		}
		fmt.Fprintf(&b, `<text x="%d" y="%d" font-size="12" text-anchor="end" fill="#222">%s</text>`+"\n",
			margin+labelWidth-8, y+barHeight-5, escapeText(r.Key))
		fmt.Fprintf(&b, `<rect x="%d" y="%d" width="%.2f" height="%d" fill="%s"/>`+"\n",
			margin+labelWidth, y, w, barHeight, ColorRecent)
		fmt.Fprintf(&b, `<text x="%.2f" y="%d" font-size="11" fill="#444">%.0f ha</text>`+"\n",
			float64(margin+labelWidth)+w+6, y+barHeight-5, r.AreaHa)
	}

	b.WriteString("</svg>\n")
	return b.String()
}

func escapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
