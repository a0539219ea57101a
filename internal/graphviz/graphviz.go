// Package graphviz renders a gate-DAG graph to a PNG for visual debugging:
// variables down the left margin, gates laid out in topologically-ordered
// columns, wires as straight lines from each gate to its fanins. Adapted
// from qplay/internal/qrender's direct-pixel drawing approach (stdlib
// image/draw plus golang.org/x/image/font/basicfont for glyphs), repurposed
// to draw a Boolean gate graph instead of a quantum-circuit timeline. Not
// one of the four semantic emitters; purely a --debug-graph convenience.
package graphviz

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/fslivovsky/unique/gatedag"
)

const (
	marginTop  = 20
	marginLeft = 30
	rowSpacing = 36
	colSpacing = 90
	nodeSize   = 26
)

// Renderer lays out a gate graph's nodes on a grid: variables occupy
// column 0 in prefix order; every gate occupies the column one past the
// deepest of its fanins' columns, and rows are assigned in the same
// traversal order so a node is always drawn below every node above it in
// the same column.
type Renderer struct{}

// NewRenderer returns a Renderer. Present (rather than a bare package
// function) to mirror qrender.Renderer's method-based drawing API.
func NewRenderer() Renderer { return Renderer{} }

type layout struct {
	col, row map[gatedag.Alias]int
	nextRow  int
}

// Render draws g to an RGBA image.
func (r Renderer) Render(g *gatedag.Graph) *image.RGBA {
	lay := computeLayout(g)

	maxCol, maxRow := 0, 0
	for a := gatedag.Alias(1); int(a) < g.Len(); a++ {
		if c, ok := lay.col[a]; ok {
			if c > maxCol {
				maxCol = c
			}
			if row := lay.row[a]; row > maxRow {
				maxRow = row
			}
		}
	}

	width := marginLeft + (maxCol+1)*colSpacing + nodeSize
	height := marginTop + (maxRow+1)*rowSpacing + nodeSize
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	for a := gatedag.Alias(1); int(a) < g.Len(); a++ {
		gate := g.Gate(a)
		if gate.Kind == gatedag.KindNone {
			continue
		}
		for _, lit := range gate.Inputs {
			inputAlias := gatedag.Alias(abs32(lit))
			r.drawWire(img, lay.center(a), lay.center(inputAlias))
		}
	}
	for a := gatedag.Alias(1); int(a) < g.Len(); a++ {
		gate := g.Gate(a)
		if gate.Kind == gatedag.KindNone {
			continue
		}
		r.drawNode(img, lay.center(a), gate)
	}
	return img
}

// RenderToFile renders g and encodes it as a PNG at path.
func RenderToFile(g *gatedag.Graph, path string) error {
	img := NewRenderer().Render(g)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("graphviz: cannot create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("graphviz: cannot encode png: %w", err)
	}
	return nil
}

func computeLayout(g *gatedag.Graph) layout {
	lay := layout{col: make(map[gatedag.Alias]int), row: make(map[gatedag.Alias]int)}

	for a := gatedag.Alias(1); a < g.VariableGateBoundary; a++ {
		lay.col[a] = 0
		lay.row[a] = lay.nextRow
		lay.nextRow++
	}
	for _, a := range g.TopologicalOrder() {
		gate := g.Gate(a)
		col := 1
		for _, lit := range gate.Inputs {
			inputAlias := gatedag.Alias(abs32(lit))
			if c, ok := lay.col[inputAlias]; ok && c+1 > col {
				col = c + 1
			}
		}
		lay.col[a] = col
		lay.row[a] = lay.nextRow
		lay.nextRow++
	}
	return lay
}

func (lay layout) center(a gatedag.Alias) image.Point {
	x := marginLeft + lay.col[a]*colSpacing + nodeSize/2
	y := marginTop + lay.row[a]*rowSpacing + nodeSize/2
	return image.Pt(x, y)
}

func (r Renderer) drawNode(img *image.RGBA, center image.Point, gate *gatedag.Gate) {
	var fill color.Color
	var label string
	switch gate.Kind {
	case gatedag.KindExistential:
		fill, label = color.RGBA{R: 0, G: 150, B: 0, A: 255}, "E"
	case gatedag.KindUniversal:
		fill, label = color.RGBA{R: 150, G: 0, B: 0, A: 255}, "A"
	case gatedag.KindAnd:
		fill, label = color.RGBA{R: 0, G: 0, B: 200, A: 255}, "&"
	case gatedag.KindOr:
		fill, label = color.RGBA{R: 200, G: 120, B: 0, A: 255}, "|"
	default:
		return
	}
	rect := image.Rect(center.X-nodeSize/2, center.Y-nodeSize/2, center.X+nodeSize/2, center.Y+nodeSize/2)
	draw.Draw(img, rect, &image.Uniform{C: fill}, image.Point{}, draw.Src)
	r.drawTextAroundCenter(img, center.X, center.Y, color.White, label)
	r.drawTextAroundCenter(img, center.X, center.Y+nodeSize, color.Black, string(gate.ID))
}

func (r Renderer) drawWire(img *image.RGBA, from, to image.Point) {
	r.drawLine(img, from, to, color.Black)
}

func (r Renderer) drawLine(img *image.RGBA, start, end image.Point, col color.Color) {
	dx, dy := end.X-start.X, end.Y-start.Y
	steps := absInt(dx)
	if absInt(dy) > steps {
		steps = absInt(dy)
	}
	if steps == 0 {
		img.Set(start.X, start.Y, col)
		return
	}
	for i := 0; i <= steps; i++ {
		x := start.X + dx*i/steps
		y := start.Y + dy*i/steps
		img.Set(x, y, col)
	}
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (r Renderer) drawTextAroundCenter(img *image.RGBA, xPos, yPos int, col color.Color, txt string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
	}
	corrXPos := fixed.I(xPos) - d.MeasureString(txt)/2
	textBounds, _ := d.BoundString(txt)
	textHeight := textBounds.Max.Y - textBounds.Min.Y
	corrYPos := fixed.I(yPos + textHeight.Ceil()/2 - 1)
	d.Dot = fixed.Point26_6{X: corrXPos, Y: corrYPos}
	d.DrawString(txt)
}

func abs32(x int32) int32 {
	if x < 0 {
		return -x
	}
	return x
}
