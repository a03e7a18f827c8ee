package devtools

import (
	"io"
	"strings"

	"codeberg.org/anaseto/gruid"
	"github.com/gookit/color"

	"dungeonboard/pkg/engine/world"
)

// Palette holds the styles of the colored map
type Palette struct {
	Floor   color.Style
	Wall    color.Style
	Variant color.Style
	Pillar  color.Style
	Header  color.Style
}

// DefaultPalette returns the board color styles
func DefaultPalette() Palette {
	return Palette{
		Floor:   color.Style{color.FgGray},
		Wall:    color.Style{color.FgBlue},
		Variant: color.Style{color.FgMagenta},
		Pillar:  color.Style{color.FgRed, color.OpBold},
		Header:  color.Style{color.FgGreen, color.OpBold},
	}
}

func (p Palette) styleFor(f world.Field) color.Style {
	switch {
	case f == world.Floor:
		return p.Floor
	case f == world.FullWall:
		return p.Pillar
	case f.IsVariant():
		return p.Variant
	default:
		return p.Wall
	}
}

// WriteColoredMap writes the map with one style per field family.
// Consecutive cells sharing a style are written as one run.
func WriteColoredMap(w io.Writer, grid *world.Grid, p Palette) {
	var line strings.Builder
	forEachRow(grid, func(y int) {
		line.Reset()
		var run []byte
		var runStyle color.Style
		flush := func() {
			if len(run) > 0 {
				line.WriteString(runStyle.Sprint(string(run)))
				run = run[:0]
			}
		}
		for x := 0; x < grid.Width(); x++ {
			f := grid.At(gruid.Point{X: x, Y: y})
			style := p.styleFor(f)
			if len(run) > 0 && !sameStyle(style, runStyle) {
				flush()
			}
			runStyle = style
			run = append(run, cellSymbol(f))
		}
		flush()
		line.WriteByte('\n')
		io.WriteString(w, line.String())
	})
}

// WriteLegend writes the styled legend line
func WriteLegend(w io.Writer, p Palette) {
	io.WriteString(w, p.Header.Sprint(dynamicGet("Legend"))+": "+
		p.Floor.Sprint(".")+" "+dynamicGet("floor")+"  "+
		p.Wall.Sprint("#")+" "+dynamicGet("wall")+"  "+
		p.Variant.Sprint("1-e")+" "+dynamicGet("wall variant (hex NESW floor mask)")+"  "+
		p.Pillar.Sprint("f")+" "+dynamicGet("pillar")+"\n")
}

func sameStyle(a, b color.Style) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// StripColors removes color codes from s
func StripColors(s string) string {
	return color.ClearCode(s)
}
