package devtools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/anaseto/gruid"
	"github.com/zyedidia/generic/mapset"

	"dungeonboard/pkg/engine/world"
	"dungeonboard/pkg/game/board"
	"dungeonboard/pkg/game/walls"
)

// SaveScreenshotHTML saves the whole board as an HTML file in dir and returns its path
func SaveScreenshotHTML(b *board.Board, dir string) (string, error) {
	filename := filepath.Join(dir, fmt.Sprintf("board-%d.html", b.Seed))
	if err := os.WriteFile(filename, []byte(RenderHTML(b)), 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// RenderHTML returns the board as a standalone HTML page
func RenderHTML(b *board.Board) string {
	var html strings.Builder

	html.WriteString(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Dungeon Board</title>
    <style>
        body {
            background-color: #1a1a2e;
            color: #eee;
            font-family: 'Courier New', monospace;
            padding: 20px;
        }
        .header {
            color: #bb86fc;
            font-size: 18px;
            margin-bottom: 10px;
        }
        .stats {
            color: #888;
            margin-bottom: 20px;
        }
        .map-container {
            background-color: #0f0f1a;
            padding: 20px;
            border-radius: 8px;
            display: inline-block;
            margin: 20px 0;
        }
        .map-row {
            white-space: pre;
            line-height: 1.2;
            font-size: 16px;
        }
        .wall { color: #666; }
        .wall-edge { color: #aaaa00; }
        .pillar { color: #ff4444; font-weight: bold; }
        .floor { color: #888; }
        .floor-outer { color: #00aa00; }
        .void { color: #1a1a2e; }
    </style>
</head>
<body>
`)

	html.WriteString(fmt.Sprintf(`    <div class="header">Seed %d</div>`+"\n", b.Seed))
	html.WriteString(fmt.Sprintf(`    <div class="stats">%s, %d rooms, %d links, %d floor tiles (%d outer, %d inner)</div>`+"\n",
		b.Stats.Strategy, len(b.Rooms), b.Stats.Links, len(b.OuterFloor)+len(b.InnerFloor), len(b.OuterFloor), len(b.InnerFloor)))

	outer := mapset.New[gruid.Point]()
	for _, p := range b.OuterFloor {
		outer.Put(p)
	}

	html.WriteString(`    <div class="map-container">` + "\n")
	forEachRow(b.Grid, func(y int) {
		html.WriteString(`        <div class="map-row">`)
		for x := 0; x < b.Grid.Width(); x++ {
			p := gruid.Point{X: x, Y: y}
			icon, class := getCellHTMLInfo(b.Grid.At(p), outer.Has(p))
			html.WriteString(fmt.Sprintf(`<span class="%s" title="%d,%d %s">%s</span>`, class, x, y, fieldTitle(b.Grid.At(p)), icon))
		}
		html.WriteString("</div>\n")
	})
	html.WriteString(`    </div>` + "\n")

	html.WriteString(`</body>
</html>
`)
	return html.String()
}

// getCellHTMLInfo returns the icon and CSS class for a field
func getCellHTMLInfo(f world.Field, outerFloor bool) (string, string) {
	switch {
	case f == world.Floor && outerFloor:
		return "·", "floor-outer"
	case f == world.Floor:
		return "·", "floor"
	case f == world.FullWall:
		return "◆", "pillar"
	case f.IsVariant():
		return "▓", "wall-edge"
	case f == world.Wall:
		return "▒", "wall"
	default:
		return " ", "void"
	}
}

func fieldTitle(f world.Field) string {
	if mask, ok := walls.MaskOf(f); ok {
		return f.String() + " " + walls.MaskString(mask)
	}
	return f.String()
}
