package racer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/arcade-vault/internal/core"
)

// Visual characters for rendering
const (
	PlayerChar   = '█'
	ObstacleChar = '▓'
	EdgeChar     = '┃'
	MarkingChar  = '╎'
	AsphaltChar  = '░'
)

var variantColors = []core.Color{
	core.ColorBrightMagenta,
	core.ColorPink,
	core.ColorBrightYellow,
}

const (
	hudRows     = 2 // HUD line plus a spacer
	minRoadRows = 6
	controlHint = "←/→ or A/D move · Space pause · R reset"
)

// layout maps playfield units to terminal cells for one frame.
type layout struct {
	top       int     // First playfield row
	rows      int     // Playfield height in rows
	roadX     int     // First road column
	laneCols  int     // Columns per lane
	unitsPerY float64 // Playfield units per row
}

func (g *Game) layout(dst *core.Screen) (layout, bool) {
	lanes := g.cfg.Road.Lanes
	rows := dst.Height() - hudRows
	if !g.runtime.HideControls {
		rows--
	}
	laneCols := core.Min(g.cfg.Render.LaneColumns, (dst.Width()-2)/lanes)
	if rows < minRoadRows || laneCols < 1 {
		return layout{}, false
	}
	return layout{
		top:       hudRows,
		rows:      rows,
		roadX:     (dst.Width() - laneCols*lanes) / 2,
		laneCols:  laneCols,
		unitsPerY: g.cfg.Playfield.Height / float64(rows),
	}, true
}

// rowSpan converts a vertical interval to the rows it covers, at least one.
func (l layout) rowSpan(y, h float64) (int, int) {
	first := l.top + int(math.Floor(y/l.unitsPerY))
	last := l.top + int(math.Ceil((y+h)/l.unitsPerY)) - 1
	return first, core.Max(first, last)
}

// carSpan returns the columns a car of the given width occupies in a lane.
func (g *Game) carSpan(l layout, lane int, width float64) (int, int) {
	cols := int(math.Round(width / g.cfg.LaneWidth() * float64(l.laneCols)))
	cols = core.Clamp(cols, 1, l.laneCols)
	first := l.roadX + lane*l.laneCols + (l.laneCols-cols)/2
	return first, first + cols - 1
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}
	snap := g.engine.Snapshot()

	l, ok := g.layout(dst)
	if !ok {
		dst.DrawTextCentered(dst.Height()/2, "Terminal too small", core.ColorBrightRed)
		return
	}

	g.drawHUD(dst, snap)
	g.drawRoad(dst, l, snap.Offset)

	for _, o := range snap.Obstacles {
		color := variantColors[o.Variant%len(variantColors)]
		g.drawCar(dst, l, o.Lane, o.Y, g.cfg.Obstacles.Width, g.cfg.Obstacles.Height, ObstacleChar, color)
	}
	g.drawCar(dst, l, snap.Lane, snap.Player.Y, snap.Player.W, snap.Player.H, PlayerChar, core.ColorBrightCyan)

	if !g.runtime.HideControls {
		dst.DrawTextCentered(dst.Height()-1, controlHint, core.ColorCyan)
	}

	switch {
	case snap.Over:
		drawMessage(dst, core.ColorBrightMagenta, "GAME OVER", fmt.Sprintf("Score: %d", snap.Score), "Press R to restart")
	case snap.Paused:
		drawMessage(dst, core.ColorBrightCyan, "PAUSED", "Press Space to resume")
	}
}

func (g *Game) drawHUD(dst *core.Screen, snap Snapshot) {
	score := fmt.Sprintf("SCORE: %d", snap.Score)
	speed := fmt.Sprintf("SPEED: %d", int(math.Floor(snap.Speed*10)))
	high := fmt.Sprintf("HIGH: %d", snap.HighScore)

	dst.DrawTextColored(1, 0, score, core.ColorBrightCyan)
	dst.DrawTextCentered(0, speed, core.ColorBrightCyan)
	dst.DrawTextColored(dst.Width()-len(high)-1, 0, high, core.ColorBrightCyan)
}

// drawRoad draws the asphalt, the glowing edges and the dashed lane
// markings. Dashes scroll down with the road offset.
func (g *Game) drawRoad(dst *core.Screen, l layout, offset float64) {
	lanes := g.cfg.Road.Lanes
	roadW := l.laneCols * lanes

	dst.DrawRect(core.NewRect(l.roadX, l.top, roadW, l.rows), AsphaltChar, core.ColorAsphalt)
	dst.DrawVLine(l.roadX-1, l.top, l.rows, EdgeChar, core.ColorBrightCyan)
	dst.DrawVLine(l.roadX+roadW, l.top, l.rows, EdgeChar, core.ColorBrightCyan)

	period := g.cfg.Road.TilePeriod
	for row := 0; row < l.rows; row++ {
		y := float64(row) * l.unitsPerY
		phase := math.Mod(y-offset+period/2, period)
		if phase < 0 {
			phase += period
		}
		if phase >= period/2 {
			continue
		}
		for i := 1; i < lanes; i++ {
			dst.SetColored(l.roadX+i*l.laneCols, l.top+row, MarkingChar, core.ColorYellow)
		}
	}
}

func (g *Game) drawCar(dst *core.Screen, l layout, lane int, y, w, h float64, ch rune, c core.Color) {
	firstRow, lastRow := l.rowSpan(y, h)
	firstCol, lastCol := g.carSpan(l, lane, w)
	bottom := l.top + l.rows - 1

	for row := core.Max(firstRow, l.top); row <= core.Min(lastRow, bottom); row++ {
		for col := firstCol; col <= lastCol; col++ {
			dst.SetColored(col, row, ch, c)
		}
	}
}

// drawMessage draws a boxed message in the center of the screen.
func drawMessage(dst *core.Screen, c core.Color, lines ...string) {
	width := 0
	for _, line := range lines {
		width = core.Max(width, len([]rune(line)))
	}
	boxW := width + 4
	boxH := len(lines) + 2
	box := core.NewRect((dst.Width()-boxW)/2, (dst.Height()-boxH)/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, c)
	for i, line := range lines {
		x := box.X + (boxW-len([]rune(line)))/2
		dst.DrawTextColored(x, box.Y+1+i, line, c)
	}
}
