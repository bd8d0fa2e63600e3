package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-voxel/data"
	"github.com/lixenwraith/vi-voxel/vmath"
)

var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)
	RgbEmptyFloor = tcell.NewRGBColor(60, 62, 80)
	RgbUnknown    = tcell.NewRGBColor(180, 180, 180)
	RgbPlayer     = tcell.NewRGBColor(255, 165, 0)
	RgbTarget     = tcell.NewRGBColor(255, 255, 255)
	RgbParticle   = tcell.NewRGBColor(200, 200, 255)
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255)
	RgbStatusBg   = tcell.NewRGBColor(40, 42, 60)
)

// Terminal draws a top-down column view of the chunk around the player
// Each screen cell shows the highest block of one world column, shaded by
// its height relative to the player's feet; the last row is the HUD
type Terminal struct {
	screen tcell.Screen
	looks  map[uint8]blockLook
	base   tcell.Style
}

type blockLook struct {
	glyph rune
	color tcell.Color
}

func NewTerminal(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		looks:  make(map[uint8]blockLook),
		base:   tcell.StyleDefault.Background(RgbBackground),
	}
}

// Screen exposes the underlying screen for event polling
func (t *Terminal) Screen() tcell.Screen {
	return t.screen
}

// Resize repaints the whole screen after the terminal changed size
func (t *Terminal) Resize(_, _ int) {
	t.screen.Sync()
}

func (t *Terminal) Draw(scene Scene) {
	w, h := t.screen.Size()
	t.screen.Fill(' ', t.base)
	if w <= 0 || h <= 1 {
		t.screen.Show()
		return
	}
	mapH := h - 1

	cx, cz, feet := t.center(scene)
	ox, oz := cx-w/2, cz-mapH/2

	if scene.Grid != nil {
		for sy := 0; sy < mapH; sy++ {
			for sx := 0; sx < w; sx++ {
				t.drawColumn(scene, sx, sy, ox+sx, oz+sy, feet)
			}
		}
	}

	for _, p := range scene.Particles {
		sx, sy := vmath.FloorInt(p[0])-ox, vmath.FloorInt(p[2])-oz
		if sx >= 0 && sx < w && sy >= 0 && sy < mapH {
			t.screen.SetContent(sx, sy, '\'', nil, t.base.Foreground(RgbParticle))
		}
	}

	if scene.HasTarget {
		sx, sy := scene.Target.X-ox, scene.Target.Z-oz
		if sx >= 0 && sx < w && sy >= 0 && sy < mapH && scene.Grid != nil {
			glyph, _ := t.cell(scene, scene.Target.X, scene.Target.Z, feet)
			t.screen.SetContent(sx, sy, glyph, nil, t.base.Foreground(RgbTarget).Reverse(true))
		}
	}

	if scene.HasPlayer {
		t.screen.SetContent(cx-ox, cz-oz, heading(scene.Yaw), nil, t.base.Foreground(RgbPlayer).Bold(true))
	}

	t.drawStatus(scene, w, h-1)
	t.screen.Show()
}

// center returns the world column under the screen center and the reference height
func (t *Terminal) center(scene Scene) (x, z, feet int) {
	if scene.HasPlayer {
		return vmath.FloorInt(scene.Player[0]), vmath.FloorInt(scene.Player[2]), vmath.FloorInt(scene.Player[1])
	}
	if scene.Grid != nil {
		o := scene.Grid.Origin()
		half := scene.Grid.CellSize() / 2
		return o.X + half, o.Z + half, o.Y + half
	}
	return 0, 0, 0
}

func (t *Terminal) drawColumn(scene Scene, sx, sy, wx, wz, feet int) {
	if glyph, st := t.cell(scene, wx, wz, feet); glyph != 0 {
		t.screen.SetContent(sx, sy, glyph, nil, st)
	}
}

// cell resolves the glyph and style of world column (wx, wz); glyph 0 is outside the chunk
func (t *Terminal) cell(scene Scene, wx, wz, feet int) (rune, tcell.Style) {
	y, v, ok := scene.Grid.TopY(wx, wz)
	if !ok {
		if scene.Grid.Contains(wx, scene.Grid.Origin().Y, wz) {
			return '.', t.base.Foreground(RgbEmptyFloor)
		}
		return 0, t.base
	}
	look := t.look(scene.Palette, v)
	return look.glyph, t.base.Foreground(Shade(look.color, y-feet))
}

func (t *Terminal) look(p *data.Palette, v uint8) blockLook {
	if l, ok := t.looks[v]; ok {
		return l
	}
	l := blockLook{glyph: '?', color: RgbUnknown}
	var b *data.Block
	if p != nil {
		b = p.ByID(v)
	}
	if b != nil {
		l.glyph = '#'
		for _, r := range b.Glyph {
			l.glyph = r
			break
		}
		if c := tcell.GetColor(b.Color); c != tcell.ColorDefault {
			l.color = c
		}
	}
	t.looks[v] = l
	return l
}

func (t *Terminal) drawStatus(scene Scene, w, row int) {
	name := "-"
	if scene.Palette != nil {
		if b := scene.Palette.ByID(scene.Selected); b != nil {
			name = b.Name
		}
	}
	line := fmt.Sprintf(" frame %d | faces %d | block %s | pos %.1f %.1f %.1f",
		scene.Frame, scene.Faces, name, scene.Player[0], scene.Player[1], scene.Player[2])
	if scene.Status != "" {
		line += " | " + scene.Status
	}
	st := tcell.StyleDefault.Foreground(RgbStatusBar).Background(RgbStatusBg)
	x := 0
	for _, r := range line {
		if x >= w {
			break
		}
		t.screen.SetContent(x, row, r, nil, st)
		x++
	}
	for ; x < w; x++ {
		t.screen.SetContent(x, row, ' ', nil, st)
	}
}

// Shade brightens columns above the reference height and darkens those below
func Shade(c tcell.Color, dy int) tcell.Color {
	if !c.Valid() {
		return c
	}
	factor := vmath.Clamp(1+0.08*float64(dy), 0.35, 1.4)
	r, g, b := c.RGB()
	scale := func(v int32) int32 {
		return int32(math.Min(255, float64(v)*factor))
	}
	return tcell.NewRGBColor(scale(r), scale(g), scale(b))
}

// heading picks an arrow for the view yaw; screen up is world -Z
func heading(yaw float64) rune {
	d := vmath.LookDir(yaw, 0)
	if math.Abs(d[0]) > math.Abs(d[2]) {
		if d[0] > 0 {
			return '>'
		}
		return '<'
	}
	if d[2] < 0 {
		return '^'
	}
	return 'v'
}
