package render

import (
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/data"
	"github.com/lixenwraith/vi-voxel/voxel"
)

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func flatScene() Scene {
	g := voxel.NewGrid(8, voxel.ChunkCoord{})
	g.Fill(func(x, y, z int) uint8 {
		if y == 0 {
			return 1
		}
		return voxel.Empty
	})
	return Scene{
		Frame:     12,
		Grid:      g,
		Palette:   data.DefaultPalette(),
		Player:    mgl64.Vec3{4.5, 1, 4.5},
		HasPlayer: true,
		Faces:     160,
		Selected:  3,
	}
}

func rowText(screen tcell.SimulationScreen, row, w int) string {
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := screen.GetContent(x, row)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestTerminalDrawsColumnsAndHUD(t *testing.T) {
	screen := newScreen(t, 20, 10)
	term := NewTerminal(screen)
	term.Draw(flatScene())

	hud := rowText(screen, 9, 20)
	assert.Contains(t, hud, "frame 12")

	// Player at column (4,4) is drawn at the center of the 20x9 map area
	r, _, _, _ := screen.GetContent(10, 4)
	assert.Equal(t, '^', r)

	// Neighbouring column is grass
	r, _, _, _ = screen.GetContent(11, 4)
	assert.Equal(t, '"', r)

	// Outside the chunk stays blank
	r, _, _, _ = screen.GetContent(0, 0)
	assert.Equal(t, ' ', r)
}

func TestTerminalHighlightsTarget(t *testing.T) {
	screen := newScreen(t, 20, 10)
	term := NewTerminal(screen)
	scene := flatScene()
	scene.Target = core.Vec3i{X: 5, Y: 0, Z: 4}
	scene.HasTarget = true
	term.Draw(scene)

	r, _, st, _ := screen.GetContent(11, 4)
	assert.Equal(t, '"', r)
	assert.Equal(t, tcell.StyleDefault.Background(RgbBackground).Foreground(RgbTarget).Reverse(true), st)
}

func TestTerminalTinyScreen(t *testing.T) {
	screen := newScreen(t, 1, 1)
	term := NewTerminal(screen)
	assert.NotPanics(t, func() { term.Draw(flatScene()) })
	assert.NotPanics(t, func() { term.Draw(Scene{}) })
}

func TestShade(t *testing.T) {
	c := tcell.NewRGBColor(100, 100, 100)
	assert.Equal(t, c, Shade(c, 0))

	r, _, _ := Shade(c, -5).RGB()
	assert.Less(t, r, int32(100))
	r, _, _ = Shade(c, 5).RGB()
	assert.Greater(t, r, int32(100))
	r, _, _ = Shade(tcell.NewRGBColor(250, 250, 250), 10).RGB()
	assert.Equal(t, int32(255), r)

	assert.Equal(t, tcell.ColorDefault, Shade(tcell.ColorDefault, 3))
}

func TestHeading(t *testing.T) {
	assert.Equal(t, '^', heading(0))
	assert.Equal(t, 'v', heading(math.Pi))
	assert.Equal(t, '>', heading(-math.Pi/2))
	assert.Equal(t, '<', heading(math.Pi/2))
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	var sink MeshSink = r
	var drawer Drawer = r

	m := &voxel.Mesh{}
	sink.UploadMesh(3, m)
	got, ok := r.Mesh(3)
	require.True(t, ok)
	assert.Same(t, m, got)
	_, ok = r.Mesh(4)
	assert.False(t, ok)

	drawer.Draw(Scene{Frame: 5})
	assert.Equal(t, 1, r.Uploads())
	assert.Equal(t, 1, r.Draws())
	assert.Equal(t, int64(5), r.LastScene().Frame)
}
