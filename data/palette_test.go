package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPalette(t *testing.T) {
	p := DefaultPalette()
	require.Equal(t, 8, p.Len())

	stone, ok := p.ByName("stone")
	require.True(t, ok)
	assert.Equal(t, uint8(3), stone.ID)
	assert.Equal(t, "#", stone.Glyph)
	assert.Same(t, stone, p.ByID(3))

	assert.Nil(t, p.ByID(0))
	assert.Nil(t, p.ByID(200))
	assert.False(t, p.IsSolid(0))
	assert.False(t, p.IsSolid(6), "water")
	assert.True(t, p.IsSolid(3))
	assert.True(t, p.IsSolid(200))
}

func TestParsePaletteRejects(t *testing.T) {
	cases := map[string]string{
		"zero id":      "blocks:\n  - {id: 0, name: air}\n",
		"duplicate id": "blocks:\n  - {id: 1, name: a}\n  - {id: 1, name: b}\n",
		"dup name":     "blocks:\n  - {id: 1, name: a}\n  - {id: 2, name: a}\n",
		"no name":      "blocks:\n  - {id: 4}\n",
		"out of range": "blocks:\n  - {id: 300, name: big}\n",
		"unknown key":  "blocks:\n  - {id: 1, name: a, texture: x}\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePalette(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadPalette(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "palette.yaml")
	require.NoError(t, os.WriteFile(path, []byte("blocks:\n  - {id: 9, name: glass, glyph: 'o', solid: true}\n"), 0o644))

	p, err := LoadPalette(path)
	require.NoError(t, err)
	assert.Equal(t, "glass", p.ByID(9).Name)

	_, err = LoadPalette(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestPaletteNext(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, uint8(2), p.Next(1, 1))
	assert.Equal(t, uint8(1), p.Next(8, 1))
	assert.Equal(t, uint8(8), p.Next(1, -1))
	assert.Equal(t, uint8(1), p.Next(99, 0))
}

func TestBlocksIsCopy(t *testing.T) {
	p := DefaultPalette()
	blocks := p.Blocks()
	blocks[0].Name = "changed"
	assert.Equal(t, "grass", p.ByID(1).Name)
}
