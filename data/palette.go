package data

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-voxel/asset"
)

// Block is static data for one voxel id
type Block struct {
	ID    uint8  `yaml:"id"`
	Name  string `yaml:"name"`
	Glyph string `yaml:"glyph"`
	Color string `yaml:"color"` // "#rrggbb" or a named terminal color
	Sound string `yaml:"sound"`
	Solid bool   `yaml:"solid"`
}

type paletteFile struct {
	Blocks []Block `yaml:"blocks"`
}

// Palette holds block definitions indexed by id and name
type Palette struct {
	blocks []Block
	byID   [256]*Block
	byName map[string]*Block
}

// LoadPalette reads a palette from a YAML file
func LoadPalette(path string) (*Palette, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette %s: %w", path, err)
	}
	p, err := ParsePalette(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

// ParsePalette decodes YAML; ids must be 1..255 and unique, names unique
func ParsePalette(r io.Reader) (*Palette, error) {
	var f paletteFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse palette: %w", err)
	}
	return NewPalette(f.Blocks)
}

// NewPalette validates and indexes blocks, keeping their order
func NewPalette(blocks []Block) (*Palette, error) {
	p := &Palette{
		blocks: make([]Block, len(blocks)),
		byName: make(map[string]*Block, len(blocks)),
	}
	copy(p.blocks, blocks)
	for i := range p.blocks {
		b := &p.blocks[i]
		if b.ID == 0 {
			return nil, fmt.Errorf("block %q: id 0 is reserved for empty", b.Name)
		}
		if b.Name == "" {
			return nil, fmt.Errorf("block %d: missing name", b.ID)
		}
		if prev := p.byID[b.ID]; prev != nil {
			return nil, fmt.Errorf("block %q: id %d already used by %q", b.Name, b.ID, prev.Name)
		}
		if _, dup := p.byName[b.Name]; dup {
			return nil, fmt.Errorf("block %d: duplicate name %q", b.ID, b.Name)
		}
		p.byID[b.ID] = b
		p.byName[b.Name] = b
	}
	return p, nil
}

// DefaultPalette returns the built-in palette
func DefaultPalette() *Palette {
	p, err := ParsePalette(bytes.NewReader([]byte(asset.DefaultPalette)))
	if err != nil {
		panic(err)
	}
	return p
}

// ByID returns the block for id, nil for empty or undefined ids
func (p *Palette) ByID(id uint8) *Block {
	return p.byID[id]
}

// ByName returns the block called name
func (p *Palette) ByName(name string) (*Block, bool) {
	b, ok := p.byName[name]
	return b, ok
}

// Blocks returns the definitions in file order
func (p *Palette) Blocks() []Block {
	out := make([]Block, len(p.blocks))
	copy(out, p.blocks)
	return out
}

func (p *Palette) Len() int {
	return len(p.blocks)
}

// IsSolid reports whether id blocks movement; undefined nonzero ids count as solid
func (p *Palette) IsSolid(id uint8) bool {
	if id == 0 {
		return false
	}
	if b := p.byID[id]; b != nil {
		return b.Solid
	}
	return true
}

// Next returns the id after current in file order, wrapping around
func (p *Palette) Next(current uint8, step int) uint8 {
	if len(p.blocks) == 0 {
		return 0
	}
	idx := 0
	for i := range p.blocks {
		if p.blocks[i].ID == current {
			idx = i
			break
		}
	}
	n := len(p.blocks)
	idx = ((idx+step)%n + n) % n
	return p.blocks[idx].ID
}
