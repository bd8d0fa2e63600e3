package voxel

import "github.com/go-gl/mathgl/mgl32"

// AtlasLayout describes the block texture atlas in pixels
// Column is the block type (voxel-1), row is the face UV row
type AtlasLayout struct {
	TileSize int
	Width    int
	Height   int
}

// DefaultAtlas is a 16px tile atlas of 16 columns by 4 rows
var DefaultAtlas = AtlasLayout{TileSize: 16, Width: 256, Height: 64}

// UV returns the texture coordinate of a face corner for block value v
//
//	u = (v-1 + cu) * tile / width
//	v = 1 - (row + 1 - cv) * tile / height
func (a AtlasLayout) UV(v uint8, row int, cu, cv float32) mgl32.Vec2 {
	tile := float32(a.TileSize)
	col := float32(int(v) - 1)
	return mgl32.Vec2{
		(col + cu) * tile / float32(a.Width),
		1 - (float32(row)+1-cv)*tile/float32(a.Height),
	}
}

// Columns returns how many block types fit across the atlas
func (a AtlasLayout) Columns() int {
	if a.TileSize <= 0 {
		return 0
	}
	return a.Width / a.TileSize
}
