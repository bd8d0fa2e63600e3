package voxel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countFacesByNormal(m *Mesh) map[[3]float32]int {
	out := make(map[[3]float32]int)
	for i := 0; i < len(m.Normals); i += 12 {
		n := [3]float32{m.Normals[i], m.Normals[i+1], m.Normals[i+2]}
		out[n]++
	}
	return out
}

func TestMeshSingleVoxel(t *testing.T) {
	g := NewGrid(8, ChunkCoord{})
	g.SetVoxel(3, 3, 3, 1)

	m := NewMeshBuilder(DefaultAtlas).Build(g)
	assert.Equal(t, 6, m.FaceCount())
	assert.Equal(t, 24, m.VertexCount())
	assert.Equal(t, 12, m.TriangleCount())
	assert.Len(t, m.Normals, 24*3)
	assert.Len(t, m.UVs, 24*2)
}

func TestMeshAdjacentPairCullsSharedFace(t *testing.T) {
	g := NewGrid(8, ChunkCoord{})
	g.SetVoxel(3, 3, 3, 1)
	g.SetVoxel(4, 3, 3, 1)

	m := NewMeshBuilder(DefaultAtlas).Build(g)
	assert.Equal(t, 10, m.FaceCount())

	faces := countFacesByNormal(m)
	assert.Equal(t, 1, faces[[3]float32{1, 0, 0}])
	assert.Equal(t, 1, faces[[3]float32{-1, 0, 0}])
	assert.Equal(t, 2, faces[[3]float32{0, 1, 0}])
}

func TestMeshFullBottomLayer(t *testing.T) {
	g := NewGrid(8, ChunkCoord{})
	for z := 0; z < 8; z++ {
		for x := 0; x < 8; x++ {
			g.SetVoxel(x, 0, z, 1)
		}
	}

	m := NewMeshBuilder(DefaultAtlas).Build(g)
	faces := countFacesByNormal(m)

	assert.Equal(t, 64, faces[[3]float32{0, 1, 0}], "top")
	// Below y=0 is outside the chunk, which counts as empty
	assert.Equal(t, 64, faces[[3]float32{0, -1, 0}], "bottom")
	assert.Equal(t, 8, faces[[3]float32{1, 0, 0}])
	assert.Equal(t, 8, faces[[3]float32{-1, 0, 0}])
	assert.Equal(t, 8, faces[[3]float32{0, 0, 1}])
	assert.Equal(t, 8, faces[[3]float32{0, 0, -1}])
	assert.Equal(t, 160, m.FaceCount())
}

func TestMeshChunkBoundaryIsOpen(t *testing.T) {
	g := NewGrid(2, ChunkCoord{})
	g.Fill(func(x, y, z int) uint8 { return 1 })

	m := NewMeshBuilder(DefaultAtlas).Build(g)
	// Solid 2x2x2 block: only the 24 outer faces
	assert.Equal(t, 24, m.FaceCount())
}

func TestMeshTopFaceTemplate(t *testing.T) {
	g := NewGrid(4, ChunkCoord{})
	g.SetVoxel(0, 0, 0, 2)

	m := NewMeshBuilder(DefaultAtlas).Build(g)
	require.Equal(t, 6, m.FaceCount())

	// Faces are emitted in Face order: left, right, bottom, top, back, front
	top := 3 * 4
	assert.Equal(t, []float32{0, 1, 1}, m.Positions[top*3:top*3+3])
	assert.Equal(t, []float32{0, 1, 0}, m.Normals[top*3:top*3+3])

	// Block 2 → column 1; top row 2; first corner uv (1,1)
	u := m.UVs[top*2]
	v := m.UVs[top*2+1]
	assert.InDelta(t, float32(2*16)/256, u, 1e-6)
	assert.InDelta(t, 1-float32(2+1-1)*16/64, v, 1e-6)

	// Index pattern of the top quad
	base := uint32(top)
	assert.Equal(t, []uint32{base, base + 1, base + 2, base + 2, base + 1, base + 3}, m.Indices[18:24])
}

func TestMeshWorldSpacePositions(t *testing.T) {
	g := NewGrid(4, ChunkCoord{X: 1})
	g.SetVoxel(4, 0, 0, 1)

	m := NewMeshBuilder(DefaultAtlas).Build(g)
	// Left face first corner is (0,1,0) offset from the voxel
	assert.Equal(t, []float32{4, 1, 0}, m.Positions[0:3])
}

func TestMeshBuilderReuseDoesNotAlias(t *testing.T) {
	b := NewMeshBuilder(DefaultAtlas)
	g := NewGrid(4, ChunkCoord{})
	g.SetVoxel(0, 0, 0, 1)
	first := b.Build(g)

	g.SetVoxel(2, 2, 2, 1)
	second := b.Build(g)

	assert.Equal(t, 6, first.FaceCount())
	assert.Equal(t, 12, second.FaceCount())
}

func TestMeshEmptyGrid(t *testing.T) {
	m := NewMeshBuilder(DefaultAtlas).Build(NewGrid(4, ChunkCoord{}))
	assert.True(t, m.IsEmpty())
}
