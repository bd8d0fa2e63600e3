package voxel

// Mesh is a derived render buffer: 4 vertices and 6 indices per visible face
// Treated as immutable once handed to a renderer
type Mesh struct {
	Positions []float32 // xyz per vertex
	Normals   []float32 // xyz per vertex
	UVs       []float32 // uv per vertex
	Indices   []uint32  // 2 triangles per face
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// FaceCount returns the number of emitted quads
func (m *Mesh) FaceCount() int {
	return len(m.Indices) / 6
}

// IsEmpty reports whether no face was emitted
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0
}

// MeshBuilder turns a Grid into a face-culled Mesh
// A face is emitted iff its neighbor is empty or outside the chunk; no greedy merging
type MeshBuilder struct {
	Atlas AtlasLayout

	// scratch buffers reused across builds, Build copies out of them
	positions []float32
	normals   []float32
	uvs       []float32
	indices   []uint32
}

// NewMeshBuilder creates a builder for the given atlas layout
func NewMeshBuilder(atlas AtlasLayout) *MeshBuilder {
	return &MeshBuilder{Atlas: atlas}
}

// Build emits the mesh for the grid's resident chunk, positions in world voxel units
func (b *MeshBuilder) Build(g *Grid) *Mesh {
	b.positions = b.positions[:0]
	b.normals = b.normals[:0]
	b.uvs = b.uvs[:0]
	b.indices = b.indices[:0]

	size := g.CellSize()
	o := g.Origin()

	for y := 0; y < size; y++ {
		wy := o.Y + y
		for z := 0; z < size; z++ {
			wz := o.Z + z
			for x := 0; x < size; x++ {
				wx := o.X + x
				v := g.Voxel(wx, wy, wz)
				if v == Empty {
					continue
				}
				for f := Face(0); f < FaceCount; f++ {
					if n, _ := g.Neighbor(wx, wy, wz, f); n != Empty {
						continue
					}
					b.emitFace(f, v, wx, wy, wz)
				}
			}
		}
	}

	return &Mesh{
		Positions: append([]float32(nil), b.positions...),
		Normals:   append([]float32(nil), b.normals...),
		UVs:       append([]float32(nil), b.uvs...),
		Indices:   append([]uint32(nil), b.indices...),
	}
}

func (b *MeshBuilder) emitFace(f Face, v uint8, x, y, z int) {
	tpl := &faceTemplates[f]
	base := uint32(len(b.positions) / 3)

	for _, c := range tpl.corners {
		b.positions = append(b.positions,
			c.pos[0]+float32(x),
			c.pos[1]+float32(y),
			c.pos[2]+float32(z),
		)
		b.normals = append(b.normals, tpl.normal[0], tpl.normal[1], tpl.normal[2])
		uv := b.Atlas.UV(v, tpl.uvRow, c.uv[0], c.uv[1])
		b.uvs = append(b.uvs, uv[0], uv[1])
	}

	b.indices = append(b.indices,
		base, base+1, base+2,
		base+2, base+1, base+3,
	)
}
