package voxel

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/lixenwraith/vi-voxel/core"
)

// Face is one of the six axis-aligned cube faces
type Face int

const (
	FaceLeft Face = iota
	FaceRight
	FaceBottom
	FaceTop
	FaceBack
	FaceFront
)

// FaceCount is the number of cube faces
const FaceCount = 6

// corner is one quad vertex: unit-cube offset and tile-local UV
type corner struct {
	pos mgl32.Vec3
	uv  mgl32.Vec2
}

type faceTemplate struct {
	uvRow   int
	dir     core.Vec3i
	normal  mgl32.Vec3
	corners [4]corner
}

// Corner order and UVs match the three.js voxel atlas layout; changing either breaks existing atlases
var faceTemplates = [FaceCount]faceTemplate{
	FaceLeft: {
		uvRow:  0,
		dir:    core.Vec3i{X: -1},
		normal: mgl32.Vec3{-1, 0, 0},
		corners: [4]corner{
			{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{0, 1}},
			{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 0}},
			{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{1, 1}},
			{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{1, 0}},
		},
	},
	FaceRight: {
		uvRow:  0,
		dir:    core.Vec3i{X: 1},
		normal: mgl32.Vec3{1, 0, 0},
		corners: [4]corner{
			{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{0, 1}},
			{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{0, 0}},
			{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{1, 1}},
			{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{1, 0}},
		},
	},
	FaceBottom: {
		uvRow:  1,
		dir:    core.Vec3i{Y: -1},
		normal: mgl32.Vec3{0, -1, 0},
		corners: [4]corner{
			{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{1, 0}},
			{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{0, 0}},
			{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{1, 1}},
			{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{0, 1}},
		},
	},
	FaceTop: {
		uvRow:  2,
		dir:    core.Vec3i{Y: 1},
		normal: mgl32.Vec3{0, 1, 0},
		corners: [4]corner{
			{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{1, 1}},
			{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{0, 1}},
			{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{1, 0}},
			{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{0, 0}},
		},
	},
	FaceBack: {
		uvRow:  0,
		dir:    core.Vec3i{Z: -1},
		normal: mgl32.Vec3{0, 0, -1},
		corners: [4]corner{
			{mgl32.Vec3{1, 0, 0}, mgl32.Vec2{0, 0}},
			{mgl32.Vec3{0, 0, 0}, mgl32.Vec2{1, 0}},
			{mgl32.Vec3{1, 1, 0}, mgl32.Vec2{0, 1}},
			{mgl32.Vec3{0, 1, 0}, mgl32.Vec2{1, 1}},
		},
	},
	FaceFront: {
		uvRow:  0,
		dir:    core.Vec3i{Z: 1},
		normal: mgl32.Vec3{0, 0, 1},
		corners: [4]corner{
			{mgl32.Vec3{0, 0, 1}, mgl32.Vec2{0, 0}},
			{mgl32.Vec3{1, 0, 1}, mgl32.Vec2{1, 0}},
			{mgl32.Vec3{0, 1, 1}, mgl32.Vec2{0, 1}},
			{mgl32.Vec3{1, 1, 1}, mgl32.Vec2{1, 1}},
		},
	},
}

// Dir returns the unit offset toward the neighbor across this face
func (f Face) Dir() core.Vec3i {
	return faceTemplates[f].dir
}

// Normal returns the outward face normal
func (f Face) Normal() mgl32.Vec3 {
	return faceTemplates[f].normal
}

// UVRow returns the atlas row used for this face: sides 0, bottom 1, top 2
func (f Face) UVRow() int {
	return faceTemplates[f].uvRow
}

func (f Face) String() string {
	switch f {
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	case FaceBottom:
		return "bottom"
	case FaceTop:
		return "top"
	case FaceBack:
		return "back"
	case FaceFront:
		return "front"
	}
	return "unknown"
}

// FaceFromNormal maps a unit axis normal back to its face
func FaceFromNormal(n core.Vec3i) (Face, bool) {
	for f := Face(0); f < FaceCount; f++ {
		if faceTemplates[f].dir == n {
			return f, true
		}
	}
	return 0, false
}
