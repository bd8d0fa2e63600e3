package render

import (
	"sync"

	"github.com/lixenwraith/vi-voxel/core"
	"github.com/lixenwraith/vi-voxel/voxel"
)

// Recorder is a headless sink and drawer that keeps what it was given
type Recorder struct {
	mu      sync.Mutex
	meshes  map[core.Entity]*voxel.Mesh
	uploads int
	draws   int
	last    Scene
	size    [2]int
}

func NewRecorder() *Recorder {
	return &Recorder{meshes: make(map[core.Entity]*voxel.Mesh)}
}

func (r *Recorder) UploadMesh(owner core.Entity, m *voxel.Mesh) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meshes[owner] = m
	r.uploads++
}

func (r *Recorder) Draw(scene Scene) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = scene
	r.draws++
}

// Mesh returns the latest upload for owner
func (r *Recorder) Mesh(owner core.Entity) (*voxel.Mesh, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.meshes[owner]
	return m, ok
}

func (r *Recorder) Uploads() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.uploads
}

func (r *Recorder) Draws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.draws
}

// LastScene returns the most recent drawn scene
func (r *Recorder) LastScene() Scene {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Resize records the latest viewport size
func (r *Recorder) Resize(width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.size = [2]int{width, height}
}

// Size returns the last size passed to Resize
func (r *Recorder) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size[0], r.size[1]
}
