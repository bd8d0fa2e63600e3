package system

import (
	"time"

	"github.com/lixenwraith/vi-voxel/audio"
	"github.com/lixenwraith/vi-voxel/data"
	"github.com/lixenwraith/vi-voxel/engine"
	"github.com/lixenwraith/vi-voxel/event"
	"github.com/lixenwraith/vi-voxel/voxel"
)

// Fallback sounds for blocks without a palette sound
const (
	soundPlace = "place"
	soundBreak = "break"
)

// SoundSystem plays the palette sound of a block when it is placed or removed
type SoundSystem struct {
	engine.SystemBase
	player  audio.Player
	palette *data.Palette
}

// NewSoundSystem creates the system; a nil player is silent
func NewSoundSystem(w *engine.World, player audio.Player, palette *data.Palette) *SoundSystem {
	if player == nil {
		player = audio.Nop{}
	}
	return &SoundSystem{
		SystemBase: engine.NewSystemBase(w, NameSound),
		player:     player,
		palette:    palette,
	}
}

func (s *SoundSystem) OnInit() error {
	s.RegisterEvent(event.VoxelChanged, s.handleVoxelChanged)
	return nil
}

func (s *SoundSystem) OnUpdate(_ time.Duration) {}

func (s *SoundSystem) handleVoxelChanged(ev event.Event) {
	p, ok := ev.Payload.(event.VoxelChangedPayload)
	if !ok {
		return
	}
	id, fallback := p.New, soundPlace
	if p.New == voxel.Empty {
		id, fallback = p.Old, soundBreak
	}
	s.player.Play(s.soundFor(id, fallback))
}

func (s *SoundSystem) soundFor(id uint8, fallback string) string {
	if s.palette == nil {
		return fallback
	}
	if b := s.palette.ByID(id); b != nil && b.Sound != "" {
		return b.Sound
	}
	return fallback
}
