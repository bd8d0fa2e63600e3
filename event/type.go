package event

import "strconv"

// Type identifies an event channel
type Type int

const (
	// Invalid is the zero value, never dispatched
	Invalid Type = iota

	// === Input Event ===

	// KeyDown reports a key press
	// Trigger: input translator | Consumer: InputSystem | Payload: KeyPayload
	KeyDown

	// KeyUp reports a key release, synthesized after the hold window on terminals
	// Trigger: input KeyTracker | Consumer: InputSystem | Payload: KeyPayload
	KeyUp

	// MouseEvent reports relative pointer motion
	// Trigger: input translator | Consumer: InputSystem | Payload: MousePayload
	MouseEvent

	// Click reports a button press at a screen position
	// Trigger: input translator | Consumer: InteractionSystem | Payload: ClickPayload
	Click

	// Resize reports a new viewport size
	// Trigger: input translator | Consumer: RenderSystem | Payload: ResizePayload
	Resize

	// === World Event ===

	// VoxelChanged signals a single cell write that altered the grid
	// Trigger: InteractionSystem, scripts | Consumer: SoundSystem | Payload: VoxelChangedPayload
	VoxelChanged

	// MeshRebuilt signals a fresh mesh upload
	// Trigger: MeshSystem | Consumer: RenderSystem, scripts | Payload: MeshRebuiltPayload
	MeshRebuilt

	// BlockPicked reports the raycast result of a click
	// Trigger: InteractionSystem | Consumer: RenderSystem | Payload: BlockPickedPayload
	BlockPicked

	// === Engine Event ===

	// SystemStarted follows a successful OnInit
	// Trigger: Scheduler | Payload: SystemPayload
	SystemStarted

	// SystemStopped follows OnClose
	// Trigger: Scheduler | Payload: SystemPayload
	SystemStopped

	// builtinEnd marks the first id available to custom channels
	builtinEnd
)

// Custom is the first id handed out to named custom channels
const Custom Type = 1000

// IsCustom reports whether t was allocated for a named custom channel
func (t Type) IsCustom() bool {
	return t >= Custom
}

func (t Type) String() string {
	if t > Invalid && t < builtinEnd {
		return builtinNames[t]
	}
	if t.IsCustom() {
		return "custom#" + strconv.Itoa(int(t-Custom))
	}
	return "invalid"
}

// Event is a single dispatched message
type Event struct {
	Type    Type
	Payload any
	Frame   int64
}
