package asset

// DefaultConfig is the commented TOML written by voxelworld -init
// Values mirror config.Default
const DefaultConfig = `# voxelworld configuration

[world]
cell_size = 32
chunk = [0, 0, 0]
seed = 1337
base_height = 6
amplitude = 8
period = 12

[atlas]
tile_size = 16
width = 256
height = 64

[loop]
frame_interval = "33ms"

[player]
speed = 5.0
jump_speed = 8.0
reach = 6.0
eye_height = 1.6
look_sensitivity = 0.05

[physics]
gravity = -24.0

[logging]
level = "info"
format = "console"
file = "voxelworld.log"

[audio]
enabled = true
volume = 0.3
sample_rate = 44100

[paths]
# empty uses the built-in palette and sample script
palette = ""
script = ""
`
