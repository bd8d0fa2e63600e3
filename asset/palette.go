package asset

// DefaultPalette is the built-in block palette in YAML
// Ids index texture atlas columns and must stay stable once meshes ship
const DefaultPalette = `
blocks:
  - id: 1
    name: grass
    glyph: '"'
    color: "#4caf50"
    sound: soft
    solid: true
  - id: 2
    name: dirt
    glyph: ':'
    color: "#8d6e63"
    sound: soft
    solid: true
  - id: 3
    name: stone
    glyph: '#'
    color: "#9e9e9e"
    sound: hard
    solid: true
  - id: 4
    name: wood
    glyph: '='
    color: "#a1887f"
    sound: hollow
    solid: true
  - id: 5
    name: sand
    glyph: '.'
    color: "#fff59d"
    sound: soft
    solid: true
  - id: 6
    name: water
    glyph: '~'
    color: "#42a5f5"
    sound: splash
    solid: false
  - id: 7
    name: brick
    glyph: '%'
    color: "#e57373"
    sound: hard
    solid: true
  - id: 8
    name: leaves
    glyph: '*'
    color: "#2e7d32"
    sound: soft
    solid: true
`
