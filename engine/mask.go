package engine

// MaxTags is the number of distinct component tags a registry can index
const MaxTags = 256

// Mask is a set of up to 256 tag ids
type Mask [4]uint64

func (m *Mask) set(id uint8) {
	m[id>>6] |= uint64(1) << (id & 63)
}

func (m *Mask) unset(id uint8) {
	m[id>>6] &^= uint64(1) << (id & 63)
}

// Has reports whether id is in the set
func (m Mask) Has(id uint8) bool {
	return m[id>>6]&(uint64(1)<<(id&63)) != 0
}

// Contains reports whether every bit of sub is also set in m
func (m Mask) Contains(sub Mask) bool {
	return m[0]&sub[0] == sub[0] &&
		m[1]&sub[1] == sub[1] &&
		m[2]&sub[2] == sub[2] &&
		m[3]&sub[3] == sub[3]
}

func (m Mask) IsZero() bool {
	return m[0]|m[1]|m[2]|m[3] == 0
}
