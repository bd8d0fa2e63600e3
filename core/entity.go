package core

import "strconv"

// Entity is an opaque entity handle, 0 is never issued and means "no entity"
type Entity uint64

// None is the zero entity handle
const None Entity = 0

// IsNone reports whether the handle is the zero handle
func (e Entity) IsNone() bool {
	return e == None
}

func (e Entity) String() string {
	return "entity#" + strconv.FormatUint(uint64(e), 10)
}
