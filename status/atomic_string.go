package status

import (
	"sync/atomic"
)

// MaxStringLen caps stored labels so HUD lines stay bounded
const MaxStringLen = 32

// String is an atomic label, zero value reads ""
type String struct {
	ptr atomic.Pointer[string]
}

// Store sets the label, truncating to MaxStringLen bytes
func (s *String) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

func (s *String) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}
