package core

// Vec3i is an integer voxel coordinate
type Vec3i struct {
	X, Y, Z int
}

// Add returns the component-wise sum
func (v Vec3i) Add(o Vec3i) Vec3i {
	return Vec3i{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Neg returns the negated vector
func (v Vec3i) Neg() Vec3i {
	return Vec3i{-v.X, -v.Y, -v.Z}
}

// IsZero reports whether all components are zero
func (v Vec3i) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}
