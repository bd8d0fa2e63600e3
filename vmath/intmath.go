package vmath

// FloorDiv divides rounding toward negative infinity, b must be positive
func FloorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// EuclidMod returns a mod b in [0, b), b must be positive
// Truncating % would alias negative world coordinates into the wrong cell
func EuclidMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// FloorInt converts a float coordinate to the index of the cell containing it
func FloorInt(f float64) int {
	i := int(f)
	if float64(i) > f {
		i--
	}
	return i
}
