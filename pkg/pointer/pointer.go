// Package pointer contains helpers to work with optional values expressed as pointers.
package pointer

// Of takes the pointer of the passed value.
func Of[T any](v T) *T { return &v }

// Deref returns the referenced value,
// or the zero value of T when the pointer is nil.
func Deref[T any](v *T) T {
	if v == nil {
		var zero T
		return zero
	}
	return *v
}
