// Package optional provides a generic Option type that makes the absence of a
// value explicit instead of relying on zero values or nil pointers.
//
// The zero value of Option is None:
//
//	var o optional.Option[string] // None
//	o = optional.Some("value")
//	if v, ok := o.Get(); ok {
//		fmt.Println(v)
//	}
package optional

import "fmt"

// Option holds either a value (Some) or nothing (None).
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns an Option holding v.
func Some[T any](v T) Option[T] {
	return Option[T]{value: v, ok: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the held value and true, or the zero value and false.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome reports whether the Option holds a value.
func (o Option[T]) IsSome() bool {
	return o.ok
}

// IsNone reports whether the Option is empty.
func (o Option[T]) IsNone() bool {
	return !o.ok
}

// OrElse returns the held value or def when the Option is empty.
func (o Option[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// String implements fmt.Stringer.
func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}
