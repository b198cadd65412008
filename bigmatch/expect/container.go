package expect

import "reflect"

// Property keys reported by Measure.
const (
	KeyLength = "length"
	KeySize   = "size"
)

// Container classifies how a subject is measured.
type Container uint8

const (
	// ContainerNone cannot be measured.
	ContainerNone Container = iota
	// ContainerSized is set or map-like and reports a size.
	ContainerSized
	// ContainerSequence is sequence-like and reports a length.
	ContainerSequence
)

// Key returns the property name used in messages.
func (c Container) Key() string {
	switch c {
	case ContainerSized:
		return KeySize
	case ContainerSequence:
		return KeyLength
	default:
		return ""
	}
}

type sizer interface {
	Size() int
}

type lener interface {
	Len() int
}

// ClassifyContainer returns the Container kind of v. Maps and types with a
// Size() int method are sized; slices, arrays, strings, channels and types
// with a Len() int method are sequences.
func ClassifyContainer(v any) Container {
	_, c := measure(v)
	return c
}

// Measure returns the property key and measured size or length of v.
func Measure(v any) (key string, n int, ok bool) {
	n, c := measure(v)
	if c == ContainerNone {
		return "", 0, false
	}

	return c.Key(), n, true
}

func measure(v any) (int, Container) {
	if v == nil {
		return 0, ContainerNone
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0, ContainerNone
		}

		if rv.Elem().Kind() == reflect.Array {
			return rv.Elem().Len(), ContainerSequence
		}
	}

	switch x := v.(type) {
	case sizer:
		return x.Size(), ContainerSized
	case lener:
		return x.Len(), ContainerSequence
	}

	switch rv.Kind() {
	case reflect.Map:
		return rv.Len(), ContainerSized
	case reflect.Slice, reflect.Array, reflect.String, reflect.Chan:
		return rv.Len(), ContainerSequence
	default:
		return 0, ContainerNone
	}
}
