package argparse

import (
	"encoding"
	"fmt"
	"io"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
)

// Parse is implemented by custom argument types that can be built from a
// single string. Example is shown in the usage text.
type Parse interface {
	FromString(s string) error
	Example() string
}

// converter turns one text segment into a value of typ.
type converter struct {
	typ     reflect.Type
	parse   func(string) (any, error)
	format  func(any) string
	example string
}

// Registry maps a Go type to the function converting text into it.
//
// Registrations must happen before the registry is used by concurrent parses.
type Registry struct {
	mu sync.RWMutex
	m  map[reflect.Type]converter
}

// DefaultRegistry is used by schemas created without WithRegistry.
var DefaultRegistry = NewRegistry()

// NewRegistry returns a registry holding the built-in conversions: string,
// bool, every int and uint width, float32, float64 and time.Duration.
func NewRegistry() *Registry {
	r := &Registry{m: make(map[reflect.Type]converter)}

	Register(r, func(s string) (string, error) { return s, nil })
	Register(r, strconv.ParseBool)
	Register(r, parseSigned[int](strconv.IntSize))
	Register(r, parseSigned[int8](8))
	Register(r, parseSigned[int16](16))
	Register(r, parseSigned[int32](32))
	Register(r, parseSigned[int64](64))
	Register(r, parseUnsigned[uint](strconv.IntSize))
	Register(r, parseUnsigned[uint8](8))
	Register(r, parseUnsigned[uint16](16))
	Register(r, parseUnsigned[uint32](32))
	Register(r, parseUnsigned[uint64](64))
	Register(r, func(s string) (float32, error) {
		f, err := strconv.ParseFloat(s, 32)
		return float32(f), err
	})
	Register(r, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
	Register(r, time.ParseDuration)
	return r
}

func parseSigned[T ~int | ~int8 | ~int16 | ~int32 | ~int64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		i, err := strconv.ParseInt(s, 0, bits)
		return T(i), err
	}
}

func parseUnsigned[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](bits int) func(string) (T, error) {
	return func(s string) (T, error) {
		u, err := strconv.ParseUint(s, 0, bits)
		return T(u), err
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Register installs parse as the conversion for T, replacing any previous one.
func Register[T any](r *Registry, parse func(string) (T, error)) {
	t := typeOf[T]()
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.m[t]
	if !ok {
		c = converter{typ: t, format: formatValue}
	}
	c.parse = func(s string) (any, error) {
		return parse(s)
	}
	r.m[t] = c
}

// RegisterFormat installs the inverse of a registered conversion, used when
// bound values are written back to tokens or printed. It panics if T has no
// registered conversion.
func RegisterFormat[T any](r *Registry, format func(T) string) {
	t := typeOf[T]()
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.m[t]
	if !ok {
		panic(fmt.Sprintf("RegisterFormat: type %s has no registered conversion", t))
	}
	c.format = func(v any) string {
		return format(v.(T))
	}
	r.m[t] = c
}

// RegisterEnum registers T as an enumeration: names[i] converts to T(i).
// Names match case-insensitively.
func RegisterEnum[T ~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](
	r *Registry, names ...string,
) {
	table := append([]string(nil), names...)
	Register(r, func(s string) (T, error) {
		for i, name := range table {
			if strings.EqualFold(name, s) {
				return T(i), nil
			}
		}
		return 0, errors.Errorf("%q is not one of %s", s, strings.Join(table, "|"))
	})
	RegisterFormat(r, func(v T) string {
		i := int(v)
		if i < 0 || i >= len(table) {
			return strconv.Itoa(i)
		}
		return table[i]
	})
	r.mu.Lock()
	c := r.m[typeOf[T]()]
	c.example = strings.Join(table, "|")
	r.m[typeOf[T]()] = c
	r.mu.Unlock()
}

// Convert converts text into a T with the conversion registered in r. A
// slice T without its own registration takes a comma separated list of
// its element type.
func Convert[T any](r *Registry, text string) (zero T, err error) {
	t := typeOf[T]()
	c, ok := r.lookup(t)
	if !ok && t.Kind() == reflect.Slice {
		if elem, ok := r.lookup(t.Elem()); ok {
			v, bad, err := listOf(t, elem, splitList(text))
			if err != nil {
				return zero, errors.Wrapf(err, "convert %q to %s", bad, t)
			}
			return v.(T), nil
		}
	}
	if !ok {
		return zero, errors.Errorf("no converter registered for type %s", t)
	}
	v, err := c.parse(text)
	if err != nil {
		return zero, errors.Wrapf(err, "convert %q to %s", text, t)
	}
	return v.(T), nil
}

var (
	parseType           = reflect.TypeOf((*Parse)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// lookup returns the converter for t. Types without a registration still
// convert when they (or their pointer) implement Parse or
// encoding.TextUnmarshaler.
func (r *Registry) lookup(t reflect.Type) (converter, bool) {
	r.mu.RLock()
	c, ok := r.m[t]
	r.mu.RUnlock()
	if ok {
		return c, true
	}

	switch {
	case t.Kind() == reflect.Pointer && t.Implements(parseType):
		return methodConverter(t, true, func(p any, s string) error {
			return p.(Parse).FromString(s)
		}), true
	case reflect.PointerTo(t).Implements(parseType):
		return methodConverter(t, false, func(p any, s string) error {
			return p.(Parse).FromString(s)
		}), true
	case t.Kind() == reflect.Pointer && t.Implements(textUnmarshalerType):
		return methodConverter(t, true, func(p any, s string) error {
			return p.(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
		}), true
	case reflect.PointerTo(t).Implements(textUnmarshalerType):
		return methodConverter(t, false, func(p any, s string) error {
			return p.(encoding.TextUnmarshaler).UnmarshalText([]byte(s))
		}), true
	}
	return converter{}, false
}

// methodConverter builds a converter calling set on a freshly allocated
// value. When isPtr is true t is itself a pointer type and the new pointer is
// the result. A value that fails to convert is closed if it is an io.Closer.
func methodConverter(t reflect.Type, isPtr bool, set func(p any, s string) error) converter {
	elem := t
	if isPtr {
		elem = t.Elem()
	}
	c := converter{
		typ:    t,
		format: formatValue,
		parse: func(s string) (any, error) {
			p := reflect.New(elem)
			if err := set(p.Interface(), s); err != nil {
				// the value is dropped, release what it holds
				if c, ok := p.Interface().(io.Closer); ok {
					c.Close()
				}
				return nil, err
			}
			if isPtr {
				return p.Interface(), nil
			}
			return p.Elem().Interface(), nil
		},
	}
	if e, ok := reflect.New(elem).Interface().(Parse); ok {
		c.example = e.Example()
	}
	return c
}

// formatValue is the default inverse of a conversion.
func formatValue(v any) string {
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ""
	}
	switch x := v.(type) {
	case nil:
		return ""
	case fmt.Stringer:
		return x.String()
	case encoding.TextMarshaler:
		b, err := x.MarshalText()
		if err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}
