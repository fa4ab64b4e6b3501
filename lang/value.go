package lang

import (
	"log/slog"
	"math"
	"reflect"
	"strconv"
)

// Value is a runtime value of the language. The set of implementations is
// closed: [Number], [String], [Boolean], [Nil] and [*Closure].
type Value interface {
	value()
}

// Number is a double-precision floating point value.
type Number float64

// String is an immutable string value.
type String string

// Boolean is a truth value.
type Boolean bool

// Nil is the absence of a value.
type Nil struct{}

func (Number) value()  {}
func (String) value()  {}
func (Boolean) value() {}
func (Nil) value()     {}

// Callable is a value that can be invoked with a call expression.
type Callable interface {
	Value
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
}

// Stringify returns the canonical string form of v used by print.
func Stringify(v Value) string {
	switch v := v.(type) {
	case nil, Nil:
		return "nil"

	case Number:
		return formatNumber(float64(v))

	case String:
		return string(v)

	case Boolean:
		return strconv.FormatBool(bool(v))

	case *Closure:
		return v.String()

	default:
		return "<unknown>"
	}
}

// formatNumber renders f using the shortest decimal that round-trips,
// without exponent notation.
func formatNumber(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"

	case math.IsInf(f, -1):
		return "-inf"

	case math.IsNaN(f):
		return "NaN"
	}

	return strconv.FormatFloat(f, 'f', -1, 64)
}

// IsTruthy reports whether v counts as true in a condition.
// Everything is truthy except false and nil.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case nil, Nil:
		return false

	case Boolean:
		return bool(v)

	default:
		return true
	}
}

// Equal reports whether a and b are the same value. Values of different
// types are never equal; functions compare by identity.
func Equal(a, b Value) bool {
	if a == nil {
		a = Nil{}
	}

	if b == nil {
		b = Nil{}
	}

	return a == b
}

// TypeName returns a short name for the dynamic type of v.
func TypeName(v Value) string {
	switch v.(type) {
	case nil, Nil:
		return "nil"

	case Number:
		return "number"

	case String:
		return "string"

	case Boolean:
		return "boolean"

	case Callable:
		return "function"

	default:
		return resultTypeName(v)
	}
}

// FromNative converts a Go value into a [Value]. Integers and floats of any
// width become numbers.
func FromNative(x any) (Value, error) {
	switch x := x.(type) {
	case nil:
		return Nil{}, nil

	case Value:
		return x, nil

	case bool:
		return Boolean(x), nil

	case string:
		return String(x), nil

	case float64:
		return Number(x), nil

	case float32:
		return Number(x), nil
	}

	rv := reflect.ValueOf(x)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Uint64, reflect.Uintptr:
		return Number(rv.Uint()), nil

	default:
		return nil, ErrUnsupportedValue.
			With(slog.String("type", resultTypeName(x)))
	}
}
