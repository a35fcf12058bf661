package util

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// error

type Error struct {
	orig error
	msg  string
	code error
}

func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

func (e *Error) Unwrap() error {
	return e.orig
}

// Is lets errors.Is match on the error code as well as on the wrapped error.
func (e *Error) Is(target error) bool {
	return e.code != nil && errors.Is(e.code, target)
}

func WrapErrorf(orig error, code error, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

func (e *Error) Code() error {
	return e.code
}

var (
	ErrInternalServerError = errors.New("internal Server Error")
	ErrNotFound            = errors.New("your requested Item is not found")
	ErrBadParamInput       = errors.New("given Param is not valid")

	// ErrConfiguration invalid weighting setup, fatal at construction time
	ErrConfiguration = errors.New("invalid weighting configuration")
	// ErrInvalidInput invalid edge data met during weight evaluation
	ErrInvalidInput = errors.New("invalid edge input")
)

// ConfigErrorf returns an ErrConfiguration coded error.
func ConfigErrorf(format string, a ...interface{}) error {
	return WrapErrorf(nil, ErrConfiguration, format, a...)
}

func DegreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

func RadiansToDegree(rad float64) float64 {
	return 180.0 * rad / math.Pi
}

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

// NonNegative floors v at zero.
func NonNegative[T constraints.Float](v T) T {
	if v < 0 {
		return 0
	}
	return v
}

// MaxOf returns the largest element of vals, or def when vals is empty.
func MaxOf[T constraints.Integer | constraints.Float](def T, vals ...T) T {
	if len(vals) == 0 {
		return def
	}
	m := vals[0]
	for _, v := range vals[1:] {
		if v > m {
			m = v
		}
	}
	return m
}

func ReverseG[T any](arr []T) []T {
	copyArr := make([]T, len(arr)) // should do on the copy )
	copy(copyArr, arr)
	for i, j := 0, len(copyArr)-1; i < j; i, j = i+1, j-1 {
		copyArr[i], copyArr[j] = copyArr[j], copyArr[i]
	}
	return copyArr
}

// SecondsToMillis rounds seconds to milliseconds, saturating infinite or overflowing values.
func SecondsToMillis(seconds float64) int64 {
	if math.IsInf(seconds, 1) || seconds*1000 >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Round(seconds * 1000))
}
