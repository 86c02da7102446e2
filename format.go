package stacklog

import (
	"fmt"
	"strings"
)

// Unit selects how a duration is printed.
type Unit string

// Units. UnitAuto picks the smallest readable unit for the magnitude.
const (
	UnitAuto         Unit = "auto"
	UnitNanoseconds  Unit = "ns"
	UnitMicroseconds Unit = "us"
	UnitMilliseconds Unit = "ms"
	UnitSeconds      Unit = "s"
	UnitMinutes      Unit = "min"
)

var scales = map[Unit]float64{
	UnitNanoseconds:  1e9,
	UnitMicroseconds: 1e6,
	UnitMilliseconds: 1e3,
	UnitSeconds:      1,
	UnitMinutes:      1.0 / 60,
}

// ParseUnit resolves a unit selector. "mks" and "µs" are accepted for microseconds.
func ParseUnit(s string) (Unit, error) {
	switch s {
	case "mks", "µs":
		return UnitMicroseconds, nil
	}
	u := Unit(s)
	if !u.valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, s)
	}
	return u, nil
}

// Suffix returns the text printed after a value in this unit.
// UnitAuto has no fixed suffix.
func (u Unit) Suffix() string {
	if u == UnitAuto {
		return ""
	}
	return string(u)
}

func (u Unit) valid() bool {
	if u == UnitAuto {
		return true
	}
	_, ok := scales[u]
	return ok
}

// FormatDuration prints sec, a duration in seconds, in the given unit with
// two decimals, e.g. "12.50 ms".
func FormatDuration(unit Unit, sec float64) (string, error) {
	if unit == UnitAuto {
		unit = autoUnit(sec)
	}
	scale, ok := scales[unit]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownUnit, string(unit))
	}
	return strings.TrimLeft(fmt.Sprintf("%8.2f %s", sec*scale, unit), " "), nil
}

func autoUnit(sec float64) Unit {
	switch {
	case sec < 1e-6:
		return UnitNanoseconds
	case sec < 1e-3:
		return UnitMicroseconds
	case sec < 1:
		return UnitMilliseconds
	case sec < 180:
		return UnitSeconds
	default:
		return UnitMinutes
	}
}
