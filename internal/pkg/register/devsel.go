package register

import (
	"fmt"

	"github.com/prequel-dev/pcireg/internal/pkg/zerr"
)

// DevselTiming is the slowest time a device asserts DEVSEL# for any bus
// command except configuration space reads and writes.
//
// PCIe devices always report DevselFast.
type DevselTiming uint8

const (
	DevselFast DevselTiming = iota
	DevselMedium
	DevselSlow

	devselFastStr   = "fast"
	devselMediumStr = "medium"
	devselSlowStr   = "slow"
)

// DevselCodeError reports a 2-bit DEVSEL timing code that maps to no
// defined timing class.  It matches both zerr.ErrUnrecognized and
// zerr.ErrDevselTiming under errors.Is.
type DevselCodeError struct {
	Code uint8
}

func (e *DevselCodeError) Error() string {
	return fmt.Sprintf("%s: 0x%x", zerr.ErrDevselTiming, e.Code)
}

func (e *DevselCodeError) Unwrap() []error {
	return []error{zerr.ErrUnrecognized, zerr.ErrDevselTiming}
}

// DecodeDevselTiming maps a 2-bit code onto its timing class.
// Code 0b11 is reserved and fails, as does anything wider than 2 bits.
func DecodeDevselTiming(code uint8) (DevselTiming, error) {
	switch code {
	case 0x0:
		return DevselFast, nil
	case 0x1:
		return DevselMedium, nil
	case 0x2:
		return DevselSlow, nil
	}
	return 0, &DevselCodeError{Code: code}
}

func (t DevselTiming) valid() bool {
	return t <= DevselSlow
}

func (t DevselTiming) String() (s string) {
	if !t.valid() {
		return "undefined"
	}
	switch t {
	case DevselFast:
		s = devselFastStr
	case DevselMedium:
		s = devselMediumStr
	case DevselSlow:
		s = devselSlowStr
	}
	return
}
