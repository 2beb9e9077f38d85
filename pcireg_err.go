package pcireg

import (
	"errors"

	"github.com/prequel-dev/pcireg/internal/pkg/register"
	"github.com/prequel-dev/pcireg/internal/pkg/zerr"
)

//  Forward declare internal errors

const (
	ErrUnrecognized = zerr.ErrUnrecognized
	ErrDevselTiming = zerr.ErrDevselTiming
	ErrImageRead    = zerr.ErrImageRead
	ErrImageWrite   = zerr.ErrImageWrite
	ErrImageSize    = zerr.ErrImageSize
	ErrImageFormat  = zerr.ErrImageFormat
	ErrOffset       = zerr.ErrOffset
)

// DevselCodeError carries the reserved DEVSEL timing code that failed to decode.
type DevselCodeError = register.DevselCodeError

// Returns true if 'err' indicates that a register field held an
// encoding the PCI specification does not define.
func IsUnrecognized(err error) bool {
	return errors.Is(err, ErrUnrecognized)
}
