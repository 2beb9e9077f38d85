// Package image loads and saves copies of a device's configuration space.
//
// An image is what a bus-access layer leaves behind: the bytes of sysfs
// `config`, the text of `lspci -x`, or either one lz4 compressed.  The
// register views only ever see the Command/Status doubleword at 0x04.
package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/prequel-dev/pcireg/internal/pkg/register"
	"github.com/prequel-dev/pcireg/internal/pkg/zerr"
)

const (
	HeaderSz    = 64   // standardized header
	ConfigSz    = 256  // conventional PCI config space
	ExtConfigSz = 4096 // PCIe extended config space

	OffsetCommandStatus = 0x04

	// Hex dumps of a full extended space run to about 13KiB of text.
	maxInputSz = 64 << 10
)

var lz4FrameMagic = []byte{0x04, 0x22, 0x4d, 0x18}

type FormatT uint8

const (
	FormatBinary FormatT = iota
	FormatHex
)

func (f FormatT) String() string {
	switch f {
	case FormatBinary:
		return "binary"
	case FormatHex:
		return "hex"
	}
	return "undefined"
}

type Image struct {
	data       []byte
	format     FormatT
	compressed bool
}

// New wraps a copy of data as a binary image.
func New(data []byte) (*Image, error) {
	if err := checkSize(len(data)); err != nil {
		return nil, err
	}
	return &Image{data: bytes.Clone(data)}, nil
}

// Read loads an image, sniffing lz4 framing, hex dump text and raw binary
// in that order.  lz4 framing is only unwrapped once.  Input is taken as
// hex when any line carries an offset prefix; text with no such line is
// rejected rather than read as binary.
func Read(rdr io.Reader) (*Image, error) {
	buf, err := readLimited(rdr)
	if err != nil {
		return nil, err
	}

	im := &Image{}

	if bytes.HasPrefix(buf, lz4FrameMagic) {
		if buf, err = readLimited(lz4.NewReader(bytes.NewReader(buf))); err != nil {
			return nil, err
		}
		if bytes.HasPrefix(buf, lz4FrameMagic) {
			return nil, fmt.Errorf("%w: nested lz4 frame", zerr.ErrImageFormat)
		}
		im.compressed = true
	}

	switch {
	case hasHexLines(buf):
		if buf, err = parseHexDump(buf); err != nil {
			return nil, err
		}
		im.format = FormatHex
	case isText(buf):
		return nil, fmt.Errorf("%w: no hex dump lines", zerr.ErrImageFormat)
	}

	if err := checkSize(len(buf)); err != nil {
		return nil, err
	}

	im.data = buf
	return im, nil
}

func readLimited(rdr io.Reader) ([]byte, error) {
	buf, err := io.ReadAll(io.LimitReader(rdr, maxInputSz+1))
	switch {
	case err != nil:
		return nil, errors.Join(zerr.ErrImageRead, err)
	case len(buf) > maxInputSz:
		return nil, fmt.Errorf("%w: input exceeds %d bytes", zerr.ErrImageSize, maxInputSz)
	}
	return buf, nil
}

// Config space is dword addressed, so a real image is a whole number
// of dwords between the standard header and the extended space.
func checkSize(n int) error {
	switch {
	case n < HeaderSz || n > ExtConfigSz:
		return fmt.Errorf("%w: %d bytes, want %d..%d", zerr.ErrImageSize, n, HeaderSz, ExtConfigSz)
	case n%4 != 0:
		return fmt.Errorf("%w: %d bytes is not a whole number of dwords", zerr.ErrImageSize, n)
	}
	return nil
}

func (im *Image) Len() int         { return len(im.data) }
func (im *Image) Format() FormatT  { return im.format }
func (im *Image) Compressed() bool { return im.compressed }
func (im *Image) Bytes() []byte    { return bytes.Clone(im.data) }
func (im *Image) Extended() bool   { return len(im.data) > ConfigSz }

func (im *Image) checkOffset(off int) error {
	if off < 0 || off%4 != 0 || off+4 > len(im.data) {
		return fmt.Errorf("%w: 0x%x in %d byte image", zerr.ErrOffset, off, len(im.data))
	}
	return nil
}

// Dword reads the little-endian doubleword at a 4-byte aligned offset.
func (im *Image) Dword(off int) (uint32, error) {
	if err := im.checkOffset(off); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(im.data[off : off+4]), nil
}

func (im *Image) SetDword(off int, v uint32) error {
	if err := im.checkOffset(off); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(im.data[off:off+4], v)
	return nil
}

func (im *Image) CommandStatus() register.CommandStatus {
	// Offset 0x04 always fits; images are at least HeaderSz long.
	return register.NewCommandStatus(binary.LittleEndian.Uint32(im.data[OffsetCommandStatus:]))
}

// ApplyCommand writes c into the Command/Status doubleword with
// read-modify-write semantics and returns the new doubleword.
func (im *Image) ApplyCommand(c register.Command) register.CommandStatus {
	dword := im.CommandStatus().Raw()
	c.WriteInfo(&dword)
	binary.LittleEndian.PutUint32(im.data[OffsetCommandStatus:], dword)
	return register.NewCommandStatus(dword)
}
