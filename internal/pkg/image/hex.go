package image

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/prequel-dev/pcireg/internal/pkg/zerr"
)

const hexBytesPerLine = 16

func isPrintable(buf []byte) bool {
	for _, b := range buf {
		switch {
		case b == '\n', b == '\r', b == '\t':
		case b < 0x20, b > 0x7e:
			return false
		}
	}
	return true
}

func isText(buf []byte) bool {
	return len(buf) > 0 && isPrintable(buf)
}

// hasHexLines reports whether any line is shaped like an `lspci -x`
// offset line.  Only those lines must be ASCII; the device header line
// carries pci.ids names, which may be UTF-8.
func hasHexLines(buf []byte) bool {
	for _, line := range bytes.Split(buf, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		off, _, ok := bytes.Cut(line, []byte(": "))
		if ok && isHexOffset(string(off)) && isPrintable(line) {
			return true
		}
	}
	return false
}

func isHexOffset(s string) bool {
	if len(s) < 2 || len(s) > 3 {
		return false
	}
	_, err := strconv.ParseUint(s, 16, 16)
	return err == nil
}

// Parse `lspci -x` style text.  Lines that do not start with a hex
// offset, such as the device header line, are skipped.  Offsets must
// run contiguously from zero, so only one device per dump.
func parseHexDump(buf []byte) ([]byte, error) {
	var (
		out []byte
		sc  = bufio.NewScanner(bytes.NewReader(buf))
	)

	for lineNo := 1; sc.Scan(); lineNo++ {
		off, rest, ok := strings.Cut(strings.TrimSpace(sc.Text()), ": ")
		if !ok || !isHexOffset(off) {
			continue
		}

		o, _ := strconv.ParseUint(off, 16, 16)
		if int(o) != len(out) {
			return nil, fmt.Errorf("%w: line %d offset 0x%x, expected 0x%x", zerr.ErrImageFormat, lineNo, o, len(out))
		}

		for _, tok := range strings.Fields(rest) {
			if len(tok) != 2 {
				return nil, fmt.Errorf("%w: line %d bad byte %q", zerr.ErrImageFormat, lineNo, tok)
			}
			b, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d bad byte %q", zerr.ErrImageFormat, lineNo, tok)
			}
			out = append(out, byte(b))
		}
	}

	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", zerr.ErrImageFormat, err)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no hex dump lines", zerr.ErrImageFormat)
	}

	return out, nil
}

// WriteHexDump writes the image as `lspci -x` style text, sixteen bytes
// per line.  Offsets past 0xff widen to three digits as lspci does.
func (im *Image) WriteHexDump(w io.Writer) (int64, error) {
	var (
		wcnt = &wrCnt{Writer: w}
		bw   = bufio.NewWriter(wcnt)
	)

	for off := 0; off < len(im.data); off += hexBytesPerLine {
		if off < 0x100 {
			fmt.Fprintf(bw, "%02x:", off)
		} else {
			fmt.Fprintf(bw, "%03x:", off)
		}
		end := min(off+hexBytesPerLine, len(im.data))
		for _, b := range im.data[off:end] {
			fmt.Fprintf(bw, " %02x", b)
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return int64(wcnt.cnt), fmt.Errorf("%w: %w", zerr.ErrImageWrite, err)
	}
	return int64(wcnt.cnt), nil
}
