package image

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/prequel-dev/pcireg/internal/pkg/register"
	"github.com/prequel-dev/pcireg/internal/pkg/zerr"
)

// Header of an Intel integrated graphics function as dumped by lspci -x.
const intelHexDump = `00:02.0 VGA compatible controller: Intel Corporation Device 9a49 (rev 01)
00: 86 80 49 9a 07 04 90 00 01 00 00 03 00 00 00 00
10: 04 00 00 2a 60 00 00 00 0c 00 00 00 40 00 00 00
20: 01 40 00 00 00 00 00 00 00 00 00 00 28 10 d6 0a
30: 00 00 00 00 40 00 00 00 00 00 00 00 ff 01 00 00
`

func sampleHeader() []byte {
	data := make([]byte, ConfigSz)
	copy(data, []byte{0x86, 0x80, 0x49, 0x9a, 0x07, 0x04, 0x90, 0x00})
	for i := HeaderSz; i < ConfigSz; i++ {
		data[i] = byte(i)
	}
	return data
}

func TestReadBinary(t *testing.T) {
	src := sampleHeader()
	im, err := Read(bytes.NewReader(src))
	switch {
	case err != nil:
		t.Fatalf("Expected clean read: %v", err)
	case im.Format() != FormatBinary:
		t.Errorf("Expected binary format, got %v", im.Format())
	case im.Compressed():
		t.Errorf("Expected uncompressed")
	case im.Len() != ConfigSz:
		t.Errorf("Expected %d bytes, got %d", ConfigSz, im.Len())
	case !bytes.Equal(im.Bytes(), src):
		t.Errorf("Bytes don't match")
	}

	cs := im.CommandStatus()
	if cs.Command().Raw() != 0x0407 || cs.Status().Raw() != 0x0090 {
		t.Errorf("Unexpected command/status 0x%08x", cs.Raw())
	}
}

func TestReadHexDump(t *testing.T) {
	im, err := Read(strings.NewReader(intelHexDump))
	if err != nil {
		t.Fatalf("Expected clean read: %v", err)
	}

	if im.Format() != FormatHex {
		t.Errorf("Expected hex format, got %v", im.Format())
	}
	if im.Len() != HeaderSz {
		t.Errorf("Expected %d bytes, got %d", HeaderSz, im.Len())
	}

	cs := im.CommandStatus()
	switch {
	case !cs.Command().IoSpaceAccessEnabled():
		t.Errorf("Expected io space enabled")
	case !cs.Command().InterruptsDisabled():
		t.Errorf("Expected interrupts disabled")
	case !cs.Status().HasCapabilityList():
		t.Errorf("Expected capability list")
	case !cs.Status().FastBackToBackCapable():
		t.Errorf("Expected fast back-to-back capable")
	}
}

// Device names come from pci.ids and may be UTF-8; only the offset lines
// decide the format.
func TestReadHexDumpUTF8Header(t *testing.T) {
	src := strings.Replace(intelHexDump, "Intel Corporation", "Intel Corporation Ä", 1)

	im, err := Read(strings.NewReader(src))
	switch {
	case err != nil:
		t.Fatalf("Expected clean read: %v", err)
	case im.Format() != FormatHex:
		t.Errorf("Expected hex format, got %v", im.Format())
	case im.Len() != HeaderSz:
		t.Errorf("Expected %d bytes, got %d", HeaderSz, im.Len())
	case im.CommandStatus().Raw() != 0x00900407:
		t.Errorf("Unexpected command/status 0x%08x", im.CommandStatus().Raw())
	}
}

func TestHexDumpRoundTrip(t *testing.T) {
	for _, sz := range []int{HeaderSz, ConfigSz, ExtConfigSz} {
		src := make([]byte, sz)
		for i := range src {
			src[i] = byte(i * 7)
		}
		im, err := New(src)
		if err != nil {
			t.Fatalf("size %d: %v", sz, err)
		}

		var buf bytes.Buffer
		n, err := im.WriteHexDump(&buf)
		if err != nil || n != int64(buf.Len()) {
			t.Fatalf("size %d: write hex n=%d err=%v", sz, n, err)
		}

		back, err := Read(&buf)
		if err != nil {
			t.Fatalf("size %d: read hex: %v", sz, err)
		}
		if !bytes.Equal(back.Bytes(), src) {
			t.Errorf("size %d: hex round trip mismatch", sz)
		}
	}
}

func TestCompressedRoundTrip(t *testing.T) {
	src := sampleHeader()
	im, err := New(src)
	if err != nil {
		t.Fatal(err)
	}

	for lvl := 0; lvl <= 9; lvl++ {
		var buf bytes.Buffer
		n, err := im.WriteCompressed(&buf, lvl)
		if err != nil {
			t.Fatalf("level %d: %v", lvl, err)
		}
		if n != int64(buf.Len()) {
			t.Errorf("level %d: reported %d bytes, wrote %d", lvl, n, buf.Len())
		}
		if !bytes.HasPrefix(buf.Bytes(), lz4FrameMagic) {
			t.Fatalf("level %d: missing lz4 magic", lvl)
		}

		back, err := Read(&buf)
		switch {
		case err != nil:
			t.Fatalf("level %d: %v", lvl, err)
		case !back.Compressed():
			t.Errorf("level %d: expected compressed flag", lvl)
		case !bytes.Equal(back.Bytes(), src):
			t.Errorf("level %d: bytes don't match", lvl)
		}
	}

	if _, err := im.WriteCompressed(io.Discard, 10); !errors.Is(err, zerr.ErrImageWrite) {
		t.Errorf("Expected level error, got %v", err)
	}
}

func TestReadErrors(t *testing.T) {

	tests := map[string]struct {
		src []byte
		err error
	}{
		"empty": {
			src: nil,
			err: zerr.ErrImageSize,
		},
		"short_binary": {
			src: make([]byte, HeaderSz-1),
			err: zerr.ErrImageSize,
		},
		"long_binary": {
			src: make([]byte, ExtConfigSz+4),
			err: zerr.ErrImageSize,
		},
		"oversized_input": {
			src: make([]byte, maxInputSz+1),
			err: zerr.ErrImageSize,
		},
		"hex_gap": {
			src: []byte("00: 00 00\n20: 00 00\n"),
			err: zerr.ErrImageFormat,
		},
		"hex_bad_byte": {
			src: []byte("00: 0g 00\n"),
			err: zerr.ErrImageFormat,
		},
		"hex_wide_byte": {
			src: []byte("00: 000 00\n"),
			err: zerr.ErrImageFormat,
		},
		"text_without_dump": {
			src: []byte("no config space here\n"),
			err: zerr.ErrImageFormat,
		},
		"odd_binary": {
			src: bytes.Repeat([]byte{0xff}, 285),
			err: zerr.ErrImageSize,
		},
		"misaligned_binary": {
			src: make([]byte, HeaderSz+2),
			err: zerr.ErrImageSize,
		},
		"text_utf8_without_dump": {
			src: []byte("Intel Corporation Ä has no offsets here\n"),
			err: zerr.ErrImageSize,
		},
		"hex_too_short": {
			src: []byte("00: 86 80 49 9a\n"),
			err: zerr.ErrImageSize,
		},
		"bad_lz4": {
			src: append(bytes.Clone(lz4FrameMagic), 0xff, 0xff, 0xff),
			err: zerr.ErrImageRead,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Read(bytes.NewReader(tc.src))
			if !errors.Is(err, tc.err) {
				t.Errorf("Expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestDwordOffsets(t *testing.T) {
	im, err := New(sampleHeader())
	if err != nil {
		t.Fatal(err)
	}

	for _, off := range []int{-4, 1, 2, 3, 0x41, ConfigSz, ConfigSz - 2} {
		if _, err := im.Dword(off); !errors.Is(err, zerr.ErrOffset) {
			t.Errorf("offset %d: expected ErrOffset, got %v", off, err)
		}
		if err := im.SetDword(off, 0); !errors.Is(err, zerr.ErrOffset) {
			t.Errorf("offset %d: expected ErrOffset on set, got %v", off, err)
		}
	}

	if err := im.SetDword(ConfigSz-4, 0xdeadbeef); err != nil {
		t.Fatalf("Expected clean set: %v", err)
	}
	if v, err := im.Dword(ConfigSz - 4); err != nil || v != 0xdeadbeef {
		t.Errorf("Expected 0xdeadbeef, got 0x%08x %v", v, err)
	}

	v, err := im.Dword(0)
	if err != nil || v != 0x9a498086 {
		t.Errorf("Expected little-endian id 0x9a498086, got 0x%08x %v", v, err)
	}
}

// ApplyCommand only moves the bits the Command register owns.
func TestApplyCommand(t *testing.T) {
	src := sampleHeader()
	// Bit 7 set plus reserved command bits and a full status half.
	copy(src[4:8], []byte{0x87, 0xF8, 0xF8, 0xFF})

	im, err := New(src)
	if err != nil {
		t.Fatal(err)
	}

	cmd := im.CommandStatus().Command().Builder().
		IoSpaceAccess(false).
		BusMastering(false).
		InterruptDisable(true).
		Build()

	got := im.ApplyCommand(cmd)

	if got.Raw() != 0xFFF8FC82 {
		t.Errorf("Expected 0xFFF8FC82, got 0x%08x", got.Raw())
	}
	if im.CommandStatus() != got {
		t.Errorf("Image not updated")
	}

	after := im.Bytes()
	if !bytes.Equal(after[:4], src[:4]) || !bytes.Equal(after[8:], src[8:]) {
		t.Errorf("Bytes outside the command/status dword changed")
	}

	var (
		seed = register.NewCommandStatus(0xFFF8F887)
		want = seed.WithCommand(cmd)
	)
	if got != want {
		t.Errorf("ApplyCommand 0x%08x disagrees with WithCommand 0x%08x", got.Raw(), want.Raw())
	}
}

func TestNewCopies(t *testing.T) {
	src := sampleHeader()
	im, err := New(src)
	if err != nil {
		t.Fatal(err)
	}
	src[4] = 0
	if im.CommandStatus().Command().Raw() != 0x0407 {
		t.Errorf("Image aliases caller buffer")
	}

	if _, err := New(src[:HeaderSz-4]); !errors.Is(err, zerr.ErrImageSize) {
		t.Errorf("Expected size error, got %v", err)
	}
}

func TestExtended(t *testing.T) {
	small, _ := New(make([]byte, ConfigSz))
	large, _ := New(make([]byte, ExtConfigSz))
	if small.Extended() || !large.Extended() {
		t.Errorf("Extended flag mismatch")
	}
}
