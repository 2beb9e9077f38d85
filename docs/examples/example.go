package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/prequel-dev/pcireg"
)

// Output of `lspci -x` for a single device; only the first 64 bytes.
const lspciDump = `00:1f.6 Ethernet controller: Intel Corporation Ethernet Connection (7) I219-LM (rev 10)
00: 86 80 bb 15 06 04 10 00 10 00 00 02 00 00 00 00
10: 00 00 f0 ef 00 00 00 00 00 00 00 00 00 00 00 00
20: 00 00 00 00 00 00 00 00 00 00 00 00 28 10 5f 08
30: 00 00 00 00 c8 00 00 00 00 00 00 00 ff 01 00 00
`

// Demonstrate decoding the Command/Status doubleword of an image.
func inspect(src io.Reader) (*pcireg.Image, error) {

	snap, err := pcireg.Inspect(src)
	if err != nil {
		return nil, err
	}

	// A reserved devsel code is reported per field; the rest still decodes.
	if _, err := snap.Status().DevselTiming(); err != nil {
		fmt.Println("devsel:", err)
	}

	fmt.Println(snap.Command())
	fmt.Println(snap.Status())
	return snap.Image, nil
}

// Demonstrate a read-modify-write of the Command register.
func quiesce(im *pcireg.Image, dst io.Writer) error {

	// Seed from the live value so untouched fields are preserved.
	cmd := im.CommandStatus().Command().Builder().
		BusMastering(false).
		InterruptDisable(true).
		Build()

	// Only bits 0-6 and 8-10 are written; Status is left alone.
	after := im.ApplyCommand(cmd)
	fmt.Printf("command/status now 0x%08x\n", after.Raw())

	_, err := im.WriteHexDump(dst)
	return err
}

func main() {

	var out bytes.Buffer

	im, err := inspect(strings.NewReader(lspciDump))
	if err != nil {
		panic(err)
	}

	if err := quiesce(im, &out); err != nil {
		panic(err)
	}

	fmt.Print(out.String())
}
