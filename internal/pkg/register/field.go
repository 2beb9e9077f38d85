package register

import (
	"fmt"
	"strconv"
	"strings"
)

// Field is one named entry of a register dump.
// Value is a bool, a DevselTiming, or the error a failed decode returned.
type Field struct {
	Name   string
	Lo, Hi uint8 // inclusive bit positions
	Value  any
}

func bitField(name string, pos uint8, v bool) Field {
	return Field{Name: name, Lo: pos, Hi: pos, Value: v}
}

// Bits renders the field position as "15" or "9-10".
func (f Field) Bits() string {
	if f.Lo == f.Hi {
		return strconv.Itoa(int(f.Lo))
	}
	return strconv.Itoa(int(f.Lo)) + "-" + strconv.Itoa(int(f.Hi))
}

// Err returns the decode failure carried by the field, if any.
func (f Field) Err() error {
	err, _ := f.Value.(error)
	return err
}

func formatFields(name string, fields []Field) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Name)
		sb.WriteString(": ")
		if err := f.Err(); err != nil {
			fmt.Fprintf(&sb, "Err(%v)", err)
		} else {
			fmt.Fprint(&sb, f.Value)
		}
	}
	sb.WriteByte('}')
	return sb.String()
}
