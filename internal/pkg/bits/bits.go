// Package bits holds the single bit and inclusive bit range helpers
// used by the configuration space register views.
//
// Positions are zero based from the least significant bit.  Ranges are
// inclusive on both ends, matching the [hi:lo] notation of PCI register maps.
package bits

func Test16(v uint16, pos uint8) bool {
	return v&(1<<pos) != 0
}

func Set16(v uint16, pos uint8, on bool) uint16 {
	if on {
		return v | (1 << pos)
	}
	return v &^ (1 << pos)
}

// Range16 extracts bits lo..hi of v, shifted down to bit 0.
func Range16(v uint16, lo, hi uint8) uint16 {
	return v >> lo & mask16(lo, hi)
}

// SetRange16 replaces bits lo..hi of v with the low bits of field.
// Bits of field above the range width are ignored.
func SetRange16(v uint16, lo, hi uint8, field uint16) uint16 {
	m := mask16(lo, hi)
	return v&^(m<<lo) | (field&m)<<lo
}

func Test32(v uint32, pos uint8) bool {
	return v&(1<<pos) != 0
}

func Set32(v uint32, pos uint8, on bool) uint32 {
	if on {
		return v | (1 << pos)
	}
	return v &^ (1 << pos)
}

func Range32(v uint32, lo, hi uint8) uint32 {
	return v >> lo & mask32(lo, hi)
}

func SetRange32(v uint32, lo, hi uint8, field uint32) uint32 {
	m := mask32(lo, hi)
	return v&^(m<<lo) | (field&m)<<lo
}

func mask16(lo, hi uint8) uint16 {
	return uint16(mask32(lo, hi))
}

func mask32(lo, hi uint8) uint32 {
	w := hi - lo + 1
	if w >= 32 {
		return ^uint32(0)
	}
	return (1 << w) - 1
}
