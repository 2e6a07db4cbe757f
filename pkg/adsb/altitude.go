package adsb

// decodeAC12 decodes a 12-bit "AC12" altitude field as used in ADS-B
// airborne position messages (RTCA DO-260B 2.2.3.2.3.4). Ported from
// dump1090's decodeAC12Field: bit 4 (value 0x10) is the Q-bit selecting
// 25-foot-resolution encoding; when clear the field is Gillham/Mode-C
// coded in 100-foot steps.
//
// Returns the altitude in feet and whether the field carried a value at
// all (an all-zero AC12 field means "altitude not available").
func decodeAC12(ac12 uint32) (int, bool) {
	if ac12 == 0 {
		return 0, false
	}

	if ac12&0x10 != 0 {
		n := ((ac12 & 0x0FE0) >> 1) | (ac12 & 0x000F)
		return int(n)*25 - 1000, true
	}

	// Gillham-coded 100-ft steps: reinsert the M bit (always 0 for ADS-B)
	// at bit 6 to recover the 13-bit Mode C field, then decode as Gillham.
	n13 := ((ac12 & 0x0FC0) << 1) | (ac12 & 0x003F)
	return decodeGillham(n13)
}

// decodeAC13 decodes the 13-bit altitude field carried by DF4/DF20
// surveillance altitude replies (RTCA DO-260B / ICAO Annex 10 Mode C).
// The layout differs from AC12 only in an extra M-bit slot that DF4/DF20
// frames leave as a real (usually zero) bit rather than omitting.
func decodeAC13(ac13 uint32) (int, bool) {
	if ac13 == 0 {
		return 0, false
	}
	if ac13&0x0010 != 0 {
		n := ((ac13 & 0x1F80) >> 2) | ((ac13 & 0x0020) >> 1) | (ac13 & 0x000F)
		return int(n)*25 - 1000, true
	}
	return decodeGillham(ac13)
}

// decodeGillham converts a 13-bit Gillham (Mode C gray) coded altitude to
// feet, in 100-foot steps. Returns false if the code does not represent a
// valid altitude (the C group decodes to 0, 5, or 6, which Gillham never
// assigns to a real hundreds digit).
func decodeGillham(n13 uint32) (int, bool) {
	c1 := (n13 >> 12) & 1
	a1 := (n13 >> 11) & 1
	c2 := (n13 >> 10) & 1
	a2 := (n13 >> 9) & 1
	c4 := (n13 >> 8) & 1
	a4 := (n13 >> 7) & 1
	b1 := (n13 >> 5) & 1
	d1 := (n13 >> 4) & 1
	b2 := (n13 >> 3) & 1
	d2 := (n13 >> 2) & 1
	b4 := (n13 >> 1) & 1
	d4 := (n13 >> 0) & 1

	hundreds := grayToBinary3(c1, c2, c4)
	if hundreds == 0 || hundreds == 5 || hundreds == 6 {
		return 0, false
	}
	if hundreds == 7 {
		hundreds = 5
	}

	fiveHundreds := grayToBinary9(d1, d2, d4, a1, a2, a4, b1, b2, b4)
	if fiveHundreds%2 != 0 {
		hundreds = 6 - hundreds
	}

	feet := fiveHundreds*500 + hundreds*100 - 1300
	return feet, true
}

// grayToBinary3 converts a 3-bit reflected-grey group (D1 D2 D4 or the C
// hundreds group) to its binary value.
func grayToBinary3(d1, d2, d4 uint32) int {
	b2 := d1
	b1 := b2 ^ d2
	b0 := b1 ^ d4
	return int(b2<<2 | b1<<1 | b0)
}

// grayToBinary9 converts the interleaved D/A/B nine-bit reflected-grey
// group used for the Gillham five-hundred-foot count to its binary value,
// following the bit order D1 D2 D4 A1 A2 A4 B1 B2 B4.
func grayToBinary9(d1, d2, d4, a1, a2, a4, b1, b2, b4 uint32) int {
	bits := [9]uint32{d1, d2, d4, a1, a2, a4, b1, b2, b4}
	var bin uint32
	var prev uint32
	for _, g := range bits {
		bit := g ^ prev
		bin = bin<<1 | bit
		prev = bit
	}
	return int(bin)
}

// decodeSquawk converts a raw 13-bit Mode A identity field into the 4-digit
// squawk code operators see (e.g. 1200, 7700).
func decodeSquawk(identity uint32) int {
	// Bit order from the MSB: C1 A1 C2 A2 C4 A4 X B1 D1 B2 D2 B4 D4.
	bit := func(n uint) uint32 { return (identity >> n) & 1 }
	a := bit(7)<<2 | bit(9)<<1 | bit(11)
	b := bit(1)<<2 | bit(3)<<1 | bit(5)
	c := bit(8)<<2 | bit(10)<<1 | bit(12)
	d := bit(0)<<2 | bit(2)<<1 | bit(4)
	return int(a)*1000 + int(b)*100 + int(c)*10 + int(d)
}

// decodeSurfaceMovement decodes the 7-bit surface Movement field (RTCA
// DO-260B Table 2-14) into ground speed in knots. Returns false if the
// field carries no information (0) or is reserved (>124).
func decodeSurfaceMovement(v uint32) (float64, bool) {
	switch {
	case v == 0:
		return 0, false
	case v == 1:
		return 0, true // stopped, < 0.125 kt
	case v >= 2 && v <= 8:
		return float64(v-1) * 0.125, true
	case v >= 9 && v <= 12:
		return 1 + float64(v-9)*0.25, true
	case v >= 13 && v <= 38:
		return 2 + float64(v-13)*0.5, true
	case v >= 39 && v <= 93:
		return 15 + float64(v-39), true
	case v >= 94 && v <= 108:
		return 70 + float64(v-94)*2, true
	case v >= 109 && v <= 123:
		return 100 + float64(v-109)*5, true
	case v == 124:
		return 175, true
	default:
		return 0, false
	}
}
