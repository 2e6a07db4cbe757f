package modes

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrFrameTooShort is returned when a frame's length does not match the
// length its Downlink Format requires (7 bytes for DF<16, 14 for DF>=16).
var ErrFrameTooShort = errors.New("modes: frame too short")

const (
	shortFrameLen = 7
	longFrameLen  = 14
)

// isLongFormat reports whether df requires a 112-bit (14-byte) frame.
func isLongFormat(df uint8) bool {
	return df >= 16
}

// hasSeparateCRCField reports whether df carries its 24-bit ICAO address
// as its own field, separate from the trailing parity/CRC field. These
// are the formats where noCRC=true legitimately shortens the wire frame
// by 3 bytes: everything else folds the address into the parity field
// itself, so there is nothing extra to strip.
func hasSeparateCRCField(df uint8) bool {
	return df == 11 || df == 17 || df == 18 || df == 19
}

// ParseFrame parses a packed Mode S frame into an Envelope. Frames are 7
// (short) or 14 (long) bytes when they carry their own trailing 24-bit
// parity/CRC field; noCRC indicates the caller has already stripped an
// already-validated CRC from a DF11/17/18/19 frame, in which case the
// wire frame is 3 bytes shorter (4 or 11 bytes). ParseFrame does not
// itself validate CRC — that is an external collaborator's job — so
// noCRC only changes the expected length, never the parsing logic.
func ParseFrame(frame []byte, noCRC bool) (Envelope, error) {
	if len(frame) == 0 {
		return Envelope{}, ErrFrameTooShort
	}

	df := (frame[0] >> 3) & 0x1F
	wantLen := shortFrameLen
	if isLongFormat(df) {
		wantLen = longFrameLen
	}
	if noCRC && hasSeparateCRCField(df) {
		wantLen -= 3
	}
	if len(frame) != wantLen {
		return Envelope{}, ErrFrameTooShort
	}

	env := Envelope{
		Raw:            append([]byte(nil), frame...),
		DownlinkFormat: df,
		FirstField:     frame[0] & 0x07,
	}

	switch df {
	case 11, 17, 18, 19:
		env.Address = uint32(frame[1])<<16 | uint32(frame[2])<<8 | uint32(frame[3])
	default:
		// Address (or non-ICAO identity) recovery via parity XOR is an
		// external, CRC-dependent concern; by the time a frame reaches
		// this parser its AP/PI field is assumed to already carry the
		// resolved 24-bit address, so we read it directly.
		n := len(frame)
		env.Address = uint32(frame[n-3])<<16 | uint32(frame[n-2])<<8 | uint32(frame[n-1])
	}

	if df == 18 {
		env.Qualifier = addressQualifierForCF(env.FirstField)
	} else {
		env.Qualifier = QualifierICAO24
	}

	if env.IsExtendedSquitter() && len(frame) >= 11 {
		env.ME = env.Raw[4:11]
	}

	return env, nil
}

// addressQualifierForCF maps a DF18 Control Field to the address qualifier
// of the emitter it describes (RTCA DO-260B Table 2-6).
func addressQualifierForCF(cf uint8) AddressQualifier {
	switch cf {
	case 0, 1:
		return QualifierICAO24
	case 2:
		return QualifierTISBICAO
	case 6:
		return QualifierADSR
	default: // 3, 4, 5, 7
		return QualifierTISBOther
	}
}

// ParseHex parses a Mode S frame given as a hex string: 14 or 28
// characters, or 8 or 22 when noCRC strips the parity of a DF11/17/18/19
// frame.
func ParseHex(hexStr string, noCRC bool) (Envelope, error) {
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return Envelope{}, fmt.Errorf("modes: invalid hex frame: %w", err)
	}
	return ParseFrame(raw, noCRC)
}
