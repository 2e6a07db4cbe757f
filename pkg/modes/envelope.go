// Package modes parses the outer Mode S envelope shared by every downlink
// reply: Downlink Format, the CA/CF/AF field, the ICAO24 (or non-ICAO)
// address, and the ME payload slice for Extended Squitter frames.
//
// CRC/parity validation is treated as an external concern: callers are
// expected to hand ParseFrame already-validated frames, exactly as the
// RTCA DO-260B decoders this package is modeled on assume. The Beast
// protocol frames this decoder ingests forward CRC/parity uninterpreted,
// so validation happens implicitly through the receiver's own filtering.
package modes

// AddressQualifier distinguishes true ICAO24 addresses from the non-ICAO
// emitters that DF18 can carry (TIS-B and ADS-R traffic).
type AddressQualifier uint8

const (
	QualifierICAO24 AddressQualifier = iota
	QualifierTISBICAO
	QualifierTISBOther
	QualifierADSR
)

func (q AddressQualifier) String() string {
	switch q {
	case QualifierICAO24:
		return "icao24"
	case QualifierTISBICAO:
		return "tisb-icao"
	case QualifierTISBOther:
		return "tisb-other"
	case QualifierADSR:
		return "adsr"
	default:
		return "unknown"
	}
}

// QualifiedAddress is the key used for all per-aircraft state: the ICAO24
// alone is not unique because DF18 can rebroadcast non-ICAO emitters under
// the same 24-bit address space.
type QualifiedAddress struct {
	Address   uint32
	Qualifier AddressQualifier
}

// Envelope is the parsed outer shape of a Mode S reply, common to every
// downlink format. Extended Squitter payloads (DF17/18/19) additionally
// carry a 56-bit ME slice; every other format's fields live directly in Raw.
type Envelope struct {
	Raw            []byte // the full 7- or 14-byte frame, as given to ParseFrame
	DownlinkFormat uint8  // 0-31
	FirstField     uint8  // CA (DF17), CF (DF18), AF (DF19), else reserved
	Address        uint32 // 24-bit
	Qualifier      AddressQualifier
	ME             []byte // 7-byte ME field for DF17/18/19, else nil
}

// Frame returns the envelope itself. Every decoded message variant embeds
// Envelope and so exposes this method, letting callers treat any decoded
// value uniformly regardless of how deeply it was specialized.
func (e Envelope) Frame() Envelope {
	return e
}

// QualifiedAddress returns the key used to look up per-aircraft state for
// this envelope.
func (e Envelope) QualifiedAddress() QualifiedAddress {
	return QualifiedAddress{Address: e.Address, Qualifier: e.Qualifier}
}

// IsExtendedSquitter reports whether this envelope carries an ME field,
// i.e. DF is 17, 18, or 19.
func (e Envelope) IsExtendedSquitter() bool {
	return e.DownlinkFormat == 17 || e.DownlinkFormat == 18 || e.DownlinkFormat == 19
}

// TypeCode returns bits 0-4 of the ME field (the Extended Squitter type
// code), or 0 if this envelope has no ME field.
func (e Envelope) TypeCode() uint8 {
	if len(e.ME) == 0 {
		return 0
	}
	return (e.ME[0] >> 3) & 0x1F
}
