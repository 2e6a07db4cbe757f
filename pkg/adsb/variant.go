// Package adsb decodes Mode S / ADS-B Extended Squitter payloads into a
// closed set of immutable, typed message variants (RTCA DO-260A/B).
//
// Every variant embeds modes.Envelope, so it carries the raw frame and
// satisfies Variant by promotion. Fields whose validity depends on a
// decoded availability flag are exposed as a Has*() predicate paired
// with an accessor rather than sentinel values, per the wire-vs-API
// distinction: sentinels like -1 or 0 belong to the decoding step only.
package adsb

import "modes1090/pkg/modes"

// Variant is satisfied by modes.Envelope and every message type this
// package produces. It lets callers hold "the deepest specialization we
// could produce" without knowing its concrete type up front.
type Variant interface {
	Frame() modes.Envelope
}

// Ensure the raw envelope itself satisfies Variant, since the dispatcher
// falls back to it for unrecognized or suppressed shapes.
var _ Variant = modes.Envelope{}
