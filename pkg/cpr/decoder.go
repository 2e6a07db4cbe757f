// Package cpr decodes Compact Position Reporting coordinates: the paired
// even/odd, 17-bit-per-axis latitude/longitude encoding ADS-B position
// messages use in place of raw degrees (RTCA DO-260B Annex).
//
// Global decoding pairs one even and one odd frame straddling a latitude
// zone boundary to recover an unambiguous position with no prior fix.
// Local decoding refines a single frame against a nearby reference
// position, which is cheaper and works even when only one parity is
// available, but is only valid within half a CPR zone of the reference.
package cpr

import "math"

const (
	// cprMax is 2^17, the resolution of one CPR-encoded axis.
	cprMax = 131072.0

	// EarthRadiusKm is used for reasonableness-check distance calculations.
	EarthRadiusKm = 6371.0
)

// Position is a decoded geographic coordinate in degrees.
type Position struct {
	Latitude  float64
	Longitude float64
}

// Frame is one CPR-encoded lat/lon pair as carried on the wire, alongside
// the format (even/odd) flag and whether it came from a surface position
// message (surface CPR uses a 90-degree, not 360-degree, longitude span).
type Frame struct {
	LatCPR  uint32
	LonCPR  uint32
	Odd     bool
	Surface bool
}

func (f Frame) latFrac() float64 { return float64(f.LatCPR) / cprMax }
func (f Frame) lonFrac() float64 { return float64(f.LonCPR) / cprMax }

// modInt is the positive integer modulo used throughout the CPR algorithm
// (dump1090's cprModInt), needed because Go's % can return negative
// results for negative dividends.
func modInt(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// cprNormalize returns the fractional part of x in [0, 1): the positive
// remainder local decoding takes of a reference coordinate divided by the
// zone size.
func cprNormalize(x float64) float64 {
	return x - math.Floor(x)
}

// DecodeGlobal recovers an unambiguous position from one even and one odd
// frame of the same kind (both airborne or both surface), following
// dump1090's decodeCPRairborne/decodeCPRsurface algorithm. newerIsOdd
// selects which of the two frames' longitude zone count anchors the
// result, matching dump1090's rule of preferring whichever frame arrived
// more recently. latRef/lonRef anchor the surface decode's 90-degree
// quadrant ambiguity; pass zero for airborne frames.
func DecodeGlobal(even, odd Frame, newerIsOdd bool, latRef, lonRef float64) (Position, bool) {
	if even.Odd || !odd.Odd {
		return Position{}, false
	}

	airDlat0 := 360.0 / 60.0
	airDlat1 := 360.0 / 59.0
	if even.Surface {
		airDlat0 = 90.0 / 60.0
		airDlat1 = 90.0 / 59.0
	}

	j := int(math.Floor(59*even.latFrac() - 60*odd.latFrac() + 0.5))

	latEven := airDlat0 * (float64(modInt(j, 60)) + even.latFrac())
	latOdd := airDlat1 * (float64(modInt(j, 59)) + odd.latFrac())

	if even.Surface {
		latEven = adjustSurfaceLatitude(latEven, latRef)
		latOdd = adjustSurfaceLatitude(latOdd, latRef)
	} else {
		if latEven >= 270 {
			latEven -= 360
		}
		if latOdd >= 270 {
			latOdd -= 360
		}
	}

	if nlLookup(latEven) != nlLookup(latOdd) {
		// Straddling frames disagree on which latitude zone they are in;
		// the pair cannot be combined until a fresher one arrives.
		return Position{}, false
	}

	var lat float64
	var ni, m int
	if newerIsOdd {
		lat = latOdd
		nl := nlLookup(latOdd)
		ni = nl - 1
		if ni < 1 {
			ni = 1
		}
		m = int(math.Floor(even.lonFrac()*float64(nl-1) - odd.lonFrac()*float64(nl) + 0.5))
	} else {
		lat = latEven
		nl := nlLookup(latEven)
		ni = nl
		m = int(math.Floor(even.lonFrac()*float64(nl-1) - odd.lonFrac()*float64(nl) + 0.5))
	}

	dlon := 360.0 / float64(ni)
	if even.Surface {
		dlon /= 4
	}
	frac := odd.lonFrac()
	if !newerIsOdd {
		frac = even.lonFrac()
	}
	lon := dlon * (float64(modInt(m, ni)) + frac)

	if even.Surface {
		lon = adjustSurfaceLongitude(lon, lonRef)
	} else if lon > 180 {
		lon -= 360
	}

	return Position{Latitude: lat, Longitude: lon}, true
}

// adjustSurfaceLatitude picks among the four possible quadrant offsets a
// 90-degree-wrapped surface latitude can represent, choosing the one
// closest to the reference position (dump1090's surface decode quadrant
// resolution).
func adjustSurfaceLatitude(lat, ref float64) float64 {
	best := lat
	bestDist := math.Abs(lat - ref)
	for _, offset := range []float64{90, 180, 270} {
		candidate := lat + offset
		if d := math.Abs(candidate - ref); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	if best > 90 {
		best -= 360
	}
	return best
}

// adjustSurfaceLongitude resolves the surface longitude's 90-degree
// ambiguity against a reference position the same way.
func adjustSurfaceLongitude(lon, ref float64) float64 {
	best := lon
	bestDist := math.Abs(lon - ref)
	for _, offset := range []float64{90, 180, 270} {
		candidate := lon + offset
		if d := math.Abs(candidate - ref); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// DecodeLocal recovers a position from a single frame using a nearby
// reference position, valid only when the reference is known to be within
// half a CPR zone of the true position (RTCA DO-260B Annex, "local
// decoding").
func DecodeLocal(f Frame, ref Position) Position {
	dlat := 360.0 / 60.0
	if f.Odd {
		dlat = 360.0 / 59.0
	}
	if f.Surface {
		dlat /= 4
	}

	j := math.Floor(ref.Latitude/dlat) + math.Floor(cprNormalize(ref.Latitude/dlat)-f.latFrac()+0.5)
	lat := dlat * (j + f.latFrac())

	dlon := dlonFunction(lat, f.Odd)
	if f.Surface {
		dlon /= 4
	}

	m := math.Floor(ref.Longitude/dlon) + math.Floor(cprNormalize(ref.Longitude/dlon)-f.lonFrac()+0.5)
	lon := dlon * (m + f.lonFrac())

	return Position{Latitude: lat, Longitude: lon}
}

// haversineKm returns the great-circle distance between two positions in
// kilometers.
func haversineKm(a, b Position) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)
	lat1 := toRad(a.Latitude)
	lat2 := toRad(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusKm * c
}

// Reasonable reports whether candidate lies within maxRangeNM nautical
// miles of ref, the sanity check applied to a locally decoded position
// before it is trusted (180 NM airborne, 45 NM surface per RTCA DO-260B).
func Reasonable(candidate, ref Position, maxRangeNM float64) bool {
	distNM := haversineKm(candidate, ref) / 1.852
	return distNM <= maxRangeNM
}
