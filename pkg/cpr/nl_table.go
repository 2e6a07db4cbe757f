package cpr

import "math"

// nlTable holds the maximum latitude (degrees) for which the number of
// longitude zones NL equals 59 minus the index (NL counts down from 59 at
// the equator). This mirrors dump1090's cprNLTable/NLTable constant used to avoid
// repeated trigonometric evaluation of the NL function.
var nlTable = [59]float64{
	10.47047130, 14.82817437, 18.18626357, 21.02939493,
	23.54504487, 25.82924707, 27.93898710, 29.91135686,
	31.77209708, 33.53993436, 35.22899598, 36.85025108,
	38.41241892, 39.92256684, 41.38651832, 42.80914012,
	44.19454951, 45.54626723, 46.86733252, 48.16039128,
	49.42776439, 50.67150166, 51.89342469, 53.09516153,
	54.27817472, 55.44378444, 56.59318756, 57.72747354,
	58.84763776, 59.95459277, 61.04917774, 62.13216659,
	63.20427479, 64.26616523, 65.31845310, 66.36171008,
	67.39646774, 68.42322022, 69.44242631, 70.45451075,
	71.45986473, 72.45884545, 73.45177442, 74.43893416,
	75.42056257, 76.39684391, 77.36789461, 78.33374083,
	79.29428225, 80.24923213, 81.19801349, 82.13956981,
	83.07199445, 83.99173563, 84.89166191, 85.75541621,
	86.53536998, 87.00000000, 90.00000000,
}

// nlFunction returns NL(lat), the number of longitude zones for CPR
// decoding at the given latitude (RTCA DO-260B Annex, cprNLFunction).
func nlFunction(lat float64) int {
	if lat < 0 {
		lat = -lat
	}
	if lat < 1e-9 {
		return 59
	}
	if lat > 87 {
		return 1
	}
	nz := 15.0
	a := 1 - math.Cos(math.Pi/(2*nz))
	b := math.Cos(math.Pi/180*lat) * math.Cos(math.Pi/180*lat)
	nl := 2 * math.Pi / math.Acos(1-a/b)
	return int(math.Floor(nl))
}

// nlLookup finds NL(lat) via the precomputed threshold table, as a faster
// substitute for nlFunction on the hot decode path.
func nlLookup(lat float64) int {
	if lat < 0 {
		lat = -lat
	}
	for i, threshold := range nlTable {
		if lat < threshold {
			return 59 - i
		}
	}
	return 1
}

// dlonFunction returns the longitude zone size in degrees for a given
// latitude and CPR format (dump1090's cprDlonFunction). The result is
// always expressed as a fraction of 360 degrees; surface messages apply a
// separate quadrant scale when turning this into a zone index.
func dlonFunction(lat float64, odd bool) float64 {
	nl := nlLookup(lat)
	if odd {
		nl--
	}
	if nl < 1 {
		nl = 1
	}
	return 360.0 / float64(nl)
}
