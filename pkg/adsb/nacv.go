package adsb

// nacvSpeedMPS maps a 3-bit Navigation Accuracy Category for Velocity
// value to the 95% horizontal velocity error bound it certifies, in
// meters per second (RTCA DO-260B Table 2-16). -1 means unknown or
// greater than 10 m/s.
func nacvSpeedMPS(nacv uint8) float64 {
	switch nacv {
	case 1:
		return 10
	case 2:
		return 3
	case 3:
		return 1
	case 4:
		return 0.3
	default:
		return -1
	}
}

// NACvSpeed returns the 95% velocity error bound NACv certifies, in
// meters per second, or -1 if unknown or greater than 10 m/s.
func (m VelocityOverGroundMsg) NACvSpeed() float64 { return nacvSpeedMPS(m.NACv) }

// NACvSpeed returns the 95% velocity error bound NACr certifies, in
// meters per second, or -1 if unknown or greater than 10 m/s.
func (m AirspeedHeadingMsg) NACvSpeed() float64 { return nacvSpeedMPS(m.NUCr) }
