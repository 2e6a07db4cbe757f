package adsb

// charset is the 6-bit character set used to encode aircraft identification
// (callsign) messages, RTCA DO-260B Table 2-8.
const charset = "@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_ !\"#$%&'()*+,-./0123456789:;<=>?"
