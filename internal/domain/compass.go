package domain

import "math"

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// CompassIndex snaps a direction in degrees to one of 8 compass points:
// round(deg/45) mod 8, where 0 is N and indices increase clockwise.
// Negative and >360 inputs wrap.
func CompassIndex(deg float64) int {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	idx := int(math.Round(deg/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return idx
}

// CompassPoint returns the compass abbreviation for deg.
func CompassPoint(deg float64) string {
	return compassPoints[CompassIndex(deg)]
}
