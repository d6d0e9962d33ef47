package domain

import (
	"math"
	"strconv"
	"strings"
)

// Unit identifies a measurement unit as labelled by upstream feeds.
type Unit string

const (
	UnitUnknown           Unit = ""
	UnitKnots             Unit = "kn"
	UnitMetersPerSecond   Unit = "m/s"
	UnitKilometersPerHour Unit = "km/h"
	UnitMilesPerHour      Unit = "mph"
	UnitKilometers        Unit = "km"
	UnitMeters            Unit = "m"
	UnitStatuteMiles      Unit = "sm"
	UnitFeet              Unit = "ft"
	UnitCelsius           Unit = "°C"
	UnitFahrenheit        Unit = "°F"
	UnitMillimeters       Unit = "mm"
	UnitInches            Unit = "inch"
	UnitPercent           Unit = "%"
	UnitDegrees           Unit = "°"
	UnitSeconds           Unit = "s"
	UnitHectopascals      Unit = "hPa"
)

// Conversion factors.
const (
	MetersPerSecondToKnots   = 1.94384
	KilometersPerHourToKnots = 0.539957
	MilesPerHourToKnots      = 0.868976
	StatuteMilesToKilometers = 1.60934
	FeetToMeters             = 0.3048
	InchesToMillimeters      = 25.4
)

// ParseUnit maps an upstream unit label onto a Unit. Unrecognized labels
// return UnitUnknown.
func ParseUnit(label string) Unit {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "kn", "kt", "kts", "knots":
		return UnitKnots
	case "m/s", "ms":
		return UnitMetersPerSecond
	case "km/h", "kmh":
		return UnitKilometersPerHour
	case "mph", "mp/h":
		return UnitMilesPerHour
	case "km":
		return UnitKilometers
	case "m":
		return UnitMeters
	case "sm", "mi", "miles":
		return UnitStatuteMiles
	case "ft":
		return UnitFeet
	case "°c", "c", "celsius":
		return UnitCelsius
	case "°f", "f", "fahrenheit":
		return UnitFahrenheit
	case "mm":
		return UnitMillimeters
	case "inch", "in":
		return UnitInches
	case "%":
		return UnitPercent
	case "°", "deg":
		return UnitDegrees
	case "s":
		return UnitSeconds
	case "hpa":
		return UnitHectopascals
	default:
		return UnitUnknown
	}
}

// Convert converts v from one unit to another. It returns false when the
// pair is not convertible.
func Convert(v float64, from, to Unit) (float64, bool) {
	if from == to {
		return v, true
	}

	switch to {
	case UnitKnots:
		switch from {
		case UnitMetersPerSecond:
			return v * MetersPerSecondToKnots, true
		case UnitKilometersPerHour:
			return v * KilometersPerHourToKnots, true
		case UnitMilesPerHour:
			return v * MilesPerHourToKnots, true
		}
	case UnitKilometers:
		switch from {
		case UnitStatuteMiles:
			return v * StatuteMilesToKilometers, true
		case UnitMeters:
			return v / 1000, true
		case UnitFeet:
			return v * FeetToMeters / 1000, true
		}
	case UnitMeters:
		switch from {
		case UnitFeet:
			return v * FeetToMeters, true
		case UnitKilometers:
			return v * 1000, true
		}
	case UnitCelsius:
		if from == UnitFahrenheit {
			return (v - 32) * 5 / 9, true
		}
	case UnitMillimeters:
		if from == UnitInches {
			return v * InchesToMillimeters, true
		}
	}
	return 0, false
}

// ConvertPtr is Convert for optional values. A nil input or an unsupported
// conversion yields nil.
func ConvertPtr(v *float64, from, to Unit) *float64 {
	if v == nil {
		return nil
	}
	out, ok := Convert(*v, from, to)
	if !ok {
		return nil
	}
	return &out
}

// ParseNumeric parses string-encoded numbers that carry qualifiers, such as
// METAR visibility "6+", "P6" or "10SM". Every character that is not a digit
// or decimal point is stripped; a leading minus sign is kept. Simple
// fractions ("1/2", "1 1/2", "M1/4") are evaluated. Returns false when
// nothing parsable remains.
func ParseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if strings.Contains(s, "/") {
		return parseFraction(s)
	}

	neg := strings.HasPrefix(s, "-")
	digits := keepNumeric(s)
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return 0, false
	}
	if neg {
		v = -v
	}
	return v, true
}

// parseFraction handles "a/b" and "w a/b" forms.
func parseFraction(s string) (float64, bool) {
	var whole float64
	fields := strings.Fields(s)
	frac := fields[len(fields)-1]
	if len(fields) > 1 {
		w, ok := ParseNumeric(strings.Join(fields[:len(fields)-1], ""))
		if !ok {
			return 0, false
		}
		whole = w
	}

	num, den, found := strings.Cut(frac, "/")
	if !found {
		return 0, false
	}
	n, err := strconv.ParseFloat(keepNumeric(num), 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(keepNumeric(den), 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return whole + n/d, true
}

func keepNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// RelativeHumidity derives relative humidity (%) from air temperature and
// dewpoint in °C using the Magnus approximation.
func RelativeHumidity(tempC, dewpointC float64) float64 {
	const b, c = 17.625, 243.04
	rh := 100 * math.Exp(b*dewpointC/(c+dewpointC)) / math.Exp(b*tempC/(c+tempC))
	return math.Min(100, math.Max(0, rh))
}
