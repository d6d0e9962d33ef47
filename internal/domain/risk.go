package domain

import "fmt"

// Thresholds are the safety limits used by Assess.
type Thresholds struct {
	WindWarningKnots   float64
	WindRiskyKnots     float64
	WindDangerousKnots float64
	GustDangerousKnots float64
	WaveWarningM       float64
	WaveRiskyM         float64
	WaveDangerousM     float64
	VisibilityRiskyKm  float64
}

// DefaultThresholds are the limits for small-boat diving.
var DefaultThresholds = Thresholds{
	WindWarningKnots:   15,
	WindRiskyKnots:     20,
	WindDangerousKnots: 30,
	GustDangerousKnots: 35,
	WaveWarningM:       1.0,
	WaveRiskyM:         1.5,
	WaveDangerousM:     2.0,
	VisibilityRiskyKm:  3,
}

// Verdict is the go/no-go outcome of an assessment.
type Verdict string

const (
	VerdictSuitable       Verdict = "suitable"
	VerdictLimited        Verdict = "limited"
	VerdictUnsuitable     Verdict = "unsuitable"
	VerdictNotRecommended Verdict = "not_recommended"
	VerdictUnknown        Verdict = "unknown"
)

// severity orders verdicts so the worst finding wins.
func (v Verdict) severity() int {
	switch v {
	case VerdictSuitable:
		return 1
	case VerdictLimited:
		return 2
	case VerdictUnsuitable:
		return 3
	case VerdictNotRecommended:
		return 4
	default:
		return 0
	}
}

// Assessment is the verdict with the findings that produced it.
type Assessment struct {
	Verdict Verdict  `json:"verdict"`
	Reasons []string `json:"reasons,omitempty"`
}

func (a *Assessment) raise(v Verdict, reason string) {
	if v.severity() > a.Verdict.severity() {
		a.Verdict = v
	}
	a.Reasons = append(a.Reasons, reason)
}

// Assess grades an aggregate against the thresholds. Wind is judged on the
// highest model average, gusts on the highest gust of any model, waves on
// the marine maximum and visibility on the lowest forecast value. With no
// healthy model and no marine data the verdict is VerdictUnknown.
func Assess(agg Aggregate, t Thresholds) Assessment {
	if agg.Consensus.Models == 0 && agg.Marine == nil {
		return Assessment{Verdict: VerdictUnknown, Reasons: []string{"no forecast data available"}}
	}

	a := Assessment{Verdict: VerdictSuitable}

	if c := agg.Consensus; c.Models > 0 {
		wind := c.MaxAvgWindKnots
		switch {
		case wind >= t.WindDangerousKnots:
			a.raise(VerdictNotRecommended, fmt.Sprintf("average wind up to %.1f kn (dangerous ≥ %.0f kn)", wind, t.WindDangerousKnots))
		case wind >= t.WindRiskyKnots:
			a.raise(VerdictUnsuitable, fmt.Sprintf("average wind up to %.1f kn (risky ≥ %.0f kn)", wind, t.WindRiskyKnots))
		case wind >= t.WindWarningKnots:
			a.raise(VerdictLimited, fmt.Sprintf("average wind up to %.1f kn (warning ≥ %.0f kn)", wind, t.WindWarningKnots))
		}

		if c.MaxGustKnots >= t.GustDangerousKnots {
			a.raise(VerdictNotRecommended, fmt.Sprintf("gusts up to %.1f kn (dangerous ≥ %.0f kn)", c.MaxGustKnots, t.GustDangerousKnots))
		}

		if c.HasVisibility && c.MinVisibilityKm < t.VisibilityRiskyKm {
			a.raise(VerdictUnsuitable, fmt.Sprintf("visibility down to %.1f km (risky < %.0f km)", c.MinVisibilityKm, t.VisibilityRiskyKm))
		}
	} else {
		a.Reasons = append(a.Reasons, "no model forecast available")
	}

	if m := agg.Marine; m != nil {
		wave := m.MaxWaveHeightM
		switch {
		case wave >= t.WaveDangerousM:
			a.raise(VerdictNotRecommended, fmt.Sprintf("waves up to %.2f m (dangerous ≥ %.1f m)", wave, t.WaveDangerousM))
		case wave >= t.WaveRiskyM:
			a.raise(VerdictUnsuitable, fmt.Sprintf("waves up to %.2f m (risky ≥ %.1f m)", wave, t.WaveRiskyM))
		case wave >= t.WaveWarningM:
			a.raise(VerdictLimited, fmt.Sprintf("waves up to %.2f m (warning ≥ %.1f m)", wave, t.WaveWarningM))
		}
	} else {
		a.Reasons = append(a.Reasons, "no marine forecast available")
	}

	return a
}
