// Package taste implements the per-user taste profile: an exponential
// moving average over the audio features of liked songs, reduced to a
// 4-letter classification code.
package taste

import (
	"github.com/tomotune/tomotune/internal/constants"
	"github.com/tomotune/tomotune/internal/domain"
)

// Vector is a taste profile: four bipolar axes, each in [0,1].
//
//	VC: energetic/positive valence (1) vs calm (0)
//	MA: textural/atmospheric (1) vs melodic (0)
//	PR: high-energy/passionate (1) vs relaxed (0)
//	HS: acoustic/human (1) vs synthetic (0)
type Vector struct {
	VC float64 `json:"vc"`
	MA float64 `json:"ma"`
	PR float64 `json:"pr"`
	HS float64 `json:"hs"`
}

// Neutral is the profile of a user with no listening history.
func Neutral() Vector {
	return Vector{VC: 0.5, MA: 0.5, PR: 0.5, HS: 0.5}
}

// Update returns the profile after one like event. Each axis moves by
// an exponential moving average, new = cur*(1-alpha) + signal*alpha,
// so every axis stays in [0,1] for signals and alpha in [0,1] by
// convexity; no clamping is applied.
//
// A nil feature vector contributes signal 0 on every axis, matching
// the reconciler's default for missing data. A song with no curated
// features therefore pulls the whole profile toward 0 regardless of
// its true character; callers wanting different behavior must supply
// features.
func Update(current Vector, features *domain.FeatureVector, alpha float64) Vector {
	var valence, instrumentalness, energy, acousticness float64
	if features != nil {
		valence = features.Valence
		instrumentalness = features.Instrumentalness
		energy = features.Energy
		acousticness = features.Acousticness
	}

	return Vector{
		VC: ema(current.VC, valence, alpha),
		MA: ema(current.MA, instrumentalness, alpha),
		PR: ema(current.PR, energy, alpha),
		HS: ema(current.HS, acousticness, alpha),
	}
}

func ema(current, signal, alpha float64) float64 {
	return current*(1-alpha) + signal*alpha
}

// Classify derives the 4-letter code from a profile. Each axis is
// compared to the 0.5 midpoint independently, inclusive on the high
// side, in the fixed order VC, MA, PR, HS. Pure and idempotent.
func Classify(v Vector) string {
	code := make([]byte, 0, 4)

	if v.VC >= constants.AxisMidpoint {
		code = append(code, 'V')
	} else {
		code = append(code, 'C')
	}
	if v.MA >= constants.AxisMidpoint {
		code = append(code, 'A')
	} else {
		code = append(code, 'M')
	}
	if v.PR >= constants.AxisMidpoint {
		code = append(code, 'P')
	} else {
		code = append(code, 'R')
	}
	if v.HS >= constants.AxisMidpoint {
		code = append(code, 'H')
	} else {
		code = append(code, 'S')
	}

	return string(code)
}
