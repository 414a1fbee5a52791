/*
Copyright © 2026 the PhenoVPRM authors.
This file is part of PhenoVPRM.

PhenoVPRM is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

PhenoVPRM is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with PhenoVPRM.  If not, see <http://www.gnu.org/licenses/>.
*/

package phenovprm

import "math"

// Lloyd and Taylor (1994) reference and base temperatures [K].
const (
	lloydTaylorTref = 288.15
	lloydTaylorT0   = 227.13
)

// maxExponent bounds the argument of any exponential used in the
// response functions below so that extreme inputs saturate instead
// of overflowing.
const maxExponent = 50.

func clampExp(x float64) float64 {
	if x > maxExponent {
		x = maxExponent
	} else if x < -maxExponent {
		x = -maxExponent
	}
	return math.Exp(x)
}

// ThermalForcing returns the daily thermal forcing rate for an average
// temperature t [°C] and the three cardinal temperatures tMin, tOpt and
// tMax [°C], following the asymmetric beta response of Yan and Hunt (1999).
// The rate is zero outside [tMin, tMax] and peaks at tOpt.
// Degenerate cardinal temperatures (tOpt equal to tMin or tMax) are a
// configuration error and must be rejected by Parameters.Validate before
// this function is ever called.
func ThermalForcing(t, tMin, tOpt, tMax float64) float64 {
	if t <= tMin || t >= tMax {
		return 0
	}
	return (tMax - t) / (tMax - tOpt) *
		math.Pow((t-tMin)/(tOpt-tMin), (tOpt-tMin)/(tMax-tOpt))
}

// SigmoidLimiting returns a limitation scaler in [0, 1] for a signal v
// (photoperiod or temperature) given the threshold at which the signal is
// fully limiting and the threshold at which it is not limiting at all.
// The scaler is 1 beyond the not-limiting threshold, 0 beyond the limiting
// threshold, and follows a logistic transition with slope 10/width through
// the midpoint in between. The ordering of the two thresholds determines
// the direction of the response, so the same function serves signals where
// smaller values promote (dormancy induction) and where larger values
// promote (dormancy release).
func SigmoidLimiting(v, limiting, notLimiting float64) float64 {
	width := math.Abs(limiting - notLimiting)
	mid := (limiting + notLimiting) / 2
	if limiting > notLimiting { // small values promote
		switch {
		case v <= notLimiting:
			return 1
		case v >= limiting:
			return 0
		}
		return 1 / (1 + clampExp((v-mid)*10/width))
	}
	// large values promote
	switch {
	case v >= notLimiting:
		return 1
	case v <= limiting:
		return 0
	}
	return 1 / (1 + clampExp((mid-v)*10/width))
}

// LloydTaylor returns the Lloyd and Taylor (1994) temperature response
// scaler for air temperature t [°C] and activation energy e [K].
// Temperatures within 0.5 K of the base temperature T0 would make the
// response singular, so the scaler is 0 there; the result is clamped
// to [0, 10].
func LloydTaylor(t, e float64) float64 {
	tk := t + 273.15
	if tk <= lloydTaylorT0+0.5 {
		return 0
	}
	r := clampExp(e * (1/(lloydTaylorTref-lloydTaylorT0) - 1/(tk-lloydTaylorT0)))
	if r < 0 {
		return 0
	}
	if r > 10 {
		return 10
	}
	return r
}

// InversePARSaturation returns the light-saturation scaler
// 1/(1+PAR/halfSat) for photosynthetically active radiation par and
// half-saturation constant halfSat [µmol m⁻² s⁻¹]. Unlike the classic
// Michaelis-Menten light response, this form decreases with PAR; the
// inverse shape is intentional (Mahadevan et al. 2008 VPRM Pscale) and
// must not be "corrected" to the increasing form.
func InversePARSaturation(par, halfSat float64) float64 {
	return 1 / (1 + par/halfSat)
}

// VPDSigmoid returns the vapor-pressure-deficit limitation scaler in
// [0, 1] for deficit vpd [kPa]. Below vpdMin there is no limitation;
// above it the scaler decays logistically, centered on the midpoint of
// [vpdMin, vpdMax] with the given sensitivity [kPa⁻¹].
func VPDSigmoid(vpd, vpdMin, vpdMax, sensitivity float64) float64 {
	if vpd <= vpdMin {
		return 1
	}
	mid := (vpdMin + vpdMax) / 2
	return 1 / (1 + clampExp(sensitivity*(vpd-mid)))
}

// LogisticAging returns a logistic scaler in [0, 1] of seasonal progress
// [%] with the given inflection point [%] and steepness [%⁻¹].
func LogisticAging(progress, inflection, steepness float64) float64 {
	return 1 / (1 + clampExp(-steepness*(progress-inflection)))
}

// SymmetricBell returns exp(−(x−50)²/1000) for a completion percentage x,
// peaking at 50% so that a process it scales accelerates mid-phase and
// decelerates toward both ends.
func SymmetricBell(x float64) float64 {
	return clampExp(-(x - 50) * (x - 50) / 1000)
}

// ChillingEfficiency returns the chilling efficiency in [0, 1] of an
// hourly temperature t [°C] for the four-segment Utah-variant curve
// bounded by the limiting temperatures limLow and limHigh (efficiency 0
// outside) with a fully effective plateau between notLimLow and
// notLimHigh. The ramps between the limiting and not-limiting bounds are
// the logistic transitions of SigmoidLimiting.
func ChillingEfficiency(t, limLow, notLimLow, notLimHigh, limHigh float64) float64 {
	switch {
	case t <= limLow || t >= limHigh:
		return 0
	case t < notLimLow:
		return SigmoidLimiting(t, limLow, notLimLow)
	case t <= notLimHigh:
		return 1
	}
	return SigmoidLimiting(t, limHigh, notLimHigh)
}
