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

import "go.uber.org/zap"

// viTemperatureDeficitScale [°C] normalizes the below-cardinal
// temperature deficit of the dormancy vegetation-index decay.
const viTemperatureDeficitScale = 10.

// greendownSaturationRate shapes the exponential-saturating greendown
// weight used for the EVI index type.
const greendownSaturationRate = 3.

// VIEngine translates the phenological phase and its completion
// percentage into a daily vegetation-index rate. One engine instance
// belongs to one simulation: it owns the first-day-of-dormancy flip-flop
// and must not be shared between concurrently simulated points.
type VIEngine struct {
	startDormancy bool
	logger        *zap.SugaredLogger
}

// NewVIEngine returns an engine ready for the first day of a simulation.
func NewVIEngine(logger *zap.SugaredLogger) *VIEngine {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &VIEngine{startDormancy: true, logger: logger}
}

// Update computes the day's vegetation-index rate from the phenophase
// decided by the state machines, captures the phase-transition snapshots
// on first entry to their owning phases, and bounds the resulting index.
// It must run after both state machines and before the carbon flux
// engine.
func (e *VIEngine) Update(prev, cur *DayState, wx *DailyWeather, p *Parameters) {
	if cur.PhenoCode != PhenoDormancy {
		e.startDormancy = true
	}

	var rate float64
	switch cur.PhenoCode {
	case PhenoDormancy:
		rate = e.dormancyRate(prev, cur, wx, p)

	case PhenoGrowth:
		if prev.PhenoCode != PhenoGrowth {
			snap := prev.VI / 100
			if snap > p.VI.Maximum-0.01 {
				snap = p.VI.Maximum - 0.01
			}
			cur.VIAtGrowth = snap
			cur.VIReference = snap
		}
		denom := p.VI.Maximum - cur.VIAtGrowth
		progress := clamp01((prev.VI/100 - cur.VIAtGrowth) / denom)
		rate = p.VI.RateGrowth * (1 - cur.Greendown.Percentage/100) * (1 - progress)

	case PhenoGreendown:
		var w float64
		if p.VI.IndexType == IndexNDVI {
			w = cur.Greendown.Percentage / 100
		} else {
			w = 1 - clampExp(-greendownSaturationRate*cur.Greendown.Percentage/100)
		}
		rate = -p.VI.RateGreendown * w * cur.Greendown.Rate

	case PhenoDecline, PhenoInduction:
		// The induction code appears here on the day decline finishes
		// its bookkeeping; both share the senescence rate.
		if cur.PhenoCode == PhenoDecline && prev.PhenoCode != PhenoDecline {
			cur.VIAtGreendown = prev.VI / 100
			cur.VIReference = cur.VIAtGreendown
		}
		rate = -p.VI.RateGreendown - p.VI.RateSenescence*SymmetricBell(cur.Decline.Percentage)

	case PhenoNone:
		// Spin-up before the first phase of the first year; nothing to do.

	default:
		// The model leaves this branch implicit; report it as a caller
		// problem but keep going with a zero rate.
		e.logger.Warnw("unrecognized phenophase in vegetation index update",
			"phenoCode", int(cur.PhenoCode), "date", cur.Date)
	}

	cur.VIRate = rate
	cur.VI = prev.VI + rate
	// The lower bound is the configured minimum; the upper bound is the
	// physical limit 1.0, not the configured maximum. The asymmetry is
	// intentional: Maximum is an asymptote of the growth rate, not a cap.
	if cur.VI < p.VI.Minimum*100 {
		cur.VI = p.VI.Minimum * 100
	} else if cur.VI > 100 {
		cur.VI = 100
	}
}

// dormancyRate computes the winter vegetation-index rate. The two
// contributions are mutually exclusive: cold days decay the index toward
// its floor, while warm days with still-lengthening daylight green it up
// slightly toward the maximum.
func (e *VIEngine) dormancyRate(prev, cur *DayState, wx *DailyWeather, p *Parameters) float64 {
	if e.startDormancy {
		snap := prev.VI / 100
		if snap <= p.VI.Minimum {
			snap = p.VI.Minimum + 0.01
		}
		cur.VIAtSenescence = snap
		cur.VIReference = snap
		e.startDormancy = false
	}

	tAvg := wx.TemperatureAvg()
	tMin := p.Growth.TemperatureMin
	span := p.VI.Maximum - p.VI.Minimum

	if tAvg < tMin {
		ratio := (tAvg - tMin) / viTemperatureDeficitScale
		if ratio < -1 {
			ratio = -1
		}
		// Decay decelerates as the index approaches its floor.
		dist := clamp01((prev.VI/100 - p.VI.Minimum) / span)
		return p.VI.RateEndodormancy * ratio * dist
	}
	if wx.Solar.DayLength > prev.DayLength {
		progress := clamp01((prev.VI/100 - p.VI.Minimum) / span)
		return p.VI.RateEcodormancy *
			ThermalForcing(tAvg, p.Growth.TemperatureMin, p.Growth.TemperatureOpt, p.Growth.TemperatureMax) *
			(1 - progress)
	}
	return 0
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
