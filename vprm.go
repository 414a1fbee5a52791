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

// Shortwave-to-PAR conversion: 50.5% of shortwave is photosynthetically
// active (Mahadevan et al. 2008) and 1 W m⁻² of PAR is 4.57 µmol m⁻² s⁻¹.
const (
	parFraction     = 0.505
	wattsToMicromol = 4.57
)

// Empirical linear EVI→LAI fits for the two canopy layers.
const (
	overstoryLAISlope      = 9.41
	overstoryLAIIntercept  = -1.67
	understoryLAISlope     = 3.618
	understoryLAIIntercept = -0.118
)

// diffuseExtinctionRatio scales the direct-beam extinction coefficient
// for diffuse radiation.
const diffuseExtinctionRatio = 0.8

// FluxEngine computes the hourly VPRM carbon fluxes for one simulated
// point. The engine owns the exponential-moving-average state of the
// autotrophic respiration filter, which persists across hours and days
// for the life of the engine; engines must therefore never be shared
// between concurrently simulated points.
type FluxEngine struct {
	params *Parameters

	lastRecoOverstory  float64
	lastRecoUnderstory float64
}

// NewFluxEngine returns a flux engine with zeroed smoothing state.
func NewFluxEngine(p *Parameters) *FluxEngine {
	return &FluxEngine{params: p}
}

// Update runs one day of the two-layer VPRM: canopy structure and light
// interception are estimated once, then the 24-hour loop produces GPP,
// the three respiration components and NEE for each hour, and the daily
// totals are summed. It must run after the vegetation-index update.
func (e *FluxEngine) Update(prev, cur *DayState, wx *DailyWeather) error {
	p := e.params
	c := &cur.Carbon

	c.VegetationCover = vegetationCover(cur, p)
	e.estimateLAI(prev, cur)

	// Beer-Lambert gap probabilities through the overstory. The
	// overstory is forced fully transparent before growth regardless of
	// the index value.
	k := p.Photosynthesis.ExtinctionCoefficient
	overLAI := c.OverstoryLAI
	if cur.PhenoCode < PhenoGrowth {
		overLAI = 0
		c.OverstoryLAI = 0
	}
	c.GapDirect = math.Exp(-k * overLAI)
	c.GapDiffuse = math.Exp(-diffuseExtinctionRatio * k * overLAI)

	window := p.Photosynthesis.WaterStressDays * 24

	for h := 0; h < 24; h++ {
		// 1. Radiation: direct/diffuse partition and per-layer PAR.
		sw := wx.HourlySolar[h]
		raW := wx.Solar.HourlyExtraterrestrial[h] * 1e6 / 3600
		var kt float64
		if raW > 0 {
			kt = sw / raW
		}
		diffuse := erbsDiffuseFraction(kt) * sw
		direct := sw - diffuse
		parDir := direct * parFraction * wattsToMicromol
		parDiff := diffuse * parFraction * wattsToMicromol
		c.PARDirect[h] = parDir
		c.PARDiffuse[h] = parDiff

		parOver := parDir*(1-c.GapDirect) + parDiff*(1-c.GapDiffuse)
		parUnderTop := parDir*c.GapDirect + parDiff*c.GapDiffuse
		parUnder := parUnderTop * (1 - math.Exp(-k*c.UnderstoryLAI))
		c.PAROverstory[h] = parOver
		c.PARUnderstory[h] = parUnder

		parScaleOver := InversePARSaturation(parDir+parDiff, p.Photosynthesis.HalfSaturationPAR)
		parScaleUnder := InversePARSaturation(parUnderTop, p.Photosynthesis.HalfSaturationPAR)
		c.PARScalerOverstory[h] = parScaleOver
		c.PARScalerUnderstory[h] = parScaleUnder

		// 2. Temperature: leaf temperature is air temperature for both
		// layers (no energy balance); the understory response shifts its
		// optimum to represent the cooler microclimate.
		t := wx.HourlyTemperature[h]
		c.LeafTemperatureOverstory[h] = t
		c.LeafTemperatureUnderstory[h] = t
		var tScaleOver float64
		if cur.PhenoCode >= PhenoGrowth {
			tScaleOver = ThermalForcing(t, p.Photosynthesis.TemperatureMin,
				p.Photosynthesis.TemperatureOpt, p.Photosynthesis.TemperatureMax)
		}
		tScaleUnder := ThermalForcing(t, p.Photosynthesis.TemperatureMin,
			p.Photosynthesis.TemperatureOpt+p.Photosynthesis.PixelTemperatureShift,
			p.Photosynthesis.TemperatureMax)
		c.TemperatureScalerOverstory[h] = tScaleOver
		c.TemperatureScalerUnderstory[h] = tScaleUnder

		// 3. Water stress from the rolling precipitation/ET0 windows.
		c.PrecipMemory = slideWindow(c.PrecipMemory, wx.HourlyPrecipitation[h], window)
		c.ET0Memory = slideWindow(c.ET0Memory, wx.HourlyET0[h], window)
		stress := e.waterStress(c, cur.VI/100, window)
		c.WaterStress[h] = stress

		// 4. Phenology scaler: logistic in growth completion during
		// growth, saturated afterwards, zero outside the season. This is
		// a GPP scaler, distinct from the respiration aging scaler.
		var phenoScale float64
		switch cur.PhenoCode {
		case PhenoGrowth:
			phenoScale = LogisticAging(cur.Growth.Percentage,
				p.Photosynthesis.GrowthPhenologyScalingFactor,
				p.Photosynthesis.PhenologySteepness)
		case PhenoGreendown, PhenoDecline:
			phenoScale = 1
		}
		c.PhenologyScaler[h] = phenoScale

		// 5. VPD.
		vpdScale := VPDSigmoid(wx.HourlyVPD[h], p.Photosynthesis.VPDMin,
			p.Photosynthesis.VPDMax, p.Photosynthesis.VPDSensitivity)
		c.VPDScaler[h] = vpdScale

		// 6. GPP. Co-limitation is by the minimum of the water, VPD and
		// light scalers (Liebig), not their product as in classic VPRM.
		var gppOver float64
		if cur.PhenoCode >= PhenoGrowth {
			gppOver = p.Photosynthesis.MaxQuantumYieldOverstory * tScaleOver *
				min3(stress, vpdScale, parScaleOver) * parOver * phenoScale * c.OverstoryEVI
		}
		gppUnder := p.Photosynthesis.MaxQuantumYieldUnderstory * tScaleUnder *
			min3(stress, vpdScale, parScaleUnder) * parUnder * c.UnderstoryEVI
		c.GPPOverstory[h] = gppOver
		c.GPPUnderstory[h] = gppUnder
		c.GPP[h] = gppOver + gppUnder

		// 7. RECO: smoothed autotrophic components plus unsmoothed
		// heterotrophic soil respiration.
		r := &p.Respiration
		tsSoil := LloydTaylor(t, r.ActivationEnergySoil)
		tsOver := LloydTaylor(t, r.ActivationEnergyOverstory)
		tsUnder := LloydTaylor(t, r.ActivationEnergyUnderstory)

		var rawOver float64
		if cur.PhenoCode >= PhenoGrowth {
			aging := LogisticAging(seasonThermalFraction(cur, p),
				r.AgingFactor, r.AgingSteepness)
			rawOver = (r.ReferenceRespirationOverstory + r.ResponseOverstory*gppOver) *
				aging * tsOver
		}
		rawUnder := (r.ReferenceRespirationUnderstory + r.ResponseUnderstory*gppUnder) * tsUnder

		e.lastRecoOverstory += r.SmoothingAlpha * (rawOver - e.lastRecoOverstory)
		e.lastRecoUnderstory += r.SmoothingAlpha * (rawUnder - e.lastRecoUnderstory)

		hetero := r.ReferenceRespirationSoil * tsSoil * stress

		c.RECOOverstory[h] = e.lastRecoOverstory
		c.RECOUnderstory[h] = e.lastRecoUnderstory
		c.RECOHeterotrophic[h] = hetero
		c.RECO[h] = e.lastRecoOverstory + e.lastRecoUnderstory + hetero

		// 8. NEE.
		c.NEE[h] = c.RECO[h] - c.GPP[h]
	}

	c.GPPDaily, c.RECODaily = 0, 0
	for h := 0; h < 24; h++ {
		c.GPPDaily += c.GPP[h]
		c.RECODaily += c.RECO[h]
	}
	c.NEEDaily = c.RECODaily - c.GPPDaily
	return nil
}

// vegetationCover estimates the overstory cover fraction from the
// distance of the current index to the phase snapshots.
func vegetationCover(cur *DayState, p *Parameters) float64 {
	vi := cur.VI / 100
	switch cur.PhenoCode {
	case PhenoGrowth:
		denom := p.VI.Maximum - cur.VIAtGrowth
		if denom <= 0 {
			return 1
		}
		return clamp01((vi - cur.VIAtGrowth) / denom)
	case PhenoGreendown:
		return 1
	case PhenoDecline:
		denom := cur.VIAtGreendown - cur.VIAtGrowth
		if denom <= 0 {
			return 0
		}
		return clamp01((vi - cur.VIAtGrowth) / denom)
	}
	return 0
}

// estimateLAI derives the two-layer EVI and LAI for the day. Before
// growth the overstory is fully dormant and the whole index belongs to
// the understory; during the season the understory tracks the residual
// greenness the overstory does not explain, accumulating the share of
// each day's index change proportional to the uncovered ground.
func (e *FluxEngine) estimateLAI(prev, cur *DayState) {
	c := &cur.Carbon
	vi := cur.VI / 100

	if cur.PhenoCode < PhenoGrowth {
		c.OverstoryEVI = 0
		c.OverstoryLAI = 0
		c.UnderstoryEVI = vi
		c.UnderstoryLAI = laiFromEVI(vi, understoryLAISlope, understoryLAIIntercept)
		return
	}

	c.OverstoryEVI = vi - cur.VIAtGrowth
	if c.OverstoryEVI < 0 {
		c.OverstoryEVI = 0
	}
	c.OverstoryLAI = laiFromEVI(vi, overstoryLAISlope, overstoryLAIIntercept)

	under := prev.Carbon.UnderstoryEVI + (1-c.VegetationCover)*(cur.VI-prev.VI)/100
	if under > vi {
		under = vi
	}
	if under < 0 {
		under = 0
	}
	c.UnderstoryEVI = under
	c.UnderstoryLAI = laiFromEVI(under, understoryLAISlope, understoryLAIIntercept)
}

func laiFromEVI(evi, slope, intercept float64) float64 {
	lai := slope*evi + intercept
	if lai < 0 {
		return 0
	}
	return lai
}

// erbsDiffuseFraction returns the diffuse fraction of global shortwave
// radiation for clearness index kt, after Erbs et al. (1982).
func erbsDiffuseFraction(kt float64) float64 {
	switch {
	case kt <= 0.22:
		return 1 - 0.09*kt
	case kt <= 0.80:
		return 0.9511 - 0.1604*kt + 4.388*kt*kt -
			16.638*kt*kt*kt + 12.336*kt*kt*kt*kt
	}
	return 0.165
}

// slideWindow appends v and evicts the oldest sample once the window is
// full, keeping at most n samples.
func slideWindow(mem []float64, v float64, n int) []float64 {
	mem = append(mem, v)
	if len(mem) > n {
		mem = mem[1:]
	}
	return mem
}

// waterStress computes the hour's water-stress scaler from the rolling
// windows. While the windows are still filling there is no evidence of
// stress and the scaler is 1. Once full, cumulative supply over demand
// (with demand floored at supply so the ratio never exceeds 1) is
// blended by the vegetation index and passed through the linear
// threshold/sensitivity response.
func (e *FluxEngine) waterStress(c *CarbonState, vi float64, window int) float64 {
	if len(c.PrecipMemory) < window {
		return 1
	}
	var supply, demand float64
	for i := range c.PrecipMemory {
		supply += c.PrecipMemory[i]
		demand += c.ET0Memory[i]
	}
	if demand < supply {
		demand = supply
	}
	ratio := 1.
	if demand > 0 {
		ratio = supply / demand
	}
	availability := 1 - vi*(1-ratio)

	p := &e.params.Photosynthesis
	if availability >= p.WaterStressThreshold {
		return 1
	}
	stress := 1 - p.WaterStressSensitivity*(p.WaterStressThreshold-availability)
	return clamp01(stress)
}

// seasonThermalFraction is the cumulative growing-season progress [%]
// across growth, greendown and decline, used by the respiration aging
// scaler.
func seasonThermalFraction(cur *DayState, p *Parameters) float64 {
	total := p.Growth.Threshold + p.Greendown.Threshold + p.Senescence.Threshold
	frac := (cur.Growth.State + cur.Greendown.State + cur.Decline.State) / total * 100
	if frac > 100 {
		return 100
	}
	return frac
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
