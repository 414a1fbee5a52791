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

import "fmt"

// Parameters holds the nine immutable parameter groups of a simulation:
// one group per phenophase plus the vegetation-index, photosynthesis and
// respiration groups. A Parameters value is loaded once per simulation
// and never mutated by the model.
type Parameters struct {
	DormancyInduction DormancyInductionParams
	Endodormancy      EndodormancyParams
	Ecodormancy       EcodormancyParams
	Growth            GrowthParams
	Greendown         GreendownParams
	Senescence        SenescenceParams
	VI                VIParams
	Photosynthesis    PhotosynthesisParams
	Respiration       RespirationParams
}

// DormancyInductionParams controls the photoperiod×temperature signal
// that accumulates toward dormancy entry.
type DormancyInductionParams struct {
	// PhotoperiodLimiting and PhotoperiodNotLimiting are the day lengths
	// [h] beyond which induction is fully blocked and fully promoted,
	// respectively. Short days promote induction, so
	// PhotoperiodLimiting > PhotoperiodNotLimiting.
	PhotoperiodLimiting    float64
	PhotoperiodNotLimiting float64

	// TemperatureLimiting and TemperatureNotLimiting are the average
	// temperatures [°C] beyond which induction is fully blocked and
	// fully promoted. Cool days promote induction.
	TemperatureLimiting    float64
	TemperatureNotLimiting float64

	// Threshold is the accumulated photothermal state at which
	// dormancy is considered induced.
	Threshold float64
}

// EndodormancyParams bounds the four-segment hourly chilling-efficiency
// curve and sets the chilling requirement.
type EndodormancyParams struct {
	// The curve is 0 below TemperatureLimitingLow and above
	// TemperatureLimitingHigh, 1 between the two not-limiting bounds,
	// with logistic ramps in between. [°C]
	TemperatureLimitingLow     float64
	TemperatureNotLimitingLow  float64
	TemperatureNotLimitingHigh float64
	TemperatureLimitingHigh    float64

	// Threshold is the chilling requirement in accumulated daily mean
	// efficiencies. Endodormancy is allowed to stay below its threshold
	// permanently; partial chilling only caps the ecodormancy rate.
	Threshold float64
}

// EcodormancyParams controls dormancy release by warm temperatures,
// modulated by day length: longer days lower the temperature midpoint
// and narrow the transition, so release accelerates in spring.
type EcodormancyParams struct {
	// TemperatureMidpoint [°C] is the forcing-sigmoid midpoint at the
	// reference day length.
	TemperatureMidpoint float64

	// MidpointDaylengthSensitivity [°C h⁻¹] lowers the midpoint as days
	// grow longer than ReferenceDaylength.
	MidpointDaylengthSensitivity float64

	// TransitionWidth [°C] is the sigmoid width at the reference day
	// length and WidthDaylengthSensitivity [h⁻¹ °C] narrows it with
	// lengthening days. The width is floored at 0.5 °C.
	TransitionWidth           float64
	WidthDaylengthSensitivity float64

	// ReferenceDaylength [h] anchors both day-length modulations.
	ReferenceDaylength float64

	// Threshold is the accumulated forcing state at which ecodormancy
	// completes and the growing season may begin.
	Threshold float64
}

// GrowthParams holds the cardinal temperatures [°C] of the growth
// thermal-forcing response and the thermal requirement of the phase.
// Greendown and decline reuse the same cardinal temperatures.
type GrowthParams struct {
	TemperatureMin float64
	TemperatureOpt float64
	TemperatureMax float64
	Threshold      float64
}

// GreendownParams holds the thermal requirement of the greendown phase.
type GreendownParams struct {
	Threshold float64
}

// SenescenceParams holds the thermal requirement of the decline phase.
type SenescenceParams struct {
	Threshold float64
}

// VIIndexType selects which vegetation index the simulation tracks;
// the greendown VI rate weighting differs between the two.
type VIIndexType string

// Recognized vegetation-index types.
const (
	IndexEVI  VIIndexType = "EVI"
	IndexNDVI VIIndexType = "NDVI"
)

// VIParams controls the vegetation-index dynamics.
type VIParams struct {
	// Minimum and Maximum bound the index on the 0–1 scale. The daily
	// value is clamped to [Minimum, 1]; Maximum is the asymptote the
	// growth-phase rate approaches.
	Minimum float64
	Maximum float64

	// IndexType is either IndexEVI or IndexNDVI.
	IndexType VIIndexType

	// Phase rate coefficients [VI×100 d⁻¹].
	RateGrowth       float64
	RateGreendown    float64
	RateSenescence   float64
	RateEndodormancy float64
	RateEcodormancy  float64
}

// PhotosynthesisParams controls the hourly GPP computation.
type PhotosynthesisParams struct {
	// MaxQuantumYieldOverstory and MaxQuantumYieldUnderstory are the
	// layer light-use efficiencies [µmol CO₂ µmol⁻¹ PAR].
	MaxQuantumYieldOverstory  float64
	MaxQuantumYieldUnderstory float64

	// HalfSaturationPAR [µmol m⁻² s⁻¹] is the half-saturation constant
	// of the inverse light response.
	HalfSaturationPAR float64

	// Cardinal temperatures [°C] of the photosynthesis temperature
	// scaler. The understory scaler shifts the optimum by
	// PixelTemperatureShift to represent its cooler microclimate.
	TemperatureMin        float64
	TemperatureOpt        float64
	TemperatureMax        float64
	PixelTemperatureShift float64

	// VPD limitation bounds [kPa] and sensitivity [kPa⁻¹].
	VPDMin         float64
	VPDMax         float64
	VPDSensitivity float64

	// GrowthPhenologyScalingFactor [%] is the inflection of the logistic
	// phenology scaler applied to overstory GPP during the growth phase,
	// with steepness PhenologySteepness [%⁻¹].
	GrowthPhenologyScalingFactor float64
	PhenologySteepness           float64

	// ExtinctionCoefficient is the Beer-Lambert canopy extinction
	// coefficient for direct-beam radiation; diffuse radiation uses
	// 0.8 times this value.
	ExtinctionCoefficient float64

	// WaterStressDays is the length [d] of the rolling precipitation and
	// ET0 windows; stress is 1 until the windows hold WaterStressDays×24
	// hourly samples. WaterStressThreshold and WaterStressSensitivity
	// shape the linear response below the threshold.
	WaterStressDays        int
	WaterStressThreshold   float64
	WaterStressSensitivity float64
}

// RespirationParams controls the three-component ecosystem respiration.
type RespirationParams struct {
	// Reference respiration terms [µmol CO₂ m⁻² s⁻¹] and the GPP
	// response slopes of the two autotrophic components.
	ReferenceRespirationOverstory  float64
	ResponseOverstory              float64
	ReferenceRespirationUnderstory float64
	ResponseUnderstory             float64
	ReferenceRespirationSoil       float64

	// Lloyd-Taylor activation energies [K], one per component.
	ActivationEnergySoil       float64
	ActivationEnergyOverstory  float64
	ActivationEnergyUnderstory float64

	// AgingFactor [%] is the inflection of the logistic aging scaler
	// over the cumulative growing-season thermal fraction, with
	// steepness AgingSteepness [%⁻¹].
	AgingFactor    float64
	AgingSteepness float64

	// SmoothingAlpha is the exponential-moving-average coefficient of
	// the autotrophic respiration filter. The filter state persists
	// across hours and days for the life of a FluxEngine.
	SmoothingAlpha float64
}

func checkCardinals(name string, tMin, tOpt, tMax float64) error {
	if tOpt == tMin || tOpt == tMax {
		return fmt.Errorf("phenovprm: %s cardinal temperatures are degenerate "+
			"(min=%g opt=%g max=%g); the thermal response would divide by zero",
			name, tMin, tOpt, tMax)
	}
	if !(tMin < tOpt && tOpt < tMax) {
		return fmt.Errorf("phenovprm: %s cardinal temperatures must satisfy "+
			"min < opt < max (min=%g opt=%g max=%g)", name, tMin, tOpt, tMax)
	}
	return nil
}

// Validate checks the parameter set for configuration errors that would
// otherwise surface as divisions by zero or nonsense dynamics deep inside
// a simulation. It must be called (NewSimulator calls it) before any
// daily step is computed.
func (p *Parameters) Validate() error {
	if err := checkCardinals("growth", p.Growth.TemperatureMin,
		p.Growth.TemperatureOpt, p.Growth.TemperatureMax); err != nil {
		return err
	}
	if err := checkCardinals("photosynthesis", p.Photosynthesis.TemperatureMin,
		p.Photosynthesis.TemperatureOpt, p.Photosynthesis.TemperatureMax); err != nil {
		return err
	}
	shifted := p.Photosynthesis.TemperatureOpt + p.Photosynthesis.PixelTemperatureShift
	if err := checkCardinals("understory photosynthesis", p.Photosynthesis.TemperatureMin,
		shifted, p.Photosynthesis.TemperatureMax); err != nil {
		return err
	}
	for _, c := range []struct {
		name                  string
		limiting, notLimiting float64
	}{
		{"induction photoperiod", p.DormancyInduction.PhotoperiodLimiting, p.DormancyInduction.PhotoperiodNotLimiting},
		{"induction temperature", p.DormancyInduction.TemperatureLimiting, p.DormancyInduction.TemperatureNotLimiting},
	} {
		if c.limiting == c.notLimiting {
			return fmt.Errorf("phenovprm: %s limiting and not-limiting "+
				"thresholds are equal (%g); the sigmoid width would be zero",
				c.name, c.limiting)
		}
	}
	e := p.Endodormancy
	if !(e.TemperatureLimitingLow < e.TemperatureNotLimitingLow &&
		e.TemperatureNotLimitingLow < e.TemperatureNotLimitingHigh &&
		e.TemperatureNotLimitingHigh < e.TemperatureLimitingHigh) {
		return fmt.Errorf("phenovprm: endodormancy chilling bounds must be "+
			"strictly increasing (got %g, %g, %g, %g)",
			e.TemperatureLimitingLow, e.TemperatureNotLimitingLow,
			e.TemperatureNotLimitingHigh, e.TemperatureLimitingHigh)
	}
	for _, t := range []struct {
		name string
		val  float64
	}{
		{"dormancy induction", p.DormancyInduction.Threshold},
		{"endodormancy", p.Endodormancy.Threshold},
		{"ecodormancy", p.Ecodormancy.Threshold},
		{"growth", p.Growth.Threshold},
		{"greendown", p.Greendown.Threshold},
		{"senescence", p.Senescence.Threshold},
	} {
		if t.val <= 0 {
			return fmt.Errorf("phenovprm: %s threshold must be positive, got %g", t.name, t.val)
		}
	}
	if !(0 <= p.VI.Minimum && p.VI.Minimum < p.VI.Maximum && p.VI.Maximum <= 1) {
		return fmt.Errorf("phenovprm: vegetation index bounds must satisfy "+
			"0 ≤ min < max ≤ 1, got min=%g max=%g", p.VI.Minimum, p.VI.Maximum)
	}
	if p.VI.IndexType != IndexEVI && p.VI.IndexType != IndexNDVI {
		return fmt.Errorf("phenovprm: unknown vegetation index type %q", p.VI.IndexType)
	}
	if p.Photosynthesis.HalfSaturationPAR <= 0 {
		return fmt.Errorf("phenovprm: PAR half-saturation must be positive, got %g",
			p.Photosynthesis.HalfSaturationPAR)
	}
	if p.Photosynthesis.WaterStressDays <= 0 {
		return fmt.Errorf("phenovprm: water stress window must be at least one day, got %d",
			p.Photosynthesis.WaterStressDays)
	}
	if a := p.Respiration.SmoothingAlpha; a <= 0 || a > 1 {
		return fmt.Errorf("phenovprm: respiration smoothing coefficient must be "+
			"in (0, 1], got %g", a)
	}
	return nil
}

// DefaultParameters returns a parameter set calibrated for a temperate
// deciduous forest. It is the configuration used by the command-line
// tool when no parameter file is given, and by the package tests.
func DefaultParameters() *Parameters {
	return &Parameters{
		DormancyInduction: DormancyInductionParams{
			PhotoperiodLimiting:    15,
			PhotoperiodNotLimiting: 11,
			TemperatureLimiting:    20,
			TemperatureNotLimiting: 5,
			Threshold:              21,
		},
		Endodormancy: EndodormancyParams{
			TemperatureLimitingLow:     -5,
			TemperatureNotLimitingLow:  0,
			TemperatureNotLimitingHigh: 8,
			TemperatureLimitingHigh:    12,
			Threshold:                  55,
		},
		Ecodormancy: EcodormancyParams{
			TemperatureMidpoint:          12,
			MidpointDaylengthSensitivity: 1.5,
			TransitionWidth:              8,
			WidthDaylengthSensitivity:    0.5,
			ReferenceDaylength:           11,
			Threshold:                    18,
		},
		Growth: GrowthParams{
			TemperatureMin: 0,
			TemperatureOpt: 22,
			TemperatureMax: 38,
			Threshold:      28,
		},
		Greendown:  GreendownParams{Threshold: 55},
		Senescence: SenescenceParams{Threshold: 30},
		VI: VIParams{
			Minimum:          0.15,
			Maximum:          0.95,
			IndexType:        IndexEVI,
			RateGrowth:       3.2,
			RateGreendown:    0.12,
			RateSenescence:   1.4,
			RateEndodormancy: 0.35,
			RateEcodormancy:  0.25,
		},
		Photosynthesis: PhotosynthesisParams{
			MaxQuantumYieldOverstory:     0.044,
			MaxQuantumYieldUnderstory:    0.022,
			HalfSaturationPAR:            570,
			TemperatureMin:               0,
			TemperatureOpt:               23,
			TemperatureMax:               40,
			PixelTemperatureShift:        -2,
			VPDMin:                       0.9,
			VPDMax:                       4.0,
			VPDSensitivity:               1.8,
			GrowthPhenologyScalingFactor: 40,
			PhenologySteepness:           0.12,
			ExtinctionCoefficient:        0.5,
			WaterStressDays:              15,
			WaterStressThreshold:         0.35,
			WaterStressSensitivity:       2.0,
		},
		Respiration: RespirationParams{
			ReferenceRespirationOverstory:  0.9,
			ResponseOverstory:              0.12,
			ReferenceRespirationUnderstory: 0.5,
			ResponseUnderstory:             0.08,
			ReferenceRespirationSoil:       1.1,
			ActivationEnergySoil:           308.56,
			ActivationEnergyOverstory:      230.0,
			ActivationEnergyUnderstory:     185.0,
			AgingFactor:                    60,
			AgingSteepness:                 0.08,
			SmoothingAlpha:                 0.3,
		},
	}
}
