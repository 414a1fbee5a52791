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

import "time"

// PhenoCode identifies the current phenophase.
type PhenoCode int

// The five phenophases, in annual-cycle order. PhenoNone is the state of
// a simulation that has not yet entered its first dormancy induction.
const (
	PhenoNone      PhenoCode = 0
	PhenoInduction PhenoCode = 1
	PhenoDormancy  PhenoCode = 2
	PhenoGrowth    PhenoCode = 3
	PhenoGreendown PhenoCode = 4
	PhenoDecline   PhenoCode = 5
)

func (c PhenoCode) String() string {
	switch c {
	case PhenoInduction:
		return "dormancy induction"
	case PhenoDormancy:
		return "dormancy"
	case PhenoGrowth:
		return "growth"
	case PhenoGreendown:
		return "greendown"
	case PhenoDecline:
		return "decline"
	}
	return "none"
}

// PhaseState is the rate-accumulate-threshold bookkeeping of a single
// phenophase: the daily rate, the accumulated state, and the completion
// percentage (state/threshold × 100, clamped to exactly 100).
type PhaseState struct {
	Rate       float64 `desc:"Daily phase rate" units:"d-1"`
	State      float64 `desc:"Accumulated phase state" units:"-"`
	Percentage float64 `desc:"Phase completion" units:"%"`
}

// accumulate adds rate to the state and recomputes the completion
// percentage against threshold, clamping it to exactly 100 so that
// downstream equality comparisons are exact.
func (p *PhaseState) accumulate(rate, threshold float64) {
	p.Rate = rate
	p.State += rate
	p.Percentage = completion(p.State, threshold)
}

func completion(state, threshold float64) float64 {
	pct := state / threshold * 100
	if pct >= 100 {
		return 100
	}
	return pct
}

// InductionState is the dormancy-induction bookkeeping; unlike the other
// phases it tracks its two signal components separately.
type InductionState struct {
	PhotoperiodRate float64 `desc:"Photoperiod induction signal" units:"-"`
	TemperatureRate float64 `desc:"Temperature induction signal" units:"-"`
	Rate            float64 `desc:"Combined daily induction rate" units:"d-1"`
	State           float64 `desc:"Accumulated induction state" units:"-"`
	Percentage      float64 `desc:"Induction completion" units:"%"`
}

// CarbonState holds the carbon-exchange portion of a day's state: the
// canopy structure estimated once per day, the 24 hourly flux arrays, the
// daily totals, and the rolling precipitation/ET0 memories that slide
// forward from day to day.
type CarbonState struct {
	VegetationCover float64 `desc:"Fraction of ground covered by overstory vegetation" units:"-"`
	OverstoryEVI    float64 `desc:"Overstory enhanced vegetation index" units:"-"`
	OverstoryLAI    float64 `desc:"Overstory leaf area index" units:"m2 m-2"`
	UnderstoryEVI   float64 `desc:"Understory enhanced vegetation index" units:"-"`
	UnderstoryLAI   float64 `desc:"Understory leaf area index" units:"m2 m-2"`
	GapDirect       float64 `desc:"Overstory gap probability for direct beam" units:"-"`
	GapDiffuse      float64 `desc:"Overstory gap probability for diffuse radiation" units:"-"`

	// Rolling hourly memories for the water-stress window. They are
	// carried forward (copied) between days and bounded at
	// WaterStressDays×24 samples.
	PrecipMemory []float64
	ET0Memory    []float64

	PARDirect                   [24]float64 `desc:"Direct-beam PAR" units:"µmol m-2 s-1"`
	PARDiffuse                  [24]float64 `desc:"Diffuse PAR" units:"µmol m-2 s-1"`
	PAROverstory                [24]float64 `desc:"PAR absorbed by the overstory" units:"µmol m-2 s-1"`
	PARUnderstory               [24]float64 `desc:"PAR absorbed by the understory" units:"µmol m-2 s-1"`
	LeafTemperatureOverstory    [24]float64 `desc:"Overstory leaf temperature" units:"°C"`
	LeafTemperatureUnderstory   [24]float64 `desc:"Understory leaf temperature" units:"°C"`
	TemperatureScalerOverstory  [24]float64 `desc:"Overstory temperature scaler" units:"-"`
	TemperatureScalerUnderstory [24]float64 `desc:"Understory temperature scaler" units:"-"`
	PARScalerOverstory          [24]float64 `desc:"Overstory light-saturation scaler" units:"-"`
	PARScalerUnderstory         [24]float64 `desc:"Understory light-saturation scaler" units:"-"`
	WaterStress                 [24]float64 `desc:"Water-stress scaler" units:"-"`
	VPDScaler                   [24]float64 `desc:"Vapor-pressure-deficit scaler" units:"-"`
	PhenologyScaler             [24]float64 `desc:"Phenology scaler" units:"-"`
	GPPOverstory                [24]float64 `desc:"Overstory gross primary production" units:"µmol m-2 s-1"`
	GPPUnderstory               [24]float64 `desc:"Understory gross primary production" units:"µmol m-2 s-1"`
	GPP                         [24]float64 `desc:"Gross primary production" units:"µmol m-2 s-1"`
	RECOOverstory               [24]float64 `desc:"Overstory respiration (smoothed)" units:"µmol m-2 s-1"`
	RECOUnderstory              [24]float64 `desc:"Understory respiration (smoothed)" units:"µmol m-2 s-1"`
	RECOHeterotrophic           [24]float64 `desc:"Heterotrophic respiration" units:"µmol m-2 s-1"`
	RECO                        [24]float64 `desc:"Ecosystem respiration" units:"µmol m-2 s-1"`
	NEE                         [24]float64 `desc:"Net ecosystem exchange" units:"µmol m-2 s-1"`

	GPPDaily  float64 `desc:"Daily total gross primary production" units:"µmol m-2 d-1"`
	RECODaily float64 `desc:"Daily total ecosystem respiration" units:"µmol m-2 d-1"`
	NEEDaily  float64 `desc:"Daily total net ecosystem exchange" units:"µmol m-2 d-1"`
}

// DayState is the complete simulation state for one day. The driver owns
// every DayState: each daily step reads the previous day's state and
// writes a freshly constructed one, so a previous state is never mutated
// once its day has been computed.
type DayState struct {
	Date time.Time

	PhenoCode PhenoCode `desc:"Phenophase code" units:"-"`
	Phase     string    `desc:"Phenophase name" units:"-"`

	Induction    InductionState
	Endodormancy PhaseState
	Ecodormancy  PhaseState
	Growth       PhaseState
	Greendown    PhaseState
	Decline      PhaseState

	// Completion flags. Each is monotonic within a phase cycle: once
	// true, the owning phase no-ops until a later phase resets it to
	// open the next annual cycle.
	IsDormancyInduced      bool
	IsEcodormancyCompleted bool
	IsGrowthCompleted      bool
	IsGreendownCompleted   bool
	IsDeclineCompleted     bool

	// Vegetation index, stored ×100.
	VI          float64 `desc:"Vegetation index" units:"VI×100"`
	VIRate      float64 `desc:"Daily vegetation index change" units:"VI×100 d-1"`
	VIReference float64 `desc:"Baseline vegetation index of the current phase" units:"-"`

	// Phase-transition snapshots on the 0–1 scale, each captured exactly
	// once per annual cycle on first entry to the owning phase.
	VIAtGrowth     float64 `desc:"Vegetation index at growth onset" units:"-"`
	VIAtSenescence float64 `desc:"Vegetation index at dormancy onset" units:"-"`
	VIAtGreendown  float64 `desc:"Vegetation index at decline onset" units:"-"`

	// DayLength of this day [h], kept so the next day can compare
	// against it in the dormancy vegetation-index branch.
	DayLength float64 `desc:"Day length" units:"h"`

	Carbon CarbonState
}

// NextDayState constructs the state for a new day by copying forward all
// phase sub-states, flags, vegetation-index fields and rolling memories
// from the previous day. This copy is the temporal-continuity contract:
// the day's update functions then mutate only the new state. The hourly
// flux arrays start zeroed; they describe single days and do not carry
// over.
func NextDayState(prev *DayState) *DayState {
	s := &DayState{
		Date:      prev.Date.AddDate(0, 0, 1),
		PhenoCode: prev.PhenoCode,
		Phase:     prev.PhenoCode.String(),

		Induction:    prev.Induction,
		Endodormancy: prev.Endodormancy,
		Ecodormancy:  prev.Ecodormancy,
		Growth:       prev.Growth,
		Greendown:    prev.Greendown,
		Decline:      prev.Decline,

		IsDormancyInduced:      prev.IsDormancyInduced,
		IsEcodormancyCompleted: prev.IsEcodormancyCompleted,
		IsGrowthCompleted:      prev.IsGrowthCompleted,
		IsGreendownCompleted:   prev.IsGreendownCompleted,
		IsDeclineCompleted:     prev.IsDeclineCompleted,

		VI:          prev.VI,
		VIRate:      0,
		VIReference: prev.VIReference,

		VIAtGrowth:     prev.VIAtGrowth,
		VIAtSenescence: prev.VIAtSenescence,
		VIAtGreendown:  prev.VIAtGreendown,

		DayLength: prev.DayLength,
	}
	s.Carbon.VegetationCover = prev.Carbon.VegetationCover
	s.Carbon.OverstoryEVI = prev.Carbon.OverstoryEVI
	s.Carbon.OverstoryLAI = prev.Carbon.OverstoryLAI
	s.Carbon.UnderstoryEVI = prev.Carbon.UnderstoryEVI
	s.Carbon.UnderstoryLAI = prev.Carbon.UnderstoryLAI
	s.Carbon.PrecipMemory = append([]float64(nil), prev.Carbon.PrecipMemory...)
	s.Carbon.ET0Memory = append([]float64(nil), prev.Carbon.ET0Memory...)
	return s
}

// NewDayState returns the state preceding the first simulated day: no
// phase has any progress, the vegetation index sits at its minimum, and
// no phenophase has been entered.
func NewDayState(p *Parameters, date time.Time) *DayState {
	return &DayState{
		Date:      date,
		PhenoCode: PhenoNone,
		Phase:     PhenoNone.String(),
		VI:        p.VI.Minimum * 100,
	}
}
