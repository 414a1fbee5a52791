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

// Package phenovprm simulates the phenology and carbon exchange of a
// single vegetated point, one day at a time: a five-phase
// dormancy/growth/senescence state machine drives vegetation-index
// dynamics, which in turn drive an hourly two-layer Vegetation
// Photosynthesis Respiration Model (VPRM) producing GPP, ecosystem
// respiration and net ecosystem exchange.
package phenovprm

import (
	"fmt"

	"go.uber.org/zap"
)

// Version is the version of this module.
const Version = "1.1.0"

// StepFunc is one stage of the daily pipeline. Stages read the previous
// day's state and mutate only the current day's state.
type StepFunc func(prev, cur *DayState, wx *DailyWeather) error

// Simulator advances the state of one simulated point one day per Step
// call. A Simulator owns the per-simulation engine state (the
// vegetation-index flip-flop and the respiration smoothing filter), so
// each concurrently simulated point needs its own Simulator; independent
// Simulators share nothing and may run in parallel.
type Simulator struct {
	params *Parameters
	vi     *VIEngine
	flux   *FluxEngine
	logger *zap.SugaredLogger

	stepFuncs []StepFunc
}

// NewSimulator validates the parameter set and returns a Simulator ready
// for its first day. A nil logger disables logging.
func NewSimulator(p *Parameters, logger *zap.SugaredLogger) (*Simulator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Simulator{
		params: p,
		vi:     NewVIEngine(logger),
		flux:   NewFluxEngine(p),
		logger: logger,
	}
	s.stepFuncs = []StepFunc{
		s.dormancy,
		s.growingSeason,
		s.viDynamics,
		s.carbonFlux,
	}
	return s, nil
}

// Parameters returns the simulation's immutable parameter set.
func (s *Simulator) Parameters() *Parameters { return s.params }

func (s *Simulator) viDynamics(prev, cur *DayState, wx *DailyWeather) error {
	s.vi.Update(prev, cur, wx, s.params)
	return nil
}

func (s *Simulator) carbonFlux(prev, cur *DayState, wx *DailyWeather) error {
	return s.flux.Update(prev, cur, wx)
}

// Step computes the state for the day described by wx from the previous
// day's state. The previous state is read-only: Step constructs and
// returns a fresh state, so callers can keep full histories or feed
// hand-constructed previous states. If prev is nil, the simulation
// starts from the pre-cycle state. If the hourly arrays of wx have not
// been populated, the record is disaggregated first.
func (s *Simulator) Step(prev *DayState, wx *DailyWeather) (*DayState, error) {
	if wx.Solar.DayLength == 0 {
		if err := Disaggregate(wx); err != nil {
			return nil, err
		}
	}
	if err := wx.Check(); err != nil {
		return nil, err
	}
	if prev == nil {
		prev = NewDayState(s.params, wx.Date.AddDate(0, 0, -1))
		prev.DayLength = wx.Solar.DayLength
	}

	cur := NextDayState(prev)
	cur.Date = wx.Date
	cur.DayLength = wx.Solar.DayLength

	for _, f := range s.stepFuncs {
		if err := f(prev, cur, wx); err != nil {
			return nil, fmt.Errorf("phenovprm: %v: %w", wx.Date.Format("2006-01-02"), err)
		}
	}
	cur.Phase = cur.PhenoCode.String()
	return cur, nil
}

// Run simulates the given sequence of days in order, calling any
// supplied functions on each completed day state, and returns the full
// daily history.
func (s *Simulator) Run(weather []*DailyWeather, fns ...func(*DayState) error) ([]*DayState, error) {
	states := make([]*DayState, 0, len(weather))
	var prev *DayState
	for i, wx := range weather {
		cur, err := s.Step(prev, wx)
		if err != nil {
			return states, err
		}
		for _, f := range fns {
			if err := f(cur); err != nil {
				return states, err
			}
		}
		states = append(states, cur)
		prev = cur
		if (i+1)%365 == 0 {
			s.logger.Debugw("simulated year complete",
				"days", i+1, "date", cur.Date, "phase", cur.Phase)
		}
	}
	return states, nil
}
