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

// growingSeason runs the growth, greendown and decline sub-updates for
// one day. The three phases chain within a single day: the day greendown
// reaches 100% is also the first day decline can accumulate, because the
// updates run in sequence on the same state.
func (s *Simulator) growingSeason(prev, cur *DayState, wx *DailyWeather) error {
	s.growth(cur, wx)
	s.greendown(cur, wx)
	s.decline(prev, cur, wx)
	return nil
}

// growth accumulates thermal forcing toward canopy development. The
// first day with positive progress clears the dormancy bookkeeping;
// completion clears the induction counter for next autumn.
func (s *Simulator) growth(cur *DayState, wx *DailyWeather) {
	if cur.IsGrowthCompleted || !cur.IsEcodormancyCompleted {
		return
	}
	p := &s.params.Growth
	var rate float64
	if cur.Growth.State < p.Threshold {
		rate = ThermalForcing(wx.TemperatureAvg(),
			p.TemperatureMin, p.TemperatureOpt, p.TemperatureMax)
	}
	cur.Growth.Rate = rate
	cur.Growth.State += rate

	if cur.Growth.State > 0 && cur.Ecodormancy.Percentage == 100 {
		cur.PhenoCode = PhenoGrowth
		// Growth has started: the dormancy accounting is finished for
		// this cycle.
		cur.Endodormancy = PhaseState{}
		cur.Ecodormancy.Rate = 0
	}
	if cur.Growth.State >= p.Threshold {
		cur.Growth.State = p.Threshold
		cur.Induction.State = 0
		cur.IsGrowthCompleted = true
	}
	cur.Growth.Percentage = completion(cur.Growth.State, p.Threshold)
}

// greendown accumulates the post-growth thermal phase using the same
// thermal response as growth; there is no separate parameterization.
// Completion re-opens dormancy induction for the coming autumn.
func (s *Simulator) greendown(cur *DayState, wx *DailyWeather) {
	if cur.Growth.Percentage != 100 || cur.IsGreendownCompleted {
		return
	}
	g := &s.params.Growth
	rate := ThermalForcing(wx.TemperatureAvg(),
		g.TemperatureMin, g.TemperatureOpt, g.TemperatureMax)
	cur.Greendown.accumulate(rate, s.params.Greendown.Threshold)
	cur.PhenoCode = PhenoGreendown

	if cur.Greendown.Percentage >= 100 {
		cur.Greendown.Percentage = 100
		cur.Greendown.State = s.params.Greendown.Threshold
		cur.Greendown.Rate = 0
		cur.IsGreendownCompleted = true
		cur.IsDormancyInduced = false
	}
}

// decline accumulates senescence forcing. The rate is a state-weighted
// blend of the growth thermal response and the dormancy-induction
// photothermal signal: decline starts purely thermally driven and
// smoothly becomes photoperiod-sensitive as it progresses, with the
// weight taken from the previous day's completion fraction. Completing
// decline closes the annual loop by re-opening dormancy induction.
func (s *Simulator) decline(prev, cur *DayState, wx *DailyWeather) {
	if cur.Greendown.Percentage != 100 || cur.IsDeclineCompleted {
		return
	}
	g := &s.params.Growth
	di := &s.params.DormancyInduction

	thermal := ThermalForcing(wx.TemperatureAvg(),
		g.TemperatureMin, g.TemperatureOpt, g.TemperatureMax)
	photothermal := SigmoidLimiting(wx.Solar.DayLength,
		di.PhotoperiodLimiting, di.PhotoperiodNotLimiting) *
		SigmoidLimiting(wx.TemperatureAvg(),
			di.TemperatureLimiting, di.TemperatureNotLimiting)

	priorFrac := prev.Decline.Percentage / 100
	rate := thermal*(1-priorFrac) + photothermal*priorFrac
	cur.Decline.accumulate(rate, s.params.Senescence.Threshold)
	cur.PhenoCode = PhenoDecline

	if cur.Decline.Percentage >= 100 {
		cur.Decline.Percentage = 100
		cur.Decline.Rate = 0
		cur.Greendown.Rate = 0
		cur.IsDeclineCompleted = true
		cur.IsDormancyInduced = false
	}
}
