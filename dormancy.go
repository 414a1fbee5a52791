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

// dormancy runs the three dormancy sub-updates for one day. Each is
// called unconditionally and no-ops internally once its guard is false,
// so the frozen fields keep the values copied forward from the previous
// day (the copy-verbatim interpretation of the freeze semantics).
func (s *Simulator) dormancy(prev, cur *DayState, wx *DailyWeather) error {
	s.induction(cur, wx)
	s.endodormancy(cur, wx)
	s.ecodormancy(cur, wx)
	return nil
}

// induction accumulates the photoperiod×temperature dormancy-induction
// signal. Completing it opens the chilling phase and clears the stale
// ecodormancy forcing left over from the previous spring.
func (s *Simulator) induction(cur *DayState, wx *DailyWeather) {
	if cur.IsDormancyInduced {
		return
	}
	p := &s.params.DormancyInduction
	cur.Induction.PhotoperiodRate = SigmoidLimiting(wx.Solar.DayLength,
		p.PhotoperiodLimiting, p.PhotoperiodNotLimiting)
	cur.Induction.TemperatureRate = SigmoidLimiting(wx.TemperatureAvg(),
		p.TemperatureLimiting, p.TemperatureNotLimiting)
	cur.Induction.Rate = cur.Induction.PhotoperiodRate * cur.Induction.TemperatureRate
	cur.Induction.State += cur.Induction.Rate
	cur.Induction.Percentage = completion(cur.Induction.State, p.Threshold)

	if cur.Induction.State > 0 {
		cur.PhenoCode = PhenoInduction
	}
	if cur.Induction.Percentage >= 100 {
		cur.IsDormancyInduced = true
		// A new dormancy season begins: discard the forcing progress of
		// the previous cycle and re-arm the release machinery.
		cur.Ecodormancy.State = 0
		cur.Ecodormancy.Rate = 0
		cur.Ecodormancy.Percentage = 0
		cur.IsEcodormancyCompleted = false
	}
}

// endodormancy accumulates chilling as the mean of the hourly
// chilling-efficiency curve. Its completion percentage clamps at 100 but
// sets no flag: endodormancy may stay below its requirement permanently,
// in which case the shortfall only throttles ecodormancy through the
// asymptote below.
func (s *Simulator) endodormancy(cur *DayState, wx *DailyWeather) {
	if !cur.IsDormancyInduced || cur.IsEcodormancyCompleted {
		return
	}
	p := &s.params.Endodormancy
	sum := 0.
	for _, t := range wx.HourlyTemperature {
		sum += ChillingEfficiency(t, p.TemperatureLimitingLow, p.TemperatureNotLimitingLow,
			p.TemperatureNotLimitingHigh, p.TemperatureLimitingHigh)
	}
	cur.Endodormancy.accumulate(sum/24, p.Threshold)
}

// ecodormancy accumulates forcing toward dormancy release. The rate is
// capped by the chilling completion (partial chilling lowers the
// asymptote, it does not block release) and follows a temperature
// sigmoid whose midpoint drops and whose transition narrows as days
// lengthen. Completion is the annual-cycle reset point for the growing
// season machine.
func (s *Simulator) ecodormancy(cur *DayState, wx *DailyWeather) {
	if !cur.IsDormancyInduced || cur.IsEcodormancyCompleted {
		return
	}
	p := &s.params.Ecodormancy
	asymptote := cur.Endodormancy.Percentage / 100

	dl := wx.Solar.DayLength - p.ReferenceDaylength
	mid := p.TemperatureMidpoint - p.MidpointDaylengthSensitivity*dl
	width := p.TransitionWidth - p.WidthDaylengthSensitivity*dl
	if width < 0.5 {
		width = 0.5
	}
	rate := asymptote * SigmoidLimiting(wx.TemperatureAvg(), mid-width/2, mid+width/2)
	cur.Ecodormancy.accumulate(rate, p.Threshold)

	if cur.Ecodormancy.State > 0 {
		cur.PhenoCode = PhenoDormancy
	}
	if cur.Ecodormancy.Percentage >= 100 {
		cur.IsEcodormancyCompleted = true
		// Re-open the whole growing season. The spring phases restart
		// from zero progress; their frozen percentages from the previous
		// year would otherwise satisfy the downstream guards immediately.
		cur.IsGrowthCompleted = false
		cur.IsGreendownCompleted = false
		cur.IsDeclineCompleted = false
		cur.Growth = PhaseState{}
		cur.Greendown = PhaseState{}
		cur.Decline = PhaseState{}
	}
}
