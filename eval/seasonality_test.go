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

// Package eval holds long-running model evaluation tests that exercise
// multi-year simulations and check emergent statistical behavior rather
// than single formulas.
package eval

import (
	"testing"
	"time"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/spatialmodel/phenovprm"
	"gonum.org/v1/gonum/stat"
)

// runYears simulates n synthetic years at 45°N with the default
// parameters and returns the daily states of the final year, discarding
// the spin-up.
func runYears(t *testing.T, n int) []*phenovprm.DayState {
	t.Helper()
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	weather, err := phenovprm.SyntheticWeather(start, n*365, 45, phenovprm.DefaultClimate())
	if err != nil {
		t.Fatal(err)
	}
	sim, err := phenovprm.NewSimulator(phenovprm.DefaultParameters(), nil)
	if err != nil {
		t.Fatal(err)
	}
	states, err := sim.Run(weather)
	if err != nil {
		t.Fatal(err)
	}
	return states[(n-1)*365:]
}

// TestGreennessFluxCoupling checks that, over a full simulated year,
// daily GPP tracks the vegetation index: a regression of GPP on the
// index must have a positive slope and explain a substantial share of
// the variance.
func TestGreennessFluxCoupling(t *testing.T) {
	year := runYears(t, 3)

	vi := make([]float64, len(year))
	gpp := make([]float64, len(year))
	for i, s := range year {
		vi[i] = s.VI
		gpp[i] = s.Carbon.GPPDaily
	}
	slope, _, rsquared, _, _, _ := stats.LinearRegression(vi, gpp)
	if slope <= 0 {
		t.Errorf("GPP-greenness regression slope %g, want positive", slope)
	}
	if rsquared < 0.3 {
		t.Errorf("GPP-greenness r² %g, want at least 0.3", rsquared)
	}
}

// TestRespirationTemperatureCoupling checks that daily ecosystem
// respiration correlates positively with daily mean temperature across a
// year, as the Lloyd-Taylor components demand.
func TestRespirationTemperatureCoupling(t *testing.T) {
	year := runYears(t, 2)

	reco := make([]float64, len(year))
	temp := make([]float64, len(year))
	climate := phenovprm.DefaultClimate()
	start := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	weather, err := phenovprm.SyntheticWeather(start, len(year), 45, climate)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range year {
		reco[i] = s.Carbon.RECODaily
		temp[i] = weather[i].TemperatureAvg()
	}
	if r := stat.Correlation(temp, reco, nil); r < 0.5 {
		t.Errorf("respiration-temperature correlation %g, want at least 0.5", r)
	}
}

// TestAnnualPhaseDurations checks that the simulated phenophases occupy
// plausible shares of a stabilized year: no phase disappears and none
// swallows the whole year.
func TestAnnualPhaseDurations(t *testing.T) {
	year := runYears(t, 3)

	counts := make(map[phenovprm.PhenoCode]int)
	for _, s := range year {
		counts[s.PhenoCode]++
	}
	for _, code := range []phenovprm.PhenoCode{phenovprm.PhenoDormancy,
		phenovprm.PhenoGrowth, phenovprm.PhenoGreendown, phenovprm.PhenoDecline} {
		n := counts[code]
		if n < 10 {
			t.Errorf("phenophase %v lasted %d days, want at least 10", code, n)
		}
		if n > 250 {
			t.Errorf("phenophase %v lasted %d days, want at most 250", code, n)
		}
	}
}
