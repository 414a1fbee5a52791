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

import (
	"testing"
	"time"
)

func TestNextDayStateContinuity(t *testing.T) {
	prev := &DayState{
		Date:              time.Date(2001, 3, 1, 0, 0, 0, 0, time.UTC),
		PhenoCode:         PhenoDormancy,
		VI:                42,
		VIAtSenescence:    0.5,
		IsDormancyInduced: true,
		DayLength:         11.2,
	}
	prev.Ecodormancy = PhaseState{Rate: 0.4, State: 6, Percentage: 33}
	prev.Carbon.PrecipMemory = []float64{1, 2, 3}
	prev.Carbon.GPP[12] = 9.9

	cur := NextDayState(prev)
	if cur.Date != prev.Date.AddDate(0, 0, 1) {
		t.Errorf("date %v, want the day after %v", cur.Date, prev.Date)
	}
	if cur.Ecodormancy != prev.Ecodormancy {
		t.Error("phase state not carried forward")
	}
	if cur.VI != prev.VI || cur.VIAtSenescence != prev.VIAtSenescence {
		t.Error("vegetation index fields not carried forward")
	}
	if !cur.IsDormancyInduced {
		t.Error("completion flag not carried forward")
	}
	// Hourly arrays describe single days and must start zeroed.
	if cur.Carbon.GPP[12] != 0 {
		t.Errorf("hourly GPP carried over: %g", cur.Carbon.GPP[12])
	}
	// The rolling memories are cloned, not shared.
	cur.Carbon.PrecipMemory[0] = 99
	if prev.Carbon.PrecipMemory[0] != 1 {
		t.Error("rolling memory shared between days")
	}
}

func TestPhaseCompletionClamp(t *testing.T) {
	var p PhaseState
	p.accumulate(30, 100)
	if p.Percentage != 30 {
		t.Errorf("completion %g, want 30", p.Percentage)
	}
	p.accumulate(80, 100)
	if p.Percentage != 100 {
		t.Errorf("completion %g, want exactly 100", p.Percentage)
	}
	if p.State != 110 {
		t.Errorf("state %g, want 110 (completion clamps the percentage only)", p.State)
	}
}

func TestPhenoCodeString(t *testing.T) {
	want := map[PhenoCode]string{
		PhenoNone:      "none",
		PhenoInduction: "dormancy induction",
		PhenoDormancy:  "dormancy",
		PhenoGrowth:    "growth",
		PhenoGreendown: "greendown",
		PhenoDecline:   "decline",
	}
	for code, name := range want {
		if code.String() != name {
			t.Errorf("code %d: %q, want %q", code, code.String(), name)
		}
	}
}
