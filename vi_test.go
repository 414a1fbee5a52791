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

func TestVIGrowthSnapshot(t *testing.T) {
	const testTolerance = 1.e-10
	p := DefaultParameters()
	e := NewVIEngine(nil)

	prev := &DayState{PhenoCode: PhenoDormancy, VI: 20, DayLength: 12}
	cur := NextDayState(prev)
	cur.PhenoCode = PhenoGrowth
	wx := constantWeather(time.Date(2001, 5, 1, 0, 0, 0, 0, time.UTC), 13, 15)

	e.Update(prev, cur, wx, p)
	if absDifferent(cur.VIAtGrowth, 0.20, testTolerance) {
		t.Errorf("growth-onset snapshot %g, want 0.20", cur.VIAtGrowth)
	}
	// With zero progress toward the asymptote the rate is the full
	// growth-rate coefficient.
	if absDifferent(cur.VIRate, p.VI.RateGrowth, testTolerance) {
		t.Errorf("growth rate %g, want %g", cur.VIRate, p.VI.RateGrowth)
	}
	if cur.VI <= prev.VI {
		t.Errorf("index did not rise during growth: %g -> %g", prev.VI, cur.VI)
	}

	// The snapshot is taken once: the next growth day keeps it.
	next := NextDayState(cur)
	next.PhenoCode = PhenoGrowth
	e.Update(cur, next, wx, p)
	if next.VIAtGrowth != cur.VIAtGrowth {
		t.Errorf("snapshot moved on the second growth day: %g -> %g",
			cur.VIAtGrowth, next.VIAtGrowth)
	}
	// And the rate slows as the index approaches the asymptote.
	if next.VIRate >= cur.VIRate {
		t.Errorf("growth rate did not slow: %g -> %g", cur.VIRate, next.VIRate)
	}
}

func TestVIGrowthSnapshotCap(t *testing.T) {
	const testTolerance = 1.e-10
	p := DefaultParameters()
	e := NewVIEngine(nil)

	// Entering growth with the index already at the asymptote would make
	// the progress denominator zero; the snapshot is capped just below.
	prev := &DayState{PhenoCode: PhenoDormancy, VI: p.VI.Maximum * 100, DayLength: 12}
	cur := NextDayState(prev)
	cur.PhenoCode = PhenoGrowth
	wx := constantWeather(time.Date(2001, 5, 1, 0, 0, 0, 0, time.UTC), 13, 15)

	e.Update(prev, cur, wx, p)
	if absDifferent(cur.VIAtGrowth, p.VI.Maximum-0.01, testTolerance) {
		t.Errorf("capped snapshot %g, want %g", cur.VIAtGrowth, p.VI.Maximum-0.01)
	}
}

func TestVIGreendownWeighting(t *testing.T) {
	p := DefaultParameters()
	wx := constantWeather(time.Date(2001, 8, 1, 0, 0, 0, 0, time.UTC), 14, 20)

	rate := func(indexType VIIndexType, pct float64) float64 {
		pp := *p
		pp.VI.IndexType = indexType
		e := NewVIEngine(nil)
		prev := &DayState{PhenoCode: PhenoGreendown, VI: 90, DayLength: 14}
		cur := NextDayState(prev)
		cur.PhenoCode = PhenoGreendown
		cur.Greendown.Percentage = pct
		cur.Greendown.Rate = 1
		e.Update(prev, cur, wx, &pp)
		return cur.VIRate
	}

	for _, indexType := range []VIIndexType{IndexEVI, IndexNDVI} {
		if r := rate(indexType, 50); r >= 0 {
			t.Errorf("%s greendown rate %g, want negative", indexType, r)
		}
		// The weight rises with phase progress, so the decline steepens.
		if early, late := rate(indexType, 10), rate(indexType, 90); late >= early {
			t.Errorf("%s greendown rate did not steepen: %g -> %g", indexType, early, late)
		}
	}
	// The saturating EVI weight leads the linear NDVI weight early in the
	// phase.
	if evi, ndvi := rate(IndexEVI, 30), rate(IndexNDVI, 30); evi >= ndvi {
		t.Errorf("early greendown: EVI rate %g not steeper than NDVI rate %g", evi, ndvi)
	}
}

func TestVIDeclineSnapshotAndBell(t *testing.T) {
	const testTolerance = 1.e-10
	p := DefaultParameters()
	e := NewVIEngine(nil)
	wx := constantWeather(time.Date(2001, 10, 1, 0, 0, 0, 0, time.UTC), 11, 10)

	prev := &DayState{PhenoCode: PhenoGreendown, VI: 85, DayLength: 11}
	cur := NextDayState(prev)
	cur.PhenoCode = PhenoDecline
	cur.Decline.Percentage = 50

	e.Update(prev, cur, wx, p)
	if absDifferent(cur.VIAtGreendown, 0.85, testTolerance) {
		t.Errorf("decline-onset snapshot %g, want 0.85", cur.VIAtGreendown)
	}
	// At 50% completion the senescence bell peaks, so the full senescence
	// rate applies on top of the baseline greendown rate.
	want := -p.VI.RateGreendown - p.VI.RateSenescence
	if absDifferent(cur.VIRate, want, testTolerance) {
		t.Errorf("mid-decline rate %g, want %g", cur.VIRate, want)
	}
}

func TestVIBounds(t *testing.T) {
	p := DefaultParameters()
	e := NewVIEngine(nil)
	wx := constantWeather(time.Date(2001, 10, 15, 0, 0, 0, 0, time.UTC), 10, 8)

	// A steep mid-decline drop cannot push the index below its floor.
	prev := &DayState{PhenoCode: PhenoDecline, VI: p.VI.Minimum*100 + 0.5, DayLength: 10,
		VIAtGreendown: 0.8}
	cur := NextDayState(prev)
	cur.PhenoCode = PhenoDecline
	cur.Decline.Percentage = 50
	e.Update(prev, cur, wx, p)
	if cur.VI != p.VI.Minimum*100 {
		t.Errorf("index %g below decline, want floor %g", cur.VI, p.VI.Minimum*100)
	}
}

func TestVIDormancyBranches(t *testing.T) {
	const testTolerance = 1.e-10
	p := DefaultParameters()

	// First dormancy day: the senescence-end snapshot is floored just
	// above the minimum when the index arrives at its floor.
	e := NewVIEngine(nil)
	prev := &DayState{PhenoCode: PhenoDecline, VI: p.VI.Minimum * 100, DayLength: 10}
	cur := NextDayState(prev)
	cur.PhenoCode = PhenoDormancy
	cold := constantWeather(time.Date(2001, 12, 1, 0, 0, 0, 0, time.UTC), 9, -5)
	e.Update(prev, cur, cold, p)
	if absDifferent(cur.VIAtSenescence, p.VI.Minimum+0.01, testTolerance) {
		t.Errorf("senescence snapshot %g, want %g", cur.VIAtSenescence, p.VI.Minimum+0.01)
	}

	// Cold days decay the index toward the floor; the decay stalls once
	// the floor is reached.
	prev = &DayState{PhenoCode: PhenoDormancy, VI: 40, DayLength: 9}
	cur = NextDayState(prev)
	cur.PhenoCode = PhenoDormancy
	e2 := NewVIEngine(nil)
	e2.Update(prev, cur, cold, p)
	if cur.VIRate >= 0 {
		t.Errorf("cold dormancy rate %g, want negative", cur.VIRate)
	}

	// Warm dormancy days with lengthening daylight green the index up.
	prev = &DayState{PhenoCode: PhenoDormancy, VI: 20, DayLength: 10}
	cur = NextDayState(prev)
	cur.PhenoCode = PhenoDormancy
	warm := constantWeather(time.Date(2002, 2, 15, 0, 0, 0, 0, time.UTC), 10.5, 10)
	e3 := NewVIEngine(nil)
	e3.Update(prev, cur, warm, p)
	if cur.VIRate <= 0 {
		t.Errorf("warm lengthening-day dormancy rate %g, want positive", cur.VIRate)
	}

	// Warm days with shortening daylight leave the index alone.
	prev = &DayState{PhenoCode: PhenoDormancy, VI: 20, DayLength: 11}
	cur = NextDayState(prev)
	cur.PhenoCode = PhenoDormancy
	e4 := NewVIEngine(nil)
	e4.Update(prev, cur, warm, p)
	if cur.VIRate != 0 {
		t.Errorf("warm shortening-day dormancy rate %g, want 0", cur.VIRate)
	}
}
