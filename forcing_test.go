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
	"math"
	"testing"
)

func absDifferent(a, b, tolerance float64) bool {
	return math.Abs(a-b) > tolerance
}

func TestThermalForcing(t *testing.T) {
	const testTolerance = 1.e-10
	const tMin, tOpt, tMax = 0., 22., 38.

	if v := ThermalForcing(tMin, tMin, tOpt, tMax); v != 0 {
		t.Errorf("rate at minimum cardinal temperature: got %g, want 0", v)
	}
	if v := ThermalForcing(tMax, tMin, tOpt, tMax); v != 0 {
		t.Errorf("rate at maximum cardinal temperature: got %g, want 0", v)
	}
	if v := ThermalForcing(-10, tMin, tOpt, tMax); v != 0 {
		t.Errorf("rate below range: got %g, want 0", v)
	}
	if v := ThermalForcing(50, tMin, tOpt, tMax); v != 0 {
		t.Errorf("rate above range: got %g, want 0", v)
	}
	if v := ThermalForcing(tOpt, tMin, tOpt, tMax); absDifferent(v, 1, testTolerance) {
		t.Errorf("rate at optimum: got %g, want 1", v)
	}
	// The optimum is the maximum of the response.
	opt := ThermalForcing(tOpt, tMin, tOpt, tMax)
	for temp := tMin; temp <= tMax; temp += 0.5 {
		if v := ThermalForcing(temp, tMin, tOpt, tMax); v > opt+testTolerance {
			t.Errorf("rate at %g°C (%g) exceeds rate at optimum (%g)", temp, v, opt)
		}
	}
}

func TestSigmoidLimiting(t *testing.T) {
	const testTolerance = 1.e-10

	// Small values promote (dormancy induction photoperiod): fully
	// promoting at and below the not-limiting threshold, fully blocked at
	// and above the limiting threshold, and 0.5 at the midpoint.
	if v := SigmoidLimiting(10, 15, 11); v != 1 {
		t.Errorf("below not-limiting threshold: got %g, want 1", v)
	}
	if v := SigmoidLimiting(16, 15, 11); v != 0 {
		t.Errorf("above limiting threshold: got %g, want 0", v)
	}
	if v := SigmoidLimiting(13, 15, 11); absDifferent(v, 0.5, testTolerance) {
		t.Errorf("at midpoint: got %g, want 0.5", v)
	}

	// Large values promote (dormancy release temperature): the same
	// function with the threshold order reversed.
	if v := SigmoidLimiting(16, 8, 16); v != 1 {
		t.Errorf("above not-limiting threshold: got %g, want 1", v)
	}
	if v := SigmoidLimiting(7, 8, 16); v != 0 {
		t.Errorf("below limiting threshold: got %g, want 0", v)
	}
	if v := SigmoidLimiting(12, 8, 16); absDifferent(v, 0.5, testTolerance) {
		t.Errorf("at midpoint: got %g, want 0.5", v)
	}

	// Within the transition the response is monotonic in the promoting
	// direction.
	last := SigmoidLimiting(8, 8, 16)
	for v := 8.5; v < 16; v += 0.5 {
		cur := SigmoidLimiting(v, 8, 16)
		if cur < last {
			t.Errorf("response not monotonic at %g: %g < %g", v, cur, last)
		}
		last = cur
	}
}

func TestLloydTaylor(t *testing.T) {
	const testTolerance = 1.e-10
	const e = 308.56

	// The response is exactly 1 at the 288.15 K reference temperature.
	if v := LloydTaylor(15, e); absDifferent(v, 1, testTolerance) {
		t.Errorf("response at reference temperature: got %g, want 1", v)
	}
	// Near and below the 227.13 K base temperature the scaler is cut to
	// zero rather than going singular.
	if v := LloydTaylor(-50, e); v != 0 {
		t.Errorf("response near base temperature: got %g, want 0", v)
	}
	if v := LloydTaylor(-100, e); v != 0 {
		t.Errorf("response below base temperature: got %g, want 0", v)
	}
	// Monotonically increasing above the cutoff, never exceeding the cap.
	last := 0.
	for temp := -40.; temp <= 45; temp++ {
		v := LloydTaylor(temp, e)
		if v < last {
			t.Errorf("response not monotonic at %g°C: %g < %g", temp, v, last)
		}
		if v > 10 {
			t.Errorf("response at %g°C exceeds cap: %g", temp, v)
		}
		last = v
	}
}

func TestInversePARSaturation(t *testing.T) {
	const testTolerance = 1.e-10
	if v := InversePARSaturation(0, 570); v != 1 {
		t.Errorf("scaler in darkness: got %g, want 1", v)
	}
	if v := InversePARSaturation(570, 570); absDifferent(v, 0.5, testTolerance) {
		t.Errorf("scaler at half-saturation: got %g, want 0.5", v)
	}
	// The inverse form decreases with light.
	if InversePARSaturation(1000, 570) >= InversePARSaturation(500, 570) {
		t.Error("scaler does not decrease with light")
	}
}

func TestVPDSigmoid(t *testing.T) {
	const vpdMin, vpdMax, sens = 0.9, 4.0, 1.8
	if v := VPDSigmoid(0.5, vpdMin, vpdMax, sens); v != 1 {
		t.Errorf("scaler below minimum deficit: got %g, want 1", v)
	}
	if v := VPDSigmoid(vpdMin, vpdMin, vpdMax, sens); v != 1 {
		t.Errorf("scaler at minimum deficit: got %g, want 1", v)
	}
	lo := VPDSigmoid(3.5, vpdMin, vpdMax, sens)
	hi := VPDSigmoid(1.5, vpdMin, vpdMax, sens)
	if lo >= hi {
		t.Errorf("scaler does not decay with deficit: %g >= %g", lo, hi)
	}
	if v := VPDSigmoid(20, vpdMin, vpdMax, sens); v > 1e-6 {
		t.Errorf("scaler at extreme deficit: got %g, want ~0", v)
	}
}

func TestSymmetricBell(t *testing.T) {
	const testTolerance = 1.e-10
	if v := SymmetricBell(50); absDifferent(v, 1, testTolerance) {
		t.Errorf("bell at midpoint: got %g, want 1", v)
	}
	if a, b := SymmetricBell(30), SymmetricBell(70); absDifferent(a, b, testTolerance) {
		t.Errorf("bell is not symmetric: %g != %g", a, b)
	}
	if SymmetricBell(0) >= SymmetricBell(25) {
		t.Error("bell does not rise toward the midpoint")
	}
}

func TestChillingEfficiency(t *testing.T) {
	const limLow, notLimLow, notLimHigh, limHigh = -5., 0., 8., 12.

	for _, temp := range []float64{-20, -5, 12, 30} {
		if v := ChillingEfficiency(temp, limLow, notLimLow, notLimHigh, limHigh); v != 0 {
			t.Errorf("efficiency at %g°C: got %g, want 0", temp, v)
		}
	}
	for _, temp := range []float64{0, 4, 8} {
		if v := ChillingEfficiency(temp, limLow, notLimLow, notLimHigh, limHigh); v != 1 {
			t.Errorf("efficiency at %g°C: got %g, want 1", temp, v)
		}
	}
	// The ramps stay inside (0, 1).
	for _, temp := range []float64{-2.5, 10} {
		v := ChillingEfficiency(temp, limLow, notLimLow, notLimHigh, limHigh)
		if v <= 0 || v >= 1 {
			t.Errorf("ramp efficiency at %g°C outside (0,1): %g", temp, v)
		}
	}
}

func TestClampExp(t *testing.T) {
	if v := clampExp(1000); v != math.Exp(maxExponent) {
		t.Errorf("overflow clamp: got %g, want %g", v, math.Exp(maxExponent))
	}
	if v := clampExp(-1000); v != math.Exp(-maxExponent) {
		t.Errorf("underflow clamp: got %g, want %g", v, math.Exp(-maxExponent))
	}
	if v := clampExp(1); v != math.E {
		t.Errorf("clamp altered an in-range argument: got %g", v)
	}
}
