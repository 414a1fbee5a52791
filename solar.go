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
	"fmt"
	"math"
)

// maxLatitude bounds the latitudes for which the day-length
// approximation below is valid; poleward of this the sunset-hour-angle
// formulation degenerates near the solstices.
const maxLatitude = 65.

// solarConstant is the solar constant expressed per minute
// [MJ m⁻² min⁻¹] (Allen et al. 1998, FAO-56).
const solarConstant = 0.0820

// Geometry computes the solar geometry for a day of year (1–366) at the
// given latitude, following the FAO-56 formulation (Allen et al. 1998,
// Eqs. 21–28): solar declination, sunset hour angle, day length, and the
// extraterrestrial radiation integrated over each clock hour.
func Geometry(doy int, latitude float64) (SolarGeometry, error) {
	var g SolarGeometry
	if math.Abs(latitude) > maxLatitude {
		return g, fmt.Errorf("phenovprm: latitude %g° is outside ±%g°", latitude, maxLatitude)
	}
	phi := latitude * math.Pi / 180
	// Inverse relative Earth-Sun distance and solar declination.
	dr := 1 + 0.033*math.Cos(2*math.Pi/365*float64(doy))
	decl := 0.409 * math.Sin(2*math.Pi/365*float64(doy)-1.39)

	x := -math.Tan(phi) * math.Tan(decl)
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	ws := math.Acos(x) // sunset hour angle

	g.DayLength = 24 / math.Pi * ws
	g.Sunrise = 12 - g.DayLength/2
	g.Sunset = 12 + g.DayLength/2

	// Hourly extraterrestrial radiation (FAO-56 Eq. 28). Solar time is
	// taken equal to clock time; hour h spans the hour angles ω1..ω2.
	for h := 0; h < 24; h++ {
		w1 := math.Pi / 12 * (float64(h) - 12)
		w2 := math.Pi / 12 * (float64(h) + 1 - 12)
		if w1 < -ws {
			w1 = -ws
		}
		if w2 > ws {
			w2 = ws
		}
		if w2 <= w1 {
			continue // night hour
		}
		ra := 12 * 60 / math.Pi * solarConstant * dr *
			((w2-w1)*math.Sin(phi)*math.Sin(decl) +
				math.Cos(phi)*math.Cos(decl)*(math.Sin(w2)-math.Sin(w1)))
		if ra < 0 {
			ra = 0
		}
		g.HourlyExtraterrestrial[h] = ra
	}
	return g, nil
}
