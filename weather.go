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
	"time"
)

// SolarGeometry holds the solar quantities of one day at one latitude:
// astronomical day length, sunrise and sunset hour, and the hourly
// extraterrestrial-radiation profile the disaggregation uses as the
// shape of the daily solar curve.
type SolarGeometry struct {
	DayLength float64 // [h]
	Sunrise   float64 // [h, local solar time]
	Sunset    float64 // [h, local solar time]

	// HourlyExtraterrestrial is the top-of-atmosphere solar radiation
	// for each hour of the day [MJ m⁻² h⁻¹].
	HourlyExtraterrestrial [24]float64
}

// DailyWeather is one day of weather observations for a single point,
// together with the 24-element hourly curves derived from them. The
// hourly arrays must be populated (normally by Disaggregate) before the
// record is passed to a Simulator.
type DailyWeather struct {
	Date     time.Time
	Latitude float64 // [°, positive north]

	TemperatureMax      float64 // [°C]
	TemperatureMin      float64 // [°C]
	SolarRadiation      float64 // [MJ m⁻² d⁻¹]
	PAR                 float64 // [MJ m⁻² d⁻¹]
	RelativeHumidityMax float64 // [%]
	RelativeHumidityMin float64 // [%]
	WindSpeed           float64 // [m s⁻¹]
	DewPoint            float64 // [°C]
	Precipitation       float64 // [mm d⁻¹]

	Solar SolarGeometry

	HourlyTemperature      [24]float64 // [°C]
	HourlySolar            [24]float64 // [W m⁻²]
	HourlyPrecipitation    [24]float64 // [mm h⁻¹]
	HourlyRelativeHumidity [24]float64 // [%]
	HourlyVPD              [24]float64 // [kPa]
	HourlyET0              [24]float64 // [mm h⁻¹]
}

// TemperatureAvg returns the daily mean temperature [°C].
func (w *DailyWeather) TemperatureAvg() float64 {
	return (w.TemperatureMax + w.TemperatureMin) / 2
}

// Check reports whether the record can be consumed by a daily step.
func (w *DailyWeather) Check() error {
	if math.Abs(w.Latitude) > maxLatitude {
		return fmt.Errorf("phenovprm: latitude %g° is outside ±%g°, where the "+
			"day-length approximation is valid", w.Latitude, maxLatitude)
	}
	if w.TemperatureMax < w.TemperatureMin {
		return fmt.Errorf("phenovprm: maximum temperature %g°C is below minimum %g°C on %v",
			w.TemperatureMax, w.TemperatureMin, w.Date.Format("2006-01-02"))
	}
	if w.Solar.DayLength <= 0 {
		return fmt.Errorf("phenovprm: solar geometry has not been computed for %v",
			w.Date.Format("2006-01-02"))
	}
	return nil
}
