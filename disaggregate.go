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

import "math"

// Hour of the daily temperature maximum used by the sinusoidal
// disaggregation.
const temperaturePeakHour = 14.5

// Psychrometric constant [kPa °C⁻¹] and latent heat of vaporization
// [MJ kg⁻¹] used by the Makkink reference-evapotranspiration estimate.
const (
	psychrometricGamma = 0.066
	latentHeat         = 2.45
)

// saturationVaporPressure returns the Tetens saturation vapor pressure
// [kPa] at temperature t [°C].
func saturationVaporPressure(t float64) float64 {
	return 0.6108 * math.Exp(17.27*t/(t+237.3))
}

// Disaggregate populates the 24-element hourly arrays of w from its
// daily observations: a sinusoidal temperature curve peaking in
// mid-afternoon, solar radiation distributed proportional to the hourly
// extraterrestrial-radiation shape, relative humidity interpolated
// between the daily bounds in antiphase with temperature, vapor pressure
// deficit from hourly temperature and humidity, reference
// evapotranspiration by the Makkink (1957) radiation method, and
// precipitation spread uniformly across the day. The solar geometry for
// the day is computed first if the caller has not already done so.
func Disaggregate(w *DailyWeather) error {
	if w.Solar.DayLength == 0 {
		g, err := Geometry(w.Date.YearDay(), w.Latitude)
		if err != nil {
			return err
		}
		w.Solar = g
	}

	raSum := 0.
	for _, ra := range w.Solar.HourlyExtraterrestrial {
		raSum += ra
	}

	tRange := w.TemperatureMax - w.TemperatureMin
	rhRange := w.RelativeHumidityMax - w.RelativeHumidityMin

	for h := 0; h < 24; h++ {
		// Temperature: single cosine peaking at temperaturePeakHour.
		frac := (1 - math.Cos(2*math.Pi*(float64(h)+0.5-temperaturePeakHour)/24)) / 2
		t := w.TemperatureMax - tRange*frac
		w.HourlyTemperature[h] = t

		// Solar radiation follows the extraterrestrial shape, converted
		// from the daily total [MJ m⁻² d⁻¹] to a mean hourly flux [W m⁻²].
		var rs float64
		if raSum > 0 {
			rs = w.SolarRadiation * w.Solar.HourlyExtraterrestrial[h] / raSum
		}
		w.HourlySolar[h] = rs * 1e6 / 3600

		// Humidity moves opposite to temperature between the daily bounds.
		var rh float64
		if tRange > 0 {
			rh = w.RelativeHumidityMax - rhRange*(t-w.TemperatureMin)/tRange
		} else {
			rh = (w.RelativeHumidityMax + w.RelativeHumidityMin) / 2
		}
		if rh > 100 {
			rh = 100
		} else if rh < 0 {
			rh = 0
		}
		w.HourlyRelativeHumidity[h] = rh

		vpd := saturationVaporPressure(t) * (1 - rh/100)
		if vpd < 0 {
			vpd = 0
		}
		w.HourlyVPD[h] = vpd

		// Makkink (1957): ET0 = 0.65 Δ/(Δ+γ) Rs/λ.
		es := saturationVaporPressure(t)
		delta := 4098 * es / ((t + 237.3) * (t + 237.3))
		et0 := 0.65 * delta / (delta + psychrometricGamma) * rs / latentHeat
		if et0 < 0 {
			et0 = 0
		}
		w.HourlyET0[h] = et0

		w.HourlyPrecipitation[h] = w.Precipitation / 24
	}
	return nil
}
