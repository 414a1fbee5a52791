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
	"time"
)

// SyntheticClimate parameterizes the deterministic seasonal forcing
// generator. The defaults describe a humid temperate climate.
type SyntheticClimate struct {
	MeanTemperature      float64 // annual mean [°C]
	TemperatureAmplitude float64 // seasonal half-range [°C]
	DiurnalRange         float64 // Tmax−Tmin [°C]
	ColdestDay           int     // day of year of the temperature minimum
	Clearness            float64 // fraction of extraterrestrial radiation reaching the ground
	RainPeriod           int     // one rain day every RainPeriod days
	RainAmount           float64 // [mm] per rain day
}

// DefaultClimate is the synthetic climate used by the package tests and
// by demonstration runs.
func DefaultClimate() SyntheticClimate {
	return SyntheticClimate{
		MeanTemperature:      9,
		TemperatureAmplitude: 12,
		DiurnalRange:         10,
		ColdestDay:           15,
		Clearness:            0.55,
		RainPeriod:           3,
		RainAmount:           4,
	}
}

// SyntheticWeather generates a deterministic sequence of daily weather
// records driven by sinusoidal seasonal temperature and day-length
// cycles at the given latitude. It exists so that multi-year model
// behavior (annual-cycle closure, vegetation-index bounds, flux
// seasonality) can be exercised without observational data; the records
// still pass through the normal hourly disaggregation.
func SyntheticWeather(start time.Time, days int, latitude float64, c SyntheticClimate) ([]*DailyWeather, error) {
	weather := make([]*DailyWeather, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		doy := date.YearDay()
		g, err := Geometry(doy, latitude)
		if err != nil {
			return nil, err
		}

		tAvg := c.MeanTemperature - c.TemperatureAmplitude*
			math.Cos(2*math.Pi*float64(doy-c.ColdestDay)/365)

		var ra float64
		for _, r := range g.HourlyExtraterrestrial {
			ra += r
		}
		solar := c.Clearness * ra

		var precip float64
		if c.RainPeriod > 0 && i%c.RainPeriod == 0 {
			precip = c.RainAmount
		}

		weather[i] = &DailyWeather{
			Date:                date,
			Latitude:            latitude,
			TemperatureMax:      tAvg + c.DiurnalRange/2,
			TemperatureMin:      tAvg - c.DiurnalRange/2,
			SolarRadiation:      solar,
			PAR:                 parFraction * solar,
			RelativeHumidityMax: 92,
			RelativeHumidityMin: 55,
			WindSpeed:           2,
			DewPoint:            tAvg - c.DiurnalRange/2 - 1,
			Precipitation:       precip,
			Solar:               g,
		}
	}
	return weather, nil
}
