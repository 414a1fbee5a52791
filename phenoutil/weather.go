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

package phenoutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spatialmodel/phenovprm"
)

// weatherColumns maps CSV header names (lower-cased) to setters on the
// daily record. Date is handled separately.
var weatherColumns = map[string]func(*phenovprm.DailyWeather, float64){
	"temperaturemax":      func(w *phenovprm.DailyWeather, v float64) { w.TemperatureMax = v },
	"temperaturemin":      func(w *phenovprm.DailyWeather, v float64) { w.TemperatureMin = v },
	"solarradiation":      func(w *phenovprm.DailyWeather, v float64) { w.SolarRadiation = v },
	"par":                 func(w *phenovprm.DailyWeather, v float64) { w.PAR = v },
	"relativehumiditymax": func(w *phenovprm.DailyWeather, v float64) { w.RelativeHumidityMax = v },
	"relativehumiditymin": func(w *phenovprm.DailyWeather, v float64) { w.RelativeHumidityMin = v },
	"windspeed":           func(w *phenovprm.DailyWeather, v float64) { w.WindSpeed = v },
	"dewpoint":            func(w *phenovprm.DailyWeather, v float64) { w.DewPoint = v },
	"precipitation":       func(w *phenovprm.DailyWeather, v float64) { w.Precipitation = v },
	"latitude":            func(w *phenovprm.DailyWeather, v float64) { w.Latitude = v },
}

// ReadWeatherCSV reads daily weather records from a CSV file with a
// header row. The Date, TemperatureMax, TemperatureMin and Precipitation
// columns are required; other columns matching the DailyWeather field
// names are optional, and unrecognized columns are ignored. Records that
// carry no Latitude column use the latitude argument. Hourly curves are
// not read from the file; the simulator disaggregates the daily values.
func ReadWeatherCSV(path string, latitude float64) ([]*phenovprm.DailyWeather, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("phenoutil: opening weather file: %v", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("phenoutil: reading weather file header: %v", err)
	}

	dateCol := -1
	setters := make(map[int]func(*phenovprm.DailyWeather, float64))
	seen := make(map[string]bool)
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		if name == "date" {
			dateCol = i
			continue
		}
		if set, ok := weatherColumns[name]; ok {
			setters[i] = set
			seen[name] = true
		}
	}
	if dateCol < 0 {
		return nil, fmt.Errorf("phenoutil: weather file %s has no Date column", path)
	}
	for _, required := range []string{"temperaturemax", "temperaturemin", "precipitation"} {
		if !seen[required] {
			return nil, fmt.Errorf("phenoutil: weather file %s has no %s column", path, required)
		}
	}

	var weather []*phenovprm.DailyWeather
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("phenoutil: reading weather file line %d: %v", line, err)
		}
		w := &phenovprm.DailyWeather{Latitude: latitude}
		w.Date, err = time.Parse("2006-01-02", strings.TrimSpace(record[dateCol]))
		if err != nil {
			return nil, fmt.Errorf("phenoutil: weather file line %d: %v", line, err)
		}
		for i, set := range setters {
			s := strings.TrimSpace(record[i])
			if s == "" {
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("phenoutil: weather file line %d, column %s: %v",
					line, header[i], err)
			}
			set(w, v)
		}
		weather = append(weather, w)
	}
	if len(weather) == 0 {
		return nil, fmt.Errorf("phenoutil: weather file %s holds no records", path)
	}
	return weather, nil
}
