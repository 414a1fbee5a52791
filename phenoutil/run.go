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
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/phenovprm"
	"github.com/spatialmodel/phenovprm/internal/logger"
)

// LoadParameters reads a TOML parameter file on top of the default
// parameter set, so a file only needs to list the values it changes.
// An empty path returns the defaults unchanged.
func LoadParameters(path string) (*phenovprm.Parameters, error) {
	p := phenovprm.DefaultParameters()
	if path == "" {
		return p, nil
	}
	meta, err := toml.DecodeFile(path, p)
	if err != nil {
		return nil, fmt.Errorf("phenoutil: reading parameter file %s: %v", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("phenoutil: unknown keys in parameter file %s: %v",
			path, undecoded)
	}
	return p, nil
}

// Run executes one complete simulation: it loads parameters, obtains the
// daily weather (from a CSV file, or synthetically if weatherFile is
// empty), steps the model through every day, and writes the requested
// output variables to outputFile as CSV.
func Run(paramFile, weatherFile, startDate string, days int, latitude float64,
	outputFile string, outputVariables map[string]string) error {

	log := logger.Get()
	defer logger.Sync()

	params, err := LoadParameters(paramFile)
	if err != nil {
		return err
	}

	var weather []*phenovprm.DailyWeather
	if weatherFile != "" {
		weather, err = ReadWeatherCSV(weatherFile, latitude)
		if err != nil {
			return err
		}
		log.Infof("read %d days of weather from %s", len(weather), weatherFile)
	} else {
		start, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return fmt.Errorf("phenoutil: parsing start date %q: %v", startDate, err)
		}
		weather, err = phenovprm.SyntheticWeather(start, days, latitude, phenovprm.DefaultClimate())
		if err != nil {
			return err
		}
		log.Infof("generated %d days of synthetic weather at latitude %g°", days, latitude)
	}

	o, err := phenovprm.NewOutputter(outputFile, outputVariables, nil)
	if err != nil {
		return err
	}

	sim, err := phenovprm.NewSimulator(params, log)
	if err != nil {
		return err
	}
	states, err := sim.Run(weather)
	if err != nil {
		return err
	}
	if err := o.Write(states); err != nil {
		return err
	}
	log.Infof("wrote %d days of results to %s", len(states), outputFile)
	return nil
}
