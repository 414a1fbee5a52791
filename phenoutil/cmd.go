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

// Package phenoutil wires the phenovprm model into a command-line tool:
// configuration handling, weather input, and output writing.
package phenoutil

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/phenovprm"
	"github.com/spatialmodel/phenovprm/internal/logger"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "debug",
			usage: `
              debug enables debug-level, human-oriented log output.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "ParameterFile",
			usage: `
              ParameterFile is the path to a TOML file holding the nine model
              parameter groups. Groups or fields left out keep the built-in
              temperate-deciduous-forest defaults.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "WeatherFile",
			usage: `
              WeatherFile is the path to a CSV file of daily weather records.
              If empty, a deterministic synthetic seasonal climate is
              generated instead.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Latitude",
			usage: `
              Latitude of the simulated point in degrees (positive north).
              Must be within ±65°.`,
			defaultVal: 45.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "StartDate",
			usage: `
              StartDate is the first simulated day, format YYYY-MM-DD.
              Only used with synthetic weather; CSV input carries its own dates.`,
			defaultVal: "2000-01-01",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Days",
			usage: `
              Days is the number of days to simulate when generating
              synthetic weather.`,
			defaultVal: 1095,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path of the CSV results file.`,
			defaultVal: "phenovprm_output.csv",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputVariables",
			usage: `
              OutputVariables maps output column names to expressions over
              the model variables (see the 'vars' command). Expressions can
              use the functions exp(x), sum(x), min(x) and max(x).`,
			defaultVal: map[string]string{
				"Phase": "Phase",
				"VI":    "VI",
				"GPP":   "GPPDaily",
				"RECO":  "RECODaily",
				"NEE":   "NEEDaily",
			},
			flagsets: []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()
	Cfg.SetEnvPrefix("PHENOVPRM")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch v := option.defaultVal.(type) {
			case string:
				set.String(option.name, v, option.usage)
			case bool:
				set.Bool(option.name, v, option.usage)
			case int:
				set.Int(option.name, v, option.usage)
			case float64:
				set.Float64(option.name, v, option.usage)
			case map[string]string:
				b := bytes.NewBuffer(nil)
				e := json.NewEncoder(b)
				e.Encode(v)
				set.String(option.name, b.String(), option.usage)
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(varsCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("phenoutil: problem reading configuration file: %v", err)
		}
	}
	return logger.Init(Cfg.GetBool("debug"))
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "phenovprm",
	Short: "A point-scale vegetation phenology and carbon exchange model.",
	Long: `PhenoVPRM simulates the dormancy/growth/senescence cycle of a single
vegetated point day by day and derives hourly carbon fluxes (GPP, ecosystem
respiration and net ecosystem exchange) with a two-layer VPRM.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'PHENOVPRM_var' where 'var'
is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("PhenoVPRM v%s\n", phenovprm.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation.",
	Long: `run simulates the configured span of days at one point and writes the
requested output variables as CSV.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputVars, err := GetStringMapString("OutputVariables", Cfg)
		if err != nil {
			return err
		}
		return Run(
			Cfg.GetString("ParameterFile"),
			Cfg.GetString("WeatherFile"),
			Cfg.GetString("StartDate"),
			Cfg.GetInt("Days"),
			Cfg.GetFloat64("Latitude"),
			Cfg.GetString("OutputFile"),
			outputVars,
		)
	},
	DisableAutoGenTag: true,
}

var varsCmd = &cobra.Command{
	Use:   "vars",
	Short: "List the model variables available to output expressions.",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range phenovprm.OutputOptions() {
			fmt.Println(name)
		}
	},
	DisableAutoGenTag: true,
}

// GetStringMapString returns a map configuration variable, decoding it
// from JSON if it was given as a string (as happens when the default
// value passes through a flag).
func GetStringMapString(varName string, cfg *viper.Viper) (map[string]string, error) {
	i := cfg.Get(varName)
	switch v := i.(type) {
	case string:
		out := make(map[string]string)
		if err := json.Unmarshal([]byte(v), &out); err != nil {
			return nil, fmt.Errorf("phenoutil: parsing configuration variable %s: %v", varName, err)
		}
		return out, nil
	default:
		return cast.ToStringMapStringE(i)
	}
}
