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
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"reflect"
	"sort"
	"strconv"

	"github.com/Knetic/govaluate"
	"gonum.org/v1/gonum/floats"
)

// Outputter writes daily simulation results as CSV, one row per day.
//
// outputVariables maps output column names to expressions defining how
// each column is calculated. Expressions can use the model variables
// listed by OutputOptions (daily scalars and the 24-element hourly
// arrays) together with the output functions.
type Outputter struct {
	fileName        string
	outputVariables map[string]string
	expressions     map[string]*govaluate.EvaluableExpression
	columns         []string
}

// NewOutputter compiles the requested output expressions and checks
// every referenced variable against the model's variable set. Default
// output functions include:
//
// 'exp(x)' which applies the exponential function e^x.
//
// 'sum(x)', 'min(x)' and 'max(x)' which reduce one of the 24-element
// hourly arrays to a scalar.
func NewOutputter(fileName string, outputVariables map[string]string,
	outputFunctions map[string]govaluate.ExpressionFunction) (*Outputter, error) {

	funcs := map[string]govaluate.ExpressionFunction{
		"exp": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("phenovprm: got %d arguments for function 'exp', but needs 1", len(arg))
			}
			return math.Exp(arg[0].(float64)), nil
		},
		"sum": hourlyReduction("sum", floats.Sum),
		"min": hourlyReduction("min", floats.Min),
		"max": hourlyReduction("max", floats.Max),
	}
	for key, val := range outputFunctions {
		funcs[key] = val
	}

	o := &Outputter{
		fileName:        fileName,
		outputVariables: outputVariables,
		expressions:     make(map[string]*govaluate.EvaluableExpression),
	}

	known := stateVariables(&DayState{})
	for name, expr := range outputVariables {
		e, err := govaluate.NewEvaluableExpressionWithFunctions(expr, funcs)
		if err != nil {
			return nil, fmt.Errorf("phenovprm: compiling output variable %q: %w", name, err)
		}
		for _, v := range e.Vars() {
			if _, ok := known[v]; !ok {
				return nil, fmt.Errorf("phenovprm: output variable %q references "+
					"unknown model variable %q", name, v)
			}
		}
		o.expressions[name] = e
		o.columns = append(o.columns, name)
	}
	sort.Strings(o.columns)
	return o, nil
}

func hourlyReduction(name string, f func([]float64) float64) govaluate.ExpressionFunction {
	return func(arg ...interface{}) (interface{}, error) {
		if len(arg) != 1 {
			return nil, fmt.Errorf("phenovprm: got %d arguments for function %q, but needs 1", len(arg), name)
		}
		a, ok := arg[0].([]float64)
		if !ok {
			return nil, fmt.Errorf("phenovprm: function %q needs an hourly array argument", name)
		}
		return f(a), nil
	}
}

// Write evaluates the output expressions for every day state and writes
// the result table to the configured file.
func (o *Outputter) Write(states []*DayState) error {
	f, err := os.Create(o.fileName)
	if err != nil {
		return fmt.Errorf("phenovprm: creating output file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"Date"}, o.columns...)); err != nil {
		return err
	}
	row := make([]string, len(o.columns)+1)
	for _, s := range states {
		vars := stateVariables(s)
		row[0] = s.Date.Format("2006-01-02")
		for i, col := range o.columns {
			v, err := o.expressions[col].Evaluate(vars)
			if err != nil {
				return fmt.Errorf("phenovprm: evaluating output variable %q: %w", col, err)
			}
			switch v := v.(type) {
			case float64:
				row[i+1] = strconv.FormatFloat(v, 'g', -1, 64)
			case string:
				row[i+1] = v
			default:
				row[i+1] = fmt.Sprint(v)
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// OutputOptions lists the names of all model variables available to
// output expressions, in alphabetical order.
func OutputOptions() []string {
	vars := stateVariables(&DayState{})
	names := make([]string, 0, len(vars))
	for n := range vars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// stateVariables flattens the desc-tagged fields of a day state into a
// govaluate parameter map. Fields of the phase sub-states are prefixed
// with the phase name ("GrowthPercentage"); fields of the carbon state
// and of the state itself keep their own names. Hourly arrays appear as
// []float64 for the reduction functions.
func stateVariables(s *DayState) map[string]interface{} {
	vars := make(map[string]interface{})
	v := reflect.ValueOf(s).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fv := v.Field(i)
		if f.Type.Kind() == reflect.Struct && f.Type != reflect.TypeOf(s.Date) {
			prefix := f.Name
			if f.Type == reflect.TypeOf(s.Carbon) {
				prefix = ""
			}
			collectVariables(vars, prefix, fv)
			continue
		}
		addVariable(vars, f, fv)
	}
	return vars
}

func collectVariables(vars map[string]interface{}, prefix string, v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Tag.Get("desc") == "" {
			continue
		}
		name := prefix + f.Name
		switch f.Type.Kind() {
		case reflect.Float64:
			vars[name] = v.Field(i).Float()
		case reflect.Array:
			a := make([]float64, f.Type.Len())
			for j := range a {
				a[j] = v.Field(i).Index(j).Float()
			}
			vars[name] = a
		}
	}
}

func addVariable(vars map[string]interface{}, f reflect.StructField, v reflect.Value) {
	if f.Tag.Get("desc") == "" {
		return
	}
	switch f.Type.Kind() {
	case reflect.Float64:
		vars[f.Name] = v.Float()
	case reflect.Int:
		vars[f.Name] = float64(v.Int())
	case reflect.String:
		vars[f.Name] = v.String()
	}
}
