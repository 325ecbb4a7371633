// Copyright 2010-2024 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mealplan

import (
	"fmt"

	"github.com/mealopt/mealopt/mealopt/linear_solver/go/mpmodel"
)

// addCardinality selects exactly NumMeals meals every day.
func (f *formulation) addCardinality() {
	p := f.in.params
	for j := 0; j < p.NumDays; j++ {
		selected := mpmodel.NewLinearExpr()
		for i := range f.z {
			selected.Add(f.z[i][j])
		}
		f.mb.AddEquality(selected, mpmodel.NewConstant(float64(p.NumMeals))).
			WithName(fmt.Sprintf("meals_per_day_%d", j))
	}
}

// addUsageLimits bounds the number of days every meal is selected.
func (f *formulation) addUsageLimits() {
	for i, l := range f.in.limits {
		used := mpmodel.NewLinearExpr().AddSum(toArgs(f.z[i])...)
		if l.Min != nil {
			f.mb.AddGreaterOrEqual(used, mpmodel.NewConstant(float64(*l.Min))).
				WithName(fmt.Sprintf("min_uses_%d", i))
		}
		if l.Max != nil {
			f.mb.AddLessOrEqual(used, mpmodel.NewConstant(float64(*l.Max))).
				WithName(fmt.Sprintf("max_uses_%d", i))
		}
	}
}

func toArgs(vars []mpmodel.Var) []mpmodel.LinearArgument {
	args := make([]mpmodel.LinearArgument, len(vars))
	for k, v := range vars {
		args[k] = v
	}
	return args
}
