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
	"math"

	"github.com/mealopt/mealopt/mealopt/linear_solver/go/mpmodel"
	"github.com/mealopt/mealopt/mealopt/nutrition/go/nutrition"
)

// Variable and row names. The indices are the meal i and the day j.
func quantityName(i, j int) string  { return fmt.Sprintf("x_%d_%d", i, j) }
func indicatorName(i, j int) string { return fmt.Sprintf("z_%d_%d", i, j) }
func overLowName(a nutrition.Attribute, j int) string {
	return fmt.Sprintf("over_low_%v_%d", a, j)
}
func underLowName(a nutrition.Attribute, j int) string {
	return fmt.Sprintf("under_low_%v_%d", a, j)
}
func overHighName(a nutrition.Attribute, j int) string {
	return fmt.Sprintf("over_high_%v_%d", a, j)
}
func underHighName(a nutrition.Attribute, j int) string {
	return fmt.Sprintf("under_high_%v_%d", a, j)
}
func lowerKcalName(j int) string { return fmt.Sprintf("lower_kcal_%d", j) }
func upperKcalName(j int) string { return fmt.Sprintf("upper_kcal_%d", j) }

// formulation is the model of one planning attempt. It owns the decision variable grid and
// the objective terms; nothing of it outlives the attempt.
type formulation struct {
	in *input
	mb *mpmodel.Builder
	m  *mpmodel.Model
	// x[i][j] is the quantity of meal i on day j, z[i][j] its indicator.
	x, z [][]mpmodel.Var

	price     *mpmodel.LinearExpr
	nutrients map[nutrition.Attribute]*mpmodel.LinearExpr
	spread    *mpmodel.LinearExpr
}

// newFormulation builds the whole model of a request: variables, objective terms and hard
// constraints.
func newFormulation(name string, in *input) (*formulation, error) {
	f := &formulation{
		in:        in,
		mb:        mpmodel.NewModelBuilder(name),
		price:     mpmodel.NewLinearExpr(),
		nutrients: make(map[nutrition.Attribute]*mpmodel.LinearExpr),
		spread:    mpmodel.NewLinearExpr(),
	}
	f.addVariables()
	f.addPriceTerm()
	f.addNutrientTerms()
	f.addRangeTerm()
	f.addCardinality()
	f.addUsageLimits()

	obj := mpmodel.NewLinearExpr().Add(f.price).Add(f.spread)
	for _, a := range nutrition.Macros() {
		if e, ok := f.nutrients[a]; ok {
			obj.Add(e)
		}
	}
	f.mb.Minimize(obj)
	m, err := f.mb.Model()
	if err != nil {
		return nil, fmt.Errorf("building model %q: %w", name, err)
	}
	f.m = m
	return f, nil
}

// addVariables creates the quantity and indicator of every (meal, day) cell and links them
// so that the indicator is 1 iff the quantity is at least epsilon.
func (f *formulation) addVariables() {
	p := f.in.params
	eps := p.Epsilon
	tenth := eps / 10
	n := f.in.ledger.Len()
	f.x = make([][]mpmodel.Var, n)
	f.z = make([][]mpmodel.Var, n)
	for i := 0; i < n; i++ {
		f.x[i] = make([]mpmodel.Var, p.NumDays)
		f.z[i] = make([]mpmodel.Var, p.NumDays)
		discrete := f.in.ledger.Meal(i).Discrete()
		for j := 0; j < p.NumDays; j++ {
			z := f.mb.NewBoolVar().WithName(indicatorName(i, j))
			var x mpmodel.Var
			if discrete {
				x = f.mb.NewIntVar(0, math.Inf(1))
			} else {
				x = f.mb.NewNumVar(0, math.Inf(1))
			}
			x = x.WithName(quantityName(i, j))
			f.x[i][j], f.z[i][j] = x, z

			// eps * z <= x
			f.mb.AddLessOrEqual(mpmodel.NewLinearExpr().AddTerm(z, eps), x).
				WithName(fmt.Sprintf("select_%d_%d", i, j))
			// x <= (M1 + eps/10) * z + eps - eps/10
			f.mb.AddLessOrEqual(x, mpmodel.NewLinearExpr().AddTerm(z, p.M1+tenth).AddConstant(eps-tenth)).
				WithName(fmt.Sprintf("deselect_%d_%d", i, j))
		}
	}
}

// dayTotal returns the sum of attribute `a` over the meals of day `j`.
func (f *formulation) dayTotal(a nutrition.Attribute, j int) *mpmodel.LinearExpr {
	e := mpmodel.NewLinearExpr()
	for i, c := range f.in.ledger.Coefficients(a) {
		e.AddTerm(f.x[i][j], c)
	}
	return e
}
