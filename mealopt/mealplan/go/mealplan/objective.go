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
	"math"

	"github.com/mealopt/mealopt/mealopt/linear_solver/go/mpmodel"
	"github.com/mealopt/mealopt/mealopt/nutrition/go/nutrition"
)

// addPriceTerm adds the price of every day, normalized by the expected price of the horizon.
func (f *formulation) addPriceTerm() {
	p := f.in.params
	w := p.WeightPrice / (p.ExpectedDailyPrice * float64(p.NumDays))
	for j := 0; j < p.NumDays; j++ {
		f.price.AddTerm(f.dayTotal(nutrition.Price, j), w)
	}
}

// addNutrientTerms adds the goal programming deviation of every bounded macro on every day.
//
// A floor is `total + over_low - under_low = low` with `over_low` penalized, a ceiling is
// `total + over_high - under_high = high` with `under_high` penalized, so a total above a
// floor or below a ceiling costs nothing.
func (f *formulation) addNutrientTerms() {
	p := f.in.params
	for j := 0; j < p.NumDays; j++ {
		for _, a := range nutrition.Macros() {
			b, ok := f.in.dietary[a]
			if !ok || !b.IsSet() {
				continue
			}
			term, ok := f.nutrients[a]
			if !ok {
				term = mpmodel.NewLinearExpr()
				f.nutrients[a] = term
			}
			w := p.WeightNutrients / (b.mean() * float64(p.NumDays))
			total := f.dayTotal(a, j)

			if b.Low != nil {
				over := f.mb.NewNumVar(0, math.Inf(1)).WithName(overLowName(a, j))
				under := f.mb.NewNumVar(0, math.Inf(1)).WithName(underLowName(a, j))
				f.mb.AddEquality(mpmodel.NewLinearExpr().Add(total).Add(over).AddTerm(under, -1), mpmodel.NewConstant(*b.Low)).
					WithName(overLowName(a, j) + "_row")
				term.AddTerm(over, w)
			}
			if b.High != nil {
				over := f.mb.NewNumVar(0, math.Inf(1)).WithName(overHighName(a, j))
				under := f.mb.NewNumVar(0, math.Inf(1)).WithName(underHighName(a, j))
				f.mb.AddEquality(mpmodel.NewLinearExpr().Add(total).Add(over).AddTerm(under, -1), mpmodel.NewConstant(*b.High)).
					WithName(overHighName(a, j) + "_row")
				term.AddTerm(under, w)
			}
		}
	}
}

// addRangeTerm adds the daily spread between the largest and the smallest energy of the
// selected meals. Unselected meals relax the floor by M2.
func (f *formulation) addRangeTerm() {
	p := f.in.params
	if p.WeightRange == 0 {
		return
	}
	kcal := f.in.ledger.Coefficients(nutrition.Kcal)
	w := p.WeightRange / (f.in.dietary[nutrition.Kcal].mean() * float64(p.NumDays) / float64(p.NumMeals))
	for j := 0; j < p.NumDays; j++ {
		lower := f.mb.NewNumVar(0, math.Inf(1)).WithName(lowerKcalName(j))
		upper := f.mb.NewNumVar(0, math.Inf(1)).WithName(upperKcalName(j))
		for i, c := range kcal {
			energy := mpmodel.NewLinearExpr().AddTerm(f.x[i][j], c)
			// lower <= x * kcal + (1 - z) * M2
			f.mb.AddLessOrEqual(lower, mpmodel.NewLinearExpr().Add(energy).AddTerm(f.z[i][j], -f.in.m2).AddConstant(f.in.m2)).
				WithName(lowerKcalName(j) + "_" + quantityName(i, j))
			f.mb.AddGreaterOrEqual(upper, energy).
				WithName(upperKcalName(j) + "_" + quantityName(i, j))
		}
		f.spread.AddTerm(upper, w).AddTerm(lower, -w)
	}
}

// ObjectiveTerms are the realized values of the weighted objective terms.
type ObjectiveTerms struct {
	Price     float64
	Nutrients float64
	Range     float64
	// Macros holds the deviation cost of every bounded macro, summed over the days.
	Macros map[nutrition.Attribute]float64
}

// Total returns the sum of the terms.
func (t ObjectiveTerms) Total() float64 {
	return t.Price + t.Nutrients + t.Range
}

// terms evaluates the objective terms at `values`.
func (f *formulation) terms(values []float64) ObjectiveTerms {
	r := &mpmodel.Response{Values: values}
	t := ObjectiveTerms{
		Price:  mpmodel.SolutionValue(r, f.price),
		Range:  mpmodel.SolutionValue(r, f.spread),
		Macros: make(map[nutrition.Attribute]float64, len(f.nutrients)),
	}
	for a, e := range f.nutrients {
		v := mpmodel.SolutionValue(r, e)
		t.Macros[a] = v
		t.Nutrients += v
	}
	return t
}
