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
	"time"

	"github.com/shopspring/decimal"

	"github.com/mealopt/mealopt/mealopt/linear_solver/go/mpmodel"
	"github.com/mealopt/mealopt/mealopt/nutrition/go/nutrition"
)

// SolveInfo describes how a plan was found.
type SolveInfo struct {
	// RunID identifies the request in the logs.
	RunID  string
	Status mpmodel.Status
	// Objective is rounded to 6 decimals.
	Objective float64
	Terms     ObjectiveTerms
	// WallTime is the engine time of the accepted attempt, rounded to milliseconds.
	WallTime   time.Duration
	Iterations int64
	// TotalPrice is the realized price of the plan, rounded to 1 decimal.
	TotalPrice decimal.Decimal
	// Attempts is 2 when the first attempt was infeasible.
	Attempts int
	States   []SolveState
}

// Plan is the result of a planning request.
type Plan struct {
	// Quantities[i][j] is the number of units of meal i on day j, 0 if unselected.
	Quantities [][]float64
	Info       SolveInfo
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// extractQuantities reads the quantity grid from the values of a solution. The quantity of a
// selected cell is at least epsilon and the one of an unselected cell is exactly 0.
func extractQuantities(f *formulation, values []float64) [][]float64 {
	eps := f.in.params.Epsilon
	q := make([][]float64, len(f.x))
	for i := range f.x {
		q[i] = make([]float64, len(f.x[i]))
		for j := range f.x[i] {
			if values[f.z[i][j].Index()] > 0.5 {
				q[i][j] = math.Max(values[f.x[i][j].Index()], eps)
			}
		}
	}
	return q
}

// totalPrice returns the realized price of a quantity grid.
func totalPrice(l *nutrition.Ledger, q [][]float64) float64 {
	var sum float64
	for i := range q {
		for j := range q[i] {
			sum += l.Value(i, nutrition.Price, q[i][j])
		}
	}
	return sum
}

func newPlan(f *formulation, res *mpmodel.Response, a *attempt) *Plan {
	q := extractQuantities(f, res.Values)
	return &Plan{
		Quantities: q,
		Info: SolveInfo{
			RunID:      a.runID,
			Status:     res.Status,
			Objective:  roundTo(res.ObjectiveValue, 6),
			Terms:      f.terms(res.Values),
			WallTime:   res.WallTime.Round(time.Millisecond),
			Iterations: res.Iterations,
			TotalPrice: decimal.NewFromFloat(totalPrice(f.in.ledger, q)).Round(1),
			Attempts:   a.attempts,
			States:     append([]SolveState(nil), a.states...),
		},
	}
}

// NumDays returns the number of days of the plan.
func (p *Plan) NumDays() int {
	if len(p.Quantities) == 0 {
		return 0
	}
	return len(p.Quantities[0])
}

// Days returns the servings of every day. `meals` must be the meals the plan was made for.
func (p *Plan) Days(meals []*nutrition.Meal) []nutrition.Day {
	days := make([]nutrition.Day, p.NumDays())
	for i, row := range p.Quantities {
		for j, qty := range row {
			if qty > 0 {
				days[j] = append(days[j], nutrition.Serving{Meal: meals[i], Quantity: qty})
			}
		}
	}
	return days
}

// DailyPrices returns the price of every day, rounded to 1 decimal.
func (p *Plan) DailyPrices(meals []*nutrition.Meal) []decimal.Decimal {
	days := p.Days(meals)
	prices := make([]decimal.Decimal, len(days))
	for j, d := range days {
		prices[j] = decimal.NewFromFloat(d.Value(nutrition.Price)).Round(1)
	}
	return prices
}

// UsageCounts returns the number of days every meal is selected.
func (p *Plan) UsageCounts() []int {
	counts := make([]int, len(p.Quantities))
	for i, row := range p.Quantities {
		for _, qty := range row {
			if qty > 0 {
				counts[i]++
			}
		}
	}
	return counts
}
