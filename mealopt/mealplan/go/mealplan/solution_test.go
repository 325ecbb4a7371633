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
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"github.com/mealopt/mealopt/mealopt/linear_solver/go/mpmodel"
	"github.com/mealopt/mealopt/mealopt/nutrition/go/nutrition"
)

// breakfasts returns two meals of 100 grams of one food, with prices exact in binary.
func breakfasts(t *testing.T) []*nutrition.Meal {
	t.Helper()
	var meals []*nutrition.Meal
	for _, f := range []struct {
		name  string
		n     nutrition.Nutrients
		price float64
	}{
		{"oats", nutrition.Nutrients{Protein: 10, Fat: 5, Carbs: 60, Kcal: 325}, 1},
		{"eggs", nutrition.Nutrients{Protein: 13, Fat: 11, Carbs: 1, Kcal: 155}, 2},
	} {
		food, err := nutrition.NewFood(f.name, f.n, f.price, 128)
		if err != nil {
			t.Fatalf("NewFood() returned with unexpected error %v", err)
		}
		m, err := nutrition.NewMeal(f.name, []nutrition.Portion{{Food: food, Grams: 100}})
		if err != nil {
			t.Fatalf("NewMeal() returned with unexpected error %v", err)
		}
		meals = append(meals, m)
	}
	return meals
}

// twoDays is a plan of the breakfasts: oats twice on the first day, then oats once and
// eggs three times.
func twoDays() *Plan {
	return &Plan{
		Quantities: [][]float64{
			{2, 1},
			{0, 3},
		},
		Info: SolveInfo{
			RunID:      "run",
			Status:     mpmodel.StatusOptimal,
			Objective:  0.123457,
			Terms:      ObjectiveTerms{Price: 0.1234567891, Range: 0.5},
			WallTime:   1500 * time.Millisecond,
			Iterations: 7,
			TotalPrice: decimal.RequireFromString("7.0"),
			Attempts:   1,
			States:     []SolveState{StateBuilt, StateSolving, StateOptimal},
		},
	}
}

func TestPlan_Days(t *testing.T) {
	meals := breakfasts(t)
	p := twoDays()

	if got, want := p.NumDays(), 2; got != want {
		t.Errorf("NumDays() = %v, want %v", got, want)
	}
	want := []nutrition.Day{
		{{Meal: meals[0], Quantity: 2}},
		{{Meal: meals[0], Quantity: 1}, {Meal: meals[1], Quantity: 3}},
	}
	if diff := cmp.Diff(want, p.Days(meals), cmp.Comparer(func(a, b *nutrition.Meal) bool { return a == b })); diff != "" {
		t.Errorf("Days() returned with unexpected diff (-want+got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{2, 1}, p.UsageCounts()); diff != "" {
		t.Errorf("UsageCounts() returned with unexpected diff (-want+got):\n%s", diff)
	}

	// 1.5625 and 5.46875.
	prices := p.DailyPrices(meals)
	for j, want := range []string{"1.6", "5.5"} {
		if !prices[j].Equal(decimal.RequireFromString(want)) {
			t.Errorf("DailyPrices()[%d] = %v, want %v", j, prices[j], want)
		}
	}
}

func TestPlan_Empty(t *testing.T) {
	p := &Plan{}
	if got := p.NumDays(); got != 0 {
		t.Errorf("NumDays() = %v, want 0", got)
	}
	if got := p.Days(nil); len(got) != 0 {
		t.Errorf("Days() = %v, want no day", got)
	}
}

func TestExtractQuantities(t *testing.T) {
	f := mustFormulation(t, mustInput(t, sampleMeals(), sampleDietary(), nil, DefaultParams()))
	values := make([]float64, f.m.NumVariables())
	set := func(i int, x, z float64) {
		values[f.x[i][0].Index()] = x
		values[f.z[i][0].Index()] = z
	}
	set(mixedNuts, 4e-4, 0.7)
	set(yogurtMuesli, 2, 0.3)
	set(chicken, 2.5, 1)
	set(egg, 1e-9, 0)

	want := grid(7, 1, [3]float64{mixedNuts, 0, 1e-3}, [3]float64{chicken, 0, 2.5})
	if diff := cmp.Diff(want, extractQuantities(f, values)); diff != "" {
		t.Errorf("extractQuantities() returned with unexpected diff (-want+got):\n%s", diff)
	}
}

func TestRoundTo(t *testing.T) {
	for _, test := range []struct {
		v        float64
		decimals int
		want     float64
	}{
		{1.23456789, 6, 1.234568},
		{1.25, 1, 1.3},
		{-0.04, 1, -0},
		{1500, 0, 1500},
	} {
		if got := roundTo(test.v, test.decimals); got != test.want {
			t.Errorf("roundTo(%v, %d) = %v, want %v", test.v, test.decimals, got, test.want)
		}
	}
}
