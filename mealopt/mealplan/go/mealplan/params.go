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
	"time"

	"github.com/mealopt/mealopt/mealopt/linear_solver/go/mpmodel"
)

// NoLimit is the number of uses counted for a meal without a maximum in the feasibility
// pre-check.
const NoLimit = 9999

// Params groups the options of a planner.
type Params struct {
	// NumDays is the length of the planning horizon.
	NumDays int
	// NumMeals is the number of distinct meals selected every day.
	NumMeals int
	// Epsilon is the smallest quantity of a selected meal.
	Epsilon float64

	// Weights of the objective terms. A negative WeightPrice rewards expensive plans.
	WeightPrice     float64
	WeightNutrients float64
	WeightRange     float64

	// ExpectedDailyPrice normalizes the price term.
	ExpectedDailyPrice float64
	// M1 bounds the quantity of a selected meal.
	M1 float64
	// M2 bounds the energy of one meal in the calorie range term. Zero derives it as
	// (M1 + Epsilon) times the largest energy of one unit of any meal.
	M2 float64

	// TimeLimit is the wall-clock limit of each engine call. Zero means no limit.
	TimeLimit time.Duration
	// VerifyTolerance is the relative tolerance a solution is verified with.
	VerifyTolerance float64
	// NoLimit is the number of uses counted for a meal without maximum.
	NoLimit int
}

// DefaultParams returns the default planner options: one day of four meals.
func DefaultParams() Params {
	return Params{
		NumDays:            1,
		NumMeals:           4,
		Epsilon:            1e-3,
		WeightPrice:        0.1,
		WeightNutrients:    2.0,
		WeightRange:        0.75,
		ExpectedDailyPrice: 75,
		M1:                 20,
		TimeLimit:          mpmodel.DefaultTimeLimit,
		VerifyTolerance:    mpmodel.DefaultVerifyTolerance,
		NoLimit:            NoLimit,
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate checks the consistency of the options.
func (p Params) Validate() error {
	switch {
	case p.NumDays < 1:
		return fmt.Errorf("NumDays = %d, want at least 1: %w", p.NumDays, ErrInvalidInput)
	case p.NumMeals < 1:
		return fmt.Errorf("NumMeals = %d, want at least 1: %w", p.NumMeals, ErrInvalidInput)
	case !finite(p.Epsilon) || p.Epsilon <= 0:
		return fmt.Errorf("Epsilon = %v, want a positive number: %w", p.Epsilon, ErrInvalidInput)
	case !finite(p.M1) || 100*p.Epsilon > p.M1:
		return fmt.Errorf("M1 = %v, want at least 100 * Epsilon = %v: %w", p.M1, 100*p.Epsilon, ErrInvalidInput)
	case !finite(p.M2) || p.M2 < 0:
		return fmt.Errorf("M2 = %v, want a non-negative number: %w", p.M2, ErrInvalidInput)
	case !finite(p.ExpectedDailyPrice) || p.ExpectedDailyPrice <= 0:
		return fmt.Errorf("ExpectedDailyPrice = %v, want a positive number: %w", p.ExpectedDailyPrice, ErrInvalidInput)
	case !finite(p.WeightPrice):
		return fmt.Errorf("WeightPrice = %v: %w", p.WeightPrice, ErrInvalidInput)
	case !finite(p.WeightNutrients) || p.WeightNutrients < 0:
		return fmt.Errorf("WeightNutrients = %v, want a non-negative number: %w", p.WeightNutrients, ErrInvalidInput)
	case !finite(p.WeightRange) || p.WeightRange < 0:
		return fmt.Errorf("WeightRange = %v, want a non-negative number: %w", p.WeightRange, ErrInvalidInput)
	case p.TimeLimit < 0:
		return fmt.Errorf("TimeLimit = %v: %w", p.TimeLimit, ErrInvalidInput)
	case !finite(p.VerifyTolerance) || p.VerifyTolerance <= 0:
		return fmt.Errorf("VerifyTolerance = %v, want a positive number: %w", p.VerifyTolerance, ErrInvalidInput)
	case p.NoLimit < 1:
		return fmt.Errorf("NoLimit = %d, want at least 1: %w", p.NoLimit, ErrInvalidInput)
	}
	return nil
}
