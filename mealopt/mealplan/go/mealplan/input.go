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
	"errors"
	"fmt"

	"github.com/mealopt/mealopt/mealopt/nutrition/go/nutrition"
)

var (
	// ErrInvalidInput is returned, before any engine call, for inputs that cannot describe a
	// plan.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInfeasible is returned when the engine proves twice that no plan exists.
	ErrInfeasible = errors.New("no plan satisfies the given constraints")
	// ErrInconsistentSolution is returned when the engine reports a solution that does not
	// satisfy the model it solved.
	ErrInconsistentSolution = errors.New("engine solution violates the model")
	// ErrSolverFailed is returned when the engine fails or stops without a solution.
	ErrSolverFailed = errors.New("engine failed")
)

// Bounds are the optional daily floor and ceiling of a macro.
type Bounds struct {
	Low  *float64
	High *float64
}

// AtLeast returns bounds with a floor only.
func AtLeast(low float64) Bounds {
	return Bounds{Low: &low}
}

// AtMost returns bounds with a ceiling only.
func AtMost(high float64) Bounds {
	return Bounds{High: &high}
}

// Between returns bounds with a floor and a ceiling.
func Between(low, high float64) Bounds {
	return Bounds{Low: &low, High: &high}
}

// IsSet reports whether at least one side is configured.
func (b Bounds) IsSet() bool {
	return b.Low != nil || b.High != nil
}

// mean returns the mean of the configured sides, the scale of a daily deviation.
func (b Bounds) mean() float64 {
	var sum float64
	n := 0
	for _, v := range []*float64{b.Low, b.High} {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (b Bounds) String() string {
	side := func(v *float64) string {
		if v == nil {
			return "none"
		}
		return fmt.Sprint(*v)
	}
	return "(" + side(b.Low) + ", " + side(b.High) + ")"
}

// Dietary holds the bounds applied to every day of a plan, by macro.
type Dietary map[nutrition.Attribute]Bounds

// ParseDietary returns the dietary bounds keyed by macro names.
func ParseDietary(bounds map[string]Bounds) (Dietary, error) {
	d := make(Dietary, len(bounds))
	for name, b := range bounds {
		a, err := nutrition.ParseAttribute(name)
		if err != nil || !a.IsMacro() {
			return nil, fmt.Errorf("dietary constraint on %q, want one of %v: %w", name, nutrition.Macros(), ErrInvalidInput)
		}
		if _, ok := d[a]; ok {
			return nil, fmt.Errorf("dietary constraint on %v given twice: %w", a, ErrInvalidInput)
		}
		d[a] = b
	}
	return d, nil
}

// UsageLimit bounds the number of days a meal is selected over the horizon.
type UsageLimit struct {
	Min *int
	Max *int
}

// MinUses returns a limit with a minimum only.
func MinUses(min int) UsageLimit {
	return UsageLimit{Min: &min}
}

// MaxUses returns a limit with a maximum only.
func MaxUses(max int) UsageLimit {
	return UsageLimit{Max: &max}
}

// UsesBetween returns a limit with a minimum and a maximum.
func UsesBetween(min, max int) UsageLimit {
	return UsageLimit{Min: &min, Max: &max}
}

// input is a validated planning request.
type input struct {
	ledger  *nutrition.Ledger
	dietary Dietary
	limits  []UsageLimit
	params  Params
	// m2 is the big-M of the calorie range term.
	m2 float64
}

// newInput validates a request. It never calls an engine.
func newInput(meals []*nutrition.Meal, dietary Dietary, limits []UsageLimit, p Params) (*input, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(meals) == 0 {
		return nil, fmt.Errorf("no meals to plan: %w", ErrInvalidInput)
	}
	for i, m := range meals {
		if m == nil {
			return nil, fmt.Errorf("meal #%d is nil: %w", i, ErrInvalidInput)
		}
	}
	if p.NumMeals > len(meals) {
		return nil, fmt.Errorf("%d meals per day requested from %d meals: %w", p.NumMeals, len(meals), ErrInvalidInput)
	}

	if limits == nil {
		limits = make([]UsageLimit, len(meals))
	}
	if len(limits) != len(meals) {
		return nil, fmt.Errorf("got %d usage limits for %d meals: %w", len(limits), len(meals), ErrInvalidInput)
	}
	total := p.NumDays * p.NumMeals
	maxUses := 0
	for i, l := range limits {
		name := meals[i].Name()
		switch {
		case l.Min != nil && *l.Min < 0:
			return nil, fmt.Errorf("minimum use of %q is %d: %w", name, *l.Min, ErrInvalidInput)
		case l.Max != nil && *l.Max < 0:
			return nil, fmt.Errorf("maximum use of %q is %d: %w", name, *l.Max, ErrInvalidInput)
		case l.Min != nil && *l.Min > p.NumDays:
			return nil, fmt.Errorf("lower limit on %q is %d, but there are %d days: %w", name, *l.Min, p.NumDays, ErrInvalidInput)
		case l.Min != nil && l.Max != nil && *l.Min > *l.Max:
			return nil, fmt.Errorf("lower limit on %q is %d, above its upper limit %d: %w", name, *l.Min, *l.Max, ErrInvalidInput)
		}
		if l.Max == nil {
			maxUses += p.NoLimit
		} else {
			maxUses += *l.Max
		}
	}
	if maxUses < total {
		return nil, fmt.Errorf("cannot achieve %d total meals with a total of %d meals: %w", total, maxUses, ErrInvalidInput)
	}

	for a, b := range dietary {
		if !a.IsMacro() {
			return nil, fmt.Errorf("dietary constraint on %v, want one of %v: %w", a, nutrition.Macros(), ErrInvalidInput)
		}
		for _, v := range []*float64{b.Low, b.High} {
			if v != nil && (!finite(*v) || *v < 0) {
				return nil, fmt.Errorf("bounds %v on %v: %w", b, a, ErrInvalidInput)
			}
		}
		if b.Low != nil && b.High != nil && *b.Low > *b.High {
			return nil, fmt.Errorf("bounds %v on %v have low above high: %w", b, a, ErrInvalidInput)
		}
		if b.IsSet() && b.mean() <= 0 {
			return nil, fmt.Errorf("bounds %v on %v cannot normalize a deviation: %w", b, a, ErrInvalidInput)
		}
	}
	if p.WeightRange > 0 && !dietary[nutrition.Kcal].IsSet() {
		return nil, fmt.Errorf("the calorie range term needs bounds on %v: %w", nutrition.Kcal, ErrInvalidInput)
	}

	in := &input{
		ledger:  nutrition.NewLedger(meals),
		dietary: make(Dietary, len(dietary)),
		limits:  append([]UsageLimit(nil), limits...),
		params:  p,
		m2:      p.M2,
	}
	for a, b := range dietary {
		in.dietary[a] = b
	}
	if in.m2 == 0 {
		in.m2 = (p.M1 + p.Epsilon) * in.ledger.MaxValue(nutrition.Kcal)
	}
	return in, nil
}
