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

package nutrition

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidMeal is returned when a meal cannot be constructed from its portions.
var ErrInvalidMeal = errors.New("invalid meal")

// Portion is the mass of one food in one unit of a meal.
type Portion struct {
	Food  *Food
	Grams float64
}

// Meal is a fixed composition of foods. Plans use meals in units; a discrete meal is only
// planned in whole units.
type Meal struct {
	name       string
	portions   []Portion
	continuous bool
	category   string
}

// MealOption configures a meal in NewMeal.
type MealOption func(*Meal)

// Continuous allows fractional units of the meal.
func Continuous() MealOption {
	return func(m *Meal) {
		m.continuous = true
	}
}

// WithCategory tags the meal, e.g. "breakfast" or "snack".
func WithCategory(category string) MealOption {
	return func(m *Meal) {
		m.category = category
	}
}

// NewMeal returns a discrete meal made of the given portions, in order.
func NewMeal(name string, portions []Portion, opts ...MealOption) (*Meal, error) {
	if name == "" {
		return nil, fmt.Errorf("empty name: %w", ErrInvalidMeal)
	}
	if len(portions) == 0 {
		return nil, fmt.Errorf("meal %q has no foods: %w", name, ErrInvalidMeal)
	}
	seen := make(map[string]bool, len(portions))
	for _, p := range portions {
		if p.Food == nil {
			return nil, fmt.Errorf("meal %q has a nil food: %w", name, ErrInvalidMeal)
		}
		if seen[p.Food.Name()] {
			return nil, fmt.Errorf("meal %q uses %q twice: %w", name, p.Food.Name(), ErrInvalidMeal)
		}
		seen[p.Food.Name()] = true
		if !(p.Grams > 0) || math.IsInf(p.Grams, 0) {
			return nil, fmt.Errorf("meal %q has %vg of %q: %w", name, p.Grams, p.Food.Name(), ErrInvalidMeal)
		}
	}
	m := &Meal{name: name, portions: append([]Portion(nil), portions...)}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Name returns the name of the meal.
func (m *Meal) Name() string {
	return m.name
}

// Discrete reports whether the meal is planned in whole units only.
func (m *Meal) Discrete() bool {
	return !m.continuous
}

// Category returns the category tag of the meal, or "".
func (m *Meal) Category() string {
	return m.category
}

// Portions returns a copy of the composition of one unit of the meal.
func (m *Meal) Portions() []Portion {
	return append([]Portion(nil), m.portions...)
}

// Value returns attribute `a` of one unit of the meal.
func (m *Meal) Value(a Attribute) float64 {
	var sum float64
	for _, p := range m.portions {
		sum += p.Food.Value(a) * p.Grams / 100
	}
	return sum
}

// Grams returns the mass of one unit of the meal.
func (m *Meal) Grams() float64 {
	var sum float64
	for _, p := range m.portions {
		sum += p.Grams
	}
	return sum
}

// Copy returns a meal with the same data and an independent composition.
func (m *Meal) Copy() *Meal {
	c := *m
	c.portions = m.Portions()
	return &c
}

// Key identifies a meal by its name and the set of foods it is made of.
func (m *Meal) Key() string {
	names := make([]string, len(m.portions))
	for i, p := range m.portions {
		names[i] = p.Food.Name()
	}
	sort.Strings(names)
	return m.name + "{" + strings.Join(names, ",") + "}"
}

// Equal reports whether both meals have the same name and the same set of foods.
func (m *Meal) Equal(o *Meal) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.Key() == o.Key()
}

func (m *Meal) String() string {
	foods := make([]string, len(m.portions))
	for i, p := range m.portions {
		foods[i] = strconv.FormatFloat(p.Grams, 'f', -1, 64) + "g " + p.Food.Name()
	}
	return fmt.Sprintf("Meal(name='%s', grams=%d, foods={%s})",
		m.name, int(math.Round(m.Grams())), strings.Join(foods, ", "))
}

// Serving is a meal planned in some quantity of units.
type Serving struct {
	Meal     *Meal
	Quantity float64
}

// Value returns attribute `a` of the serving.
func (s Serving) Value(a Attribute) float64 {
	return s.Meal.Value(a) * s.Quantity
}

// Day is the list of servings of one day of a plan.
type Day []Serving

// Value returns attribute `a` summed over the servings of the day.
func (d Day) Value(a Attribute) float64 {
	var sum float64
	for _, s := range d {
		sum += s.Value(a)
	}
	return sum
}

// Sorted returns a copy of the day ordered by decreasing contribution to attribute `a`.
// Servings with equal contributions keep their order.
func (d Day) Sorted(a Attribute) Day {
	out := append(Day(nil), d...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value(a) > out[j].Value(a)
	})
	return out
}
