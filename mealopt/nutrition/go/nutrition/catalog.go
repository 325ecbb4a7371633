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
)

var (
	// ErrDuplicate is returned when a food or meal name is registered twice.
	ErrDuplicate = errors.New("already registered")
	// ErrUnknownFood is returned when a meal uses a food missing from the catalog.
	ErrUnknownFood = errors.New("unknown food")
)

// Catalog is a registry of foods and of the meals made of them. Meals keep their insertion
// order, which is the index order of the ledgers built from the catalog.
type Catalog struct {
	foods     map[string]*Food
	foodOrder []*Food
	meals     map[string]*Meal
	mealOrder []*Meal
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		foods: make(map[string]*Food),
		meals: make(map[string]*Meal),
	}
}

// AddFood registers a food.
func (c *Catalog) AddFood(f *Food) error {
	if f == nil {
		return fmt.Errorf("nil food: %w", ErrInvalidFood)
	}
	if _, ok := c.foods[f.Name()]; ok {
		return fmt.Errorf("food %q: %w", f.Name(), ErrDuplicate)
	}
	c.foods[f.Name()] = f
	c.foodOrder = append(c.foodOrder, f)
	return nil
}

// Food returns the food with the given name.
func (c *Catalog) Food(name string) (*Food, bool) {
	f, ok := c.foods[name]
	return f, ok
}

// Foods returns the registered foods in insertion order.
func (c *Catalog) Foods() []*Food {
	return append([]*Food(nil), c.foodOrder...)
}

// AddMeal registers a meal. Every food of the meal must be registered first.
func (c *Catalog) AddMeal(m *Meal) error {
	if m == nil {
		return fmt.Errorf("nil meal: %w", ErrInvalidMeal)
	}
	if _, ok := c.meals[m.Name()]; ok {
		return fmt.Errorf("meal %q: %w", m.Name(), ErrDuplicate)
	}
	for _, p := range m.portions {
		if f, ok := c.foods[p.Food.Name()]; !ok || f != p.Food {
			return fmt.Errorf("meal %q uses %q: %w", m.Name(), p.Food.Name(), ErrUnknownFood)
		}
	}
	c.meals[m.Name()] = m
	c.mealOrder = append(c.mealOrder, m)
	return nil
}

// Meal returns the meal with the given name.
func (c *Catalog) Meal(name string) (*Meal, bool) {
	m, ok := c.meals[name]
	return m, ok
}

// Meals returns the registered meals in insertion order.
func (c *Catalog) Meals() []*Meal {
	return append([]*Meal(nil), c.mealOrder...)
}

// Ledger returns a ledger over the registered meals.
func (c *Catalog) Ledger() *Ledger {
	return NewLedger(c.mealOrder)
}
