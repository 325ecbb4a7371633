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

// Package nutrition holds the food and meal data consumed by the meal planner.
//
// A `Food` carries nutritional values per 100 grams and a price per 100 grams. A `Meal` is a
// fixed composition of foods in grams per unit, and a `Day` is a list of meals with their
// planned quantities. Aggregates of any `Attribute` are derived by summation over the
// composition. The `Ledger` is the read-only view of an indexed meal list used to build
// models, and the `Catalog` is an explicit registry of foods and meals.
package nutrition

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAttribute is returned when parsing an attribute name that does not exist.
var ErrUnknownAttribute = errors.New("unknown attribute")

// Attribute is a nutritional or economic value of a food, meal or day.
type Attribute int

// Attributes of a food. All values are given per 100 grams.
const (
	Kcal Attribute = iota
	Protein
	Fat
	Carbs
	// Price is in currency units per 100 grams.
	Price
)

var attributeNames = [...]string{
	Kcal:    "kcal",
	Protein: "protein",
	Fat:     "fat",
	Carbs:   "carbs",
	Price:   "price",
}

func (a Attribute) String() string {
	if a < 0 || int(a) >= len(attributeNames) {
		return fmt.Sprintf("Attribute(%d)", int(a))
	}
	return attributeNames[a]
}

// ParseAttribute returns the attribute with the given name, ignoring case.
func ParseAttribute(name string) (Attribute, error) {
	for a, n := range attributeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Attribute(a), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", name, ErrUnknownAttribute)
}

// Macros returns the attributes that can carry dietary bounds, in the order models iterate
// over them.
func Macros() []Attribute {
	return []Attribute{Kcal, Protein, Fat, Carbs}
}

// IsMacro reports whether dietary bounds can be set on `a`.
func (a Attribute) IsMacro() bool {
	return a >= Kcal && a <= Carbs
}
