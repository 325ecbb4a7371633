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

	log "github.com/golang/glog"
)

// ErrInvalidFood is returned when a food cannot be constructed from its data.
var ErrInvalidFood = errors.New("invalid food")

// KcalTolerance is the relative error between declared and computed energy above which a
// food is reported as suspicious.
const KcalTolerance = 0.1

// Nutrients are the macronutrients and energy of 100 grams of a food.
type Nutrients struct {
	Protein float64
	Fat     float64
	Carbs   float64
	Kcal    float64
}

// ComputedKcal returns the energy derived from the macronutrients.
func (n Nutrients) ComputedKcal() float64 {
	return 4*n.Protein + 4*n.Carbs + 9*n.Fat
}

// Food is an immutable food item. All values are given per 100 grams.
type Food struct {
	name      string
	nutrients Nutrients
	price     float64
}

// NewFood returns a food with the given nutrients per 100 grams. The price per 100 grams is
// derived from the price and mass of one product as sold.
//
// A declared energy more than KcalTolerance away from the one computed from the macros is
// logged as a warning.
func NewFood(name string, n Nutrients, pricePerProduct, gramsPerProduct float64) (*Food, error) {
	if name == "" {
		return nil, fmt.Errorf("empty name: %w", ErrInvalidFood)
	}
	for _, v := range []float64{n.Protein, n.Fat, n.Carbs, n.Kcal, pricePerProduct} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("food %q has value %v: %w", name, v, ErrInvalidFood)
		}
	}
	if !(gramsPerProduct > 0) || math.IsInf(gramsPerProduct, 0) {
		return nil, fmt.Errorf("food %q has product mass %v: %w", name, gramsPerProduct, ErrInvalidFood)
	}
	f := &Food{
		name:      name,
		nutrients: n,
		price:     pricePerProduct / gramsPerProduct * 100,
	}
	if e := f.KcalError(); e > KcalTolerance {
		log.Warningf("Got a %.2f error on kcal: %q", e, name)
	}
	return f, nil
}

// Name returns the name of the food.
func (f *Food) Name() string {
	return f.name
}

// Nutrients returns the nutrients of 100 grams of the food.
func (f *Food) Nutrients() Nutrients {
	return f.nutrients
}

// Price returns the price of 100 grams of the food.
func (f *Food) Price() float64 {
	return f.price
}

// KcalError returns the relative error between the declared energy and the energy computed
// from the macronutrients.
func (f *Food) KcalError() float64 {
	computed := f.nutrients.ComputedKcal()
	if computed == 0 {
		if f.nutrients.Kcal == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return math.Abs((f.nutrients.Kcal - computed) / computed)
}

// Value returns attribute `a` of 100 grams of the food.
func (f *Food) Value(a Attribute) float64 {
	switch a {
	case Kcal:
		return f.nutrients.Kcal
	case Protein:
		return f.nutrients.Protein
	case Fat:
		return f.nutrients.Fat
	case Carbs:
		return f.nutrients.Carbs
	case Price:
		return f.price
	}
	log.Fatalf("Value(%v) is not a food attribute", a)
	return 0
}

func (f *Food) String() string {
	return fmt.Sprintf("Food(name='%s', protein=%v, fat=%v, carbs=%v, kcal=%v, price=%.2f)",
		f.name, f.nutrients.Protein, f.nutrients.Fat, f.nutrients.Carbs, f.nutrients.Kcal, f.price)
}
