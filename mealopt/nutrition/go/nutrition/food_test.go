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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eggs(t *testing.T) *Food {
	t.Helper()
	f, err := NewFood("egg", Nutrients{Protein: 13, Fat: 10.6, Carbs: 0.3, Kcal: 149}, 32.9, 690)
	require.NoError(t, err)
	return f
}

func TestNewFood(t *testing.T) {
	f := eggs(t)

	assert.Equal(t, "egg", f.Name())
	assert.InDelta(t, 4.768115942028985, f.Price(), 1e-12)
	assert.InDelta(t, 149.0, f.Value(Kcal), 0)
	assert.InDelta(t, 13.0, f.Value(Protein), 0)
	assert.InDelta(t, 10.6, f.Value(Fat), 0)
	assert.InDelta(t, 0.3, f.Value(Carbs), 0)
	assert.InDelta(t, f.Price(), f.Value(Price), 0)
	assert.InDelta(t, 0.4/148.6, f.KcalError(), 1e-12)
}

func TestNewFood_Errors(t *testing.T) {
	testCases := []struct {
		name            string
		food            string
		nutrients       Nutrients
		pricePerProduct float64
		gramsPerProduct float64
	}{
		{name: "EmptyName", nutrients: Nutrients{Kcal: 1}, pricePerProduct: 1, gramsPerProduct: 1},
		{name: "NegativeMacro", food: "f", nutrients: Nutrients{Fat: -1}, pricePerProduct: 1, gramsPerProduct: 1},
		{name: "NaNMacro", food: "f", nutrients: Nutrients{Carbs: math.NaN()}, pricePerProduct: 1, gramsPerProduct: 1},
		{name: "NegativePrice", food: "f", pricePerProduct: -1, gramsPerProduct: 1},
		{name: "ZeroMass", food: "f", pricePerProduct: 1, gramsPerProduct: 0},
		{name: "InfiniteMass", food: "f", pricePerProduct: 1, gramsPerProduct: math.Inf(1)},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewFood(test.food, test.nutrients, test.pricePerProduct, test.gramsPerProduct)
			assert.ErrorIs(t, err, ErrInvalidFood)
		})
	}
}

func TestFood_KcalError(t *testing.T) {
	// 4*10 + 4*10 + 9*10 = 170 computed against 200 declared.
	f, err := NewFood("suspicious", Nutrients{Protein: 10, Fat: 10, Carbs: 10, Kcal: 200}, 1, 100)
	require.NoError(t, err, "a kcal mismatch is a warning, not an error")
	assert.InDelta(t, 30.0/170, f.KcalError(), 1e-12)
	assert.Greater(t, f.KcalError(), KcalTolerance)

	water, err := NewFood("water", Nutrients{}, 10, 1500)
	require.NoError(t, err)
	assert.Zero(t, water.KcalError())

	fiber, err := NewFood("fiber", Nutrients{Kcal: 20}, 10, 100)
	require.NoError(t, err)
	assert.True(t, math.IsInf(fiber.KcalError(), 1))
}

func TestAttribute(t *testing.T) {
	for _, a := range []Attribute{Kcal, Protein, Fat, Carbs, Price} {
		got, err := ParseAttribute(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}

	got, err := ParseAttribute(" Protein ")
	require.NoError(t, err)
	assert.Equal(t, Protein, got)

	_, err = ParseAttribute("fiber")
	assert.ErrorIs(t, err, ErrUnknownAttribute)

	assert.Equal(t, []Attribute{Kcal, Protein, Fat, Carbs}, Macros())
	for _, a := range Macros() {
		assert.True(t, a.IsMacro(), "%v.IsMacro()", a)
	}
	assert.False(t, Price.IsMacro())
	assert.Equal(t, "Attribute(9)", Attribute(9).String())
}
