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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	egg := eggs(t)
	require.NoError(t, c.AddFood(egg))
	assert.ErrorIs(t, c.AddFood(egg), ErrDuplicate)

	got, ok := c.Food("egg")
	require.True(t, ok)
	assert.Same(t, egg, got)
	_, ok = c.Food("bacon")
	assert.False(t, ok)

	m, err := NewMeal("eggs", []Portion{{egg, 70}})
	require.NoError(t, err)
	require.NoError(t, c.AddMeal(m))
	assert.ErrorIs(t, c.AddMeal(m), ErrDuplicate)

	unknown, err := NewMeal("yogurt", []Portion{{food(t, "yoghurt", Nutrients{Kcal: 84, Protein: 3.7, Fat: 3.1, Carbs: 10.5}, 17, 600), 150}})
	require.NoError(t, err)
	assert.ErrorIs(t, c.AddMeal(unknown), ErrUnknownFood)

	// A different food with a registered name is still unknown.
	impostor, err := NewMeal("other eggs", []Portion{{eggs(t), 70}})
	require.NoError(t, err)
	assert.ErrorIs(t, c.AddMeal(impostor), ErrUnknownFood)

	assert.Len(t, c.Meals(), 1)
	assert.Len(t, c.Foods(), 1)
}

func TestSampleCatalog(t *testing.T) {
	c := SampleCatalog()

	assert.Len(t, c.Foods(), 24)
	var names []string
	for _, m := range c.Meals() {
		names = append(names, m.Name())
	}
	assert.Equal(t, []string{
		"mixed nuts",
		"yogurt w/ muesli",
		"chicken w/ sweet&sour",
		"hamburger",
		"egg",
		"scoop protein shake",
		"yogurt w/ ct.cheese",
	}, names)

	// Each call builds an independent catalog.
	other := SampleCatalog()
	m1, _ := c.Meal("egg")
	m2, _ := other.Meal("egg")
	assert.NotSame(t, m1, m2)
	assert.True(t, m1.Equal(m2))
}

func TestLedger(t *testing.T) {
	meals := SampleCatalog().Meals()
	l := NewLedger(meals)
	meals[0] = nil

	require.Equal(t, 7, l.Len())
	require.NotNil(t, l.Meal(0))
	assert.Equal(t, "mixed nuts", l.Meal(0).Name())

	kcal := l.Coefficients(Kcal)
	require.Len(t, kcal, 7)
	assert.InDelta(t, 46.4, kcal[0], 1e-9)
	assert.InDelta(t, 3*kcal[4], l.Value(4, Kcal, 3), 1e-9)

	var max float64
	for _, k := range kcal {
		if k > max {
			max = k
		}
	}
	assert.InDelta(t, max, l.MaxValue(Kcal), 0)
	assert.Zero(t, NewLedger(nil).MaxValue(Kcal))
}
