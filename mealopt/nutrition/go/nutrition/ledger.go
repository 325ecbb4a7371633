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

// Ledger is a read-only view over an indexed list of meals.
type Ledger struct {
	meals []*Meal
}

// NewLedger returns a ledger over the given meals. Later changes to the slice do not affect
// the ledger.
func NewLedger(meals []*Meal) *Ledger {
	return &Ledger{meals: append([]*Meal(nil), meals...)}
}

// Len returns the number of meals.
func (l *Ledger) Len() int {
	return len(l.meals)
}

// Meal returns meal `i`.
func (l *Ledger) Meal(i int) *Meal {
	return l.meals[i]
}

// Value returns attribute `a` of `qty` units of meal `i`.
func (l *Ledger) Value(i int, a Attribute, qty float64) float64 {
	return l.meals[i].Value(a) * qty
}

// Coefficients returns attribute `a` of one unit of every meal, by index.
func (l *Ledger) Coefficients(a Attribute) []float64 {
	out := make([]float64, len(l.meals))
	for i, m := range l.meals {
		out[i] = m.Value(a)
	}
	return out
}

// MaxValue returns the largest attribute `a` of one unit of any meal, or 0 without meals.
func (l *Ledger) MaxValue(a Attribute) float64 {
	var max float64
	for i, c := range l.Coefficients(a) {
		if i == 0 || c > max {
			max = c
		}
	}
	return max
}
