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

package mpmodel

import (
	"errors"
	"fmt"
	"math"
)

// ErrViolation is returned by Verify when a solution does not satisfy the model.
var ErrViolation = errors.New("solution violates the model")

// DefaultVerifyTolerance is the tolerance used by callers that have no better value.
const DefaultVerifyTolerance = 1e-6

func displayName(name string, kind string, i int) string {
	if name != "" {
		return fmt.Sprintf("%s %q", kind, name)
	}
	return fmt.Sprintf("%s #%d", kind, i)
}

// Verify checks that `values` satisfies the bounds, the integrality and the rows of the model.
//
// Tolerances are relative: a variable may leave its bounds by `tolerance * max(1, |x|)` and a
// row by `tolerance * max(1, sum |coeff * x|, |finite bounds|)`. Engines report values with a
// limited number of digits, so an absolute check would reject valid solutions of rows with
// large coefficients.
func (m *Model) Verify(values []float64, tolerance float64) error {
	if len(values) != len(m.Variables) {
		return fmt.Errorf("got %d values for %d variables: %w", len(values), len(m.Variables), ErrViolation)
	}
	for i, v := range m.Variables {
		x := values[i]
		name := displayName(v.Name, "variable", i)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%s has value %v: %w", name, x, ErrViolation)
		}
		scale := math.Max(1, math.Abs(x))
		if d := v.Bounds.Violation(x); d > tolerance*scale {
			return fmt.Errorf("%s = %v is outside of %v by %g: %w", name, x, v.Bounds, d, ErrViolation)
		}
		if v.Integer {
			if d := math.Abs(x - math.Round(x)); d > tolerance*scale {
				return fmt.Errorf("%s = %v is not integral: %w", name, x, ErrViolation)
			}
		}
	}
	for i, c := range m.Constraints {
		activity := c.Activity(values)
		scale := math.Max(1, c.magnitude(values))
		if c.Bounds.HasLower() {
			scale = math.Max(scale, math.Abs(c.Bounds.Lower))
		}
		if c.Bounds.HasUpper() {
			scale = math.Max(scale, math.Abs(c.Bounds.Upper))
		}
		if d := c.Bounds.Violation(activity); d > tolerance*scale {
			return fmt.Errorf("%s has activity %v outside of %v by %g: %w",
				displayName(c.Name, "constraint", i), activity, c.Bounds, d, ErrViolation)
		}
	}
	return nil
}
