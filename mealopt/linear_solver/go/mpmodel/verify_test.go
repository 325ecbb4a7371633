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
	"math"
	"testing"
)

// linkModel returns `eps*z <= x <= 20*z`, `x + y >= 2.2` with x integer and z binary.
func linkModel(t *testing.T) *Model {
	t.Helper()
	model := NewModelBuilder("link")
	x := model.NewIntVar(0, math.Inf(1)).WithName("x")
	y := model.NewNumVar(0, 1).WithName("y")
	z := model.NewBoolVar().WithName("z")
	model.AddLessOrEqual(NewLinearExpr().AddTerm(z, 1e-3), x).WithName("lower_link")
	model.AddLessOrEqual(x, NewLinearExpr().AddTerm(z, 20)).WithName("upper_link")
	model.AddGreaterOrEqual(NewLinearExpr().AddSum(x, y), NewConstant(2.2)).WithName("demand")
	m, err := model.Model()
	if err != nil {
		t.Fatalf("Model() returned with unexpected error %v", err)
	}
	return m
}

func TestModel_Verify(t *testing.T) {
	testCases := []struct {
		name    string
		values  []float64
		wantErr bool
	}{
		{
			name:   "Feasible",
			values: []float64{2, 0.2, 1},
		},
		{
			name:   "PrintedDigitsAreTolerated",
			values: []float64{2.0000000004, 0.19999999, 0.99999999},
		},
		{
			name:    "WrongLength",
			values:  []float64{2, 0.2},
			wantErr: true,
		},
		{
			name:    "BoundViolated",
			values:  []float64{3, 1.5, 1},
			wantErr: true,
		},
		{
			name:    "NotIntegral",
			values:  []float64{2.5, 0, 1},
			wantErr: true,
		},
		{
			name:    "IndicatorOffWithQuantity",
			values:  []float64{3, 0, 0},
			wantErr: true,
		},
		{
			name:    "RowViolated",
			values:  []float64{2, 0.1, 1},
			wantErr: true,
		},
		{
			name:    "NaN",
			values:  []float64{math.NaN(), 0.2, 1},
			wantErr: true,
		},
	}

	m := linkModel(t)
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			err := m.Verify(test.values, DefaultVerifyTolerance)
			if gotErr := err != nil; gotErr != test.wantErr {
				t.Fatalf("Verify(%v) = %v, want error: %v", test.values, err, test.wantErr)
			}
			if err != nil && !errors.Is(err, ErrViolation) {
				t.Errorf("Verify(%v) = %v, want an error wrapping ErrViolation", test.values, err)
			}
		})
	}
}
