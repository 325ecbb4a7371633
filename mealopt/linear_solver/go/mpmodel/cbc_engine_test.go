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
	"context"
	"errors"
	"math"
	"os/exec"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParseCBCStatus(t *testing.T) {
	testCases := []struct {
		line string
		want Status
	}{
		{line: "Optimal - objective value 1.20000000", want: StatusOptimal},
		{line: "Infeasible - objective value 0.00000000", want: StatusInfeasible},
		{line: "Integer infeasible - objective value 0.00000000", want: StatusInfeasible},
		{line: "Unbounded - objective value 0.00000000", want: StatusUnbounded},
		{line: "Stopped on time - objective value 3.50000000", want: StatusFeasible},
		{line: "Stopped on time (no integer solution - continuous used) - objective value 1.00000000", want: StatusNotSolved},
		{line: "", want: StatusAbnormal},
	}

	for _, test := range testCases {
		if got := parseCBCStatus(test.line); got != test.want {
			t.Errorf("parseCBCStatus(%q) = %v, want %v", test.line, got, test.want)
		}
	}
}

func TestParseCBCSolution(t *testing.T) {
	testCases := []struct {
		name    string
		sol     string
		numVars int
		want    *Response
		wantErr bool
	}{
		{
			name: "Optimal",
			sol: `Optimal - objective value 1.20000000
      0 V0                     1.2                       0
      2 V2                       1                    -0.5
`,
			numVars: 3,
			want:    &Response{Status: StatusOptimal, Values: []float64{1.2, 0, 1}},
		},
		{
			name: "InfeasibleColumnMarker",
			sol: `Stopped on time - objective value 2.00000000
**    0 V0                   2.001                       0
      1 V1                       3                       0
`,
			numVars: 2,
			want:    &Response{Status: StatusFeasible, Values: []float64{2.001, 3}},
		},
		{
			name:    "NoValuesWithoutSolution",
			sol:     "Infeasible - objective value 0.00000000\n      0 V0 1 0\n",
			numVars: 1,
			want:    &Response{Status: StatusInfeasible},
		},
		{
			name:    "Empty",
			sol:     "",
			wantErr: true,
		},
		{
			name:    "UnknownColumn",
			sol:     "Optimal - objective value 0\n      5 V5 1 0\n",
			numVars: 2,
			wantErr: true,
		},
		{
			name:    "BadValue",
			sol:     "Optimal - objective value 0\n      0 V0 abc 0\n",
			numVars: 1,
			wantErr: true,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got, err := parseCBCSolution([]byte(test.sol), test.numVars)
			if gotErr := err != nil; gotErr != test.wantErr {
				t.Fatalf("parseCBCSolution() = %v, want error: %v", err, test.wantErr)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("parseCBCSolution() returned with unexpected diff (-want+got):\n%s", diff)
			}
		})
	}
}

func TestParseCBCIterations(t *testing.T) {
	output := `Result - Optimal solution found

Objective value:                1.20000000
Enumerated nodes:               0
Total iterations:               17
Time (CPU seconds):             0.01
`
	if got, want := parseCBCIterations(output), int64(17); got != want {
		t.Errorf("parseCBCIterations() = %v, want %v", got, want)
	}
	if got := parseCBCIterations("Welcome to the CBC MILP Solver"); got != 0 {
		t.Errorf("parseCBCIterations() = %v, want 0", got)
	}
}

func TestCBCArguments(t *testing.T) {
	testCases := []struct {
		name   string
		params *Parameters
		want   []string
	}{
		{
			name:   "Defaults",
			params: NewParameters(),
			want: []string{"model.lp", "-sec", "10", "-timeMode", "elapsed",
				"-branch", "-printingOptions", "all", "-solution", "sol.txt"},
		},
		{
			name:   "NoLimit",
			params: &Parameters{},
			want:   []string{"model.lp", "-branch", "-printingOptions", "all", "-solution", "sol.txt"},
		},
		{
			name:   "AllOptions",
			params: &Parameters{TimeLimit: 1500 * time.Millisecond, RelativeGap: 0.01, Threads: 4},
			want: []string{"model.lp", "-sec", "1.5", "-timeMode", "elapsed", "-ratio", "0.01",
				"-threads", "4", "-branch", "-printingOptions", "all", "-solution", "sol.txt"},
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got := cbcArguments("model.lp", "sol.txt", test.params)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("cbcArguments() returned with unexpected diff (-want+got):\n%s", diff)
			}
		})
	}
}

func TestNewCBCEngine_NotFound(t *testing.T) {
	_, err := NewCBCEngine("/nonexistent/mealopt/cbc")
	if !errors.Is(err, ErrEngineNotFound) {
		t.Errorf("NewCBCEngine() = %v, want %v", err, ErrEngineNotFound)
	}
}

func cbcOrSkip(t *testing.T) *CBCEngine {
	t.Helper()
	if _, err := exec.LookPath(DefaultCBCProgram); err != nil {
		t.Skipf("%s is not on PATH", DefaultCBCProgram)
	}
	e, err := NewCBCEngine("")
	if err != nil {
		t.Fatalf("NewCBCEngine() returned with unexpected error %v", err)
	}
	return e
}

func TestCBCEngine_Solve(t *testing.T) {
	e := cbcOrSkip(t)

	model := NewModelBuilder("knapsack")
	x := model.NewIntVar(0, 10).WithName("x")
	y := model.NewNumVar(0, math.Inf(1)).WithName("y")
	b := model.NewBoolVar().WithName("b")
	model.AddGreaterOrEqual(NewLinearExpr().AddSum(x, y), NewConstant(2.5))
	model.AddLessOrEqual(y, NewLinearExpr().AddTerm(b, 0.5))
	model.Minimize(NewLinearExpr().AddTerm(x, 2).AddTerm(y, 1).AddTerm(b, 0.1).AddConstant(1))
	m, err := model.Model()
	if err != nil {
		t.Fatalf("Model() returned with unexpected error %v", err)
	}

	res, err := SolveModel(context.Background(), e, m)
	if err != nil {
		t.Fatalf("SolveModel() returned with unexpected error %v", err)
	}
	if res.Status != StatusOptimal {
		t.Fatalf("SolveModel() status = %v, want %v", res.Status, StatusOptimal)
	}
	// x = 2, y = 0.5, b = 1.
	if got, want := res.ObjectiveValue, 5.6; math.Abs(got-want) > 1e-6 {
		t.Errorf("ObjectiveValue = %v, want %v", got, want)
	}
	if !SolutionBooleanValue(res, b) {
		t.Errorf("SolutionBooleanValue(b) = false, want true")
	}
	if err := m.Verify(res.Values, DefaultVerifyTolerance); err != nil {
		t.Errorf("Verify() returned with unexpected error %v", err)
	}
}

func TestCBCEngine_Infeasible(t *testing.T) {
	e := cbcOrSkip(t)

	model := NewModelBuilder("infeasible")
	x := model.NewIntVar(0, 1).WithName("x")
	model.AddGreaterOrEqual(x, NewConstant(2))
	model.Minimize(x)
	m, err := model.Model()
	if err != nil {
		t.Fatalf("Model() returned with unexpected error %v", err)
	}

	res, err := SolveModel(context.Background(), e, m)
	if err != nil {
		t.Fatalf("SolveModel() returned with unexpected error %v", err)
	}
	if res.Status.HasSolution() {
		t.Errorf("SolveModel() status = %v, want no solution", res.Status)
	}
}
