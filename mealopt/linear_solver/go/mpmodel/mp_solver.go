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
	"fmt"
	"time"

	log "github.com/golang/glog"
)

// Status is the result status of a solve.
type Status int

// Possible values of a Status.
const (
	StatusUnknown Status = iota
	// StatusOptimal means a proven optimal solution was found.
	StatusOptimal
	// StatusFeasible means a solution was found but the engine stopped, usually on its time
	// limit, before proving optimality.
	StatusFeasible
	StatusInfeasible
	StatusUnbounded
	// StatusNotSolved means the engine stopped before finding any solution.
	StatusNotSolved
	StatusModelInvalid
	StatusAbnormal
)

var statusNames = map[Status]string{
	StatusUnknown:      "UNKNOWN",
	StatusOptimal:      "OPTIMAL",
	StatusFeasible:     "FEASIBLE",
	StatusInfeasible:   "INFEASIBLE",
	StatusUnbounded:    "UNBOUNDED",
	StatusNotSolved:    "NOT_SOLVED",
	StatusModelInvalid: "MODEL_INVALID",
	StatusAbnormal:     "ABNORMAL",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// HasSolution reports whether a response with this status carries variable values.
func (s Status) HasSolution() bool {
	return s == StatusOptimal || s == StatusFeasible
}

// DefaultTimeLimit is the wall-clock limit used by NewParameters.
const DefaultTimeLimit = 10 * time.Second

// Parameters groups the engine options of one solve.
type Parameters struct {
	// TimeLimit is the wall-clock deadline of the search. Zero means no limit. Reaching it is
	// not an error: the best solution found so far is returned with StatusFeasible.
	TimeLimit time.Duration
	// RelativeGap stops the search once the relative MIP gap falls below it. Zero keeps the
	// engine default.
	RelativeGap float64
	// Threads is the number of search threads. Zero keeps the engine default.
	Threads int
	// LogOutput forwards the engine log to the INFO log.
	LogOutput bool
}

// NewParameters returns the default Parameters.
func NewParameters() *Parameters {
	return &Parameters{TimeLimit: DefaultTimeLimit}
}

// Response is the result of a solve.
type Response struct {
	Status Status
	// ObjectiveValue is the objective of the returned solution, offset included.
	ObjectiveValue float64
	// Values holds one value per variable of the model, indexed by VarIndex. It is empty
	// unless Status.HasSolution().
	Values     []float64
	WallTime   time.Duration
	Iterations int64
}

// Engine is an external MILP solver.
type Engine interface {
	// Solve solves the model and returns its response. An infeasible or unbounded model is
	// reported through Response.Status, not as an error.
	Solve(ctx context.Context, m *Model, params *Parameters) (*Response, error)
}

// SolveModel solves a model with the given engine and the default parameters.
func SolveModel(ctx context.Context, e Engine, m *Model) (*Response, error) {
	return SolveModelWithParameters(ctx, e, m, NewParameters())
}

// SolveModelWithParameters solves a model with the given engine and parameters, and checks
// that the response matches the model.
func SolveModelWithParameters(ctx context.Context, e Engine, m *Model, params *Parameters) (*Response, error) {
	if m == nil {
		return nil, errors.New("cannot solve a nil model")
	}
	if params == nil {
		params = NewParameters()
	}
	log.V(1).Infof("Solving model %q: %d variables (%d integer), %d constraints, time limit %v",
		m.Name, m.NumVariables(), m.NumIntegers(), m.NumConstraints(), params.TimeLimit)
	res, err := e.Solve(ctx, m, params)
	if err != nil {
		return nil, fmt.Errorf("solving model %q failed: %w", m.Name, err)
	}
	if res.Status.HasSolution() && len(res.Values) != m.NumVariables() {
		return nil, fmt.Errorf("engine returned %d values for %d variables", len(res.Values), m.NumVariables())
	}
	log.V(1).Infof("Model %q: status %v, objective %v, %v, %d iterations",
		m.Name, res.Status, res.ObjectiveValue, res.WallTime, res.Iterations)
	return res, nil
}

// SolutionValue returns the value of LinearArgument `la` in the response.
func SolutionValue(r *Response, la LinearArgument) float64 {
	return la.evaluate(r.Values)
}

// SolutionBooleanValue returns the value of the binary variable `v` in the response, rounding
// the engine value at 0.5.
func SolutionBooleanValue(r *Response, v Var) bool {
	return v.evaluate(r.Values) > 0.5
}
