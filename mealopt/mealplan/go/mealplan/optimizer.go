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

// Package mealplan plans meals over several days with a goal programming model.
//
// For every meal and day the model holds a quantity and a binary indicator linked by big-M
// rows, so that the indicator is 1 iff the quantity is at least Epsilon. The objective adds
// three weighted and normalized terms: the price of the plan, the deviation of every day
// from the dietary bounds, and the spread between the largest and the smallest meal of a
// day in kcal. Every day selects exactly NumMeals meals and usage limits bound the number
// of days a meal is selected.
//
// The model is solved by an `mpmodel.Engine`. An infeasible first attempt is retried once
// with an identical, rebuilt model; an accepted solution always satisfies the model within
// VerifyTolerance.
package mealplan

import (
	"context"
	"errors"
	"fmt"

	log "github.com/golang/glog"
	"github.com/google/uuid"

	"github.com/mealopt/mealopt/mealopt/linear_solver/go/mpmodel"
	"github.com/mealopt/mealopt/mealopt/nutrition/go/nutrition"
)

// SolveState is a state of a planning request.
type SolveState int

// States of a planning request.
const (
	StateBuilt SolveState = iota
	StateSolving
	StateOptimal
	// StateInfeasibleRetried is entered once, when the first attempt is infeasible.
	StateInfeasibleRetried
	StateFailed
)

var stateNames = map[SolveState]string{
	StateBuilt:             "BUILT",
	StateSolving:           "SOLVING",
	StateOptimal:           "OPTIMAL",
	StateInfeasibleRetried: "INFEASIBLE_RETRIED",
	StateFailed:            "FAILED",
}

func (s SolveState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SolveState(%d)", int(s))
}

// Planner plans meals with an engine and fixed options. A Planner holds no state between
// requests.
type Planner struct {
	engine mpmodel.Engine
	params Params
}

// NewPlanner returns a planner solving with `engine`.
func NewPlanner(engine mpmodel.Engine, params Params) (*Planner, error) {
	if engine == nil {
		return nil, errors.New("nil engine")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Planner{engine: engine, params: params}, nil
}

// Params returns the options of the planner.
func (p *Planner) Params() Params {
	return p.params
}

// attempt records the progress of one request.
type attempt struct {
	runID    string
	states   []SolveState
	attempts int
}

func (a *attempt) enter(s SolveState) {
	log.V(2).Infof("Plan %s: %v", a.runID, s)
	a.states = append(a.states, s)
}

// Plan returns the plan of meals[i] on every day that minimizes the weighted objective.
//
// `limits` is either nil or aligned with `meals`. Inputs that cannot describe a plan,
// including usage limits that cannot fill NumDays * NumMeals slots, fail with
// ErrInvalidInput before the engine is called.
func (p *Planner) Plan(ctx context.Context, meals []*nutrition.Meal, dietary Dietary, limits []UsageLimit) (*Plan, error) {
	in, err := newInput(meals, dietary, limits, p.params)
	if err != nil {
		return nil, err
	}
	a := &attempt{runID: uuid.NewString()}
	log.V(1).Infof("Plan %s: %d meals, %d days, %d meals per day", a.runID, len(meals), p.params.NumDays, p.params.NumMeals)

	f, res, err := p.solve(ctx, in, a, true)
	if err != nil {
		log.Warningf("Plan %s failed after %d attempts (%v): %v", a.runID, a.attempts, a.states, err)
		return nil, err
	}
	plan := newPlan(f, res, a)
	log.V(1).Infof("Plan %s: objective %v, total price %v, %v", a.runID, plan.Info.Objective, plan.Info.TotalPrice, plan.Info.WallTime)
	return plan, nil
}

// solve builds a fresh model and solves it. An infeasible first call retries once with an
// identical model.
func (p *Planner) solve(ctx context.Context, in *input, a *attempt, firstCall bool) (*formulation, *mpmodel.Response, error) {
	a.attempts++
	f, err := newFormulation(fmt.Sprintf("meals-%s-%d", a.runID, a.attempts), in)
	if err != nil {
		a.enter(StateFailed)
		return nil, nil, err
	}
	a.enter(StateBuilt)

	a.enter(StateSolving)
	params := &mpmodel.Parameters{TimeLimit: in.params.TimeLimit}
	res, err := mpmodel.SolveModelWithParameters(ctx, p.engine, f.m, params)
	if err != nil {
		a.enter(StateFailed)
		return nil, nil, fmt.Errorf("%w: %w", ErrSolverFailed, err)
	}

	switch {
	case res.Status.HasSolution():
		if err := f.m.Verify(res.Values, in.params.VerifyTolerance); err != nil {
			a.enter(StateFailed)
			return nil, nil, fmt.Errorf("%w: %w", ErrInconsistentSolution, err)
		}
		if res.Status == mpmodel.StatusFeasible {
			log.Warningf("Plan %s: engine stopped before proving optimality", a.runID)
		}
		a.enter(StateOptimal)
		return f, res, nil
	case res.Status == mpmodel.StatusInfeasible && firstCall:
		log.Warningf("Plan %s: engine reported an infeasible model, solving it again", a.runID)
		a.enter(StateInfeasibleRetried)
		return p.solve(ctx, in, a, false)
	case res.Status == mpmodel.StatusInfeasible:
		a.enter(StateFailed)
		return nil, nil, ErrInfeasible
	}
	a.enter(StateFailed)
	return nil, nil, fmt.Errorf("engine status %v: %w", res.Status, ErrSolverFailed)
}
