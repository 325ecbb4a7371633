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

// Package mpmodel offers a user-friendly API to build mixed-integer linear models and to
// hand them to an external MILP engine.
//
// The `Builder` struct owns the model and provides helper methods for adding variables,
// linear constraints and a linear objective to it.
// The `Var` and `Constraint` structs are references to specific elements of the model.
// The `LinearExpr` struct provides helper methods for creating constraints and the
// objective from expressions with many variables and real coefficients.
// The `Engine` interface is the contract with the solver; `CBCEngine` implements it on
// top of the COIN-OR CBC command line program.
package mpmodel

import (
	"errors"
	"fmt"
	"math"

	log "github.com/golang/glog"
)

var (
	// ErrMixedModels holds the error when elements added to a model are different.
	ErrMixedModels = errors.New("elements are not part of the same model")
	// ErrDuplicateName holds the error when two variables or two constraints share a name.
	ErrDuplicateName = errors.New("name already exists in the model")
	// ErrInvalidCoefficient holds the error when a coefficient or a bound is NaN.
	ErrInvalidCoefficient = errors.New("coefficient is not a number")
	// ErrEmptyBounds holds the error when a variable or a constraint has an empty interval.
	ErrEmptyBounds = errors.New("bounds are empty")
)

type (
	// VarIndex is the index of a variable in the model.
	VarIndex int32
	// ConstrIndex is the index of a constraint in the model.
	ConstrIndex int32
)

// LinearArgument provides an interface for Var and LinearExpr.
type LinearArgument interface {
	addToLinearExpr(e *LinearExpr, c float64)
	evaluate(values []float64) float64
}

// LinearExpr is a container for a linear expression.
type LinearExpr struct {
	varCoeffs []varCoeff
	offset    float64
	// mb is the builder owning the variables of the expression, nil while it holds no
	// variable. mixed is set once variables of two builders have been added.
	mb    *Builder
	mixed bool
}

type varCoeff struct {
	ind   VarIndex
	coeff float64
}

// NewLinearExpr creates a new empty LinearExpr.
func NewLinearExpr() *LinearExpr {
	return &LinearExpr{}
}

// NewConstant creates and returns a LinearExpr containing the constant `c`.
func NewConstant(c float64) *LinearExpr {
	return &LinearExpr{offset: c}
}

// Add adds the linear argument term to the LinearExpr and returns itself.
func (l *LinearExpr) Add(la LinearArgument) *LinearExpr {
	l.AddTerm(la, 1)
	return l
}

// AddConstant adds the constant to the LinearExpr and returns itself.
func (l *LinearExpr) AddConstant(c float64) *LinearExpr {
	l.offset += c
	return l
}

// AddTerm adds the linear argument term with the given coefficient to the LinearExpr and returns itself.
func (l *LinearExpr) AddTerm(la LinearArgument, coeff float64) *LinearExpr {
	la.addToLinearExpr(l, coeff)
	return l
}

// AddSum adds the sum of the linear arguments to the LinearExpr and returns itself.
func (l *LinearExpr) AddSum(las ...LinearArgument) *LinearExpr {
	for _, la := range las {
		l.Add(la)
	}
	return l
}

// AddWeightedSum adds the linear arguments with the corresponding coefficients to the LinearExpr
// and returns itself.
func (l *LinearExpr) AddWeightedSum(las []LinearArgument, coeffs []float64) *LinearExpr {
	if len(coeffs) != len(las) {
		log.Fatalf("las and coeffs must be the same length: %v != %v", len(las), len(coeffs))
	}
	for i, la := range las {
		l.AddTerm(la, coeffs[i])
	}
	return l
}

// Offset returns the constant part of the expression.
func (l *LinearExpr) Offset() float64 {
	return l.offset
}

// NumTerms returns the number of (not merged) variable terms of the expression.
func (l *LinearExpr) NumTerms() int {
	return len(l.varCoeffs)
}

func (l *LinearExpr) attach(mb *Builder) {
	if mb == nil {
		return
	}
	if l.mb == nil {
		l.mb = mb
		return
	}
	if l.mb != mb {
		l.mixed = true
	}
}

func (l *LinearExpr) addToLinearExpr(e *LinearExpr, c float64) {
	for _, vc := range l.varCoeffs {
		e.varCoeffs = append(e.varCoeffs, varCoeff{ind: vc.ind, coeff: vc.coeff * c})
	}
	e.offset += l.offset * c
	e.attach(l.mb)
	if l.mixed {
		e.mixed = true
	}
}

func (l *LinearExpr) evaluate(values []float64) float64 {
	result := l.offset
	for _, vc := range l.varCoeffs {
		result += values[vc.ind] * vc.coeff
	}
	return result
}

// merged returns the terms of the expression with one entry per variable, in order of first
// appearance, dropping the variables whose coefficients cancel out.
func (l *LinearExpr) merged() ([]VarIndex, []float64) {
	pos := make(map[VarIndex]int, len(l.varCoeffs))
	var vars []VarIndex
	var coeffs []float64
	for _, vc := range l.varCoeffs {
		if p, ok := pos[vc.ind]; ok {
			coeffs[p] += vc.coeff
			continue
		}
		pos[vc.ind] = len(vars)
		vars = append(vars, vc.ind)
		coeffs = append(coeffs, vc.coeff)
	}
	outVars := vars[:0]
	outCoeffs := coeffs[:0]
	for i, c := range coeffs {
		if c == 0 {
			continue
		}
		outVars = append(outVars, vars[i])
		outCoeffs = append(outCoeffs, c)
	}
	return outVars, outCoeffs
}

// Var is a reference to a continuous, integer or Boolean variable in the model.
type Var struct {
	ind VarIndex
	mb  *Builder
}

// Name returns the name of the variable.
func (v Var) Name() string {
	return v.mb.model.Variables[v.ind].Name
}

// Index returns the index of the variable.
func (v Var) Index() VarIndex {
	return v.ind
}

// Bounds returns the interval the variable is restricted to.
func (v Var) Bounds() Interval {
	return v.mb.model.Variables[v.ind].Bounds
}

// IsInteger reports whether the variable is restricted to integer values.
func (v Var) IsInteger() bool {
	return v.mb.model.Variables[v.ind].Integer
}

// WithName sets the name of the variable. Names must be unique in the model, a duplicate is
// reported by Model().
func (v Var) WithName(s string) Var {
	mb := v.mb
	if other, ok := mb.varNames[s]; ok && other != v.ind {
		mb.setErrorf(ErrDuplicateName, "variable name %q used by variables %v and %v", s, other, v.ind)
		return v
	}
	if old := mb.model.Variables[v.ind].Name; old != "" {
		delete(mb.varNames, old)
	}
	mb.model.Variables[v.ind].Name = s
	if s != "" {
		mb.varNames[s] = v.ind
	}
	return v
}

func (v Var) addToLinearExpr(e *LinearExpr, c float64) {
	e.varCoeffs = append(e.varCoeffs, varCoeff{ind: v.ind, coeff: c})
	e.attach(v.mb)
}

func (v Var) evaluate(values []float64) float64 {
	return values[v.ind]
}

// Constraint is a reference to a linear constraint in the model.
type Constraint struct {
	ind ConstrIndex
	mb  *Builder
}

// WithName sets the name of the constraint. Names must be unique in the model, a duplicate is
// reported by Model().
func (c Constraint) WithName(s string) Constraint {
	mb := c.mb
	if other, ok := mb.ctNames[s]; ok && other != c.ind {
		mb.setErrorf(ErrDuplicateName, "constraint name %q used by constraints %v and %v", s, other, c.ind)
		return c
	}
	if old := mb.model.Constraints[c.ind].Name; old != "" {
		delete(mb.ctNames, old)
	}
	mb.model.Constraints[c.ind].Name = s
	if s != "" {
		mb.ctNames[s] = c.ind
	}
	return c
}

// Name returns the name of the constraint.
func (c Constraint) Name() string {
	return c.mb.model.Constraints[c.ind].Name
}

// Index returns the index of the constraint.
func (c Constraint) Index() ConstrIndex {
	return c.ind
}

// Bounds returns the interval the activity of the constraint is restricted to.
func (c Constraint) Bounds() Interval {
	return c.mb.model.Constraints[c.ind].Bounds
}

// Builder provides a wrapper for building a Model.
type Builder struct {
	model    *Model
	varNames map[string]VarIndex
	ctNames  map[string]ConstrIndex
	// The first and only the first error is reported in Model.
	err error
}

// NewModelBuilder creates and returns a new Builder for a model named `name`.
func NewModelBuilder(name string) *Builder {
	return &Builder{
		model:    &Model{Name: name, Objective: &Objective{}},
		varNames: make(map[string]VarIndex),
		ctNames:  make(map[string]ConstrIndex),
	}
}

// setErrorf records the first error raised while building and logs every one of them.
func (mb *Builder) setErrorf(sentinel error, format string, a ...any) {
	args := make([]any, len(a)+1)
	copy(args, a)
	args[len(a)] = sentinel
	err := fmt.Errorf(format+": %w", args...)
	log.Errorf("%v; use `-log_backtrace_at` flag to get the error stack", err)
	if mb.err == nil {
		mb.err = err
	}
}

func (mb *Builder) newVar(lb, ub float64, integer bool) Var {
	v := Var{ind: VarIndex(len(mb.model.Variables)), mb: mb}
	bounds := NewInterval(lb, ub)
	if bounds.IsEmpty() {
		mb.setErrorf(ErrEmptyBounds, "variable %v has bounds %v", v.ind, bounds)
	}
	mb.model.Variables = append(mb.model.Variables, &Variable{Bounds: bounds, Integer: integer})
	return v
}

// NewNumVar creates a new continuous variable in `[lb,ub]`.
func (mb *Builder) NewNumVar(lb, ub float64) Var {
	return mb.newVar(lb, ub, false)
}

// NewIntVar creates a new integer variable in `[lb,ub]`.
func (mb *Builder) NewIntVar(lb, ub float64) Var {
	return mb.newVar(lb, ub, true)
}

// NewBoolVar creates a new binary variable.
func (mb *Builder) NewBoolVar() Var {
	return mb.newVar(0, 1, true)
}

// NumVariables returns the number of variables created so far.
func (mb *Builder) NumVariables() int {
	return len(mb.model.Variables)
}

// NumConstraints returns the number of constraints created so far.
func (mb *Builder) NumConstraints() int {
	return len(mb.model.Constraints)
}

// checkExpr returns false and records an error if the expression holds variables of another
// builder or invalid coefficients.
func (mb *Builder) checkExpr(le *LinearExpr, what string) bool {
	if le.mixed || (le.mb != nil && le.mb != mb) {
		mb.setErrorf(ErrMixedModels, "invalid expression added as %v", what)
		return false
	}
	if math.IsNaN(le.offset) || math.IsInf(le.offset, 0) {
		mb.setErrorf(ErrInvalidCoefficient, "offset %v of %v", le.offset, what)
		return false
	}
	for _, vc := range le.varCoeffs {
		if math.IsNaN(vc.coeff) || math.IsInf(vc.coeff, 0) {
			mb.setErrorf(ErrInvalidCoefficient, "coefficient %v of variable %v in %v", vc.coeff, vc.ind, what)
			return false
		}
	}
	return true
}

// addLinearConstraint adds a linear constraint that enforces the value of `le` to be in
// `bounds`. The constant offset of `le` is subtracted from the bounds.
func (mb *Builder) addLinearConstraint(le *LinearExpr, bounds Interval) Constraint {
	ct := Constraint{ind: ConstrIndex(len(mb.model.Constraints)), mb: mb}
	what := fmt.Sprintf("constraint %v", ct.ind)
	if bounds.IsEmpty() {
		mb.setErrorf(ErrEmptyBounds, "%v has bounds %v", what, bounds)
	}
	var vars []VarIndex
	var coeffs []float64
	if mb.checkExpr(le, what) {
		vars, coeffs = le.merged()
		bounds = bounds.Offset(-le.offset)
	}
	mb.model.Constraints = append(mb.model.Constraints, &LinearConstraint{
		Vars: vars, Coeffs: coeffs, Bounds: bounds,
	})
	return ct
}

// AddLinearConstraint adds the linear constraint `lb <= expr <= ub`.
func (mb *Builder) AddLinearConstraint(expr LinearArgument, lb, ub float64) Constraint {
	return mb.addLinearConstraint(NewLinearExpr().Add(expr), NewInterval(lb, ub))
}

// AddEquality adds the linear constraint `lhs == rhs`.
func (mb *Builder) AddEquality(lhs, rhs LinearArgument) Constraint {
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)
	return mb.addLinearConstraint(diff, Fixed(0))
}

// AddLessOrEqual adds the linear constraint `lhs <= rhs`.
func (mb *Builder) AddLessOrEqual(lhs, rhs LinearArgument) Constraint {
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)
	return mb.addLinearConstraint(diff, NewInterval(math.Inf(-1), 0))
}

// AddGreaterOrEqual adds the linear constraint `lhs >= rhs`.
func (mb *Builder) AddGreaterOrEqual(lhs, rhs LinearArgument) Constraint {
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)
	return mb.addLinearConstraint(diff, NewInterval(0, math.Inf(1)))
}

func (mb *Builder) setObjective(obj LinearArgument, maximize bool) {
	o := NewLinearExpr().Add(obj)
	if !mb.checkExpr(o, "objective") {
		return
	}
	vars, coeffs := o.merged()
	mb.model.Objective = &Objective{Vars: vars, Coeffs: coeffs, Offset: o.offset, Maximize: maximize}
}

// Minimize sets a linear minimization objective.
func (mb *Builder) Minimize(obj LinearArgument) {
	mb.setObjective(obj, false)
}

// Maximize sets a linear maximization objective.
func (mb *Builder) Maximize(obj LinearArgument) {
	mb.setObjective(obj, true)
}

// Model returns the built model. The model returned is a pointer to the model in Builder, and
// if modified, future calls to the Builder API can fail or result in an invalid model.
//
// Model returns an error when invalid parameters have been used during model building (e.g.
// passing variables from other builders or reusing names).
func (mb *Builder) Model() (*Model, error) {
	if mb.err != nil {
		return nil, mb.err
	}
	return mb.model, nil
}

// Variable is a column of the model.
type Variable struct {
	Name    string
	Bounds  Interval
	Integer bool
}

// IsBinary reports whether the variable is an integer restricted to {0,1}.
func (v *Variable) IsBinary() bool {
	return v.Integer && v.Bounds.Lower == 0 && v.Bounds.Upper == 1
}

// LinearConstraint is a row `Bounds.Lower <= sum(Coeffs[k] * x[Vars[k]]) <= Bounds.Upper`.
type LinearConstraint struct {
	Name   string
	Vars   []VarIndex
	Coeffs []float64
	Bounds Interval
}

// Activity returns the value of the row for the given variable values.
func (c *LinearConstraint) Activity(values []float64) float64 {
	var sum float64
	for k, ind := range c.Vars {
		sum += c.Coeffs[k] * values[ind]
	}
	return sum
}

// magnitude returns the sum of the absolute values of the terms of the row.
func (c *LinearConstraint) magnitude(values []float64) float64 {
	var sum float64
	for k, ind := range c.Vars {
		sum += math.Abs(c.Coeffs[k] * values[ind])
	}
	return sum
}

// Objective is the linear objective of the model.
type Objective struct {
	Vars     []VarIndex
	Coeffs   []float64
	Offset   float64
	Maximize bool
}

// Value returns the objective value for the given variable values.
func (o *Objective) Value(values []float64) float64 {
	result := o.Offset
	for k, ind := range o.Vars {
		result += o.Coeffs[k] * values[ind]
	}
	return result
}

// Model is a mixed-integer linear model: columns, rows and one objective.
type Model struct {
	Name        string
	Variables   []*Variable
	Constraints []*LinearConstraint
	Objective   *Objective
}

// NumVariables returns the number of columns of the model.
func (m *Model) NumVariables() int {
	return len(m.Variables)
}

// NumConstraints returns the number of rows of the model.
func (m *Model) NumConstraints() int {
	return len(m.Constraints)
}

// NumIntegers returns the number of integer columns of the model.
func (m *Model) NumIntegers() int {
	n := 0
	for _, v := range m.Variables {
		if v.Integer {
			n++
		}
	}
	return n
}

// LookupVar returns the index of the variable with the given name, and false if not found.
func (m *Model) LookupVar(name string) (VarIndex, bool) {
	for i, v := range m.Variables {
		if v.Name == name {
			return VarIndex(i), true
		}
	}
	return 0, false
}
