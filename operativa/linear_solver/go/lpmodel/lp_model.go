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

// Package lpmodel offers a user-friendly API to build continuous linear programs.
//
// The `Builder` struct wraps the `Program` representation and provides helper methods for
// adding variables, bounded linear constraints and the objective to the program.
// The `Variable` and `Constraint` structs are references to specific entries of the program.
// The `LinearExpr` struct provides helper methods for creating constraints and the
// objective from expressions with many variables and coefficients.
//
// Only linear programs with continuous variables are supported; the program can be solved
// with the linearsolver package.
package lpmodel

import (
	"errors"
	"fmt"
	"math"

	log "github.com/golang/glog"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrMixedModels holds the error when elements added to a program come from a different
	// builder.
	ErrMixedModels = errors.New("elements are not part of the same model")
	// ErrInvalidProgram holds the error returned when a program fails validation.
	ErrInvalidProgram = errors.New("invalid program")
)

type (
	// VarIndex is the index of a variable in the program.
	VarIndex int32
	// ConstrIndex is the index of a constraint in the program.
	ConstrIndex int32
)

// Sense is the optimization direction of the objective.
type Sense int

const (
	// Minimize asks for the smallest objective value.
	Minimize Sense = iota
	// Maximize asks for the largest objective value.
	Maximize
)

func (s Sense) String() string {
	switch s {
	case Minimize:
		return "MINIMIZE"
	case Maximize:
		return "MAXIMIZE"
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

// VariableDef describes a variable of the program.
type VariableDef struct {
	Name   string
	Bounds Interval
}

// ConstraintDef describes the linear constraint `Bounds.Lower <= sum(Coeffs[k]*x[Vars[k]]) <= Bounds.Upper`.
type ConstraintDef struct {
	Name   string
	Vars   []VarIndex
	Coeffs []float64
	Bounds Interval
}

// ObjectiveDef describes the linear objective `Offset + sum(Coeffs[k]*x[Vars[k]])`.
type ObjectiveDef struct {
	Sense  Sense
	Vars   []VarIndex
	Coeffs []float64
	Offset float64
}

// Program is the canonical representation of a linear program. It is produced by a Builder
// and consumed by the solver.
type Program struct {
	Name        string
	Variables   []*VariableDef
	Constraints []*ConstraintDef
	Objective   ObjectiveDef
}

// NumVariables returns the number of variables in the program.
func (p *Program) NumVariables() int {
	return len(p.Variables)
}

// NumConstraints returns the number of constraints in the program.
func (p *Program) NumConstraints() int {
	return len(p.Constraints)
}

// ObjectiveCoefficients returns the dense objective coefficient vector, one entry per
// variable. Repeated variables in the objective are summed.
func (p *Program) ObjectiveCoefficients() []float64 {
	c := make([]float64, len(p.Variables))
	for k, v := range p.Objective.Vars {
		c[v] += p.Objective.Coeffs[k]
	}
	return c
}

// ObjectiveValue evaluates the objective for the given variable values.
func (p *Program) ObjectiveValue(values []float64) float64 {
	obj := p.Objective.Offset
	for k, v := range p.Objective.Vars {
		obj += p.Objective.Coeffs[k] * values[v]
	}
	return obj
}

// Activity evaluates the left-hand side of constraint `c` for the given variable values.
func (p *Program) Activity(c ConstrIndex, values []float64) float64 {
	ct := p.Constraints[c]
	var act float64
	for k, v := range ct.Vars {
		act += ct.Coeffs[k] * values[v]
	}
	return act
}

// ConstraintMatrix returns the dense constraint matrix of the program, with one row per
// constraint and one column per variable. It returns nil if the program has no
// constraints or no variables.
func (p *Program) ConstraintMatrix() *mat.Dense {
	if len(p.Constraints) == 0 || len(p.Variables) == 0 {
		return nil
	}
	a := mat.NewDense(len(p.Constraints), len(p.Variables), nil)
	for r, ct := range p.Constraints {
		for k, v := range ct.Vars {
			a.Set(r, int(v), a.At(r, int(v))+ct.Coeffs[k])
		}
	}
	return a
}

// Validate checks that all indices refer to existing variables, that coefficient slices have
// matching lengths and that all bounds and coefficients are usable.
func (p *Program) Validate() error {
	if p == nil {
		return fmt.Errorf("nil program: %w", ErrInvalidProgram)
	}
	n := VarIndex(len(p.Variables))
	for i, v := range p.Variables {
		if v == nil {
			return fmt.Errorf("variable %d is nil: %w", i, ErrInvalidProgram)
		}
		if err := v.Bounds.validate(); err != nil {
			return fmt.Errorf("variable %d (%q): %v: %w", i, v.Name, err, ErrInvalidProgram)
		}
	}
	checkTerms := func(what string, vars []VarIndex, coeffs []float64) error {
		if len(vars) != len(coeffs) {
			return fmt.Errorf("%s has %d variables and %d coefficients: %w", what, len(vars), len(coeffs), ErrInvalidProgram)
		}
		for k, v := range vars {
			if v < 0 || v >= n {
				return fmt.Errorf("%s references unknown variable %d: %w", what, v, ErrInvalidProgram)
			}
			if math.IsNaN(coeffs[k]) || math.IsInf(coeffs[k], 0) {
				return fmt.Errorf("%s has non-finite coefficient %v: %w", what, coeffs[k], ErrInvalidProgram)
			}
		}
		return nil
	}
	for i, ct := range p.Constraints {
		if ct == nil {
			return fmt.Errorf("constraint %d is nil: %w", i, ErrInvalidProgram)
		}
		what := fmt.Sprintf("constraint %d (%q)", i, ct.Name)
		if err := checkTerms(what, ct.Vars, ct.Coeffs); err != nil {
			return err
		}
		if err := ct.Bounds.validate(); err != nil {
			return fmt.Errorf("%s: %v: %w", what, err, ErrInvalidProgram)
		}
	}
	if err := checkTerms("objective", p.Objective.Vars, p.Objective.Coeffs); err != nil {
		return err
	}
	if math.IsNaN(p.Objective.Offset) || math.IsInf(p.Objective.Offset, 0) {
		return fmt.Errorf("objective has non-finite offset: %w", ErrInvalidProgram)
	}
	return nil
}

// LinearArgument provides an interface for Variable and LinearExpr.
type LinearArgument interface {
	addToLinearExpr(e *LinearExpr, c float64)
	builder() *Builder
}

// LinearExpr is a container for a linear expression.
type LinearExpr struct {
	varCoeffs []varCoeff
	offset    float64
	cpb       *Builder
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

// Len returns the number of terms in the expression, counting repeated variables once per
// occurrence.
func (l *LinearExpr) Len() int {
	return len(l.varCoeffs)
}

func (l *LinearExpr) addToLinearExpr(e *LinearExpr, c float64) {
	if e.cpb == nil {
		e.cpb = l.cpb
	} else if !e.cpb.checkSameModelAndSetErrorf(l.cpb, "linear expression mixes variables of two builders") {
		return
	}
	for _, vc := range l.varCoeffs {
		e.varCoeffs = append(e.varCoeffs, varCoeff{ind: vc.ind, coeff: vc.coeff * c})
	}
	e.offset += l.offset * c
}

func (l *LinearExpr) builder() *Builder {
	return l.cpb
}

// terms returns the expression with repeated variables merged and zero coefficients
// dropped, keeping the order of first appearance.
func (l *LinearExpr) terms() ([]VarIndex, []float64) {
	pos := make(map[VarIndex]int, len(l.varCoeffs))
	var vars []VarIndex
	var coeffs []float64
	for _, vc := range l.varCoeffs {
		if k, ok := pos[vc.ind]; ok {
			coeffs[k] += vc.coeff
			continue
		}
		pos[vc.ind] = len(vars)
		vars = append(vars, vc.ind)
		coeffs = append(coeffs, vc.coeff)
	}
	outV, outC := vars[:0], coeffs[:0]
	for k, c := range coeffs {
		if c != 0 {
			outV = append(outV, vars[k])
			outC = append(outC, c)
		}
	}
	return outV, outC
}

// Variable is a reference to a continuous variable in the program.
type Variable struct {
	ind VarIndex
	cpb *Builder
}

// Name returns the name of the variable.
func (v Variable) Name() string {
	return v.cpb.prog.Variables[v.ind].Name
}

// Bounds returns the bounds of the variable.
func (v Variable) Bounds() Interval {
	return v.cpb.prog.Variables[v.ind].Bounds
}

// Index returns the index of the variable.
func (v Variable) Index() VarIndex {
	return v.ind
}

// WithName sets the name of the variable.
func (v Variable) WithName(s string) Variable {
	v.cpb.prog.Variables[v.ind].Name = s
	return v
}

func (v Variable) addToLinearExpr(e *LinearExpr, c float64) {
	if e.cpb == nil {
		e.cpb = v.cpb
	} else if e.cpb != v.cpb {
		e.cpb.checkSameModelAndSetErrorf(v.cpb, "invalid variable %v added to a linear expression", v.Index())
		return
	}
	e.varCoeffs = append(e.varCoeffs, varCoeff{ind: v.ind, coeff: c})
}

func (v Variable) builder() *Builder {
	return v.cpb
}

// Constraint is a reference to a constraint in the program.
type Constraint struct {
	ind ConstrIndex
	cpb *Builder
}

// WithName sets the name of the constraint.
func (c Constraint) WithName(s string) Constraint {
	c.cpb.prog.Constraints[c.ind].Name = s
	return c
}

// Name returns the name of the constraint.
func (c Constraint) Name() string {
	return c.cpb.prog.Constraints[c.ind].Name
}

// Bounds returns the bounds enforced on the constraint's linear expression.
func (c Constraint) Bounds() Interval {
	return c.cpb.prog.Constraints[c.ind].Bounds
}

// Index returns the index of the constraint.
func (c Constraint) Index() ConstrIndex {
	return c.ind
}

// checkSameModelAndSetErrorf returns true if `cp` and `cp2` point to the same Builder.
// If false, an error with the error message `errString` is set on `cp` if `cp.err`
// is nil.
func (cp *Builder) checkSameModelAndSetErrorf(cp2 *Builder, format string, a ...any) bool {
	if cp == cp2 || cp2 == nil {
		return true
	}
	var args = make([]any, len(a)+1)
	copy(args, a)
	args[len(a)] = ErrMixedModels
	err := fmt.Errorf(format+": %w", args...)
	log.Errorf("%v; use `-log_backtrace_at` flag to get the error stack", err)
	if cp.err == nil {
		cp.err = err
	}
	return false
}

// setErrorf records the first error found while building the program.
func (cp *Builder) setErrorf(format string, a ...any) {
	err := fmt.Errorf(format, a...)
	log.Errorf("%v", err)
	if cp.err == nil {
		cp.err = err
	}
}

// Builder provides a wrapper for building a Program.
type Builder struct {
	prog *Program
	// The first and only the first error is reported in Program.
	err error
}

// NewBuilder creates and returns a new Builder for a program named `name`. The name is purely
// informational.
func NewBuilder(name string) *Builder {
	return &Builder{prog: &Program{Name: name}}
}

// NewVariable creates a new continuous variable with bounds `[lb,ub]`. Infinite bounds are
// allowed.
func (cp *Builder) NewVariable(lb, ub float64) Variable {
	return cp.NewVariableFromInterval(NewInterval(lb, ub))
}

// NewVariableFromInterval creates a new continuous variable bounded by the interval.
func (cp *Builder) NewVariableFromInterval(bounds Interval) Variable {
	v := Variable{cpb: cp, ind: VarIndex(len(cp.prog.Variables))}
	if err := bounds.validate(); err != nil {
		cp.setErrorf("variable %d: %v", v.ind, err)
	}
	cp.prog.Variables = append(cp.prog.Variables, &VariableDef{Bounds: bounds})
	return v
}

// NumVariables returns the number of variables created so far.
func (cp *Builder) NumVariables() int {
	return len(cp.prog.Variables)
}

// NumConstraints returns the number of constraints created so far.
func (cp *Builder) NumConstraints() int {
	return len(cp.prog.Constraints)
}

// addLinearConstraint adds a linear constraint that enforces the value of `le` to lie in
// `bounds`. The constant offset of `le` is subtracted from the bounds.
func (cp *Builder) addLinearConstraint(le *LinearExpr, bounds Interval) Constraint {
	if !cp.checkSameModelAndSetErrorf(le.cpb, "invalid linear expression added to constraint %v", len(cp.prog.Constraints)) {
		le = NewConstant(le.offset)
	}
	vars, coeffs := le.terms()
	bounds = bounds.Offset(-le.offset)
	if err := bounds.validate(); err != nil {
		cp.setErrorf("constraint %d: %v", len(cp.prog.Constraints), err)
	}
	cp.prog.Constraints = append(cp.prog.Constraints, &ConstraintDef{
		Vars: vars, Coeffs: coeffs, Bounds: bounds,
	})
	return Constraint{ind: ConstrIndex(len(cp.prog.Constraints) - 1), cpb: cp}
}

// AddLinearConstraintForInterval adds the linear constraint `expr` in `bounds`.
func (cp *Builder) AddLinearConstraintForInterval(expr LinearArgument, bounds Interval) Constraint {
	linExpr := NewLinearExpr().Add(expr)
	return cp.addLinearConstraint(linExpr, bounds)
}

// AddLinearConstraint adds the linear constraint `lb <= expr <= ub`.
func (cp *Builder) AddLinearConstraint(expr LinearArgument, lb, ub float64) Constraint {
	return cp.AddLinearConstraintForInterval(expr, NewInterval(lb, ub))
}

// AddEquality adds the linear constraint `lhs == rhs`.
func (cp *Builder) AddEquality(lhs LinearArgument, rhs LinearArgument) Constraint {
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)

	return cp.addLinearConstraint(diff, Exactly(0))
}

// AddLessOrEqual adds the linear constraint `lhs <= rhs`.
func (cp *Builder) AddLessOrEqual(lhs LinearArgument, rhs LinearArgument) Constraint {
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)

	return cp.addLinearConstraint(diff, AtMost(0))
}

// AddGreaterOrEqual adds the linear constraint `lhs >= rhs`.
func (cp *Builder) AddGreaterOrEqual(lhs LinearArgument, rhs LinearArgument) Constraint {
	diff := NewLinearExpr().Add(lhs).AddTerm(rhs, -1)

	return cp.addLinearConstraint(diff, AtLeast(0))
}

func (cp *Builder) setObjective(obj LinearArgument, sense Sense) {
	o := NewLinearExpr().Add(obj)
	if !cp.checkSameModelAndSetErrorf(o.cpb, "invalid objective") {
		return
	}
	vars, coeffs := o.terms()
	cp.prog.Objective = ObjectiveDef{Sense: sense, Vars: vars, Coeffs: coeffs, Offset: o.offset}
}

// Minimize sets a linear minimization objective.
func (cp *Builder) Minimize(obj LinearArgument) {
	cp.setObjective(obj, Minimize)
}

// Maximize sets a linear maximization objective.
func (cp *Builder) Maximize(obj LinearArgument) {
	cp.setObjective(obj, Maximize)
}

// Program returns the built program. The program returned is a pointer to the program in
// Builder, and if modified, future calls to the Builder API can result in an invalid program.
//
// Program returns an error when invalid parameters have been used during building (e.g.
// passing variables from other builders or empty bounds).
func (cp *Builder) Program() (*Program, error) {
	if cp.err != nil {
		return nil, cp.err
	}
	return cp.prog, nil
}
