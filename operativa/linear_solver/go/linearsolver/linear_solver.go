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

// Package linearsolver solves the continuous linear programs built with the lpmodel package.
//
// Programs with the structure of a transportation problem (all-ones capacity rows `<= S`,
// all-ones requirement rows `>= D`, every variable non-negative and in exactly one row of
// each kind) are solved with a transportation simplex working directly on the bipartite
// tableau. Any other program is converted to standard form and solved with a dense simplex.
//
// Solve outcomes such as infeasibility are reported through Solution.Status; an error is only
// returned when the program itself is malformed.
package linearsolver

import (
	"context"
	"fmt"

	log "github.com/golang/glog"
	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/linear_solver/go/lpmodel"
)

// Status is the outcome of a solve.
type Status int

const (
	// NotSolved means the solver stopped before proving optimality, infeasibility or
	// unboundedness (iteration limit, cancellation or a numerical failure).
	NotSolved Status = iota
	// Optimal means Solution holds an optimal assignment.
	Optimal
	// Infeasible means no assignment satisfies all constraints.
	Infeasible
	// Unbounded means the objective can be improved without limit.
	Unbounded
)

func (s Status) String() string {
	switch s {
	case NotSolved:
		return "Not Solved"
	case Optimal:
		return "Optimal"
	case Infeasible:
		return "Infeasible"
	case Unbounded:
		return "Unbounded"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Method selects the algorithm used by the solver.
type Method int

const (
	// MethodAuto uses the transportation simplex when the program has a transportation
	// structure and the dense simplex otherwise.
	MethodAuto Method = iota
	// MethodTransportation forces the transportation simplex. Solving a program without a
	// transportation structure with this method is an error.
	MethodTransportation
	// MethodDenseSimplex forces the dense simplex.
	MethodDenseSimplex
)

func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "AUTO"
	case MethodTransportation:
		return "TRANSPORTATION_SIMPLEX"
	case MethodDenseSimplex:
		return "DENSE_SIMPLEX"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Heuristic selects how the transportation simplex builds its initial basic feasible
// solution.
type Heuristic int

const (
	// MinimumCost repeatedly allocates on the cheapest remaining cell.
	MinimumCost Heuristic = iota
	// NorthwestCorner allocates from the top-left cell of the remaining tableau.
	NorthwestCorner
)

func (h Heuristic) String() string {
	switch h {
	case MinimumCost:
		return "MINIMUM_COST"
	case NorthwestCorner:
		return "NORTHWEST_CORNER"
	default:
		return fmt.Sprintf("Heuristic(%d)", int(h))
	}
}

const (
	defaultMaxIterations        = 50000
	defaultDegeneratePivotLimit = 50
	defaultTolerance            = 1e-9
)

// Parameters tunes a solve. Zero fields take their default value, so a zero Parameters is
// equivalent to DefaultParameters().
type Parameters struct {
	// Method selects the algorithm. Defaults to MethodAuto.
	Method Method
	// InitialHeuristic selects the starting basis of the transportation simplex. Defaults to
	// MinimumCost.
	InitialHeuristic Heuristic
	// MaxIterations caps the number of simplex pivots of the transportation simplex. When
	// reached the solve stops with NotSolved. Defaults to 50000.
	MaxIterations int
	// DegeneratePivotLimit is the number of consecutive degenerate pivots after which the
	// transportation simplex switches from the most-negative reduced cost rule to Bland's
	// rule, until the next non-degenerate pivot. Defaults to 50.
	DegeneratePivotLimit int
	// Tolerance is the numerical tolerance on reduced costs and feasibility, relative to the
	// magnitude of the data. Defaults to 1e-9.
	Tolerance float64
}

// DefaultParameters returns the parameters used by Solve.
func DefaultParameters() *Parameters {
	return &Parameters{
		Method:               MethodAuto,
		InitialHeuristic:     MinimumCost,
		MaxIterations:        defaultMaxIterations,
		DegeneratePivotLimit: defaultDegeneratePivotLimit,
		Tolerance:            defaultTolerance,
	}
}

// withDefaults returns a copy of `p` with zero fields replaced by their defaults.
func (p *Parameters) withDefaults() Parameters {
	out := *DefaultParameters()
	if p == nil {
		return out
	}
	out.Method = p.Method
	out.InitialHeuristic = p.InitialHeuristic
	if p.MaxIterations > 0 {
		out.MaxIterations = p.MaxIterations
	}
	if p.DegeneratePivotLimit > 0 {
		out.DegeneratePivotLimit = p.DegeneratePivotLimit
	}
	if p.Tolerance > 0 {
		out.Tolerance = p.Tolerance
	}
	return out
}

// Solution is the result of a solve. It is created fresh by each solve and is not modified
// afterwards.
type Solution struct {
	// Status is the outcome of the solve.
	Status Status
	// ObjectiveValue is the objective of VariableValues, including the objective offset. It is
	// only meaningful when Status is Optimal.
	ObjectiveValue float64
	// VariableValues holds one value per program variable when Status is Optimal, and is nil
	// otherwise.
	VariableValues []float64
	// Iterations is the number of simplex pivots performed by the transportation simplex.
	Iterations int
	// Method is the algorithm that produced the solution.
	Method Method
}

// Value returns the value of variable `v` in the solution, or 0 if the solution holds no
// values.
func (s *Solution) Value(v lpmodel.VarIndex) float64 {
	if s == nil || int(v) >= len(s.VariableValues) || v < 0 {
		return 0
	}
	return s.VariableValues[v]
}

// Solve solves the program with the default parameters and returns its Solution.
func Solve(p *lpmodel.Program) (*Solution, error) {
	return SolveWithParameters(p, nil)
}

// SolveWithParameters solves the program with the given parameters and returns its Solution.
func SolveWithParameters(p *lpmodel.Program, params *Parameters) (*Solution, error) {
	return SolveWithContext(context.Background(), p, params)
}

// SolveWithContext solves the program with the given parameters. If the context is cancelled
// or times out, the transportation simplex stops at its next pivot and the returned solution
// has status NotSolved.
func SolveWithContext(ctx context.Context, p *lpmodel.Program, params *Parameters) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("validating program: %w", err)
	}
	prm := params.withDefaults()

	method := prm.Method
	var tp *transportation
	switch method {
	case MethodAuto, MethodTransportation:
		var ok bool
		tp, ok = recognizeTransportation(p)
		switch {
		case ok:
			method = MethodTransportation
		case method == MethodTransportation:
			return nil, fmt.Errorf("program %q does not have a transportation structure: %w", p.Name, lpmodel.ErrInvalidProgram)
		default:
			method = MethodDenseSimplex
		}
	case MethodDenseSimplex:
	default:
		return nil, fmt.Errorf("unknown method %v", prm.Method)
	}
	log.V(1).Infof("solving program %q (%d variables, %d constraints) with %v", p.Name, p.NumVariables(), p.NumConstraints(), method)

	var sol *Solution
	if method == MethodTransportation {
		sol = tp.solve(ctx, prm)
	} else {
		sol = solveDense(p, prm)
	}
	sol.Method = method
	if sol.Status == Optimal {
		sol.ObjectiveValue = p.ObjectiveValue(sol.VariableValues)
	} else {
		sol.VariableValues = nil
		sol.ObjectiveValue = 0
	}
	log.V(1).Infof("program %q: %v after %d iterations, objective %v", p.Name, sol.Status, sol.Iterations, sol.ObjectiveValue)
	return sol, nil
}
