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

package transport

import (
	"context"
	"fmt"

	log "github.com/golang/glog"
	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/linear_solver/go/linearsolver"
	"gonum.org/v1/gonum/floats"
)

// Status is the outcome of a solve.
type Status = linearsolver.Status

// Solve statuses.
const (
	NotSolved  = linearsolver.NotSolved
	Optimal    = linearsolver.Optimal
	Infeasible = linearsolver.Infeasible
	Unbounded  = linearsolver.Unbounded
)

// Solution is a flow plan. It is created fresh by each solve and is not modified afterwards.
type Solution struct {
	Status Status
	// TotalCost is the cost of Flows. It is 0 unless Status is Optimal.
	TotalCost float64
	// Flows[i][j] is the number of units shipped from origin i to destination j. It is a full
	// m×n grid, with 0 on cells without a route, when Status is Optimal, and nil otherwise.
	Flows [][]float64
	// Iterations is the number of simplex pivots of the solve.
	Iterations int
}

// Flow returns the units shipped from origin i to destination j.
func (s *Solution) Flow(i, j int) float64 {
	if s == nil || i < 0 || i >= len(s.Flows) || j < 0 || j >= len(s.Flows[i]) {
		return 0
	}
	return s.Flows[i][j]
}

// Shipped returns the units shipped by origin i.
func (s *Solution) Shipped(i int) float64 {
	if s == nil || i < 0 || i >= len(s.Flows) {
		return 0
	}
	return floats.Sum(s.Flows[i])
}

// Received returns the units received by destination j.
func (s *Solution) Received(j int) float64 {
	var total float64
	if s == nil {
		return total
	}
	for _, row := range s.Flows {
		if j >= 0 && j < len(row) {
			total += row[j]
		}
	}
	return total
}

type options struct {
	ctx    context.Context
	params *linearsolver.Parameters
}

// Option configures Solve and SolveProgram.
type Option func(*options)

// WithParameters sets the solver parameters. The default is linearsolver.DefaultParameters().
func WithParameters(params *linearsolver.Parameters) Option {
	return func(o *options) {
		o.params = params
	}
}

// WithContext sets the context of the solve. Cancelling it stops the solve with NotSolved.
func WithContext(ctx context.Context) Option {
	return func(o *options) {
		o.ctx = ctx
	}
}

// Solve builds the transportation problem and solves it. The error is non-nil only when the
// problem data is invalid, see Build.
func Solve(costs CostMatrix, supply, demand []float64, opts ...Option) (*Solution, error) {
	p, err := Build(costs, supply, demand)
	if err != nil {
		return nil, err
	}
	return SolveProgram(p, opts...)
}

// SolveProgram solves a program returned by Build.
func SolveProgram(p *Program, opts ...Option) (*Solution, error) {
	o := options{ctx: context.Background()}
	for _, opt := range opts {
		opt(&o)
	}

	res, err := linearsolver.SolveWithContext(o.ctx, p.LP, o.params)
	if err != nil {
		return nil, fmt.Errorf("solving transportation program: %w", err)
	}
	sol := &Solution{Status: res.Status, Iterations: res.Iterations}
	if res.Status != Optimal {
		log.V(1).Infof("transportation problem not solved: %v", res.Status)
		return sol, nil
	}

	sol.Flows = make([][]float64, p.Origins())
	for i := range sol.Flows {
		sol.Flows[i] = make([]float64, p.Destinations())
		for j := range sol.Flows[i] {
			v, ok := p.Variable(i, j)
			if !ok {
				continue
			}
			flow := res.Value(v)
			sol.Flows[i][j] = flow
			c, _ := p.Cost(i, j).Value()
			sol.TotalCost += c * flow
		}
	}
	return sol, nil
}
