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

// Package transport builds and solves transportation problems.
//
// A transportation problem ships units from m origins to n destinations. Origin i can ship at
// most supply[i] units, destination j must receive at least demand[j] units, and every unit
// shipped on the route (i,j) costs costs[i][j]. Cells without a route carry no flow.
//
// Build turns the problem data into a linear program with one variable per route, and Solve
// returns the cheapest flow plan, or the status explaining why there is none.
package transport

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	log "github.com/golang/glog"
	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/linear_solver/go/lpmodel"
)

// ErrShape is wrapped by every ShapeError.
var ErrShape = errors.New("transport: invalid problem shape")

// ShapeError reports problem data with mismatched dimensions or out of range values.
type ShapeError struct {
	// Field is the offending input: "costs", "supply" or "demand".
	Field string
	// Index is the offending position in Field, or -1 when the whole field is at fault.
	Index int
	// Reason describes the problem.
	Reason string
}

func (e *ShapeError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("transport: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("transport: %s[%d]: %s", e.Field, e.Index, e.Reason)
}

// Unwrap returns ErrShape.
func (e *ShapeError) Unwrap() error {
	return ErrShape
}

func shapeErrorf(field string, index int, format string, a ...any) error {
	return &ShapeError{Field: field, Index: index, Reason: fmt.Sprintf(format, a...)}
}

// Cost is the unit cost of a cell of the cost matrix: either a route with a finite cost, or
// no route at all. The zero value is NoRoute.
type Cost struct {
	value float64
	ok    bool
}

// NoRoute is the cost of a cell without a route.
var NoRoute = Cost{}

// Route returns the cost of a route shipping at `c` per unit.
func Route(c float64) Cost {
	return Cost{value: c, ok: true}
}

// Value returns the unit cost and true for a route, and 0 and false for NoRoute.
func (c Cost) Value() (float64, bool) {
	return c.value, c.ok
}

// IsRoute reports whether the cell has a route.
func (c Cost) IsRoute() bool {
	return c.ok
}

func (c Cost) String() string {
	if !c.ok {
		return "∞"
	}
	return strconv.FormatFloat(c.value, 'g', -1, 64)
}

// CostMatrix is an m×n matrix of unit costs, one row per origin.
type CostMatrix [][]Cost

// CostsFromFloats converts a float matrix where +Inf marks a missing route. Any other non
// finite or negative value is a ShapeError.
func CostsFromFloats(costs [][]float64) (CostMatrix, error) {
	out := make(CostMatrix, len(costs))
	for i, row := range costs {
		out[i] = make([]Cost, len(row))
		for j, c := range row {
			if math.IsInf(c, 1) {
				continue
			}
			if err := checkCost(i, j, c); err != nil {
				return nil, err
			}
			out[i][j] = Route(c)
		}
	}
	return out, nil
}

func checkCost(i, j int, c float64) error {
	if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 {
		return shapeErrorf("costs", i, "route to destination %d has cost %v, want a finite non-negative cost", j, c)
	}
	return nil
}

// Origins returns the number of rows of the matrix.
func (cm CostMatrix) Origins() int {
	return len(cm)
}

// Destinations returns the number of columns of the matrix, or 0 if it has no rows.
func (cm CostMatrix) Destinations() int {
	if len(cm) == 0 {
		return 0
	}
	return len(cm[0])
}

// Clone returns a deep copy of the matrix.
func (cm CostMatrix) Clone() CostMatrix {
	if cm == nil {
		return nil
	}
	out := make(CostMatrix, len(cm))
	for i, row := range cm {
		out[i] = append([]Cost(nil), row...)
	}
	return out
}

// Program is the linear program of a transportation problem together with the problem data
// it was built from.
type Program struct {
	// LP is the linear program: variables x_i_j, constraints Supply_i and Demand_j.
	LP *lpmodel.Program

	costs  CostMatrix
	supply []float64
	demand []float64
	// vars[i][j] is the variable of route (i,j), or -1 when there is no route.
	vars [][]lpmodel.VarIndex
}

// Origins returns the number of origins.
func (p *Program) Origins() int {
	return len(p.supply)
}

// Destinations returns the number of destinations.
func (p *Program) Destinations() int {
	return len(p.demand)
}

// Variable returns the program variable of route (i,j), and false if there is no route.
func (p *Program) Variable(i, j int) (lpmodel.VarIndex, bool) {
	if i < 0 || i >= len(p.vars) || j < 0 || j >= len(p.vars[i]) {
		return -1, false
	}
	v := p.vars[i][j]
	return v, v >= 0
}

// Cost returns the cost of cell (i,j).
func (p *Program) Cost(i, j int) Cost {
	return p.costs[i][j]
}

// Supply returns a copy of the supply vector.
func (p *Program) Supply() []float64 {
	return append([]float64(nil), p.supply...)
}

// Demand returns a copy of the demand vector.
func (p *Program) Demand() []float64 {
	return append([]float64(nil), p.demand...)
}

// validate checks the dimensions and values of the problem data.
func validate(costs CostMatrix, supply, demand []float64) error {
	m := len(costs)
	if m == 0 {
		return shapeErrorf("costs", -1, "no origins")
	}
	n := len(costs[0])
	if n == 0 {
		return shapeErrorf("costs", -1, "no destinations")
	}
	for i, row := range costs {
		if len(row) != n {
			return shapeErrorf("costs", i, "row has %d destinations, want %d", len(row), n)
		}
		for j, c := range row {
			if v, ok := c.Value(); ok {
				if err := checkCost(i, j, v); err != nil {
					return err
				}
			}
		}
	}
	if len(supply) != m {
		return shapeErrorf("supply", -1, "got %d values for %d origins", len(supply), m)
	}
	if len(demand) != n {
		return shapeErrorf("demand", -1, "got %d values for %d destinations", len(demand), n)
	}
	for i, s := range supply {
		if math.IsNaN(s) || math.IsInf(s, 0) || s < 0 {
			return shapeErrorf("supply", i, "got %v, want a finite non-negative value", s)
		}
	}
	for j, d := range demand {
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return shapeErrorf("demand", j, "got %v, want a finite non-negative value", d)
		}
	}
	return nil
}

// Build returns the linear program of the transportation problem:
//
//	min  sum(costs[i][j] * x_i_j)   over the routes (i,j)
//	s.t. Supply_i: sum_j x_i_j <= supply[i]
//	     Demand_j: sum_i x_i_j >= demand[j]
//	     x_i_j >= 0
//
// Cells without a route get no variable. Invalid data is reported as a *ShapeError. The
// inputs are not modified.
func Build(costs CostMatrix, supply, demand []float64) (*Program, error) {
	if err := validate(costs, supply, demand); err != nil {
		return nil, err
	}
	m, n := len(supply), len(demand)

	p := &Program{
		costs:  costs.Clone(),
		supply: append([]float64(nil), supply...),
		demand: append([]float64(nil), demand...),
		vars:   make([][]lpmodel.VarIndex, m),
	}

	model := lpmodel.NewBuilder("transportation")
	shipped := make([]*lpmodel.LinearExpr, m)
	received := make([]*lpmodel.LinearExpr, n)
	for i := range shipped {
		shipped[i] = lpmodel.NewLinearExpr()
	}
	for j := range received {
		received[j] = lpmodel.NewLinearExpr()
	}
	obj := lpmodel.NewLinearExpr()
	routes := 0
	for i := 0; i < m; i++ {
		p.vars[i] = make([]lpmodel.VarIndex, n)
		for j := 0; j < n; j++ {
			c, ok := costs[i][j].Value()
			if !ok {
				p.vars[i][j] = -1
				continue
			}
			x := model.NewVariable(0, math.Inf(1)).WithName(fmt.Sprintf("x_%d_%d", i, j))
			p.vars[i][j] = x.Index()
			shipped[i].Add(x)
			received[j].Add(x)
			obj.AddTerm(x, c)
			routes++
		}
	}
	for i, expr := range shipped {
		model.AddLessOrEqual(expr, lpmodel.NewConstant(supply[i])).WithName(fmt.Sprintf("Supply_%d", i))
	}
	for j, expr := range received {
		model.AddGreaterOrEqual(expr, lpmodel.NewConstant(demand[j])).WithName(fmt.Sprintf("Demand_%d", j))
	}
	model.Minimize(obj)

	lp, err := model.Program()
	if err != nil {
		return nil, fmt.Errorf("building transportation program: %w", err)
	}
	p.LP = lp
	log.V(1).Infof("built transportation program with %d origins, %d destinations and %d routes", m, n, routes)
	return p, nil
}
