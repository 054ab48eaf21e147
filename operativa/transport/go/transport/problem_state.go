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
	"fmt"
)

// Arc is a route of a ProblemState.
type Arc struct {
	Origin      int
	Destination int
	Cost        float64
}

// ProblemState accumulates a transportation problem edited over time: node counts, routes,
// supplies and demands. It starts with no routes and zero supplies and demands.
//
// A ProblemState is owned by its caller and is not safe for concurrent use.
type ProblemState struct {
	costs  CostMatrix
	supply []float64
	demand []float64
}

// NewProblemState returns the state of a problem with m origins and n destinations.
func NewProblemState(m, n int) (*ProblemState, error) {
	s := &ProblemState{}
	if err := s.Resize(m, n); err != nil {
		return nil, err
	}
	return s, nil
}

// Origins returns the number of origins.
func (s *ProblemState) Origins() int {
	return len(s.supply)
}

// Destinations returns the number of destinations.
func (s *ProblemState) Destinations() int {
	return len(s.demand)
}

// Resize changes the number of origins and destinations. Cells, supplies and demands of the
// nodes that remain are kept; new cells have no route and new nodes have a zero supply or
// demand.
func (s *ProblemState) Resize(m, n int) error {
	if m < 1 || n < 1 {
		return shapeErrorf("costs", -1, "cannot resize to %d×%d, want at least one origin and one destination", m, n)
	}
	costs := make(CostMatrix, m)
	for i := range costs {
		costs[i] = make([]Cost, n)
		if i < len(s.costs) {
			copy(costs[i], s.costs[i])
		}
	}
	s.costs = costs
	s.supply = resize(s.supply, m)
	s.demand = resize(s.demand, n)
	return nil
}

func resize(v []float64, size int) []float64 {
	out := make([]float64, size)
	copy(out, v)
	return out
}

func (s *ProblemState) checkCell(i, j int) error {
	if i < 0 || i >= s.Origins() {
		return shapeErrorf("costs", i, "origin out of range [0, %d)", s.Origins())
	}
	if j < 0 || j >= s.Destinations() {
		return shapeErrorf("costs", i, "destination %d out of range [0, %d)", j, s.Destinations())
	}
	return nil
}

// SetRoute adds the route from origin i to destination j, replacing its cost if it already
// exists.
func (s *ProblemState) SetRoute(i, j int, cost float64) error {
	if err := s.checkCell(i, j); err != nil {
		return err
	}
	if err := checkCost(i, j, cost); err != nil {
		return err
	}
	s.costs[i][j] = Route(cost)
	return nil
}

// RemoveRoute removes the route from origin i to destination j, if any.
func (s *ProblemState) RemoveRoute(i, j int) error {
	if err := s.checkCell(i, j); err != nil {
		return err
	}
	s.costs[i][j] = NoRoute
	return nil
}

// SetSupply sets the supply of every origin.
func (s *ProblemState) SetSupply(supply []float64) error {
	if len(supply) != s.Origins() {
		return shapeErrorf("supply", -1, "got %d values for %d origins", len(supply), s.Origins())
	}
	s.supply = append(s.supply[:0], supply...)
	return nil
}

// SetDemand sets the demand of every destination.
func (s *ProblemState) SetDemand(demand []float64) error {
	if len(demand) != s.Destinations() {
		return shapeErrorf("demand", -1, "got %d values for %d destinations", len(demand), s.Destinations())
	}
	s.demand = append(s.demand[:0], demand...)
	return nil
}

// Costs returns a copy of the cost matrix.
func (s *ProblemState) Costs() CostMatrix {
	return s.costs.Clone()
}

// Supply returns a copy of the supplies.
func (s *ProblemState) Supply() []float64 {
	return append([]float64(nil), s.supply...)
}

// Demand returns a copy of the demands.
func (s *ProblemState) Demand() []float64 {
	return append([]float64(nil), s.demand...)
}

// Routes returns the routes sorted by origin, then destination.
func (s *ProblemState) Routes() []Arc {
	var arcs []Arc
	for i, row := range s.costs {
		for j, c := range row {
			if v, ok := c.Value(); ok {
				arcs = append(arcs, Arc{Origin: i, Destination: j, Cost: v})
			}
		}
	}
	return arcs
}

// Build returns the program of the current state, see the Build function.
func (s *ProblemState) Build() (*Program, error) {
	return Build(s.costs, s.supply, s.demand)
}

func (a Arc) String() string {
	return fmt.Sprintf("%d -> %d: %v", a.Origin, a.Destination, a.Cost)
}
