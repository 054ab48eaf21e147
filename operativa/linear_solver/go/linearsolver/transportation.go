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

package linearsolver

import (
	"context"
	"math"

	log "github.com/golang/glog"
	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/linear_solver/go/lpmodel"
	"gonum.org/v1/gonum/floats"
)

// transportation is a program recognized as
//
//	min  sum(c[i][j] * x[i][j])
//	s.t. sum_j x[i][j] <= supply[i]   for every origin i
//	     sum_i x[i][j] >= demand[j]   for every destination j
//	     x >= 0
//
// where only the cells with a variable exist.
type transportation struct {
	m, n   int
	supply []float64
	demand []float64
	// vars[i][j] is the program variable of cell (i,j), or -1 when the cell has no variable.
	vars [][]lpmodel.VarIndex
	// cost[i][j] is the minimization cost of cell (i,j); 0 when the cell has no variable.
	cost [][]float64
	nVar int
}

// recognizeTransportation returns the transportation view of `p`, or false if `p` does not
// have that structure.
func recognizeTransportation(p *lpmodel.Program) (*transportation, bool) {
	for _, v := range p.Variables {
		if v.Bounds.Lower != 0 || v.Bounds.HasUpper() {
			return nil, false
		}
	}

	origin := make([]int, len(p.Variables))
	dest := make([]int, len(p.Variables))
	for k := range origin {
		origin[k], dest[k] = -1, -1
	}
	var supply, demand []float64
	for _, ct := range p.Constraints {
		isSupply := !ct.Bounds.HasLower() && ct.Bounds.HasUpper() && ct.Bounds.Upper >= 0
		isDemand := ct.Bounds.HasLower() && !ct.Bounds.HasUpper() && ct.Bounds.Lower >= 0
		if !isSupply && !isDemand {
			return nil, false
		}
		for k, v := range ct.Vars {
			if ct.Coeffs[k] != 1 {
				return nil, false
			}
			if isSupply {
				if origin[v] >= 0 {
					return nil, false
				}
				origin[v] = len(supply)
			} else {
				if dest[v] >= 0 {
					return nil, false
				}
				dest[v] = len(demand)
			}
		}
		if isSupply {
			supply = append(supply, ct.Bounds.Upper)
		} else {
			demand = append(demand, ct.Bounds.Lower)
		}
	}

	t := &transportation{m: len(supply), n: len(demand), supply: supply, demand: demand, nVar: len(p.Variables)}
	t.vars = make([][]lpmodel.VarIndex, t.m)
	t.cost = make([][]float64, t.m)
	for i := range t.vars {
		t.vars[i] = make([]lpmodel.VarIndex, t.n)
		t.cost[i] = make([]float64, t.n)
		for j := range t.vars[i] {
			t.vars[i][j] = -1
		}
	}
	sign := 1.0
	if p.Objective.Sense == lpmodel.Maximize {
		sign = -1
	}
	c := p.ObjectiveCoefficients()
	for k := range p.Variables {
		i, j := origin[k], dest[k]
		if i < 0 || j < 0 || t.vars[i][j] >= 0 {
			return nil, false
		}
		t.vars[i][j] = lpmodel.VarIndex(k)
		t.cost[i][j] = sign * c[k]
	}
	return t, true
}

// cell is a position in the transportation tableau.
type cell struct {
	i, j int
}

func (c cell) less(o cell) bool {
	return c.i < o.i || (c.i == o.i && c.j < o.j)
}

// tableau is the balanced transportation problem solved by the simplex: the real
// destinations plus a last dummy destination absorbing surplus supply. Cells without a
// variable are kept in the tableau; they carry flow only during phase 1.
type tableau struct {
	m, n    int // n includes the dummy destination.
	supply  []float64
	demand  []float64
	present [][]bool
	cost    [][]float64 // phase 2 costs.
	flow    [][]float64
	basic   [][]bool

	phase int

	// Scratch space for potentials and tree traversal.
	u, v     []float64
	seen     []bool
	parent   []cell
	from     []int
	rowCells [][]int
	colCells [][]int

	iterations int
	degenerate int
	prm        Parameters
	costTol    float64
	flowTol    float64
}

func (t *transportation) solve(ctx context.Context, prm Parameters) *Solution {
	totalSupply := floats.Sum(t.supply)
	totalDemand := floats.Sum(t.demand)
	flowTol := prm.Tolerance * math.Max(1, math.Max(totalSupply, totalDemand))
	if totalSupply < totalDemand-flowTol {
		log.V(1).Infof("total supply %v is below total demand %v", totalSupply, totalDemand)
		return &Solution{Status: Infeasible}
	}
	if t.m == 0 {
		// Nothing can be shipped and nothing needs to be: totalDemand is 0 here.
		return &Solution{Status: Optimal, VariableValues: make([]float64, t.nVar)}
	}

	tb := t.newTableau(math.Max(0, totalSupply-totalDemand), prm)
	tb.flowTol = flowTol
	tb.initialBasis()

	if tb.phase1Objective() > flowTol {
		tb.phase = 1
		log.V(1).Infof("phase 1: %v units initially on missing routes", tb.phase1Objective())
		if st := tb.optimize(ctx); st != Optimal {
			return &Solution{Status: st, Iterations: tb.iterations}
		}
		if obj := tb.phase1Objective(); obj > flowTol {
			log.V(1).Infof("phase 1 ended with %v units on missing routes", obj)
			return &Solution{Status: Infeasible, Iterations: tb.iterations}
		}
	}
	tb.clearMissing()

	tb.phase = 2
	tb.degenerate = 0
	if st := tb.optimize(ctx); st != Optimal {
		return &Solution{Status: st, Iterations: tb.iterations}
	}
	return &Solution{Status: Optimal, VariableValues: t.extract(tb), Iterations: tb.iterations}
}

func (t *transportation) newTableau(surplus float64, prm Parameters) *tableau {
	n := t.n + 1
	tb := &tableau{
		m:       t.m,
		n:       n,
		supply:  append([]float64(nil), t.supply...),
		demand:  append(append([]float64(nil), t.demand...), surplus),
		present: make([][]bool, t.m),
		cost:    make([][]float64, t.m),
		flow:    make([][]float64, t.m),
		basic:   make([][]bool, t.m),
		u:       make([]float64, t.m),
		v:       make([]float64, n),
		seen:    make([]bool, t.m+n),
		parent:  make([]cell, t.m+n),
		from:    make([]int, t.m+n),
		prm:     prm,
	}
	maxCost := 1.0
	for i := 0; i < t.m; i++ {
		tb.present[i] = make([]bool, n)
		tb.cost[i] = make([]float64, n)
		tb.flow[i] = make([]float64, n)
		tb.basic[i] = make([]bool, n)
		// Surplus of origin i either stays unused at no cost or, when cheaper, is delivered
		// beyond the requirement of its cheapest destination.
		dummy := 0.0
		for j := 0; j < t.n; j++ {
			if t.vars[i][j] < 0 {
				continue
			}
			tb.present[i][j] = true
			tb.cost[i][j] = t.cost[i][j]
			dummy = math.Min(dummy, t.cost[i][j])
			maxCost = math.Max(maxCost, math.Abs(t.cost[i][j]))
		}
		tb.present[i][t.n] = true
		tb.cost[i][t.n] = dummy
	}
	tb.costTol = prm.Tolerance * maxCost
	return tb
}

// cellCost returns the cost of a cell in the current phase.
func (tb *tableau) cellCost(i, j int) float64 {
	if tb.phase == 1 {
		if tb.present[i][j] {
			return 0
		}
		return 1
	}
	return tb.cost[i][j]
}

func (tb *tableau) phase1Objective() float64 {
	var obj float64
	for i := 0; i < tb.m; i++ {
		for j := 0; j < tb.n; j++ {
			if !tb.present[i][j] {
				obj += tb.flow[i][j]
			}
		}
	}
	return obj
}

// clearMissing removes the phase 1 residue left on cells without a variable. Such cells may
// stay basic, at zero.
func (tb *tableau) clearMissing() {
	for i := 0; i < tb.m; i++ {
		for j := 0; j < tb.n; j++ {
			if !tb.present[i][j] {
				tb.flow[i][j] = 0
			}
		}
	}
}

// initialBasis builds a basic feasible solution with exactly m+n-1 basic cells, degenerate
// ones included, so that the basic cells form a spanning tree of the tableau.
func (tb *tableau) initialBasis() {
	rowLeft := append([]float64(nil), tb.supply...)
	colLeft := append([]float64(nil), tb.demand...)
	rowDone := make([]bool, tb.m)
	colDone := make([]bool, tb.n)
	rowsLeft, colsLeft := tb.m, tb.n

	for colsLeft > 0 && rowsLeft > 0 {
		c, ok := tb.nextInitialCell(rowDone, colDone)
		if !ok {
			break
		}
		q := math.Min(rowLeft[c.i], colLeft[c.j])
		tb.flow[c.i][c.j] = q
		tb.basic[c.i][c.j] = true
		rowLeft[c.i] -= q
		colLeft[c.j] -= q

		// Exactly one line is crossed out per allocation, which keeps the basis a tree.
		switch {
		case rowLeft[c.i] <= 0 && rowsLeft > 1:
			rowDone[c.i] = true
			rowsLeft--
		case colLeft[c.j] <= 0 && colsLeft > 1:
			colDone[c.j] = true
			colsLeft--
		case rowsLeft > 1:
			rowDone[c.i] = true
			rowsLeft--
		default:
			colDone[c.j] = true
			colsLeft--
		}
	}
	log.V(2).Infof("initial basis (%v): %d basic cells", tb.prm.InitialHeuristic, tb.m+tb.n-1)
}

func (tb *tableau) nextInitialCell(rowDone, colDone []bool) (cell, bool) {
	if tb.prm.InitialHeuristic == NorthwestCorner {
		for i := 0; i < tb.m; i++ {
			if rowDone[i] {
				continue
			}
			for j := 0; j < tb.n; j++ {
				if !colDone[j] {
					return cell{i, j}, true
				}
			}
		}
		return cell{}, false
	}

	// Minimum cost: prefer cells with a variable, then the cheapest, then the lowest (i,j).
	best, found := cell{}, false
	var bestMissing bool
	var bestCost float64
	for i := 0; i < tb.m; i++ {
		if rowDone[i] {
			continue
		}
		for j := 0; j < tb.n; j++ {
			if colDone[j] {
				continue
			}
			missing, c := !tb.present[i][j], tb.cost[i][j]
			if !found || (!missing && bestMissing) || (missing == bestMissing && c < bestCost) {
				best, bestMissing, bestCost, found = cell{i, j}, missing, c, true
			}
		}
	}
	return best, found
}

// optimize pivots until the current phase is optimal.
func (tb *tableau) optimize(ctx context.Context) Status {
	for {
		if err := ctx.Err(); err != nil {
			log.Warningf("transportation simplex interrupted in phase %d: %v", tb.phase, err)
			return NotSolved
		}
		if !tb.computePotentials() {
			log.Errorf("transportation simplex lost its spanning tree in phase %d", tb.phase)
			return NotSolved
		}
		enter, ok := tb.entering(tb.degenerate >= tb.prm.DegeneratePivotLimit)
		if !ok {
			return Optimal
		}
		if tb.iterations >= tb.prm.MaxIterations {
			log.Warningf("transportation simplex reached %d iterations in phase %d", tb.iterations, tb.phase)
			return NotSolved
		}
		cycle := tb.cycle(enter)
		leave, theta, ok := tb.ratio(cycle)
		if !ok {
			return Unbounded
		}
		tb.pivot(cycle, leave, theta)
		tb.iterations++
		if theta <= tb.flowTol {
			tb.degenerate++
		} else {
			tb.degenerate = 0
		}
		log.V(2).Infof("phase %d pivot %d: enter %v leave %v theta %v", tb.phase, tb.iterations, enter, cycle[leave], theta)
	}
}

// computePotentials solves u[i] + v[j] = cost(i,j) over the basic cells with u[0] = 0. It
// returns false if the basic cells do not span the tableau.
func (tb *tableau) computePotentials() bool {
	tb.indexBasis()
	for k := range tb.seen {
		tb.seen[k] = false
	}
	tb.u[0] = 0
	tb.seen[0] = true
	queue := []int{0}
	visited := 1
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		if node < tb.m {
			i := node
			for _, j := range tb.rowCells[i] {
				if !tb.seen[tb.m+j] {
					tb.seen[tb.m+j] = true
					tb.v[j] = tb.cellCost(i, j) - tb.u[i]
					queue = append(queue, tb.m+j)
					visited++
				}
			}
		} else {
			j := node - tb.m
			for _, i := range tb.colCells[j] {
				if !tb.seen[i] {
					tb.seen[i] = true
					tb.u[i] = tb.cellCost(i, j) - tb.v[j]
					queue = append(queue, i)
					visited++
				}
			}
		}
	}
	return visited == tb.m+tb.n
}

func (tb *tableau) indexBasis() {
	if tb.rowCells == nil {
		tb.rowCells = make([][]int, tb.m)
		tb.colCells = make([][]int, tb.n)
	}
	for i := range tb.rowCells {
		tb.rowCells[i] = tb.rowCells[i][:0]
	}
	for j := range tb.colCells {
		tb.colCells[j] = tb.colCells[j][:0]
	}
	for i := 0; i < tb.m; i++ {
		for j := 0; j < tb.n; j++ {
			if tb.basic[i][j] {
				tb.rowCells[i] = append(tb.rowCells[i], j)
				tb.colCells[j] = append(tb.colCells[j], i)
			}
		}
	}
}

// entering returns the non-basic cell to bring into the basis: the most negative reduced
// cost, or with `bland` the first negative one, ties broken by the lowest (i,j).
func (tb *tableau) entering(bland bool) (cell, bool) {
	best, found := cell{}, false
	bestRC := -tb.costTol
	for i := 0; i < tb.m; i++ {
		for j := 0; j < tb.n; j++ {
			if tb.basic[i][j] || (tb.phase == 2 && !tb.present[i][j]) {
				continue
			}
			rc := tb.cellCost(i, j) - tb.u[i] - tb.v[j]
			if rc < bestRC {
				best, bestRC, found = cell{i, j}, rc, true
				if bland {
					return best, true
				}
			}
		}
	}
	return best, found
}

// cycle returns the cycle closed by `enter` in the basis tree: enter first, followed by the
// tree path from enter's destination to enter's origin. Even positions gain flow and odd
// positions lose it.
func (tb *tableau) cycle(enter cell) []cell {
	for k := range tb.seen {
		tb.seen[k] = false
	}
	start, target := tb.m+enter.j, enter.i
	tb.seen[start] = true
	tb.from[start] = -1
	queue := []int{start}
	for len(queue) > 0 && !tb.seen[target] {
		node := queue[0]
		queue = queue[1:]
		if node < tb.m {
			i := node
			for _, j := range tb.rowCells[i] {
				if next := tb.m + j; !tb.seen[next] {
					tb.seen[next], tb.from[next], tb.parent[next] = true, node, cell{i, j}
					queue = append(queue, next)
				}
			}
		} else {
			j := node - tb.m
			for _, i := range tb.colCells[j] {
				if !tb.seen[i] {
					tb.seen[i], tb.from[i], tb.parent[i] = true, node, cell{i, j}
					queue = append(queue, i)
				}
			}
		}
	}

	var path []cell
	for node := target; node != start; node = tb.from[node] {
		path = append(path, tb.parent[node])
	}
	out := make([]cell, 0, len(path)+1)
	out = append(out, enter)
	for k := len(path) - 1; k >= 0; k-- {
		out = append(out, path[k])
	}
	return out
}

// ratio applies the minimum ratio test along the cycle. It returns the position in the cycle
// of the leaving cell and the flow moved around the cycle. In phase 2 cells without a
// variable are pinned at zero, so they block in both directions and leave first on ties.
func (tb *tableau) ratio(cycle []cell) (int, float64, bool) {
	leave, found := -1, false
	var theta float64
	var leaveMissing bool
	for k := 1; k < len(cycle); k++ {
		c := cycle[k]
		missing := tb.phase == 2 && !tb.present[c.i][c.j]
		if k%2 == 0 && !missing {
			continue
		}
		capacity := tb.flow[c.i][c.j]
		if missing {
			capacity = 0
		}
		better := !found || capacity < theta ||
			(capacity == theta && ((missing && !leaveMissing) || (missing == leaveMissing && c.less(cycle[leave]))))
		if better {
			leave, theta, leaveMissing, found = k, capacity, missing, true
		}
	}
	return leave, theta, found
}

func (tb *tableau) pivot(cycle []cell, leave int, theta float64) {
	for k, c := range cycle {
		if k%2 == 0 {
			tb.flow[c.i][c.j] += theta
		} else {
			tb.flow[c.i][c.j] -= theta
		}
	}
	out, in := cycle[leave], cycle[0]
	tb.flow[out.i][out.j] = 0
	tb.basic[out.i][out.j] = false
	tb.basic[in.i][in.j] = true
}

// extract maps the tableau flows back to program variables. Dummy flow with a negative cost is
// delivered to the cheapest route of its origin.
func (t *transportation) extract(tb *tableau) []float64 {
	values := make([]float64, t.nVar)
	for i := 0; i < t.m; i++ {
		cheapest := -1
		for j := 0; j < t.n; j++ {
			v := t.vars[i][j]
			if v < 0 {
				continue
			}
			values[v] = tb.flow[i][j]
			if cheapest < 0 || t.cost[i][j] < t.cost[i][cheapest] {
				cheapest = j
			}
		}
		if surplus := tb.flow[i][t.n]; surplus > 0 && tb.cost[i][t.n] < 0 {
			values[t.vars[i][cheapest]] += surplus
		}
	}
	return values
}
