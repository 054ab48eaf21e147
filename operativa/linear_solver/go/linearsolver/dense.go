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
	"errors"
	"math"

	log "github.com/golang/glog"
	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/linear_solver/go/lpmodel"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// term is the contribution `sign * x'[col]` of a standard form column to a program variable.
type term struct {
	col  int
	sign float64
}

// standardForm is the program rewritten as
//
//	min c^T x'  s.t.  A x' = b,  x' >= 0
//
// with every program variable expressed as `shift + sum(sign * x'[col])`.
type standardForm struct {
	c     []float64
	rows  [][]float64
	b     []float64
	shift []float64
	terms [][]term
}

func (sf *standardForm) newColumn(cost float64) int {
	sf.c = append(sf.c, cost)
	for r := range sf.rows {
		sf.rows[r] = append(sf.rows[r], 0)
	}
	return len(sf.c) - 1
}

func (sf *standardForm) newRow(rhs float64) int {
	sf.rows = append(sf.rows, make([]float64, len(sf.c)))
	sf.b = append(sf.b, rhs)
	return len(sf.rows) - 1
}

// boundRow is the row `x'[col] + s = ub` of a variable bounded on both sides.
type boundRow struct {
	col int
	ub  float64
}

// toStandardForm converts `p`. It returns false when a constraint without variables cannot be
// satisfied, in which case the program is infeasible.
func toStandardForm(p *lpmodel.Program, tol float64) (*standardForm, bool) {
	sf := &standardForm{
		shift: make([]float64, len(p.Variables)),
		terms: make([][]term, len(p.Variables)),
	}
	c := p.ObjectiveCoefficients()
	if p.Objective.Sense == lpmodel.Maximize {
		for k := range c {
			c[k] = -c[k]
		}
	}

	var boundRows []boundRow
	for k, v := range p.Variables {
		lb, ub := v.Bounds.Lower, v.Bounds.Upper
		switch {
		case v.Bounds.HasLower():
			sf.shift[k] = lb
			col := sf.newColumn(c[k])
			sf.terms[k] = []term{{col, 1}}
			if v.Bounds.HasUpper() {
				boundRows = append(boundRows, boundRow{col, ub - lb})
			}
		case v.Bounds.HasUpper():
			sf.shift[k] = ub
			col := sf.newColumn(-c[k])
			sf.terms[k] = []term{{col, -1}}
		default:
			pos := sf.newColumn(c[k])
			neg := sf.newColumn(-c[k])
			sf.terms[k] = []term{{pos, 1}, {neg, -1}}
		}
	}

	for _, br := range boundRows {
		r := sf.newRow(br.ub)
		sf.rows[r][br.col] = 1
		s := sf.newColumn(0)
		sf.rows[r][s] = 1
	}

	for _, ct := range p.Constraints {
		coeffs := make(map[int]float64)
		constant := 0.0
		for k, v := range ct.Vars {
			a := ct.Coeffs[k]
			if a == 0 {
				continue
			}
			constant += a * sf.shift[v]
			for _, tm := range sf.terms[v] {
				coeffs[tm.col] += a * tm.sign
			}
		}
		bounds := ct.Bounds.Offset(-constant)
		empty := true
		for _, a := range coeffs {
			if a != 0 {
				empty = false
				break
			}
		}
		if empty {
			if !bounds.Contains(0, tol) {
				return nil, false
			}
			continue
		}

		addRow := func(rhs, slack float64) {
			r := sf.newRow(rhs)
			for col, a := range coeffs {
				sf.rows[r][col] = a
			}
			if slack != 0 {
				s := sf.newColumn(0)
				sf.rows[r][s] = slack
			}
		}
		switch {
		case bounds.HasLower() && bounds.HasUpper() && bounds.IsFixed():
			addRow(bounds.Lower, 0)
		default:
			if bounds.HasUpper() {
				addRow(bounds.Upper, 1)
			}
			if bounds.HasLower() {
				addRow(bounds.Lower, -1)
			}
		}
	}
	return sf, true
}

// solveDense solves `p` with gonum's simplex on its standard form.
func solveDense(p *lpmodel.Program, prm Parameters) *Solution {
	sf, ok := toStandardForm(p, prm.Tolerance)
	if !ok {
		return &Solution{Status: Infeasible}
	}

	// Columns that appear in no row are set analytically, gonum rejects them.
	nCols := len(sf.c)
	used := make([]bool, nCols)
	for _, row := range sf.rows {
		for col, a := range row {
			if a != 0 {
				used[col] = true
			}
		}
	}
	var keep []int
	improvable := false
	for col := 0; col < nCols; col++ {
		if used[col] {
			keep = append(keep, col)
		} else if sf.c[col] < 0 {
			improvable = true
		}
	}

	x := make([]float64, nCols)
	if len(sf.rows) > 0 {
		if len(sf.rows) > len(keep) {
			log.Warningf("dense simplex: %d rows for %d columns, program %q is over-determined", len(sf.rows), len(keep), p.Name)
			return &Solution{Status: NotSolved}
		}
		c := make([]float64, len(keep))
		a := mat.NewDense(len(sf.rows), len(keep), nil)
		for k, col := range keep {
			c[k] = sf.c[col]
			for r, row := range sf.rows {
				a.Set(r, k, row[col])
			}
		}
		_, xs, err := lp.Simplex(c, a, sf.b, prm.Tolerance, nil)
		switch {
		case errors.Is(err, lp.ErrInfeasible):
			return &Solution{Status: Infeasible}
		case errors.Is(err, lp.ErrUnbounded):
			return &Solution{Status: Unbounded}
		case err != nil:
			log.Warningf("dense simplex failed on program %q: %v", p.Name, err)
			return &Solution{Status: NotSolved}
		}
		for k, col := range keep {
			x[col] = math.Max(0, xs[k])
		}
	}
	if improvable {
		return &Solution{Status: Unbounded}
	}

	values := make([]float64, len(p.Variables))
	for k := range values {
		values[k] = sf.shift[k]
		for _, tm := range sf.terms[k] {
			values[k] += tm.sign * x[tm.col]
		}
	}
	return &Solution{Status: Optimal, VariableValues: values}
}
