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

package transportio

import (
	"errors"
	"fmt"

	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/transport/go/transport"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrMalformedProblem is wrapped by the errors of ProblemFromStruct and UnmarshalProblemJSON.
var ErrMalformedProblem = errors.New("transportio: malformed problem")

// Field names of the problem and solution documents.
const (
	fieldCosts      = "costs"
	fieldSupply     = "supply"
	fieldDemand     = "demand"
	fieldStatus     = "status"
	fieldTotalCost  = "total_cost"
	fieldFlows      = "flows"
	fieldIterations = "iterations"
)

// Problem is the data of a transportation problem as exchanged with other programs.
type Problem struct {
	Costs  transport.CostMatrix
	Supply []float64
	Demand []float64
}

// ProblemFromState returns a copy of the data held by `s`.
func ProblemFromState(s *transport.ProblemState) *Problem {
	return &Problem{Costs: s.Costs(), Supply: s.Supply(), Demand: s.Demand()}
}

// Build returns the program of the problem, see transport.Build.
func (p *Problem) Build() (*transport.Program, error) {
	return transport.Build(p.Costs, p.Supply, p.Demand)
}

func floatList(v []float64) []any {
	out := make([]any, len(v))
	for k, x := range v {
		out[k] = x
	}
	return out
}

// ProblemToStruct encodes the problem as
//
//	{"supply": [...], "demand": [...], "costs": [[...], ...]}
//
// where a null cost marks a missing route.
func ProblemToStruct(p *Problem) (*structpb.Struct, error) {
	costs := make([]any, len(p.Costs))
	for i, row := range p.Costs {
		r := make([]any, len(row))
		for j, c := range row {
			if v, ok := c.Value(); ok {
				r[j] = v
			}
		}
		costs[i] = r
	}
	return structpb.NewStruct(map[string]any{
		fieldSupply: floatList(p.Supply),
		fieldDemand: floatList(p.Demand),
		fieldCosts:  costs,
	})
}

func listField(s *structpb.Struct, name string) (*structpb.ListValue, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return nil, fmt.Errorf("missing field %q: %w", name, ErrMalformedProblem)
	}
	l := v.GetListValue()
	if l == nil {
		return nil, fmt.Errorf("field %q is not a list: %w", name, ErrMalformedProblem)
	}
	return l, nil
}

func numbers(l *structpb.ListValue, what string) ([]float64, error) {
	out := make([]float64, len(l.GetValues()))
	for k, v := range l.GetValues() {
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return nil, fmt.Errorf("%s[%d] is not a number: %w", what, k, ErrMalformedProblem)
		}
		out[k] = n.NumberValue
	}
	return out, nil
}

// ProblemFromStruct decodes a problem encoded by ProblemToStruct. The dimensions and values
// are not checked beyond their types; Build reports invalid data.
func ProblemFromStruct(s *structpb.Struct) (*Problem, error) {
	p := &Problem{}
	for _, f := range []struct {
		name string
		dst  *[]float64
	}{{fieldSupply, &p.Supply}, {fieldDemand, &p.Demand}} {
		l, err := listField(s, f.name)
		if err != nil {
			return nil, err
		}
		if *f.dst, err = numbers(l, f.name); err != nil {
			return nil, err
		}
	}

	rows, err := listField(s, fieldCosts)
	if err != nil {
		return nil, err
	}
	p.Costs = make(transport.CostMatrix, len(rows.GetValues()))
	for i, row := range rows.GetValues() {
		cells := row.GetListValue()
		if cells == nil {
			return nil, fmt.Errorf("%s[%d] is not a list: %w", fieldCosts, i, ErrMalformedProblem)
		}
		p.Costs[i] = make([]transport.Cost, len(cells.GetValues()))
		for j, c := range cells.GetValues() {
			switch k := c.GetKind().(type) {
			case *structpb.Value_NullValue:
				p.Costs[i][j] = transport.NoRoute
			case *structpb.Value_NumberValue:
				p.Costs[i][j] = transport.Route(k.NumberValue)
			default:
				return nil, fmt.Errorf("%s[%d][%d] is neither a number nor null: %w", fieldCosts, i, j, ErrMalformedProblem)
			}
		}
	}
	return p, nil
}

// MarshalProblemJSON encodes the problem as JSON, see ProblemToStruct.
func MarshalProblemJSON(p *Problem) ([]byte, error) {
	s, err := ProblemToStruct(p)
	if err != nil {
		return nil, fmt.Errorf("encoding problem: %w", err)
	}
	return protojson.Marshal(s)
}

// UnmarshalProblemJSON decodes a problem encoded by MarshalProblemJSON.
func UnmarshalProblemJSON(b []byte) (*Problem, error) {
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrMalformedProblem)
	}
	return ProblemFromStruct(s)
}

// SolutionToStruct encodes the solution as
//
//	{"status": "Optimal", "total_cost": 180, "iterations": 1, "flows": [[...], ...]}
//
// with null flows when the solution is not optimal.
func SolutionToStruct(sol *transport.Solution) (*structpb.Struct, error) {
	var flows any
	if sol.Flows != nil {
		rows := make([]any, len(sol.Flows))
		for i, row := range sol.Flows {
			rows[i] = floatList(row)
		}
		flows = rows
	}
	return structpb.NewStruct(map[string]any{
		fieldStatus:     sol.Status.String(),
		fieldTotalCost:  sol.TotalCost,
		fieldIterations: sol.Iterations,
		fieldFlows:      flows,
	})
}

// MarshalSolutionJSON encodes the solution as JSON, see SolutionToStruct.
func MarshalSolutionJSON(sol *transport.Solution) ([]byte, error) {
	s, err := SolutionToStruct(sol)
	if err != nil {
		return nil, fmt.Errorf("encoding solution: %w", err)
	}
	return protojson.Marshal(s)
}
