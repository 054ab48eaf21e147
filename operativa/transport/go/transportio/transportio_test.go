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
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/transport/go/transport"
)

func TestParseVector(t *testing.T) {
	testCases := []struct {
		name    string
		text    string
		want    int
		wantVec []float64
		wantErr bool
	}{
		{name: "Plain", text: "20,30", want: 2, wantVec: []float64{20, 30}},
		{name: "Spaces", text: " 1.5 , 2,3 ", want: 3, wantVec: []float64{1.5, 2, 3}},
		{name: "Empty", text: "  ", want: 0, wantVec: []float64{}},
		{name: "EmptyButWanted", text: "", want: 2, wantErr: true},
		{name: "TooFew", text: "1,2", want: 3, wantErr: true},
		{name: "TooMany", text: "1,2,3", want: 2, wantErr: true},
		{name: "NotANumber", text: "1,abc", want: 2, wantErr: true},
		{name: "MissingValue", text: "1,,3", want: 3, wantErr: true},
		{name: "Infinite", text: "1,inf", want: 2, wantErr: true},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			got, err := ParseVector(test.text, test.want)
			if test.wantErr {
				require.ErrorIs(t, err, ErrMalformedVector)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.wantVec, got)
		})
	}
}

func TestFormatVector(t *testing.T) {
	v := []float64{20, 30.5, 0}
	text := FormatVector(v)
	require.Equal(t, "20,30.5,0", text)

	got, err := ParseVector(text, len(v))
	require.NoError(t, err)
	require.Equal(t, v, got)
}

func TestRouteTable_Apply(t *testing.T) {
	s, err := transport.NewProblemState(2, 2)
	require.NoError(t, err)

	var rt RouteTable
	rt.Add(0, 0, 4).Add(1, 1, 3).Add(0, 0, 2)
	require.Equal(t, 3, rt.Len())
	require.NoError(t, rt.Apply(s))

	want := []transport.Arc{
		{Origin: 0, Destination: 0, Cost: 2},
		{Origin: 1, Destination: 1, Cost: 3},
	}
	require.Equal(t, want, s.Routes())

	rt.Add(5, 0, 1)
	err = rt.Apply(s)
	require.ErrorIs(t, err, transport.ErrShape)
}

func sampleProblem() *Problem {
	return &Problem{
		Costs: transport.CostMatrix{
			{transport.Route(4), transport.NoRoute},
			{transport.Route(5), transport.Route(3)},
		},
		Supply: []float64{20, 30},
		Demand: []float64{25, 25},
	}
}

func TestProblemToStruct(t *testing.T) {
	got, err := ProblemToStruct(sampleProblem())
	require.NoError(t, err)

	want := &structpb.Struct{Fields: map[string]*structpb.Value{
		"supply": structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
			structpb.NewNumberValue(20), structpb.NewNumberValue(30),
		}}),
		"demand": structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
			structpb.NewNumberValue(25), structpb.NewNumberValue(25),
		}}),
		"costs": structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
			structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
				structpb.NewNumberValue(4), structpb.NewNullValue(),
			}}),
			structpb.NewListValue(&structpb.ListValue{Values: []*structpb.Value{
				structpb.NewNumberValue(5), structpb.NewNumberValue(3),
			}}),
		}}),
	}}
	if diff := cmp.Diff(want, got, protocmp.Transform()); diff != "" {
		t.Errorf("ProblemToStruct() returned with unexpected diff (-want+got);\n%s", diff)
	}
}

func TestProblemJSON_RoundTrip(t *testing.T) {
	p := sampleProblem()

	b, err := MarshalProblemJSON(p)
	require.NoError(t, err)
	got, err := UnmarshalProblemJSON(b)
	require.NoError(t, err)

	if diff := cmp.Diff(p, got, cmp.AllowUnexported(transport.Cost{})); diff != "" {
		t.Errorf("UnmarshalProblemJSON(MarshalProblemJSON()) returned with unexpected diff (-want+got);\n%s", diff)
	}
}

func TestUnmarshalProblemJSON_Errors(t *testing.T) {
	testCases := []struct {
		name string
		json string
	}{
		{"NotJSON", `{`},
		{"MissingCosts", `{"supply": [1], "demand": [1]}`},
		{"SupplyNotAList", `{"supply": 1, "demand": [1], "costs": [[1]]}`},
		{"StringDemand", `{"supply": [1], "demand": ["a"], "costs": [[1]]}`},
		{"RowNotAList", `{"supply": [1], "demand": [1], "costs": [1]}`},
		{"BoolCost", `{"supply": [1], "demand": [1], "costs": [[true]]}`},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			_, err := UnmarshalProblemJSON([]byte(test.json))
			require.ErrorIs(t, err, ErrMalformedProblem)
		})
	}
}

func TestProblem_BuildAndSolve(t *testing.T) {
	p, err := UnmarshalProblemJSON([]byte(`{
		"supply": [20, 30],
		"demand": [25, 25],
		"costs": [[4, 6], [5, 3]]
	}`))
	require.NoError(t, err)

	prog, err := p.Build()
	require.NoError(t, err)
	sol, err := transport.SolveProgram(prog)
	require.NoError(t, err)
	require.Equal(t, transport.Optimal, sol.Status)
	require.InDelta(t, 180, sol.TotalCost, 1e-9)

	s, err := SolutionToStruct(sol)
	require.NoError(t, err)
	b, err := MarshalSolutionJSON(sol)
	require.NoError(t, err)

	decoded := &structpb.Struct{}
	require.NoError(t, protojson.Unmarshal(b, decoded))
	if diff := cmp.Diff(s, decoded, protocmp.Transform()); diff != "" {
		t.Errorf("MarshalSolutionJSON() returned with unexpected diff (-want+got);\n%s", diff)
	}

	m := decoded.AsMap()
	require.Equal(t, "Optimal", m["status"])
	require.Equal(t, 180.0, m["total_cost"])
	require.Equal(t, []any{[]any{20.0, 0.0}, []any{5.0, 25.0}}, m["flows"])
}

func TestSolutionToStruct_NotOptimal(t *testing.T) {
	sol := &transport.Solution{Status: transport.Infeasible}

	s, err := SolutionToStruct(sol)
	require.NoError(t, err)

	m := s.AsMap()
	require.Equal(t, "Infeasible", m["status"])
	require.Nil(t, m["flows"])
}

func TestProblemFromState(t *testing.T) {
	s, err := transport.NewProblemState(1, 2)
	require.NoError(t, err)
	require.NoError(t, s.SetRoute(0, 1, 7))
	require.NoError(t, s.SetSupply([]float64{3}))

	got := ProblemFromState(s)
	want := &Problem{
		Costs:  transport.CostMatrix{{transport.NoRoute, transport.Route(7)}},
		Supply: []float64{3},
		Demand: []float64{0, 0},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(transport.Cost{})); diff != "" {
		t.Errorf("ProblemFromState() returned with unexpected diff (-want+got);\n%s", diff)
	}
}

func fieldsOf(text string) [][]string {
	var out [][]string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		out = append(out, strings.Fields(line))
	}
	return out
}

func TestWriteTable(t *testing.T) {
	costs := transport.CostMatrix{
		{transport.Route(4), transport.NoRoute},
		{transport.Route(5), transport.Route(3)},
	}
	sol, err := transport.Solve(costs, []float64{20, 30}, []float64{25, 25})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, costs, sol))

	want := [][]string{
		{"Status:", "Optimal"},
		{"Total", "Cost:", "180"},
		{"Origin", "Destination", "Units", "Cost"},
		{"Origin", "1", "Destination", "1", "20", "4"},
		{"Origin", "1", "Destination", "2", "0", "∞"},
		{"Origin", "2", "Destination", "1", "5", "5"},
		{"Origin", "2", "Destination", "2", "25", "3"},
	}
	require.Equal(t, want, fieldsOf(buf.String()))
}

func TestWriteTable_NotOptimal(t *testing.T) {
	costs := transport.CostMatrix{{transport.Route(1)}}
	sol, err := transport.Solve(costs, []float64{1}, []float64{2})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, costs, sol))
	require.Equal(t, "Status: Infeasible\nTotal Cost: 0\n", buf.String())
}
