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
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestProblemState_Routes(t *testing.T) {
	s, err := NewProblemState(2, 3)
	if err != nil {
		t.Fatalf("NewProblemState() returned with unexpected error %v", err)
	}

	for _, a := range []Arc{{1, 2, 5}, {0, 1, 2}, {1, 0, 4}, {0, 1, 3}} {
		if err := s.SetRoute(a.Origin, a.Destination, a.Cost); err != nil {
			t.Fatalf("SetRoute(%v) returned with unexpected error %v", a, err)
		}
	}
	if err := s.RemoveRoute(1, 0); err != nil {
		t.Fatalf("RemoveRoute() returned with unexpected error %v", err)
	}

	want := []Arc{{0, 1, 3}, {1, 2, 5}}
	if diff := cmp.Diff(want, s.Routes()); diff != "" {
		t.Errorf("Routes() returned with unexpected diff (-want+got);\n%s", diff)
	}
	if got, want := s.Routes()[0].String(), "0 -> 1: 3"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestProblemState_InvalidEdits(t *testing.T) {
	s, err := NewProblemState(2, 2)
	if err != nil {
		t.Fatalf("NewProblemState() returned with unexpected error %v", err)
	}

	testCases := []struct {
		name string
		edit func() error
	}{
		{"OriginOutOfRange", func() error { return s.SetRoute(2, 0, 1) }},
		{"DestinationOutOfRange", func() error { return s.SetRoute(0, -1, 1) }},
		{"NegativeCost", func() error { return s.SetRoute(0, 0, -1) }},
		{"RemoveOutOfRange", func() error { return s.RemoveRoute(0, 2) }},
		{"ShortSupply", func() error { return s.SetSupply([]float64{1}) }},
		{"LongDemand", func() error { return s.SetDemand([]float64{1, 2, 3}) }},
		{"EmptyResize", func() error { return s.Resize(0, 2) }},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if err := test.edit(); !errors.Is(err, ErrShape) {
				t.Errorf("err = %v, want %v", err, ErrShape)
			}
		})
	}
	if got := s.Routes(); len(got) != 0 {
		t.Errorf("Routes() = %v, want no routes after rejected edits", got)
	}

	if _, err := NewProblemState(1, 0); !errors.Is(err, ErrShape) {
		t.Errorf("NewProblemState(1, 0) err = %v, want %v", err, ErrShape)
	}
}

func TestProblemState_Resize(t *testing.T) {
	s, err := NewProblemState(2, 2)
	if err != nil {
		t.Fatalf("NewProblemState() returned with unexpected error %v", err)
	}
	if err := s.SetRoute(0, 0, 1); err != nil {
		t.Fatalf("SetRoute() returned with unexpected error %v", err)
	}
	if err := s.SetRoute(1, 1, 2); err != nil {
		t.Fatalf("SetRoute() returned with unexpected error %v", err)
	}
	if err := s.SetSupply([]float64{10, 20}); err != nil {
		t.Fatalf("SetSupply() returned with unexpected error %v", err)
	}

	if err := s.Resize(3, 1); err != nil {
		t.Fatalf("Resize() returned with unexpected error %v", err)
	}

	want := CostMatrix{{Route(1)}, {NoRoute}, {NoRoute}}
	if diff := cmp.Diff(want, s.Costs(), cmp.AllowUnexported(Cost{})); diff != "" {
		t.Errorf("Costs() returned with unexpected diff (-want+got);\n%s", diff)
	}
	if diff := cmp.Diff([]float64{10, 20, 0}, s.Supply()); diff != "" {
		t.Errorf("Supply() returned with unexpected diff (-want+got);\n%s", diff)
	}
	if diff := cmp.Diff([]float64{0}, s.Demand()); diff != "" {
		t.Errorf("Demand() returned with unexpected diff (-want+got);\n%s", diff)
	}
}

func TestProblemState_Build(t *testing.T) {
	s, err := NewProblemState(2, 2)
	if err != nil {
		t.Fatalf("NewProblemState() returned with unexpected error %v", err)
	}
	for _, a := range []Arc{{0, 0, 4}, {0, 1, 6}, {1, 0, 5}, {1, 1, 3}} {
		if err := s.SetRoute(a.Origin, a.Destination, a.Cost); err != nil {
			t.Fatalf("SetRoute(%v) returned with unexpected error %v", a, err)
		}
	}
	if err := s.SetSupply([]float64{20, 30}); err != nil {
		t.Fatalf("SetSupply() returned with unexpected error %v", err)
	}
	if err := s.SetDemand([]float64{25, 25}); err != nil {
		t.Fatalf("SetDemand() returned with unexpected error %v", err)
	}

	p, err := s.Build()
	if err != nil {
		t.Fatalf("Build() returned with unexpected error %v", err)
	}
	sol, err := SolveProgram(p)
	if err != nil {
		t.Fatalf("SolveProgram() returned with unexpected error %v", err)
	}
	if sol.Status != Optimal || sol.TotalCost != 180 {
		t.Errorf("SolveProgram() = %v, %v, want %v, 180", sol.Status, sol.TotalCost, Optimal)
	}

	// Editing the state afterwards leaves the built program untouched.
	if err := s.RemoveRoute(0, 0); err != nil {
		t.Fatalf("RemoveRoute() returned with unexpected error %v", err)
	}
	if !p.Cost(0, 0).IsRoute() {
		t.Errorf("Cost(0, 0) = %v, want a route", p.Cost(0, 0))
	}
}
