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

package lpmodel

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestInterval_Constructors(t *testing.T) {
	inf := math.Inf(1)
	testCases := []struct {
		name string
		got  Interval
		want Interval
	}{
		{name: "NewInterval", got: NewInterval(-5, 10), want: Interval{-5, 10}},
		{name: "AtMost", got: AtMost(3), want: Interval{-inf, 3}},
		{name: "AtLeast", got: AtLeast(3), want: Interval{3, inf}},
		{name: "Exactly", got: Exactly(2.5), want: Interval{2.5, 2.5}},
		{name: "NonNegative", got: NonNegative(), want: Interval{0, inf}},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			if diff := cmp.Diff(test.want, test.got); diff != "" {
				t.Errorf("%s returned with unexpected diff (-want+got);\n%s", test.name, diff)
			}
		})
	}
}

func TestInterval_Offset(t *testing.T) {
	inf := math.Inf(1)
	testCases := []struct {
		interval Interval
		delta    float64
		want     Interval
	}{
		{interval: Interval{0, 10}, delta: -2, want: Interval{-2, 8}},
		{interval: AtMost(5), delta: 3, want: Interval{-inf, 8}},
		{interval: AtLeast(5), delta: -5, want: Interval{0, inf}},
		{interval: Interval{-inf, inf}, delta: 100, want: Interval{-inf, inf}},
	}

	for _, test := range testCases {
		got := test.interval.Offset(test.delta)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("%v.Offset(%v) returned with unexpected diff (-want+got);\n%s", test.interval, test.delta, diff)
		}
	}
}

func TestInterval_Predicates(t *testing.T) {
	if got := NewInterval(2, 1).IsEmpty(); !got {
		t.Errorf("[2,1].IsEmpty() = %v, want true", got)
	}
	if got := Exactly(1).IsEmpty(); got {
		t.Errorf("[1,1].IsEmpty() = %v, want false", got)
	}
	if got := Exactly(1).IsFixed(); !got {
		t.Errorf("[1,1].IsFixed() = %v, want true", got)
	}
	if got := AtMost(1).HasLower(); got {
		t.Errorf("AtMost(1).HasLower() = %v, want false", got)
	}
	if got := AtLeast(1).HasUpper(); got {
		t.Errorf("AtLeast(1).HasUpper() = %v, want false", got)
	}
	if got := NewInterval(0, 1).Contains(1+1e-10, 1e-9); !got {
		t.Errorf("[0,1].Contains(1+1e-10, 1e-9) = %v, want true", got)
	}
	if got := NewInterval(0, 1).Contains(1.1, 1e-9); got {
		t.Errorf("[0,1].Contains(1.1, 1e-9) = %v, want false", got)
	}
}

func TestInterval_Validate(t *testing.T) {
	testCases := []struct {
		interval Interval
		wantErr  bool
	}{
		{interval: NonNegative(), wantErr: false},
		{interval: Exactly(0), wantErr: false},
		{interval: NewInterval(1, 0), wantErr: true},
		{interval: NewInterval(math.NaN(), 0), wantErr: true},
		{interval: NewInterval(math.Inf(1), math.Inf(1)), wantErr: true},
		{interval: NewInterval(math.Inf(-1), math.Inf(-1)), wantErr: true},
	}

	for _, test := range testCases {
		err := test.interval.validate()
		if gotErr := err != nil; gotErr != test.wantErr {
			t.Errorf("%v.validate() = %v, want error %v", test.interval, err, test.wantErr)
		}
	}
}
