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
	"fmt"
	"math"
)

// Interval stores the closed interval `[Lower,Upper]` of a variable or a constraint. Either
// side may be infinite. If `Lower` is greater than `Upper`, the interval is considered empty.
type Interval struct {
	Lower float64
	Upper float64
}

// NewInterval creates the interval `[lower,upper]`.
func NewInterval(lower, upper float64) Interval {
	return Interval{Lower: lower, Upper: upper}
}

// AtMost returns the interval `(-inf,upper]`.
func AtMost(upper float64) Interval {
	return Interval{Lower: math.Inf(-1), Upper: upper}
}

// AtLeast returns the interval `[lower,+inf)`.
func AtLeast(lower float64) Interval {
	return Interval{Lower: lower, Upper: math.Inf(1)}
}

// Exactly returns the singleton interval `[v,v]`.
func Exactly(v float64) Interval {
	return Interval{Lower: v, Upper: v}
}

// NonNegative returns `[0,+inf)`, the default interval of a new variable.
func NonNegative() Interval {
	return AtLeast(0)
}

// offsetBound adds `delta` to `v` unless `v` is infinite, in which case it is an unbounded
// side of an interval and stays as is.
func offsetBound(v, delta float64) float64 {
	if math.IsInf(v, 0) {
		return v
	}
	return v + delta
}

// Offset adds an offset to both sides of the interval. Infinite sides are left untouched.
func (i Interval) Offset(delta float64) Interval {
	return Interval{offsetBound(i.Lower, delta), offsetBound(i.Upper, delta)}
}

// IsEmpty reports whether no value lies in the interval.
func (i Interval) IsEmpty() bool {
	return i.Lower > i.Upper || math.IsNaN(i.Lower) || math.IsNaN(i.Upper)
}

// Contains reports whether `v` lies in the interval, allowing a violation of at most `tol`.
func (i Interval) Contains(v, tol float64) bool {
	return v >= i.Lower-tol && v <= i.Upper+tol
}

// HasLower reports whether the interval is bounded from below.
func (i Interval) HasLower() bool {
	return !math.IsInf(i.Lower, -1)
}

// HasUpper reports whether the interval is bounded from above.
func (i Interval) HasUpper() bool {
	return !math.IsInf(i.Upper, 1)
}

// IsFixed reports whether the interval holds a single value.
func (i Interval) IsFixed() bool {
	return i.Lower == i.Upper
}

// String prints the interval as `[l,u]`, using `-inf`/`+inf` for unbounded sides.
func (i Interval) String() string {
	return fmt.Sprintf("[%v,%v]", i.Lower, i.Upper)
}

// validate checks that the interval is usable as a bound: no NaN, not empty, and not
// infinite on the wrong side.
func (i Interval) validate() error {
	switch {
	case math.IsNaN(i.Lower) || math.IsNaN(i.Upper):
		return fmt.Errorf("interval %v has a NaN bound", i)
	case math.IsInf(i.Lower, 1) || math.IsInf(i.Upper, -1):
		return fmt.Errorf("interval %v is infinite on the wrong side", i)
	case i.Lower > i.Upper:
		return fmt.Errorf("interval %v is empty", i)
	}
	return nil
}
