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

// Package transportio converts transportation problems and their solutions from and to the
// formats used around the solver: comma-separated lists typed by users, route tables, JSON
// documents and text tables.
package transportio

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedVector is wrapped by the errors of ParseVector.
var ErrMalformedVector = errors.New("transportio: malformed vector")

// ParseVector parses a comma-separated list of exactly `want` finite numbers, such as
// "20, 30,10". Whitespace around the numbers is ignored.
func ParseVector(text string, want int) ([]float64, error) {
	if strings.TrimSpace(text) == "" {
		if want == 0 {
			return []float64{}, nil
		}
		return nil, fmt.Errorf("empty list, want %d values: %w", want, ErrMalformedVector)
	}
	fields := strings.Split(text, ",")
	if len(fields) != want {
		return nil, fmt.Errorf("got %d values, want %d: %w", len(fields), want, ErrMalformedVector)
	}
	out := make([]float64, len(fields))
	for k, f := range fields {
		f = strings.TrimSpace(f)
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d (%q) is not a number: %w", k+1, f, ErrMalformedVector)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("value %d (%q) is not finite: %w", k+1, f, ErrMalformedVector)
		}
		out[k] = v
	}
	return out, nil
}

// FormatVector is the inverse of ParseVector.
func FormatVector(v []float64) string {
	parts := make([]string, len(v))
	for k, x := range v {
		parts[k] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}
