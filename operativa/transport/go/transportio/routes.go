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
	"fmt"

	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/transport/go/transport"
)

// RouteTable records routes in the order they are entered. A route entered twice keeps its
// last cost.
type RouteTable struct {
	arcs []transport.Arc
}

// Add records the route from `origin` to `destination`, both 0-based.
func (rt *RouteTable) Add(origin, destination int, cost float64) *RouteTable {
	rt.arcs = append(rt.arcs, transport.Arc{Origin: origin, Destination: destination, Cost: cost})
	return rt
}

// Len returns the number of entries, repeated routes included.
func (rt *RouteTable) Len() int {
	return len(rt.arcs)
}

// Entries returns the entries in the order they were added.
func (rt *RouteTable) Entries() []transport.Arc {
	return append([]transport.Arc(nil), rt.arcs...)
}

// Apply sets every recorded route on `s`. It stops at the first route that `s` rejects.
func (rt *RouteTable) Apply(s *transport.ProblemState) error {
	for k, a := range rt.arcs {
		if err := s.SetRoute(a.Origin, a.Destination, a.Cost); err != nil {
			return fmt.Errorf("route %d (%v): %w", k, a, err)
		}
	}
	return nil
}
