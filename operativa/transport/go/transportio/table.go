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
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/transport/go/transport"
)

// OriginLabel returns the display name of origin i, counting from 1.
func OriginLabel(i int) string {
	return fmt.Sprintf("Origin %d", i+1)
}

// DestinationLabel returns the display name of destination j, counting from 1.
func DestinationLabel(j int) string {
	return fmt.Sprintf("Destination %d", j+1)
}

// WriteTable writes the status and total cost of `sol` followed, when the solution is optimal,
// by one row per cell of `costs` in (origin, destination) order: the units shipped and the unit
// cost, with ∞ for a missing route.
func WriteTable(w io.Writer, costs transport.CostMatrix, sol *transport.Solution) error {
	if _, err := fmt.Fprintf(w, "Status: %v\nTotal Cost: %s\n", sol.Status, strconv.FormatFloat(sol.TotalCost, 'g', -1, 64)); err != nil {
		return err
	}
	if sol.Flows == nil {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Origin\tDestination\tUnits\tCost")
	for i, row := range costs {
		for j, c := range row {
			units := strconv.FormatFloat(sol.Flow(i, j), 'g', -1, 64)
			fmt.Fprintf(tw, "%s\t%s\t%s\t%v\n", OriginLabel(i), DestinationLabel(j), units, c)
		}
	}
	return tw.Flush()
}
