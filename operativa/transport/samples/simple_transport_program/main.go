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

// The simple_transport_program command solves a balanced transportation problem with two
// origins and two destinations.
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/golang/glog"
	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/transport/go/transport"
	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/transport/go/transportio"
)

func simpleTransportProgram() error {
	costs := transport.CostMatrix{
		{transport.Route(4), transport.Route(6)},
		{transport.Route(5), transport.Route(3)},
	}
	supply := []float64{20, 30}
	demand := []float64{25, 25}

	sol, err := transport.Solve(costs, supply, demand)
	if err != nil {
		return fmt.Errorf("failed to solve the transportation problem: %w", err)
	}
	return transportio.WriteTable(os.Stdout, costs, sol)
}

func main() {
	flag.Parse()
	if err := simpleTransportProgram(); err != nil {
		log.Exitf("simpleTransportProgram returned with error: %v", err)
	}
}
