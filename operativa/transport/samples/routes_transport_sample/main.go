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

// The routes_transport_sample command builds an unbalanced transportation problem route by
// route, with supplies and demands given as comma-separated lists, and solves it.
package main

import (
	"flag"
	"fmt"
	"os"

	log "github.com/golang/glog"
	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/linear_solver/go/linearsolver"
	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/transport/go/transport"
	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/transport/go/transportio"
)

var (
	origins      = flag.Int("origins", 3, "number of origins")
	destinations = flag.Int("destinations", 3, "number of destinations")
	supplyList   = flag.String("supply", "40,30,50", "comma-separated supply of each origin")
	demandList   = flag.String("demand", "25,35,30", "comma-separated demand of each destination")
	northwest    = flag.Bool("northwest", false, "start from the northwest corner instead of the minimum cost cell")
)

func routesTransportSample() error {
	state, err := transport.NewProblemState(*origins, *destinations)
	if err != nil {
		return err
	}

	// Origin 2 cannot reach destination 1 and origin 3 cannot reach destination 2.
	var routes transportio.RouteTable
	routes.Add(0, 0, 8).Add(0, 1, 6).Add(0, 2, 10).
		Add(1, 1, 12).Add(1, 2, 13).
		Add(2, 0, 14).Add(2, 2, 16).
		Add(0, 2, 9)
	if err := routes.Apply(state); err != nil {
		return fmt.Errorf("failed to add the routes: %w", err)
	}

	supply, err := transportio.ParseVector(*supplyList, state.Origins())
	if err != nil {
		return fmt.Errorf("invalid supply: %w", err)
	}
	demand, err := transportio.ParseVector(*demandList, state.Destinations())
	if err != nil {
		return fmt.Errorf("invalid demand: %w", err)
	}
	if err := state.SetSupply(supply); err != nil {
		return err
	}
	if err := state.SetDemand(demand); err != nil {
		return err
	}

	for _, a := range state.Routes() {
		fmt.Printf("%s -> %s: %v\n", transportio.OriginLabel(a.Origin), transportio.DestinationLabel(a.Destination), a.Cost)
	}

	p, err := state.Build()
	if err != nil {
		return fmt.Errorf("failed to build the transportation problem: %w", err)
	}
	params := linearsolver.DefaultParameters()
	if *northwest {
		params.InitialHeuristic = linearsolver.NorthwestCorner
	}
	sol, err := transport.SolveProgram(p, transport.WithParameters(params))
	if err != nil {
		return fmt.Errorf("failed to solve the transportation problem: %w", err)
	}

	fmt.Println()
	return transportio.WriteTable(os.Stdout, state.Costs(), sol)
}

func main() {
	flag.Parse()
	if err := routesTransportSample(); err != nil {
		log.Exitf("routesTransportSample returned with error: %v", err)
	}
}
