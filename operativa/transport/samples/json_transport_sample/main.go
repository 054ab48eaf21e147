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

// The json_transport_sample command reads a transportation problem as JSON, for example
//
//	{"supply": [20, 30], "demand": [25, 25], "costs": [[4, null], [5, 3]]}
//
// from a file or stdin, solves it and prints the solution as JSON. A null cost is a missing
// route.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	log "github.com/golang/glog"
	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/linear_solver/go/linearsolver"
	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/transport/go/transport"
	"github.com/CristhianFernandoTiconaChavez/Operativa/operativa/transport/go/transportio"
)

var (
	input         = flag.String("input", "", "problem file, stdin when empty")
	dense         = flag.Bool("dense", false, "solve with the dense simplex")
	maxIterations = flag.Int("max_iterations", 0, "pivot limit of the transportation simplex, the default when 0")
	timeLimit     = flag.Duration("time_limit", 10*time.Second, "time limit of the solve")
)

func readInput() ([]byte, error) {
	if *input == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(*input)
}

func jsonTransportSample() error {
	b, err := readInput()
	if err != nil {
		return fmt.Errorf("failed to read the problem: %w", err)
	}
	problem, err := transportio.UnmarshalProblemJSON(b)
	if err != nil {
		return err
	}
	p, err := problem.Build()
	if err != nil {
		return fmt.Errorf("failed to build the transportation problem: %w", err)
	}

	params := &linearsolver.Parameters{MaxIterations: *maxIterations}
	if *dense {
		params.Method = linearsolver.MethodDenseSimplex
	}
	ctx, cancel := context.WithTimeout(context.Background(), *timeLimit)
	defer cancel()

	sol, err := transport.SolveProgram(p, transport.WithParameters(params), transport.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to solve the transportation problem: %w", err)
	}
	out, err := transportio.MarshalSolutionJSON(sol)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	flag.Parse()
	if err := jsonTransportSample(); err != nil {
		log.Exitf("jsonTransportSample returned with error: %v", err)
	}
}
