// Copyright 2020-2021 Dolthub, Inc.
//
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

// Command planharness compiles a TOML-described SELECT fixture to a
// LogicalPlan and prints it, as the thin external surface this module's
// core packages deliberately stay free of.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/dolthub/go-mongo-compiler/compiler"
	"github.com/dolthub/go-mongo-compiler/debug"
	"github.com/sirupsen/logrus"
)

func main() {
	scenarioPath := flag.String("scenario", "", "path to a TOML scenario file (required)")
	format := flag.String("format", "tree", "output format: tree or json")
	verbose := flag.Bool("v", false, "enable debug-level compiler logging")
	flag.Parse()

	if *scenarioPath == "" {
		fmt.Fprintln(os.Stderr, "planharness: -scenario is required")
		os.Exit(2)
	}

	log := logrus.New()
	if *verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if err := run(*scenarioPath, *format, logrus.NewEntry(log)); err != nil {
		fmt.Fprintf(os.Stderr, "planharness: %v\n", err)
		os.Exit(1)
	}
}

func run(scenarioPath, format string, log *logrus.Entry) error {
	sel, opts, err := loadScenario(scenarioPath)
	if err != nil {
		return err
	}

	plan, err := compiler.Compile(context.Background(), sel, opts, log)
	if err != nil {
		return err
	}

	node := plan.DebugNode()
	switch format {
	case "tree":
		fmt.Print(debug.Tree(node))
	case "json":
		out, err := debug.JSON(node)
		if err != nil {
			return err
		}
		fmt.Println(out)
	default:
		return fmt.Errorf("unknown -format %q (want tree or json)", format)
	}
	return nil
}
