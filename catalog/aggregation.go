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

package catalog

import "github.com/dolthub/go-mongo-compiler/typesys"

func init() {
	// Arbitrary(x) picks one-of-the-values; it is what a grouped,
	// non-aggregated SELECT column is wrapped in (see the compiler's
	// grouped-reference rewrite).
	Default.Register(&Function{
		Name:  "Arbitrary",
		Doc:   "Arbitrary(x) yields one (unspecified) value of x across a group.",
		Arity: 1,
		Type: func(args []typesys.Type) (typesys.Type, error) {
			return args[0], nil
		},
	})

	numericAgg := func(name, doc string) *Function {
		return &Function{
			Name:  name,
			Doc:   doc,
			Arity: 1,
			Type: func(args []typesys.Type) (typesys.Type, error) {
				return typesys.Lub(typesys.Int, typesys.Dec), nil
			},
		}
	}
	Default.Register(numericAgg("Sum", "Sum(x) aggregates by addition over a group."))
	Default.Register(numericAgg("Avg", "Avg(x) aggregates by average over a group."))

	identityAgg := func(name, doc string) *Function {
		return &Function{
			Name:  name,
			Doc:   doc,
			Arity: 1,
			Type: func(args []typesys.Type) (typesys.Type, error) {
				return args[0], nil
			},
		}
	}
	Default.Register(identityAgg("Min", "Min(x) aggregates by minimum over a group."))
	Default.Register(identityAgg("Max", "Max(x) aggregates by maximum over a group."))
	Default.Register(identityAgg("First", "First(x) picks the first value encountered in a group."))
	Default.Register(identityAgg("Last", "Last(x) picks the last value encountered in a group."))

	Default.Register(&Function{
		Name:  "Count",
		Doc:   "Count(x) counts non-Null values in a group; Count(Constant(1)) is COUNT(*).",
		Arity: 1,
		Type: func(args []typesys.Type) (typesys.Type, error) {
			return typesys.Int, nil
		},
	})
}
