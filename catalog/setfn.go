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

import (
	"github.com/dolthub/go-mongo-compiler/typesys"
)

func init() {
	setOp1 := func(name, doc string) *Function {
		return &Function{
			Name:  name,
			Doc:   doc,
			Arity: 2,
			Type: func(args []typesys.Type) (typesys.Type, error) {
				return args[0], nil
			},
		}
	}

	Default.Register(setOp1("Filter", "Filter(set, predicate) keeps elements satisfying predicate; the WHERE/HAVING lowering target."))
	Default.Register(setOp1("GroupBy", "GroupBy(set, keys) partitions set by keys; the GROUP BY lowering target."))
	Default.Register(&Function{
		Name:  "OrderBy",
		Doc:   "OrderBy(set, keys, directions) sorts set by keys, each paired with an ASC/DESC token.",
		Arity: 3,
		Type: func(args []typesys.Type) (typesys.Type, error) {
			return args[0], nil
		},
	})
	Default.Register(&Function{
		Name:  "Distinct",
		Doc:   "Distinct(set) removes duplicate elements.",
		Arity: 1,
		Type: func(args []typesys.Type) (typesys.Type, error) {
			return args[0], nil
		},
	})
	Default.Register(setOp1("DistinctBy", "DistinctBy(set, keys) removes elements that duplicate a prior element's keys."))

	takeOrDrop := func(name, doc string) *Function {
		return &Function{
			Name:   name,
			Doc:    doc,
			Arity:  2,
			Domain: []typesys.Type{typesys.Top, typesys.Int},
			Type: func(args []typesys.Type) (typesys.Type, error) {
				return args[0], nil
			},
		}
	}
	Default.Register(takeOrDrop("Take", "Take(set, n) is LIMIT n."))
	Default.Register(takeOrDrop("Drop", "Drop(set, n) is OFFSET n."))

	Default.Register(&Function{
		Name:  "Squash",
		Doc:   "Squash(set) flattens the nested left/right object shape a JOIN produces onto a single level.",
		Arity: 1,
		Type: func(args []typesys.Type) (typesys.Type, error) {
			return args[0], nil
		},
	})

	Default.Register(&Function{
		Name:  "Join",
		Doc:   "Join(left, right, kind, clause) is the FROM-clause JOIN lowering target; kind is one of LeftOuter, RightOuter, Inner, FullOuter.",
		Arity: 4,
		Type: func(args []typesys.Type) (typesys.Type, error) {
			return typesys.Top, nil
		},
	})
}
