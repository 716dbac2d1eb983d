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

package compiler

import (
	"github.com/dolthub/go-mongo-compiler/catalog"
	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/dolthub/go-mongo-compiler/logical"
)

// The pipeline shape (FROM/WHERE/GROUP BY/.../LIMIT) invokes these
// catalog functions by construction; resolving them once at package init
// avoids a MustLookup call (and its panic-on-miss path, reserved for
// genuinely unexpected names) at every compile.
var (
	objectProjectFn = catalog.Default.MustLookup("ObjectProject")
	objectConcatFn  = catalog.Default.MustLookup("ObjectConcat")
	arbitraryFn     = catalog.Default.MustLookup("Arbitrary")
	makeObjectFn    = catalog.Default.MustLookup("MakeObject")
	makeArrayNFn    = catalog.Default.MustLookup("MakeArrayN")
	deleteFieldFn   = catalog.Default.MustLookup("DeleteField")
	spliceFn        = catalog.Default.MustLookup("Splice")
	filterFn        = catalog.Default.MustLookup("Filter")
	groupByFn       = catalog.Default.MustLookup("GroupBy")
	orderByFn       = catalog.Default.MustLookup("OrderBy")
	distinctFn      = catalog.Default.MustLookup("Distinct")
	distinctByFn    = catalog.Default.MustLookup("DistinctBy")
	takeFn          = catalog.Default.MustLookup("Take")
	dropFn          = catalog.Default.MustLookup("Drop")
	squashFn        = catalog.Default.MustLookup("Squash")
	joinFn          = catalog.Default.MustLookup("Join")
	condFn          = catalog.Default.MustLookup("Cond")
	eqFn            = catalog.Default.MustLookup("Eq")
	searchFn        = catalog.Default.MustLookup("Search")
	constantlyFn    = catalog.Default.MustLookup("Constantly")
)

func strConst(s string) logical.Plan { return logical.Constant(data.Str(s)) }

func intConst(n int64) logical.Plan { return logical.Constant(data.IntFromInt64(n)) }
