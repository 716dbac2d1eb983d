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
	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/dolthub/go-mongo-compiler/logical"
	"github.com/dolthub/go-mongo-compiler/typesys"
	"github.com/shopspring/decimal"
)

// comparisonTyper is shared by every relational comparison: it is total
// over Top x Top -> Bool, and folds to a Const(Bool) when both operands
// are themselves Const.
func comparisonTyper(cmp func(a, b data.Value) bool) Typer {
	return func(args []typesys.Type) (typesys.Type, error) {
		if args[0].Tag() == typesys.TagConst && args[1].Tag() == typesys.TagConst {
			return typesys.Const(data.Bool(cmp(args[0].ConstValue(), args[1].ConstValue()))), nil
		}
		return typesys.Bool, nil
	}
}

// dataCompare orders two Number or two Str atoms; it is the ordering used
// by constant folding over literal comparisons produced by the compiler.
func dataCompare(a, b data.Value) int {
	if a.IsNumber() && b.IsNumber() {
		return numberAsDecimal(a).Cmp(numberAsDecimal(b))
	}
	if a.Kind() == data.KindStr && b.Kind() == data.KindStr {
		switch {
		case a.Str() < b.Str():
			return -1
		case a.Str() > b.Str():
			return 1
		default:
			return 0
		}
	}
	return 0
}

// numberAsDecimal widens an Int or Dec atom to decimal.Decimal so the two
// Number variants can be compared uniformly.
func numberAsDecimal(v data.Value) decimal.Decimal {
	if v.Kind() == data.KindDec {
		return v.DecVal()
	}
	return decimal.NewFromBigInt(v.Int(), 0)
}

func init() {
	relOp := func(name string, cmp func(a, b data.Value) bool) *Function {
		return &Function{
			Name:   name,
			Doc:    name + " compares two values of compatible type.",
			Arity:  2,
			Domain: []typesys.Type{typesys.Top, typesys.Top},
			Type:   comparisonTyper(cmp),
		}
	}

	Default.Register(relOp("Eq", func(a, b data.Value) bool { return a.Equal(b) }))
	Default.Register(relOp("Neq", func(a, b data.Value) bool { return !a.Equal(b) }))
	Default.Register(relOp("Lt", func(a, b data.Value) bool { return dataCompare(a, b) < 0 }))
	Default.Register(relOp("Lte", func(a, b data.Value) bool { return dataCompare(a, b) <= 0 }))
	Default.Register(relOp("Gt", func(a, b data.Value) bool { return dataCompare(a, b) > 0 }))
	Default.Register(relOp("Gte", func(a, b data.Value) bool { return dataCompare(a, b) >= 0 }))

	Default.Register(&Function{
		Name:   "Between",
		Doc:    "Between(x, lo, hi) simplifies to And(Gte(x, lo), Lte(x, hi)).",
		Arity:  3,
		Domain: []typesys.Type{typesys.Top, typesys.Top, typesys.Top},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			return typesys.Bool, nil
		},
		Simplify: func(args []logical.Plan) (logical.Plan, bool) {
			gte := Default.MustLookup("Gte")
			lte := Default.MustLookup("Lte")
			and := Default.MustLookup("And")
			return logical.Invoke(and,
				logical.Invoke(gte, args[0], args[1]),
				logical.Invoke(lte, args[0], args[2]),
			), true
		},
	})
}
