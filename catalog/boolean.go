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
)

func isConstBool(p logical.Plan, want bool) bool {
	return p.Tag() == logical.TagConstant && p.ConstVal().Kind() == data.KindBool && p.ConstVal().Bool() == want
}

func init() {
	Default.Register(&Function{
		Name:   "And",
		Doc:    "And(a, b) is boolean conjunction. And(True, x) = x; And(False, _) = False.",
		Arity:  2,
		Domain: []typesys.Type{typesys.Bool, typesys.Bool},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			return typesys.Bool, nil
		},
		Simplify: func(args []logical.Plan) (logical.Plan, bool) {
			if isConstBool(args[0], true) {
				return args[1], true
			}
			if isConstBool(args[1], true) {
				return args[0], true
			}
			if isConstBool(args[0], false) || isConstBool(args[1], false) {
				return logical.Constant(data.Bool(false)), true
			}
			return logical.Plan{}, false
		},
	})

	Default.Register(&Function{
		Name:   "Or",
		Doc:    "Or(a, b) is boolean disjunction. Or(False, x) = x; Or(True, _) = True.",
		Arity:  2,
		Domain: []typesys.Type{typesys.Bool, typesys.Bool},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			return typesys.Bool, nil
		},
		Simplify: func(args []logical.Plan) (logical.Plan, bool) {
			if isConstBool(args[0], false) {
				return args[1], true
			}
			if isConstBool(args[1], false) {
				return args[0], true
			}
			if isConstBool(args[0], true) || isConstBool(args[1], true) {
				return logical.Constant(data.Bool(true)), true
			}
			return logical.Plan{}, false
		},
	})

	Default.Register(&Function{
		Name:   "Not",
		Doc:    "Not(a) is boolean negation.",
		Arity:  1,
		Domain: []typesys.Type{typesys.Bool},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			if args[0].Tag() == typesys.TagConst {
				return typesys.Const(data.Bool(!args[0].ConstValue().Bool())), nil
			}
			return typesys.Bool, nil
		},
		Untype: func(expected typesys.Type) ([]typesys.Type, error) {
			if !typesys.Contains(typesys.Bool, expected) {
				return nil, typeErr(typesys.Bool, expected)
			}
			return []typesys.Type{typesys.Bool}, nil
		},
		Simplify: func(args []logical.Plan) (logical.Plan, bool) {
			if args[0].Tag() == logical.TagConstant && args[0].ConstVal().Kind() == data.KindBool {
				return logical.Constant(data.Bool(!args[0].ConstVal().Bool())), true
			}
			return logical.Plan{}, false
		},
	})

	Default.Register(&Function{
		Name:   "Cond",
		Doc:    "Cond(p, a, b) yields a when p is true, b otherwise. Desugars a CASE/SWITCH chain.",
		Arity:  3,
		Domain: []typesys.Type{typesys.Bool, typesys.Top, typesys.Top},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			if args[0].Tag() == typesys.TagConst {
				if args[0].ConstValue().Bool() {
					return args[1], nil
				}
				return args[2], nil
			}
			return typesys.Lub(args[1], args[2]), nil
		},
		Simplify: func(args []logical.Plan) (logical.Plan, bool) {
			if isConstBool(args[0], true) {
				return args[1], true
			}
			if isConstBool(args[0], false) {
				return args[2], true
			}
			return logical.Plan{}, false
		},
	})

	Default.Register(&Function{
		Name:  "Coalesce",
		Doc:   "Coalesce(args...) yields the first non-Null argument. Coalesce(Null, y) = y; Coalesce(x, Null) = x.",
		Arity: -1,
		Type: func(args []typesys.Type) (typesys.Type, error) {
			result := typesys.Bottom
			for _, a := range args {
				result = typesys.Lub(result, a)
			}
			return result, nil
		},
		Simplify: func(args []logical.Plan) (logical.Plan, bool) {
			filtered := make([]logical.Plan, 0, len(args))
			for _, a := range args {
				if a.Tag() == logical.TagConstant && a.ConstVal().Kind() == data.KindNull {
					continue
				}
				filtered = append(filtered, a)
				// A Null constant never contributes, wherever it appears. A
				// non-constant may still be Null at runtime, so later
				// arguments stay reachable after it; a non-Null constant
				// always wins, so everything after it is dead.
				if a.Tag() == logical.TagConstant {
					break
				}
			}
			if len(filtered) == len(args) {
				return logical.Plan{}, false
			}
			if len(filtered) == 0 {
				return logical.Constant(data.Null), true
			}
			if len(filtered) == 1 {
				return filtered[0], true
			}
			return logical.Invoke(Default.MustLookup("Coalesce"), filtered...), true
		},
	})

	Default.Register(&Function{
		Name:   "IsNull",
		Doc:    "IsNull(a) tests for the Null atom.",
		Arity:  1,
		Domain: []typesys.Type{typesys.Top},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			if args[0].Tag() == typesys.TagConst {
				return typesys.Const(data.Bool(args[0].ConstValue().Kind() == data.KindNull)), nil
			}
			return typesys.Bool, nil
		},
	})

	Default.Register(&Function{
		Name:  "NullIf",
		Doc:   "NullIf(a, b) yields Null when a equals b, else a. Desugars to Cond(Eq(a, b), Null, a).",
		Arity: 2,
		Type: func(args []typesys.Type) (typesys.Type, error) {
			return typesys.Lub(typesys.Const(data.Null), args[0]), nil
		},
		Simplify: func(args []logical.Plan) (logical.Plan, bool) {
			eq := logical.Invoke(Default.MustLookup("Eq"), args[0], args[1])
			cond := logical.Invoke(Default.MustLookup("Cond"), eq, logical.Constant(data.Null), args[0])
			return cond, true
		},
	})

	Default.Register(&Function{
		Name:  "IfNull",
		Doc:   "IfNull(a, b) yields b when a is Null, else a. Desugars to Coalesce(a, b).",
		Arity: 2,
		Type: func(args []typesys.Type) (typesys.Type, error) {
			return typesys.Lub(args[0], args[1]), nil
		},
		Simplify: func(args []logical.Plan) (logical.Plan, bool) {
			return logical.Invoke(Default.MustLookup("Coalesce"), args[0], args[1]), true
		},
	})

	Default.Register(&Function{
		Name:   "Constantly",
		Doc:    "Constantly(const, table) yields const regardless of table's value; used to make a constant SELECT projection survive downstream set operations.",
		Arity:  2,
		Domain: []typesys.Type{typesys.Top, typesys.Top},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			return args[0], nil
		},
	})
}

func typeErr(expected, observed typesys.Type) error {
	info := typesys.Typecheck(observed, expected)
	if info == nil {
		return nil
	}
	return &typeError{info}
}

type typeError struct {
	info *typesys.TypeErrorInfo
}

func (e *typeError) Error() string {
	return "type error: expected " + e.info.Expected.String() + ", observed " + e.info.Observed.String()
}
