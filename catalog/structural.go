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
	"github.com/dolthub/go-mongo-compiler/cerrors"
	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/dolthub/go-mongo-compiler/logical"
	"github.com/dolthub/go-mongo-compiler/typesys"
)

func init() {
	Default.Register(&Function{
		Name:   "MakeObject",
		Doc:    "MakeObject(key, value) builds a single-field object; used by buildRecord to assemble SELECT projections.",
		Arity:  2,
		Domain: []typesys.Type{typesys.Str, typesys.Top},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			if args[0].Tag() != typesys.TagConst || args[0].ConstValue().Kind() != data.KindStr {
				return typesys.Type{}, typeErr(typesys.Str, args[0])
			}
			return typesys.Obj(map[string]typesys.Type{args[0].ConstValue().Str(): args[1]}, nil), nil
		},
	})

	Default.Register(&Function{
		Name:  "MakeArray",
		Doc:   "MakeArray(value) builds a single-element array.",
		Arity: 1,
		Type: func(args []typesys.Type) (typesys.Type, error) {
			return typesys.Arr(args[0]), nil
		},
	})

	Default.Register(&Function{
		Name:  "MakeArrayN",
		Doc:   "MakeArrayN(values...) builds an N-element array; used for GROUP BY / ORDER BY key lists.",
		Arity: -1,
		Type: func(args []typesys.Type) (typesys.Type, error) {
			elem := typesys.Bottom
			for _, a := range args {
				elem = typesys.Lub(elem, a)
			}
			return typesys.Arr(elem), nil
		},
	})

	Default.Register(&Function{
		Name:  "ObjectConcat",
		Doc:   "ObjectConcat(objs...) merges objects left-to-right, later fields winning on key collision.",
		Arity: -1,
		Type: func(args []typesys.Type) (typesys.Type, error) {
			fields := map[string]typesys.Type{}
			var rest *typesys.Type
			for _, a := range args {
				if a.Tag() != typesys.TagObj {
					return typesys.Type{}, typeErr(typesys.Obj(nil, nil), a)
				}
				for k, v := range a.Fields() {
					fields[k] = v
				}
				if a.Rest() != nil {
					rest = a.Rest()
				}
			}
			return typesys.Obj(fields, rest), nil
		},
	})

	Default.Register(&Function{
		Name:  "ArrayConcat",
		Doc:   "ArrayConcat(arrs...) concatenates arrays in order.",
		Arity: -1,
		Type: func(args []typesys.Type) (typesys.Type, error) {
			elem := typesys.Bottom
			for _, a := range args {
				e, ok := typesys.ArrayLike(a)
				if !ok {
					return typesys.Type{}, typeErr(typesys.Arr(typesys.Top), a)
				}
				elem = typesys.Lub(elem, e)
			}
			return typesys.Arr(elem), nil
		},
	})

	Default.Register(&Function{
		Name:   "ObjectProject",
		Doc:    "ObjectProject(obj, key) projects a single field out of an object; this is what Ident(name) compiles to.",
		Arity:  2,
		Domain: []typesys.Type{typesys.Obj(nil, nil), typesys.Str},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			if args[1].Tag() != typesys.TagConst || args[1].ConstValue().Kind() != data.KindStr {
				return typesys.Type{}, typeErr(typesys.Str, args[1])
			}
			key := args[1].ConstValue().Str()
			if args[0].Tag() != typesys.TagObj {
				return typesys.Top, nil
			}
			if ft, ok := args[0].Fields()[key]; ok {
				return ft, nil
			}
			if r := args[0].Rest(); r != nil {
				return *r, nil
			}
			return typesys.Bottom, nil
		},
	})

	Default.Register(&Function{
		Name:   "DeleteField",
		Doc:    "DeleteField(obj, key) removes a field; used to strip synthetic sort/grouping keys before results are returned.",
		Arity:  2,
		Domain: []typesys.Type{typesys.Obj(nil, nil), typesys.Str},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			if args[0].Tag() != typesys.TagObj {
				return args[0], nil
			}
			if args[1].Tag() != typesys.TagConst {
				return args[0], nil
			}
			fields := map[string]typesys.Type{}
			for k, v := range args[0].Fields() {
				if k != args[1].ConstValue().Str() {
					fields[k] = v
				}
			}
			return typesys.Obj(fields, args[0].Rest()), nil
		},
		Simplify: func(args []logical.Plan) (logical.Plan, bool) {
			if args[0].Tag() == logical.TagInvoke && args[0].Fn().FuncName() == "MakeObject" &&
				args[1].Tag() == logical.TagConstant && args[0].Args()[0].Tag() == logical.TagConstant &&
				args[0].Args()[0].ConstVal().Equal(args[1].ConstVal()) {
				return logical.Invoke(Default.MustLookup("ObjectConcat")), true
			}
			return logical.Plan{}, false
		},
	})

	Default.Register(&Function{
		Name:  "Splice",
		Doc:   "Splice(obj) marks an unnamed SELECT projection item (e.g. t.*) to be merged in via ObjectConcat rather than named.",
		Arity: 1,
		Type: func(args []typesys.Type) (typesys.Type, error) {
			if args[0].Tag() != typesys.TagObj {
				return typesys.Type{}, cerrors.Generic("Splice requires an object-typed argument")
			}
			return args[0], nil
		},
	})
}
