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
	"strings"

	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/dolthub/go-mongo-compiler/internal/regex"
	"github.com/dolthub/go-mongo-compiler/logical"
	"github.com/dolthub/go-mongo-compiler/typesys"
)

func init() {
	Default.Register(&Function{
		Name:  "Concat",
		Doc:   "Concat(args...) concatenates strings.",
		Arity: -1,
		Type: func(args []typesys.Type) (typesys.Type, error) {
			allConst := true
			for _, a := range args {
				if a.Tag() != typesys.TagConst {
					allConst = false
					break
				}
			}
			if allConst {
				var b strings.Builder
				for _, a := range args {
					b.WriteString(a.ConstValue().Str())
				}
				return typesys.Const(data.Str(b.String())), nil
			}
			return typesys.Str, nil
		},
		Simplify: func(args []logical.Plan) (logical.Plan, bool) {
			out := make([]logical.Plan, 0, len(args))
			for _, a := range args {
				if len(out) > 0 && out[len(out)-1].Tag() == logical.TagConstant && a.Tag() == logical.TagConstant {
					merged := out[len(out)-1].ConstVal().Str() + a.ConstVal().Str()
					out[len(out)-1] = logical.Constant(data.Str(merged))
					continue
				}
				out = append(out, a)
			}
			if len(out) == len(args) {
				return logical.Plan{}, false
			}
			if len(out) == 1 {
				return out[0], true
			}
			return logical.Invoke(Default.MustLookup("Concat"), out...), true
		},
	})

	Default.Register(&Function{
		Name:   "Search",
		Doc:    "Search(str, regex) reports whether str matches the (Go-syntax) regular expression regex. Used as the lowering target of SQL LIKE.",
		Arity:  2,
		Domain: []typesys.Type{typesys.Str, typesys.Str},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			if args[0].Tag() == typesys.TagConst && args[1].Tag() == typesys.TagConst {
				m, d, err := regex.New(regex.Default(), args[1].ConstValue().Str())
				if err != nil {
					return typesys.Type{}, err
				}
				defer d.Dispose()
				return typesys.Const(data.Bool(m.Match(args[0].ConstValue().Str()))), nil
			}
			return typesys.Bool, nil
		},
	})
}
