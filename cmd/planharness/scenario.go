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

package main

import (
	"github.com/BurntSushi/toml"
	"github.com/dolthub/go-mongo-compiler/catalog"
	"github.com/dolthub/go-mongo-compiler/compiler"
	"github.com/dolthub/go-mongo-compiler/compileropts"
	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/pkg/errors"
)

// scenarioFile is the TOML shape planharness loads. It covers the single-
// table SELECT shapes compiler/select_test.go exercises (S1/S2/S5); a
// real front-end would build compiler.Select/compiler.Expr values from a
// parsed+analyzed query instead of this fixture format, the way
// compiler/ast.go's package doc describes.
type scenarioFile struct {
	Options compileropts.Options `toml:"options"`
	Query   queryFixture         `toml:"query"`
}

type queryFixture struct {
	Table      string            `toml:"table"`
	Columns    []columnFixture   `toml:"columns"`
	Where      *likeFixture      `toml:"where_like"`
	GroupBy    []string          `toml:"group_by"`
	OrderBy    []orderFixture    `toml:"order_by"`
	Distinct   bool              `toml:"distinct"`
	Limit      *int64            `toml:"limit"`
	Offset     *int64            `toml:"offset"`
}

type columnFixture struct {
	Name  string `toml:"name"`
	Ident string `toml:"ident"` // column to reference; mutually exclusive with Count
	Count bool   `toml:"count_star"`
}

type likeFixture struct {
	Ident   string `toml:"ident"`
	Pattern string `toml:"pattern"`
	Escape  string `toml:"escape"`
}

type orderFixture struct {
	Name string `toml:"name"`
	Desc bool   `toml:"desc"`
}

// loadScenario decodes path and builds the compiler.Select it describes.
func loadScenario(path string) (*compiler.Select, compileropts.Options, error) {
	var sf scenarioFile
	if _, err := toml.DecodeFile(path, &sf); err != nil {
		return nil, compileropts.Options{}, errors.Wrapf(err, "planharness: decoding %s", path)
	}

	q := sf.Query
	if q.Table == "" {
		return nil, compileropts.Options{}, errors.New("planharness: query.table is required")
	}

	sel := &compiler.Select{
		From:     compiler.Table(q.Table),
		Distinct: q.Distinct,
		Limit:    q.Limit,
		Offset:   q.Offset,
	}

	for _, g := range q.GroupBy {
		sel.GroupBy = append(sel.GroupBy, compiler.Ident(g, q.Table))
	}

	for _, c := range q.Columns {
		item := compiler.SelectItem{Name: c.Name}
		switch {
		case c.Count:
			countFn := catalog.Default.MustLookup("Count")
			item.Expr = compiler.Invoke(countFn, compiler.Literal(data.IntFromInt64(1)))
		case c.Ident != "":
			item.Expr = compiler.Ident(c.Ident, q.Table)
		default:
			return nil, compileropts.Options{}, errors.Errorf("planharness: column %q has neither ident nor count_star", c.Name)
		}
		sel.Columns = append(sel.Columns, item)
	}
	if len(sel.Columns) == 0 {
		sel.Columns = []compiler.SelectItem{{Expr: compiler.Splice("")}}
	}

	if q.Where != nil {
		var escape *compiler.Expr
		if q.Where.Escape != "" {
			e := compiler.Literal(data.Str(q.Where.Escape))
			escape = &e
		}
		where := compiler.Like(compiler.Ident(q.Where.Ident, q.Table), compiler.Literal(data.Str(q.Where.Pattern)), escape)
		sel.Where = &where
	}

	for _, o := range q.OrderBy {
		sel.OrderBy = append(sel.OrderBy, compiler.OrderItem{Expr: compiler.Ident(o.Name, q.Table), Desc: o.Desc})
	}

	return sel, sf.Options, nil
}
