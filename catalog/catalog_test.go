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
	"testing"

	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/dolthub/go-mongo-compiler/logical"
	"github.com/dolthub/go-mongo-compiler/typesys"
	"github.com/stretchr/testify/require"
)

func TestAndSimplifiesTrue(t *testing.T) {
	and := Default.MustLookup("And")
	x := logical.Free("x")
	out, ok := and.Simplify([]logical.Plan{logical.Constant(data.Bool(true)), x})
	require.True(t, ok)
	require.True(t, out.Equal(x))
}

func TestOrSimplifiesFalse(t *testing.T) {
	or := Default.MustLookup("Or")
	x := logical.Free("x")
	out, ok := or.Simplify([]logical.Plan{logical.Constant(data.Bool(false)), x})
	require.True(t, ok)
	require.True(t, out.Equal(x))
}

func TestCondSimplifiesConstantPredicate(t *testing.T) {
	cond := Default.MustLookup("Cond")
	a := logical.Free("a")
	b := logical.Free("b")
	out, ok := cond.Simplify([]logical.Plan{logical.Constant(data.Bool(true)), a, b})
	require.True(t, ok)
	require.True(t, out.Equal(a))
}

func TestAddIdentity(t *testing.T) {
	add := Default.MustLookup("Add")
	x := logical.Free("x")
	out, ok := add.Simplify([]logical.Plan{x, logical.Constant(data.IntFromInt64(0))})
	require.True(t, ok)
	require.True(t, out.Equal(x))
}

func TestMultiplyIdentity(t *testing.T) {
	mul := Default.MustLookup("Multiply")
	x := logical.Free("x")
	out, ok := mul.Simplify([]logical.Plan{logical.Constant(data.IntFromInt64(1)), x})
	require.True(t, ok)
	require.True(t, out.Equal(x))
}

func TestCoalesceDropsLeadingNulls(t *testing.T) {
	coalesce := Default.MustLookup("Coalesce")
	y := logical.Free("y")
	out, ok := coalesce.Simplify([]logical.Plan{logical.Constant(data.Null), y})
	require.True(t, ok)
	require.True(t, out.Equal(y))
}

func TestDivideByZeroTypeErrors(t *testing.T) {
	div := Default.MustLookup("Divide")
	_, err := div.Type([]typesys.Type{typesys.Const(data.IntFromInt64(1)), typesys.Const(data.IntFromInt64(0))})
	require.Error(t, err)
}

func TestAddPromotesToDec(t *testing.T) {
	add := Default.MustLookup("Add")
	res, err := add.Type([]typesys.Type{typesys.Int, typesys.Dec})
	require.NoError(t, err)
	require.Equal(t, typesys.TagDec, res.Tag())
}

func TestBetweenDesugars(t *testing.T) {
	between := Default.MustLookup("Between")
	x := logical.Free("x")
	out, ok := between.Simplify([]logical.Plan{x, logical.Constant(data.IntFromInt64(1)), logical.Constant(data.IntFromInt64(10))})
	require.True(t, ok)
	require.Equal(t, "And", out.Fn().FuncName())
}

func TestNullIfDesugarsToCond(t *testing.T) {
	nullif := Default.MustLookup("NullIf")
	a := logical.Free("a")
	b := logical.Free("b")
	out, ok := nullif.Simplify([]logical.Plan{a, b})
	require.True(t, ok)
	require.Equal(t, "Cond", out.Fn().FuncName())
}

func TestIfNullDesugarsToCoalesce(t *testing.T) {
	ifnull := Default.MustLookup("IfNull")
	a := logical.Free("a")
	b := logical.Free("b")
	out, ok := ifnull.Simplify([]logical.Plan{a, b})
	require.True(t, ok)
	require.Equal(t, "Coalesce", out.Fn().FuncName())
}

func TestExtractConstFoldsOnLiteralTimestamp(t *testing.T) {
	extract := Default.MustLookup("Extract")
	ts, err := Default.MustLookup("Timestamp").Type([]typesys.Type{typesys.Const(data.Str("2024-03-15T10:30:00Z"))})
	require.NoError(t, err)
	res, err := extract.Type([]typesys.Type{typesys.Const(data.Str("year")), ts})
	require.NoError(t, err)
	require.Equal(t, typesys.TagConst, res.Tag())
	require.Equal(t, int64(2024), res.ConstValue().Int().Int64())
}

func TestLookupOrSuggestHintsOnTypo(t *testing.T) {
	_, err := Default.LookupOrSuggest("Concet")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Concat")
}
