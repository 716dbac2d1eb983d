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

package logical

import (
	"testing"

	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/stretchr/testify/require"
)

type fakeFn string

func (f fakeFn) FuncName() string { return string(f) }

func TestEqualityStructural(t *testing.T) {
	a := Invoke(fakeFn("Add"), Constant(data.IntFromInt64(1)), Constant(data.IntFromInt64(2)))
	b := Invoke(fakeFn("Add"), Constant(data.IntFromInt64(1)), Constant(data.IntFromInt64(2)))
	require.True(t, a.Equal(b))

	c := Invoke(fakeFn("Add"), Constant(data.IntFromInt64(1)), Constant(data.IntFromInt64(3)))
	require.False(t, a.Equal(c))
}

func TestRewriteReplacesSubtree(t *testing.T) {
	p := Invoke(fakeFn("Add"), Free("x"), Constant(data.IntFromInt64(1)))
	rewritten := Rewrite(p, func(n Plan) (Plan, bool) {
		if n.Tag() == TagFree && n.Name() == "x" {
			return Read("zips"), true
		}
		return n, false
	})
	require.Equal(t, TagInvoke, rewritten.Tag())
	require.Equal(t, TagRead, rewritten.Args()[0].Tag())
	require.Equal(t, "zips", rewritten.Args()[0].Path())
}

func TestSubstituteRespectsShadowing(t *testing.T) {
	inner := Let("x", Constant(data.IntFromInt64(9)), Free("x"))
	p := Let("outer", Free("x"), inner)
	out := Substitute(p, "x", Read("t"))

	// Only the outer binding's reference to "x" is substituted; the
	// inner Let re-binds "x" so its body's Free("x") is untouched.
	require.Equal(t, TagRead, out.LetBinding().Tag())
	innerLet := out.LetBody()
	require.Equal(t, TagFree, innerLet.LetBody().Tag())
	require.Equal(t, "x", innerLet.LetBody().Name())
}

func TestFreeNames(t *testing.T) {
	p := Invoke(fakeFn("Add"), Free("a"), Let("a", Free("b"), Free("a")))
	names := FreeNames(p)
	require.ElementsMatch(t, []string{"a", "b"}, names)
}

func TestHashStableForEqualTrees(t *testing.T) {
	a := Invoke(fakeFn("Add"), Constant(data.IntFromInt64(1)), Free("x"))
	b := Invoke(fakeFn("Add"), Constant(data.IntFromInt64(1)), Free("x"))
	require.Equal(t, a.Hash(), b.Hash())
}
