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

package typesys

import (
	"testing"

	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/stretchr/testify/require"
)

func TestConstContainment(t *testing.T) {
	c := Const(data.IntFromInt64(3))
	require.True(t, Contains(Int, c))
	require.False(t, Contains(c, Int))
	require.True(t, Contains(Top, c))
	require.True(t, Contains(c, Bottom))
}

func TestLubPrimitives(t *testing.T) {
	require.True(t, Lub(Int, Int).Equal(Int))
	u := Lub(Int, Str)
	require.Equal(t, TagUnion, u.Tag())
}

func TestLubConstWidens(t *testing.T) {
	a := Const(data.IntFromInt64(3))
	b := Const(data.IntFromInt64(4))
	require.True(t, Lub(a, b).Equal(Int))
}

func TestObjContainmentOpen(t *testing.T) {
	open := Obj(map[string]Type{"a": Int}, &Top)
	closed := Obj(map[string]Type{"a": Int, "b": Str}, nil)
	require.True(t, Contains(open, closed))
	require.False(t, Contains(closed, open))
}

func TestNumericPattern(t *testing.T) {
	require.True(t, Numeric(Int))
	require.True(t, Numeric(Dec))
	require.True(t, Numeric(Const(data.IntFromInt64(1))))
	require.False(t, Numeric(Str))
}

func TestTypecheck(t *testing.T) {
	require.Nil(t, Typecheck(Const(data.IntFromInt64(3)), Int))
	require.NotNil(t, Typecheck(Str, Int))
}
