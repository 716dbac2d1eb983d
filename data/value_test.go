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

package data

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValueEqual(t *testing.T) {
	require.True(t, IntFromInt64(3).Equal(IntFromInt64(3)))
	require.False(t, IntFromInt64(3).Equal(IntFromInt64(4)))
	require.True(t, Null.Equal(Null))
	require.False(t, Bool(true).Equal(Bool(false)))

	a := Arr([]Value{IntFromInt64(1), Str("x")})
	b := Arr([]Value{IntFromInt64(1), Str("x")})
	require.True(t, a.Equal(b))
}

func TestSetDedup(t *testing.T) {
	s := Set([]Value{IntFromInt64(1), IntFromInt64(1), IntFromInt64(2)})
	require.Len(t, s.SetElems(), 2)
}

func TestObjInsertionOrder(t *testing.T) {
	o := EmptyObj()
	o.Set("b", IntFromInt64(1))
	o.Set("a", IntFromInt64(2))
	o.Set("b", IntFromInt64(3))
	require.Equal(t, []string{"b", "a"}, o.Keys())
	v, ok := o.Get("b")
	require.True(t, ok)
	require.True(t, v.Equal(IntFromInt64(3)))
}

func TestParseDate(t *testing.T) {
	v, err := ParseDate("2015-05-12")
	require.NoError(t, err)
	require.Equal(t, KindDate, v.Kind())

	_, err = ParseDate("not-a-date")
	require.Error(t, err)
}

func TestParseInterval(t *testing.T) {
	v, err := ParseInterval("P3DT12H30M15.0S")
	require.NoError(t, err)
	require.Equal(t, KindInterval, v.Kind())

	_, err = ParseInterval("P1Y2M")
	require.Error(t, err)
}

func TestParseTimestamp(t *testing.T) {
	v, err := ParseTimestamp("2015-05-12T12:22:00Z")
	require.NoError(t, err)
	require.Equal(t, KindTimestamp, v.Kind())
}
