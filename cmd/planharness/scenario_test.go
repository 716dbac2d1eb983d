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
	"context"
	"testing"

	"github.com/dolthub/go-mongo-compiler/compiler"
	"github.com/stretchr/testify/require"
)

func TestLoadScenarioCompiles(t *testing.T) {
	sel, opts, err := loadScenario("testdata/s2_group_by.toml")
	require.NoError(t, err)
	require.Equal(t, "t", sel.From.Table())
	require.Len(t, sel.Columns, 2)

	_, err = compiler.Compile(context.Background(), sel, opts, nil)
	require.NoError(t, err)
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	err := run("testdata/s2_group_by.toml", "xml", nil)
	require.Error(t, err)
}
