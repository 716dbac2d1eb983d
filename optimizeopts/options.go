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

// Package optimizeopts carries the workflow optimizer's configuration as
// a TOML-loadable struct, mirroring compileropts for the compiler.
package optimizeopts

import (
	"github.com/BurntSushi/toml"
	"github.com/dolthub/go-mongo-compiler/optimize"
	"github.com/pkg/errors"
)

// Options is the TOML-facing form of optimize.Options; it exists
// separately so a scenario file can name passes to disable without
// optimize itself depending on a config-file format.
type Options struct {
	// MaxPasses bounds the fixed-point loop; 0 keeps optimize.MaxPasses.
	MaxPasses int `toml:"max_passes"`

	// DisableReorderOps skips the reorderOps pass entirely, for
	// inspecting a plan's shape before operator reordering runs.
	DisableReorderOps bool `toml:"disable_reorder_ops"`
}

// Load reads Options from a TOML file at path.
func Load(path string) (Options, error) {
	var opts Options
	if _, err := toml.DecodeFile(path, &opts); err != nil {
		return Options{}, errors.Wrapf(err, "optimizeopts: decoding %s", path)
	}
	return opts, nil
}

// ToOptimize projects Options down to the plain optimize.Options the
// optimizer itself accepts.
func (o Options) ToOptimize() optimize.Options {
	return optimize.Options{MaxPasses: o.MaxPasses, DisableReorderOps: o.DisableReorderOps}
}
