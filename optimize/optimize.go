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

package optimize

import (
	"context"

	"github.com/dolthub/go-mongo-compiler/workflow"
	opentracing "github.com/opentracing/opentracing-go"
)

// MaxPasses bounds the deleteUnusedFields -> reorderOps ->
// inlineGroupProjects -> coalesce fixed-point loop; Options.MaxPasses
// overrides it when set.
const MaxPasses = 64

// Options configures Optimize; the zero value runs every pass with the
// default iteration cap.
type Options struct {
	MaxPasses int

	// DisableReorderOps skips reorderOps, useful for inspecting a plan's
	// shape before operator reordering runs.
	DisableReorderOps bool
}

// Optimize applies the canonical pass sequence of the pipeline optimizer
// to a fixed point: deleteUnusedFields, reorderOps, inlineGroupProjects,
// inlineProjectUnwindGroup, local coalesce. The optimizer never fails; a
// pass that cannot apply to a node leaves that node unchanged.
func Optimize(ctx context.Context, w *workflow.Stage, opts Options) *workflow.Stage {
	span, ctx := opentracing.StartSpanFromContext(ctx, "optimize.Optimize")
	defer span.Finish()

	max := opts.MaxPasses
	if max <= 0 {
		max = MaxPasses
	}

	cur := w
	for i := 0; i < max; i++ {
		if ctx.Err() != nil {
			return cur
		}
		before := cur.Hash()
		cur = deleteUnusedFields(cur, allRefs())
		if !opts.DisableReorderOps {
			cur = reorderOps(cur)
		}
		cur = inlineGroupProjects(cur)
		cur = inlineProjectUnwindGroup(cur)
		cur = workflow.Coalesce(cur)
		if cur.Hash() == before {
			break
		}
	}
	return cur
}
