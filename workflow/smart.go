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

package workflow

import (
	"github.com/dolthub/go-mongo-compiler/fieldpath"
	"github.com/dolthub/go-mongo-compiler/reshape"
	"github.com/dolthub/go-mongo-compiler/shape"
)

// Read builds a $Read leaf over a named collection.
func Read(collection string) *Stage {
	return &Stage{tag: TagRead, collection: collection}
}

// Project builds a $Project stage. Two consecutive $Projects fuse by
// inlining the inner one into the outer, so Project never actually nests
// a $Project directly atop another.
func Project(source *Stage, s reshape.Reshape, id reshape.IdHandling) *Stage {
	if source.Tag() == TagProject {
		fused := shape.InlineProject0(s, []reshape.Reshape{source.Shape()})
		return Project(source.Source(), fused, reshape.Compose(id, source.IdHandling()))
	}
	return &Stage{tag: TagProject, source: source, shape: s, id: id}
}

// Group builds a $Group stage.
func Group(source *Stage, by reshape.Shape, grouped reshape.Grouped) *Stage {
	return &Stage{tag: TagGroup, source: source, by: by, grouped: grouped}
}

// Match builds a $Match stage. Two consecutive $Matches fuse into a
// single $Match($and(inner, outer)).
func Match(source *Stage, selector reshape.Expr) *Stage {
	if source.Tag() == TagMatch {
		return Match(source.Source(), reshape.Op("$and", source.Selector(), selector))
	}
	return &Stage{tag: TagMatch, source: source, selector: selector}
}

// Sort builds a $Sort stage.
func Sort(source *Stage, keys []SortKey) *Stage {
	return &Stage{tag: TagSort, source: source, sortKeys: append([]SortKey(nil), keys...)}
}

// Skip builds a $Skip stage. Two consecutive $Skips fuse by summing.
func Skip(source *Stage, n int64) *Stage {
	if source.Tag() == TagSkip {
		return Skip(source.Source(), source.N()+n)
	}
	return &Stage{tag: TagSkip, source: source, n: n}
}

// Limit builds a $Limit stage. Two consecutive $Limits fuse by taking
// the minimum (the tighter bound dominates).
func Limit(source *Stage, n int64) *Stage {
	if source.Tag() == TagLimit {
		m := source.N()
		if n < m {
			m = n
		}
		return Limit(source.Source(), m)
	}
	return &Stage{tag: TagLimit, source: source, n: n}
}

// SimpleMap builds a $SimpleMap stage: body is evaluated once per input
// document with input bound to the current document, producing the new
// current document.
func SimpleMap(source *Stage, input fieldpath.DocVar, body reshape.Expr) *Stage {
	return &Stage{tag: TagSimpleMap, source: source, input: input, body: body}
}

// Map builds a $Map stage over an array-valued field.
func Map(source *Stage, field fieldpath.Path, input fieldpath.DocVar, body reshape.Expr) *Stage {
	return &Stage{tag: TagMap, source: source, field: field, input: input, body: body}
}

// FlatMap builds a $FlatMap stage: like Map, but body produces an array
// per element and the results are concatenated (one level flattened).
func FlatMap(source *Stage, field fieldpath.Path, input fieldpath.DocVar, body reshape.Expr) *Stage {
	return &Stage{tag: TagFlatMap, source: source, field: field, input: input, body: body}
}

// Reduce builds a $Reduce stage, folding over an array-valued field.
func Reduce(source *Stage, field fieldpath.Path, input, accVar fieldpath.DocVar, init, body reshape.Expr) *Stage {
	return &Stage{tag: TagReduce, source: source, field: field, input: input, accVar: accVar, initExpr: init, body: body}
}

// FoldLeft builds a $FoldLeft stage: sources' outputs are merged
// left-to-right (document-merge semantics, later sources winning on
// field collision), the tree-shaped join point of the Workflow.
func FoldLeft(sources []*Stage) *Stage {
	return &Stage{tag: TagFoldLeft, sources: append([]*Stage(nil), sources...)}
}

// Unwind builds a $Unwind stage over an array-valued field reference.
func Unwind(source *Stage, v fieldpath.DocVar) *Stage {
	return &Stage{tag: TagUnwind, source: source, unwindVar: v}
}
