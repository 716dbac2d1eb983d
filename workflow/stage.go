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

// Package workflow is the physical pipeline IR: a Stage tree rooted at a
// named $Read collection, the target a LogicalPlan is lowered to by the
// (external) planner and the input the optimizer in package optimize
// rewrites. Stage mirrors logical.Plan's tagged-union-struct shape: a Tag
// plus accessor methods that are meaningful only for the matching tag.
package workflow

import (
	"fmt"

	"github.com/dolthub/go-mongo-compiler/fieldpath"
	"github.com/dolthub/go-mongo-compiler/reshape"
)

// Tag discriminates Stage variants.
type Tag uint8

const (
	TagRead Tag = iota
	TagProject
	TagGroup
	TagMatch
	TagSort
	TagSkip
	TagLimit
	TagSimpleMap
	TagMap
	TagFlatMap
	TagReduce
	TagFoldLeft
	TagUnwind
)

func (t Tag) String() string {
	switch t {
	case TagRead:
		return "$Read"
	case TagProject:
		return "$Project"
	case TagGroup:
		return "$Group"
	case TagMatch:
		return "$Match"
	case TagSort:
		return "$Sort"
	case TagSkip:
		return "$Skip"
	case TagLimit:
		return "$Limit"
	case TagSimpleMap:
		return "$SimpleMap"
	case TagMap:
		return "$Map"
	case TagFlatMap:
		return "$FlatMap"
	case TagReduce:
		return "$Reduce"
	case TagFoldLeft:
		return "$FoldLeft"
	case TagUnwind:
		return "$Unwind"
	default:
		return "<invalid>"
	}
}

// SortDir is a sort key's direction.
type SortDir uint8

const (
	Asc SortDir = iota
	Desc
)

func (d SortDir) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// SortKey is one $Sort key.
type SortKey struct {
	Path fieldpath.Path
	Dir  SortDir
}

func (k SortKey) Equal(o SortKey) bool { return k.Path.Equal(o.Path) && k.Dir == o.Dir }

// Stage is a single pipeline node, carrying its upstream source (nil only
// for $Read). Trees are immutable values: every rewrite in package
// optimize builds a new Stage rather than mutating one in place.
type Stage struct {
	tag    Tag
	source *Stage

	// $Read
	collection string

	// $Project
	shape reshape.Reshape
	id    reshape.IdHandling

	// $Group
	by      reshape.Shape
	grouped reshape.Grouped

	// $Match
	selector reshape.Expr

	// $Sort
	sortKeys []SortKey

	// $Skip / $Limit
	n int64

	// $SimpleMap / $Map / $FlatMap / $Reduce
	field fieldpath.Path
	input fieldpath.DocVar
	body  reshape.Expr

	// $Reduce only
	initExpr reshape.Expr
	accVar   fieldpath.DocVar

	// $FoldLeft
	sources []*Stage

	// $Unwind
	unwindVar fieldpath.DocVar
}

func (s *Stage) Tag() Tag           { return s.tag }
func (s *Stage) Source() *Stage     { return s.source }
func (s *Stage) Collection() string { return s.collection }

func (s *Stage) Shape() reshape.Reshape  { return s.shape }
func (s *Stage) IdHandling() reshape.IdHandling { return s.id }

func (s *Stage) By() reshape.Shape        { return s.by }
func (s *Stage) Grouped() reshape.Grouped { return s.grouped }

func (s *Stage) Selector() reshape.Expr { return s.selector }

func (s *Stage) SortKeys() []SortKey { return append([]SortKey(nil), s.sortKeys...) }

func (s *Stage) N() int64 { return s.n }

func (s *Stage) Field() fieldpath.Path   { return s.field }
func (s *Stage) Input() fieldpath.DocVar { return s.input }
func (s *Stage) Body() reshape.Expr      { return s.body }

func (s *Stage) InitExpr() reshape.Expr  { return s.initExpr }
func (s *Stage) AccVar() fieldpath.DocVar { return s.accVar }

func (s *Stage) Sources() []*Stage { return append([]*Stage(nil), s.sources...) }

func (s *Stage) UnwindVar() fieldpath.DocVar { return s.unwindVar }

// WithSource rebuilds the node with a new upstream source, used by the
// optimizer's bottom-up rewrites; only valid for single-source tags.
func (s *Stage) WithSource(src *Stage) *Stage {
	clone := *s
	clone.source = src
	return &clone
}

func (s *Stage) String() string {
	if s.source == nil && s.tag != TagFoldLeft {
		return fmt.Sprintf("%s(%q)", s.tag, s.collection)
	}
	switch s.tag {
	case TagProject:
		return fmt.Sprintf("%s(%s, %s, %s)", s.tag, s.source, s.shape, s.id)
	case TagGroup:
		return fmt.Sprintf("%s(%s, by=%s, %s)", s.tag, s.source, s.by, s.grouped)
	case TagMatch:
		return fmt.Sprintf("%s(%s, %s)", s.tag, s.source, s.selector)
	case TagSkip, TagLimit:
		return fmt.Sprintf("%s(%s, %d)", s.tag, s.source, s.n)
	case TagUnwind:
		return fmt.Sprintf("%s(%s, %s)", s.tag, s.source, s.unwindVar)
	case TagFoldLeft:
		return fmt.Sprintf("%s(%v)", s.tag, s.sources)
	default:
		return fmt.Sprintf("%s(%s)", s.tag, s.source)
	}
}
