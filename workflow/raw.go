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
	"github.com/dolthub/go-mongo-compiler/reshape"
)

// RawProject, RawMatch, RawSkip and RawLimit build a stage without the
// smart constructors' adjacent-stage fusion. reorderOps uses these when
// it relocates a stage next to a stage of the same kind it did not
// originate adjacent to; a later, explicit Coalesce pass is what's
// responsible for actually fusing any stages that end up adjacent.
func RawProject(source *Stage, s reshape.Reshape, id reshape.IdHandling) *Stage {
	return &Stage{tag: TagProject, source: source, shape: s, id: id}
}

func RawMatch(source *Stage, selector reshape.Expr) *Stage {
	return &Stage{tag: TagMatch, source: source, selector: selector}
}

func RawSkip(source *Stage, n int64) *Stage {
	return &Stage{tag: TagSkip, source: source, n: n}
}

func RawLimit(source *Stage, n int64) *Stage {
	return &Stage{tag: TagLimit, source: source, n: n}
}

// Coalesce walks s bottom-up and rebuilds every node through its smart
// constructor, fusing any stages that are now adjacent as a result of
// reorderOps or inlineGroupProjects relocating them.
func Coalesce(s *Stage) *Stage {
	return Rewrite(s, func(n *Stage) *Stage {
		switch n.Tag() {
		case TagProject:
			return Project(n.Source(), n.Shape(), n.IdHandling())
		case TagMatch:
			return Match(n.Source(), n.Selector())
		case TagSkip:
			return Skip(n.Source(), n.N())
		case TagLimit:
			return Limit(n.Source(), n.N())
		default:
			return n
		}
	})
}
