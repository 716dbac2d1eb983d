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
	"fmt"

	"github.com/mitchellh/hashstructure"
)

// Hash returns a structural hash of s, used by the optimizer's
// deleteUnusedFields/reorderOps/inlineGroupProjects fixed-point loop to
// detect "no further progress" without a full deep-equal walk.
func (s *Stage) Hash() uint64 {
	h, err := hashstructure.Hash(s.debugView(), nil)
	if err != nil {
		panic(fmt.Sprintf("workflow: hash: %v", err))
	}
	return h
}

type debugView struct {
	Tag  string
	Val  string
	Kids []debugView
}

func (s *Stage) debugView() debugView {
	kids := make([]debugView, 0, len(s.Children()))
	for _, c := range s.Children() {
		kids = append(kids, c.debugView())
	}
	val := ""
	switch s.tag {
	case TagRead:
		val = s.collection
	case TagProject:
		val = s.shape.String() + " " + s.id.String()
	case TagGroup:
		val = s.by.String() + " " + s.grouped.String()
	case TagMatch:
		val = s.selector.String()
	case TagSort:
		for _, k := range s.sortKeys {
			val += k.Path.String() + ":" + k.Dir.String() + ";"
		}
	case TagSkip, TagLimit:
		val = fmt.Sprintf("%d", s.n)
	case TagSimpleMap, TagMap, TagFlatMap:
		val = s.field.String() + " " + s.input.String() + " " + s.body.String()
	case TagReduce:
		val = s.field.String() + " " + s.input.String() + " " + s.accVar.String() + " " + s.initExpr.String() + " " + s.body.String()
	case TagUnwind:
		val = s.unwindVar.String()
	}
	return debugView{Tag: s.tag.String(), Val: val, Kids: kids}
}
