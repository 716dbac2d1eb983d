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

// Package optimize implements the pipeline optimizer: deleteUnusedFields,
// reorderOps, inlineGroupProjects and inlineProjectUnwindGroup, applied in
// that order to a fixed point along with the Workflow smart constructors'
// local coalesce.
package optimize

import "github.com/dolthub/go-mongo-compiler/fieldpath"

// refSet is Option<Set<DocVar>>: a conservative "all refs used" state
// (the None case) plus an explicit finite set.
type refSet struct {
	all bool
	m   map[string]fieldpath.DocVar
}

// allRefs is the conservative "assume everything downstream is used"
// state, forced whenever an opaque stage ($Map/$SimpleMap/$FlatMap/
// $Reduce) sits between a node and its consumers.
func allRefs() refSet { return refSet{all: true} }

func noRefs() refSet { return refSet{m: map[string]fieldpath.DocVar{}} }

func refsOf(vars ...fieldpath.DocVar) refSet {
	s := noRefs()
	for _, v := range vars {
		s = s.add(v)
	}
	return s
}

func (s refSet) add(d fieldpath.DocVar) refSet {
	if s.all {
		return s
	}
	out := s.clone()
	out.m[d.String()] = d
	return out
}

func (s refSet) union(o refSet) refSet {
	if s.all || o.all {
		return allRefs()
	}
	out := s.clone()
	for k, v := range o.m {
		out.m[k] = v
	}
	return out
}

func (s refSet) clone() refSet {
	out := refSet{m: map[string]fieldpath.DocVar{}}
	for k, v := range s.m {
		out.m[k] = v
	}
	return out
}

// includes reports whether d has a live downstream ref, per the
// prefix-correctness invariant: some ref r with d.startsWith(r) or
// r.startsWith(d), in the same DocVar scope.
func (s refSet) includes(d fieldpath.DocVar) bool {
	if s.all {
		return true
	}
	for _, r := range s.m {
		if r.Scope == d.Scope && fieldpath.PrefixRelated(r.Path, d.Path) {
			return true
		}
	}
	return false
}
