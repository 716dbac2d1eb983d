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

// Children returns a Stage's immediate upstream sources: zero for
// $Read, many for $FoldLeft, one otherwise.
func (s *Stage) Children() []*Stage {
	if s.tag == TagFoldLeft {
		return s.Sources()
	}
	if s.source == nil {
		return nil
	}
	return []*Stage{s.source}
}

// WithChildren rebuilds the node with new children, in the order
// Children() returned them.
func (s *Stage) WithChildren(children []*Stage) *Stage {
	if s.tag == TagFoldLeft {
		clone := *s
		clone.sources = append([]*Stage(nil), children...)
		return &clone
	}
	if len(children) == 0 {
		return s
	}
	return s.WithSource(children[0])
}

// Fold is a bottom-up catamorphism over a Stage tree: f is applied to
// each node after its children have already been folded.
func Fold[T any](s *Stage, f func(*Stage, []T) T) T {
	children := s.Children()
	results := make([]T, len(children))
	for i, c := range children {
		results[i] = Fold(c, f)
	}
	return f(s, results)
}

// Rewrite applies f bottom-up, rebuilding each node from its (possibly
// rewritten) children before calling f on it; used by the optimizer's
// structural passes.
func Rewrite(s *Stage, f func(*Stage) *Stage) *Stage {
	children := s.Children()
	newChildren := make([]*Stage, len(children))
	for i, c := range children {
		newChildren[i] = Rewrite(c, f)
	}
	return f(s.WithChildren(newChildren))
}
