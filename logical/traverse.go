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

package logical

// Fold is the catamorphism over Plan: it evaluates children first, then
// combines their results with the current node via f.
func Fold[T any](p Plan, f func(Plan, []T) T) T {
	kids := p.Children()
	results := make([]T, len(kids))
	for i, k := range kids {
		results[i] = Fold(k, f)
	}
	return f(p, results)
}

// Unfold is the anamorphism over Plan: starting from seed, it repeatedly
// calls gen to produce a node tag/payload and further seeds, building a
// tree outward. gen returns the freshly-built node and the seeds for its
// children in the same order Children() would later report them.
func Unfold[S any](seed S, gen func(S) (Plan, []S)) Plan {
	node, childSeeds := gen(seed)
	if len(childSeeds) == 0 {
		return node
	}
	children := make([]Plan, len(childSeeds))
	for i, s := range childSeeds {
		children[i] = Unfold(s, gen)
	}
	return node.WithChildren(children)
}

// Rewrite replaces subtrees of p (bottom-up) where f returns (replacement,
// true); other subtrees are rebuilt unchanged with the (possibly rewritten)
// children.
func Rewrite(p Plan, f func(Plan) (Plan, bool)) Plan {
	kids := p.Children()
	if len(kids) > 0 {
		newKids := make([]Plan, len(kids))
		changed := false
		for i, k := range kids {
			nk := Rewrite(k, f)
			if !nk.Equal(k) {
				changed = true
			}
			newKids[i] = nk
		}
		if changed {
			p = p.WithChildren(newKids)
		}
	}
	if repl, ok := f(p); ok {
		return repl
	}
	return p
}

// FreeNames collects the names of all Free nodes reachable in p without
// descending into a Let that re-binds the same name (those Free
// occurrences resolve to the inner Let, not an outer scope).
func FreeNames(p Plan) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(p Plan, shadowed map[string]bool)
	walk = func(p Plan, shadowed map[string]bool) {
		switch p.tag {
		case TagFree:
			if !shadowed[p.name] && !seen[p.name] {
				seen[p.name] = true
				out = append(out, p.name)
			}
		case TagLet:
			walk(*p.letBinding, shadowed)
			inner := make(map[string]bool, len(shadowed)+1)
			for k := range shadowed {
				inner[k] = true
			}
			inner[p.letName] = true
			walk(*p.letBody, inner)
		default:
			for _, k := range p.Children() {
				walk(k, shadowed)
			}
		}
	}
	walk(p, map[string]bool{})
	return out
}

// Substitute replaces every Free(name) occurrence in p with replacement,
// stopping at any nested Let that re-binds name (lexical shadowing).
func Substitute(p Plan, name string, replacement Plan) Plan {
	switch p.tag {
	case TagFree:
		if p.name == name {
			return replacement
		}
		return p
	case TagLet:
		newBinding := Substitute(*p.letBinding, name, replacement)
		if p.letName == name {
			// body's Free(name) refers to this Let, not the outer one.
			return Let(p.letName, newBinding, *p.letBody)
		}
		return Let(p.letName, newBinding, Substitute(*p.letBody, name, replacement))
	default:
		kids := p.Children()
		if len(kids) == 0 {
			return p
		}
		newKids := make([]Plan, len(kids))
		for i, k := range kids {
			newKids[i] = Substitute(k, name, replacement)
		}
		return p.WithChildren(newKids)
	}
}
