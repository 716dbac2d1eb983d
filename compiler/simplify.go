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

package compiler

import (
	"github.com/dolthub/go-mongo-compiler/catalog"
	"github.com/dolthub/go-mongo-compiler/logical"
)

// maxSimplifyPasses bounds the Simplify/inlineLets fixed-point loop the
// same way optimize.MaxPasses bounds the workflow optimizer's.
const maxSimplifyPasses = 16

// simplify drives each Invoke's catalog.Function.Simplify to a fixed
// point and re-runs inlineLets between rounds, since folding away an
// Invoke (e.g. And(True, x) -> x per the catalog's own simplifier) can
// reduce a Free's remaining use count to one and open up a further
// inlining that was blocked before the fold.
func simplify(p logical.Plan) logical.Plan {
	for i := 0; i < maxSimplifyPasses; i++ {
		before := p.Hash()
		p = inlineLets(simplifyInvokes(p))
		if p.Hash() == before {
			break
		}
	}
	return p
}

// simplifyInvokes applies every Invoke node's bound catalog function
// Simplifier once, bottom-up.
func simplifyInvokes(p logical.Plan) logical.Plan {
	return logical.Rewrite(p, func(n logical.Plan) (logical.Plan, bool) {
		if n.Tag() != logical.TagInvoke {
			return logical.Plan{}, false
		}
		fn, ok := n.Fn().(*catalog.Function)
		if !ok || fn.Simplify == nil {
			return logical.Plan{}, false
		}
		return fn.Simplify(n.Args())
	})
}

// countFree counts the Free(name) occurrences in p, stopping at any
// nested Let that re-binds name, mirroring the shadowing rule
// logical.FreeNames applies when collecting names instead of counting
// them.
func countFree(p logical.Plan, name string) int {
	switch p.Tag() {
	case logical.TagFree:
		if p.Name() == name {
			return 1
		}
		return 0
	case logical.TagLet:
		n := countFree(p.LetBinding(), name)
		if p.LetName() == name {
			return n
		}
		return n + countFree(p.LetBody(), name)
	default:
		total := 0
		for _, k := range p.Children() {
			total += countFree(k, name)
		}
		return total
	}
}

// inlineLets beta-reduces every Let bound to at most one use of its name
// in its body, substituting the binding directly and dropping the Let.
// Every pipeline step in CompileSelect introduces its own Let regardless
// of how many later steps end up referencing it, so the straightforward,
// single-relation, ungrouped queries this collapses down to exactly the
// bare expression form (no surviving Let/Free at all).
func inlineLets(p logical.Plan) logical.Plan {
	switch p.Tag() {
	case logical.TagLet:
		name := p.LetName()
		binding := inlineLets(p.LetBinding())
		body := inlineLets(p.LetBody())
		if countFree(body, name) <= 1 {
			return inlineLets(logical.Substitute(body, name, binding))
		}
		return logical.Let(name, binding, body)
	default:
		kids := p.Children()
		if len(kids) == 0 {
			return p
		}
		newKids := make([]logical.Plan, len(kids))
		changed := false
		for i, k := range kids {
			nk := inlineLets(k)
			if !nk.Equal(k) {
				changed = true
			}
			newKids[i] = nk
		}
		if changed {
			return p.WithChildren(newKids)
		}
		return p
	}
}
