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
	"path"
	"strings"

	"github.com/dolthub/go-mongo-compiler/cerrors"
	"github.com/dolthub/go-mongo-compiler/logical"
)

// relationName computes the single relation an identifier resolves
// against from its provenance: exactly one candidate succeeds outright;
// zero is NoTableDefined; more than one requires disambiguation by
// filename match against the identifier before it is AmbiguousReference.
func relationName(prov Provenance, ident string) (string, error) {
	switch len(prov) {
	case 0:
		return "", cerrors.ErrNoTableDefined.New(ident)
	case 1:
		return prov[0], nil
	default:
		for _, candidate := range prov {
			if filenameMatches(candidate, ident) {
				return candidate, nil
			}
		}
		return "", cerrors.ErrAmbiguousReference.New(ident, prov)
	}
}

// filenameMatches reports whether candidate (a relation name, possibly a
// file path like "db/orders.csv") names ident once its directory and
// extension are stripped.
func filenameMatches(candidate, ident string) bool {
	base := path.Base(candidate)
	base = strings.TrimSuffix(base, path.Ext(base))
	return strings.EqualFold(base, ident)
}

// resolveIdent implements the identifier-resolution rule: an in-scope
// output field (a prior SELECT alias) projects off cur, the pipeline's
// current row; anything else resolves through table-context provenance,
// returning the subtable directly for a table-qualified reference
// (name == relationName) or projecting a single field from it otherwise.
func (st *State) resolveIdent(e Expr, cur logical.Plan) (logical.Plan, error) {
	name := e.Name()
	if real, ok := st.fields[st.normalize(name)]; ok {
		return logical.Invoke(objectProjectFn, cur, strConst(real)), nil
	}

	tc, ok := st.currentTableContext()
	if !ok {
		return logical.Plan{}, cerrors.ErrCompiledTableMissing.New(name)
	}

	relName, err := relationName(e.Provenance(), name)
	if err != nil {
		return logical.Plan{}, err
	}
	sub, ok := tc.subtables[relName]
	if !ok {
		return logical.Plan{}, cerrors.ErrCompiledSubtableMissing.New(relName)
	}
	if relName == name {
		return sub, nil
	}
	return logical.Invoke(objectProjectFn, sub, strConst(name)), nil
}

// fromResult is the outcome of compiling a FROM clause: the TableContext
// it establishes, plus the Let-wrapping the caller must apply around the
// eventual pipeline body so that every Free reference the context (and
// its descendants, under a JOIN) relies on is actually bound.
type fromResult struct {
	tc   TableContext
	wrap func(body logical.Plan) logical.Plan
}

func (st *State) compileFrom(rel Relation) (fromResult, error) {
	switch rel.Tag() {
	case RelTable:
		name := st.fresh()
		st.log.WithField("table", rel.Table()).Debug("compiler: FROM table")
		tc := baseTableContext(name, rel.Table())
		return fromResult{
			tc: tc,
			wrap: func(body logical.Plan) logical.Plan {
				return logical.Let(name, logical.Read(rel.Table()), body)
			},
		}, nil

	case RelJoin:
		st.joinDepth++
		if st.joinDepth > st.opts.EffectiveMaxJoinDepth() {
			st.joinDepth--
			return fromResult{}, cerrors.Generic("compiler: FROM join nesting exceeds configured MaxJoinDepth")
		}
		defer func() { st.joinDepth-- }()

		left, err := st.compileFrom(rel.Left())
		if err != nil {
			return fromResult{}, err
		}
		right, err := st.compileFrom(rel.Right())
		if err != nil {
			return fromResult{}, err
		}

		// The join clause itself is compiled against the two sides' own
		// per-row values, pairing one left row with one right row, before
		// the combined {left:.., right:..} object exists; only the
		// *result* context downstream of the join addresses subtables
		// through that combined shape.
		preJoinSubtables := map[string]logical.Plan{}
		for name, expr := range right.tc.subtables {
			preJoinSubtables[name] = expr
		}
		for name, expr := range left.tc.subtables {
			preJoinSubtables[name] = expr
		}
		preJoinTC := TableContext{rootName: left.tc.rootName, full: left.tc.full, subtables: preJoinSubtables}

		st.pushTableContext(preJoinTC)
		clauseExpr, err := st.compileExpr(rel.Clause(), left.tc.full)
		st.popTableContext()
		if err != nil {
			return fromResult{}, err
		}

		newName := st.fresh()
		combined := joinTableContexts(left.tc, right.tc, newName)

		st.log.WithField("kind", rel.Kind().String()).Debug("compiler: FROM join")
		joinInvoke := logical.Invoke(joinFn,
			logical.Free(left.tc.rootName),
			logical.Free(right.tc.rootName),
			strConst(rel.Kind().String()),
			clauseExpr,
		)

		wrap := func(body logical.Plan) logical.Plan {
			return left.wrap(right.wrap(logical.Let(newName, joinInvoke, body)))
		}
		return fromResult{tc: combined, wrap: wrap}, nil

	default:
		return fromResult{}, cerrors.Generic("compiler: unknown relation tag")
	}
}
