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
	"strconv"
	"strings"

	"github.com/dolthub/go-mongo-compiler/compileropts"
	"github.com/dolthub/go-mongo-compiler/logical"
	"github.com/sirupsen/logrus"
)

// TableContext is the compiler's view of the relation(s) currently in
// scope for identifier resolution. rootName is the Free name the
// enclosing Let binds to this context's underlying set; full is the
// expression (over Free(rootName)) that yields the complete, flattened
// row; subtables maps each addressable relation name to the expression
// (also over Free(rootName)) that yields that relation's own row.
type TableContext struct {
	rootName string
	full     logical.Plan
	subtables map[string]logical.Plan
}

// baseTableContext builds the TableContext for a single un-joined
// relation bound to rootName.
func baseTableContext(rootName, tableName string) TableContext {
	root := logical.Free(rootName)
	return TableContext{
		rootName:  rootName,
		full:      root,
		subtables: map[string]logical.Plan{tableName: root},
	}
}

// joinTableContexts composes lhs and rhs under a JOIN whose combined set
// is bound to newRootName, per the composition rule of the grouped
// SELECT pipeline: full() is ObjectConcat(lhs.full, rhs.full) and the
// subtables set is the union, left-wins on collision, with both sides
// addressable via "left"/"right" nested projections of the new root.
func joinTableContexts(lhs, rhs TableContext, newRootName string) TableContext {
	newRoot := logical.Free(newRootName)
	leftProj := logical.Invoke(objectProjectFn, newRoot, strConst("left"))
	rightProj := logical.Invoke(objectProjectFn, newRoot, strConst("right"))

	lhsFull := logical.Substitute(lhs.full, lhs.rootName, leftProj)
	rhsFull := logical.Substitute(rhs.full, rhs.rootName, rightProj)

	subtables := map[string]logical.Plan{}
	for name, expr := range rhs.subtables {
		subtables[name] = logical.Substitute(expr, rhs.rootName, rightProj)
	}
	// left-wins: write the left side second so it overwrites any collision.
	for name, expr := range lhs.subtables {
		subtables[name] = logical.Substitute(expr, lhs.rootName, leftProj)
	}

	return TableContext{
		rootName:  newRootName,
		full:      logical.Invoke(objectConcatFn, lhsFull, rhsFull),
		subtables: subtables,
	}
}

// groupingMemo records the compiled GROUP BY key expressions, keyed by
// their structural hash so later pipeline steps (HAVING, SELECT, ORDER
// BY) can detect a bare grouping-key reference in O(1) rather than a
// linear scan of Equal comparisons; Hash collisions (rare, since Plan's
// hashstructure.Hash covers the whole subtree) are resolved with Equal.
type groupingMemo struct {
	keys map[uint64][]logical.Plan
}

func newGroupingMemo(keys []logical.Plan) *groupingMemo {
	gm := &groupingMemo{keys: map[uint64][]logical.Plan{}}
	for _, k := range keys {
		h := k.Hash()
		gm.keys[h] = append(gm.keys[h], k)
	}
	return gm
}

func (gm *groupingMemo) groupify(e logical.Plan) logical.Plan {
	if gm == nil {
		return e
	}
	for _, k := range gm.keys[e.Hash()] {
		if e.Equal(k) {
			return logical.Invoke(arbitraryFn, e)
		}
	}
	return e
}

// State is the compiler's mutable context, threaded by pointer through
// every compilation function: the table-context stack, the fresh-name
// counter, the active grouping memo, the current join-nesting depth and
// the set of in-scope output fields (SELECT aliases visible to ORDER BY
// / DISTINCT BY once the SELECT list has been compiled), keyed by their
// normalized form so identifier resolution can honor
// Options.FoldIdentifierCase.
type State struct {
	opts      compileropts.Options
	log       *logrus.Entry
	tcStack   []TableContext
	counter   int
	group     *groupingMemo
	fields    map[string]string
	joinDepth int
}

// NewState builds a fresh compiler State. log may be nil, in which case
// the standard logger is used at Debug/Trace level, mirroring the
// analyzer's own rule-batch tracing.
func NewState(opts compileropts.Options, log *logrus.Entry) *State {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &State{opts: opts, log: log, fields: map[string]string{}}
}

// normalize folds name per Options.FoldIdentifierCase, for comparing a
// reference against the in-scope output fields. It does not extend to
// raw table-column names, since the compiler has no schema to recover
// their canonical casing from.
func (st *State) normalize(name string) string {
	if st.opts.FoldIdentifierCase {
		return strings.ToLower(name)
	}
	return name
}

func (st *State) fresh() string {
	prefix := st.opts.FreshNamePrefix
	if prefix == "" {
		prefix = "tmp"
	}
	n := st.counter
	st.counter++
	name := prefix + strconv.Itoa(n)
	st.log.WithField("name", name).Trace("compiler: fresh name")
	return name
}

func (st *State) pushTableContext(tc TableContext) { st.tcStack = append(st.tcStack, tc) }

func (st *State) popTableContext() { st.tcStack = st.tcStack[:len(st.tcStack)-1] }

func (st *State) currentTableContext() (TableContext, bool) {
	if len(st.tcStack) == 0 {
		return TableContext{}, false
	}
	return st.tcStack[len(st.tcStack)-1], true
}

// rebase is the grouped-reference rewrite, generalized to every pipeline
// step that advances cur to a freshly bound name: it rewrites the active
// table context's full/subtables, and the active grouping memo's key
// expressions, replacing oldRoot with newCur everywhere they occur. A
// step like WHERE or GROUP BY changes which bound value "the current
// row/set" refers to, but a table-context reference compiled before the
// rewrite (e.g. the GROUP BY key itself) is still expressed in terms of
// the old root; without this rewrite, every later reference to that same
// column would resolve to the unfiltered/ungrouped source instead of the
// pipeline's current value, and a grouped reference would never
// structurally match its own memoized key.
func (st *State) rebase(oldRoot, newName string) {
	newCur := logical.Free(newName)

	if len(st.tcStack) > 0 {
		top := st.tcStack[len(st.tcStack)-1]
		newSubtables := make(map[string]logical.Plan, len(top.subtables))
		for name, expr := range top.subtables {
			newSubtables[name] = logical.Substitute(expr, oldRoot, newCur)
		}
		st.tcStack[len(st.tcStack)-1] = TableContext{
			rootName:  newName,
			full:      logical.Substitute(top.full, oldRoot, newCur),
			subtables: newSubtables,
		}
	}

	if st.group != nil {
		rewritten := map[uint64][]logical.Plan{}
		for _, bucket := range st.group.keys {
			for _, k := range bucket {
				nk := logical.Substitute(k, oldRoot, newCur)
				rewritten[nk.Hash()] = append(rewritten[nk.Hash()], nk)
			}
		}
		st.group.keys = rewritten
	}
}

// withFields swaps in a fresh in-scope field set for the duration of a
// nested compilation (e.g. a subquery), restoring the prior set on
// return. Not yet exercised by compileSelect (no subquery support),
// reserved for that REDESIGN FLAG follow-up.
func (st *State) withFields(fields map[string]string, body func()) {
	saved := st.fields
	st.fields = fields
	defer func() { st.fields = saved }()
	body()
}
