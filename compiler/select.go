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
	"github.com/dolthub/go-mongo-compiler/cerrors"
	"github.com/dolthub/go-mongo-compiler/logical"
)

// stepWrap accumulates the Let-bindings each pipeline step introduces, so
// the eventual body can reference every step's output as a Free.
type stepWrap func(body logical.Plan) logical.Plan

// bindStep introduces a fresh Let around next, returning the updated wrap
// and a Free reference to it for use by later steps. It also rebases the
// active table context and grouping memo onto the new name, since next
// is, by construction, this step's new value of "the current row/set".
func (st *State) bindStep(wrap stepWrap, next logical.Plan) (stepWrap, logical.Plan) {
	var oldRoot string
	if tc, ok := st.currentTableContext(); ok {
		oldRoot = tc.rootName
	}
	name := st.fresh()
	newWrap := func(body logical.Plan) logical.Plan { return wrap(logical.Let(name, next, body)) }
	st.rebase(oldRoot, name)
	return newWrap, logical.Free(name)
}

// CompileSelect lowers a single annotated SELECT statement to a
// LogicalPlan, following the 11-step pipeline order: FROM, WHERE, GROUP
// BY, HAVING, SELECT, Squash, ORDER BY, DISTINCT/DISTINCT BY, OFFSET,
// LIMIT, prune synthetic fields.
func (st *State) CompileSelect(sel *Select) (logical.Plan, error) {
	st.log.Debug("compiler: compiling SELECT")

	fr, err := st.compileFrom(sel.From)
	if err != nil {
		return logical.Plan{}, err
	}
	st.pushTableContext(fr.tc)
	defer st.popTableContext()

	savedFields := st.fields
	st.fields = map[string]string{}
	defer func() { st.fields = savedFields }()

	savedGroup := st.group
	st.group = nil
	defer func() { st.group = savedGroup }()

	wrap := fr.wrap
	cur := logical.Free(fr.tc.rootName)

	// 2. WHERE
	if sel.Where != nil {
		pred, err := st.compileExpr(*sel.Where, cur)
		if err != nil {
			return logical.Plan{}, err
		}
		wrap, cur = st.bindStep(wrap, logical.Invoke(filterFn, cur, pred))
	}

	// 3. GROUP BY
	if len(sel.GroupBy) > 0 {
		keyPlans := make([]logical.Plan, len(sel.GroupBy))
		for i, k := range sel.GroupBy {
			p, err := st.compileExpr(k, cur)
			if err != nil {
				return logical.Plan{}, err
			}
			keyPlans[i] = p
		}
		st.group = newGroupingMemo(keyPlans)
		wrap, cur = st.bindStep(wrap, logical.Invoke(groupByFn, cur, logical.Invoke(makeArrayNFn, keyPlans...)))
	}

	// 4. HAVING
	if sel.Having != nil {
		pred, err := st.compileExpr(*sel.Having, cur)
		if err != nil {
			return logical.Plan{}, err
		}
		pred = st.group.groupify(pred)
		wrap, cur = st.bindStep(wrap, logical.Invoke(filterFn, cur, pred))
	}

	// 5. SELECT
	record, outputFields, synthetic, orderByNames, err := st.buildRecord(sel.Columns, sel.OrderBy, cur)
	if err != nil {
		return logical.Plan{}, err
	}
	wrap, cur = st.bindStep(wrap, record)
	st.fields = outputFields

	// 6. Squash
	wrap, cur = st.bindStep(wrap, logical.Invoke(squashFn, cur))

	// 7. ORDER BY
	if len(sel.OrderBy) > 0 {
		keys := make([]logical.Plan, len(sel.OrderBy))
		dirs := make([]logical.Plan, len(sel.OrderBy))
		for i, ord := range sel.OrderBy {
			k, err := st.compileExpr(Ident(orderByNames[i]), cur)
			if err != nil {
				return logical.Plan{}, err
			}
			keys[i] = k
			dir := "ASC"
			if ord.Desc {
				dir = "DESC"
			}
			dirs[i] = strConst(dir)
		}
		wrap, cur = st.bindStep(wrap, logical.Invoke(orderByFn, cur, logical.Invoke(makeArrayNFn, keys...), logical.Invoke(makeArrayNFn, dirs...)))
	}

	// 8. DISTINCT / DISTINCT BY
	if sel.Distinct {
		if len(synthetic) > 0 {
			stripped := stripFields(cur, synthetic)
			wrap, cur = st.bindStep(wrap, logical.Invoke(distinctByFn, cur, stripped))
		} else {
			wrap, cur = st.bindStep(wrap, logical.Invoke(distinctFn, cur))
		}
	} else if len(sel.DistinctBy) > 0 {
		keys := make([]logical.Plan, len(sel.DistinctBy))
		for i, k := range sel.DistinctBy {
			p, err := st.compileExpr(k, cur)
			if err != nil {
				return logical.Plan{}, err
			}
			keys[i] = p
		}
		wrap, cur = st.bindStep(wrap, logical.Invoke(distinctByFn, cur, logical.Invoke(makeArrayNFn, keys...)))
	}

	// 9. OFFSET
	if sel.Offset != nil {
		wrap, cur = st.bindStep(wrap, logical.Invoke(dropFn, cur, intConst(*sel.Offset)))
	}

	// 10. LIMIT
	if sel.Limit != nil {
		wrap, cur = st.bindStep(wrap, logical.Invoke(takeFn, cur, intConst(*sel.Limit)))
	}

	// 11. Prune synthetic fields
	if len(synthetic) > 0 {
		wrap, cur = st.bindStep(wrap, stripFields(cur, synthetic))
	}

	final := wrap(cur)
	return inlineLets(final), nil
}

// stripFields removes the named fields from rec via repeated DeleteField,
// in the order given.
func stripFields(rec logical.Plan, names []string) logical.Plan {
	out := rec
	for _, n := range names {
		out = logical.Invoke(deleteFieldFn, out, strConst(n))
	}
	return out
}

// buildRecord compiles the SELECT list into a single ObjectConcat of
// MakeObject entries (named columns) and spliced objects ("*"/"t.*"
// items), per the SELECT lowering rule. A constant-valued column is
// wrapped in Constantly(const, cur) so it survives downstream set
// operations instead of collapsing to a single scalar.
//
// orderBy is consulted to decide which ORDER BY keys are already a plain
// pass-through of an output column (orderByNames[i] names it directly)
// versus needing a synthetic carrier field injected into the record
// (returned in synthetic, for DISTINCT/LIMIT-time stripping per steps 8
// and 11).
func (st *State) buildRecord(cols []SelectItem, orderBy []OrderItem, cur logical.Plan) (rec logical.Plan, outputFields map[string]string, synthetic []string, orderByNames []string, err error) {
	var concatArgs []logical.Plan
	outputFields = map[string]string{}

	for _, item := range cols {
		if item.Expr.Tag() == ExprSplice {
			spliced, err := st.compileExpr(item.Expr, cur)
			if err != nil {
				return logical.Plan{}, nil, nil, nil, err
			}
			concatArgs = append(concatArgs, spliced)
			continue
		}
		val, err := st.compileExpr(item.Expr, cur)
		if err != nil {
			return logical.Plan{}, nil, nil, nil, err
		}
		val = st.group.groupify(val)
		if val.Tag() == logical.TagConstant {
			val = logical.Invoke(constantlyFn, val, cur)
		}
		concatArgs = append(concatArgs, logical.Invoke(makeObjectFn, strConst(item.Name), val))
		outputFields[st.normalize(item.Name)] = item.Name
	}

	if len(concatArgs) == 0 {
		return logical.Plan{}, nil, nil, nil, cerrors.Generic("SELECT list must have at least one item")
	}

	orderByNames = make([]string, len(orderBy))
	for i, ord := range orderBy {
		if ord.Expr.Tag() == ExprIdent {
			if real, ok := outputFields[st.normalize(ord.Expr.Name())]; ok {
				orderByNames[i] = real
				continue
			}
		}
		val, err := st.compileExpr(ord.Expr, cur)
		if err != nil {
			return logical.Plan{}, nil, nil, nil, err
		}
		val = st.group.groupify(val)
		name := st.fresh()
		concatArgs = append(concatArgs, logical.Invoke(makeObjectFn, strConst(name), val))
		outputFields[st.normalize(name)] = name
		synthetic = append(synthetic, name)
		orderByNames[i] = name
	}

	return logical.Invoke(objectConcatFn, concatArgs...), outputFields, synthetic, orderByNames, nil
}
