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
	"regexp"
	"strings"

	"github.com/dolthub/go-mongo-compiler/catalog"
	"github.com/dolthub/go-mongo-compiler/cerrors"
	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/dolthub/go-mongo-compiler/logical"
)

// compileExpr lowers one annotated expression node against cur, the
// pipeline's current row/set value, dispatching on Tag.
func (st *State) compileExpr(e Expr, cur logical.Plan) (logical.Plan, error) {
	switch e.Tag() {
	case ExprIdent:
		return st.resolveIdent(e, cur)

	case ExprLiteral:
		return logical.Constant(e.Val()), nil

	case ExprBinop:
		l, err := st.compileExpr(e.Lhs(), cur)
		if err != nil {
			return logical.Plan{}, err
		}
		r, err := st.compileExpr(e.Rhs(), cur)
		if err != nil {
			return logical.Plan{}, err
		}
		fn, err := catalog.Default.LookupOrSuggest(e.Op())
		if err != nil {
			return logical.Plan{}, err
		}
		if err := fn.CheckArity(2); err != nil {
			return logical.Plan{}, err
		}
		return logical.Invoke(fn, l, r), nil

	case ExprUnop:
		operand, err := st.compileExpr(e.Lhs(), cur)
		if err != nil {
			return logical.Plan{}, err
		}
		fn, err := catalog.Default.LookupOrSuggest(e.Op())
		if err != nil {
			return logical.Plan{}, err
		}
		if err := fn.CheckArity(1); err != nil {
			return logical.Plan{}, err
		}
		return logical.Invoke(fn, operand), nil

	case ExprInvoke:
		args := make([]logical.Plan, len(e.Args()))
		for i, a := range e.Args() {
			compiled, err := st.compileExpr(a, cur)
			if err != nil {
				return logical.Plan{}, err
			}
			args[i] = compiled
		}
		fn := e.Fn()
		if fn == nil {
			return logical.Plan{}, cerrors.ErrFunctionNotBound.New("<unbound invoke node>")
		}
		if err := fn.CheckArity(len(args)); err != nil {
			return logical.Plan{}, err
		}
		return logical.Invoke(fn, args...), nil

	case ExprLike:
		return st.compileLike(e, cur)

	case ExprCase:
		return st.compileCase(e, cur)

	case ExprSplice:
		return st.compileSplice(e)

	case ExprSetLiteral:
		elems := make([]data.Value, len(e.Elems()))
		for i, el := range e.Elems() {
			if el.Tag() != ExprLiteral {
				return logical.Plan{}, cerrors.ErrExpectedLiteral.New("SET literal element", el.Tag())
			}
			elems[i] = el.Val()
		}
		return logical.Constant(data.Set(elems)), nil

	case ExprArrayLiteral:
		args := make([]logical.Plan, len(e.Elems()))
		allConst := true
		for i, el := range e.Elems() {
			compiled, err := st.compileExpr(el, cur)
			if err != nil {
				return logical.Plan{}, err
			}
			args[i] = compiled
			if compiled.Tag() != logical.TagConstant {
				allConst = false
			}
		}
		if allConst {
			vals := make([]data.Value, len(args))
			for i, a := range args {
				vals[i] = a.ConstVal()
			}
			return logical.Constant(data.Arr(vals)), nil
		}
		return logical.Invoke(makeArrayNFn, args...), nil

	default:
		return logical.Plan{}, cerrors.Generic("compiler: unknown expression tag")
	}
}

// compileSplice resolves a "*" or "t.*" projection item to the object it
// should splice in: the qualified subtable, or the current table
// context's full (flattened) row for a bare "*".
func (st *State) compileSplice(e Expr) (logical.Plan, error) {
	tc, ok := st.currentTableContext()
	if !ok {
		return logical.Plan{}, cerrors.ErrCompiledTableMissing.New("*")
	}
	if e.Qualifier() == "" {
		return logical.Invoke(spliceFn, tc.full), nil
	}
	sub, ok := tc.subtables[e.Qualifier()]
	if !ok {
		return logical.Plan{}, cerrors.ErrCompiledSubtableMissing.New(e.Qualifier())
	}
	return logical.Invoke(spliceFn, sub), nil
}

// compileCase desugars simple and searched CASE into a right-nested
// Cond, evaluating the ELSE (or Null, absent one) innermost.
func (st *State) compileCase(e Expr, cur logical.Plan) (logical.Plan, error) {
	result := logical.Constant(data.Null)
	if els, ok := e.Else(); ok {
		compiled, err := st.compileExpr(els, cur)
		if err != nil {
			return logical.Plan{}, err
		}
		result = compiled
	}

	operand, isSimple := e.CaseOperand()
	var operandPlan logical.Plan
	if isSimple {
		compiled, err := st.compileExpr(operand, cur)
		if err != nil {
			return logical.Plan{}, err
		}
		operandPlan = compiled
	}

	whens, thens := e.Whens(), e.Thens()
	for i := len(whens) - 1; i >= 0; i-- {
		thenPlan, err := st.compileExpr(thens[i], cur)
		if err != nil {
			return logical.Plan{}, err
		}

		var cond logical.Plan
		if isSimple {
			whenPlan, err := st.compileExpr(whens[i], cur)
			if err != nil {
				return logical.Plan{}, err
			}
			cond = logical.Invoke(eqFn, operandPlan, whenPlan)
		} else {
			whenPlan, err := st.compileExpr(whens[i], cur)
			if err != nil {
				return logical.Plan{}, err
			}
			cond = whenPlan
		}
		result = logical.Invoke(condFn, cond, thenPlan, result)
	}
	return result, nil
}

// compileLike lowers a LIKE predicate to Search(subject, regexLiteral),
// per the LIKE-lowering rule: pattern and an optional escape must both be
// string literals.
func (st *State) compileLike(e Expr, cur logical.Plan) (logical.Plan, error) {
	subject, err := st.compileExpr(e.Lhs(), cur)
	if err != nil {
		return logical.Plan{}, err
	}

	patExpr := e.Rhs()
	pattern, ok := stringLiteral(patExpr)
	if !ok {
		return logical.Plan{}, cerrors.ErrExpectedLiteral.New("LIKE pattern", patExpr.Tag())
	}

	var escape string
	if e.HasEscape() {
		escExpr := e.Escape()
		escStr, ok := stringLiteral(escExpr)
		if !ok {
			return logical.Plan{}, cerrors.ErrExpectedLiteral.New("LIKE escape", escExpr.Tag())
		}
		if len([]rune(escStr)) > 1 {
			return logical.Plan{}, cerrors.Generic("LIKE ESCAPE must be a single character")
		}
		escape = escStr
	}

	re := likePatternToRegex(pattern, escape)
	return logical.Invoke(searchFn, subject, logical.Constant(data.Str(re))), nil
}

func stringLiteral(e Expr) (string, bool) {
	if e.Tag() != ExprLiteral || e.Val().Kind() != data.KindStr {
		return "", false
	}
	return e.Val().Str(), true
}

// regexMeta is the set of regex metacharacters the LIKE-lowering rule
// requires to be escaped verbatim (besides "_" and "%", which get their
// own translation).
var regexMeta = map[rune]bool{
	'\\': true, '^': true, '$': true, '.': true, '|': true,
	'?': true, '*': true, '+': true, '(': true, ')': true,
	'[': true, '{': true,
}

// likePatternToRegex translates a SQL LIKE pattern into a Go-syntax
// regular expression anchored with ^...$. An escape character (at most
// one) makes the following "_" or "%" literal; anywhere else the escape
// character is an ordinary character.
func likePatternToRegex(pattern, escape string) string {
	var esc rune
	hasEscape := escape != ""
	if hasEscape {
		esc = []rune(escape)[0]
	}

	runes := []rune(pattern)
	var b strings.Builder
	b.WriteByte('^')
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if hasEscape && r == esc && i+1 < len(runes) && (runes[i+1] == '%' || runes[i+1] == '_') {
			i++
			b.WriteString(regexp.QuoteMeta(string(runes[i])))
			continue
		}
		switch r {
		case '_':
			b.WriteByte('.')
		case '%':
			b.WriteString(".*")
		default:
			if regexMeta[r] {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('$')
	return b.String()
}
