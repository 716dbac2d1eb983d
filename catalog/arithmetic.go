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

package catalog

import (
	"math/big"

	"github.com/dolthub/go-mongo-compiler/cerrors"
	"github.com/dolthub/go-mongo-compiler/data"
	"github.com/dolthub/go-mongo-compiler/logical"
	"github.com/dolthub/go-mongo-compiler/typesys"
	"github.com/shopspring/decimal"
)

// numericResultType implements the promotion rule: any numeric op with at
// least one Dec operand promotes to Dec; Int op Int stays Int.
func numericResultType(a, b typesys.Type) typesys.Type {
	ap, bp := widenToPrimitive(a), widenToPrimitive(b)
	if ap.Tag() == typesys.TagDec || bp.Tag() == typesys.TagDec {
		return typesys.Dec
	}
	return typesys.Int
}

func widenToPrimitive(t typesys.Type) typesys.Type {
	if t.Tag() == typesys.TagConst {
		return typesys.DataType(t.ConstValue())
	}
	return t
}

func isZero(v data.Value) bool {
	switch v.Kind() {
	case data.KindInt:
		return v.Int().Sign() == 0
	case data.KindDec:
		return v.DecVal().IsZero()
	default:
		return false
	}
}

func isIntLiteral(v data.Value, n int64) bool {
	return v.Kind() == data.KindInt && v.Int().Cmp(big.NewInt(n)) == 0
}

func isDecLiteral(v data.Value, n int64) bool {
	return v.Kind() == data.KindDec && v.DecVal().Equal(decimal.NewFromInt(n))
}

func isNumericLiteral(v data.Value, n int64) bool {
	return isIntLiteral(v, n) || isDecLiteral(v, n)
}

// arithTyper builds the Typer for a binary numeric op that also supports
// Temporal + Interval arithmetic.
func arithTyper(fold func(a, b data.Value) (data.Value, error)) Typer {
	return func(args []typesys.Type) (typesys.Type, error) {
		a, b := args[0], args[1]
		if a.Tag() == typesys.TagConst && b.Tag() == typesys.TagConst {
			v, err := fold(a.ConstValue(), b.ConstValue())
			if err != nil {
				return typesys.Type{}, err
			}
			return typesys.Const(v), nil
		}
		if typesys.TemporalType(a) || typesys.TemporalType(b) {
			// Timestamp + Interval = Timestamp; Interval * Int = Interval.
			// Any other temporal combination keeps the temporal operand's
			// shape, which is the best this context-free typer can say.
			if widenToPrimitive(a).Tag() == typesys.TagTimestamp {
				return typesys.Timestamp, nil
			}
			if widenToPrimitive(b).Tag() == typesys.TagTimestamp {
				return typesys.Timestamp, nil
			}
			return typesys.Interval, nil
		}
		return numericResultType(a, b), nil
	}
}

// foldNumeric applies intOp when both operands are Int (staying in Int,
// matching the promotion rule's Int-op-Int case), otherwise widens both
// to Dec and applies decOp.
func foldNumeric(a, b data.Value, intOp func(x, y *big.Int) *big.Int, decOp func(x, y decimal.Decimal) decimal.Decimal) data.Value {
	if a.Kind() == data.KindInt && b.Kind() == data.KindInt {
		return data.Int(intOp(a.Int(), b.Int()))
	}
	return data.Dec(decOp(numberAsDecimal(a), numberAsDecimal(b)))
}

func init() {
	Default.Register(&Function{
		Name:   "Add",
		Doc:    "Add(a, b). Numeric op promotes to Dec if either operand is Dec; Timestamp + Interval = Timestamp. 0 is the additive identity.",
		Arity:  2,
		Domain: []typesys.Type{typesys.Top, typesys.Top},
		Type: arithTyper(func(a, b data.Value) (data.Value, error) {
			return foldNumeric(a, b,
				func(x, y *big.Int) *big.Int { return new(big.Int).Add(x, y) },
				func(x, y decimal.Decimal) decimal.Decimal { return x.Add(y) }), nil
		}),
		Simplify: func(args []logical.Plan) (logical.Plan, bool) {
			if c, ok := constZero(args[0]); ok && c {
				return args[1], true
			}
			if c, ok := constZero(args[1]); ok && c {
				return args[0], true
			}
			return logical.Plan{}, false
		},
	})

	Default.Register(&Function{
		Name:   "Subtract",
		Doc:    "Subtract(a, b). Same promotion rule as Add.",
		Arity:  2,
		Domain: []typesys.Type{typesys.Top, typesys.Top},
		Type: arithTyper(func(a, b data.Value) (data.Value, error) {
			return foldNumeric(a, b,
				func(x, y *big.Int) *big.Int { return new(big.Int).Sub(x, y) },
				func(x, y decimal.Decimal) decimal.Decimal { return x.Sub(y) }), nil
		}),
		Simplify: func(args []logical.Plan) (logical.Plan, bool) {
			if c, ok := constZero(args[1]); ok && c {
				return args[0], true
			}
			return logical.Plan{}, false
		},
	})

	Default.Register(&Function{
		Name:   "Multiply",
		Doc:    "Multiply(a, b). Same promotion rule as Add; Interval * Int = Interval. 1 is the multiplicative identity.",
		Arity:  2,
		Domain: []typesys.Type{typesys.Top, typesys.Top},
		Type: arithTyper(func(a, b data.Value) (data.Value, error) {
			return foldNumeric(a, b,
				func(x, y *big.Int) *big.Int { return new(big.Int).Mul(x, y) },
				func(x, y decimal.Decimal) decimal.Decimal { return x.Mul(y) }), nil
		}),
		Simplify: func(args []logical.Plan) (logical.Plan, bool) {
			if c, ok := constOne(args[0]); ok && c {
				return args[1], true
			}
			if c, ok := constOne(args[1]); ok && c {
				return args[0], true
			}
			return logical.Plan{}, false
		},
	})

	Default.Register(&Function{
		Name:   "Divide",
		Doc:    "Divide(a, b). Non-constant operands follow the same promotion rule as Add; constant folding always yields a Dec. Division by a literal zero fails at type-check time.",
		Arity:  2,
		Domain: []typesys.Type{typesys.Top, typesys.Top},
		Type: arithTyper(func(a, b data.Value) (data.Value, error) {
			if isZero(b) {
				return data.Value{}, cerrors.Generic("division by zero")
			}
			return data.Dec(numberAsDecimal(a).DivRound(numberAsDecimal(b), 20)), nil
		}),
		Simplify: func(args []logical.Plan) (logical.Plan, bool) {
			if c, ok := constOne(args[1]); ok && c {
				return args[0], true
			}
			return logical.Plan{}, false
		},
	})

	Default.Register(&Function{
		Name:   "Modulo",
		Doc:    "Modulo(a, b). Modulo by a literal zero fails at type-check time.",
		Arity:  2,
		Domain: []typesys.Type{typesys.Top, typesys.Top},
		Type: arithTyper(func(a, b data.Value) (data.Value, error) {
			if isZero(b) {
				return data.Value{}, cerrors.Generic("modulo by zero")
			}
			return foldNumeric(a, b,
				func(x, y *big.Int) *big.Int { return new(big.Int).Mod(x, y) },
				func(x, y decimal.Decimal) decimal.Decimal { return x.Mod(y) }), nil
		}),
	})

	Default.Register(&Function{
		Name:   "Negate",
		Doc:    "Negate(a) is unary minus.",
		Arity:  1,
		Domain: []typesys.Type{typesys.Top},
		Type: func(args []typesys.Type) (typesys.Type, error) {
			if args[0].Tag() == typesys.TagConst {
				v := args[0].ConstValue()
				if v.Kind() == data.KindInt {
					return typesys.Const(data.Int(new(big.Int).Neg(v.Int()))), nil
				}
				return typesys.Const(data.Dec(v.DecVal().Neg())), nil
			}
			return widenToPrimitive(args[0]), nil
		},
		Simplify: func(args []logical.Plan) (logical.Plan, bool) {
			if args[0].Tag() == logical.TagInvoke && args[0].Fn().FuncName() == "Negate" {
				return args[0].Args()[0], true
			}
			return logical.Plan{}, false
		},
	})
}

func constZero(p logical.Plan) (bool, bool) {
	if p.Tag() != logical.TagConstant {
		return false, false
	}
	return isZero(p.ConstVal()), true
}

func constOne(p logical.Plan) (bool, bool) {
	if p.Tag() != logical.TagConstant {
		return false, false
	}
	return isNumericLiteral(p.ConstVal(), 1), true
}
