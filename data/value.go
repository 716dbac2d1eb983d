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

// Package data implements the tagged-union data atom described in the
// data model: the set of runtime values a compiled plan can carry as a
// literal or produce as a result.
package data

import (
	"math/big"

	"github.com/shopspring/decimal"
	errorkind "gopkg.in/src-d/go-errors.v1"
)

// ErrUnknownKind is returned when a Value carries a Kind this package does
// not recognize; this is always an internal bug, never a user error.
var ErrUnknownKind = errorkind.NewKind("data: unknown value kind %d")

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindDec
	KindStr
	KindTimestamp
	KindDate
	KindTime
	KindInterval
	KindArr
	KindObj
	KindSet
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindDec:
		return "Dec"
	case KindStr:
		return "Str"
	case KindTimestamp:
		return "Timestamp"
	case KindDate:
		return "Date"
	case KindTime:
		return "Time"
	case KindInterval:
		return "Interval"
	case KindArr:
		return "Arr"
	case KindObj:
		return "Obj"
	case KindSet:
		return "Set"
	default:
		return "Unknown"
	}
}

// Value is a single data atom. Only the field matching Kind is meaningful;
// the others are zero. Values are immutable once constructed; every
// constructor returns a fresh Value and no method mutates its receiver.
type Value struct {
	kind Kind

	b bool
	i *big.Int
	d decimal.Decimal
	s string
	t Temporal
	a []Value
	o *Obj
	set []Value // Set: de-duplicated by Equal, unordered by contract
}

// Kind returns the variant tag of v.
func (v Value) Kind() Kind { return v.kind }

// Null is the single Null value.
var Null = Value{kind: KindNull}

// Bool wraps a boolean atom.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int wraps an arbitrary-precision integer atom.
func Int(i *big.Int) Value { return Value{kind: KindInt, i: i} }

// IntFromInt64 is a convenience constructor for small integer literals.
func IntFromInt64(i int64) Value { return Int(big.NewInt(i)) }

// Dec wraps an arbitrary-precision decimal atom.
func Dec(d decimal.Decimal) Value { return Value{kind: KindDec, d: d} }

// Str wraps a string atom.
func Str(s string) Value { return Value{kind: KindStr, s: s} }

// Arr wraps an ordered sequence of Data.
func Arr(elems []Value) Value { return Value{kind: KindArr, a: elems} }

// Set wraps an unordered, deduplicated collection of Data.
func Set(elems []Value) Value {
	deduped := make([]Value, 0, len(elems))
	for _, e := range elems {
		found := false
		for _, d := range deduped {
			if d.Equal(e) {
				found = true
				break
			}
		}
		if !found {
			deduped = append(deduped, e)
		}
	}
	return Value{kind: KindSet, set: deduped}
}

// Bool returns the boolean payload; valid only when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload; valid only when Kind() == KindInt.
func (v Value) Int() *big.Int { return v.i }

// DecVal returns the decimal payload; valid only when Kind() == KindDec.
func (v Value) DecVal() decimal.Decimal { return v.d }

// Str returns the string payload; valid only when Kind() == KindStr.
func (v Value) Str() string { return v.s }

// Arr returns the array payload; valid only when Kind() == KindArr.
func (v Value) Arr() []Value { return v.a }

// SetElems returns the set payload; valid only when Kind() == KindSet.
func (v Value) SetElems() []Value { return v.set }

// Temporal returns the temporal payload; valid only for the four temporal
// kinds (Timestamp, Date, Time, Interval).
func (v Value) Temporal() Temporal { return v.t }

// IsNumber reports whether v is Int or Dec, per the Number = Int | Dec
// invariant of the data model.
func (v Value) IsNumber() bool { return v.kind == KindInt || v.kind == KindDec }

// IsTemporal reports whether v is one of the four temporal kinds.
func (v Value) IsTemporal() bool {
	switch v.kind {
	case KindTimestamp, KindDate, KindTime, KindInterval:
		return true
	default:
		return false
	}
}

// Equal is structural equality over data atoms, used by Set deduplication
// and by the catalog's constant-folding simplifiers.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt:
		return v.i.Cmp(other.i) == 0
	case KindDec:
		return v.d.Equal(other.d)
	case KindStr:
		return v.s == other.s
	case KindTimestamp, KindDate, KindTime, KindInterval:
		return v.t.Equal(other.t)
	case KindArr:
		if len(v.a) != len(other.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(other.a[i]) {
				return false
			}
		}
		return true
	case KindObj:
		return v.o.Equal(other.o)
	case KindSet:
		if len(v.set) != len(other.set) {
			return false
		}
		for _, e := range v.set {
			match := false
			for _, oe := range other.set {
				if e.Equal(oe) {
					match = true
					break
				}
			}
			if !match {
				return false
			}
		}
		return true
	default:
		return false
	}
}
