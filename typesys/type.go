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

// Package typesys implements the structural type lattice described in the
// data model: Top, Bottom, primitives, structural Obj/Arr types, unions,
// and Const singleton types carrying a literal value.
package typesys

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dolthub/go-mongo-compiler/data"
)

// Tag discriminates the Type variants.
type Tag uint8

const (
	TagTop Tag = iota
	TagBottom
	TagBool
	TagInt
	TagDec
	TagStr
	TagTimestamp
	TagDate
	TagTime
	TagInterval
	TagObj
	TagArr
	TagUnion
	TagConst
)

// Type is the structural type lattice value. Zero value is not valid;
// use one of the constructors below.
type Type struct {
	tag Tag

	// Obj
	fields map[string]Type
	rest   *Type // optional rest-value type for open objects

	// Arr
	elem *Type

	// Union
	members []Type

	// Const
	constVal data.Value
}

var (
	Top       = Type{tag: TagTop}
	Bottom    = Type{tag: TagBottom}
	Bool      = Type{tag: TagBool}
	Int       = Type{tag: TagInt}
	Dec       = Type{tag: TagDec}
	Str       = Type{tag: TagStr}
	Timestamp = Type{tag: TagTimestamp}
	Date      = Type{tag: TagDate}
	Time      = Type{tag: TagTime}
	Interval  = Type{tag: TagInterval}
)

// Obj builds a structural object type. rest, if non-nil, types any field
// not named in fields (an "open" object); a nil rest means closed.
func Obj(fields map[string]Type, rest *Type) Type {
	return Type{tag: TagObj, fields: fields, rest: rest}
}

// Arr builds an array type whose elements all have type elem.
func Arr(elem Type) Type {
	return Type{tag: TagArr, elem: &elem}
}

// Union builds the union of the given members, flattening nested unions
// and deduplicating structurally-equal members.
func Union(members ...Type) Type {
	flat := make([]Type, 0, len(members))
	for _, m := range members {
		if m.tag == TagUnion {
			flat = append(flat, m.members...)
		} else {
			flat = append(flat, m)
		}
	}
	deduped := make([]Type, 0, len(flat))
	for _, m := range flat {
		dup := false
		for _, d := range deduped {
			if d.Equal(m) {
				dup = true
				break
			}
		}
		if !dup {
			deduped = append(deduped, m)
		}
	}
	if len(deduped) == 1 {
		return deduped[0]
	}
	return Type{tag: TagUnion, members: deduped}
}

// Const builds the singleton type carrying the literal value d. Per the
// data model invariant, Const(d) <: d.dataType.
func Const(d data.Value) Type { return Type{tag: TagConst, constVal: d} }

// Tag returns the variant tag.
func (t Type) Tag() Tag { return t.tag }

// ConstValue returns the literal carried by a Const type; only valid when
// Tag() == TagConst.
func (t Type) ConstValue() data.Value { return t.constVal }

// Fields returns the field map of an Obj type; only valid when
// Tag() == TagObj.
func (t Type) Fields() map[string]Type { return t.fields }

// Rest returns the rest-value type of an open Obj type, or nil if closed.
func (t Type) Rest() *Type { return t.rest }

// Elem returns the element type of an Arr type; only valid when
// Tag() == TagArr.
func (t Type) Elem() Type { return *t.elem }

// Members returns the member types of a Union; only valid when
// Tag() == TagUnion.
func (t Type) Members() []Type { return t.members }

// DataType returns the underlying primitive type backing a Const literal,
// per the invariant Const(d) <: d.dataType.
func DataType(d data.Value) Type {
	switch d.Kind() {
	case data.KindNull:
		return Bottom
	case data.KindBool:
		return Bool
	case data.KindInt:
		return Int
	case data.KindDec:
		return Dec
	case data.KindStr:
		return Str
	case data.KindTimestamp:
		return Timestamp
	case data.KindDate:
		return Date
	case data.KindTime:
		return Time
	case data.KindInterval:
		return Interval
	case data.KindArr:
		elems := d.Arr()
		if len(elems) == 0 {
			return Arr(Bottom)
		}
		elemTypes := make([]Type, len(elems))
		for i, e := range elems {
			elemTypes[i] = DataType(e)
		}
		return Arr(Union(elemTypes...))
	case data.KindObj:
		fields := map[string]Type{}
		for _, k := range d.Obj().Keys() {
			v, _ := d.Obj().Get(k)
			fields[k] = DataType(v)
		}
		return Obj(fields, nil)
	default:
		return Top
	}
}

// Equal is structural equality over the lattice.
func (t Type) Equal(other Type) bool {
	if t.tag != other.tag {
		return false
	}
	switch t.tag {
	case TagConst:
		return t.constVal.Equal(other.constVal)
	case TagArr:
		return t.elem.Equal(*other.elem)
	case TagObj:
		if len(t.fields) != len(other.fields) {
			return false
		}
		for k, v := range t.fields {
			ov, ok := other.fields[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		if (t.rest == nil) != (other.rest == nil) {
			return false
		}
		if t.rest != nil && !t.rest.Equal(*other.rest) {
			return false
		}
		return true
	case TagUnion:
		if len(t.members) != len(other.members) {
			return false
		}
		for _, m := range t.members {
			found := false
			for _, om := range other.members {
				if m.Equal(om) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String renders the type for debug output and error messages.
func (t Type) String() string {
	switch t.tag {
	case TagTop:
		return "Top"
	case TagBottom:
		return "Bottom"
	case TagBool:
		return "Bool"
	case TagInt:
		return "Int"
	case TagDec:
		return "Dec"
	case TagStr:
		return "Str"
	case TagTimestamp:
		return "Timestamp"
	case TagDate:
		return "Date"
	case TagTime:
		return "Time"
	case TagInterval:
		return "Interval"
	case TagArr:
		return fmt.Sprintf("Arr(%s)", t.elem.String())
	case TagObj:
		names := make([]string, 0, len(t.fields))
		for k := range t.fields {
			names = append(names, k)
		}
		sort.Strings(names)
		parts := make([]string, len(names))
		for i, k := range names {
			parts[i] = fmt.Sprintf("%s: %s", k, t.fields[k].String())
		}
		rest := ""
		if t.rest != nil {
			rest = fmt.Sprintf(", ...%s", t.rest.String())
		}
		return fmt.Sprintf("Obj(%s%s)", strings.Join(parts, ", "), rest)
	case TagUnion:
		parts := make([]string, len(t.members))
		for i, m := range t.members {
			parts[i] = m.String()
		}
		return strings.Join(parts, " | ")
	case TagConst:
		return fmt.Sprintf("Const(%s)", t.constVal.String())
	default:
		return "<invalid>"
	}
}
