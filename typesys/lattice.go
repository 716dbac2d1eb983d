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

package typesys

// primitiveOf widens a Const to its underlying primitive/structural type,
// leaving non-Const types untouched. Lattice operations work on widened
// types; only typecheck-time narrowing re-introduces Const.
func primitiveOf(t Type) Type {
	if t.tag == TagConst {
		return DataType(t.constVal)
	}
	return t
}

// Contains reports whether every value described by b is also described
// by a (a <: ... relationship, read "a contains b").
func Contains(a, b Type) bool {
	if a.tag == TagTop {
		return true
	}
	if b.tag == TagBottom {
		return true
	}
	if a.tag == TagBottom {
		return b.tag == TagBottom
	}
	if a.tag == TagUnion {
		for _, m := range a.members {
			if Contains(m, b) {
				return true
			}
		}
		return false
	}
	if b.tag == TagUnion {
		for _, m := range b.members {
			if !Contains(a, m) {
				return false
			}
		}
		return true
	}
	if b.tag == TagConst {
		if a.tag == TagConst {
			return a.constVal.Equal(b.constVal)
		}
		return Contains(a, primitiveOf(b))
	}
	if a.tag == TagConst {
		return false
	}
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case TagArr:
		return Contains(*a.elem, *b.elem)
	case TagObj:
		for k, at := range a.fields {
			bt, ok := b.fields[k]
			if !ok {
				if a.rest == nil {
					return false
				}
				continue
			}
			if !Contains(at, bt) {
				return false
			}
		}
		for k, bt := range b.fields {
			if _, ok := a.fields[k]; ok {
				continue
			}
			if a.rest == nil {
				return false
			}
			if !Contains(*a.rest, bt) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// Lub computes the least upper bound of a and b.
func Lub(a, b Type) Type {
	if Contains(a, b) {
		return a
	}
	if Contains(b, a) {
		return b
	}
	a, b = primitiveOf(a), primitiveOf(b)
	if a.tag == b.tag {
		switch a.tag {
		case TagArr:
			return Arr(Lub(*a.elem, *b.elem))
		case TagObj:
			fields := map[string]Type{}
			for k, at := range a.fields {
				if bt, ok := b.fields[k]; ok {
					fields[k] = Lub(at, bt)
				}
			}
			var rest *Type
			if a.rest != nil || b.rest != nil {
				r := Top
				rest = &r
			}
			return Obj(fields, rest)
		}
	}
	return Union(a, b)
}

// Glb computes the greatest lower bound of a and b.
func Glb(a, b Type) Type {
	if Contains(a, b) {
		return b
	}
	if Contains(b, a) {
		return a
	}
	return Bottom
}

// Numeric is a pattern view matching Int, Dec, or a Const of either.
func Numeric(t Type) bool {
	p := primitiveOf(t)
	return p.tag == TagInt || p.tag == TagDec
}

// TemporalType is a pattern view matching any of the four temporal types.
func TemporalType(t Type) bool {
	p := primitiveOf(t)
	switch p.tag {
	case TagTimestamp, TagDate, TagTime, TagInterval:
		return true
	default:
		return false
	}
}

// ArrayLike is a pattern view matching Arr types (including Const arrays).
func ArrayLike(t Type) (Type, bool) {
	p := primitiveOf(t)
	if p.tag == TagArr {
		return *p.elem, true
	}
	return Type{}, false
}

// TypeErrorInfo describes a typecheck failure: the expected type, the
// observed type, and an optional free-form hint.
type TypeErrorInfo struct {
	Expected Type
	Observed Type
	Hint     string
}

// Typecheck succeeds (returns nil) iff expected contains observed;
// otherwise it returns a *TypeErrorInfo describing the mismatch.
func Typecheck(observed, expected Type) *TypeErrorInfo {
	if Contains(expected, observed) {
		return nil
	}
	return &TypeErrorInfo{Expected: expected, Observed: observed}
}
