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

package data

// Obj is an insertion-ordered mapping from string to Value, matching the
// Obj(mapping from string to Data, insertion-ordered) atom of the data
// model. Keys are unique; re-setting an existing key updates its value in
// place without moving it to the end.
type Obj struct {
	keys   []string
	values map[string]Value
}

// NewObj builds an Obj from the given keys in order, paired positionally
// with vals. len(keys) must equal len(vals).
func NewObj(keys []string, vals []Value) *Obj {
	o := &Obj{
		keys:   make([]string, 0, len(keys)),
		values: make(map[string]Value, len(keys)),
	}
	for i, k := range keys {
		o.Set(k, vals[i])
	}
	return o
}

// EmptyObj returns a fresh, empty Obj.
func EmptyObj() *Obj { return &Obj{values: map[string]Value{}} }

// Set inserts or updates key -> v, preserving first-insertion order.
func (o *Obj) Set(key string, v Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value at key and whether it is present.
func (o *Obj) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Delete removes key, if present.
func (o *Obj) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order. The returned slice must not be
// mutated by the caller.
func (o *Obj) Keys() []string { return o.keys }

// Len returns the number of fields.
func (o *Obj) Len() int { return len(o.keys) }

// Equal is structural equality, order-independent (Obj field order is an
// observable serialization detail, not a data-equality one).
func (o *Obj) Equal(other *Obj) bool {
	if o.Len() != other.Len() {
		return false
	}
	for _, k := range o.keys {
		v, ok := other.Get(k)
		if !ok {
			return false
		}
		mine, _ := o.Get(k)
		if !mine.Equal(v) {
			return false
		}
	}
	return true
}

// ObjValue wraps an Obj atom into a Value.
func ObjValue(o *Obj) Value { return Value{kind: KindObj, o: o} }

// Obj returns the object payload; valid only when Kind() == KindObj.
func (v Value) Obj() *Obj { return v.o }
