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

package reshape

// IdHandling records what a $Project does with _id: keep it unchanged,
// drop it, or leave it unconstrained (the compiler hasn't decided yet and
// a downstream stage is free to pick). The three form a chain of
// decreasing commitment: IncludeId and ExcludeId both refine IgnoreId,
// and neither refines the other.
type IdHandling uint8

const (
	// IncludeId keeps _id at the output of this stage.
	IncludeId IdHandling = iota
	// ExcludeId drops _id from the output of this stage.
	ExcludeId
	// IgnoreId leaves _id's presence unconstrained.
	IgnoreId
)

func (h IdHandling) String() string {
	switch h {
	case IncludeId:
		return "IncludeId"
	case ExcludeId:
		return "ExcludeId"
	default:
		return "IgnoreId"
	}
}

// Compose resolves the effective id handling when a stage with handling
// `inner` has handling `outer` layered on top of it (e.g. fusing two
// consecutive $Projects). IgnoreId defers entirely to the other side;
// when both sides are committed, the outer stage's choice wins, since it
// runs last and is closer to the final output.
func Compose(outer, inner IdHandling) IdHandling {
	if outer == IgnoreId {
		return inner
	}
	return outer
}
