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

package logical

import "github.com/dolthub/go-mongo-compiler/debug"

// DebugNode projects p into the shared debug-tree shape for logging and
// snapshot testing (see package debug).
func (p Plan) DebugNode() debug.Node {
	v := p.debugView()
	return convert(v)
}

func convert(v debugView) debug.Node {
	kids := make([]debug.Node, len(v.Kids))
	for i, k := range v.Kids {
		kids[i] = convert(k)
	}
	return debug.Node{Tag: v.Tag, Val: v.Val, Children: kids}
}
