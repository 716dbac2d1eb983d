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

// Package debug renders LogicalPlan and Workflow trees to an indented
// text tree or to JSON, for logging and snapshot testing. It is a
// read-only view: nothing here is part of the wire format.
package debug

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Node is the generic debug-tree shape every IR in this module can
// project itself into.
type Node struct {
	Tag      string `json:"tag"`
	Val      string `json:"val,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Tree renders n as an indented text tree, in the style of
// dolthub/go-mysql-server's sql.TreePrinter debug output.
func Tree(n Node) string {
	var b strings.Builder
	writeTree(&b, n, "")
	return b.String()
}

func writeTree(b *strings.Builder, n Node, indent string) {
	if n.Val != "" {
		fmt.Fprintf(b, "%s%s(%s)\n", indent, n.Tag, n.Val)
	} else {
		fmt.Fprintf(b, "%s%s\n", indent, n.Tag)
	}
	for _, c := range n.Children {
		writeTree(b, c, indent+"  ")
	}
}

// JSON renders n as indented JSON.
func JSON(n Node) (string, error) {
	b, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b), nil
}
