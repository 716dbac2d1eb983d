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

// Package similartext finds names similar to a given identifier, for
// "maybe you mean X?" hints attached to the unknown-function errors
// raised by catalog.LookupOrSuggest.
package similartext

import (
	"fmt"
	"sort"
	"strings"
)

// maxDistance bounds how different the *closest* candidate may be and
// still count as "similar"; beyond this the suggestion stops being
// useful and Find reports nothing rather than noise.
const maxDistance = 2

// Find returns a ", maybe you mean X?" suffix (or the empty string) for
// the names in candidates closest to name.
func Find(candidates []string, name string) string {
	return format(closest(candidates, name))
}

// FindFromMap is Find over the keys of a map.
func FindFromMap(candidates map[string]int, name string) string {
	keys := make([]string, 0, len(candidates))
	for k := range candidates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return Find(keys, name)
}

// closest returns every candidate tied for the minimum edit distance to
// name, provided that minimum is within maxDistance. Ties are returned
// in their original relative order.
func closest(candidates []string, name string) []string {
	if name == "" {
		return nil
	}
	best := -1
	dists := make([]int, len(candidates))
	for i, c := range candidates {
		d := levenshtein(strings.ToLower(c), strings.ToLower(name))
		dists[i] = d
		if best == -1 || d < best {
			best = d
		}
	}
	if best == -1 || best > maxDistance {
		return nil
	}
	var out []string
	for i, c := range candidates {
		if dists[i] == best {
			out = append(out, c)
		}
	}
	return out
}

func format(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return fmt.Sprintf(", maybe you mean %s?", names[0])
	default:
		return fmt.Sprintf(", maybe you mean %s or %s?", strings.Join(names[:len(names)-1], ", "), names[len(names)-1])
	}
}

// levenshtein computes the classic edit distance between a and b.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			cur[j] = m
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
