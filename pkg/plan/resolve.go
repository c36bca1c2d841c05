// Copyright 2025 walteh LLC
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

package plan

import "sort"

// Resolve detects archive path collisions between distinct source files and
// resolves them last-rule-wins. For each contested archive path the entry
// from the rule with the highest order survives (ties broken by the later
// fold sequence, which follows the deterministic match enumeration order).
// Dropped sources are returned as warnings; the plan itself is mutated to a
// collision-free state with entries sorted by archive path.
func (p *Plan) Resolve() []Collision {
	byArchive := map[string][]Entry{}
	for _, e := range p.Entries {
		byArchive[e.ArchivePath] = append(byArchive[e.ArchivePath], e)
	}

	var collisions []Collision
	resolved := make([]Entry, 0, len(byArchive))
	for arc, group := range byArchive {
		if len(group) == 1 {
			resolved = append(resolved, group[0])
			continue
		}

		sort.Slice(group, func(i, j int) bool {
			if group[i].RuleOrder != group[j].RuleOrder {
				return group[i].RuleOrder > group[j].RuleOrder
			}
			return group[i].seq > group[j].seq
		})

		winner := group[0]
		losers := make([]string, 0, len(group)-1)
		for _, e := range group[1:] {
			losers = append(losers, e.RelSource)
		}
		sort.Strings(losers)

		collisions = append(collisions, Collision{
			ArchivePath: arc,
			Winner:      winner.RelSource,
			Losers:      losers,
		})
		resolved = append(resolved, winner)
	}

	sort.Slice(resolved, func(i, j int) bool {
		return resolved[i].ArchivePath < resolved[j].ArchivePath
	})
	p.Entries = resolved

	sort.Slice(collisions, func(i, j int) bool {
		return collisions[i].ArchivePath < collisions[j].ArchivePath
	})
	return collisions
}
