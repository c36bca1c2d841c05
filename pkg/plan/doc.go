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

/*
Package plan turns an ordered rule sequence into the final source→archive
mapping consumed by the archive writer.

	+-----------+     +------------+     +-----------+
	|  ruleset  | --> |  Planner   | --> |   Plan    |
	| (ordered) |     | (fold)     |     | (frozen)  |
	+-----------+     +------------+     +-----------+
	                        |
	                  +-----+------+
	                  |  pattern   |
	                  | (matching) |
	                  +------------+

🎯 Purpose:
- Evaluates every rule's match set against the project root
- Folds include rules in file order into one source→archive mapping
- Applies exclusion, override, and flatten/preserve semantics
- Detects archive path collisions and resolves them last-rule-wins

🔄 Flow:
1. Compile and evaluate all rule patterns (includes may run concurrently)
2. Fail fast on any include rule that matched nothing
3. Union exclude match sets; exclusion beats inclusion regardless of order
4. Fold include rules in ascending order; later rules override earlier ones
   for the same source file
5. Freeze the plan, then resolve archive path collisions with warnings

📝 Design Philosophy:
Rule interactions are a left-to-right fold over an ordered list into an
accumulator map. There is no rule graph and no back-references: every
question about precedence is answered by rule order plus the deterministic
(lexicographic) enumeration order of each match set.
*/
package plan
