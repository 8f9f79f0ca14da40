/*
Copyright SUSE LLC.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

/*
Solver provides the vocabulary a resolver uses to report what went wrong and
to act on the user's choice: problems, their solutions, and the transaction
plan the accepted solutions accumulate into.

The search itself, finding which constraints cannot be satisfied, lives
outside this package. It hands over:

 1. A pool (see package pool) with every known resolvable, seeded with the
 state found on the system: installed, to install, to remove, locked.

 2. A list of problems. Each problem carries a description, optionally the
 offending capability and item, and its solutions ordered best first. A
 solution is an ordered list of actions: install, remove, lock, keep or
 unlock one item.

To move on, the caller accepts one solution per problem, or ignores the
problem. Accepting a solution applies it to the transaction plan:

 - Every action records the state its item should end in. Recording the
 same state twice is fine; recording another one is a conflict, reported
 with both solutions involved.
 - Locked items only accept lock and unlock actions.
 - All solutions of one Apply call go in together or not at all. On success
 the pool items are moved to their new state.

Finally the plan is finalized into the ordered list of (item, state) steps
the installer executes. Ordering by package dependencies is up to the
installer.

A Session ties a pool, a plan and the open problems together, and can fork
into an independent copy for what-if resolutions.
*/
package solver
