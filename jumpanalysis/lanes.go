// This file is part of objscan.
//
// objscan is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// objscan is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with objscan.  If not, see <https://www.gnu.org/licenses/>.

package jumpanalysis

// AssignLanes assigns each jump in the table a non-colliding
// DisplayOffset (lane), processing from the highest SourceIndex backward
// to the front so that a jump's lane is fixed before any jump that starts
// earlier but might overlap it is considered.
//
// The step of 2 between conflicting candidates is intentional: it
// reserves a one-column gutter between adjacent arrows.
func AssignLanes(t *InnerJumpTable) {
	t.SortBySource()

	t.MaxDisplayOffset = 0

	for i := len(t.Jumps) - 1; i >= 0; i-- {
		j := &t.Jumps[i]

		candidate := 0
		for {
			conflict := false
			for k, other := range t.Jumps {
				if k == i {
					continue
				}
				if !overlaps(*j, other) {
					continue
				}
				if other.DisplayOffset == candidate && laneAssigned(t.Jumps, k, i) {
					conflict = true
					break
				}
			}
			if !conflict {
				break
			}
			candidate += 2
		}

		j.DisplayOffset = candidate
		if candidate > t.MaxDisplayOffset {
			t.MaxDisplayOffset = candidate
		}
	}
}

// laneAssigned reports whether jump index k has already had its lane
// fixed by the backward-processing order, i.e. it comes after i in
// processing order (k > i, since we walk from the end backward).
func laneAssigned(jumps []InnerJump, k, i int) bool {
	return k > i
}

// overlaps reports whether a and b's [source,target] intervals overlap,
// treating both endpoints as closed and either jump direction.
func overlaps(a, b InnerJump) bool {
	aLo, aHi := span(a)
	bLo, bHi := span(b)
	return aLo <= bHi && bLo <= aHi
}

func span(j InnerJump) (lo, hi int) {
	if j.SourceIndex <= j.TargetIndex {
		return j.SourceIndex, j.TargetIndex
	}
	return j.TargetIndex, j.SourceIndex
}
