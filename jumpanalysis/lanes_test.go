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

import "testing"

func TestAssignLanesNonOverlapping(t *testing.T) {
	table := InnerJumpTable{Jumps: []InnerJump{
		{SourceIndex: 0, TargetIndex: 1},
		{SourceIndex: 5, TargetIndex: 6},
	}}
	AssignLanes(&table)

	for _, j := range table.Jumps {
		if j.DisplayOffset != 0 {
			t.Errorf("non-overlapping jump got lane %d, want 0", j.DisplayOffset)
		}
	}
	if table.MaxDisplayOffset != 0 {
		t.Errorf("MaxDisplayOffset = %d, want 0", table.MaxDisplayOffset)
	}
}

func TestAssignLanesTwoOverlapping(t *testing.T) {
	table := InnerJumpTable{Jumps: []InnerJump{
		{SourceIndex: 1, TargetIndex: 5},
		{SourceIndex: 2, TargetIndex: 6},
	}}
	AssignLanes(&table)

	byLane := map[int]bool{}
	for _, j := range table.Jumps {
		byLane[j.DisplayOffset] = true
	}
	if !byLane[0] || !byLane[2] {
		t.Errorf("expected lanes {0, 2}, got %+v", table.Jumps)
	}
	if table.MaxDisplayOffset != 2 {
		t.Errorf("MaxDisplayOffset = %d, want 2", table.MaxDisplayOffset)
	}
}

func TestAssignLanesThreeMutuallyOverlapping(t *testing.T) {
	table := InnerJumpTable{Jumps: []InnerJump{
		{SourceIndex: 0, TargetIndex: 10},
		{SourceIndex: 1, TargetIndex: 9},
		{SourceIndex: 2, TargetIndex: 8},
	}}
	AssignLanes(&table)

	seen := map[int]int{}
	for _, j := range table.Jumps {
		seen[j.DisplayOffset]++
	}
	for lane, count := range seen {
		if count > 1 {
			t.Errorf("lane %d used by %d overlapping jumps, want at most 1", lane, count)
		}
	}
	if table.MaxDisplayOffset != 4 {
		t.Errorf("MaxDisplayOffset = %d, want 4 for three mutually overlapping jumps", table.MaxDisplayOffset)
	}
}

func TestOverlaps(t *testing.T) {
	a := InnerJump{SourceIndex: 0, TargetIndex: 5}
	b := InnerJump{SourceIndex: 5, TargetIndex: 10} // touches at the closed endpoint
	if !overlaps(a, b) {
		t.Errorf("closed-endpoint intervals should count as overlapping")
	}

	c := InnerJump{SourceIndex: 6, TargetIndex: 10}
	if overlaps(a, c) {
		t.Errorf("disjoint intervals should not overlap")
	}

	d := InnerJump{SourceIndex: 8, TargetIndex: 3} // reverse direction
	if !overlaps(a, d) {
		t.Errorf("overlap check should be direction-agnostic")
	}
}
