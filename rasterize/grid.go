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

package rasterize

import "github.com/objscan/objscan/jumpanalysis"

// dir is a bitset of the four cardinal connections a cell's glyph draws.
type dir uint8

const (
	dirLeft dir = 1 << iota
	dirTop
	dirRight
	dirBottom
)

// head marks a cell as an arrow endpoint rather than a pass-through or
// corner segment. Head glyphs are drawn instead of (not in addition to)
// the direction-bit glyph table.
type head int

const (
	noHead head = iota
	leftHead
	rightHead
	doubleHead
)

// Cell is one grid position: the OR of every path segment's direction
// bits that crosses it, plus an endpoint marker.
type Cell struct {
	dirs dir
	head head
}

// Grid is the rasterized arrow layout for one function's jump table.
// Row i corresponds to the i'th decoded instruction.
type Grid struct {
	Width  int
	Height int
	cells  []Cell
}

func newGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, cells: make([]Cell, width*height)}
}

func (g *Grid) at(row, col int) *Cell {
	return &g.cells[row*g.Width+col]
}

// Cell returns a copy of the grid cell at (row, col).
func (g *Grid) Cell(row, col int) Cell {
	return *g.at(row, col)
}

// Render builds the arrow grid for a function with the given instruction
// count from its lane-assigned jump table.
func Render(table jumpanalysis.InnerJumpTable, instructionCount int) *Grid {
	width := table.MaxDisplayOffset + 1
	if width < 1 {
		width = 1
	}
	height := instructionCount

	g := newGrid(width, height)

	for _, j := range table.Jumps {
		g.drawJump(j, width)
	}

	return g
}

func (g *Grid) drawJump(j jumpanalysis.InnerJump, width int) {
	col := width - 1 - j.DisplayOffset
	rightEdge := width - 1

	srcRow, tgtRow := j.SourceIndex, j.TargetIndex

	// source-row horizontal run, rightEdge -> col (leftward)
	g.drawHorizontal(srcRow, rightEdge, col)
	// vertical run at col, srcRow -> tgtRow
	g.drawVertical(col, srcRow, tgtRow)
	// target-row horizontal run, col -> rightEdge (rightward)
	g.drawHorizontal(tgtRow, col, rightEdge)

	g.addHead(srcRow, rightEdge, leftHead)
	g.addHead(tgtRow, rightEdge, rightHead)
}

// drawHorizontal marks a horizontal run on row between fromCol and toCol
// inclusive (either order), adding Left/Right bits between adjacent
// cells. A zero-length run (fromCol == toCol) touches nothing.
func (g *Grid) drawHorizontal(row, fromCol, toCol int) {
	if fromCol == toCol {
		return
	}
	step := 1
	if toCol < fromCol {
		step = -1
	}
	for c := fromCol; c != toCol; c += step {
		next := c + step
		if step > 0 {
			g.at(row, c).dirs |= dirRight
			g.at(row, next).dirs |= dirLeft
		} else {
			g.at(row, c).dirs |= dirLeft
			g.at(row, next).dirs |= dirRight
		}
	}
}

// drawVertical marks a vertical run in col between fromRow and toRow
// inclusive (either order).
func (g *Grid) drawVertical(col, fromRow, toRow int) {
	if fromRow == toRow {
		return
	}
	step := 1
	if toRow < fromRow {
		step = -1
	}
	for r := fromRow; r != toRow; r += step {
		next := r + step
		if step > 0 {
			g.at(r, col).dirs |= dirBottom
			g.at(next, col).dirs |= dirTop
		} else {
			g.at(r, col).dirs |= dirTop
			g.at(next, col).dirs |= dirBottom
		}
	}
}

func (g *Grid) addHead(row, col int, h head) {
	c := g.at(row, col)
	switch {
	case c.head == noHead:
		c.head = h
	case c.head != h:
		c.head = doubleHead
	}
}
