package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGrid(t *testing.T) {
	g := NewGrid(10, 5)
	assert.Equal(t, 10, g.Rows)
	assert.Equal(t, 5, g.Cols)
	assert.Len(t, g.Cells, 50)
	assert.Equal(t, 0, g.CountVisited())

	empty := NewGrid(-2, 4)
	assert.Equal(t, 0, empty.Rows)
	assert.Empty(t, empty.Cells)
	assert.False(t, empty.InBounds(Position{Row: 0, Col: 0}))
}

func TestGrid_AtAndBounds(t *testing.T) {
	g := NewGrid(3, 4)
	g.set(Position{Row: 2, Col: 3}, 7)

	v, ok := g.At(Position{Row: 2, Col: 3})
	assert.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, 7, g.Cells[11])

	_, ok = g.At(Position{Row: 3, Col: 0})
	assert.False(t, ok)
	_, ok = g.At(Position{Row: 0, Col: -1})
	assert.False(t, ok)

	assert.True(t, g.IsEmpty(Position{Row: 0, Col: 0}))
	assert.False(t, g.IsEmpty(Position{Row: 2, Col: 3}))
	assert.False(t, g.IsEmpty(Position{Row: 9, Col: 9}))
}

func TestGrid_CloneIsDeep(t *testing.T) {
	g := NewGrid(2, 2)
	c := g.Clone()
	c.set(Position{Row: 1, Col: 1}, 1)

	assert.Equal(t, 0, g.CountVisited())
	assert.Equal(t, 1, c.CountVisited())
}

func TestGrid_Rows2DIsACopy(t *testing.T) {
	g := NewGrid(3, 2)
	rows := g.Rows2D()
	rows[2][0] = 99

	v, ok := g.At(Position{Row: 2, Col: 0})
	assert.True(t, ok)
	assert.Equal(t, 0, v)
	assert.Equal(t, 0, g.CountVisited())
}

func TestGrid_Rows2DAndPositionOf(t *testing.T) {
	g := NewGrid(2, 3)
	g.set(Position{Row: 1, Col: 2}, 4)

	assert.Equal(t, [][]int{{0, 0, 0}, {0, 0, 4}}, g.Rows2D())

	p, ok := g.PositionOf(4)
	assert.True(t, ok)
	assert.Equal(t, Position{Row: 1, Col: 2}, p)

	_, ok = g.PositionOf(5)
	assert.False(t, ok)
}

func TestVisitedSequence(t *testing.T) {
	g := NewGrid(3, 3)
	g.set(Position{Row: 0, Col: 0}, 1)
	g.set(Position{Row: 2, Col: 1}, 2)

	seq, ok := VisitedSequence(g)
	assert.True(t, ok)
	assert.Equal(t, []Position{{Row: 0, Col: 0}, {Row: 2, Col: 1}}, seq)

	g.set(Position{Row: 1, Col: 1}, 5)
	_, ok = VisitedSequence(g)
	assert.False(t, ok, "gap in the numbering")
}
