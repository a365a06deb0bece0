package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGridRejectsBadDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-1, 3}, {3, -2}} {
		_, err := NewGrid(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrInvalidDimensions, "dims %v", dims)
	}
}

func TestGridIsValid(t *testing.T) {
	g, err := NewGrid(3, 2)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 2, g.Height())
	assert.Equal(t, 6, g.Capacity())

	assert.True(t, g.IsValid(0, 0))
	assert.True(t, g.IsValid(2, 1))
	assert.False(t, g.IsValid(3, 0))
	assert.False(t, g.IsValid(0, 2))
	assert.False(t, g.IsValid(-1, 0))
	assert.False(t, g.IsValid(0, -1))
}

func TestGridSetCellReturnsPrevious(t *testing.T) {
	g, _ := NewGrid(2, 2)
	a := NewPiece(0, ClubsOut, ClubsOut, ClubsOut, ClubsOut)
	b := NewPiece(1, ClubsOut, ClubsOut, ClubsOut, ClubsOut)

	assert.Nil(t, g.SetCell(1, 0, a))
	assert.Same(t, a, g.Cell(1, 0))
	assert.True(t, g.IsOccupied(1, 0))

	assert.Same(t, a, g.SetCell(1, 0, b))
	assert.Same(t, b, g.SetCell(1, 0, nil))
	assert.False(t, g.IsOccupied(1, 0))
}

func TestGridOffGridIsSilent(t *testing.T) {
	g, _ := NewGrid(2, 2)
	a := NewPiece(0, ClubsOut, ClubsOut, ClubsOut, ClubsOut)

	assert.Nil(t, g.SetCell(2, 0, a))
	assert.Nil(t, g.SetCell(0, -1, a))
	assert.Nil(t, g.Cell(2, 0))
	assert.False(t, g.IsOccupied(-1, -1))
	assert.True(t, g.IsEmpty())
}

func TestGridFullAndEmpty(t *testing.T) {
	g, _ := NewGrid(2, 1)
	assert.True(t, g.IsEmpty())
	assert.False(t, g.IsFull())

	g.SetCell(0, 0, NewPiece(0, ClubsOut, ClubsOut, ClubsOut, ClubsOut))
	assert.False(t, g.IsEmpty())
	assert.False(t, g.IsFull())
	assert.Equal(t, 1, g.PieceCount())

	g.SetCell(1, 0, NewPiece(1, ClubsOut, ClubsOut, ClubsOut, ClubsOut))
	assert.True(t, g.IsFull())

	g.Clear()
	assert.True(t, g.IsEmpty())
	assert.Equal(t, 0, g.PieceCount())
}

func TestGridString(t *testing.T) {
	g, _ := NewGrid(2, 2)
	g.SetCell(1, 0, NewPiece(0, ClubsOut, HeartsOut, DiamondsIn, SpadesIn))

	assert.Equal(t, ". [C+ H+ D- S-]\n. .\n", g.String())
}

func TestPositionNeighbor(t *testing.T) {
	p := Position{X: 1, Y: 1}
	assert.Equal(t, Position{X: 1, Y: 0}, p.Neighbor(North))
	assert.Equal(t, Position{X: 2, Y: 1}, p.Neighbor(East))
	assert.Equal(t, Position{X: 1, Y: 2}, p.Neighbor(South))
	assert.Equal(t, Position{X: 0, Y: 1}, p.Neighbor(West))
}
