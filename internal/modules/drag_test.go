package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeModules() *Store {
	s := New("")
	s.Add()
	s.Add()
	return s
}

func TestDragDropMoves(t *testing.T) {
	s := threeModules()
	d := NewDrag(s)

	d.Begin(0)
	d.Over(2)
	tgt, ok := d.Target()
	require.True(t, ok)
	assert.Equal(t, 2, tgt)
	assert.Equal(t, []string{"Module 1", "Module 2", "Module 3"}, titles(s), "over must not mutate")

	assert.True(t, d.Drop(2))
	assert.Equal(t, []string{"Module 2", "Module 3", "Module 1"}, titles(s))
	assert.False(t, d.Active())
	_, ok = d.Target()
	assert.False(t, ok)
}

func TestDragDropOnSelfAborts(t *testing.T) {
	s := threeModules()
	d := NewDrag(s)

	d.Begin(1)
	d.Over(1)
	assert.False(t, d.Drop(1))
	assert.False(t, d.Active())
	assert.Equal(t, []string{"Module 1", "Module 2", "Module 3"}, titles(s))
}

func TestDropWithoutBeginAborts(t *testing.T) {
	s := threeModules()
	d := NewDrag(s)

	assert.False(t, d.Drop(0))
	assert.Equal(t, []string{"Module 1", "Module 2", "Module 3"}, titles(s))
}

func TestDragLeaveAndEndClearHighlight(t *testing.T) {
	d := NewDrag(threeModules())
	d.Begin(0)
	d.Over(1)
	d.Leave()
	_, ok := d.Target()
	assert.False(t, ok)
	assert.True(t, d.Active(), "leave keeps the source")

	d.Over(2)
	d.End()
	_, ok = d.Target()
	assert.False(t, ok)

	d.Cancel()
	assert.False(t, d.Active())
}

func TestDragMatchesButtons(t *testing.T) {
	for from := 0; from < 3; from++ {
		for _, to := range []int{from - 1, from + 1} {
			if to < 0 || to > 2 {
				continue
			}
			viaDrag := threeModules()
			d := NewDrag(viaDrag)
			d.Begin(from)
			d.Drop(to)

			viaButton := threeModules()
			if to < from {
				viaButton.MoveUp(from)
			} else {
				viaButton.MoveDown(from)
			}
			assert.Equal(t, titles(viaButton), titles(viaDrag), "from %d to %d", from, to)
		}
	}
}
