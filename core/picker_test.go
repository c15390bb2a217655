package core

import (
	"testing"

	"github.com/hamidzr/displaymode/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickerStartsOnCurrent(t *testing.T) {
	groups := GroupModes(laptopModes(), model.FilterHiDPIOnly)
	current := mode(1512, 982, 60, true)

	p := NewPicker(groups, &current)
	selected, ok := p.Selected()
	require.True(t, ok)
	assert.True(t, selected.SameShape(current))
}

func TestPickerWithoutCurrent(t *testing.T) {
	groups := GroupModes(laptopModes(), model.FilterHiDPIOnly)

	p := NewPicker(groups, nil)
	sel, ok := p.Selection()
	require.True(t, ok)
	assert.Equal(t, Selection{}, sel)

	empty := NewPicker(nil, nil)
	_, ok = empty.Selected()
	assert.False(t, ok)
	// moving an empty picker is a no-op
	empty.MoveGroup(1)
	empty.MoveRate(1)
	_, ok = empty.Selection()
	assert.False(t, ok)
}

func TestPickerMoveGroupKeepsRate(t *testing.T) {
	// hidpi groups: 1147x745 [120 60], 1512x982 [120 60 50], 1800x1169 [120 60]
	groups := GroupModes(laptopModes(), model.FilterHiDPIOnly)
	require.Len(t, groups, 3)
	current := mode(1512, 982, 50, true)
	p := NewPicker(groups, &current)

	p.MoveGroup(1)
	selected, _ := p.Selected()
	assert.Equal(t, "1800x1169@120Hz HiDPI", selected.String(), "50Hz is not offered so the highest rate is picked")

	p.MoveRate(1)
	p.MoveGroup(-2)
	selected, _ = p.Selected()
	assert.Equal(t, "1147x745@60Hz HiDPI", selected.String())

	// clamped at both ends
	p.MoveGroup(-5)
	sel, _ := p.Selection()
	assert.Equal(t, 0, sel.Group)
	p.MoveGroup(10)
	sel, _ = p.Selection()
	assert.Equal(t, 2, sel.Group)
}

func TestPickerMoveRate(t *testing.T) {
	groups := GroupModes(laptopModes(), model.FilterHiDPIOnly)
	current := mode(1512, 982, 120, true)
	p := NewPicker(groups, &current)

	p.MoveRate(1)
	selected, _ := p.Selected()
	assert.Equal(t, 60.0, selected.RefreshRate)

	p.MoveRate(5)
	selected, _ = p.Selected()
	assert.Equal(t, 50.0, selected.RefreshRate)

	p.MoveRate(-9)
	selected, _ = p.Selected()
	assert.Equal(t, 120.0, selected.RefreshRate)
}

func TestPickerReset(t *testing.T) {
	p := NewPicker(GroupModes(laptopModes(), model.FilterHiDPIOnly), nil)
	current := mode(3024, 1964, 60, false)

	p.Reset(GroupModes(laptopModes(), model.FilterStandardOnly), &current)
	selected, ok := p.Selected()
	require.True(t, ok)
	assert.True(t, selected.SameShape(current))
	assert.Len(t, p.Groups(), 5)
}
