package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hamidzr/displaymode/constant"
	"github.com/hamidzr/displaymode/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct {
	*StaticSource
	applyErr error
}

func (f failingSource) Apply(context.Context, uint32, model.RawMode) error {
	return f.applyErr
}

func shortcut(id string, displayID uint32, target model.TargetSpec) model.Shortcut {
	return model.Shortcut{ID: id, Keys: "ctrl+option+" + id, DisplayID: displayID, Target: target}
}

func currentOf(t *testing.T, session *Session, id uint32) model.RawMode {
	t.Helper()
	snap, err := session.Refresh(context.Background())
	require.NoError(t, err)
	d, err := snap.Display(id)
	require.NoError(t, err)
	require.NotNil(t, d.Current)
	return *d.Current
}

func TestDispatcherFireApplies(t *testing.T) {
	session := NewSession(NewStaticSource(testDisplays()))
	d := NewDispatcher(session, 0)

	applied, err := d.Fire(context.Background(), shortcut("1", 69733382, model.TargetSpec{Width: 3840, Height: 2160, RefreshRate: 60}))
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "3840x2160@60Hz", currentOf(t, session, 69733382).String())
}

func TestDispatcherFireMainDisplay(t *testing.T) {
	session := NewSession(NewStaticSource(testDisplays()))
	d := NewDispatcher(session, 0)

	applied, err := d.Fire(context.Background(), shortcut("1", constant.MainDisplay, model.TargetSpec{Width: 1147, Height: 745, RefreshRate: 60, IsHiDPI: true}))
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "1147x745@60Hz HiDPI", currentOf(t, session, 1).String())
}

func TestDispatcherSilentOutcomes(t *testing.T) {
	testCases := []struct {
		name  string
		sc    model.Shortcut
		watch uint32
	}{
		{
			name:  "no matching mode",
			sc:    shortcut("1", 69733382, model.TargetSpec{Width: 1280, Height: 720}),
			watch: 69733382,
		},
		{
			name:  "display not online",
			sc:    shortcut("2", 12345, model.TargetSpec{Width: 3840, Height: 2160}),
			watch: 69733382,
		},
		{
			name:  "already in target mode",
			sc:    shortcut("3", constant.MainDisplay, model.TargetSpec{Width: 1512, Height: 982, RefreshRate: 119.8, IsHiDPI: true}),
			watch: 1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			session := NewSession(NewStaticSource(testDisplays()))
			before := currentOf(t, session, tc.watch)

			applied, err := NewDispatcher(session, 0).Fire(context.Background(), tc.sc)
			assert.NoError(t, err)
			assert.False(t, applied)
			assert.True(t, before.SameShape(currentOf(t, session, tc.watch)))
		})
	}
}

func TestDispatcherDebouncesRepeats(t *testing.T) {
	session := NewSession(NewStaticSource(testDisplays()))
	d := NewDispatcher(session, time.Hour)
	ctx := context.Background()

	first := shortcut("1", 69733382, model.TargetSpec{Width: 3840, Height: 2160, RefreshRate: 30})
	applied, err := d.Fire(ctx, first)
	require.NoError(t, err)
	assert.True(t, applied)

	// same shortcut again within the interval is dropped
	again := first
	again.Target.RefreshRate = 60
	applied, err = d.Fire(ctx, again)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, "3840x2160@30Hz", currentOf(t, session, 69733382).String())

	// other shortcuts are limited independently
	applied, err = d.Fire(ctx, shortcut("2", 69733382, model.TargetSpec{Width: 1920, Height: 1080, RefreshRate: 60}))
	require.NoError(t, err)
	assert.True(t, applied)
}

func TestDispatcherSurfacesApplyFailure(t *testing.T) {
	boom := errors.New("boom")
	session := NewSession(failingSource{StaticSource: NewStaticSource(testDisplays()), applyErr: boom})

	applied, err := NewDispatcher(session, 0).Fire(context.Background(), shortcut("1", 69733382, model.TargetSpec{Width: 3840, Height: 2160}))
	assert.False(t, applied)
	assert.ErrorIs(t, err, boom)
}
