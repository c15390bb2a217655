package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitErrorWrapping(t *testing.T) {
	rootErr := errors.New("boom")
	exitErr := NewExitError(UnknownError, rootErr)

	require.NotNil(t, exitErr)
	assert.Equal(t, rootErr, exitErr.Err)
	assert.Contains(t, exitErr.Error(), "Exit code 1")
	assert.ErrorIs(t, exitErr, rootErr)

	code, cause := ExitCodeFromError(exitErr)
	assert.Equal(t, UnknownError, code)
	assert.Equal(t, rootErr, cause)
}

func TestExitCodeFromError(t *testing.T) {
	plainErr := errors.New("plain")

	code, cause := ExitCodeFromError(plainErr)
	assert.Equal(t, UnknownError, code)
	assert.Equal(t, plainErr, cause)

	code, cause = ExitCodeFromError(NewExitError(UserCanceled, nil))
	assert.Equal(t, UserCanceled, code)
	assert.Nil(t, cause)

	code, cause = ExitCodeFromError(nil)
	assert.Equal(t, NoError, code)
	assert.Nil(t, cause)
}

func TestFilterFor(t *testing.T) {
	yes, no := true, false
	assert.Equal(t, FilterAll, FilterFor(nil))
	assert.Equal(t, FilterHiDPIOnly, FilterFor(&yes))
	assert.Equal(t, FilterStandardOnly, FilterFor(&no))
}

func TestFilterKeep(t *testing.T) {
	hidpi := RawMode{Width: 1440, Height: 900, IsHiDPI: true}
	standard := RawMode{Width: 1440, Height: 900}

	assert.True(t, FilterAll.Keep(hidpi))
	assert.True(t, FilterAll.Keep(standard))
	assert.True(t, FilterHiDPIOnly.Keep(hidpi))
	assert.False(t, FilterHiDPIOnly.Keep(standard))
	assert.False(t, FilterStandardOnly.Keep(hidpi))
	assert.True(t, FilterStandardOnly.Keep(standard))
}

func TestFilterNextCycles(t *testing.T) {
	f := FilterAll
	seen := []HiDPIFilter{f}
	for i := 0; i < 3; i++ {
		f = f.Next()
		seen = append(seen, f)
	}
	assert.Equal(t, []HiDPIFilter{FilterAll, FilterHiDPIOnly, FilterStandardOnly, FilterAll}, seen)
}

func TestParseHiDPIFilter(t *testing.T) {
	testCases := []struct {
		in       string
		expected HiDPIFilter
		wantErr  bool
	}{
		{in: "", expected: FilterAll},
		{in: "all", expected: FilterAll},
		{in: "hidpi", expected: FilterHiDPIOnly},
		{in: "standard", expected: FilterStandardOnly},
		{in: "retina", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			f, err := ParseHiDPIFilter(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, f)
			assert.Equal(t, f, mustParse(t, f.String()))
		})
	}
}

func mustParse(t *testing.T, s string) HiDPIFilter {
	t.Helper()
	f, err := ParseHiDPIFilter(s)
	require.NoError(t, err)
	return f
}

func TestModeFormatting(t *testing.T) {
	m := RawMode{Width: 1920, Height: 1080, RefreshRate: 59.94}
	assert.Equal(t, "1920x1080", m.Resolution())
	assert.Equal(t, "1920x1080@59.94Hz", m.String())

	m = RawMode{Width: 1512, Height: 982, RefreshRate: 120, IsHiDPI: true}
	assert.Equal(t, "1512x982@120Hz HiDPI", m.String())

	m = RawMode{Width: 800, Height: 600}
	assert.Equal(t, "800x600@default", m.String())
	assert.Equal(t, "800x600", m.Target().String())
}

func TestTargetDropsHandle(t *testing.T) {
	m := RawMode{Width: 2560, Height: 1440, RefreshRate: 144, IsHiDPI: true,
		Handle: NativeHandle{Display: 2, Epoch: 9, Index: 4}}
	target := m.Target()

	assert.Equal(t, TargetSpec{Width: 2560, Height: 1440, RefreshRate: 144, IsHiDPI: true}, target)
	assert.Equal(t, "2560x1440@144Hz HiDPI", target.String())
}

func TestChordString(t *testing.T) {
	c := Chord{Modifiers: []Modifier{ModCtrl, ModOption}, Key: "1"}
	assert.Equal(t, "ctrl+option+1", c.String())
	assert.Equal(t, "f5", Chord{Key: "f5"}.String())
}
