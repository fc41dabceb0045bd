//go:build !ios && !android && (amd64 || arm64)

package reapgo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obinnaokechukwu/reapgo/enums"
	"github.com/obinnaokechukwu/reapgo/raw"
)

type recordingSurface struct {
	BaseSurface

	calls    []string
	volume   float64
	track    Track
	title    string
	mode     enums.AutomationMode
	ext      ExtendedEvent
	touching bool
}

func (r *recordingSurface) Run(MainContext) { r.calls = append(r.calls, "run") }

func (r *recordingSurface) SetSurfaceVolume(_ MainContext, t Track, v float64) {
	r.calls = append(r.calls, "volume")
	r.track, r.volume = t, v
}

func (r *recordingSurface) SetTrackTitle(_ MainContext, t Track, title string) {
	r.calls = append(r.calls, "title")
	r.track, r.title = t, title
}

func (r *recordingSurface) SetAutoMode(_ MainContext, m enums.AutomationMode) {
	r.calls = append(r.calls, "automode")
	r.mode = m
}

func (r *recordingSurface) GetTouchState(_ MainContext, _ Track, isPan bool) bool {
	return r.touching && !isPan
}

func (r *recordingSurface) Extended(_ MainContext, ev ExtendedEvent) int32 {
	r.calls = append(r.calls, "ext")
	r.ext = ev
	return 1
}

func TestControlSurfaceEvents(t *testing.T) {
	s, host, tok := newTestSession(t)
	h := host.AddTrack(raw.Null, "Fader 1")

	rs := &recordingSurface{touching: true}
	reg, err := s.RegisterControlSurface(tok, "test_surface", rs)
	require.NoError(t, err)
	assert.Equal(t, 1, host.Live(raw.ControlSurface))

	host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceRun})
	host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceSetVolume, Track: h, Value: 0.8})
	assert.Equal(t, 0.8, rs.volume)
	name, err := rs.track.Name(tok)
	require.NoError(t, err)
	assert.Equal(t, "Fader 1", name, "surface tracks are ordinary validated references")

	host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceSetTrackTitle, Track: h, Text: "Vox"})
	assert.Equal(t, "Vox", rs.title)

	host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceSetAutoMode, Int: int32(enums.AutomationWrite)})
	assert.Equal(t, enums.AutomationWrite, rs.mode)
	host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceSetAutoMode, Int: 77})
	assert.Equal(t, enums.AutomationWrite, rs.mode, "unknown modes are not delivered")

	assert.Equal(t, int32(1), host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceGetTouchState, Track: h}))
	assert.Equal(t, int32(0), host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceGetTouchState, Track: h, Int: 1}))
	assert.Equal(t, int32(0), host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceIsKeyDown, Int: 16}))

	res := host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceExtended, Ext: raw.ExtArgs{
		Code:   enums.SurfaceExtSetFxParam.Raw(),
		Track:  h,
		Ints:   [2]int32{2, 5},
		Floats: [2]float64{0.25},
		Set:    true,
	}})
	assert.Equal(t, int32(1), res)
	assert.True(t, rs.ext.Known)
	assert.Equal(t, enums.SurfaceExtSetFxParam, rs.ext.Code)
	assert.True(t, rs.ext.HasTrack)
	assert.Equal(t, [2]int32{2, 5}, rs.ext.Ints)
	assert.Equal(t, 0.25, rs.ext.Floats[0])

	host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceExtended, Ext: raw.ExtArgs{Code: 0x7fff0000}})
	assert.False(t, rs.ext.Known)
	assert.Equal(t, int32(0x7fff0000), rs.ext.RawCode)
	assert.False(t, rs.ext.HasTrack)

	assert.Equal(t, []string{"run", "volume", "title", "automode", "ext", "ext"}, rs.calls)

	require.NoError(t, reg.Unregister())
	host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceRun})
	assert.Len(t, rs.calls, 6)
	assert.Zero(t, host.Live(raw.ControlSurface))
}

func TestBaseSurfaceIsNoop(t *testing.T) {
	s, host, tok := newTestSession(t)
	_, err := s.RegisterControlSurface(tok, "noop", BaseSurface{})
	require.NoError(t, err)

	for k := raw.SurfaceRun; k <= raw.SurfaceExtended; k++ {
		assert.Zero(t, host.FireSurface(raw.SurfaceEvent{Kind: k}))
	}
}

type panickySurface struct{ BaseSurface }

func (panickySurface) Run(MainContext) { panic("surface") }

func TestPanickingSurfaceIsContained(t *testing.T) {
	s, host, tok := newTestSession(t)
	_, err := s.RegisterControlSurface(tok, "panicky", panickySurface{})
	require.NoError(t, err)

	assert.NotPanics(t, func() { host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceRun}) })
	panics, _ := s.Stats()
	assert.EqualValues(t, 1, panics)
}

func TestRegisterControlSurfaceValidation(t *testing.T) {
	s, _, tok := newTestSession(t)

	_, err := s.RegisterControlSurface(tok, "x", nil)
	assert.Error(t, err)
	_, err = s.RegisterControlSurface(tok, "", BaseSurface{})
	assert.Error(t, err)
}
