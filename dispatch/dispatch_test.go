//go:build !ios && !android && (amd64 || arm64)

package dispatch

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/obinnaokechukwu/reapgo/config"
	"github.com/obinnaokechukwu/reapgo/errors"
	"github.com/obinnaokechukwu/reapgo/raw"
	"github.com/obinnaokechukwu/reapgo/raw/rawtest"
	"github.com/obinnaokechukwu/reapgo/registry"
	"github.com/obinnaokechukwu/reapgo/thread"
)

type fixture struct {
	host *rawtest.Host
	reg  *registry.Registry
	d    *Dispatcher
	tok  thread.MainToken
	logs *observer.ObservedLogs
}

func newFixture(t *testing.T, fw config.FirewallConfig) *fixture {
	t.Helper()
	host := rawtest.NewHost()
	guard := thread.NewGuard(host.CurrentThread)
	guard.BindMain()
	tok, err := guard.Main()
	require.NoError(t, err)

	core, logs := observer.New(zap.DebugLevel)
	reg := registry.New(host)
	d := New(reg, guard, WithLogger(zap.New(core)), WithFirewall(fw))
	host.SetCallbacks(d)
	require.NoError(t, d.InstallHooks(tok))

	return &fixture{host: host, reg: reg, d: d, tok: tok, logs: logs}
}

func noFirewall() config.FirewallConfig { return config.FirewallConfig{} }

func TestInstallHooksIsIdempotent(t *testing.T) {
	f := newFixture(t, noFirewall())
	require.NoError(t, f.d.InstallHooks(f.tok))
	assert.Equal(t, 1, f.host.Live(raw.HookCommand))
	assert.Equal(t, 1, f.host.Live(raw.ToggleAction))
	assert.Equal(t, 1, f.host.Live(raw.HookPostCommand))
}

func TestActionRunsWithMainToken(t *testing.T) {
	f := newFixture(t, noFirewall())
	cmd := f.host.AllocateCommandID("REAPGO_HELLO")

	var got MainContext
	reg, err := f.d.RegisterAction(f.tok, cmd, Action{
		Description: "Say hello",
		Run:         func(ctx MainContext) { got = ctx },
	})
	require.NoError(t, err)

	f.host.MainOnCommandEx(cmd, 0, raw.Null)
	assert.True(t, got.Token.Valid())
	assert.Same(t, reg, got.Registration)

	assert.False(t, f.host.FireCommand(cmd+1, 0), "unknown commands are not handled")
}

func TestRegisterActionValidation(t *testing.T) {
	f := newFixture(t, noFirewall())

	_, err := f.d.RegisterAction(f.tok, 0, Action{Run: func(MainContext) {}})
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	_, err = f.d.RegisterAction(f.tok, 1, Action{})
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	var zero thread.MainToken
	_, err = f.d.RegisterAction(zero, 1, Action{Run: func(MainContext) {}})
	assert.True(t, errors.IsThreadViolation(err))
	assert.Zero(t, f.host.Live(raw.Gaccel))
}

func TestToggleState(t *testing.T) {
	f := newFixture(t, noFirewall())
	cmd := f.host.AllocateCommandID("REAPGO_TOGGLE")
	plain := f.host.AllocateCommandID("REAPGO_PLAIN")

	on := false
	_, err := f.d.RegisterAction(f.tok, cmd, Action{
		Description: "Toggle",
		Run:         func(MainContext) { on = !on },
		Toggle: func(MainContext) int32 {
			if on {
				return ToggleOn
			}
			return ToggleOff
		},
	})
	require.NoError(t, err)
	_, err = f.d.RegisterAction(f.tok, plain, Action{Run: func(MainContext) {}})
	require.NoError(t, err)

	assert.Equal(t, ToggleOff, f.host.GetToggleCommandStateEx(raw.MainSection, cmd))
	f.host.MainOnCommandEx(cmd, 0, raw.Null)
	assert.Equal(t, ToggleOn, f.host.GetToggleCommandStateEx(raw.MainSection, cmd))
	assert.Equal(t, ToggleNone, f.host.GetToggleCommandStateEx(raw.MainSection, plain))
}

func TestPanicIsContained(t *testing.T) {
	f := newFixture(t, noFirewall())
	cmd := f.host.AllocateCommandID("REAPGO_BOOM")

	_, err := f.d.RegisterAction(f.tok, cmd, Action{
		Description: "Boom",
		Run:         func(MainContext) { panic("boom") },
	})
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		assert.False(t, f.host.FireCommand(cmd, 0))
	})
	assert.Equal(t, uint64(1), f.d.Panics())

	entries := f.logs.FilterMessage("recovered handler panic").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].ContextMap()["panic"])
	assert.Equal(t, "gaccel", entries[0].ContextMap()["kind"])
}

func TestFirewallSkipsRepeatedlyPanickingHandler(t *testing.T) {
	f := newFixture(t, config.FirewallConfig{Enabled: true, FailureThreshold: 2, Cooldown: time.Hour})
	cmd := f.host.AllocateCommandID("REAPGO_FLAKY")

	runs := 0
	_, err := f.d.RegisterAction(f.tok, cmd, Action{
		Description: "Flaky",
		Run: func(MainContext) {
			runs++
			panic("flaky")
		},
	})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		f.host.FireCommand(cmd, 0)
	}
	assert.Equal(t, 2, runs)
	assert.Equal(t, uint64(2), f.d.Panics())
	assert.Equal(t, uint64(3), f.d.Skipped())
	assert.NotZero(t, f.logs.FilterMessage("handler firewall state changed").Len())
}

func TestDispatchOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for round := 0; round < 20; round++ {
		f := newFixture(t, noFirewall())
		cmd := f.host.AllocateCommandID("REAPGO_ORDER")

		var seen []int32
		action := Action{Description: "order", Run: func(ctx MainContext) {
			seen = append(seen, int32(len(seen)))
		}}
		reg, err := f.d.RegisterAction(f.tok, cmd, action)
		require.NoError(t, err)

		n := 1 + rng.Intn(50)
		var want []int32
		for i := 0; i < n; i++ {
			if rng.Intn(5) == 0 {
				// Re-register in between; invocations while unregistered
				// are not delivered.
				require.NoError(t, reg.Unregister())
				assert.False(t, f.host.FireCommand(cmd, 0))
				reg, err = f.d.RegisterAction(f.tok, cmd, action)
				require.NoError(t, err)
			}
			want = append(want, int32(len(want)))
			require.True(t, f.host.FireCommand(cmd, 0))
		}
		assert.Equal(t, want, seen)
	}
}

func TestPostCommandObserversInSubscriptionOrder(t *testing.T) {
	f := newFixture(t, noFirewall())

	var order []string
	a, err := f.d.ObservePostCommand(f.tok, func(ctx MainContext, command, flag int32) {
		order = append(order, "a")
	})
	require.NoError(t, err)
	_, err = f.d.ObservePostCommand(f.tok, func(ctx MainContext, command, flag int32) {
		assert.True(t, ctx.Token.Valid())
		order = append(order, "b")
	})
	require.NoError(t, err)

	f.host.MainOnCommandEx(40001, 0, raw.Null)
	assert.Equal(t, []string{"a", "b"}, order)

	a.Cancel()
	a.Cancel()
	order = nil
	f.host.MainOnCommandEx(40001, 0, raw.Null)
	assert.Equal(t, []string{"b"}, order)
}

func TestPostCommandDispatchDoesNotAllocate(t *testing.T) {
	f := newFixture(t, noFirewall())

	seen := 0
	for i := 0; i < 3; i++ {
		_, err := f.d.ObservePostCommand(f.tok, func(MainContext, int32, int32) { seen++ })
		require.NoError(t, err)
	}

	allocs := testing.AllocsPerRun(100, func() {
		f.d.HookPostCommand(40001, 0)
	})
	assert.Zero(t, allocs)
	assert.Equal(t, 3*101, seen)
}

func TestHandlerCanReenterHost(t *testing.T) {
	f := newFixture(t, noFirewall())
	outer := f.host.AllocateCommandID("REAPGO_OUTER")
	inner := f.host.AllocateCommandID("REAPGO_INNER")

	var trace []string
	_, err := f.d.RegisterAction(f.tok, inner, Action{Run: func(MainContext) { trace = append(trace, "inner") }})
	require.NoError(t, err)
	_, err = f.d.RegisterAction(f.tok, outer, Action{Run: func(ctx MainContext) {
		trace = append(trace, "outer")
		require.NoError(t, ctx.Token.Check("run inner"))
		f.host.MainOnCommandEx(inner, 0, raw.Null)
	}})
	require.NoError(t, err)

	f.host.MainOnCommandEx(outer, 0, raw.Null)
	assert.Equal(t, []string{"outer", "inner"}, trace)
}

func TestMainCallbackOffMainThreadIsDropped(t *testing.T) {
	f := newFixture(t, noFirewall())
	cmd := f.host.AllocateCommandID("REAPGO_X")

	ran := false
	_, err := f.d.RegisterAction(f.tok, cmd, Action{Run: func(MainContext) { ran = true }})
	require.NoError(t, err)

	f.host.EnterAudioThread()
	handled := f.host.FireCommand(cmd, 0)
	f.host.EnterMainThread()

	assert.False(t, handled)
	assert.False(t, ran)
	assert.Equal(t, 1, f.logs.FilterMessage("main-thread callback arrived off the main thread").Len())
}

type recordingSurface struct {
	events []raw.SurfaceEventKind
}

func (s *recordingSurface) SurfaceEvent(ctx MainContext, ev raw.SurfaceEvent) int32 {
	s.events = append(s.events, ev.Kind)
	if ev.Kind == raw.SurfaceGetTouchState {
		return 1
	}
	if ev.Kind == raw.SurfaceIsKeyDown {
		panic("key state unavailable")
	}
	return 0
}

func TestSurfaceEvents(t *testing.T) {
	f := newFixture(t, noFirewall())
	s := &recordingSurface{}

	reg, err := f.d.RegisterSurface(f.tok, "test", s)
	require.NoError(t, err)

	f.host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceRun})
	assert.Equal(t, int32(1), f.host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceGetTouchState}))
	assert.Equal(t, int32(0), f.host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceIsKeyDown}))
	assert.Equal(t, []raw.SurfaceEventKind{raw.SurfaceRun, raw.SurfaceGetTouchState, raw.SurfaceIsKeyDown}, s.events)

	require.NoError(t, reg.Unregister())
	assert.Equal(t, int32(0), f.d.SurfaceEvent(reg.Key(), raw.SurfaceEvent{Kind: raw.SurfaceGetTouchState}))
	assert.Len(t, s.events, 3)
}

type countingHook struct {
	calls    int
	post     int
	tokensOK bool
	escaped  thread.AudioToken
}

func (h *countingHook) OnAudioBuffer(ctx AudioContext) {
	h.calls++
	if ctx.Block.IsPost {
		h.post++
	}
	h.tokensOK = ctx.Token.Check("audio") == nil
	h.escaped = ctx.Token
}

func TestAudioHookScenario(t *testing.T) {
	f := newFixture(t, noFirewall())
	hook := &countingHook{}

	reg, err := f.d.RegisterAudioHook(f.tok, hook)
	require.NoError(t, err)

	block := raw.AudioBlock{Length: 512, SampleRate: 48000}
	allocs := testing.AllocsPerRun(1, func() {
		f.host.EnterAudioThread()
		for i := 0; i < 3; i++ {
			f.d.OnAudioBuffer(reg.Key(), block)
		}
		f.host.EnterMainThread()
	})

	// AllocsPerRun runs the function once to warm up.
	assert.Equal(t, 6, hook.calls)
	assert.Zero(t, allocs)
	assert.True(t, hook.tokensOK)
	assert.True(t, errors.IsThreadViolation(hook.escaped.Check("after return")))
	assert.Zero(t, f.d.Panics())
}

func TestAudioHookCalledBeforeAndAfterBlock(t *testing.T) {
	f := newFixture(t, noFirewall())
	hook := &countingHook{}
	_, err := f.d.RegisterAudioHook(f.tok, hook)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		f.host.FireAudio()
	}
	assert.Equal(t, 6, hook.calls)
	assert.Equal(t, 3, hook.post)
}

func TestAudioPanicTripsHook(t *testing.T) {
	f := newFixture(t, config.FirewallConfig{Enabled: true, FailureThreshold: 2, Cooldown: time.Hour})

	calls := 0
	reg, err := f.d.RegisterAudioHook(f.tok, AudioFunc(func(AudioContext) {
		calls++
		panic("xrun")
	}))
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		for i := 0; i < 5; i++ {
			f.d.OnAudioBuffer(reg.Key(), raw.AudioBlock{})
		}
	})
	assert.Equal(t, 2, calls)
	assert.Equal(t, uint64(3), f.d.Skipped())
	assert.Equal(t, 1, f.logs.FilterMessage("audio hook disabled after repeated panics").Len())
}

func TestAudioHookAfterUnregister(t *testing.T) {
	f := newFixture(t, noFirewall())
	hook := &countingHook{}
	reg, err := f.d.RegisterAudioHook(f.tok, hook)
	require.NoError(t, err)

	require.NoError(t, reg.Unregister())
	require.NoError(t, reg.Unregister())
	f.d.OnAudioBuffer(reg.Key(), raw.AudioBlock{})
	f.host.FireAudio()
	assert.Zero(t, hook.calls)
	assert.Zero(t, f.host.DoubleRemovals())
}

func TestTeardownLeavesNothingToDispatch(t *testing.T) {
	f := newFixture(t, noFirewall())
	cmd := f.host.AllocateCommandID("REAPGO_T")

	ran := false
	_, err := f.d.RegisterAction(f.tok, cmd, Action{Run: func(MainContext) { ran = true }})
	require.NoError(t, err)
	_, err = f.d.RegisterSurface(f.tok, "s", &recordingSurface{})
	require.NoError(t, err)
	hook := &countingHook{}
	_, err = f.d.RegisterAudioHook(f.tok, hook)
	require.NoError(t, err)

	require.NoError(t, f.reg.Teardown())
	assert.Zero(t, f.reg.Len())
	assert.Zero(t, f.host.Live(0))
	assert.Zero(t, f.host.DoubleRemovals())

	assert.False(t, f.d.HookCommand(cmd, 0))
	f.d.OnAudioBuffer(0, raw.AudioBlock{})
	assert.False(t, ran)
	assert.Zero(t, hook.calls)
}
