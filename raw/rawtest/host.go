//go:build !ios && !android && (amd64 || arm64)

// Package rawtest provides an in-memory host implementing raw.Functions and
// raw.Registrar.
//
// Host records every raw call by name, lets tests invalidate objects behind
// a handle's back, simulates the main and audio threads and drives the
// registered native callbacks the way the real host does.
package rawtest

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/obinnaokechukwu/reapgo/raw"
	"github.com/obinnaokechukwu/reapgo/thread"
)

// Simulated thread ids.
const (
	MainThread  thread.ID = 1
	AudioThread thread.ID = 2
)

// DefaultBlockLength is the number of frames per simulated audio block.
const DefaultBlockLength = 512

type object struct {
	typeName string
	owner    raw.Handle
	valid    bool
}

type project struct {
	handle    raw.Handle
	master    *track
	tracks    []*track
	playState int32
	dirty     int
	undoDepth int
	undo      []string
	redo      []string
}

type track struct {
	handle  raw.Handle
	proj    *project
	info    map[string]float64
	strings map[string]string
	guid    [16]byte
	fx      []*fx
	recFX   []*fx
	sends   []*send
	recvs   []*send
	hwOuts  []*send
	items   []*item
}

type fx struct {
	name    string
	enabled bool
	params  []float64
	guid    [16]byte
}

type send struct {
	src, dest *track
	info      map[string]float64
}

type item struct {
	handle raw.Handle
	info   map[string]float64
	take   *take
}

type take struct {
	handle raw.Handle
	name   string
}

type registration struct {
	kind   raw.Kind
	key    uintptr
	name   string
	handle raw.Handle
	bufs   [2][][]float64
}

type midiInput struct {
	handle raw.Handle
	list   raw.Handle
	name   string
	events []raw.MIDIEvent
}

type midiOutput struct {
	handle raw.Handle
	name   string
	sent   [][]byte
}

// Host is a fake host. The zero value is not usable; call NewHost.
type Host struct {
	mu sync.Mutex

	nextHandle raw.Handle
	objects    map[raw.Handle]*object
	projects   []*project
	current    *project
	tracks     map[raw.Handle]*track
	items      map[raw.Handle]*item
	takes      map[raw.Handle]*take

	automationOverride int32
	appVersion         string
	console            []string

	commandIDs    map[string]int32
	nextCommandID int32
	regs          map[raw.Handle]*registration
	removed       map[raw.Handle]bool
	doubleRemoves int
	rejectAdd     map[raw.Kind]bool
	rejectRemove  map[raw.Kind]bool
	callbacks     raw.Callbacks

	midiIn      map[int32]*midiInput
	midiInLists map[raw.Handle]*midiInput
	midiOut     map[int32]*midiOutput
	midiOutByH  map[raw.Handle]*midiOutput

	blockLength  int32
	audioScratch []*registration

	calls  map[string]int
	thread atomic.Uint64
}

var (
	_ raw.Functions    = (*Host)(nil)
	_ raw.Registrar    = (*Host)(nil)
	_ raw.CallbackSink = (*Host)(nil)
)

// NewHost creates a host with one open project and the caller on the main
// thread.
func NewHost() *Host {
	h := &Host{
		nextHandle:         0x1000,
		objects:            make(map[raw.Handle]*object),
		tracks:             make(map[raw.Handle]*track),
		items:              make(map[raw.Handle]*item),
		takes:              make(map[raw.Handle]*take),
		automationOverride: -1,
		appVersion:         "7.27/linux-x86_64",
		commandIDs:         make(map[string]int32),
		nextCommandID:      50000,
		regs:               make(map[raw.Handle]*registration),
		removed:            make(map[raw.Handle]bool),
		rejectAdd:          make(map[raw.Kind]bool),
		rejectRemove:       make(map[raw.Kind]bool),
		midiIn:             make(map[int32]*midiInput),
		midiInLists:        make(map[raw.Handle]*midiInput),
		midiOut:            make(map[int32]*midiOutput),
		midiOutByH:         make(map[raw.Handle]*midiOutput),
		blockLength:        DefaultBlockLength,
		audioScratch:       make([]*registration, 0, 64),
		calls:              make(map[string]int),
	}
	h.thread.Store(uint64(MainThread))
	h.current = h.newProjectLocked()
	return h
}

func (h *Host) alloc(typeName string, owner raw.Handle) raw.Handle {
	h.nextHandle += 0x10
	hd := h.nextHandle
	if typeName != "" {
		h.objects[hd] = &object{typeName: typeName, owner: owner, valid: true}
	}
	return hd
}

func (h *Host) newProjectLocked() *project {
	p := &project{}
	p.handle = h.alloc(raw.TypeProject, raw.Null)
	p.master = h.newTrackLocked(p)
	h.projects = append(h.projects, p)
	return p
}

func (h *Host) newTrackLocked(p *project) *track {
	t := &track{
		proj:    p,
		info:    map[string]float64{raw.TrackVolume: 1},
		strings: map[string]string{raw.TrackName: ""},
		guid:    uuid.New(),
	}
	t.handle = h.alloc(raw.TypeTrack, p.handle)
	h.tracks[t.handle] = t
	return t
}

func (h *Host) record(name string) {
	h.calls[name]++
}

// Calls returns how many times the named raw function was invoked.
func (h *Host) Calls(name string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls[name]
}

// ResetCalls clears the call counters.
func (h *Host) ResetCalls() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.calls)
}

// CurrentThread reports the simulated thread. It is a thread.Identifier.
func (h *Host) CurrentThread() thread.ID {
	return thread.ID(h.thread.Load())
}

// EnterAudioThread makes the caller appear to run on the audio thread.
func (h *Host) EnterAudioThread() {
	h.thread.Store(uint64(AudioThread))
}

// EnterMainThread makes the caller appear to run on the main thread.
func (h *Host) EnterMainThread() {
	h.thread.Store(uint64(MainThread))
}

// SetCallbacks installs the receiver of native callbacks, as the native
// trampolines would.
func (h *Host) SetCallbacks(cb raw.Callbacks) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callbacks = cb
}

// SetBlockLength changes the simulated audio block length. It only affects
// audio hooks added afterwards.
func (h *Host) SetBlockLength(n int32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.blockLength = n
}

// NewProject opens another project tab and makes it current.
func (h *Host) NewProject() raw.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = h.newProjectLocked()
	return h.current.handle
}

// CloseProject closes proj and invalidates every object it owns.
func (h *Host) CloseProject(proj raw.Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i, p := range h.projects {
		if p.handle != proj {
			continue
		}
		h.projects = append(h.projects[:i], h.projects[i+1:]...)
		for hd, o := range h.objects {
			if hd == proj || o.owner == proj {
				o.valid = false
			}
		}
		if h.current == p {
			h.current = nil
			if len(h.projects) > 0 {
				h.current = h.projects[0]
			}
		}
		return
	}
}

// AddTrack appends a named track to proj. Null selects the current project.
func (h *Host) AddTrack(proj raw.Handle, name string) raw.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	p := h.projectLocked(proj)
	if p == nil {
		return raw.Null
	}
	t := h.newTrackLocked(p)
	t.strings[raw.TrackName] = name
	p.tracks = append(p.tracks, t)
	return t.handle
}

// AddItem appends an item with one active take to track.
func (h *Host) AddItem(tr raw.Handle, position, length float64, takeName string) raw.Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	t := h.tracks[tr]
	if t == nil {
		return raw.Null
	}
	it := &item{info: map[string]float64{raw.ItemPosition: position, raw.ItemLength: length}}
	it.handle = h.alloc(raw.TypeItem, t.proj.handle)
	tk := &take{name: takeName}
	tk.handle = h.alloc(raw.TypeTake, t.proj.handle)
	it.take = tk
	t.items = append(t.items, it)
	h.items[it.handle] = it
	h.takes[tk.handle] = tk
	return it.handle
}

// AddFX appends an FX with the given number of parameters.
func (h *Host) AddFX(tr raw.Handle, name string, params int) int32 {
	h.mu.Lock()
	defer h.mu.Unlock()
	t := h.tracks[tr]
	if t == nil {
		return -1
	}
	t.fx = append(t.fx, &fx{name: name, enabled: true, params: make([]float64, params), guid: uuid.New()})
	return int32(len(t.fx) - 1)
}

// Invalidate flips the liveness probe of hd to false without telling anyone.
func (h *Host) Invalidate(hd raw.Handle) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if o, ok := h.objects[hd]; ok {
		o.valid = false
	}
}

// SetPlayState sets the transport bits of proj.
func (h *Host) SetPlayState(proj raw.Handle, state int32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if p := h.projectLocked(proj); p != nil {
		p.playState = state
	}
}

// ConsoleOutput returns everything written with ShowConsoleMsg.
func (h *Host) ConsoleOutput() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.console...)
}

// Dirty returns how often proj was marked dirty.
func (h *Host) Dirty(proj raw.Handle) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if p := h.projectLocked(proj); p != nil {
		return p.dirty
	}
	return 0
}

// UndoHistory returns the undo point descriptions of proj, oldest first.
func (h *Host) UndoHistory(proj raw.Handle) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if p := h.projectLocked(proj); p != nil {
		return append([]string(nil), p.undo...)
	}
	return nil
}

func (h *Host) projectLocked(proj raw.Handle) *project {
	if proj == raw.Null {
		return h.current
	}
	for _, p := range h.projects {
		if p.handle == proj {
			return p
		}
	}
	return nil
}

func (h *Host) trackLocked(tr raw.Handle) *track {
	t := h.tracks[tr]
	if t == nil || !h.objects[tr].valid {
		return nil
	}
	return t
}

func (t *track) fxLocked(idx int32) *fx {
	chain := t.fx
	if idx&raw.InputFXFlag != 0 {
		chain = t.recFX
		idx &^= raw.InputFXFlag
	}
	if idx < 0 || int(idx) >= len(chain) {
		return nil
	}
	return chain[idx]
}

func (t *track) sendsLocked(category int32) []*send {
	switch category {
	case -1:
		return t.recvs
	case 0:
		return t.sends
	case 1:
		return t.hwOuts
	}
	return nil
}

func readString(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

func writeString(buf []byte, s string) {
	if len(buf) == 0 {
		return
	}
	n := copy(buf[:len(buf)-1], s)
	buf[n] = 0
}
