//go:build !ios && !android && (amd64 || arm64)

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/obinnaokechukwu/reapgo"
	"github.com/obinnaokechukwu/reapgo/config"
	"github.com/obinnaokechukwu/reapgo/raw"
	"github.com/obinnaokechukwu/reapgo/raw/rawtest"
)

type runFlags struct {
	tracks  int
	blocks  int
	console bool
}

func newRunCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scripted session against the simulated host",
		Long: `run activates a session, creates tracks, registers a toggle action, a
control surface and a MIDI-thru audio hook, then drives each of them once
and prints what the handlers observed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if f.tracks < 0 || f.blocks < 0 {
				return fmt.Errorf("--tracks and --blocks must not be negative")
			}
			level, err := cfg.Level()
			if err != nil {
				return err
			}
			rep, err := simulate(cfg, f, newLogger(cmd.ErrOrStderr(), level))
			if err != nil {
				return err
			}
			return rep.print(cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&f.tracks, "tracks", 2, "number of tracks to create")
	cmd.Flags().IntVar(&f.blocks, "blocks", 4, "number of audio blocks to process")
	cmd.Flags().BoolVar(&f.console, "console", false, "also log to the host console")
	return cmd
}

type report struct {
	host      string
	tracks    []string
	toggle    reapgo.ToggleState
	surface   []string
	blocks    int
	forwarded int
	panics    uint64
	skipped   uint64
	console   []string
}

func (r report) print(w io.Writer) error {
	p := &printer{w: w}
	p.printf("host:            %s\n", r.host)
	p.printf("tracks:          %d\n", len(r.tracks))
	for _, name := range r.tracks {
		p.printf("  - %s\n", name)
	}
	p.printf("toggle_mute:     %s\n", r.toggle)
	p.printf("surface events:  %d\n", len(r.surface))
	for _, ev := range r.surface {
		p.printf("  - %s\n", ev)
	}
	p.printf("audio blocks:    %d\n", r.blocks)
	p.printf("midi forwarded:  %d\n", r.forwarded)
	p.printf("panics/skipped:  %d/%d\n", r.panics, r.skipped)
	if len(r.console) > 0 {
		p.printf("console:\n")
		for _, line := range r.console {
			p.printf("  %s", line)
		}
	}
	return p.err
}

// printer keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// printSurface records the surface events it receives.
type printSurface struct {
	reapgo.BaseSurface
	events *[]string
}

func trackLabel(ctx reapgo.MainContext, tr reapgo.Track) string {
	name, err := tr.Name(ctx.Token)
	if err != nil {
		return tr.String()
	}
	return name
}

func (p printSurface) SetSurfaceVolume(ctx reapgo.MainContext, tr reapgo.Track, v float64) {
	*p.events = append(*p.events, fmt.Sprintf("%s volume %.2f", trackLabel(ctx, tr), v))
}

func (p printSurface) SetSurfaceMute(ctx reapgo.MainContext, tr reapgo.Track, muted bool) {
	*p.events = append(*p.events, fmt.Sprintf("%s mute %t", trackLabel(ctx, tr), muted))
}

func (p printSurface) SetPlayState(_ reapgo.MainContext, play, pause, rec bool) {
	*p.events = append(*p.events, fmt.Sprintf("play=%t pause=%t rec=%t", play, pause, rec))
}

func simulate(cfg config.Config, f *runFlags, log *zap.Logger) (rep report, err error) {
	host := rawtest.NewHost()
	host.AddMidiInput(0, "hostsim in")
	host.AddMidiOutput(0, "hostsim out")

	s, err := reapgo.New(host, host, cfg,
		reapgo.WithLogger(log),
		reapgo.WithThreadIdentifier(host.CurrentThread))
	if err != nil {
		return rep, err
	}
	tok, err := s.Activate()
	if err != nil {
		return rep, err
	}
	defer func() {
		host.EnterMainThread()
		err = multierr.Append(err, s.Close())
	}()

	if f.console {
		level, _ := cfg.Level()
		s.SetLogger(zap.New(zapcore.NewTee(log.Core(), reapgo.NewConsoleCore(s, level))))
	}
	rep.host = s.AppVersion()

	proj, err := s.CurrentProject(tok)
	if err != nil {
		return rep, err
	}
	for i := 0; i < f.tracks; i++ {
		tr, err := proj.InsertTrack(tok, i, true)
		if err != nil {
			return rep, err
		}
		if err := tr.SetName(tok, fmt.Sprintf("Track %d", i+1)); err != nil {
			return rep, err
		}
	}
	tracks, err := proj.Tracks(tok)
	if err != nil {
		return rep, err
	}
	for _, tr := range tracks {
		name, err := tr.Name(tok)
		if err != nil {
			return rep, err
		}
		rep.tracks = append(rep.tracks, name)
	}

	if _, err := s.RegisterControlSurface(tok, "hostsim", printSurface{events: &rep.surface}); err != nil {
		return rep, err
	}

	if err := runToggleMute(s, tok, tracks, &rep); err != nil {
		return rep, err
	}

	if len(tracks) > 0 {
		first := host.GetTrack(raw.Null, 0)
		host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceSetVolume, Track: first, Value: 0.5})
		host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceSetMute, Track: first, Flag: true})
	}
	host.FireSurface(raw.SurfaceEvent{Kind: raw.SurfaceSetPlayState, Play: true})

	if err := runMidiThru(s, tok, host, f.blocks, &rep); err != nil {
		return rep, err
	}

	rep.panics, rep.skipped = s.Stats()
	s.Logger().Info("simulation finished",
		zap.Int("tracks", len(rep.tracks)),
		zap.Int("blocks", rep.blocks))
	rep.console = host.ConsoleOutput()
	return rep, nil
}

func runToggleMute(s *reapgo.Session, tok reapgo.MainToken, tracks []reapgo.Track, rep *report) error {
	var first reapgo.Track
	if len(tracks) > 0 {
		first = tracks[0]
	}
	id, _, err := s.RegisterAction(tok, "toggle_mute", reapgo.Action{
		Description: "hostsim: Toggle mute of the first track",
		Run: func(ctx reapgo.MainContext) {
			if !first.IsValid(ctx.Token) {
				return
			}
			muted, err := first.Muted(ctx.Token)
			if err == nil {
				err = first.SetMuted(ctx.Token, !muted)
			}
			if err != nil {
				s.Logger().Warn("toggle mute failed", zap.Error(err))
			}
		},
		Toggle: func(ctx reapgo.MainContext) bool {
			muted, err := first.Muted(ctx.Token)
			return err == nil && muted
		},
	})
	if err != nil {
		return err
	}
	if err := s.RunAction(tok, id); err != nil {
		return err
	}
	rep.toggle, err = s.ToggleState(tok, reapgo.MainSection, id)
	return err
}

// runMidiThru forwards every incoming event of input 0 to output 0, one
// queued note per block.
func runMidiThru(s *reapgo.Session, tok reapgo.MainToken, host *rawtest.Host, blocks int, rep *report) error {
	_, err := s.RegisterAudioHook(tok, reapgo.AudioHookFunc(func(args reapgo.AudioHookArgs) {
		if args.IsPost {
			rep.blocks++
			return
		}
		in, ok, err := s.MidiInput(args.Token, 0)
		if err != nil || !ok {
			return
		}
		out, ok, err := s.MidiOutput(args.Token, 0)
		if err != nil || !ok {
			return
		}
		it := in.Events()
		for ev, ok := it.Next(); ok; ev, ok = it.Next() {
			if out.Send(ev) == nil {
				rep.forwarded++
			}
		}
	}))
	if err != nil {
		return err
	}

	for i := 0; i < blocks; i++ {
		var msg [4]byte
		copy(msg[:], midi.NoteOn(0, uint8(60+i%12), 100))
		host.QueueMidiInput(0, raw.MIDIEvent{FrameOffset: int32(i), Size: 3, Message: msg})
		host.FireAudio()
	}
	return nil
}
