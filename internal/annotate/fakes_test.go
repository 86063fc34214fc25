package annotate

import (
	"context"
	"errors"

	"github.com/tessro/vlcmark/internal/catalog"
	errs "github.com/tessro/vlcmark/internal/errors"
)

// trace records player commands and log writes in the order they happen.
type trace struct {
	steps []string
}

func (t *trace) add(step string) {
	t.steps = append(t.steps, step)
}

type fakePlayer struct {
	trace   *trace
	times   []string
	timeErr error
	playErr error
}

func (p *fakePlayer) Add(ctx context.Context, path string) error {
	p.trace.add("add " + path)
	return nil
}

func (p *fakePlayer) Play(ctx context.Context) error {
	p.trace.add("play")
	return p.playErr
}

func (p *fakePlayer) Pause(ctx context.Context) error {
	p.trace.add("pause")
	return nil
}

func (p *fakePlayer) GetTime(ctx context.Context) (string, error) {
	p.trace.add("get_time")
	if p.timeErr != nil {
		return "", p.timeErr
	}
	if len(p.times) == 0 {
		return "0", nil
	}
	ts := p.times[0]
	p.times = p.times[1:]
	return ts, nil
}

func (p *fakePlayer) Quit(ctx context.Context) error {
	p.trace.add("quit")
	return nil
}

// scriptedInput replays keys and lines, then reports closed input.
type scriptedInput struct {
	keys  []Key
	lines []string
}

func keys(s string) []Key {
	var out []Key
	for _, r := range s {
		out = append(out, DecodeKey(r))
	}
	return out
}

func (in *scriptedInput) ReadKey() (Key, error) {
	if len(in.keys) == 0 {
		return KeyNone, errs.ErrInputClosed
	}
	k := in.keys[0]
	in.keys = in.keys[1:]
	return k, nil
}

func (in *scriptedInput) ReadLine() (string, error) {
	if len(in.lines) == 0 {
		return "", errs.ErrInputClosed
	}
	l := in.lines[0]
	in.lines = in.lines[1:]
	return l, nil
}

type memLog struct {
	trace  *trace
	events []Event
	err    error
}

func (l *memLog) Append(ev Event) error {
	l.trace.add("append")
	if l.err != nil {
		return l.err
	}
	l.events = append(l.events, ev)
	return nil
}

// nopDisplay counts what it was asked to show.
type nopDisplay struct {
	cancelled int
	logged    int
	errors    []error
	menus     int
}

func (d *nopDisplay) NowPlaying(file string, index, total int) {}
func (d *nopDisplay) Paused(m Mark) {}
func (d *nopDisplay) Resumed() {}
func (d *nopDisplay) CategoryMenu(_ []catalog.Category, _ catalog.Selection) { d.menus++ }
func (d *nopDisplay) ActionMenu() {}
func (d *nopDisplay) TaskMenu(action Action, tasks []string) {}
func (d *nopDisplay) Prompt(question string) {}
func (d *nopDisplay) Logged(ev Event) { d.logged++ }
func (d *nopDisplay) Cancelled() { d.cancelled++ }
func (d *nopDisplay) Error(err error) { d.errors = append(d.errors, err) }

type harness struct {
	trace   *trace
	player  *fakePlayer
	input   *scriptedInput
	log     *memLog
	display *nopDisplay
	loop    *Loop
}

func newHarness(keySeq string, lines ...string) *harness {
	tr := &trace{}
	h := &harness{
		trace:   tr,
		player:  &fakePlayer{trace: tr, times: []string{"12", "34", "56"}},
		input:   &scriptedInput{keys: keys(keySeq), lines: lines},
		log:     &memLog{trace: tr},
		display: &nopDisplay{},
	}
	dialogs := NewKeyDialogs(h.input, h.display)
	h.loop = NewLoop(h.player, h.input, dialogs, h.log, h.display, nil)
	return h
}

var errBoom = errors.New("boom")
