package annotate

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/tessro/vlcmark/internal/core"
	errs "github.com/tessro/vlcmark/internal/errors"
)

func (h *harness) steps() string {
	return strings.Join(h.trace.steps, ",")
}

func TestLoopFlows(t *testing.T) {
	tests := []struct {
		name      string
		keys      string
		lines     []string
		wantSteps string
		want      []Event
	}{
		{
			name:      "comment",
			keys:      "oq",
			lines:     []string{"looks good"},
			wantSteps: "pause,get_time,append,play",
			want:      []Event{{Timestamp: "12", FileName: "a.mp4", Comment: "looks good"}},
		},
		{
			name:      "components",
			keys:      "c31\nq",
			wantSteps: "pause,get_time,append,play",
			want:      []Event{{Timestamp: "12", FileName: "a.mp4", Components: []string{"natural language", "tool output"}}},
		},
		{
			name:      "empty components not logged",
			keys:      "c11\nq",
			wantSteps: "pause,get_time,play",
		},
		{
			name:      "copy-pasted confirmed",
			keys:      "yq",
			lines:     []string{"Y"},
			wantSteps: "pause,get_time,append,play",
			want:      []Event{{Timestamp: "12", FileName: "a.mp4", IsCopyPasted: true}},
		},
		{
			name:      "copy-pasted declined",
			keys:      "yq",
			lines:     []string{"n"},
			wantSteps: "pause,get_time,play",
		},
		{
			name:      "unchanged empty answer",
			keys:      "uq",
			lines:     []string{""},
			wantSteps: "pause,get_time,play",
		},
		{
			name:      "unchanged confirmed",
			keys:      "uq",
			lines:     []string{"y"},
			wantSteps: "pause,get_time,append,play",
			want:      []Event{{Timestamp: "12", FileName: "a.mp4", IsCopyPastedAndUnchanged: true}},
		},
		{
			name:      "task start then end",
			keys:      "ts0te0q",
			wantSteps: "pause,get_time,append,play,pause,get_time,append,play",
			want: []Event{
				{Timestamp: "12", FileName: "a.mp4", Action: ActionStart, Task: "other"},
				{Timestamp: "34", FileName: "a.mp4", Action: ActionEnd, Task: "other"},
			},
		},
		{
			name:      "task cancelled",
			keys:      "tsqq",
			wantSteps: "pause,get_time,play",
		},
		{
			name:      "unknown keys ignored",
			keys:      "xz \x07q",
			wantSteps: "",
		},
		{
			name:      "quit sends nothing",
			keys:      "q",
			wantSteps: "",
		},
		{
			name:      "input closed between flows",
			keys:      "o",
			lines:     []string{"first"},
			wantSteps: "pause,get_time,append,play",
			want:      []Event{{Timestamp: "12", FileName: "a.mp4", Comment: "first"}},
		},
		{
			name:      "input closed during dialog",
			keys:      "o",
			wantSteps: "pause,get_time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(tt.keys, tt.lines...)

			if err := h.loop.Run(context.Background(), "a.mp4"); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got := h.steps(); got != tt.wantSteps {
				t.Errorf("steps = %q, want %q", got, tt.wantSteps)
			}
			if !reflect.DeepEqual(h.log.events, tt.want) {
				t.Errorf("events = %+v, want %+v", h.log.events, tt.want)
			}
			if h.loop.State() != core.StateTerminated {
				t.Errorf("State() = %v after Run, want terminated", h.loop.State())
			}
		})
	}
}

func TestLoopTimestampFromPausedPosition(t *testing.T) {
	h := newHarness("oooq", "one", "two", "three")
	if err := h.loop.Run(context.Background(), "clip.mkv"); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var got []string
	for _, ev := range h.log.events {
		got = append(got, ev.Timestamp+"="+ev.Comment)
	}
	if want := "12=one,34=two,56=three"; strings.Join(got, ",") != want {
		t.Errorf("events = %v, want %s", got, want)
	}
}

func TestLoopGetTimeFailure(t *testing.T) {
	h := newHarness("oq", "never read")
	h.player.timeErr = errs.ErrProtocolDesync

	err := h.loop.Run(context.Background(), "a.mp4")
	if !errors.Is(err, errs.ErrProtocolDesync) {
		t.Fatalf("Run() error = %v, want ErrProtocolDesync", err)
	}
	if got := h.steps(); got != "pause,get_time" {
		t.Errorf("steps = %q, want no resume after a failed query", got)
	}
	if len(h.input.lines) != 1 {
		t.Error("dialog ran after get_time failed")
	}
}

func TestLoopAppendFailureResumes(t *testing.T) {
	h := newHarness("oq", "text")
	h.log.err = errBoom

	err := h.loop.Run(context.Background(), "a.mp4")
	if !errors.Is(err, errBoom) {
		t.Fatalf("Run() error = %v, want errBoom", err)
	}
	if got := h.steps(); got != "pause,get_time,append,play" {
		t.Errorf("steps = %q", got)
	}
}

func TestLoopInterrupt(t *testing.T) {
	h := newHarness("c1\x03")
	err := h.loop.Run(context.Background(), "a.mp4")
	if !errors.Is(err, errs.ErrInterrupted) {
		t.Fatalf("Run() error = %v, want ErrInterrupted", err)
	}
	if len(h.log.events) != 0 {
		t.Errorf("logged %d events on interrupt", len(h.log.events))
	}
}

func TestLoopContextCancelled(t *testing.T) {
	h := newHarness("oq", "x")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.loop.Run(ctx, "a.mp4"); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if h.steps() != "" {
		t.Errorf("steps = %q after cancel", h.steps())
	}
}

// Every flow, whatever the operator types, pauses before querying, queries
// before logging, and logs before resuming.
func TestLoopOrderingProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		keySeq := rapid.StringMatching(`[cyuotqx0-9sen\n\x1b]{0,30}`).Draw(rt, "keys")
		lines := rapid.SliceOfN(rapid.SampledFrom([]string{"y", "n", "", "note"}), 0, 10).Draw(rt, "lines")

		h := newHarness(keySeq, lines...)
		h.player.times = nil
		if err := h.loop.Run(context.Background(), "a.mp4"); err != nil {
			rt.Fatalf("Run() error = %v", err)
		}

		appends := 0
		paused, queried, logged := false, false, false
		for _, step := range h.trace.steps {
			switch step {
			case "pause":
				if paused {
					rt.Fatalf("pause while already paused: %v", h.trace.steps)
				}
				paused = true
			case "get_time":
				if !paused || queried {
					rt.Fatalf("get_time out of order: %v", h.trace.steps)
				}
				queried = true
			case "append":
				if !queried || logged {
					rt.Fatalf("append out of order: %v", h.trace.steps)
				}
				logged = true
				appends++
			case "play":
				if !queried {
					rt.Fatalf("play before get_time: %v", h.trace.steps)
				}
				paused, queried, logged = false, false, false
			}
		}
		if appends != len(h.log.events) {
			rt.Fatalf("appends = %d, events = %d", appends, len(h.log.events))
		}
		for _, ev := range h.log.events {
			if err := ev.Validate(); err != nil {
				rt.Fatalf("logged invalid event %+v: %v", ev, err)
			}
		}
	})
}
