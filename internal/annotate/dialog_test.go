package annotate

import (
	"errors"
	"reflect"
	"testing"

	"pgregory.net/rapid"

	"github.com/tessro/vlcmark/internal/catalog"
	errs "github.com/tessro/vlcmark/internal/errors"
)

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		in   rune
		want Key
	}{
		{'c', 'c'},
		{'0', '0'},
		{'\r', KeyEnter},
		{'\n', KeyEnter},
		{0x1b, KeyEsc},
		{0x03, KeyInterrupt},
		{0x04, KeyEOF},
		{0x07, KeyNone},
		{0x7f, KeyNone},
	}
	for _, tt := range tests {
		if got := DecodeKey(tt.in); got != tt.want {
			t.Errorf("DecodeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestComponentsDialog(t *testing.T) {
	tests := []struct {
		name    string
		keys    string
		want    []string
		wantErr error
	}{
		{"two categories", "13\n", []string{"natural language", "tool output"}, nil},
		{"order independent", "31\n", []string{"natural language", "tool output"}, nil},
		{"toggle off", "22\n", nil, nil},
		{"ignores unknown keys", "x9!4\n", []string{"error message"}, nil},
		{"esc cancels", "1\x1b", nil, ErrCancelled},
		{"q cancels", "1q", nil, ErrCancelled},
		{"input closed", "1", nil, errs.ErrInputClosed},
		{"ctrl-c", "1\x03", nil, errs.ErrInterrupted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := &scriptedInput{keys: keys(tt.keys)}
			d := NewKeyDialogs(in, &nopDisplay{})

			sel, err := d.Components()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Components() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Components() error = %v", err)
			}
			if got := sel.Sorted(); !reflect.DeepEqual(got, tt.want) && !(len(got) == 0 && len(tt.want) == 0) {
				t.Errorf("Components() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComponentsDialogToggleProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		presses := rapid.SliceOf(rapid.IntRange(1, len(catalog.Categories()))).Draw(rt, "presses")

		var script []Key
		counts := map[int]int{}
		for _, p := range presses {
			script = append(script, Key('0'+p))
			counts[p]++
		}
		script = append(script, KeyEnter)

		d := NewKeyDialogs(&scriptedInput{keys: script}, &nopDisplay{})
		sel, err := d.Components()
		if err != nil {
			rt.Fatalf("Components() error = %v", err)
		}

		cats := catalog.Categories()
		for i, c := range cats {
			want := counts[i+1]%2 == 1
			if sel.Has(c.Label) != want {
				rt.Fatalf("%q selected = %v after %d presses", c.Label, sel.Has(c.Label), counts[i+1])
			}
		}
	})
}

func TestConfirmDialog(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"y", true},
		{"Y", true},
		{"n", false},
		{"", false},
		{"yes", false},
		{"yy", false},
	}
	for _, tt := range tests {
		d := NewKeyDialogs(&scriptedInput{lines: []string{tt.line}}, &nopDisplay{})
		got, err := d.Confirm("ok?")
		if err != nil {
			t.Fatalf("Confirm(%q) error = %v", tt.line, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}

	d := NewKeyDialogs(&scriptedInput{}, &nopDisplay{})
	if _, err := d.Confirm("ok?"); !errors.Is(err, errs.ErrInputClosed) {
		t.Errorf("Confirm() on closed input error = %v, want ErrInputClosed", err)
	}
}

func TestCommentDialog(t *testing.T) {
	d := NewKeyDialogs(&scriptedInput{lines: []string{"  looks <good> & fine  "}}, &nopDisplay{})
	got, err := d.Comment()
	if err != nil {
		t.Fatalf("Comment() error = %v", err)
	}
	if got != "looks <good> & fine" {
		t.Errorf("Comment() = %q", got)
	}

	d = NewKeyDialogs(&scriptedInput{lines: []string{"   "}}, &nopDisplay{})
	if _, err := d.Comment(); !errors.Is(err, ErrCancelled) {
		t.Errorf("Comment() on blank line error = %v, want ErrCancelled", err)
	}
}

func TestTaskDialog(t *testing.T) {
	tests := []struct {
		keys    string
		want    TaskChoice
		wantErr error
	}{
		{"s1", TaskChoice{ActionStart, "setup-environment"}, nil},
		{"e9", TaskChoice{ActionEnd, "debug-build"}, nil},
		{"10", TaskChoice{ActionStart, "other"}, nil},
		{"2x4", TaskChoice{ActionEnd, "fix-bug"}, nil},
		{"zs3", TaskChoice{ActionStart, "implement-feature"}, nil},
		{"q", TaskChoice{}, ErrCancelled},
		{"s\x1b", TaskChoice{}, ErrCancelled},
		{"e", TaskChoice{}, errs.ErrInputClosed},
	}
	for _, tt := range tests {
		d := NewKeyDialogs(&scriptedInput{keys: keys(tt.keys)}, &nopDisplay{})
		got, err := d.Task()
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Task(%q) error = %v, want %v", tt.keys, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Task(%q) = %+v, want %+v", tt.keys, got, tt.want)
		}
	}
}
