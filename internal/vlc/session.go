package vlc

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	errs "github.com/tessro/vlcmark/internal/errors"
)

// Session is one rc conversation with a player process.
//
// Commands and replies strictly alternate: the protocol has no request ids,
// so a reply that is read early, read twice or left unread shifts every later
// answer by one line. A Session therefore reads only after get_time and
// refuses further queries once a read has been abandoned.
type Session struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	w     *bufio.Writer

	lines   chan string
	readErr error // set before lines is closed
	done    chan struct{}

	replyTimeout    time.Duration
	shutdownTimeout time.Duration
	logger          *slog.Logger

	mu       sync.Mutex
	desynced bool

	closeOnce sync.Once
	closeErr  error
}

// Option configures a Session.
type Option func(*Session)

// WithReplyTimeout bounds every reply read. Zero waits forever.
func WithReplyTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.replyTimeout = d
	}
}

// WithShutdownTimeout bounds how long Close waits for the process to exit.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.shutdownTimeout = d
	}
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession wraps an already running peer: commands go to stdin, replies
// come from stdout. The banner is not consumed; call SkipBanner for that.
func NewSession(stdin io.WriteCloser, stdout io.Reader, opts ...Option) *Session {
	s := &Session{
		stdin:           stdin,
		w:               bufio.NewWriter(stdin),
		lines:           make(chan string),
		done:            make(chan struct{}),
		shutdownTimeout: 3 * time.Second,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	go s.pump(stdout)

	return s
}

// pump is the only reader of stdout. Each line is handed over unbuffered,
// so a line is consumed only when ReadReply asks for it.
func (s *Session) pump(stdout io.Reader) {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		select {
		case s.lines <- scanner.Text():
		case <-s.done:
			return
		}
	}
	s.readErr = scanner.Err()
	if s.readErr == nil {
		s.readErr = io.EOF
	}
	close(s.lines)
}

// SkipBanner discards the greeting lines the rc interface prints on startup.
func (s *Session) SkipBanner(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < BannerLines; i++ {
		line, err := s.readLine(ctx)
		if err != nil {
			return fmt.Errorf("read banner line %d: %w", i+1, err)
		}
		s.logger.Debug("skip banner", "line", line)
	}
	return nil
}

// Send writes one command line and flushes it. No reply is read.
func (s *Session) Send(ctx context.Context, command string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.send(ctx, command)
}

func (s *Session) send(ctx context.Context, command string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.w.WriteString(command + "\n"); err != nil {
		return fmt.Errorf("send %q: %w: %v", command, errs.ErrSessionClosed, err)
	}
	if err := s.w.Flush(); err != nil {
		return fmt.Errorf("send %q: %w: %v", command, errs.ErrSessionClosed, err)
	}
	s.logger.Debug("rc send", "command", command)
	return nil
}

// ReadReply blocks for one line from the player and returns it with the
// prompt markers stripped.
func (s *Session) ReadReply(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	line, err := s.readLine(ctx)
	if err != nil {
		return "", err
	}
	return StripPrompt(line), nil
}

// readLine takes the next raw line. Giving up on a read marks the session
// desynchronized because the abandoned line will still arrive later.
func (s *Session) readLine(ctx context.Context) (string, error) {
	if s.desynced {
		return "", errs.ErrProtocolDesync
	}

	var timeout <-chan time.Time
	if s.replyTimeout > 0 {
		timer := time.NewTimer(s.replyTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	select {
	case line, ok := <-s.lines:
		if !ok {
			return "", fmt.Errorf("%w: %v", errs.ErrSessionClosed, s.readErr)
		}
		return line, nil
	case <-s.done:
		return "", errs.ErrSessionClosed
	case <-timeout:
		s.desynced = true
		return "", fmt.Errorf("%w after %v", errs.ErrReplyTimeout, s.replyTimeout)
	case <-ctx.Done():
		s.desynced = true
		return "", ctx.Err()
	}
}

// Add appends a media file to the player's playlist.
func (s *Session) Add(ctx context.Context, path string) error {
	return s.Send(ctx, cmdAdd+" "+path)
}

// Play starts or resumes playback.
func (s *Session) Play(ctx context.Context) error {
	return s.Send(ctx, cmdPlay)
}

// Pause pauses playback. VLC's rc pause toggles, so callers pair it with Play.
func (s *Session) Pause(ctx context.Context) error {
	return s.Send(ctx, cmdPause)
}

// GetTime asks for the current playback position and reads exactly one reply.
func (s *Session) GetTime(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.desynced {
		return "", errs.ErrProtocolDesync
	}
	if err := s.send(ctx, cmdGetTime); err != nil {
		return "", err
	}
	line, err := s.readLine(ctx)
	if err != nil {
		return "", fmt.Errorf("%s: %w", cmdGetTime, err)
	}

	reply := StripPrompt(line)
	if reply == "" {
		s.desynced = true
		return "", fmt.Errorf("%s: empty reply: %w", cmdGetTime, errs.ErrProtocolDesync)
	}
	s.logger.Debug("rc reply", "command", cmdGetTime, "reply", reply)
	return reply, nil
}

// Quit asks the player to exit. It does not wait; see Close.
func (s *Session) Quit(ctx context.Context) error {
	return s.Send(ctx, cmdQuit)
}

// Desynced reports whether the session has stopped accepting queries.
func (s *Session) Desynced() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.desynced
}

// Close closes the command pipe and, for launched players, waits for the
// process to exit, killing it after the shutdown timeout.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
		if err := s.stdin.Close(); err != nil {
			s.closeErr = err
		}
		if s.cmd == nil || s.cmd.Process == nil {
			return
		}

		done := make(chan error, 1)
		go func() {
			done <- s.cmd.Wait()
		}()

		select {
		case err := <-done:
			if err != nil {
				s.logger.Warn("player exited with error", "err", err)
			}
		case <-time.After(s.shutdownTimeout):
			s.logger.Warn("player did not exit, killing", "timeout", s.shutdownTimeout)
			if err := s.cmd.Process.Kill(); err != nil {
				s.closeErr = fmt.Errorf("kill player: %w", err)
			}
			<-done
		}
	})
	return s.closeErr
}
