package vlc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/tessro/vlcmark/internal/config"
	errs "github.com/tessro/vlcmark/internal/errors"
)

// Args returns the command line used to launch the player with the rc
// interface enabled.
func Args(cfg config.PlayerConfig) []string {
	args := append([]string{}, cfg.ExtraArgs...)
	return append(args, "--extraintf", cfg.Interface)
}

// Start launches the player, waits out its startup delay and skips the rc
// banner. Standard error of the player is discarded.
func Start(ctx context.Context, cfg config.PlayerConfig, opts ...Option) (*Session, error) {
	binary, err := exec.LookPath(cfg.Binary)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrPlayerNotFound, cfg.Binary, err)
	}

	// nolint:gosec
	cmd := exec.Command(binary, Args(cfg)...)
	cmd.Stderr = nil

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrLaunchFailed, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrLaunchFailed, err)
	}

	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("%w: %v", errs.ErrPlayerNotFound, err)
		}
		return nil, fmt.Errorf("%w: %v", errs.ErrLaunchFailed, err)
	}

	opts = append([]Option{WithShutdownTimeout(cfg.ShutdownTimeout())}, opts...)
	s := NewSession(stdin, stdout, opts...)
	s.cmd = cmd
	s.logger.Info("player started", "binary", binary, "pid", cmd.Process.Pid)

	if d := cfg.StartupDelay(); d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			_ = s.Close()
			return nil, ctx.Err()
		}
	}

	if err := s.SkipBanner(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("%w: %v", errs.ErrLaunchFailed, err)
	}

	return s, nil
}
