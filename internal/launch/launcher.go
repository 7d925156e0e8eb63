// Package launch starts external applications without waiting for them.
package launch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/kk-code-lab/kexplorer/internal/logging"
	"go.uber.org/zap"
)

var commandBuilder = exec.Command

// ErrNoCommand is returned when there is nothing to run.
var ErrNoCommand = errors.New("no command to launch")

// Launcher starts child processes and forgets about them. Each child gets a
// goroutine that forwards its stdout to the log line by line and records
// how it exited.
type Launcher struct {
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewLauncher returns a Launcher logging to logger (nil for none).
func NewLauncher(logger *zap.Logger) *Launcher {
	return &Launcher{logger: logging.OrNop(logger)}
}

// Launch starts command with args. Only failures to start are reported; the
// child's exit status is logged, never returned.
func (l *Launcher) Launch(command string, args ...string) error {
	if command == "" {
		return ErrNoCommand
	}

	cmd := commandBuilder(command, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("launch %s: %w", command, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", command, err)
	}

	log := l.logger.With(zap.String("command", command), zap.Int("pid", cmd.Process.Pid))
	log.Info("launched application", zap.Strings("args", args))

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		drainLines(stdout, log)
		if err := cmd.Wait(); err != nil {
			log.Info("application exited", zap.Error(err))
			return
		}
		log.Info("application exited")
	}()
	return nil
}

// LaunchCommand parses a stored command line and launches it with extra args appended.
func (l *Launcher) LaunchCommand(commandLine string, extra ...string) error {
	argv := ParseCommand(commandLine)
	if len(argv) == 0 {
		return ErrNoCommand
	}
	return l.Launch(argv[0], append(argv[1:], extra...)...)
}

// Wait blocks until every launched child has exited.
func (l *Launcher) Wait() {
	l.wg.Wait()
}

// drainLines reads until the pipe closes, which happens when the child exits.
func drainLines(r io.Reader, log *zap.Logger) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		log.Debug("application output", zap.String("line", scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		log.Debug("stopped reading application output", zap.Error(err))
		_, _ = io.Copy(io.Discard, r)
	}
}
