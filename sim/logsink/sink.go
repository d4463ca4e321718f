// Package logsink routes the simulation event stream to the console, a log
// file, or both.
package logsink

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/procsim/procsim/sim/config"
)

// Sink is an open event destination. Close releases the log file, if any.
type Sink struct {
	w    io.Writer
	file *os.File
}

// Open creates the destination selected by target. The log file at path is
// truncated when the target writes to a file.
func Open(target config.LogTarget, path string, console io.Writer) (*Sink, error) {
	s := &Sink{}
	var writers []io.Writer
	if target.ToConsole() {
		writers = append(writers, console)
	}
	if target.ToFile() {
		f, err := os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		s.file = f
		writers = append(writers, f)
		logrus.Debugf("logging events to %s", path)
	}
	switch len(writers) {
	case 0:
		return nil, fmt.Errorf("log target %q has no destination", target)
	case 1:
		s.w = writers[0]
	default:
		s.w = io.MultiWriter(writers...)
	}
	return s, nil
}

func (s *Sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

// Close flushes and closes the log file. It is safe to call more than once.
func (s *Sink) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}
