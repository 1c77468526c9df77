//go:build !windows

// Package stderr captures output that C libraries (ALSA, the audio backend)
// write directly to file descriptor 2, bypassing Go's os.Stderr, and routes
// it to the application log so it cannot corrupt the TUI layout.
package stderr

import (
	"log/slog"
	"os"
	"sync"
	"syscall"
)

var (
	mu         sync.Mutex
	origStderr = -1
	pipeRead   *os.File
	pipeWrite  *os.File
	forwarded  chan struct{}
)

// Start begins capturing stderr output into logger.
// Must be called early in main(), before the audio output is initialized.
// On error the program can continue: output keeps going to the terminal.
func Start(logger *slog.Logger) error {
	mu.Lock()
	defer mu.Unlock()
	if pipeRead != nil {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	orig, err := syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	// Redirect stderr (fd 2) to the pipe's write end
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(orig)
		r.Close()
		w.Close()
		return err
	}

	origStderr = orig
	pipeRead = r
	pipeWrite = w
	forwarded = make(chan struct{})

	go func(done chan struct{}) {
		defer close(done)
		forward(r, logger)
	}(forwarded)

	return nil
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Used for fatal errors that must be visible even while the TUI runs.
func WriteOriginal(msg string) {
	mu.Lock()
	fd := origStderr
	mu.Unlock()

	if fd < 0 {
		_, _ = os.Stderr.WriteString(msg)
		return
	}
	_, _ = syscall.Write(fd, []byte(msg))
}

// Stop restores the original stderr and waits for captured output to be
// logged. Should be called on program exit.
func Stop() {
	mu.Lock()
	defer mu.Unlock()
	if pipeRead == nil {
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)
	origStderr = -1

	// Closing the write end lets the forwarder drain and hit EOF
	pipeWrite.Close()
	<-forwarded
	pipeRead.Close()
	pipeRead, pipeWrite = nil, nil
}
