//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

const (
	evKey = 0x01

	// Linux input-event-codes.h
	KeyF4 = 62
)

// input_event = timeval + u16 type + u16 code + s32 value.
var (
	timevalSize = binary.Size(unix.Timeval{})
	eventSize   = timevalSize + 2 + 2 + 4
)

// ExitOnKey watches Linux evdev devices under /dev/input/event* and calls
// onExit once when key is pressed. It returns right away; readers stop
// with ctx. Without input devices it only logs.
func ExitOnKey(ctx context.Context, logger Logger, key uint16, onExit func()) {
	if onExit == nil {
		return
	}

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		if logger != nil {
			logger.Infof("input", "no evdev devices found, exit key disabled")
		}
		return
	}

	var once sync.Once
	trigger := func() {
		once.Do(func() {
			if logger != nil {
				logger.Infof("input", "exit key %d pressed", key)
			}
			onExit()
		})
	}

	for _, path := range paths {
		go watchDevice(ctx, path, key, trigger)
	}
}

// StartExitOnF4 is ExitOnKey for the F4 key.
func StartExitOnF4(ctx context.Context, logger Logger, onExit func()) {
	ExitOnKey(ctx, logger, KeyF4, onExit)
}

func watchDevice(ctx context.Context, path string, key uint16, trigger func()) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	buf := make([]byte, 64*eventSize)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		if keyPressed(buf[:n], key) {
			trigger()
			return
		}
	}
}

// keyPressed scans a batch of input_event records for a press of key.
// Repeats and releases do not count.
func keyPressed(events []byte, key uint16) bool {
	for off := 0; off+eventSize <= len(events); off += eventSize {
		rec := events[off : off+eventSize]
		typ := binary.LittleEndian.Uint16(rec[timevalSize : timevalSize+2])
		code := binary.LittleEndian.Uint16(rec[timevalSize+2 : timevalSize+4])
		value := int32(binary.LittleEndian.Uint32(rec[timevalSize+4 : timevalSize+8]))
		if typ == evKey && code == key && value == 1 {
			return true
		}
	}
	return false
}
