//go:build !linux

package system

import "context"

const KeyF4 = 62

// ExitOnKey needs evdev; elsewhere it only logs.
func ExitOnKey(ctx context.Context, logger Logger, key uint16, onExit func()) {
	if logger != nil {
		logger.Infof("input", "exit key not supported on this platform")
	}
}

func StartExitOnF4(ctx context.Context, logger Logger, onExit func()) {
	ExitOnKey(ctx, logger, KeyF4, onExit)
}
