//go:build !linux

package system

import "errors"

// ErrNoConsole is returned by the console helpers off Linux.
var ErrNoConsole = errors.New("linux console not available")

func SetGraphicsMode() error { return ErrNoConsole }
func RestoreTextMode() error { return ErrNoConsole }
func writeVT(string) error   { return ErrNoConsole }
