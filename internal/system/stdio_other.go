//go:build !unix

package system

import (
	"fmt"
	"os"
)

// RedirectStdIO swaps os.Stdout and os.Stderr for a file. Runtime output
// such as panic traces still goes to the original stderr.
func RedirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open stdio log: %w", err)
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}
