package system

// Logger is what the console helpers report through.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// consolePaths are tried in order: the active VT, then tty0.
var consolePaths = []string{"/dev/tty", "/dev/tty0"}

func logResult(l Logger, err error, failed, ok string) error {
	if l == nil {
		return err
	}
	if err != nil {
		l.Errorf("tty", "%s: %v", failed, err)
	} else {
		l.Infof("tty", "%s", ok)
	}
	return err
}

func SetGraphicsModeWithLog(l Logger) error {
	return logResult(l, SetGraphicsMode(), "KD_GRAPHICS failed", "KD_GRAPHICS set")
}

func RestoreTextModeWithLog(l Logger) error {
	return logResult(l, RestoreTextMode(), "KD_TEXT failed", "KD_TEXT set")
}

func HideCursorWithLog(l Logger) error {
	return logResult(l, HideCursor(), "hide cursor failed", "cursor hidden")
}

func ShowCursorWithLog(l Logger) error {
	return logResult(l, ShowCursor(), "show cursor failed", "cursor shown")
}

// HideCursor writes the ANSI escape to hide the cursor to the active VT.
func HideCursor() error { return writeVT("\x1b[?25l") }
func ShowCursor() error { return writeVT("\x1b[?25h") }
