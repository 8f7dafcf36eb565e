package hamui

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// log is the package logger. It discards everything until a session
// enables file logging; writing to the terminal would corrupt the display.
var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(plainFormatter{})
	l.SetLevel(logrus.DebugLevel)
	return l
}

// OpenLogFile directs the package logger to append to the given file.
func OpenLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return f, nil
}

// SetLogOutput redirects the package logger, mainly for tests.
func SetLogOutput(w io.Writer) {
	log.SetOutput(w)
}

// plainFormatter renders one line per entry: timestamp, level, message and
// any fields.
type plainFormatter struct{}

func (plainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	msg := fmt.Sprintf("%s %-5s %s", entry.Time.Format("2006-01-02 15:04:05"),
		entry.Level.String(), entry.Message)
	for k, v := range entry.Data {
		msg += fmt.Sprintf(" %s=%v", k, v)
	}
	return []byte(msg + "\n"), nil
}
