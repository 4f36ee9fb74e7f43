package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

type Entry = logrus.Entry

type Fields = logrus.Fields

// Options задаёт вывод и уровень логирования.
type Options struct {
	Output io.Writer
	Debug  bool
}

// Init настраивает JSON-формат. Уровень debug включается флагом или DEBUG=true.
func Init(opts Options) {
	Log.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	Log.SetOutput(opts.Output)

	if opts.Debug || os.Getenv("DEBUG") == "true" {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}
}

// OpenFile открывает файл для дописывания логов, чтобы не портить экран TUI.
func OpenFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}
