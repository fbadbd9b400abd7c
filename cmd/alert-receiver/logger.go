package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

const (
	logFormatPlain = "plain"
	logFormatText  = "text"
	logFormatJSON  = "json"
)

var log = logrus.New()

// InitLogger initializes the logger with the configured log level and format
func InitLogger(level, format string) error {
	return configureLogger(log, os.Stdout, level, format)
}

func configureLogger(l *logrus.Logger, out io.Writer, level, format string) error {
	l.SetOutput(out)

	switch format {
	case logFormatPlain, "":
		l.SetFormatter(&plainFormatter{})
	case logFormatText:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	case logFormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&plainFormatter{})
		l.Warnf("Invalid log format '%s', defaulting to '%s'", format, logFormatPlain)
	}

	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		l.Warnf("Invalid log level '%s', defaulting to 'info'", level)
		parsedLevel = logrus.InfoLevel
	}
	l.SetLevel(parsedLevel)

	return nil
}

// plainFormatter prints the bare message followed by any fields as sorted
// key=value pairs. Summary lines come out exactly as they were written.
type plainFormatter struct{}

func (f *plainFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	b := entry.Buffer
	if b == nil {
		b = &bytes.Buffer{}
	}

	b.WriteString(entry.Message)

	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, " %s=%v", k, entry.Data[k])
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
