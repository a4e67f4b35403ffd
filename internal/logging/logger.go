package logging

import (
	"io"
	"os"
	"strings"

	"github.com/2beens/operatorprotocol/pkg"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultMaxSizeMB = 50

type LoggerSetupParams struct {
	// Binary tags every entry, so service and workout runner logs can share a sink
	Binary        string
	Environment   string
	LogLevel      string
	LogFormatJSON bool

	// LogFileName enables the rotated log file, STDOUT only when empty
	LogFileName string
	LogToStdout bool
	Rotation    RotationParams

	SentryEnabled    bool
	SentryDSN        string
	SentryServerName string
}

// RotationParams bound the rotated log files. Zero MaxAgeDays and MaxBackups keep everything.
type RotationParams struct {
	MaxSizeMB  int
	MaxAgeDays int
	MaxBackups int
}

func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	logrus.SetLevel(ParseLevel(params.LogLevel))

	if fields := staticFields(params); len(fields) > 0 {
		logrus.AddHook(&fieldsHook{fields: fields})
	}

	if params.SentryEnabled {
		setupSentry(params)
	}

	out, description := output(params)
	logrus.SetOutput(out)
	logrus.Debugf("writing logs to %s", description)
}

func setupSentry(params LoggerSetupParams) {
	err := sentry.Init(sentry.ClientOptions{
		Environment:      params.Environment,
		Dsn:              params.SentryDSN,
		TracesSampleRate: 1.0,
		ServerName:       params.SentryServerName,
	})
	if err != nil {
		logrus.Errorf("sentry init: %s", err)
		return
	}

	logrus.AddHook(NewSentryHook([]logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))
	logrus.Infoln("sentry hook added")
}

func output(params LoggerSetupParams) (io.Writer, string) {
	if params.LogFileName == "" {
		return os.Stdout, "STDOUT"
	}

	fileName := params.LogFileName
	if !strings.HasSuffix(fileName, ".log") {
		fileName += ".log"
	}

	maxSize := params.Rotation.MaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultMaxSizeMB
	}
	rotated := &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    maxSize,
		MaxAge:     params.Rotation.MaxAgeDays,
		MaxBackups: params.Rotation.MaxBackups,
		LocalTime:  false, // file names in UTC
		Compress:   true,
	}

	if params.LogToStdout {
		return pkg.NewCombinedWriter(os.Stdout, rotated), fileName + " and STDOUT"
	}
	return rotated, fileName
}

func staticFields(params LoggerSetupParams) logrus.Fields {
	fields := logrus.Fields{}
	if params.Binary != "" {
		fields["binary"] = params.Binary
	}
	if params.Environment != "" {
		fields["env"] = params.Environment
	}
	return fields
}

// ParseLevel falls back to info for empty or unknown levels.
func ParseLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}

// fieldsHook adds the same fields to every entry, entry fields win on conflict.
type fieldsHook struct {
	fields logrus.Fields
}

func (h *fieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *fieldsHook) Fire(entry *logrus.Entry) error {
	for k, v := range h.fields {
		if _, ok := entry.Data[k]; !ok {
			entry.Data[k] = v
		}
	}
	return nil
}
