// Package logging monta o logger da aplicação: console, combined.log e error.log.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/JeanGrijp/secure-api/internal/config"
)

const (
	ErrorLogFile    = "error.log"
	CombinedLogFile = "combined.log"
)

// Logger é um *logrus.Logger que também é dono dos arquivos de log.
type Logger struct {
	*logrus.Logger
	files []*os.File
}

// New cria o diretório de logs se necessário e abre os dois arquivos em modo append.
// Todos os registros vão para o console e para combined.log; error e acima também para error.log.
func New(cfg config.LogConfig, console io.Writer) (*Logger, error) {
	dir := cfg.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory %s: %w", dir, err)
	}

	combined, err := openAppend(filepath.Join(dir, CombinedLogFile))
	if err != nil {
		return nil, err
	}
	errorFile, err := openAppend(filepath.Join(dir, ErrorLogFile))
	if err != nil {
		_ = combined.Close()
		return nil, err
	}

	base := logrus.New()
	base.SetOutput(console)
	base.SetFormatter(&SimpleFormatter{})
	base.SetLevel(cfg.Level)

	base.AddHook(newFileHook(combined, logrus.AllLevels))
	base.AddHook(newFileHook(errorFile, []logrus.Level{
		logrus.PanicLevel,
		logrus.FatalLevel,
		logrus.ErrorLevel,
	}))

	return &Logger{Logger: base, files: []*os.File{combined, errorFile}}, nil
}

// Close sincroniza e fecha os arquivos. O logger continua escrevendo no console.
func (l *Logger) Close() error {
	l.ReplaceHooks(make(logrus.LevelHooks))

	var errs []error
	for _, f := range l.files {
		if err := f.Sync(); err != nil {
			errs = append(errs, err)
		}
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	l.files = nil
	return errors.Join(errs...)
}

func openAppend(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return f, nil
}

// RecordFormatter produz uma linha JSON {"level","message","timestamp"} por registro.
func RecordFormatter() logrus.Formatter {
	return &logrus.JSONFormatter{
		TimestampFormat: time.RFC3339Nano,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime: "timestamp",
			logrus.FieldKeyMsg:  "message",
		},
	}
}
