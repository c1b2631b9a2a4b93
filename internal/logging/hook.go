package logging

import (
	"io"
	"sync"

	"github.com/sirupsen/logrus"
)

// fileHook grava cada entrada, já formatada como JSON, em um arquivo.
type fileHook struct {
	mu        sync.Mutex
	writer    io.Writer
	levels    []logrus.Level
	formatter logrus.Formatter
}

func newFileHook(w io.Writer, levels []logrus.Level) *fileHook {
	return &fileHook{
		writer:    w,
		levels:    levels,
		formatter: RecordFormatter(),
	}
}

func (h *fileHook) Levels() []logrus.Level {
	return h.levels
}

func (h *fileHook) Fire(entry *logrus.Entry) error {
	line, err := h.formatter.Format(entry)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err = h.writer.Write(line)
	return err
}
