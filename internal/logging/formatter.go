package logging

import (
	"bytes"
	"encoding/json"

	"github.com/sirupsen/logrus"
)

// SimpleFormatter escreve "level: message" e, se houver campos, o JSON deles na mesma linha.
type SimpleFormatter struct{}

func (f *SimpleFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString(entry.Level.String())
	b.WriteString(": ")
	b.WriteString(entry.Message)

	if len(entry.Data) > 0 {
		data := make(map[string]any, len(entry.Data))
		for k, v := range entry.Data {
			if err, ok := v.(error); ok {
				v = err.Error()
			}
			data[k] = v
		}
		fields, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		b.WriteByte(' ')
		b.Write(fields)
	}

	b.WriteByte('\n')
	return b.Bytes(), nil
}
