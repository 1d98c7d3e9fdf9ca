package projectlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	defaultTimestampFormat = time.RFC3339

	FieldKeyMsg   = "msg"
	FieldKeyLevel = "level"
	FieldKeyTime  = "time"
	FieldKeyFunc  = "func"
	FieldKeyFile  = "file"
	FieldModule   = "module"

	// Module tag stamped on every log line.
	LogPrefixName = "tourguide"
)

// JSONFormatter renders log entries as single-line JSON objects with a fixed
// field order: level, module, time, file, function, msg, then entry fields.
type JSONFormatter struct {
	// TimestampFormat sets the format used for marshaling timestamps.
	TimestampFormat string

	// DisableTimestamp allows disabling automatic timestamps in output.
	DisableTimestamp bool

	// PrettyPrint will indent all json logs.
	PrettyPrint bool
}

type logRecord struct {
	Level    string                 `json:"level,omitempty"`
	Module   string                 `json:"module,omitempty"`
	Time     string                 `json:"time,omitempty"`
	File     string                 `json:"file,omitempty"`
	Function string                 `json:"function,omitempty"`
	Msg      string                 `json:"msg,omitempty"`
	Fields   map[string]interface{} `json:"fields,omitempty"`
}

func (f *JSONFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	record := &logRecord{
		Level:  entry.Level.String(),
		Module: LogPrefixName,
		Msg:    entry.Message,
	}

	if !f.DisableTimestamp {
		timestampFormat := f.TimestampFormat
		if timestampFormat == "" {
			timestampFormat = defaultTimestampFormat
		}
		record.Time = entry.Time.Format(timestampFormat)
	}

	if entry.HasCaller() {
		record.Function = entry.Caller.Function
		record.File = fmt.Sprintf("%s:%d", entry.Caller.File, entry.Caller.Line)
	}

	if len(entry.Data) > 0 {
		record.Fields = make(map[string]interface{}, len(entry.Data))
		for k, v := range entry.Data {
			switch v := v.(type) {
			case error:
				// Plain errors are dropped by encoding/json.
				record.Fields[k] = v.Error()
			default:
				record.Fields[k] = v
			}
		}
	}

	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	encoder := json.NewEncoder(b)
	if f.PrettyPrint {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(record); err != nil {
		return nil, fmt.Errorf("failed to marshal log record to JSON, %v", err)
	}

	return b.Bytes(), nil
}
