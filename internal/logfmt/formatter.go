// Package logfmt provides the logrus formatter used across the simulation.
//
// The teacher (tsinghua-fib-lab/agentsociety-sim-oss) pulls a private
// "logrus-easy-formatter" module for this; since that module lives in an
// internal registry we can't depend on, this package reimplements the same
// small contract (module-tagged, single-line, millisecond-precision logs).
package logfmt

import (
	"bytes"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Formatter renders log entries as "[module] [time] [level] message".
type Formatter struct {
	// TimestampFormat is passed to time.Time.Format; defaults to
	// "2006-01-02 15:04:05.000" when empty.
	TimestampFormat string
}

const defaultTimestampFormat = "2006-01-02 15:04:05.000"

// Format implements logrus.Formatter.
func (f *Formatter) Format(entry *logrus.Entry) ([]byte, error) {
	ts := f.TimestampFormat
	if ts == "" {
		ts = defaultTimestampFormat
	}

	module, _ := entry.Data["module"].(string)
	if module == "" {
		module = "-"
	}

	buf := &bytes.Buffer{}
	fmt.Fprintf(buf, "[%s] [%s] [%s] %s",
		module,
		entry.Time.Format(ts),
		levelLabel(entry.Level),
		entry.Message,
	)
	for k, v := range entry.Data {
		if k == "module" {
			continue
		}
		fmt.Fprintf(buf, " %s=%v", k, v)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func levelLabel(lvl logrus.Level) string {
	switch lvl {
	case logrus.PanicLevel:
		return "off"
	case logrus.FatalLevel:
		return "critical"
	default:
		return lvl.String()
	}
}
