package diag

import (
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

// LogSink writes diagnostics to a commonlog logger.
type LogSink struct {
	log commonlog.Logger
}

func NewLogSink(name string) *LogSink {
	return &LogSink{log: commonlog.GetLogger(name)}
}

func (s *LogSink) Record(d Diagnostic) {
	kv := []any{"kind", d.Kind.String()}
	if d.Element != "" {
		kv = append(kv, "element", d.Element)
	}
	if d.Line > 0 {
		kv = append(kv, "line", d.Line, "column", d.Column)
	}

	switch d.Severity {
	case SeverityError:
		s.log.Error(d.Message, kv...)
	case SeverityWarning:
		s.log.Warning(d.Message, kv...)
	case SeverityInfo:
		s.log.Info(d.Message, kv...)
	default:
		s.log.Debug(d.Message, kv...)
	}
}

// Configure sets up commonlog for the process. Each verbosity increment
// enables one more level (info at 1, debug at 2). An empty path logs to stderr.
func Configure(verbosity int, path string) {
	if path == "" {
		commonlog.Configure(verbosity, nil)
		return
	}
	commonlog.Configure(verbosity, &path)
}
