package observability

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/understat-xg/internal/platform/logging"
	otellog "go.opentelemetry.io/otel/log"
	otelglobal "go.opentelemetry.io/otel/log/global"
)

const uptraceLogInstrumentation = "understat-xg/internal/platform/logging"

var severityByLevel = map[logging.Level]otellog.Severity{
	logging.LevelDebug: otellog.SeverityDebug,
	logging.LevelInfo:  otellog.SeverityInfo,
	logging.LevelWarn:  otellog.SeverityWarn,
	logging.LevelError: otellog.SeverityError,
}

// logMirror forwards zap entries to the global OpenTelemetry logger provider
// that uptrace-go installs.
type logMirror struct {
	logger   otellog.Logger
	minLevel logging.Level
	now      func() time.Time
}

func newUptraceLogMirror(serviceVersion string, minLevel logging.Level) logging.MirrorFunc {
	m := &logMirror{
		logger: otelglobal.Logger(
			uptraceLogInstrumentation,
			otellog.WithInstrumentationVersion(serviceVersion),
		),
		minLevel: minLevel,
		now:      time.Now,
	}
	return m.emit
}

func (m *logMirror) emit(ctx context.Context, level logging.Level, msg string, args ...any) {
	if level < m.minLevel {
		return
	}

	severity := toOTelSeverity(level)
	if !m.logger.Enabled(ctx, otellog.EnabledParameters{Severity: severity, EventName: msg}) {
		return
	}

	m.logger.Emit(ctx, m.record(level, msg, args))
}

func (m *logMirror) record(level logging.Level, msg string, args []any) otellog.Record {
	ts := m.now().UTC()

	var record otellog.Record
	record.SetTimestamp(ts)
	record.SetObservedTimestamp(ts)
	record.SetSeverity(toOTelSeverity(level))
	record.SetSeverityText(strings.ToUpper(level.String()))
	record.SetEventName(msg)
	record.SetBody(otellog.StringValue(msg))
	record.AddAttributes(buildOTelLogAttributes(args)...)
	return record
}

func toOTelSeverity(level logging.Level) otellog.Severity {
	if severity, ok := severityByLevel[level]; ok {
		return severity
	}
	if level > logging.LevelError {
		return otellog.SeverityFatal
	}
	return otellog.SeverityDebug
}

func buildOTelLogAttributes(args []any) []otellog.KeyValue {
	attrs := make([]otellog.KeyValue, 0, (len(args)+1)/2)
	for i := 0; i < len(args); i += 2 {
		key, _ := args[i].(string)
		if strings.TrimSpace(key) == "" {
			key = fmt.Sprintf("arg_%d", i/2)
		}
		if i+1 == len(args) {
			attrs = append(attrs, otellog.Empty(key))
			break
		}
		attrs = append(attrs, otellog.KeyValue{Key: key, Value: toOTelLogValue(args[i+1])})
	}
	return attrs
}

// toOTelLogValue covers the field types this tool logs: names, paths, counts,
// seasons, durations and errors. Anything else is formatted with fmt.
func toOTelLogValue(value any) otellog.Value {
	switch v := value.(type) {
	case nil:
		return otellog.Value{}
	case string:
		return otellog.StringValue(v)
	case bool:
		return otellog.BoolValue(v)
	case int:
		return otellog.IntValue(v)
	case int32:
		return otellog.Int64Value(int64(v))
	case int64:
		return otellog.Int64Value(v)
	case float64:
		return otellog.Float64Value(v)
	case time.Duration:
		return otellog.StringValue(v.String())
	case error:
		return otellog.StringValue(v.Error())
	case []string:
		items := make([]otellog.Value, 0, len(v))
		for _, item := range v {
			items = append(items, otellog.StringValue(item))
		}
		return otellog.SliceValue(items...)
	case fmt.Stringer:
		return otellog.StringValue(v.String())
	default:
		return otellog.StringValue(fmt.Sprint(v))
	}
}
