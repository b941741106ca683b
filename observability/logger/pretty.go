package logger

import (
	"encoding/json"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

// prettyEncoder renders entries as a colored header line followed by indented fields.
//
// Fields are encoded by the embedded JSON encoder first, so values marshal exactly as
// they would in production; the JSON is then re-shaped for humans.
type prettyEncoder struct {
	zapcore.Encoder
	pool buffer.Pool
}

func newPrettyLogger(cfg *zap.Config) *zap.Logger {
	enc := &prettyEncoder{
		Encoder: zapcore.NewJSONEncoder(cfg.EncoderConfig),
		pool:    buffer.NewPool(),
	}
	core := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), cfg.Level)
	return zap.New(core, zap.ErrorOutput(zapcore.AddSync(os.Stderr)))
}

func (e *prettyEncoder) Clone() zapcore.Encoder {
	return &prettyEncoder{Encoder: e.Encoder.Clone(), pool: e.pool}
}

func (e *prettyEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	jsonBuf, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}
	defer jsonBuf.Free()

	out := e.pool.Get()

	var payload map[string]any
	if err = json.Unmarshal(jsonBuf.Bytes(), &payload); err != nil {
		out.AppendString(jsonBuf.String())
		return out, nil //nolint:nilerr // fall back to raw JSON output
	}

	out.AppendString(header(entry))
	for _, k := range sortedFieldKeys(payload) {
		out.AppendString("    ")
		out.AppendString(fieldKeyColor(entry.Level).Sprint(k))
		out.AppendString(": ")
		out.AppendString(renderValue(payload[k]))
		out.AppendByte('\n')
	}

	return out, nil
}

func header(entry zapcore.Entry) string {
	ts := entry.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString(color.New(color.Faint).Sprint("[" + ts.Format(time.DateTime) + "]"))
	b.WriteByte(' ')
	b.WriteString(levelColor(entry.Level).Sprint(entry.Level.CapitalString()))
	if entry.LoggerName != "" {
		b.WriteByte(' ')
		b.WriteString(color.New(color.FgHiBlack).Sprint(entry.LoggerName))
	}
	if entry.Message != "" {
		b.WriteByte(' ')
		b.WriteString(entry.Message)
	}
	b.WriteByte('\n')
	return b.String()
}

func sortedFieldKeys(payload map[string]any) []string {
	keys := make([]string, 0, len(payload))
	for k := range payload {
		switch k {
		case timeKey, levelKey, messageKey, nameKey:
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func renderValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any, []any:
		b, err := json.MarshalIndent(val, "    ", "  ")
		if err != nil {
			return "<unrenderable>"
		}
		return string(b)
	default:
		b, _ := json.Marshal(val)
		return string(b)
	}
}

func levelColor(l zapcore.Level) *color.Color {
	switch l {
	case zapcore.DebugLevel:
		return color.New(color.FgCyan)
	case zapcore.InfoLevel:
		return color.New(color.FgGreen)
	case zapcore.WarnLevel:
		return color.New(color.FgYellow)
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return color.New(color.FgRed, color.Bold)
	default:
		return color.New(color.FgMagenta)
	}
}

func fieldKeyColor(l zapcore.Level) *color.Color {
	if l >= zapcore.ErrorLevel {
		return color.New(color.FgHiRed)
	}
	if l == zapcore.WarnLevel {
		return color.New(color.FgHiYellow)
	}
	return color.New(color.FgHiCyan)
}
