package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// TestLogger はテスト用のLogger
// 出力を1行1エントリのJSONとしてメモリに溜める
type TestLogger struct {
	buffer *bytes.Buffer
	level  Level
	fields map[string]interface{}
}

// NewTestLogger は level 以上を記録するTestLoggerと、その出力先バッファを返す
//
//	logger, _ := log.NewTestLogger(log.LevelDebug)
//	gd := linear.NewGradientDescent(linear.WithLogger(logger))
func NewTestLogger(level Level) (*TestLogger, *bytes.Buffer) {
	buffer := &bytes.Buffer{}
	return &TestLogger{buffer: buffer, level: level, fields: map[string]interface{}{}}, buffer
}

func (t *TestLogger) Debug(msg string, fields ...any) { t.write(LevelDebug, "DEBUG", msg, fields) }
func (t *TestLogger) Info(msg string, fields ...any)  { t.write(LevelInfo, "INFO", msg, fields) }
func (t *TestLogger) Warn(msg string, fields ...any)  { t.write(LevelWarn, "WARN", msg, fields) }
func (t *TestLogger) Error(msg string, fields ...any) { t.write(LevelError, "ERROR", msg, fields) }

// With は同じバッファを共有し、フィールドを追加した子loggerを返す
func (t *TestLogger) With(fields ...any) Logger {
	child := &TestLogger{buffer: t.buffer, level: t.level, fields: make(map[string]interface{}, len(t.fields))}
	for k, v := range t.fields {
		child.fields[k] = v
	}
	putPairs(child.fields, fields)
	return child
}

func (t *TestLogger) Enabled(_ context.Context, level Level) bool {
	return t.level <= level
}

func (t *TestLogger) write(level Level, name, msg string, fields []any) {
	if !t.Enabled(context.Background(), level) {
		return
	}

	entry := map[string]interface{}{"level": name, "message": msg}
	for k, v := range t.fields {
		entry[k] = v
	}
	// Error(msg, err, ...) の形式
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			entry[ErrorKey] = err.Error()
			fields = fields[1:]
		}
	}
	putPairs(entry, fields)

	line, _ := json.Marshal(entry)
	t.buffer.Write(line)
	t.buffer.WriteByte('\n')
}

func putPairs(dst map[string]interface{}, fields []any) {
	for i := 0; i+1 < len(fields); i += 2 {
		value := fields[i+1]
		if err, ok := value.(error); ok {
			value = err.Error()
		}
		dst[fmt.Sprintf("%v", fields[i])] = value
	}
}

// GetLogEntries は記録済みの各行をデコードして返す
// 数値フィールドはJSONを経由するため float64 になる
func (t *TestLogger) GetLogEntries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(t.buffer.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage は出力のどこかに message が含まれるかを返す
func (t *TestLogger) ContainsMessage(message string) bool {
	return strings.Contains(t.buffer.String(), message)
}

// ContainsField は key が value であるエントリがあるかを返す
func (t *TestLogger) ContainsField(key string, value interface{}) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if v, ok := entry[key]; ok && v == value {
			return true
		}
	}
	return false
}
