package config

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

// TestNewLogger はログ設定に従ったロガーが生成されることを検証する。
func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("JSON形式で指定レベル未満を出力しないこと", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := NewLogger(LogConfig{Level: "warn", Format: "json"}, &buf)
		logger.Info("出力されない")
		logger.Warn("出力される", "key", "value")

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		if len(lines) != 1 {
			t.Fatalf("出力行数 = %d, want 1: %s", len(lines), buf.String())
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
			t.Fatalf("JSONのデコードに失敗: %v", err)
		}
		if entry["msg"] != "出力される" || entry["key"] != "value" || entry["level"] != "WARN" {
			t.Errorf("entry = %v", entry)
		}
	})

	t.Run("テキスト形式で出力しdebugを有効にできること", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		NewLogger(LogConfig{Level: "debug", Format: "text"}, &buf).Debug("詳細")
		if !strings.Contains(buf.String(), "level=DEBUG") {
			t.Errorf("output = %q", buf.String())
		}
	})

	t.Run("不明なレベルはinfoとして扱うこと", func(t *testing.T) {
		t.Parallel()

		if got := parseLevel("verbose"); got.String() != "INFO" {
			t.Errorf("parseLevel() = %v, want INFO", got)
		}
	})
}
