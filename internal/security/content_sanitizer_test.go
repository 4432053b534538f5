package security

import (
	"html"
	"testing"
)

// TestSanitize_PlainTextUnchanged はプレーンテキストがそのまま通ることを検証する。
func TestSanitize_PlainTextUnchanged(t *testing.T) {
	s := NewContentSanitizer()

	tests := []string{
		"buy milk",
		"牛乳を買う",
		"call mom at 9:00",
	}
	for _, input := range tests {
		if got := s.Sanitize(input); got != input {
			t.Errorf("Sanitize(%q) = %q, want unchanged", input, got)
		}
	}
}

// TestSanitize_StripsMarkup はHTMLタグが除去されることを検証する。
func TestSanitize_StripsMarkup(t *testing.T) {
	s := NewContentSanitizer()

	tests := []struct {
		input string
		want  string
	}{
		{"<script>alert(1)</script>", ""},
		{"<b>bold</b> text", "bold text"},
		{`<a href="https://example.com">link</a>`, "link"},
	}
	for _, tt := range tests {
		if got := s.Sanitize(tt.input); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// TestSanitize_EscapesEntities はタグを含まない特殊文字がHTMLエスケープ
// されることと、html.UnescapeStringで元に戻ることを検証する。
// 呼び出し側はこの組み合わせでプレーンテキスト判定を行う。
func TestSanitize_EscapesEntities(t *testing.T) {
	s := NewContentSanitizer()

	input := "fish & chips"
	sanitized := s.Sanitize(input)
	if got := html.UnescapeString(sanitized); got != input {
		t.Errorf("UnescapeString(Sanitize(%q)) = %q, want %q", input, got, input)
	}
}

// TestSanitize_Idempotent は同一入力に対して常に同一出力を返すことを検証する。
func TestSanitize_Idempotent(t *testing.T) {
	s := NewContentSanitizer()

	input := "<b>task</b> one"
	first := s.Sanitize(input)
	second := s.Sanitize(input)
	if first != second {
		t.Errorf("Sanitize should be deterministic: %q != %q", first, second)
	}
}
