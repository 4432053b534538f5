// Package security は入力コンテンツの安全性検査を提供する。
//
// ContentSanitizer はToDo本文に対するプレーンテキスト検査に使用する。
// bluemondayのstrictポリシーで全タグを除去した結果を返すため、
// 呼び出し側は入力と出力を比較することでマークアップの混入を検出できる。
package security

import "github.com/microcosm-cc/bluemonday"

// ContentSanitizer はテキストコンテンツのサニタイズ機能のインターフェース。
type ContentSanitizer interface {
	// Sanitize は入力からHTMLタグを除去した文字列を返す。
	// タグを含まない入力に対してはHTMLエスケープを除き入力と同値になる。
	// 同一入力に対して常に同一出力を返す（冪等）。
	Sanitize(content string) string
}

// contentSanitizer はContentSanitizerの実装。
// ポリシーはスレッドセーフであり、複数リクエストから共有できる。
type contentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer は全タグを除去するstrictポリシーのサニタイザを生成する。
func NewContentSanitizer() *contentSanitizer {
	return &contentSanitizer{policy: bluemonday.StrictPolicy()}
}

// Sanitize は入力からHTMLタグを除去した文字列を返す。
func (s *contentSanitizer) Sanitize(content string) string {
	return s.policy.Sanitize(content)
}

// compile-time interface check
var _ ContentSanitizer = (*contentSanitizer)(nil)
