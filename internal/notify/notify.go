// Package notify は利用者向けのエラーメッセージ（トースト相当）の出し先。
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// 投げっぱなしで、戻り値は見ない
type Notifier interface {
	Error(message string)
}

// Func は関数を Notifier として使う
type Func func(message string)

func (f Func) Error(message string) { f(message) }

// ログに流すだけの Notifier（APIサーバー用）
type LogNotifier struct {
	log *zap.Logger
}

func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Error(message string) {
	n.log.Warn("cart notification", zap.String("toast", message))
}

// 端末に赤字で1行出す Notifier（CLI用）
type ColorNotifier struct {
	mu  sync.Mutex
	w   io.Writer
	red *color.Color
}

func NewColorNotifier(w io.Writer) *ColorNotifier {
	return &ColorNotifier{
		w:   w,
		red: color.New(color.FgRed, color.Bold),
	}
}

func (n *ColorNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintln(n.w, n.red.Sprint("✖ "+message))
}
