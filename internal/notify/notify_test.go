package notify

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestColorNotifier_WritesOneLine(t *testing.T) {
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	n := NewColorNotifier(&buf)

	n.Error("requested quantity out of stock")

	assert.Equal(t, "✖ requested quantity out of stock\n", buf.String())
}

func TestLogNotifier_LogsWarn(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	n := NewLogNotifier(zap.New(core))

	n.Error("error adding product")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "error adding product", entries[0].ContextMap()["toast"])
	}
}

func TestFunc(t *testing.T) {
	var got []string
	var n Notifier = Func(func(m string) { got = append(got, m) })

	n.Error("a")
	n.Error("b")

	assert.Equal(t, []string{"a", "b"}, got)
}
