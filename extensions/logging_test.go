package extensions

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	reactive "github.com/reactive-fn/reactive-go"
)

func TestLoggingExtensionLogsOperations(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	g := reactive.New(reactive.WithExtension(NewLoggingExtension(handler)))

	c := g.Cell(0, reactive.WithName("count"))
	require.NoError(t, c.Set(1))

	out := buf.String()
	assert.Contains(t, out, "operation completed")
	assert.Contains(t, out, "op=set")
	assert.Contains(t, out, "node=count")
	assert.Contains(t, out, "wave=")
}

func TestLoggingExtensionLogsFailures(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, nil)
	g := reactive.New(reactive.WithExtension(NewLoggingExtension(handler)))

	x, err := g.Wrap(func(v int) int { return v }, reactive.WithName("x"))
	require.NoError(t, err)
	y, err := g.Wrap(func(v int) int { return v }, reactive.WithName("y"))
	require.NoError(t, err)
	_, err = x.BindTo(y)
	require.NoError(t, err)
	_, err = y.BindTo(x)
	require.NoError(t, err)

	_, err = x.Invoke()
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "operation failed")
	assert.Contains(t, out, "cyclic dependency")
}

func TestSilentHandler(t *testing.T) {
	g := reactive.New(reactive.WithExtension(NewLoggingExtension(SilentHandler())))

	c := g.Cell(0)
	require.NoError(t, c.Set(1))
}
