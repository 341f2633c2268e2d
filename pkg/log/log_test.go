package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/textdlg/pkg/log"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  slog.Level
		err   error
	}{
		"error":   {input: "error", want: slog.LevelError},
		"warn":    {input: "WARN", want: slog.LevelWarn},
		"warning": {input: "warning", want: slog.LevelWarn},
		"info":    {input: "info", want: slog.LevelInfo},
		"empty":   {input: "", want: slog.LevelInfo},
		"debug":   {input: " debug ", want: slog.LevelDebug},
		"unknown": {input: "trace", err: log.ErrUnknownLogLevel},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseLevel(tc.input)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  log.Format
		err   error
	}{
		"json":    {input: "json", want: log.FormatJSON},
		"logfmt":  {input: "LOGFMT", want: log.FormatLogfmt},
		"text":    {input: "text", want: log.FormatText},
		"empty":   {input: "", want: log.FormatText},
		"unknown": {input: "xml", err: log.ErrUnknownLogFormat},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := log.ParseFormat(tc.input)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewHandler(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		format   string
		contains string
	}{
		"json":   {format: "json", contains: `"msg":"hello"`},
		"logfmt": {format: "logfmt", contains: "msg=hello"},
		"text":   {format: "text", contains: "hello"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			h, err := log.NewHandler(&buf, "info", tc.format)
			require.NoError(t, err)

			logger := slog.New(h)
			logger.Debug("hidden")
			logger.Info("hello")

			assert.Contains(t, buf.String(), tc.contains)
			assert.NotContains(t, buf.String(), "hidden")
		})
	}
}

func TestNewHandlerInvalid(t *testing.T) {
	t.Parallel()

	_, err := log.NewHandler(&bytes.Buffer{}, "loud", "text")
	require.ErrorIs(t, err, log.ErrInvalidArgument)

	_, err = log.NewHandler(&bytes.Buffer{}, "info", "yaml")
	require.ErrorIs(t, err, log.ErrInvalidArgument)
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("stored logger", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.DiscardHandler)
		ctx := log.NewContext(t.Context(), logger)

		assert.Same(t, logger, log.FromContext(ctx))
	})

	t.Run("span", func(t *testing.T) {
		t.Parallel()

		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: trace.TraceID{0xde, 0xad, 0xbe, 0xef, 1},
			SpanID:  trace.SpanID{1},
		})
		ctx := trace.ContextWithSpanContext(context.Background(), sc)

		assert.NotSame(t, slog.Default(), log.FromContext(ctx))
	})

	t.Run("default", func(t *testing.T) {
		t.Parallel()

		assert.NotNil(t, log.FromContext(t.Context()))
	})
}
