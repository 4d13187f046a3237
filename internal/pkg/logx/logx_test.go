package logx

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLog(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(data)
}

func TestNewWritesPerLevelFiles(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	logger, closer, err := New(Options{Level: "debug", Dir: dir, Console: &console})
	require.NoError(t, err)

	logger.Debug().Msg("debug-line")
	logger.Info().Msg("info-line")
	logger.Warn().Msg("warn-line")
	logger.Error().Err(errors.New("boom")).Msg("error-line")
	require.NoError(t, closer.Close())

	errorLog := readLog(t, dir, "error.log")
	assert.Contains(t, errorLog, "error-line")
	assert.NotContains(t, errorLog, "warn-line")

	warnLog := readLog(t, dir, "warn.log")
	assert.Contains(t, warnLog, "warn-line")
	assert.Contains(t, warnLog, "error-line")
	assert.NotContains(t, warnLog, "info-line")

	infoLog := readLog(t, dir, "info.log")
	assert.Contains(t, infoLog, "info-line")
	assert.NotContains(t, infoLog, "debug-line")

	debugLog := readLog(t, dir, "debug.log")
	for _, line := range []string{"debug-line", "info-line", "warn-line", "error-line"} {
		assert.Contains(t, debugLog, line)
	}

	assert.Contains(t, console.String(), "debug-line")
}

func TestNewRespectsLevel(t *testing.T) {
	var console bytes.Buffer

	logger, closer, err := New(Options{Level: "warn", Console: &console})
	require.NoError(t, err)
	defer closer.Close()

	logger.Info().Msg("quiet")
	logger.Warn().Msg("loud")

	assert.NotContains(t, console.String(), "quiet")
	assert.Contains(t, console.String(), "loud")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New(Options{Level: "verbose-ish"})
	assert.Error(t, err)
}

func TestAnonymizeIP(t *testing.T) {
	assert.Equal(t, "203.0.113.0", anonymizeIP("203.0.113.77:5555"))
	assert.Equal(t, "10.1.2.0", anonymizeIP("10.1.2.3"))
	assert.Equal(t, "192.0.2.0", anonymizeIP("::ffff:192.0.2.44"))
	assert.Equal(t, "127.0.0.1", anonymizeIP("127.0.0.1:80"))
	assert.Equal(t, "2001:db8:85a3:1::", anonymizeIP("[2001:db8:85a3:1:2:3:4:5]:443"))
	assert.Equal(t, "unknown_ip", anonymizeIP("not-an-ip"))
}

func TestRequestLoggerInjectsContextLogger(t *testing.T) {
	var console bytes.Buffer
	base := zerolog.New(&console)

	handler := RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside-handler")
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	out := console.String()
	assert.Contains(t, out, "inside-handler")
	assert.Contains(t, out, `"request_uri":"/health"`)
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestRequestLoggerMasksIPv4RemoteAddr(t *testing.T) {
	var console bytes.Buffer

	handler := RequestLogger(zerolog.New(&console))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
	req.RemoteAddr = "203.0.113.77:5555"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := console.String()
	assert.Contains(t, out, `"remote_ip":"203.0.113.0"`)
	assert.NotContains(t, out, "203.0.113.77")
}
