package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x0BSoD/errorWatcher/internal/format"
	"github.com/0x0BSoD/errorWatcher/internal/model"
	"github.com/0x0BSoD/errorWatcher/internal/notifier"
	"github.com/0x0BSoD/errorWatcher/internal/stats"
)

type fakeDispatcher struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeDispatcher) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type panicDispatcher struct{}

func (panicDispatcher) Dispatch(context.Context, string) error {
	panic("transport exploded")
}

func newTestServer(t *testing.T, dispatcher notifier.Dispatcher) *httptest.Server {
	t.Helper()

	handler := NewHandler(
		format.New(model.DefaultPlatformLabels()),
		dispatcher,
		stats.New(),
		"error-logger-bot",
	)

	srv := httptest.NewServer(NewRouter(handler))
	t.Cleanup(srv.Close)

	return srv
}

func postReport(t *testing.T, srv *httptest.Server, body string) (*http.Response, apiResponse) {
	t.Helper()

	resp, err := http.Post(srv.URL+"/api/log-error", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	return resp, decoded
}

func TestLogError_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "no platform", body: `{"errorMessage":"boom"}`},
		{name: "no errorMessage", body: `{"platform":"web"}`},
		{name: "blank platform", body: `{"platform":"  ","errorMessage":"boom"}`},
		{name: "empty body", body: `{}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dispatcher := &fakeDispatcher{}
			srv := newTestServer(t, dispatcher)

			resp, decoded := postReport(t, srv, tc.body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.False(t, decoded.Success)
			assert.Equal(t, "required fields: platform, errorMessage", decoded.Error)
			assert.Zero(t, dispatcher.sentCount(), "validation failure must not dispatch")
		})
	}
}

func TestLogError_InvalidJSON(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	srv := newTestServer(t, dispatcher)

	resp, decoded := postReport(t, srv, `{not json`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, decoded.Success)
	assert.Zero(t, dispatcher.sentCount())
}

func TestLogError_MinimalValidReport(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	srv := newTestServer(t, dispatcher)

	resp, decoded := postReport(t, srv,
		`{"platform":"web-site","errorMessage":"TypeError: x is undefined"}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decoded.Success)
	assert.Equal(t, "error recorded", decoded.Message)

	require.Equal(t, 1, dispatcher.sentCount())
	sent := dispatcher.sent[0]
	assert.Contains(t, sent, "Unknown Platform", "unknown identifier maps to fallback label")
	assert.Contains(t, sent, "not specified")
	assert.Contains(t, sent, "unknown", "device and OS default to unknown without user agent")
	assert.Contains(t, sent, "TypeError")
	assert.Contains(t, sent, "Runtime Error", "error type defaults")
}

func TestLogError_ResolvesDeviceInfo(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	srv := newTestServer(t, dispatcher)

	resp, _ := postReport(t, srv, `{
		"platform": "web",
		"errorMessage": "boom",
		"userAgent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 1, dispatcher.sentCount())
	assert.Contains(t, dispatcher.sent[0], "Chrome")
	assert.Contains(t, dispatcher.sent[0], "Windows")
}

func TestLogError_DispatchFailure(t *testing.T) {
	dispatcher := &fakeDispatcher{err: errors.New("telegram is down")}
	srv := newTestServer(t, dispatcher)

	resp, decoded := postReport(t, srv, `{"platform":"web","errorMessage":"boom"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, decoded.Success)
	assert.Equal(t, "failed to dispatch error", decoded.Error)
	assert.NotContains(t, decoded.Error, "telegram is down", "transport detail must not leak")
}

func TestLogError_DispatchFailureLoggedOnce(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	dispatcher := &fakeDispatcher{err: errors.New("telegram is down")}
	srv := newTestServer(t, dispatcher)

	resp, _ := postReport(t, srv, `{"platform":"web","errorMessage":"boom"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, 1, strings.Count(buf.String(), "telegram is down"),
		"dispatch failure is logged at one boundary only")
}

func TestLogError_PanicBecomesGeneric500(t *testing.T) {
	srv := newTestServer(t, panicDispatcher{})

	resp, decoded := postReport(t, srv, `{"platform":"web","errorMessage":"boom"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, decoded.Success)
	assert.Equal(t, "internal server error", decoded.Error)
	assert.NotContains(t, decoded.Error, "exploded")
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, &fakeDispatcher{err: errors.New("dispatcher is broken")})

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var decoded healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.Equal(t, "OK", decoded.Status)
	assert.Equal(t, "error-logger-bot", decoded.Service)
	assert.NotEmpty(t, decoded.Timestamp)
}
