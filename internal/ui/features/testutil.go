// Package features provides shared test utilities for API feature tests.
package features

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/boolstep/internal/presets"
	"github.com/leapstack-labs/boolstep/internal/testutil"
	"github.com/leapstack-labs/boolstep/internal/ui/notifier"
)

// TestSessionSecret signs cookies in tests.
const TestSessionSecret = "test-session-secret-0123456789abcdef"

// TestFixture holds all dependencies needed for API handler tests.
type TestFixture struct {
	Source       *presets.Source
	Notifier     *notifier.Notifier
	SessionStore *sessions.CookieStore
	Logger       *slog.Logger
	Router       chi.Router

	t       *testing.T
	cookies map[string]*http.Cookie
}

// SetupTestFixture creates a fixture over the built-in catalogue with an
// empty router. Features mount their routes on Router.
func SetupTestFixture(t *testing.T) *TestFixture {
	t.Helper()

	source, err := presets.NewSource("")
	require.NoError(t, err)

	store := sessions.NewCookieStore([]byte(TestSessionSecret))
	store.Options.Path = "/"

	return &TestFixture{
		Source:       source,
		Notifier:     notifier.New(),
		SessionStore: store,
		Logger:       testutil.NewTestLogger(t),
		Router:       chi.NewRouter(),
		t:            t,
		cookies:      make(map[string]*http.Cookie),
	}
}

// Do sends a request through Router. A non-nil body is encoded as JSON;
// a string body is sent verbatim. Cookies set by earlier responses are
// sent back, like a browser would.
func (f *TestFixture) Do(method, path string, body any) *httptest.ResponseRecorder {
	f.t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(f.t, err)
		r = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, r)
	if r != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range f.cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	f.Router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		f.cookies[c.Name] = c
	}
	return rec
}

// ClearCookies forgets every cookie, starting a new browser session.
func (f *TestFixture) ClearCookies() {
	f.cookies = make(map[string]*http.Cookie)
}

// Cookies returns the cookies the fixture would send.
func (f *TestFixture) Cookies() []*http.Cookie {
	out := make([]*http.Cookie, 0, len(f.cookies))
	for _, c := range f.cookies {
		out = append(out, c)
	}
	return out
}

// SetCookie adds c to the cookies sent with later requests.
func (f *TestFixture) SetCookie(c *http.Cookie) {
	f.cookies[c.Name] = c
}

// DecodeJSON decodes the response body into a T.
func DecodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}
