// package testing contains shared testing utilities
package testing

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/gamedex/internal/igdb"
)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// ScriptedRoundTripper returns a sequence of responses, one per
// request, repeating the last one once the script runs out.
type ScriptedRoundTripper struct {
	responses []*http.Response
	calls     int
}

func NewScriptedRoundTripper(responses ...*http.Response) *ScriptedRoundTripper {
	return &ScriptedRoundTripper{responses: responses}
}

func (s *ScriptedRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	i := s.calls
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	s.calls++
	return s.responses[i], nil
}

// Calls reports how many requests the scripted transport has served.
func (s *ScriptedRoundTripper) Calls() int {
	return s.calls
}

// NewJSONResponse builds an [http.Response] with a JSON body for use
// with the round tripper doubles.
func NewJSONResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(body))),
	}
}

// StubCatalog is a function-field test double for the remote catalog.
// Nil fields yield empty results.
type StubCatalog struct {
	SearchPlatformsFunc func(ctx context.Context, term string) ([]igdb.RemotePlatform, error)
	PlatformFamilyFunc  func(ctx context.Context, id int) (*igdb.RemoteFamily, error)
	PlatformTypeFunc    func(ctx context.Context, id int) (*igdb.RemoteType, error)
	PlatformLogoFunc    func(ctx context.Context, id int) (*igdb.RemoteLogo, error)
}

func (s *StubCatalog) SearchPlatforms(ctx context.Context, term string) ([]igdb.RemotePlatform, error) {
	if s.SearchPlatformsFunc == nil {
		return nil, nil
	}
	return s.SearchPlatformsFunc(ctx, term)
}

func (s *StubCatalog) PlatformFamily(ctx context.Context, id int) (*igdb.RemoteFamily, error) {
	if s.PlatformFamilyFunc == nil {
		return nil, nil
	}
	return s.PlatformFamilyFunc(ctx, id)
}

func (s *StubCatalog) PlatformType(ctx context.Context, id int) (*igdb.RemoteType, error) {
	if s.PlatformTypeFunc == nil {
		return nil, nil
	}
	return s.PlatformTypeFunc(ctx, id)
}

func (s *StubCatalog) PlatformLogo(ctx context.Context, id int) (*igdb.RemoteLogo, error) {
	if s.PlatformLogoFunc == nil {
		return nil, nil
	}
	return s.PlatformLogoFunc(ctx, id)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
