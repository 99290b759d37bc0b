// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/boxtube/internal/services"
)

// MockCatalog is a test double for [services.Catalog]. Each func field
// defaults to returning an empty page when nil.
type MockCatalog struct {
	FetchFunc        func(ctx context.Context, resource string, params url.Values) (*services.Page, error)
	VideoDetailsFunc func(ctx context.Context, ids []string) (map[string]services.VideoDetail, error)
	Calls            []string
}

func (m *MockCatalog) Fetch(ctx context.Context, resource string, params url.Values) (*services.Page, error) {
	m.Calls = append(m.Calls, resource+"?"+params.Encode())
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, resource, params)
	}
	return &services.Page{}, nil
}

func (m *MockCatalog) Search(ctx context.Context, query services.SearchQuery) (*services.Page, error) {
	return m.Fetch(ctx, "search", query.Values(time.Now()))
}

func (m *MockCatalog) VideoDetails(ctx context.Context, ids []string) (map[string]services.VideoDetail, error) {
	m.Calls = append(m.Calls, "videos:details")
	if m.VideoDetailsFunc != nil {
		return m.VideoDetailsFunc(ctx, ids)
	}
	return map[string]services.VideoDetail{}, nil
}

func (m *MockCatalog) Videos(ctx context.Context, ids []string) (*services.Page, error) {
	params := url.Values{}
	params.Set("id", join(ids))
	return m.Fetch(ctx, "videos", params)
}

func (m *MockCatalog) Channels(ctx context.Context, ids []string) (*services.Page, error) {
	params := url.Values{}
	params.Set("id", join(ids))
	return m.Fetch(ctx, "channels", params)
}

func (m *MockCatalog) Name() string { return "mock" }

func join(ids []string) string {
	return strings.Join(ids, ",")
}

// MemKV is an in-memory [repositories.KV] for store tests. Optional
// fail flags simulate storage errors.
type MemKV struct {
	Data      map[string]string
	FailReads bool
	FailWrite bool
}

func NewMemKV() *MemKV {
	return &MemKV{Data: make(map[string]string)}
}

func (m *MemKV) Get(key string) (string, bool, error) {
	if m.FailReads {
		return "", false, errors.New("read failed")
	}
	value, ok := m.Data[key]
	return value, ok, nil
}

func (m *MemKV) Set(key, value string) error {
	if m.FailWrite {
		return errors.New("write failed")
	}
	m.Data[key] = value
	return nil
}

func (m *MemKV) Delete(key string) error {
	delete(m.Data, key)
	return nil
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

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
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

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
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
