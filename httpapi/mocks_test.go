package httpapi

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/benjamonnguyen/todo/charmlog"
)

// MockDoer records requests and answers with DoFunc.
type MockDoer struct {
	mu        sync.Mutex
	DoFunc    func(req *http.Request) (*http.Response, error)
	CallCount int
	Requests  []*http.Request
	Bodies    []string
	HasBody   []bool
}

func (m *MockDoer) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.CallCount++
	m.Requests = append(m.Requests, req)
	if req.Body != nil && req.Body != http.NoBody {
		b, _ := io.ReadAll(req.Body)
		m.Bodies = append(m.Bodies, string(b))
		m.HasBody = append(m.HasBody, true)
	} else {
		m.Bodies = append(m.Bodies, "")
		m.HasBody = append(m.HasBody, false)
	}
	m.mu.Unlock()

	if m.DoFunc != nil {
		return m.DoFunc(req)
	}
	return jsonResponse(http.StatusOK, "{}"), nil
}

func (m *MockDoer) LastRequest() *http.Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return nil
	}
	return m.Requests[len(m.Requests)-1]
}

func respondWith(code int, body string) func(*http.Request) (*http.Response, error) {
	return func(*http.Request) (*http.Response, error) {
		return jsonResponse(code, body), nil
	}
}

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Status:     fmt.Sprintf("%d %s", code, http.StatusText(code)),
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

// trackingBody counts reads so tests can assert a body was never parsed.
type trackingBody struct {
	io.Reader
	reads int
}

func (b *trackingBody) Read(p []byte) (int, error) {
	b.reads++
	return b.Reader.Read(p)
}

func (b *trackingBody) Close() error {
	return nil
}

func makeToken(payload string) string {
	return "h." + base64.RawURLEncoding.EncodeToString([]byte(payload)) + ".s"
}

func newTestClient(doer *MockDoer) *Client {
	return NewClient("http://api.test", WithHTTPClient(doer), WithLogger(charmlog.Discard()))
}

// newAuthedClient returns a client whose token resolves to user 42.
func newAuthedClient(doer *MockDoer) *Client {
	c := newTestClient(doer)
	if err := c.SetToken(makeToken(`{"sub":"42"}`)); err != nil {
		panic(err)
	}
	return c
}

const taskJSON = `{"id":7,"user_id":42,"title":"write tests","description":null,"status":"completed",
	"priority":"high","tags":["work"],"due_date":null,
	"created_at":"2024-05-01T09:00:00","updated_at":"2024-05-02T09:00:00"}`
