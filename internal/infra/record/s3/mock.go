package s3

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const noSuchKeyBody = `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`

// NewMockForTests returns a *Store backed by an in-memory fake HTTP transport
// handling GetObject and PutObject. The second result exposes the stored
// objects keyed by object key.
func NewMockForTests() (*Store, *MockObjects) {
	objects := &MockObjects{data: make(map[string][]byte)}
	cfg, _ := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(defaultRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: &mockRoundTripper{objects: objects}}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		o.RetryMaxAttempts = 1
	})
	return newWithClient(client, "mock-bucket", ""), objects
}

// MockObjects is the object map behind a mock store.
type MockObjects struct {
	mu   sync.Mutex
	data map[string][]byte
	// Fail makes every request answer 500 when set.
	Fail bool
}

// Get returns the raw object body for key.
func (m *MockObjects) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	return b, ok
}

// Put stores a raw object body for key.
func (m *MockObjects) Put(key string, body []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), body...)
}

// SetFail toggles server-side failures.
func (m *MockObjects) SetFail(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fail = fail
}

type mockRoundTripper struct{ objects *MockObjects }

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	m.objects.mu.Lock()
	fail := m.objects.Fail
	m.objects.mu.Unlock()
	if fail {
		return respond(http.StatusInternalServerError, nil), nil
	}
	switch req.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if strings.Contains(req.Header.Get("Content-Encoding"), "aws-chunked") {
			if dec, ok := decodeChunked(body); ok {
				body = dec
			}
		}
		m.objects.Put(key, body)
		resp := respond(http.StatusOK, nil)
		resp.Header.Set("ETag", "\"etag\"")
		return resp, nil
	case http.MethodGet:
		body, ok := m.objects.Get(key)
		if !ok {
			resp := respond(http.StatusNotFound, []byte(noSuchKeyBody))
			resp.Header.Set("Content-Type", "application/xml")
			return resp, nil
		}
		resp := respond(http.StatusOK, body)
		resp.Header.Set("Content-Length", strconv.Itoa(len(body)))
		resp.Header.Set("Content-Type", contentType)
		return resp, nil
	}
	return respond(http.StatusNotImplemented, nil), nil
}

func respond(status int, body []byte) *http.Response {
	return &http.Response{
		StatusCode:    status,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Header:        http.Header{},
	}
}

// decodeChunked reads an aws-chunked payload: <hex>\r\n<bytes>\r\n ... 0\r\n[trailers].
func decodeChunked(b []byte) ([]byte, bool) {
	var out []byte
	for {
		idx := bytes.Index(b, []byte("\r\n"))
		if idx < 0 {
			return nil, false
		}
		header := string(b[:idx])
		if semi := strings.IndexByte(header, ';'); semi >= 0 {
			header = header[:semi]
		}
		size, err := strconv.ParseInt(header, 16, 64)
		if err != nil {
			return nil, false
		}
		b = b[idx+2:]
		if size == 0 {
			return out, true
		}
		if int64(len(b)) < size {
			return nil, false
		}
		out = append(out, b[:size]...)
		b = bytes.TrimPrefix(b[size:], []byte("\r\n"))
	}
}
