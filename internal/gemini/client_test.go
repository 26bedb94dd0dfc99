package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClientWithConfig(Config{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "gemini-test",
		Timeout: 5 * time.Second,
	})
	t.Cleanup(c.httpClient.CloseIdleConnections)
	return c, srv
}

func successBody(text string) string {
	resp := GeminiResponse{
		Candidates: []GeminiCandidate{
			{Content: GeminiContent{Parts: []GeminiPart{{Text: text}}}},
		},
	}
	data, _ := json.Marshal(resp)
	return string(data)
}

func TestGenerateSuccess(t *testing.T) {
	var gotPath, gotKey, gotContentType string
	var gotBody GeminiRequest

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		gotContentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(successBody("Hello")))
	})

	text, err := c.Generate(context.Background(), "Summarize this.")
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)

	assert.Equal(t, "/models/gemini-test:generateContent", gotPath)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, "application/json", gotContentType)
	require.Len(t, gotBody.Contents, 1)
	assert.Equal(t, "user", gotBody.Contents[0].Role)
	require.Len(t, gotBody.Contents[0].Parts, 1)
	assert.Equal(t, "Summarize this.", gotBody.Contents[0].Parts[0].Text)
}

func TestGenerateMissingKeyDoesNotCallEndpoint(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	for _, key := range []string{"", "   ", "\t\n"} {
		c := NewClientWithConfig(Config{APIKey: key, BaseURL: srv.URL})
		_, err := c.Generate(context.Background(), "anything")
		assert.ErrorIs(t, err, ErrMissingCredential)
	}
	assert.Zero(t, calls.Load(), "no request should have been issued")
}

func TestGenerateUpstreamError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","status":"RESOURCE_EXHAUSTED"}}`))
	})

	_, err := c.Generate(context.Background(), "prompt")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.Contains(t, upstream.Message, "quota exceeded")
	assert.NotErrorIs(t, err, ErrEmptyGeneration)
}

func TestGenerateUpstreamErrorUnparseableBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("<html>gateway timeout</html>"))
	})

	_, err := c.Generate(context.Background(), "prompt")
	var upstream *UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, http.StatusInternalServerError, upstream.StatusCode)
	assert.Equal(t, "An unknown error occurred.", upstream.Message)
}

func TestGenerateEmptyGeneration(t *testing.T) {
	bodies := []string{
		`{"candidates":[]}`,
		`{"candidates":[{"content":{"parts":[]}}]}`,
		`{"candidates":[{"content":{"parts":[{"text":""}]}}]}`,
		`{}`,
		`not json at all`,
	}
	for _, body := range bodies {
		body := body
		t.Run(body, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			})
			_, err := c.Generate(context.Background(), "prompt")
			assert.ErrorIs(t, err, ErrEmptyGeneration)
			var upstream *UpstreamError
			assert.False(t, errors.As(err, &upstream), "must be distinct from an upstream error")
		})
	}
}

func TestGenerateTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewClientWithConfig(Config{APIKey: "test-key", BaseURL: url, Timeout: 2 * time.Second})
	_, err := c.Generate(context.Background(), "prompt")
	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Error(t, transport.Unwrap())
}

func TestGenerateOnlyFirstCandidateIsRead(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[
			{"content":{"parts":[{"text":"first"},{"text":"second part"}]}},
			{"content":{"parts":[{"text":"other candidate"}]}}
		]}`))
	})

	text, err := c.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "first", text)
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("k")
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultModel, c.model)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
}

func TestRedactKey(t *testing.T) {
	in := "https://example.com/v1beta/models/m:generateContent?key=AIzaSecret123"
	out := RedactKey(in)
	assert.NotContains(t, out, "AIzaSecret123")
	assert.Contains(t, out, "key=[REDACTED_KEY]")

	// Later query parameters survive.
	in = "https://example.com/x?key=abc&alt=json"
	assert.Equal(t, "https://example.com/x?key=[REDACTED_KEY]&alt=json", RedactKey(in))
}
