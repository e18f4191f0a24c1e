package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_RoundTrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/echo", r.URL.Path)
		assert.Equal(t, "Bearer k", r.Header.Get("Authorization"))
		assert.Equal(t, "yes", r.Header.Get("X-Extra"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"got": in["name"]})
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL+"/", 0)
	require.NoError(t, err)
	c.Headers = map[string]string{"Authorization": "Bearer k"}

	var out struct {
		Got string `json:"got"`
	}
	err = c.DoJSON(context.Background(), http.MethodPost, "v1/echo", map[string]string{"X-Extra": "yes"}, map[string]string{"name": "ubs"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ubs", out.Got)
}

func TestDo_RawBodyAndHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		if r.Header.Get("Content-Type") != "application/pdf" {
			http.Error(w, "bad type", http.StatusUnsupportedMediaType)
			return
		}
		_, _ = w.Write(b)
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, 0)
	require.NoError(t, err)

	raw, err := c.Do(context.Background(), http.MethodPut, "/obj", nil, "application/pdf", strings.NewReader("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(raw))

	_, err = c.Do(context.Background(), http.MethodPut, "/obj", nil, "text/plain", strings.NewReader("x"))
	require.Error(t, err)
	assert.Equal(t, http.StatusUnsupportedMediaType, StatusOf(err))
	assert.Contains(t, err.Error(), "bad type")
}

func TestResolveURL(t *testing.T) {
	c := New(0)
	_, err := c.URL("/relative")
	assert.Error(t, err)

	u, err := c.URL("https://example.com/x")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/x", u)

	_, err = NewWithBaseURL("::not a url", 0)
	assert.Error(t, err)
}
