package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body>hello</body></html>"))
	}))
	defer srv.Close()

	res, err := URL(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.HTML, "hello")
}

func TestURL_NonOKStatusKeepsCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	res, err := URL(context.Background(), srv.URL, nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	var fe *Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusForbidden, fe.StatusCode)
}

func TestURL_InvalidURL(t *testing.T) {
	_, err := URL(context.Background(), "not-a-url", nil)
	assert.Error(t, err)
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Backend Engineer",
		ExtractTitle(`<html><head><title>Acme Careers</title></head><body><h1> Backend Engineer </h1></body></html>`))
	assert.Equal(t, "Acme Careers",
		ExtractTitle(`<html><head><title>Acme Careers</title></head><body><p>no heading</p></body></html>`))
	assert.Equal(t, "", ExtractTitle(`<html><body></body></html>`))
}

func TestExtractText_StripsNoise(t *testing.T) {
	html := `<html><body>
		<script>var x = 1;</script>
		<p>Build distributed systems in Bangalore.</p>
		<style>p { color: red }</style>
	</body></html>`

	text, err := ExtractText(html)
	require.NoError(t, err)
	assert.Contains(t, text, "Build distributed systems in Bangalore.")
	assert.NotContains(t, text, "var x = 1")
	assert.NotContains(t, text, "color: red")
}

func TestExtractLinks(t *testing.T) {
	html := `<html><body>
		<a href="/careers/backend">Backend</a>
		<a href="https://boards.greenhouse.io/acme/jobs/1">Greenhouse</a>
		<a href="/careers/backend">Duplicate</a>
		<a href="mailto:jobs@acme.dev">Mail</a>
		<a href="#section">Anchor</a>
	</body></html>`

	links, err := ExtractLinks(html, "https://acme.dev")
	require.NoError(t, err)
	assert.Contains(t, links, "https://acme.dev/careers/backend")
	assert.Contains(t, links, "https://boards.greenhouse.io/acme/jobs/1")
	assert.Len(t, links, 3) // backend, greenhouse, and the bare anchor base
}

func TestExtractLinks_BadBase(t *testing.T) {
	_, err := ExtractLinks("<a href='/x'>x</a>", "no-scheme")
	assert.Error(t, err)
}
