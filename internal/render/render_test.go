package render

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/curlite/internal/domain"
)

func response(status int, contentType, body string) *domain.Response {
	return &domain.Response{
		StatusCode:  status,
		Header:      http.Header{"Content-Type": []string{contentType}},
		ContentType: contentType,
		Body:        []byte(body),
	}
}

func TestRender_JSONSortedKeys(t *testing.T) {
	var out bytes.Buffer
	mode, err := New(false).Render(&out, response(http.StatusOK, "application/json", `{"b":1,"a":2}`))
	require.NoError(t, err)

	assert.Equal(t, ModeJSON, mode)
	assert.Equal(t, "{\n  \"a\": 2,\n  \"b\": 1\n}\n", out.String())
}

func TestRender_JSONNestedSortedKeys(t *testing.T) {
	body := `{"z":{"y":1,"x":[{"d":true,"c":null}]},"m":"v","a":1.50}`
	var out bytes.Buffer
	_, err := New(false).Render(&out, response(http.StatusOK, "application/json; charset=utf-8", body))
	require.NoError(t, err)

	want := `{
  "a": 1.50,
  "m": "v",
  "z": {
    "x": [
      {
        "c": null,
        "d": true
      }
    ],
    "y": 1
  }
}
`
	assert.Equal(t, want, out.String())
}

func TestRender_UndeclaredJSONObject(t *testing.T) {
	var out bytes.Buffer
	mode, err := New(false).Render(&out, response(http.StatusCreated, "text/html", `{"userId":"1","title":"Hello World","id":101}`))
	require.NoError(t, err)

	assert.Equal(t, ModeJSON, mode)
	assert.Equal(t, "{\n  \"id\": 101,\n  \"title\": \"Hello World\",\n  \"userId\": \"1\"\n}\n", out.String())
}

func TestRender_Text(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		body        string
	}{
		{"html", "text/html", "<html>\n<body>\n<h1>\nHello, World!\n</h1>\n</body>\n</html>\n"},
		{"no trailing newline", "text/plain", "plain"},
		{"bare number stays text", "text/plain", "42"},
		{"broken json-looking text", "text/plain", "{not json"},
		{"no content type", "", "[1, 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			mode, err := New(false).Render(&out, response(http.StatusOK, tt.contentType, tt.body))
			require.NoError(t, err)
			assert.Equal(t, ModeText, mode)
			assert.Equal(t, tt.body, out.String())
		})
	}
}

func TestRender_EmptyBody(t *testing.T) {
	var out bytes.Buffer
	mode, err := New(false).Render(&out, response(http.StatusNoContent, "application/json", ""))
	require.NoError(t, err)
	assert.Equal(t, ModeEmpty, mode)
	assert.Zero(t, out.Len())
}

func TestRender_HTTPError(t *testing.T) {
	tests := []struct {
		status int
		body   string
	}{
		{http.StatusNotFound, "<html>not found</html>"},
		{http.StatusNotFound, `{"valid":"json"}`},
		{http.StatusInternalServerError, ""},
		{http.StatusMovedPermanently, "moved"},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		_, err := New(false).Render(&out, response(tt.status, "application/json", tt.body))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrHTTP)

		var de *domain.Error
		require.True(t, errors.As(err, &de))
		assert.Equal(t, tt.status, de.Status)
		assert.Equal(t, tt.body, de.Snippet)
		assert.Zero(t, out.Len(), "nothing is written to stdout on HTTP errors")
	}
}

func TestRender_HTTPErrorMessage(t *testing.T) {
	_, err := New(false).Render(&bytes.Buffer{}, response(http.StatusNotFound, "text/html", "gone"))
	require.Error(t, err)
	assert.Equal(t, "Request failed with status code: 404", err.Error())
}

func TestRender_MalformedDeclaredJSON(t *testing.T) {
	var out bytes.Buffer
	_, err := New(false).Render(&out, response(http.StatusOK, "application/problem+json", `{"a":`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedJSONResponse)
	assert.True(t, strings.HasPrefix(err.Error(), "Invalid JSON in response body: "))
	assert.Zero(t, out.Len())
}

func TestRender_Color(t *testing.T) {
	var out bytes.Buffer
	_, err := New(true).Render(&out, response(http.StatusOK, "application/json", `{"a":1}`))
	require.NoError(t, err)
	assert.Contains(t, out.String(), "\x1b[")
}

func TestIsJSONContentType(t *testing.T) {
	tests := []struct {
		ct   string
		want bool
	}{
		{"application/json", true},
		{"Application/JSON; charset=utf-8", true},
		{"application/vnd.api+json", true},
		{"application/problem+json; charset=utf-8", true},
		{"text/json-ish", false},
		{"text/plain", false},
		{"", false},
		{"application/json;;", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsJSONContentType(tt.ct), tt.ct)
	}
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "trimmed", Snippet([]byte("  trimmed\n")))

	long := strings.Repeat("x", SnippetLimit+10)
	got := Snippet([]byte(long))
	assert.Equal(t, SnippetLimit+3, len(got))
	assert.True(t, strings.HasSuffix(got, "..."))
}
