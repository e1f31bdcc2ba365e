// Package render classifies a completed response and writes its body.
package render

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/bft-labs/curlite/internal/domain"
)

// SnippetLimit caps the response body excerpt carried by an HTTP error.
const SnippetLimit = 512

// Mode is how a successful body was rendered.
type Mode int

const (
	ModeEmpty Mode = iota
	ModeJSON
	ModeText
)

// String returns a short name used in logs.
func (m Mode) String() string {
	switch m {
	case ModeEmpty:
		return "empty"
	case ModeJSON:
		return "json"
	case ModeText:
		return "text"
	default:
		return "unknown"
	}
}

var prettyOptions = &pretty.Options{
	Width:    0, // one array element per line
	Prefix:   "",
	Indent:   "  ",
	SortKeys: true,
}

// Renderer writes response bodies.
type Renderer struct {
	// Color enables ANSI colors for JSON output.
	Color bool
}

// New creates a Renderer.
func New(color bool) *Renderer {
	return &Renderer{Color: color}
}

// Render writes the body of a 2xx response to w. Non-2xx responses produce a
// KindHTTP error and nothing is written. A body declared as JSON that does not
// parse produces KindMalformedJSONResponse.
func (r *Renderer) Render(w io.Writer, resp *domain.Response) (Mode, error) {
	if !resp.Success() {
		return ModeEmpty, &domain.Error{
			Kind:    domain.KindHTTP,
			Status:  resp.StatusCode,
			Snippet: Snippet(resp.Body),
		}
	}

	if len(resp.Body) == 0 {
		return ModeEmpty, nil
	}

	declared := IsJSONContentType(resp.ContentType)
	if declared && !gjson.ValidBytes(resp.Body) {
		detail := decodeError(resp.Body)
		return ModeEmpty, domain.NewError(domain.KindMalformedJSONResponse, detail, nil)
	}

	if declared || looksLikeJSON(resp.Body) {
		if _, err := w.Write(r.FormatJSON(resp.Body)); err != nil {
			return ModeJSON, err
		}
		return ModeJSON, nil
	}

	if _, err := w.Write(resp.Body); err != nil {
		return ModeText, err
	}
	return ModeText, nil
}

// FormatJSON pretty-prints valid JSON with object keys sorted at every level.
func (r *Renderer) FormatJSON(body []byte) []byte {
	out := pretty.PrettyOptions(body, prettyOptions)
	if r.Color {
		out = pretty.Color(out, nil)
	}
	return out
}

// IsJSONContentType reports whether ct is application/json or a +json type.
func IsJSONContentType(ct string) bool {
	if ct == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.Split(ct, ";")[0]))
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

// looksLikeJSON accepts undeclared bodies only when they are a JSON object
// or array. Bare scalars stay text.
func looksLikeJSON(body []byte) bool {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || (trimmed[0] != '{' && trimmed[0] != '[') {
		return false
	}
	return gjson.ValidBytes(trimmed)
}

// decodeError returns the standard decoder's description of why body is not JSON.
func decodeError(body []byte) string {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return err.Error()
	}
	return "invalid JSON"
}

// Snippet returns the trimmed start of body, at most SnippetLimit bytes.
func Snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > SnippetLimit {
		s = s[:SnippetLimit] + "..."
	}
	return s
}
