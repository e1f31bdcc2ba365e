package domain

import (
	"net/http"
	"net/url"
	"strings"
)

// Content types implied by the body kind.
const (
	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypeJSON = "application/json"
)

// BodyKind identifies the request body variant.
type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyForm
	BodyJSON
)

// String returns a short name used in logs.
func (k BodyKind) String() string {
	switch k {
	case BodyNone:
		return "none"
	case BodyForm:
		return "form"
	case BodyJSON:
		return "json"
	default:
		return "unknown"
	}
}

// FormPair is one key/value pair of a form body.
type FormPair struct {
	Key   string
	Value string
}

// Body is the request payload. Only the field matching Kind is used.
type Body struct {
	Kind BodyKind

	// Form holds the ordered pairs when Kind is BodyForm.
	Form []FormPair

	// JSON holds the raw, already checked JSON text when Kind is BodyJSON.
	JSON string
}

// ContentType returns the Content-Type implied by the body kind, or "" for no body.
func (b Body) ContentType() string {
	switch b.Kind {
	case BodyForm:
		return ContentTypeForm
	case BodyJSON:
		return ContentTypeJSON
	default:
		return ""
	}
}

// Bytes encodes the body for the wire. Form pairs keep their order.
func (b Body) Bytes() []byte {
	switch b.Kind {
	case BodyForm:
		parts := make([]string, 0, len(b.Form))
		for _, p := range b.Form {
			parts = append(parts, url.QueryEscape(p.Key)+"="+url.QueryEscape(p.Value))
		}
		return []byte(strings.Join(parts, "&"))
	case BodyJSON:
		return []byte(b.JSON)
	default:
		return nil
	}
}

// RequestSpec is a transport-ready request description.
// If Body.Kind is not BodyNone, Method is POST.
type RequestSpec struct {
	Method string
	URL    ValidatedURL
	Body   Body
	Header http.Header
}
