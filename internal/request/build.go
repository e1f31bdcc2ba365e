// Package request turns a validated URL and the user's body options into a
// domain.RequestSpec. It performs no I/O.
package request

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/bft-labs/curlite/internal/domain"
)

// Input carries the CLI intent for one request.
type Input struct {
	// Method is the -X value. Empty means GET.
	Method string

	// Form is the -d value, nil when not supplied.
	Form *string

	// JSON is the --json value, nil when not supplied.
	JSON *string

	// Headers are "Name: Value" lines, applied in order.
	Headers []string

	// UserAgent is set unless Headers already carry a User-Agent.
	UserAgent string
}

// Build derives the request from u and in.
//
//	--json  -d   -X        result
//	set     set  any       ConflictingBody
//	set     -    any       POST + JSON body
//	-       set  any       POST + form body
//	-       -    GET/POST  that method, no body
//	-       -    other     UnsupportedMethod
func Build(u domain.ValidatedURL, in Input) (domain.RequestSpec, error) {
	spec := domain.RequestSpec{URL: u}

	switch {
	case in.JSON != nil && in.Form != nil:
		return domain.RequestSpec{}, domain.NewError(domain.KindConflictingBody, "", nil)
	case in.JSON != nil:
		if err := checkJSON(*in.JSON); err != nil {
			return domain.RequestSpec{}, err
		}
		spec.Method = http.MethodPost
		spec.Body = domain.Body{Kind: domain.BodyJSON, JSON: *in.JSON}
	case in.Form != nil:
		spec.Method = http.MethodPost
		spec.Body = domain.Body{Kind: domain.BodyForm, Form: ParseForm(*in.Form)}
	default:
		m, err := normalizeMethod(in.Method)
		if err != nil {
			return domain.RequestSpec{}, err
		}
		spec.Method = m
	}

	header, err := buildHeader(in.Headers, in.UserAgent, spec.Body)
	if err != nil {
		return domain.RequestSpec{}, err
	}
	spec.Header = header

	return spec, nil
}

// ParseForm splits "k1=v1&k2=v2" into ordered pairs. Keys and values are
// percent-decoded when they decode cleanly so that already encoded input is
// not encoded twice. Empty tokens are skipped.
func ParseForm(s string) []domain.FormPair {
	var pairs []domain.FormPair
	for _, tok := range strings.Split(s, "&") {
		if tok == "" {
			continue
		}
		k, v, _ := strings.Cut(tok, "=")
		pairs = append(pairs, domain.FormPair{Key: unescape(k), Value: unescape(v)})
	}
	return pairs
}

func unescape(s string) string {
	if d, err := url.QueryUnescape(s); err == nil {
		return d
	}
	return s
}

func normalizeMethod(m string) (string, error) {
	switch strings.ToUpper(strings.TrimSpace(m)) {
	case "", http.MethodGet:
		return http.MethodGet, nil
	case http.MethodPost:
		return http.MethodPost, nil
	default:
		return "", domain.NewError(domain.KindUnsupportedMethod, m, nil)
	}
}

// checkJSON rejects malformed --json payloads with the decoder's message.
func checkJSON(s string) error {
	var raw json.RawMessage
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return domain.NewError(domain.KindMalformedJSONInput, err.Error(), err)
	}
	return nil
}

// buildHeader applies user headers, then the User-Agent default, then the
// body's Content-Type, which always wins.
func buildHeader(lines []string, userAgent string, body domain.Body) (http.Header, error) {
	h := make(http.Header)
	for _, line := range lines {
		name, value, ok := strings.Cut(line, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" || strings.ContainsAny(name, " \t\r\n") {
			return nil, domain.NewError(domain.KindInvalidHeader, line, nil)
		}
		h.Add(name, strings.TrimSpace(value))
	}
	if userAgent != "" && h.Get("User-Agent") == "" {
		h.Set("User-Agent", userAgent)
	}
	if ct := body.ContentType(); ct != "" {
		h.Set("Content-Type", ct)
	}
	return h, nil
}
