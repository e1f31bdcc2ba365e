package domain

import "net/url"

// ValidatedURL is a URL known to have an http or https scheme, a well-formed
// host and a port no larger than 65535.
//
// The zero value is not valid. Values are produced by urlcheck.Validate.
type ValidatedURL struct {
	u *url.URL
}

// NewValidatedURL wraps a parsed URL that already passed validation.
// It is meant for the validator only; other callers should go through it.
func NewValidatedURL(u *url.URL) ValidatedURL {
	return ValidatedURL{u: u}
}

// URL returns a copy of the underlying parsed URL.
func (v ValidatedURL) URL() *url.URL {
	if v.u == nil {
		return nil
	}
	c := *v.u
	return &c
}

// Scheme returns the URL scheme ("http" or "https").
func (v ValidatedURL) Scheme() string {
	if v.u == nil {
		return ""
	}
	return v.u.Scheme
}

// Host returns the host including any port.
func (v ValidatedURL) Host() string {
	if v.u == nil {
		return ""
	}
	return v.u.Host
}

// String returns the absolute URL.
func (v ValidatedURL) String() string {
	if v.u == nil {
		return ""
	}
	return v.u.String()
}

// IsZero reports whether v was never set.
func (v ValidatedURL) IsZero() bool {
	return v.u == nil
}
