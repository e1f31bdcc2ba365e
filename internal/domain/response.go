package domain

import "net/http"

// Response is a completed HTTP exchange. A non-2xx status is still a Response.
type Response struct {
	StatusCode  int
	Status      string
	Header      http.Header
	ContentType string
	Body        []byte
}

// Success reports whether the status code is in the 2xx range.
func (r *Response) Success() bool {
	return r.StatusCode/100 == 2
}
