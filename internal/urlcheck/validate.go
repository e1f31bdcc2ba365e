// Package urlcheck validates user-supplied URLs before a request is built.
//
// Validation runs in two phases. The pre-parse phase inspects the raw string
// for malformed IP literals and ports, because net/url accepts some of them
// (for example "255.255.255.256" is a perfectly good reg-name to it). The
// post-parse phase hands the string to net/url and checks the scheme.
// Checks run in a fixed order and the first defect wins:
// IPv6, IPv4, port, protocol, host.
package urlcheck

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/bft-labs/curlite/internal/domain"
)

const maxPort = 65535

// Validate checks raw and returns it as a domain.ValidatedURL.
// Errors are *domain.Error values of kind InvalidIPv6, InvalidIPv4,
// InvalidPort, InvalidProtocol or InvalidHost.
func Validate(raw string) (domain.ValidatedURL, error) {
	if err := preParse(raw); err != nil {
		return domain.ValidatedURL{}, err
	}

	u, err := url.Parse(raw)
	if err != nil {
		return domain.ValidatedURL{}, domain.NewError(domain.KindInvalidProtocol, "", err)
	}
	switch u.Scheme {
	case "http", "https":
	default:
		return domain.ValidatedURL{}, domain.NewError(domain.KindInvalidProtocol, u.Scheme, nil)
	}
	if u.Hostname() == "" {
		return domain.ValidatedURL{}, domain.NewError(domain.KindInvalidHost, "", nil)
	}

	return domain.NewValidatedURL(u), nil
}

// preParse runs the string-level checks. Inputs without "://" are left to
// the protocol check.
func preParse(raw string) error {
	authority, ok := authorityOf(raw)
	if !ok {
		return nil
	}

	host, port, bracketed := splitHostPort(authority)

	if bracketed {
		if !validIPv6(host) {
			return domain.NewError(domain.KindInvalidIPv6, host, nil)
		}
	} else if !validIPv4(host) {
		return domain.NewError(domain.KindInvalidIPv4, host, nil)
	}

	if port != "" && !validPort(port) {
		return domain.NewError(domain.KindInvalidPort, port, nil)
	}
	return nil
}

// authorityOf returns the text between "://" and the start of the path,
// query or fragment, without userinfo.
func authorityOf(raw string) (string, bool) {
	_, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return "", false
	}
	if i := strings.IndexAny(rest, "/?#"); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.LastIndex(rest, "@"); i >= 0 {
		rest = rest[i+1:]
	}
	return rest, true
}

// splitHostPort separates host and port heuristically. For "[...]" hosts the
// returned host is the text between the brackets and bracketed is true.
func splitHostPort(authority string) (host, port string, bracketed bool) {
	if strings.HasPrefix(authority, "[") {
		if end := strings.Index(authority, "]"); end >= 0 {
			host = authority[1:end]
			after := authority[end+1:]
			if strings.HasPrefix(after, ":") {
				port = after[1:]
			}
			return host, port, true
		}
	}
	host, port, _ = strings.Cut(authority, ":")
	return host, port, false
}

// validIPv6 checks the textual form of an IPv6 literal: 1-4 hex digits per
// group, at most one "::", 8 groups in total (fewer with "::"). A trailing
// dotted-quad counts as two groups.
func validIPv6(s string) bool {
	if s == "" {
		return false
	}
	compressed := strings.Count(s, "::")
	if compressed > 1 {
		return false
	}

	groups := strings.Split(s, ":")
	if compressed == 1 {
		// "::" yields one empty group, or two when at either end, or three for "::" alone.
		i := strings.Index(s, "::")
		switch {
		case s == "::":
			return true
		case i == 0:
			groups = groups[2:]
		case i == len(s)-2:
			groups = groups[:len(groups)-2]
		default:
			groups = append(groups[:indexOfEmpty(groups)], groups[indexOfEmpty(groups)+1:]...)
		}
	}

	count := 0
	for i, g := range groups {
		if i == len(groups)-1 && strings.Contains(g, ".") {
			if !isDottedQuad(g) {
				return false
			}
			count += 2
			continue
		}
		if !isHexGroup(g) {
			return false
		}
		count++
	}

	if compressed == 1 {
		return count <= 7
	}
	return count == 8
}

func indexOfEmpty(groups []string) int {
	for i, g := range groups {
		if g == "" {
			return i
		}
	}
	return len(groups)
}

func isHexGroup(g string) bool {
	if g == "" || len(g) > 4 {
		return false
	}
	for i := 0; i < len(g); i++ {
		c := g[i]
		if !('0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F') {
			return false
		}
	}
	return true
}

// validIPv4 returns false only for hosts made of four all-digit groups where
// some group exceeds 255. Anything else is a name and is not judged here.
func validIPv4(host string) bool {
	octets := strings.Split(host, ".")
	if len(octets) != 4 {
		return true
	}
	for _, o := range octets {
		if !isDigits(o) {
			return true
		}
	}
	for _, o := range octets {
		if !octetInRange(o) {
			return false
		}
	}
	return true
}

func isDottedQuad(s string) bool {
	octets := strings.Split(s, ".")
	if len(octets) != 4 {
		return false
	}
	for _, o := range octets {
		if !isDigits(o) || !octetInRange(o) {
			return false
		}
	}
	return true
}

func octetInRange(o string) bool {
	n, err := strconv.ParseUint(o, 10, 32)
	return err == nil && n <= 255
}

func validPort(p string) bool {
	if !isDigits(p) {
		return false
	}
	n, err := strconv.ParseUint(p, 10, 32)
	return err == nil && n <= maxPort
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
