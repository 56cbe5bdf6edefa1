package provider

import (
	"net/url"
	"strconv"
	"strings"

	"inventory/internal/models"
)

// Code identifies which address shape a resource matched.
type Code int

const (
	// NoMatch is reported for resources no pattern recognizes.
	NoMatch Code = -1
	// AllProducts is the collection address.
	AllProducts Code = 100
	// ProductByID is a single product address.
	ProductByID Code = 101
)

const (
	wildcardNumber = "#"
	wildcardText   = "*"
)

// Match is the outcome of matching a resource. ID is set for ProductByID.
type Match struct {
	Code Code
	ID   int64
}

type pattern struct {
	segments []string
	code     Code
}

// Matcher maps resource addresses to codes. Patterns are slash-separated
// segments where "#" matches a positive integer and "*" any single segment.
//
// Resources are either bare paths ("products/7") or content URIs whose host
// must equal the matcher's authority ("content://<authority>/products/7").
type Matcher struct {
	authority string
	patterns  []pattern
}

// NewMatcher creates an empty Matcher for authority.
func NewMatcher(authority string) *Matcher {
	return &Matcher{authority: authority}
}

// NewProductMatcher creates the Matcher for the products collection and its
// items.
func NewProductMatcher() *Matcher {
	m := NewMatcher(models.ContentAuthority)
	m.Add(models.PathProducts, AllProducts)
	m.Add(models.PathProducts+"/"+wildcardNumber, ProductByID)
	return m
}

// Add registers path under code. Earlier patterns win.
func (m *Matcher) Add(path string, code Code) {
	m.patterns = append(m.patterns, pattern{
		segments: strings.Split(strings.Trim(path, "/"), "/"),
		code:     code,
	})
}

// Match returns the code of the first pattern resource matches.
func (m *Matcher) Match(resource string) Match {
	segments, ok := m.segments(resource)
	if !ok {
		return Match{Code: NoMatch}
	}

	for _, p := range m.patterns {
		if id, ok := p.match(segments); ok {
			return Match{Code: p.code, ID: id}
		}
	}
	return Match{Code: NoMatch}
}

// segments extracts the path segments of resource, rejecting foreign
// authorities and empty segments.
func (m *Matcher) segments(resource string) ([]string, bool) {
	path := resource
	if strings.Contains(resource, "://") {
		u, err := url.Parse(resource)
		if err != nil || u.Scheme != models.ContentScheme || u.Host != m.authority {
			return nil, false
		}
		path = u.Path
	}

	path = strings.Trim(path, "/")
	if path == "" {
		return nil, false
	}
	segments := strings.Split(path, "/")
	for _, s := range segments {
		if s == "" {
			return nil, false
		}
	}
	return segments, true
}

func (p pattern) match(segments []string) (int64, bool) {
	if len(segments) != len(p.segments) {
		return 0, false
	}

	var id int64
	for i, want := range p.segments {
		got := segments[i]
		switch want {
		case wildcardNumber:
			n, ok := parseID(got)
			if !ok {
				return 0, false
			}
			id = n
		case wildcardText:
		default:
			if got != want {
				return 0, false
			}
		}
	}
	return id, true
}

// parseID accepts an unsigned decimal greater than zero.
func parseID(s string) (int64, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
