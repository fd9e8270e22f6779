package utils

import (
	"net/http"
	"net/url"
	"strconv"
)

// Page is a limit/offset window requested through the query string.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage reads limit and offset from q. ok is false when no usable
// limit was given, in which case the caller returns the full list.
func ParsePage(q url.Values) (Page, bool) {
	limit := StringToInt(q.Get("limit"))
	if limit <= 0 {
		return Page{}, false
	}
	offset := StringToInt(q.Get("offset"))
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}, true
}

// NextURL returns the absolute URL of the following page, or nil on the last.
func (p Page) NextURL(r *http.Request, total int64) *string {
	if int64(p.Offset+p.Limit) >= total {
		return nil
	}
	return pageURL(r, p.Limit, p.Offset+p.Limit)
}

// PreviousURL returns the absolute URL of the preceding page, or nil on the first.
func (p Page) PreviousURL(r *http.Request) *string {
	if p.Offset <= 0 {
		return nil
	}
	offset := p.Offset - p.Limit
	if offset < 0 {
		offset = 0
	}
	return pageURL(r, p.Limit, offset)
}

// RequestOrigin is scheme://host of r, honoring X-Forwarded-Proto.
func RequestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

func pageURL(r *http.Request, limit, offset int) *string {
	q := r.URL.Query()
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	} else {
		q.Del("offset")
	}

	s := RequestOrigin(r) + r.URL.Path + "?" + q.Encode()
	return &s
}
