package httpapi

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/benjamonnguyen/todo"
)

// encodeListTasksParams renders the set fields of p in the fixed order
// status, priority, tag, limit, offset. Unset, empty and zero fields are
// omitted.
func encodeListTasksParams(p todo.ListTasksParams) string {
	var parts []string
	add := func(key, value string) {
		parts = append(parts, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}

	if p.Status != nil && *p.Status != "" {
		add("status", string(*p.Status))
	}
	if p.Priority != nil && *p.Priority != "" {
		add("priority", string(*p.Priority))
	}
	if p.Tag != nil && *p.Tag != "" {
		add("tag", *p.Tag)
	}
	if p.Limit != nil && *p.Limit != 0 {
		add("limit", strconv.Itoa(*p.Limit))
	}
	if p.Offset != nil && *p.Offset != 0 {
		add("offset", strconv.Itoa(*p.Offset))
	}

	return strings.Join(parts, "&")
}
