package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// UIDChoiceName is the attribute name the drill endpoint reports once the
// decision tree has narrowed down to data item UIDs.
const UIDChoiceName = "uid"

// Choices maps category attribute names to the selected value.
type Choices map[string]string

// Encode returns the query-string form of the choices with keys sorted, so
// two maps holding the same pairs always encode identically.
func (c Choices) Encode() string {
	values := make(url.Values, len(c))
	for name, value := range c {
		values.Set(name, value)
	}

	return values.Encode()
}

// With returns a copy of the choices with name set to value.
func (c Choices) With(name, value string) Choices {
	next := make(Choices, len(c)+1)
	for k, v := range c {
		next[k] = v
	}
	next[name] = value

	return next
}

type NextChoice struct {
	Name    string   `json:"name"`
	Choices []string `json:"choices"`
}

// DrillResult is either a resolved data item UID or the next choice the
// caller has to make. Exactly one of UID and Next is set.
type DrillResult struct {
	UID  string      `json:"uid,omitempty"`
	Next *NextChoice `json:"next,omitempty"`
}

func Resolved(uid string) DrillResult {
	return DrillResult{UID: uid}
}

func Next(name string, choices []string) DrillResult {
	if choices == nil {
		choices = []string{}
	}

	return DrillResult{Next: &NextChoice{Name: name, Choices: choices}}
}

func (r DrillResult) Resolved() bool {
	return r.Next == nil
}

// DrillCacheKey builds the cache key for one drill request. Server and path
// are query-escaped so the ";" separator cannot appear inside a component.
func DrillCacheKey(server, path string, choices Choices, complete bool) string {
	return strings.Join([]string{
		url.QueryEscape(server),
		url.QueryEscape(path),
		choices.Encode(),
		strconv.FormatBool(complete),
	}, ";")
}
