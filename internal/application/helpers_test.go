package application

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/stretchr/testify/mock"
	"github.com/tomdyson/go-amee/internal/domain"
	"github.com/tomdyson/go-amee/internal/ports"
)

func mockAnyContext() any {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func drillData(name string, choices ...string) map[string]any {
	entries := make([]any, 0, len(choices))
	for _, choice := range choices {
		entries = append(entries, map[string]any{"name": choice, "value": choice})
	}

	return map[string]any{
		"choices": map[string]any{
			"name":    name,
			"choices": entries,
		},
	}
}

type recordedRequest struct {
	Method  string
	Path    string
	Payload domain.Payload
}

// recordingAPI answers requests from a queue of canned responses.
type recordingAPI struct {
	mu        sync.Mutex
	requests  []recordedRequest
	responses []fakeReply
}

type fakeReply struct {
	resp domain.Response
	err  error
}

var _ ports.APIClient = (*recordingAPI)(nil)

func (a *recordingAPI) reply(resp domain.Response, err error) *recordingAPI {
	a.responses = append(a.responses, fakeReply{resp: resp, err: err})
	return a
}

func (a *recordingAPI) Request(_ context.Context, method, path string, payload domain.Payload, _ http.Header) (domain.Response, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.requests = append(a.requests, recordedRequest{Method: method, Path: path, Payload: payload})
	if len(a.responses) == 0 {
		return domain.Response{}, fmt.Errorf("unexpected request %s %s", method, path)
	}
	next := a.responses[0]
	a.responses = a.responses[1:]
	return next.resp, next.err
}

func (a *recordingAPI) Server() string {
	return testServer
}

func (a *recordingAPI) recorded() []recordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]recordedRequest(nil), a.requests...)
}

// fixedDriller resolves paths from a table and fails on anything else.
type fixedDriller map[string]domain.DrillResult

func (d fixedDriller) Drill(_ context.Context, path string, _ domain.Choices, _ bool) (domain.DrillResult, error) {
	result, ok := d[path]
	if !ok {
		return domain.DrillResult{}, &domain.IncompleteDrilldownError{Attribute: "type"}
	}
	return result, nil
}
