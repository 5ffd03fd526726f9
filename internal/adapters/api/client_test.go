package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tomdyson/go-amee/internal/adapters/transport/httpclient"
	"github.com/tomdyson/go-amee/internal/domain"
	"github.com/tomdyson/go-amee/internal/ports"
)

const testServer = "https://amee.example"

type scriptedTransport struct {
	t         *testing.T
	requests  []ports.TransportRequest
	responses []ports.TransportResponse
}

func (s *scriptedTransport) Fetch(_ context.Context, req ports.TransportRequest) (ports.TransportResponse, error) {
	s.requests = append(s.requests, req)
	if len(s.responses) == 0 {
		s.t.Fatalf("unexpected request %s %s", req.Method, req.URI)
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	return next, nil
}

func authOK(token string) ports.TransportResponse {
	return ports.TransportResponse{StatusCode: http.StatusOK, Header: http.Header{"Authtoken": []string{token}}}
}

func status(code int, body string) ports.TransportResponse {
	return ports.TransportResponse{StatusCode: code, Header: http.Header{}, Body: []byte(body)}
}

func newTestClient(t *testing.T, responses ...ports.TransportResponse) (*Client, *scriptedTransport) {
	t.Helper()

	transport := &scriptedTransport{t: t, responses: responses}
	client, err := NewClient(Options{
		Server:      testServer + "/",
		Credentials: Credentials{Username: "robin", Password: "s3cret"},
		Transport:   transport,
	})
	require.NoError(t, err)

	return client, transport
}

func TestResolveURI(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t)

	fromPath, err := client.ResolveURI("/profiles/ABC")
	require.NoError(t, err)
	fromURL, err := client.ResolveURI(testServer + "/profiles/ABC")
	require.NoError(t, err)
	assert.Equal(t, fromURL, fromPath)

	other, err := client.ResolveURI("http://other.example/x")
	require.NoError(t, err)
	assert.Equal(t, "http://other.example/x", other)
}

func TestSendRejectsRelativePathBeforeNetwork(t *testing.T) {
	t.Parallel()

	client, transport := newTestClient(t)

	_, err := client.Send(context.Background(), http.MethodGet, "profiles", domain.Payload{}, nil)
	require.ErrorIs(t, err, domain.ErrInvalidPath)

	_, err = client.Request(context.Background(), http.MethodGet, "profiles", domain.Payload{}, nil)
	require.ErrorIs(t, err, domain.ErrInvalidPath)
	assert.Empty(t, transport.requests)
}

func TestRequestAuthenticatesAndAttachesHeaders(t *testing.T) {
	t.Parallel()

	client, transport := newTestClient(t, authOK("token-1"), status(http.StatusOK, `{"profile":{"uid":"P1"}}`))

	resp, err := client.Request(context.Background(), http.MethodPost, "/profiles",
		domain.FormPayload(domain.Values{"profile": "true"}),
		http.Header{"Cache-Control": []string{"no-cache"}},
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"profile": map[string]any{"uid": "P1"}}, resp.Data)

	require.Len(t, transport.requests, 2)

	auth := transport.requests[0]
	assert.Equal(t, http.MethodPost, auth.Method)
	assert.Equal(t, testServer+"/auth", auth.URI)
	assert.Empty(t, auth.Header.Get("AuthToken"))
	form, err := url.ParseQuery(string(auth.Body))
	require.NoError(t, err)
	assert.Equal(t, "robin", form.Get("username"))
	assert.Equal(t, "s3cret", form.Get("password"))

	req := transport.requests[1]
	assert.Equal(t, testServer+"/profiles", req.URI)
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Equal(t, "token-1", req.Header.Get("AuthToken"))
	assert.Equal(t, "no-cache", req.Header.Get("Cache-Control"))
	assert.Equal(t, domain.ContentTypeForm, req.Header.Get("Content-Type"))
	assert.Equal(t, "profile=true", string(req.Body))
	assert.NotContains(t, string(req.Body), "token-1")
	assert.Equal(t, DefaultTimeout, req.Timeout)
	assert.Equal(t, StateAuthenticated, client.Session().State())
}

func TestRequestReusesToken(t *testing.T) {
	t.Parallel()

	client, transport := newTestClient(t, authOK("token-1"), status(http.StatusOK, ""), status(http.StatusOK, ""))

	for i := 0; i < 2; i++ {
		resp, err := client.Request(context.Background(), http.MethodGet, "/profiles", domain.Payload{}, nil)
		require.NoError(t, err)
		assert.True(t, resp.Empty())
	}
	assert.Len(t, transport.requests, 3)
}

func TestRequestFailsWhenAuthReturnsNoToken(t *testing.T) {
	t.Parallel()

	client, transport := newTestClient(t, status(http.StatusUnauthorized, ""))

	_, err := client.Request(context.Background(), http.MethodGet, "/profiles", domain.Payload{}, nil)
	require.ErrorIs(t, err, domain.ErrAuth)
	assert.Len(t, transport.requests, 1)
	assert.Equal(t, StateUnauthenticated, client.Session().State())
}

func TestRequestWrapsAuthStatusErrors(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, status(http.StatusInternalServerError, ""))

	_, err := client.Request(context.Background(), http.MethodGet, "/profiles", domain.Payload{}, nil)
	require.ErrorIs(t, err, domain.ErrAuth)
	assert.ErrorIs(t, err, domain.ErrAPI)
}

func TestRequestReauthenticatesOnceOnExpiredToken(t *testing.T) {
	t.Parallel()

	client, transport := newTestClient(t,
		authOK("token-1"),
		status(http.StatusUnauthorized, ""),
		authOK("token-2"),
		status(http.StatusOK, `{"ok":true}`),
	)

	resp, err := client.Request(context.Background(), http.MethodGet, "/profiles", domain.Payload{},
		http.Header{"X-Trace": []string{"abc"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, resp.Data)

	require.Len(t, transport.requests, 4)
	assert.Equal(t, "token-1", transport.requests[1].Header.Get("AuthToken"))
	assert.Equal(t, "token-2", transport.requests[3].Header.Get("AuthToken"))
	assert.Equal(t, "abc", transport.requests[3].Header.Get("X-Trace"))
	assert.Equal(t, "token-2", client.Session().Token())
	assert.Equal(t, StateAuthenticated, client.Session().State())
}

func TestRequestFailsOnSecondUnauthorized(t *testing.T) {
	t.Parallel()

	client, transport := newTestClient(t,
		authOK("token-1"),
		status(http.StatusUnauthorized, ""),
		authOK("token-2"),
		status(http.StatusUnauthorized, ""),
	)

	_, err := client.Request(context.Background(), http.MethodGet, "/profiles", domain.Payload{}, nil)
	require.ErrorIs(t, err, domain.ErrAPI)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.RejectedFreshToken)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Len(t, transport.requests, 4)
	assert.Equal(t, StateUnauthenticated, client.Session().State())
}

func TestRequestReturnsLocationOnCreated(t *testing.T) {
	t.Parallel()

	created := ports.TransportResponse{
		StatusCode: http.StatusCreated,
		Header:     http.Header{"Location": []string{testServer + "/profiles/P1/home/energy/ITEM1"}},
	}
	client, _ := newTestClient(t, authOK("token-1"), created)

	resp, err := client.Request(context.Background(), http.MethodPost, "/profiles/P1/home/energy", domain.Payload{}, nil)
	require.NoError(t, err)
	assert.True(t, resp.Created())
	assert.Equal(t, testServer+"/profiles/P1/home/energy/ITEM1", resp.Location)
}

func TestRequestRejectsUnexpectedStatus(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, authOK("token-1"), status(http.StatusNotFound, "missing"))

	_, err := client.Request(context.Background(), http.MethodDelete, "/profiles/P1", domain.Payload{}, nil)

	var apiErr *domain.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, http.MethodDelete, apiErr.Method)
	assert.Equal(t, "/profiles/P1", apiErr.Path)
}

func TestRequestRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, authOK("token-1"), status(http.StatusOK, "{not json"))

	_, err := client.Request(context.Background(), http.MethodGet, "/profiles", domain.Payload{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestNewClientValidatesOptions(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Options{Server: testServer})
	assert.EqualError(t, err, "transport is required")

	_, err = NewClient(Options{Server: "ftp://amee.example", Transport: &scriptedTransport{t: t}})
	assert.EqualError(t, err, "server address must use http or https")

	client, err := NewClient(Options{Transport: &scriptedTransport{t: t}})
	require.NoError(t, err)
	assert.Equal(t, DefaultServer, client.Server())
}

func TestClientAgainstHTTPServer(t *testing.T) {
	t.Parallel()

	var authCalls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth":
			count := authCalls.Add(1)
			w.Header().Set("authToken", "server-token-"+string(rune('0'+count)))
		case "/profiles":
			if r.Header.Get("AuthToken") == "server-token-1" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"profiles":[{"uid":"P1"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(Options{
		Server:      server.URL,
		Credentials: Credentials{Username: "robin", Password: "pw"},
		Transport:   httpclient.New(server.Client()),
	})
	require.NoError(t, err)

	resp, err := client.Request(context.Background(), http.MethodGet, "/profiles", domain.Payload{}, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"profiles": []any{map[string]any{"uid": "P1"}}}, resp.Data)
	assert.Equal(t, int32(2), authCalls.Load())
}
