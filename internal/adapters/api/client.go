package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/tomdyson/go-amee/internal/domain"
	"github.com/tomdyson/go-amee/internal/ports"
)

const (
	DefaultServer  = "https://stage.co2.dgen.net"
	DefaultTimeout = 10 * time.Second

	authPath        = "/auth"
	authTokenHeader = "authToken"
)

type Options struct {
	Server      string
	Credentials Credentials
	Transport   ports.Transport
	Timeout     time.Duration
	Logger      hclog.Logger
}

// Client is the request dispatcher for one AMEE server.
type Client struct {
	server    string
	transport ports.Transport
	timeout   time.Duration
	session   *Session
	logger    hclog.Logger
}

var _ ports.APIClient = (*Client)(nil)

func NewClient(opts Options) (*Client, error) {
	if opts.Transport == nil {
		return nil, errors.New("transport is required")
	}

	server := opts.Server
	if server == "" {
		server = DefaultServer
	}
	server, err := normalizeServer(server)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	c := &Client{
		server:    server,
		transport: opts.Transport,
		timeout:   timeout,
		logger:    logger.Named("api"),
	}
	c.session = newSession(opts.Credentials, c.exchangeToken)

	return c, nil
}

func (c *Client) Server() string {
	return c.server
}

func (c *Client) Session() *Session {
	return c.session
}

// ResolveURI turns an absolute URI or a root-relative path into the request URI.
func (c *Client) ResolveURI(path string) (string, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path, nil
	}
	if err := domain.ValidatePath(path); err != nil {
		return "", err
	}

	return c.server + path, nil
}

// Send issues one request with the current token. Only 200, 201 and 401 are
// returned to the caller; any other status is an *domain.APIError.
func (c *Client) Send(ctx context.Context, method, path string, payload domain.Payload, header http.Header) (ports.TransportResponse, error) {
	return c.send(ctx, method, path, payload, header, c.session.Token())
}

func (c *Client) send(ctx context.Context, method, path string, payload domain.Payload, header http.Header, token string) (ports.TransportResponse, error) {
	uri, err := c.ResolveURI(path)
	if err != nil {
		return ports.TransportResponse{}, err
	}

	requestHeader := http.Header{}
	requestHeader.Set("Accept", "application/json")
	requestHeader.Set("Cache-Control", "max-age=0")
	if token != "" {
		requestHeader.Set("AuthToken", token)
	}
	if contentType := payload.ContentType(); contentType != "" {
		requestHeader.Set("Content-Type", contentType)
	}
	for name, values := range header {
		requestHeader[http.CanonicalHeaderKey(name)] = values
	}

	resp, err := c.transport.Fetch(ctx, ports.TransportRequest{
		Method:  method,
		URI:     uri,
		Header:  requestHeader,
		Body:    payload.Body(),
		Timeout: c.timeout,
	})
	if err != nil {
		return ports.TransportResponse{}, fmt.Errorf("%s %s: %w", method, path, err)
	}

	c.logger.Debug("request", "method", method, "path", path, "status", resp.StatusCode)

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusUnauthorized:
		return resp, nil
	default:
		return ports.TransportResponse{}, &domain.APIError{StatusCode: resp.StatusCode, Method: method, Path: path}
	}
}

// Request sends an authenticated request, re-authenticating once when the
// token has expired.
func (c *Client) Request(ctx context.Context, method, path string, payload domain.Payload, header http.Header) (domain.Response, error) {
	if _, err := c.ResolveURI(path); err != nil {
		return domain.Response{}, err
	}
	if err := c.session.EnsureToken(ctx); err != nil {
		return domain.Response{}, err
	}

	resp, err := c.Send(ctx, method, path, payload, header)
	if err != nil {
		return domain.Response{}, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Info("authentication token expired", "method", method, "path", path)
		if err := c.session.Reauthenticate(ctx); err != nil {
			return domain.Response{}, err
		}

		resp, err = c.Send(ctx, method, path, payload, header)
		if err != nil {
			return domain.Response{}, err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			c.session.reject()
			return domain.Response{}, &domain.APIError{
				StatusCode:         resp.StatusCode,
				Method:             method,
				Path:               path,
				RejectedFreshToken: true,
			}
		}
		c.session.confirm()
	}

	return decodeResponse(resp)
}

func (c *Client) exchangeToken(ctx context.Context, credentials Credentials) (string, error) {
	payload := domain.FormPayload(domain.Values{
		"username": credentials.Username,
		"password": credentials.Password,
	})

	// Called with the session lock held, so the token is never read here.
	resp, err := c.send(ctx, http.MethodPost, authPath, payload, nil, "")
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrAuth, err)
	}

	token := resp.Header.Get(authTokenHeader)
	if token == "" {
		return "", fmt.Errorf("%w: failed to authenticate with AMEE (status %d)", domain.ErrAuth, resp.StatusCode)
	}

	c.logger.Debug("authenticated", "username", credentials.Username)

	return token, nil
}

func decodeResponse(resp ports.TransportResponse) (domain.Response, error) {
	if resp.StatusCode == http.StatusCreated {
		return domain.Response{Location: resp.Header.Get("Location")}, nil
	}

	if len(resp.Body) == 0 {
		return domain.Response{}, nil
	}

	var data any
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return domain.Response{}, fmt.Errorf("decode response: %w", err)
	}

	return domain.Response{Data: data}, nil
}

func normalizeServer(server string) (string, error) {
	parsed, err := url.Parse(server)
	if err != nil {
		return "", fmt.Errorf("parse server address: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("server address must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("server address host is required")
	}

	return strings.TrimRight(server, "/"), nil
}
