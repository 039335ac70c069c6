// Package client is the transport collaborator: a narrow HTTP client for the
// management API that submits compiled payloads and runs the list, describe,
// and delete flows. It never inspects or rewrites payload contents beyond
// JSON encoding.
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/systmms/entops/internal/config"
	enterrors "github.com/systmms/entops/internal/errors"
	"github.com/systmms/entops/internal/logging"
	"github.com/systmms/entops/pkg/entity"
)

// ErrNotFound marks a name lookup that matched no entity. Callers that treat
// absence as a non-error, such as --force replacement, test for it with
// errors.Is; the ambiguity error for duplicated names does not match.
var ErrNotFound = errors.New("entity not found")

// Client talks to one management server. The secrets slice holds values that
// must never appear in debug output; request-body logging runs through
// logging.Redact with it.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
	secrets    []string
	logger     *logging.Logger
}

// New builds a client for the configured server. The password is taken from
// the config if set, otherwise from the OS keyring (see 'entops login').
func New(server config.ServerConfig, logger *logging.Logger) (*Client, error) {
	transport := &http.Transport{
		TLSClientConfig: &tls.Config{},
	}

	if server.CACert != "" {
		caCert, err := os.ReadFile(server.CACert)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA certificate: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA certificate")
		}
		transport.TLSClientConfig.RootCAs = caCertPool
	}

	if server.Insecure {
		transport.TLSClientConfig.InsecureSkipVerify = true
	}

	password, err := Password(server)
	if err != nil {
		return nil, err
	}
	logger.Debug("authenticating to %s as %s (password %s)",
		server.BaseURL(), server.Username, logging.Secret(password))

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   server.Timeout(),
		},
		baseURL:  server.BaseURL(),
		username: server.Username,
		password: password,
		secrets:  []string{password},
		logger:   logger,
	}, nil
}

// ListParams narrows a list request.
type ListParams struct {
	Filter string `json:"filter,omitempty"`
	Length int    `json:"length,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Entity is one remote object as the API returns it.
type Entity struct {
	Status   map[string]any `json:"status,omitempty"`
	Spec     map[string]any `json:"spec,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// UUID returns the entity's identifier from its envelope metadata.
func (e *Entity) UUID() string {
	id, _ := e.Metadata["uuid"].(string)
	return id
}

// SpecVersion returns the entity's current spec version from its envelope
// metadata. The API rejects updates that carry a stale version.
func (e *Entity) SpecVersion() int {
	v, _ := e.Metadata["spec_version"].(float64)
	return int(v)
}

// Name returns the entity's name, preferring the status section.
func (e *Entity) Name() string {
	if status, ok := e.Status["name"].(string); ok && status != "" {
		return status
	}
	name, _ := e.Metadata["name"].(string)
	return name
}

// ListResponse is the envelope of a list call.
type ListResponse struct {
	Metadata struct {
		TotalMatches int `json:"total_matches"`
	} `json:"metadata"`
	Entities []*Entity `json:"entities"`
}

// Create submits one payload. The kind determines the API collection.
func (c *Client) Create(ctx context.Context, kind string, payload *entity.Payload) (*Entity, error) {
	var created Entity
	if err := c.do(ctx, http.MethodPost, c.collectionURL(kind), payload, &created, kind); err != nil {
		return nil, err
	}
	return &created, nil
}

// CreateBundle submits a composite bundle in its required creation order.
// Each later payload embeds an identifier generated for an earlier one, so
// the order is a correctness requirement, not an optimization.
func (c *Client) CreateBundle(ctx context.Context, bundle *entity.Bundle) error {
	for _, entry := range bundle.InOrder() {
		c.logger.Debug("creating %s %q", entry.Kind, entry.Payload.Spec.Name)
		if _, err := c.Create(ctx, entry.Kind, entry.Payload); err != nil {
			return fmt.Errorf("creating %s: %w", entry.Kind, err)
		}
	}
	return nil
}

// Update replaces one entity's spec in place. The payload metadata must
// carry the server's identifier and current spec version.
func (c *Client) Update(ctx context.Context, kind, uuid string, payload *entity.Payload) (*Entity, error) {
	var updated Entity
	if err := c.do(ctx, http.MethodPut, c.collectionURL(kind)+"/"+uuid, payload, &updated, kind); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateBundle updates a composite bundle in creation order. Every payload
// is resolved against the server first, so each one carries the identifier
// and spec version the server already holds, and the bundle's cross
// references point at the server's provider and resource type rather than
// the identifiers the compile generated.
func (c *Client) UpdateBundle(ctx context.Context, name string, bundle *entity.Bundle) error {
	entries := bundle.InOrder()
	for _, entry := range entries {
		existing, err := c.GetByName(ctx, entry.Kind, name)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", entry.Kind, err)
		}
		entry.Payload.Metadata.UUID = existing.UUID()
		entry.Payload.Metadata.SpecVersion = existing.SpecVersion()
	}
	bundle.Repoint(bundle.Provider.Metadata.UUID, bundle.ResourceType.Metadata.UUID)

	for _, entry := range entries {
		c.logger.Debug("updating %s %q", entry.Kind, name)
		if _, err := c.Update(ctx, entry.Kind, entry.Payload.Metadata.UUID, entry.Payload); err != nil {
			return fmt.Errorf("updating %s: %w", entry.Kind, err)
		}
	}
	return nil
}

// List fetches entities of a kind matching params.
func (c *Client) List(ctx context.Context, kind string, params ListParams) (*ListResponse, error) {
	var resp ListResponse
	if err := c.do(ctx, http.MethodPost, c.collectionURL(kind)+"/list", params, &resp, kind); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Get fetches one entity by identifier.
func (c *Client) Get(ctx context.Context, kind, uuid string) (*Entity, error) {
	var e Entity
	if err := c.do(ctx, http.MethodGet, c.collectionURL(kind)+"/"+uuid, nil, &e, kind); err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByName resolves a name to exactly one entity of a kind.
func (c *Client) GetByName(ctx context.Context, kind, name string) (*Entity, error) {
	resp, err := c.List(ctx, kind, ListParams{Filter: "name==" + name})
	if err != nil {
		return nil, err
	}
	matches := make([]*Entity, 0, len(resp.Entities))
	for _, e := range resp.Entities {
		if e.Name() == name {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return nil, enterrors.UserError{
			Message:    fmt.Sprintf("No %s named %q found", kind, name),
			Suggestion: fmt.Sprintf("Use 'entops get %ss' to list what exists", kind),
			Err:        ErrNotFound,
		}
	case 1:
		return matches[0], nil
	default:
		return nil, enterrors.UserError{
			Message:    fmt.Sprintf("More than one %s named %q found", kind, name),
			Suggestion: "Delete or rename the duplicates, or address the entity by uuid",
		}
	}
}

// Delete removes one entity by identifier.
func (c *Client) Delete(ctx context.Context, kind, uuid string) error {
	return c.do(ctx, http.MethodDelete, c.collectionURL(kind)+"/"+uuid, nil, nil, kind)
}

func (c *Client) collectionURL(kind string) string {
	return c.baseURL + "/" + kind + "s"
}

func (c *Client) do(ctx context.Context, method, url string, body, out any, kind string) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
		c.logger.Debug("%s %s %s", method, url, logging.Redact(string(data), c.bodySecrets(body)))
	} else {
		c.logger.Debug("%s %s", method, url)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.username, c.password)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return apiError(resp.StatusCode, kind, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// bodySecrets joins the client's own secrets with any the request body
// declares, so compiled secret fields stay out of debug output too.
func (c *Client) bodySecrets(body any) []string {
	secrets := append([]string(nil), c.secrets...)
	if s, ok := body.(interface{ Secrets() []string }); ok {
		secrets = append(secrets, s.Secrets()...)
	}
	return secrets
}

// apiError extracts the server's message list when it sends one.
func apiError(status int, kind string, body []byte) error {
	var payload struct {
		MessageList []struct {
			Message string `json:"message"`
		} `json:"message_list"`
		Message string `json:"message"`
	}
	message := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msgs := make([]string, 0, len(payload.MessageList))
		for _, m := range payload.MessageList {
			if m.Message != "" {
				msgs = append(msgs, m.Message)
			}
		}
		if len(msgs) > 0 {
			message = strings.Join(msgs, "; ")
		} else {
			message = payload.Message
		}
	}
	if message == "" && len(body) > 0 {
		message = strings.TrimSpace(string(body))
	}
	return enterrors.APIError{StatusCode: status, Kind: kind, Message: message}
}
