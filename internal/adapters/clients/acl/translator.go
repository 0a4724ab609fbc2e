package acl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jsamuelsen/quote-service/internal/adapters/clients"
	"github.com/jsamuelsen/quote-service/internal/domain"
)

// maxPayload bounds decoded upstream payloads.
const maxPayload = 1 << 20

// BaseAdapter carries what every upstream adapter shares: the resilient
// client and the name used in errors and health results.
type BaseAdapter struct {
	client *clients.Client
	name   string
}

func NewBaseAdapter(client *clients.Client, name string) BaseAdapter {
	return BaseAdapter{client: client, name: name}
}

func (a *BaseAdapter) Client() *clients.Client { return a.client }

func (a *BaseAdapter) ServiceName() string { return a.name }

// fetchJSON GETs path and decodes a 2xx JSON body into T.
// Transport failures, non-2xx statuses and undecodable bodies all come back
// as domain.ErrUnavailable naming the upstream.
func fetchJSON[T any](ctx context.Context, a *BaseAdapter, path, op string) (*T, error) {
	resp, err := a.client.Get(ctx, path)
	if err != nil {
		return nil, MapHTTPError(nil, err, a.name, op)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := MapHTTPError(resp, nil, a.name, op); err != nil {
		return nil, err
	}

	var payload T
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPayload)).Decode(&payload); err != nil {
		return nil, domain.NewUnavailableErrorWithCause(a.name, "malformed response",
			fmt.Errorf("decoding %s: %w", path, err))
	}

	return &payload, nil
}

// requireField rejects a blank upstream field. field is the upstream's name for it.
func requireField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError(field, "is required")
	}

	return nil
}
