package api

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"clan-dashboard/internal/config"
	"clan-dashboard/internal/domain"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type Client struct {
	appID   string
	baseURL string
	timeout time.Duration
	client  *fasthttp.Client
	logger  zerolog.Logger
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		appID:   cfg.AppID,
		baseURL: strings.TrimRight(cfg.APIBase, "/"),
		timeout: cfg.APITimeout,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         cfg.APITimeout,
			WriteTimeout:        cfg.APITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger.With().Str("component", "wot_api").Logger(),
	}
}

func (c *Client) realmBase(realm domain.Realm) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf("https://api.worldoftanks.%s", realm.HostSuffix())
}

// Payload is a decoded top-level JSON object.
type Payload map[string]json.RawMessage

// Get performs one GET against endpoint with the given query parameters and
// guarantees only that the body is a JSON object. The service envelope is left
// to the caller, see Payload.Envelope.
func (c *Client) Get(ctx context.Context, realm domain.Realm, endpoint string, params map[string]string) (Payload, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.realmBase(realm) + endpoint)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	args := req.URI().QueryArgs()
	args.Add("application_id", c.appID)
	for _, key := range slices.Sorted(maps.Keys(params)) {
		args.Add(key, params[key])
	}

	start := time.Now()
	deadline, _ := ctx.Deadline()
	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		c.logger.Error().Err(err).Str("endpoint", endpoint).Str("realm", realm.String()).Msg("stats API request failed")
		return nil, &TransportError{Endpoint: endpoint, Err: err}
	}

	c.logger.Debug().
		Str("endpoint", endpoint).
		Str("realm", realm.String()).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("stats API response received")

	if resp.StatusCode() >= fasthttp.StatusBadRequest {
		return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode()}
	}

	var payload Payload
	if err := json.Unmarshal(resp.Body(), &payload); err != nil || payload == nil {
		return nil, fmt.Errorf("%s: %w", endpoint, ErrMalformedResponse)
	}
	return payload, nil
}

type envelopeError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// Envelope checks the service's own status field. Anything but "ok", or a
// populated error object, becomes a *ServiceError.
func (p Payload) Envelope(endpoint string) error {
	var status string
	if raw, ok := p["status"]; ok {
		_ = json.Unmarshal(raw, &status)
	}

	var apiErr envelopeError
	if raw, ok := p["error"]; ok {
		_ = json.Unmarshal(raw, &apiErr)
	}

	if status == "ok" && apiErr.Message == "" {
		return nil
	}

	message := apiErr.Message
	if message == "" {
		message = "Unknown error"
	}
	if status == "" {
		status = "error"
	}
	return &ServiceError{Endpoint: endpoint, Status: status, Code: apiErr.Code, Message: message}
}

// decodeData decodes the "data" member of a successful envelope.
func decodeData[T any](p Payload, endpoint string) (T, error) {
	var out T
	raw, ok := p["data"]
	if !ok || string(raw) == "null" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%s data: %w", endpoint, ErrMalformedResponse)
	}
	return out, nil
}

func doRequest[T any](ctx context.Context, c *Client, realm domain.Realm, endpoint string, params map[string]string) (T, error) {
	var zero T
	payload, err := c.Get(ctx, realm, endpoint, params)
	if err != nil {
		return zero, err
	}
	if err := payload.Envelope(endpoint); err != nil {
		return zero, err
	}
	return decodeData[T](payload, endpoint)
}
