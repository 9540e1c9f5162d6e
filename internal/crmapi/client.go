// Package crmapi talks to the remote CRM REST API on behalf of a console
// session, forwarding the session's bearer token.
package crmapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"crm-console/internal/config"
	"crm-console/internal/model"
	"crm-console/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const permissionsPath = "/users/me/permissions"

type Client struct {
	baseURL string
	timeout time.Duration
	limiter *rate.Limiter
	log     *logger.Logger
}

func NewClient(cfg config.CRMConfig) *Client {
	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL: cfg.BaseURL,
		timeout: cfg.Timeout,
		limiter: rate.NewLimiter(limit, burst),
		log:     logger.New("CRMAPI"),
	}
}

// do sends one request and returns the raw body of a 2xx response. There is
// no retry; callers surface the error and keep their previous data.
func (c *Client) do(ctx context.Context, method, path, token string, body interface{}) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	a := fiber.AcquireAgent()
	req := a.Request()
	req.Header.SetMethod(method)
	req.SetRequestURI(c.baseURL + path)
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	if token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			fiber.ReleaseAgent(a)
			return nil, fmt.Errorf("encode request: %w", err)
		}
		a.ContentType(fiber.MIMEApplicationJSON)
		a.Body(payload)
	}
	if c.timeout > 0 {
		a.Timeout(c.timeout)
	}
	if err := a.Parse(); err != nil {
		fiber.ReleaseAgent(a)
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	status, resBody, errs := a.Bytes()
	if len(errs) > 0 {
		c.log.Warn("%s %s failed: %v", method, path, errs[0])
		return nil, fmt.Errorf("%w: %v", ErrTransport, errs[0])
	}
	if status < 200 || status >= 300 {
		return nil, &APIError{Status: status, Message: errorMessage(status, resBody)}
	}
	return resBody, nil
}

func recordPath(base, id string) string {
	return base + "/" + url.PathEscape(id)
}

// List fetches a record collection.
func (c *Client) List(ctx context.Context, token, path string) ([]json.RawMessage, error) {
	body, err := c.do(ctx, fiber.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	return decodeList(body)
}

// Create returns the created record, or nil when the API only acknowledged.
func (c *Client) Create(ctx context.Context, token, path string, record interface{}) (json.RawMessage, error) {
	body, err := c.do(ctx, fiber.MethodPost, path, token, record)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body), nil
}

func (c *Client) Update(ctx context.Context, token, path, id string, patch map[string]interface{}) (json.RawMessage, error) {
	body, err := c.do(ctx, fiber.MethodPut, recordPath(path, id), token, patch)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body), nil
}

func (c *Client) Delete(ctx context.Context, token, path, id string) error {
	_, err := c.do(ctx, fiber.MethodDelete, recordPath(path, id), token, nil)
	return err
}

func (c *Client) Reassign(ctx context.Context, token, path, id, ownerID string) (json.RawMessage, error) {
	body, err := c.do(ctx, fiber.MethodPut, recordPath(path, id)+"/assign", token, map[string]string{"assigned_to": ownerID})
	if err != nil {
		return nil, err
	}
	return decodeRecord(body), nil
}

// Permissions fetches the current user's grants.
func (c *Client) Permissions(ctx context.Context, token string) (model.PermissionSet, error) {
	body, err := c.do(ctx, fiber.MethodGet, permissionsPath, token, nil)
	if err != nil {
		return nil, err
	}
	var env permissionEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	set := model.PermissionSet{}
	for category, actions := range env.Data.UserPermissions {
		set[category] = append([]string(nil), actions...)
	}
	return set, nil
}
