package rest

import (
	"context"
	"fmt"
	"time"

	xhttp "MoonPulse/pkg/http"
)

// ServiceBase provides a DRY foundation for external reading clients.
// It centralizes client construction and JSON GET request handling.
type ServiceBase struct {
	baseURL string
	client  *xhttp.Client
}

// NewServiceBase builds an HTTP client with the given base URL and timeout.
func NewServiceBase(baseURL string, timeout time.Duration) *ServiceBase {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ServiceBase{
		baseURL: baseURL,
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

// GetJSON fetches `path` under baseURL with optional query params and decodes
// the JSON body into dest.
func (b *ServiceBase) GetJSON(ctx context.Context, path string, query map[string][]string, dest interface{}) error {
	if b.client == nil || b.baseURL == "" {
		return fmt.Errorf("rest client not initialized")
	}
	err := b.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         b.baseURL + path,
		QueryParams: query,
	}, dest)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	return nil
}

// GetJSONWithRetry fetches JSON with up to `attempts` tries for transient
// errors. Retry here belongs to the collaborator boundary; the core pipeline
// itself never retries.
func (b *ServiceBase) GetJSONWithRetry(ctx context.Context, path string, query map[string][]string, dest interface{}, attempts int) error {
	if attempts <= 1 {
		return b.GetJSON(ctx, path, query, dest)
	}
	var err error
	for i := 1; i <= attempts; i++ {
		err = b.GetJSON(ctx, path, query, dest)
		if err == nil {
			return nil
		}
		select {
		case <-time.After(time.Duration(i) * 50 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}
