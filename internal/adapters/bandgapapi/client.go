package bandgapapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/alejandrodnm/bandgap/internal/domain"
	"github.com/alejandrodnm/bandgap/internal/ports"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL = "http://localhost:8000"

	predictPath   = "/predict"
	modelInfoPath = "/model_info"
	healthPath    = "/health"
	datasetPath   = "/dataset"

	defaultTimeout    = 30 * time.Second
	defaultRatePerSec = 5
	maxRetries        = 3
	baseRetryWait     = 500 * time.Millisecond
	maxBodyBytes      = 1 << 20
)

// Client es el HTTP client del servicio de predicción.
// /predict se envía exactamente una vez; los GET de metadata reintentan con backoff.
type Client struct {
	http       *http.Client
	baseURL    string
	limiter    *rate.Limiter
	maxRetries uint64
	retryWait  time.Duration
}

var (
	_ ports.PredictionAPI = (*Client)(nil)
	_ ports.MetadataAPI   = (*Client)(nil)
)

// Option configura un Client.
type Option func(*Client)

// WithTimeout fija el timeout de red por request. 0 desactiva el timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRetry fija el número de reintentos y la espera inicial de los GET.
func WithRetry(retries uint64, wait time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = retries
		c.retryWait = wait
	}
}

// WithRateLimit fija el máximo de requests por segundo.
func WithRateLimit(perSec float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(perSec), burst) }
}

// NewClient crea un Client contra baseURL. Si está vacío usa el servicio local.
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	c := &Client{
		http:       &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		limiter:    rate.NewLimiter(defaultRatePerSec, 2),
		maxRetries: maxRetries,
		retryWait:  baseRetryWait,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Predict hace POST /predict con la fórmula. Un único intento, sin reintentos.
func (c *Client) Predict(ctx context.Context, formula string) (domain.PredictionResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.PredictionResult{}, predictionErr("", 0, fmt.Errorf("rate limiter: %w", err))
	}

	body, err := json.Marshal(predictRequest{Formula: formula})
	if err != nil {
		return domain.PredictionResult{}, predictionErr("", 0, fmt.Errorf("marshal body: %w", err))
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, bytes.NewReader(body))
	if err != nil {
		return domain.PredictionResult{}, predictionErr("", 0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.PredictionResult{}, predictionErr("", 0, fmt.Errorf("POST %s: %w", predictPath, err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.PredictionResult{}, predictionErr("", resp.StatusCode, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		_ = json.Unmarshal(data, &er) // el payload de error es opcional
		slog.Debug("prediction rejected", "status", resp.StatusCode, "formula", formula)
		return domain.PredictionResult{}, predictionErr(detailMessage(er), resp.StatusCode,
			fmt.Errorf("status %d", resp.StatusCode))
	}

	var raw predictResponse
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.PredictionResult{}, predictionErr("", resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	result, err := mapPrediction(raw)
	if err != nil {
		return domain.PredictionResult{}, predictionErr("", resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return result, nil
}

// ModelInfo hace GET /model_info.
func (c *Client) ModelInfo(ctx context.Context) (domain.ModelInfo, error) {
	var resp modelInfoResponse
	if err := c.get(ctx, c.baseURL+modelInfoPath, &resp); err != nil {
		return domain.ModelInfo{}, fmt.Errorf("bandgapapi.ModelInfo: %w", err)
	}
	return mapModelInfo(resp), nil
}

// Health hace GET /health.
func (c *Client) Health(ctx context.Context) (domain.Health, error) {
	var resp healthResponse
	if err := c.get(ctx, c.baseURL+healthPath, &resp); err != nil {
		return domain.Health{}, fmt.Errorf("bandgapapi.Health: %w", err)
	}
	return mapHealth(resp), nil
}

// Dataset hace GET /dataset con paginación limit/offset.
func (c *Client) Dataset(ctx context.Context, limit, offset int) (domain.Dataset, error) {
	url := c.baseURL + datasetPath + "?limit=" + strconv.Itoa(limit) + "&offset=" + strconv.Itoa(offset)
	var resp datasetResponse
	if err := c.get(ctx, url, &resp); err != nil {
		return domain.Dataset{}, fmt.Errorf("bandgapapi.Dataset: %w", err)
	}
	return mapDataset(resp), nil
}

// get hace un GET con rate limiting y backoff exponencial.
// 429 y 5xx se reintentan; otros 4xx y los errores de decode no.
func (c *Client) get(ctx context.Context, url string, out any) error {
	attempt := 0
	op := func() error {
		attempt++
		if err := c.limiter.Wait(ctx); err != nil {
			return backoff.Permanent(fmt.Errorf("rate limiter: %w", err))
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			slog.Warn("rate limited by API", "attempt", attempt)
			return fmt.Errorf("rate limited (429)")
		case resp.StatusCode >= 500:
			return fmt.Errorf("server error %d", resp.StatusCode)
		case resp.StatusCode >= 400:
			body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			return backoff.Permanent(fmt.Errorf("client error %d: %s", resp.StatusCode, string(body)))
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode response: %w", err))
		}
		return nil
	}
	return backoff.Retry(op, c.retryPolicy(ctx))
}

func (c *Client) retryPolicy(ctx context.Context) backoff.BackOffContext {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.retryWait
	eb.MaxElapsedTime = 0 // el límite lo pone WithMaxRetries
	return backoff.WithContext(backoff.WithMaxRetries(eb, c.maxRetries), ctx)
}

func predictionErr(detail string, status int, err error) *domain.PredictionError {
	msg := detail
	if msg == "" {
		msg = domain.DefaultPredictionMessage
	}
	return &domain.PredictionError{Message: msg, StatusCode: status, Err: err}
}
