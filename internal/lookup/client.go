package lookup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Gunvolt24/pricecache/internal/ports"
	"github.com/tidwall/gjson"
)

// DefaultPricePath — путь к цене в ответе по умолчанию.
const DefaultPricePath = "unidentifiedAverage80Price"

var (
	// ErrNotFound — удалённый сервис не знает такого ключа.
	ErrNotFound = errors.New("lookup: item not found")
	// ErrNoPrice — ответ получен, но цены в нём нет.
	ErrNoPrice = errors.New("lookup: no price in response")
)

// maxBody — ограничение на размер ответа.
const maxBody = 1 << 20

// Client — HTTP-клиент удалённого поиска цены: GET {baseURL}/{key}.
type Client struct {
	baseURL   string
	pricePath string
	http      *http.Client
}

// NewClient — конструктор. Пустой pricePath → DefaultPricePath; timeout <= 0 → 10s.
func NewClient(baseURL, pricePath string, timeout time.Duration) *Client {
	if pricePath == "" {
		pricePath = DefaultPricePath
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		pricePath: pricePath,
		http:      &http.Client{Timeout: timeout},
	}
}

// Price — запросить цену по ключу.
func (c *Client) Price(ctx context.Context, key string) (float64, error) {
	if key == "" {
		return 0, fmt.Errorf("lookup: empty key")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+url.PathEscape(key), http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("lookup %q: %w", key, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return 0, fmt.Errorf("%w: %s", ErrNotFound, key)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return 0, fmt.Errorf("lookup %q: unexpected status %d", key, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return 0, fmt.Errorf("read body: %w", err)
	}
	if !gjson.ValidBytes(body) {
		return 0, fmt.Errorf("lookup %q: invalid json", key)
	}

	res := gjson.GetBytes(body, c.pricePath)
	if !res.Exists() || res.Type != gjson.Number {
		return 0, fmt.Errorf("%w: %s", ErrNoPrice, key)
	}
	return res.Float(), nil
}

// Fetcher — FetchFunc для кэша, привязанная к ключу.
func (c *Client) Fetcher(key string) ports.FetchFunc {
	return func(ctx context.Context) (float64, error) {
		return c.Price(ctx, key)
	}
}
