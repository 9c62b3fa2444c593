// Package upstream fetches product and order snapshots from the commerce
// backend REST API. A snapshot is all-or-nothing: if either collection
// fails to load, the whole fetch fails and the caller keeps the previous
// snapshot, so consumers never observe a half-delivered state.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"

	"github.com/jekabolt/storefront-insights/internal/dto"
	"github.com/jekabolt/storefront-insights/internal/entity"
)

type Config struct {
	BaseURL   string        `mapstructure:"base_url"`
	AuthToken string        `mapstructure:"auth_token"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

type Client struct {
	cli *resty.Client
	c   *Config
}

func New(c *Config) *Client {
	cli := resty.New()
	cli.SetBaseURL(c.BaseURL)
	if c.AuthToken != "" {
		cli.SetAuthToken(c.AuthToken)
	}
	timeout := c.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	cli.SetTimeout(timeout)

	return &Client{cli: cli, c: c}
}

// FetchSnapshot loads both collections concurrently and returns them
// normalized. Any failure is retryable from the caller's point of view;
// the error never carries partial data.
func (c *Client) FetchSnapshot(ctx context.Context) (*entity.Snapshot, error) {
	var (
		products []entity.Product
		orders   []entity.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = c.fetchProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = c.fetchOrders(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &entity.Snapshot{
		Products:  products,
		Orders:    orders,
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (c *Client) fetchProducts(ctx context.Context) ([]entity.Product, error) {
	resp, err := c.cli.R().SetContext(ctx).Get("/api/products")
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch products: upstream returned %s", resp.Status())
	}

	var raw []dto.RawProduct
	if err := decodeList(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return dto.NormalizeProducts(raw), nil
}

func (c *Client) fetchOrders(ctx context.Context) ([]entity.Order, error) {
	resp, err := c.cli.R().SetContext(ctx).Get("/api/orders")
	if err != nil {
		return nil, fmt.Errorf("fetch orders: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch orders: upstream returned %s", resp.Status())
	}

	var raw []dto.RawOrder
	if err := decodeList(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return dto.NormalizeOrders(raw), nil
}

// decodeList accepts either a bare JSON array or the {"data": [...]}
// envelope some upstream deployments wrap responses in.
func decodeList(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err == nil {
		return nil
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return err
	}
	return json.Unmarshal(envelope.Data, v)
}
