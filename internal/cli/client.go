// Package cli holds the HTTP client and local session store behind the awc
// command line tool.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// -- public reads -----------------------------------------------------------

func (c *Client) Config(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/config", "", nil, &out, "")
	return out, err
}

func (c *Client) Classes(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/classes", "", nil, &out, "")
	return out, err
}

func (c *Client) Holding(ctx context.Context, classID uint64) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, fmt.Sprintf("/v1/classes/%d/holding", classID), "", nil, &out, "")
	return out, err
}

func (c *Client) Treasury(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/treasury", "", nil, &out, "")
	return out, err
}

func (c *Client) Prices(ctx context.Context, limit int) (map[string]any, error) {
	path := "/v1/treasury/prices"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, path, "", nil, &out, "")
	return out, err
}

func (c *Client) Businesses(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/businesses", "", nil, &out, "")
	return out, err
}

// -- player actions ---------------------------------------------------------

func (c *Client) Join(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/players/join", token, nil, &out, "")
	return out, err
}

func (c *Client) InitPlayer(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/players/init", token, nil, &out, "")
	return out, err
}

func (c *Client) Me(ctx context.Context, token string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/players/me", token, nil, &out, "")
	return out, err
}

func (c *Client) Notifications(ctx context.Context, token string, limit int) (map[string]any, error) {
	path := "/v1/players/me/notifications"
	if limit > 0 {
		path = fmt.Sprintf("%s?limit=%d", path, limit)
	}
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodGet, path, token, nil, &out, "")
	return out, err
}

func (c *Client) Work(ctx context.Context, token, idem string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/work", token, nil, &out, idem)
	return out, err
}

func (c *Client) PurchaseBusiness(ctx context.Context, token string, businessID uint8, idem string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/businesses/%d/purchase", businessID), token, nil, &out, idem)
	return out, err
}

func (c *Client) SetSlots(ctx context.Context, token string, slots []uint8, idem string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/businesses/slots", token, map[string]any{
		"slots": slots,
	}, &out, idem)
	return out, err
}

func (c *Client) BuyAsset(ctx context.Context, token string, classID uint64, idem string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/assets/%d/buy", classID), token, nil, &out, idem)
	return out, err
}

func (c *Client) QueueUpgrade(ctx context.Context, token string, classID uint64, idem string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/assets/%d/upgrade", classID), token, nil, &out, idem)
	return out, err
}

func (c *Client) FinishUpgrade(ctx context.Context, token string, classID uint64) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/assets/%d/upgrade/finish", classID), token, nil, &out, "")
	return out, err
}

func (c *Client) Defend(ctx context.Context, token string, classID, spend uint64, idem string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/assets/%d/defend", classID), token, map[string]any{
		"spend": spend,
	}, &out, idem)
	return out, err
}

func (c *Client) Takeover(ctx context.Context, token string, classID uint64, idem string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, fmt.Sprintf("/v1/assets/%d/takeover", classID), token, nil, &out, idem)
	return out, err
}

func (c *Client) SwapBuy(ctx context.Context, token string, amountIn, minOut uint64, idem string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/swap/buy", token, map[string]any{
		"amount_in": amountIn,
		"min_out":   minOut,
	}, &out, idem)
	return out, err
}

func (c *Client) SwapSell(ctx context.Context, token string, amountIn, minOut uint64, idem string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/swap/sell", token, map[string]any{
		"amount_in": amountIn,
		"min_out":   minOut,
	}, &out, idem)
	return out, err
}

// -- admin actions ----------------------------------------------------------

func (c *Client) AdminInitGame(ctx context.Context, adminToken string, body map[string]any) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/admin/init", adminToken, body, &out, "")
	return out, err
}

func (c *Client) AdminAddClass(ctx context.Context, adminToken string, body map[string]any) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/admin/classes", adminToken, body, &out, "")
	return out, err
}

func (c *Client) AdminSetParams(ctx context.Context, adminToken string, body map[string]any) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/admin/params", adminToken, body, &out, "")
	return out, err
}

func (c *Client) AdminSetPaused(ctx context.Context, adminToken string, paused bool) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/admin/pause", adminToken, map[string]any{
		"paused": paused,
	}, &out, "")
	return out, err
}

func (c *Client) AdminInitTreasury(ctx context.Context, adminToken string, body map[string]any) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/admin/treasury/init", adminToken, body, &out, "")
	return out, err
}

func (c *Client) AdminSetTreasuryParams(ctx context.Context, adminToken string, body map[string]any) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/admin/treasury/params", adminToken, body, &out, "")
	return out, err
}

func (c *Client) AdminAddLiquidity(ctx context.Context, adminToken string, baseAmount, quoteAmount uint64, idem string) (map[string]any, error) {
	var out map[string]any
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/admin/treasury/liquidity", adminToken, map[string]any{
		"base_amount":  baseAmount,
		"quote_amount": quoteAmount,
	}, &out, idem)
	return out, err
}

func (c *Client) jsonRequest(ctx context.Context, method, path, token string, in any, out any, idem string) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if idem != "" {
		req.Header.Set("Idempotency-Key", idem)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("api status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
