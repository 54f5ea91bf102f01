package cartsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/abdelemjid/carpet-shop-sub000/models"
)

// Client talks to the cart endpoints of the shop API and implements Remote.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a cart API client; token is the bearer JWT of the
// authenticated user.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// syncLine is the wire shape POST /user/cart expects for each line.
type syncLine struct {
	ProductID     uint     `json:"productId"`
	OrderQuantity int      `json:"orderQuantity"`
	ProductName   string   `json:"productName"`
	ProductPrice  float64  `json:"productPrice"`
	ProductImages []string `json:"productImages"`
}

type syncResponse struct {
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
	Updated  int    `json:"updated"`
}

func (c *Client) Fetch(ctx context.Context) ([]models.CartLine, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/user/cart", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch cart: unexpected status %d", resp.StatusCode)
	}

	var lines []models.CartLine
	if err := json.NewDecoder(resp.Body).Decode(&lines); err != nil {
		return nil, fmt.Errorf("fetch cart: %w", err)
	}
	return lines, nil
}

func (c *Client) Replace(ctx context.Context, lines []models.CartLine) (int, int, error) {
	payload := make([]syncLine, 0, len(lines))
	for _, l := range lines {
		payload = append(payload, syncLine{
			ProductID:     l.ProductID,
			OrderQuantity: l.OrderQuantity,
			ProductName:   l.ProductName,
			ProductPrice:  l.ProductPrice,
			ProductImages: l.ProductImages,
		})
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/user/cart", bytes.NewReader(body))
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Authorization", c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("replace cart: unexpected status %d", resp.StatusCode)
	}

	var out syncResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, 0, fmt.Errorf("replace cart: %w", err)
	}
	return out.Inserted, out.Updated, nil
}
