package mercadopago

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is a thin typed wrapper over the Mercado Pago REST API. Only the
// calls the billing flow needs are implemented.
type Client struct {
	http *resty.Client
}

// NewClient builds a Mercado Pago client against the given API root with the
// seller access token.
func NewClient(baseURL, accessToken string) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(accessToken).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Client{http: http}
}

// CreatePreapproval starts a subscription authorization and returns the
// resource, whose InitPoint is where the payer finishes checkout.
func (c *Client) CreatePreapproval(req PreapprovalRequest) (*Preapproval, error) {
	var out Preapproval
	var apiErr apiError

	resp, err := c.http.R().
		SetBody(req).
		SetResult(&out).
		SetError(&apiErr).
		Post("/preapproval")
	if err != nil {
		return nil, fmt.Errorf("mercadopago create preapproval: %w", err)
	}
	if resp.IsError() {
		if apiErr.Message != "" {
			return nil, fmt.Errorf("mercadopago API error: %s", apiErr.Message)
		}
		return nil, errors.New("mercadopago API returned non-OK status: " + resp.Status())
	}
	return &out, nil
}

// GetPreapproval fetches a subscription authorization by id.
func (c *Client) GetPreapproval(id string) (*Preapproval, error) {
	var out Preapproval
	var apiErr apiError

	resp, err := c.http.R().
		SetResult(&out).
		SetError(&apiErr).
		Get("/preapproval/" + id)
	if err != nil {
		return nil, fmt.Errorf("mercadopago get preapproval: %w", err)
	}
	if resp.IsError() {
		if apiErr.Message != "" {
			return nil, fmt.Errorf("mercadopago API error: %s", apiErr.Message)
		}
		return nil, errors.New("mercadopago API returned non-OK status: " + resp.Status())
	}
	return &out, nil
}

// GetPayment fetches a payment by id.
func (c *Client) GetPayment(id string) (*Payment, error) {
	var out Payment
	var apiErr apiError

	resp, err := c.http.R().
		SetResult(&out).
		SetError(&apiErr).
		Get("/v1/payments/" + id)
	if err != nil {
		return nil, fmt.Errorf("mercadopago get payment: %w", err)
	}
	if resp.IsError() {
		if apiErr.Message != "" {
			return nil, fmt.Errorf("mercadopago API error: %s", apiErr.Message)
		}
		return nil, errors.New("mercadopago API returned non-OK status: " + resp.Status())
	}
	return &out, nil
}
