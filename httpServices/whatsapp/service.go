package whatsapp

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client talks to the WhatsApp Cloud API for booking confirmations and
// reminders. Callers must have already verified the tenant's plan includes
// whatsappNotifications; this client only sends.
type Client struct {
	http          *resty.Client
	phoneNumberID string
}

// NewClient builds a WhatsApp client. baseURL is the Graph API root,
// phoneNumberID the sender, token the system-user access token.
func NewClient(baseURL, phoneNumberID, token string) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:          http,
		phoneNumberID: phoneNumberID,
	}
}

// SendText delivers a plain text message to the given phone number and
// returns the provider message id.
func (c *Client) SendText(to, body string) (string, error) {
	msg := textMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "text",
	}
	msg.Text.Body = body

	var out sendResponse
	resp, err := c.http.R().
		SetBody(msg).
		SetResult(&out).
		SetError(&out).
		Post(fmt.Sprintf("/%s/messages", c.phoneNumberID))
	if err != nil {
		return "", fmt.Errorf("whatsapp send: %w", err)
	}

	if resp.IsError() {
		if out.Error != nil {
			return "", fmt.Errorf("whatsapp API error %d: %s", out.Error.Code, out.Error.Message)
		}
		return "", errors.New("whatsapp API returned non-OK status: " + resp.Status())
	}

	if len(out.Messages) == 0 {
		return "", errors.New("whatsapp API returned no message id")
	}
	return out.Messages[0].ID, nil
}

// SendBookingConfirmation formats and sends the standard confirmation text.
func (c *Client) SendBookingConfirmation(to, businessName, serviceName string, startsAt time.Time) (string, error) {
	body := fmt.Sprintf("Your booking at %s for %s on %s is confirmed. See you there!",
		businessName, serviceName, startsAt.Format("Mon, 02 Jan 2006 15:04"))
	return c.SendText(to, body)
}
