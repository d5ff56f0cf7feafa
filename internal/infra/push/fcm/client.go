// Package fcm implements the notify.Pusher interface against an FCM-style
// push gateway.
package fcm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/walletherald/walletherald/internal/notify"

	"github.com/hashicorp/go-retryablehttp"
)

// client implements the notify.Pusher interface.
type client struct {
	url  string
	key  string
	conn *retryablehttp.Client
}

// Ensure client implements the notify.Pusher interface at compile time.
var _ notify.Pusher = (*client)(nil)

// NewClient creates a push gateway client. key is the server key carried on
// the Authorization header of every send.
func NewClient(url, key string, conn *retryablehttp.Client) *client {
	return &client{
		url:  url,
		key:  key,
		conn: conn,
	}
}

// message is the gateway wire format for one push.
type message struct {
	To           string            `json:"to"`
	Notification messageBody       `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
	Priority     string            `json:"priority"`
}

type messageBody struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Send delivers one notification to the device token and returns the
// gateway's message id as the receipt.
func (c *client) Send(ctx context.Context, token string, n notify.Notification) (string, error) {
	body, err := json.Marshal(message{
		To: token,
		Notification: messageBody{
			Title: n.Title,
			Body:  n.Body,
		},
		Data:     n.Data,
		Priority: "high",
	})
	if err != nil {
		return "", err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "key="+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.conn.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("push gateway returned status %d: %s", resp.StatusCode, respBody)
	}

	var out struct {
		Results []struct {
			MessageID string `json:"message_id"`
			Error     string `json:"error"`
		} `json:"results"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", err
	}

	if len(out.Results) == 0 {
		return "", fmt.Errorf("push gateway returned no results")
	}
	if result := out.Results[0]; result.Error != "" {
		return "", fmt.Errorf("push gateway rejected message: %s", result.Error)
	}

	return out.Results[0].MessageID, nil
}
