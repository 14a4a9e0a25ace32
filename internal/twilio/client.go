package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.twilio.com"

// Client is a minimal Twilio Messages API client.
type Client struct {
	httpClient *http.Client
	accountSID string
	authToken  string
	baseURL    string
}

// NewClient constructs a new Twilio client.
func NewClient(httpClient *http.Client, accountSID, authToken string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		accountSID: accountSID,
		authToken:  authToken,
		baseURL:    defaultBaseURL,
	}
}

// SetBaseURL overrides the API host (used to point at a stub server).
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimSuffix(u, "/")
}

// Configured reports whether account credentials are present.
func (c *Client) Configured() bool {
	return c.accountSID != "" && c.authToken != ""
}

// Message is the provider's view of a created message.
type Message struct {
	SID       string `json:"sid"`
	Status    string `json:"status"`
	To        string `json:"to"`
	From      string `json:"from"`
	Body      string `json:"body"`
	ErrorCode *int   `json:"error_code"`

	// Raw holds the undecoded response body for audit logging.
	Raw []byte `json:"-"`
}

// APIError carries the provider's HTTP status and error payload.
type APIError struct {
	StatusCode int
	Code       int    `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("twilio: status %d (code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("twilio: unexpected status %d", e.StatusCode)
}

// NormalizeWhatsApp prefixes the destination with the whatsapp: address
// scheme when absent.
func NormalizeWhatsApp(phone string) string {
	phone = strings.TrimSpace(phone)
	if strings.HasPrefix(phone, "whatsapp:") {
		return phone
	}
	return "whatsapp:" + phone
}

// SendMessage submits a message. mediaURL may be empty for plain text.
// Success is the provider acknowledging with a created message resource.
func (c *Client) SendMessage(ctx context.Context, from, to, body, mediaURL string) (*Message, error) {
	form := url.Values{}
	form.Set("From", from)
	form.Set("To", to)
	form.Set("Body", body)
	if mediaURL != "" {
		form.Set("MediaUrl", mediaURL)
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(apiErr)
		return nil, apiErr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("twilio: decode response: %w", err)
	}
	msg.Raw = data
	return &msg, nil
}
