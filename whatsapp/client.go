package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseUrl = "https://api.ultramsg.com"

	pathChat     = "messages/chat"
	pathImage    = "messages/image"
	pathVideo    = "messages/video"
	pathSettings = "instance/settings"

	maxBodyBytes = 64 * 1024
)

type RateLimiter interface {
	// Wait blocks until the limiter permits an event to happen.
	Wait(ctx context.Context) error
}

// HTTPClient is the part of *http.Client the client needs.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client interface {
	// SetSendDelay configures the delay in seconds the API waits between messages.
	SetSendDelay(ctx context.Context, seconds int) (Response, error)
	SendChat(ctx context.Context, to, body string) (Response, error)
	SendImage(ctx context.Context, to, caption, image string) (Response, error)
	SendVideo(ctx context.Context, to, caption, video string) (Response, error)
}

type Option func(*client)

func WithBaseUrl(baseUrl string) Option {
	return func(c *client) {
		if baseUrl != "" {
			c.baseUrl = strings.TrimRight(baseUrl, "/")
		}
	}
}

func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTps caps outgoing requests per second. Zero or less means no cap.
func WithTps(tps int) Option {
	return func(c *client) {
		if tps > 0 {
			c.rateLimiter = rate.NewLimiter(rate.Limit(tps), 1)
		}
	}
}

type client struct {
	instanceId  string
	token       string
	baseUrl     string
	httpClient  HTTPClient
	rateLimiter RateLimiter
}

func NewClient(instanceId, token string, opts ...Option) Client {
	c := &client{
		instanceId:  instanceId,
		token:       token,
		baseUrl:     DefaultBaseUrl,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		rateLimiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) SetSendDelay(ctx context.Context, seconds int) (Response, error) {
	return c.post(ctx, pathSettings, url.Values{
		"sendDelay": {strconv.Itoa(seconds)},
	})
}

func (c *client) SendChat(ctx context.Context, to, body string) (Response, error) {
	form := messageForm(to)
	form.Set("body", body)
	return c.post(ctx, pathChat, form)
}

func (c *client) SendImage(ctx context.Context, to, caption, image string) (Response, error) {
	form := messageForm(to)
	if caption != "" {
		form.Set("caption", caption)
	}
	form.Set("image", image)
	return c.post(ctx, pathImage, form)
}

func (c *client) SendVideo(ctx context.Context, to, caption, video string) (Response, error) {
	form := messageForm(to)
	if caption != "" {
		form.Set("caption", caption)
	}
	form.Set("video", video)
	return c.post(ctx, pathVideo, form)
}

func messageForm(to string) url.Values {
	return url.Values{
		"priority":    {"1"},
		"referenceId": {""},
		"to":          {to},
	}
}

func (c *client) endpoint(path string) string {
	return fmt.Sprintf("%s/%s/%s?token=%s", c.baseUrl, url.PathEscape(c.instanceId), path, url.QueryEscape(c.token))
}

func (c *client) post(ctx context.Context, path string, form url.Values) (Response, error) {
	//impose tps limit
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), strings.NewReader(form.Encode()))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return Response{}, err
	}

	zap.L().Debug("UltraMsg response", zap.String("path", path), zap.Int("status", resp.StatusCode), zap.ByteString("body", body))

	parsed, err := ParseResponse(body)
	if err != nil {
		return Response{StatusCode: resp.StatusCode}, fmt.Errorf("%s: http %d: %w", path, resp.StatusCode, err)
	}
	parsed.StatusCode = resp.StatusCode
	return parsed, nil
}

// ParseResponse decodes an UltraMsg JSON reply.
func ParseResponse(body []byte) (Response, error) {
	var fields map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return Response{}, fmt.Errorf("malformed response: %w", err)
	}

	var r Response
	if sent, ok := fields["sent"].(string); ok {
		r.Sent = sent
	}
	if msg, ok := fields["message"].(string); ok {
		r.Message = msg
	}
	if id, ok := fields["id"]; ok && id != nil {
		r.Id = fmt.Sprint(id)
	}
	if e, ok := fields["error"]; ok && e != nil {
		if s, ok := e.(string); ok {
			r.Error = s
		} else {
			raw, _ := json.Marshal(e)
			r.Error = string(raw)
		}
	}
	return r, nil
}
