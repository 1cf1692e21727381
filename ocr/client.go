package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	defaultTokenURL     = "https://aip.baidubce.com/oauth/2.0/token"
	defaultRecognizeURL = "https://aip.baidubce.com/rest/2.0/ocr/v1/general"

	// Quiz screens mix Chinese and English text.
	languageType = "CHN_ENG"
)

type Config struct {
	AppID     string
	APIKey    string
	SecretKey string
}

// Fragment is one recognized text unit, in the order the provider returned
// it. Left-to-right/top-to-bottom ordering is the provider's concern.
type Fragment struct {
	Text     string
	Location Location
}

// Location is the fragment's bounding box on the submitted image.
type Location struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// ServiceError is a rejection reported by the OCR provider itself, such as
// quota exhaustion. It is fatal to the current run; there is no
// partial-result fallback.
type ServiceError struct {
	Code    int
	Message string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("ocr service error %d: %s", e.Code, e.Message)
}

// Client talks to the Baidu general OCR endpoint.
type Client struct {
	// TokenURL and RecognizeURL default to the Baidu endpoints and are
	// overridable for tests.
	TokenURL     string
	RecognizeURL string

	cfg  Config
	http *http.Client

	mu     sync.Mutex
	token  string
	expiry time.Time
}

func NewClient(cfg Config) *Client {
	return &Client{
		TokenURL:     defaultTokenURL,
		RecognizeURL: defaultRecognizeURL,
		cfg:          cfg,
		http:         &http.Client{Timeout: 20 * time.Second},
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Error       string `json:"error"`
	ErrorDesc   string `json:"error_description"`
}

type recognizeResponse struct {
	ErrorCode   int         `json:"error_code"`
	ErrorMsg    string      `json:"error_msg"`
	WordsResult []wordEntry `json:"words_result"`
}

type wordEntry struct {
	Words    string        `json:"words"`
	Location locationEntry `json:"location"`
}

type locationEntry struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Recognize submits a PNG buffer for recognition and returns the fragments
// in provider order.
func (c *Client) Recognize(ctx context.Context, imageData []byte) ([]Fragment, error) {
	if c.cfg.APIKey == "" || c.cfg.SecretKey == "" {
		return nil, fmt.Errorf("ocr credentials are required")
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	form := url.Values{}
	form.Set("image", base64.StdEncoding.EncodeToString(imageData))
	form.Set("language_type", languageType)

	reqURL := c.RecognizeURL + "?access_token=" + url.QueryEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create OCR request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("OCR request failed: %v", err)
	}
	defer resp.Body.Close()

	var body recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode OCR response: %v", err)
	}
	if body.ErrorCode != 0 {
		return nil, &ServiceError{Code: body.ErrorCode, Message: body.ErrorMsg}
	}

	fragments := make([]Fragment, 0, len(body.WordsResult))
	for _, w := range body.WordsResult {
		fragments = append(fragments, Fragment{
			Text: w.Words,
			Location: Location{
				Left:   w.Location.Left,
				Top:    w.Location.Top,
				Width:  w.Location.Width,
				Height: w.Location.Height,
			},
		})
	}
	return fragments, nil
}

// accessToken returns a cached OAuth token, fetching a fresh one shortly
// before expiry.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.expiry) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", c.cfg.APIKey)
	form.Set("client_secret", c.cfg.SecretKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %v", err)
	}
	defer resp.Body.Close()

	var body tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode token response: %v", err)
	}
	if body.Error != "" {
		return "", fmt.Errorf("token rejected: %s (%s)", body.Error, body.ErrorDesc)
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	c.token = body.AccessToken
	c.expiry = time.Now().Add(time.Duration(body.ExpiresIn)*time.Second - time.Minute)
	return c.token, nil
}
