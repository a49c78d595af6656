package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
	"unicode"

	"go.uber.org/zap"
)

const requestTimeout = 15 * time.Second

// Client calls the external text-translation API. Best effort: any
// failure, timeout included, produces no translation rather than an
// error. Single attempt, no retry.
type Client struct {
	apiURL     string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(apiURL string, log *zap.Logger) *Client {
	return &Client{
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: requestTimeout},
		log:        log,
	}
}

type request struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type response struct {
	Code int    `json:"code"`
	Text string `json:"text"`
}

// Translate returns the translated text, or ok=false when the text has
// no usable direction or the call fails.
func (c *Client) Translate(ctx context.Context, text string) (string, bool) {
	if c.apiURL == "" {
		return "", false
	}
	source, target, ok := detectDirection(text)
	if !ok {
		return "", false
	}

	body, err := json.Marshal(request{Text: text, Source: source, Target: target})
	if err != nil {
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("translate request failed", zap.Error(err))
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debug("translate request rejected", zap.Int("status", resp.StatusCode))
		return "", false
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", false
	}
	if out.Text == "" {
		return "", false
	}
	return out.Text, true
}

// detectDirection picks the language pair: any CJK ideograph or kana
// means Japanese source; otherwise three or more ASCII letters means
// English source; otherwise the text is not worth translating.
func detectDirection(text string) (source, target string, ok bool) {
	letters := 0
	for _, r := range text {
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana) {
			return "ja", "en", true
		}
		if r < 128 && unicode.IsLetter(r) {
			letters++
		}
	}
	if letters >= 3 {
		return "en", "ja", true
	}
	return "", "", false
}
