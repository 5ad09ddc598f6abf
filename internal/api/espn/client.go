package espn

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/omarshaarawi/benchwarmer/internal/config"
)

const defaultBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/ffl"

// A season audit makes a box score request per week, which ESPN throttles.
const (
	maxAttempts  = 3
	retryBackoff = 500 * time.Millisecond
)

// StatusError is a non-200 reply from ESPN.
type StatusError struct {
	Code     int
	Endpoint string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.Code, e.Endpoint)
}

func (e *StatusError) retryable() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}

type Client struct {
	httpClient *http.Client
	Config     config.ESPNAPI
	BaseURL    string
	backoff    time.Duration
}

func NewClient(cfg config.ESPNAPI) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		Config:     cfg,
		BaseURL:    defaultBaseURL,
		backoff:    retryBackoff,
	}
}

// Get decodes the JSON reply for endpoint into result. Comma separated
// params become repeated query values, the way ESPN expects views.
func (c *Client) Get(endpoint string, params, headers map[string]string, result any) error {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = c.get(endpoint, params, headers, result)
		var statusErr *StatusError
		if !errors.As(err, &statusErr) || !statusErr.retryable() || attempt == maxAttempts {
			return err
		}
		slog.Debug("Retrying ESPN request", "endpoint", endpoint, "status", statusErr.Code, "attempt", attempt)
		time.Sleep(c.backoff * time.Duration(attempt))
	}
	return err
}

func (c *Client) get(endpoint string, params, headers map[string]string, result any) error {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}

	q := req.URL.Query()
	for key, value := range params {
		for _, v := range strings.Split(value, ",") {
			q.Add(key, strings.TrimSpace(v))
		}
	}
	req.URL.RawQuery = q.Encode()

	c.setCookies(req)
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Endpoint: endpoint}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

// Private leagues need the SWID and espn_s2 cookies of a member.
func (c *Client) setCookies(req *http.Request) {
	if c.Config.SWID != "" {
		req.AddCookie(&http.Cookie{Name: "SWID", Value: c.Config.SWID})
	}
	if c.Config.ESPNS2 != "" {
		req.AddCookie(&http.Cookie{Name: "espn_s2", Value: c.Config.ESPNS2})
	}
}
