package phishnet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"time"

	log "github.com/sirupsen/logrus"
)

// ErrFetch wraps every transport-level failure so callers can treat a bad
// fetch as one recoverable condition.
var ErrFetch = errors.New("failed to fetch setlist page")

var bandSlugRe = regexp.MustCompile(`^[a-z0-9-]+$`)

// Client fetches the latest-show page for a band from phish.net.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

// FetchLatestShowMarkup returns the complete markup document for the most
// recent show of the given band slug ("phish", "trey", "mike", "tab").
func (c *Client) FetchLatestShowMarkup(ctx context.Context, band string) (string, error) {
	if !bandSlugRe.MatchString(band) {
		return "", fmt.Errorf("%w: invalid band slug %q", ErrFetch, band)
	}

	url := fmt.Sprintf("%s/setlists/%s/", c.baseURL, band)
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}

	// Set realistic browser headers to avoid blocks
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	log.Tracef("Fetching setlist page: %s", url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFetch, err)
	}

	return string(body), nil
}
