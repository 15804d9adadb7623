package sources

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"time"

	"kelp.dev/kelp/kel"
)

// aidPattern extracts the AID from an OOBI URL path: /oobi/{aid} or
// /oobi/{aid}/....
var aidPattern = regexp.MustCompile(`/oobi/([A-Za-z0-9_-]{44})`)

// DefaultOOBITimeout bounds OOBI fetches when the caller sets none.
const DefaultOOBITimeout = 30 * time.Second

// OOBI fetches a KEL from a witness or watcher OOBI HTTP endpoint.
type OOBI struct {
	url    string
	aid    string
	client *http.Client
	parser *kel.Parser
}

// NewOOBI constructs an OOBI source. A non-positive timeout falls back to
// DefaultOOBITimeout.
func NewOOBI(oobiURL string, timeout time.Duration) *OOBI {
	if timeout <= 0 {
		timeout = DefaultOOBITimeout
	}
	return &OOBI{
		url:    oobiURL,
		aid:    extractAID(oobiURL),
		client: &http.Client{Timeout: timeout},
		parser: kel.NewParser(),
	}
}

func extractAID(oobiURL string) string {
	if m := aidPattern.FindStringSubmatch(oobiURL); m != nil {
		return m[1]
	}
	return ""
}

// Identifier returns the AID embedded in the OOBI URL, or "".
func (o *OOBI) Identifier() string { return o.aid }

func (o *OOBI) Description() string {
	u, err := url.Parse(o.url)
	if err != nil || u.Host == "" {
		return fmt.Sprintf("OOBI: %s", o.url)
	}
	if o.aid != "" {
		return fmt.Sprintf("OOBI: %s (%s...)", u.Host, o.aid[:16])
	}
	return fmt.Sprintf("OOBI: %s", u.Host)
}

func (o *OOBI) FetchEvents(ctx context.Context, aid string) ([]kel.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: HTTP %d from %s", ErrFetch, resp.StatusCode, o.url)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return filterByAID(o.parser.Parse(data), aid), nil
}

// Close releases idle HTTP connections.
func (o *OOBI) Close() error {
	o.client.CloseIdleConnections()
	return nil
}

var (
	oobiFlagURL     string
	oobiFlagTimeout time.Duration
)

func init() {
	MustRegister(Factory{
		Name:        "oobi",
		Description: "Fetch a KEL from an OOBI HTTP endpoint",
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&oobiFlagURL, "oobi-url", "", "OOBI URL to fetch from")
			fs.DurationVar(&oobiFlagTimeout, "oobi-timeout", DefaultOOBITimeout, "OOBI fetch timeout")
		},
		Open: func() (Source, error) {
			if oobiFlagURL == "" {
				return nil, fmt.Errorf("sources: -oobi-url is required")
			}
			return NewOOBI(oobiFlagURL, oobiFlagTimeout), nil
		},
	})
}
