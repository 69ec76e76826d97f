// Package versions fetches the catalog of downloadable proxy builds.
package versions

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/tidwall/gjson"

	"mcvelo-cli/pkg/models"
)

// DefaultIndexURL is the published version index queried when no override
// is configured.
const DefaultIndexURL = "https://minedeck.github.io/jars/velocity.json"

const userAgent = "mcvelo"

// Catalog retrieves and parses the version index over HTTP. Transient
// transport failures are retried with exponential backoff; HTTP error
// statuses and malformed documents are not.
type Catalog struct {
	client   *http.Client
	indexURL string
}

// NewCatalog creates a catalog client for the given index URL. An empty
// URL means DefaultIndexURL.
func NewCatalog(indexURL string) *Catalog {
	if indexURL == "" {
		indexURL = DefaultIndexURL
	}
	return &Catalog{
		client:   &http.Client{Timeout: 30 * time.Second},
		indexURL: indexURL,
	}
}

// Fetch retrieves the catalog, newest version first.
func (c *Catalog) Fetch() ([]models.VersionInfo, error) {
	body, err := c.get()
	if err != nil {
		return nil, err
	}
	return parseIndex(body)
}

func (c *Catalog) get() (string, error) {
	var body string
	operation := func() error {
		req, err := http.NewRequest(http.MethodGet, c.indexURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			return err // transport error, retry
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("version index returned HTTP %d", resp.StatusCode))
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		body = string(data)
		return nil
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
	if err := backoff.Retry(operation, policy); err != nil {
		return "", fmt.Errorf("fetch version index %s: %w", c.indexURL, err)
	}
	return body, nil
}

func parseIndex(body string) ([]models.VersionInfo, error) {
	if !gjson.Valid(body) {
		return nil, fmt.Errorf("version index is not valid JSON")
	}
	doc := gjson.Parse(body)

	if status := doc.Get("status"); status.Exists() && status.String() != "ok" {
		return nil, fmt.Errorf("version index reported status %q", status.String())
	}

	var versions []models.VersionInfo
	var parseErr error
	doc.Get("data").ForEach(func(key, entry gjson.Result) bool {
		sha := entry.Get("checksum.sha256")
		if !sha.Exists() || sha.String() == "" {
			parseErr = fmt.Errorf("version %s has no sha256 checksum", key.String())
			return false
		}
		versions = append(versions, models.VersionInfo{
			Version: key.String(),
			Kind:    entry.Get("type").String(),
			URL:     entry.Get("url").String(),
			SHA256:  sha.String(),
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	if len(versions) == 0 {
		return nil, fmt.Errorf("version index is empty")
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].Version > versions[j].Version
	})
	return versions, nil
}
