package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/stencil-labs/stencil/internal/template"
)

const (
	// DefaultIndexURL is the published template index.
	DefaultIndexURL = "https://raw.githubusercontent.com/stencil-labs/catalog/main/index.json"

	// DefaultTTL is the cache freshness threshold.
	DefaultTTL = 24 * time.Hour
)

// Entry is one template in the remote index.
type Entry struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Stack         string   `json:"stack,omitempty"`
	Repo          string   `json:"repo"`
	Branch        string   `json:"branch,omitempty"`
	Tags          []string `json:"tags,omitempty"`
	MinCLIVersion string   `json:"minCliVersion,omitempty"`
}

// Index is the versioned template list served at the index URL.
type Index struct {
	Version   string  `json:"version"`
	Templates []Entry `json:"templates"`
}

// Client loads the template index, preferring a fresh local cache.
type Client struct {
	URL        string
	CacheDir   string
	TTL        time.Duration
	HTTPClient *http.Client
}

// NewClient builds a client with the default index URL and TTL.
func NewClient(cacheDir string) *Client {
	return &Client{
		URL:        DefaultIndexURL,
		CacheDir:   cacheDir,
		TTL:        DefaultTTL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Load returns the template index. A fresh cache is served directly unless
// force is set. Otherwise the remote is fetched and cached; when the fetch
// fails, the last good cache is served regardless of age.
func (c *Client) Load(force bool) (*Index, error) {
	cache, _ := LoadCache(c.CacheDir)

	if !force && !IsCacheStale(cache, c.TTL) {
		return &cache.Index, nil
	}

	index, err := c.fetch()
	if err != nil {
		if cache != nil {
			return &cache.Index, nil
		}
		return nil, err
	}

	_ = SaveCache(c.CacheDir, &Cache{Index: *index, FetchedAt: time.Now()})
	return index, nil
}

// Refresh fetches the remote index unconditionally and updates the cache.
// Unlike Load it never falls back to a cached copy, so a failed fetch is
// reported instead of masked.
func (c *Client) Refresh() (*Index, error) {
	index, err := c.fetch()
	if err != nil {
		return nil, err
	}

	_ = SaveCache(c.CacheDir, &Cache{Index: *index, FetchedAt: time.Now()})
	return index, nil
}

// fetch retrieves and validates the remote index.
func (c *Client) fetch() (*Index, error) {
	resp, err := c.HTTPClient.Get(c.URL)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog index returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading catalog index: %w", err)
	}

	return ParseIndex(body)
}

// ParseIndex decodes and validates index bytes. A response without a version
// field or a templates array is rejected.
func ParseIndex(data []byte) (*Index, error) {
	var raw struct {
		Version   string            `json:"version"`
		Templates []json.RawMessage `json:"templates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing catalog index: %w", err)
	}
	if raw.Version == "" {
		return nil, fmt.Errorf("catalog index has no version field")
	}
	if raw.Templates == nil {
		return nil, fmt.Errorf("catalog index has no templates array")
	}

	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("parsing catalog index: %w", err)
	}
	return &index, nil
}

// Compatible reports whether an entry can be used by the given CLI version.
// Entries without a minimum, and dev builds, are always compatible.
func Compatible(entry Entry, cliVersion string) bool {
	if entry.MinCLIVersion == "" {
		return true
	}

	current, err := semver.NewVersion(cliVersion)
	if err != nil {
		// Unparsable running version (e.g. "dev"): don't block.
		return true
	}
	minimum, err := semver.NewVersion(entry.MinCLIVersion)
	if err != nil {
		return true
	}
	return !current.LessThan(minimum)
}

// Descriptor converts a catalog entry into a base template descriptor. The
// artifact inside the downloaded template refines it later.
func Descriptor(entry Entry) template.Descriptor {
	return template.Descriptor{
		ID:          entry.ID,
		Slug:        entry.ID,
		Name:        entry.Name,
		Description: entry.Description,
		Stack:       entry.Stack,
		Source:      template.Source{Repo: entry.Repo, Branch: entry.Branch},
		Tags:        entry.Tags,
		Transforms: []template.TransformSpec{
			{Kind: "builtin", Name: template.TransformUpdatePackageJSON},
		},
	}
}

// Find looks up an entry by id.
func (i *Index) Find(id string) (Entry, bool) {
	for _, entry := range i.Templates {
		if entry.ID == id {
			return entry, true
		}
	}
	return Entry{}, false
}
