// Package version resolves the runtime image version used for every unit of
// a Pod.
//
// The lookup is the only network-bound step of a topology resolution. Lookups
// report failures as errors; callers are expected to fall back to
// FallbackVersion.
package version

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	// FallbackVersion is the image tag used whenever the lookup fails or the
	// requested version has not been published.
	FallbackVersion = "master"

	// DefaultRegistryURL lists the published tags of the runtime image.
	DefaultRegistryURL = "https://registry.hub.docker.com/v1/repositories/jinaai/jina/tags"

	// DefaultTimeout bounds a registry lookup including retries.
	DefaultTimeout = 10 * time.Second

	defaultRetryMax = 2
)

// Lookup resolves the image version to deploy.
type Lookup interface {
	ImageVersion(ctx context.Context) (string, error)
}

// LookupError reports a failed registry lookup.
type LookupError struct {
	URL string
	Err error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("image version lookup at %s failed: %v", e.URL, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Static is a Lookup that always returns the same version.
type Static string

// ImageVersion returns the static version.
func (s Static) ImageVersion(context.Context) (string, error) {
	return string(s), nil
}

// RegistryLookup checks whether a runtime version is published as an image
// tag. It returns the version when it is, FallbackVersion otherwise.
type RegistryLookup struct {
	// URL lists tags as a JSON array of {"name": "<tag>"} objects.
	URL string
	// Version is the runtime version to look for.
	Version string
	// Timeout bounds the whole lookup. Zero means DefaultTimeout.
	Timeout time.Duration

	client *retryablehttp.Client
}

// NewRegistryLookup creates a RegistryLookup for version against url.
func NewRegistryLookup(url, version string) *RegistryLookup {
	if url == "" {
		url = DefaultRegistryURL
	}
	c := retryablehttp.NewClient()
	c.RetryMax = defaultRetryMax
	c.RetryWaitMin = 100 * time.Millisecond
	c.RetryWaitMax = time.Second
	c.Logger = nil
	return &RegistryLookup{
		URL:     url,
		Version: version,
		Timeout: DefaultTimeout,
		client:  c,
	}
}

type registryTag struct {
	Name string `json:"name"`
}

// ImageVersion fetches the published tags and checks for r.Version.
func (r *RegistryLookup) ImageVersion(ctx context.Context) (string, error) {
	if r.Version == "" {
		return FallbackVersion, nil
	}

	timeout := r.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tags, err := r.fetchTags(ctx)
	if err != nil {
		return "", &LookupError{URL: r.URL, Err: err}
	}

	if slices.Contains(tags, r.Version) {
		return r.Version, nil
	}
	return FallbackVersion, nil
}

func (r *RegistryLookup) fetchTags(ctx context.Context) ([]string, error) {
	client := r.client
	if client == nil {
		client = retryablehttp.NewClient()
		client.Logger = nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var tags []registryTag
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("failed to decode tag list: %w", err)
	}

	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names, nil
}

// Resolve calls l and returns FallbackVersion if it fails or returns an
// empty version. The lookup error is returned alongside for reporting.
func Resolve(ctx context.Context, l Lookup) (string, error) {
	if l == nil {
		return FallbackVersion, nil
	}
	v, err := l.ImageVersion(ctx)
	if err != nil {
		var lerr *LookupError
		if !errors.As(err, &lerr) {
			err = &LookupError{Err: err}
		}
		return FallbackVersion, err
	}
	if v == "" {
		return FallbackVersion, nil
	}
	return v, nil
}
