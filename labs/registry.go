// Package labs provides a client for the MSL laboratory registry, the
// controlled vocabulary service that maps laboratory identifiers (labids)
// found in imported documents to laboratory names and affiliations.
package labs

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/StalkR/hsts"

	"github.com/gfz-metadata/mex/config"
)

// This error type is returned when a redirect to an insecure (non-HTTPS)
// endpoint is attempted.
type DowngradedRedirectError struct {
	Endpoint string
}

func (e DowngradedRedirectError) Error() string {
	return fmt.Sprintf("Redirect to insecure endpoint attempted: %s", e.Endpoint)
}

// This error type is returned when the registry responds with an unexpected
// status code.
type UnexpectedStatusError struct {
	LabId      string
	StatusCode int
}

func (e UnexpectedStatusError) Error() string {
	return fmt.Sprintf("Registry lookup for %s returned status %d",
		e.LabId, e.StatusCode)
}

// a cached registry entry with its expiration time
type cacheEntry struct {
	lab     Laboratory
	found   bool
	expires time.Time
}

// A Laboratory is a registry entry: the curated name and affiliation
// registered for a labid.
type Laboratory struct {
	LabId       string `json:"lab_id"`
	Name        string `json:"name"`
	Affiliation string `json:"affiliation,omitempty"`
}

// A Registry looks up laboratories by labid over HTTP, caching fetched
// entries for a configurable interval so repeated imports don't hammer the
// vocabulary service.
type Registry struct {
	// base URL of the registry service
	URL string
	// HTTP client used for lookups
	Client http.Client
	// how long a fetched entry stays cached
	CacheTTL time.Duration

	mutex sync.Mutex
	cache map[string]cacheEntry
}

// NewRegistry creates a registry client from the laboratories section of
// the service configuration.
func NewRegistry() (*Registry, error) {
	if config.Laboratories.URL == "" {
		return nil, fmt.Errorf("No laboratory registry URL was configured!")
	}
	return &Registry{
		URL:      config.Laboratories.URL,
		Client:   secureHttpClient(time.Duration(config.Laboratories.Timeout) * time.Second),
		CacheTTL: time.Duration(config.Laboratories.CacheTTL) * time.Second,
		cache:    make(map[string]cacheEntry),
	}, nil
}

// Here's a secure HTTP client for talking to the registry. It sets a
// reasonable timeout and enables HTTP Strict Transport Security (HSTS).
func secureHttpClient(timeout time.Duration) http.Client {
	client := http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if req.URL.Scheme == "http" {
				return &DowngradedRedirectError{
					Endpoint: fmt.Sprintf("%s%s", req.URL.Host, req.URL.Path),
				}
			}
			return http.ErrUseLastResponse
		},
	}
	client.Transport = hsts.New(client.Transport) // enable HSTS
	return client
}

// Resolve looks up a laboratory by its labid, returning its registered name
// and affiliation. A labid unknown to the registry (or a registry that can't
// be reached) produces ok == false, in which case the caller keeps whatever
// values it already has.
func (registry *Registry) Resolve(labId string) (name, affiliation string, ok bool) {
	if entry, found := registry.cachedEntry(labId); found {
		return entry.lab.Name, entry.lab.Affiliation, entry.found
	}

	lab, err := registry.fetch(labId)
	if err != nil {
		var statusErr *UnexpectedStatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			// a miss is a valid, cacheable answer
			registry.storeEntry(labId, Laboratory{}, false)
			return "", "", false
		}
		slog.Error(fmt.Sprintf("Laboratory registry lookup for %s failed: %s",
			labId, err.Error()))
		return "", "", false
	}

	registry.storeEntry(labId, lab, true)
	return lab.Name, lab.Affiliation, true
}

// fetch performs a GET request against the registry for the given labid.
func (registry *Registry) fetch(labId string) (Laboratory, error) {
	var lab Laboratory
	resource := fmt.Sprintf("%s/laboratories/%s", registry.URL, labId)
	slog.Debug(fmt.Sprintf("GET: %s", resource))
	req, err := http.NewRequest(http.MethodGet, resource, http.NoBody)
	if err != nil {
		return lab, err
	}
	req.Header.Add("Accept", "application/json")
	resp, err := registry.Client.Do(req)
	if err != nil {
		return lab, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return lab, &UnexpectedStatusError{LabId: labId, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return lab, err
	}
	err = json.Unmarshal(body, &lab)
	return lab, err
}

func (registry *Registry) cachedEntry(labId string) (cacheEntry, bool) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	entry, found := registry.cache[labId]
	if !found || time.Now().After(entry.expires) {
		return cacheEntry{}, false
	}
	return entry, true
}

func (registry *Registry) storeEntry(labId string, lab Laboratory, found bool) {
	registry.mutex.Lock()
	defer registry.mutex.Unlock()
	registry.cache[labId] = cacheEntry{
		lab:     lab,
		found:   found,
		expires: time.Now().Add(registry.CacheTTL),
	}
}
