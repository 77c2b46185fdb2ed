package labs

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gfz-metadata/mex/config"
)

// a fake registry serving a single laboratory, counting requests
func fakeRegistry(requests *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			*requests++
			if r.URL.Path != "/laboratories/9001" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{
				"lab_id": "9001",
				"name": "Tectonic Modelling Laboratory",
				"affiliation": "Utrecht University"
			}`)
		}))
}

func testRegistry(url string) *Registry {
	return &Registry{
		URL:      url,
		Client:   http.Client{Timeout: time.Second},
		CacheTTL: time.Minute,
		cache:    make(map[string]cacheEntry),
	}
}

func TestResolveKnownLabId(t *testing.T) {
	assert := assert.New(t)
	var requests int
	server := fakeRegistry(&requests)
	defer server.Close()

	registry := testRegistry(server.URL)
	name, affiliation, ok := registry.Resolve("9001")
	assert.True(ok)
	assert.Equal("Tectonic Modelling Laboratory", name)
	assert.Equal("Utrecht University", affiliation)
}

// tests that an unknown labid is a miss, not an error
func TestResolveUnknownLabId(t *testing.T) {
	assert := assert.New(t)
	var requests int
	server := fakeRegistry(&requests)
	defer server.Close()

	registry := testRegistry(server.URL)
	name, _, ok := registry.Resolve("0000")
	assert.False(ok)
	assert.Equal("", name)
}

// tests that resolved entries (hits and misses both) are served from cache
func TestResolveCachesEntries(t *testing.T) {
	assert := assert.New(t)
	var requests int
	server := fakeRegistry(&requests)
	defer server.Close()

	registry := testRegistry(server.URL)
	for i := 0; i < 3; i++ {
		_, _, ok := registry.Resolve("9001")
		assert.True(ok)
		_, _, ok = registry.Resolve("0000")
		assert.False(ok)
	}
	assert.Equal(2, requests)
}

// tests that expired cache entries are fetched again
func TestResolveExpiresEntries(t *testing.T) {
	assert := assert.New(t)
	var requests int
	server := fakeRegistry(&requests)
	defer server.Close()

	registry := testRegistry(server.URL)
	registry.CacheTTL = -time.Second // every entry expires immediately
	registry.Resolve("9001")
	registry.Resolve("9001")
	assert.Equal(2, requests)
}

// tests that an unreachable registry degrades to a miss
func TestResolveUnreachableRegistry(t *testing.T) {
	registry := testRegistry("http://127.0.0.1:1")
	_, _, ok := registry.Resolve("9001")
	assert.False(t, ok)
}

func TestNewRegistry(t *testing.T) {
	assert := assert.New(t)
	err := config.Init([]byte(`
laboratories:
  url: https://registry.example.org/api
  timeout: 5
  cache_ttl: 60
`))
	assert.Nil(err)
	registry, err := NewRegistry()
	assert.Nil(err)
	assert.Equal("https://registry.example.org/api", registry.URL)
	assert.Equal(time.Minute, registry.CacheTTL)
	assert.Equal(5*time.Second, registry.Client.Timeout)
}

func TestNewRegistryRequiresURL(t *testing.T) {
	assert := assert.New(t)
	assert.Nil(config.Init([]byte("service:\n  port: 8080\n")))
	_, err := NewRegistry()
	assert.NotNil(err)
}
