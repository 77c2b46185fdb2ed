// These tests verify that the core utilities work properly.
package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// a minimal valid service configuration
const coreConfig string = `
service:
  port: 8080
  data_directory: /tmp
`

// Tests whether core.Init works once.
func TestInitOnce(t *testing.T) {
	err := Init([]byte(coreConfig))
	assert.Nil(t, err, "core.Init Failed!")
}

// Tests whether core.Init works twice in a row.
func TestInitTwice(t *testing.T) {
	i := 0
	for i < 2 {
		err := Init([]byte(coreConfig))
		assert.Nil(t, err, "core.Init Failed!")
		i++
	}
}

// Tests whether core.Init rejects an invalid configuration.
func TestInitRejectsBadConfig(t *testing.T) {
	err := Init([]byte("service:\n  port: -1\n"))
	assert.NotNil(t, err, "core.Init accepted a bad config!")
}

// Tests whether core.Uptime() returns a positive time duration.
func TestUptime(t *testing.T) {
	Init([]byte(coreConfig))
	uptime := Uptime()
	assert.Greater(t, uptime, 0.0, "Uptime is non-positive.")
}
