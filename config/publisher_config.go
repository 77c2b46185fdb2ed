package config

// The publisher recorded in exported documents when a resource has none
// explicitly assigned.
type publisherConfig struct {
	// the full name of the publishing institution
	Name string `yaml:"name"`
	// the institution's ROR identifier in canonical URL form
	RorId string `yaml:"ror_id"`
}
