package config

// The laboratory registry is the controlled vocabulary service that maps
// MSL laboratory identifiers (labids) to laboratory names and affiliations.
type laboratoryConfig struct {
	// the base URL at which the registry is accessed (empty disables lookups)
	URL string `yaml:"url"`
	// request timeout in seconds
	Timeout int `yaml:"timeout"`
	// number of seconds a fetched registry entry stays cached
	CacheTTL int `yaml:"cache_ttl"`
}
