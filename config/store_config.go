package config

type storeConfig struct {
	// name of the SQLite file holding resources, import drafts, and the
	// activity journal (created under the service data directory)
	File string `yaml:"file"`
}
