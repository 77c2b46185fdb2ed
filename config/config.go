package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// a type with service configuration parameters
type serviceConfig struct {
	// Port on which the service listens‥
	Port int `yaml:"port"`
	// Maximum number of allowed incoming connections.
	MaxConnections int `yaml:"max_connections"`
	// Directory holding service data files (access token file, SQLite store).
	DataDirectory string `yaml:"data_directory"`
	// Maximum accepted size for an uploaded XML document, in bytes.
	MaxImportBytes int64 `yaml:"max_import_bytes"`
	// Base64-encoded fernet key used to decrypt the access token file.
	// DO NOT STORE THIS IN A CONFIG FILE! Use an environment variable instead.
	Secret string `yaml:"secret"`
}

// global config variables
var Service serviceConfig
var Publisher publisherConfig
var Laboratories laboratoryConfig
var Store storeConfig

// This struct performs the unmarshalling from the YAML config file and then
// copies its fields to the globals above.
type configFile struct {
	Service      serviceConfig    `yaml:"service"`
	Publisher    publisherConfig  `yaml:"publisher"`
	Laboratories laboratoryConfig `yaml:"laboratories"`
	Store        storeConfig      `yaml:"store"`
}

// This helper reads configuration data, returning an error indicating success
// or failure. All environment variables of the form ${ENV_VAR} are expanded.
func readConfig(bytes []byte) error {
	// Before we do anything else, expand any provided environment variables.
	bytes = []byte(os.ExpandEnv(string(bytes)))

	var conf configFile
	conf.Service.Port = 8080
	conf.Service.MaxConnections = 100
	conf.Service.DataDirectory = "."
	conf.Service.MaxImportBytes = 4 * 1024 * 1024
	conf.Publisher.Name = "GFZ Helmholtz Centre for Geosciences"
	conf.Publisher.RorId = "https://ror.org/04z8jg394"
	conf.Laboratories.Timeout = 10
	conf.Laboratories.CacheTTL = 900
	conf.Store.File = "mex.db"
	err := yaml.Unmarshal(bytes, &conf)
	if err != nil {
		log.Printf("Couldn't parse configuration data: %s\n", err)
		return err
	}

	// copy the config data into place
	Service = conf.Service
	Publisher = conf.Publisher
	Laboratories = conf.Laboratories
	Store = conf.Store

	return err
}

// This helper validates the given service parameters, returning an
// error indicating success or failure.
func validateServiceParameters(params serviceConfig) error {
	if params.Port < 0 || params.Port > 65535 {
		return fmt.Errorf("Invalid port: %d (must be 0-65535)", params.Port)
	}
	if params.MaxConnections <= 0 {
		return fmt.Errorf("Invalid maxConnections: %d (must be positive)",
			params.MaxConnections)
	}
	if params.MaxImportBytes <= 0 {
		return fmt.Errorf("Invalid maxImportBytes: %d (must be positive)",
			params.MaxImportBytes)
	}
	return nil
}

// This helper validates the given config, returning an error that indicates
// success or failure.
func validateConfig() error {
	err := validateServiceParameters(Service)
	if err != nil {
		return err
	}

	// The default publisher backs a required section of every exported
	// document, so it can't be blanked out.
	if Publisher.Name == "" {
		return fmt.Errorf("No default publisher name was provided!")
	}

	if Laboratories.URL != "" && Laboratories.Timeout <= 0 {
		return fmt.Errorf("Invalid laboratory registry timeout: %d (must be positive)",
			Laboratories.Timeout)
	}
	if Store.File == "" {
		return fmt.Errorf("No store file was provided!")
	}
	return nil
}

// Initializes the metadata exchange service configuration using the given
// YAML byte data.
func Init(yamlData []byte) error {

	// Read the configuration from our YAML file.
	err := readConfig(yamlData)
	if err != nil {
		return err
	}

	// Validate the configuration.
	err = validateConfig()
	return err
}
