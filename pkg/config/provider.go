package config

import "time"

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)

	// Get specific configuration sections
	GetGenerator() (*GeneratorData, error)
	GetControllers() ([]ControllerData, error)

	// Configuration management
	IsReadOnly() bool
	Close() error
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Generator   GeneratorData    `json:"generator,omitempty"`
	Controllers []ControllerData `json:"controllers,omitempty"`
}

// GeneratorData holds configuration for the synthetic dataset generator
type GeneratorData struct {
	Count    int           `json:"count,omitempty"`
	Interval time.Duration `json:"interval,omitempty"`
	Seed     uint64        `json:"seed,omitempty"`
}

// ControllerData holds the configuration for various controller backends
type ControllerData struct {
	Type       string          `json:"type,omitempty"`
	RESTServer *RESTServerData `json:"rest,omitempty"`
}

// RESTServerData holds configuration for the REST server controller
type RESTServerData struct {
	ListenAddr  string `json:"listen_addr,omitempty"`
	Port        int    `json:"port,omitempty"`
	TLSCertPath string `json:"cert,omitempty"`
	TLSKeyPath  string `json:"key,omitempty"`
	PageTitle   string `json:"page_title,omitempty"`
}
