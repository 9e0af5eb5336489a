package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLProvider implements ConfigProvider for YAML configuration files
type YAMLProvider struct {
	filename string
	config   *ConfigData
}

// NewYAMLProvider creates a new YAML configuration provider
func NewYAMLProvider(filename string) *YAMLProvider {
	return &YAMLProvider{
		filename: filename,
	}
}

// YAML-tagged mirror structs; converted to the internal format on load.
type generatorYAML struct {
	Count    int    `yaml:"count,omitempty"`
	Interval string `yaml:"interval,omitempty"`
	Seed     uint64 `yaml:"seed,omitempty"`
}

type restServerYAML struct {
	ListenAddr  string `yaml:"listen_addr,omitempty"`
	Port        int    `yaml:"port,omitempty"`
	TLSCertPath string `yaml:"cert,omitempty"`
	TLSKeyPath  string `yaml:"key,omitempty"`
	PageTitle   string `yaml:"page_title,omitempty"`
}

type controllerYAML struct {
	Type       string          `yaml:"type"`
	RESTServer *restServerYAML `yaml:"rest,omitempty"`
}

// LoadConfig loads the complete configuration from the YAML file
func (y *YAMLProvider) LoadConfig() (*ConfigData, error) {
	cfgFile, err := os.ReadFile(y.filename)
	if err != nil {
		return nil, err
	}

	var yamlConfig struct {
		Generator   generatorYAML    `yaml:"generator,omitempty"`
		Controllers []controllerYAML `yaml:"controllers,omitempty"`
	}

	if err := yaml.Unmarshal(cfgFile, &yamlConfig); err != nil {
		return nil, err
	}

	config := &ConfigData{
		Controllers: make([]ControllerData, len(yamlConfig.Controllers)),
	}

	config.Generator = GeneratorData{
		Count: yamlConfig.Generator.Count,
		Seed:  yamlConfig.Generator.Seed,
	}
	if yamlConfig.Generator.Interval != "" {
		interval, err := time.ParseDuration(yamlConfig.Generator.Interval)
		if err != nil {
			return nil, fmt.Errorf("invalid generator.interval %q: %w", yamlConfig.Generator.Interval, err)
		}
		config.Generator.Interval = interval
	}

	for i, controller := range yamlConfig.Controllers {
		config.Controllers[i] = ControllerData{
			Type: controller.Type,
		}
		if controller.RESTServer != nil {
			config.Controllers[i].RESTServer = &RESTServerData{
				ListenAddr:  controller.RESTServer.ListenAddr,
				Port:        controller.RESTServer.Port,
				TLSCertPath: controller.RESTServer.TLSCertPath,
				TLSKeyPath:  controller.RESTServer.TLSKeyPath,
				PageTitle:   controller.RESTServer.PageTitle,
			}
		}
	}

	y.config = config
	return config, nil
}

// GetGenerator returns the generator configuration section
func (y *YAMLProvider) GetGenerator() (*GeneratorData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	return &y.config.Generator, nil
}

// GetControllers returns the controller configuration sections
func (y *YAMLProvider) GetControllers() ([]ControllerData, error) {
	if err := y.ensureLoaded(); err != nil {
		return nil, err
	}
	return y.config.Controllers, nil
}

// IsReadOnly reports whether this provider supports mutation.  YAML files are
// always read-only.
func (y *YAMLProvider) IsReadOnly() bool {
	return true
}

// Close releases any resources held by the provider
func (y *YAMLProvider) Close() error {
	return nil
}

func (y *YAMLProvider) ensureLoaded() error {
	if y.config != nil {
		return nil
	}
	_, err := y.LoadConfig()
	return err
}
