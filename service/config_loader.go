package service

import (
	"github.com/lempiji/similarity-d/domain"
	"github.com/lempiji/similarity-d/internal/config"
)

// ConfigurationLoaderImpl implements the domain.ConfigurationLoader
// interface on top of .similarity.toml files.
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader.
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads a scan request from a config file. With an empty path
// the file is discovered by walking up from the working directory; when
// none is found the defaults are returned unchanged.
func (l *ConfigurationLoaderImpl) LoadConfig(path string) (*domain.ScanRequest, error) {
	req := domain.DefaultScanRequest()

	if path == "" {
		path = config.FindConfigFile(".")
		if path == "" {
			return req, nil
		}
	}

	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		return nil, err
	}

	cfg.ApplyToRequest(req)
	req.ConfigPath = path
	return req, nil
}

// GetDefaultConfig returns the default scan configuration.
func (l *ConfigurationLoaderImpl) GetDefaultConfig() *domain.ScanRequest {
	return domain.DefaultScanRequest()
}
