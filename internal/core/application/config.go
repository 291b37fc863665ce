package application

import (
	"github.com/btcsuite/btcd/chaincfg"
)

// Config holds the dependencies of the application services, that are lazily
// created and cached at first access
type Config struct {
	Network *chaincfg.Params
	Workers int

	pipeline PipelineService
}

func (c *Config) Validate() error {
	if _, err := c.pipelineService(); err != nil {
		return err
	}
	return nil
}

func (c *Config) PipelineService() PipelineService {
	svc, _ := c.pipelineService()
	return svc
}

func (c *Config) pipelineService() (PipelineService, error) {
	if c.pipeline == nil {
		pipeline, err := NewPipelineService(c.Network, c.Workers)
		if err != nil {
			return nil, err
		}
		c.pipeline = pipeline
	}
	return c.pipeline, nil
}
