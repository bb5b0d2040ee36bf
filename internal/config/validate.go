package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateThumbnails(); err != nil {
		return err
	}
	if err := c.validateMaster(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateThumbnails() error {
	if c.Thumbnails.Width < 16 || c.Thumbnails.Width > 1024 {
		return errors.New("thumbnails.width must be between 16 and 1024")
	}
	if c.Thumbnails.Height < 16 || c.Thumbnails.Height > 1024 {
		return errors.New("thumbnails.height must be between 16 and 1024")
	}
	return nil
}

func (c *Config) validateMaster() error {
	if c.Master.FrameRate <= 0 || c.Master.FrameRate > 240 {
		return errors.New("master.frame_rate must be between 0 and 240")
	}
	ratio := strings.TrimSpace(c.Master.AspectRatio)
	parts := strings.Split(ratio, ":")
	if len(parts) != 2 {
		return fmt.Errorf("master.aspect_ratio %q must look like 16:9", ratio)
	}
	return nil
}
