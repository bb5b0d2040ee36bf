package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeLogging()
	c.normalizeThumbnails()
	c.normalizeMaster()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ThumbCacheDB) == "" {
		c.Paths.ThumbCacheDB = defaultThumbCacheDB
	}
	if c.Paths.ThumbCacheDB, err = expandPath(c.Paths.ThumbCacheDB); err != nil {
		return fmt.Errorf("paths.thumb_cache_db: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	if strings.TrimSpace(c.Logging.Level) == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Format) == "" {
		c.Logging.Format = defaultLogFormat
	}
}

func (c *Config) normalizeThumbnails() {
	if c.Thumbnails.Width <= 0 {
		c.Thumbnails.Width = defaultThumbWidth
	}
	if c.Thumbnails.Height <= 0 {
		c.Thumbnails.Height = defaultThumbHeight
	}
	if strings.TrimSpace(c.Thumbnails.FFmpegBinary) == "" {
		c.Thumbnails.FFmpegBinary = defaultFFmpegBinary
	}
	if strings.TrimSpace(c.Thumbnails.FFprobeBinary) == "" {
		c.Thumbnails.FFprobeBinary = defaultFFprobeBinary
	}
	if c.Thumbnails.MaxAgeDays <= 0 {
		c.Thumbnails.MaxAgeDays = defaultThumbMaxAgeDays
	}
	if c.Thumbnails.MaxMiB <= 0 {
		c.Thumbnails.MaxMiB = defaultThumbMaxMiB
	}
}

func (c *Config) normalizeMaster() {
	if c.Master.FrameWidth <= 0 {
		c.Master.FrameWidth = defaultFrameWidth
	}
	if c.Master.FrameHeight <= 0 {
		c.Master.FrameHeight = defaultFrameHeight
	}
	if c.Master.FrameRate <= 0 {
		c.Master.FrameRate = defaultFrameRate
	}
	if c.Master.SampleRate <= 0 {
		c.Master.SampleRate = defaultSampleRate
	}
	if strings.TrimSpace(c.Master.AspectRatio) == "" {
		c.Master.AspectRatio = defaultAspectRatio
	}
}
