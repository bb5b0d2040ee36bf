package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"cutboard/internal/board"
	"cutboard/internal/config"
	"cutboard/internal/sbfile"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// loadStoryboard opens a storyboard file with the configured master defaults.
func (c *commandContext) loadStoryboard(path string) (*sbfile.File, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	master := board.Master{
		FrameWidth:  cfg.Master.FrameWidth,
		FrameHeight: cfg.Master.FrameHeight,
		FrameRate:   cfg.Master.FrameRate,
		SampleRate:  cfg.Master.SampleRate,
		AspectRatio: cfg.Master.AspectRatio,
	}
	return sbfile.Load(path, board.KindStoryboard, master)
}

// withFileLock runs fn while holding an advisory lock next to the storyboard
// file, so two cutboard invocations never rewrite the same file at once.
func withFileLock(path string, fn func() error) error {
	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire storyboard lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("storyboard %s is locked by another cutboard process", path)
	}
	defer lock.Unlock()
	return fn()
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
