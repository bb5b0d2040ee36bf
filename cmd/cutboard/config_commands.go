package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cutboard/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigValidateCommand())
	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand())

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s (exists: %s)\n\n", path, yesNo(exists))

			settings := [][2]string{
				{"paths.log_dir", cfg.Paths.LogDir},
				{"paths.thumb_cache_db", cfg.Paths.ThumbCacheDB},
				{"logging.level", cfg.Logging.Level},
				{"logging.format", cfg.Logging.Format},
				{"thumbnails.auto", yesNo(cfg.Thumbnails.Auto)},
				{"thumbnails.width", fmt.Sprintf("%d", cfg.Thumbnails.Width)},
				{"thumbnails.height", fmt.Sprintf("%d", cfg.Thumbnails.Height)},
				{"thumbnails.ffmpeg_binary", cfg.Thumbnails.FFmpegBinary},
				{"thumbnails.ffprobe_binary", cfg.Thumbnails.FFprobeBinary},
				{"thumbnails.max_age_days", fmt.Sprintf("%d", cfg.Thumbnails.MaxAgeDays)},
				{"thumbnails.max_mib", fmt.Sprintf("%d", cfg.Thumbnails.MaxMiB)},
				{"master.frame_width", fmt.Sprintf("%d", cfg.Master.FrameWidth)},
				{"master.frame_height", fmt.Sprintf("%d", cfg.Master.FrameHeight)},
				{"master.frame_rate", fmt.Sprintf("%g", cfg.Master.FrameRate)},
				{"master.sample_rate", fmt.Sprintf("%d", cfg.Master.SampleRate)},
				{"master.aspect_ratio", cfg.Master.AspectRatio},
			}
			for _, setting := range settings {
				fmt.Fprintf(out, "%-28s %s\n", setting[0], setting[1])
			}
			return nil
		},
	}
}
