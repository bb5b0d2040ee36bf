package config

const (
	defaultLogDir          = "~/.local/share/cutboard/logs"
	defaultThumbCacheDB    = "~/.cache/cutboard/thumbs.db"
	defaultLogLevel        = "info"
	defaultLogFormat       = "console"
	defaultThumbAuto       = true
	defaultThumbWidth      = 160
	defaultThumbHeight     = 90
	defaultThumbMaxAgeDays = 90
	defaultThumbMaxMiB     = 256
	defaultFFmpegBinary    = "ffmpeg"
	defaultFFprobeBinary   = "ffprobe"
	defaultFrameWidth      = 1920
	defaultFrameHeight     = 1080
	defaultFrameRate       = 25.0
	defaultSampleRate      = 48000
	defaultAspectRatio     = "16:9"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:       defaultLogDir,
			ThumbCacheDB: defaultThumbCacheDB,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		Thumbnails: Thumbnails{
			Auto:          defaultThumbAuto,
			Width:         defaultThumbWidth,
			Height:        defaultThumbHeight,
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			MaxAgeDays:    defaultThumbMaxAgeDays,
			MaxMiB:        defaultThumbMaxMiB,
		},
		Master: Master{
			FrameWidth:  defaultFrameWidth,
			FrameHeight: defaultFrameHeight,
			FrameRate:   defaultFrameRate,
			SampleRate:  defaultSampleRate,
			AspectRatio: defaultAspectRatio,
		},
	}
}
