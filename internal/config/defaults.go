package config

const (
	defaultConfigPath    = "~/.config/wadcat/config.toml"
	projectConfigName    = "wadcat.toml"
	defaultInput         = "hashes.csv"
	defaultOutputDir     = "."
	defaultHeaderMarker  = "# "
	defaultInputEncoding = "utf-8"
	defaultIndent        = 2
	maxIndent            = 8
	defaultIndexPath     = "hashes.db"
	defaultLogLevel      = "info"
	defaultLogFormat     = "console"
)

// Default returns a Config populated with repository defaults. With these
// values a run reads hashes.csv and writes documents into the working directory.
func Default() Config {
	return Config{
		Paths: Paths{
			Input:     defaultInput,
			OutputDir: defaultOutputDir,
		},
		Parse: Parse{
			HeaderMarker:  defaultHeaderMarker,
			InputEncoding: defaultInputEncoding,
		},
		Output: Output{
			Indent: defaultIndent,
			Lock:   true,
		},
		Index: Index{
			Path: defaultIndexPath,
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}
