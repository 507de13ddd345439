package config

// FileName is the configuration file looked up in the project directory.
const FileName = "vsgen.yaml"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ProjectDir:     ".",
		Manifest:       "vsgen-manifest.yaml",
		Style:          "automatic",
		PreferredStyle: "legacy",
		PathSeparator:  `\`,
		StateCacheSize: 4096,
	}
}
