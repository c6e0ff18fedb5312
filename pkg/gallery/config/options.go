package config

// Programmatic options. Apply these after WithEnv so they win over
// environment values.

// WithPort sets the listen port.
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the runtime environment name.
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		c.Environment = env
		return nil
	}
}

// WithExcelSource points the loader at an xlsx workbook.
func WithExcelSource(path string) Option {
	return func(c *ServerConfig) error {
		c.Source.Format = "excel"
		c.Source.Path = path
		return nil
	}
}

// WithCSVSource points the loader at a pair of CSV files.
func WithCSVSource(contentsPath, mediaPath string) Option {
	return func(c *ServerConfig) error {
		c.Source.Format = "csv"
		c.Source.ContentsCSVPath = contentsPath
		c.Source.MediaCSVPath = mediaPath
		return nil
	}
}

// WithFieldLabels selects the column-label set ("ja" or "en").
func WithFieldLabels(labels string) Option {
	return func(c *ServerConfig) error {
		c.Source.FieldLabels = labels
		return nil
	}
}

// WithMediaBaseDir sets the base directory for relative media paths.
func WithMediaBaseDir(dir string) Option {
	return func(c *ServerConfig) error {
		c.Fetch.BaseDir = dir
		return nil
	}
}
