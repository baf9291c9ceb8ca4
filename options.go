package hidepng

type readConfig struct {
	limits Limits
}

type ReadOption func(*readConfig)

func WithReadLimits(l Limits) ReadOption {
	return func(c *readConfig) { c.limits = l }
}

func newReadConfig(opts []ReadOption) readConfig {
	cfg := readConfig{limits: defaultLimits()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}

type writeConfig struct {
	limits      Limits
	compression Compression
	appendOnly  bool
}

type WriteOption func(*writeConfig)

func WithWriteLimits(l Limits) WriteOption {
	return func(c *writeConfig) { c.limits = l }
}

// WithCompression compresses the message before it is stored. Decode
// detects compressed payloads on its own.
func WithCompression(comp Compression) WriteOption {
	return func(c *writeConfig) { c.compression = comp }
}

// WithAppend places the new chunk after the last chunk instead of before
// the trailer. Most readers stop at IEND and will not see it.
func WithAppend(v bool) WriteOption {
	return func(c *writeConfig) { c.appendOnly = v }
}

func newWriteConfig(opts []WriteOption) writeConfig {
	cfg := writeConfig{limits: defaultLimits(), compression: CompNone}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.limits = cfg.limits.withDefaults()
	return cfg
}
