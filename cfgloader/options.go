package cfgloader

// Options holds configuration options for Load and MustLoad.
type Options struct {
	// Silent disables printing of the loaded (masked) config.
	Silent bool
	// Dir is the directory holding the ${ENVIRONMENT}.yaml files. Default is ./config.
	Dir string
	// Environment overrides the ENVIRONMENT variable.
	Environment string
}

// Option is a functional option for Load and MustLoad.
type Option func(*Options)

// WithSilent disables config printing.
func WithSilent() Option {
	return func(o *Options) {
		o.Silent = true
	}
}

// WithDir sets the directory the config files are read from.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}

// WithEnvironment forces the environment instead of reading ENVIRONMENT.
func WithEnvironment(env string) Option {
	return func(o *Options) {
		o.Environment = env
	}
}
