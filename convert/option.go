package convert

// Option configures a Converter.
type Option func(c *Converter)

// WithVersion sets the interpreter version assumed for trees that do not carry one.
func WithVersion(version string) Option {
	return func(c *Converter) {
		c.version = version
	}
}

// WithIgnoreUnexpected accepts fields that are not part of a node schema instead of failing.
func WithIgnoreUnexpected(ignore bool) Option {
	return func(c *Converter) {
		c.ignoreUnexpected = ignore
	}
}
