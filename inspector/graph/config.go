package graph

// Config controls what an inspector extracts.
type Config struct {
	// IncludePrivate keeps names with a leading underscore.
	IncludePrivate bool
	// SkipTests ignores test_*.py, *_test.py and conftest.py files.
	SkipTests         bool
	RecursivePackages bool
	SkipAsset         bool
}

func DefaultConfig() *Config {
	return &Config{
		IncludePrivate:    true,
		SkipTests:         false,
		RecursivePackages: true,
	}
}
