package types

// Supported database driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// knownDrivers lists the drivers that Validate accepts.
var knownDrivers = map[string]bool{
	DriverSQLite:   true,
	DriverPostgres: true,
}

// Config holds the runtime configuration for the taskd server.
type Config struct {
	ListenAddr string         `json:"listen_addr" yaml:"listen_addr"`
	Database   DatabaseConfig `json:"database" yaml:"database"`
	Log        LogConfig      `json:"log" yaml:"log"`
}

// DatabaseConfig selects the storage driver and its connection string.
// For sqlite the DSN is a file path; for postgres a connection string.
type DatabaseConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	DSN    string `json:"dsn" yaml:"dsn"`
}

// LogConfig controls log level and optional rotating file output.
// An empty File logs to stdout.
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
	File  string `json:"file" yaml:"file"`
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return ErrListenAddrEmpty
	}
	if c.Database.Driver == "" {
		return ErrDriverEmpty
	}
	if !knownDrivers[c.Database.Driver] {
		return ErrDriverUnknown
	}
	if c.Database.DSN == "" {
		return ErrDSNEmpty
	}
	return nil
}
