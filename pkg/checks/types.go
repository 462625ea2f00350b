package checks

import "time"

// Supported check types.
const (
	TypeTCP   = "tcp"
	TypeHTTP  = "http"
	TypeRedis = "redis"
)

// DefaultTimeout bounds a single probe when the file does not set one.
const DefaultTimeout = 5 * time.Second

// File is the YAML layout of a checks file.
type File struct {
	Checks []Spec `yaml:"checks"`
}

// Spec describes one readiness check as written in the checks file.
type Spec struct {
	// Name is reported in the readiness breakdown
	Name string `yaml:"name"`

	// Type selects the probe: tcp, http or redis
	Type string `yaml:"type"`

	// Address is host:port for tcp and redis checks
	Address string `yaml:"address"`

	// Timeout bounds one probe, DefaultTimeout when zero
	Timeout time.Duration `yaml:"timeout"`

	// URL is the target of an http check
	URL string `yaml:"url"`

	// ExpectStatus is the status an http check must see, 200 when zero
	ExpectStatus int `yaml:"expect_status"`

	// Password and DB select the redis database
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (s Spec) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return DefaultTimeout
}
