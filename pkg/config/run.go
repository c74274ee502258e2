package config

import (
	"multibody-kinematics/pkg/log"
)

// Output formats accepted in [output] format.
var OutputFormats = []string{"text", "json", "yaml"}

// RunConfig is the typed content of a kinctl run file:
//
//	[model]
//	type: double_pendulum
//	lengths: 1.0, 0.5
//
//	[state]
//	q: 0.3, -0.2
//	v: 0, 1
//
//	[log]
//	level: debug
//	format: json
//
//	[output]
//	format: yaml
//	metrics: true
type RunConfig struct {
	Model   string
	Lengths []float64
	Q       []float64
	V       []float64

	// LogConfigured is set when the file has a [log] section.
	LogConfigured bool
	LogLevel      log.LogLevel
	LogFormat     log.OutputFormat

	Format  string
	Metrics bool
}

// DefaultRunConfig is used for every option a file leaves out.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		LogLevel:  log.INFO,
		LogFormat: log.FormatText,
		Format:    "text",
	}
}

// ParseRunConfig extracts a RunConfig from c. Only [model] is required.
func ParseRunConfig(c *Config) (*RunConfig, error) {
	rc := DefaultRunConfig()
	positive := FloatBounds{Above: new(float64)}
	var err error

	model, err := c.GetSection("model")
	if err != nil {
		return nil, err
	}
	if rc.Model, err = model.Get("type"); err != nil {
		return nil, err
	}
	if rc.Lengths, err = model.GetFloatList("lengths", ",", positive, nil); err != nil {
		return nil, err
	}

	if state := c.GetSectionOptional("state"); state != nil {
		if rc.Q, err = state.GetFloatList("q", ",", FloatBounds{}, nil); err != nil {
			return nil, err
		}
		if rc.V, err = state.GetFloatList("v", ",", FloatBounds{}, nil); err != nil {
			return nil, err
		}
	}

	if sec := c.GetSectionOptional("log"); sec != nil {
		rc.LogConfigured = true
		level, err := sec.GetChoice("level", []string{"debug", "info", "warn", "error"}, "info")
		if err != nil {
			return nil, err
		}
		rc.LogLevel = log.ParseLevel(level)
		format, err := sec.GetChoice("format", []string{"text", "json"}, "text")
		if err != nil {
			return nil, err
		}
		rc.LogFormat = log.ParseFormat(format)
	}

	if sec := c.GetSectionOptional("output"); sec != nil {
		if rc.Format, err = sec.GetChoice("format", OutputFormats, rc.Format); err != nil {
			return nil, err
		}
		if rc.Metrics, err = sec.GetBool("metrics", false); err != nil {
			return nil, err
		}
	}

	return rc, nil
}

// LoadRunConfig reads path and parses it, rejecting unknown sections and
// options.
func LoadRunConfig(path string) (*RunConfig, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	rc, err := ParseRunConfig(c)
	if err != nil {
		return nil, err
	}
	if err := c.CheckUnused(); err != nil {
		return nil, err
	}
	return rc, nil
}
