// Package suite loads YAML files describing named polling
// checks against HTTP endpoints.
package suite

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"digital.vasic.expect/pkg/assertion"
	"digital.vasic.expect/pkg/env"
	"digital.vasic.expect/pkg/httpclient"
	"digital.vasic.expect/pkg/poll"
)

// File is the YAML structure of a suite file.
type File struct {
	Version  string       `yaml:"version"`
	Name     string       `yaml:"name"`
	Defaults *poll.Config `yaml:"defaults,omitempty"`
	Checks   []Check      `yaml:"checks"`
}

// Check is one named poll: fetch a request, extract a field and
// wait for the expectation to hold.
type Check struct {
	Name string             `yaml:"name"`
	HTTP httpclient.Request `yaml:"http"`

	// Field selects the response part to match, see
	// httpclient.Response.Extract. Defaults to the body.
	Field string `yaml:"field,omitempty"`

	// Expect is an assertion string such as "to_be:200" or
	// "not:to_match:/error/".
	Expect string `yaml:"expect,omitempty"`
	Not    bool   `yaml:"not,omitempty"`

	// All and Any combine several assertion strings instead of
	// Expect.
	All []string `yaml:"all,omitempty"`
	Any []string `yaml:"any,omitempty"`

	Timeout   *time.Duration  `yaml:"timeout,omitempty"`
	Intervals []time.Duration `yaml:"intervals,omitempty"`
	Message   string          `yaml:"message,omitempty"`
}

// Definition returns the matcher of the check. Not negates
// whatever the expect string says.
func (c Check) Definition() assertion.Definition {
	var def assertion.Definition
	switch {
	case len(c.All) > 0:
		def = assertion.AllOf(parseAll(c.All)...)
	case len(c.Any) > 0:
		def = assertion.AnyOf(parseAll(c.Any)...)
	default:
		def = assertion.ParseDefinition(c.Expect)
	}
	if c.Not {
		def = def.Negate()
	}
	def.Target = c.Name
	def.Message = c.Message
	return def
}

func parseAll(expects []string) []assertion.Definition {
	defs := make([]assertion.Definition, len(expects))
	for i, e := range expects {
		defs[i] = assertion.ParseDefinition(e)
	}
	return defs
}

// PollConfig layers the check's timing over base.
func (c Check) PollConfig(base poll.Config) poll.Config {
	cfg := base
	if c.Timeout != nil {
		cfg.Timeout = *c.Timeout
	}
	if len(c.Intervals) > 0 {
		cfg.Intervals = c.Intervals
	}
	if c.Message != "" {
		cfg.Message = c.Message
	}
	return cfg
}

// Load reads and validates a suite file.
func Load(path string) (*File, error) {
	return LoadWithEnv(path, env.NewLoader())
}

// LoadWithEnv reads a suite file, replacing ${NAME} references
// with values from vars before parsing.
func LoadWithEnv(path string, vars *env.Loader) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read suite file %s: %w", path, err)
	}
	expanded, err := vars.Expand(string(data))
	if err != nil {
		return nil, fmt.Errorf("suite file %s: %w", path, err)
	}
	return Parse(path, []byte(expanded))
}

// Parse decodes and validates suite data; name is used in
// errors only.
func Parse(name string, data []byte) (*File, error) {
	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse suite file %s: %w", name, err)
	}
	if errs := Validate(&file); len(errs) > 0 {
		return nil, fmt.Errorf("suite file %s: %w", name, errs[0])
	}
	return &file, nil
}
