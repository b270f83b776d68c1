// Package env loads variables from .env files and expands
// ${NAME} references in suite files.
package env

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"
)

// Loader manages variables loaded from .env files on top of the
// process environment.
type Loader struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewLoader creates an empty Loader.
func NewLoader() *Loader {
	return &Loader{vars: make(map[string]string)}
}

// Load reads KEY=VALUE lines from a .env file. Blank lines and
// lines starting with # are skipped; surrounding quotes are
// removed.
func (l *Loader) Load(path string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open env file %s: %w", path, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		l.vars[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return scanner.Err()
}

// Lookup returns the value of key. The process environment
// takes precedence over loaded files.
func (l *Loader) Lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.vars[key]
	return v, ok
}

func (l *Loader) Get(key string) string {
	v, _ := l.Lookup(key)
	return v
}

func (l *Loader) GetRequired(key string) (string, error) {
	v := l.Get(key)
	if v == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return v, nil
}

func (l *Loader) GetWithDefault(key, defaultValue string) string {
	if v := l.Get(key); v != "" {
		return v
	}
	return defaultValue
}

// Set stores a variable in the loader without touching the
// process environment.
func (l *Loader) Set(key, value string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.vars[key] = value
}

func (l *Loader) All() map[string]string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	result := make(map[string]string, len(l.vars))
	for k, v := range l.vars {
		result[k] = v
	}
	return result
}

var reference = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Expand replaces every ${NAME} in s. A bare $ is left alone, so
// regular expressions such as /ok$/ survive. Undefined names are
// reported together.
func (l *Loader) Expand(s string) (string, error) {
	var missing []string
	out := reference.ReplaceAllStringFunc(s, func(m string) string {
		name := reference.FindStringSubmatch(m)[1]
		v, ok := l.Lookup(name)
		if !ok {
			missing = append(missing, name)
			return m
		}
		return v
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("undefined variables: %s", strings.Join(missing, ", "))
	}
	return out, nil
}
