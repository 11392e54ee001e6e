// Package envfile loads dotenv-style files and expands "${VAR}" references.
package envfile

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"os"
	"regexp"
	"slices"
	"strings"
)

type Env map[string]string

var varRe = regexp.MustCompile(`\$\{([^}=]+)\}`)

func (e Env) Keys() []string {
	keys := []string{}

	for k := range e {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

func (e Env) Strings() []string {
	pairs := []string{}

	for _, k := range e.Keys() {
		pairs = append(pairs, k+"="+e[k])
	}

	return pairs
}

func FromStrings(strs []string) Env {
	env := make(Env)

	for _, s := range strs {
		key, value, _ := strings.Cut(s, "=")
		env[key] = value
	}

	return env
}

func OS() Env {
	return FromStrings(os.Environ())
}

// Merge combines environments with later ones taking precedence.
func Merge(envs ...Env) Env {
	merged := make(Env)

	for _, env := range envs {
		maps.Copy(merged, env)
	}

	return merged
}

// Expand replaces every "${VAR}" reference in s with its value from env.
// An unknown variable is an error rather than an empty substitution.
func Expand(s string, env Env) (string, error) {
	var lastErr error

	result := varRe.ReplaceAllStringFunc(s, func(match string) string {
		name := varRe.FindStringSubmatch(match)[1]

		value, exists := env[name]
		if !exists {
			lastErr = fmt.Errorf("can't substitute env variable: %q", name)
			return match
		}

		return value
	})
	if lastErr != nil {
		return "", lastErr
	}

	return result, nil
}

// Parse reads KEY=value lines from r. Blank lines and "#" comments are
// skipped. Values may be single- or double-quoted; "${VAR}" references are
// expanded from earlier keys in the same file and then from substEnv, except
// inside single quotes.
func Parse(r io.Reader, substEnv Env) (Env, error) {
	if substEnv == nil {
		substEnv = make(Env)
	}

	env := make(Env)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rawKey, rawValue, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("can't parse env file line: %q", line)
		}

		key := strings.TrimSpace(rawKey)
		value := strings.TrimSpace(rawValue)

		doubleQuoted := strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)
		singleQuoted := strings.HasPrefix(value, "'") && strings.HasSuffix(value, "'")

		subst := true
		if len(value) > 1 && (doubleQuoted || singleQuoted) {
			if singleQuoted {
				subst = false
			}

			value = value[1 : len(value)-1]
		}

		if subst {
			expanded, err := Expand(value, Merge(substEnv, env))
			if err != nil {
				return nil, fmt.Errorf("error substituting value for key %q: %w", key, err)
			}

			value = expanded
		}

		env[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return env, nil
}

// Load parses the env file at path. A missing file is reported with an error
// satisfying os.IsNotExist; callers decide whether that is fatal.
func Load(path string, substEnv Env) (Env, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f, substEnv)
}
