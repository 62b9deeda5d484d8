package lit

import (
	"path/filepath"
	"strings"
)

// Substitution binds a token found in RUN lines to its literal replacement.
type Substitution struct {
	Token string `json:"token"`
	Value string `json:"value"`
}

// TestFormat selects how lit executes the RUN lines of a test.
type TestFormat struct {
	Name string `json:"name"`
	// ExecuteExternal is true when RUN lines go to the system shell instead
	// of lit's internal shell.
	ExecuteExternal bool `json:"execute_external"`
}

// Suite is the complete configuration of the SeekBug test suite. A Suite is
// read-only once produced by the configuration step.
type Suite struct {
	Name          string            `json:"name"`
	TestFormat    TestFormat        `json:"test_format"`
	Suffixes      []string          `json:"suffixes"`
	SourceRoot    string            `json:"test_source_root"`
	ExecRoot      string            `json:"test_exec_root"`
	Substitutions []Substitution    `json:"substitutions"`
	Excludes      []string          `json:"excludes"`
	Environment   map[string]string `json:"environment"`
}

// Clone returns a copy of s that shares no slices or maps with it.
func (s Suite) Clone() Suite {
	c := s
	if s.Suffixes != nil {
		c.Suffixes = append([]string(nil), s.Suffixes...)
	}
	if s.Substitutions != nil {
		c.Substitutions = append([]Substitution(nil), s.Substitutions...)
	}
	if s.Excludes != nil {
		c.Excludes = append([]string(nil), s.Excludes...)
	}
	if s.Environment != nil {
		c.Environment = make(map[string]string, len(s.Environment))
		for k, v := range s.Environment {
			c.Environment[k] = v
		}
	}
	return c
}

// Lookup returns the value bound to token.
func (s Suite) Lookup(token string) (string, bool) {
	for _, sub := range s.Substitutions {
		if sub.Token == token {
			return sub.Value, true
		}
	}
	return "", false
}

// Tokens returns the registered tokens in table order.
func (s Suite) Tokens() []string {
	tokens := make([]string, 0, len(s.Substitutions))
	for _, sub := range s.Substitutions {
		tokens = append(tokens, sub.Token)
	}
	return tokens
}

// Expand applies every substitution to line, in table order, as a literal
// replacement.
func (s Suite) Expand(line string) string {
	for _, sub := range s.Substitutions {
		line = strings.ReplaceAll(line, sub.Token, sub.Value)
	}
	return line
}

// IsExcluded reports whether the path segment name is in the exclude set.
// Only whole names match.
func (s Suite) IsExcluded(name string) bool {
	for _, e := range s.Excludes {
		if e == name {
			return true
		}
	}
	return false
}

// HasTestSuffix reports whether name carries one of the suite's test suffixes.
func (s Suite) HasTestSuffix(name string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	for _, suffix := range s.Suffixes {
		if suffix == ext {
			return true
		}
	}
	return false
}
