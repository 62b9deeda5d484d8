// Package formatters renders a configured lit.Suite for users and for lit
// itself.
package formatters

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/seekbug-project/seek-bug/internal/version"
	"github.com/seekbug-project/seek-bug/lit"
)

// DefaultFormat is the format used when none is requested.
const DefaultFormat = "json"

// ResponseFormatter describes the expected methods a formatter
// must implement.
type ResponseFormatter interface {
	// PrettyName is the name used to represent this formatter.
	PrettyName() string
	// FileExtension represents the file extension one might use when creating
	// a file with the contents of this formatter.
	FileExtension() string
	// Format takes Suite, formats it as needed, and returns the formatted
	// result as a slice of bytes and an error.
	Format(context.Context, lit.Suite) ([]byte, error)
}

// FormatterFunc describes a function that formats the suite.
type FormatterFunc = func(context.Context, lit.Suite) ([]byte, error)

// NewByName returns a predefined ResponseFormatter with the given name.
func NewByName(name string) (ResponseFormatter, error) {
	lookup, defined := availableFormatters[name]
	if !defined {
		return nil, fmt.Errorf("failed to create a new formatter from name %q: %w", name, ErrUnknownFormat)
	}

	return lookup, nil
}

// NewForConfig returns the formatter named by format, or the default
// formatter when format is empty.
func NewForConfig(format string) (ResponseFormatter, error) {
	if format == "" {
		format = DefaultFormat
	}
	return NewByName(format)
}

// New returns a custom formatter with the name, file extension and
// formatting function.
func New(name, extension string, fn FormatterFunc) (ResponseFormatter, error) {
	if fn == nil {
		return nil, fmt.Errorf("formatter %s requires a formatting function", name)
	}
	return &genericFormatter{
		name:          name,
		fileExtension: extension,
		formatterFunc: fn,
	}, nil
}

// AllFormats returns the names of the predefined formatters, sorted.
func AllFormats() []string {
	names := make([]string, 0, len(availableFormatters))
	for name := range availableFormatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrUnknownFormat is returned for formatter names that are not defined.
var ErrUnknownFormat = errors.New("unknown format")

// availableFormatters maps formatter names to their implementations.
var availableFormatters = map[string]ResponseFormatter{
	"json": &genericFormatter{"json", "json", genericJSONFormatter},
	"yaml": &genericFormatter{"yaml", "yaml", genericYAMLFormatter},
	"text": &genericFormatter{"text", "txt", textTableFormatter},
	"lit":  &genericFormatter{"lit", "py", litSiteConfigFormatter},
}

// genericFormatter is a straightforward formatter that meets the
// ResponseFormatter interface.
type genericFormatter struct {
	name          string
	fileExtension string
	formatterFunc FormatterFunc
}

func (f *genericFormatter) PrettyName() string {
	return f.name
}

func (f *genericFormatter) FileExtension() string {
	return f.fileExtension
}

func (f *genericFormatter) Format(ctx context.Context, s lit.Suite) ([]byte, error) {
	return f.formatterFunc(ctx, s)
}

// getResponse will extract the suite and format it to fit the
// UserResponse definition in a way that can then be formatted.
func getResponse(s lit.Suite) UserResponse {
	subs := make([]lit.Substitution, len(s.Substitutions))
	copy(subs, s.Substitutions)

	env := s.Environment
	if env == nil {
		env = map[string]string{}
	}

	return UserResponse{
		Name:          s.Name,
		TestFormat:    s.TestFormat,
		Suffixes:      nonNil(s.Suffixes),
		SourceRoot:    s.SourceRoot,
		ExecRoot:      s.ExecRoot,
		Substitutions: subs,
		Excludes:      nonNil(s.Excludes),
		Environment:   env,
		LibraryInfo:   version.Version,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// UserResponse is the standard user-facing response.
type UserResponse struct {
	Name          string                 `json:"name"`
	TestFormat    lit.TestFormat         `json:"test_format"`
	Suffixes      []string               `json:"suffixes"`
	SourceRoot    string                 `json:"test_source_root"`
	ExecRoot      string                 `json:"test_exec_root"`
	Substitutions []lit.Substitution     `json:"substitutions"`
	Excludes      []string               `json:"excludes"`
	Environment   map[string]string      `json:"environment"`
	LibraryInfo   version.VersionContext `json:"tool"`
}
