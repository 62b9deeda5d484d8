package formatters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jedib0t/go-pretty/v6/table"
	"sigs.k8s.io/yaml"

	"github.com/seekbug-project/seek-bug/lit"
)

// genericJSONFormatter is a FormatterFunc that formats the suite as JSON
func genericJSONFormatter(ctx context.Context, s lit.Suite) ([]byte, error) {
	response := getResponse(s)

	responseJSON, err := json.MarshalIndent(response, "", "    ")
	if err != nil {
		e := fmt.Errorf("error formatting suite with formatter %s: %w",
			"json",
			err,
		)

		return nil, e
	}

	return responseJSON, nil
}

// genericYAMLFormatter is a FormatterFunc that formats the suite as YAML.
// Field names follow the JSON tags.
func genericYAMLFormatter(ctx context.Context, s lit.Suite) ([]byte, error) {
	response := getResponse(s)

	responseYAML, err := yaml.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("error formatting suite with formatter %s: %w", "yaml", err)
	}

	return responseYAML, nil
}

// textTableFormatter renders the suite for a terminal.
func textTableFormatter(ctx context.Context, s lit.Suite) ([]byte, error) {
	response := getResponse(s)

	var b strings.Builder
	fmt.Fprintf(&b, "Suite:       %s\n", response.Name)
	fmt.Fprintf(&b, "Format:      %s (external: %t)\n", response.TestFormat.Name, response.TestFormat.ExecuteExternal)
	fmt.Fprintf(&b, "Source root: %s\n", response.SourceRoot)
	fmt.Fprintf(&b, "Exec root:   %s\n", response.ExecRoot)
	fmt.Fprintf(&b, "Suffixes:    %s\n", strings.Join(response.Suffixes, " "))
	fmt.Fprintf(&b, "Excludes:    %s\n", strings.Join(response.Excludes, " "))

	subs := table.NewWriter()
	subs.SetStyle(table.StyleLight)
	subs.AppendHeader(table.Row{"Token", "Value"})
	for _, sub := range response.Substitutions {
		subs.AppendRow(table.Row{sub.Token, sub.Value})
	}
	b.WriteString(subs.Render())
	b.WriteString("\n")

	if len(response.Environment) > 0 {
		env := table.NewWriter()
		env.SetStyle(table.StyleLight)
		env.AppendHeader(table.Row{"Passthrough", "Value"})
		for _, name := range lit.PassthroughEnvironment() {
			if v, ok := response.Environment[name]; ok {
				env.AppendRow(table.Row{name, v})
			}
		}
		b.WriteString(env.Render())
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}

// litSiteConfigFormatter renders a lit.site.cfg.py that binds the site
// values of s and then loads the suite's lit.cfg.py.
func litSiteConfigFormatter(ctx context.Context, s lit.Suite) ([]byte, error) {
	objRoot, ok := s.Lookup(lit.TokenTestDir)
	if !ok {
		return nil, fmt.Errorf("error formatting suite with formatter %s: missing %s", "lit", lit.TokenTestDir)
	}
	binPath, ok := s.Lookup(lit.TokenSeekBug)
	if !ok {
		return nil, fmt.Errorf("error formatting suite with formatter %s: missing %s", "lit", lit.TokenSeekBug)
	}
	filecheck, _ := s.Lookup(lit.TokenFileCheck)
	not, _ := s.Lookup(lit.TokenNot)

	for _, p := range []string{objRoot, binPath, filecheck, not, s.SourceRoot} {
		if !utf8.ValidString(p) {
			return nil, fmt.Errorf("error formatting suite with formatter %s: path %q: %w", "lit", p, ErrInvalidPath)
		}
	}

	var b strings.Builder
	b.WriteString("# -*- Python -*-\n")
	b.WriteString("# Autogenerated by seekbug-lit. Do not edit!\n\n")
	b.WriteString("import os\n\n")
	fmt.Fprintf(&b, "config.seekbug_obj_root = %s\n", pyQuote(objRoot))
	fmt.Fprintf(&b, "config.seekbug_bin_path = %s\n", pyQuote(binPath))
	fmt.Fprintf(&b, "config.filecheck_path = %s\n", pyQuote(filecheck))
	fmt.Fprintf(&b, "config.not_path = %s\n\n", pyQuote(not))
	fmt.Fprintf(&b, "lit_config.load_config(config, os.path.join(%s, %s))\n",
		pyQuote(s.SourceRoot), pyQuote(lit.ConfigFilename))

	return []byte(b.String()), nil
}

// ErrInvalidPath is returned by the lit formatter for paths that cannot be
// written as a Python string literal naming the same bytes.
var ErrInvalidPath = errors.New("path is not valid UTF-8")

// pyQuote returns s as a double-quoted Python string literal. s must be
// valid UTF-8: Go writes other bytes as \xNN, which Python reads as the
// code point U+00NN.
func pyQuote(s string) string {
	return strconv.Quote(s)
}
