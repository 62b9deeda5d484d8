// Package lit describes the configuration SeekBug hands to the lit test runner:
// the suite identity, the files it treats as tests, the substitution table
// applied to RUN lines, and the environment passed through to test commands.
package lit

// SiteConfig is a read-only view of the site-specific inputs to the suite
// configuration. These are the values a build system writes into
// lit.site.cfg.py before lit loads the suite.
type SiteConfig interface {
	// ObjRoot is the build tree root. Tests execute under ObjRoot/test.
	ObjRoot() string
	// BinPath is the full path to the seek-bug binary under test.
	BinPath() string
	// FileCheckPath returns the configured FileCheck path and whether one was set.
	FileCheckPath() (string, bool)
	// NotPath returns the configured not path and whether one was set.
	NotPath() (string, bool)
	// SourceRoot is the directory holding the suite's lit.cfg.py.
	SourceRoot() string
	// UseLitShell reports whether lit's internal shell runs RUN lines.
	UseLitShell() bool
	// Environment is the host environment visible to the configuration step.
	Environment() map[string]string
}

const (
	// SuiteName is the name lit reports for this suite.
	SuiteName = "SeekBug"

	// DefaultFileCheck is used for %FileCheck when the site does not provide a path.
	DefaultFileCheck = "FileCheck"
	// DefaultNot is used for %not when the site does not provide a path.
	DefaultNot = "not"

	// ExecSubdir is the directory under the object root where tests run.
	ExecSubdir = "test"

	// ShTestFormat is the only test format the suite uses.
	ShTestFormat = "ShTest"

	// ConfigFilename is the suite configuration loaded by the generated site config.
	ConfigFilename = "lit.cfg.py"
	// SiteConfigFilename is the site configuration written into the exec root.
	SiteConfigFilename = "lit.site.cfg.py"
)

const (
	TokenPath      = "%PATH%"
	TokenFileCheck = "%FileCheck"
	TokenNot       = "%not"
	TokenSeekBug   = "%seek-bug"
	TokenTestDir   = "%seekbug_testdir"
)

// Tokens returns the substitution tokens in the order they are registered.
func Tokens() []string {
	return []string{TokenPath, TokenFileCheck, TokenNot, TokenSeekBug, TokenTestDir}
}

// DefaultSuffixes returns the file extensions treated as tests.
func DefaultSuffixes() []string {
	return []string{".c", ".test"}
}

// DefaultExcludes returns the path segments skipped during discovery. The
// Inputs directories hold auxiliary inputs for tests in their parent
// directories.
func DefaultExcludes() []string {
	return []string{
		"Inputs",
		"Examples",
		"CMakeLists.txt",
		"README.txt",
		"LICENSE.txt",
		"Artefacts",
		"test-artefacts",
	}
}

// PassthroughEnvironment returns the host variables copied into the test
// environment when they are set.
func PassthroughEnvironment() []string {
	return []string{"HOME", "INCLUDE", "LIB", "TMP", "TEMP"}
}
