package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	log "github.com/sirupsen/logrus"

	"github.com/seekbug-project/seek-bug/internal/version"
	"github.com/seekbug-project/seek-bug/lit"
	"github.com/seekbug-project/seek-bug/lit/artifacts"
	"github.com/seekbug-project/seek-bug/lit/engine"
	"github.com/seekbug-project/seek-bug/lit/formatters"
)

// executeCommand runs the root command with args and returns stdout and
// stderr.
func executeCommand(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	root := NewCommand(context.Background())
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

var _ = Describe("seekbug-lit", func() {
	var tmp, objRoot, binPath, srcRoot, artifactsDir string

	BeforeEach(func() {
		var err error
		tmp, err = os.MkdirTemp("", "seekbug-lit-cmd-*")
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(os.RemoveAll, tmp)

		objRoot = filepath.Join(tmp, "build")
		binPath = filepath.Join(objRoot, "bin", "seek-bug")
		srcRoot = filepath.Join(tmp, "src", "test")
		artifactsDir = filepath.Join(tmp, "artifacts")

		DeferCleanup(artifacts.Reset)
		DeferCleanup(func() {
			log.SetOutput(os.Stderr)
			log.SetLevel(log.InfoLevel)
		})
	})

	siteArgs := func(extra ...string) []string {
		return append([]string{
			"--logfile", "",
			"--artifacts", artifactsDir,
			"--obj-root", objRoot,
			"--bin-path", binPath,
			"--source-root", srcRoot,
		}, extra...)
	}

	Context("version", func() {
		It("Should print the version string", func() {
			out, _, err := executeCommand("version", "--logfile", "")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal(version.Version.Name + " " + version.Version.String() + "\n"))
		})

		It("Should print the version as JSON", func() {
			out, _, err := executeCommand("version", "--json", "--logfile", "")
			Expect(err).ToNot(HaveOccurred())

			var got versionResponse
			Expect(json.Unmarshal([]byte(out), &got)).To(Succeed())
			Expect(got.VersionContext).To(Equal(version.Version))

			sv, err := version.Version.Semver()
			Expect(err).ToNot(HaveOccurred())
			Expect([]uint64{got.Major, got.Minor, got.Patch}).To(Equal([]uint64{sv.Major, sv.Minor, sv.Patch}))
		})

		It("Should include the parsed semantic version", func() {
			var out bytes.Buffer
			cmd := versionCommand()
			cmd.SetOut(&out)
			Expect(versionRunE(cmd, version.VersionContext{Name: "seek-bug", Version: "v2.5.1", Commit: "abc"}, true)).To(Succeed())
			Expect(out.String()).To(MatchJSON(`{"name":"seek-bug","version":"v2.5.1","commit":"abc","major":2,"minor":5,"patch":1}`))
		})

		It("Should refuse a build version that is not semantic", func() {
			cmd := versionCommand()
			cmd.SetOut(&bytes.Buffer{})
			err := versionRunE(cmd, version.VersionContext{Name: "seek-bug", Version: "nightly"}, false)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("is not a semantic version"))
		})
	})

	Context("configure", func() {
		It("Should print the suite and write it to the artifacts directory", func() {
			out, _, err := executeCommand(append([]string{"configure"}, siteArgs()...)...)
			Expect(err).ToNot(HaveOccurred())

			var resp formatters.UserResponse
			Expect(json.Unmarshal([]byte(out), &resp)).To(Succeed())
			Expect(resp.Name).To(Equal(lit.SuiteName))
			Expect(resp.ExecRoot).To(Equal(filepath.Join(objRoot, lit.ExecSubdir)))
			Expect(resp.SourceRoot).To(Equal(srcRoot))
			Expect(resp.TestFormat).To(Equal(lit.TestFormat{Name: lit.ShTestFormat, ExecuteExternal: false}))

			written, err := os.ReadFile(filepath.Join(artifactsDir, "suite.json"))
			Expect(err).ToNot(HaveOccurred())
			Expect(string(written)).To(Equal(out))
		})

		It("Should emit lit.site.cfg.py into the exec root when asked", func() {
			_, _, err := executeCommand(append([]string{"configure", "--emit-site-config", "--format", "text"}, siteArgs()...)...)
			Expect(err).ToNot(HaveOccurred())

			site, err := os.ReadFile(filepath.Join(objRoot, lit.ExecSubdir, lit.SiteConfigFilename))
			Expect(err).ToNot(HaveOccurred())
			Expect(string(site)).To(ContainSubstring(`config.seekbug_obj_root = ` + strconv.Quote(objRoot)))
			Expect(filepath.Join(artifactsDir, "suite.txt")).To(BeARegularFile())
		})

		It("Should run the suite externally when the lit shell is disabled", func() {
			out, _, err := executeCommand(append([]string{"configure", "--use-lit-shell=false"}, siteArgs()...)...)
			Expect(err).ToNot(HaveOccurred())

			var resp formatters.UserResponse
			Expect(json.Unmarshal([]byte(out), &resp)).To(Succeed())
			Expect(resp.TestFormat.ExecuteExternal).To(BeTrue())
		})

		It("Should fail without an object root", func() {
			_, _, err := executeCommand("configure", "--logfile", "", "--artifacts", artifactsDir, "--bin-path", binPath)
			Expect(err).To(MatchError(engine.ErrObjRootEmpty))
		})

		It("Should reject an unknown format", func() {
			_, _, err := executeCommand(append([]string{"configure", "--format", "xml"}, siteArgs()...)...)
			Expect(err).To(MatchError(formatters.ErrUnknownFormat))
		})

		It("Should read the site inputs from a configuration file", func() {
			siteFile := filepath.Join(tmp, "lit.site.yaml")
			content := "seekbug_obj_root: " + objRoot + "\nseekbug_bin_path: " + binPath + "\nfilecheck_path: /opt/llvm/bin/FileCheck\n"
			Expect(os.WriteFile(siteFile, []byte(content), 0o600)).To(Succeed())

			out, _, err := executeCommand("configure", "--logfile", "", "--artifacts", artifactsDir, "--config", siteFile)
			Expect(err).ToNot(HaveOccurred())

			var resp formatters.UserResponse
			Expect(json.Unmarshal([]byte(out), &resp)).To(Succeed())
			Expect(resp.SourceRoot).To(Equal(tmp))
			Expect(resp.Substitutions).To(ContainElement(lit.Substitution{Token: lit.TokenFileCheck, Value: "/opt/llvm/bin/FileCheck"}))
			Expect(resp.Substitutions).To(ContainElement(lit.Substitution{Token: lit.TokenSeekBug, Value: binPath}))
		})

		It("Should fail when the named configuration file is missing", func() {
			_, _, err := executeCommand("configure", "--logfile", "", "--config", filepath.Join(tmp, "missing.yaml"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("could not read site configuration"))
		})

		It("Should take the site inputs from the environment", func() {
			Expect(os.Setenv("SEEKBUG_OBJ_ROOT", objRoot)).To(Succeed())
			Expect(os.Setenv("SEEKBUG_BIN_PATH", binPath)).To(Succeed())
			DeferCleanup(os.Unsetenv, "SEEKBUG_OBJ_ROOT")
			DeferCleanup(os.Unsetenv, "SEEKBUG_BIN_PATH")

			out, _, err := executeCommand("configure", "--logfile", "", "--artifacts", artifactsDir, "--source-root", srcRoot)
			Expect(err).ToNot(HaveOccurred())

			var resp formatters.UserResponse
			Expect(json.Unmarshal([]byte(out), &resp)).To(Succeed())
			Expect(resp.ExecRoot).To(Equal(filepath.Join(objRoot, lit.ExecSubdir)))
		})

		It("Should write the log to the logfile", func() {
			logFile := filepath.Join(tmp, "seekbug-lit.log")
			args := append([]string{"configure"}, siteArgs()...)
			args = append(args, "--logfile", logFile)
			_, stderr, err := executeCommand(args...)
			Expect(err).ToNot(HaveOccurred())

			logged, err := os.ReadFile(logFile)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(logged)).To(ContainSubstring("SeekBug suite configured"))
			Expect(stderr).To(ContainSubstring("SeekBug suite configured"))
		})

		It("Should reject an invalid log level", func() {
			_, _, err := executeCommand(append([]string{"configure", "--loglevel", "loud"}, siteArgs()...)...)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("invalid log level"))
		})
	})

	Context("substitute", func() {
		It("Should expand stdin lines longer than the default scanner buffer", func() {
			long := strings.Repeat("a", 70000)
			var stdout bytes.Buffer
			root := NewCommand(context.Background())
			root.SetOut(&stdout)
			root.SetErr(&bytes.Buffer{})
			root.SetIn(strings.NewReader(long + " %not\n"))
			root.SetArgs(append([]string{"substitute"}, siteArgs()...))
			Expect(root.Execute()).To(Succeed())
			Expect(stdout.String()).To(Equal(long + " " + lit.DefaultNot + "\n"))
		})

		It("Should expand each argument", func() {
			out, _, err := executeCommand(append([]string{"substitute", "--filecheck-path", "/opt/FileCheck"}, siteArgs(
				"%seek-bug %s | %FileCheck %s",
				"%not %seek-bug",
			)...)...)
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(Equal(binPath + " %s | /opt/FileCheck %s\n" + lit.DefaultNot + " " + binPath + "\n"))
		})

		It("Should expand lines from stdin", func() {
			var stdout bytes.Buffer
			root := NewCommand(context.Background())
			root.SetOut(&stdout)
			root.SetErr(&bytes.Buffer{})
			root.SetIn(strings.NewReader("cd %seekbug_testdir\n%FileCheck --input-file %t\n"))
			root.SetArgs(append([]string{"substitute"}, siteArgs()...))
			Expect(root.Execute()).To(Succeed())

			Expect(stdout.String()).To(Equal("cd " + objRoot + "\n" +
				lit.DefaultFileCheck + " --input-file %t\n"))
		})
	})
})

var _ = Describe("Flag names", func() {
	DescribeTable("Should accept lit attribute spellings",
		func(given, want string) {
			Expect(string(litAttributeNames(nil, given))).To(Equal(want))
		},
		Entry("dashed", "obj-root", "obj-root"),
		Entry("lit attribute", "seekbug_obj_root", "obj-root"),
		Entry("tool path", "filecheck_path", "filecheck-path"),
		Entry("unrelated", "use_lit_shell", "use-lit-shell"),
	)
})

var _ = Describe("Lit attribute flags", func() {
	It("Should accept --seekbug_obj_root on a subcommand", func() {
		tmp, err := os.MkdirTemp("", "seekbug-lit-flags-*")
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(os.RemoveAll, tmp)
		DeferCleanup(func() { log.SetOutput(os.Stderr) })

		out, _, err := executeCommand("substitute", "--logfile", "",
			"--seekbug_obj_root", tmp, "--seekbug_bin_path", "/bin/seek-bug", "%seekbug_testdir")
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal(tmp + "\n"))
	})
})
