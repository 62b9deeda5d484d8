package lib

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/seekbug-project/seek-bug/lit"
	"github.com/seekbug-project/seek-bug/lit/artifacts"
	"github.com/seekbug-project/seek-bug/lit/engine"
	"github.com/seekbug-project/seek-bug/lit/formatters"
	"github.com/seekbug-project/seek-bug/lit/runtime"
)

type failingEmitter struct{}

func (failingEmitter) Emit(context.Context, lit.Suite) error { return errors.New("emit failed") }

var _ = Describe("Configure runner", func() {
	var (
		ctx context.Context
		fs  afero.Fs
		cfg *runtime.Config
	)

	BeforeEach(func() {
		ctx = context.Background()
		fs = afero.NewMemMapFs()
		cfg = &runtime.Config{
			ObjRoot:     "/build",
			BinPath:     "/build/bin/seek-bug",
			SourceRoot:  "/src/test",
			UseLitShell: true,
			Environment: map[string]string{"PATH": "/bin"},
			Artifacts:   "/artifacts",
		}
		DeferCleanup(artifacts.Reset)
	})

	It("Should refuse an incomplete configuration", func() {
		cfg.BinPath = ""
		_, err := NewConfigureRunner(ctx, cfg, fs)
		Expect(err).To(MatchError(engine.ErrBinPathEmpty))
	})

	It("Should refuse an unknown format", func() {
		cfg.ResponseFormat = "xml"
		_, err := NewConfigureRunner(ctx, cfg, fs)
		Expect(err).To(MatchError(formatters.ErrUnknownFormat))
	})

	It("Should write the formatted suite to the output and the results file", func() {
		r, err := NewConfigureRunner(ctx, cfg, fs)
		Expect(err).ToNot(HaveOccurred())

		var out bytes.Buffer
		suite, err := ExecuteConfigure(ctx, &out, r)
		Expect(err).ToNot(HaveOccurred())
		Expect(suite.ExecRoot).To(Equal("/build/test"))

		var resp formatters.UserResponse
		Expect(json.Unmarshal(out.Bytes(), &resp)).To(Succeed())
		Expect(resp.Name).To(Equal(lit.SuiteName))

		written, err := afero.ReadFile(fs, "/artifacts/suite.json")
		Expect(err).ToNot(HaveOccurred())
		Expect(written).To(Equal(out.Bytes()))

		exists, _ := afero.Exists(fs, "/build/test/lit.site.cfg.py")
		Expect(exists).To(BeFalse())
	})

	It("Should emit the site configuration when requested", func() {
		cfg.EmitSiteConfig = true
		cfg.ResponseFormat = "text"
		r, err := NewConfigureRunner(ctx, cfg, fs)
		Expect(err).ToNot(HaveOccurred())

		_, err = ExecuteConfigure(ctx, &bytes.Buffer{}, r)
		Expect(err).ToNot(HaveOccurred())

		site, err := afero.ReadFile(fs, "/build/test/lit.site.cfg.py")
		Expect(err).ToNot(HaveOccurred())
		Expect(string(site)).To(ContainSubstring(`config.seekbug_bin_path = "/build/bin/seek-bug"`))

		exists, _ := afero.Exists(fs, "/artifacts/suite.txt")
		Expect(exists).To(BeTrue())
	})

	It("Should surface emitter failures", func() {
		r, err := NewConfigureRunner(ctx, cfg, fs)
		Expect(err).ToNot(HaveOccurred())
		r.Emitter = failingEmitter{}

		_, err = ExecuteConfigure(ctx, &bytes.Buffer{}, r)
		Expect(err).To(MatchError("emit failed"))
	})

	It("Should fail before configuring when the results file cannot be opened", func() {
		r, err := NewConfigureRunner(ctx, cfg, afero.NewReadOnlyFs(afero.NewMemMapFs()))
		Expect(err).ToNot(HaveOccurred())

		_, err = ExecuteConfigure(ctx, &bytes.Buffer{}, r)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Emitters", func() {
	It("Should resolve a noop emitter unless emitting is requested", func() {
		Expect(ResolveEmitter(false, nil)).To(BeAssignableToTypeOf(&NoopEmitter{}))
		Expect(ResolveEmitter(true, nil)).To(BeAssignableToTypeOf(&SiteConfigEmitter{}))
	})

	It("Should not write anything from the noop emitter", func() {
		e := &NoopEmitter{EmitLog: true, Reason: "testing"}
		Expect(e.Emit(context.Background(), lit.Suite{})).To(Succeed())
	})

	It("Should require an exec root to emit into", func() {
		e := &SiteConfigEmitter{Fs: afero.NewMemMapFs()}
		Expect(e.Emit(context.Background(), lit.Suite{Name: lit.SuiteName})).ToNot(Succeed())
	})
})

var _ = Describe("ResultWriterFile", func() {
	It("Should create parent directories and truncate existing files", func() {
		fs := afero.NewMemMapFs()
		Expect(afero.WriteFile(fs, "/out/suite.json", []byte("stale contents"), 0o644)).To(Succeed())

		rw := &ResultWriterFile{Fs: fs}
		w, err := rw.OpenFile("/out/suite.json")
		Expect(err).ToNot(HaveOccurred())
		_, err = w.Write([]byte("{}"))
		Expect(err).ToNot(HaveOccurred())
		Expect(w.Close()).To(Succeed())

		b, _ := afero.ReadFile(fs, "/out/suite.json")
		Expect(string(b)).To(Equal("{}"))
	})

	It("Should refuse writes before the file is opened", func() {
		_, err := (&ResultWriterFile{}).Write([]byte("x"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Logging helpers", func() {
	It("Should report whether the caller is the CLI", func() {
		ctx := context.Background()
		Expect(CallerIsCLI(ctx)).To(BeFalse())
		Expect(CallerIsCLI(SetCallerToCLI(ctx))).To(BeTrue())
	})

	It("Should buffer the standard logger into the artifact writer", func() {
		DeferCleanup(func() {
			log.SetOutput(os.Stderr)
			log.SetLevel(log.InfoLevel)
		})

		aw, err := artifacts.NewMapWriter()
		Expect(err).ToNot(HaveOccurred())
		ctx := artifacts.ContextWithWriter(context.Background(), aw)

		var host bytes.Buffer
		log.SetOutput(&host)
		log.SetLevel(log.WarnLevel)

		flush := LogThroughArtifactWriterIfSet(ctx)
		log.Info("configuring SeekBug")
		Expect(host.Len()).To(BeZero())
		Expect(flush()).To(Succeed())

		Expect(log.StandardLogger().Out).To(BeIdenticalTo(&host))
		Expect(log.GetLevel()).To(Equal(log.WarnLevel))
		log.Warn("after the run")
		Expect(host.String()).To(ContainSubstring("after the run"))
		Expect(flush()).To(Succeed())

		r, ok := aw.Get(LogFilename)
		Expect(ok).To(BeTrue())
		b, _ := io.ReadAll(r)
		Expect(string(b)).To(ContainSubstring("configuring SeekBug"))
	})

	It("Should do nothing without an artifact writer", func() {
		flush := LogThroughArtifactWriterIfSet(context.Background())
		Expect(flush()).To(Succeed())
	})
})
