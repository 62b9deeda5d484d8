package debugger

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"
)

var _ = Describe("CreateTarget", func() {
	var fs afero.Fs

	BeforeEach(func() {
		fs = afero.NewMemMapFs()
		Expect(afero.WriteFile(fs, "/build/bin/crashy", []byte("\x7fELF"), 0o755)).To(Succeed())
	})

	It("Should create a target for a regular file", func() {
		t, err := CreateTarget(fs, "/build/bin/crashy")
		Expect(err).ToNot(HaveOccurred())
		Expect(t.Name).To(Equal("crashy"))
		Expect(t.Size).To(Equal(int64(4)))
	})

	It("Should reject a missing program", func() {
		_, err := CreateTarget(fs, "/build/bin/missing")
		Expect(err).To(MatchError(ErrInvalidTarget))
	})

	It("Should reject a directory", func() {
		_, err := CreateTarget(fs, "/build/bin")
		Expect(err).To(MatchError(ErrInvalidTarget))
	})

	It("Should reject an empty path", func() {
		_, err := CreateTarget(fs, "")
		Expect(err).To(MatchError(ErrInvalidTarget))
	})
})
