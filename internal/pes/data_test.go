package pes_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/vibelab/internal/pes"
)

var _ = Describe("ReadSamples", func() {
	write := func(content string) string {
		path := filepath.Join(GinkgoT().TempDir(), "scan.csv")
		Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())
		return path
	}

	It("reads two-column scans", func() {
		r, e, err := pes.ReadSamples(write("0.8,1.2\n0.9,0.1\n1.0,0.4\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(Equal([]float64{0.8, 0.9, 1.0}))
		Expect(e).To(Equal([]float64{1.2, 0.1, 0.4}))
	})

	It("skips a header row", func() {
		r, _, err := pes.ReadSamples(write("r,energy\n0.8,1.2\n0.9,0.1\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(HaveLen(2))
	})

	It("rejects malformed rows past the header", func() {
		_, _, err := pes.ReadSamples(write("0.8,1.2\nbad,row\n"))
		Expect(err).To(HaveOccurred())
	})

	It("rejects files with no samples", func() {
		_, _, err := pes.ReadSamples(write("r,energy\n"))
		Expect(err).To(HaveOccurred())
	})

	It("reports missing files", func() {
		_, _, err := pes.ReadSamples("/nonexistent/scan.csv")
		Expect(err).To(HaveOccurred())
	})
})
