package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("rcsim", func() {
	var stdout, stderr *bytes.Buffer

	execute := func(args ...string) error {
		root := newRootCmd()
		root.SetOut(stdout)
		root.SetErr(stderr)
		root.SetArgs(args)

		return root.Execute()
	}

	readLines := func(path string) []string {
		content, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())

		return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	}

	BeforeEach(func() {
		stdout = new(bytes.Buffer)
		stderr = new(bytes.Buffer)
	})

	It("should print the version", func() {
		Expect(execute("version")).To(Succeed())
		Expect(stdout.String()).To(Equal("rcsim " + Version + "\n"))
	})

	It("should write both result files", func() {
		dir := GinkgoT().TempDir()

		Expect(execute("run", "--no-console", "--output-dir", dir)).
			To(Succeed())

		for _, name := range []string{
			"constant_current_results.csv",
			"constant_voltage_results.csv",
		} {
			lines := readLines(filepath.Join(dir, name))
			Expect(lines).To(HaveLen(251))
			Expect(lines[0]).To(Equal("Time (s),Voltage (V),Current (A)"))
		}

		Expect(stdout.String()).To(Equal(
			"Results saved to " +
				filepath.Join(dir, "constant_current_results.csv") + "\n" +
				"Results saved to " +
				filepath.Join(dir, "constant_voltage_results.csv") + "\n"))
	})

	It("should print 250 rows per mode", func() {
		dir := GinkgoT().TempDir()

		Expect(execute("run", "--output-dir", dir, "--parallel")).
			To(Succeed())

		out := stdout.String()
		Expect(strings.Count(out, "Time (s), Voltage (V), Current (A)\n")).
			To(Equal(2))
		Expect(strings.Count(out, "\n")).To(Equal(2*252 + 2))
		Expect(out).To(ContainSubstring(
			"0.00000002, 2.00000000, 0.01000000\n"))
	})

	It("should take the output directory from the environment", func() {
		dir := GinkgoT().TempDir()
		GinkgoT().Setenv(OutputDirEnv, dir)

		Expect(execute("run", "--no-console")).To(Succeed())
		Expect(filepath.Join(dir, "constant_current_results.csv")).
			To(BeAnExistingFile())
	})

	It("should prefer the flag over the environment", func() {
		envDir := GinkgoT().TempDir()
		flagDir := GinkgoT().TempDir()
		GinkgoT().Setenv(OutputDirEnv, envDir)

		Expect(execute("run", "--no-console", "--output-dir", flagDir)).
			To(Succeed())
		Expect(filepath.Join(flagDir, "constant_current_results.csv")).
			To(BeAnExistingFile())
		Expect(filepath.Join(envDir, "constant_current_results.csv")).
			NotTo(BeAnExistingFile())
	})

	It("should succeed when the files cannot be opened", func() {
		missing := filepath.Join(GinkgoT().TempDir(), "missing")

		Expect(execute("run", "--no-console", "--output-dir", missing)).
			To(Succeed())
		Expect(stderr.String()).To(ContainSubstring(
			"Error opening file: " +
				filepath.Join(missing, "constant_voltage_results.csv")))
	})

	It("should reject a record file without recording", func() {
		err := execute("run", "--record-file", "results")

		Expect(err).To(MatchError(ContainSubstring("--record")))
	})

	It("should reject unknown arguments", func() {
		Expect(execute("run", "extra")).NotTo(Succeed())
	})
})
