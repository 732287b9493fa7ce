package report_test

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rcsim/datarecording"
	"github.com/sarchlab/rcsim/report"
)

func sampleTable() report.Table {
	return report.Table{
		Label: "Constant Current Source",
		Name:  "constant_current_results",
		Rows: []report.Row{
			{Step: 0, Time: 0, Voltage: 0, Current: 0},
			{Step: 200, Time: 2e-8, Voltage: 2, Current: 0.01},
		},
	}
}

var _ = Describe("ConsoleSink", func() {
	It("should print the table", func() {
		buf := new(bytes.Buffer)

		err := report.NewConsoleSink(buf).Write(sampleTable())

		Expect(err).NotTo(HaveOccurred())
		Expect(buf.String()).To(Equal(
			"Constant Current Source Results:\n" +
				"Time (s), Voltage (V), Current (A)\n" +
				"0.00000000, 0.00000000, 0.00000000\n" +
				"0.00000002, 2.00000000, 0.01000000\n"))
	})
})

var _ = Describe("CSVSink", func() {
	var (
		dir     string
		notices *bytes.Buffer
		sink    *report.CSVSink
	)

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		notices = new(bytes.Buffer)
		sink = report.NewCSVSink(dir, notices)
	})

	It("should write the table", func() {
		err := sink.Write(sampleTable())

		Expect(err).NotTo(HaveOccurred())

		path := filepath.Join(dir, "constant_current_results.csv")
		Expect(sink.Path("constant_current_results")).To(Equal(path))

		content, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(content)).To(Equal(
			"Time (s),Voltage (V),Current (A)\n" +
				"0.00000000,0.00000000,0.00000000\n" +
				"0.00000002,2.00000000,0.01000000\n"))
		Expect(notices.String()).To(Equal("Results saved to " + path + "\n"))
	})

	It("should report files that cannot be opened", func() {
		sink = report.NewCSVSink(filepath.Join(dir, "missing"), notices)

		err := sink.Write(sampleTable())

		var openErr *report.OpenError
		Expect(errors.As(err, &openErr)).To(BeTrue())
		Expect(openErr.Path).To(Equal(
			filepath.Join(dir, "missing", "constant_current_results.csv")))
		Expect(err.Error()).To(HavePrefix("Error opening file: "))
		Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())
		Expect(notices.String()).To(BeEmpty())
	})
})

var _ = Describe("ChartSink", func() {
	It("should draw voltage and current", func() {
		dir := GinkgoT().TempDir()
		sink := report.NewChartSink(dir)

		err := sink.Write(sampleTable())

		Expect(err).NotTo(HaveOccurred())
		for _, path := range sink.Paths("constant_current_results") {
			content, err := os.ReadFile(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(content[:4]).To(Equal([]byte("\x89PNG")))
		}
	})

	It("should refuse non-finite values", func() {
		t := sampleTable()
		t.Rows[1].Voltage = math.Inf(1)

		err := report.NewChartSink(GinkgoT().TempDir()).Write(t)

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("RecorderSink", func() {
	It("should insert every row", func() {
		writer := datarecording.NewSQLiteWriter(
			filepath.Join(GinkgoT().TempDir(), "rows"))
		writer.Init()
		defer writer.Close()

		sink := report.NewRecorderSink(writer)
		Expect(sink.Write(sampleTable())).To(Succeed())
		Expect(sink.Write(sampleTable())).To(Succeed())
		writer.Flush()

		var count int
		err := writer.QueryRow(
			"SELECT COUNT(*) FROM constant_current_results").Scan(&count)
		Expect(err).NotTo(HaveOccurred())
		Expect(count).To(Equal(4))
		Expect(writer.ListTables()).To(Equal(
			[]string{"constant_current_results"}))
	})
})
