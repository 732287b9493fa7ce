package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rcsim/circuit"
)

var _ = Describe("Monitor", func() {
	var (
		m      *Monitor
		buffer *circuit.Buffer
	)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		m.router().ServeHTTP(rec, req)

		return rec
	}

	BeforeEach(func() {
		m = NewMonitor()

		var err error
		buffer, err = circuit.NewBuffer("ConstantCurrent.Buffer", 11, 1e-10, 1e-10)
		Expect(err).NotTo(HaveOccurred())
		m.RegisterBuffer(buffer)
	})

	It("should ignore privileged ports", func() {
		m.WithPortNumber(80)
		Expect(m.portNumber).To(Equal(0))

		m.WithPortNumber(8080)
		Expect(m.portNumber).To(Equal(8080))
	})

	It("should track the progress of a run", func() {
		circuit.SimulateConstantCurrent(buffer, 1e-2)

		rec := get("/api/progress")

		Expect(rec.Code).To(Equal(http.StatusOK))
		var bars []progressSnapshot
		Expect(json.Unmarshal(rec.Body.Bytes(), &bars)).To(Succeed())
		Expect(bars).To(HaveLen(1))
		Expect(bars[0].Name).To(Equal("ConstantCurrent.Buffer"))
		Expect(bars[0].Total).To(Equal(uint64(10)))
		Expect(bars[0].Finished).To(Equal(uint64(10)))
		Expect(bars[0].InProgress).To(BeZero())
	})

	It("should list buffers", func() {
		rec := get("/api/list_buffers")

		Expect(rec.Body.String()).To(Equal(`["ConstantCurrent.Buffer"]`))
	})

	It("should return 404 for unknown buffers", func() {
		rec := get("/api/buffer/Unknown")

		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should report process resources", func() {
		rec := get("/api/resource")

		var rsp resourceRsp
		Expect(json.Unmarshal(rec.Body.Bytes(), &rsp)).To(Succeed())
		Expect(rsp.MemorySize).NotTo(BeZero())
	})

	It("should refuse to open a browser before the server starts", func() {
		Expect(m.OpenInBrowser()).NotTo(Succeed())
	})

	It("should serve on a random port", func() {
		url, err := m.StartServer()

		Expect(err).NotTo(HaveOccurred())
		Expect(url).To(HavePrefix("http://localhost:"))

		rsp, err := http.Get(url + "/api/list_buffers")
		Expect(err).NotTo(HaveOccurred())
		defer rsp.Body.Close()
		Expect(rsp.StatusCode).To(Equal(http.StatusOK))
	})
})
