package circuit_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rcsim/circuit"
)

var _ = Describe("Params", func() {
	It("should hold the reference circuit", func() {
		p := circuit.DefaultParams()

		Expect(p.StepCount).To(Equal(50000))
		Expect(p.DT).To(Equal(1e-10))
		Expect(p.Capacitance).To(Equal(100e-12))
		Expect(p.Resistance).To(Equal(1000.0))
		Expect(p.SourceCurrent).To(Equal(1e-2))
		Expect(p.SourceVoltage).To(Equal(10.0))
		Expect(p.TimeConstant()).To(BeNumerically("~", 1e-7, 1e-20))
		Expect(p.Validate()).To(Succeed())
	})

	DescribeTable("should reject degenerate parameters",
		func(mutate func(p *circuit.Params)) {
			p := circuit.DefaultParams()
			mutate(&p)

			err := p.Validate()

			Expect(errors.Is(err, circuit.ErrParameterBounds)).To(BeTrue())
		},
		Entry("no steps", func(p *circuit.Params) { p.StepCount = 0 }),
		Entry("zero timestep", func(p *circuit.Params) { p.DT = 0 }),
		Entry("zero capacitance", func(p *circuit.Params) { p.Capacitance = 0 }),
		Entry("negative resistance", func(p *circuit.Params) { p.Resistance = -1 }),
		Entry("NaN current", func(p *circuit.Params) { p.SourceCurrent = math.NaN() }),
		Entry("infinite voltage", func(p *circuit.Params) { p.SourceVoltage = math.Inf(1) }),
	)

	It("should accept a negative source current", func() {
		p := circuit.DefaultParams()
		p.SourceCurrent = -1e-3

		Expect(p.Validate()).To(Succeed())
	})
})

var _ = Describe("Mode", func() {
	It("should name its results", func() {
		Expect(circuit.ModeConstantCurrent.Label()).
			To(Equal("Constant Current Source"))
		Expect(circuit.ModeConstantVoltage.Label()).
			To(Equal("Constant Voltage Source"))
		Expect(circuit.ModeConstantCurrent.ResultName()).
			To(Equal("constant_current_results"))
		Expect(circuit.ModeConstantVoltage.ResultName()).
			To(Equal("constant_voltage_results"))
		Expect(circuit.Mode(7).String()).To(Equal("Mode(7)"))
	})

	It("should dispatch to the matching recurrence", func() {
		p := circuit.DefaultParams()
		p.StepCount = 3

		cc, _ := circuit.NewBuffer("CC", p.StepCount, p.DT, p.Capacitance)
		cv, _ := circuit.NewBuffer("CV", p.StepCount, p.DT, p.Capacitance)
		circuit.ModeConstantCurrent.Simulate(cc, p)
		circuit.ModeConstantVoltage.Simulate(cv, p)

		Expect(cc.Current[0]).To(BeZero())
		Expect(cv.Current[0]).To(Equal(p.SourceVoltage / p.Resistance))
	})

	It("should panic on unknown modes", func() {
		b, _ := circuit.NewBuffer("Buffer", 3, 1e-10, 1e-10)

		Expect(func() { circuit.Mode(7).Simulate(b, circuit.DefaultParams()) }).
			To(Panic())
	})
})
