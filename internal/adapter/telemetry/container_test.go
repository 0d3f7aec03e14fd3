package telemetry

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/suite"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	. "github.com/onsi/gomega"

	"customerapp/pkg/test"
)

const runtimeScope = "go.opentelemetry.io/contrib/instrumentation/runtime"

func hasLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}

type ContainerTestSuite struct {
	suite.Suite
	container *Container
}

func (s *ContainerTestSuite) SetupTest() {
	RegisterTestingT(s.T())

	container, err := NewContainer(context.Background(), Config{
		ServiceName:   "customerapp-test",
		Environment:   "test",
		MetricsPort:   "0",
		TraceExporter: ExporterNone,
	}, otelzap.New(zap.NewNop()))
	Expect(err).To(BeNil())
	s.container = container
}

func (s *ContainerTestSuite) TearDownTest() {
	Expect(s.container.Shutdown(context.Background())).To(Succeed())
}

func TestContainerTestSuite(t *testing.T) {
	suite.Run(t, new(ContainerTestSuite))
}

func (s *ContainerTestSuite) TestUnknownExporter() {
	_, err := NewContainer(context.Background(), Config{TraceExporter: "zipkin"}, otelzap.New(zap.NewNop()))

	Expect(err).To(MatchError(ContainSubstring("unknown trace exporter")))
}

func (s *ContainerTestSuite) TestRegisterDBStats() {
	db := test.InitTestDB()
	defer test.TeardownTestDB(s.T(), db)

	Expect(s.container.RegisterDBStats(db.DB, "customerapp")).To(Succeed())

	count, err := testutil.GatherAndCount(s.container.PrometheusRegistry, "go_sql_open_connections")
	Expect(err).To(BeNil())
	Expect(count).To(Equal(1))

	Expect(s.container.RegisterDBStats(db.DB, "customerapp")).To(HaveOccurred())
}

func (s *ContainerTestSuite) TestRuntimeMetricsAreExported() {
	families, err := s.container.PrometheusRegistry.Gather()
	Expect(err).To(BeNil())

	runtimeFamilies := 0
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			if hasLabel(metric.GetLabel(), "otel_scope_name", runtimeScope) {
				runtimeFamilies++
				break
			}
		}
	}

	Expect(runtimeFamilies).To(BeNumerically(">", 0))
}

func (s *ContainerTestSuite) TestProbeFeedsCustomerOperations() {
	probe := s.container.NewTelemetryProbe()

	probe.RecordServiceOperation(context.Background(), "customer", "create", 0, nil)

	value := testutil.ToFloat64(s.container.AppMetrics.customerOperations.WithLabelValues("create", "ok"))
	Expect(value).To(Equal(1.0))
}
