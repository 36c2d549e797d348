package output

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/shopspring/decimal"
	"github.com/siddharthshetty008/restoAnalyze/internal/allocator"
	"github.com/siddharthshetty008/restoAnalyze/internal/analysis"
	"github.com/siddharthshetty008/restoAnalyze/internal/cloudwriter"
	"github.com/siddharthshetty008/restoAnalyze/internal/elasticity"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var at = time.Date(2024, time.March, 5, 13, 0, 0, 0, time.UTC)

func pricingMsg(t *testing.T, item string) []byte {
	t.Helper()
	msg, err := json.Marshal(NewPricingEvent("run1", at, models.PricingRecommendation{
		ItemName:    item,
		Action:      models.ActionIncrease,
		Confidence:  models.ConfidenceHigh,
		RiskFactors: []string{models.RiskLargePriceChange, models.RiskDemandSwing},
	}))
	require.NoError(t, err)
	return msg
}

func TestJSONOutputPartitionsByDay(t *testing.T) {
	dir := t.TempDir()
	out := NewJSONOutput(dir, "results")
	require.NoError(t, out.WriteMessage(models.TopicPricingRecommendations, pricingMsg(t, "Veg Thali")))
	require.NoError(t, out.WriteMessage(models.TopicPricingRecommendations, pricingMsg(t, "Beer")))
	require.NoError(t, out.Close())

	f, err := os.Open(filepath.Join(dir, "results", models.TopicPricingRecommendations, "year=2024", "month=03", "day=05", "data.json"))
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		lines = append(lines, m)
	}
	require.Len(t, lines, 2)
	assert.Equal(t, "Veg Thali", lines[0]["itemName"])
	assert.Equal(t, "large_price_change;demand_swing", lines[0]["riskFactors"])
}

func TestCSVOutputWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	out := NewCSVOutput(dir, "results")
	require.NoError(t, out.WriteMessage(models.TopicPricingRecommendations, pricingMsg(t, "Veg Thali")))
	require.NoError(t, out.WriteMessage(models.TopicPricingRecommendations, pricingMsg(t, "Beer")))
	require.NoError(t, out.Close())

	f, err := os.Open(filepath.Join(dir, "results", models.TopicPricingRecommendations, "year=2024", "month=03", "day=05", "data.csv"))
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	col := map[string]int{}
	for i, h := range rows[0] {
		col[h] = i
	}
	assert.Equal(t, "Beer", rows[2][col["itemName"]])
	assert.Equal(t, "1709643600", rows[1][col["timestamp"]])
	assert.Equal(t, "INCREASE", rows[1][col["action"]])
}

func TestWriteMessageRejectsBadRecords(t *testing.T) {
	out := NewJSONOutput(t.TempDir(), "results")
	assert.Error(t, out.WriteMessage("x", []byte("not json")))
	assert.Error(t, out.WriteMessage("x", []byte(`{"itemName":"a"}`)))

	p := NewParquetOutputWithFactory("results", "bucket", nil, nil)
	assert.ErrorIs(t, p.WriteMessage("menu_items", pricingMsg(t, "a")), ErrUnknownTopic)
}

func TestConsoleOutput(t *testing.T) {
	var buf bytes.Buffer
	out := NewConsoleOutput(&buf)
	require.NoError(t, out.WriteMessage("bcg_classifications", []byte(`{"a":1}`)))
	require.NoError(t, out.Close())
	assert.Equal(t, "[bcg_classifications] {\"a\":1}\n", buf.String())
}

type memoryWriter struct {
	buf    bytes.Buffer
	closed bool
}

func (m *memoryWriter) Write(p []byte) (int, error) { return m.buf.Write(p) }
func (m *memoryWriter) Close() error                { m.closed = true; return nil }

type memoryFactory map[string]*memoryWriter

func (f memoryFactory) NewWriter(bucket, objectPath string) (cloudwriter.CloudWriter, error) {
	w := &memoryWriter{}
	f[bucket+"/"+objectPath] = w
	return w, nil
}

func TestParquetOutputToCloud(t *testing.T) {
	objects := memoryFactory{}
	out := NewParquetOutputWithFactory("results", "bucket", objects, nil)
	require.NoError(t, out.WriteMessage(models.TopicPricingRecommendations, pricingMsg(t, "Veg Thali")))
	require.NoError(t, out.WriteMessage(models.TopicPricingRecommendations, pricingMsg(t, "Beer")))
	require.NoError(t, out.Close())

	w, ok := objects["bucket/results/pricing_recommendations/year=2024/month=03/day=05/data.parquet"]
	require.True(t, ok, "objects: %v", objects)
	assert.True(t, w.closed)
	data := w.buf.Bytes()
	require.Greater(t, len(data), 8)
	assert.Equal(t, "PAR1", string(data[:4]))
	assert.Equal(t, "PAR1", string(data[len(data)-4:]))
}

func TestParquetOutputLocal(t *testing.T) {
	dir := t.TempDir()
	out, err := NewParquetOutput(context.Background(), &models.Config{OutputPath: dir, OutputFolder: "results", OutputDestination: "local"}, nil)
	require.NoError(t, err)
	require.NoError(t, out.WriteMessage(models.TopicPricingRecommendations, pricingMsg(t, "Veg Thali")))
	require.NoError(t, out.Close())

	info, err := os.Stat(filepath.Join(dir, "results", models.TopicPricingRecommendations, "year=2024", "month=03", "day=05", "data.parquet"))
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(8))
}

func TestKafkaOutputKeysByItem(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(m *sarama.ProducerMessage) error {
		key, err := m.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "Veg Thali", string(key))
		assert.Equal(t, models.TopicPricingRecommendations, m.Topic)
		return nil
	})
	out := NewKafkaOutputWithProducer(producer, nil)
	require.NoError(t, out.WriteMessage(models.TopicPricingRecommendations, pricingMsg(t, "Veg Thali")))
	require.NoError(t, out.Close())
	assert.Error(t, out.WriteMessage(models.TopicPricingRecommendations, pricingMsg(t, "Veg Thali")))
}

type recorder struct {
	topics []string
	msgs   [][]byte
}

func (r *recorder) WriteMessage(topic string, msg []byte) error {
	r.topics = append(r.topics, topic)
	r.msgs = append(r.msgs, msg)
	return nil
}
func (r *recorder) Close() error { return nil }

func TestPublisher(t *testing.T) {
	thali := &models.MenuItem{Name: "Veg Thali", Price: decimal.NewFromInt(100)}
	orders := []models.OrderAllocation{{
		Order: models.Order{ID: "A1", Timestamp: at, TotalAmount: decimal.NewFromInt(250)},
		Allocations: []models.Allocation{
			{ItemName: "Veg Thali", MatchedItem: thali, Confidence: models.ConfidenceHigh, AllocatedPrice: decimal.NewFromInt(100), Method: models.MethodMenuPrice, MatchScore: 1},
			{ItemName: "Unknown Snack", Confidence: models.ConfidenceEstimated, AllocatedPrice: decimal.NewFromInt(150), Method: models.MethodProportional},
		},
	}}
	report := &analysis.Report{
		Allocation: allocator.BatchResult{Orders: orders},
		Orders:     orders,
		Elasticity: elasticity.Result{
			Status:  elasticity.StatusAvailable,
			Records: map[string]models.ElasticityRecord{"Veg Thali": {ItemName: "Veg Thali", Coefficient: -0.4}},
		},
		Pricing: map[string]models.PricingRecommendation{
			"Veg Thali": {ItemName: "Veg Thali"},
		},
		Classifications: []models.Classification{{ItemName: "Veg Thali", Quadrant: models.QuadrantStar, TotalRevenue: decimal.NewFromInt(100)}},
	}

	rec := &recorder{}
	p := NewPublisher(rec, nil)
	p.now = func() time.Time { return at }
	runID, counts, err := p.Publish(report)
	require.NoError(t, err)
	assert.NotEmpty(t, runID)
	assert.Equal(t, PublishCounts{
		models.TopicOrderAllocations:       2,
		models.TopicElasticityResults:      1,
		models.TopicPricingRecommendations: 1,
		models.TopicBCGClassifications:     1,
	}, counts)
	assert.Equal(t, []string{
		models.TopicOrderAllocations, models.TopicOrderAllocations, models.TopicElasticityResults,
		models.TopicPricingRecommendations, models.TopicBCGClassifications,
	}, rec.topics)

	var alloc AllocationEvent
	require.NoError(t, json.Unmarshal(rec.msgs[1], &alloc))
	assert.Equal(t, runID, alloc.RunID)
	assert.Equal(t, int32(1), alloc.Position)
	assert.Equal(t, 150.0, alloc.AllocatedPrice)
	assert.Equal(t, "", alloc.MatchedItem)
	assert.Equal(t, "A1", messageKey(rec.msgs[1]))
	assert.Equal(t, "Veg Thali", messageKey(rec.msgs[2]))
}

func TestPublisherWritesTrendsAndServiceTypes(t *testing.T) {
	orders := []models.Order{
		{ID: "1", Timestamp: time.Date(2024, 1, 10, 13, 0, 0, 0, time.UTC), TotalAmount: decimal.NewFromInt(200), OrderType: "Dine In"},
		{ID: "2", Timestamp: time.Date(2024, 2, 3, 20, 0, 0, 0, time.UTC), TotalAmount: decimal.NewFromInt(300), OrderType: "Delivery"},
	}
	report := &analysis.Report{
		Pricing: map[string]models.PricingRecommendation{},
		Insights: analysis.Insights{
			MonthlyTrends: analysis.MonthlyTrends(orders),
			ServiceTypes:  analysis.ServiceTypes(orders),
		},
	}

	rec := &recorder{}
	p := NewPublisher(rec, nil)
	p.now = func() time.Time { return at }
	_, counts, err := p.Publish(report)
	require.NoError(t, err)
	assert.Equal(t, PublishCounts{models.TopicMonthlyTrends: 4, models.TopicServiceTypes: 2}, counts)

	var trend MonthlyTrendEvent
	require.NoError(t, json.Unmarshal(rec.msgs[0], &trend))
	assert.Equal(t, "2024-01", trend.Month)
	assert.Equal(t, "Delivery", trend.ServiceType)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Unix(), trend.Timestamp)
	assert.Equal(t, "Delivery", messageKey(rec.msgs[0]))

	var svc ServiceTypeEvent
	require.NoError(t, json.Unmarshal(rec.msgs[4], &svc))
	assert.Equal(t, "Delivery", svc.ServiceType)
	assert.Equal(t, int64(1), svc.DinnerOrders)
	assert.Equal(t, "20:00", svc.PeakHours)
	assert.Equal(t, "20=1", svc.HourlyOrders)
}

func TestTrendEventsRoundTripThroughJSONSink(t *testing.T) {
	dir := t.TempDir()
	out := NewJSONOutput(dir, "results")
	row := analysis.ServiceMonth{Month: "2024-03", ServiceType: "Dine In", OrderCount: 4, Revenue: decimal.NewFromInt(800), AvgOrderValue: decimal.NewFromInt(200)}
	msg, err := json.Marshal(NewMonthlyTrendEvent("run", row))
	require.NoError(t, err)
	require.NoError(t, out.WriteMessage(models.TopicMonthlyTrends, msg))
	require.NoError(t, out.Close())

	_, err = os.Stat(filepath.Join(dir, "results", models.TopicMonthlyTrends, "year=2024", "month=03", "day=01", "data.json"))
	assert.NoError(t, err)
}
