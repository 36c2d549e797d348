package output

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/lucsky/cuid"
	"github.com/siddharthshetty008/restoAnalyze/internal/analysis"
	"github.com/siddharthshetty008/restoAnalyze/internal/logging"
	"github.com/siddharthshetty008/restoAnalyze/internal/models"
	"github.com/sirupsen/logrus"
)

// Publisher turns an analysis report into records on a destination. Every
// record of one Publish call shares a run id.
type Publisher struct {
	dest   OutputDestination
	logger logrus.FieldLogger
	now    func() time.Time
}

func NewPublisher(dest OutputDestination, logger logrus.FieldLogger) *Publisher {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Publisher{dest: dest, logger: logger, now: time.Now}
}

// PublishCounts reports how many records went to each topic.
type PublishCounts map[string]int

func (p *Publisher) send(topic string, v any, counts PublishCounts) error {
	msg, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s record: %w", topic, err)
	}
	if err := p.dest.WriteMessage(topic, msg); err != nil {
		return fmt.Errorf("writing %s record: %w", topic, err)
	}
	counts[topic]++
	return nil
}

// PublishAllocations writes one record per allocated item line.
func (p *Publisher) PublishAllocations(runID string, orders []models.OrderAllocation) (PublishCounts, error) {
	counts := PublishCounts{}
	for _, r := range orders {
		for _, ev := range AllocationEvents(runID, r) {
			if err := p.send(models.TopicOrderAllocations, ev, counts); err != nil {
				return counts, err
			}
		}
	}
	return counts, nil
}

// Publish writes allocations, elasticity fits, pricing recommendations,
// classifications, monthly trends and service type summaries, in that order.
// It returns the run id used.
func (p *Publisher) Publish(report *analysis.Report) (string, PublishCounts, error) {
	runID := cuid.New()
	at := p.now()

	counts, err := p.PublishAllocations(runID, report.Orders)
	if err != nil {
		return runID, counts, err
	}

	for _, name := range sortedKeys(report.Elasticity.Records) {
		ev := NewElasticityEvent(runID, at, report.Elasticity.Records[name])
		if err := p.send(models.TopicElasticityResults, ev, counts); err != nil {
			return runID, counts, err
		}
	}
	for _, name := range sortedKeys(report.Pricing) {
		ev := NewPricingEvent(runID, at, report.Pricing[name])
		if err := p.send(models.TopicPricingRecommendations, ev, counts); err != nil {
			return runID, counts, err
		}
	}
	for _, c := range report.Classifications {
		if err := p.send(models.TopicBCGClassifications, NewClassificationEvent(runID, at, c), counts); err != nil {
			return runID, counts, err
		}
	}
	for _, row := range report.Insights.MonthlyTrends.Rows {
		if err := p.send(models.TopicMonthlyTrends, NewMonthlyTrendEvent(runID, row), counts); err != nil {
			return runID, counts, err
		}
	}
	for _, st := range report.Insights.ServiceTypes {
		if err := p.send(models.TopicServiceTypes, NewServiceTypeEvent(runID, at, st), counts); err != nil {
			return runID, counts, err
		}
	}

	p.logger.WithFields(logrus.Fields{"run_id": runID, "records": counts}).Info("results published")
	return runID, counts, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// messageKey picks the partitioning key of a record: its order id for
// allocations, its item name for item results, its service type otherwise.
func messageKey(msg []byte) string {
	var keys struct {
		OrderID     string `json:"orderId"`
		ItemName    string `json:"itemName"`
		ServiceType string `json:"serviceType"`
	}
	if err := json.Unmarshal(msg, &keys); err != nil {
		return ""
	}
	switch {
	case keys.OrderID != "":
		return keys.OrderID
	case keys.ItemName != "":
		return keys.ItemName
	}
	return keys.ServiceType
}
