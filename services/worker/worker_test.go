package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"watchtracker/internal/monitor"
	"watchtracker/services/notifier"

	"github.com/stretchr/testify/assert"
)

// MockSweeper implements the Sweeper interface for testing
type MockSweeper struct {
	deals  []monitor.DealRecord
	best   []monitor.DealRecord
	sweeps int
}

var _ Sweeper = (*MockSweeper)(nil)

func (m *MockSweeper) RunSweep() []monitor.DealRecord {
	m.sweeps++
	return m.deals
}

func (m *MockSweeper) BestDeals() []monitor.DealRecord {
	return m.best
}

// MockNotifier implements the notifier.Notifier interface for testing
type MockNotifier struct {
	mu        sync.Mutex
	subjects  []string
	bodies    []string
	recipient string
}

var _ notifier.Notifier = (*MockNotifier)(nil)

func (m *MockNotifier) Notify(subject, body, recipient string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects = append(m.subjects, subject)
	m.bodies = append(m.bodies, body)
	m.recipient = recipient
	return nil
}

func (m *MockNotifier) Close() error {
	return nil
}

// MockReportWriter implements the ReportWriter interface for testing
type MockReportWriter struct {
	dates    []string
	contents []string
}

func (m *MockReportWriter) Write(date, content string) (string, error) {
	m.dates = append(m.dates, date)
	m.contents = append(m.contents, content)
	return "price_report_" + date + ".txt", nil
}

var testDeal = monitor.DealRecord{
	Model:           "Galaxy Watch 6 (40mm)",
	Retailer:        "Takealot",
	Price:           6499,
	NormalPrice:     7999,
	DiscountPercent: 18.8,
	Savings:         1500,
}

func TestRunOnceWithDeals(t *testing.T) {
	sweeper := &MockSweeper{
		deals: []monitor.DealRecord{testDeal},
		best:  []monitor.DealRecord{testDeal},
	}
	mockNotifier := &MockNotifier{}
	writer := &MockReportWriter{}

	w := NewWorker(context.Background(), sweeper, []notifier.Notifier{mockNotifier}, writer, "me@example.com", time.Hour)

	deals := w.RunOnce()

	assert.Len(t, deals, 1)
	assert.Equal(t, 1, sweeper.sweeps)

	// The report was written for today's date
	assert.Len(t, writer.dates, 1)
	assert.Contains(t, writer.contents[0], "Galaxy Watch 6 (40mm)")

	// The alert went out with the deal details
	assert.Len(t, mockNotifier.subjects, 1)
	assert.Contains(t, mockNotifier.subjects[0], "Samsung Watch Deal Alert")
	assert.Contains(t, mockNotifier.bodies[0], "Galaxy Watch 6 (40mm) at Takealot")
	assert.Equal(t, "me@example.com", mockNotifier.recipient)
}

func TestRunOnceNoDealsNoNotification(t *testing.T) {
	sweeper := &MockSweeper{}
	mockNotifier := &MockNotifier{}
	writer := &MockReportWriter{}

	w := NewWorker(context.Background(), sweeper, []notifier.Notifier{mockNotifier}, writer, "me@example.com", time.Hour)

	deals := w.RunOnce()

	assert.Empty(t, deals)

	// The report is still generated, but no notification is attempted
	assert.Len(t, writer.dates, 1)
	assert.Empty(t, mockNotifier.subjects)
}

func TestStartStopsOnContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	sweeper := &MockSweeper{}
	writer := &MockReportWriter{}

	w := NewWorker(ctx, sweeper, nil, writer, "", 10*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		done <- w.Start()
	}()

	// Let at least one sweep happen, then cancel between sweeps
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(1 * time.Second):
		t.Fatal("Worker did not stop after cancellation")
	}

	assert.GreaterOrEqual(t, sweeper.sweeps, 1)
}
