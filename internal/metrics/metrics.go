package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the business counters of the feedback service.
// A nil *Metrics or a zero value (NewMock) ignores every Record call.
type Metrics struct {
	studentsRegistered metric.Int64Counter
	loginsSucceeded    metric.Int64Counter
	loginsFailed       metric.Int64Counter
	feedbackSubmitted  metric.Int64Counter
	duplicatesRejected metric.Int64Counter
	reportsViewed      metric.Int64Counter
	logsDownloaded     metric.Int64Counter
}

func New(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	counters := []struct {
		target *metric.Int64Counter
		name   string
		desc   string
		unit   string
	}{
		{&m.studentsRegistered, "feedback_service.students.registered", "Total number of students registered", "{student}"},
		{&m.loginsSucceeded, "feedback_service.logins.succeeded", "Successful logins by role", "{login}"},
		{&m.loginsFailed, "feedback_service.logins.failed", "Rejected logins by role", "{login}"},
		{&m.feedbackSubmitted, "feedback_service.feedback.submitted", "Feedback entries stored", "{feedback}"},
		{&m.duplicatesRejected, "feedback_service.feedback.duplicates_rejected", "Feedback submissions rejected as duplicates", "{feedback}"},
		{&m.reportsViewed, "feedback_service.reports.viewed", "Times the admin feedback report was viewed", "{view}"},
		{&m.logsDownloaded, "feedback_service.logs.downloaded", "Times the log file was downloaded", "{download}"},
	}

	for _, c := range counters {
		counter, err := meter.Int64Counter(c.name,
			metric.WithDescription(c.desc),
			metric.WithUnit(c.unit),
		)
		if err != nil {
			return nil, err
		}
		*c.target = counter
	}

	return m, nil
}

func add(ctx context.Context, c metric.Int64Counter, opts ...metric.AddOption) {
	if c != nil {
		c.Add(ctx, 1, opts...)
	}
}

func (m *Metrics) RecordStudentRegistration(ctx context.Context) {
	if m != nil {
		add(ctx, m.studentsRegistered)
	}
}

func (m *Metrics) RecordLogin(ctx context.Context, role string, ok bool) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("role", role))
	if ok {
		add(ctx, m.loginsSucceeded, attrs)
	} else {
		add(ctx, m.loginsFailed, attrs)
	}
}

func (m *Metrics) RecordFeedbackSubmitted(ctx context.Context) {
	if m != nil {
		add(ctx, m.feedbackSubmitted)
	}
}

func (m *Metrics) RecordDuplicateRejected(ctx context.Context) {
	if m != nil {
		add(ctx, m.duplicatesRejected)
	}
}

func (m *Metrics) RecordReportViewed(ctx context.Context) {
	if m != nil {
		add(ctx, m.reportsViewed)
	}
}

func (m *Metrics) RecordLogDownloaded(ctx context.Context) {
	if m != nil {
		add(ctx, m.logsDownloaded)
	}
}

// NewMock creates a no-op Metrics instance for testing
func NewMock() *Metrics {
	return &Metrics{}
}
