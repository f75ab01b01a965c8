package postgres

import (
	"time"

	"github.com/fareline/fareline/pkg/metrics"
)

const serviceName = "fareline"

func (r *UserRepo) record(op string, start time.Time, err error) {
	metrics.RecordDatabaseQuery(serviceName, op, err, time.Since(start))
}

func (r *BookingRepo) record(op string, start time.Time, err error) {
	metrics.RecordDatabaseQuery(serviceName, op, err, time.Since(start))
}

func (r *BookingEventRepo) record(op string, start time.Time, err error) {
	metrics.RecordDatabaseQuery(serviceName, op, err, time.Since(start))
}

func (r *RefreshTokenRepo) record(op string, start time.Time, err error) {
	metrics.RecordDatabaseQuery(serviceName, op, err, time.Since(start))
}
