package pgdb

import (
	"testing"
	"time"

	"github.com/DRSN-tech/storefront/internal/repository/pgdb/converter"
	"github.com/stretchr/testify/assert"
)

func TestLeaseSeconds(t *testing.T) {
	cases := []struct {
		lease time.Duration
		secs  int64
	}{
		{5 * time.Minute, 300},
		{1500 * time.Millisecond, 2},
		{time.Millisecond, 1},
		{0, 1},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.secs, leaseSeconds(tc.lease), tc.lease.String())
	}
}

func TestNewOutboxEventRepoLease(t *testing.T) {
	assert.Equal(t, defaultProcessingLease, NewOutboxEventRepo(nil, converter.OutboxEventConverter{}, 0).lease)
	assert.Equal(t, time.Minute, NewOutboxEventRepo(nil, converter.OutboxEventConverter{}, time.Minute).lease)
}
