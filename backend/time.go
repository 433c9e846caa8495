/*
 * Radon
 *
 * Copyright 2018 The Radon Authors.
 * Code is licensed under the GPLv3.
 *
 */

package backend

import (
	"context"
	"time"

	"github.com/radondb/shardcore/expression/datum"
	"github.com/radondb/shardcore/merger"
	"github.com/radondb/shardcore/xcontext"

	"github.com/pkg/errors"
)

const nowQuery = "select now()"

// DatabaseTimeService reads the current time of the first backend.
type DatabaseTimeService struct {
	scatter *Scatter
}

// NewDatabaseTimeService creates the DatabaseTimeService.
func NewDatabaseTimeService(scatter *Scatter) *DatabaseTimeService {
	return &DatabaseTimeService{scatter: scatter}
}

// Now implements sharding.TimeService.
func (s *DatabaseTimeService) Now(ctx context.Context) (time.Time, error) {
	req := xcontext.NewRequestContext()
	req.Mode = xcontext.ReqSingle
	req.RawQuery = nowQuery
	res, err := s.scatter.Query(ctx, req)
	if err != nil {
		return time.Time{}, err
	}
	if len(res.Results) == 0 {
		return time.Time{}, errors.New("backend.time.service.no.backend")
	}

	rs, err := merger.ReadAll(res.Results[0])
	if err != nil {
		return time.Time{}, err
	}
	if len(rs.Rows) != 1 || len(rs.Rows[0]) != 1 {
		return time.Time{}, errors.Errorf("backend.time.service.unexpected.result.rows[%d]", len(rs.Rows))
	}
	d := rs.Rows[0].Value(1)
	if t, ok := d.(*datum.DTime); ok {
		return t.Time(), nil
	}
	parsed, err := datum.ParseTime(d.ValStr())
	if err != nil {
		return time.Time{}, err
	}
	return parsed.(*datum.DTime).Time(), nil
}
