package sqlite

import (
	"database/sql/driver"
	"time"

	"go.uber.org/zap"
)

// startQueryLog opens the scoped observer for one query execution. The
// returned finish func emits the timing record; callers run it on every
// exit path so the record fires exactly once per executed query. Disabled
// logging and the probe query get a no-op observer.
func (c *Connection) startQueryLog(sql string) func() {
	if !c.config.LogQuery() || sql == probeQuery {
		return func() {}
	}
	start := time.Now()
	finished := false
	return func() {
		if finished {
			return
		}
		finished = true
		c.logger.Debug("query executed",
			zap.String("query", sql),
			zap.Int64("elapsed_ms", time.Since(start).Milliseconds()))
	}
}

// explainQuery logs the query's plan when explain capture is enabled. The
// plan is read through the raw handle, so the secondary statement never
// re-enters explain capture. The explain statement carries the same
// placeholders as sql and is bound with the same values. The probe query
// is exempt.
func (c *Connection) explainQuery(sql string, binds []driver.Value) error {
	if sql == probeQuery || !c.config.ExplainQuery() {
		return nil
	}
	plan, err := c.raw.queryForString("EXPLAIN QUERY PLAN "+sql, "|", binds)
	if err != nil {
		return err
	}
	c.logger.Debug("explain query plan",
		zap.String("query", sql),
		zap.String("plan", plan))
	return nil
}
