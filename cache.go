package ember

import "github.com/embercask/ember/query"

// MaybeCached is a statement handle that is either borrowed from the
// statement cache or exclusively owned by the current call. Borrowed
// handles must not be finalized by the caller; ownership stays with the
// cache for the connection's lifetime.
type MaybeCached[S any] struct {
	Statement S
	cached    bool
}

// Cached reports whether the statement is borrowed from the cache.
func (m MaybeCached[S]) Cached() bool { return m.cached }

// StatementCache maps query fingerprints to prepared statements so
// repeated executions of the same query shape skip re-preparation.
// Entries live for the owning connection's lifetime; there is no
// eviction.
type StatementCache[S any] struct {
	cache map[query.Fingerprint]S
}

// NewStatementCache returns an empty cache.
func NewStatementCache[S any]() *StatementCache[S] {
	return &StatementCache[S]{cache: make(map[query.Fingerprint]S)}
}

// CachedStatement returns the statement for key, preparing one with
// prepare on a miss. When cacheable is false the prepared statement is
// never inserted and the returned handle is owned solely by the caller.
func (c *StatementCache[S]) CachedStatement(key query.Fingerprint, cacheable bool, prepare func() (S, error)) (MaybeCached[S], error) {
	if !cacheable {
		statement, err := prepare()
		if err != nil {
			return MaybeCached[S]{}, err
		}
		return MaybeCached[S]{Statement: statement}, nil
	}

	if statement, ok := c.cache[key]; ok {
		return MaybeCached[S]{Statement: statement, cached: true}, nil
	}

	statement, err := prepare()
	if err != nil {
		return MaybeCached[S]{}, err
	}
	c.cache[key] = statement
	return MaybeCached[S]{Statement: statement, cached: true}, nil
}

// Len returns the number of distinct cached fingerprints.
func (c *StatementCache[S]) Len() int { return len(c.cache) }

// Each calls fn for every cached statement. Used by connections to
// finalize cached statements on close.
func (c *StatementCache[S]) Each(fn func(S)) {
	for _, statement := range c.cache {
		fn(statement)
	}
}

// Clear drops every entry. The caller is responsible for finalizing the
// statements first, via Each.
func (c *StatementCache[S]) Clear() {
	c.cache = make(map[query.Fingerprint]S)
}
