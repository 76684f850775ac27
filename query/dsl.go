package query

import "database/sql/driver"

// Raw wraps caller-supplied SQL text. Because the text is arbitrary it is
// never safe to cache a statement prepared from it.
func Raw(sql string) Fragment {
	return rawNode(sql)
}

type rawNode string

func (n rawNode) WriteSQL(b *Builder) error {
	b.WriteSQL(string(n))
	return nil
}

func (n rawNode) SafeToCache() bool { return false }

// Ident references a column or table by name.
func Ident(name string) Fragment {
	return identNode(name)
}

type identNode string

func (n identNode) WriteSQL(b *Builder) error {
	b.WriteIdent(string(n))
	return nil
}

func (n identNode) SafeToCache() bool { return true }

// Bind renders a single placeholder bound to v.
func Bind(v driver.Value) Fragment {
	return bindNode{v}
}

type bindNode struct {
	value driver.Value
}

func (n bindNode) WriteSQL(b *Builder) error {
	b.AddBind(n.value)
	return nil
}

func (n bindNode) SafeToCache() bool { return true }

// Select renders "SELECT expr, expr, ...".
func Select(exprs ...Fragment) Fragment {
	return selectNode(exprs)
}

type selectNode []Fragment

func (n selectNode) WriteSQL(b *Builder) error {
	b.WriteSQL("SELECT ")
	for i, expr := range n {
		if i > 0 {
			b.WriteSQL(", ")
		}
		if err := expr.WriteSQL(b); err != nil {
			return err
		}
	}
	return nil
}

func (n selectNode) SafeToCache() bool { return allSafe(n) }

// Eq renders "left = right".
func Eq(left, right Fragment) Fragment {
	return eqNode{left, right}
}

type eqNode struct {
	left, right Fragment
}

func (n eqNode) WriteSQL(b *Builder) error {
	if err := n.left.WriteSQL(b); err != nil {
		return err
	}
	b.WriteSQL(" = ")
	return n.right.WriteSQL(b)
}

func (n eqNode) SafeToCache() bool {
	return n.left.SafeToCache() && n.right.SafeToCache()
}

// In renders "left IN (?, ?, ...)" over a runtime-provided value list.
// The placeholder count depends on len(values), so the statement is never
// cacheable.
func In(left Fragment, values ...driver.Value) Fragment {
	return inNode{left, values}
}

type inNode struct {
	left   Fragment
	values []driver.Value
}

func (n inNode) WriteSQL(b *Builder) error {
	// SQLite rejects "IN ()"; an empty list matches nothing, so render a
	// constant false instead.
	if len(n.values) == 0 {
		b.WriteSQL("1=0")
		return nil
	}
	if err := n.left.WriteSQL(b); err != nil {
		return err
	}
	b.WriteSQL(" IN (")
	for i, v := range n.values {
		if i > 0 {
			b.WriteSQL(", ")
		}
		b.AddBind(v)
	}
	b.WriteSQL(")")
	return nil
}

func (n inNode) SafeToCache() bool { return false }

// InSubquery renders "left IN (subquery)". The subquery renders to fixed
// SQL text, so cacheability follows from its operands.
func InSubquery(left, sub Fragment) Fragment {
	return inSubqueryNode{left, sub}
}

type inSubqueryNode struct {
	left, sub Fragment
}

func (n inSubqueryNode) WriteSQL(b *Builder) error {
	if err := n.left.WriteSQL(b); err != nil {
		return err
	}
	b.WriteSQL(" IN (")
	if err := n.sub.WriteSQL(b); err != nil {
		return err
	}
	b.WriteSQL(")")
	return nil
}

func (n inSubqueryNode) SafeToCache() bool {
	return n.left.SafeToCache() && n.sub.SafeToCache()
}

// Concat renders its parts back to back with no separator.
func Concat(parts ...Fragment) Fragment {
	return concatNode(parts)
}

type concatNode []Fragment

func (n concatNode) WriteSQL(b *Builder) error {
	for _, part := range n {
		if err := part.WriteSQL(b); err != nil {
			return err
		}
	}
	return nil
}

func (n concatNode) SafeToCache() bool { return allSafe(n) }

func allSafe(parts []Fragment) bool {
	for _, part := range parts {
		if !part.SafeToCache() {
			return false
		}
	}
	return true
}
