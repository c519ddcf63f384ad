// Package proxy filters and orders rows of a backing tabular source
// without copying or mutating it. Rows are accepted by a predicate scan
// over configurable filter columns, column visibility is restricted
// independently of acceptance, and reconfiguration can be batched so a
// burst of changes costs a single recomputation.
package proxy

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/fluentkit/sift/internal/utils"
)

// Source is read-only access to tabular data. A nil parent addresses the
// top level; non-nil parents address nested tables (tree models). The
// proxy never mutates the source.
type Source interface {
	RowCount(parent any) int
	ColumnCount(parent any) int
	CellValue(row, column int, parent any) any
}

// CellRef addresses one cell in a Source.
type CellRef struct {
	Row    int
	Column int
	Parent any
}

// CellPredicate tests one cell against a filter pattern. A custom
// predicate replaces the default substring scan per cell; the row is
// still accepted if any scanned column satisfies it.
type CellPredicate interface {
	Accepts(src Source, cell CellRef, pattern string) bool
}

// CellPredicateFunc adapts a plain function to CellPredicate.
type CellPredicateFunc func(src Source, cell CellRef, pattern string) bool

// Accepts implements CellPredicate.
func (f CellPredicateFunc) Accepts(src Source, cell CellRef, pattern string) bool {
	return f(src, cell, pattern)
}

// Proxy holds the filter configuration over a Source and the cached
// accepted-row set for the top level. All state is single-owner; there is
// no internal locking.
type Proxy struct {
	src Source

	pattern        string
	filterColumns  []int
	predicate      CellPredicate
	visibleColumns []int

	sortColumn    int
	sortAscending bool

	batchMode           bool
	pendingInvalidation bool

	rows []int

	onInvalidated func()
}

// NewProxy creates a proxy over src with no filter, all columns visible,
// and no sort order.
func NewProxy(src Source) *Proxy {
	p := &Proxy{src: src, sortColumn: -1, sortAscending: true}
	p.rows = p.computeRows(nil)
	return p
}

// OnInvalidated registers a callback fired after every recomputation of
// the accepted-row set.
func (p *Proxy) OnInvalidated(fn func()) {
	p.onInvalidated = fn
}

// SetPattern sets the filter text. Empty means accept everything.
func (p *Proxy) SetPattern(pattern string) {
	p.pattern = pattern
	p.invalidate()
}

// Pattern returns the current filter text.
func (p *Proxy) Pattern() string {
	return p.pattern
}

// SetFilterColumns restricts which columns the filter scans. Nil or empty
// means all columns. Out-of-range indices are kept but never scanned.
func (p *Proxy) SetFilterColumns(columns []int) {
	if len(columns) == 0 {
		p.filterColumns = nil
	} else {
		p.filterColumns = append([]int(nil), columns...)
	}
	p.invalidate()
}

// SetFilterFunction installs a custom cell predicate, replacing the
// default substring scan. Nil restores the default.
func (p *Proxy) SetFilterFunction(pred CellPredicate) {
	p.predicate = pred
	p.invalidate()
}

// SetVisibleColumns restricts which columns the view layer sees. Nil or
// empty means all. Visibility never affects row acceptance.
func (p *Proxy) SetVisibleColumns(columns []int) {
	if len(columns) == 0 {
		p.visibleColumns = nil
	} else {
		p.visibleColumns = append([]int(nil), columns...)
	}
	p.invalidate()
}

// SetSort orders visible rows by the given column. A negative or
// out-of-range column leaves rows in source order.
func (p *Proxy) SetSort(column int, ascending bool) {
	p.sortColumn = column
	p.sortAscending = ascending
	p.invalidate()
}

// BatchFilterUpdates runs fn with recomputation suppressed. Exactly one
// recomputation happens on exit if any configuration call inside asked
// for one; none otherwise.
func (p *Proxy) BatchFilterUpdates(fn func()) {
	p.batchMode = true
	defer func() {
		p.batchMode = false
		if p.pendingInvalidation {
			p.pendingInvalidation = false
			p.Invalidate()
		}
	}()
	fn()
}

// Invalidate recomputes the top-level accepted-row set and notifies.
// Cost is O(rows × scanned columns); there is no incremental diffing.
func (p *Proxy) Invalidate() {
	p.rows = p.computeRows(nil)
	if p.onInvalidated != nil {
		p.onInvalidated()
	}
}

func (p *Proxy) invalidate() {
	if p.batchMode {
		p.pendingInvalidation = true
		return
	}
	p.Invalidate()
}

// VisibleRows returns accepted row indices under parent, in sort order.
// The top level is served from the cache maintained by Invalidate.
func (p *Proxy) VisibleRows(parent any) []int {
	if parent == nil {
		return p.rows
	}
	return p.computeRows(parent)
}

// VisibleColumns returns the column indices exposed under parent.
func (p *Proxy) VisibleColumns(parent any) []int {
	total := p.src.ColumnCount(parent)
	var cols []int
	for c := 0; c < total; c++ {
		if p.AcceptsColumn(c, parent) {
			cols = append(cols, c)
		}
	}
	return cols
}

// AcceptsRow reports whether the row passes the current filter.
func (p *Proxy) AcceptsRow(row int, parent any) bool {
	if p.pattern == "" {
		return true
	}

	total := p.src.ColumnCount(parent)
	for _, column := range p.scanColumns(total) {
		cell := CellRef{Row: row, Column: column, Parent: parent}
		if p.predicate != nil {
			if p.predicate.Accepts(p.src, cell, p.pattern) {
				return true
			}
			continue
		}
		value := p.src.CellValue(row, column, parent)
		if value == nil {
			continue
		}
		if utils.StringContainsIgnoreCase(stringify(value), p.pattern) {
			return true
		}
	}
	return false
}

// AcceptsColumn reports whether the column is exposed to the view layer.
func (p *Proxy) AcceptsColumn(column int, parent any) bool {
	if p.visibleColumns == nil {
		return true
	}
	for _, c := range p.visibleColumns {
		if c == column {
			return true
		}
	}
	return false
}

// scanColumns resolves the filter column set, dropping out-of-range
// indices so stale configuration degrades to no effect.
func (p *Proxy) scanColumns(total int) []int {
	if len(p.filterColumns) == 0 {
		cols := make([]int, total)
		for i := range cols {
			cols[i] = i
		}
		return cols
	}
	var cols []int
	for _, c := range p.filterColumns {
		if c >= 0 && c < total {
			cols = append(cols, c)
		}
	}
	return cols
}

func (p *Proxy) computeRows(parent any) []int {
	total := p.src.RowCount(parent)
	rows := make([]int, 0, total)
	for r := 0; r < total; r++ {
		if p.AcceptsRow(r, parent) {
			rows = append(rows, r)
		}
	}

	if p.sortColumn >= 0 && p.sortColumn < p.src.ColumnCount(parent) {
		column := p.sortColumn
		sort.SliceStable(rows, func(i, j int) bool {
			a := p.src.CellValue(rows[i], column, parent)
			b := p.src.CellValue(rows[j], column, parent)
			if p.sortAscending {
				return compareValues(a, b) < 0
			}
			return compareValues(a, b) > 0
		})
	}
	return rows
}

// compareValues orders cell values numerically when both sides look like
// numbers, lexically otherwise.
func compareValues(a, b any) int {
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as, bs := stringify(a), stringify(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
