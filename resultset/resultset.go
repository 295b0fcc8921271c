// Package resultset implements the cursor over a query result: positional and
// labeled typed getters, forward-only and scroll-insensitive navigation, the
// wasNull side channel and column metadata.
//
// A ResultSet is not safe for concurrent use.
package resultset

import (
	"errors"
	"io"

	"github.com/rdfsql/gosparql/results"
	"github.com/rdfsql/gosparql/sparqlerr"
	"github.com/rdfsql/gosparql/typemap"
)

// ScrollType is the navigation class of a cursor.
type ScrollType int

const (
	// TypeForwardOnly cursors only support Next.
	TypeForwardOnly ScrollType = iota
	// TypeScrollInsensitive cursors hold every row in memory and can move freely.
	TypeScrollInsensitive
)

func (t ScrollType) String() string {
	if t == TypeScrollInsensitive {
		return "SCROLL_INSENSITIVE"
	}
	return "FORWARD_ONLY"
}

// FetchDirection is the hint given for the order rows are processed in.
type FetchDirection int

const (
	// FetchForward processes rows first to last. It is the only supported direction.
	FetchForward FetchDirection = iota
	// FetchReverse processes rows last to first.
	FetchReverse
	// FetchUnknown leaves the order unspecified.
	FetchUnknown
)

func (d FetchDirection) String() string {
	switch d {
	case FetchForward:
		return "FORWARD"
	case FetchReverse:
		return "REVERSE"
	}
	return "UNKNOWN"
}

// Concurrency is the update mode of a cursor.
type Concurrency int

// ConcurrencyReadOnly is the only concurrency mode offered.
const ConcurrencyReadOnly Concurrency = 1

// Options configure a ResultSet.
type Options struct {
	// Compatibility controls default coercion and metadata derivation.
	Compatibility typemap.Compatibility
	// ScrollInsensitive materializes a streaming source so it can be navigated freely.
	ScrollInsensitive bool
	// MaxRows limits the rows exposed. Zero means no limit.
	MaxRows int
	// FetchSize is an advisory number of rows to fetch at a time.
	FetchSize int
	// OnClose runs once when the result set is closed.
	OnClose func()
}

// ResultSet is a cursor over the rows of a results.Source. It starts before
// the first row. Position 0 is before the first row and, for scroll-insensitive
// cursors, position count+1 is after the last.
type ResultSet struct {
	src     results.Source
	form    results.Form
	columns []string
	labels  map[string]int
	scroll  ScrollType
	compat  typemap.Compatibility
	maxRows int

	// rows holds every row of a scroll-insensitive cursor.
	rows []results.Row

	pos       int
	afterLast bool
	// failed marks a forward-only cursor whose last fetch failed; it is off
	// any row until a fetch succeeds.
	failed    bool
	cur       results.Row
	wasNull   bool
	closed    bool

	// first is the first row of the result once it has been seen or peeked.
	// peeked reports that first was read for metadata but not yet delivered.
	first     results.Row
	firstSeen bool
	peeked    bool
	meta      *Metadata

	fetchSize int
	onClose   func()
}

// New returns a cursor that owns src. A materialized source, or any source
// when opts.ScrollInsensitive is set, gives a scroll-insensitive cursor; the
// rows of a streaming source are then read before New returns.
func New(src results.Source, opts Options) (*ResultSet, error) {
	rs := &ResultSet{
		src:       src,
		form:      src.Form(),
		columns:   src.Columns(),
		compat:    opts.Compatibility,
		maxRows:   opts.MaxRows,
		fetchSize: opts.FetchSize,
		onClose:   opts.OnClose,
	}
	rs.labels = make(map[string]int, len(rs.columns))
	for i, label := range rs.columns {
		if _, ok := rs.labels[label]; !ok {
			rs.labels[label] = i + 1
		}
	}
	_, materialized := src.(results.Materializable)
	if materialized || opts.ScrollInsensitive {
		m, err := results.Drain(src)
		if err != nil {
			return nil, err
		}
		rs.src = m
		rs.scroll = TypeScrollInsensitive
		rs.rows = m.Rows()
		if rs.maxRows > 0 && len(rs.rows) > rs.maxRows {
			rs.rows = rs.rows[:rs.maxRows]
		}
		if len(rs.rows) > 0 {
			rs.first, rs.firstSeen = rs.rows[0], true
		} else {
			rs.firstSeen = true
		}
	}
	logger.Debugf("opened %v result set over a %v result with %d columns", rs.scroll, rs.form, len(rs.columns))
	return rs, nil
}

func (rs *ResultSet) checkOpen(op string) error {
	if rs.closed {
		return sparqlerr.ClosedCursor(op)
	}
	return nil
}

func (rs *ResultSet) checkScrollable(op string) error {
	if err := rs.checkOpen(op); err != nil {
		return err
	}
	if rs.scroll != TypeScrollInsensitive {
		return sparqlerr.ForwardOnly(op)
	}
	return nil
}

// Next moves to the next row. It returns false once the cursor is after the
// last row.
func (rs *ResultSet) Next() (bool, error) {
	if err := rs.checkOpen("Next"); err != nil {
		return false, err
	}
	if rs.scroll == TypeScrollInsensitive {
		if rs.pos <= len(rs.rows) {
			rs.pos++
		}
		return rs.sync(), nil
	}
	if rs.afterLast {
		return false, nil
	}
	if rs.maxRows > 0 && rs.pos >= rs.maxRows {
		rs.moveAfterLast()
		return false, nil
	}
	row, err := rs.fetch()
	if errors.Is(err, io.EOF) {
		rs.moveAfterLast()
		return false, nil
	}
	if err != nil {
		rs.cur, rs.failed = nil, true
		return false, err
	}
	rs.pos++
	rs.cur, rs.failed = row, false
	return true, nil
}

// fetch returns the next row of a forward-only cursor.
func (rs *ResultSet) fetch() (results.Row, error) {
	if rs.peeked {
		rs.peeked = false
		return rs.first, nil
	}
	row, err := rs.src.Next()
	if err != nil {
		return nil, err
	}
	if !rs.firstSeen {
		rs.first, rs.firstSeen = row, true
	}
	return row, nil
}

// peekFirst reads the first row of a forward-only cursor that has not moved yet.
func (rs *ResultSet) peekFirst() error {
	if rs.firstSeen {
		return nil
	}
	row, err := rs.src.Next()
	if errors.Is(err, io.EOF) {
		rs.firstSeen = true
		return nil
	}
	if err != nil {
		return err
	}
	rs.first, rs.firstSeen, rs.peeked = row, true, true
	return nil
}

func (rs *ResultSet) moveAfterLast() {
	rs.afterLast = true
	rs.cur = nil
}

// sync updates the current row of a scroll-insensitive cursor from pos and
// reports whether the cursor is on a row.
func (rs *ResultSet) sync() bool {
	if rs.pos >= 1 && rs.pos <= len(rs.rows) {
		rs.cur = rs.rows[rs.pos-1]
		return true
	}
	rs.cur = nil
	return false
}

func (rs *ResultSet) onRow() bool {
	if rs.scroll == TypeScrollInsensitive {
		return rs.pos >= 1 && rs.pos <= len(rs.rows)
	}
	return rs.pos > 0 && !rs.afterLast && !rs.failed
}

// Close releases the source and runs the close hook. Closing a closed result
// set does nothing.
func (rs *ResultSet) Close() error {
	if rs.closed {
		return nil
	}
	rs.closed = true
	rs.cur, rs.rows, rs.first = nil, nil, nil
	err := rs.src.Close()
	if rs.onClose != nil {
		rs.onClose()
	}
	logger.Debugf("closed %v result set", rs.scroll)
	return err
}

// IsClosed reports whether Close was called.
func (rs *ResultSet) IsClosed() bool {
	return rs.closed
}

// Type returns the navigation class of the cursor.
func (rs *ResultSet) Type() (ScrollType, error) {
	if err := rs.checkOpen("Type"); err != nil {
		return 0, err
	}
	return rs.scroll, nil
}

// Form returns the shape of the underlying result.
func (rs *ResultSet) Form() results.Form {
	return rs.form
}

// Compatibility returns the level applied to GetObject and metadata.
func (rs *ResultSet) Compatibility() typemap.Compatibility {
	return rs.compat
}

// Concurrency returns ConcurrencyReadOnly.
func (rs *ResultSet) Concurrency() (Concurrency, error) {
	if err := rs.checkOpen("Concurrency"); err != nil {
		return 0, err
	}
	return ConcurrencyReadOnly, nil
}

// FetchDirection returns FetchForward.
func (rs *ResultSet) FetchDirection() (FetchDirection, error) {
	if err := rs.checkOpen("FetchDirection"); err != nil {
		return 0, err
	}
	return FetchForward, nil
}

// SetFetchDirection accepts only FetchForward.
func (rs *ResultSet) SetFetchDirection(d FetchDirection) error {
	if err := rs.checkOpen("SetFetchDirection"); err != nil {
		return err
	}
	if d != FetchForward {
		return sparqlerr.FetchDirection(d)
	}
	return nil
}

// FetchSize returns the fetch size hint.
func (rs *ResultSet) FetchSize() (int, error) {
	if err := rs.checkOpen("FetchSize"); err != nil {
		return 0, err
	}
	return rs.fetchSize, nil
}

// SetFetchSize records a fetch size hint. Rows are decoded one at a time
// regardless.
func (rs *ResultSet) SetFetchSize(n int) error {
	if err := rs.checkOpen("SetFetchSize"); err != nil {
		return err
	}
	if n < 0 {
		return sparqlerr.InvalidParameter(sparqlerr.ErrCodeParameterIndex, "fetch size %d is negative", n)
	}
	rs.fetchSize = n
	return nil
}

// MaxRows returns the row limit, zero when unlimited.
func (rs *ResultSet) MaxRows() int {
	return rs.maxRows
}
