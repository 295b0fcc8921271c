package resultset

import (
	"github.com/rdfsql/gosparql/sparqlerr"
)

// Absolute moves to row n. A positive n past the last row moves after the
// last row and returns false. Zero moves before the first row and returns
// true. A negative n counts from the end, -1 being the last row; a negative n
// beyond the first row is an error.
func (rs *ResultSet) Absolute(n int) (bool, error) {
	if err := rs.checkScrollable("Absolute"); err != nil {
		return false, err
	}
	count := len(rs.rows)
	switch {
	case n == 0:
		rs.pos = 0
		rs.sync()
		return true, nil
	case n > count:
		rs.pos = count + 1
		return rs.sync(), nil
	case n > 0:
		rs.pos = n
	case -n > count:
		return false, sparqlerr.RowPosition("absolute position %d is before the first of %d rows", n, count)
	default:
		rs.pos = count + 1 + n
	}
	return rs.sync(), nil
}

// Relative moves n rows from the current position. Leaving before the first
// row or after the last row counts that boundary as one step, so on a result
// of count rows Relative(count) from before the first row lands after the
// last row. The move may stop exactly on either boundary; going further is an
// error and leaves the cursor where it was.
func (rs *ResultSet) Relative(n int) (bool, error) {
	if err := rs.checkScrollable("Relative"); err != nil {
		return false, err
	}
	count := len(rs.rows)
	target := rs.pos + n
	switch {
	case rs.pos == 0 && n > 0:
		target++
	case rs.pos == count+1 && n < 0:
		target--
	}
	if target < 0 || target > count+1 {
		return false, sparqlerr.RowPosition("relative move of %d from row %d leaves the %d rows of the result", n, rs.pos, count)
	}
	rs.pos = target
	return rs.sync(), nil
}

// First moves to the first row, as Absolute(1).
func (rs *ResultSet) First() (bool, error) {
	if err := rs.checkScrollable("First"); err != nil {
		return false, err
	}
	return rs.Absolute(1)
}

// Last moves to the last row, as Absolute(-1). It returns false on an empty
// result without moving.
func (rs *ResultSet) Last() (bool, error) {
	if err := rs.checkScrollable("Last"); err != nil {
		return false, err
	}
	if len(rs.rows) == 0 {
		return false, nil
	}
	return rs.Absolute(-1)
}

// Previous moves one row back. From the first row it moves before the first
// row and returns false.
func (rs *ResultSet) Previous() (bool, error) {
	if err := rs.checkScrollable("Previous"); err != nil {
		return false, err
	}
	if rs.pos > 0 {
		rs.pos--
	}
	return rs.sync(), nil
}

// BeforeFirst moves before the first row.
func (rs *ResultSet) BeforeFirst() error {
	if err := rs.checkScrollable("BeforeFirst"); err != nil {
		return err
	}
	rs.pos = 0
	rs.sync()
	return nil
}

// AfterLast moves after the last row.
func (rs *ResultSet) AfterLast() error {
	if err := rs.checkScrollable("AfterLast"); err != nil {
		return err
	}
	rs.pos = len(rs.rows) + 1
	rs.sync()
	return nil
}

// Row returns the current position: 0 before the first row, i on row i and
// count+1 after the last row.
func (rs *ResultSet) Row() (int, error) {
	if err := rs.checkScrollable("Row"); err != nil {
		return 0, err
	}
	return rs.pos, nil
}

// IsBeforeFirst reports whether the cursor is before the first row of a
// non-empty result.
func (rs *ResultSet) IsBeforeFirst() (bool, error) {
	if err := rs.checkScrollable("IsBeforeFirst"); err != nil {
		return false, err
	}
	return rs.pos == 0 && len(rs.rows) > 0, nil
}

// IsAfterLast reports whether the cursor is after the last row of a
// non-empty result.
func (rs *ResultSet) IsAfterLast() (bool, error) {
	if err := rs.checkScrollable("IsAfterLast"); err != nil {
		return false, err
	}
	return rs.pos == len(rs.rows)+1 && len(rs.rows) > 0, nil
}

// IsFirst reports whether the cursor is on the first row.
func (rs *ResultSet) IsFirst() (bool, error) {
	if err := rs.checkScrollable("IsFirst"); err != nil {
		return false, err
	}
	return rs.pos == 1 && len(rs.rows) > 0, nil
}

// IsLast reports whether the cursor is on the last row.
func (rs *ResultSet) IsLast() (bool, error) {
	if err := rs.checkScrollable("IsLast"); err != nil {
		return false, err
	}
	return rs.pos == len(rs.rows) && len(rs.rows) > 0, nil
}
