package resultset

import (
	"github.com/rdfsql/gosparql/sparqlerr"
)

// The driver is read-only. Every method below fails with a
// ReadOnlyUnsupported error, or ClosedCursor once the result set is closed.

func (rs *ResultSet) readOnly(op string) error {
	if err := rs.checkOpen(op); err != nil {
		return err
	}
	return sparqlerr.ReadOnly(op)
}

// UpdateObject is not supported.
func (rs *ResultSet) UpdateObject(index int, value interface{}) error {
	return rs.readOnly("UpdateObject")
}

// UpdateObjectByLabel is not supported.
func (rs *ResultSet) UpdateObjectByLabel(label string, value interface{}) error {
	return rs.readOnly("UpdateObjectByLabel")
}

// UpdateNull is not supported.
func (rs *ResultSet) UpdateNull(index int) error {
	return rs.readOnly("UpdateNull")
}

// UpdateNullByLabel is not supported.
func (rs *ResultSet) UpdateNullByLabel(label string) error {
	return rs.readOnly("UpdateNullByLabel")
}

// UpdateRow is not supported.
func (rs *ResultSet) UpdateRow() error {
	return rs.readOnly("UpdateRow")
}

// InsertRow is not supported.
func (rs *ResultSet) InsertRow() error {
	return rs.readOnly("InsertRow")
}

// DeleteRow is not supported.
func (rs *ResultSet) DeleteRow() error {
	return rs.readOnly("DeleteRow")
}

// RefreshRow is not supported.
func (rs *ResultSet) RefreshRow() error {
	return rs.readOnly("RefreshRow")
}

// CancelRowUpdates is not supported.
func (rs *ResultSet) CancelRowUpdates() error {
	return rs.readOnly("CancelRowUpdates")
}

// MoveToInsertRow is not supported.
func (rs *ResultSet) MoveToInsertRow() error {
	return rs.readOnly("MoveToInsertRow")
}

// MoveToCurrentRow is not supported.
func (rs *ResultSet) MoveToCurrentRow() error {
	return rs.readOnly("MoveToCurrentRow")
}

// RowUpdated always reports false.
func (rs *ResultSet) RowUpdated() (bool, error) {
	return false, rs.checkOpen("RowUpdated")
}

// RowInserted always reports false.
func (rs *ResultSet) RowInserted() (bool, error) {
	return false, rs.checkOpen("RowInserted")
}

// RowDeleted always reports false.
func (rs *ResultSet) RowDeleted() (bool, error) {
	return false, rs.checkOpen("RowDeleted")
}
