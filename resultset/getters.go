package resultset

import (
	"math/big"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/sparqlerr"
	"github.com/rdfsql/gosparql/typemap"
)

// Columns returns the column labels.
func (rs *ResultSet) Columns() ([]string, error) {
	if err := rs.checkOpen("Columns"); err != nil {
		return nil, err
	}
	return append([]string(nil), rs.columns...), nil
}

// FindColumn returns the 1-based index of the column with the label. The
// lookup is case-sensitive.
func (rs *ResultSet) FindColumn(label string) (int, error) {
	if err := rs.checkOpen("FindColumn"); err != nil {
		return 0, err
	}
	if i, ok := rs.labels[label]; ok {
		return i, nil
	}
	return 0, sparqlerr.UnknownColumn(label)
}

// WasNull reports whether the cell read by the most recent getter was unbound.
func (rs *ResultSet) WasNull() (bool, error) {
	if err := rs.checkOpen("WasNull"); err != nil {
		return false, err
	}
	return rs.wasNull, nil
}

// cell returns the term at a 1-based column of the current row.
func (rs *ResultSet) cell(op string, index int) (rdf.Term, error) {
	if err := rs.checkOpen(op); err != nil {
		return nil, err
	}
	if index < 1 || index > len(rs.columns) {
		return nil, sparqlerr.ColumnIndex(index, len(rs.columns))
	}
	if !rs.onRow() {
		return nil, sparqlerr.NotOnRow()
	}
	return rs.cur[index-1], nil
}

// value coerces a cell and records whether it was unbound.
func (rs *ResultSet) value(op string, index int, kind typemap.Kind) (interface{}, error) {
	t, err := rs.cell(op, index)
	if err != nil {
		return typemap.ZeroValue(kind), err
	}
	v, isNull, err := typemap.FromTerm(t, kind, rs.compat)
	rs.wasNull = isNull
	return v, err
}

func (rs *ResultSet) valueByLabel(op string, label string, kind typemap.Kind) (interface{}, error) {
	if err := rs.checkOpen(op); err != nil {
		return typemap.ZeroValue(kind), err
	}
	index, err := rs.FindColumn(label)
	if err != nil {
		return typemap.ZeroValue(kind), err
	}
	return rs.value(op, index, kind)
}

// GetObject returns the cell decoded to its default Go type, which depends on
// the compatibility level. An unbound cell returns nil.
func (rs *ResultSet) GetObject(index int) (interface{}, error) {
	return rs.value("GetObject", index, typemap.KindObject)
}

// GetObjectByLabel is GetObject for a column label.
func (rs *ResultSet) GetObjectByLabel(label string) (interface{}, error) {
	return rs.valueByLabel("GetObjectByLabel", label, typemap.KindObject)
}

// GetObjectAs returns the cell coerced to kind. The dynamic type of the result
// is kind.GoType().
func (rs *ResultSet) GetObjectAs(index int, kind typemap.Kind) (interface{}, error) {
	return rs.value("GetObjectAs", index, kind)
}

// GetObjectAsByLabel is GetObjectAs for a column label.
func (rs *ResultSet) GetObjectAsByLabel(label string, kind typemap.Kind) (interface{}, error) {
	return rs.valueByLabel("GetObjectAsByLabel", label, kind)
}

// GetTerm returns the RDF term of the cell, nil when unbound.
func (rs *ResultSet) GetTerm(index int) (rdf.Term, error) {
	v, err := rs.value("GetTerm", index, typemap.KindTerm)
	t, _ := v.(rdf.Term)
	return t, err
}

// GetTermByLabel is GetTerm for a column label.
func (rs *ResultSet) GetTermByLabel(label string) (rdf.Term, error) {
	v, err := rs.valueByLabel("GetTermByLabel", label, typemap.KindTerm)
	t, _ := v.(rdf.Term)
	return t, err
}

// GetString returns the lexical form of a literal, an IRI or the label of a
// blank node. Language tags are dropped.
func (rs *ResultSet) GetString(index int) (string, error) {
	v, err := rs.value("GetString", index, typemap.KindString)
	s, _ := v.(string)
	return s, err
}

// GetStringByLabel is GetString for a column label.
func (rs *ResultSet) GetStringByLabel(label string) (string, error) {
	v, err := rs.valueByLabel("GetStringByLabel", label, typemap.KindString)
	s, _ := v.(string)
	return s, err
}

// GetBool returns an xsd:boolean cell.
func (rs *ResultSet) GetBool(index int) (bool, error) {
	v, err := rs.value("GetBool", index, typemap.KindBool)
	b, _ := v.(bool)
	return b, err
}

// GetBoolByLabel is GetBool for a column label.
func (rs *ResultSet) GetBoolByLabel(label string) (bool, error) {
	v, err := rs.valueByLabel("GetBoolByLabel", label, typemap.KindBool)
	b, _ := v.(bool)
	return b, err
}

// GetInt8 returns a numeric cell as a byte-sized integer. Values outside the
// int8 range fail rather than truncate.
func (rs *ResultSet) GetInt8(index int) (int8, error) {
	v, err := rs.value("GetInt8", index, typemap.KindInt8)
	n, _ := v.(int8)
	return n, err
}

// GetInt8ByLabel is GetInt8 for a column label.
func (rs *ResultSet) GetInt8ByLabel(label string) (int8, error) {
	v, err := rs.valueByLabel("GetInt8ByLabel", label, typemap.KindInt8)
	n, _ := v.(int8)
	return n, err
}

// GetInt16 returns a numeric cell as a short integer.
func (rs *ResultSet) GetInt16(index int) (int16, error) {
	v, err := rs.value("GetInt16", index, typemap.KindInt16)
	n, _ := v.(int16)
	return n, err
}

// GetInt16ByLabel is GetInt16 for a column label.
func (rs *ResultSet) GetInt16ByLabel(label string) (int16, error) {
	v, err := rs.valueByLabel("GetInt16ByLabel", label, typemap.KindInt16)
	n, _ := v.(int16)
	return n, err
}

// GetInt32 returns a numeric cell as an int.
func (rs *ResultSet) GetInt32(index int) (int32, error) {
	v, err := rs.value("GetInt32", index, typemap.KindInt32)
	n, _ := v.(int32)
	return n, err
}

// GetInt32ByLabel is GetInt32 for a column label.
func (rs *ResultSet) GetInt32ByLabel(label string) (int32, error) {
	v, err := rs.valueByLabel("GetInt32ByLabel", label, typemap.KindInt32)
	n, _ := v.(int32)
	return n, err
}

// GetInt64 returns a numeric cell as a long.
func (rs *ResultSet) GetInt64(index int) (int64, error) {
	v, err := rs.value("GetInt64", index, typemap.KindInt64)
	n, _ := v.(int64)
	return n, err
}

// GetInt64ByLabel is GetInt64 for a column label.
func (rs *ResultSet) GetInt64ByLabel(label string) (int64, error) {
	v, err := rs.valueByLabel("GetInt64ByLabel", label, typemap.KindInt64)
	n, _ := v.(int64)
	return n, err
}

// GetBigInt returns an integral cell with arbitrary precision, nil when unbound.
func (rs *ResultSet) GetBigInt(index int) (*big.Int, error) {
	v, err := rs.value("GetBigInt", index, typemap.KindBigInt)
	n, _ := v.(*big.Int)
	return n, err
}

// GetBigIntByLabel is GetBigInt for a column label.
func (rs *ResultSet) GetBigIntByLabel(label string) (*big.Int, error) {
	v, err := rs.valueByLabel("GetBigIntByLabel", label, typemap.KindBigInt)
	n, _ := v.(*big.Int)
	return n, err
}

// GetFloat32 returns a numeric cell as a float.
func (rs *ResultSet) GetFloat32(index int) (float32, error) {
	v, err := rs.value("GetFloat32", index, typemap.KindFloat32)
	f, _ := v.(float32)
	return f, err
}

// GetFloat32ByLabel is GetFloat32 for a column label.
func (rs *ResultSet) GetFloat32ByLabel(label string) (float32, error) {
	v, err := rs.valueByLabel("GetFloat32ByLabel", label, typemap.KindFloat32)
	f, _ := v.(float32)
	return f, err
}

// GetFloat64 returns a numeric cell as a double.
func (rs *ResultSet) GetFloat64(index int) (float64, error) {
	v, err := rs.value("GetFloat64", index, typemap.KindFloat64)
	f, _ := v.(float64)
	return f, err
}

// GetFloat64ByLabel is GetFloat64 for a column label.
func (rs *ResultSet) GetFloat64ByLabel(label string) (float64, error) {
	v, err := rs.valueByLabel("GetFloat64ByLabel", label, typemap.KindFloat64)
	f, _ := v.(float64)
	return f, err
}

// GetDecimal returns a numeric cell as an exact decimal.
func (rs *ResultSet) GetDecimal(index int) (decimal.Decimal, error) {
	v, err := rs.value("GetDecimal", index, typemap.KindDecimal)
	d, _ := v.(decimal.Decimal)
	return d, err
}

// GetDecimalByLabel is GetDecimal for a column label.
func (rs *ResultSet) GetDecimalByLabel(label string) (decimal.Decimal, error) {
	v, err := rs.valueByLabel("GetDecimalByLabel", label, typemap.KindDecimal)
	d, _ := v.(decimal.Decimal)
	return d, err
}

// GetTime returns an xsd:dateTime, xsd:date or xsd:time cell in UTC.
func (rs *ResultSet) GetTime(index int) (time.Time, error) {
	v, err := rs.value("GetTime", index, typemap.KindTime)
	t, _ := v.(time.Time)
	return t, err
}

// GetTimeByLabel is GetTime for a column label.
func (rs *ResultSet) GetTimeByLabel(label string) (time.Time, error) {
	v, err := rs.valueByLabel("GetTimeByLabel", label, typemap.KindTime)
	t, _ := v.(time.Time)
	return t, err
}

// GetDuration returns a duration cell without year or month parts.
func (rs *ResultSet) GetDuration(index int) (time.Duration, error) {
	v, err := rs.value("GetDuration", index, typemap.KindDuration)
	d, _ := v.(time.Duration)
	return d, err
}

// GetDurationByLabel is GetDuration for a column label.
func (rs *ResultSet) GetDurationByLabel(label string) (time.Duration, error) {
	v, err := rs.valueByLabel("GetDurationByLabel", label, typemap.KindDuration)
	d, _ := v.(time.Duration)
	return d, err
}

// GetBytes returns an xsd:hexBinary or xsd:base64Binary cell.
func (rs *ResultSet) GetBytes(index int) ([]byte, error) {
	v, err := rs.value("GetBytes", index, typemap.KindBytes)
	b, _ := v.([]byte)
	return b, err
}

// GetBytesByLabel is GetBytes for a column label.
func (rs *ResultSet) GetBytesByLabel(label string) ([]byte, error) {
	v, err := rs.valueByLabel("GetBytesByLabel", label, typemap.KindBytes)
	b, _ := v.([]byte)
	return b, err
}

// GetURL returns an IRI or xsd:anyURI cell as an absolute URL.
func (rs *ResultSet) GetURL(index int) (*url.URL, error) {
	v, err := rs.value("GetURL", index, typemap.KindURL)
	u, _ := v.(*url.URL)
	return u, err
}

// GetURLByLabel is GetURL for a column label.
func (rs *ResultSet) GetURLByLabel(label string) (*url.URL, error) {
	v, err := rs.valueByLabel("GetURLByLabel", label, typemap.KindURL)
	u, _ := v.(*url.URL)
	return u, err
}
