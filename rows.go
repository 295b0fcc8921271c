package gosparql

import (
	"database/sql/driver"
	"fmt"
	"io"
	"math"
	"math/big"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/resultset"
	"github.com/rdfsql/gosparql/typemap"
)

var (
	scanTypeInt64   = reflect.TypeOf(int64(0))
	scanTypeFloat64 = reflect.TypeOf(float64(0))
	scanTypeString  = reflect.TypeOf("")
	scanTypeBool    = reflect.TypeOf(false)
	scanTypeTime    = reflect.TypeOf(time.Time{})
	scanTypeBytes   = reflect.TypeOf([]byte(nil))
	scanTypeAny     = reflect.TypeOf((*interface{})(nil)).Elem()
)

// sparqlRows adapts a result set to driver.Rows. Values are the default
// objects of the cells mapped to the types database/sql scans natively.
type sparqlRows struct {
	rs      *resultset.ResultSet
	onClose func() error
}

func newSPARQLRows(rs *resultset.ResultSet, onClose func() error) *sparqlRows {
	return &sparqlRows{rs: rs, onClose: onClose}
}

// ResultSet returns the underlying cursor.
func (rows *sparqlRows) ResultSet() *resultset.ResultSet {
	return rows.rs
}

func (rows *sparqlRows) Columns() []string {
	columns, err := rows.rs.Columns()
	if err != nil {
		logger.Debugf("columns of a closed result set: %v", err)
		return nil
	}
	return columns
}

func (rows *sparqlRows) Close() error {
	err := rows.rs.Close()
	if rows.onClose != nil {
		if closeErr := rows.onClose(); err == nil {
			err = closeErr
		}
	}
	return err
}

func (rows *sparqlRows) Next(dest []driver.Value) error {
	ok, err := rows.rs.Next()
	if err != nil {
		return err
	}
	if !ok {
		return io.EOF
	}
	for i := range dest {
		v, err := rows.rs.GetObject(i + 1)
		if err != nil {
			return err
		}
		dest[i] = driverValue(v)
	}
	return nil
}

func (rows *sparqlRows) column(index int) (resultset.ColumnDescriptor, bool) {
	meta, err := rows.rs.Metadata()
	if err != nil {
		logger.Debugf("failed to describe the result: %v", err)
		return resultset.ColumnDescriptor{}, false
	}
	col, err := meta.Column(index + 1)
	if err != nil {
		return resultset.ColumnDescriptor{}, false
	}
	return col, true
}

func (rows *sparqlRows) ColumnTypeDatabaseTypeName(index int) string {
	col, ok := rows.column(index)
	if !ok {
		return ""
	}
	return col.TypeName()
}

func (rows *sparqlRows) ColumnTypeScanType(index int) reflect.Type {
	col, ok := rows.column(index)
	if !ok {
		return scanTypeAny
	}
	return scanType(col.GoType)
}

func (rows *sparqlRows) ColumnTypeNullable(index int) (nullable, ok bool) {
	col, found := rows.column(index)
	if !found {
		return false, false
	}
	switch col.Nullable {
	case resultset.NoNulls:
		return false, true
	case resultset.Nullable:
		return true, true
	}
	return false, false
}

func (rows *sparqlRows) ColumnTypePrecisionScale(index int) (precision, scale int64, ok bool) {
	col, found := rows.column(index)
	if !found {
		return 0, 0, false
	}
	switch col.Type {
	case typemap.SQLTypeDecimal, typemap.SQLTypeNumeric:
		return int64(col.Precision), int64(col.Scale), true
	}
	return 0, 0, false
}

func (rows *sparqlRows) ColumnTypeLength(index int) (length int64, ok bool) {
	col, found := rows.column(index)
	if !found {
		return 0, false
	}
	switch col.Type {
	case typemap.SQLTypeVarchar, typemap.SQLTypeBinary, typemap.SQLTypeDatalink, typemap.SQLTypeOther:
		return int64(col.DisplaySize), true
	}
	return 0, false
}

// scanType returns the type driverValue produces for values of goType.
func scanType(goType reflect.Type) reflect.Type {
	if goType == nil {
		return scanTypeAny
	}
	switch goType {
	case scanTypeTime, scanTypeBytes:
		return goType
	case reflect.TypeOf(decimal.Decimal{}), reflect.TypeOf((*big.Int)(nil)), reflect.TypeOf((*url.URL)(nil)):
		return scanTypeString
	}
	switch goType.Kind() {
	case reflect.Bool:
		return scanTypeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return scanTypeInt64
	case reflect.Uint64:
		return scanTypeString
	case reflect.Float32, reflect.Float64:
		return scanTypeFloat64
	case reflect.String:
		return scanTypeString
	}
	return scanTypeAny
}

// driverValue maps a default object to a driver.Value.
func driverValue(v interface{}) driver.Value {
	switch val := v.(type) {
	case nil:
		return nil
	case bool, string, int64, float64, time.Time, []byte:
		return val
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		if val > math.MaxInt64 {
			return strconv.FormatUint(val, 10)
		}
		return int64(val)
	case *big.Int:
		if val.IsInt64() {
			return val.Int64()
		}
		return val.String()
	case float32:
		return float64(val)
	case decimal.Decimal:
		return val.String()
	case time.Duration:
		return int64(val)
	case *url.URL:
		return val.String()
	case rdf.Term:
		return val.String()
	}
	return fmt.Sprint(v)
}
