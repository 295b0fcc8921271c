package arrowbatches

import (
	"fmt"
	"time"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"

	"github.com/rdfsql/gosparql/resultset"
	"github.com/rdfsql/gosparql/sparqlerr"
)

// appendCell reads one cell of the current row and appends it to b.
func appendCell(rs *resultset.ResultSet, index int, field arrow.Field, b array.Builder) error {
	v, err := rs.GetObjectAs(index, readKind(field.Type))
	if err != nil {
		return err
	}
	isNull, err := rs.WasNull()
	if err != nil {
		return err
	}
	if isNull {
		b.AppendNull()
		return nil
	}
	return appendValue(b, field, v)
}

func appendValue(b array.Builder, field arrow.Field, v interface{}) error {
	switch bb := b.(type) {
	case *array.BooleanBuilder:
		bb.Append(v.(bool))
	case *array.Int8Builder:
		bb.Append(v.(int8))
	case *array.Int16Builder:
		bb.Append(v.(int16))
	case *array.Int32Builder:
		bb.Append(v.(int32))
	case *array.Int64Builder:
		bb.Append(v.(int64))
	case *array.Float32Builder:
		bb.Append(v.(float32))
	case *array.Float64Builder:
		bb.Append(v.(float64))
	case *array.TimestampBuilder:
		unit := field.Type.(*arrow.TimestampType).Unit
		ts, err := arrow.TimestampFromTime(v.(time.Time).UTC(), unit)
		if err != nil {
			return sparqlerr.OutOfRange(fmt.Sprint(v), "timestamp["+unit.String()+"]")
		}
		bb.Append(ts)
	case *array.Date32Builder:
		bb.Append(arrow.Date32FromTime(v.(time.Time)))
	case *array.StringBuilder:
		bb.Append(v.(string))
	default:
		return sparqlerr.TypeMismatch("column %v: arrow type %v is not supported", field.Name, field.Type)
	}
	return nil
}
