package arrowbatches

import (
	"strconv"

	"github.com/apache/arrow/go/v15/arrow"

	"github.com/rdfsql/gosparql/resultset"
	"github.com/rdfsql/gosparql/typemap"
)

// Field metadata keys attached to every column of an exported schema.
const (
	MetadataKeySQLType   = "sparql.sql_type"
	MetadataKeyDatatype  = "sparql.datatype"
	MetadataKeyPrecision = "sparql.precision"
	MetadataKeyScale     = "sparql.scale"
)

// Schema builds the Arrow schema of a result from its column metadata.
func Schema(meta *resultset.Metadata, unit arrow.TimeUnit) *arrow.Schema {
	cols := meta.Columns()
	fields := make([]arrow.Field, len(cols))
	for i, col := range cols {
		fields[i] = columnToField(col, unit)
	}
	return arrow.NewSchema(fields, nil)
}

func columnToField(col resultset.ColumnDescriptor, unit arrow.TimeUnit) arrow.Field {
	md := map[string]string{MetadataKeySQLType: col.TypeName()}
	if col.Datatype.Value != "" {
		md[MetadataKeyDatatype] = col.Datatype.Value
	}
	if col.Type == typemap.SQLTypeDecimal || col.Type == typemap.SQLTypeNumeric {
		md[MetadataKeyPrecision] = strconv.Itoa(col.Precision)
		md[MetadataKeyScale] = strconv.Itoa(col.Scale)
	}
	return arrow.Field{
		Name:     col.Label,
		Type:     arrowType(col.Type, unit),
		Nullable: col.Nullable != resultset.NoNulls,
		Metadata: arrow.MetadataFrom(md),
	}
}

func arrowType(t typemap.SQLType, unit arrow.TimeUnit) arrow.DataType {
	switch t {
	case typemap.SQLTypeBoolean:
		return arrow.FixedWidthTypes.Boolean
	case typemap.SQLTypeTinyInt:
		return arrow.PrimitiveTypes.Int8
	case typemap.SQLTypeSmallInt:
		return arrow.PrimitiveTypes.Int16
	case typemap.SQLTypeInteger:
		return arrow.PrimitiveTypes.Int32
	case typemap.SQLTypeBigInt:
		return arrow.PrimitiveTypes.Int64
	case typemap.SQLTypeReal:
		return arrow.PrimitiveTypes.Float32
	case typemap.SQLTypeDouble:
		return arrow.PrimitiveTypes.Float64
	case typemap.SQLTypeTimestamp:
		return &arrow.TimestampType{Unit: unit, TimeZone: "UTC"}
	case typemap.SQLTypeDate:
		return arrow.FixedWidthTypes.Date32
	}
	return arrow.BinaryTypes.String
}

// readKind is the getter kind used to fill a column of the given Arrow type.
func readKind(dt arrow.DataType) typemap.Kind {
	switch dt.ID() {
	case arrow.BOOL:
		return typemap.KindBool
	case arrow.INT8:
		return typemap.KindInt8
	case arrow.INT16:
		return typemap.KindInt16
	case arrow.INT32:
		return typemap.KindInt32
	case arrow.INT64:
		return typemap.KindInt64
	case arrow.FLOAT32:
		return typemap.KindFloat32
	case arrow.FLOAT64:
		return typemap.KindFloat64
	case arrow.TIMESTAMP, arrow.DATE32:
		return typemap.KindTime
	}
	return typemap.KindString
}
