package typemap

import (
	"strings"

	"github.com/rdfsql/gosparql/rdf"
)

// SQLType is the relational type reported in column metadata and accepted as
// the target type of a bound parameter.
type SQLType int

const (
	// SQLTypeOther is an RDF term of no particular type.
	SQLTypeOther SQLType = iota
	// SQLTypeBoolean is xsd:boolean.
	SQLTypeBoolean
	// SQLTypeTinyInt is xsd:byte.
	SQLTypeTinyInt
	// SQLTypeSmallInt is xsd:short and xsd:unsignedByte.
	SQLTypeSmallInt
	// SQLTypeInteger is xsd:int and xsd:unsignedShort.
	SQLTypeInteger
	// SQLTypeBigInt is xsd:long and xsd:unsignedInt.
	SQLTypeBigInt
	// SQLTypeNumeric is xsd:integer, xsd:unsignedLong and the unbounded integer types.
	SQLTypeNumeric
	// SQLTypeDecimal is xsd:decimal.
	SQLTypeDecimal
	// SQLTypeReal is xsd:float.
	SQLTypeReal
	// SQLTypeDouble is xsd:double.
	SQLTypeDouble
	// SQLTypeVarchar is xsd:string and language-tagged strings.
	SQLTypeVarchar
	// SQLTypeDate is xsd:date.
	SQLTypeDate
	// SQLTypeTime is xsd:time.
	SQLTypeTime
	// SQLTypeTimestamp is xsd:dateTime.
	SQLTypeTimestamp
	// SQLTypeInterval is xsd:duration and its derived types.
	SQLTypeInterval
	// SQLTypeBinary is xsd:base64Binary and xsd:hexBinary.
	SQLTypeBinary
	// SQLTypeDatalink is an IRI or xsd:anyURI.
	SQLTypeDatalink
)

var nameToSQLType = map[string]SQLType{
	"RDF_TERM":  SQLTypeOther,
	"BOOLEAN":   SQLTypeBoolean,
	"TINYINT":   SQLTypeTinyInt,
	"SMALLINT":  SQLTypeSmallInt,
	"INTEGER":   SQLTypeInteger,
	"BIGINT":    SQLTypeBigInt,
	"NUMERIC":   SQLTypeNumeric,
	"DECIMAL":   SQLTypeDecimal,
	"REAL":      SQLTypeReal,
	"DOUBLE":    SQLTypeDouble,
	"VARCHAR":   SQLTypeVarchar,
	"DATE":      SQLTypeDate,
	"TIME":      SQLTypeTime,
	"TIMESTAMP": SQLTypeTimestamp,
	"INTERVAL":  SQLTypeInterval,
	"BINARY":    SQLTypeBinary,
	"DATALINK":  SQLTypeDatalink,
}

var sqlTypeToName = invertMap(nameToSQLType)

func invertMap(m map[string]SQLType) map[SQLType]string {
	inv := make(map[SQLType]string)
	for k, v := range m {
		if _, ok := inv[v]; ok {
			panic("failed to create sqlTypeToName map due to duplicated values")
		}
		inv[v] = k
	}
	return inv
}

// String returns the database type name, as reported by DatabaseTypeName.
func (st SQLType) String() string {
	if name, ok := sqlTypeToName[st]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseSQLType takes a type name such as "BIGINT" and returns the SQLType.
func ParseSQLType(name string) (SQLType, bool) {
	st, ok := nameToSQLType[strings.ToUpper(strings.TrimSpace(name))]
	return st, ok
}

type sqlTypeTarget struct {
	datatype rdf.IRI
	kind     Kind
}

// sqlTypeTargets is the datatype and the coercion kind used when a parameter
// is bound with an explicit SQL type.
var sqlTypeTargets = map[SQLType]sqlTypeTarget{
	SQLTypeBoolean:   {rdf.XSDBoolean, KindBool},
	SQLTypeTinyInt:   {rdf.XSDByte, KindInt8},
	SQLTypeSmallInt:  {rdf.XSDShort, KindInt16},
	SQLTypeInteger:   {rdf.XSDInt, KindInt32},
	SQLTypeBigInt:    {rdf.XSDLong, KindInt64},
	SQLTypeNumeric:   {rdf.XSDInteger, KindBigInt},
	SQLTypeDecimal:   {rdf.XSDDecimal, KindDecimal},
	SQLTypeReal:      {rdf.XSDFloat, KindFloat32},
	SQLTypeDouble:    {rdf.XSDDouble, KindFloat64},
	SQLTypeVarchar:   {rdf.XSDString, KindString},
	SQLTypeDate:      {rdf.XSDDate, KindTime},
	SQLTypeTime:      {rdf.XSDTime, KindTime},
	SQLTypeTimestamp: {rdf.XSDDateTime, KindTime},
	SQLTypeInterval:  {rdf.XSDDayTimeDuration, KindDuration},
	SQLTypeBinary:    {rdf.XSDBase64Binary, KindBytes},
	SQLTypeDatalink:  {rdf.XSDAnyURI, KindURL},
}

var datatypeSQLTypes = map[rdf.IRI]SQLType{
	rdf.XSDBoolean:            SQLTypeBoolean,
	rdf.XSDByte:               SQLTypeTinyInt,
	rdf.XSDShort:              SQLTypeSmallInt,
	rdf.XSDUnsignedByte:       SQLTypeSmallInt,
	rdf.XSDInt:                SQLTypeInteger,
	rdf.XSDUnsignedShort:      SQLTypeInteger,
	rdf.XSDLong:               SQLTypeBigInt,
	rdf.XSDUnsignedInt:        SQLTypeBigInt,
	rdf.XSDUnsignedLong:       SQLTypeNumeric,
	rdf.XSDInteger:            SQLTypeNumeric,
	rdf.XSDNonNegativeInteger: SQLTypeNumeric,
	rdf.XSDPositiveInteger:    SQLTypeNumeric,
	rdf.XSDNonPositiveInteger: SQLTypeNumeric,
	rdf.XSDNegativeInteger:    SQLTypeNumeric,
	rdf.XSDDecimal:            SQLTypeDecimal,
	rdf.XSDFloat:              SQLTypeReal,
	rdf.XSDDouble:             SQLTypeDouble,
	rdf.XSDString:             SQLTypeVarchar,
	rdf.RDFLangString:         SQLTypeVarchar,
	rdf.XSDNormalizedString:   SQLTypeVarchar,
	rdf.XSDToken:              SQLTypeVarchar,
	rdf.XSDLanguage:           SQLTypeVarchar,
	rdf.XSDDate:               SQLTypeDate,
	rdf.XSDTime:               SQLTypeTime,
	rdf.XSDDateTime:           SQLTypeTimestamp,
	rdf.XSDDateTimeStamp:      SQLTypeTimestamp,
	rdf.XSDDuration:           SQLTypeInterval,
	rdf.XSDDayTimeDuration:    SQLTypeInterval,
	rdf.XSDYearMonthDuration:  SQLTypeInterval,
	rdf.XSDBase64Binary:       SQLTypeBinary,
	rdf.XSDHexBinary:          SQLTypeBinary,
	rdf.XSDAnyURI:             SQLTypeDatalink,
}

// SQLTypeOf returns the SQL type that describes a term. IRIs are DATALINK,
// blank nodes and literals of unknown datatypes are RDF_TERM.
func SQLTypeOf(t rdf.Term) SQLType {
	switch term := t.(type) {
	case rdf.IRI:
		return SQLTypeDatalink
	case rdf.Literal:
		if st, ok := datatypeSQLTypes[term.Datatype]; ok {
			return st
		}
	}
	return SQLTypeOther
}

// DefaultKind returns the Kind KindObject resolves to for a term under compat.
// Unbound terms resolve to KindObject.
func DefaultKind(t rdf.Term, compat Compatibility) Kind {
	switch term := t.(type) {
	case rdf.IRI, rdf.BlankNode:
		return KindString
	case rdf.Literal:
		info := lookupDatatype(term.Datatype)
		switch info.family {
		case FamilyInteger:
			if compat == CompatibilityHigh {
				return info.high
			}
			return KindBigInt
		case FamilyFloat:
			if compat == CompatibilityHigh {
				return info.high
			}
			return KindFloat64
		case FamilyAnyURI:
			return KindString
		}
		return info.high
	}
	return KindObject
}
