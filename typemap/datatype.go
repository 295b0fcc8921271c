package typemap

import (
	"math"
	"math/big"

	"github.com/rdfsql/gosparql/rdf"
)

// Family groups literal datatypes that share a lexical space and a set of
// permitted target kinds.
type Family int

const (
	// FamilyOther covers unknown datatypes. Only the lexical form is available.
	FamilyOther Family = iota
	// FamilyString is xsd:string, rdf:langString and the string-derived types.
	FamilyString
	// FamilyBoolean is xsd:boolean.
	FamilyBoolean
	// FamilyInteger is xsd:integer and its derived types.
	FamilyInteger
	// FamilyDecimal is xsd:decimal.
	FamilyDecimal
	// FamilyFloat is xsd:float and xsd:double.
	FamilyFloat
	// FamilyDateTime is xsd:dateTime and xsd:dateTimeStamp.
	FamilyDateTime
	// FamilyDate is xsd:date.
	FamilyDate
	// FamilyTime is xsd:time.
	FamilyTime
	// FamilyDuration is xsd:duration and its two derived types.
	FamilyDuration
	// FamilyBinary is xsd:hexBinary and xsd:base64Binary.
	FamilyBinary
	// FamilyAnyURI is xsd:anyURI.
	FamilyAnyURI
)

var familyNames = [...]string{
	FamilyOther:    "other",
	FamilyString:   "string",
	FamilyBoolean:  "boolean",
	FamilyInteger:  "integer",
	FamilyDecimal:  "decimal",
	FamilyFloat:    "float",
	FamilyDateTime: "dateTime",
	FamilyDate:     "date",
	FamilyTime:     "time",
	FamilyDuration: "duration",
	FamilyBinary:   "binary",
	FamilyAnyURI:   "anyURI",
}

func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return "unknown"
	}
	return familyNames[f]
}

// IsNumeric reports whether literals of the family denote numbers.
func (f Family) IsNumeric() bool {
	return f == FamilyInteger || f == FamilyDecimal || f == FamilyFloat
}

// datatypeInfo describes one datatype. For integer types min and max bound the
// value space; nil means unbounded. bits is the width of the natural Go type
// (0 when the type has none).
type datatypeInfo struct {
	family   Family
	min, max *big.Int
	bits     int
	unsigned bool
	// high is the KindObject result under CompatibilityHigh.
	high Kind
}

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigMOne = big.NewInt(-1)
)

func intBounds(bits int) (*big.Int, *big.Int) {
	max := new(big.Int).Lsh(bigOne, uint(bits-1))
	min := new(big.Int).Neg(max)
	return min, max.Sub(max, bigOne)
}

func uintMax(bits int) *big.Int {
	max := new(big.Int).Lsh(bigOne, uint(bits))
	return max.Sub(max, bigOne)
}

var datatypes = map[rdf.IRI]datatypeInfo{}

func init() {
	for _, dt := range []rdf.IRI{rdf.XSDString, rdf.RDFLangString, rdf.XSDNormalizedString, rdf.XSDToken, rdf.XSDLanguage} {
		datatypes[dt] = datatypeInfo{family: FamilyString, high: KindString}
	}
	datatypes[rdf.XSDBoolean] = datatypeInfo{family: FamilyBoolean, high: KindBool}

	signed := []struct {
		dt   rdf.IRI
		bits int
		kind Kind
	}{
		{rdf.XSDByte, 8, KindInt8},
		{rdf.XSDShort, 16, KindInt16},
		{rdf.XSDInt, 32, KindInt32},
		{rdf.XSDLong, 64, KindInt64},
	}
	for _, s := range signed {
		min, max := intBounds(s.bits)
		datatypes[s.dt] = datatypeInfo{family: FamilyInteger, min: min, max: max, bits: s.bits, high: s.kind}
	}
	unsigned := []struct {
		dt   rdf.IRI
		bits int
		kind Kind
	}{
		{rdf.XSDUnsignedByte, 8, KindUint8},
		{rdf.XSDUnsignedShort, 16, KindUint16},
		{rdf.XSDUnsignedInt, 32, KindUint32},
		{rdf.XSDUnsignedLong, 64, KindUint64},
	}
	for _, u := range unsigned {
		datatypes[u.dt] = datatypeInfo{family: FamilyInteger, min: bigZero, max: uintMax(u.bits), bits: u.bits, unsigned: true, high: u.kind}
	}
	datatypes[rdf.XSDInteger] = datatypeInfo{family: FamilyInteger, high: KindBigInt}
	datatypes[rdf.XSDNonNegativeInteger] = datatypeInfo{family: FamilyInteger, min: bigZero, unsigned: true, high: KindBigInt}
	datatypes[rdf.XSDPositiveInteger] = datatypeInfo{family: FamilyInteger, min: bigOne, unsigned: true, high: KindBigInt}
	datatypes[rdf.XSDNonPositiveInteger] = datatypeInfo{family: FamilyInteger, max: bigZero, high: KindBigInt}
	datatypes[rdf.XSDNegativeInteger] = datatypeInfo{family: FamilyInteger, max: bigMOne, high: KindBigInt}

	datatypes[rdf.XSDDecimal] = datatypeInfo{family: FamilyDecimal, high: KindDecimal}
	datatypes[rdf.XSDFloat] = datatypeInfo{family: FamilyFloat, bits: 32, high: KindFloat32}
	datatypes[rdf.XSDDouble] = datatypeInfo{family: FamilyFloat, bits: 64, high: KindFloat64}

	datatypes[rdf.XSDDateTime] = datatypeInfo{family: FamilyDateTime, high: KindTime}
	datatypes[rdf.XSDDateTimeStamp] = datatypeInfo{family: FamilyDateTime, high: KindTime}
	datatypes[rdf.XSDDate] = datatypeInfo{family: FamilyDate, high: KindTime}
	datatypes[rdf.XSDTime] = datatypeInfo{family: FamilyTime, high: KindTime}
	datatypes[rdf.XSDDuration] = datatypeInfo{family: FamilyDuration, high: KindDuration}
	datatypes[rdf.XSDDayTimeDuration] = datatypeInfo{family: FamilyDuration, high: KindDuration}
	// year and month lengths vary, so these only decode to their lexical form
	datatypes[rdf.XSDYearMonthDuration] = datatypeInfo{family: FamilyDuration, high: KindString}
	datatypes[rdf.XSDHexBinary] = datatypeInfo{family: FamilyBinary, high: KindBytes}
	datatypes[rdf.XSDBase64Binary] = datatypeInfo{family: FamilyBinary, high: KindBytes}
	datatypes[rdf.XSDAnyURI] = datatypeInfo{family: FamilyAnyURI, high: KindString}
}

func lookupDatatype(dt rdf.IRI) datatypeInfo {
	if info, ok := datatypes[dt]; ok {
		return info
	}
	return datatypeInfo{family: FamilyOther, high: KindString}
}

// FamilyOf returns the family of a literal datatype.
func FamilyOf(dt rdf.IRI) Family {
	return lookupDatatype(dt).family
}

// Known reports whether the datatype has a dedicated row in the coercion table.
func Known(dt rdf.IRI) bool {
	_, ok := datatypes[dt]
	return ok
}

// IntegerBounds returns the value space of an integer datatype. A nil bound is
// unbounded. ok is false for datatypes outside the integer family.
func IntegerBounds(dt rdf.IRI) (min, max *big.Int, ok bool) {
	info := lookupDatatype(dt)
	if info.family != FamilyInteger {
		return nil, nil, false
	}
	return info.min, info.max, true
}

// Signed reports whether values of the datatype may be negative.
func Signed(dt rdf.IRI) bool {
	info := lookupDatatype(dt)
	return info.family.IsNumeric() && !info.unsigned
}

// kindBounds are the integral ranges of the fixed-width kinds.
var kindBounds = map[Kind][2]*big.Int{}

func init() {
	for kind, bits := range map[Kind]int{KindInt8: 8, KindInt16: 16, KindInt32: 32, KindInt64: 64} {
		min, max := intBounds(bits)
		kindBounds[kind] = [2]*big.Int{min, max}
	}
	for kind, bits := range map[Kind]int{KindUint8: 8, KindUint16: 16, KindUint32: 32, KindUint64: 64} {
		kindBounds[kind] = [2]*big.Int{bigZero, uintMax(bits)}
	}
}

func inBounds(v, min, max *big.Int) bool {
	if min != nil && v.Cmp(min) < 0 {
		return false
	}
	if max != nil && v.Cmp(max) > 0 {
		return false
	}
	return true
}

const maxFloat32 = math.MaxFloat32
