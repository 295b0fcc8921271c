package typemap

import (
	"math"
	"math/big"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/sparqlerr"
)

// FromTerm converts a term to the Go representation of kind. A nil term stands
// for an unbound cell and yields ZeroValue(kind) with isNull set; callers
// surface isNull through their wasNull flag.
func FromTerm(t rdf.Term, kind Kind, compat Compatibility) (v interface{}, isNull bool, err error) {
	if t == nil {
		return ZeroValue(kind), true, nil
	}
	switch kind {
	case KindTerm:
		return t, false, nil
	case KindString:
		return Lexical(t), false, nil
	}
	switch term := t.(type) {
	case rdf.IRI:
		v, err = fromIRI(term, kind)
	case rdf.BlankNode:
		if kind == KindObject {
			return term.Label, false, nil
		}
		err = mismatch(t, kind)
	case rdf.Literal:
		v, err = fromLiteral(term, kind, compat)
	default:
		err = sparqlerr.TypeMismatch("unsupported term %T", t)
	}
	if err != nil {
		return ZeroValue(kind), false, err
	}
	return v, false, nil
}

// Lexical returns the string form used by KindString: the IRI, the blank node
// label or the literal's lexical form without language tag or datatype.
func Lexical(t rdf.Term) string {
	switch term := t.(type) {
	case rdf.IRI:
		return term.Value
	case rdf.BlankNode:
		return term.Label
	case rdf.Literal:
		return term.Lexical
	}
	return ""
}

func fromIRI(iri rdf.IRI, kind Kind) (interface{}, error) {
	switch kind {
	case KindObject:
		return iri.Value, nil
	case KindURL:
		return parseAbsoluteURL(iri.Value, iri)
	}
	return nil, mismatch(iri, kind)
}

func parseAbsoluteURL(s string, t rdf.Term) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, sparqlerr.IllTyped(s, rdf.XSDAnyURI.Value, err)
	}
	if !u.IsAbs() {
		return nil, sparqlerr.TypeMismatch("%v is not an absolute URL", t)
	}
	return u, nil
}

// coercer implements one cell of the table.
type coercer func(l rdf.Literal, info datatypeInfo, kind Kind) (interface{}, error)

type tableKey struct {
	family Family
	kind   Kind
}

// readTable holds every permitted (family, kind) pair apart from KindObject,
// KindTerm and KindString, which are defined for all literals. A missing pair
// is a TypeMismatch, so numeric families never reach non-numeric kinds and
// the other way round.
var readTable = map[tableKey]coercer{}

var numericKinds = []Kind{
	KindInt8, KindInt16, KindInt32, KindInt64,
	KindUint8, KindUint16, KindUint32, KindUint64, KindBigInt,
	KindFloat32, KindFloat64, KindDecimal,
}

func init() {
	for _, family := range []Family{FamilyInteger, FamilyDecimal, FamilyFloat} {
		for _, kind := range numericKinds {
			readTable[tableKey{family, kind}] = coerceNumber
		}
	}
	readTable[tableKey{FamilyBoolean, KindBool}] = coerceBoolean
	for _, family := range []Family{FamilyDateTime, FamilyDate, FamilyTime} {
		readTable[tableKey{family, KindTime}] = coerceTemporal
	}
	readTable[tableKey{FamilyDuration, KindDuration}] = coerceDuration
	readTable[tableKey{FamilyBinary, KindBytes}] = coerceBinary
	readTable[tableKey{FamilyAnyURI, KindURL}] = coerceURL
}

func fromLiteral(l rdf.Literal, kind Kind, compat Compatibility) (interface{}, error) {
	info := lookupDatatype(l.Datatype)
	if kind == KindObject {
		return defaultObject(l, info, compat)
	}
	c, ok := readTable[tableKey{info.family, kind}]
	if !ok {
		return nil, mismatch(l, kind)
	}
	return c(l, info, kind)
}

// defaultObject decodes a literal for KindObject. CompatibilityLow uses the
// arbitrary precision types for every numeric family; CompatibilityHigh uses
// the narrowest Go type of the datatype.
func defaultObject(l rdf.Literal, info datatypeInfo, compat Compatibility) (interface{}, error) {
	switch info.family {
	case FamilyString, FamilyAnyURI, FamilyOther:
		return l.Lexical, nil
	case FamilyInteger:
		if compat == CompatibilityHigh {
			return coerceNumber(l, info, info.high)
		}
		return coerceNumber(l, info, KindBigInt)
	case FamilyDecimal:
		return coerceNumber(l, info, KindDecimal)
	case FamilyFloat:
		if compat == CompatibilityHigh {
			return coerceNumber(l, info, info.high)
		}
		return coerceNumber(l, info, KindFloat64)
	case FamilyBoolean:
		return coerceBoolean(l, info, KindBool)
	case FamilyDateTime, FamilyDate, FamilyTime:
		return coerceTemporal(l, info, KindTime)
	case FamilyDuration:
		d, err := parseDuration(l.Lexical)
		if err != nil {
			return nil, sparqlerr.IllTyped(l.Lexical, l.Datatype.Value, err)
		}
		if v, ok := d.toDuration(); ok {
			return v, nil
		}
		return l.Lexical, nil
	case FamilyBinary:
		return coerceBinary(l, info, KindBytes)
	}
	return l.Lexical, nil
}

// number is a parsed numeric literal. Exactly one of integer, exact or float
// is meaningful, according to the family.
type number struct {
	integer *big.Int
	exact   decimal.Decimal
	float   float64
	family  Family
}

func parseNumber(l rdf.Literal, info datatypeInfo) (number, error) {
	n := number{family: info.family}
	var err error
	switch info.family {
	case FamilyInteger:
		n.integer, err = parseInteger(l.Lexical)
		if err == nil && !inBounds(n.integer, info.min, info.max) {
			return n, sparqlerr.IllTyped(l.Lexical, l.Datatype.Value, nil)
		}
	case FamilyDecimal:
		n.exact, err = parseDecimal(l.Lexical)
	case FamilyFloat:
		n.float, err = parseFloat(l.Lexical, info.bits)
	default:
		return n, mismatch(l, KindDecimal)
	}
	if err != nil {
		return n, sparqlerr.IllTyped(l.Lexical, l.Datatype.Value, err)
	}
	return n, nil
}

// asInteger returns the exact integral value, or false when the number has a
// fractional part or is not finite.
func (n number) asInteger() (*big.Int, bool) {
	switch n.family {
	case FamilyInteger:
		return n.integer, true
	case FamilyDecimal:
		if !n.exact.Equal(n.exact.Truncate(0)) {
			return nil, false
		}
		return n.exact.BigInt(), true
	case FamilyFloat:
		if math.IsInf(n.float, 0) || math.IsNaN(n.float) || n.float != math.Trunc(n.float) {
			return nil, false
		}
		v, _ := new(big.Float).SetFloat64(n.float).Int(nil)
		return v, true
	}
	return nil, false
}

func (n number) asFloat64() float64 {
	switch n.family {
	case FamilyInteger:
		f, _ := new(big.Float).SetInt(n.integer).Float64()
		return f
	case FamilyDecimal:
		f, _ := n.exact.Float64()
		return f
	}
	return n.float
}

func (n number) asDecimal() (decimal.Decimal, bool) {
	switch n.family {
	case FamilyInteger:
		return decimal.NewFromBigInt(n.integer, 0), true
	case FamilyDecimal:
		return n.exact, true
	}
	if math.IsInf(n.float, 0) || math.IsNaN(n.float) {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromFloat(n.float), true
}

func coerceNumber(l rdf.Literal, info datatypeInfo, kind Kind) (interface{}, error) {
	n, err := parseNumber(l, info)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindFloat64:
		f := n.asFloat64()
		if math.IsInf(f, 0) && n.family != FamilyFloat {
			return nil, sparqlerr.OutOfRange(l.Lexical, kind)
		}
		return f, nil
	case KindFloat32:
		f := n.asFloat64()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			if n.family != FamilyFloat {
				return nil, sparqlerr.OutOfRange(l.Lexical, kind)
			}
			return float32(f), nil
		}
		if math.Abs(f) > maxFloat32 {
			return nil, sparqlerr.OutOfRange(l.Lexical, kind)
		}
		return float32(f), nil
	case KindDecimal:
		d, ok := n.asDecimal()
		if !ok {
			return nil, sparqlerr.TypeMismatch("%v has no decimal representation", l)
		}
		return d, nil
	}
	if !kind.isIntegral() {
		return nil, mismatch(l, kind)
	}
	v, ok := n.asInteger()
	if !ok {
		return nil, sparqlerr.TypeMismatch("%v is not an integral value", l)
	}
	if kind == KindBigInt {
		return v, nil
	}
	bounds := kindBounds[kind]
	if !inBounds(v, bounds[0], bounds[1]) {
		return nil, sparqlerr.OutOfRange(l.Lexical, kind)
	}
	switch kind {
	case KindInt8:
		return int8(v.Int64()), nil
	case KindInt16:
		return int16(v.Int64()), nil
	case KindInt32:
		return int32(v.Int64()), nil
	case KindInt64:
		return v.Int64(), nil
	case KindUint8:
		return uint8(v.Uint64()), nil
	case KindUint16:
		return uint16(v.Uint64()), nil
	case KindUint32:
		return uint32(v.Uint64()), nil
	}
	return v.Uint64(), nil
}

func coerceBoolean(l rdf.Literal, _ datatypeInfo, _ Kind) (interface{}, error) {
	b, err := parseBoolean(l.Lexical)
	if err != nil {
		return nil, sparqlerr.IllTyped(l.Lexical, l.Datatype.Value, err)
	}
	return b, nil
}

func coerceTemporal(l rdf.Literal, info datatypeInfo, _ Kind) (interface{}, error) {
	t, err := parseTemporal(l.Lexical, info.family)
	if err != nil {
		return nil, sparqlerr.IllTyped(l.Lexical, l.Datatype.Value, err)
	}
	return t, nil
}

func coerceDuration(l rdf.Literal, _ datatypeInfo, kind Kind) (interface{}, error) {
	d, err := parseDuration(l.Lexical)
	if err != nil {
		return nil, sparqlerr.IllTyped(l.Lexical, l.Datatype.Value, err)
	}
	v, ok := d.toDuration()
	if !ok {
		return nil, sparqlerr.OutOfRange(l.Lexical, kind)
	}
	return v, nil
}

func coerceBinary(l rdf.Literal, _ datatypeInfo, _ Kind) (interface{}, error) {
	b, err := parseBinary(l.Lexical, l.Datatype == rdf.XSDHexBinary)
	if err != nil {
		return nil, sparqlerr.IllTyped(l.Lexical, l.Datatype.Value, err)
	}
	return b, nil
}

func coerceURL(l rdf.Literal, _ datatypeInfo, _ Kind) (interface{}, error) {
	return parseAbsoluteURL(collapse(l.Lexical), l)
}

func mismatch(t rdf.Term, kind Kind) error {
	return sparqlerr.TypeMismatch("cannot convert %v to %v", t, kind)
}
