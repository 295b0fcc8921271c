// Package typemap converts RDF terms to Go values and back. Every conversion is
// driven by one table keyed by the literal's datatype family and the requested
// Kind, shared by the read path of result sets and the write path of parameters.
package typemap

import (
	"fmt"
	"math/big"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/sparqlerr"
)

// Kind is the host type requested from a coercion.
type Kind int

const (
	// KindObject asks for the default representation, which depends on the Compatibility level.
	KindObject Kind = iota
	// KindTerm returns the rdf.Term unchanged.
	KindTerm
	// KindString returns the lexical form, the IRI or the blank node label.
	KindString
	// KindBool returns a bool.
	KindBool
	// KindInt8 returns an int8.
	KindInt8
	// KindInt16 returns an int16.
	KindInt16
	// KindInt32 returns an int32.
	KindInt32
	// KindInt64 returns an int64.
	KindInt64
	// KindUint8 returns a uint8.
	KindUint8
	// KindUint16 returns a uint16.
	KindUint16
	// KindUint32 returns a uint32.
	KindUint32
	// KindUint64 returns a uint64.
	KindUint64
	// KindBigInt returns a *big.Int.
	KindBigInt
	// KindFloat32 returns a float32.
	KindFloat32
	// KindFloat64 returns a float64.
	KindFloat64
	// KindDecimal returns a decimal.Decimal.
	KindDecimal
	// KindTime returns a time.Time in UTC.
	KindTime
	// KindDuration returns a time.Duration.
	KindDuration
	// KindBytes returns a []byte.
	KindBytes
	// KindURL returns a *url.URL.
	KindURL
)

var kindNames = map[Kind]string{
	KindObject:   "object",
	KindTerm:     "term",
	KindString:   "string",
	KindBool:     "bool",
	KindInt8:     "int8",
	KindInt16:    "int16",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindUint8:    "uint8",
	KindUint16:   "uint16",
	KindUint32:   "uint32",
	KindUint64:   "uint64",
	KindBigInt:   "big.Int",
	KindFloat32:  "float32",
	KindFloat64:  "float64",
	KindDecimal:  "decimal",
	KindTime:     "time",
	KindDuration: "duration",
	KindBytes:    "bytes",
	KindURL:      "url",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsNumeric reports whether the kind is one of the integral, floating or decimal kinds.
func (k Kind) IsNumeric() bool {
	return k.isIntegral() || k == KindFloat32 || k == KindFloat64 || k == KindDecimal
}

func (k Kind) isIntegral() bool {
	return k >= KindInt8 && k <= KindBigInt
}

var (
	typeOfTerm     = reflect.TypeOf((*rdf.Term)(nil)).Elem()
	typeOfBigInt   = reflect.TypeOf((*big.Int)(nil))
	typeOfDecimal  = reflect.TypeOf(decimal.Decimal{})
	typeOfTime     = reflect.TypeOf(time.Time{})
	typeOfDuration = reflect.TypeOf(time.Duration(0))
	typeOfURL      = reflect.TypeOf((*url.URL)(nil))
	typeOfObject   = reflect.TypeOf((*interface{})(nil)).Elem()
)

var kindTypes = map[Kind]reflect.Type{
	KindObject:   typeOfObject,
	KindTerm:     typeOfTerm,
	KindString:   reflect.TypeOf(""),
	KindBool:     reflect.TypeOf(false),
	KindInt8:     reflect.TypeOf(int8(0)),
	KindInt16:    reflect.TypeOf(int16(0)),
	KindInt32:    reflect.TypeOf(int32(0)),
	KindInt64:    reflect.TypeOf(int64(0)),
	KindUint8:    reflect.TypeOf(uint8(0)),
	KindUint16:   reflect.TypeOf(uint16(0)),
	KindUint32:   reflect.TypeOf(uint32(0)),
	KindUint64:   reflect.TypeOf(uint64(0)),
	KindBigInt:   typeOfBigInt,
	KindFloat32:  reflect.TypeOf(float32(0)),
	KindFloat64:  reflect.TypeOf(float64(0)),
	KindDecimal:  typeOfDecimal,
	KindTime:     typeOfTime,
	KindDuration: typeOfDuration,
	KindBytes:    reflect.TypeOf([]byte(nil)),
	KindURL:      typeOfURL,
}

// GoType returns the Go type produced by a coercion to k.
func (k Kind) GoType() reflect.Type {
	return kindTypes[k]
}

// ZeroValue is what a getter returns for an unbound cell.
func ZeroValue(k Kind) interface{} {
	switch k {
	case KindObject:
		return nil
	case KindTerm:
		return rdf.Term(nil)
	case KindString:
		return ""
	case KindBool:
		return false
	case KindInt8:
		return int8(0)
	case KindInt16:
		return int16(0)
	case KindInt32:
		return int32(0)
	case KindInt64:
		return int64(0)
	case KindUint8:
		return uint8(0)
	case KindUint16:
		return uint16(0)
	case KindUint32:
		return uint32(0)
	case KindUint64:
		return uint64(0)
	case KindBigInt:
		return (*big.Int)(nil)
	case KindFloat32:
		return float32(0)
	case KindFloat64:
		return float64(0)
	case KindDecimal:
		return decimal.Decimal{}
	case KindTime:
		return time.Time{}
	case KindDuration:
		return time.Duration(0)
	case KindBytes:
		return []byte(nil)
	case KindURL:
		return (*url.URL)(nil)
	}
	return nil
}

// Compatibility selects how KindObject decodes literals and how column metadata is derived.
type Compatibility int

const (
	// CompatibilityLow decodes numbers to arbitrary precision types and takes
	// metadata from the declared variables.
	CompatibilityLow Compatibility = iota
	// CompatibilityHigh decodes numbers to the narrowest type of their datatype
	// and takes metadata from the first row.
	CompatibilityHigh
)

func (c Compatibility) String() string {
	switch c {
	case CompatibilityLow:
		return "low"
	case CompatibilityHigh:
		return "high"
	}
	return fmt.Sprintf("Compatibility(%d)", int(c))
}

// ParseCompatibility parses "low" or "high", case-insensitively.
func ParseCompatibility(s string) (Compatibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return CompatibilityLow, nil
	case "high":
		return CompatibilityHigh, nil
	}
	return CompatibilityLow, sparqlerr.InvalidConfig(sparqlerr.ErrCodeInvalidDSN,
		"invalid compatibility level %q, expected LOW or HIGH", s)
}
