package typemap

import (
	"encoding/base64"
	"math/big"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/sparqlerr"
)

// LangString is a host value bound as a language-tagged literal.
type LangString struct {
	Value string
	Lang  string
}

// Typed pairs a host value with the SQL type it must be bound as.
type Typed struct {
	Value interface{}
	Type  SQLType
}

// ToTerm converts a host value to an RDF term. nil and typed nil pointers are
// rejected: parameters are never nullable.
func ToTerm(v interface{}) (rdf.Term, error) {
	if isNil(v) {
		return nil, errNullValue()
	}
	switch value := v.(type) {
	case Typed:
		return toTypedTerm(value.Value, value.Type)
	case *Typed:
		return toTypedTerm(value.Value, value.Type)
	case rdf.Term:
		if err := rdf.Validate(value); err != nil {
			return nil, sparqlerr.InvalidParameter(sparqlerr.ErrCodeUnsupportedParameterType,
				"invalid term %v: %v", value, err)
		}
		return value, nil
	case LangString:
		return langLiteral(value)
	case *LangString:
		return langLiteral(*value)
	case string:
		return rdf.NewLiteral(value), nil
	case bool:
		return rdf.NewTypedLiteral(formatBoolean(value), rdf.XSDBoolean), nil
	case int:
		return rdf.NewTypedLiteral(strconv.FormatInt(int64(value), 10), rdf.XSDInteger), nil
	case int8:
		return rdf.NewTypedLiteral(strconv.FormatInt(int64(value), 10), rdf.XSDByte), nil
	case int16:
		return rdf.NewTypedLiteral(strconv.FormatInt(int64(value), 10), rdf.XSDShort), nil
	case int32:
		return rdf.NewTypedLiteral(strconv.FormatInt(int64(value), 10), rdf.XSDInt), nil
	case int64:
		return rdf.NewTypedLiteral(strconv.FormatInt(value, 10), rdf.XSDLong), nil
	case uint:
		return rdf.NewTypedLiteral(strconv.FormatUint(uint64(value), 10), rdf.XSDUnsignedLong), nil
	case uint8:
		return rdf.NewTypedLiteral(strconv.FormatUint(uint64(value), 10), rdf.XSDUnsignedByte), nil
	case uint16:
		return rdf.NewTypedLiteral(strconv.FormatUint(uint64(value), 10), rdf.XSDUnsignedShort), nil
	case uint32:
		return rdf.NewTypedLiteral(strconv.FormatUint(uint64(value), 10), rdf.XSDUnsignedInt), nil
	case uint64:
		return rdf.NewTypedLiteral(strconv.FormatUint(value, 10), rdf.XSDUnsignedLong), nil
	case *big.Int:
		return rdf.NewTypedLiteral(value.String(), rdf.XSDInteger), nil
	case float32:
		return rdf.NewTypedLiteral(formatFloat(float64(value), 32), rdf.XSDFloat), nil
	case float64:
		return rdf.NewTypedLiteral(formatFloat(value, 64), rdf.XSDDouble), nil
	case decimal.Decimal:
		return rdf.NewTypedLiteral(value.String(), rdf.XSDDecimal), nil
	case *decimal.Decimal:
		return rdf.NewTypedLiteral(value.String(), rdf.XSDDecimal), nil
	case []byte:
		return rdf.NewTypedLiteral(base64.StdEncoding.EncodeToString(value), rdf.XSDBase64Binary), nil
	case time.Time:
		return rdf.NewTypedLiteral(formatTemporal(value, FamilyDateTime), rdf.XSDDateTime), nil
	case *time.Time:
		return rdf.NewTypedLiteral(formatTemporal(*value, FamilyDateTime), rdf.XSDDateTime), nil
	case time.Duration:
		return rdf.NewTypedLiteral(formatDuration(value), rdf.XSDDayTimeDuration), nil
	case *url.URL:
		return urlTerm(value)
	case url.URL:
		return urlTerm(&value)
	}
	return nil, sparqlerr.InvalidParameter(sparqlerr.ErrCodeUnsupportedParameterType,
		"unsupported parameter type %T", v)
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func errNullValue() error {
	return sparqlerr.InvalidParameter(sparqlerr.ErrCodeNullParameter, "cannot bind a null value")
}

func langLiteral(v LangString) (rdf.Term, error) {
	if v.Lang == "" {
		return rdf.NewLiteral(v.Value), nil
	}
	if _, err := language.Parse(v.Lang); err != nil {
		return nil, sparqlerr.InvalidParameter(sparqlerr.ErrCodeUnsupportedParameterType,
			"invalid language tag %q: %v", v.Lang, err)
	}
	l := rdf.NewLangLiteral(v.Value, v.Lang)
	if err := rdf.Validate(l); err != nil {
		return nil, sparqlerr.InvalidParameter(sparqlerr.ErrCodeUnsupportedParameterType,
			"invalid language tag %q", v.Lang)
	}
	return l, nil
}

func urlTerm(u *url.URL) (rdf.Term, error) {
	if !u.IsAbs() {
		return nil, sparqlerr.InvalidParameter(sparqlerr.ErrCodeUnsupportedParameterType,
			"URL %q is not absolute", u.String())
	}
	return rdf.NewIRI(u.String()), nil
}

// toTypedTerm binds v as the datatype of sqlType. The value goes through its
// default term and the read table, so the same range checks and the same
// numeric/non-numeric rule apply in both directions.
func toTypedTerm(v interface{}, sqlType SQLType) (rdf.Term, error) {
	if isNil(v) {
		return nil, errNullValue()
	}
	target, ok := sqlTypeTargets[sqlType]
	if s, isString := v.(string); isString && ok && target.kind == KindURL {
		u, err := parseAbsoluteURL(s, rdf.NewLiteral(s))
		if err != nil {
			return nil, err
		}
		return urlTerm(u)
	}
	term, err := ToTerm(v)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Other and unknown SQL types bind the default term.
		return term, nil
	}
	converted, _, err := FromTerm(term, target.kind, CompatibilityLow)
	if err != nil {
		return nil, err
	}
	switch target.kind {
	case KindURL:
		return urlTerm(converted.(*url.URL))
	case KindString:
		if l, ok := term.(rdf.Literal); ok && l.HasLang() {
			return l, nil
		}
		return rdf.NewLiteral(converted.(string)), nil
	}
	return rdf.NewTypedLiteral(formatValue(converted, target), target.datatype), nil
}

func formatValue(v interface{}, target sqlTypeTarget) string {
	switch value := v.(type) {
	case bool:
		return formatBoolean(value)
	case int8:
		return strconv.FormatInt(int64(value), 10)
	case int16:
		return strconv.FormatInt(int64(value), 10)
	case int32:
		return strconv.FormatInt(int64(value), 10)
	case int64:
		return strconv.FormatInt(value, 10)
	case *big.Int:
		return value.String()
	case float32:
		return formatFloat(float64(value), 32)
	case float64:
		return formatFloat(value, 64)
	case decimal.Decimal:
		return value.String()
	case time.Time:
		return formatTemporal(value, FamilyOf(target.datatype))
	case time.Duration:
		return formatDuration(value)
	case []byte:
		if target.datatype == rdf.XSDHexBinary {
			return formatHexBinary(value)
		}
		return base64.StdEncoding.EncodeToString(value)
	}
	return ""
}
