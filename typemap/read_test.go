package typemap

import (
	"math"
	"math/big"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/sparqlerr"
)

func lit(lexical string, dt rdf.IRI) rdf.Literal {
	return rdf.NewTypedLiteral(lexical, dt)
}

func read(t *testing.T, term rdf.Term, kind Kind) interface{} {
	t.Helper()
	v, isNull, err := FromTerm(term, kind, CompatibilityLow)
	require.NoError(t, err)
	assert.False(t, isNull)
	return v
}

func readErr(t *testing.T, term rdf.Term, kind Kind) error {
	t.Helper()
	_, _, err := FromTerm(term, kind, CompatibilityLow)
	require.Error(t, err)
	return err
}

func TestByteRangeCheck(t *testing.T) {
	err := readErr(t, lit("200", rdf.XSDInt), KindInt8)
	assert.ErrorIs(t, err, sparqlerr.ErrTypeMismatch)

	assert.Equal(t, int8(100), read(t, lit("100", rdf.XSDInt), KindInt8))
	assert.Equal(t, int8(-128), read(t, lit("-128", rdf.XSDInt), KindInt8))
	assert.Equal(t, uint8(200), read(t, lit("200", rdf.XSDInt), KindUint8))
	assert.Error(t, readErr(t, lit("-1", rdf.XSDInt), KindUint8))
}

func TestLongLiteral(t *testing.T) {
	l := lit("1475533105077", rdf.XSDLong)
	assert.Equal(t, int64(1475533105077), read(t, l, KindInt64))
	err := readErr(t, l, KindInt32)
	assert.ErrorIs(t, err, sparqlerr.ErrTypeMismatch)
	assert.Equal(t, "1475533105077", read(t, l, KindString))
	assert.Equal(t, big.NewInt(1475533105077), read(t, l, KindBigInt))
	assert.Equal(t, float64(1475533105077), read(t, l, KindFloat64))
	assert.True(t, decimal.NewFromInt(1475533105077).Equal(read(t, l, KindDecimal).(decimal.Decimal)))
}

func TestIntegerDatatypeBounds(t *testing.T) {
	err := readErr(t, lit("-1", rdf.XSDUnsignedByte), KindInt64)
	assert.ErrorIs(t, err, sparqlerr.ErrTypeMismatch)
	assert.Error(t, readErr(t, lit("0", rdf.XSDPositiveInteger), KindInt64))
	assert.Error(t, readErr(t, lit("128", rdf.XSDByte), KindInt64))
	assert.Equal(t, int64(-5), read(t, lit("-5", rdf.XSDNegativeInteger), KindInt64))
	assert.Equal(t, uint64(math.MaxUint64), read(t, lit("18446744073709551615", rdf.XSDUnsignedLong), KindUint64))
	assert.Error(t, readErr(t, lit("18446744073709551615", rdf.XSDUnsignedLong), KindInt64))
	assert.Equal(t, int32(7), read(t, lit(" +7 ", rdf.XSDInteger), KindInt32))
	assert.Error(t, readErr(t, lit("7.0", rdf.XSDInteger), KindInt32))
	assert.Error(t, readErr(t, lit("0x10", rdf.XSDInteger), KindInt32))
}

func TestDecimalAndFloatToIntegral(t *testing.T) {
	assert.Equal(t, int32(3), read(t, lit("3.000", rdf.XSDDecimal), KindInt32))
	assert.Error(t, readErr(t, lit("3.5", rdf.XSDDecimal), KindInt32))
	assert.Equal(t, int64(42), read(t, lit("4.2E1", rdf.XSDDouble), KindInt64))
	assert.Error(t, readErr(t, lit("INF", rdf.XSDDouble), KindInt64))
	assert.Error(t, readErr(t, lit("0.5", rdf.XSDFloat), KindInt64))
}

func TestDecimalPreservesValue(t *testing.T) {
	v := read(t, lit("12345678901234567890.000000000000000001", rdf.XSDDecimal), KindDecimal).(decimal.Decimal)
	assert.Equal(t, "12345678901234567890.000000000000000001", v.String())

	v = read(t, lit(".5", rdf.XSDDecimal), KindDecimal).(decimal.Decimal)
	assert.Equal(t, "0.5", v.String())

	assert.Error(t, readErr(t, lit("1e3", rdf.XSDDecimal), KindDecimal))
	assert.Error(t, readErr(t, lit("NaN", rdf.XSDDouble), KindDecimal))
}

func TestSpecialFloats(t *testing.T) {
	assert.True(t, math.IsInf(read(t, lit("INF", rdf.XSDDouble), KindFloat64).(float64), 1))
	assert.True(t, math.IsInf(read(t, lit("+INF", rdf.XSDDouble), KindFloat64).(float64), 1))
	assert.True(t, math.IsInf(read(t, lit("-INF", rdf.XSDDouble), KindFloat64).(float64), -1))
	assert.True(t, math.IsNaN(read(t, lit("NaN", rdf.XSDDouble), KindFloat64).(float64)))
	assert.True(t, math.IsInf(float64(read(t, lit("-INF", rdf.XSDFloat), KindFloat32).(float32)), -1))

	for _, bad := range []string{"Inf", "inf", "infinity", "nan", "1.5f", ""} {
		assert.Error(t, readErr(t, lit(bad, rdf.XSDDouble), KindFloat64), bad)
	}
	assert.Equal(t, float32(1.5), read(t, lit("1.5", rdf.XSDDouble), KindFloat32))
	assert.Error(t, readErr(t, lit("1e300", rdf.XSDDouble), KindFloat32))
	assert.Error(t, readErr(t, lit("1"+strings.Repeat("0", 400), rdf.XSDInteger), KindFloat64))
}

func TestNumericNonNumericRule(t *testing.T) {
	testcases := []struct {
		term rdf.Term
		kind Kind
	}{
		{lit("42", rdf.XSDString), KindInt32},
		{lit("42", rdf.XSDInteger), KindBool},
		{lit("true", rdf.XSDBoolean), KindInt32},
		{lit("1", rdf.XSDBoolean), KindDecimal},
		{lit("42", rdf.XSDInteger), KindTime},
		{lit("2020-01-01", rdf.XSDDate), KindInt64},
		{rdf.NewIRI("http://example.org/1"), KindInt64},
		{rdf.NewBlankNode("b"), KindFloat64},
		{rdf.NewLangLiteral("12", "en"), KindInt64},
		{lit("http://example.org/", rdf.XSDString), KindURL},
		{lit("AAAA", rdf.XSDString), KindBytes},
	}
	for _, tc := range testcases {
		t.Run(tc.term.String()+" as "+tc.kind.String(), func(t *testing.T) {
			err := readErr(t, tc.term, tc.kind)
			assert.ErrorIs(t, err, sparqlerr.ErrTypeMismatch)
		})
	}
}

func TestStringAndObjectAlwaysSucceed(t *testing.T) {
	assert.Equal(t, "http://example.org/a", read(t, rdf.NewIRI("http://example.org/a"), KindString))
	assert.Equal(t, "b0", read(t, rdf.NewBlankNode("b0"), KindString))
	assert.Equal(t, "bonjour", read(t, rdf.NewLangLiteral("bonjour", "fr"), KindString))
	assert.Equal(t, "not a number", read(t, lit("not a number", rdf.XSDInt), KindString))
	assert.Equal(t, "http://example.org/a", read(t, rdf.NewIRI("http://example.org/a"), KindObject))
	assert.Equal(t, "b0", read(t, rdf.NewBlankNode("b0"), KindObject))
	assert.Equal(t, "v", read(t, lit("v", rdf.NewIRI("http://example.org/dt")), KindObject))

	term := rdf.NewLangLiteral("x", "en")
	assert.Equal(t, rdf.Term(term), read(t, term, KindTerm))
}

func TestBoolean(t *testing.T) {
	for lexical, want := range map[string]bool{"true": true, "false": false, "1": true, "0": false} {
		assert.Equal(t, want, read(t, lit(lexical, rdf.XSDBoolean), KindBool), lexical)
	}
	assert.Error(t, readErr(t, lit("TRUE", rdf.XSDBoolean), KindBool))
	assert.Error(t, readErr(t, lit("yes", rdf.XSDBoolean), KindBool))
}

func TestTemporal(t *testing.T) {
	v := read(t, lit("2016-10-03T22:18:25Z", rdf.XSDDateTime), KindTime).(time.Time)
	assert.Equal(t, time.Date(2016, 10, 3, 22, 18, 25, 0, time.UTC), v)
	assert.Equal(t, time.UTC, v.Location())

	v = read(t, lit("2016-10-03T22:18:25.5+02:00", rdf.XSDDateTime), KindTime).(time.Time)
	assert.Equal(t, time.Date(2016, 10, 3, 20, 18, 25, 500000000, time.UTC), v)

	v = read(t, lit("2016-10-03T22:18:25", rdf.XSDDateTime), KindTime).(time.Time)
	assert.Equal(t, time.Date(2016, 10, 3, 22, 18, 25, 0, time.UTC), v)

	v = read(t, lit("2016-10-03", rdf.XSDDate), KindTime).(time.Time)
	assert.Equal(t, time.Date(2016, 10, 3, 0, 0, 0, 0, time.UTC), v)

	v = read(t, lit("10:30:00-01:00", rdf.XSDTime), KindTime).(time.Time)
	assert.Equal(t, time.Date(1970, 1, 1, 11, 30, 0, 0, time.UTC), v)

	assert.Error(t, readErr(t, lit("03/10/2016", rdf.XSDDate), KindTime))
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 36*time.Hour+90*time.Second+500*time.Millisecond,
		read(t, lit("P1DT12H1M30.5S", rdf.XSDDayTimeDuration), KindDuration))
	assert.Equal(t, -90*time.Minute, read(t, lit("-PT1H30M", rdf.XSDDuration), KindDuration))
	assert.Error(t, readErr(t, lit("P1Y", rdf.XSDYearMonthDuration), KindDuration))
	assert.Error(t, readErr(t, lit("P", rdf.XSDDuration), KindDuration))
	assert.Error(t, readErr(t, lit("PT", rdf.XSDDuration), KindDuration))
	assert.Error(t, readErr(t, lit("P1H", rdf.XSDDuration), KindDuration))
	assert.Error(t, readErr(t, lit("PT1D", rdf.XSDDuration), KindDuration))
	assert.Error(t, readErr(t, lit("P1M1Y", rdf.XSDDuration), KindDuration))

	assert.Equal(t, "P1Y2M", read(t, lit("P1Y2M", rdf.XSDYearMonthDuration), KindObject))
}

func TestBinaryAndURL(t *testing.T) {
	assert.Equal(t, []byte{0xca, 0xfe}, read(t, lit("CAFE", rdf.XSDHexBinary), KindBytes))
	assert.Equal(t, []byte("hi"), read(t, lit("aGk=", rdf.XSDBase64Binary), KindBytes))
	assert.Error(t, readErr(t, lit("XYZ", rdf.XSDHexBinary), KindBytes))

	u := read(t, rdf.NewIRI("http://example.org/a?b=c"), KindURL).(*url.URL)
	assert.Equal(t, "example.org", u.Host)
	u = read(t, lit("urn:isbn:0451450523", rdf.XSDAnyURI), KindURL).(*url.URL)
	assert.Equal(t, "urn", u.Scheme)
	assert.Error(t, readErr(t, rdf.NewIRI("relative/path"), KindURL))
}

func TestNullYieldsZeroValue(t *testing.T) {
	for kind := KindObject; kind <= KindURL; kind++ {
		v, isNull, err := FromTerm(nil, kind, CompatibilityHigh)
		require.NoError(t, err)
		assert.True(t, isNull, kind.String())
		assert.Equal(t, ZeroValue(kind), v, kind.String())
	}
	v, _, _ := FromTerm(nil, KindInt32, CompatibilityLow)
	assert.Equal(t, int32(0), v)
	v, _, _ = FromTerm(nil, KindString, CompatibilityLow)
	assert.Equal(t, "", v)
}

func TestDefaultObjectByCompatibility(t *testing.T) {
	testcases := []struct {
		term rdf.Term
		low  interface{}
		high interface{}
	}{
		{lit("5", rdf.XSDByte), big.NewInt(5), int8(5)},
		{lit("5", rdf.XSDShort), big.NewInt(5), int16(5)},
		{lit("5", rdf.XSDInt), big.NewInt(5), int32(5)},
		{lit("5", rdf.XSDLong), big.NewInt(5), int64(5)},
		{lit("5", rdf.XSDUnsignedByte), big.NewInt(5), uint8(5)},
		{lit("5", rdf.XSDUnsignedLong), big.NewInt(5), uint64(5)},
		{lit("5", rdf.XSDInteger), big.NewInt(5), big.NewInt(5)},
		{lit("1.5", rdf.XSDFloat), float64(1.5), float32(1.5)},
		{lit("1.5", rdf.XSDDouble), float64(1.5), float64(1.5)},
		{lit("true", rdf.XSDBoolean), true, true},
		{lit("s", rdf.XSDString), "s", "s"},
		{rdf.NewLangLiteral("s", "en"), "s", "s"},
		{lit("PT1S", rdf.XSDDayTimeDuration), time.Second, time.Second},
	}
	for _, tc := range testcases {
		t.Run(tc.term.String(), func(t *testing.T) {
			low, _, err := FromTerm(tc.term, KindObject, CompatibilityLow)
			require.NoError(t, err)
			assert.Equal(t, tc.low, low)
			high, _, err := FromTerm(tc.term, KindObject, CompatibilityHigh)
			require.NoError(t, err)
			assert.Equal(t, tc.high, high)
			assert.Equal(t, DefaultKind(tc.term, CompatibilityHigh).GoType(), reflect.TypeOf(high))
		})
	}

	d, _, err := FromTerm(lit("1.50", rdf.XSDDecimal), KindObject, CompatibilityLow)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1.5").Equal(d.(decimal.Decimal)))
}

func TestCompatibilityParsing(t *testing.T) {
	c, err := ParseCompatibility("HIGH")
	require.NoError(t, err)
	assert.Equal(t, CompatibilityHigh, c)
	c, err = ParseCompatibility(" low ")
	require.NoError(t, err)
	assert.Equal(t, CompatibilityLow, c)
	_, err = ParseCompatibility("medium")
	assert.ErrorIs(t, err, sparqlerr.ErrInvalidConfig)
	assert.Equal(t, "high", CompatibilityHigh.String())
}
