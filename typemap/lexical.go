package typemap

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// collapse applies the XSD whiteSpace=collapse facet used by every non-string type.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func parseBoolean(s string) (bool, error) {
	switch collapse(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean")
}

func formatBoolean(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// isIntegerLexical matches [+-]?[0-9]+.
func isIntegerLexical(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// isDecimalLexical matches [+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+).
func isDecimalLexical(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits++
		case s[i] == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// isFloatLexical matches the finite part of the xsd:double lexical space:
// a decimal mantissa with an optional exponent.
func isFloatLexical(s string) bool {
	mantissa, exponent := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa, exponent = s[:i], s[i+1:]
		if !isIntegerLexical(exponent) {
			return false
		}
	}
	return isDecimalLexical(mantissa)
}

func parseInteger(s string) (*big.Int, error) {
	s = collapse(s)
	if !isIntegerLexical(s) {
		return nil, fmt.Errorf("not an integer")
	}
	v, ok := new(big.Int).SetString(strings.TrimPrefix(s, "+"), 10)
	if !ok {
		return nil, fmt.Errorf("not an integer")
	}
	return v, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = collapse(s)
	if !isDecimalLexical(s) {
		return decimal.Decimal{}, fmt.Errorf("not a decimal")
	}
	return decimal.NewFromString(strings.TrimPrefix(s, "+"))
}

// parseFloat accepts the XSD forms including INF, +INF, -INF and NaN. Go's own
// spellings such as "Inf" or "infinity" are rejected.
func parseFloat(s string, bits int) (float64, error) {
	s = collapse(s)
	switch s {
	case "INF", "+INF":
		return math.Inf(1), nil
	case "-INF":
		return math.Inf(-1), nil
	case "NaN":
		return math.NaN(), nil
	}
	if !isFloatLexical(s) {
		return 0, fmt.Errorf("not a floating point number")
	}
	f, err := strconv.ParseFloat(s, bits)
	if err != nil {
		// overflow is a range problem of the datatype, not of the lexical form
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return f, nil
		}
		return 0, err
	}
	return f, nil
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "INF"
	case math.IsInf(f, -1):
		return "-INF"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

var (
	dateTimeLayouts = []string{"2006-01-02T15:04:05Z07:00", "2006-01-02T15:04:05"}
	dateLayouts     = []string{"2006-01-02Z07:00", "2006-01-02"}
	timeLayouts     = []string{"15:04:05Z07:00", "15:04:05"}
)

// parseTemporal parses a lexical form against the family's layouts. Values
// without a timezone are read as UTC, the rest are converted to UTC. xsd:time
// values are placed on 1970-01-01.
func parseTemporal(s string, family Family) (time.Time, error) {
	s = collapse(s)
	var layouts []string
	switch family {
	case FamilyDateTime:
		layouts = dateTimeLayouts
	case FamilyDate:
		layouts = dateLayouts
	case FamilyTime:
		layouts = timeLayouts
	default:
		return time.Time{}, fmt.Errorf("%v is not a temporal family", family)
	}
	var err error
	for _, layout := range layouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err != nil {
			continue
		}
		if family == FamilyTime {
			t = time.Date(1970, time.January, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
		}
		return t.UTC(), nil
	}
	return time.Time{}, err
}

func formatTemporal(t time.Time, family Family) string {
	t = t.UTC()
	switch family {
	case FamilyDate:
		return t.Format("2006-01-02")
	case FamilyTime:
		return t.Format("15:04:05.999999999Z07:00")
	}
	return t.Format("2006-01-02T15:04:05.999999999Z07:00")
}

// xsdDuration is a parsed xsd:duration. Months carries the year and month
// parts, which have no fixed length.
type xsdDuration struct {
	negative bool
	months   int64
	seconds  decimal.Decimal
}

var (
	secondsPerMinute = decimal.NewFromInt(60)
	secondsPerHour   = decimal.NewFromInt(3600)
	secondsPerDay    = decimal.NewFromInt(86400)
	nanosPerSecond   = decimal.NewFromInt(int64(time.Second))
	maxDuration      = decimal.NewFromInt(math.MaxInt64)
)

// parseDuration reads -?P(nY)?(nM)?(nD)?(T(nH)?(nM)?(n(.n)?S)?)?.
func parseDuration(s string) (xsdDuration, error) {
	var d xsdDuration
	s = collapse(s)
	if strings.HasPrefix(s, "-") {
		d.negative = true
		s = s[1:]
	}
	if !strings.HasPrefix(s, "P") || len(s) == 1 {
		return d, fmt.Errorf("not a duration")
	}
	s = s[1:]
	inTime := false
	order := "YMD"
	seen := false
	for len(s) > 0 {
		if s[0] == 'T' {
			if inTime {
				return d, fmt.Errorf("duplicate T in duration")
			}
			inTime = true
			order = "HMS"
			s = s[1:]
			if s == "" {
				return d, fmt.Errorf("empty time part in duration")
			}
			continue
		}
		i := strings.IndexAny(s, "YMDHS")
		if i <= 0 {
			return d, fmt.Errorf("not a duration")
		}
		number, designator := s[:i], s[i]
		s = s[i+1:]
		pos := strings.IndexByte(order, designator)
		if pos < 0 {
			return d, fmt.Errorf("unexpected designator %c", designator)
		}
		order = order[pos+1:]
		if designator == 'S' {
			if !isDecimalLexical(number) || number[0] == '+' || number[0] == '-' {
				return d, fmt.Errorf("invalid seconds %q", number)
			}
			v, err := decimal.NewFromString(number)
			if err != nil {
				return d, err
			}
			d.seconds = d.seconds.Add(v)
			seen = true
			continue
		}
		if !isIntegerLexical(number) || number[0] == '+' || number[0] == '-' {
			return d, fmt.Errorf("invalid duration component %q", number)
		}
		v, err := strconv.ParseInt(number, 10, 64)
		if err != nil {
			return d, err
		}
		switch {
		case !inTime && designator == 'Y':
			d.months += v * 12
		case !inTime && designator == 'M':
			d.months += v
		case !inTime && designator == 'D':
			d.seconds = d.seconds.Add(decimal.NewFromInt(v).Mul(secondsPerDay))
		case inTime && designator == 'H':
			d.seconds = d.seconds.Add(decimal.NewFromInt(v).Mul(secondsPerHour))
		case inTime && designator == 'M':
			d.seconds = d.seconds.Add(decimal.NewFromInt(v).Mul(secondsPerMinute))
		default:
			return d, fmt.Errorf("unexpected designator %c", designator)
		}
		seen = true
	}
	if !seen {
		return d, fmt.Errorf("not a duration")
	}
	return d, nil
}

// toDuration converts to a time.Duration. It fails when the value has a year or
// month part or does not fit in an int64 count of nanoseconds.
func (d xsdDuration) toDuration() (time.Duration, bool) {
	if d.months != 0 {
		return 0, false
	}
	nanos := d.seconds.Mul(nanosPerSecond).Truncate(0)
	if nanos.GreaterThan(maxDuration) {
		return 0, false
	}
	v := time.Duration(nanos.IntPart())
	if d.negative {
		v = -v
	}
	return v, true
}

// formatDuration renders a time.Duration as an xsd:dayTimeDuration.
func formatDuration(v time.Duration) string {
	if v == 0 {
		return "PT0S"
	}
	var b strings.Builder
	abs := uint64(v)
	if v < 0 {
		b.WriteByte('-')
		abs = uint64(-(v + 1)) + 1
	}
	b.WriteByte('P')
	const day = uint64(24 * time.Hour)
	if days := abs / day; days > 0 {
		b.WriteString(strconv.FormatUint(days, 10))
		b.WriteByte('D')
		abs %= day
	}
	if abs == 0 {
		return b.String()
	}
	b.WriteByte('T')
	if hours := abs / uint64(time.Hour); hours > 0 {
		b.WriteString(strconv.FormatUint(hours, 10))
		b.WriteByte('H')
		abs %= uint64(time.Hour)
	}
	if minutes := abs / uint64(time.Minute); minutes > 0 {
		b.WriteString(strconv.FormatUint(minutes, 10))
		b.WriteByte('M')
		abs %= uint64(time.Minute)
	}
	if abs > 0 {
		b.WriteString(strconv.FormatUint(abs/uint64(time.Second), 10))
		if frac := abs % uint64(time.Second); frac > 0 {
			b.WriteByte('.')
			b.WriteString(strings.TrimRight(fmt.Sprintf("%09d", frac), "0"))
		}
		b.WriteByte('S')
	}
	return b.String()
}

func parseBinary(s string, hexEncoded bool) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	if hexEncoded {
		return hex.DecodeString(s)
	}
	return base64.StdEncoding.DecodeString(s)
}

func formatHexBinary(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}
