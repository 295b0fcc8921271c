package resultset

import (
	"math"
	"math/big"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/results"
	"github.com/rdfsql/gosparql/sparqlerr"
	"github.com/rdfsql/gosparql/typemap"
)

// Nullability tells whether a column may hold unbound cells.
type Nullability int

const (
	// NoNulls columns are always bound.
	NoNulls Nullability = iota
	// Nullable columns may be unbound.
	Nullable
	// NullableUnknown is reported when nothing is known about the column.
	NullableUnknown
)

func (n Nullability) String() string {
	switch n {
	case NoNulls:
		return "NO_NULLS"
	case Nullable:
		return "NULLABLE"
	}
	return "NULLABLE_UNKNOWN"
}

// unbounded is the size reported for columns without a length limit.
const unbounded = math.MaxInt32

// ColumnDescriptor describes one column of a result.
type ColumnDescriptor struct {
	Label string
	Type  typemap.SQLType
	// GoType is the type GetObject returns for the column.
	GoType reflect.Type
	// Datatype is the observed literal datatype, empty when the column was not
	// described from a literal.
	Datatype    rdf.IRI
	Nullable    Nullability
	Precision   int
	Scale       int
	Signed      bool
	DisplaySize int
}

// TypeName returns the database type name of the column.
func (c ColumnDescriptor) TypeName() string {
	return c.Type.String()
}

// Metadata holds the column descriptors of a result set. It is immutable.
type Metadata struct {
	columns []ColumnDescriptor
}

// ColumnCount returns the number of columns.
func (m *Metadata) ColumnCount() int {
	return len(m.columns)
}

// Column returns the descriptor of a 1-based column.
func (m *Metadata) Column(index int) (ColumnDescriptor, error) {
	if index < 1 || index > len(m.columns) {
		return ColumnDescriptor{}, sparqlerr.ColumnIndex(index, len(m.columns))
	}
	return m.columns[index-1], nil
}

// Columns returns a copy of every descriptor.
func (m *Metadata) Columns() []ColumnDescriptor {
	return append([]ColumnDescriptor(nil), m.columns...)
}

// Metadata describes the columns. Under CompatibilityLow the description only
// uses the declared variables. Under CompatibilityHigh it is derived from the
// first row, which a forward-only cursor that has not moved yet reads ahead.
func (rs *ResultSet) Metadata() (*Metadata, error) {
	if err := rs.checkOpen("Metadata"); err != nil {
		return nil, err
	}
	if rs.meta != nil {
		return rs.meta, nil
	}
	if rs.compat == typemap.CompatibilityHigh && rs.form != results.FormBoolean {
		if err := rs.peekFirst(); err != nil {
			return nil, err
		}
		rs.meta = describeRow(rs.form, rs.columns, rs.first)
	} else {
		rs.meta = describeDeclared(rs.form, rs.columns)
	}
	return rs.meta, nil
}

// describeDeclared builds metadata from the column labels alone.
func describeDeclared(form results.Form, labels []string) *Metadata {
	cols := make([]ColumnDescriptor, len(labels))
	for i, label := range labels {
		switch form {
		case results.FormBoolean:
			cols[i] = ColumnDescriptor{
				Label:       label,
				Type:        typemap.SQLTypeBoolean,
				GoType:      typemap.KindBool.GoType(),
				Datatype:    rdf.XSDBoolean,
				Nullable:    NoNulls,
				Precision:   1,
				DisplaySize: 5,
			}
		case results.FormGraph:
			cols[i] = termColumn(label, NoNulls)
		default:
			cols[i] = termColumn(label, NullableUnknown)
		}
	}
	return &Metadata{columns: cols}
}

func termColumn(label string, nullable Nullability) ColumnDescriptor {
	return ColumnDescriptor{
		Label:       label,
		Type:        typemap.SQLTypeOther,
		GoType:      typemap.KindObject.GoType(),
		Nullable:    nullable,
		DisplaySize: unbounded,
	}
}

// describeRow builds metadata from the terms of the first row. A nil row
// describes an empty result.
func describeRow(form results.Form, labels []string, row results.Row) *Metadata {
	nullable := NullableUnknown
	if form == results.FormGraph {
		nullable = NoNulls
	}
	cols := make([]ColumnDescriptor, len(labels))
	for i, label := range labels {
		var t rdf.Term
		if row != nil {
			t = row[i]
		}
		cols[i] = describeTerm(label, t, nullable)
	}
	return &Metadata{columns: cols}
}

func describeTerm(label string, t rdf.Term, nullable Nullability) ColumnDescriptor {
	c := ColumnDescriptor{Label: label, Nullable: nullable}
	if t == nil {
		c.Type = typemap.SQLTypeVarchar
		c.GoType = typemap.KindString.GoType()
		c.Precision, c.DisplaySize = unbounded, unbounded
		return c
	}
	c.Type = typemap.SQLTypeOf(t)
	c.GoType = typemap.DefaultKind(t, typemap.CompatibilityHigh).GoType()
	lit, isLiteral := t.(rdf.Literal)
	if isLiteral {
		c.Datatype = lit.Datatype
		c.Signed = typemap.Signed(lit.Datatype)
	}

	switch c.Type {
	case typemap.SQLTypeBoolean:
		c.Precision, c.DisplaySize = 1, 5
	case typemap.SQLTypeTinyInt:
		c.Precision = 3
	case typemap.SQLTypeSmallInt:
		c.Precision = 5
	case typemap.SQLTypeInteger:
		c.Precision = 10
	case typemap.SQLTypeBigInt:
		c.Precision = 19
	case typemap.SQLTypeNumeric:
		c.Precision = integerPrecision(lit)
	case typemap.SQLTypeDecimal:
		c.Precision, c.Scale = decimalPrecision(lit.Lexical)
	case typemap.SQLTypeReal:
		c.Precision, c.DisplaySize = 7, 15
	case typemap.SQLTypeDouble:
		c.Precision, c.DisplaySize = 15, 24
	case typemap.SQLTypeDate:
		c.Precision, c.DisplaySize = 10, 10
	case typemap.SQLTypeTime:
		c.Precision, c.Scale, c.DisplaySize = 18, 9, 18
	case typemap.SQLTypeTimestamp:
		c.Precision, c.Scale, c.DisplaySize = 30, 9, 30
	default:
		c.Precision, c.DisplaySize = unbounded, unbounded
	}
	if c.DisplaySize == 0 {
		c.DisplaySize = c.Precision
		if c.Scale > 0 {
			c.DisplaySize++
		}
		if c.Signed {
			c.DisplaySize++
		}
	}
	return c
}

// integerPrecision is the digit count of the largest value of a bounded
// integer datatype, or of the observed value otherwise.
func integerPrecision(lit rdf.Literal) int {
	min, max, _ := typemap.IntegerBounds(lit.Datatype)
	if min != nil && max != nil {
		return len(strings.TrimPrefix(max.String(), "-"))
	}
	digits := strings.TrimLeft(strings.TrimLeft(strings.TrimSpace(lit.Lexical), "+-"), "0")
	if digits == "" {
		return 1
	}
	return len(digits)
}

// decimalPrecision returns the precision and scale of an xsd:decimal lexical
// form. Trailing zeros count.
func decimalPrecision(lexical string) (int, int) {
	d, err := decimal.NewFromString(strings.TrimSpace(lexical))
	if err != nil {
		return 0, 0
	}
	scale := 0
	if exp := d.Exponent(); exp < 0 {
		scale = int(-exp)
	}
	digits := len(new(big.Int).Abs(d.Coefficient()).String())
	if digits < scale {
		digits = scale
	}
	return digits, scale
}
