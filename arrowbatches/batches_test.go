package arrowbatches

import (
	"context"
	"testing"
	"time"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"
	"github.com/apache/arrow/go/v15/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdfsql/gosparql/rdf"
	"github.com/rdfsql/gosparql/results"
	"github.com/rdfsql/gosparql/resultset"
	"github.com/rdfsql/gosparql/sparqlerr"
	"github.com/rdfsql/gosparql/typemap"
)

var columns = []string{"ok", "n", "when", "day", "name"}

func typedRows() []results.Row {
	return []results.Row{
		{
			rdf.NewTypedLiteral("true", rdf.XSDBoolean),
			rdf.NewTypedLiteral("30", rdf.XSDInt),
			rdf.NewTypedLiteral("2023-05-06T07:08:09Z", rdf.XSDDateTime),
			rdf.NewTypedLiteral("2020-02-29", rdf.XSDDate),
			rdf.NewLangLiteral("colour", "en-GB"),
		},
		{
			rdf.NewTypedLiteral("false", rdf.XSDBoolean),
			nil,
			rdf.NewTypedLiteral("2023-05-06T09:08:09+02:00", rdf.XSDDateTime),
			rdf.NewTypedLiteral("2021-01-01", rdf.XSDDate),
			rdf.NewLiteral("plain"),
		},
		{
			rdf.NewTypedLiteral("true", rdf.XSDBoolean),
			rdf.NewTypedLiteral("-7", rdf.XSDInt),
			nil,
			rdf.NewTypedLiteral("1970-01-02", rdf.XSDDate),
			nil,
		},
	}
}

func newResultSet(t *testing.T, compat typemap.Compatibility) *resultset.ResultSet {
	m, err := results.NewMaterialized(columns, typedRows())
	require.NoError(t, err)
	rs, err := resultset.New(m, resultset.Options{Compatibility: compat})
	require.NoError(t, err)
	t.Cleanup(func() { rs.Close() })
	return rs
}

func TestRecordHighCompatibility(t *testing.T) {
	pool := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer pool.AssertSize(t, 0)

	rec, err := Record(newResultSet(t, typemap.CompatibilityHigh), pool)
	require.NoError(t, err)
	defer rec.Release()

	require.EqualValues(t, 3, rec.NumRows())
	schema := rec.Schema()
	assert.Equal(t, arrow.BOOL, schema.Field(0).Type.ID())
	assert.Equal(t, arrow.INT32, schema.Field(1).Type.ID())
	assert.Equal(t, &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: "UTC"}, schema.Field(2).Type)
	assert.Equal(t, arrow.DATE32, schema.Field(3).Type.ID())
	assert.Equal(t, arrow.STRING, schema.Field(4).Type.ID())
	assert.True(t, schema.Field(1).Nullable)

	sqlType, ok := schema.Field(1).Metadata.GetValue(MetadataKeySQLType)
	assert.True(t, ok)
	assert.Equal(t, "INTEGER", sqlType)
	datatype, ok := schema.Field(1).Metadata.GetValue(MetadataKeyDatatype)
	assert.True(t, ok)
	assert.Equal(t, rdf.XSDInt.Value, datatype)

	oks := rec.Column(0).(*array.Boolean)
	assert.True(t, oks.Value(0))
	assert.False(t, oks.Value(1))

	ns := rec.Column(1).(*array.Int32)
	assert.Equal(t, int32(30), ns.Value(0))
	assert.True(t, ns.IsNull(1))
	assert.Equal(t, int32(-7), ns.Value(2))

	when := rec.Column(2).(*array.Timestamp)
	want := arrow.Timestamp(time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC).UnixNano())
	assert.Equal(t, want, when.Value(0))
	assert.Equal(t, want, when.Value(1))
	assert.True(t, when.IsNull(2))

	days := rec.Column(3).(*array.Date32)
	assert.Equal(t, arrow.Date32FromTime(time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)), days.Value(0))
	assert.Equal(t, arrow.Date32(1), days.Value(2))

	names := rec.Column(4).(*array.String)
	assert.Equal(t, "colour", names.Value(0))
	assert.Equal(t, "plain", names.Value(1))
	assert.True(t, names.IsNull(2))
}

func TestRecordLowCompatibility(t *testing.T) {
	rec, err := Record(newResultSet(t, typemap.CompatibilityLow), memory.NewGoAllocator())
	require.NoError(t, err)
	defer rec.Release()

	for i, f := range rec.Schema().Fields() {
		assert.Equal(t, arrow.STRING, f.Type.ID(), columns[i])
		sqlType, _ := f.Metadata.GetValue(MetadataKeySQLType)
		assert.Equal(t, "RDF_TERM", sqlType)
	}
	ns := rec.Column(1).(*array.String)
	assert.Equal(t, "30", ns.Value(0))
	assert.True(t, ns.IsNull(1))
	assert.Equal(t, "2020-02-29", rec.Column(3).(*array.String).Value(0))
}

func TestRecordRemainingRows(t *testing.T) {
	rs := newResultSet(t, typemap.CompatibilityHigh)
	ok, err := rs.Next()
	require.NoError(t, err)
	require.True(t, ok)

	rec, err := Record(rs, nil)
	require.NoError(t, err)
	defer rec.Release()
	assert.EqualValues(t, 2, rec.NumRows())

	after, err := rs.IsAfterLast()
	require.NoError(t, err)
	assert.True(t, after)

	empty, err := Record(rs, nil)
	require.NoError(t, err)
	defer empty.Release()
	assert.EqualValues(t, 0, empty.NumRows())
	assert.EqualValues(t, len(columns), empty.NumCols())
}

func TestBatches(t *testing.T) {
	pool := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer pool.AssertSize(t, 0)

	ctx := WithTimestampUnit(context.Background(), UseMillisecondTimestamp)
	recs, err := Batches(ctx, newResultSet(t, typemap.CompatibilityHigh), pool, 2)
	require.NoError(t, err)
	defer releaseRecords(recs)

	require.Len(t, recs, 2)
	assert.EqualValues(t, 2, recs[0].NumRows())
	assert.EqualValues(t, 1, recs[1].NumRows())
	assert.Equal(t, 3, CountRows(recs))

	ts := recs[0].Schema().Field(2).Type.(*arrow.TimestampType)
	assert.Equal(t, arrow.Millisecond, ts.Unit)
	want := arrow.Timestamp(time.Date(2023, 5, 6, 7, 8, 9, 0, time.UTC).UnixMilli())
	assert.Equal(t, want, recs[0].Column(2).(*array.Timestamp).Value(0))
}

func TestBatchesTypeMismatch(t *testing.T) {
	rows := []results.Row{
		{rdf.NewTypedLiteral("1", rdf.XSDInt)},
		{rdf.NewTypedLiteral("one", rdf.XSDInt)},
	}
	m, err := results.NewMaterialized([]string{"n"}, rows)
	require.NoError(t, err)
	rs, err := resultset.New(m, resultset.Options{Compatibility: typemap.CompatibilityHigh})
	require.NoError(t, err)
	defer rs.Close()

	pool := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer pool.AssertSize(t, 0)
	_, err = Batches(context.Background(), rs, pool, 1)
	assert.ErrorIs(t, err, sparqlerr.ErrTypeMismatch)
}

func TestBatchesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Batches(ctx, newResultSet(t, typemap.CompatibilityHigh), nil, 0)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatchesClosedResultSet(t *testing.T) {
	rs := newResultSet(t, typemap.CompatibilityHigh)
	require.NoError(t, rs.Close())
	_, err := Record(rs, nil)
	assert.ErrorIs(t, err, sparqlerr.ErrClosedCursor)
}
