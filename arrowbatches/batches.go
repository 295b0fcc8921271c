// Package arrowbatches exports SPARQL result sets as Apache Arrow records.
//
// Column types come from the result set metadata. Under CompatibilityHigh,
// booleans, fixed-width integers, floats, timestamps and dates map to the
// matching Arrow types. Every other column, and every column under
// CompatibilityLow, is exported as UTF-8 strings holding the lexical forms.
// Unbound cells become nulls.
package arrowbatches

import (
	"context"

	"github.com/apache/arrow/go/v15/arrow"
	"github.com/apache/arrow/go/v15/arrow/array"
	"github.com/apache/arrow/go/v15/arrow/memory"

	"github.com/rdfsql/gosparql/resultset"
)

// Record converts the remaining rows of rs into a single record. The cursor is
// left after the last row. The caller releases the record.
func Record(rs *resultset.ResultSet, mem memory.Allocator) (arrow.Record, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	recs, err := Batches(context.Background(), rs, mem, 0)
	if err != nil {
		return nil, err
	}
	if len(recs) == 1 {
		return recs[0], nil
	}
	// no rows left
	schema, err := schemaOf(context.Background(), rs)
	if err != nil {
		return nil, err
	}
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()
	return b.NewRecord(), nil
}

// Batches converts the remaining rows of rs into records of at most batchSize
// rows. A batchSize of zero or less puts every row in one record. No record is
// returned when no rows are left. The caller releases the records.
func Batches(ctx context.Context, rs *resultset.ResultSet, mem memory.Allocator, batchSize int) ([]arrow.Record, error) {
	if mem == nil {
		mem = memory.DefaultAllocator
	}
	schema, err := schemaOf(ctx, rs)
	if err != nil {
		return nil, err
	}
	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	var recs []arrow.Record
	fail := func(err error) ([]arrow.Record, error) {
		releaseRecords(recs)
		return nil, err
	}
	rows := 0
	for {
		if err = ctx.Err(); err != nil {
			return fail(err)
		}
		ok, err := rs.Next()
		if err != nil {
			return fail(err)
		}
		if !ok {
			break
		}
		for i, field := range schema.Fields() {
			if err = appendCell(rs, i+1, field, b.Field(i)); err != nil {
				return fail(err)
			}
		}
		rows++
		if batchSize > 0 && rows == batchSize {
			recs = append(recs, b.NewRecord())
			rows = 0
		}
	}
	if rows > 0 {
		recs = append(recs, b.NewRecord())
	}
	return recs, nil
}

func schemaOf(ctx context.Context, rs *resultset.ResultSet) (*arrow.Schema, error) {
	meta, err := rs.Metadata()
	if err != nil {
		return nil, err
	}
	return Schema(meta, timestampUnit(ctx)), nil
}

// CountRows returns the total number of rows in recs.
func CountRows(recs []arrow.Record) (cnt int) {
	for _, r := range recs {
		cnt += int(r.NumRows())
	}
	return
}

func releaseRecords(recs []arrow.Record) {
	for _, r := range recs {
		r.Release()
	}
}
