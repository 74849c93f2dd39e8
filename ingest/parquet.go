// SPDX-License-Identifier: MIT
package ingest

import (
	"context"
	"os"
	"strings"

	"github.com/apache/arrow/go/v17/arrow"
	"github.com/apache/arrow/go/v17/arrow/array"
	"github.com/apache/arrow/go/v17/arrow/memory"
	"github.com/apache/arrow/go/v17/parquet"
	"github.com/apache/arrow/go/v17/parquet/compress"
	"github.com/apache/arrow/go/v17/parquet/file"
	"github.com/apache/arrow/go/v17/parquet/pqarrow"

	"github.com/katalvlaran/relboost/table"
)

// Codec names a selectable Parquet compression codec (spec §6 "writes with
// selectable codec in {brotli, gzip, lz4, snappy, zstd}").
type Codec int

const (
	Snappy Codec = iota
	Gzip
	Brotli
	Lz4
	Zstd
)

func (c Codec) compression() compress.Compression {
	switch c {
	case Gzip:
		return compress.Codecs.Gzip
	case Brotli:
		return compress.Codecs.Brotli
	case Lz4:
		return compress.Codecs.Lz4
	case Zstd:
		return compress.Codecs.Zstd
	default:
		return compress.Codecs.Snappy
	}
}

// withParquetSuffix augments path with ".parquet" if absent (spec §6
// "Filename is augmented with .parquet if absent").
func withParquetSuffix(path string) string {
	if strings.HasSuffix(path, ".parquet") {
		return path
	}

	return path + ".parquet"
}

// ReadParquet reads path via Arrow and converts the resulting Arrow table
// into a *table.Table, sharing interner and resolving roles via roleOf
// (spec §6 "Parquet I/O. Reads via Arrow").
func ReadParquet(ctx context.Context, path, name string, interner *table.StringInterner, roleOf RoleOf) (*table.Table, error) {
	path = withParquetSuffix(path)

	rdr, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, &IoError{Op: "open", Path: path, Err: err}
	}
	defer rdr.Close()

	arrowReader, err := pqarrow.NewFileReader(rdr, pqarrow.ArrowReadProperties{}, memory.DefaultAllocator)
	if err != nil {
		return nil, &IoError{Op: "read", Path: path, Err: err}
	}

	arrowTable, err := arrowReader.ReadTable(ctx)
	if err != nil {
		return nil, &IoError{Op: "read", Path: path, Err: err}
	}
	defer arrowTable.Release()

	tr := array.NewTableReader(arrowTable, arrowTable.NumRows())
	defer tr.Release()

	out := table.NewTable(name, interner)
	for tr.Next() {
		rec := tr.Record()
		chunk, err := FromArrow(rec, name, interner, roleOf)
		if err != nil {
			return nil, err
		}
		out = mergeTables(out, chunk)
	}

	return out, nil
}

// mergeTables appends src's rows onto dst column-wise, used to flatten a
// multi-chunk Arrow table read into one contiguous table.Table.
func mergeTables(dst, src *table.Table) *table.Table {
	if dst.NRows() == 0 {
		return src
	}

	merged := table.NewTable(dst.Name, dst.Interner)
	for _, c := range dst.Columns() {
		sc, err := src.Column(c.Name)
		if err != nil {
			continue
		}
		mergedCol := &table.Column{Name: c.Name, Role: c.Role, Unit: c.Unit}
		switch {
		case c.Role.IsFloatBacked():
			mergedCol.Floats = append(append([]float64(nil), c.Floats...), sc.Floats...)
		case c.Role.IsCodeBacked():
			mergedCol.Codes = append(append([]int32(nil), c.Codes...), sc.Codes...)
		default:
			mergedCol.Strings = append(append([]string(nil), c.Strings...), sc.Strings...)
		}
		_ = merged.AddColumn(mergedCol)
	}

	return merged
}

// WriteParquet writes t to path using codec, via an Arrow intermediate
// representation (spec §6 "writes with selectable codec").
func WriteParquet(t *table.Table, path string, codec Codec) error {
	path = withParquetSuffix(path)

	arrowTable, err := toArrowTable(t)
	if err != nil {
		return err
	}
	defer arrowTable.Release()

	f, err := os.Create(path)
	if err != nil {
		return &IoError{Op: "create", Path: path, Err: err}
	}
	defer f.Close()

	writerProps := parquet.NewWriterProperties(parquet.WithCompression(codec.compression()))
	arrowProps := pqarrow.DefaultWriterProps()

	if err := pqarrow.WriteTable(arrowTable, f, arrowTable.NumRows(), writerProps, arrowProps); err != nil {
		return &IoError{Op: "write", Path: path, Err: err}
	}

	return nil
}

// toArrowTable builds an in-memory Arrow table mirroring t's columns
// (Floats -> arrow.PrimitiveTypes.Float64, Codes/Strings -> utf8), the
// inverse of FromArrow/convertColumn for the float/string backing stores
// table.Column actually uses.
func toArrowTable(t *table.Table) (arrow.Table, error) {
	pool := memory.DefaultAllocator

	cols := t.Columns()
	fields := make([]arrow.Field, len(cols))
	arrowCols := make([]arrow.Column, len(cols))

	for i, c := range cols {
		switch {
		case c.Role.IsFloatBacked():
			fields[i] = arrow.Field{Name: c.Name, Type: arrow.PrimitiveTypes.Float64}
			b := array.NewFloat64Builder(pool)
			b.AppendValues(c.Floats, nil)
			arr := b.NewArray()
			chunk := arrow.NewChunked(fields[i].Type, []arrow.Array{arr})
			arrowCols[i] = *arrow.NewColumn(fields[i], chunk)
			arr.Release()
			chunk.Release()
		default:
			fields[i] = arrow.Field{Name: c.Name, Type: arrow.BinaryTypes.String}
			b := array.NewStringBuilder(pool)
			if c.Role.IsCodeBacked() {
				values := make([]string, len(c.Codes))
				for i, code := range c.Codes {
					values[i] = t.Interner.Value(code)
				}
				b.AppendValues(values, nil)
			} else {
				b.AppendValues(c.Strings, nil)
			}
			arr := b.NewArray()
			chunk := arrow.NewChunked(fields[i].Type, []arrow.Array{arr})
			arrowCols[i] = *arrow.NewColumn(fields[i], chunk)
			arr.Release()
			chunk.Release()
		}
	}

	schema := arrow.NewSchema(fields, nil)

	return array.NewTable(schema, arrowCols, int64(t.NRows())), nil
}
