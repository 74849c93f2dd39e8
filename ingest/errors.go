// SPDX-License-Identifier: MIT
package ingest

import (
	"errors"
	"fmt"
)

// ErrUnsupportedArrowType is the class sentinel behind UnsupportedArrowType
// (spec §7 UnsupportedArrowType).
var ErrUnsupportedArrowType = errors.New("ingest: unsupported arrow type")

// UnsupportedArrowType reports an Arrow field whose type is not in the
// mapping table of spec §6 ("Unknown types raise UnsupportedArrowType{field,
// type_name}").
type UnsupportedArrowType struct {
	Field    string
	TypeName string
}

func (e *UnsupportedArrowType) Error() string {
	return fmt.Sprintf("ingest: field %q has unsupported arrow type %q", e.Field, e.TypeName)
}

func (e *UnsupportedArrowType) Unwrap() error { return ErrUnsupportedArrowType }

// IoError reports a failure reading or writing a Parquet file (spec §7
// IoError "file not found, disk full").
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("ingest: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }
