// SPDX-License-Identifier: MIT
package cli

import (
	"fmt"

	"github.com/katalvlaran/relboost/ingest"
)

// codecFor resolves a config string into an ingest.Codec.
func codecFor(s string) (ingest.Codec, error) {
	switch s {
	case "snappy", "":
		return ingest.Snappy, nil
	case "gzip":
		return ingest.Gzip, nil
	case "brotli":
		return ingest.Brotli, nil
	case "lz4":
		return ingest.Lz4, nil
	case "zstd":
		return ingest.Zstd, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidCodec, s)
	}
}
