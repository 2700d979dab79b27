// Package csv exports fares as CSV using csvutil.
package csv

import (
	stdcsv "encoding/csv"
	"fmt"
	"io"

	"github.com/fwojciec/faretrack"
	"github.com/jszwec/csvutil"
)

// WriteFares writes fares with a "destination,price" header row.
// The header is written even when there are no fares.
func WriteFares(w io.Writer, fares []faretrack.Fare) error {
	cw := stdcsv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(faretrack.Fare{}); err != nil {
		return fmt.Errorf("encoding CSV header: %w", err)
	}
	if len(fares) > 0 {
		if err := enc.Encode(fares); err != nil {
			return fmt.Errorf("encoding fares: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadFares decodes fares written by WriteFares.
func ReadFares(r io.Reader) ([]faretrack.Fare, error) {
	dec, err := csvutil.NewDecoder(stdcsv.NewReader(r))
	if err == io.EOF {
		return []faretrack.Fare{}, nil
	}
	if err != nil {
		return nil, faretrack.Errorf(faretrack.EINVALID, "reading CSV header: %v", err)
	}

	fares := []faretrack.Fare{}
	if err := dec.Decode(&fares); err != nil && err != io.EOF {
		return nil, faretrack.Errorf(faretrack.EINVALID, "decoding fares: %v", err)
	}
	return fares, nil
}
