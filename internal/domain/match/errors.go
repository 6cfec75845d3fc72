package match

import "errors"

var (
	ErrMalformedRecord     = errors.New("malformed match record")
	ErrUnknownResult       = errors.New("unknown result code")
	ErrUnparseableDatetime = errors.New("unparseable match datetime")
)
