package chunk

import "errors"

var (
	ErrInvalidChunkLength = errors.New("chunk type code must be 4 bytes")
	ErrInvalidBytes       = errors.New("chunk type code must be ASCII letters")
	ErrInvalidChunkType   = errors.New("invalid chunk type")
	ErrInvalidCRC         = errors.New("crc mismatch")
	ErrTruncated          = errors.New("chunk truncated")
	ErrUtf8Decode         = errors.New("chunk data is not valid utf-8")
)
