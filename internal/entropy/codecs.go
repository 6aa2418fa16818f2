package entropy

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Codec names a supported compressor.
type Codec string

const (
	// Gzip at best compression, matching the classic gzip.compress default.
	Gzip Codec = "gzip"
	Zlib Codec = "zlib"
	// Flate is raw DEFLATE without a container header.
	Flate Codec = "flate"
	Zstd  Codec = "zstd"
	S2    Codec = "s2"
)

// DefaultCodec is used when no codec is configured.
const DefaultCodec = Gzip

var codecs = map[Codec]func() (Compressor, error){
	Gzip: func() (Compressor, error) {
		return newStream(gzip.NewWriterLevel(io.Discard, gzip.BestCompression))
	},
	Zlib: func() (Compressor, error) {
		return newStream(zlib.NewWriterLevel(io.Discard, zlib.BestCompression))
	},
	Flate: func() (Compressor, error) {
		return newStream(flate.NewWriter(io.Discard, flate.BestCompression))
	},
	Zstd: func() (Compressor, error) {
		enc, err := zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
			zstd.WithEncoderConcurrency(1),
		)
		if err != nil {
			return nil, err
		}
		return CompressorFunc(func(src []byte) ([]byte, error) {
			return enc.EncodeAll(src, nil), nil
		}), nil
	},
	S2: func() (Compressor, error) {
		return CompressorFunc(func(src []byte) ([]byte, error) {
			return s2.EncodeBetter(nil, src), nil
		}), nil
	},
}

// New builds the compressor registered under name. An empty name selects
// DefaultCodec. Compressors keep internal state between calls; build one per
// goroutine.
func New(name string) (Compressor, error) {
	if name == "" {
		name = string(DefaultCodec)
	}
	ctor, ok := codecs[Codec(name)]
	if !ok {
		return nil, fmt.Errorf("unknown codec %q (available: %v)", name, Codecs())
	}
	c, err := ctor()
	if err != nil {
		return nil, fmt.Errorf("codec %s: %w", name, err)
	}
	return c, nil
}

// Codecs lists the registered codec names in sorted order.
func Codecs() []string {
	names := make([]string, 0, len(codecs))
	for c := range codecs {
		names = append(names, string(c))
	}
	sort.Strings(names)
	return names
}

type resetWriter interface {
	io.WriteCloser
	Reset(w io.Writer)
}

// streamCompressor reuses one stream writer across calls, so it must not be
// shared between goroutines.
type streamCompressor struct {
	w   resetWriter
	buf bytes.Buffer
}

func newStream(w resetWriter, err error) (Compressor, error) {
	if err != nil {
		return nil, err
	}
	return &streamCompressor{w: w}, nil
}

func (s *streamCompressor) Compress(src []byte) ([]byte, error) {
	s.buf.Reset()
	s.w.Reset(&s.buf)
	if _, err := s.w.Write(src); err != nil {
		return nil, err
	}
	if err := s.w.Close(); err != nil {
		return nil, err
	}
	return bytes.Clone(s.buf.Bytes()), nil
}
