package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Charset names reported by Decode.
const (
	UTF8        = "UTF-8"
	UTF16LE     = "UTF-16LE"
	UTF16BE     = "UTF-16BE"
	Windows1252 = "windows-1252"
	ISO88599    = "ISO-8859-9"
)

// sniffLen is how much of the input is inspected before decoding starts.
const sniffLen = 4096

type bom struct {
	prefix  []byte
	charset string
	decoder encoding.Encoding // nil: strip the mark and pass through
}

var boms = []bom{
	{prefix: []byte{0xEF, 0xBB, 0xBF}, charset: UTF8},
	{prefix: []byte{0xFF, 0xFE}, charset: UTF16LE, decoder: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{prefix: []byte{0xFE, 0xFF}, charset: UTF16BE, decoder: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// detected maps chardet results to decoders for the single-byte charsets that
// show up in spreadsheet exports.
var detected = map[string]struct {
	charset string
	decoder encoding.Encoding
}{
	"ISO-8859-1":   {charset: Windows1252, decoder: charmap.Windows1252},
	"windows-1252": {charset: Windows1252, decoder: charmap.Windows1252},
	"ISO-8859-9":   {charset: ISO88599, decoder: charmap.ISO8859_9},
}

// Decode returns a UTF-8 view of r along with the charset it was read as.
// A byte order mark wins; otherwise valid UTF-8 is passed through, then
// chardet is consulted, and anything else is read as Windows-1252.
func Decode(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	head, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(head, b.prefix) {
			continue
		}

		if b.decoder == nil {
			_, _ = br.Discard(len(b.prefix))
			return br, b.charset, nil
		}

		return transform.NewReader(br, b.decoder.NewDecoder()), b.charset, nil
	}

	if utf8.Valid(head) {
		return br, UTF8, nil
	}

	if res, err := chardet.NewTextDetector().DetectBest(head); err == nil {
		if res.Charset == UTF8 {
			return br, UTF8, nil
		}

		if d, ok := detected[res.Charset]; ok {
			return transform.NewReader(br, d.decoder.NewDecoder()), d.charset, nil
		}
	}

	return transform.NewReader(br, charmap.Windows1252.NewDecoder()), Windows1252, nil
}
