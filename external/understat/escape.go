package understat

import (
	"strconv"
	"unicode/utf8"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
)

// decodeJSString undoes the escaping of a single-quoted JavaScript string
// literal. Understat hex-escapes nearly every byte (\x7B, \x22, ...), so the
// \xHH sequences are taken as raw UTF-8 bytes.
func decodeJSString(s string) (string, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch != '\\' {
			_ = buf.WriteByte(ch)
			continue
		}
		if i+1 >= len(s) {
			return "", crerr.New("dangling escape at end of string")
		}
		i++
		switch s[i] {
		case 'x':
			if i+2 >= len(s) {
				return "", crerr.Newf("short \\x escape at offset %d", i-1)
			}
			v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return "", crerr.Wrapf(err, "bad \\x escape at offset %d", i-1)
			}
			_ = buf.WriteByte(byte(v))
			i += 2
		case 'u':
			if i+4 >= len(s) {
				return "", crerr.Newf("short \\u escape at offset %d", i-1)
			}
			v, err := strconv.ParseUint(s[i+1:i+5], 16, 16)
			if err != nil {
				return "", crerr.Wrapf(err, "bad \\u escape at offset %d", i-1)
			}
			var enc [utf8.UTFMax]byte
			n := utf8.EncodeRune(enc[:], rune(v))
			_, _ = buf.Write(enc[:n])
			i += 4
		case 'n':
			_ = buf.WriteByte('\n')
		case 't':
			_ = buf.WriteByte('\t')
		case 'r':
			_ = buf.WriteByte('\r')
		case 'b':
			_ = buf.WriteByte('\b')
		case 'f':
			_ = buf.WriteByte('\f')
		case '0':
			_ = buf.WriteByte(0)
		default:
			_ = buf.WriteByte(s[i])
		}
	}

	return buf.String(), nil
}
