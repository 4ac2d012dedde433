package source

import (
	"mime"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// toUTF8 returns data as valid UTF-8. Valid input is returned unchanged;
// otherwise the charset named in contentType is used, falling back to
// Windows-1252, the usual encoding of legacy legal text.
func toUTF8(data []byte, contentType string) []byte {
	if utf8.Valid(data) {
		return data
	}

	var enc encoding.Encoding = charmap.Windows1252
	if label := charsetLabel(contentType); label != "" {
		if e, _ := charset.Lookup(label); e != nil {
			enc = e
		}
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return []byte(strings.ToValidUTF8(string(data), "�"))
	}
	if !utf8.Valid(decoded) {
		return []byte(strings.ToValidUTF8(string(decoded), "�"))
	}
	return decoded
}

func charsetLabel(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}
