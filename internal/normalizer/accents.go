package normalizer

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics loại bỏ dấu tiếng Việt một cách an toàn
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	out, _, _ := transform.String(t, s)
	return out
}

// isMn kiểm tra xem rune có phải là diacritic mark không
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}

// FoldASCII đưa chuỗi về ASCII thuần. NFD không tách được một số ký tự
// (đ/Đ không mang combining mark), nên các rune còn lại sau StripDiacritics
// được chuyển qua unidecode.
func FoldASCII(s string) string {
	stripped := StripDiacritics(s)

	ascii := true
	for _, r := range stripped {
		if r > unicode.MaxASCII {
			ascii = false
			break
		}
	}
	if ascii {
		return stripped
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
			continue
		}
		b.WriteString(unidecode.Unidecode(string(r)))
	}
	return b.String()
}
