package normalizer

import (
	"regexp"
	"strings"
)

// NormalizedText kết quả chuẩn hóa của một chuỗi địa chỉ
type NormalizedText struct {
	Tokens   []string `json:"tokens"`
	Original string   `json:"original"`
}

// Joined trả về các token nối bằng một dấu cách, dạng chuẩn dùng làm cache key.
func (nt NormalizedText) Joined() string {
	return strings.Join(nt.Tokens, " ")
}

// IsEmpty báo input không còn nội dung sau chuẩn hóa.
func (nt NormalizedText) IsEmpty() bool {
	return len(nt.Tokens) == 0
}

// TextNormalizer pipeline chuẩn hóa địa chỉ (precompiled patterns)
type TextNormalizer struct {
	nonAlnumPattern *regexp.Regexp
	spacePattern    *regexp.Regexp
}

// NewTextNormalizer tạo mới TextNormalizer
func NewTextNormalizer() *TextNormalizer {
	return &TextNormalizer{
		nonAlnumPattern: regexp.MustCompile(`[^a-z0-9]+`),
		spacePattern:    regexp.MustCompile(`\s+`),
	}
}

// Normalize chuẩn hóa một chuỗi địa chỉ thô theo thứ tự:
//  1. NFD + bỏ combining marks (accents.go)
//  2. fold ASCII cho các rune còn lại (đ -> d)
//  3. lowercase
//  4. gộp mọi run ký tự không phải chữ/số thành một dấu cách, trim
//  5. chuẩn hóa token prefix hành chính về dạng chuẩn, giữ token nội dung
//
// Hàm thuần: cùng input luôn cho cùng output. Input rỗng hoặc không có ký tự
// chữ/số cho Tokens rỗng, không bao giờ trả lỗi.
func (tn *TextNormalizer) Normalize(raw string) NormalizedText {
	nt := NormalizedText{Original: raw}
	if strings.TrimSpace(raw) == "" {
		return nt
	}

	working := strings.ToLower(FoldASCII(raw))
	working = tn.nonAlnumPattern.ReplaceAllString(working, " ")
	working = strings.TrimSpace(tn.spacePattern.ReplaceAllString(working, " "))
	if working == "" {
		return nt
	}

	words := strings.Fields(working)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if canonical, ok := adminPrefixMap[w]; ok {
			tokens = append(tokens, strings.Fields(canonical)...)
			continue
		}
		tokens = append(tokens, w)
	}

	nt.Tokens = tokens
	return nt
}

// NormalizeName chuẩn hóa tên hiển thị trong gazetteer thành key cho trie:
// pipeline Normalize rồi bỏ prefix hành chính ở đầu tên
// ("Thành phố Hồ Chí Minh" -> "ho chi minh").
func (tn *TextNormalizer) NormalizeName(displayName string) string {
	nt := tn.Normalize(displayName)
	if nt.IsEmpty() {
		return ""
	}
	return strings.Join(StripLeadingPrefix(nt.Tokens), " ")
}
