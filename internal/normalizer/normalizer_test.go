package normalizer

import (
	"strings"
	"testing"
)

func TestNormalize_Basic(t *testing.T) {
	tn := NewTextNormalizer()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Diacritics stripped",
			input:    "Hà Nội",
			expected: "ha noi",
		},
		{
			name:     "D with stroke folded",
			input:    "Đô Lương",
			expected: "do luong",
		},
		{
			name:     "Punctuation collapsed",
			input:    "  Cầu Diễn,, Nam Từ Liêm -- Hà Nội ",
			expected: "cau dien nam tu liem ha noi",
		},
		{
			name:     "Prefix abbreviations expanded",
			input:    "Xã Thịnh Sơn H. Đô Lương T. Nghệ An",
			expected: "xa thinh son huyen do luong tinh nghe an",
		},
		{
			name:     "TP and Q and P variants",
			input:    "P.2, Q.10, TP.HCM",
			expected: "phuong 2 quan 10 thanh pho hcm",
		},
		{
			name:     "Already normalized input unchanged",
			input:    "xa thinh son huyen do luong tinh nghe an",
			expected: "xa thinh son huyen do luong tinh nghe an",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tn.Normalize(tc.input)
			if got.Joined() != tc.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tc.input, got.Joined(), tc.expected)
			}
			if got.Original != tc.input {
				t.Errorf("Original should echo raw input, got %q", got.Original)
			}
		})
	}
}

func TestNormalize_EmptyAndNonText(t *testing.T) {
	tn := NewTextNormalizer()

	for _, input := range []string{"", "   ", ",,,---", "!!! ??? ..."} {
		got := tn.Normalize(input)
		if !got.IsEmpty() {
			t.Errorf("Normalize(%q) should yield empty tokens, got %v", input, got.Tokens)
		}
	}
}

// Chuẩn hóa phải idempotent: normalize(joined(normalize(x))) == normalize(x)
// cho mọi tên hiển thị trong gazetteer.
func TestNormalize_Idempotent(t *testing.T) {
	tn := NewTextNormalizer()

	displayNames := []string{
		"Tỉnh Nghệ An",
		"Huyện Đô Lương",
		"Xã Thịnh Sơn",
		"Thành phố Hồ Chí Minh",
		"Quận Nam Từ Liêm",
		"Phường Cầu Diễn",
		"Thị xã Gò Công",
		"Thị trấn Đô Lương",
		"Phường 12",
	}

	for _, name := range displayNames {
		first := tn.Normalize(name)
		second := tn.Normalize(first.Joined())
		if first.Joined() != second.Joined() {
			t.Errorf("not idempotent for %q: %q -> %q", name, first.Joined(), second.Joined())
		}
	}
}

func TestNormalizeName_StripsLeadingPrefix(t *testing.T) {
	tn := NewTextNormalizer()

	testCases := []struct {
		input    string
		expected string
	}{
		{"Tỉnh Nghệ An", "nghe an"},
		{"Thành phố Hà Nội", "ha noi"},
		{"Huyện Đô Lương", "do luong"},
		{"Quận Nam Từ Liêm", "nam tu liem"},
		{"Phường Cầu Diễn", "cau dien"},
		{"Xã Thịnh Sơn", "thinh son"},
		{"Thị xã Gò Công", "go cong"},
		// Tên không có prefix giữ nguyên; "thanh" đơn lẻ không phải prefix
		{"Thanh Hóa", "thanh hoa"},
		{"Phường 2", "2"},
	}

	for _, tc := range testCases {
		if got := tn.NormalizeName(tc.input); got != tc.expected {
			t.Errorf("NormalizeName(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestRemovePrefixTokens(t *testing.T) {
	tn := NewTextNormalizer()

	nt := tn.Normalize("Xã Thịnh Sơn Huyện Đô Lương Tỉnh Nghệ An")
	got := strings.Join(RemovePrefixTokens(nt.Tokens), " ")
	want := "thinh son do luong nghe an"
	if got != want {
		t.Errorf("RemovePrefixTokens = %q, want %q", got, want)
	}
}
