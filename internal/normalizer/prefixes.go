package normalizer

// adminPrefixMap ánh xạ các biến thể viết tắt của đơn vị hành chính về dạng
// chuẩn. Giá trị có thể gồm nhiều token ("tp" -> "thanh pho"). Token nội dung
// đứng sau prefix được giữ nguyên, không bao giờ bị xóa.
var adminPrefixMap = map[string]string{
	// thành phố
	"tp":       "thanh pho",
	"tpho":     "thanh pho",
	"thanhpho": "thanh pho",

	// tỉnh
	"t": "tinh",

	// quận / huyện
	"q": "quan",
	"h": "huyen",

	// thị xã / thị trấn
	"tx":      "thi xa",
	"thixa":   "thi xa",
	"tt":      "thi tran",
	"thitran": "thi tran",

	// phường / xã
	"p":  "phuong",
	"f":  "phuong",
	"ph": "phuong",
	"x":  "xa",
}

// prefixSequences liệt kê các prefix hành chính ở dạng chuẩn, chuỗi dài
// đứng trước để so khớp tham lam ("thanh pho" trước "pho" đơn lẻ không tồn tại).
var prefixSequences = [][]string{
	{"thanh", "pho"},
	{"thi", "xa"},
	{"thi", "tran"},
	{"tinh"},
	{"quan"},
	{"huyen"},
	{"phuong"},
	{"xa"},
}

// matchPrefixAt trả về độ dài prefix hành chính bắt đầu tại tokens[i],
// 0 nếu không có. Chỉ nhận prefix khi còn token nội dung phía sau.
func matchPrefixAt(tokens []string, i int) int {
	for _, seq := range prefixSequences {
		if i+len(seq) >= len(tokens) {
			continue
		}
		ok := true
		for j, w := range seq {
			if tokens[i+j] != w {
				ok = false
				break
			}
		}
		if ok {
			return len(seq)
		}
	}
	return 0
}

// StripLeadingPrefix bỏ prefix hành chính ở đầu tên gazetteer
// ("thanh pho ho chi minh" -> "ho chi minh"). Tên không có prefix giữ nguyên;
// "thanh hoa" không bị cắt vì "thanh" đơn lẻ không phải prefix.
func StripLeadingPrefix(tokens []string) []string {
	if n := matchPrefixAt(tokens, 0); n > 0 {
		return tokens[n:]
	}
	return tokens
}

// RemovePrefixTokens loại mọi prefix hành chính khỏi chuỗi token, giữ nguyên
// thứ tự các token còn lại. Dùng khi so khớp LCS để prefix không pha loãng điểm.
func RemovePrefixTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); {
		if n := matchPrefixAt(tokens, i); n > 0 {
			i += n
			continue
		}
		out = append(out, tokens[i])
		i++
	}
	return out
}
