// Package trie cài đặt prefix tree theo token cho một cấp hành chính.
// Trie build một lần từ gazetteer rồi chỉ đọc, nhiều goroutine có thể
// query đồng thời không cần lock.
package trie

import (
	"sort"
	"strings"
)

// DefaultMaxSpan giới hạn độ dài span khi scan. Tên đơn vị hành chính
// thực tế không vượt quá 6 token.
const DefaultMaxSpan = 6

// node một nút của trie; terminal khi ids không rỗng. Nhiều phường trùng
// tên chuẩn hóa là chuyện thường nên terminal giữ danh sách id, việc
// phân định nhường cho hierarchy validator.
type node struct {
	children map[string]*node
	ids      []int
}

func newNode() *node {
	return &node{children: make(map[string]*node)}
}

// Trie prefix tree theo token cho một cấp hành chính
type Trie struct {
	root    *node
	size    int
	maxSpan int
}

// Entry một cặp (tên chuẩn hóa, entity id) để build trie
type Entry struct {
	Name string
	ID   int
}

// New tạo trie rỗng với span cap mặc định.
func New() *Trie {
	return &Trie{root: newNode(), maxSpan: DefaultMaxSpan}
}

// Build tạo trie từ danh sách entry.
func Build(entries []Entry) *Trie {
	t := New()
	for _, e := range entries {
		t.Insert(e.Name, e.ID)
	}
	return t
}

// SetMaxSpan đổi span cap (chỉ dùng lúc khởi tạo, trước khi query).
func (t *Trie) SetMaxSpan(n int) {
	if n > 0 {
		t.maxSpan = n
	}
}

// Insert thêm một tên chuẩn hóa (token cách nhau một dấu cách) trỏ tới id.
// O(số token của tên).
func (t *Trie) Insert(normalizedName string, id int) {
	tokens := strings.Fields(normalizedName)
	if len(tokens) == 0 {
		return
	}
	t.InsertTokens(tokens, id)
}

// InsertTokens như Insert nhưng nhận token đã tách sẵn.
func (t *Trie) InsertTokens(tokens []string, id int) {
	if len(tokens) == 0 {
		return
	}
	n := t.root
	for _, tok := range tokens {
		child, ok := n.children[tok]
		if !ok {
			child = newNode()
			n.children[tok] = child
		}
		n = child
	}
	if len(n.ids) == 0 {
		t.size++
	}
	n.ids = append(n.ids, id)
}

// LookupExact trả về danh sách id tại đúng chuỗi token đã cho, nil nếu
// không có tên nào kết thúc tại đó.
func (t *Trie) LookupExact(tokens []string) []int {
	n := t.root
	for _, tok := range tokens {
		child, ok := n.children[tok]
		if !ok {
			return nil
		}
		n = child
	}
	if len(n.ids) == 0 {
		return nil
	}
	return n.ids
}

// Span một lần xuất hiện của tên đã index trong chuỗi token input.
// End exclusive: tokens[Start:End] là đoạn khớp.
type Span struct {
	IDs   []int
	Start int
	End   int
}

// Len số token của span.
func (s Span) Len() int { return s.End - s.Start }

// Scan tìm mọi lần xuất hiện của tên đã index dưới dạng dãy token liên tiếp
// trong input, span tối đa maxSpan token. Với mỗi vị trí bắt đầu, đi theo
// cạnh trie đến khi hết cạnh khớp thì dừng sớm (trie early-abort), chi phí
// trung bình thấp hơn nhiều so với O(n²) lý thuyết vì tên địa danh ngắn.
//
// Kết quả đã xếp theo luật tie-break: span dài hơn trước, cùng độ dài thì
// vị trí bắt đầu bên phải trước (tên tỉnh thường nằm cuối chuỗi).
func (t *Trie) Scan(tokens []string) []Span {
	var spans []Span
	for start := 0; start < len(tokens); start++ {
		n := t.root
		limit := start + t.maxSpan
		if limit > len(tokens) {
			limit = len(tokens)
		}
		for end := start; end < limit; end++ {
			child, ok := n.children[tokens[end]]
			if !ok {
				break
			}
			n = child
			if len(n.ids) > 0 {
				spans = append(spans, Span{IDs: n.ids, Start: start, End: end + 1})
			}
		}
	}

	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Len() != spans[j].Len() {
			return spans[i].Len() > spans[j].Len()
		}
		return spans[i].Start > spans[j].Start
	})
	return spans
}

// Len số tên distinct đã insert.
func (t *Trie) Len() int { return t.size }
