package matcher

import (
	"github.com/address-classifier/app/models"
	"github.com/address-classifier/internal/gazetteer"
	"github.com/address-classifier/internal/trie"
)

// Index bộ trie theo cấp: một trie tỉnh, mỗi tỉnh một trie quận/huyện,
// mỗi quận/huyện một trie phường/xã. Build một lần từ gazetteer, chỉ đọc
// khi matching.
type Index struct {
	provinces *trie.Trie
	districts map[int]*trie.Trie // key: province id
	wards     map[int]*trie.Trie // key: district id
}

// BuildIndex dựng toàn bộ trie từ gazetteer đã load.
func BuildIndex(g *gazetteer.Gazetteer, maxSpan int) *Index {
	idx := &Index{
		provinces: trie.New(),
		districts: make(map[int]*trie.Trie),
		wards:     make(map[int]*trie.Trie),
	}
	idx.provinces.SetMaxSpan(maxSpan)

	for _, p := range g.Provinces {
		idx.provinces.Insert(p.NormalizedName, p.ID)
	}
	for _, d := range g.Districts {
		t, ok := idx.districts[d.ParentID]
		if !ok {
			t = trie.New()
			t.SetMaxSpan(maxSpan)
			idx.districts[d.ParentID] = t
		}
		t.Insert(d.NormalizedName, d.ID)
	}
	for _, w := range g.Wards {
		t, ok := idx.wards[w.ParentID]
		if !ok {
			t = trie.New()
			t.SetMaxSpan(maxSpan)
			idx.wards[w.ParentID] = t
		}
		t.Insert(w.NormalizedName, w.ID)
	}
	return idx
}

// DistrictTrie trie quận/huyện của một tỉnh, nil nếu tỉnh không có con.
func (idx *Index) DistrictTrie(provinceID int) *trie.Trie { return idx.districts[provinceID] }

// WardTrie trie phường/xã của một quận/huyện.
func (idx *Index) WardTrie(districtID int) *trie.Trie { return idx.wards[districtID] }

// exactChain kết quả tier 1: các field resolve được và span đã tiêu thụ
type exactChain struct {
	province *models.GeoEntity
	district *models.GeoEntity
	ward     *models.GeoEntity
	consumed []trie.Span
}

func overlaps(s trie.Span, used []trie.Span) bool {
	for _, u := range used {
		if s.Start < u.End && u.Start < s.End {
			return true
		}
	}
	return false
}

// matchExact chạy tier 1: scan trie tỉnh, rồi với từng tỉnh ứng viên scan
// trie quận/huyện của nó, rồi trie phường/xã. Nhận chuỗi (tỉnh, huyện, xã)
// đầy đủ đầu tiên hợp lệ theo hierarchy; thiếu ward thì trả kết quả khuyết.
// Trả nil khi không tìm thấy span cấp tỉnh nào, tier 2 sẽ chạy trên toàn bộ
// chuỗi token, không phải phần còn lại.
func (c *Classifier) matchExact(tokens []string) *exactChain {
	provinceSpans := c.index.provinces.Scan(tokens)
	if len(provinceSpans) == 0 {
		return nil
	}

	var best *exactChain
	for _, ps := range provinceSpans {
		for _, pid := range ps.IDs {
			province := c.gaz.Entity(pid)
			chain := &exactChain{province: province, consumed: []trie.Span{ps}}

			dt := c.index.DistrictTrie(pid)
			if dt == nil {
				if best == nil {
					best = chain
				}
				continue
			}
			for _, ds := range dt.Scan(tokens) {
				if overlaps(ds, chain.consumed) {
					continue
				}
				for _, did := range ds.IDs {
					if !c.gaz.Hierarchy.IsValid(pid, did, 0) {
						continue
					}
					withDistrict := &exactChain{
						province: province,
						district: c.gaz.Entity(did),
						consumed: append([]trie.Span{ps}, ds),
					}

					wt := c.index.WardTrie(did)
					if wt != nil {
						for _, ws := range wt.Scan(tokens) {
							if overlaps(ws, withDistrict.consumed) {
								continue
							}
							for _, wid := range ws.IDs {
								if !c.gaz.Hierarchy.IsValid(pid, did, wid) {
									continue
								}
								// Chuỗi đầy đủ đầu tiên thắng luôn.
								withDistrict.ward = c.gaz.Entity(wid)
								withDistrict.consumed = append(withDistrict.consumed, ws)
								return withDistrict
							}
						}
					}
					if best == nil || best.district == nil {
						best = withDistrict
					}
				}
			}
			if best == nil {
				best = chain
			}
		}
	}
	return best
}
