package gazetteer

import (
	"fmt"

	"github.com/address-classifier/app/models"
)

// Hierarchy index quan hệ cha-con giữa ba cấp hành chính. Build một lần từ
// gazetteer, chỉ đọc sau đó; mọi phép kiểm tra là lookup map O(1).
// Đây là nguồn chân lý duy nhất cho câu hỏi "tổ hợp này có tồn tại trên
// bản đồ không", mọi tier đều phải qua đây, không được bỏ qua.
type Hierarchy struct {
	parent   map[int]int
	children map[int][]int
	level    map[int]models.Level
}

// BuildHierarchy dựng index từ danh sách entity đã load. Trả lỗi khi gặp
// orphan (parent id không tồn tại hoặc sai cấp), fail fast lúc khởi động,
// không để dữ liệu hỏng lọt vào serving.
func BuildHierarchy(entities []*models.GeoEntity) (*Hierarchy, error) {
	h := &Hierarchy{
		parent:   make(map[int]int, len(entities)),
		children: make(map[int][]int),
		level:    make(map[int]models.Level, len(entities)),
	}

	for _, e := range entities {
		if !e.Level.IsValid() {
			return nil, fmt.Errorf("entity %d (%s): level %d không hợp lệ", e.ID, e.Name, e.Level)
		}
		if _, dup := h.level[e.ID]; dup {
			return nil, fmt.Errorf("entity id %d bị trùng", e.ID)
		}
		h.level[e.ID] = e.Level
	}

	for _, e := range entities {
		if e.Level == models.LevelProvince {
			if e.ParentID != 0 {
				return nil, fmt.Errorf("tỉnh %d (%s) không được có parent", e.ID, e.Name)
			}
			continue
		}
		parentLevel, ok := h.level[e.ParentID]
		if !ok {
			return nil, fmt.Errorf("entity %d (%s): parent %d không tồn tại", e.ID, e.Name, e.ParentID)
		}
		if parentLevel != e.Level-1 {
			return nil, fmt.Errorf("entity %d (%s): parent %d ở cấp %s, cần %s",
				e.ID, e.Name, e.ParentID, parentLevel, e.Level-1)
		}
		h.parent[e.ID] = e.ParentID
		h.children[e.ParentID] = append(h.children[e.ParentID], e.ID)
	}

	return h, nil
}

// ParentOf trả về id cha, 0 nếu là tỉnh hoặc id không tồn tại.
func (h *Hierarchy) ParentOf(id int) int {
	return h.parent[id]
}

// ChildrenOf trả về id các đơn vị con trực tiếp của parentID.
// Tier 1 và Tier 2 dùng hàm này để thu hẹp không gian tìm kiếm.
func (h *Hierarchy) ChildrenOf(parentID int) []int {
	return h.children[parentID]
}

// LevelOf trả về cấp của id, 0 nếu không tồn tại.
func (h *Hierarchy) LevelOf(id int) models.Level {
	return h.level[id]
}

// IsValid kiểm tra bộ ba (province, district, ward) có là một chuỗi
// cha-con hợp lệ không. Tham số bằng 0 là wildcard: chuỗi khuyết ward hợp lệ
// khi province/district tự nhất quán.
func (h *Hierarchy) IsValid(provinceID, districtID, wardID int) bool {
	if provinceID != 0 && h.level[provinceID] != models.LevelProvince {
		return false
	}
	if districtID != 0 && h.level[districtID] != models.LevelDistrict {
		return false
	}
	if wardID != 0 && h.level[wardID] != models.LevelWard {
		return false
	}

	if districtID != 0 && provinceID != 0 && h.parent[districtID] != provinceID {
		return false
	}
	if wardID != 0 {
		d := h.parent[wardID]
		if districtID != 0 && d != districtID {
			return false
		}
		if districtID == 0 && provinceID != 0 && h.parent[d] != provinceID {
			return false
		}
	}
	return true
}
