package models

// Level cấp hành chính trong gazetteer
type Level int

const (
	LevelProvince Level = 1
	LevelDistrict Level = 2
	LevelWard     Level = 3
)

// String trả về tên cấp cho log và API response.
func (l Level) String() string {
	switch l {
	case LevelProvince:
		return "province"
	case LevelDistrict:
		return "district"
	case LevelWard:
		return "ward"
	default:
		return "unknown"
	}
}

// IsValid kiểm tra level có hợp lệ không
func (l Level) IsValid() bool {
	return l >= LevelProvince && l <= LevelWard
}

// GeoEntity đại diện cho một đơn vị hành chính (tỉnh, quận/huyện, phường/xã).
// Bất biến sau khi load; dùng chung giữa mọi request, không ai mutate.
type GeoEntity struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`            // Tên hiển thị, giữ nguyên dấu
	NormalizedName string `json:"normalized_name"` // Tên chuẩn hóa, bỏ prefix hành chính
	Level          Level  `json:"level"`
	ParentID       int    `json:"parent_id,omitempty"` // 0 với cấp tỉnh
}

// Ref tạo EntityRef từ entity cho payload trả về.
func (e *GeoEntity) Ref() *EntityRef {
	if e == nil {
		return nil
	}
	return &EntityRef{ID: e.ID, Name: e.Name, Level: e.Level.String()}
}

// EntityRef tham chiếu gọn tới một entity trong kết quả phân loại
type EntityRef struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Level string `json:"level"`
}
