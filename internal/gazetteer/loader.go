// Package gazetteer load danh mục đơn vị hành chính và dựng index
// cha-con cho validator. Đây là collaborator của engine: engine chỉ nhận
// dữ liệu đã nằm sẵn trong bộ nhớ, không bao giờ tự đọc file khi đang phục vụ.
package gazetteer

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"

	"github.com/address-classifier/app/models"
	"github.com/address-classifier/internal/normalizer"
	"go.uber.org/zap"
)

// Record một dòng trong file gazetteer JSON
type Record struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalized_name,omitempty"`
	Level          int    `json:"level"` // 1=province, 2=district, 3=ward
	ParentID       int    `json:"parent_id,omitempty"`
}

// Gazetteer dữ liệu danh mục đã load xong, bất biến suốt vòng đời process
type Gazetteer struct {
	Provinces []*models.GeoEntity
	Districts []*models.GeoEntity
	Wards     []*models.GeoEntity
	Hierarchy *Hierarchy
	Version   string // SHA256 của file nguồn, dùng làm thành phần cache key

	byID map[int]*models.GeoEntity
}

// Entity trả về entity theo id, nil nếu không tồn tại.
func (g *Gazetteer) Entity(id int) *models.GeoEntity {
	return g.byID[id]
}

// AtLevel trả về toàn bộ entity của một cấp.
func (g *Gazetteer) AtLevel(level models.Level) []*models.GeoEntity {
	switch level {
	case models.LevelProvince:
		return g.Provinces
	case models.LevelDistrict:
		return g.Districts
	case models.LevelWard:
		return g.Wards
	default:
		return nil
	}
}

// Load đọc file gazetteer JSON (mảng Record), chuẩn hóa tên qua normalizer
// và dựng hierarchy. Lỗi ở đây là fatal duy nhất của hệ thống, xảy ra
// trước khi phục vụ request nào.
func Load(path string, tn *normalizer.TextNormalizer, logger *zap.Logger) (*Gazetteer, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lỗi đọc file gazetteer: %w", err)
	}

	var records []Record
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("lỗi parse gazetteer JSON: %w", err)
	}

	g, err := FromRecords(records, tn)
	if err != nil {
		return nil, err
	}
	g.Version = fmt.Sprintf("%x", sha256.Sum256(b))

	logger.Info("Đã load gazetteer",
		zap.String("path", path),
		zap.Int("provinces", len(g.Provinces)),
		zap.Int("districts", len(g.Districts)),
		zap.Int("wards", len(g.Wards)),
		zap.String("version", g.Version[:12]))
	return g, nil
}

// FromRecords dựng Gazetteer từ record đã nằm trong bộ nhớ.
// Record thiếu normalized_name sẽ được chuẩn hóa từ tên hiển thị.
func FromRecords(records []Record, tn *normalizer.TextNormalizer) (*Gazetteer, error) {
	g := &Gazetteer{byID: make(map[int]*models.GeoEntity, len(records))}

	all := make([]*models.GeoEntity, 0, len(records))
	for _, r := range records {
		norm := r.NormalizedName
		if norm == "" {
			norm = tn.NormalizeName(r.Name)
		}
		if norm == "" {
			return nil, fmt.Errorf("record %d (%q): tên chuẩn hóa rỗng", r.ID, r.Name)
		}
		e := &models.GeoEntity{
			ID:             r.ID,
			Name:           r.Name,
			NormalizedName: norm,
			Level:          models.Level(r.Level),
			ParentID:       r.ParentID,
		}
		all = append(all, e)
		g.byID[e.ID] = e

		switch e.Level {
		case models.LevelProvince:
			g.Provinces = append(g.Provinces, e)
		case models.LevelDistrict:
			g.Districts = append(g.Districts, e)
		case models.LevelWard:
			g.Wards = append(g.Wards, e)
		}
	}

	h, err := BuildHierarchy(all)
	if err != nil {
		return nil, fmt.Errorf("lỗi dựng hierarchy: %w", err)
	}
	g.Hierarchy = h
	return g, nil
}
