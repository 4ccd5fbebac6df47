package utils

import (
	"crypto/rand"
	"fmt"
)

// GenerateUUID tạo UUID v4 cho job id
func GenerateUUID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand fail thì b toàn zero, vẫn trả về dạng hợp lệ
		_ = err
	}
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // variant RFC 4122

	return fmt.Sprintf("%x-%x-%x-%x-%x", b[0:4], b[4:6], b[6:8], b[8:10], b[10:])
}

// GenerateShortID tạo ID ngắn 8 ký tự hex
func GenerateShortID() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		_ = err
	}
	return fmt.Sprintf("%x", b)
}
