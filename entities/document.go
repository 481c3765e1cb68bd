package entities

import "time"

type Document struct {
	DocID     uint      `gorm:"primaryKey" json:"doc_id"`
	Tenant    string    `gorm:"index" json:"tenant"`
	Name      string    `gorm:"index" json:"name"`
	SizeBytes int64     `json:"size_bytes"`
	Preview   string    `json:"preview"`
	CreatedAt time.Time `json:"created_at"`
}
