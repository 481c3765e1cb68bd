package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"docpal/entities"
	"docpal/pkg/docs/repository"
)

type repo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.DocRepository { return &repo{db} }

func (r *repo) Upsert(d *entities.Document) error {
	var cur entities.Document
	err := r.db.Where("tenant = ? AND name = ?", d.Tenant, d.Name).First(&cur).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(d).Error
	}
	if err != nil {
		return err
	}
	cur.SizeBytes = d.SizeBytes
	cur.Preview = d.Preview
	return r.db.Save(&cur).Error
}

func (r *repo) ListByTenant(tenant string) ([]entities.Document, error) {
	var ds []entities.Document
	return ds, r.db.Where("tenant = ?", tenant).Order("name asc").Find(&ds).Error
}

func (r *repo) DeleteByName(tenant, name string) error {
	return r.db.Where("tenant = ? AND name = ?", tenant, name).Delete(&entities.Document{}).Error
}
