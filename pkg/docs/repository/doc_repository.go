package repository

import "docpal/entities"

type DocRepository interface {
	Upsert(d *entities.Document) error
	ListByTenant(tenant string) ([]entities.Document, error)
	DeleteByName(tenant, name string) error
}
