package service

import (
	"context"
	"errors"

	"docpal/entities"
)

// ErrNoDocuments rejects an empty ingestion batch before any staging.
var ErrNoDocuments = errors.New("no documents provided")

type FileInput struct {
	Name string
	Data []byte
}

type IngestOutcome struct {
	File   string `json:"file"`
	Status string `json:"status"` // embedded|failed
	Error  string `json:"error,omitempty"`
}

// ReconcileReport lists documents known to one side only. Registry rows
// with no index entry are the expected leftovers of an interrupted delete;
// index entries with no registry row mean the registry write was lost.
type ReconcileReport struct {
	MissingFromIndex    []string `json:"missing_from_index"`
	MissingFromRegistry []string `json:"missing_from_registry"`
}

type DocService interface {
	// Ingest stages and submits each file independently; one file's failure
	// never aborts the batch. Outcomes come back in input order.
	Ingest(ctx context.Context, tenant string, files []FileInput) ([]IngestOutcome, error)

	// Delete removes the document from the assistant index first, then from
	// the local registry, so an interruption leaves a registry orphan (found
	// by Reconcile) rather than an index entry pointing at nothing.
	Delete(ctx context.Context, tenant, name string) error

	List(tenant string) ([]entities.Document, error)

	Reconcile(ctx context.Context, tenant string) (*ReconcileReport, error)
}
