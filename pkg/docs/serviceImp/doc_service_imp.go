package serviceImp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docpal/entities"
	"docpal/pkg/assistant"
	"docpal/pkg/docs/preview"
	"docpal/pkg/docs/repository"
	"docpal/pkg/docs/service"
	"docpal/pkg/provision"
)

type Svc struct {
	prov        provision.Ensurer
	repo        repository.DocRepository
	stagingRoot string // "" means the OS temp dir
	log         *zap.Logger
}

func New(p provision.Ensurer, r repository.DocRepository, stagingRoot string, log *zap.Logger) *Svc {
	return &Svc{prov: p, repo: r, stagingRoot: stagingRoot, log: log}
}

func (s *Svc) Ingest(ctx context.Context, tenant string, files []service.FileInput) ([]service.IngestOutcome, error) {
	if len(files) == 0 {
		return nil, service.ErrNoDocuments
	}
	handle, err := s.prov.Ensure(ctx, tenant)
	if err != nil {
		return nil, err
	}

	stage, err := os.MkdirTemp(s.stagingRoot, "ingest-")
	if err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(stage)

	outcomes := make([]service.IngestOutcome, 0, len(files))
	for _, f := range files {
		outcomes = append(outcomes, s.ingestOne(ctx, handle, tenant, stage, f))
	}
	return outcomes, nil
}

func (s *Svc) ingestOne(ctx context.Context, handle assistant.Handle, tenant, stage string, f service.FileInput) service.IngestOutcome {
	failed := func(err error) service.IngestOutcome {
		s.log.Warn("document ingestion failed",
			zap.String("tenant", tenant), zap.String("file", f.Name), zap.Error(err))
		return service.IngestOutcome{File: f.Name, Status: "failed", Error: err.Error()}
	}

	// uuid prefix keeps same-named files in one batch from clobbering
	// each other in the shared staging dir
	path := filepath.Join(stage, uuid.NewString()+"_"+filepath.Base(f.Name))
	if err := os.WriteFile(path, f.Data, 0o600); err != nil {
		return failed(fmt.Errorf("stage file: %w", err))
	}
	defer os.Remove(path)

	meta := map[string]string{
		"file_name":     f.Name,
		"original_name": f.Name,
	}
	if err := handle.UploadFile(ctx, path, meta); err != nil {
		return failed(err)
	}

	doc := &entities.Document{
		Tenant:    tenant,
		Name:      f.Name,
		SizeBytes: int64(len(f.Data)),
		Preview:   preview.Extract(f.Name, f.Data),
	}
	if err := s.repo.Upsert(doc); err != nil {
		// the document is already in the index; a lost registry row is
		// surfaced later by Reconcile, not by failing the upload
		s.log.Error("registry write failed",
			zap.String("tenant", tenant), zap.String("file", f.Name), zap.Error(err))
	}
	return service.IngestOutcome{File: f.Name, Status: "embedded"}
}

func (s *Svc) Delete(ctx context.Context, tenant, name string) error {
	handle, err := s.prov.Ensure(ctx, tenant)
	if err != nil {
		return err
	}
	// index first: an interrupted delete must not leave an index entry
	// whose backing document is gone
	if err := handle.DeleteFile(ctx, name); err != nil {
		return err
	}
	if err := s.repo.DeleteByName(tenant, name); err != nil {
		s.log.Error("registry delete failed after index delete",
			zap.String("tenant", tenant), zap.String("document", name), zap.Error(err))
		return fmt.Errorf("document %q removed from index, registry cleanup failed: %w", name, err)
	}
	return nil
}

func (s *Svc) List(tenant string) ([]entities.Document, error) {
	return s.repo.ListByTenant(tenant)
}

func (s *Svc) Reconcile(ctx context.Context, tenant string) (*service.ReconcileReport, error) {
	handle, err := s.prov.Ensure(ctx, tenant)
	if err != nil {
		return nil, err
	}
	indexed, err := handle.ListFiles(ctx)
	if err != nil {
		return nil, err
	}
	registered, err := s.repo.ListByTenant(tenant)
	if err != nil {
		return nil, err
	}

	inIndex := make(map[string]bool, len(indexed))
	for _, f := range indexed {
		inIndex[f.Name] = true
	}
	inRegistry := make(map[string]bool, len(registered))
	for _, d := range registered {
		inRegistry[d.Name] = true
	}

	report := &service.ReconcileReport{}
	for _, d := range registered {
		if !inIndex[d.Name] {
			report.MissingFromIndex = append(report.MissingFromIndex, d.Name)
		}
	}
	for _, f := range indexed {
		if !inRegistry[f.Name] {
			report.MissingFromRegistry = append(report.MissingFromRegistry, f.Name)
		}
	}
	sort.Strings(report.MissingFromIndex)
	sort.Strings(report.MissingFromRegistry)
	return report, nil
}
