package controllerImp

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"docpal/pkg/assistant"
	"docpal/pkg/docs/service"
	"docpal/pkg/identity"
)

type DocCtrl struct {
	s   service.DocService
	log *zap.Logger
}

func New(s service.DocService, log *zap.Logger) *DocCtrl {
	return &DocCtrl{s: s, log: log}
}

func (h *DocCtrl) Ingest(c echo.Context) error {
	tenant, err := identity.Resolve(c.FormValue("email"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email is required"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No files provided"})
	}
	outcomes, pending, inputs := h.collectFiles(tenant, form.File["files"])

	if len(inputs) == 0 && len(outcomes) > 0 {
		// every part failed before staging; report them like any other
		// per-document failure
		return c.JSON(http.StatusOK, map[string]any{
			"message": "All files processed successfully!",
			"results": outcomes,
		})
	}

	results, err := h.s.Ingest(c.Request().Context(), tenant, inputs)
	switch {
	case errors.Is(err, service.ErrNoDocuments):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No files provided"})
	case errors.Is(err, assistant.ErrUnavailable):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	for i, r := range results {
		outcomes[pending[i]] = r
	}
	return c.JSON(http.StatusOK, map[string]any{
		"message": "All files processed successfully!",
		"results": outcomes,
	})
}

// collectFiles reads every uploaded part. An unreadable part becomes a
// failed outcome on the spot so it cannot abort the rest of the batch;
// readable parts are queued for ingestion, pending holding each one's slot
// in the outcome list.
func (h *DocCtrl) collectFiles(tenant string, parts []*multipart.FileHeader) ([]service.IngestOutcome, []int, []service.FileInput) {
	outcomes := make([]service.IngestOutcome, 0, len(parts))
	pending := make([]int, 0, len(parts))
	inputs := make([]service.FileInput, 0, len(parts))
	for _, fh := range parts {
		if fh.Filename == "" {
			// non-file form part; mirror the UI contract and skip it
			h.log.Debug("skipping nameless multipart entry", zap.String("tenant", tenant))
			continue
		}
		data, err := readPart(fh)
		if err != nil {
			h.log.Warn("unreadable upload",
				zap.String("tenant", tenant), zap.String("file", fh.Filename), zap.Error(err))
			outcomes = append(outcomes, service.IngestOutcome{
				File: fh.Filename, Status: "failed", Error: "failed to read uploaded file",
			})
			continue
		}
		pending = append(pending, len(outcomes))
		outcomes = append(outcomes, service.IngestOutcome{})
		inputs = append(inputs, service.FileInput{Name: fh.Filename, Data: data})
	}
	return outcomes, pending, inputs
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return io.ReadAll(src)
}

type deleteReq struct {
	Email    string `json:"email"`
	Document struct {
		Name string `json:"name"`
	} `json:"document"`
}

func (h *DocCtrl) Delete(c echo.Context) error {
	var req deleteReq
	if err := c.Bind(&req); err != nil || req.Document.Name == "" || req.Email == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "document and email are required"})
	}
	tenant, err := identity.Resolve(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email is required"})
	}

	err = h.s.Delete(c.Request().Context(), tenant, req.Document.Name)
	switch {
	case errors.Is(err, assistant.ErrFileNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, assistant.ErrUnavailable):
		return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
	case err != nil:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func (h *DocCtrl) List(c echo.Context) error {
	tenant, err := identity.Resolve(c.QueryParam("email"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email is required"})
	}
	docs, err := h.s.List(tenant)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"documents": docs})
}

func (h *DocCtrl) Reconcile(c echo.Context) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	tenant, err := identity.Resolve(req.Email)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "email is required"})
	}
	report, err := h.s.Reconcile(c.Request().Context(), tenant)
	if err != nil {
		if errors.Is(err, assistant.ErrUnavailable) {
			return c.JSON(http.StatusBadGateway, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, report)
}
