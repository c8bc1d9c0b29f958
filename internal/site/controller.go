package site

import (
	"bytes"
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lobstertawar/internal/domain"
	"lobstertawar/internal/dto"
	apperrors "lobstertawar/internal/errors"
	"lobstertawar/internal/infrastructure/backend"
)

type CatalogLoader interface {
	Load(ctx context.Context) error
	SeedSamples(ctx context.Context) error
	Snapshot() domain.CatalogState
}

type InquirySubmitter interface {
	SetForm(form domain.InquiryForm)
	Submit(ctx context.Context) error
	Snapshot() domain.InquiryState
}

// Controller renders the storefront page. Every request gets its own catalog
// loader and inquiry submitter, since each page load holds its own copy of
// the catalog. Only seeding is shared, so that one seed run at a time is
// allowed across all visitors.
type Controller struct {
	newCatalog   func() CatalogLoader
	seeder       CatalogLoader
	newSubmitter func() InquirySubmitter
	page         *template.Template
	siteName     string
	statusURL    string
	now          func() time.Time
	logger       *zap.Logger
}

func NewController(
	newCatalog func() CatalogLoader,
	seeder CatalogLoader,
	newSubmitter func() InquirySubmitter,
	siteName string,
	statusURL string,
	logger *zap.Logger,
) *Controller {
	return &Controller{
		newCatalog:   newCatalog,
		seeder:       seeder,
		newSubmitter: newSubmitter,
		page:         pageTemplate,
		siteName:     siteName,
		statusURL:    statusURL,
		now:          time.Now,
		logger:       logger,
	}
}

type pageData struct {
	SiteName   string
	Year       int
	StatusURL  string
	Catalog    domain.CatalogState
	Inquiry    domain.InquiryState
	FormErrors map[string]string
}

func (c *Controller) HandleIndex(w http.ResponseWriter, r *http.Request) {
	ctx, logger := c.trace(r)

	c.render(w, http.StatusOK, c.newPageData(c.loadCatalog(ctx, logger), domain.InquiryState{}), logger)
}

func (c *Controller) HandleSeed(w http.ResponseWriter, r *http.Request) {
	ctx, logger := c.trace(r)

	err := c.seeder.SeedSamples(ctx)
	if _, ok := apperrors.IsConflictError(err); ok {
		logger.Info("seed request ignored, seeding in progress")
		c.render(w, http.StatusOK, c.newPageData(c.loadCatalog(ctx, logger), domain.InquiryState{}), logger)
		return
	}
	if err != nil {
		logger.Warn("seeding samples failed", zap.Error(err))
	}

	c.render(w, http.StatusOK, c.newPageData(c.seeder.Snapshot(), domain.InquiryState{}), logger)
}

func (c *Controller) HandleInquiry(w http.ResponseWriter, r *http.Request) {
	ctx, logger := c.trace(r)

	if err := r.ParseForm(); err != nil {
		logger.Warn("invalid form body", zap.Error(err))
		c.render(w, http.StatusBadRequest, c.newPageData(c.loadCatalog(ctx, logger), domain.InquiryState{}), logger)
		return
	}

	var form domain.InquiryForm
	for _, field := range domain.Fields() {
		form.Set(field, r.PostForm.Get(string(field)))
	}

	submitter := c.newSubmitter()
	submitter.SetForm(form)

	status := http.StatusOK
	var formErrors map[string]string

	if err := submitter.Submit(ctx); err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			status = http.StatusUnprocessableEntity
			formErrors = make(map[string]string, len(ve.Details))
			for _, d := range ve.Details {
				formErrors[d.Field] = d.Message
			}
		} else {
			status = http.StatusBadGateway
		}
		logger.Warn("inquiry not accepted", zap.Error(err))
	}

	data := c.newPageData(c.loadCatalog(ctx, logger), submitter.Snapshot())
	data.FormErrors = formErrors
	c.render(w, status, data, logger)
}

func (c *Controller) HandleState(w http.ResponseWriter, r *http.Request) {
	ctx, logger := c.trace(r)
	c.writeJSON(w, http.StatusOK, dto.CatalogStateFromDomain(c.loadCatalog(ctx, logger)), logger)
}

func (c *Controller) HandleHealth(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, c.logger)
}

func (c *Controller) trace(r *http.Request) (context.Context, *zap.Logger) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))
	return backend.WithRequestID(r.Context(), traceID), logger
}

// loadCatalog fetches a fresh copy of the catalog for this request and marks
// it as seeding while a seed run is in progress elsewhere.
func (c *Controller) loadCatalog(ctx context.Context, logger *zap.Logger) domain.CatalogState {
	loader := c.newCatalog()
	if err := loader.Load(ctx); err != nil {
		logger.Warn("catalog load failed while rendering page", zap.Error(err))
	}

	state := loader.Snapshot()
	state.Seeding = c.seeder.Snapshot().Seeding
	return state
}

func (c *Controller) newPageData(cat domain.CatalogState, inq domain.InquiryState) pageData {
	return pageData{
		SiteName:  c.siteName,
		Year:      c.now().Year(),
		StatusURL: c.statusURL,
		Catalog:   cat,
		Inquiry:   inq,
	}
}

func (c *Controller) render(w http.ResponseWriter, status int, data pageData, logger *zap.Logger) {
	var buf bytes.Buffer
	if err := c.page.Execute(&buf, data); err != nil {
		ierr := apperrors.NewInternalError("failed to render page", err)
		logger.Error(ierr.Message, zap.Error(ierr))
		http.Error(w, "Terjadi kesalahan", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		logger.Error("failed to write page", zap.Error(err))
	}
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}
