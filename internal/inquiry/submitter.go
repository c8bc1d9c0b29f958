package inquiry

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"lobstertawar/internal/domain"
	"lobstertawar/internal/dto"
	apperrors "lobstertawar/internal/errors"
)

const (
	MsgSubmitted    = "✅ Permintaan Anda terkirim. Kami akan menghubungi melalui WhatsApp/Email."
	MsgSubmitFailed = "❌ Gagal mengirim. Coba lagi nanti."
)

type InquiryClient interface {
	CreateInquiry(ctx context.Context, payload dto.InquiryPayload) error
}

// Submitter owns the inquiry form. Status is a single slot that every
// attempt overwrites.
type Submitter struct {
	client InquiryClient
	logger *zap.Logger

	mu         sync.Mutex
	form       domain.InquiryForm
	status     string
	submitting bool
}

func NewSubmitter(client InquiryClient, logger *zap.Logger) *Submitter {
	return &Submitter{
		client: client,
		logger: logger,
	}
}

func (s *Submitter) SetField(field domain.Field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.form.Set(field, value) {
		return apperrors.NewValidationError("unknown form field", apperrors.ValidationDetail{
			Field:   string(field),
			Message: "field is not part of the inquiry form",
		})
	}
	return nil
}

func (s *Submitter) SetForm(form domain.InquiryForm) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = form
}

func (s *Submitter) Form() domain.InquiryForm {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

// Submit posts the current form once. A form missing required fields is
// rejected before anything is sent and leaves status untouched.
func (s *Submitter) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return apperrors.NewConflictError("inquiry submission already in progress")
	}

	if err := CheckRequired(s.form); err != nil {
		s.mu.Unlock()
		return err
	}

	payload, err := BuildPayload(s.form)
	if err != nil {
		s.status = MsgSubmitFailed
		s.mu.Unlock()
		s.logger.Warn("inquiry payload rejected", zap.Error(err))
		return err
	}

	s.status = ""
	s.submitting = true
	s.mu.Unlock()

	err = s.client.CreateInquiry(ctx, payload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if err != nil {
		s.status = MsgSubmitFailed
		s.logger.Error("submitting inquiry failed", zap.Error(err))
		return err
	}

	s.status = MsgSubmitted
	s.form = domain.InquiryForm{}
	s.logger.Info("inquiry submitted", zap.String("productId", payload.ProductID))
	return nil
}

func (s *Submitter) Snapshot() domain.InquiryState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.InquiryState{
		Form:       s.form,
		Status:     s.status,
		Submitting: s.submitting,
	}
}

// CheckRequired reports every required field left empty. Like an HTML
// required input, a value of only spaces counts as filled.
func CheckRequired(form domain.InquiryForm) error {
	var details []apperrors.ValidationDetail
	for _, field := range domain.Fields() {
		if field.Required() && form.Get(field) == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   string(field),
				Message: string(field) + " is required",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("required fields missing", details...)
	}
	return nil
}

// BuildPayload converts the raw form into the request body. A blank
// quantity is omitted; anything else must parse as a finite number.
func BuildPayload(form domain.InquiryForm) (dto.InquiryPayload, error) {
	payload := dto.InquiryPayload{
		Name:      form.Name,
		Phone:     form.Phone,
		Email:     form.Email,
		ProductID: form.ProductID,
		Message:   form.Message,
	}

	raw := strings.TrimSpace(form.QuantityKg)
	if raw == "" {
		return payload, nil
	}

	qty, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(qty) || math.IsInf(qty, 0) {
		return dto.InquiryPayload{}, apperrors.NewValidationError("invalid quantity", apperrors.ValidationDetail{
			Field:   string(domain.FieldQuantityKg),
			Message: "quantity_kg must be a number",
		})
	}
	payload.QuantityKg = &qty

	return payload, nil
}
