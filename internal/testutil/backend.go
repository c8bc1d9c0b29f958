package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"lobstertawar/internal/config"
	"lobstertawar/internal/dto"
)

// RecordedRequest is one call received by the fake backend.
type RecordedRequest struct {
	Method      string
	Path        string
	ContentType string
	RequestID   string
	Body        map[string]any
}

// Backend is an in-process stand-in for the storefront API. It keeps
// products in memory, records every request, and can be told to fail or to
// hold list requests until released.
type Backend struct {
	server *httptest.Server

	mu           sync.Mutex
	products     []dto.ProductDTO
	inquiries    []dto.InquiryPayload
	requests     []RecordedRequest
	nextID       int
	listStatus   int
	listBody     string
	createStatus int
	createFailOn int
	createCalls  int
	inqStatus    int
	listGate     chan struct{}
	listEntered  chan struct{}
	enteredOnce  *sync.Once
}

// NewBackend starts the fake backend and closes it when the test ends.
func NewBackend(t *testing.T) *Backend {
	t.Helper()

	b := &Backend{nextID: 1}

	r := chi.NewRouter()
	r.Get("/api/products", b.listProducts)
	r.Post("/api/products", b.createProduct)
	r.Post("/api/inquiries", b.createInquiry)

	b.server = httptest.NewServer(r)
	t.Cleanup(b.server.Close)

	return b
}

func (b *Backend) URL() string {
	return b.server.URL
}

func (b *Backend) Config() config.BackendConfig {
	return config.BackendConfig{URL: b.server.URL}
}

func (b *Backend) SetProducts(products ...dto.ProductDTO) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.products = append([]dto.ProductDTO(nil), products...)
}

func (b *Backend) Products() []dto.ProductDTO {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]dto.ProductDTO(nil), b.products...)
}

func (b *Backend) Inquiries() []dto.InquiryPayload {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]dto.InquiryPayload(nil), b.inquiries...)
}

func (b *Backend) Requests() []RecordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]RecordedRequest(nil), b.requests...)
}

// FailList makes GET /api/products answer with status.
func (b *Backend) FailList(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listStatus = status
}

// SetListBody replaces the list response body verbatim.
func (b *Backend) SetListBody(body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listBody = body
}

// FailCreateProductOn makes the n-th product creation (1-based) answer with
// status. Earlier and later creations succeed.
func (b *Backend) FailCreateProductOn(n, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.createFailOn = n
	b.createStatus = status
}

func (b *Backend) FailInquiry(status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inqStatus = status
}

// BlockList holds list requests until release is called. entered is closed
// once the first held request has arrived.
func (b *Backend) BlockList() (entered <-chan struct{}, release func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	gate := make(chan struct{})
	b.listGate = gate
	b.listEntered = make(chan struct{})
	b.enteredOnce = &sync.Once{}

	var once sync.Once
	return b.listEntered, func() {
		once.Do(func() {
			b.mu.Lock()
			b.listGate = nil
			b.mu.Unlock()
			close(gate)
		})
	}
}

func (b *Backend) record(r *http.Request) map[string]any {
	var body map[string]any
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &body)
		}
	}

	b.mu.Lock()
	b.requests = append(b.requests, RecordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get("X-Request-ID"),
		Body:        body,
	})
	b.mu.Unlock()

	return body
}

func (b *Backend) listProducts(w http.ResponseWriter, r *http.Request) {
	b.record(r)

	b.mu.Lock()
	gate, entered, once := b.listGate, b.listEntered, b.enteredOnce
	b.mu.Unlock()

	if gate != nil {
		once.Do(func() { close(entered) })
		<-gate
	}

	b.mu.Lock()
	status, raw := b.listStatus, b.listBody
	products := append([]dto.ProductDTO{}, b.products...)
	b.mu.Unlock()

	if status != 0 {
		writeJSON(w, status, map[string]string{"detail": "list failed"})
		return
	}
	if raw != "" {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, raw)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (b *Backend) createProduct(w http.ResponseWriter, r *http.Request) {
	body := b.record(r)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.createCalls++
	if b.createFailOn != 0 && b.createCalls == b.createFailOn {
		writeJSON(w, b.createStatus, map[string]string{"detail": "create failed"})
		return
	}

	var p dto.ProductDTO
	if err := remarshal(body, &p); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	p.ID = strconv.Itoa(b.nextID)
	b.nextID++
	b.products = append(b.products, p)

	writeJSON(w, http.StatusOK, p)
}

func (b *Backend) createInquiry(w http.ResponseWriter, r *http.Request) {
	body := b.record(r)

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.inqStatus != 0 {
		writeJSON(w, b.inqStatus, map[string]string{"detail": "inquiry failed"})
		return
	}

	var inq dto.InquiryPayload
	if err := remarshal(body, &inq); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": err.Error()})
		return
	}
	b.inquiries = append(b.inquiries, inq)

	writeJSON(w, http.StatusCreated, map[string]string{"id": fmt.Sprintf("inq-%d", len(b.inquiries))})
}

func remarshal(in map[string]any, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
