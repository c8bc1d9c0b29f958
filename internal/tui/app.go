// Package tui is the terminal front end of the storefront. It drives the
// catalog loader and the inquiry submitter from bubbletea's event loop:
// every backend call runs as a tea.Cmd and reports back with a message, so
// the model itself never blocks.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"lobstertawar/internal/commons"
	"lobstertawar/internal/domain"
	apperrors "lobstertawar/internal/errors"
)

type CatalogLoader interface {
	Load(ctx context.Context) error
	SeedSamples(ctx context.Context) error
	Snapshot() domain.CatalogState
}

type InquirySubmitter interface {
	SetField(field domain.Field, value string) error
	Submit(ctx context.Context) error
	Snapshot() domain.InquiryState
}

type catalogLoadedMsg struct{ err error }

type seedDoneMsg struct{ err error }

type submitDoneMsg struct{ err error }

// focusCatalog is the product pane; focus values above it index into inputs.
const focusCatalog = -1

var fieldLabels = map[domain.Field]string{
	domain.FieldName:       "Nama",
	domain.FieldPhone:      "No. WhatsApp",
	domain.FieldEmail:      "Email (opsional)",
	domain.FieldProductID:  "ID Produk (opsional)",
	domain.FieldQuantityKg: "Perkiraan Qty (kg)",
	domain.FieldMessage:    "Pesan",
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563EB"))
	headingStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	gradeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#047857")).Bold(true)
	priceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	focusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true)
	boxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

// App is the bubbletea model.
type App struct {
	catalog   CatalogLoader
	submitter InquirySubmitter
	logger    *zap.Logger
	siteName  string

	spinner spinner.Model
	inputs  []textinput.Model
	fields  []domain.Field
	focus   int

	catalogState domain.CatalogState
	inquiryState domain.InquiryState
	loadedOnce   bool
	notice       string
	width        int
}

func NewApp(catalog CatalogLoader, submitter InquirySubmitter, siteName string, logger *zap.Logger) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	fields := domain.Fields()
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Placeholder = fieldLabels[f]
		in.Prompt = ""
		in.CharLimit = 500
		inputs[i] = in
	}

	return &App{
		catalog:   catalog,
		submitter: submitter,
		logger:    logger,
		siteName:  siteName,
		spinner:   sp,
		inputs:    inputs,
		fields:    fields,
		focus:     focusCatalog,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadCmd())
}

func (a *App) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{err: a.catalog.Load(context.Background())}
	}
}

func (a *App) seedCmd() tea.Cmd {
	return func() tea.Msg {
		return seedDoneMsg{err: a.catalog.SeedSamples(context.Background())}
	}
}

func (a *App) submitCmd() tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{err: a.submitter.Submit(context.Background())}
	}
}

func (a *App) refresh() {
	a.catalogState = a.catalog.Snapshot()
	a.inquiryState = a.submitter.Snapshot()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		a.refresh()
		return a, cmd

	case catalogLoadedMsg:
		a.loadedOnce = true
		a.refresh()
		return a, nil

	case seedDoneMsg:
		a.loadedOnce = true
		if _, ok := apperrors.IsConflictError(msg.err); ok {
			a.logger.Debug("seed ignored, already seeding")
		}
		a.refresh()
		return a, nil

	case submitDoneMsg:
		a.handleSubmitDone(msg.err)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a *App) handleSubmitDone(err error) {
	a.refresh()
	a.notice = ""

	if ve, ok := apperrors.IsValidationError(err); ok {
		missing := make([]string, 0, len(ve.Details))
		for _, d := range ve.Details {
			missing = append(missing, fieldLabels[domain.Field(d.Field)])
		}
		a.notice = "Lengkapi: " + strings.Join(missing, ", ")
	}

	// the submitter resets its form on success; mirror whatever it holds now
	form := a.inquiryState.Form
	for i, f := range a.fields {
		if form.IsEmpty() {
			a.inputs[i].Reset()
			continue
		}
		a.inputs[i].SetValue(form.Get(f))
	}
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return a, tea.Quit
	case "tab", "down":
		a.moveFocus(1)
		return a, nil
	case "shift+tab", "up":
		a.moveFocus(-1)
		return a, nil
	}

	if a.focus == focusCatalog {
		switch msg.String() {
		case "q":
			return a, tea.Quit
		case "r":
			a.refresh()
			a.catalogState.Loading = true
			return a, a.loadCmd()
		case "s":
			if a.catalog.Snapshot().Seeding {
				return a, nil
			}
			a.refresh()
			a.catalogState.Seeding = true
			return a, a.seedCmd()
		}
		return a, nil
	}

	switch msg.String() {
	case "esc":
		a.setFocus(focusCatalog)
		return a, nil
	case "enter":
		if a.inquiryState.Submitting || a.submitter.Snapshot().Submitting {
			return a, nil
		}
		for i, f := range a.fields {
			if err := a.submitter.SetField(f, a.inputs[i].Value()); err != nil {
				a.logger.Error("form field rejected", zap.String("field", string(f)), zap.Error(err))
			}
		}
		a.inquiryState.Submitting = true
		a.inquiryState.Status = ""
		a.notice = ""
		return a, a.submitCmd()
	}

	var cmd tea.Cmd
	a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	return a, cmd
}

func (a *App) moveFocus(delta int) {
	// positions: catalog, then each input
	n := len(a.inputs) + 1
	pos := (a.focus + 1 + delta + n) % n
	a.setFocus(pos - 1)
}

func (a *App) setFocus(focus int) {
	for i := range a.inputs {
		a.inputs[i].Blur()
	}
	a.focus = focus
	if focus != focusCatalog {
		a.inputs[focus].Focus()
	}
}

func (a *App) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🦞 " + a.siteName))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Lobster Air Tawar Segar & Berkualitas"))
	b.WriteString("\n")

	b.WriteString(a.viewCatalog())
	b.WriteString(a.viewForm())

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("tab pindah • r muat ulang • s tambah contoh • enter kirim • esc kembali • q keluar"))
	b.WriteString("\n")

	return b.String()
}

func (a *App) viewCatalog() string {
	var b strings.Builder

	heading := "Produk Kami"
	if a.focus == focusCatalog {
		heading = focusStyle.Render("› " + heading)
	}
	b.WriteString(headingStyle.Render(heading))
	b.WriteString("\n")

	state := a.catalogState
	switch {
	case state.Loading || !a.loadedOnce:
		b.WriteString(a.spinner.View() + " Memuat produk...")
	case state.Error != "":
		b.WriteString(errorStyle.Render(state.Error))
	case state.Empty():
		b.WriteString(mutedStyle.Render(`Belum ada produk. Tekan "s" (Tambah Contoh) untuk mengisi.`))
	default:
		lines := make([]string, 0, len(state.Products))
		for _, p := range state.Products {
			lines = append(lines, productLine(p))
		}
		box := boxStyle
		if a.width > 4 {
			box = box.Width(a.width - 4)
		}
		b.WriteString(box.Render(strings.Join(lines, "\n")))
	}
	b.WriteString("\n")

	seedLabel := "[s] Tambah Contoh"
	if state.Seeding {
		seedLabel = a.spinner.View() + " Menambahkan..."
	}
	b.WriteString(mutedStyle.Render(seedLabel))
	b.WriteString("\n")

	return b.String()
}

func productLine(p domain.Product) string {
	parts := []string{lipgloss.NewStyle().Bold(true).Render(p.Name)}
	if p.ID != "" {
		parts = append(parts, mutedStyle.Render("#"+p.ID))
	}
	if p.Grade != "" {
		parts = append(parts, gradeStyle.Render("Grade "+p.Grade))
	}
	if p.HasSize() {
		parts = append(parts, fmt.Sprintf("Size ~%s cm", commons.FormatNumber(p.SizeCm)))
	}
	if p.HasWeight() {
		parts = append(parts, fmt.Sprintf("~%s g", commons.FormatNumber(p.WeightG)))
	}
	parts = append(parts, fmt.Sprintf("Stok %s kg", commons.FormatNumber(p.StockKg)))
	parts = append(parts, priceStyle.Render(commons.FormatRupiah(p.PricePerKg)))

	return strings.Join(parts, "  ") + "\n" + mutedStyle.Render("  "+p.DisplayDescription())
}

func (a *App) viewForm() string {
	var b strings.Builder

	b.WriteString(headingStyle.Render("Hubungi Kami"))
	b.WriteString("\n")

	for i, f := range a.fields {
		label := fieldLabels[f]
		if f.Required() {
			label += " *"
		}
		if a.focus == i {
			label = focusStyle.Render("› " + label)
		} else {
			label = "  " + label
		}
		b.WriteString(fmt.Sprintf("%-28s %s\n", label, a.inputs[i].View()))
	}

	submitLabel := "[enter] Kirim Permintaan"
	if a.inquiryState.Submitting {
		submitLabel = a.spinner.View() + " Mengirim..."
	}
	b.WriteString(mutedStyle.Render(submitLabel))
	b.WriteString("\n")

	if a.notice != "" {
		b.WriteString(errorStyle.Render(a.notice))
		b.WriteString("\n")
	}
	if a.inquiryState.Status != "" {
		b.WriteString(a.inquiryState.Status)
		b.WriteString("\n")
	}

	return b.String()
}
