package tui

import (
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"lobstertawar/internal/catalog"
	"lobstertawar/internal/dto"
	"lobstertawar/internal/infrastructure/backend"
	"lobstertawar/internal/inquiry"
	"lobstertawar/internal/testutil"
)

func newTestApp(t *testing.T) (*App, *testutil.Backend) {
	t.Helper()

	fake := testutil.NewBackend(t)
	client := backend.NewClient(fake.Config(), zap.NewNop())
	app := NewApp(
		catalog.NewLoader(client, zap.NewNop()),
		inquiry.NewSubmitter(client, zap.NewNop()),
		"Lobster Tawar",
		zap.NewNop(),
	)
	return app, fake
}

// runCmd executes a single command and feeds its message back into the model.
func runCmd(t *testing.T, app *App, cmd tea.Cmd) *App {
	t.Helper()
	require.NotNil(t, cmd)

	model, _ := app.Update(cmd())
	next, ok := model.(*App)
	require.True(t, ok, "unexpected model type: %T", model)
	return next
}

func press(app *App, key string) (*App, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	model, cmd := app.Update(msg)
	return model.(*App), cmd
}

func typeText(app *App, text string) *App {
	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return model.(*App)
}

func ptr[T any](v T) *T { return &v }

func TestApp_ShowsLoadingBeforeFirstLoad(t *testing.T) {
	app, _ := newTestApp(t)

	assert.Contains(t, app.View(), "Memuat produk...")
}

func TestApp_LoadRendersProducts(t *testing.T) {
	app, fake := newTestApp(t)
	fake.SetProducts(dto.ProductDTO{
		ID:         "1",
		Name:       "Lobster Air Tawar Hidup",
		Grade:      ptr("A"),
		PricePerKg: 280000,
		StockKg:    ptr(50.0),
	})

	app = runCmd(t, app, app.loadCmd())

	view := app.View()
	assert.NotContains(t, view, "Memuat produk...")
	assert.Contains(t, view, "Lobster Air Tawar Hidup")
	assert.Contains(t, view, "Grade A")
	assert.Contains(t, view, "Rp 280.000 / kg")
	assert.Contains(t, view, "Lobster segar siap kirim.")
}

func TestApp_EmptyAndErrorStates(t *testing.T) {
	app, fake := newTestApp(t)

	app = runCmd(t, app, app.loadCmd())
	assert.Contains(t, app.View(), "Belum ada produk.")

	fake.FailList(http.StatusInternalServerError)
	app, cmd := press(app, "r")
	assert.True(t, app.catalogState.Loading)
	app = runCmd(t, app, cmd)

	assert.Contains(t, app.View(), catalog.MsgLoadFailed)
}

func TestApp_SeedKey(t *testing.T) {
	app, fake := newTestApp(t)
	app = runCmd(t, app, app.loadCmd())

	app, cmd := press(app, "s")
	assert.Contains(t, app.View(), "Menambahkan...")

	app = runCmd(t, app, cmd)

	assert.Len(t, fake.Products(), 3)
	view := app.View()
	assert.Contains(t, view, "Lobster Beku (Frozen)")
	assert.Contains(t, view, "[s] Tambah Contoh")
}

func TestApp_FocusCycles(t *testing.T) {
	app, _ := newTestApp(t)
	require.Equal(t, focusCatalog, app.focus)

	app, _ = press(app, "tab")
	assert.Equal(t, 0, app.focus)

	app, _ = press(app, "shift+tab")
	assert.Equal(t, focusCatalog, app.focus)

	app, _ = press(app, "shift+tab")
	assert.Equal(t, len(app.inputs)-1, app.focus)

	app, _ = press(app, "esc")
	assert.Equal(t, focusCatalog, app.focus)
}

func TestApp_QuitOnlyFromCatalog(t *testing.T) {
	app, _ := newTestApp(t)

	app, _ = press(app, "tab")
	app = typeText(app, "q")
	assert.Equal(t, "q", app.inputs[0].Value())

	app, _ = press(app, "esc")
	_, cmd := press(app, "q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_SubmitInquiry(t *testing.T) {
	app, fake := newTestApp(t)

	app, _ = press(app, "tab")
	app = typeText(app, "Budi")
	app, _ = press(app, "tab")
	app = typeText(app, "0812")
	for i := 0; i < 3; i++ {
		app, _ = press(app, "tab")
	}
	app = typeText(app, "2.5")

	app, cmd := press(app, "enter")
	assert.Contains(t, app.View(), "Mengirim...")
	app = runCmd(t, app, cmd)

	inquiries := fake.Inquiries()
	require.Len(t, inquiries, 1)
	assert.Equal(t, "Budi", inquiries[0].Name)
	assert.Equal(t, "0812", inquiries[0].Phone)
	require.NotNil(t, inquiries[0].QuantityKg)
	assert.Equal(t, 2.5, *inquiries[0].QuantityKg)

	assert.Contains(t, app.View(), inquiry.MsgSubmitted)
	for _, in := range app.inputs {
		assert.Empty(t, in.Value())
	}
}

func TestApp_SubmitFailureKeepsInputs(t *testing.T) {
	app, fake := newTestApp(t)
	fake.FailInquiry(http.StatusInternalServerError)

	app, _ = press(app, "tab")
	app = typeText(app, "Budi")
	app, _ = press(app, "tab")
	app = typeText(app, "0812")

	app, cmd := press(app, "enter")
	app = runCmd(t, app, cmd)

	assert.Contains(t, app.View(), inquiry.MsgSubmitFailed)
	assert.Equal(t, "Budi", app.inputs[0].Value())
	assert.Equal(t, "0812", app.inputs[1].Value())
}

func TestApp_SubmitMissingRequiredShowsNotice(t *testing.T) {
	app, fake := newTestApp(t)

	app, _ = press(app, "tab")
	app = typeText(app, "Budi")

	app, cmd := press(app, "enter")
	app = runCmd(t, app, cmd)

	assert.Contains(t, app.View(), "Lengkapi: No. WhatsApp")
	assert.Empty(t, fake.Requests())
	assert.Equal(t, "Budi", app.inputs[0].Value())
}

func TestApp_SecondEnterWhileSubmittingIsIgnored(t *testing.T) {
	app, fake := newTestApp(t)

	app, _ = press(app, "tab")
	app = typeText(app, "Budi")
	app, _ = press(app, "tab")
	app = typeText(app, "0812")

	app, first := press(app, "enter")
	require.NotNil(t, first)

	app = typeText(app, "9")
	app, second := press(app, "enter")
	assert.Nil(t, second)
	assert.Equal(t, "0812", app.submitter.(*inquiry.Submitter).Form().Phone)

	app = runCmd(t, app, first)

	inquiries := fake.Inquiries()
	require.Len(t, inquiries, 1)
	assert.Equal(t, "0812", inquiries[0].Phone)
	assert.Contains(t, app.View(), inquiry.MsgSubmitted)
}
