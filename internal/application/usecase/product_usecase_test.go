package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/inventory-panel/internal/application/dto"
	"github.com/tu-usuario/inventory-panel/internal/application/usecase"
	"github.com/tu-usuario/inventory-panel/internal/domain"
	"github.com/tu-usuario/inventory-panel/internal/domain/entity"
	"github.com/tu-usuario/inventory-panel/internal/infrastructure/backend"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake del puerto ProductAPI: cuenta llamadas para verificar que la
// validación local bloquea antes de contactar al backend.
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductAPI struct {
	calls      int
	lastCreate backend.CreateProductInput
	lastUpdate backend.UpdateProductInput
	listResult []entity.Product
}

func (f *fakeProductAPI) ListProducts(_ context.Context) ([]entity.Product, error) {
	f.calls++
	return f.listResult, nil
}

func (f *fakeProductAPI) GetProduct(_ context.Context, id string, _ int) (*entity.Product, error) {
	f.calls++
	return &entity.Product{ID: id}, nil
}

func (f *fakeProductAPI) CreateProduct(_ context.Context, in backend.CreateProductInput) (*entity.Product, error) {
	f.calls++
	f.lastCreate = in
	return &entity.Product{ID: "nuevo", Name: in.Name}, nil
}

func (f *fakeProductAPI) UpdateProduct(_ context.Context, id string, in backend.UpdateProductInput) (*entity.Product, error) {
	f.calls++
	f.lastUpdate = in
	return &entity.Product{ID: id, Name: in.Name}, nil
}

func (f *fakeProductAPI) DeleteProduct(_ context.Context, _ string) error {
	f.calls++
	return nil
}

// formularioValido es un borrador que pasa todas las validaciones locales.
func formularioValido() dto.ProductForm {
	return dto.ProductForm{
		Name:         "Taladro",
		SKU:          "TAL-001",
		Category:     "Herramientas",
		Supplier:     "ACME",
		Price:        "129.90",
		ReorderLevel: "5",
		InStock:      "12",
		Description:  "Taladro percutor 650W",
		IsActive:     true,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create: la validación local bloquea sin tocar la red
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_CampoRequeridoFaltanteBloqueaSinLlamarAPI(t *testing.T) {
	api := &fakeProductAPI{}
	uc := usecase.NewProductUseCase(api)

	form := formularioValido()
	form.Supplier = "   " // solo espacios cuenta como vacío

	_, err := uc.Create(context.Background(), form, nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "supplier")
	assert.Zero(t, api.calls, "una validación fallida no debe generar ningún request")
}

func TestCreate_PrecioNoNumericoBloquea(t *testing.T) {
	api := &fakeProductAPI{}
	uc := usecase.NewProductUseCase(api)

	form := formularioValido()
	form.Price = "doce con cincuenta"

	_, err := uc.Create(context.Background(), form, nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, api.calls)
}

func TestCreate_StockNoEnteroBloquea(t *testing.T) {
	api := &fakeProductAPI{}
	uc := usecase.NewProductUseCase(api)

	form := formularioValido()
	form.InStock = "3.5"

	_, err := uc.Create(context.Background(), form, nil)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, api.calls)
}

func TestCreate_FormularioValidoEnviaValoresParseados(t *testing.T) {
	api := &fakeProductAPI{}
	uc := usecase.NewProductUseCase(api)

	p, err := uc.Create(context.Background(), formularioValido(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Taladro", p.Name)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, "TAL-001", api.lastCreate.SKU)
	assert.Equal(t, "129.9", api.lastCreate.Price.String())
	assert.Equal(t, 5, api.lastCreate.ReorderLevel)
	assert.Equal(t, 12, api.lastCreate.InStock)
	assert.True(t, api.lastCreate.IsActive)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Create con movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_MovimientoValidoSeParsea(t *testing.T) {
	api := &fakeProductAPI{}
	uc := usecase.NewProductUseCase(api)

	movs := []dto.MovementForm{
		{Date: "2026-08-01", Type: "IN", Quantity: "10", UnitCost: "95.50", Note: "compra inicial"},
	}

	_, err := uc.Create(context.Background(), formularioValido(), movs)
	require.NoError(t, err)

	require.Len(t, api.lastCreate.Movements, 1)
	m := api.lastCreate.Movements[0]
	assert.Equal(t, "2026-08-01", m.MovementDate)
	assert.Equal(t, entity.MovementIn, m.Type)
	assert.Equal(t, 10, m.Quantity)
	require.NotNil(t, m.UnitCost)
	assert.Equal(t, "95.5", m.UnitCost.String())
	require.NotNil(t, m.Note)
	assert.Equal(t, "compra inicial", *m.Note)
}

// Filas del formulario sin fecha son filas vacías, se ignoran sin error.
func TestCreate_FilasDeMovimientoVaciasSeIgnoran(t *testing.T) {
	api := &fakeProductAPI{}
	uc := usecase.NewProductUseCase(api)

	movs := []dto.MovementForm{
		{Date: "", Type: "IN", Quantity: ""},
		{Date: "2026-08-01", Type: "OUT", Quantity: "2"},
		{Date: "", Type: "IN", Quantity: ""},
	}

	_, err := uc.Create(context.Background(), formularioValido(), movs)
	require.NoError(t, err)

	require.Len(t, api.lastCreate.Movements, 1)
	assert.Equal(t, entity.MovementOut, api.lastCreate.Movements[0].Type)
}

func TestCreate_MovimientoTipoInvalidoBloquea(t *testing.T) {
	api := &fakeProductAPI{}
	uc := usecase.NewProductUseCase(api)

	movs := []dto.MovementForm{
		{Date: "2026-08-01", Type: "TRANSFER", Quantity: "2"},
	}

	_, err := uc.Create(context.Background(), formularioValido(), movs)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, api.calls)
}

func TestCreate_MovimientoFechaInvalidaBloquea(t *testing.T) {
	api := &fakeProductAPI{}
	uc := usecase.NewProductUseCase(api)

	movs := []dto.MovementForm{
		{Date: "01/08/2026", Type: "IN", Quantity: "2"},
	}

	_, err := uc.Create(context.Background(), formularioValido(), movs)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, api.calls)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Update
// ──────────────────────────────────────────────────────────────────────────────

// Update no exige SKU: es inmutable y el formulario de edición no lo envía.
func TestUpdate_NoExigeSKU(t *testing.T) {
	api := &fakeProductAPI{}
	uc := usecase.NewProductUseCase(api)

	form := formularioValido()
	form.SKU = ""

	_, err := uc.Update(context.Background(), "p1", form)

	require.NoError(t, err)
	assert.Equal(t, 1, api.calls)
	assert.Equal(t, "Taladro", api.lastUpdate.Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Search
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_SubstringCaseInsensitive(t *testing.T) {
	uc := usecase.NewProductUseCase(&fakeProductAPI{})
	products := []entity.Product{
		{Name: "Taladro Percutor", SKU: "TAL-001", Category: "Herramientas"},
		{Name: "Pintura Blanca", SKU: "PIN-002", Category: "Pintura"},
		{Name: "Brocha", SKU: "BRO-003", Category: "Pintura"},
	}

	assert.Len(t, uc.Search(products, "taladro"), 1, "match por nombre, ignorando mayúsculas")
	assert.Len(t, uc.Search(products, "pin"), 2, "match por SKU o categoría")
	assert.Len(t, uc.Search(products, "PINTURA"), 2)
	assert.Empty(t, uc.Search(products, "tornillo"))
}

// Query vacía (o solo espacios) devuelve la lista sin filtrar.
func TestSearch_QueryVaciaDevuelveTodo(t *testing.T) {
	uc := usecase.NewProductUseCase(&fakeProductAPI{})
	products := []entity.Product{{Name: "a"}, {Name: "b"}}

	assert.Len(t, uc.Search(products, ""), 2)
	assert.Len(t, uc.Search(products, "   "), 2)
}
