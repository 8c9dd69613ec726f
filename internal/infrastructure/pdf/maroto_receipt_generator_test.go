package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autoparts-storefront/internal/application/orders"
	"github.com/jhoicas/autoparts-storefront/internal/domain/entity"
	"github.com/jhoicas/autoparts-storefront/internal/infrastructure/pdf"
)

func TestMoney(t *testing.T) {
	assert.Equal(t, "$0", pdf.Money(decimal.Zero))
	assert.Equal(t, "$500", pdf.Money(decimal.NewFromInt(500)))
	assert.Equal(t, "$25.000", pdf.Money(decimal.NewFromInt(25000)))
	assert.Equal(t, "$1.000.000", pdf.Money(decimal.NewFromInt(1000000)))
	assert.Equal(t, "-$2.500", pdf.Money(decimal.NewFromInt(-2500)))
}

func TestGenerateReceipt_DevuelvePDF(t *testing.T) {
	g := pdf.NewMarotoReceiptGenerator("")
	out, err := g.GenerateReceipt(context.Background(), &orders.Receipt{
		Order: &entity.Order{
			ID: "42", UserID: "u1", Status: entity.OrderConfirmed,
			DeliveryAddress: "Av. Providencia 1234, Providencia, Metropolitana",
			Total:           decimal.NewFromInt(2500), CreatedAt: time.Now(),
		},
		CustomerName: "Ana Pérez",
		Items: []entity.CartItem{
			{ProductID: "1", Name: "Pastilla de freno", Quantity: 2, UnitValue: decimal.NewFromInt(1000), Total: decimal.NewFromInt(2000)},
			{ProductID: "2", Quantity: 1, UnitValue: decimal.NewFromInt(500), Total: decimal.NewFromInt(500)},
		},
		TrackingURL: "https://tienda.cl/pedidos/42",
	})
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestGenerateReceipt_SinPedido(t *testing.T) {
	_, err := pdf.NewMarotoReceiptGenerator("AutoParts").GenerateReceipt(context.Background(), &orders.Receipt{})
	assert.Error(t, err)
}
