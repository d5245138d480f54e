package service_test

import (
	"context"
	"testing"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayStock(qty ...string) service.StockRequest {
	req := service.StockRequest{
		StockType: model.StockTypeGray,
		StockDetails: model.StockDetails{
			Gray: &model.GrayStockDetails{Product: "Cotton Poplin", Factory: "Surat Mills", Agent: "Mehta"},
		},
		AdditionalInfo: model.AdditionalInfo{BatchNumber: "B-17"},
	}
	colors := []string{"Red", "Blue", "Green"}
	for i, q := range qty {
		req.Variants = append(req.Variants, service.StockVariantRequest{Color: colors[i], Quantity: d(q)})
	}
	return req
}

func TestCreateStock(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	tests := []struct {
		name       string
		req        service.StockRequest
		total      string
		status     string
		suggestion string
	}{
		{"status defaults to suggestion", grayStock("40", "20"), "60", model.StockStatusLow, model.StockStatusLow},
		{"zero stock is out", grayStock("0"), "0", model.StockStatusOut, model.StockStatusOut},
		{"stored status is kept", func() service.StockRequest {
			r := grayStock("500")
			r.Status = model.StockStatusProcessing
			return r
		}(), "500", model.StockStatusProcessing, model.StockStatusAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := e.stock.CreateStock(ctx, "tester", tt.req)
			require.NoError(t, err)
			assert.True(t, d(tt.total).Equal(st.TotalQuantity))
			assert.Equal(t, tt.status, st.Status)
			assert.Equal(t, tt.suggestion, st.SuggestedStatus)
			assert.Equal(t, model.UnitMeters, st.Variants[0].Unit)
		})
	}
}

func TestCreateStockValidation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	mismatch := grayStock("10")
	mismatch.StockType = model.StockTypeDesign

	both := grayStock("10")
	both.StockDetails.Factory = &model.FactoryStockDetails{Product: "Cotton Poplin"}

	noProduct := grayStock("10")
	noProduct.StockDetails.Gray.Product = " "

	negative := grayStock("-1")

	for name, req := range map[string]service.StockRequest{
		"details of another type": mismatch,
		"two detail members":      both,
		"missing product":         noProduct,
		"negative quantity":       negative,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := e.stock.CreateStock(ctx, "tester", req)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}
}

func TestStockDoesNotMoveProductLedger(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	p := e.seedProduct(t, "Cotton Poplin", map[string]string{"Red": "10"})

	st, err := e.stock.CreateStock(ctx, "tester", grayStock("300"))
	require.NoError(t, err)

	update := grayStock("250", "50")
	updated, err := e.stock.UpdateStock(ctx, "tester", st.ID.String(), update)
	require.NoError(t, err)
	assert.Len(t, updated.Variants, 2)
	assert.True(t, d("300").Equal(updated.TotalQuantity))

	assert.True(t, d("10").Equal(e.variantStock(t, p.ID.String(), "Red")))

	require.NoError(t, e.stock.DeleteStock(ctx, "tester", st.ID.String()))
	_, err = e.stock.GetStock(ctx, st.ID.String())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func toStockRequest(st service.StockResponse) service.StockRequest {
	req := service.StockRequest{
		StockType:      st.StockType,
		Status:         st.Status,
		StockDetails:   st.Details,
		AdditionalInfo: st.AdditionalInfo,
	}
	for _, v := range st.Variants {
		req.Variants = append(req.Variants, service.StockVariantRequest{
			ID:       v.ID.String(),
			Color:    v.Color,
			Quantity: v.Quantity,
			Unit:     v.Unit,
		})
	}
	return req
}

func TestUpdateStockKeepsVariantIDs(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	st, err := e.stock.CreateStock(ctx, "tester", grayStock("300", "120"))
	require.NoError(t, err)
	other, err := e.stock.CreateStock(ctx, "tester", grayStock("10"))
	require.NoError(t, err)

	got, err := e.stock.GetStock(ctx, st.ID.String())
	require.NoError(t, err)
	updated, err := e.stock.UpdateStock(ctx, "tester", st.ID.String(), toStockRequest(got))
	require.NoError(t, err)
	require.Len(t, updated.Variants, 2)
	for i, v := range updated.Variants {
		assert.Equal(t, got.Variants[i].ID, v.ID, "round trip keeps %s", v.Color)
		assert.True(t, got.Variants[i].Quantity.Equal(v.Quantity))
	}
	assert.Equal(t, got.Details, updated.Details)
	assert.Equal(t, got.AdditionalInfo, updated.AdditionalInfo)

	// ids are only kept for rows of this stock
	req := toStockRequest(got)
	req.Variants[1].ID = other.Variants[0].ID.String()
	req.Variants = append(req.Variants, service.StockVariantRequest{Color: "Green", Quantity: d("5")})
	updated, err = e.stock.UpdateStock(ctx, "tester", st.ID.String(), req)
	require.NoError(t, err)
	require.Len(t, updated.Variants, 3)
	assert.Equal(t, got.Variants[0].ID, updated.Variants[0].ID)
	assert.NotEqual(t, other.Variants[0].ID, updated.Variants[1].ID)
	assert.NotEqual(t, got.Variants[1].ID, updated.Variants[1].ID, "an unlisted id is not reused")

	again, err := e.stock.GetStock(ctx, other.ID.String())
	require.NoError(t, err)
	assert.Equal(t, other.Variants[0].ID, again.Variants[0].ID)
}
