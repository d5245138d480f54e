package service_test

import (
	"context"
	"testing"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessProfileIsSingleton(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.business.GetBusiness(ctx)
	assert.ErrorIs(t, err, service.ErrNotFound)

	created, err := e.business.CreateBusiness(ctx, "tester", service.BusinessRequest{BusinessName: " Shree Textiles ", City: "Surat"})
	require.NoError(t, err)
	assert.Equal(t, "Shree Textiles", created.BusinessName)

	_, err = e.business.CreateBusiness(ctx, "tester", service.BusinessRequest{BusinessName: "Second"})
	assert.ErrorIs(t, err, service.ErrConflict)

	updated, err := e.business.UpdateBusiness(ctx, "tester", service.BusinessRequest{BusinessName: "Shree Textiles LLP"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Shree Textiles LLP", updated.BusinessName)
}
