package service_test

import (
	"context"
	"testing"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/model"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toCustomerRequest(c *model.Customer) service.CustomerRequest {
	return service.CustomerRequest{
		Name:        c.Name,
		Type:        c.Type,
		Email:       c.Email,
		Phone:       c.Phone,
		City:        c.City,
		CreditLimit: c.CreditLimit,
		Address:     c.Address,
	}
}

func TestCreateCustomer(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	c, err := e.customers.CreateCustomer(ctx, "tester", service.CustomerRequest{
		Name:        "  Shree Textiles ",
		Type:        model.CustomerTypeWholesale,
		Email:       " accounts@shree.example ",
		Phone:       "+91 98765 43210",
		City:        " Surat",
		CreditLimit: d("250000"),
		Address:     "Ring Road",
	})
	require.NoError(t, err)
	assert.Equal(t, "Shree Textiles", c.Name)
	assert.Equal(t, "accounts@shree.example", c.Email)
	assert.Equal(t, "Surat", c.City)

	got, err := e.customers.GetCustomer(ctx, c.ID.String())
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.True(t, d("250000").Equal(got.CreditLimit))

	_, err = e.customers.CreateCustomer(ctx, "tester", service.CustomerRequest{
		Name: "Overdrawn", Type: model.CustomerTypeRetail, CreditLimit: d("-1"),
	})
	assert.ErrorIs(t, err, service.ErrValidation)
}

func TestListCustomers(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	for _, req := range []service.CustomerRequest{
		{Name: "Shree Textiles", Type: model.CustomerTypeWholesale, City: "Surat"},
		{Name: "Meena Fabrics", Type: model.CustomerTypeRetail, City: "Jaipur", Phone: "9876500001"},
		{Name: "Kapoor Sarees", Type: model.CustomerTypeRetail, City: "Surat"},
	} {
		_, err := e.customers.CreateCustomer(ctx, "tester", req)
		require.NoError(t, err)
	}

	tests := []struct {
		name  string
		query service.CustomerQuery
		want  []string
	}{
		{"all newest first", service.CustomerQuery{}, []string{"Kapoor Sarees", "Meena Fabrics", "Shree Textiles"}},
		{"by type", service.CustomerQuery{Type: model.CustomerTypeRetail}, []string{"Kapoor Sarees", "Meena Fabrics"}},
		{"search city", service.CustomerQuery{Search: " surat "}, []string{"Kapoor Sarees", "Shree Textiles"}},
		{"search phone", service.CustomerQuery{Search: "500001"}, []string{"Meena Fabrics"}},
		{"type and search", service.CustomerQuery{Type: model.CustomerTypeWholesale, Search: "surat"}, []string{"Shree Textiles"}},
		{"second page", service.CustomerQuery{Page: service.Page{Page: 2, Limit: 2}}, []string{"Shree Textiles"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, _, err := e.customers.ListCustomers(ctx, tt.query)
			require.NoError(t, err)
			names := make([]string, 0, len(list))
			for _, c := range list {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestUpdateCustomer(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c, err := e.customers.CreateCustomer(ctx, "tester", service.CustomerRequest{
		Name: "Meena Fabrics", Type: model.CustomerTypeRetail, City: "Jaipur", CreditLimit: d("5000"),
	})
	require.NoError(t, err)

	got, err := e.customers.GetCustomer(ctx, c.ID.String())
	require.NoError(t, err)
	same, err := e.customers.UpdateCustomer(ctx, "tester", c.ID.String(), toCustomerRequest(got))
	require.NoError(t, err)
	assert.Equal(t, got.Name, same.Name)
	assert.Equal(t, got.Type, same.Type)
	assert.Equal(t, got.City, same.City)
	assert.True(t, got.CreditLimit.Equal(same.CreditLimit))

	req := toCustomerRequest(got)
	req.Type = model.CustomerTypeWholesale
	req.CreditLimit = d("75000")
	updated, err := e.customers.UpdateCustomer(ctx, "tester", c.ID.String(), req)
	require.NoError(t, err)
	assert.Equal(t, model.CustomerTypeWholesale, updated.Type)
	assert.True(t, d("75000").Equal(updated.CreditLimit))

	req.CreditLimit = d("-10")
	_, err = e.customers.UpdateCustomer(ctx, "tester", c.ID.String(), req)
	assert.ErrorIs(t, err, service.ErrValidation)
	got, err = e.customers.GetCustomer(ctx, c.ID.String())
	require.NoError(t, err)
	assert.True(t, d("75000").Equal(got.CreditLimit), "rejected update changes nothing")

	_, err = e.customers.UpdateCustomer(ctx, "tester", "0b7d4c1e-2f3a-4e5b-8c6d-7e8f9a0b1c2d", req)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteCustomer(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	c, err := e.customers.CreateCustomer(ctx, "tester", service.CustomerRequest{Name: "Kapoor Sarees", Type: model.CustomerTypeRetail})
	require.NoError(t, err)

	require.NoError(t, e.customers.DeleteCustomer(ctx, "tester", c.ID.String()))
	_, err = e.customers.GetCustomer(ctx, c.ID.String())
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, e.customers.DeleteCustomer(ctx, "tester", c.ID.String()), service.ErrNotFound)
	assert.ErrorIs(t, e.customers.DeleteCustomer(ctx, "tester", "C-1"), service.ErrValidation)
}
