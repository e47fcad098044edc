package erpnext

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureServiceItem_ExistingItemIsNotRecreated(t *testing.T) {
	var creates int
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			creates++
			w.Write([]byte(`{"data":{}}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []Item{
				{Name: "SCAFFOLD-01", ItemGroup: "Products"},
				{Name: "RENTAL-SERVICE", ItemName: "Rental Service", ItemGroup: "Services"},
			},
		})
	}))

	for range 2 {
		item, err := c.EnsureServiceItem(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "RENTAL-SERVICE", item.Code)
		assert.Equal(t, "Rental Service", item.Name)
	}
	assert.Zero(t, creates)
}

func TestEnsureServiceItem_MatchesByServiceKeyword(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []Item{
				{Name: "GEN-01", ItemName: "Generator"},
				{Name: "SRV-01", ItemName: "Maintenance Service", ItemGroup: "Products"},
			},
		})
	}))

	item, err := c.EnsureServiceItem(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "SRV-01", item.Code)
}

func TestEnsureServiceItem_CreatesWhenAbsent(t *testing.T) {
	var created map[string]any
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			w.Write([]byte(`{"data":{"name":"RENTAL-SERVICE"}}`))
			return
		}
		w.Write([]byte(`{"data":[]}`))
	}))

	item, err := c.EnsureServiceItem(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "RENTAL-SERVICE", item.Code)
	require.NotNil(t, created)
	assert.Equal(t, "Services", created["item_group"])
	assert.Equal(t, "Nos", created["stock_uom"])
	assert.Equal(t, float64(0), created["is_stock_item"])
}

func TestEnsureServiceItem_CreateFailurePicksAnyItem(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"no create permission"}`))
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": []Item{{Name: "GEN-01", ItemName: "Generator"}},
		})
	}))

	item, err := c.EnsureServiceItem(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "GEN-01", item.Code)
}

func TestFindIncomeAccount_Preferences(t *testing.T) {
	accounts := []Account{
		{Name: "Cash - SND", AccountType: "Cash"},
		{Name: "Income Group - SND", AccountType: "Income", IsGroup: 1},
		{Name: "Misc Income - SND", AccountType: "Income"},
		{Name: "Sales - SND", AccountType: "Income"},
	}
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": accounts})
	}))

	assert.Equal(t, "Sales - SND", c.FindIncomeAccount(context.Background()))
}

func TestFindIncomeAccount_FallsBackOnError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	assert.Equal(t, fallbackIncomeAccount, c.FindIncomeAccount(context.Background()))
}

func TestFindTaxAccount_PrefersCompanyScopedOutputVAT(t *testing.T) {
	accounts := []Account{
		{Name: "Output VAT 15% - OTHER", AccountType: "Tax", Company: "Other Co"},
		{Name: "Input VAT - SND", AccountType: "Tax", Company: "SND"},
		{Name: "Output VAT 15% - SND", AccountType: "Tax", Company: "SND"},
	}
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": accounts})
	}))

	assert.Equal(t, "Output VAT 15% - SND", c.FindTaxAccount(context.Background(), "SND"))
}

func TestFindReceivableAccount(t *testing.T) {
	accounts := []Account{
		{Name: "Advances - SND", AccountType: "Receivable"},
		{Name: "Debtors - SND", AccountType: "Receivable"},
	}
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": accounts})
	}))

	assert.Equal(t, "Debtors - SND", c.FindReceivableAccount(context.Background()))
}

func TestFindCostCenter(t *testing.T) {
	centers := []CostCenter{{Name: "Ops - SND"}, {Name: "Main - SND"}}
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": centers})
	}))

	assert.Equal(t, "Main - SND", c.FindCostCenter(context.Background()))
}
