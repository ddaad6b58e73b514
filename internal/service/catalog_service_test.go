package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/domain"
)

type fakeReasonRepo struct {
	rejection    []string
	cancellation []string
}

func (r *fakeReasonRepo) ListRejectionReasons(context.Context) ([]string, error) {
	return r.rejection, nil
}

func (r *fakeReasonRepo) ListCancellationReasons(context.Context) ([]string, error) {
	return r.cancellation, nil
}

func newCatalogEnv(t *testing.T) *CatalogService {
	t.Helper()
	store := newMemStore()
	store.catalog[catalogKey(domain.RoleEmployee, accessMotive)] = &domain.CatalogEntry{
		Role:            domain.RoleEmployee,
		TicketType:      "Access Request",
		Submotive:       "New system access",
		MotiveSubmotive: accessMotive,
	}
	return NewCatalogService(CatalogDependencies{
		CatalogRepo: &fakeCatalogRepo{store: store},
		ReasonRepo: &fakeReasonRepo{
			rejection:    []string{"Duplicate request", "Policy violation"},
			cancellation: []string{"Opened by mistake"},
		},
	})
}

func TestListForRoleWithoutCache(t *testing.T) {
	svc := newCatalogEnv(t)

	entries, err := svc.ListForRole(context.Background(), domain.RoleEmployee)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, accessMotive, entries[0].MotiveSubmotive)

	empty, err := svc.ListForRole(context.Background(), domain.RoleAdmin)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReasonLists(t *testing.T) {
	svc := newCatalogEnv(t)

	rejection, err := svc.RejectionReasons(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Duplicate request", "Policy violation"}, rejection)

	cancellation, err := svc.CancellationReasons(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Opened by mistake"}, cancellation)
}
