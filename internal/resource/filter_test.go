package resource

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jmorales/shopdesk/internal/model"
)

func TestFilterSearchMatchesAnyField(t *testing.T) {
	items := []model.Customer{
		{ID: "1", Name: "Alice", Email: "alice@shop.test"},
		{ID: "2", Name: "Bob", Email: "bob@shop.test"},
	}

	got := Filter(items, "ali", nil)
	require.Len(t, got, 1)
	require.Equal(t, "Alice", got[0].Name)

	// Search also matches the email field.
	got = Filter(items, "bob@", nil)
	require.Len(t, got, 1)
	require.Equal(t, "Bob", got[0].Name)
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	items := []model.Customer{{ID: "1", Name: "Alice"}}

	require.Len(t, Filter(items, "ALICE", nil), 1)
	require.Len(t, Filter(items, "  alice ", nil), 1)
}

func TestFilterEnumDimension(t *testing.T) {
	items := []model.Customer{
		{ID: "1", Name: "Alice", Status: model.CustomerStatusActive},
		{ID: "2", Name: "Bob", Status: model.CustomerStatusInactive},
	}

	got := Filter(items, "", map[string]string{"status": model.CustomerStatusActive})
	require.Len(t, got, 1)
	require.Equal(t, "Alice", got[0].Name)
}

func TestFilterAllLeavesUnconstrained(t *testing.T) {
	items := []model.Customer{
		{ID: "1", Status: model.CustomerStatusActive},
		{ID: "2", Status: model.CustomerStatusInactive},
	}

	require.Len(t, Filter(items, "", map[string]string{"status": "all"}), 2)
	require.Len(t, Filter(items, "", map[string]string{"status": "All"}), 2)
	require.Len(t, Filter(items, "", map[string]string{"status": ""}), 2)
}

func TestFilterIntersectsSearchAndFilters(t *testing.T) {
	items := []model.Customer{
		{ID: "1", Name: "Alice Smith", Status: model.CustomerStatusActive},
		{ID: "2", Name: "Alice Jones", Status: model.CustomerStatusInactive},
		{ID: "3", Name: "Bob Smith", Status: model.CustomerStatusActive},
	}

	got := Filter(items, "alice", map[string]string{"status": model.CustomerStatusActive})
	require.Len(t, got, 1)
	require.Equal(t, "1", got[0].ID)
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	items := []model.Customer{
		{ID: "1", Name: "Alice"},
		{ID: "2", Name: "Bob"},
	}

	_ = Filter(items, "bob", nil)

	require.Equal(t, "1", items[0].ID)
	require.Equal(t, "2", items[1].ID)

	// Same inputs, same output.
	first := Filter(items, "bob", nil)
	second := Filter(items, "bob", nil)
	require.Equal(t, first, second)
}
