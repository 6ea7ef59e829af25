package suggestionstore_test

import (
	"testing"

	suggestionstore "github.com/redescolar/cartelera/internal/app/store/suggestions"
	"github.com/redescolar/cartelera/internal/testutil"
)

func TestCreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := suggestionstore.New(db)

	first, err := store.Create(ctx, "Más tiempo de descanso", "Ana Ruiz", "uid-ana")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := store.Create(ctx, "Arreglar la cancha", "Luis Gil", "uid-luis")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	items, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(items))
	}
	// Newest first.
	if items[0].ID != second.ID || items[1].ID != first.ID {
		t.Errorf("order = [%s %s], want newest first", items[0].Texto, items[1].Texto)
	}
	if items[0].UID != "uid-luis" {
		t.Errorf("uid = %q", items[0].UID)
	}
}
