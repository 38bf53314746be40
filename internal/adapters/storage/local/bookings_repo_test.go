package local

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"tucing-suites-calendar/internal/domain/bookings"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groom(id string, day int) bookings.Booking {
	return bookings.Booking{
		ID:          id,
		ServiceType: bookings.ServiceGrooming,
		CatName:     "cat-" + id,
		OwnerName:   "owner",
		StartDate:   bookings.NewDate(2024, time.June, day),
	}
}

func exerciseRepo(t *testing.T, repo *BookingsRepo) {
	t.Helper()
	ctx := context.Background()

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = repo.Create(ctx, groom("a", 1))
	require.NoError(t, err)
	_, err = repo.Create(ctx, groom("b", 2))
	require.NoError(t, err)
	_, err = repo.Create(ctx, groom("a", 3))
	assert.ErrorIs(t, err, bookings.ErrAlreadyExists)

	upd := groom("a", 5)
	_, err = repo.Update(ctx, upd)
	require.NoError(t, err)
	_, err = repo.Update(ctx, groom("zzz", 5))
	assert.ErrorIs(t, err, bookings.ErrNotFound)

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-05", got.StartDate.String())

	require.NoError(t, repo.Delete(ctx, "missing"))
	require.NoError(t, repo.Delete(ctx, "b"))

	require.NoError(t, repo.Upsert(ctx, groom("c", 9)))
	require.NoError(t, repo.Upsert(ctx, groom("c", 10)))

	items, err = repo.List(ctx)
	require.NoError(t, err)
	want := []bookings.Booking{upd, groom("c", 10)}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestBookingsRepo_MemoryBlob(t *testing.T) {
	exerciseRepo(t, NewBookingsRepo(NewMemoryBlobStore(), "", nil))
}

func TestBookingsRepo_FileBlob(t *testing.T) {
	dir := t.TempDir()
	blobs, err := NewFileBlobStore(dir)
	require.NoError(t, err)

	exerciseRepo(t, NewBookingsRepo(blobs, DefaultKey, nil))
	assert.FileExists(t, filepath.Join(dir, "catBookings.json"))

	// otra instancia sobre el mismo directorio ve lo mismo
	again := NewBookingsRepo(blobs, DefaultKey, nil)
	items, err := again.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestBookingsRepo_SQLiteBlob(t *testing.T) {
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "bookings.db"))
	require.NoError(t, err)
	blobs, err := NewSQLiteBlobStore(db)
	require.NoError(t, err)

	exerciseRepo(t, NewBookingsRepo(blobs, DefaultKey, nil))
}

func TestBookingsRepo_CorruptBlobReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	blobs := NewMemoryBlobStore()
	require.NoError(t, blobs.Put(ctx, DefaultKey, []byte(`{"this is": not json`)))

	repo := NewBookingsRepo(blobs, DefaultKey, nil)
	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	// la siguiente escritura reemplaza el blob corrupto
	_, err = repo.Create(ctx, groom("fresh", 1))
	require.NoError(t, err)
	items, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestBookingsRepo_StoredFormatIsCamelCase(t *testing.T) {
	ctx := context.Background()
	blobs := NewMemoryBlobStore()
	repo := NewBookingsRepo(blobs, DefaultKey, nil)

	_, err := repo.Create(ctx, groom("a", 1))
	require.NoError(t, err)

	data, ok, err := blobs.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Contains(t, string(data), `"serviceType": "grooming"`)
	assert.Contains(t, string(data), `"startDate": "2024-06-01"`)
}

func TestFileBlobStore_RejectsPathKeys(t *testing.T) {
	blobs, err := NewFileBlobStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, blobs.Put(context.Background(), "../escape", []byte("x")))
}
