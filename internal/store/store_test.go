package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hongminglow/estate-be/internal/models"
	"github.com/hongminglow/estate-be/internal/storage"
	"github.com/hongminglow/estate-be/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, kv storage.KeyValue) *Store {
	t.Helper()
	s, err := New(context.Background(), kv, zap.NewNop(), WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return s
}

func sampleProperty(id string) models.Property {
	return models.Property{
		ID:          id,
		Title:       "Sunny room near campus",
		Description: "Quiet room with a desk and fast wifi.",
		Type:        models.TypeRoomPG,
		Price:       9000,
		Location:    "Pune, Maharashtra",
		Coordinates: &models.Coordinates{Lat: 18.52, Lng: 73.85},
		Bedrooms:    1,
		Bathrooms:   1,
		Area:        300,
		Images:      []string{"https://img.example/1.jpg"},
		OwnerID:     "owner-1",
		CreatedAt:   fixedNow,
		Amenities:   []string{"Wi-Fi"},
	}
}

// failingKV fails every Set after the first `allow` calls.
type failingKV struct {
	*memory.Store
	allow int
	sets  int
}

func (f *failingKV) Set(ctx context.Context, key string, value []byte) error {
	f.sets++
	if f.sets > f.allow {
		return errors.New("disk full")
	}
	return f.Store.Set(ctx, key, value)
}

func TestNewSeedsAndPersistsEmptyBackend(t *testing.T) {
	kv := memory.New()
	s := newTestStore(t, kv)

	props := s.Properties()
	require.Len(t, props, 2)
	assert.Equal(t, "p1", props[0].ID)
	assert.Equal(t, fixedNow.Add(-24*time.Hour), props[1].CreatedAt)
	assert.Empty(t, s.Wishlist())
	assert.Empty(t, s.Users())

	for _, key := range []string{KeyProperties, KeyUsers, KeyMessages, KeyWishlist} {
		_, err := kv.Get(context.Background(), key)
		assert.NoError(t, err, key)
	}
	raw, err := kv.Get(context.Background(), KeyWishlist)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestNewResetsWholeStoreOnCorruptKey(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, KeyMessages, []byte(`[{"id":"m1","senderId":"a","receiverId":"b"}]`)))
	require.NoError(t, kv.Set(ctx, KeyWishlist, []byte(`{not json`)))

	s := newTestStore(t, kv)

	assert.Empty(t, s.Messages("a"), "valid collections are not partially recovered")
	assert.Len(t, s.Properties(), 2)

	raw, err := kv.Get(ctx, KeyWishlist)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw), "corrupt key is normalised on disk")
}

func TestNewKeepsEmptyPropertyCollection(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, KeyProperties, []byte(`[]`)))

	s := newTestStore(t, kv)
	assert.Empty(t, s.Properties())
}

func TestNewSurfacesBackendReadErrors(t *testing.T) {
	_, err := New(context.Background(), brokenKV{}, zap.NewNop())
	require.Error(t, err)
}

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) ([]byte, error) { return nil, errors.New("connection refused") }
func (brokenKV) Set(context.Context, string, []byte) error   { return nil }
func (brokenKV) Delete(context.Context, string) error        { return nil }

func TestAddPropertyPrependsExactlyOnce(t *testing.T) {
	s := newTestStore(t, memory.New())
	p := sampleProperty("p_100")

	require.NoError(t, s.AddProperty(context.Background(), p))

	props := s.Properties()
	require.Len(t, props, 3)
	assert.Equal(t, p, props[0])
	count := 0
	for _, got := range props {
		if got.ID == p.ID {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestStateSurvivesReload(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := newTestStore(t, kv)
	p := sampleProperty("p_200")
	require.NoError(t, s.AddProperty(ctx, p))
	_, err := s.ToggleWishlist(ctx, "p1")
	require.NoError(t, err)

	reloaded := newTestStore(t, kv)
	assert.Equal(t, s.Properties(), reloaded.Properties())
	assert.Equal(t, []string{"p1"}, reloaded.Wishlist())
}

func TestUpdatePropertyMergesSuppliedFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())
	p := sampleProperty("p_300")
	require.NoError(t, s.AddProperty(ctx, p))

	price := 12000.0
	title := "Renovated room near campus"
	ok, err := s.UpdateProperty(ctx, p.ID, models.PropertyPatch{Price: &price, Title: &title})
	require.NoError(t, err)
	assert.True(t, ok)

	got, found := s.Property(p.ID)
	require.True(t, found)
	assert.Equal(t, price, got.Price)
	assert.Equal(t, title, got.Title)
	assert.Equal(t, p.Description, got.Description)
	assert.Equal(t, p.Images, got.Images)
}

func TestUpdatePropertyMissingIsSilentNoop(t *testing.T) {
	s := newTestStore(t, memory.New())
	before := s.Properties()
	price := 1.0

	ok, err := s.UpdateProperty(context.Background(), "nope", models.PropertyPatch{Price: &price})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, before, s.Properties())
}

func TestDeletePropertyIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())

	ok, err := s.DeleteProperty(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	for _, p := range s.Properties() {
		assert.NotEqual(t, "p1", p.ID)
	}

	after := s.Properties()
	ok, err = s.DeleteProperty(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, after, s.Properties())
}

func TestDeletePropertyPrunesWishlistButKeepsMessages(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())
	_, err := s.ToggleWishlist(ctx, "p1")
	require.NoError(t, err)
	require.NoError(t, s.AddMessage(ctx, models.Message{ID: "m1", SenderID: "buyer", ReceiverID: "u1", PropertyID: "p1", Content: "Still available?"}))

	_, err = s.DeleteProperty(ctx, "p1")
	require.NoError(t, err)

	assert.False(t, s.InWishlist("p1"))
	require.Len(t, s.Messages("buyer"), 1)
	assert.Equal(t, "p1", s.Messages("buyer")[0].PropertyID)
}

func TestToggleWishlistTwiceRestoresMembership(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())
	before := s.InWishlist("p2")

	saved, err := s.ToggleWishlist(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, !before, saved)

	saved, err = s.ToggleWishlist(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, before, saved)
	assert.Equal(t, before, s.InWishlist("p2"))
}

func TestMessagesForUserNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())
	require.NoError(t, s.AddMessage(ctx, models.Message{ID: "m1", SenderID: "alice", ReceiverID: "bob"}))
	require.NoError(t, s.AddMessage(ctx, models.Message{ID: "m2", SenderID: "carol", ReceiverID: "dave"}))
	require.NoError(t, s.AddMessage(ctx, models.Message{ID: "m3", SenderID: "bob", ReceiverID: "erin"}))

	got := s.Messages("bob")
	require.Len(t, got, 2)
	assert.Equal(t, "m3", got[0].ID)
	assert.Equal(t, "m1", got[1].ID)
	assert.Empty(t, s.Messages("zed"))
}

func TestFailedWriteLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{Store: memory.New(), allow: 4}
	s := newTestStore(t, kv)
	before := s.Properties()

	err := s.AddProperty(ctx, sampleProperty("p_400"))
	require.ErrorIs(t, err, ErrPersist)
	assert.Equal(t, before, s.Properties())

	_, err = s.ToggleWishlist(ctx, "p1")
	require.Error(t, err)
	assert.False(t, s.InWishlist("p1"))
}

func TestSaveUserUpsertsByEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, memory.New())

	first, err := s.SaveUser(ctx, models.User{ID: "u-a", Name: "asha", Email: "Asha@example.com", Role: models.RoleBuyer})
	require.NoError(t, err)
	second, err := s.SaveUser(ctx, models.User{ID: "u-b", Name: "Asha K", Email: "asha@example.com", Role: models.RoleSeller})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	require.Len(t, s.Users(), 1)
	u, ok := s.UserByEmail("ASHA@example.com")
	require.True(t, ok)
	assert.Equal(t, models.RoleSeller, u.Role)
}

func TestPropertiesReturnsIndependentCopies(t *testing.T) {
	s := newTestStore(t, memory.New())
	props := s.Properties()
	props[0].Images[0] = "mutated"

	again := s.Properties()
	assert.NotEqual(t, "mutated", again[0].Images[0])
}
