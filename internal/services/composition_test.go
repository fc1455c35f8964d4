package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/songsmith-api/internal/composer"
	"github.com/Conceptual-Machines/songsmith-api/internal/models"
	"github.com/Conceptual-Machines/songsmith-api/internal/storage"
)

func intPtr(v int) *int { return &v }

func newTestService(store storage.Store, share *ShareService) *CompositionService {
	return NewCompositionService(CompositionOptions{
		Store:       store,
		History:     NewHistoryService(nil),
		Share:       share,
		NoteCeiling: 2000,
		BaseURL:     "http://songs.test",
	})
}

func TestComposeStoresAndShares(t *testing.T) {
	store := storage.NewMemoryStore(0, 0)
	svc := newTestService(store, NewShareService("secret", time.Hour))

	res, err := svc.Compose(context.Background(), models.CompositionRequest{Key: "D", Scale: "dorian", Tempo: intPtr(100)}, "", "")
	require.NoError(t, err)

	assert.NotEmpty(t, res.ID)
	assert.True(t, res.Stored)
	assert.True(t, strings.HasPrefix(res.ShareURL, "http://songs.test/api/v1/compositions/"+res.ID+"/download?token="))
	assert.LessOrEqual(t, res.Composition.NoteCount, 2000)

	stored, err := store.Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Composition.Data, stored)

	u, err := url.Parse(res.ShareURL)
	require.NoError(t, err)
	granted, err := svc.Share().Verify(u.Query().Get("token"))
	require.NoError(t, err)
	assert.Equal(t, res.ID, granted)

	data, err := svc.Fetch(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, data)

	summary := res.Summary(true)
	assert.Equal(t, "dorian", summary.Scale)
	assert.Equal(t, 100, summary.Tempo)
	assert.NotEmpty(t, summary.MIDIBase64)
}

func TestFetchMissing(t *testing.T) {
	svc := newTestService(storage.NewMemoryStore(0, 0), nil)
	_, err := svc.Fetch(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCompositionNotFound)

	svc = newTestService(nil, nil)
	_, err = svc.Fetch(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCompositionNotFound)
}

func TestComposeWithoutStore(t *testing.T) {
	svc := newTestService(nil, NewShareService("secret", time.Hour))

	res, err := svc.Compose(context.Background(), models.CompositionRequest{}, "", "")
	require.NoError(t, err)
	assert.False(t, res.Stored)
	assert.Empty(t, res.ShareURL)
}

func TestComposeSkipsStoreWithoutSharing(t *testing.T) {
	store := storage.NewMemoryStore(0, 0)
	svc := newTestService(store, NewShareService("", time.Hour))

	res, err := svc.Compose(context.Background(), models.CompositionRequest{}, "", "")
	require.NoError(t, err)
	assert.False(t, res.Stored)
	assert.Empty(t, res.ShareURL)
	assert.Equal(t, 0, store.Len())
}

func TestComposeParamErrors(t *testing.T) {
	svc := newTestService(nil, nil)

	_, err := svc.Compose(context.Background(), models.CompositionRequest{Key: "Z"}, "", "")
	var keyErr *composer.InvalidKeyError
	assert.True(t, errors.As(err, &keyErr))

	_, err = svc.Compose(context.Background(), models.CompositionRequest{ChordProgression: []string{}}, "", "")
	assert.ErrorIs(t, err, composer.ErrEmptyProgression)
}

func TestHistoryDisabled(t *testing.T) {
	svc := newTestService(nil, nil)
	_, err := svc.Get(context.Background(), "x")
	assert.ErrorIs(t, err, ErrHistoryDisabled)
	_, err = svc.Recent(context.Background(), "", 10)
	assert.ErrorIs(t, err, ErrHistoryDisabled)
}
