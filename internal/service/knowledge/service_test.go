package knowledge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
	"github.com/mamadbah2/livestockcare/internal/repository/memory"
	"github.com/mamadbah2/livestockcare/internal/service/audit"
)

var admin = models.Principal{ID: "admin-1", Name: "Admin", Role: models.RoleAdmin}

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	return NewService(store, audit.NewRecorder(store, nil), nil), store
}

func hemoglobin(low, high float64) models.ReferenceInput {
	return bloodRange(models.SpeciesCattle, "Hemoglobin", "g/dL", low, high, []string{"Dehydration"}, []string{"Anemia"}, nil)
}

func TestCreateStartsAsDraft(t *testing.T) {
	svc, store := newService(t)

	entry, err := svc.Create(context.Background(), admin, hemoglobin(8, 15))
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Version)
	assert.Equal(t, models.KnowledgeDraft, entry.Status)
	assert.NotNil(t, entry.ReferenceData.SuggestedActions)
	assert.Equal(t, 1, store.AuditLen())
}

func TestUpdateArchivesPreviousVersion(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	entry, err := svc.Create(ctx, admin, hemoglobin(8, 15))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, admin, entry.ID, hemoglobin(9, 14))
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, 9.0, *updated.ReferenceData.NormalMin)
	assert.Equal(t, admin.ID, updated.UpdatedBy)

	_, err = svc.Update(ctx, admin, entry.ID, hemoglobin(10, 14))
	require.NoError(t, err)

	history, err := svc.History(ctx, entry.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 2, history[0].Version)
	assert.Equal(t, 1, history[1].Version)
	assert.Equal(t, models.KnowledgeArchived, history[1].Status)
	assert.Equal(t, 8.0, *history[1].ReferenceData.NormalMin)
	assert.NotEqual(t, entry.ID, history[1].ID)

	assert.Equal(t, 3, store.AuditLen())

	_, err = svc.Update(ctx, admin, "missing", hemoglobin(1, 2))
	assert.ErrorIs(t, err, models.ErrNotFound)
}

// bumpingStore simulates a second editor saving between load and update.
type bumpingStore struct {
	*memory.Store
}

func (b bumpingStore) Update(ctx context.Context, collection string, filter bson.M, set bson.M) error {
	if err := b.Store.Update(ctx, collection, bson.M{"id": filter["id"]}, bson.M{"version": 7}); err != nil {
		return err
	}
	return b.Store.Update(ctx, collection, filter, set)
}

func TestStaleUpdateLeavesNoHistory(t *testing.T) {
	store := memory.New()
	ctx := context.Background()
	entry, err := NewService(store, audit.NewRecorder(store, nil), nil).Create(ctx, admin, hemoglobin(8, 15))
	require.NoError(t, err)

	svc := NewService(bumpingStore{store}, audit.NewRecorder(store, nil), nil)
	_, err = svc.Update(ctx, admin, entry.ID, hemoglobin(9, 14))
	assert.ErrorIs(t, err, models.ErrConflict)
	assert.Equal(t, 0, store.Len(repository.CollKnowledgeHistory))
	assert.Equal(t, 1, store.AuditLen())
}

func TestPublishAndArchive(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	entry, err := svc.Create(ctx, admin, hemoglobin(8, 15))
	require.NoError(t, err)

	require.NoError(t, svc.Publish(ctx, admin, entry.ID))
	got, err := svc.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.KnowledgePublished, got.Status)
	assert.NotNil(t, got.PublishedAt)

	published, err := svc.List(ctx, models.KnowledgeFilter{Status: models.KnowledgePublished})
	require.NoError(t, err)
	assert.Len(t, published, 1)

	require.NoError(t, svc.Archive(ctx, admin, entry.ID))
	got, err = svc.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, models.KnowledgeArchived, got.Status)

	assert.ErrorIs(t, svc.Publish(ctx, admin, "missing"), models.ErrNotFound)
}

func TestReferenceForSkipsArchivedAndPrefersLatest(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	ref, err := svc.ReferenceFor(ctx, models.TestBlood, "Hemoglobin", models.SpeciesCattle)
	require.NoError(t, err)
	assert.Nil(t, ref)

	old, err := svc.Create(ctx, admin, hemoglobin(8, 15))
	require.NoError(t, err)
	current, err := svc.Create(ctx, admin, hemoglobin(9, 14))
	require.NoError(t, err)
	_, err = svc.Update(ctx, admin, current.ID, hemoglobin(9.5, 14))
	require.NoError(t, err)

	ref, err = svc.ReferenceFor(ctx, models.TestBlood, "Hemoglobin", models.SpeciesCattle)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, current.ID, ref.ID)
	assert.Equal(t, 2, ref.Version)

	require.NoError(t, svc.Archive(ctx, admin, current.ID))
	ref, err = svc.ReferenceFor(ctx, models.TestBlood, "Hemoglobin", models.SpeciesCattle)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, old.ID, ref.ID)
}

func TestSeedKnowledgeIsIdempotent(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	res, err := svc.SeedKnowledge(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, len(seedEntries()), res.Entries)
	assert.Equal(t, res.Entries, store.Len(repository.CollKnowledge))

	again, err := svc.SeedKnowledge(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, "Data already seeded", again.Message)
	assert.Equal(t, res.Entries, store.Len(repository.CollKnowledge))

	ref, err := svc.ReferenceFor(ctx, models.TestBlood, "PCV", models.SpeciesDog)
	require.NoError(t, err)
	require.NotNil(t, ref)
	assert.Equal(t, 37.0, *ref.ReferenceData.NormalMin)
}
