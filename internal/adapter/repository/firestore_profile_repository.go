package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
)

type firestoreProfileRepository struct {
	store *Store
}

func NewFirestoreProfileRepository(store *Store) repository.ProfileRepository {
	return &firestoreProfileRepository{store: store}
}

func (r *firestoreProfileRepository) GetByUserID(ctx context.Context, userID string) (*entity.UserProfile, error) {
	return call(ctx, r.store, "Profile", "get profile", func(ctx context.Context) (*entity.UserProfile, error) {
		return getDoc[entity.UserProfile](ctx, r.store.col(collectionProfiles).Doc(userID))
	})
}

func (r *firestoreProfileRepository) Mutate(ctx context.Context, userID string, fn func(p *entity.UserProfile) error) (*entity.UserProfile, error) {
	ref := r.store.col(collectionProfiles).Doc(userID)
	init := func() *entity.UserProfile {
		return entity.NewUserProfile(userID, time.Now())
	}

	return call(ctx, r.store, "Profile", "update profile", func(ctx context.Context) (*entity.UserProfile, error) {
		return mutate(ctx, r.store, ref, init, fn)
	})
}

func (r *firestoreProfileRepository) AddExperienceLog(ctx context.Context, log *entity.ExperienceLog) error {
	ref := r.store.col(collectionExperienceLogs).NewDoc()
	log.ID = ref.ID
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}

	return exec(ctx, r.store, "Experience log", "add experience log", func(ctx context.Context) error {
		_, err := ref.Set(ctx, log)
		return err
	})
}

func (r *firestoreProfileRepository) ListExperienceLogs(ctx context.Context, userID string, limit, offset int) ([]*entity.ExperienceLog, int64, error) {
	q := r.store.col(collectionExperienceLogs).
		Where("userId", "==", userID).
		OrderBy("createdAt", firestore.Desc)

	return listPage[entity.ExperienceLog](ctx, r.store, "Experience log", "list experience logs", q, limit, offset)
}

type firestoreInspectorRepository struct {
	store *Store
}

func NewFirestoreInspectorRepository(store *Store) repository.InspectorRepository {
	return &firestoreInspectorRepository{store: store}
}

func (r *firestoreInspectorRepository) GetByUserID(ctx context.Context, userID string) (*entity.Inspector, error) {
	return call(ctx, r.store, "Inspector", "get inspector", func(ctx context.Context) (*entity.Inspector, error) {
		return getDoc[entity.Inspector](ctx, r.store.col(collectionInspectors).Doc(userID))
	})
}

func (r *firestoreInspectorRepository) Create(ctx context.Context, inspector *entity.Inspector) error {
	return exec(ctx, r.store, "Inspector", "create inspector", func(ctx context.Context) error {
		_, err := r.store.col(collectionInspectors).Doc(inspector.UserID).Create(ctx, inspector)
		return err
	})
}
