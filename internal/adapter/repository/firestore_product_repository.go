package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
)

type firestoreProductRepository struct {
	store *Store
}

func NewFirestoreProductRepository(store *Store) repository.ProductRepository {
	return &firestoreProductRepository{store: store}
}

func (r *firestoreProductRepository) Create(ctx context.Context, product *entity.Product) error {
	col := r.store.col(collectionProducts)
	if product.ID == "" {
		product.ID = col.NewDoc().ID
	}

	now := time.Now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	return exec(ctx, r.store, "Product", "create product", func(ctx context.Context) error {
		_, err := col.Doc(product.ID).Create(ctx, product)
		return err
	})
}

func (r *firestoreProductRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return call(ctx, r.store, "Product", "get product", func(ctx context.Context) (*entity.Product, error) {
		return getDoc[entity.Product](ctx, r.store.col(collectionProducts).Doc(id))
	})
}

func (r *firestoreProductRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	products := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	refs := make([]*firestore.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = r.store.col(collectionProducts).Doc(id)
	}

	return call(ctx, r.store, "Product", "get products", func(ctx context.Context) (map[string]*entity.Product, error) {
		docs, err := r.store.client.GetAll(ctx, refs)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			if doc == nil || !doc.Exists() {
				continue
			}
			p, err := decode[entity.Product](doc)
			if err != nil {
				return nil, err
			}
			products[doc.Ref.ID] = p
		}
		return products, nil
	})
}

func (r *firestoreProductRepository) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	q := r.store.col(collectionProducts).Query
	if filter.ShopID != "" {
		q = q.Where("shopId", "==", filter.ShopID)
	}
	if filter.Category != "" {
		q = q.Where("category", "==", filter.Category)
	}
	if filter.Status != "" {
		q = q.Where("status", "==", string(filter.Status))
	}
	q = q.OrderBy("createdAt", firestore.Desc)

	return listPage[entity.Product](ctx, r.store, "Product", "list products", q, limit, offset)
}

func (r *firestoreProductRepository) Update(ctx context.Context, product *entity.Product) error {
	product.UpdatedAt = time.Now()

	return exec(ctx, r.store, "Product", "update product", func(ctx context.Context) error {
		_, err := r.store.col(collectionProducts).Doc(product.ID).Set(ctx, product)
		return err
	})
}

func (r *firestoreProductRepository) Delete(ctx context.Context, id string) error {
	return exec(ctx, r.store, "Product", "delete product", func(ctx context.Context) error {
		_, err := r.store.col(collectionProducts).Doc(id).Delete(ctx, firestore.Exists)
		return err
	})
}
