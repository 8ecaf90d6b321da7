package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"github.com/cenkalti/backoff/v5"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pawmarket/pkg/errors"
	"pawmarket/pkg/logger"
)

const (
	collectionProfiles       = "user_profiles"
	collectionExperienceLogs = "experience_logs"
	collectionInspectors     = "inspectors"
	collectionShops          = "shops"
	collectionShopReviews    = "shop_reviews"
	collectionProducts       = "products"
	collectionCartItems      = "cart_items"
	collectionOrders         = "orders"
	collectionOrderItems     = "order_items"
	collectionCheckouts      = "checkouts"
	collectionPosts          = "posts"
	collectionPostReviews    = "post_reviews"
	collectionPostLikes      = "post_likes"
	collectionComments       = "comments"
	collectionProductRatings = "product_ratings"
	collectionShopRatings    = "shop_ratings"
)

type StoreOptions struct {
	CallTimeout time.Duration
	MaxRetries  uint
}

// Store is the Firestore client shared by all repositories. Every call made
// through it gets its own timeout, and transient failures are retried with
// exponential backoff before being surfaced as errors.Transient.
type Store struct {
	client     *firestore.Client
	opts       StoreOptions
	newBackOff func() backoff.BackOff
}

func NewStore(client *firestore.Client, opts StoreOptions) *Store {
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 5 * time.Second
	}
	return &Store{
		client: client,
		opts:   opts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 100 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
	}
}

func (s *Store) col(name string) *firestore.CollectionRef {
	return s.client.Collection(name)
}

// Ping reads at most one profile document to confirm Firestore answers.
func (s *Store) Ping(ctx context.Context) error {
	return exec(ctx, s, "store", "ping", func(ctx context.Context) error {
		_, err := s.col(collectionProfiles).Limit(1).Documents(ctx).Next()
		if err == iterator.Done {
			return nil
		}
		return err
	})
}

var transientCodes = map[codes.Code]bool{
	codes.Unavailable:       true,
	codes.DeadlineExceeded:  true,
	codes.Aborted:           true,
	codes.ResourceExhausted: true,
	codes.Internal:          true,
}

func isTransient(err error) bool {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == errors.CodeTransient
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return transientCodes[status.Code(err)]
}

// classify turns a raw store error into the application error taxonomy.
func classify(resource, op string, err error) error {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}

	switch code := status.Code(err); {
	case code == codes.NotFound:
		return errors.NotFound(resource, err)
	case code == codes.AlreadyExists:
		return errors.Conflict(fmt.Sprintf("%s already exists", resource))
	case isTransient(err):
		return errors.Transient(err)
	}

	return errors.Internal(fmt.Sprintf("Failed to %s", op), err)
}

// call runs fn with a per-attempt timeout and retries it while the failure is transient.
func call[T any](ctx context.Context, s *Store, resource, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	attempt := func() (T, error) {
		callCtx, cancel := context.WithTimeout(ctx, s.opts.CallTimeout)
		defer cancel()

		v, err := fn(callCtx)
		if err != nil && (ctx.Err() != nil || !isTransient(err)) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}

	v, err := backoff.Retry(ctx, attempt,
		backoff.WithBackOff(s.newBackOff()),
		backoff.WithMaxTries(s.opts.MaxRetries+1),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.Warn("store %s failed, retrying in %s: %v", op, next, err)
		}),
	)
	if err != nil {
		var perm *backoff.PermanentError
		if stderrors.As(err, &perm) {
			err = perm.Err
		}
		return v, classify(resource, op, err)
	}

	return v, nil
}

// exec is call for operations without a result.
func exec(ctx context.Context, s *Store, resource, op string, fn func(ctx context.Context) error) error {
	_, err := call(ctx, s, resource, op, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

func decode[T any](doc *firestore.DocumentSnapshot) (*T, error) {
	var v T
	if err := doc.DataTo(&v); err != nil {
		return nil, err
	}
	return &v, nil
}

func getDoc[T any](ctx context.Context, ref *firestore.DocumentRef) (*T, error) {
	doc, err := ref.Get(ctx)
	if err != nil {
		return nil, err
	}
	return decode[T](doc)
}

func collect[T any](iter *firestore.DocumentIterator) ([]*T, error) {
	defer iter.Stop()

	items := make([]*T, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		v, err := decode[T](doc)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}

	return items, nil
}

func count(ctx context.Context, q firestore.Query) (int64, error) {
	res, err := q.NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return 0, err
	}
	v, ok := res["total"].(*firestorepb.Value)
	if !ok {
		return 0, fmt.Errorf("unexpected count result %T", res["total"])
	}
	return v.GetIntegerValue(), nil
}

// page counts the query and returns one page of it.
func page[T any](ctx context.Context, q firestore.Query, limit, offset int) ([]*T, int64, error) {
	total, err := count(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	if offset > 0 {
		q = q.Offset(offset)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	items, err := collect[T](q.Documents(ctx))
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// mutate is the read-check-write transaction shared by the Mutate methods.
// When init is nil a missing document is a NotFound error; otherwise init
// provides the value to start from.
func mutate[T any](ctx context.Context, s *Store, ref *firestore.DocumentRef, init func() *T, fn func(v *T) error) (*T, error) {
	var out *T
	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)

		var v *T
		switch {
		case status.Code(err) == codes.NotFound && init != nil:
			v = init()
		case err != nil:
			return err
		default:
			if v, err = decode[T](doc); err != nil {
				return err
			}
		}

		if err := fn(v); err != nil {
			return err
		}
		out = v
		return tx.Set(ref, v)
	})
	return out, err
}

type pageResult[T any] struct {
	items []*T
	total int64
}

func listPage[T any](ctx context.Context, s *Store, resource, op string, q firestore.Query, limit, offset int) ([]*T, int64, error) {
	res, err := call(ctx, s, resource, op, func(ctx context.Context) (pageResult[T], error) {
		items, total, err := page[T](ctx, q, limit, offset)
		return pageResult[T]{items: items, total: total}, err
	})
	return res.items, res.total, err
}

func listAll[T any](ctx context.Context, s *Store, resource, op string, q firestore.Query) ([]*T, error) {
	return call(ctx, s, resource, op, func(ctx context.Context) ([]*T, error) {
		return collect[T](q.Documents(ctx))
	})
}
