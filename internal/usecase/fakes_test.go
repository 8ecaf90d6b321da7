package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"pawmarket/internal/domain/entity"
	"pawmarket/internal/domain/repository"
	"pawmarket/internal/infrastructure/lock"
	"pawmarket/pkg/errors"
)

// memStore backs every fake repository with plain maps guarded by one mutex.
type memStore struct {
	mu sync.Mutex

	profiles   map[string]entity.UserProfile
	expLogs    []entity.ExperienceLog
	inspectors map[string]entity.Inspector
	shops      map[string]entity.Shop
	shopRevs   []entity.ShopReview
	products   map[string]entity.Product
	cart       map[string]entity.CartItem
	orders     map[string]entity.Order
	orderItems map[string]entity.OrderItem
	checkouts  map[string]entity.Checkout
	posts      map[string]entity.Post
	postRevs   []entity.PostReview
	likes      map[string]entity.PostLike
	comments   []entity.Comment
	ratings    map[string]entity.Rating

	seq int

	// failures injects an error into the named operation, once.
	failures map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		profiles:   make(map[string]entity.UserProfile),
		inspectors: make(map[string]entity.Inspector),
		shops:      make(map[string]entity.Shop),
		products:   make(map[string]entity.Product),
		cart:       make(map[string]entity.CartItem),
		orders:     make(map[string]entity.Order),
		orderItems: make(map[string]entity.OrderItem),
		checkouts:  make(map[string]entity.Checkout),
		posts:      make(map[string]entity.Post),
		likes:      make(map[string]entity.PostLike),
		ratings:    make(map[string]entity.Rating),
		failures:   make(map[string]error),
	}
}

func (m *memStore) failOnce(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[op] = err
}

// injected must be called with m.mu held.
func (m *memStore) injected(op string) error {
	if err, ok := m.failures[op]; ok {
		delete(m.failures, op)
		return err
	}
	return nil
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func window[T any](items []*T, limit, offset int) []*T {
	if offset >= len(items) {
		return []*T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

// ---- profiles & inspectors

type memProfileRepo struct{ m *memStore }

func (r memProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.UserProfile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.profiles[userID]
	if !ok {
		return nil, errors.NotFound("Profile", nil)
	}
	return &p, nil
}

func (r memProfileRepo) Mutate(ctx context.Context, userID string, fn func(p *entity.UserProfile) error) (*entity.UserProfile, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.injected("profile.mutate"); err != nil {
		return nil, err
	}

	p, ok := r.m.profiles[userID]
	if !ok {
		p = *entity.NewUserProfile(userID, time.Now())
	}
	if err := fn(&p); err != nil {
		return nil, err
	}
	r.m.profiles[userID] = p
	return &p, nil
}

func (r memProfileRepo) AddExperienceLog(ctx context.Context, log *entity.ExperienceLog) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.injected("profile.log"); err != nil {
		return err
	}
	log.ID = r.m.nextID("log")
	r.m.expLogs = append(r.m.expLogs, *log)
	return nil
}

func (r memProfileRepo) ListExperienceLogs(ctx context.Context, userID string, limit, offset int) ([]*entity.ExperienceLog, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.ExperienceLog
	for i := len(r.m.expLogs) - 1; i >= 0; i-- {
		if l := r.m.expLogs[i]; l.UserID == userID {
			out = append(out, &l)
		}
	}
	return window(out, limit, offset), int64(len(out)), nil
}

type memInspectorRepo struct{ m *memStore }

func (r memInspectorRepo) GetByUserID(ctx context.Context, userID string) (*entity.Inspector, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	i, ok := r.m.inspectors[userID]
	if !ok {
		return nil, errors.NotFound("Inspector", nil)
	}
	return &i, nil
}

func (r memInspectorRepo) Create(ctx context.Context, inspector *entity.Inspector) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.inspectors[inspector.UserID]; ok {
		return errors.Conflict("Inspector already exists")
	}
	r.m.inspectors[inspector.UserID] = *inspector
	return nil
}

// ---- shops

type memShopRepo struct{ m *memStore }

func (r memShopRepo) CreateForOwner(ctx context.Context, shop *entity.Shop) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.shops {
		if s.OwnerUserID == shop.OwnerUserID && s.Status != entity.ShopRejected {
			return errors.Conflict("user already has a shop")
		}
	}
	if shop.ID == "" {
		shop.ID = r.m.nextID("shop")
	}
	if shop.CreatedAt.IsZero() {
		shop.CreatedAt = time.Now()
	}
	r.m.shops[shop.ID] = *shop
	return nil
}

func (r memShopRepo) GetByID(ctx context.Context, id string) (*entity.Shop, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.shops[id]
	if !ok {
		return nil, errors.NotFound("Shop", nil)
	}
	return &s, nil
}

func (r memShopRepo) GetByOwner(ctx context.Context, ownerID string) (*entity.Shop, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.shops {
		if s.OwnerUserID == ownerID && s.Status != entity.ShopRejected {
			return &s, nil
		}
	}
	return nil, errors.NotFound("Shop", nil)
}

func (r memShopRepo) ListByStatus(ctx context.Context, statuses []entity.ShopStatus, limit, offset int) ([]*entity.Shop, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	want := make(map[entity.ShopStatus]bool)
	for _, s := range statuses {
		want[s] = true
	}
	var out []*entity.Shop
	for _, s := range r.m.shops {
		if want[s.Status] {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return window(out, limit, offset), int64(len(out)), nil
}

func (r memShopRepo) Mutate(ctx context.Context, id string, fn func(shop *entity.Shop) error) (*entity.Shop, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.shops[id]
	if !ok {
		return nil, errors.NotFound("Shop", nil)
	}
	if err := fn(&s); err != nil {
		return nil, err
	}
	r.m.shops[id] = s
	return &s, nil
}

func (r memShopRepo) CreateReview(ctx context.Context, review *entity.ShopReview) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	review.ID = r.m.nextID("shop-review")
	r.m.shopRevs = append(r.m.shopRevs, *review)
	return nil
}

// ---- products

type memProductRepo struct{ m *memStore }

func (r memProductRepo) Create(ctx context.Context, product *entity.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if product.ID == "" {
		product.ID = r.m.nextID("product")
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	r.m.products[product.ID] = *product
	return nil
}

func (r memProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.products[id]
	if !ok {
		return nil, errors.NotFound("Product", nil)
	}
	return &p, nil
}

func (r memProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make(map[string]*entity.Product)
	for _, id := range ids {
		if p, ok := r.m.products[id]; ok {
			out[id] = &p
		}
	}
	return out, nil
}

func (r memProductRepo) List(ctx context.Context, filter repository.ProductFilter, limit, offset int) ([]*entity.Product, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.m.products {
		if filter.ShopID != "" && p.ShopID != filter.ShopID {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, limit, offset), int64(len(out)), nil
}

func (r memProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.products[product.ID] = *product
	return nil
}

func (r memProductRepo) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.products[id]; !ok {
		return errors.NotFound("Product", nil)
	}
	delete(r.m.products, id)
	return nil
}

// ---- cart

type memCartRepo struct{ m *memStore }

func (r memCartRepo) GetByID(ctx context.Context, id string) (*entity.CartItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	it, ok := r.m.cart[id]
	if !ok {
		return nil, errors.NotFound("Cart item", nil)
	}
	return &it, nil
}

func (r memCartRepo) ListByUser(ctx context.Context, userID string) ([]*entity.CartItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*entity.CartItem, 0)
	for _, it := range r.m.cart {
		if it.UserID == userID {
			it := it
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memCartRepo) Upsert(ctx context.Context, id string, fn func(current *entity.CartItem) (*entity.CartItem, error)) (*entity.CartItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var current *entity.CartItem
	if it, ok := r.m.cart[id]; ok {
		current = &it
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	next.ID = id
	r.m.cart[id] = *next
	return next, nil
}

func (r memCartRepo) Delete(ctx context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.cart[id]; !ok {
		return errors.NotFound("Cart item", nil)
	}
	delete(r.m.cart, id)
	return nil
}

func (r memCartRepo) DeleteMany(ctx context.Context, ids []string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.injected("cart.delete_many"); err != nil {
		return err
	}
	for _, id := range ids {
		delete(r.m.cart, id)
	}
	return nil
}

// ---- orders & checkouts

type memOrderRepo struct{ m *memStore }

func (r memOrderRepo) CreateIfAbsent(ctx context.Context, order *entity.Order, items []*entity.OrderItem) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.injected("order.create"); err != nil {
		return false, err
	}
	if _, ok := r.m.orders[order.ID]; ok {
		return false, nil
	}
	r.m.orders[order.ID] = *order
	for _, it := range items {
		r.m.orderItems[it.ID] = *it
	}
	return true, nil
}

func (r memOrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	o, ok := r.m.orders[id]
	if !ok {
		return nil, errors.NotFound("Order", nil)
	}
	return &o, nil
}

func (r memOrderRepo) ListItems(ctx context.Context, orderID string) ([]*entity.OrderItem, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*entity.OrderItem, 0)
	for _, it := range r.m.orderItems {
		if it.OrderID == orderID {
			it := it
			out = append(out, &it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memOrderRepo) list(match func(o entity.Order) bool, limit, offset int) ([]*entity.Order, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.m.orders {
		if match(o) {
			o := o
			out = append(out, &o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return window(out, limit, offset), int64(len(out)), nil
}

func (r memOrderRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Order, int64, error) {
	return r.list(func(o entity.Order) bool { return o.UserID == userID }, limit, offset)
}

func (r memOrderRepo) ListByShop(ctx context.Context, shopID string, limit, offset int) ([]*entity.Order, int64, error) {
	return r.list(func(o entity.Order) bool { return o.ShopID == shopID }, limit, offset)
}

func (r memOrderRepo) HasPurchasedProduct(ctx context.Context, userID, productID string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, it := range r.m.orderItems {
		if it.UserID == userID && it.ProductID == productID && r.m.orders[it.OrderID].Status.Purchased() {
			return true, nil
		}
	}
	return false, nil
}

func (r memOrderRepo) HasPurchasedFromShop(ctx context.Context, userID, shopID string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, o := range r.m.orders {
		if o.UserID == userID && o.ShopID == shopID && o.Status.Purchased() {
			return true, nil
		}
	}
	return false, nil
}

type memCheckoutRepo struct{ m *memStore }

func (r memCheckoutRepo) GetByID(ctx context.Context, id string) (*entity.Checkout, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	c, ok := r.m.checkouts[id]
	if !ok {
		return nil, errors.NotFound("Checkout", nil)
	}
	return &c, nil
}

func (r memCheckoutRepo) Begin(ctx context.Context, checkout *entity.Checkout) (*entity.Checkout, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if c, ok := r.m.checkouts[checkout.ID]; ok {
		return &c, nil
	}
	c := *checkout
	c.CreatedAt = time.Now()
	r.m.checkouts[c.ID] = c
	return &c, nil
}

func (r memCheckoutRepo) Update(ctx context.Context, checkout *entity.Checkout) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.checkouts[checkout.ID] = *checkout
	return nil
}

// ---- posts & comments

type memPostRepo struct{ m *memStore }

func (r memPostRepo) Create(ctx context.Context, post *entity.Post) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.injected("post.create"); err != nil {
		return err
	}
	if post.ID == "" {
		post.ID = r.m.nextID("post")
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	r.m.posts[post.ID] = *post
	return nil
}

func (r memPostRepo) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.posts[id]
	if !ok {
		return nil, errors.NotFound("Post", nil)
	}
	return &p, nil
}

func (r memPostRepo) List(ctx context.Context, filter repository.PostFilter, limit, offset int) ([]*entity.Post, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Post
	for _, p := range r.m.posts {
		if filter.UserID != "" && p.UserID != filter.UserID {
			continue
		}
		if filter.PostType != "" && p.PostType != filter.PostType {
			continue
		}
		if filter.ReviewStatus != "" && p.ReviewStatus != filter.ReviewStatus {
			continue
		}
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return window(out, limit, offset), int64(len(out)), nil
}

func (r memPostRepo) Mutate(ctx context.Context, id string, fn func(post *entity.Post) error) (*entity.Post, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.posts[id]
	if !ok {
		return nil, errors.NotFound("Post", nil)
	}
	if err := fn(&p); err != nil {
		return nil, err
	}
	r.m.posts[id] = p
	return &p, nil
}

func (r memPostRepo) MutateWithProfile(ctx context.Context, id, userID string, fn func(post *entity.Post, profile *entity.UserProfile) error) (*entity.Post, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if err := r.m.injected("profile.mutate"); err != nil {
		return nil, err
	}

	p, ok := r.m.posts[id]
	if !ok {
		return nil, errors.NotFound("Post", nil)
	}
	prof, ok := r.m.profiles[userID]
	if !ok {
		prof = *entity.NewUserProfile(userID, time.Now())
	}
	if err := fn(&p, &prof); err != nil {
		return nil, err
	}
	r.m.posts[id] = p
	r.m.profiles[userID] = prof
	return &p, nil
}

func (r memPostRepo) Like(ctx context.Context, like *entity.PostLike) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.posts[like.PostID]
	if !ok {
		return errors.NotFound("Post", nil)
	}
	id := entity.PostLikeID(like.UserID, like.PostID)
	if _, ok := r.m.likes[id]; ok {
		return errors.Conflict("post already liked")
	}
	like.ID = id
	r.m.likes[id] = *like
	p.LikesCount++
	r.m.posts[p.ID] = p
	return nil
}

func (r memPostRepo) Unlike(ctx context.Context, userID, postID string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.posts[postID]
	if !ok {
		return errors.NotFound("Post", nil)
	}
	id := entity.PostLikeID(userID, postID)
	if _, ok := r.m.likes[id]; !ok {
		return errors.NotFound("Like", nil)
	}
	delete(r.m.likes, id)
	if p.LikesCount > 0 {
		p.LikesCount--
	}
	r.m.posts[postID] = p
	return nil
}

func (r memPostRepo) CreateReview(ctx context.Context, review *entity.PostReview) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	review.ID = r.m.nextID("post-review")
	r.m.postRevs = append(r.m.postRevs, *review)
	return nil
}

type memCommentRepo struct{ m *memStore }

func (r memCommentRepo) Create(ctx context.Context, comment *entity.Comment) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.posts[comment.PostID]
	if !ok {
		return errors.NotFound("Post", nil)
	}
	comment.ID = r.m.nextID("comment")
	r.m.comments = append(r.m.comments, *comment)
	p.CommentsCount++
	r.m.posts[p.ID] = p
	return nil
}

func (r memCommentRepo) ListByPost(ctx context.Context, postID string, limit, offset int) ([]*entity.Comment, int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Comment
	for _, c := range r.m.comments {
		if c.PostID == postID {
			c := c
			out = append(out, &c)
		}
	}
	return window(out, limit, offset), int64(len(out)), nil
}

func (r memCommentRepo) HasCommented(ctx context.Context, postID, userID string) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, c := range r.m.comments {
		if c.PostID == postID && c.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

// ---- ratings

type memRatingRepo struct{ m *memStore }

func (r memRatingRepo) Create(ctx context.Context, rating *entity.Rating) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	rating.ID = entity.RatingID(rating.UserID, rating.TargetID)
	key := string(rating.Target) + "/" + rating.ID
	if _, ok := r.m.ratings[key]; ok {
		return errors.Conflict("Rating already exists")
	}
	r.m.seq++
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Unix(int64(r.m.seq), 0)
	}
	r.m.ratings[key] = *rating
	return nil
}

func (r memRatingRepo) ListByTarget(ctx context.Context, target entity.RatingTarget, targetID string) ([]*entity.Rating, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*entity.Rating, 0)
	for _, rt := range r.m.ratings {
		if rt.Target == target && rt.TargetID == targetID {
			rt := rt
			out = append(out, &rt)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// ---- services

type fakeFiles struct {
	uploads []string
	deleted []string
	err     error
}

func (f *fakeFiles) UploadFile(ctx context.Context, file io.Reader, contentType, folder string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if _, err := io.ReadAll(file); err != nil {
		return "", err
	}
	url := fmt.Sprintf("https://storage.example/%s/%d", folder, len(f.uploads)+1)
	f.uploads = append(f.uploads, url)
	return url, nil
}

func (f *fakeFiles) DeleteFile(ctx context.Context, fileURL string) error {
	if !strings.HasPrefix(fileURL, "https://storage.example/") {
		return errors.InvalidArgument("not a stored file", nil)
	}
	f.deleted = append(f.deleted, fileURL)
	return nil
}

func (f *fakeFiles) Close() error { return nil }

type fakeAuth struct {
	users    map[string]*entity.User
	password map[string]string
	revoked  []string
}

func (f *fakeAuth) VerifyToken(ctx context.Context, idToken string) (string, error) {
	if _, ok := f.users[idToken]; !ok {
		return "", errors.Unauthorized("invalid token", nil)
	}
	return idToken, nil
}

func (f *fakeAuth) GetUser(ctx context.Context, uid string) (*entity.User, error) {
	u, ok := f.users[uid]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return u, nil
}

func (f *fakeAuth) SignIn(ctx context.Context, email, password string) (*entity.Session, error) {
	for _, u := range f.users {
		if u.Email == email && f.password[u.ID] == password {
			return &entity.Session{UserID: u.ID, IDToken: "id-" + u.ID, RefreshToken: "refresh-" + u.ID, ExpiresIn: "3600"}, nil
		}
	}
	return nil, errors.Unauthorized("invalid email or password", nil)
}

func (f *fakeAuth) RevokeSessions(ctx context.Context, uid string) error {
	f.revoked = append(f.revoked, uid)
	return nil
}

type countingRecorder struct {
	mu        sync.Mutex
	awards    map[entity.ActionType]int
	levelUps  int
	decisions int
	checkouts map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{awards: make(map[entity.ActionType]int), checkouts: make(map[string]int)}
}

func (c *countingRecorder) ExperienceAwarded(action entity.ActionType, levelUp bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.awards[action]++
	if levelUp {
		c.levelUps++
	}
}

func (c *countingRecorder) ReviewDecided(entity.ReviewTaskType, entity.Decision) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.decisions++
}

func (c *countingRecorder) CheckoutFinished(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkouts[outcome]++
}

// ---- wiring

type testApp struct {
	store    *memStore
	files    *fakeFiles
	auth     *fakeAuth
	recorder *countingRecorder

	profiles   *ProfileUseCase
	inspectors *InspectorUseCase
	moderation *ModerationUseCase
	shops      *ShopUseCase
	products   *ProductUseCase
	cart       *CartUseCase
	checkout   *CheckoutUseCase
	posts      *PostUseCase
	ratings    *RatingUseCase
	authUC     *AuthUseCase
}

func newTestApp() *testApp {
	m := newMemStore()
	files := &fakeFiles{}
	auth := &fakeAuth{users: make(map[string]*entity.User), password: make(map[string]string)}
	rec := newCountingRecorder()

	profileRepo := memProfileRepo{m}
	shopRepo := memShopRepo{m}
	productRepo := memProductRepo{m}
	cartRepo := memCartRepo{m}
	orderRepo := memOrderRepo{m}
	postRepo := memPostRepo{m}

	profiles := NewProfileUseCase(profileRepo, files, rec)
	inspectors := NewInspectorUseCase(memInspectorRepo{m}, shopRepo, postRepo, profiles)
	cart := NewCartUseCase(cartRepo, productRepo, shopRepo)

	return &testApp{
		store:      m,
		files:      files,
		auth:       auth,
		recorder:   rec,
		profiles:   profiles,
		inspectors: inspectors,
		moderation: NewModerationUseCase(inspectors, shopRepo, postRepo, rec),
		shops:      NewShopUseCase(shopRepo, orderRepo, files),
		products:   NewProductUseCase(productRepo, shopRepo, files),
		cart:       cart,
		checkout:   NewCheckoutUseCase(cart, cartRepo, shopRepo, orderRepo, memCheckoutRepo{m}, lock.NewMemoryLocker(), time.Minute, rec),
		posts:      NewPostUseCase(postRepo, memCommentRepo{m}, inspectors, profiles),
		ratings:    NewRatingUseCase(memRatingRepo{m}, orderRepo, productRepo, shopRepo),
		authUC:     NewAuthUseCase(auth, profiles, inspectors),
	}
}

// seedProfile stores a profile with the given progress.
func (a *testApp) seedProfile(userID string, experience, level, points int) {
	p := *entity.NewUserProfile(userID, time.Now())
	p.Experience = experience
	p.Level = level
	p.Points = points
	a.store.mu.Lock()
	a.store.profiles[userID] = p
	a.store.mu.Unlock()
}

func (a *testApp) seedInspector(userID string) {
	a.store.mu.Lock()
	a.store.inspectors[userID] = entity.Inspector{UserID: userID, AppointedAt: time.Now(), AppointedBy: "system"}
	a.store.mu.Unlock()
}

func (a *testApp) seedShop(id, ownerID string, status entity.ShopStatus) {
	a.store.mu.Lock()
	a.store.seq++
	a.store.shops[id] = entity.Shop{ID: id, OwnerUserID: ownerID, ShopName: id, Status: status, CreatedAt: time.Unix(int64(a.store.seq), 0)}
	a.store.mu.Unlock()
}

func (a *testApp) seedProduct(id, shopID string, price float64, stock int) {
	a.store.mu.Lock()
	owner := a.store.shops[shopID].OwnerUserID
	a.store.products[id] = entity.Product{ID: id, ShopID: shopID, SellerID: owner, Name: id, Price: price, Stock: stock, Status: entity.ProductActive}
	a.store.mu.Unlock()
}

func (a *testApp) profile(userID string) entity.UserProfile {
	a.store.mu.Lock()
	defer a.store.mu.Unlock()
	return a.store.profiles[userID]
}
