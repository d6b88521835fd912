//go:build !integration

package usecase_test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"seller-onboarding/internal/domain"
	"seller-onboarding/internal/domain/model"
	"seller-onboarding/internal/domain/ports/adapter"
	"seller-onboarding/internal/domain/ports/repository"
)

// -----------------------------
// Utilities: tiny helpers
// -----------------------------

func newTestLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func img(tag string) model.ImagePayload {
	return model.NewImagePayload("image/png", []byte(tag))
}

// =============================
// In-memory database with snapshot rollback
// =============================

type memDB struct {
	mu          sync.Mutex
	taskers     map[string]*model.Tasker
	sellers     map[string]*model.Seller
	collections []*model.Collection
	products    []*model.Product
}

func newMemDB() *memDB {
	return &memDB{
		taskers: map[string]*model.Tasker{},
		sellers: map[string]*model.Seller{},
	}
}

type memSnapshot struct {
	taskers     map[string]*model.Tasker
	sellers     map[string]*model.Seller
	collections []*model.Collection
	products    []*model.Product
}

func (db *memDB) snapshot() memSnapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	s := memSnapshot{
		taskers:     make(map[string]*model.Tasker, len(db.taskers)),
		sellers:     make(map[string]*model.Seller, len(db.sellers)),
		collections: append([]*model.Collection(nil), db.collections...),
		products:    append([]*model.Product(nil), db.products...),
	}
	for k, v := range db.taskers {
		s.taskers[k] = v
	}
	for k, v := range db.sellers {
		s.sellers[k] = v
	}
	return s
}

func (db *memDB) restore(s memSnapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.taskers = s.taskers
	db.sellers = s.sellers
	db.collections = s.collections
	db.products = s.products
}

func (db *memDB) counts() (taskers, sellers, collections, products int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.taskers), len(db.sellers), len(db.collections), len(db.products)
}

// ---- Transaction manager ----

type memTx struct{}

// MemTxManager runs fn and restores the pre-transaction snapshot on error.
type MemTxManager struct {
	db    *memDB
	calls int32
}

var _ repository.TransactionManager = (*MemTxManager)(nil)

func (m *MemTxManager) WithTx(ctx context.Context, _ pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	atomic.AddInt32(&m.calls, 1)
	snap := m.db.snapshot()
	if err := fn(ctx, memTx{}); err != nil {
		m.db.restore(snap)
		return err
	}
	return nil
}

// ---- Tasker repo ----

type MockTaskerRepo struct {
	db              *memDB
	UpsertByPhoneFn func(ctx context.Context, tx repository.Tx, t *model.Tasker) (*model.Tasker, error)
	CountFn         func(ctx context.Context, tx repository.Tx) (int, error)
}

var _ repository.TaskerRepository = (*MockTaskerRepo)(nil)

func (r *MockTaskerRepo) UpsertByPhone(ctx context.Context, tx repository.Tx, t *model.Tasker) (*model.Tasker, error) {
	if r.UpsertByPhoneFn != nil {
		return r.UpsertByPhoneFn(ctx, tx, t)
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, existing := range r.db.taskers {
		if existing.Phone == t.Phone {
			cp := *existing
			return &cp, nil
		}
	}
	cp := *t
	r.db.taskers[t.ID] = &cp
	out := cp
	return &out, nil
}

func (r *MockTaskerRepo) FindByPhone(ctx context.Context, tx repository.Tx, phone string) (*model.Tasker, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, t := range r.db.taskers {
		if t.Phone == phone {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MockTaskerRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Tasker, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	t, ok := r.db.taskers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *MockTaskerRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	if r.CountFn != nil {
		return r.CountFn(ctx, tx)
	}
	n, _, _, _ := r.db.counts()
	return n, nil
}

// ---- Seller repo ----

type MockSellerRepo struct {
	db       *memDB
	CreateFn func(ctx context.Context, tx repository.Tx, s *model.Seller) error
}

var _ repository.SellerRepository = (*MockSellerRepo)(nil)

func (r *MockSellerRepo) Create(ctx context.Context, tx repository.Tx, s *model.Seller) error {
	if r.CreateFn != nil {
		return r.CreateFn(ctx, tx, s)
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.sellers[s.ID]; ok {
		return domain.ErrAlreadyExists
	}
	cp := *s
	r.db.sellers[s.ID] = &cp
	return nil
}

func (r *MockSellerRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Seller, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.sellers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *MockSellerRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	_, n, _, _ := r.db.counts()
	return n, nil
}

// ---- Collection repo ----

type MockCollectionRepo struct {
	db       *memDB
	CreateFn func(ctx context.Context, tx repository.Tx, c *model.Collection) error
}

var _ repository.CollectionRepository = (*MockCollectionRepo)(nil)

func (r *MockCollectionRepo) Create(ctx context.Context, tx repository.Tx, c *model.Collection) error {
	if r.CreateFn != nil {
		return r.CreateFn(ctx, tx, c)
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *c
	r.db.collections = append(r.db.collections, &cp)
	return nil
}

func (r *MockCollectionRepo) FindBySellerID(ctx context.Context, tx repository.Tx, sellerID string) (*model.Collection, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, c := range r.db.collections {
		if c.SellerID == sellerID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MockCollectionRepo) ListSellerIDsByTasker(ctx context.Context, tx repository.Tx, taskerID string) ([]string, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []string
	for _, c := range r.db.collections {
		if c.TaskerID == taskerID {
			out = append(out, c.SellerID)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ---- Product repo ----

type MockProductRepo struct {
	db       *memDB
	inFlight int32
	// MaxInFlight records the highest observed concurrent Create calls.
	MaxInFlight int32
	CreateFn    func(ctx context.Context, tx repository.Tx, p *model.Product) error
}

var _ repository.ProductRepository = (*MockProductRepo)(nil)

func (r *MockProductRepo) Create(ctx context.Context, tx repository.Tx, p *model.Product) error {
	n := atomic.AddInt32(&r.inFlight, 1)
	defer atomic.AddInt32(&r.inFlight, -1)
	for {
		max := atomic.LoadInt32(&r.MaxInFlight)
		if n <= max || atomic.CompareAndSwapInt32(&r.MaxInFlight, max, n) {
			break
		}
	}
	if r.CreateFn != nil {
		return r.CreateFn(ctx, tx, p)
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *p
	r.db.products = append(r.db.products, &cp)
	return nil
}

func (r *MockProductRepo) ListBySeller(ctx context.Context, tx repository.Tx, sellerID string) ([]*model.Product, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*model.Product
	for _, p := range r.db.products {
		if p.SellerID == sellerID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MockProductRepo) Count(ctx context.Context, tx repository.Tx) (int, error) {
	_, _, _, n := r.db.counts()
	return n, nil
}

// =============================
// Adapters
// =============================

// MockUploader hands out deterministic URLs and can fail selected payloads.
type MockUploader struct {
	mu      sync.Mutex
	seq     int
	Folders map[string]int
	FailOn  func(img model.ImagePayload, folder string) error
}

var _ adapter.ImageUploader = (*MockUploader)(nil)

func NewMockUploader() *MockUploader {
	return &MockUploader{Folders: map[string]int{}}
}

func (u *MockUploader) Upload(ctx context.Context, img model.ImagePayload, folder string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if u.FailOn != nil {
		if err := u.FailOn(img, folder); err != nil {
			return "", err
		}
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.seq++
	u.Folders[folder]++
	return fmt.Sprintf("https://bucket.s3.ap-south-1.amazonaws.com/%s/%d.jpg", folder, u.seq), nil
}

func (u *MockUploader) Total() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, c := range u.Folders {
		n += c
	}
	return n
}
