package usecase

import (
	"context"
	"sync"

	"storefront/internal/domain/model"
	"storefront/internal/notify"
	repo "storefront/internal/repository"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// スナップショットを置く既定のキー
const DefaultCartStorageKey = "@storefront:cart"

var tracer = otel.Tracer("storefront/internal/usecase")

type UpdateProductAmount struct {
	ProductID int64
	Amount    int64
}

type CartStoreOption func(*CartStore)

func WithStorageKey(key string) CartStoreOption {
	return func(s *CartStore) {
		if key != "" {
			s.key = key
		}
	}
}

func WithLogger(log *zap.Logger) CartStoreOption {
	return func(s *CartStore) {
		if log != nil {
			s.log = log
		}
	}
}

type subscriber struct {
	id uint64
	fn func(model.Cart)
}

// CartStore はセッション中のカートを1つだけ持つ。
// 更新は writeMu で1本ずつ流す（在庫取得→計算→保存→差し替え）。購読者への通知は writeMu の外。
// 読み取りは mu だけを見るので、カタログ通信中でも待たない。
type CartStore struct {
	catalog  repo.ProductCatalog
	storage  repo.SnapshotStorage
	notifier notify.Notifier
	log      *zap.Logger
	key      string

	writeMu sync.Mutex

	mu   sync.RWMutex
	cart model.Cart

	subMu   sync.Mutex
	nextSub uint64
	subs    []subscriber
}

// DI。生成時にスナップショットを読み込む（読めなければ空カート）。
func NewCartStore(
	ctx context.Context,
	catalog repo.ProductCatalog,
	storage repo.SnapshotStorage,
	notifier notify.Notifier,
	opts ...CartStoreOption,
) *CartStore {
	s := &CartStore{
		catalog:  catalog,
		storage:  storage,
		notifier: notifier,
		log:      zap.NewNop(),
		key:      DefaultCartStorageKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cart = s.load(ctx)
	return s
}

func (s *CartStore) load(ctx context.Context) model.Cart {
	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		s.log.Warn("cart snapshot read failed, starting empty", zap.String("key", s.key), zap.Error(err))
		return model.Cart{}
	}
	if !ok {
		return model.Cart{}
	}

	cart, err := model.ParseCart(raw)
	if err != nil {
		s.log.Warn("cart snapshot is corrupt, starting empty", zap.String("key", s.key), zap.Error(err))
		return model.Cart{}
	}

	cart, dropped := cart.Normalize()
	if dropped > 0 {
		s.log.Warn("dropped invalid cart entries", zap.String("key", s.key), zap.Int("dropped", dropped))
	}
	return cart
}

// 現在のカートのコピー
func (s *CartStore) Cart() model.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cart.Clone()
}

// fn は保存が成功するたびに新しいカートで呼ばれる。
// 呼び出しは更新ロックを外した後なので、fn の中から AddProduct などを呼んでもよい。
// 複数の更新が同時に走ると fn も並行に呼ばれうる。
func (s *CartStore) Subscribe(fn func(model.Cart)) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// AddProduct はカートに無ければ1個で追加し、あれば在庫の範囲で1個増やす。
func (s *CartStore) AddProduct(ctx context.Context, productID int64) error {
	ctx, span := tracer.Start(ctx, "CartStore.AddProduct", trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()

	return s.mutate(func() (model.Cart, error) {
		return s.addProduct(ctx, productID)
	})
}

func (s *CartStore) addProduct(ctx context.Context, productID int64) (model.Cart, error) {
	stock, err := s.catalog.GetStock(ctx, productID)
	if err != nil {
		return nil, s.fail(ctx, KindCatalog, MsgAddFailed, err)
	}

	current := s.Cart()
	existing, inCart := current.Find(productID)

	switch {
	case !inCart && stock.Amount > 0:
		p, err := s.catalog.GetProduct(ctx, productID)
		if err != nil {
			return nil, s.fail(ctx, KindCatalog, MsgAddFailed, err)
		}
		p.ID = productID
		p.Amount = 1
		return s.commit(ctx, current.Append(p), MsgAddFailed)

	case inCart && existing.Amount < stock.Amount:
		// 在庫と同数のときはここに来ない（在庫切れ扱い）
		return s.applyAmount(ctx, current, stock, UpdateProductAmount{
			ProductID: productID,
			Amount:    existing.Amount + 1,
		}, MsgAddFailed)

	default:
		return nil, s.fail(ctx, KindOutOfStock, MsgOutOfStock, nil)
	}
}

// RemoveProduct はカートから外す。無い id は何もしない（エラーにしない）。
func (s *CartStore) RemoveProduct(ctx context.Context, productID int64) error {
	ctx, span := tracer.Start(ctx, "CartStore.RemoveProduct", trace.WithAttributes(attribute.Int64("product.id", productID)))
	defer span.End()

	return s.mutate(func() (model.Cart, error) {
		return s.commit(ctx, s.Cart().Without(productID), MsgRemoveFailed)
	})
}

// UpdateProductAmount は数量を絶対値で差し替える。1未満は削除ではなくエラー。
func (s *CartStore) UpdateProductAmount(ctx context.Context, in UpdateProductAmount) error {
	ctx, span := tracer.Start(ctx, "CartStore.UpdateProductAmount", trace.WithAttributes(
		attribute.Int64("product.id", in.ProductID),
		attribute.Int64("product.amount", in.Amount),
	))
	defer span.End()

	return s.mutate(func() (model.Cart, error) {
		stock, err := s.catalog.GetStock(ctx, in.ProductID)
		if err != nil {
			return nil, s.fail(ctx, KindCatalog, MsgUpdateFailed, err)
		}
		return s.applyAmount(ctx, s.Cart(), stock, in, MsgUpdateFailed)
	})
}

// fn は writeMu の中で走る。通知はロックを外してから。
func (s *CartStore) mutate(fn func() (model.Cart, error)) error {
	next, err := func() (model.Cart, error) {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
		return fn()
	}()
	if err != nil {
		return err
	}
	s.publish(next)
	return nil
}

func (s *CartStore) applyAmount(ctx context.Context, current model.Cart, stock model.StockEntry, in UpdateProductAmount, failMsg string) (model.Cart, error) {
	if in.Amount < 1 {
		return nil, s.fail(ctx, KindValidation, MsgMinimumAmount, nil)
	}
	if in.Amount > stock.Amount {
		return nil, s.fail(ctx, KindOutOfStock, MsgOutOfStock, nil)
	}
	return s.commit(ctx, current.WithAmount(in.ProductID, in.Amount), failMsg)
}

// 保存→差し替えの順。保存に失敗したらメモリ上のカートも変えない。
func (s *CartStore) commit(ctx context.Context, next model.Cart, failMsg string) (model.Cart, error) {
	raw, err := next.Marshal()
	if err != nil {
		return nil, s.fail(ctx, KindPersistence, failMsg, err)
	}
	if err := s.storage.Set(ctx, s.key, raw); err != nil {
		return nil, s.fail(ctx, KindPersistence, failMsg, err)
	}

	s.mu.Lock()
	s.cart = next
	s.mu.Unlock()

	return next, nil
}

func (s *CartStore) publish(cart model.Cart) {
	s.subMu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(cart.Clone())
	}
}

// 失敗1回につき Notifier へ1件だけ出す
func (s *CartStore) fail(ctx context.Context, kind CartErrorKind, msg string, cause error) error {
	span := trace.SpanFromContext(ctx)
	if cause != nil {
		span.RecordError(cause)
	}
	span.SetStatus(codes.Error, msg)

	s.log.Info("cart operation rejected",
		zap.String("kind", string(kind)),
		zap.String("message", msg),
		zap.Error(cause),
	)
	s.notifier.Error(msg)

	return &CartError{Kind: kind, Message: msg, Err: cause}
}
