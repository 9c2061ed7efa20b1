package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/shajghor/shajghor-backend/internal/app/repository"
	"github.com/shajghor/shajghor-backend/pkg/logger"
	"github.com/shajghor/shajghor-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrVariantNotFound  = errors.New("product variant not found")
)

// CartStore is the optional durable snapshot behind the in-memory carts.
// Load returning (nil, nil) means no snapshot exists. Store failures are
// logged and swallowed; memory stays authoritative.
type CartStore interface {
	Save(ctx context.Context, token string, payload []byte, ttl time.Duration) error
	Load(ctx context.Context, token string) ([]byte, error)
	Delete(ctx context.Context, token string) error
}

// CartService keeps guest carts keyed by an opaque token. Carts live for
// the lifetime of the token, not the lifetime of an order: placing an
// order clears the cart, but abandonment just lets it idle out.
type CartService interface {
	GetCart(token string) *model.Cart
	AddItem(token string, productID uint, variantID *uint) (*model.Cart, error)
	UpdateQuantity(token string, productID uint, variantID *uint, quantity int) (*model.Cart, error)
	RemoveItem(token string, productID uint, variantID *uint) (*model.Cart, error)
	ClearCart(token string) *model.Cart
	PurgeExpired(maxIdle time.Duration) int
}

type cartService struct {
	mu          sync.Mutex
	carts       map[string]*model.Cart
	productRepo repository.ProductRepository
	store       CartStore
	storeTTL    time.Duration
}

// NewCartService builds the cart service. store may be nil, in which
// case carts are purely in-memory.
func NewCartService(productRepo repository.ProductRepository, store CartStore, storeTTL time.Duration) CartService {
	return &cartService{
		carts:       make(map[string]*model.Cart),
		productRepo: productRepo,
		store:       store,
		storeTTL:    storeTTL,
	}
}

// GetCart returns the cart for a token, restoring it from the snapshot
// store if the process restarted, or creating an empty one. An empty
// token gets a fresh token and cart.
func (s *cartService) GetCart(token string) *model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(token)
}

func (s *cartService) getOrCreateLocked(token string) *model.Cart {
	if token != "" {
		if cart, ok := s.carts[token]; ok {
			return cart
		}
		if cart := s.restoreFromStore(token); cart != nil {
			s.carts[token] = cart
			return cart
		}
	} else {
		token = util.GenerateCartToken()
	}

	cart := &model.Cart{
		Token:         token,
		SchemaVersion: model.CartSchemaVersion,
		Items:         []model.CartItem{},
		UpdatedAt:     time.Now(),
	}
	s.carts[token] = cart

	logger.Debug("Cart created", map[string]interface{}{
		"cart_token": token,
	})
	return cart
}

func (s *cartService) restoreFromStore(token string) *model.Cart {
	if s.store == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	payload, err := s.store.Load(ctx, token)
	if err != nil {
		logger.Error("Failed to load cart snapshot", err, map[string]interface{}{
			"cart_token": token,
		})
		return nil
	}
	if payload == nil {
		return nil
	}

	var cart model.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		logger.Error("Failed to decode cart snapshot", err, map[string]interface{}{
			"cart_token": token,
		})
		return nil
	}
	if cart.SchemaVersion != model.CartSchemaVersion {
		logger.Warn("Discarding cart snapshot with stale schema", map[string]interface{}{
			"cart_token":     token,
			"schema_version": cart.SchemaVersion,
		})
		return nil
	}

	logger.Debug("Cart restored from snapshot store", map[string]interface{}{
		"cart_token": token,
		"item_count": cart.ItemCount(),
	})
	return &cart
}

func (s *cartService) snapshot(cart *model.Cart) {
	if s.store == nil {
		return
	}

	payload, err := json.Marshal(cart)
	if err != nil {
		logger.Error("Failed to encode cart snapshot", err, map[string]interface{}{
			"cart_token": cart.Token,
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := s.store.Save(ctx, cart.Token, payload, s.storeTTL); err != nil {
		logger.Error("Failed to save cart snapshot", err, map[string]interface{}{
			"cart_token": cart.Token,
		})
	}
}

// AddItem appends one unit of (product, variant) to the cart, merging
// into an existing line with the same identity. A nil variantID on a
// product that has variants resolves to the default variant, matching
// what the product page preselects.
func (s *cartService) AddItem(token string, productID uint, variantID *uint) (*model.Cart, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	var variant *model.ProductVariant
	if variantID != nil {
		variant = findVariant(product, *variantID)
		if variant == nil {
			return nil, ErrVariantNotFound
		}
	} else if len(product.Variants) > 0 {
		variant = product.DefaultVariant()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(token)

	resolvedVariantID := variantID
	if variant != nil {
		resolvedVariantID = &variant.ID
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].Matches(productID, resolvedVariantID) {
			cart.Items[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, model.CartItem{
			Product:  model.NewCartProductSnapshot(product),
			Variant:  model.NewCartVariantSnapshot(variant),
			Quantity: 1,
		})
	}
	cart.UpdatedAt = time.Now()
	s.snapshot(cart)

	logger.Debug("Cart item added", map[string]interface{}{
		"cart_token": cart.Token,
		"product_id": productID,
		"merged":     merged,
		"item_count": cart.ItemCount(),
	})
	return cart, nil
}

// UpdateQuantity sets a line's quantity to an absolute value. Zero or a
// negative value removes the line.
func (s *cartService) UpdateQuantity(token string, productID uint, variantID *uint, quantity int) (*model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(token)

	for i := range cart.Items {
		if cart.Items[i].Matches(productID, variantID) {
			if quantity <= 0 {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			} else {
				cart.Items[i].Quantity = quantity
			}
			cart.UpdatedAt = time.Now()
			s.snapshot(cart)
			return cart, nil
		}
	}

	return nil, ErrCartItemNotFound
}

func (s *cartService) RemoveItem(token string, productID uint, variantID *uint) (*model.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(token)

	for i := range cart.Items {
		if cart.Items[i].Matches(productID, variantID) {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			cart.UpdatedAt = time.Now()
			s.snapshot(cart)

			logger.Debug("Cart item removed", map[string]interface{}{
				"cart_token": cart.Token,
				"product_id": productID,
			})
			return cart, nil
		}
	}

	return nil, ErrCartItemNotFound
}

// ClearCart empties the cart but keeps the token alive.
func (s *cartService) ClearCart(token string) *model.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := s.getOrCreateLocked(token)
	cart.Items = []model.CartItem{}
	cart.UpdatedAt = time.Now()

	if s.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.store.Delete(ctx, cart.Token); err != nil {
			logger.Error("Failed to delete cart snapshot", err, map[string]interface{}{
				"cart_token": cart.Token,
			})
		}
	}

	logger.Debug("Cart cleared", map[string]interface{}{
		"cart_token": cart.Token,
	})
	return cart
}

// PurgeExpired drops carts idle longer than maxIdle and returns how many
// were removed. Run from the scheduler, not request paths.
func (s *cartService) PurgeExpired(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxIdle)
	purged := 0
	for token, cart := range s.carts {
		if cart.UpdatedAt.Before(cutoff) {
			delete(s.carts, token)
			purged++
		}
	}

	if purged > 0 {
		logger.Info("Expired carts purged", map[string]interface{}{
			"purged":    purged,
			"remaining": len(s.carts),
		})
	}
	return purged
}

func findVariant(product *model.Product, variantID uint) *model.ProductVariant {
	for i := range product.Variants {
		if product.Variants[i].ID == variantID {
			return &product.Variants[i]
		}
	}
	return nil
}
