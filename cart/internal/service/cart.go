package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/Alturino/nayarn/cart/internal/otel"
	"github.com/Alturino/nayarn/cart/pkg/request"
	"github.com/Alturino/nayarn/cart/pkg/response"
	"github.com/Alturino/nayarn/cart/pkg/session"
	"github.com/Alturino/nayarn/cart/pkg/store"
	inErrors "github.com/Alturino/nayarn/internal/errors"
	"github.com/Alturino/nayarn/internal/log"
	inOtel "github.com/Alturino/nayarn/internal/otel"
	productResponse "github.com/Alturino/nayarn/product/pkg/response"
)

type ProductFinder interface {
	FindProduct(c context.Context, id string) (productResponse.DisplayProduct, error)
}

type CartService struct {
	sessions *session.Registry
	products ProductFinder
}

func NewCartService(sessions *session.Registry, products ProductFinder) *CartService {
	return &CartService{sessions: sessions, products: products}
}

func (s *CartService) FindCart(c context.Context, sessionID string) response.Cart {
	_, span := otel.Tracer.Start(c, "CartService FindCart")
	defer span.End()

	return response.FromStore(sessionID, s.sessions.Get(sessionID))
}

// AddCartItem prices the line from the catalog so clients never set prices.
func (s *CartService) AddCartItem(
	c context.Context,
	sessionID string,
	param request.AddCartItem,
) (store.AddResult, response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService AddCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService AddCartItem").
		Str(log.KeySessionID, sessionID).
		Str(log.KeyProductID, param.ProductID).
		Str(log.KeySize, param.Size).
		Int(log.KeyQuantity, param.Quantity).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	c = logger.WithContext(c)
	product, err := s.products.FindProduct(c, param.ProductID)
	if err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return store.AddResult{}, response.Cart{}, err
	}
	logger.Info().Msg("found product")

	logger = logger.With().Str(log.KeyProcess, "validating size").Logger()
	logger.Trace().Msg("validating size")
	if err := checkSize(product.Sizes, param.Size); err != nil {
		err = fmt.Errorf("failed validating size with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return store.AddResult{}, response.Cart{}, err
	}
	logger.Trace().Msg("validated size")

	logger = logger.With().Str(log.KeyProcess, "adding to cart").Logger()
	cart := s.sessions.Get(sessionID)
	res := cart.AddToCart(store.Line{
		ProductID:          param.ProductID,
		Name:               product.Name,
		UnitPrice:          product.Price,
		Image:              product.PrimaryImage,
		Size:               param.Size,
		CustomMeasurements: param.CustomMeasurements,
	}, param.Quantity)
	logger.Info().Str("outcome", string(res.Outcome)).Msg(res.Message)

	return res, response.FromStore(sessionID, cart), nil
}

// UpdateCartItem sets an absolute quantity. Zero or less removes the line and,
// like RemoveCartItem, succeeds when the line is absent.
func (s *CartService) UpdateCartItem(
	c context.Context,
	sessionID string,
	param request.UpdateCartItem,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService UpdateCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService UpdateCartItem").
		Str(log.KeyProcess, "updating cart item quantity").
		Str(log.KeySessionID, sessionID).
		Str(log.KeyProductID, param.ProductID).
		Str(log.KeySize, param.Size).
		Int(log.KeyQuantity, param.Quantity).
		Logger()

	cart := s.sessions.Get(sessionID)
	if param.Quantity <= 0 {
		removed := cart.RemoveFromCart(param.ProductID, param.Size)
		logger.Info().Bool("removed", removed).Msg("removed cart item")
		return response.FromStore(sessionID, cart), nil
	}

	logger.Info().Msg("updating cart item quantity")
	if !cart.UpdateQuantity(param.ProductID, param.Size, param.Quantity) {
		err := fmt.Errorf(
			"cart line productId=%s size=%s: %w",
			param.ProductID,
			param.Size,
			inErrors.ErrNotFound,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("updated cart item quantity")

	return response.FromStore(sessionID, cart), nil
}

// RemoveCartItem is idempotent: removing an absent line succeeds.
func (s *CartService) RemoveCartItem(
	c context.Context,
	sessionID string,
	param request.RemoveCartItem,
) response.Cart {
	c, span := otel.Tracer.Start(c, "CartService RemoveCartItem")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService RemoveCartItem").
		Str(log.KeyProcess, "removing cart item").
		Str(log.KeySessionID, sessionID).
		Str(log.KeyProductID, param.ProductID).
		Str(log.KeySize, param.Size).
		Logger()

	cart := s.sessions.Get(sessionID)
	removed := cart.RemoveFromCart(param.ProductID, param.Size)
	logger.Info().Bool("removed", removed).Msg("removed cart item")

	return response.FromStore(sessionID, cart)
}

func (s *CartService) ClearCart(c context.Context, sessionID string) response.Cart {
	c, span := otel.Tracer.Start(c, "CartService ClearCart")
	defer span.End()

	cart := s.sessions.Get(sessionID)
	cart.Clear()
	zerolog.Ctx(c).Info().
		Str(log.KeyTag, "CartService ClearCart").
		Str(log.KeySessionID, sessionID).
		Msg("cleared cart")

	return response.FromStore(sessionID, cart)
}

func (s *CartService) EndSession(c context.Context, sessionID string) bool {
	c, span := otel.Tracer.Start(c, "CartService EndSession")
	defer span.End()

	ended := s.sessions.End(sessionID)
	zerolog.Ctx(c).Info().
		Str(log.KeyTag, "CartService EndSession").
		Str(log.KeySessionID, sessionID).
		Bool("ended", ended).
		Msg("ended cart session")
	return ended
}

func checkSize(sizes []string, size string) error {
	if len(sizes) == 0 {
		if size != "" {
			return &inErrors.ValidationError{
				Fields: map[string]string{"size": "product does not come in sizes"},
			}
		}
		return nil
	}
	if !slices.Contains(sizes, size) {
		return &inErrors.ValidationError{
			Fields: map[string]string{"size": fmt.Sprintf("size must be one of %v", sizes)},
		}
	}
	return nil
}
