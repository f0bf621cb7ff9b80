package controller

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	inHttp "github.com/Alturino/nayarn/internal/http"
	"github.com/Alturino/nayarn/internal/log"
	inOtel "github.com/Alturino/nayarn/internal/otel"
	"github.com/Alturino/nayarn/internal/validate"
	"github.com/Alturino/nayarn/product/internal/otel"
	"github.com/Alturino/nayarn/product/internal/service"
)

type ProductController struct {
	products    *service.ProductService
	collections *service.CollectionService
	validate    *validator.Validate
}

// AttachProductController mounts the storefront catalog on router and the
// catalog back office on admin.
func AttachProductController(
	router *mux.Router,
	admin *mux.Router,
	products *service.ProductService,
	collections *service.CollectionService,
) {
	controller := ProductController{products: products, collections: collections, validate: validate.New()}

	productRouter := router.PathPrefix("/products").Subrouter()
	productRouter.HandleFunc("", controller.ListProducts).Methods(http.MethodGet)
	productRouter.HandleFunc("/featured", controller.ListFeaturedProducts).Methods(http.MethodGet)
	productRouter.HandleFunc("/{productId}", controller.FindProductById).Methods(http.MethodGet)

	collectionRouter := router.PathPrefix("/collections").Subrouter()
	collectionRouter.HandleFunc("", controller.ListCollections).Methods(http.MethodGet)
	collectionRouter.HandleFunc("/{slug}", controller.FindCollectionBySlug).Methods(http.MethodGet)

	adminProducts := admin.PathPrefix("/products").Subrouter()
	adminProducts.HandleFunc("", controller.ListProducts).Methods(http.MethodGet)
	adminProducts.HandleFunc("", controller.InsertProduct).Methods(http.MethodPost)
	adminProducts.HandleFunc("/{productId}", controller.UpdateProduct).Methods(http.MethodPut)
	adminProducts.HandleFunc("/{productId}", controller.DeleteProduct).Methods(http.MethodDelete)
	adminProducts.HandleFunc("/{productId}/images", controller.InsertProductImage).Methods(http.MethodPost)
	adminProducts.HandleFunc("/{productId}/images/{imageId}", controller.DeleteProductImage).
		Methods(http.MethodDelete)

	adminCollections := admin.PathPrefix("/collections").Subrouter()
	adminCollections.HandleFunc("", controller.InsertCollection).Methods(http.MethodPost)
	adminCollections.HandleFunc("/{collectionId}", controller.UpdateCollection).Methods(http.MethodPut)
	adminCollections.HandleFunc("/{collectionId}", controller.DeleteCollection).Methods(http.MethodDelete)
}

func (ctrl ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController ListProducts")
	defer span.End()

	slug := r.URL.Query().Get("collection")
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController ListProducts").
		Str(log.KeyProcess, "listing products").
		Str(log.KeyCollectionSlug, slug).
		Logger()

	logger.Info().Msg("listing products")
	c = logger.WithContext(c)
	products, err := ctrl.products.ListProducts(c, slug)
	if err != nil {
		err = fmt.Errorf("failed listing products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("listed products")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "found products", map[string]interface{}{
		"products": products,
	})
}

func (ctrl ProductController) ListFeaturedProducts(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController ListFeaturedProducts")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController ListFeaturedProducts").
		Logger()

	limit := int64(service.FeaturedLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed <= 0 || parsed > 24 {
			err = fmt.Errorf("failed parsing limit=%s with error=%w", raw, invalidField("limit", "must be between 1 and 24"))
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			inHttp.WriteError(c, w, map[string]string{}, err)
			return
		}
		limit = parsed
	}

	logger = logger.With().Str(log.KeyProcess, "listing featured products").Logger()
	logger.Info().Msg("listing featured products")
	c = logger.WithContext(c)
	products, err := ctrl.products.ListFeaturedProducts(c, int32(limit))
	if err != nil {
		err = fmt.Errorf("failed listing featured products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("listed featured products")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "found featured products", map[string]interface{}{
		"products": products,
	})
}

func (ctrl ProductController) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindProductById").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating productId").Logger()
	logger.Trace().Msg("validating productId")
	id, err := inHttp.PathUUID(r, "productId")
	if err != nil {
		err = fmt.Errorf("failed validating productId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Trace().Msg("validated productId")

	logger = logger.With().Str(log.KeyProcess, "finding product").Str(log.KeyProductID, id.String()).Logger()
	logger.Info().Msg("finding product")
	c = logger.WithContext(c)
	product, err := ctrl.products.FindProductById(c, id)
	if err != nil {
		err = fmt.Errorf("failed finding product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("found product")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "found product", map[string]interface{}{
		"product": product,
	})
}

func (ctrl ProductController) ListCollections(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController ListCollections")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController ListCollections").
		Str(log.KeyProcess, "listing collections").
		Logger()

	logger.Info().Msg("listing collections")
	c = logger.WithContext(c)
	collections, err := ctrl.collections.ListCollections(c)
	if err != nil {
		err = fmt.Errorf("failed listing collections with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("listed collections")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "found collections", map[string]interface{}{
		"collections": collections,
	})
}

func (ctrl ProductController) FindCollectionBySlug(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindCollectionBySlug")
	defer span.End()

	slug := mux.Vars(r)["slug"]
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController FindCollectionBySlug").
		Str(log.KeyCollectionSlug, slug).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding collection").Logger()
	logger.Info().Msg("finding collection")
	c = logger.WithContext(c)
	collection, err := ctrl.collections.FindCollectionBySlug(c, slug)
	if err != nil {
		err = fmt.Errorf("failed finding collection with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("found collection")

	logger = logger.With().Str(log.KeyProcess, "listing collection products").Logger()
	logger.Info().Msg("listing collection products")
	c = logger.WithContext(c)
	products, err := ctrl.products.ListProducts(c, slug)
	if err != nil {
		err = fmt.Errorf("failed listing collection products with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("listed collection products")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "found collection", map[string]interface{}{
		"collection": collection,
		"products":   products,
	})
}
