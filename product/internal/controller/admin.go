package controller

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/nayarn/internal/errors"
	inHttp "github.com/Alturino/nayarn/internal/http"
	"github.com/Alturino/nayarn/internal/log"
	"github.com/Alturino/nayarn/internal/middleware"
	inOtel "github.com/Alturino/nayarn/internal/otel"
	"github.com/Alturino/nayarn/product/internal/otel"
	"github.com/Alturino/nayarn/product/pkg/request"
)

func invalidField(field, message string) error {
	return &inErrors.ValidationError{Fields: map[string]string{field: message}}
}

func (ctrl ProductController) InsertProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController InsertProduct").
		Str("admin", middleware.AdminFromContext(c)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Trace().Msg("validating request body")
	reqBody := request.UpsertProduct{}
	if err := inHttp.DecodeAndValidate(r, ctrl.validate, &reqBody, request.ValidationMessages); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Trace().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "inserting product").Logger()
	logger.Info().Msg("inserting product")
	c = logger.WithContext(c)
	product, err := ctrl.products.InsertProduct(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed inserting product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("inserted product")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusCreated, "inserted product", map[string]interface{}{
		"product": product,
	})
}

func (ctrl ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController UpdateProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController UpdateProduct").
		Str("admin", middleware.AdminFromContext(c)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request").Logger()
	logger.Trace().Msg("validating request")
	reqBody := request.UpsertProduct{}
	id, err := inHttp.PathUUID(r, "productId")
	if err == nil {
		err = inHttp.DecodeAndValidate(r, ctrl.validate, &reqBody, request.ValidationMessages)
	}
	if err != nil {
		err = fmt.Errorf("failed validating request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Trace().Msg("validated request")

	logger = logger.With().Str(log.KeyProcess, "updating product").Str(log.KeyProductID, id.String()).Logger()
	logger.Info().Msg("updating product")
	c = logger.WithContext(c)
	product, err := ctrl.products.UpdateProduct(c, id, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("updated product")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "updated product", map[string]interface{}{
		"product": product,
	})
}

func (ctrl ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController DeleteProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController DeleteProduct").
		Str("admin", middleware.AdminFromContext(c)).
		Logger()

	id, err := inHttp.PathUUID(r, "productId")
	if err != nil {
		err = fmt.Errorf("failed validating productId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "deleting product").Str(log.KeyProductID, id.String()).Logger()
	logger.Info().Msg("deleting product")
	c = logger.WithContext(c)
	if err := ctrl.products.DeleteProduct(c, id); err != nil {
		err = fmt.Errorf("failed deleting product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("deleted product")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "deleted product", map[string]interface{}{
		"productId": id,
	})
}

func (ctrl ProductController) InsertProductImage(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController InsertProductImage")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController InsertProductImage").
		Str("admin", middleware.AdminFromContext(c)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request").Logger()
	logger.Trace().Msg("validating request")
	reqBody := request.InsertProductImage{}
	productID, err := inHttp.PathUUID(r, "productId")
	if err == nil {
		err = inHttp.DecodeAndValidate(r, ctrl.validate, &reqBody, request.ValidationMessages)
	}
	if err != nil {
		err = fmt.Errorf("failed validating request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Trace().Msg("validated request")

	logger = logger.With().
		Str(log.KeyProcess, "inserting product image").
		Str(log.KeyProductID, productID.String()).
		Logger()
	logger.Info().Msg("inserting product image")
	c = logger.WithContext(c)
	image, err := ctrl.products.InsertProductImage(c, productID, reqBody)
	if err != nil {
		err = fmt.Errorf("failed inserting product image with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("inserted product image")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusCreated, "inserted product image", map[string]interface{}{
		"image": image,
	})
}

func (ctrl ProductController) DeleteProductImage(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController DeleteProductImage")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController DeleteProductImage").
		Str("admin", middleware.AdminFromContext(c)).
		Logger()

	imageID, err := inHttp.PathUUID(r, "imageId")
	if err != nil {
		err = fmt.Errorf("failed validating imageId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "deleting product image").Str(log.KeyImageID, imageID.String()).Logger()
	logger.Info().Msg("deleting product image")
	c = logger.WithContext(c)
	if err := ctrl.products.DeleteProductImage(c, imageID); err != nil {
		err = fmt.Errorf("failed deleting product image with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("deleted product image")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "deleted product image", map[string]interface{}{
		"imageId": imageID,
	})
}

func (ctrl ProductController) InsertCollection(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController InsertCollection")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController InsertCollection").
		Str("admin", middleware.AdminFromContext(c)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	logger.Trace().Msg("validating request body")
	reqBody := request.UpsertCollection{}
	if err := inHttp.DecodeAndValidate(r, ctrl.validate, &reqBody, request.ValidationMessages); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Trace().Msg("validated request body")

	logger = logger.With().Str(log.KeyProcess, "inserting collection").Logger()
	logger.Info().Msg("inserting collection")
	c = logger.WithContext(c)
	collection, err := ctrl.collections.InsertCollection(c, reqBody)
	if err != nil {
		err = fmt.Errorf("failed inserting collection with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("inserted collection")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusCreated, "inserted collection", map[string]interface{}{
		"collection": collection,
	})
}

func (ctrl ProductController) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController UpdateCollection")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController UpdateCollection").
		Str("admin", middleware.AdminFromContext(c)).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "validating request").Logger()
	logger.Trace().Msg("validating request")
	reqBody := request.UpsertCollection{}
	id, err := inHttp.PathUUID(r, "collectionId")
	if err == nil {
		err = inHttp.DecodeAndValidate(r, ctrl.validate, &reqBody, request.ValidationMessages)
	}
	if err != nil {
		err = fmt.Errorf("failed validating request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Trace().Msg("validated request")

	logger = logger.With().Str(log.KeyProcess, "updating collection").Str(log.KeyCollectionID, id.String()).Logger()
	logger.Info().Msg("updating collection")
	c = logger.WithContext(c)
	collection, err := ctrl.collections.UpdateCollection(c, id, reqBody)
	if err != nil {
		err = fmt.Errorf("failed updating collection with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("updated collection")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "updated collection", map[string]interface{}{
		"collection": collection,
	})
}

func (ctrl ProductController) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController DeleteCollection")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductController DeleteCollection").
		Str("admin", middleware.AdminFromContext(c)).
		Logger()

	id, err := inHttp.PathUUID(r, "collectionId")
	if err != nil {
		err = fmt.Errorf("failed validating collectionId with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "deleting collection").Str(log.KeyCollectionID, id.String()).Logger()
	logger.Info().Msg("deleting collection")
	c = logger.WithContext(c)
	if err := ctrl.collections.DeleteCollection(c, id); err != nil {
		err = fmt.Errorf("failed deleting collection with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		inHttp.WriteError(c, w, map[string]string{}, err)
		return
	}
	logger.Info().Msg("deleted collection")

	inHttp.WriteSuccess(c, w, map[string]string{}, http.StatusOK, "deleted collection", map[string]interface{}{
		"collectionId": id,
	})
}
