package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	request "handcrafted_gifts/internal/adapter/http/dto/request"
	response "handcrafted_gifts/internal/adapter/http/dto/response"
	"handcrafted_gifts/internal/domain/entities"
	"handcrafted_gifts/internal/usecase"
	"handcrafted_gifts/internal/usecase/interfaces"
	"handcrafted_gifts/pkg"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 10 << 20

var (
	errInvalidProductPayload = pkg.NewDomainErrorSimple("INVALID_PRODUCT_INPUT", "Invalid product payload", http.StatusBadRequest)
	errMissingImage          = pkg.NewDomainErrorSimple("INVALID_IMAGE", "Send a file or an image_url", http.StatusBadRequest)
)

// ProductHandler serves the public catalog and the admin product endpoints.
type ProductHandler struct {
	usecase usecase.IProductUseCase
}

func NewProductHandler(uc usecase.IProductUseCase) *ProductHandler {
	return &ProductHandler{usecase: uc}
}

// ListProducts godoc
// @Summary      List in-stock products
// @Tags         products
// @Produce      json
// @Param        category  query  string  false  "embroidery, hanky or accessories"
// @Param        featured  query  bool    false  "only featured products"
// @Success      200  {array}  response.ProductResponse
// @Router       /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	h.list(c, false)
}

// ListAllProducts is the admin listing; it includes out-of-stock products.
func (h *ProductHandler) ListAllProducts(c *gin.Context) {
	h.list(c, true)
}

func (h *ProductHandler) list(c *gin.Context, includeOutOfStock bool) {
	filter := interfaces.ProductFilter{
		Category:          entities.Category(strings.ToLower(strings.TrimSpace(c.Query("category")))),
		IncludeOutOfStock: includeOutOfStock,
	}
	if raw := c.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(errInvalidPayload.HTTPStatus, errInvalidPayload.ToHTTPError())
			return
		}
		filter.FeaturedOnly = featured
	}

	products, err := h.usecase.List(c.Request.Context(), filter)
	if err != nil {
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromProducts(products))
}

// GetProduct godoc
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path  string  true  "product id"
// @Success      200  {object}  response.ProductResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.usecase.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromProduct(p))
}

// CreateProduct godoc
// @Summary      Create a product
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        payload  body  request.ProductRequest  true  "product"
// @Success      201  {object}  response.ProductResponse
// @Router       /admin/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var payload request.ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProductPayload.HTTPStatus, errInvalidProductPayload.ToHTTPError())
		return
	}

	p, err := h.usecase.Create(c.Request.Context(), payload.ToEntity())
	if err != nil {
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.FromProduct(p))
}

// UpdateProduct replaces every editable field of a product.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var payload request.ProductRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidProductPayload.HTTPStatus, errInvalidProductPayload.ToHTTPError())
		return
	}

	p, err := h.usecase.Update(c.Request.Context(), c.Param("id"), payload.ToEntity())
	if err != nil {
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromProduct(p))
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadImage godoc
// @Summary      Upload a product image
// @Description  Accepts a multipart "file" or an "image_url" to fetch and re-host.
// @Tags         admin
// @Security     Bearer
// @Accept       mpfd
// @Produce      json
// @Success      201  {object}  response.ImageResponse
// @Router       /admin/uploads [post]
func (h *ProductHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes+1<<20)

	var (
		url string
		err error
	)
	if fh, ferr := c.FormFile("file"); ferr == nil {
		f, openErr := fh.Open()
		if openErr != nil {
			c.JSON(errMissingImage.HTTPStatus, errMissingImage.ToHTTPError())
			return
		}
		defer f.Close()
		data, readErr := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
		if readErr != nil {
			c.JSON(errMissingImage.HTTPStatus, errMissingImage.ToHTTPError())
			return
		}
		url, err = h.usecase.UploadImage(c.Request.Context(), usecase.ImageUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	} else {
		var payload request.ImageImportRequest
		if bindErr := c.ShouldBind(&payload); bindErr != nil {
			c.JSON(errMissingImage.HTTPStatus, errMissingImage.ToHTTPError())
			return
		}
		url, err = h.usecase.ImportImage(c.Request.Context(), payload.ImageURL)
	}
	if err != nil {
		appErr := mapProductError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusCreated, response.ImageResponse{URL: url})
}

func mapProductError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidProductID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidProduct):
		return pkg.NewDomainError("INVALID_PRODUCT_INPUT", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidImage):
		return pkg.NewDomainError("INVALID_IMAGE", err.Error(), err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrImageSourceNotReachable):
		return pkg.NewDomainError("IMAGE_SOURCE_UNREACHABLE", "Could not download the image", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrImageStoreNotConfigured):
		return pkg.NewDomainError("IMAGE_STORE_UNAVAILABLE", "Image uploads are not configured", err, http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrProductNotFound):
		return pkg.NewDomainErrorSimple("PRODUCT_NOT_FOUND", "Product not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
