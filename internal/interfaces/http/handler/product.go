package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/shop/backend/internal/application/catalog"
	"github.com/shop/backend/internal/interfaces/http/dto"
)

// ProductHandler serves the storefront catalog and product administration
type ProductHandler struct {
	BaseHandler
	products *catalogapp.ProductService
}

// NewProductHandler creates a ProductHandler
func NewProductHandler(svc *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{products: svc}
}

// List godoc
// @Summary      List products in the shop
// @Tags         products
// @Produce      json
// @Param        search    query string false "Name or SKU contains"
// @Param        order_by  query string false "Sort column"
// @Param        sort      query string false "asc or desc"
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	h.list(c, true)
}

// GetBySlug godoc
// @Summary      Show a product of the shop
// @Tags         products
// @Produce      json
// @Param        slug path string true "Product slug"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /products/{slug} [get]
func (h *ProductHandler) GetBySlug(c *gin.Context) {
	p, err := h.products.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// AdminList godoc
// @Summary      List all products
// @Description  Includes inactive products
// @Tags         admin-products
// @Produce      json
// @Param        search    query string false "Name or SKU contains"
// @Param        order_by  query string false "Sort column"
// @Param        sort      query string false "asc or desc"
// @Param        page      query int    false "Page" default(1)
// @Param        page_size query int    false "Page size" default(20)
// @Success      200 {object} APIResponse[[]catalogapp.ProductResponse]
// @Security     BearerAuth
// @Router       /admin/products [get]
func (h *ProductHandler) AdminList(c *gin.Context) {
	h.list(c, false)
}

func (h *ProductHandler) list(c *gin.Context, activeOnly bool) {
	var f catalogapp.ProductListFilter
	if !h.bindQuery(c, &f) {
		return
	}
	page, err := h.products.List(c.Request.Context(), f, activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Paginated(c, page)
}

// Get godoc
// @Summary      Show a product
// @Tags         admin-products
// @Produce      json
// @Param        id path int true "Product ID"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	p, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Create godoc
// @Summary      Create a product
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.ProductRequest true "Product"
// @Success      201 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req catalogapp.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, p)
}

// Update godoc
// @Summary      Update a product
// @Tags         admin-products
// @Accept       json
// @Produce      json
// @Param        id path int true "Product ID"
// @Param        request body catalogapp.ProductRequest true "Product"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalogapp.ProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	p, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

// Delete godoc
// @Summary      Delete a product
// @Tags         admin-products
// @Param        id path int true "Product ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// UploadCover godoc
// @Summary      Upload a product cover
// @Description  JPEG, PNG, GIF or WebP up to 5MB, sent as the "cover" form file
// @Tags         admin-products
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path     int  true "Product ID"
// @Param        cover formData file true "Cover image"
// @Success      200 {object} APIResponse[catalogapp.ProductResponse]
// @Failure      413 {object} ErrorResponse
// @Failure      415 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /admin/products/{id}/cover [post]
func (h *ProductHandler) UploadCover(c *gin.Context) {
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}

	fh, err := c.FormFile("cover")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeCoverTooLarge, "Cover image cannot exceed 5MB")
			return
		}
		h.BadRequest(c, "Missing cover file")
		return
	}
	if fh.Size > catalogapp.MaxCoverSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeCoverTooLarge, "Cover image cannot exceed 5MB")
		return
	}

	f, err := fh.Open()
	if err != nil {
		h.BadRequest(c, "Unreadable cover file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, catalogapp.MaxCoverSize+1))
	if err != nil {
		h.BadRequest(c, "Unreadable cover file")
		return
	}

	p, err := h.products.UploadCover(c.Request.Context(), id, fh.Filename, data)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}
