package handler

import (
	"errors"
	"net/http"

	appcatalog "github.com/campusmarket/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ListingHandler serves the listing feed and listing lifecycle
type ListingHandler struct {
	BaseHandler
	listings *appcatalog.ListingService
}

// NewListingHandler creates a new listing handler
func NewListingHandler(listings *appcatalog.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// DeletedResponse confirms a removal
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

// Index lists listings newest first
func (h *ListingHandler) Index(c *gin.Context) {
	var req appcatalog.ListListingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.listings.List(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// NewForm describes the listing form
func (h *ListingHandler) NewForm(c *gin.Context) {
	if _, ok := h.currentAccountID(c); !ok {
		return
	}
	h.Success(c, listingForm)
}

// Create posts a listing from a multipart form (with optional image) or a JSON body
func (h *ListingHandler) Create(c *gin.Context) {
	owner, ok := h.currentAccountID(c)
	if !ok {
		return
	}

	var req appcatalog.CreateListingRequest
	if err := c.ShouldBind(&req); err != nil {
		h.BindError(c, err)
		return
	}

	var upload *appcatalog.ImageUpload
	file, err := c.FormFile("image")
	switch {
	case err == nil:
		f, openErr := file.Open()
		if openErr != nil {
			h.HandleError(c, openErr)
			return
		}
		defer f.Close()
		upload = &appcatalog.ImageUpload{Filename: file.Filename, Size: file.Size, Content: f}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	default:
		h.BindError(c, err)
		return
	}

	listing, err := h.listings.Create(c.Request.Context(), owner, req, upload)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, listing)
}

// Show returns one listing with its comments
func (h *ListingHandler) Show(c *gin.Context) {
	id, ok := h.pathID(c, "id", "Listing")
	if !ok {
		return
	}

	listing, err := h.listings.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, listing)
}

// Delete removes a listing owned by the caller along with its comments and cart entries
func (h *ListingHandler) Delete(c *gin.Context) {
	requester, ok := h.currentAccountID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id", "Listing")
	if !ok {
		return
	}

	if err := h.listings.Delete(c.Request.Context(), id, requester); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, DeletedResponse{Deleted: true})
}
