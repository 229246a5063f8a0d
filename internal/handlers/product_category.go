package handlers

import (
	"context"
	"net/http"

	"github.com/developia-II/vendor-lifecycle/internal/services/category"
	"github.com/developia-II/vendor-lifecycle/utils"
	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categories category.Service
}

func NewCategoryHandler(categories category.Service) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

func (h *CategoryHandler) CreateProductCategory(c *gin.Context) {
	// Role check is handled by RoleMiddleware in routes.go
	var in category.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse("Invalid json payload"))
		return
	}
	if err := validate.Struct(in); err != nil {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	ctg, err := h.categories.Create(ctx, in)
	if err != nil {
		respondError(c, err)
		return
	}
	res := gin.H{
		"id":           ctg.ID,
		"categoryName": ctg.Name,
		"slug":         ctg.Slug,
		"parentId":     ctg.ParentID,
		"createdAt":    ctg.CreatedAt,
	}
	c.JSON(http.StatusCreated, utils.SuccessResponse("category created successfully", res))
}

func (h *CategoryHandler) GetAllProductCategories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	categories, err := h.categories.List(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.SuccessResponse("categories fetched successfully", gin.H{"categories": categories}))
}
