package handler

import (
	"net/http"
	"strconv"

	"greenbasket/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 管理者向け：商品登録・在庫調整・クーポン・統計
type AdminHandler struct {
	products *usecase.ProductUsecase
	coupons  *usecase.CouponUsecase
	stats    *usecase.AdminStatsUsecase
}

func NewAdminHandler(products *usecase.ProductUsecase, coupons *usecase.CouponUsecase, stats *usecase.AdminStatsUsecase) *AdminHandler {
	return &AdminHandler{products: products, coupons: coupons, stats: stats}
}

func (h *AdminHandler) RegisterRoutes(auth, admin *echo.Group) {
	admin.POST("/admin/products", h.createProduct)
	admin.PUT("/admin/products/:id", h.updateProduct)
	admin.DELETE("/admin/products/:id", h.deleteProduct)
	admin.PUT("/admin/products/:id/stock", h.setStock)
	admin.POST("/admin/coupons", h.createCoupon)
	admin.GET("/admin/stats", h.getStats)
	admin.GET("/admin/top-products", h.topProducts)
	auth.POST("/coupons/apply", h.applyCoupon)
}

type createProductRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Brand        string `json:"brand"`
	Price        int64  `json:"price"`
	Stock        int64  `json:"stock"`
	ImageURL     string `json:"image_url"`
	CategoryName string `json:"category_name"`
}

type updateProductRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Brand        string `json:"brand"`
	Price        int64  `json:"price"`
	ImageURL     string `json:"image_url"`
	CategoryName string `json:"category_name"`
	IsActive     bool   `json:"is_active"`
}

type setStockRequest struct {
	Stock int64 `json:"stock"`
}

type createCouponRequest struct {
	Code            string `json:"code"`
	DiscountPercent int    `json:"discount_percent"`
	Active          bool   `json:"active"`
}

type applyCouponRequest struct {
	Code string `json:"code"`
}

func (h *AdminHandler) createProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.products.Create(c.Request().Context(), usecase.CreateProductInput{
		Name:         req.Name,
		Description:  req.Description,
		Brand:        req.Brand,
		Price:        req.Price,
		Stock:        req.Stock,
		ImageURL:     req.ImageURL,
		CategoryName: req.CategoryName,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminHandler) updateProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.products.Update(c.Request().Context(), id, usecase.UpdateProductInput{
		Name:         req.Name,
		Description:  req.Description,
		Brand:        req.Brand,
		Price:        req.Price,
		ImageURL:     req.ImageURL,
		CategoryName: req.CategoryName,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) deleteProduct(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.products.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) setStock(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req setStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	if err := h.products.SetStock(c.Request().Context(), id, req.Stock); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) createCoupon(c echo.Context) error {
	var req createCouponRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.coupons.Create(c.Request().Context(), usecase.CreateCouponInput{
		Code:            req.Code,
		DiscountPercent: req.DiscountPercent,
		Active:          req.Active,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminHandler) applyCoupon(c echo.Context) error {
	var req applyCouponRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	out, err := h.coupons.Apply(c.Request().Context(), req.Code)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) getStats(c echo.Context) error {
	out, err := h.stats.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) topProducts(c echo.Context) error {
	limit := 5
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.stats.TopProducts(c.Request().Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
