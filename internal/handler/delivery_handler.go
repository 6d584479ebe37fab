package handler

import (
	"net/http"
	"strconv"

	"greenbasket/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 配達パートナー向けのAPI
type DeliveryHandler struct {
	uc *usecase.DeliveryUsecase
}

func NewDeliveryHandler(uc *usecase.DeliveryUsecase) *DeliveryHandler {
	return &DeliveryHandler{uc: uc}
}

// deliveryロールのグループに登録する
func (h *DeliveryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/delivery/assignable", h.listAssignable)
	g.POST("/delivery/assign/:order_id", h.claim)
	g.POST("/delivery/delivered/:order_id", h.markDelivered)
}

func (h *DeliveryHandler) listAssignable(c echo.Context) error {
	out, err := h.uc.ListAssignable(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DeliveryHandler) claim(c echo.Context) error {
	partnerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid order_id"})
	}

	out, err := h.uc.Claim(c.Request().Context(), partnerID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *DeliveryHandler) markDelivered(c echo.Context) error {
	partnerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid order_id"})
	}

	out, err := h.uc.MarkDelivered(c.Request().Context(), partnerID, orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
