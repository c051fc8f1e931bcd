package handler

import (
	"log/slog"
	"net/http"

	"yearbook/internal/delivery/api/response"
	"yearbook/internal/domain/entity"
	domainerrors "yearbook/internal/domain/errors"
	"yearbook/internal/domain/service"
	"yearbook/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StoreHandlerParams holds dependencies for StoreHandler, injected by Fx.
type StoreHandlerParams struct {
	fx.In

	StorefrontUC usecase.StorefrontUsecase
	Feed         service.ChangeFeed
	Logger       *slog.Logger
}

// StoreHandler serves the public storefront and its administration.
type StoreHandler struct {
	storefrontUC usecase.StorefrontUsecase
	feed         service.ChangeFeed
	logger       *slog.Logger
}

// NewStoreHandler is the constructor for StoreHandler
func NewStoreHandler(params StoreHandlerParams) *StoreHandler {
	return &StoreHandler{
		storefrontUC: params.StorefrontUC,
		feed:         params.Feed,
		logger:       params.Logger,
	}
}

// ProductRequest represents the editable fields of a product
type ProductRequest struct {
	Name     string   `json:"name" validate:"required,max=200"`
	Features []string `json:"features" validate:"max=50,dive,max=200"`
	Price    float64  `json:"price" validate:"gte=0"`
	PhotoURL string   `json:"photo_url" validate:"max=2048"`
}

func (r *ProductRequest) input() usecase.ProductInput {
	return usecase.ProductInput{
		Name:     r.Name,
		Features: r.Features,
		Price:    r.Price,
		PhotoURL: r.PhotoURL,
	}
}

// CheckoutRequest represents a simulated purchase
type CheckoutRequest struct {
	ProductID       string                 `json:"product_id" validate:"required,uuid"`
	CustomerName    string                 `json:"customer_name" validate:"required,max=200"`
	Email           string                 `json:"email" validate:"required,email"`
	ShippingAddress entity.ShippingAddress `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method" validate:"required,oneof=creditCard bankTransfer"`
}

// UpdateOrderStatusRequest moves an order through fulfilment
type UpdateOrderStatusRequest struct {
	Status   string           `json:"status" validate:"required,oneof=pending paid shipped"`
	Tracking *entity.Tracking `json:"tracking"`
}

// ListProducts returns the catalogue
func (h *StoreHandler) ListProducts(c echo.Context) error {
	products, err := h.storefrontUC.ListProducts(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, products)
}

// GetProduct returns one product
func (h *StoreHandler) GetProduct(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.storefrontUC.GetProduct(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// CreateProduct adds a product to the catalogue
func (h *StoreHandler) CreateProduct(c echo.Context) error {
	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.storefrontUC.CreateProduct(c.Request().Context(), req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, product)
}

// UpdateProduct overwrites a product
func (h *StoreHandler) UpdateProduct(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req ProductRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	product, err := h.storefrontUC.UpdateProduct(c.Request().Context(), id, req.input())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, product)
}

// DeleteProduct removes a product
func (h *StoreHandler) DeleteProduct(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.storefrontUC.DeleteProduct(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// Checkout places a pending order
func (h *StoreHandler) Checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails("product_id must be a UUID"))
	}

	order, err := h.storefrontUC.Checkout(c.Request().Context(), usecase.CheckoutInput{
		ProductID:       productID,
		CustomerName:    req.CustomerName,
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   entity.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, order)
}

// PaymentMethods returns the methods checkout accepts
func (h *StoreHandler) PaymentMethods(c echo.Context) error {
	methods, err := h.storefrontUC.PaymentMethods(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, methods)
}

// ListOrders returns every order, newest first
func (h *StoreHandler) ListOrders(c echo.Context) error {
	orders, err := h.storefrontUC.ListOrders(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders)
}

// MyOrders returns the orders placed with the caller's email
func (h *StoreHandler) MyOrders(c echo.Context) error {
	email, ok := callerEmail(c)
	if !ok {
		return unauthorized(c)
	}

	orders, err := h.storefrontUC.ListOrdersByEmail(c.Request().Context(), email)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, orders)
}

// UpdateOrderStatus changes the fulfilment state of an order
func (h *StoreHandler) UpdateOrderStatus(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var req UpdateOrderStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.storefrontUC.UpdateOrderStatus(c.Request().Context(), id, usecase.UpdateOrderStatusInput{
		Status:   entity.OrderStatus(req.Status),
		Tracking: req.Tracking,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// OrderEvents streams order changes
func (h *StoreHandler) OrderEvents(c echo.Context) error {
	return streamTopic(c, h.feed, entity.TopicOrders, h.logger)
}

// GetPaymentSettings returns the payment integrations
func (h *StoreHandler) GetPaymentSettings(c echo.Context) error {
	settings, err := h.storefrontUC.GetPaymentSettings(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, settings)
}

// SavePaymentSettings overwrites the payment integrations
func (h *StoreHandler) SavePaymentSettings(c echo.Context) error {
	settings := entity.DefaultPaymentSettings()
	if err := c.Bind(settings); err != nil {
		return response.BindingError(c, "Invalid payment settings")
	}

	saved, err := h.storefrontUC.SavePaymentSettings(c.Request().Context(), settings)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, saved)
}

// GetCargoSettings returns the cargo integrations
func (h *StoreHandler) GetCargoSettings(c echo.Context) error {
	settings, err := h.storefrontUC.GetCargoSettings(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, settings)
}

// SaveCargoSettings overwrites the cargo integrations
func (h *StoreHandler) SaveCargoSettings(c echo.Context) error {
	settings := entity.DefaultCargoSettings()
	if err := c.Bind(settings); err != nil {
		return response.BindingError(c, "Invalid cargo settings")
	}

	saved, err := h.storefrontUC.SaveCargoSettings(c.Request().Context(), settings)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, saved)
}
