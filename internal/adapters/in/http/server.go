// Package http exposes the order lifecycle over an echo HTTP server.
// Handlers translate requests into commands and queries, map typed domain
// errors to status codes, and respond with freshly assembled projections.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Error is the JSON error body returned by every failing route.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse is the body of delivery-facing routes, which report a
// boolean instead of a projection.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// TransitionRequest carries the optional payload fields a transition may
// consume. Unknown or absent fields are ignored by the state machine.
type TransitionRequest struct {
	Comment                *string    `json:"comment,omitempty"`
	Courier                *string    `json:"courier,omitempty"`
	CourierComment         *string    `json:"courierComment,omitempty"`
	DelayReason            *string    `json:"delayReason,omitempty"`
	CancellationReason     *string    `json:"cancellationReason,omitempty"`
	RejectionReason        *string    `json:"rejectionReason,omitempty"`
	ReturnReason           *string    `json:"returnReason,omitempty"`
	LongSearchReason       *string    `json:"longSearchReason,omitempty"`
	CallingAt              *string    `json:"callingAt,omitempty"`
	IndividualDeliveryTime *time.Time `json:"individualDeliveryTime,omitempty"`
	PaymentMethod          *string    `json:"paymentMethod,omitempty"`
	PaymentStatus          *string    `json:"paymentStatus,omitempty"`
}

// UpdateStateRequest is the body of the generic transition route: the
// target state name plus the transition payload.
type UpdateStateRequest struct {
	State string `json:"state"`
	TransitionRequest
}

// NewOrderProduct is one product row of an intake request.
type NewOrderProduct struct {
	ProductID           *string `json:"productId,omitempty"`
	Message             *string `json:"message,omitempty"`
	Comment             *string `json:"comment,omitempty"`
	Count               *int    `json:"count,omitempty"`
	AmountWithMarkup    *string `json:"amountWithMarkup,omitempty"`
	AmountWithoutMarkup *string `json:"amountWithoutMarkup,omitempty"`
}

// NewOrderPharmacy groups the product rows of one pharmacy in an intake
// request.
type NewOrderPharmacy struct {
	PharmacyID *string           `json:"pharmacyId,omitempty"`
	Products   []NewOrderProduct `json:"products,omitempty"`
}

// NewOrder is the body of the intake route.
type NewOrder struct {
	ClientID string `json:"clientId"`

	Comment           *string `json:"comment,omitempty"`
	CountryToDelivery *string `json:"countryToDelivery,omitempty"`
	CityOrDistrict    string  `json:"cityOrDistrict"`
	Operator          string  `json:"operator"`

	TotalCost             string  `json:"totalCost"`
	Prepayment            *string `json:"prepayment,omitempty"`
	Discount              *string `json:"discount,omitempty"`
	AmountWithMarkup      *string `json:"amountWithMarkup,omitempty"`
	AmountWithoutMarkup   *string `json:"amountWithoutMarkup,omitempty"`
	AmountWithDelivery    *string `json:"amountWithDelivery,omitempty"`
	AmountWithoutDelivery *string `json:"amountWithoutDelivery,omitempty"`

	OrderType    *string `json:"orderType,omitempty"`
	ComesFrom    *string `json:"comesFrom,omitempty"`
	DeliveryType *string `json:"deliveryType,omitempty"`

	PharmacyOrders []NewOrderPharmacy `json:"pharmacyOrders,omitempty"`
}

// AssignCourierRequest is the body of the courier assignment route.
type AssignCourierRequest struct {
	CourierID string  `json:"courierId"`
	Comment   *string `json:"comment,omitempty"`
}

// DeliveryStatusRequest is the body of the delivery status route. The
// status text is the courier-facing vocabulary, resolved by alias.
type DeliveryStatusRequest struct {
	Status  string  `json:"status"`
	Comment *string `json:"comment,omitempty"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	updateOrderStateHandler      commands.UpdateOrderStateCommandHandler
	returnFromRejectionHandler   commands.ReturnFromRejectionCommandHandler
	createConsultingOrderHandler commands.CreateConsultingOrderCommandHandler
	assignCourierHandler         commands.AssignCourierCommandHandler
	updateDeliveryStatusHandler  commands.UpdateDeliveryStatusCommandHandler

	// Query handlers
	getOrderByIDHandler      queries.GetOrderByIDQueryHandler
	getOrdersByStateHandler  queries.GetOrdersByStateQueryHandler
	getPharmacyOrdersHandler queries.GetPharmacyOrdersQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	updateOrderStateHandler commands.UpdateOrderStateCommandHandler,
	returnFromRejectionHandler commands.ReturnFromRejectionCommandHandler,
	createConsultingOrderHandler commands.CreateConsultingOrderCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	updateDeliveryStatusHandler commands.UpdateDeliveryStatusCommandHandler,
	getOrderByIDHandler queries.GetOrderByIDQueryHandler,
	getOrdersByStateHandler queries.GetOrdersByStateQueryHandler,
	getPharmacyOrdersHandler queries.GetPharmacyOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		updateOrderStateHandler:      updateOrderStateHandler,
		returnFromRejectionHandler:   returnFromRejectionHandler,
		createConsultingOrderHandler: createConsultingOrderHandler,
		assignCourierHandler:         assignCourierHandler,
		updateDeliveryStatusHandler:  updateDeliveryStatusHandler,
		getOrderByIDHandler:          getOrderByIDHandler,
		getOrdersByStateHandler:      getOrdersByStateHandler,
		getPharmacyOrdersHandler:     getPharmacyOrdersHandler,
		logger:                       logger,
	}
}

// RegisterRoutes attaches every route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.ListOrders)
	api.GET("/orders/:orderId", s.GetOrder)
	api.GET("/orders/:orderId/pharmacy-orders", s.GetPharmacyOrders)
	api.PUT("/orders/:orderId/state", s.UpdateOrderState)

	// Convenience shortcuts: fixed-target transitions.
	api.POST("/orders/:orderId/in-search", s.transitionTo(order.InSearch))
	api.POST("/orders/:orderId/waiting-client", s.transitionTo(order.WaitingClient))
	api.POST("/orders/:orderId/placement", s.transitionTo(order.Placement))
	api.POST("/orders/:orderId/delivered", s.transitionTo(order.Delivered))
	api.POST("/orders/:orderId/cancellation", s.transitionTo(order.Canceled))
	api.POST("/orders/:orderId/rejection", s.transitionTo(order.Rejection))
	api.POST("/orders/:orderId/return-products", s.transitionTo(order.Returned))
	api.POST("/orders/:orderId/return-from-rejection", s.ReturnFromRejection)

	// Delivery-facing routes respond {success: bool}.
	api.POST("/delivery/orders/:orderId/courier", s.AssignCourier)
	api.POST("/delivery/orders/:orderId/status", s.UpdateDeliveryStatus)
}

// CreateOrder handles POST /api/v1/orders - intake of a new consulting order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	clientID, err := kernel.UUIDFromString(body.ClientID)
	if err != nil {
		return badRequest(ctx, "Invalid client ID: "+err.Error())
	}

	details, err := detailsFromRequest(body)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	drafts, err := pharmacyDraftsFromRequest(body.PharmacyOrders)
	if err != nil {
		return badRequest(ctx, "Invalid pharmacy orders: "+err.Error())
	}

	cmd, err := commands.NewCreateConsultingOrderCommand(kernel.NewUUID(), clientID, details, drafts)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createConsultingOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, queries.AssembleOrder(created))
}

// ListOrders handles GET /api/v1/orders - lists orders by ledger state with
// an optional substring search and a result cap.
func (s *Server) ListOrders(ctx echo.Context) error {
	state, err := order.ParseStatus(ctx.QueryParam("state"))
	if err != nil {
		return badRequest(ctx, "Invalid state: "+err.Error())
	}

	count := 50
	if raw := ctx.QueryParam("count"); raw != "" {
		count, err = strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid count")
		}
	}

	query, err := queries.NewGetOrdersByStateQuery(state, count, ctx.QueryParam("search"))
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	orders, err := s.getOrdersByStateHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/:orderId - retrieves one order,
// optionally requiring it to be in a given state.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var stateFilter *order.Status
	if raw := ctx.QueryParam("state"); raw != "" {
		state, parseErr := order.ParseStatus(raw)
		if parseErr != nil {
			return badRequest(ctx, "Invalid state: "+parseErr.Error())
		}
		stateFilter = &state
	}

	query, err := queries.NewGetOrderByIDQuery(orderID, stateFilter)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	projection, err := s.getOrderByIDHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, projection)
}

// GetPharmacyOrders handles GET /api/v1/orders/:orderId/pharmacy-orders -
// retrieves the pharmacy subgraph of one order.
func (s *Server) GetPharmacyOrders(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	query, err := queries.NewGetPharmacyOrdersQuery(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	pharmacyOrders, err := s.getPharmacyOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve pharmacy orders")
	}

	return ctx.JSON(http.StatusOK, pharmacyOrders)
}

// UpdateOrderState handles PUT /api/v1/orders/:orderId/state - the generic
// transition route accepting any target state by name.
func (s *Server) UpdateOrderState(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var body UpdateStateRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	target, err := order.ParseStatus(body.State)
	if err != nil {
		return badRequest(ctx, "Invalid state: "+err.Error())
	}

	return s.applyTransition(ctx, orderID, target, body.TransitionRequest)
}

// transitionTo builds a route handler driving a fixed-target transition.
func (s *Server) transitionTo(target order.Status) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
		if err != nil {
			return badRequest(ctx, "Invalid order ID: "+err.Error())
		}

		var body TransitionRequest
		if err = ctx.Bind(&body); err != nil {
			return badRequest(ctx, "Invalid request body")
		}

		return s.applyTransition(ctx, orderID, target, body)
	}
}

func (s *Server) applyTransition(ctx echo.Context, orderID kernel.UUID, target order.Status, body TransitionRequest) error {
	payload, err := payloadFromRequest(body)
	if err != nil {
		return badRequest(ctx, "Invalid payload: "+err.Error())
	}

	cmd, err := commands.NewUpdateOrderStateCommand(orderID, target, payload)
	if err != nil {
		return badRequest(ctx, "Invalid transition: "+err.Error())
	}

	updated, err := s.updateOrderStateHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to update order state")
	}

	return ctx.JSON(http.StatusOK, queries.AssembleOrder(updated))
}

// ReturnFromRejection handles POST /api/v1/orders/:orderId/return-from-rejection -
// restores the order to the state it held before its rejection.
func (s *Server) ReturnFromRejection(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	cmd, err := commands.NewReturnFromRejectionCommand(orderID)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	updated, err := s.returnFromRejectionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to return order from rejection")
	}

	return ctx.JSON(http.StatusOK, queries.AssembleOrder(updated))
}

// AssignCourier handles POST /api/v1/delivery/orders/:orderId/courier -
// attaches a courier to the order and moves it to AcceptedByCourier.
func (s *Server) AssignCourier(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var body AssignCourierRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, body.CourierID, body.Comment)
	if err != nil {
		return badRequest(ctx, "Invalid courier data: "+err.Error())
	}

	success, err := s.assignCourierHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to assign courier")
	}

	return ctx.JSON(http.StatusOK, SuccessResponse{Success: success})
}

// UpdateDeliveryStatus handles POST /api/v1/delivery/orders/:orderId/status -
// reports delivery progress using the courier-facing status vocabulary.
func (s *Server) UpdateDeliveryStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var body DeliveryStatusRequest
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	cmd, err := commands.NewUpdateDeliveryStatusCommand(orderID, body.Status, body.Comment)
	if err != nil {
		return badRequest(ctx, "Invalid status data: "+err.Error())
	}

	success, err := s.updateDeliveryStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to update delivery status")
	}

	return ctx.JSON(http.StatusOK, SuccessResponse{Success: success})
}

// fail maps typed domain errors to status codes and logs everything else.
func (s *Server) fail(ctx echo.Context, err error, message string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		s.logger.Error(message, "error", err)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: message,
		})
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
