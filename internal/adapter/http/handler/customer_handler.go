package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	. "customerapp/internal/adapter/http/helper"
	"customerapp/internal/core/domain"
	"customerapp/internal/core/model/request"
	"customerapp/internal/core/model/response"
	"customerapp/internal/core/port"
	"customerapp/pkg/config"
	. "customerapp/pkg/tracing"
)

const (
	CustomersPath = "/customers"
	healthTimeout = 2 * time.Second
)

type CustomerHandler struct {
	svc    port.CustomerService
	Logger *config.LokiLogger
}

func NewCustomerHandler(customerService port.CustomerService, logger *config.LokiLogger) *CustomerHandler {
	if logger == nil {
		logger = config.NewNopLogger()
	}

	return &CustomerHandler{
		svc:    customerService,
		Logger: logger,
	}
}

func (h *CustomerHandler) span(c *gin.Context, operation string) (context.Context, trace.Span) {
	return CreateChildSpan(c.Request.Context(), "handler.customer."+operation, []attribute.KeyValue{
		attribute.String("handler.operation", operation),
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})
}

func (h *CustomerHandler) fail(c *gin.Context, span trace.Span, err error) {
	AddSpanError(span, err)
	SendServiceError(c, h.Logger, err)
}

// pathID parses the :id segment. Ids that are not UUIDs cannot exist, so
// they are answered as not found.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		SendNotFoundError(c, domain.ErrCustomerNotFound.Error())
		return uuid.Nil, false
	}
	return id, true
}

func (h *CustomerHandler) Register(c *gin.Context) {
	ctx, span := h.span(c, "Register")
	defer span.End()

	params, err := BindJSON[request.CreateCustomerRequest](c)
	if err != nil {
		SendBadRequestError(c, "body", "invalid request body")
		return
	}

	customer, err := h.svc.Create(ctx, params)
	if err != nil {
		h.fail(c, span, err)
		return
	}

	span.SetAttributes(attribute.String("customer.id", customer.ID.String()))

	c.Header("Location", CustomersPath+"/"+customer.ID.String())
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) List(c *gin.Context) {
	ctx, span := h.span(c, "List")
	defer span.End()

	customers, err := h.svc.List(ctx)
	if err != nil {
		h.fail(c, span, err)
		return
	}

	span.SetAttributes(attribute.Int("customer.count", len(customers)))

	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) GetByID(c *gin.Context) {
	ctx, span := h.span(c, "GetByID")
	defer span.End()

	id, ok := pathID(c)
	if !ok {
		return
	}

	customer, err := h.svc.GetByID(ctx, id)
	if err != nil {
		h.fail(c, span, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) GetByCPF(c *gin.Context) {
	ctx, span := h.span(c, "GetByCPF")
	defer span.End()

	customer, err := h.svc.GetByCPF(ctx, c.Param("cpf"))
	if err != nil {
		h.fail(c, span, err)
		return
	}

	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	ctx, span := h.span(c, "Update")
	defer span.End()

	id, ok := pathID(c)
	if !ok {
		return
	}

	params, err := BindJSON[request.UpdateCustomerRequest](c)
	if err != nil {
		SendBadRequestError(c, "body", "invalid request body")
		return
	}

	updated, err := h.svc.Update(ctx, id, params)
	if err != nil {
		h.fail(c, span, err)
		return
	}

	if !updated {
		SendNotFoundError(c, domain.ErrCustomerNotFound.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	ctx, span := h.span(c, "Delete")
	defer span.End()

	id, ok := pathID(c)
	if !ok {
		return
	}

	deleted, err := h.svc.Delete(ctx, id)
	if err != nil {
		h.fail(c, span, err)
		return
	}

	if !deleted {
		SendNotFoundError(c, domain.ErrCustomerNotFound.Error())
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CustomerHandler) GetBatch(c *gin.Context) {
	ctx, span := h.span(c, "GetBatch")
	defer span.End()

	params, err := BindJSON[request.BatchRequest](c)
	if err != nil {
		SendBadRequestError(c, "body", "invalid request body")
		return
	}

	span.SetAttributes(attribute.Int("batch.items", len(params.Items)))

	items, err := h.svc.GetBatch(ctx, params)
	if err != nil {
		h.fail(c, span, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *CustomerHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := h.svc.Ping(ctx); err != nil {
		SendError(c, http.StatusServiceUnavailable, CodeUnavailable, []FieldError{{
			Field:   "database",
			Message: "database unavailable",
		}})
		return
	}

	c.JSON(http.StatusOK, response.HealthResponse{Status: "ok"})
}
