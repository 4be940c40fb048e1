package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/cresxjohn/qwik-sub001/internal/domain"
	"github.com/cresxjohn/qwik-sub001/internal/service"
	customError "github.com/cresxjohn/qwik-sub001/pkg/errors"
	"github.com/cresxjohn/qwik-sub001/pkg/response"
)

type PaymentHandler struct {
	service   *service.PaymentService
	validator *validator.Validate
}

func NewPaymentHandler(service *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:   service,
		validator: validator.New(),
	}
}

func (h *PaymentHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var request domain.CreatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	payment, err := h.service.CreatePayment(r.Context(), &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Created(w, domain.PaymentResponse{Payment: payment})
}

func (h *PaymentHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	payment, err := h.service.GetPayment(r.Context(), id)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, domain.PaymentResponse{Payment: payment})
}

func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListPayments(r.Context())
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, domain.PaymentListResponse{Payments: payments, Total: len(payments)})
}

func (h *PaymentHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	var request domain.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	payment, err := h.service.UpdatePayment(r.Context(), id, &request)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, domain.PaymentResponse{Payment: payment})
}

func (h *PaymentHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeletePayment(r.Context(), id); err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, nil)
}

func (h *PaymentHandler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	var request domain.CompletePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}

	if err := h.validator.Struct(&request); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	completionDate, err := domain.ParseDate(request.CompletionDate)
	if err != nil {
		response.BadRequest(w, "invalid completion date", err)
		return
	}

	payment, err := h.service.CompletePayment(r.Context(), id, completionDate)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, domain.PaymentResponse{Payment: payment})
}

func (h *PaymentHandler) GetNextDueDate(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	due, err := h.service.GetNextDueDate(r.Context(), id)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, domain.NextDueDateResponse{PaymentID: id, NextDueDate: due})
}

func (h *PaymentHandler) GetReminders(w http.ResponseWriter, r *http.Request) {
	id, ok := paymentID(w, r)
	if !ok {
		return
	}

	dates, err := h.service.ReminderDates(r.Context(), id)
	if err != nil {
		writeBusinessError(w, err)
		return
	}

	response.Success(w, domain.ReminderListResponse{PaymentID: id, Dates: dates})
}

func paymentID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := mux.Vars(r)["paymentId"]
	id, err := uuid.Parse(raw)
	if err != nil {
		response.BadRequest(w, "invalid payment id", err)
		return uuid.Nil, false
	}
	return id, true
}

// writeBusinessError maps service errors onto HTTP statuses by business code.
func writeBusinessError(w http.ResponseWriter, err error) {
	var bizErr *customError.BusinessError
	if !errors.As(err, &bizErr) {
		response.InternalServerError(w, "unexpected error", err)
		return
	}

	switch bizErr.Code {
	case customError.ErrCodePaymentNotFound:
		response.NotFound(w, bizErr.Message)
	case customError.ErrCodePaymentAlreadyExists:
		response.Error(w, http.StatusConflict, bizErr.Message, bizErr)
	case customError.ErrCodeInvalidRecurrencePattern,
		customError.ErrCodeInvalidCompletionDate,
		customError.ErrCodePaymentNotRecurring:
		response.BadRequest(w, bizErr.Message, bizErr)
	default:
		response.InternalServerError(w, bizErr.Message, bizErr)
	}
}
