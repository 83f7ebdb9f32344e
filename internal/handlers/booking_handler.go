package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agendalivre/salon-scheduler/internal/httperr"
	"github.com/agendalivre/salon-scheduler/internal/httpresp"
	usecase "github.com/agendalivre/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	createUC *usecase.CreateBooking
	updateUC *usecase.UpdateBooking
	deleteUC *usecase.DeleteBooking
}

func NewBookingHandler(
	createUC *usecase.CreateBooking,
	updateUC *usecase.UpdateBooking,
	deleteUC *usecase.DeleteBooking,
) *BookingHandler {
	return &BookingHandler{
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	TenantID       string `json:"tenant_id" binding:"required"`
	ProfessionalID string `json:"professional_id" binding:"required"`
	ClientID       string `json:"client_id" binding:"required"`
	ServiceID      string `json:"service_id" binding:"required"`
	Start          string `json:"start" binding:"required"`
	Notes          string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	ProfessionalID *string `json:"professional_id"`
	ServiceID      *string `json:"service_id"`
	Start          *string `json:"start"`
	Notes          *string `json:"notes"`
}

// ======================================================
// ERROR MAPPING
// ======================================================

var businessStatus = map[string]int{
	usecase.CodeInvalidRequest:          http.StatusBadRequest,
	usecase.CodeInvalidDateTime:         http.StatusBadRequest,
	usecase.CodeServiceNotFound:         http.StatusNotFound,
	usecase.CodeServiceNotInTenant:      http.StatusNotFound,
	usecase.CodeServiceInactive:         http.StatusBadRequest,
	usecase.CodeProfessionalNotFound:    http.StatusNotFound,
	usecase.CodeProfessionalNotInTenant: http.StatusNotFound,
	usecase.CodeProfessionalInactive:    http.StatusBadRequest,
	usecase.CodeProfessionalNotLinked:   http.StatusBadRequest,
	usecase.CodeNoHoursForDay:           http.StatusBadRequest,
	usecase.CodeOutsideWorkingHours:     http.StatusBadRequest,
	usecase.CodeAppointmentNotFound:     http.StatusNotFound,
	usecase.CodeAppointmentCancelled:    http.StatusBadRequest,
	usecase.CodeTimeConflict:            http.StatusConflict,
}

var businessMessage = map[string]string{
	usecase.CodeInvalidRequest:          "Dados inválidos.",
	usecase.CodeInvalidDateTime:         "Data ou hora inválida.",
	usecase.CodeServiceNotFound:         "Serviço não encontrado.",
	usecase.CodeServiceNotInTenant:      "Serviço não pertence a este estabelecimento.",
	usecase.CodeServiceInactive:         "Serviço inativo.",
	usecase.CodeProfessionalNotFound:    "Profissional não encontrado.",
	usecase.CodeProfessionalNotInTenant: "Profissional não pertence a este estabelecimento.",
	usecase.CodeProfessionalInactive:    "Profissional inativo.",
	usecase.CodeProfessionalNotLinked:   "Profissional não realiza este serviço.",
	usecase.CodeNoHoursForDay:           "Sem expediente configurado para este dia.",
	usecase.CodeOutsideWorkingHours:     "Fora do horário de atendimento.",
	usecase.CodeAppointmentNotFound:     "Agendamento não encontrado.",
	usecase.CodeAppointmentCancelled:    "Agendamento já cancelado.",
	usecase.CodeTimeConflict:            "Horário não está mais disponível.",
}

func writeBookingError(c *gin.Context, err error) {
	if be, ok := httperr.AsBusiness(err); ok {
		status, found := businessStatus[be.Code]
		if !found {
			status = http.StatusBadRequest
		}
		httperr.Write(c, status, be.Code, businessMessage[be.Code])
		return
	}

	httperr.Internal(c, "internal_error", "Erro interno.")
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), usecase.CreateBookingInput{
		TenantID:       req.TenantID,
		ProfessionalID: req.ProfessionalID,
		ClientID:       req.ClientID,
		ServiceID:      req.ServiceID,
		Start:          req.Start,
		Notes:          req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// UPDATE
// ======================================================

func (h *BookingHandler) Update(c *gin.Context) {
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), usecase.UpdateBookingInput{
		AppointmentID:  c.Param("id"),
		ProfessionalID: req.ProfessionalID,
		ServiceID:      req.ServiceID,
		Start:          req.Start,
		Notes:          req.Notes,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	if err := h.deleteUC.Execute(c.Request.Context(), c.Param("id")); err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.NoContent(c)
}
