package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/agendalivre/salon-scheduler/internal/httperr"
	"github.com/agendalivre/salon-scheduler/internal/httpresp"
	usecase "github.com/agendalivre/salon-scheduler/internal/usecase/booking"
)

type SlotsHandler struct {
	listUC *usecase.ListSlots
}

func NewSlotsHandler(listUC *usecase.ListSlots) *SlotsHandler {
	return &SlotsHandler{listUC: listUC}
}

// List returns the free "HH:mm" starts of one professional/service/day.
func (h *SlotsHandler) List(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	serviceID := c.Query("service_id")
	if serviceID == "" {
		httperr.BadRequest(c, "missing_service", "Serviço obrigatório.")
		return
	}

	slots, err := h.listUC.Execute(c.Request.Context(), usecase.ListSlotsInput{
		ProfessionalID: c.Param("id"),
		ServiceID:      serviceID,
		Date:           date,
	})
	if err != nil {
		writeBookingError(c, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  date,
		"slots": slots,
	})
}
