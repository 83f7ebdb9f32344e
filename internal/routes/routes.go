package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agendalivre/salon-scheduler/internal/cache"
	"github.com/agendalivre/salon-scheduler/internal/extsync"
	"github.com/agendalivre/salon-scheduler/internal/handlers"
	infraRepo "github.com/agendalivre/salon-scheduler/internal/infra/repository"
	ucBooking "github.com/agendalivre/salon-scheduler/internal/usecase/booking"
)

// RegisterRoutes wires repositories, usecases and handlers. collaborators is
// the host's set of external calendar/booking integrations; empty is valid.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	log *zap.Logger,
	slotCache *cache.SlotCache,
	collaborators []extsync.Collaborator,
) {

	// ======================================================
	// INFRA
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	syncDispatcher := extsync.NewDispatcher(bookingRepo, collaborators, log)

	// ======================================================
	// USE CASES
	// ======================================================
	listSlotsUC := ucBooking.NewListSlots(bookingRepo, slotCache, log)
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, syncDispatcher, slotCache, log)
	updateBookingUC := ucBooking.NewUpdateBooking(bookingRepo, syncDispatcher, slotCache, log)
	deleteBookingUC := ucBooking.NewDeleteBooking(bookingRepo, syncDispatcher, slotCache, log)

	// ======================================================
	// HANDLERS
	// ======================================================
	slotsHandler := handlers.NewSlotsHandler(listSlotsUC)
	bookingHandler := handlers.NewBookingHandler(createBookingUC, updateBookingUC, deleteBookingUC)

	api := r.Group("/api")
	{
		api.GET("/professionals/:id/slots", slotsHandler.List)

		api.POST("/appointments", bookingHandler.Create)
		api.PATCH("/appointments/:id", bookingHandler.Update)
		api.DELETE("/appointments/:id", bookingHandler.Delete)
	}
}
