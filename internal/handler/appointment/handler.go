package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicdesk/scheduler-api/internal/handler"
	"github.com/clinicdesk/scheduler-api/internal/model"
	"github.com/clinicdesk/scheduler-api/internal/service/scheduler"
)

type Handler struct {
	scheduler *scheduler.Service
}

func NewHandler(s *scheduler.Service) *Handler {
	return &Handler{scheduler: s}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.BookAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.POST("/:id/cancel", h.CancelAppointment)
		appointments.POST("/:id/reschedule", h.RescheduleAppointment)
	}
}

// BookAppointment matches the patient's required specialization against
// registered doctors and claims the requested slot on the first doctor
// holding it.
func (h *Handler) BookAppointment(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindingError(c, err)
		return
	}

	apt, err := h.scheduler.Book(req.PatientID, req.Date, req.Time)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(apt))
}

func (h *Handler) GetAppointment(c *gin.Context) {
	apt, err := h.scheduler.AppointmentByID(c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	status := model.AppointmentStatus(c.Query("status"))
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.scheduler.ListAppointments(status)))
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	apt, err := h.scheduler.Cancel(c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}

func (h *Handler) RescheduleAppointment(c *gin.Context) {
	var req model.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindingError(c, err)
		return
	}

	apt, err := h.scheduler.Reschedule(c.Param("id"), req.Date, req.Time)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(apt))
}
