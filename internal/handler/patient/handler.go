package patient

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
	patients := r.Group("/patients")
	{
		patients.POST("", h.RegisterPatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.GET("/:id/appointments", h.ListAppointments)
	}
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	var req model.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindingError(c, err)
		return
	}

	patient, err := model.NewPatient(req.Name, req.ContactInfo, req.Age, req.Gender,
		req.CardNo, req.DateOfBirth, req.RequiredSpecialization)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	if err := h.scheduler.RegisterPatient(patient); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(patient))
}

func (h *Handler) GetPatient(c *gin.Context) {
	patient, err := h.scheduler.PatientByID(c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient))
}

func (h *Handler) ListPatients(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.scheduler.ListPatients()))
}

// ListAppointments returns the patient's history derived from the
// appointment collection, not the denormalized summary cache.
func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.scheduler.AppointmentsForPatient(c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}
