package doctor

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
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.RegisterDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)

		doctors.GET("/:id/slots", h.ListSlots)
		doctors.POST("/:id/slots", h.AddSlot)
		doctors.DELETE("/:id/slots", h.RemoveSlot)
	}
}

func (h *Handler) RegisterDoctor(c *gin.Context) {
	var req model.RegisterDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindingError(c, err)
		return
	}

	doctor, err := model.NewDoctor(req.Name, req.ContactInfo, req.Age, req.Gender, req.Specialization)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	if err := h.scheduler.RegisterDoctor(doctor); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(doctor))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	doctor, err := h.scheduler.DoctorByID(c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

// ListDoctors returns all doctors, or only those with an exactly
// matching specialization when the query parameter is present.
func (h *Handler) ListDoctors(c *gin.Context) {
	if spec := c.Query("specialization"); spec != "" {
		c.JSON(http.StatusOK, handler.NewSuccessResponse(h.scheduler.FindDoctorsBySpecialization(spec)))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.scheduler.ListDoctors()))
}

func (h *Handler) ListSlots(c *gin.Context) {
	slots, err := h.scheduler.DoctorSlots(c.Param("id"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(slots))
}

func (h *Handler) AddSlot(c *gin.Context) {
	var req model.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindingError(c, err)
		return
	}

	if err := h.scheduler.AddDoctorSlot(c.Param("id"), req.Date, req.Time); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"date": req.Date, "time": req.Time}))
}

func (h *Handler) RemoveSlot(c *gin.Context) {
	var req model.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.RespondBindingError(c, err)
		return
	}

	if err := h.scheduler.RemoveDoctorSlot(c.Param("id"), req.Date, req.Time); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"date": req.Date, "time": req.Time}))
}
