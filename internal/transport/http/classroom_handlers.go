package http

import (
	"errors"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/classwire/handraise-server/internal/core"
	"github.com/classwire/handraise-server/internal/metrics"
)

// ClassroomHandlers provides HTTP handlers for the classroom API.
type ClassroomHandlers struct {
	registry *core.Registry
	metrics  *metrics.Metrics
	log      *zerolog.Logger
}

// NewClassroomHandlers creates a new classroom handlers instance.
func NewClassroomHandlers(registry *core.Registry, m *metrics.Metrics, logger *zerolog.Logger) *ClassroomHandlers {
	return &ClassroomHandlers{
		registry: registry,
		metrics:  m,
		log:      logger,
	}
}

// CreateClassroomRequest represents the create classroom request body.
type CreateClassroomRequest struct {
	Name string `json:"name" binding:"required,max=64"`
}

// NameRequest carries a student name for join and leave.
type NameRequest struct {
	Name string `json:"name"`
}

// SignalRequest represents the emit signal request body.
type SignalRequest struct {
	Name       string `json:"name"`
	SignalType string `json:"signal_type" binding:"required"`
}

// AcknowledgeRequest represents the acknowledge (remove) request body.
type AcknowledgeRequest struct {
	Signal string `json:"signal" binding:"required"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// writeError translates a domain error into an HTTP response.
func (h *ClassroomHandlers) writeError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == stdhttp.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unexpected error")
		c.JSON(status, ErrorResponse{Error: "internal server error", Code: core.ErrCodeInternal})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Code: core.Code(err)})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrClassroomNotFound),
		errors.Is(err, core.ErrStudentNotFound),
		errors.Is(err, core.ErrUnknownSignalType):
		return stdhttp.StatusNotFound
	case errors.Is(err, core.ErrClassroomExists),
		errors.Is(err, core.ErrAlreadyJoined):
		return stdhttp.StatusConflict
	case errors.Is(err, core.ErrNameRequired):
		return stdhttp.StatusBadRequest
	default:
		return stdhttp.StatusInternalServerError
	}
}

// session resolves the :id path parameter to a classroom or writes a 404.
func (h *ClassroomHandlers) session(c *gin.Context) (*core.ClassroomSession, bool) {
	session, err := h.registry.Get(c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}
	return session, true
}

// CreateClassroom handles classroom creation.
// POST /classrooms/:id/create
func (h *ClassroomHandlers) CreateClassroom(c *gin.Context) {
	var req CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid create classroom request")
		c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: core.ErrCodeNameRequired})
		return
	}

	session, err := h.registry.Create(c.Param("id"), req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.log.Info().Str("classroom_id", session.ID()).Str("classroom_name", session.Name()).Msg("classroom created")
	c.JSON(stdhttp.StatusCreated, session.Snapshot())
}

// GetClassroom returns a classroom snapshot.
// GET /classrooms/:id
func (h *ClassroomHandlers) GetClassroom(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(stdhttp.StatusOK, session.Snapshot())
}

// GetStudents returns the classroom roster.
// GET /classrooms/:id/students
func (h *ClassroomHandlers) GetStudents(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(stdhttp.StatusOK, session.Snapshot().Roster)
}

// GetSignals returns the pending signal log.
// GET /classrooms/:id/signals
func (h *ClassroomHandlers) GetSignals(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(stdhttp.StatusOK, session.Snapshot().Pending)
}

// ListSignalTypes returns the signal catalog as a key to text object.
// GET /signal-types
func (h *ClassroomHandlers) ListSignalTypes(c *gin.Context) {
	catalog := h.registry.Catalog()
	types := make(map[string]string, catalog.Len())
	for key, text := range catalog.Entries() {
		types[key] = text
	}
	c.JSON(stdhttp.StatusOK, types)
}

// JoinClassroom adds a student to the roster and returns the updated roster.
// POST /classrooms/:id/join
func (h *ClassroomHandlers) JoinClassroom(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid join request")
		c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: core.ErrCodeNameRequired})
		return
	}

	roster, err := session.Join(req.Name)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.log.Info().Str("classroom_id", session.ID()).Str("student", req.Name).Msg("student joined")
	c.JSON(stdhttp.StatusCreated, roster)
}

// LeaveClassroom removes a student from the roster.
// DELETE /classrooms/:id/leave
func (h *ClassroomHandlers) LeaveClassroom(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid leave request")
		c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: core.ErrCodeNameRequired})
		return
	}

	if err := session.Leave(req.Name); err != nil {
		h.writeError(c, err)
		return
	}

	h.log.Info().Str("classroom_id", session.ID()).Str("student", req.Name).Msg("student left")
	c.JSON(stdhttp.StatusOK, gin.H{"deleted": req.Name})
}

// EmitSignal renders a signal and fans it out to all observers.
// POST /classrooms/:id/signal
func (h *ClassroomHandlers) EmitSignal(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req SignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid signal request")
		c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: core.ErrCodeNameRequired})
		return
	}

	msg, err := session.EmitSignal(req.Name, req.SignalType)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.metrics.SignalEmitted(session.ID())
	h.log.Info().
		Str("classroom_id", session.ID()).
		Str("student", req.Name).
		Str("signal_type", req.SignalType).
		Str("message", msg).
		Msg("signal emitted")
	c.JSON(stdhttp.StatusCreated, gin.H{"status": "sent"})
}

// AcknowledgeSignal removes a pending signal and returns the remaining list.
// DELETE /classrooms/:id/signal/remove
func (h *ClassroomHandlers) AcknowledgeSignal(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req AcknowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid acknowledge request")
		c.JSON(stdhttp.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: core.ErrCodeNameRequired})
		return
	}

	pending := session.AcknowledgeSignal(req.Signal)

	h.log.Info().Str("classroom_id", session.ID()).Str("message", req.Signal).Msg("signal acknowledged")
	c.JSON(stdhttp.StatusOK, pending)
}
