package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/rBrgv/KRF-sub000/models"
	"github.com/rBrgv/KRF-sub000/repository"
	"github.com/rBrgv/KRF-sub000/services"
	"github.com/rBrgv/KRF-sub000/utils"

	"github.com/gin-gonic/gin"
)

// APIHandler holds all dependencies for API handlers.
type APIHandler struct {
	leadRepo          repository.LeadRepository
	assessmentService services.AssessmentService
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(leadRepo repository.LeadRepository, assessmentService services.AssessmentService) *APIHandler {
	return &APIHandler{
		leadRepo:          leadRepo,
		assessmentService: assessmentService,
	}
}

// WizardRequest carries the client-held wizard state and the action's payload.
type WizardRequest struct {
	State      models.WizardState `json:"state"`
	QuestionID string             `json:"question_id,omitempty"`
	Answer     models.Answer      `json:"answer"`
}

// WizardSubmitRequest submits a wizard state from the lead-capture step.
type WizardSubmitRequest struct {
	State models.WizardState `json:"state"`
	Lead  models.LeadInfo    `json:"lead"`
}

// SubmitRequest submits a complete answer set in one call.
type SubmitRequest struct {
	Answers models.Answers  `json:"answers"`
	Lead    models.LeadInfo `json:"lead"`
}

// SectionView is a section with its display title and questions.
type SectionView struct {
	ID        models.Section    `json:"id"`
	Title     string            `json:"title"`
	Questions []models.Question `json:"questions"`
}

// WizardView is what the UI renders after every wizard action.
type WizardView struct {
	State           models.WizardState `json:"state"`
	Progress        *float64           `json:"progress,omitempty"`
	CurrentQuestion *models.Question   `json:"current_question,omitempty"`
}

// HealthHandler reports liveness.
func (h *APIHandler) HealthHandler(c *gin.Context) {
	utils.SendJSON(c, http.StatusOK, "OK", gin.H{"status": "ok"})
}

// GetQuestionsHandler returns the questionnaire grouped by section.
func (h *APIHandler) GetQuestionsHandler(c *gin.Context) {
	catalog := h.assessmentService.Questionnaire()
	sections := make([]SectionView, 0, len(catalog.Sections()))
	for _, s := range catalog.Sections() {
		sections = append(sections, SectionView{
			ID:        s,
			Title:     catalog.SectionTitle(s),
			Questions: catalog.QuestionsBySection(s),
		})
	}
	utils.SendJSON(c, http.StatusOK, "OK", gin.H{
		"sections":       sections,
		"total_required": catalog.TotalRequired(),
	})
}

// WizardStartHandler leaves the landing page.
func (h *APIHandler) WizardStartHandler(c *gin.Context) {
	h.applyWizardEvent(c, services.EventStart)
}

// WizardAnswerHandler records an answer for the question in the request.
func (h *APIHandler) WizardAnswerHandler(c *gin.Context) {
	h.applyWizardEvent(c, services.EventAnswer)
}

// WizardNextHandler validates the current question and advances.
func (h *APIHandler) WizardNextHandler(c *gin.Context) {
	h.applyWizardEvent(c, services.EventNext)
}

// WizardPreviousHandler moves back one question.
func (h *APIHandler) WizardPreviousHandler(c *gin.Context) {
	h.applyWizardEvent(c, services.EventPrevious)
}

func (h *APIHandler) applyWizardEvent(c *gin.Context, eventType services.WizardEventType) {
	var req WizardRequest
	if eventType != services.EventStart || c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
			return
		}
	}

	wizard := h.assessmentService.Wizard()
	state, err := wizard.Apply(req.State, services.WizardEvent{
		Type:       eventType,
		QuestionID: req.QuestionID,
		Answer:     req.Answer,
	})
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, err.Error(), err)
		return
	}
	utils.SendJSON(c, http.StatusOK, "OK", h.wizardView(state))
}

func (h *APIHandler) wizardView(state models.WizardState) WizardView {
	wizard := h.assessmentService.Wizard()
	view := WizardView{State: state}
	if p, ok := wizard.Progress(state); ok {
		view.Progress = &p
	}
	if q, ok := wizard.CurrentQuestion(state); ok {
		view.CurrentQuestion = &q
	}
	return view
}

// WizardSubmitHandler stores the assessment of a wizard in lead capture and
// returns the state moved to results. On failure the returned state stays in
// lead capture with its answers so the client can retry.
func (h *APIHandler) WizardSubmitHandler(c *gin.Context) {
	var req WizardSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	state, sub, err := h.assessmentService.SubmitWizard(c.Request.Context(), req.State, req.Lead)
	if err != nil {
		var verr *services.ValidationError
		switch {
		case errors.As(err, &verr):
			utils.SendJSONError(c, http.StatusUnprocessableEntity, "Please check the highlighted fields.", nil,
				gin.H{"state": state, "field_errors": state.FieldErrors})
		case errors.Is(err, services.ErrNotReadyToSubmit):
			utils.SendJSONError(c, http.StatusConflict, "The assessment is not complete yet.", err,
				gin.H{"state": state, "field_errors": state.FieldErrors})
		default:
			utils.SendJSONError(c, http.StatusBadGateway, services.SubmitFailedMessage, err,
				gin.H{"state": state, "field_errors": state.FieldErrors})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"code":         http.StatusCreated,
		"message":      "Assessment submitted.",
		"assessmentId": sub.AssessmentID,
		"data":         sub.Result,
		"state":        state,
	})
}

// SubmitAssessmentHandler scores and stores a complete answer set.
func (h *APIHandler) SubmitAssessmentHandler(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	sub, err := h.assessmentService.Submit(c.Request.Context(), req.Answers, req.Lead)
	if err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			utils.SendJSONError(c, http.StatusUnprocessableEntity, "Please check the highlighted fields.", nil,
				gin.H{"field_errors": verr.Fields})
			return
		}
		utils.SendJSONError(c, http.StatusBadGateway, services.SubmitFailedMessage, err)
		return
	}

	log.Printf("INFO: [API] Assessment %s submitted (%s).", sub.AssessmentID, sub.Result.Category)
	c.JSON(http.StatusCreated, gin.H{
		"code":         http.StatusCreated,
		"message":      "Assessment submitted.",
		"assessmentId": sub.AssessmentID,
		"data":         sub.Result,
	})
}

// ListAssessmentsHandler lists recent assessments for the dashboard.
func (h *APIHandler) ListAssessmentsHandler(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.SendJSONError(c, http.StatusBadRequest, "Invalid limit parameter.", err)
			return
		}
		limit = n
	}

	list, err := h.assessmentService.ListAssessments(c.Request.Context(), limit)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to list assessments.", err)
		return
	}
	utils.SendJSON(c, http.StatusOK, "OK", list)
}

// GetAssessmentHandler returns one stored assessment with its lead.
func (h *APIHandler) GetAssessmentHandler(c *gin.Context) {
	id := c.Param("id")
	a, err := h.assessmentService.GetAssessment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.SendJSONError(c, http.StatusNotFound, "Assessment not found.", nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to retrieve assessment.", err)
		return
	}
	utils.SendJSON(c, http.StatusOK, "OK", a)
}

// GetLeadHandler looks a lead up by phone number for the dashboard.
func (h *APIHandler) GetLeadHandler(c *gin.Context) {
	phone := strings.TrimSpace(c.Query("phone"))
	if phone == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "The phone parameter is required.", nil)
		return
	}
	lead, err := h.leadRepo.GetLeadByPhone(c.Request.Context(), phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			utils.SendJSONError(c, http.StatusNotFound, "Lead not found.", nil)
			return
		}
		utils.SendJSONError(c, http.StatusInternalServerError, "Failed to retrieve lead.", err)
		return
	}
	utils.SendJSON(c, http.StatusOK, "OK", lead)
}

// RegisterRoutes mounts every endpoint under /api.
func RegisterRoutes(r *gin.Engine, handler *APIHandler) {
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", handler.HealthHandler)

		assessmentGroup := apiGroup.Group("/assessment")
		{
			assessmentGroup.GET("/questions", handler.GetQuestionsHandler)
			assessmentGroup.POST("/submit", handler.SubmitAssessmentHandler)

			wizardGroup := assessmentGroup.Group("/wizard")
			{
				wizardGroup.POST("/start", handler.WizardStartHandler)
				wizardGroup.POST("/answer", handler.WizardAnswerHandler)
				wizardGroup.POST("/next", handler.WizardNextHandler)
				wizardGroup.POST("/previous", handler.WizardPreviousHandler)
				wizardGroup.POST("/submit", handler.WizardSubmitHandler)
			}
		}

		apiGroup.GET("/assessments", handler.ListAssessmentsHandler)
		apiGroup.GET("/assessments/:id", handler.GetAssessmentHandler)
		apiGroup.GET("/leads", handler.GetLeadHandler)
	}
}
