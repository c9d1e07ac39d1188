package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/minhaalawais/fos-hrdd-software/internal/client"
	"github.com/minhaalawais/fos-hrdd-software/internal/draft"
	"github.com/minhaalawais/fos-hrdd-software/internal/http/middleware"
	"github.com/minhaalawais/fos-hrdd-software/internal/model"
	"github.com/minhaalawais/fos-hrdd-software/internal/service"
	"github.com/minhaalawais/fos-hrdd-software/internal/session"
	"github.com/minhaalawais/fos-hrdd-software/internal/view"
)

type Handler struct {
	authService         *service.AuthService
	dashboardService    *service.DashboardService
	routingService      *service.RoutingService
	notificationService *service.NotificationService
	sessions            session.Store
	log                 zerolog.Logger
}

func NewHandler(
	authService *service.AuthService,
	dashboardService *service.DashboardService,
	routingService *service.RoutingService,
	notificationService *service.NotificationService,
	sessions session.Store,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		authService:         authService,
		dashboardService:    dashboardService,
		routingService:      routingService,
		notificationService: notificationService,
		sessions:            sessions,
		log:                 log,
	}
}

func (h *Handler) Register(r *gin.Engine, authMiddleware gin.HandlerFunc) {
	r.POST("/login", h.login)

	protected := r.Group("/")
	protected.Use(authMiddleware)

	protected.POST("/logout", h.logout)

	dashboard := protected.Group("/dashboard")
	{
		dashboard.GET("", h.getDashboard)
		dashboard.GET("/summary", h.getSummary)
		dashboard.POST("/filter/toggle", h.toggleFilter)
	}

	complaints := protected.Group("/complaints")
	{
		complaints.GET("/:ticket/timeline", h.getTimeline)
		complaints.GET("/:ticket/files/:category", h.getStageFiles)
		complaints.POST("/:ticket/process", h.processComplaint)
		complaints.POST("/:ticket/update", h.submitStageUpdate)
		complaints.PUT("/:ticket/drafts", h.saveDraft)
		complaints.GET("/:ticket/drafts", h.getDrafts)
		complaints.DELETE("/:ticket/drafts", h.discardDrafts)
		complaints.POST("/:ticket/route", h.routeComplaint)
		complaints.GET("/:ticket/route-history", h.getRouteHistory)
		complaints.POST("/:ticket/share", h.shareTimeline)
	}

	notifications := protected.Group("/notifications")
	{
		notifications.GET("", h.getNotifications)
		notifications.POST("/read", h.markNotificationsRead)
	}

	protected.GET("/routing/users", h.getIOUsers)
}

func (h *Handler) login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if client.IsUnauthorized(err) {
			c.JSON(http.StatusUnauthorized, errorResponse("invalid credentials"))
			return
		}
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{
		"token": result.Token,
		"email": result.Email,
	}))
}

func (h *Handler) logout(c *gin.Context) {
	sess, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	if err := h.authService.Logout(c.Request.Context(), sess); err != nil {
		h.handleError(c, err)
		return
	}
	h.notificationService.Forget(sess.ID)

	c.JSON(http.StatusOK, successResponse(gin.H{"logged_out": true}))
}

func (h *Handler) getDashboard(c *gin.Context) {
	sess, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	var filter view.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	overview, err := h.dashboardService.Overview(c.Request.Context(), sess, filter)
	if err != nil {
		h.handleErrorWithSession(c, sess, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(overview))
}

func (h *Handler) getSummary(c *gin.Context) {
	sess, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	overview, err := h.dashboardService.Overview(c.Request.Context(), sess, view.Filter{})
	if err != nil {
		h.handleErrorWithSession(c, sess, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(overview.Summary))
}

// toggleFilter applies one chart or control interaction to the current filter
// state and returns the next state. The client sends back what it holds; the
// server owns the toggle semantics.
func (h *Handler) toggleFilter(c *gin.Context) {
	var req struct {
		Filter   view.Filter `json:"filter"`
		Action   string      `json:"action"`
		Status   string      `json:"status"`
		Category string      `json:"category"`
		Search   string      `json:"search"`
		PageSize int         `json:"page_size"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	var next view.Filter
	switch req.Action {
	case "toggle_status":
		next = req.Filter.ToggleStatus(req.Status)
	case "toggle_segment":
		next = req.Filter.ToggleSegment(req.Category, req.Status)
	case "clear_status":
		next = req.Filter.ClearStatus()
	case "clear_category":
		next = req.Filter.ClearCategory()
	case "search":
		next = req.Filter.WithSearch(req.Search)
	case "page_size":
		next = req.Filter.WithPageSize(req.PageSize)
	default:
		c.JSON(http.StatusBadRequest, errorResponse("unknown action"))
		return
	}

	c.JSON(http.StatusOK, successResponse(next))
}

func (h *Handler) getTimeline(c *gin.Context) {
	sess, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	timeline, err := h.dashboardService.Timeline(c.Request.Context(), sess, c.Param("ticket"))
	if err != nil {
		h.handleErrorWithSession(c, sess, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(timeline))
}

func (h *Handler) getStageFiles(c *gin.Context) {
	sess, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	files, err := h.dashboardService.StageFiles(c.Request.Context(), sess, c.Param("ticket"), c.Param("category"))
	if err != nil {
		h.handleErrorWithSession(c, sess, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(files))
}

func (h *Handler) processComplaint(c *gin.Context) {
	sess, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	if err := h.dashboardService.ProcessComplaint(c.Request.Context(), sess, c.Param("ticket")); err != nil {
		h.handleErrorWithSession(c, sess, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"processed": true}))
}

const maxUploadBytes = 25 << 20

func (h *Handler) submitStageUpdate(c *gin.Context) {
	sess, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	fields := make(map[string]string)
	for _, name := range draft.Fields {
		if values := form.Value[name]; len(values) > 0 && values[0] != "" {
			fields[name] = values[0]
		}
	}

	var uploads []client.Upload
	for _, fileHeader := range form.File["files"] {
		if fileHeader.Size > maxUploadBytes {
			c.JSON(http.StatusBadRequest, errorResponse("file too large"))
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		uploads = append(uploads, client.Upload{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Content:     content,
		})
	}

	err = h.dashboardService.SubmitStageUpdate(c.Request.Context(), sess, c.Param("ticket"), service.StageUpdateInput{
		Fields:  fields,
		Uploads: uploads,
	})
	if err != nil {
		h.handleErrorWithSession(c, sess, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"submitted": true}))
}

func (h *Handler) saveDraft(c *gin.Context) {
	if _, ok := middleware.MustSession(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	var req struct {
		Field string `json:"field" binding:"required"`
		Value string `json:"value"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	if err := h.dashboardService.SaveDraft(c.Request.Context(), c.Param("ticket"), req.Field, req.Value); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"saved": true}))
}

func (h *Handler) getDrafts(c *gin.Context) {
	if _, ok := middleware.MustSession(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	fields, err := h.dashboardService.Drafts(c.Request.Context(), c.Param("ticket"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(fields))
}

func (h *Handler) discardDrafts(c *gin.Context) {
	if _, ok := middleware.MustSession(c); !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	if err := h.dashboardService.DiscardDrafts(c.Request.Context(), c.Param("ticket")); err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"discarded": true}))
}

func (h *Handler) routeComplaint(c *gin.Context) {
	sess, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	var req struct {
		Method    string `json:"method" binding:"required"`
		Recipient string `json:"recipient" binding:"required"`
		Message   string `json:"message"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	err := h.routingService.Route(c.Request.Context(), sess, service.RouteInput{
		Ticket:    c.Param("ticket"),
		Method:    model.RouteMethod(req.Method),
		Recipient: req.Recipient,
		Message:   req.Message,
	})
	if err != nil {
		h.handleErrorWithSession(c, sess, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"routed": true}))
}

func (h *Handler) getRouteHistory(c *gin.Context) {
	sess, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	history, err := h.routingService.History(c.Request.Context(), sess, c.Param("ticket"))
	if err != nil {
		h.handleErrorWithSession(c, sess, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(history))
}

func (h *Handler) shareTimeline(c *gin.Context) {
	sess, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	var req struct {
		Email   string `json:"email" binding:"required"`
		Subject string `json:"subject"`
		HTML    string `json:"html" binding:"required"`
		CSS     string `json:"css"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	err := h.dashboardService.ShareTimeline(c.Request.Context(), sess, c.Param("ticket"), service.ShareInput{
		Email:   req.Email,
		Subject: req.Subject,
		HTML:    req.HTML,
		CSS:     req.CSS,
	})
	if err != nil {
		h.handleErrorWithSession(c, sess, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"shared": true}))
}

func (h *Handler) getNotifications(c *gin.Context) {
	sess, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	feed, err := h.notificationService.Feed(c.Request.Context(), sess)
	if err != nil {
		h.handleErrorWithSession(c, sess, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(feed))
}

func (h *Handler) markNotificationsRead(c *gin.Context) {
	sess, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	if err := h.notificationService.MarkAllRead(c.Request.Context(), sess); err != nil {
		h.handleErrorWithSession(c, sess, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(gin.H{"read": true}))
}

func (h *Handler) getIOUsers(c *gin.Context) {
	sess, ok := middleware.MustSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, errorResponse("missing session"))
		return
	}

	users, err := h.routingService.IOUsers(c.Request.Context(), sess)
	if err != nil {
		h.handleErrorWithSession(c, sess, err)
		return
	}

	c.JSON(http.StatusOK, successResponse(users))
}

// handleErrorWithSession adds the upstream-401 path: the stored portal token
// is no longer valid, so the session is dropped and the client is told to log
// in again.
func (h *Handler) handleErrorWithSession(c *gin.Context, sess *model.Session, err error) {
	if client.IsUnauthorized(err) {
		if delErr := h.sessions.Delete(c.Request.Context(), sess.ID); delErr != nil {
			h.log.Warn().Err(delErr).Str("session", sess.ID).Msg("failed to delete session")
		}
		h.notificationService.Forget(sess.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "session expired", "redirect": "/login"})
		return
	}
	h.handleError(c, err)
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, errorResponse(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, errorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, errorResponse(err.Error()))
	case errors.As(err, &apiErr):
		h.log.Error().Int("status", apiErr.Status).Str("message", apiErr.Message).Msg("upstream error")
		c.JSON(http.StatusBadGateway, errorResponse("upstream error"))
	default:
		h.log.Error().Err(err).Msg("handler error")
		c.JSON(http.StatusInternalServerError, errorResponse("internal error"))
	}
}

func successResponse(data interface{}) gin.H {
	return gin.H{
		"data": data,
	}
}

func errorResponse(message string) gin.H {
	return gin.H{
		"error": message,
	}
}
