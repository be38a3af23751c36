package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"

	"todoapp/internal/auth"
	"todoapp/internal/domain/errors"
	"todoapp/internal/domain/models"
)

const apiVersion = "1.0.0"

type TaskRepository interface {
	ListTasks(ctx context.Context, userID string) ([]models.Task, error)
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, userID string, taskID int64) (*models.Task, error)
	UpdateTask(ctx context.Context, userID string, taskID int64, patch *models.UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, userID string, taskID int64) error
	ToggleTaskCompletion(ctx context.Context, userID string, taskID int64) (*models.Task, error)
}

type TaskAPI struct {
	httpSrv  *http.Server
	repo     TaskRepository
	sessions *auth.Validator
	cfg      *Config
}

func NewTaskAPI(repo TaskRepository, sessions *auth.Validator, cfg *Config) *TaskAPI {
	if repo == nil || sessions == nil || cfg == nil {
		return nil
	}

	httpSrv := http.Server{
		Addr: cfg.Addr + ":" + strconv.Itoa(cfg.Port),
	}

	api := TaskAPI{
		httpSrv:  &httpSrv,
		repo:     repo,
		sessions: sessions,
		cfg:      cfg,
	}

	api.configRoutes()

	return &api
}

func (api *TaskAPI) Start() error {
	if api.httpSrv == nil {
		return errors.ErrInternalServer
	}

	if api.httpSrv.Addr == "" || strings.HasSuffix(api.httpSrv.Addr, ":0") {
		api.httpSrv.Addr = ":8080"
	}

	return api.httpSrv.ListenAndServe()
}

func (api *TaskAPI) Shutdown(ctx context.Context) error {
	if api.httpSrv == nil {
		return errors.ErrInternalServer
	}
	return api.httpSrv.Shutdown(ctx)
}

func (api *TaskAPI) configRoutes() {
	if api.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.Use(RequestID())
	router.Use(CORS(api.cfg.FrontendURL))

	router.NoMethod(func(ctx *gin.Context) {
		ctx.JSON(http.StatusMethodNotAllowed, gin.H{"error": "использован некорректный HTTP-метод"})
	})

	router.GET("/", api.root)
	router.GET("/debug/check-token", api.checkToken)

	user := router.Group("/api/:userID", Auth(api.sessions))
	tasks := user.Group("/tasks")
	{
		tasks.GET("", api.listTasks)
		tasks.POST("", api.createTask)
		tasks.GET("/:taskID", api.getTask)
		tasks.PUT("/:taskID", api.updateTask)
		tasks.DELETE("/:taskID", api.deleteTask)
		tasks.PATCH("/:taskID/complete", api.toggleTaskCompletion)
	}

	api.httpSrv.Handler = router
}

func (api *TaskAPI) root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Task Service API",
		"version": apiVersion,
	})
}

func (api *TaskAPI) checkToken(ctx *gin.Context) {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		ctx.JSON(http.StatusOK, gin.H{
			"error":         errors.ErrMissingAuthHeader.Error(),
			"authorization": nil,
		})
		return
	}

	parts := strings.Fields(header)
	resp := gin.H{
		"full_header": header,
		"parts_count": len(parts),
		"parts":       parts,
	}

	if len(parts) > 1 {
		token := parts[1]
		resp["token"] = token
		resp["token_length"] = len(token)
		resp["token_segments"] = len(strings.Split(token, "."))

		claims, err := auth.DecodeJWT(token, api.cfg.AuthSecret)
		if err != nil {
			resp["legacy_jwt_error"] = err.Error()
		} else {
			resp["legacy_jwt_claims"] = claims
		}
	}

	ctx.JSON(http.StatusOK, resp)
}

func (api *TaskAPI) listTasks(ctx *gin.Context) {
	userID := ctx.GetString(userIDKey)

	tasks, err := api.repo.ListTasks(ctx.Request.Context(), userID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func (api *TaskAPI) createTask(ctx *gin.Context) {
	userID := ctx.GetString(userIDKey)

	var req models.CreateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}

	req.Normalize()
	valid := validator.New()
	if err := valid.Struct(req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationErrorToErrorResponse(err).Error()})
		return
	}

	task := models.Task{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := api.repo.CreateTask(ctx.Request.Context(), &task); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		return
	}

	ctx.JSON(http.StatusCreated, task)
}

func (api *TaskAPI) getTask(ctx *gin.Context) {
	userID := ctx.GetString(userIDKey)
	taskID, err := parseTaskID(ctx.Param("taskID"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrTaskNotFound.Error()})
		return
	}

	task, err := api.repo.GetTask(ctx.Request.Context(), userID, taskID)
	if err != nil {
		if stderrors.Is(err, errors.ErrTaskNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrTaskNotFound.Error()})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (api *TaskAPI) updateTask(ctx *gin.Context) {
	userID := ctx.GetString(userIDKey)
	taskID, err := parseTaskID(ctx.Param("taskID"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrTaskNotFound.Error()})
		return
	}

	var req models.UpdateTaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": errors.ErrBadRequest.Error()})
		return
	}

	req.Normalize()
	if req.Title != nil && *req.Title == "" {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": errors.ErrInvalidTitle.Error()})
		return
	}
	valid := validator.New()
	if err := valid.Struct(req); err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": validationErrorToErrorResponse(err).Error()})
		return
	}

	task, err := api.repo.UpdateTask(ctx.Request.Context(), userID, taskID, &req)
	if err != nil {
		if stderrors.Is(err, errors.ErrTaskNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrTaskNotFound.Error()})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (api *TaskAPI) deleteTask(ctx *gin.Context) {
	userID := ctx.GetString(userIDKey)
	taskID, err := parseTaskID(ctx.Param("taskID"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrTaskNotFound.Error()})
		return
	}

	if err := api.repo.DeleteTask(ctx.Request.Context(), userID, taskID); err != nil {
		if stderrors.Is(err, errors.ErrTaskNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrTaskNotFound.Error()})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (api *TaskAPI) toggleTaskCompletion(ctx *gin.Context) {
	userID := ctx.GetString(userIDKey)
	taskID, err := parseTaskID(ctx.Param("taskID"))
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrTaskNotFound.Error()})
		return
	}

	task, err := api.repo.ToggleTaskCompletion(ctx.Request.Context(), userID, taskID)
	if err != nil {
		if stderrors.Is(err, errors.ErrTaskNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": errors.ErrTaskNotFound.Error()})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": errors.ErrInternalServer.Error()})
		}
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func parseTaskID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func validationErrorToErrorResponse(err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, verr := range verrs {
			switch verr.Field() {
			case "Title":
				return errors.ErrInvalidTitle
			case "Description":
				return errors.ErrInvalidDescription
			}
		}
	}
	return errors.ErrValidationFailed
}
