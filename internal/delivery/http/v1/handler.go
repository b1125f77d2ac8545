package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/taskboard/api/internal/auth"
	"github.com/taskboard/api/internal/config"
	"github.com/taskboard/api/internal/stores"
)

type Handler interface {
	HandleLogin(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateUser(c *gin.Context)
	HandleGetUser(c *gin.Context)
	HandleUpdateUser(c *gin.Context)
	HandleDeleteUser(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleListTasks(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)
}

type handlerImpl struct {
	logger zerolog.Logger
	env    string
	users  stores.UserStore
	tasks  stores.TaskStore
	tokens *auth.TokenIssuer
}

func New(
	logger zerolog.Logger,
	env string,
	userStore stores.UserStore,
	taskStore stores.TaskStore,
	tokenIssuer *auth.TokenIssuer,
) Handler {
	return &handlerImpl{
		logger: logger,
		env:    env,
		users:  userStore,
		tasks:  taskStore,
		tokens: tokenIssuer,
	}
}

// RegisterRoutes binds the API surface to the router. Routes under
// /users (except signup) and all of /tasks sit behind the bearer
// token middleware.
func RegisterRoutes(router *gin.Engine, h Handler) {
	authRouter := router.Group("/auth")
	authRouter.POST("/login", h.HandleLogin)
	authRouter.POST("/logout", h.HandleLogout)

	usersRouter := router.Group("/users")
	usersRouter.POST("", h.HandleCreateUser)
	usersRouter.GET("/:id", h.HandleAuthMiddleware, h.HandleGetUser)
	usersRouter.PUT("/:id", h.HandleAuthMiddleware, h.HandleUpdateUser)
	usersRouter.DELETE("/:id", h.HandleAuthMiddleware, h.HandleDeleteUser)

	tasksRouter := router.Group("/tasks", h.HandleAuthMiddleware)
	tasksRouter.POST("", h.HandleCreateTask)
	tasksRouter.GET("", h.HandleListTasks)
	tasksRouter.GET("/:id", h.HandleGetTask)
	tasksRouter.PUT("/:id", h.HandleUpdateTask)
	tasksRouter.DELETE("/:id", h.HandleDeleteTask)

	router.NoRoute(func(c *gin.Context) {
		abort(c, newNotFoundError("not found"))
	})
}

// abortInternal hides failure detail from clients in prod;
// the full error always goes to the logs.
func (h *handlerImpl) abortInternal(c *gin.Context, err error) {
	if h.env != config.EnvProd {
		abort(c, newAPIError(http.StatusInternalServerError, err.Error()))
		return
	}
	abort(c, newStatusTextError(http.StatusInternalServerError))
}
