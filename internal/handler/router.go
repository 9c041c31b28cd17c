package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coworkhub/internal/domain/user"
	"coworkhub/internal/handler/api"
	"coworkhub/internal/handler/middleware"
	"coworkhub/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	spaceHandler *api.SpaceHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, bookingHandler, spaceHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	bookingHandler *api.BookingHandler,
	spaceHandler *api.SpaceHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: authHandler.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		spaces := apiGroup.Group("/spaces")
		spaces.Use(authMiddleware.RequireAuth())
		{
			addRoutes(spaces, []route{
				{Method: http.MethodGet, Path: "", Handler: spaceHandler.ListSpaces},
				{Method: http.MethodGet, Path: "/:id", Handler: spaceHandler.GetSpace},
				{Method: http.MethodGet, Path: "/:id/availability", Handler: spaceHandler.GetAvailability},
				{Method: http.MethodGet, Path: "/:id/utilization", Handler: spaceHandler.GetUtilization},
				{Method: http.MethodGet, Path: "/:id/bookings", Handler: spaceHandler.ListSpaceBookings},
			})
		}

		bookings := apiGroup.Group("/bookings")
		bookings.Use(authMiddleware.RequireAuth())
		{
			operatorOnly := authMiddleware.RequireRoleAtLeast(user.RoleOperator)

			addRoutes(bookings, []route{
				{Method: http.MethodPost, Path: "", Handler: bookingHandler.CreateBooking},
				{Method: http.MethodGet, Path: "", Handler: bookingHandler.ListBookings},
				{Method: http.MethodGet, Path: "/:id", Handler: bookingHandler.GetBooking},
				{Method: http.MethodPatch, Path: "/:id", Handler: bookingHandler.ModifyBooking},
				{Method: http.MethodDelete, Path: "/:id", Handler: bookingHandler.CancelBooking},
				{Method: http.MethodPost, Path: "/:id/check-in", Handler: bookingHandler.CheckIn},
				{Method: http.MethodPost, Path: "/:id/check-out", Handler: bookingHandler.CheckOut},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: bookingHandler.ConfirmBooking, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: bookingHandler.RejectBooking, Mw: []gin.HandlerFunc{operatorOnly}},
				{Method: http.MethodPost, Path: "/:id/complete", Handler: bookingHandler.CompleteBooking, Mw: []gin.HandlerFunc{operatorOnly}},
			})
		}
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
