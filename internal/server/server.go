package server

import (
	"net/http"
	"time"

	"anoa.com/edusphere/internal/access"
	"anoa.com/edusphere/internal/config"
	"anoa.com/edusphere/internal/middleware"
	"anoa.com/edusphere/internal/modules/counter"
	"anoa.com/edusphere/internal/store"
	"anoa.com/edusphere/pkg/payment"
	"anoa.com/edusphere/pkg/ratelimit"
	"anoa.com/edusphere/pkg/storage"

	assignmentHttp "anoa.com/edusphere/internal/modules/assignment/delivery/http"
	assignmentService "anoa.com/edusphere/internal/modules/assignment/service"

	authHttp "anoa.com/edusphere/internal/modules/auth/delivery/http"
	authService "anoa.com/edusphere/internal/modules/auth/service"

	classHttp "anoa.com/edusphere/internal/modules/class/delivery/http"
	classService "anoa.com/edusphere/internal/modules/class/service"

	feedbackHttp "anoa.com/edusphere/internal/modules/feedback/delivery/http"
	feedbackService "anoa.com/edusphere/internal/modules/feedback/service"

	notiHttp "anoa.com/edusphere/internal/modules/notification/delivery/http"
	notifService "anoa.com/edusphere/internal/modules/notification/service"

	paymentHttp "anoa.com/edusphere/internal/modules/payment/delivery/http"
	paymentService "anoa.com/edusphere/internal/modules/payment/service"

	searchService "anoa.com/edusphere/internal/modules/search/service"

	teachHttp "anoa.com/edusphere/internal/modules/teachrequest/delivery/http"
	teachService "anoa.com/edusphere/internal/modules/teachrequest/service"

	userHttp "anoa.com/edusphere/internal/modules/user/delivery/http"
	userService "anoa.com/edusphere/internal/modules/user/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Deps are the collaborators the router is built from. Everything except
// Repositories and Config may be nil; the affected features degrade instead
// of failing at startup.
type Deps struct {
	Config       *config.Config
	Repositories store.Repositories
	Redis        *redis.Client
	Meili        meilisearch.ServiceManager
	ImageStorage storage.ImageStorage
	Processor    payment.Processor
	Logger       *zap.Logger
}

type Server struct {
	engine *gin.Engine
}

type route struct {
	method     string
	path       string
	capability access.Capability
	handler    gin.HandlerFunc
}

func NewServer(deps Deps) *Server {
	return &Server{engine: NewRouter(deps)}
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func NewRouter(deps Deps) *gin.Engine {
	cfg := deps.Config
	repos := deps.Repositories
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	tokens := authService.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	authHandler := authHttp.NewAuthHandler(tokens)

	counterUpdater := counter.NewUpdater(repos.Classes, logger)
	limiter := ratelimit.New(deps.Redis)

	// User Module
	userSvc := userService.NewUserService(repos.Users)
	userHandler := userHttp.NewUserHandler(userSvc)

	// Class Module
	classSearch := searchService.NewClassSearch(deps.Meili, repos.Classes, logger)
	classSvc := classService.NewClassService(repos.Classes, repos.Users, deps.ImageStorage, classSearch, logger)
	classHandler := classHttp.NewClassHandler(classSvc)

	// Payment Module
	paymentSvc := paymentService.NewPaymentService(
		repos.Payments, repos.Classes, repos.Users, counterUpdater, deps.Processor, limiter,
		paymentService.Config{Currency: cfg.PaymentCurrency, CheckoutWindow: cfg.RateLimitCheckout},
		logger,
	)
	paymentHandler := paymentHttp.NewPaymentHandler(paymentSvc, limiter)

	// Assignment Module
	assignmentSvc := assignmentService.NewAssignmentService(repos.Assignments, repos.Submissions, repos.Classes, repos.Payments, repos.Users, counterUpdater)
	assignmentHandler := assignmentHttp.NewAssignmentHandler(assignmentSvc)

	// Notification Module
	notificationSvc := notifService.NewNotificationService(deps.Redis, logger)
	notificationHandler := notiHttp.NewNotificationHandler(deps.Redis, cfg.AllowedOrigins, logger)

	// Teach Request Module
	teachSvc := teachService.NewTeachRequestService(repos.TeachRequests, repos.Users, notificationSvc, logger)
	teachHandler := teachHttp.NewTeachRequestHandler(teachSvc)

	// Feedback Module
	feedbackSvc := feedbackService.NewFeedbackService(repos.Feedback, repos.Classes)
	feedbackHandler := feedbackHttp.NewFeedbackHandler(feedbackSvc)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/"},
	}))

	authMiddleware := middleware.NewAuthMiddleware(repos.Users, tokens)
	timeout := middleware.Timeout(cfg.RequestTimeout)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "EduSphere server is running")
	})

	routes := []route{
		{http.MethodPost, "/auth-token", access.Public, authHandler.IssueToken},

		{http.MethodPost, "/users", access.Public, userHandler.Register},
		{http.MethodGet, "/users/public", access.Public, userHandler.GetPublicUsers},
		{http.MethodGet, "/users/role/:email", access.Authenticated, userHandler.GetRole},
		{http.MethodGet, "/users", access.Admin, userHandler.GetAllUsers},
		{http.MethodPatch, "/users/role/:id", access.Admin, userHandler.UpdateRole},
		{http.MethodDelete, "/users/:id", access.Admin, userHandler.DeleteUser},

		{http.MethodPost, "/classes", access.Teacher, classHandler.CreateClass},
		{http.MethodGet, "/classes", access.Authenticated, classHandler.GetOwnedClasses},
		{http.MethodGet, "/classes/:id", access.Authenticated, classHandler.GetClass},
		{http.MethodPatch, "/classes/:id", access.Teacher, classHandler.UpdateClass},
		{http.MethodDelete, "/classes/:id", access.Teacher, classHandler.DeleteClass},
		{http.MethodPatch, "/classes/:id/status", access.Admin, classHandler.UpdateStatus},
		{http.MethodGet, "/admin/classes", access.Admin, classHandler.GetAllClasses},
		{http.MethodGet, "/public-classes", access.Public, classHandler.GetPublicClasses},
		{http.MethodGet, "/public-classes/highlighted", access.Public, classHandler.GetHighlightedClasses},
		{http.MethodGet, "/public-classes/search", access.Public, classHandler.SearchClasses},

		{http.MethodPost, "/payments/intent", access.Authenticated, paymentHandler.CreateIntent},
		{http.MethodPost, "/payments", access.Authenticated, paymentHandler.RecordPayment},
		{http.MethodGet, "/enrollments", access.Authenticated, paymentHandler.GetEnrollments},

		{http.MethodPost, "/assignments", access.Teacher, assignmentHandler.CreateAssignment},
		{http.MethodGet, "/assignments/:id", access.Authenticated, assignmentHandler.GetClassAssignments},
		{http.MethodPost, "/submissions", access.Authenticated, assignmentHandler.Submit},

		{http.MethodPost, "/teach-requests", access.Authenticated, teachHandler.CreateRequest},
		{http.MethodGet, "/teach-requests", access.Admin, teachHandler.GetRequests},
		{http.MethodGet, "/teach-requests/me", access.Authenticated, teachHandler.GetMyRequest},
		{http.MethodPatch, "/teach-requests/:id/resolve", access.Admin, teachHandler.Resolve},
		{http.MethodPatch, "/teach-requests/:id/resubmit", access.Authenticated, teachHandler.Resubmit},

		{http.MethodPost, "/feedback", access.Authenticated, feedbackHandler.CreateFeedback},
		{http.MethodGet, "/feedback", access.Public, feedbackHandler.GetFeedback},
	}

	for _, r := range routes {
		router.Handle(r.method, r.path, timeout, authMiddleware.Require(r.capability), r.handler)
	}

	// The websocket outlives any request timeout.
	router.GET("/notifications/ws", authMiddleware.Require(access.Authenticated), notificationHandler.HandleWebSocket)

	return router
}

func setupCORS(router *gin.Engine, origins []string) {
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
