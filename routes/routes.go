package routes

import (
	"net/http"
	"time"

	"bookvisit/handlers"
	"bookvisit/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterHealthRoute registers the health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterMetricsRoute exposes the Prometheus registry when metrics are on.
func RegisterMetricsRoute(r *gin.Engine, hb *handlers.HandlerBundle, gatherer prometheus.Gatherer) {
	if !hb.MetricsEnabled {
		return
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// RegisterBookerRoutes registers the signed-in booker's pages and the
// book-a-visit journey behind the session validator.
func RegisterBookerRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	authed := r.Group("/")
	authed.Use(middleware.BookerAuthMiddleware(hb.JWTSecret, hb.SessionStore, hb.BookerService))
	{
		authed.GET("/", hb.Home)
		authed.GET("/add-prisoner", hb.AddPrisonerForm)
		authed.POST("/add-prisoner", hb.AddPrisoner)
		authed.GET("/visitors/add", hb.AddVisitorForm)
		authed.POST("/visitors/add", hb.AddVisitor)
		authed.GET("/visits", hb.Visits)
		authed.POST("/visits/cancel", hb.CancelVisit)
		authed.GET("/return-home", hb.ReturnHome)
	}

	bookVisit := authed.Group("/book-visit")
	bookVisit.Use(middleware.BookingJourneyValidator())
	{
		bookVisit.POST("/select-prisoner", hb.SelectPrisoner)
		bookVisit.GET("/cannot-book", hb.CannotBook)
		bookVisit.GET("/select-visitors", hb.SelectVisitors)
		bookVisit.POST("/select-visitors", hb.SubmitVisitors)
		bookVisit.GET("/closed-visit", hb.ClosedVisit)
		bookVisit.GET("/choose-visit-time", hb.ChooseTime)
		bookVisit.POST("/choose-visit-time", hb.SubmitVisitTime)
		bookVisit.GET("/additional-support", hb.AdditionalSupport)
		bookVisit.POST("/additional-support", hb.SubmitAdditionalSupport)
		bookVisit.GET("/main-contact", hb.MainContact)
		bookVisit.POST("/main-contact", hb.SubmitMainContact)
		bookVisit.GET("/contact-details", hb.ContactDetails)
		bookVisit.POST("/contact-details", hb.SubmitContactDetails)
		bookVisit.GET("/check-visit-details", hb.CheckDetails)
		bookVisit.POST("/check-visit-details", hb.Book)
		bookVisit.GET("/visit-booked", hb.Booked)
	}
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, gatherer prometheus.Gatherer) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Location"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))

	RegisterHealthRoute(r)
	RegisterMetricsRoute(r, hb, gatherer)
	RegisterBookerRoutes(r, hb)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"page": "not-found", "message": "Page not found"})
	})
}
