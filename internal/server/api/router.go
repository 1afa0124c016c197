// Package api assembles the gin engine of the store REST API.
package api

import (
	"net/http"

	"github.com/dmitrijs2005/billed/internal/logging"
	"github.com/dmitrijs2005/billed/internal/server/api/handlers"
	"github.com/dmitrijs2005/billed/internal/server/api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the router wires into its handlers.
type Deps struct {
	Users         handlers.UserService
	Bills         handlers.BillService
	Authenticator middleware.Authenticator
	Logger        logging.Logger
	Registry      *prometheus.Registry
	MaxUploadSize int64
}

// SetupRouter configures and returns the gin engine.
//
//	POST  /auth/register
//	POST  /auth/login
//	GET   /bills          (bearer)
//	POST  /bills          (bearer, multipart)
//	PATCH /bills/:id      (bearer)
//	GET   /metrics
func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logging(d.Logger))
	r.Use(middleware.NewMetrics(d.Registry).Handler())

	// bounds the in-memory part of multipart parsing
	r.MaxMultipartMemory = d.MaxUploadSize + (1 << 20)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{Registry: d.Registry})))

	authHandler := handlers.NewRestAuthHandler(d.Users)
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	billHandler := handlers.NewRestBillHandler(d.Bills, d.MaxUploadSize)
	billsGroup := r.Group("/bills", middleware.AuthMiddleware(d.Authenticator))
	{
		billsGroup.GET("", billHandler.List)
		billsGroup.POST("", billHandler.Create)
		billsGroup.PATCH("/:id", billHandler.Update)
	}

	return r
}
