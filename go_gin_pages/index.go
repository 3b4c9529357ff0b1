package go_gin_pages

import (
	"net/http"
	"time"

	"apartment_rent/repository"
	"apartment_rent/utils/errDefs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	requestIdHeader = "X-Request-Id"
	loggerKey       = "logger"
)

type resultIndex struct {
	Now      string `json:"now"`
	Database bool   `json:"database"`
}

// Dependencies is everything the pages need from the rest of the program.
type Dependencies struct {
	Origin         string
	Log            logrus.FieldLogger
	DB             *repository.Database
	Gatherer       prometheus.Gatherer
	RecordsPerPage int
	Tokens         TokenIssuer
	Accounts       AccountService
	Apartments     ApartmentService
	Bookings       BookingService
	Orders         OrderService
}

func returnError(c *gin.Context, err error) {
	status := errDefs.DetermineStatus(err)
	if status >= http.StatusInternalServerError {
		requestLogger(c).WithError(err).Error("request failed")
	}
	c.JSON(status, gin.H{"Error": err.Error()})
}

func requestLogger(c *gin.Context) logrus.FieldLogger {
	if log, ok := c.Get(loggerKey); ok {
		return log.(logrus.FieldLogger)
	}
	return logrus.StandardLogger()
}

// requestIdMiddleware tags every request with an id and a logger carrying it.
func requestIdMiddleware(log logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIdHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Writer.Header().Set(requestIdHeader, id)
		entry := log.WithFields(logrus.Fields{
			"requestId": id,
			"method":    c.Request.Method,
			"path":      c.Request.URL.Path,
		})
		c.Set(loggerKey, entry)

		start := time.Now()
		c.Next()
		entry.WithFields(logrus.Fields{
			"status":   c.Writer.Status(),
			"duration": time.Since(start),
		}).Debug("request served")
	}
}

func corsMiddleware(origin string) gin.HandlerFunc {
	allowedOrigins := map[string]bool{
		"http://" + origin:  true,
		"https://" + origin: true,
	}
	return func(c *gin.Context) {
		requestOrigin := c.Request.Header.Get("Origin")
		if allowedOrigins[requestOrigin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", requestOrigin)
			c.Writer.Header().Set("Vary", "Origin")
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "null")
		}

		if c.Request.Method == http.MethodOptions {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "false")
			c.Writer.Header().Set("Access-Control-Max-Age", "900")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Origin, Accept, X-Requested-With, X-Request-Id")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// EnsureDatabaseIsOK answers 500 instead of calling fn while no database is connected.
func EnsureDatabaseIsOK(db *repository.Database, fn gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !db.IsEnabled() {
			returnError(c, errDefs.ErrDatabaseOffline)
			return
		}
		fn(c)
	}
}

func index(db *repository.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(
			http.StatusOK,
			resultIndex{
				Now:      time.Now().UTC().Format(time.RFC3339),
				Database: db.IsEnabled(),
			},
		)
	}
}

func Prepare(engine *gin.Engine, deps Dependencies) {
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	if deps.RecordsPerPage < 1 {
		deps.RecordsPerPage = defaultRecordsPerPage
	}
	engine.Use(requestIdMiddleware(deps.Log), corsMiddleware(deps.Origin))

	engine.GET("/", index(deps.DB))
	if deps.Gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	guard := func(fn gin.HandlerFunc) gin.HandlerFunc { return EnsureDatabaseIsOK(deps.DB, fn) }
	NewAccountHandler(deps.Accounts, deps.Tokens).prepareAccount(engine.Group("/accounts"), guard)
	NewApartmentHandler(deps.Apartments, deps.RecordsPerPage).prepareApartment(engine.Group("/apartments"), guard)
	NewBookingHandler(deps.Bookings, deps.RecordsPerPage).prepareBooking(engine.Group("/bookings"), guard)
	NewOrderHandler(deps.Orders, deps.RecordsPerPage).prepareOrder(engine.Group("/orders"), guard)
}
