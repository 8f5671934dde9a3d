// Package server exposes the filing generators over HTTP. The
// generators are pure; this layer only decodes requests, supplies the
// wall clock and maps the two error severities onto status codes.
package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/rezonia/filing-engine/internal/classify"
	"github.com/rezonia/filing-engine/internal/filing"
	"github.com/rezonia/filing-engine/internal/isdoc"
	"github.com/rezonia/filing-engine/internal/logger"
	"github.com/rezonia/filing-engine/internal/model"
	"github.com/rezonia/filing-engine/internal/spayd"
)

// Config holds server configuration
type Config struct {
	Address      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config *Config
	router *gin.Engine
	log    zerolog.Logger

	// now is swappable for tests; generation output depends on it
	// only through the prepared-on date.
	now func() time.Time
}

// NewServer creates a new API server
func NewServer(config *Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	if config.Debug {
		router.Use(gin.Logger())
	}

	s := &Server{
		config: config,
		router: router,
		log:    logger.WithComponent("server"),
		now:    time.Now,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/filings/control-statement", s.handleControlStatement)
		v1.POST("/filings/vat-return", s.handleVATReturn)
		v1.POST("/filings/ec-sales", s.handleECSales)
		v1.POST("/isdoc", s.handleISDOC)
		v1.POST("/qr", s.handleQR)
	}
}

// Handler returns the underlying HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the server and blocks.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.log.Info().Str("address", s.config.Address).Msg("listening")
	return srv.ListenAndServe()
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   s.now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleControlStatement(c *gin.Context) {
	var req ControlStatementRequest
	if !s.bind(c, &req) {
		return
	}
	period, err := req.Period.Period()
	if err != nil {
		s.fail(c, err)
		return
	}

	res, err := filing.BuildControlStatement(filing.ControlStatementInput{
		Issued:    req.Issued,
		Received:  req.Received,
		Submitter: req.Submitter,
		Period:    period,
		Options:   classify.DefaultOptions(req.Submitter.TaxID),
		Now:       s.now(),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	s.logWarnings("control-statement", res.Warnings)
	c.JSON(http.StatusOK, FilingResponse{XML: res.XML, Warnings: res.Warnings})
}

func (s *Server) handleVATReturn(c *gin.Context) {
	var req VATReturnRequest
	if !s.bind(c, &req) {
		return
	}
	period, err := req.Period.Period()
	if err != nil {
		s.fail(c, err)
		return
	}

	res, err := filing.BuildVATReturn(filing.VATReturnInput{
		Issued:              req.Issued,
		Received:            req.Received,
		Submitter:           req.Submitter,
		Period:              period,
		CrossBorderServices: req.CrossBorderServices,
		Now:                 s.now(),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, FilingResponse{XML: res.XML})
}

func (s *Server) handleECSales(c *gin.Context) {
	var req ECSalesRequest
	if !s.bind(c, &req) {
		return
	}

	res, err := filing.BuildECSalesList(filing.ECSalesInput{
		Issued:    req.Issued,
		Submitter: req.Submitter,
		Year:      req.Year,
		Quarter:   req.Quarter,
		Options:   classify.DefaultOptions(req.Submitter.TaxID),
		Now:       s.now(),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, FilingResponse{XML: res.XML})
}

func (s *Server) handleISDOC(c *gin.Context) {
	var req ISDOCRequest
	if !s.bind(c, &req) {
		return
	}

	out, err := isdoc.Serialize(req.Invoice, req.Lines, isdoc.Options{
		VATPayer:      req.VATPayer,
		Supplier:      req.Supplier,
		Customer:      req.Customer,
		BankAccount:   req.BankAccount,
		IBAN:          req.IBAN,
		BIC:           req.BIC,
		IssuingSystem: filing.SoftwareName + " " + filing.SoftwareVersion,
		Now:           s.now(),
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, FilingResponse{XML: out})
}

func (s *Server) handleQR(c *gin.Context) {
	var req model.BankingInfo
	if !s.bind(c, &req) {
		return
	}

	out := spayd.Encode(req)
	if out == "" {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: "account number is required",
		})
		return
	}
	c.JSON(http.StatusOK, QRResponse{SPAYD: out})
}

func (s *Server) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}

// fail maps filing-level errors onto 422; anything else is a 500.
func (s *Server) fail(c *gin.Context, err error) {
	var fe *model.FilingError
	if errors.As(err, &fe) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		return
	}
	s.log.Error().Err(err).Msg("generation failed")
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}

func (s *Server) logWarnings(filingName string, warnings []string) {
	for _, w := range warnings {
		s.log.Warn().Str("filing", filingName).Msg(w)
	}
}
