// Package server exposes the symptom checker over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/abhisek/symcheck/internal/backend"
	"github.com/abhisek/symcheck/internal/diagnosis"
	"github.com/abhisek/symcheck/internal/session"
	"github.com/abhisek/symcheck/internal/symptom"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8080"

// Server serves the catalog, diagnosis and classification endpoints.
type Server struct {
	sess       *session.Session
	classifier *diagnosis.Classifier
	engine     *gin.Engine
}

// New builds a Server around sess. Every request shares the session's
// backend and event log; selections come from request bodies.
func New(sess *session.Session) *Server {
	s := &Server{
		sess:       sess,
		classifier: diagnosis.NewClassifier(diagnosis.DefaultClassifierConfig()),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Logger(),
		gin.Recovery(),
		limitBodySize(MaxBodyBytes),
		cors.New(cors.Config{
			AllowOrigins: []string{"*"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}),
	)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Symptom checker API is running!")
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.GET("/catalog", s.handleCatalog)
	api.POST("/diagnose", s.handleDiagnose)
	api.POST("/classify", s.handleClassify)

	return router
}

type catalogSymptom struct {
	ID    symptom.ID `json:"id"`
	Label string     `json:"label"`
}

type catalogCategory struct {
	Name     string           `json:"name"`
	Symptoms []catalogSymptom `json:"symptoms"`
}

func (s *Server) handleCatalog(c *gin.Context) {
	categories := make([]catalogCategory, 0, len(s.sess.Catalog.Categories))
	for _, cat := range s.sess.Catalog.Categories {
		out := catalogCategory{Name: cat.Name}
		for _, id := range cat.Symptoms {
			out.Symptoms = append(out.Symptoms, catalogSymptom{ID: id, Label: symptom.Label(id)})
		}
		categories = append(categories, out)
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

type diagnoseResponse struct {
	Status    string `json:"status"`
	RequestID string `json:"request_id"`
	*diagnosis.ResultSet
}

func (s *Server) handleDiagnose(c *gin.Context) {
	var req backend.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	sub, err := s.sess.PrepareSymptoms(req.Symptoms)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": session.Notice(err)})
		return
	}

	out := s.sess.Run(c.Request.Context(), sub)
	if out.Err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"status":     "error",
			"request_id": sub.RequestID,
			"message":    session.NoticeFailed,
		})
		return
	}

	c.JSON(http.StatusOK, diagnoseResponse{
		Status:    "success",
		RequestID: sub.RequestID,
		ResultSet: out.Result,
	})
}

func (s *Server) handleClassify(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		bindError(c, err)
		return
	}

	resp, err := diagnosis.DecodeResponse(body)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s.classifier.Classify(resp.Results))
}

func bindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"status": "error", "message": "request body too large"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid payload"})
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	fmt.Fprintln(os.Stderr, "shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
