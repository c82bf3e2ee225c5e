// Package web serves the task manager as a server-rendered page.
package web

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"taskui/internal/output"
	"taskui/internal/service"
	"taskui/internal/taskview"
)

const shutdownTimeout = 10 * time.Second

// Server renders the view-model over HTTP. Every form POST answers with a
// 303 back to the page.
type Server struct {
	view *taskview.Manager
	log  *zap.Logger
	page *template.Template
}

// NewServer creates a Server for view.
func NewServer(view *taskview.Manager, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		view: view,
		log:  log.Named("web"),
		page: template.Must(template.New("page").Funcs(template.FuncMap{
			"row": output.Row,
		}).Parse(pageTemplate)),
	}
}

// Mount loads the task list once.
func (s *Server) Mount(ctx context.Context) {
	// failures are logged by the view-model; the page starts empty
	_ = s.view.Load(ctx)
}

// Handler returns the gin engine with every route registered.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog())

	r.GET("/", s.index)
	r.POST("/submit", s.submit)
	r.POST("/tasks/:id/edit", s.edit)
	r.POST("/tasks/:id/delete", s.remove)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}

// ListenAndServe mounts the page and serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.Mount(ctx)

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server started", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type pageData struct {
	taskview.State
	SubmitLabel string

	// EditID and EditStatus are rendered as hidden inputs while editing, so
	// each posted form says for itself whether it creates or updates.
	EditID     int64
	EditStatus string
}

func (s *Server) index(c *gin.Context) {
	state := s.view.Snapshot()
	data := pageData{State: state, SubmitLabel: taskview.SubmitLabel(state.Mode)}
	if md, ok := state.Mode.(taskview.EditMode); ok {
		data.EditID = md.Task.ID
		data.EditStatus = md.Task.Status
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := s.page.Execute(c.Writer, data); err != nil {
		s.log.Error("error rendering page", zap.Error(err))
	}
}

// submit takes the mode from the posted form, not from the shared view-model:
// a page rendered before another tab started an edit still creates.
func (s *Server) submit(c *gin.Context) {
	form := taskview.Form{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
	}

	var mode taskview.Mode = taskview.CreateMode{}
	if raw := c.PostForm("edit_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.String(http.StatusBadRequest, "invalid task id: %s", raw)
			return
		}
		mode = taskview.EditMode{Task: service.Task{ID: id, Status: c.PostForm("edit_status")}}
	}

	_ = s.view.SubmitForm(c.Request.Context(), mode, form)
	s.backToPage(c)
}

func (s *Server) edit(c *gin.Context) {
	id, ok := s.taskID(c)
	if !ok {
		return
	}
	task, found := s.view.Snapshot().FindTask(id)
	if !found {
		c.String(http.StatusNotFound, "task not found: %d", id)
		return
	}
	s.view.Edit(task)
	s.backToPage(c)
}

func (s *Server) remove(c *gin.Context) {
	id, ok := s.taskID(c)
	if !ok {
		return
	}
	_ = s.view.Delete(c.Request.Context(), id)
	s.backToPage(c)
}

func (s *Server) taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid task id: %s", c.Param("id"))
		return 0, false
	}
	return id, true
}

func (s *Server) backToPage(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}
