package testutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"taskui/internal/service"
)

// Request is one request received by an APIServer.
type Request struct {
	Method    string
	Path      string
	RequestID string
	Body      service.TaskInput
}

// APIServer is an httptest server speaking the task REST API, backed by a FakeService.
type APIServer struct {
	*httptest.Server
	Svc *FakeService

	mu       sync.Mutex
	requests []Request

	// FailWith, when non-zero, makes every request answer with this status
	// and a {"detail": ...} body.
	FailWith int
}

// NewAPIServer starts an APIServer. Close it with t.Cleanup(srv.Close).
func NewAPIServer(svc *FakeService) *APIServer {
	gin.SetMode(gin.TestMode)
	s := &APIServer{Svc: svc}

	r := gin.New()
	r.Use(s.recordRequest)
	r.GET("/tasks", func(c *gin.Context) {
		tasks, _ := svc.ListTasks(c.Request.Context())
		if tasks == nil {
			tasks = []service.Task{}
		}
		c.JSON(http.StatusOK, tasks)
	})
	r.GET("/tasks/:id", s.withID(func(c *gin.Context, id int64) {
		task, err := svc.GetTask(c.Request.Context(), id)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, task)
	}))
	r.POST("/tasks", func(c *gin.Context) {
		in, ok := c.MustGet("body").(service.TaskInput)
		if !ok {
			return
		}
		task, err := svc.CreateTask(c.Request.Context(), in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, task)
	})
	r.PUT("/tasks/:id", s.withID(func(c *gin.Context, id int64) {
		in, _ := c.MustGet("body").(service.TaskInput)
		task, err := svc.UpdateTask(c.Request.Context(), id, in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, task)
	}))
	r.DELETE("/tasks/:id", s.withID(func(c *gin.Context, id int64) {
		if err := svc.DeleteTask(c.Request.Context(), id); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
	}))

	s.Server = httptest.NewServer(r)
	return s
}

// Requests returns the received requests in order.
func (s *APIServer) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *APIServer) recordRequest(c *gin.Context) {
	req := Request{
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
		RequestID: c.GetHeader("X-Request-ID"),
	}
	if c.Request.Method == http.MethodPost || c.Request.Method == http.MethodPut {
		if err := c.ShouldBindJSON(&req.Body); err != nil {
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid request body"})
			return
		}
		c.Set("body", req.Body)
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	fail := s.FailWith
	s.mu.Unlock()

	if fail != 0 {
		c.AbortWithStatusJSON(fail, gin.H{"detail": http.StatusText(fail)})
		return
	}
	c.Next()
}

func (s *APIServer) withID(h func(c *gin.Context, id int64)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "invalid id"})
			return
		}
		h(c, id)
	}
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Task not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}
