package v1

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/adanyl0v/go-task-store/internal/models"
)

//go:embed templates/index.html
var templatesFS embed.FS

const indexTemplateName = "index.html"

func mustParseIndexTemplate() *template.Template {
	return template.Must(template.New(indexTemplateName).
		Funcs(template.FuncMap{
			"datetime": func(t time.Time) string {
				return t.Format(time.DateTime)
			},
		}).
		ParseFS(templatesFS, "templates/"+indexTemplateName))
}

type indexPage struct {
	Tasks []*models.Task
}

func (h *handlerImpl) HandleIndex(c *gin.Context) {
	tasks, err := h.tasks.ListTasks(c.Request.Context())
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to list tasks for index page")
		abort(c, newStatusTextError(http.StatusInternalServerError))
		return
	}

	c.Render(http.StatusOK, render.HTML{
		Template: h.indexTmpl,
		Name:     indexTemplateName,
		Data:     indexPage{Tasks: tasks},
	})
}

func (h *handlerImpl) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handlerImpl) HandleReady(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.readyTimeout)
	defer cancel()

	err := h.tasks.Ping(ctx)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("store is not ready")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "store_not_ready"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
