package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/Tedbot2000/todo-genie/internal/entity"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	PageList     = "list"
	PageEdit     = "edit"
	PageLogin    = "login"
	PageRegister = "register"
)

// Notice - уведомление для пользователя (успех или ошибка)
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

const (
	LevelSuccess = "success"
	LevelError   = "error"
)

type ListPage struct {
	Username   string
	Tasks      []entity.Task
	SortBy     entity.SortBy
	Priorities []entity.TaskPriority
	Notices    []Notice
}

type EditPage struct {
	Username   string
	Task       *entity.Task
	Priorities []entity.TaskPriority
	Statuses   []entity.TaskStatus
	Notices    []Notice
}

type AuthPage struct {
	Username string
	Notices  []Notice
}

type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{PageList, PageEdit, PageLogin, PageRegister} {
		tmpl, err := template.New("layout.html").ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

// Render рендерит страницу в буфер, чтобы не отдать половину HTML при ошибке
func (r *Renderer) Render(w http.ResponseWriter, status int, page string, data any) error {
	tmpl, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
