// Package views отрисовывает HTML-страницы портала.
package views

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"campusportal/internal/portal/domain/entities"
)

// Имена страниц.
const (
	PageHome      = "home"
	PageLogin     = "login"
	PageRegister  = "register"
	PageUsers     = "users"
	PageDashboard = "dashboard"
	PageEdit      = "edit"
	PageError     = "error"
)

// ErrUnknownPage возвращается для страницы без шаблона.
var ErrUnknownPage = errors.New("unknown page")

// Page - данные для отрисовки. Хэши паролей сюда не попадают:
// в шаблоны передаются только Identity и UserView.
type Page struct {
	Title    string
	Identity *entities.Identity
	Feedback []entities.FeedbackMessage
	Users    []UserView
	User     *UserView
	Status   int
	Message  string
}

// UserView - представление учетной записи для шаблонов.
type UserView struct {
	ID        int64
	Name      string
	Email     string
	Role      string
	CreatedAt string
	CanEdit   bool
	CanDelete bool
}

// NewUserView строит представление без хэша пароля.
func NewUserView(u *entities.User) UserView {
	return UserView{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt.Format("2006-01-02"),
	}
}

// Renderer хранит разобранные шаблоны страниц.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer разбирает шаблоны всех страниц.
func NewRenderer() (*Renderer, error) {
	base, err := template.New("layout").Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageTemplates))
	for name, body := range pageTemplates {
		t, err := template.Must(base.Clone()).Parse(body)
		if err != nil {
			return nil, fmt.Errorf("parse page %s: %w", name, err)
		}
		pages[name] = t
	}

	return &Renderer{pages: pages}, nil
}

// Render отрисовывает страницу name в байты.
func (r *Renderer) Render(name string, page *Page) ([]byte, error) {
	t, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPage, name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page); err != nil {
		return nil, fmt.Errorf("render page %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
