package dto

import (
	"net/url"
	"strings"
	"tick/internal/domains/todo/model"
	"tick/shared/constant"
	"time"
)

type CreateTodoRequest struct {
	Title       string `validate:"omitempty,max=255"`
	Description string `validate:"omitempty,max=255"`
}

func (c *CreateTodoRequest) FromForm(values url.Values) {
	c.Title = strings.TrimSpace(values.Get(constant.FormFieldTitle))
	c.Description = values.Get(constant.FormFieldDescription)
}

func (c *CreateTodoRequest) ToModel(ownerID int64) model.Todo {
	return model.Todo{
		Title:       c.Title,
		Description: c.Description,
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
		UserID:      ownerID,
	}
}

type TodoResponse struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	CreatedAt   time.Time
}

func (r *TodoResponse) FromModel(model model.Todo) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Completed = model.Completed
	r.CreatedAt = model.CreatedAt
}

type TodoListResponse struct {
	Todos []TodoResponse
}

func (r *TodoListResponse) FromModels(models []model.Todo) {
	r.Todos = make([]TodoResponse, len(models))
	for i, mod := range models {
		r.Todos[i].FromModel(mod)
	}
}
