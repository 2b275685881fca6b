package dto

import (
	"net/url"
	"strings"
	userModel "tick/internal/domains/user/model"
	"tick/shared/constant"
	"time"
)

type SignUpRequest struct {
	Username string `validate:"required,max=80"`
	Password string `validate:"required"`
}

func (r *SignUpRequest) FromForm(values url.Values) {
	r.Username = strings.TrimSpace(values.Get(constant.FormFieldUsername))
	r.Password = values.Get(constant.FormFieldPassword)
}

func (r *SignUpRequest) ToUserModel(passwordHash string) userModel.User {
	return userModel.User{
		Username:     r.Username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
}

type LoginRequest struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

func (r *LoginRequest) FromForm(values url.Values) {
	r.Username = strings.TrimSpace(values.Get(constant.FormFieldUsername))
	r.Password = values.Get(constant.FormFieldPassword)
}
