package dto_test

import (
	"net/url"
	"testing"

	"tick/internal/domains/auth/model/dto"
	"tick/shared/constant"

	"github.com/stretchr/testify/assert"
)

func TestSignUpRequest_FromForm(t *testing.T) {
	req := dto.SignUpRequest{}
	req.FromForm(url.Values{
		constant.FormFieldUsername: {"  alice  "},
		constant.FormFieldPassword: {"  pw1  "},
	})

	assert.Equal(t, "alice", req.Username, "expected the username to be trimmed")
	assert.Equal(t, "  pw1  ", req.Password, "expected the password to be kept verbatim")
}

func TestSignUpRequest_ToUserModel(t *testing.T) {
	req := dto.SignUpRequest{Username: "alice", Password: "pw1"}

	user := req.ToUserModel("$2a$10$fakedigest")

	assert.Zero(t, user.ID, "expected the id to be assigned by the database")
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "$2a$10$fakedigest", user.PasswordHash)
	assert.False(t, user.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestLoginRequest_FromForm(t *testing.T) {
	req := dto.LoginRequest{}
	req.FromForm(url.Values{
		constant.FormFieldUsername: {"bob"},
		constant.FormFieldPassword: {"pw2"},
	})

	assert.Equal(t, "bob", req.Username)
	assert.Equal(t, "pw2", req.Password)
}
