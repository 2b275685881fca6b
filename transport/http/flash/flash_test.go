package flash_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tick/shared/constant"
	"tick/transport/http/flash"

	"github.com/stretchr/testify/assert"
)

func TestSetThenPop(t *testing.T) {
	setRec := httptest.NewRecorder()
	flash.Set(setRec, "Username already exists")

	cookies := setRec.Result().Cookies()
	assert.Len(t, cookies, 1)
	assert.Equal(t, constant.FlashCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// Next request carries the cookie back; Pop must return the message and
	// expire the cookie so it shows only once.
	popReq := httptest.NewRequest(http.MethodGet, constant.PathHome, nil)
	popReq.AddCookie(cookies[0])
	popRec := httptest.NewRecorder()

	assert.Equal(t, "Username already exists", flash.Pop(popRec, popReq))

	cleared := popRec.Result().Cookies()
	assert.Len(t, cleared, 1)
	assert.Equal(t, constant.FlashCookieName, cleared[0].Name)
	assert.Negative(t, cleared[0].MaxAge, "expected Pop to expire the flash cookie")
}

func TestPop_NoCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, constant.PathHome, nil)
	rec := httptest.NewRecorder()

	assert.Empty(t, flash.Pop(rec, req))
	assert.Empty(t, rec.Result().Cookies(), "expected no clearing cookie without a flash to pop")
}

func TestPop_GarbageValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, constant.PathHome, nil)
	req.AddCookie(&http.Cookie{Name: constant.FlashCookieName, Value: "%%%not-base64%%%"})
	rec := httptest.NewRecorder()

	assert.Empty(t, flash.Pop(rec, req))
}
