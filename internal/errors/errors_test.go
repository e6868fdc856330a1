package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_KeepsCode(t *testing.T) {
	base := InvalidInput("file is required")
	wrapped := Wrap(base, "upload rejected")

	assert.Equal(t, CodeInvalidInput, GetCode(wrapped))
	assert.Equal(t, "upload rejected: file is required", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrap_PlainErrorIsInternal(t *testing.T) {
	wrapped := Wrapf(stderrors.New("disk full"), "writing %s", "export.csv")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "writing export.csv: disk full", wrapped.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestGetCode_ThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("request failed: %w", ConfigInvalid("PORT must be numeric"))

	assert.Equal(t, CodeConfigInvalid, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodeInvalidInput))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(CodePayloadTooLarge))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(CodeInternalError))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus("UNKNOWN"))
}
