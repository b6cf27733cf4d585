package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{InvalidInput("bad"), http.StatusBadRequest},
		{Unauthenticated("who"), http.StatusUnauthorized},
		{Forbidden("no"), http.StatusForbidden},
		{NotFound("gone"), http.StatusNotFound},
		{Conflict("dup"), http.StatusConflict},
		{Internal("boom", errors.New("db down")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KindOf(tt.err).Status(), tt.err.Error())
	}
}

func TestMessageHidesInternalCause(t *testing.T) {
	err := Internal("failed to load video", errors.New("connection refused"))
	assert.Equal(t, "failed to load video", Message(err))
	assert.Contains(t, err.Error(), "connection refused")

	assert.Equal(t, "internal server error", Message(errors.New("raw driver error")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", Forbidden("You are not the owner of this video"))
	assert.True(t, Is(err, KindForbidden))
	assert.False(t, Is(err, KindNotFound))
	assert.Equal(t, "You are not the owner of this video", Message(err))
}
