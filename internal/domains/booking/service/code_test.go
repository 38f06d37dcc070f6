package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tably/config"
	"tably/internal/domains/booking/mocks"
)

func TestCodePrefix(t *testing.T) {
	tests := []struct {
		name         string
		restaurantID string
		want         string
	}{
		{name: "plain id", restaurantID: "bistro", want: "BIST"},
		{name: "uuid keeps alphanumerics only", restaurantID: "a1b2-c3d4", want: "A1B2"},
		{name: "short id padded with X", restaurantID: "ab", want: "ABXX"},
		{name: "empty id is all padding", restaurantID: "", want: "XXXX"},
		{name: "symbols stripped before padding", restaurantID: "-_-x", want: "XXXX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codePrefix(tt.restaurantID))
		})
	}
}

func TestFallbackCode(t *testing.T) {
	code := fallbackCode("BIST", 1757500000000)

	assert.True(t, strings.HasPrefix(code, "BIST"))
	assert.Equal(t, code, strings.ToUpper(code))

	// Deterministic for a given instant.
	assert.Equal(t, code, fallbackCode("BIST", 1757500000000))
	assert.NotEqual(t, code, fallbackCode("BIST", 1757500000001))
}

func TestGenerateConfirmationCode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockRepository(ctrl)

	cfg := &config.Config{}
	cfg.Booking.CodeMaxAttempts = 3

	svc := &serviceImpl{repo: mockRepo, cfg: cfg}

	t.Run("first free code is returned", func(t *testing.T) {
		mockRepo.EXPECT().
			CodeExists(gomock.Any(), "rest-1", gomock.Any()).
			Return(false, nil)

		code := svc.generateConfirmationCode(context.Background(), "rest-1", 1757500000000)

		assert.True(t, strings.HasPrefix(code, "REST"))
		assert.Len(t, code, codePrefixLength+codeRandomLength)
	})

	t.Run("persistent collisions fall back to timestamp code", func(t *testing.T) {
		mockRepo.EXPECT().
			CodeExists(gomock.Any(), "rest-1", gomock.Any()).
			Return(true, nil).
			Times(3)

		code := svc.generateConfirmationCode(context.Background(), "rest-1", 1757500000000)

		assert.Equal(t, fallbackCode("REST", 1757500000000), code)
	})

	t.Run("lookup error falls back instead of failing", func(t *testing.T) {
		mockRepo.EXPECT().
			CodeExists(gomock.Any(), "rest-1", gomock.Any()).
			Return(false, errors.New("connection refused"))

		code := svc.generateConfirmationCode(context.Background(), "rest-1", 1757500000000)

		assert.Equal(t, fallbackCode("REST", 1757500000000), code)
	})
}
