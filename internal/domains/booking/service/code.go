package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	codeCharset      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codePrefixLength = 4
	codeRandomLength = 6
)

// codePrefix derives the human-readable restaurant prefix: the first four
// alphanumeric characters of the restaurant id, uppercased and padded with X.
func codePrefix(restaurantID string) string {
	var sb strings.Builder

	for _, r := range strings.ToUpper(restaurantID) {
		if sb.Len() == codePrefixLength {
			break
		}

		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}

	for sb.Len() < codePrefixLength {
		sb.WriteByte('X')
	}

	return sb.String()
}

func randomCode() (string, error) {
	buf := make([]byte, codeRandomLength)

	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = codeCharset[int(b)%len(codeCharset)]
	}

	return string(buf), nil
}

// fallbackCode is the deterministic last resort when random generation keeps
// colliding: millisecond timestamps in base36 are unique enough per restaurant.
func fallbackCode(prefix string, unixMillis int64) string {
	return prefix + strings.ToUpper(strconv.FormatInt(unixMillis, 36))
}

// generateConfirmationCode never fails: after the configured number of
// collision retries it falls back to the timestamp-derived code.
func (s *serviceImpl) generateConfirmationCode(ctx context.Context, restaurantID string, unixMillis int64) string {
	prefix := codePrefix(restaurantID)

	for attempt := 0; attempt < s.cfg.Booking.CodeMaxAttempts; attempt++ {
		random, err := randomCode()
		if err != nil {
			log.Error().Err(err).Msg("failed to generate random confirmation code")

			break
		}

		code := prefix + random

		exists, err := s.repo.CodeExists(ctx, restaurantID, code)
		if err != nil {
			log.Error().Err(err).Msg("failed to check confirmation code uniqueness")

			break
		}

		if !exists {
			return code
		}
	}

	return fallbackCode(prefix, unixMillis)
}
