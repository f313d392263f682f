package service

import (
	"context"

	"github.com/alimikegami/bulknest-server/pkg/errs"
	"github.com/rs/zerolog/log"
)

// Authorize allows the call only when the verified email equals the supplied
// one. An empty email on either side never matches.
func Authorize(verifiedEmail, suppliedEmail string) error {
	if verifiedEmail == "" || suppliedEmail == "" || verifiedEmail != suppliedEmail {
		return errs.ErrForbidden
	}

	return nil
}

// publish hands an event to the broker after the state change has been made.
// Failures are logged only.
func publish(ctx context.Context, publisher EventPublisher, eventType, key string, data interface{}) {
	if publisher == nil {
		return
	}

	if err := publisher.Publish(ctx, eventType, key, data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publish").Str("event_type", eventType).Msg("")
	}
}
