package activities

import (
	"errors"

	"go.temporal.io/sdk/temporal"

	"github.com/munderdifflin/orderflow/gateway"
	"github.com/munderdifflin/orderflow/types"
)

// toActivityError translates gateway error kinds into typed application
// errors. The agents surface errors unchanged; retry decisions belong to the
// orchestrator and its retry policy.
func toActivityError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gateway.ErrInvalidArgument):
		return temporal.NewNonRetryableApplicationError(err.Error(), types.ErrTypeInvalidArgument, err)
	case errors.Is(err, gateway.ErrConflict):
		return temporal.NewNonRetryableApplicationError(err.Error(), types.ErrTypeConflict, err)
	case errors.Is(err, gateway.ErrStockChanged):
		return temporal.NewApplicationError(err.Error(), types.ErrTypeStockChanged)
	default:
		return temporal.NewApplicationError(err.Error(), types.ErrTypeUnavailable)
	}
}
