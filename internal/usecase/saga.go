package usecase

import (
	stderrors "errors"
	"fmt"

	"pawmarket/pkg/errors"
	"pawmarket/pkg/logger"
)

// stepError logs a failed step of a multi-write sequence and returns an error
// whose message names the step, keeping the original classification.
func stepError(saga, step, entityID string, err error) error {
	logger.LogStepError(saga, step, entityID, err)

	msg := fmt.Sprintf("%s failed at step %s", saga, step)
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return errors.New(appErr.Code, msg+": "+appErr.Message, appErr.Status, err)
	}
	return errors.Internal(msg, err)
}
