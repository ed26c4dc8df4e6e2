package update_policy_config

import (
	"context"

	"github.com/m04kA/SMC-StudioBookingService/internal/service/policyconfig/models"
)

type PolicyConfigService interface {
	Update(ctx context.Context, studioID int64, req *models.UpdatePolicyRequest) (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
