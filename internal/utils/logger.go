package utils

import "go.uber.org/zap"

// NewLogger builds the application logger: human-readable output in
// development, JSON in production. Session tokens must never be logged.
func NewLogger(dev bool) (*zap.SugaredLogger, error) {
	var (
		z   *zap.Logger
		err error
	)
	if dev {
		z, err = zap.NewDevelopment()
	} else {
		z, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return z.Sugar(), nil
}
