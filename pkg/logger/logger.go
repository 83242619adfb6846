package logger

import "go.uber.org/zap"

// New returns a development logger for APP_ENV=development and a production logger otherwise.
func New(appEnv string) (*zap.Logger, error) {
	if appEnv == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
