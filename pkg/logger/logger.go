// Package logger provides a zap-based application logger.
package logger

import "go.uber.org/zap"

// New configures a production logger tagged with the service name.
func New(service string) *zap.Logger {
	l, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	return l.With(zap.String("service", service))
}
