package delete_promocode

import "context"

type PromoCodesService interface {
	Delete(ctx context.Context, code string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
