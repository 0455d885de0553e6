package logging

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// LoggingWrapper wraps a plain handler with per-request timing and field
// accumulation. The LogData is placed on the request context so code
// further down the call chain can attach fields to the same entry.
func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		req = req.WithContext(WithLogData(req.Context(), logData))

		endTimer := logData.AddTiming("duration")
		defer endTimer()
		err := handler(w, req, logData)
		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}

// Middleware is LoggingWrapper for ordinary http.Handler chains (the huma
// router); it only provides the context LogData and the completion line.
func Middleware(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logData := NewLogData(log)
			req = req.WithContext(WithLogData(req.Context(), logData))

			endTimer := logData.AddTiming("duration")
			next.ServeHTTP(w, req)
			endTimer()

			logData.AddData("path", req.URL.Path)
			logData.AddData("method", req.Method)
			logData.Log().Info("Handler.Complete")
		})
	}
}
