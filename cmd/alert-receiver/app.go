package main

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

const (
	contentTypeText = "text/plain; charset=utf-8"
	contentTypeJSON = "application/json; charset=utf-8"

	allowedMethods = "GET, POST"
)

var ackBody = []byte("{\"ok\":true}\n")

// NewRouter wires the receiver's routes. Paths match by prefix, so
// /healthz/live and /alerts/alertmanager reach the same handlers as
// /healthz and /alerts. There is no access log; the alert summaries are the
// only per-request output.
func NewRouter(logger *logrus.Logger, maxBodyBytes int64) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", Healthcheck)
	r.Get("/healthz*", Healthcheck)

	alerts := alertsHandler(logger, maxBodyBytes)
	r.Post("/alerts", alerts)
	r.Post("/alerts*", alerts)

	r.NotFound(fallbackHandler)
	r.MethodNotAllowed(fallbackHandler)

	return r
}

// fallbackHandler answers every request no route accepted: 404 for GET and
// POST, 405 for any other method regardless of path.
func fallbackHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet || r.Method == http.MethodPost {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Allow", allowedMethods)
	http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
}

func alertsHandler(logger *logrus.Logger, maxBodyBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := readBody(logger, r, maxBodyBytes)

		payload, err := decodePayload(body)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"bytes":  len(body),
				"client": getClientIP(r),
			}).Debugf("alert-receiver: using fallback record: %v", err)
		}

		for _, line := range summaryLines(payload) {
			logger.Info(line)
		}

		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusOK)
		w.Write(ackBody)
	}
}

// readBody reads the declared number of body bytes, clamped to maxBodyBytes.
// An unknown length reads nothing. Whatever arrived before a read error is
// returned as the body.
func readBody(logger *logrus.Logger, r *http.Request, maxBodyBytes int64) []byte {
	length := r.ContentLength
	if length <= 0 {
		return nil
	}
	if length > maxBodyBytes {
		logger.Warnf("alert-receiver: payload of %d bytes truncated to %d", length, maxBodyBytes)
		length = maxBodyBytes
	}

	buf := make([]byte, length)
	n, err := io.ReadFull(r.Body, buf)
	if err != nil {
		logger.WithField("client", getClientIP(r)).
			Debugf("alert-receiver: short payload read (%d of %d bytes): %v", n, length, err)
	}
	return buf[:n]
}
