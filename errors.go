/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"errors"
	"net/http"
)

// Everything in here is recovered locally; nothing in the game loop is
// allowed to take the session down. The only fatal condition is player ID
// exhaustion, which the Registry handles itself.
var (
	errUnknownPlayer = errors.New("unknown player id")
	errNotPlaying    = errors.New("player is no longer playing")
)

type errorResponse struct {
	Error string `json:"error"`
}

func apiError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// rejectionStatus maps game errors onto HTTP statuses. A stale or unknown
// ID gets a clear rejection rather than silently succeeding.
func rejectionStatus(err error) int {
	switch {
	case errors.Is(err, errUnknownPlayer):
		return http.StatusBadRequest
	case errors.Is(err, errNotPlaying):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
