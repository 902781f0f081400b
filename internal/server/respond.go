package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"gochat/internal/common"
)

type apiResponse struct {
	Success    bool             `json:"success"`
	StatusCode int              `json:"statuscode"`
	Message    string           `json:"message"`
	Data       any              `json:"data,omitempty"`
	Code       common.ErrorCode `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func respondOK(w http.ResponseWriter, message string, data any) {
	respondJSON(w, http.StatusOK, apiResponse{Success: true, StatusCode: 1, Message: message, Data: data})
}

func respondErr(w http.ResponseWriter, err error) {
	code := common.CodeOf(err)
	status := httpStatus(code)
	if status >= http.StatusInternalServerError {
		log.Error().Err(err).Msg("request failed")
	}
	respondJSON(w, status, apiResponse{Message: common.PublicMessage(err), Code: code})
}

func httpStatus(code common.ErrorCode) int {
	switch code {
	case common.CodeNotFound:
		return http.StatusNotFound
	case common.CodePermissionDenied:
		return http.StatusForbidden
	case common.CodeAuthFailed, common.CodeTokenReused:
		return http.StatusUnauthorized
	case common.CodeInvalidArgument:
		return http.StatusBadRequest
	case common.CodeRateLimited:
		return http.StatusTooManyRequests
	case common.CodeAlreadySatisfied:
		return http.StatusConflict
	case common.CodeProviderFailure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
