package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"event-signup/domain"
)

type successJSON struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type errorJSON struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func marshalAndSend(w http.ResponseWriter, jsonRes interface{}, statusCode int) error {
	switch jsonRes.(type) {
	case successJSON, errorJSON:
		payload, err := json.Marshal(jsonRes)
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)

		// write the json out
		_, err = w.Write(payload)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported type: %T", jsonRes)
	}
	return nil
}

func (app *application) SendSuccessJSON(w http.ResponseWriter, statusCode int, data interface{}, wrap ...string) error {
	jsonRes := successJSON{
		Status: "success",
	}

	if len(wrap) > 0 {
		jsonRes.Data = map[string]interface{}{wrap[0]: data}
	} else {
		jsonRes.Data = data
	}

	return marshalAndSend(w, jsonRes, statusCode)
}

// SendNoticeJSON is SendSuccessJSON plus a user-visible notice, the JSON
// counterpart of the flash messages this API replaces.
func (app *application) SendNoticeJSON(w http.ResponseWriter, statusCode int, message string, data interface{}) error {
	jsonRes := successJSON{
		Status:  "success",
		Message: message,
		Data:    data,
	}

	return marshalAndSend(w, jsonRes, statusCode)
}

func (app *application) SendErrorJSON(w http.ResponseWriter, statusCode int, err error) error {
	jsonRes := errorJSON{}
	if statusCode >= 500 {
		jsonRes.Status = "error"
	} else {
		jsonRes.Status = "fail"
	}

	jsonRes.Message = err.Error()

	return marshalAndSend(w, jsonRes, statusCode)
}

// sendDomainError maps a domain error onto an HTTP status and sends it.
// Anything outside the domain taxonomy is logged and masked as a 500.
func (app *application) sendDomainError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status >= 500 {
		app.log.Error().Err(err).Msg("internal error")
		_ = app.SendErrorJSON(w, status, errors.New("internal error"))
		return
	}
	_ = app.SendErrorJSON(w, status, err)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrAuthFailure):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateUsername),
		errors.Is(err, domain.ErrAlreadySignedUp),
		errors.Is(err, domain.ErrNotSignedUp):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
