package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"docc_render/asset_app"
	"docc_render/imageasset"
	"docc_render/model"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("level=warn event=response_encode_failed error=%q", err)
	}
}

func writeErr(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Code: code, Message: message})
}

func writeMappedErr(w http.ResponseWriter, err error) {
	var invalid *imageasset.InvalidVariantError
	switch {
	case errors.Is(err, model.ErrAssetNotFound):
		writeErr(w, http.StatusNotFound, "ASSET_NOT_FOUND", err.Error())
	case errors.Is(err, asset_app.ErrMountNotFound):
		writeErr(w, http.StatusNotFound, "MOUNT_NOT_FOUND", err.Error())
	case errors.As(err, &invalid), errors.Is(err, imageasset.ErrNoVariants):
		writeErr(w, http.StatusUnprocessableEntity, "INVALID_VARIANT", err.Error())
	case errors.Is(err, model.ErrReadOnly):
		writeErr(w, http.StatusConflict, "READ_ONLY_STORE", err.Error())
	default:
		log.Printf("level=error event=request_failed error=%q", err)
		writeErr(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
