package http

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tair/stockledger/internal/inventory/usecase/command"
)

// maxUploadSize bounds multipart uploads held in memory
const maxUploadSize = 32 << 20

// formFile opens the "file" part of a multipart upload, answering 400 itself on failure
func formFile(w http.ResponseWriter, r *http.Request) (command.UploadItemsCommand, func(), bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		msg := "Invalid multipart upload"
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg = "Upload too large"
		}
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: msg})
		return command.UploadItemsCommand{}, nil, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{Success: false, Error: "file is required"})
		return command.UploadItemsCommand{}, nil, false
	}
	return command.UploadItemsCommand{Filename: header.Filename, File: file}, func() { file.Close() }, true
}

// UploadItems handles POST /api/imports
func (h *InventoryHandler) UploadItems(w http.ResponseWriter, r *http.Request) {
	cmd, closeFile, ok := formFile(w, r)
	if !ok {
		return
	}
	defer closeFile()

	state, err := h.commands.UploadItems.Handle(r.Context(), cmd)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Workbook uploaded",
		Data:    state,
	})
}

// SetMapping handles PUT /api/imports/{id}/mapping
func (h *InventoryHandler) SetMapping(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mapping map[string]string `json:"mapping"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	state, err := h.commands.SetMapping.Handle(r.Context(), command.SetMappingCommand{
		SessionID: mux.Vars(r)["id"],
		Mapping:   req.Mapping,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	if len(state.Missing) > 0 {
		respondJSON(w, http.StatusUnprocessableEntity, Response{
			Success: false,
			Error:   "Required fields are not mapped",
			Data:    state,
		})
		return
	}
	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Mapping updated",
		Data:    state,
	})
}

// PreviewItems handles POST /api/imports/{id}/preview
func (h *InventoryHandler) PreviewItems(w http.ResponseWriter, r *http.Request) {
	preview, err := h.commands.PreviewItems.Handle(r.Context(), command.PreviewItemsCommand{SessionID: mux.Vars(r)["id"]})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    preview,
	})
}

// CommitItems handles POST /api/imports/{id}/commit
func (h *InventoryHandler) CommitItems(w http.ResponseWriter, r *http.Request) {
	count, err := h.commands.CommitItems.Handle(r.Context(), command.CommitItemsCommand{SessionID: mux.Vars(r)["id"]})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Items imported",
		Data:    map[string]int{"count": count},
	})
}

// UploadHistory handles POST /api/history-imports
func (h *InventoryHandler) UploadHistory(w http.ResponseWriter, r *http.Request) {
	upload, closeFile, ok := formFile(w, r)
	if !ok {
		return
	}
	defer closeFile()

	state, err := h.commands.UploadHistory.Handle(r.Context(), command.UploadHistoryCommand{
		Month:    r.FormValue("month"),
		Filename: upload.Filename,
		File:     upload.File,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "History uploaded",
		Data:    state,
	})
}

// CommitHistory handles POST /api/history-imports/{id}/commit
func (h *InventoryHandler) CommitHistory(w http.ResponseWriter, r *http.Request) {
	count, err := h.commands.CommitHistory.Handle(r.Context(), command.CommitHistoryCommand{SessionID: mux.Vars(r)["id"]})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "History imported",
		Data:    map[string]int{"count": count},
	})
}
