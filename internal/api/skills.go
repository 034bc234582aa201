package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/skillbridge/skillbridge/internal/extract"
	"github.com/skillbridge/skillbridge/internal/storage"
)

type cvExtractResponse struct {
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experienceLevel"`
	Characters      int      `json:"characters"`
}

// handleUploadCV accepts a CV as multipart form file ("cv"), extracts its
// text (PDF, HTML, or plain text by extension), detects skills and an
// experience level, and stores all three on the profile.
func handleUploadCV(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid multipart form: %v", err)
			return
		}

		file, header, err := r.FormFile("cv")
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "cv file is required")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "failed to read upload: %v", err)
			return
		}

		var text string
		switch strings.ToLower(filepath.Ext(header.Filename)) {
		case ".pdf":
			text, err = extract.PDFText(bytes.NewReader(data))
			if err != nil {
				httpError(w, http.StatusBadRequest, "invalid_request_error", "failed to parse PDF: %v", err)
				return
			}
		case ".html", ".htm":
			text = extract.HTMLText(string(data))
		default:
			text = string(data)
		}

		skills := extract.Skills(text)
		level := extract.ExperienceLevel(text)

		upd := storage.ProfileUpdate{
			Skills:          &skills,
			ExperienceLevel: &level,
			CVText:          &text,
		}
		if _, err := deps.Store.UpdateUserProfile(userID(r), upd); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				httpError(w, http.StatusNotFound, "not_found", "user not found")
				return
			}
			httpError(w, http.StatusInternalServerError, "api_error", "failed to save extracted profile: %v", err)
			return
		}

		writeJSON(w, http.StatusOK, cvExtractResponse{
			Skills:          skills,
			ExperienceLevel: string(level),
			Characters:      len(text),
		})
	}
}

type skillsRequest struct {
	Skills []string `json:"skills" validate:"required"`
}

func handleUpdateSkills(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		var req skillsRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: %v", err)
			return
		}
		if err := validate.Struct(req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid_request_error", "validation failed: %v", err)
			return
		}

		user, err := deps.Store.UpdateUserProfile(userID(r), storage.ProfileUpdate{Skills: &req.Skills})
		if errors.Is(err, storage.ErrNotFound) {
			httpError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}
		if err != nil {
			httpError(w, http.StatusInternalServerError, "api_error", "failed to update skills: %v", err)
			return
		}
		writeJSON(w, http.StatusOK, viewOf(user))
	}
}
