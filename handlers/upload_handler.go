package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"seventyFiveHardAPI/internal/types/photo"
	"seventyFiveHardAPI/middleware"
	"seventyFiveHardAPI/services"
)

// Multipart photo uploads are capped at 10 MB, matching the body limit the
// rest of the API uses.
const maxPhotoBytes = 10 << 20

type UploadHandler struct {
	photoService *services.PhotoService
}

func NewUploadHandler(photoService *services.PhotoService) *UploadHandler {
	return &UploadHandler{
		photoService: photoService,
	}
}

func (h *UploadHandler) UploadProgressPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to read image file")
		return
	}

	dayNumber, err := strconv.Atoi(r.FormValue("dayNumber"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "dayNumber is required")
		return
	}

	var notes *string
	if n := r.FormValue("notes"); n != "" {
		notes = &n
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	result, err := h.photoService.Upload(ctx, clerkID, dayNumber, notes, contentType, data)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	message := "Progress photo updated successfully"
	status := http.StatusOK
	if result.Created {
		message = "Progress photo uploaded successfully"
		status = http.StatusCreated
	}

	respondWithJSON(w, status, photo.UploadResponse{
		Success: true,
		Message: message,
		Photo:   result.Photo,
	})
}

func (h *UploadHandler) GetProgressPhotos(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	photos, err := h.photoService.List(ctx, clerkID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, photo.ListResponse{Success: true, Photos: photos})
}

func (h *UploadHandler) DeleteProgressPhoto(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	photoID, err := uuid.Parse(mux.Vars(r)["photoId"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid photo id")
		return
	}

	if err := h.photoService.Delete(ctx, clerkID, photoID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Progress photo deleted successfully",
	})
}
