package handlers

import (
	"context"
	"net/http"
	"time"

	"seventyFiveHardAPI/internal/types/challenge"
	"seventyFiveHardAPI/middleware"
	"seventyFiveHardAPI/services"
)

type ChallengeHandler struct {
	challengeService *services.ChallengeService
}

func NewChallengeHandler(challengeService *services.ChallengeService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
	}
}

func (h *ChallengeHandler) StartChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	result, err := h.challengeService.Start(ctx, clerkID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, challenge.StartResponse{
		Success:    true,
		Message:    "Challenge started successfully!",
		User:       result.User,
		CurrentDay: result.CurrentDay,
	})
}

func (h *ChallengeHandler) ResetChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	result, err := h.challengeService.Reset(ctx, clerkID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, challenge.StartResponse{
		Success:    true,
		Message:    "Challenge reset to Day 1",
		User:       result.User,
		CurrentDay: result.CurrentDay,
	})
}

func (h *ChallengeHandler) CompleteChallenge(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	u, err := h.challengeService.Complete(ctx, clerkID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, challenge.CompleteResponse{
		Success: true,
		Message: "Congratulations! You completed the 75 Hard Challenge!",
		User:    u,
	})
}

func (h *ChallengeHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	progress, err := h.challengeService.Progress(ctx, clerkID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, challenge.ProgressResponse{
		Success:  true,
		Progress: progress,
	})
}

func (h *ChallengeHandler) ShareProgress(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	shareURL, qrBase64, err := h.challengeService.ShareCode(ctx, clerkID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, challenge.ShareResponse{
		Success:      true,
		ShareURL:     shareURL,
		QrCodeBase64: qrBase64,
	})
}
