package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"seventyFiveHardAPI/internal/types/day"
	"seventyFiveHardAPI/middleware"
	"seventyFiveHardAPI/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

func (h *TaskHandler) GetCurrentDay(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	current, err := h.taskService.GetCurrentDay(ctx, clerkID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if !current.Active {
		respondWithJSON(w, http.StatusOK, day.CurrentDayResponse{
			Success:         true,
			Message:         "No active challenge",
			CurrentDay:      nil,
			User:            current.User,
			ChallengeStatus: current.User.ChallengeStatus,
		})
		return
	}

	respondWithJSON(w, http.StatusOK, day.CurrentDayResponse{
		Success:             true,
		CurrentDay:          current.Record,
		User:                current.User,
		ChallengeStatus:     current.User.ChallengeStatus,
		CanAccessCurrentDay: current.CanAccess,
	})
}

func (h *TaskHandler) UpdateTasks(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req day.UpdateTasksRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTasks(ctx, clerkID, req.DayNumber, req.Tasks)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, day.UpdateTasksResponse{
		Success:      true,
		Message:      "Tasks updated successfully",
		ChallengeDay: updated,
	})
}

func (h *TaskHandler) CompleteDay(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req day.CompleteDayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.taskService.CompleteDay(ctx, clerkID, req.DayNumber)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	message := fmt.Sprintf("Day %d completed! Moving to day %d", req.DayNumber, req.DayNumber+1)
	if result.ChallengeCompleted {
		message = "Challenge completed!"
	}

	respondWithJSON(w, http.StatusOK, day.CompleteDayResponse{
		Success:            true,
		Message:            message,
		ChallengeDay:       result.Record,
		ChallengeCompleted: result.ChallengeCompleted,
	})
}

func (h *TaskHandler) GetDayHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	clerkID, ok := middleware.GetClerkID(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	history, err := h.taskService.GetDayHistory(ctx, clerkID, page, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, day.HistoryResponse{
		Success:       true,
		ChallengeDays: history.Records,
		TotalPages:    history.TotalPages,
		CurrentPage:   history.CurrentPage,
		Total:         history.Total,
	})
}
