package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/res5515/jcommune/internal/api/response"
	"github.com/res5515/jcommune/internal/model"
	"github.com/res5515/jcommune/internal/pagination"
	"github.com/res5515/jcommune/internal/services/branch"
)

// BranchHandler handles forum browsing endpoints
type BranchHandler struct {
	branchService *branch.Service
}

// NewBranchHandler creates a new branch handler
func NewBranchHandler(branchService *branch.Service) *BranchHandler {
	return &BranchHandler{
		branchService: branchService,
	}
}

// ListSections handles GET /api/v1/sections
func (h *BranchHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.branchService.ListSections(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.SectionsFromModel(sections))
}

// ListBranches handles GET /api/v1/branches
func (h *BranchHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	branches, err := h.branchService.ListBranches(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.BranchesFromModel(branches))
}

// BranchesBySection handles GET /api/v1/sections/{section_id}/branches
func (h *BranchHandler) BranchesBySection(w http.ResponseWriter, r *http.Request) {
	sectionID := model.SectionID(mux.Vars(r)["section_id"])

	branches, err := h.branchService.BranchesBySection(r.Context(), sectionID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.BranchesFromModel(branches))
}

// GetBranch handles GET /api/v1/branches/{branch_id}
func (h *BranchHandler) GetBranch(w http.ResponseWriter, r *http.Request) {
	branchID := model.BranchID(mux.Vars(r)["branch_id"])

	b, err := h.branchService.GetBranch(r.Context(), branchID)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.BranchFromModel(b))
}

// ListTopics handles GET /api/v1/branches/{branch_id}/topics?page=N
func (h *BranchHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	branchID := model.BranchID(mux.Vars(r)["branch_id"])

	page := 1
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			WriteError(w, NewInvalidRequestError("page must be a number"))
			return
		}
		page = n
	}

	topics, pageInfo, err := h.branchService.TopicPage(r.Context(), branchID, page, pagination.DefaultPageSize)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.TopicPageFromModel(topics, pageInfo))
}
