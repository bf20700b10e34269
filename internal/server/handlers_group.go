package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/talhafarman98/SplitEase/internal/middleware"
	"github.com/talhafarman98/SplitEase/internal/models"
	"github.com/talhafarman98/SplitEase/internal/service"
)

type createGroupRequest struct {
	Name        string   `json:"name"`
	MemberNames []string `json:"member_names"`
}

type addMemberRequest struct {
	Name string `json:"name"`
}

type addExpenseRequest struct {
	Title             string   `json:"title"`
	Amount            float64  `json:"amount"`
	PayerID           string   `json:"payer_id"`
	InvolvedMemberIDs []string `json:"involved_member_ids"`
}

type memberResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type expenseResponse struct {
	ID                string   `json:"id"`
	Title             string   `json:"title"`
	Amount            float64  `json:"amount"`
	PayerID           string   `json:"payer_id"`
	InvolvedMemberIDs []string `json:"involved_member_ids"`
	CreatedAt         int64    `json:"created_at"`
}

type groupResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	CreatedAt int64             `json:"created_at"`
	Members   []memberResponse  `json:"members"`
	Expenses  []expenseResponse `json:"expenses,omitempty"`
}

// balanceEntry is one member's net position, in group member order.
// Positive = the group owes this member, negative = they owe the group.
type balanceEntry struct {
	MemberID string  `json:"member_id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
}

type balancesResponse struct {
	Balances []balanceEntry `json:"balances"`
}

// transferResponse is one settlement instruction: From pays To the Amount.
// Member names are resolved here so clients can render the plan directly.
type transferResponse struct {
	FromMemberID string  `json:"from_member_id"`
	FromName     string  `json:"from_name"`
	ToMemberID   string  `json:"to_member_id"`
	ToName       string  `json:"to_name"`
	Amount       float64 `json:"amount"`
}

type settlementResponse struct {
	Transfers  []transferResponse `json:"transfers"`
	AllSettled bool               `json:"all_settled"`
}

func toGroupResponse(g *models.Group, withExpenses bool) groupResponse {
	resp := groupResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt,
		Members:   make([]memberResponse, len(g.Members)),
	}
	for i, m := range g.Members {
		resp.Members[i] = memberResponse{ID: m.ID, Name: m.Name}
	}
	if withExpenses {
		resp.Expenses = make([]expenseResponse, len(g.Expenses))
		for i, e := range g.Expenses {
			resp.Expenses[i] = expenseResponse{
				ID:                e.ID,
				Title:             e.Title,
				Amount:            e.Amount,
				PayerID:           e.PayerID,
				InvolvedMemberIDs: e.InvolvedMemberIDs,
				CreatedAt:         e.CreatedAt,
			}
		}
	}
	return resp
}

func toSettlementResponse(g *models.Group, plan []models.Transfer) settlementResponse {
	names := make(map[string]string, len(g.Members))
	for _, m := range g.Members {
		names[m.ID] = m.Name
	}

	resp := settlementResponse{
		Transfers:  make([]transferResponse, len(plan)),
		AllSettled: len(plan) == 0,
	}
	for i, tr := range plan {
		resp.Transfers[i] = transferResponse{
			FromMemberID: tr.FromMemberID,
			FromName:     names[tr.FromMemberID],
			ToMemberID:   tr.ToMemberID,
			ToName:       names[tr.ToMemberID],
			Amount:       tr.Amount,
		}
	}
	return resp
}

func (h *Handler) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	var req createGroupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	group, err := h.groups.CreateGroup(r.Context(), middleware.GetUserID(r.Context()), service.CreateGroupInput{
		Name:        req.Name,
		MemberNames: req.MemberNames,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toGroupResponse(group, false))
}

func (h *Handler) handleListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.groups.ListGroups(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]groupResponse, len(groups))
	for i, g := range groups {
		resp[i] = toGroupResponse(g, false)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.GetGroup(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group, true))
}

func (h *Handler) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	err := h.groups.DeleteGroup(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAddMember(w http.ResponseWriter, r *http.Request) {
	var req addMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	member, err := h.groups.AddMember(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"), req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, memberResponse{ID: member.ID, Name: member.Name})
}

func (h *Handler) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	expense, err := h.groups.AddExpense(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"), service.ExpenseInput{
		Title:             req.Title,
		Amount:            req.Amount,
		PayerID:           req.PayerID,
		InvolvedMemberIDs: req.InvolvedMemberIDs,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, expenseResponse{
		ID:                expense.ID,
		Title:             expense.Title,
		Amount:            expense.Amount,
		PayerID:           expense.PayerID,
		InvolvedMemberIDs: expense.InvolvedMemberIDs,
		CreatedAt:         expense.CreatedAt,
	})
}

func (h *Handler) handleRemoveExpense(w http.ResponseWriter, r *http.Request) {
	err := h.groups.RemoveExpense(r.Context(), middleware.GetUserID(r.Context()),
		chi.URLParam(r, "groupID"), chi.URLParam(r, "expenseID"))
	if err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleBalances(w http.ResponseWriter, r *http.Request) {
	group, balances, err := h.groups.Balances(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}

	// One entry per member, in the group's insertion order.
	resp := balancesResponse{Balances: make([]balanceEntry, len(group.Members))}
	for i, m := range group.Members {
		resp.Balances[i] = balanceEntry{MemberID: m.ID, Name: m.Name, Amount: balances[m.ID]}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSettlementPlan(w http.ResponseWriter, r *http.Request) {
	group, plan, err := h.groups.SettlementPlan(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettlementResponse(group, plan))
}

func (h *Handler) handleSettle(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetUserID(r.Context())
	groupID := chi.URLParam(r, "groupID")

	group, err := h.groups.GetGroup(r.Context(), ownerID, groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	plan, err := h.groups.Settle(r.Context(), ownerID, groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettlementResponse(group, plan))
}
