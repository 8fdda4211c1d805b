package controllers

import (
	"net/http"

	"go-showcase/models"
	"go-showcase/utils"

	"github.com/rs/zerolog/hlog"
)

// InquiryController handles contact form submissions
type InquiryController struct {
	Inquiries InquiryStore
	Notifier  Notifier
}

// NewInquiryController creates a new InquiryController
func NewInquiryController(inquiries InquiryStore, notifier Notifier) *InquiryController {
	return &InquiryController{
		Inquiries: inquiries,
		Notifier:  notifier,
	}
}

// CreateInquiry stores a contact form submission. No account is needed.
func (ic *InquiryController) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	var req models.InquiryRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	inquiry := &models.Inquiry{}
	req.Apply(inquiry)
	if err := ic.Inquiries.Create(r.Context(), inquiry); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	logger := hlog.FromRequest(r)
	go func(in models.Inquiry) {
		if err := ic.Notifier.SendInquiryNotification(in); err != nil {
			logger.Error().Err(err).Str("inquiry_id", in.ID.Hex()).Msg("Failed to send inquiry notification")
		}
	}(*inquiry)

	utils.WriteJSON(w, http.StatusCreated, inquiry)
}

// GetInquiries lists inquiries, newest first
func (ic *InquiryController) GetInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := ic.Inquiries.List(r.Context())
	if err != nil {
		utils.WriteError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, inquiries)
}

// UpdateInquiry edits an inquiry
func (ic *InquiryController) UpdateInquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid inquiry ID")
	if !ok {
		return
	}

	var req models.InquiryRequest
	if err := utils.DecodeJSON(w, r, &req); err != nil {
		utils.WriteError(w, r, err)
		return
	}

	var changes models.Inquiry
	req.Apply(&changes)
	updated, err := ic.Inquiries.Update(r.Context(), id, &changes)
	if err != nil {
		utils.WriteError(w, r, storeError(err, "Inquiry not found"))
		return
	}
	utils.WriteJSON(w, http.StatusOK, updated)
}

// DeleteInquiry removes an inquiry
func (ic *InquiryController) DeleteInquiry(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Invalid inquiry ID")
	if !ok {
		return
	}

	if err := ic.Inquiries.Delete(r.Context(), id); err != nil {
		utils.WriteError(w, r, storeError(err, "Inquiry not found"))
		return
	}
	utils.WriteMessage(w, http.StatusOK, "Inquiry deleted successfully")
}
