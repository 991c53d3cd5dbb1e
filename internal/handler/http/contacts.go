package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-contact-book/internal/utils"
	"github.com/MKhiriev/go-contact-book/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listContacts(w http.ResponseWriter, r *http.Request, user models.User) {
	filter, err := contactFilterFromQuery(r, user.UserID)
	if err != nil {
		writeError(w, r, err, "invalid contacts query")
		return
	}

	contacts, err := h.services.ContactService.ListContacts(r.Context(), filter)
	if err != nil {
		writeError(w, r, err, "listing contacts failed")
		return
	}

	utils.WriteJSON(w, nonNil(contacts), http.StatusOK)
}

func (h *Handler) getContact(w http.ResponseWriter, r *http.Request, user models.User) {
	contactID, err := contactIDFromPath(r)
	if err != nil {
		writeError(w, r, err, "invalid contact id")
		return
	}

	contact, err := h.services.ContactService.GetContact(r.Context(), user.UserID, contactID)
	if err != nil {
		writeError(w, r, err, "getting contact failed")
		return
	}

	utils.WriteJSON(w, contact, http.StatusOK)
}

func (h *Handler) createContact(w http.ResponseWriter, r *http.Request, user models.User) {
	var contact models.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", errInvalidJSON, err), "contact body decoding failed")
		return
	}
	contact.ID = 0
	contact.UserID = user.UserID

	created, err := h.services.ContactService.CreateContact(r.Context(), contact)
	if err != nil {
		writeError(w, r, err, "creating contact failed")
		return
	}

	utils.WriteJSON(w, created, http.StatusCreated)
}

func (h *Handler) updateContact(w http.ResponseWriter, r *http.Request, user models.User) {
	contactID, err := contactIDFromPath(r)
	if err != nil {
		writeError(w, r, err, "invalid contact id")
		return
	}

	var contact models.Contact
	if err = json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", errInvalidJSON, err), "contact body decoding failed")
		return
	}
	contact.ID = contactID
	contact.UserID = user.UserID

	updated, err := h.services.ContactService.UpdateContact(r.Context(), contact)
	if err != nil {
		writeError(w, r, err, "updating contact failed")
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}

func (h *Handler) deleteContact(w http.ResponseWriter, r *http.Request, user models.User) {
	contactID, err := contactIDFromPath(r)
	if err != nil {
		writeError(w, r, err, "invalid contact id")
		return
	}

	deleted, err := h.services.ContactService.DeleteContact(r.Context(), user.UserID, contactID)
	if err != nil {
		writeError(w, r, err, "deleting contact failed")
		return
	}

	utils.WriteJSON(w, deleted, http.StatusOK)
}

func (h *Handler) upcomingBirthdays(w http.ResponseWriter, r *http.Request, user models.User) {
	contacts, err := h.services.ContactService.UpcomingBirthdays(r.Context(), user.UserID)
	if err != nil {
		writeError(w, r, err, "listing upcoming birthdays failed")
		return
	}

	utils.WriteJSON(w, nonNil(contacts), http.StatusOK)
}

func contactIDFromPath(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errInvalidContactID, err)
	}
	return id, nil
}

func contactFilterFromQuery(r *http.Request, userID int64) (models.ContactFilter, error) {
	query := r.URL.Query()

	filter := models.ContactFilter{
		UserID: userID,
		Name:   query.Get("name"),
		Soname: query.Get("soname"),
		Email:  query.Get("email"),
	}

	var err error
	if filter.Skip, err = parseUintParam(query.Get("skip")); err != nil {
		return models.ContactFilter{}, fmt.Errorf("%w: skip: %w", errInvalidQuery, err)
	}
	if filter.Limit, err = parseUintParam(query.Get("limit")); err != nil {
		return models.ContactFilter{}, fmt.Errorf("%w: limit: %w", errInvalidQuery, err)
	}

	return filter, nil
}

// parseUintParam parses an optional non-negative query parameter; an empty
// value yields zero.
func parseUintParam(v string) (uint64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseUint(v, 10, 64)
}

// nonNil makes empty listings encode as [] rather than null.
func nonNil(contacts []models.Contact) []models.Contact {
	if contacts == nil {
		return []models.Contact{}
	}
	return contacts
}
