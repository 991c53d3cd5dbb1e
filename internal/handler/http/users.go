package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/MKhiriev/go-contact-book/internal/service"
	"github.com/MKhiriev/go-contact-book/internal/utils"
	"github.com/MKhiriev/go-contact-book/models"
)

const (
	avatarFormField = "file"
	// maxAvatarRequestSize leaves room for the multipart envelope around
	// the largest accepted image.
	maxAvatarRequestSize = service.MaxAvatarSize + 1<<20
)

func (h *Handler) me(w http.ResponseWriter, _ *http.Request, user models.User) {
	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) updateAvatar(w http.ResponseWriter, r *http.Request, user models.User) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarRequestSize)

	file, header, err := r.FormFile(avatarFormField)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", errInvalidUpload, err), "reading avatar form file failed")
		return
	}
	defer file.Close()

	// one byte over the limit is enough for the service to reject it
	data, err := io.ReadAll(io.LimitReader(file, service.MaxAvatarSize+1))
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", errInvalidUpload, err), "reading avatar data failed")
		return
	}

	updated, err := h.services.AvatarService.UpdateAvatar(r.Context(), user, models.Avatar{
		UserID:      user.UserID,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		writeError(w, r, err, "avatar update failed")
		return
	}

	utils.WriteJSON(w, updated, http.StatusOK)
}
