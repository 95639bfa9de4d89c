package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"inmohub/application"
	"inmohub/domain/contracts"
	"inmohub/domain/listing"
	"inmohub/interfaces/web/presenters"
	"inmohub/logging"
)

// maxUploadBytes caps multipart image uploads.
const maxUploadBytes = 10 << 20

// AdminHandlers handles the back office HTTP endpoints.
type AdminHandlers struct {
	adminService *application.AdminService
	sessions     *SessionManager
	sessionTTL   time.Duration
	presenter    *presenters.AdminPresenter
	properties   *presenters.PropertyPresenter
	logger       *logging.Logger
}

// NewAdminHandlers creates a new admin handlers instance with required dependencies.
func NewAdminHandlers(
	adminService *application.AdminService,
	sessions *SessionManager,
	sessionTTL time.Duration,
	presenter *presenters.AdminPresenter,
	properties *presenters.PropertyPresenter,
	logger *logging.Logger,
) *AdminHandlers {
	return &AdminHandlers{
		adminService: adminService,
		sessions:     sessions,
		sessionTTL:   sessionTTL,
		presenter:    presenter,
		properties:   properties,
		logger:       logger,
	}
}

// loginRequest is the login body.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates the back office operator and mints a session.
func (h *AdminHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, ok := h.sessions.Login(req.Username, req.Password)
	if !ok {
		h.logger.Security("login rejected", "username", req.Username, "remote", r.RemoteAddr)
		RespondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.logger.Security("login accepted", "username", req.Username)
	SetSessionCookie(w, token, h.sessionTTL)
	RespondJSON(w, http.StatusOK, map[string]string{"token": token})
}

// Logout invalidates the current session.
func (h *AdminHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout(TokenFromRequest(r))
	ClearSessionCookie(w)
	RespondJSON(w, http.StatusOK, map[string]string{"status": "logged_out"})
}

// ListProperties serves every record regardless of publication status.
func (h *AdminHandlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.adminService.ListAll(r.Context(), h.session(r))
	if err != nil {
		h.logger.Catalog("admin list failed", "error", err.Error())
		RespondError(w, http.StatusInternalServerError, "could not load properties")
		return
	}

	RespondJSON(w, http.StatusOK, map[string]any{
		"properties": h.presenter.ToRows(props),
	})
}

// GetProperty serves one record in full for the edit form.
func (h *AdminHandlers) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	prop, err := h.adminService.Get(r.Context(), h.session(r), id)
	if err != nil {
		if errors.Is(err, contracts.ErrNotFound) {
			RespondError(w, http.StatusNotFound, "property not found")
			return
		}
		h.logger.Catalog("admin get failed", "id", id, "error", err.Error())
		RespondError(w, http.StatusInternalServerError, "could not load property")
		return
	}

	RespondJSON(w, http.StatusOK, h.properties.ToDetailVM(prop))
}

// Dashboard serves back office statistics.
func (h *AdminHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context(), h.session(r))
	if err != nil {
		h.logger.Catalog("dashboard stats failed", "error", err.Error())
		RespondError(w, http.StatusInternalServerError, "could not load statistics")
		return
	}

	RespondJSON(w, http.StatusOK, h.presenter.ToDashboardVM(stats))
}

// imagePayload is one media entry in a save request. Either URL references an
// already-uploaded file, or Filename+Data carry inline content to upload as
// part of the save.
type imagePayload struct {
	URL         string `json:"url,omitempty"`
	AltText     string `json:"alt_text,omitempty"`
	IsPrincipal bool   `json:"is_principal,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Data        string `json:"data,omitempty"` // base64
}

// saveRequest is the create/update body. Fields carry raw form values and are
// coerced per field kind; unknown names are rejected.
type saveRequest struct {
	Fields map[string]string `json:"fields"`
	Images []imagePayload    `json:"images"`
}

// CreateProperty saves a brand new record, uploads included, all or nothing.
func (h *AdminHandlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, listing.NewDraft())
}

// UpdateProperty overwrites an existing record, uploads included, all or
// nothing. The stored record is untouched when anything fails.
func (h *AdminHandlers) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	existing, err := h.adminService.Get(r.Context(), h.session(r), id)
	if err != nil {
		if errors.Is(err, contracts.ErrNotFound) {
			RespondError(w, http.StatusNotFound, "property not found")
			return
		}
		h.logger.Catalog("admin get failed", "id", id, "error", err.Error())
		RespondError(w, http.StatusInternalServerError, "could not load property")
		return
	}

	h.save(w, r, listing.DraftOf(existing))
}

// save decodes the request onto the draft and runs the save pipeline.
func (h *AdminHandlers) save(w http.ResponseWriter, r *http.Request, draft *listing.Draft) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	for name, raw := range req.Fields {
		if err := draft.SetField(name, raw); err != nil {
			RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if req.Images != nil {
		if err := applyImages(draft, req.Images); err != nil {
			RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	saved, err := h.adminService.Save(r.Context(), draft)
	if err != nil {
		var verrs listing.ValidationErrors
		if errors.As(err, &verrs) {
			RespondValidationError(w, verrs)
			return
		}
		var uerr *application.UploadError
		if errors.As(err, &uerr) {
			RespondJSON(w, http.StatusBadGateway, map[string]string{
				"error":    "image upload failed, nothing was saved",
				"filename": uerr.Filename,
			})
			return
		}
		h.logger.Catalog("save failed", "id", draft.ID, "error", err.Error())
		RespondError(w, http.StatusInternalServerError, "could not save property")
		return
	}

	status := http.StatusOK
	if !draft.IsPersisted() {
		status = http.StatusCreated
	}
	RespondJSON(w, status, h.properties.ToDetailVM(saved))
}

// applyImages replaces the draft's media list with the request payload.
func applyImages(draft *listing.Draft, images []imagePayload) error {
	for len(draft.Images) > 0 {
		draft.RemoveImage(0)
	}

	principal := -1
	for i, img := range images {
		draft.AddImage()
		switch {
		case img.URL != "":
			draft.SetImageURL(i, img.URL)
		case img.Data != "":
			data, err := base64.StdEncoding.DecodeString(img.Data)
			if err != nil {
				return errors.New("image data is not valid base64")
			}
			draft.AttachFile(i, img.Filename, data)
		default:
			return errors.New("image entry needs a url or inline data")
		}
		draft.SetImageAltText(i, img.AltText)
		if img.IsPrincipal && principal == -1 {
			principal = i
		}
	}
	if principal >= 0 {
		draft.SetPrincipal(principal)
	}
	return nil
}

// DeleteProperty removes the record along with its stored media files.
func (h *AdminHandlers) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.adminService.Delete(r.Context(), h.session(r), id); err != nil {
		if errors.Is(err, contracts.ErrNotFound) {
			RespondError(w, http.StatusNotFound, "property not found")
			return
		}
		h.logger.Catalog("delete failed", "id", id, "error", err.Error())
		RespondError(w, http.StatusInternalServerError, "could not delete property")
		return
	}

	RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UploadImage stores one multipart image file and returns its durable URL,
// for clients that upload ahead of saving.
func (h *AdminHandlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		RespondError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		RespondError(w, http.StatusBadRequest, "could not read image file")
		return
	}

	url, err := h.adminService.UploadImage(r.Context(), header.Filename, data)
	if err != nil {
		h.logger.Storage("upload failed", "filename", header.Filename, "error", err.Error())
		RespondError(w, http.StatusBadGateway, "could not store image")
		return
	}

	RespondJSON(w, http.StatusCreated, map[string]string{"url": url})
}

func (h *AdminHandlers) session(r *http.Request) contracts.Session {
	return contracts.AdminSession(TokenFromRequest(r))
}
