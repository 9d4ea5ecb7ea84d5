package http

import (
	"net/http"

	"github.com/UTarts/RASRAJ-themithaishop/internal/i18n"
)

type LanguageHandler struct {
	catalog *i18n.Catalog
}

func NewLanguageHandler(catalog *i18n.Catalog) *LanguageHandler {
	return &LanguageHandler{catalog: catalog}
}

type LanguageRequestDTO struct {
	// Lang is en or hi; empty toggles.
	Lang string `json:"lang"`
}

type LanguageResponseDTO struct {
	Lang      string   `json:"lang"`
	Languages []string `json:"languages"`
}

// GET /api/v1/language
func (h *LanguageHandler) GetLanguage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())
	respondJSON(w, http.StatusOK, LanguageResponseDTO{
		Lang:      sess.Language.Lang(),
		Languages: h.catalog.Languages(),
	})
}

// PUT /api/v1/language
func (h *LanguageHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r.Context())

	var req LanguageRequestDTO
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	var err error
	if req.Lang == "" {
		_, err = sess.Language.Toggle(r.Context())
	} else {
		err = sess.Language.Set(r.Context(), req.Lang)
	}
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, LanguageResponseDTO{
		Lang:      sess.Language.Lang(),
		Languages: h.catalog.Languages(),
	})
}
