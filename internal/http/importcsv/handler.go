package importcsv

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/alias"
	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/http/respond"
	"github.com/MrJamesThe3rd/chama/internal/importer"
)

type Handler struct {
	importSvc *importer.Service
	aliasSvc  *alias.Service
}

func NewHandler(importSvc *importer.Service, aliasSvc *alias.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		aliasSvc:  aliasSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Use(auth.Require(auth.CapImport))
	r.Post("/", h.importCSV)
	r.Post("/aliases", h.learnAlias)
}

type rowResponse struct {
	Line      int       `json:"line"`
	Date      time.Time `json:"date"`
	Payer     string    `json:"payer"`
	Raw       string    `json:"raw"`
	Reference string    `json:"reference,omitempty"`
	Amount    int64     `json:"amount"`
}

type matchResponse struct {
	Row           rowResponse `json:"row"`
	MemberID      uuid.UUID   `json:"member_id"`
	Member        string      `json:"member"`
	TransactionID *uuid.UUID  `json:"transaction_id,omitempty"`
	CarryForward  *int64      `json:"carry_forward,omitempty"`
}

type importResponse struct {
	Profile    string          `json:"profile"`
	Charset    string          `json:"charset"`
	DryRun     bool            `json:"dry_run"`
	Posted     []matchResponse `json:"posted"`
	Duplicates []matchResponse `json:"duplicates"`
	Unresolved []rowResponse   `json:"unresolved"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	dryRun, _ := strconv.ParseBool(r.URL.Query().Get("dry_run"))

	res, err := h.importSvc.Import(r.Context(), file, importer.Options{DryRun: dryRun})
	if err != nil {
		if errors.Is(err, importer.ErrUnknownFormat) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		respond.Error(w, r, err)

		return
	}

	status := http.StatusCreated
	if dryRun || len(res.Posted) == 0 {
		status = http.StatusOK
	}

	respond.JSON(w, status, toImportResponse(res, dryRun))
}

type learnRequest struct {
	Pattern  string    `json:"pattern"`
	MemberID uuid.UUID `json:"member_id"`
}

func (h *Handler) learnAlias(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.aliasSvc.Learn(r.Context(), req.Pattern, req.MemberID); err != nil {
		if errors.Is(err, alias.ErrEmptyPattern) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		respond.Error(w, r, err)

		return
	}

	w.WriteHeader(http.StatusCreated)
}

func toRowResponse(row importer.Row) rowResponse {
	return rowResponse{
		Line:      row.Line,
		Date:      row.Date,
		Payer:     row.Payer,
		Raw:       row.Raw,
		Reference: row.Reference,
		Amount:    row.Amount,
	}
}

func toMatchResponse(m importer.Match) matchResponse {
	resp := matchResponse{
		Row:      toRowResponse(m.Row),
		MemberID: m.Member.ID,
		Member:   m.Member.Name,
	}

	if m.Receipt != nil {
		resp.TransactionID = new(m.Receipt.Transaction.ID)
		resp.CarryForward = new(m.Receipt.CarryForward)
	}

	return resp
}

func toImportResponse(res *importer.Result, dryRun bool) importResponse {
	resp := importResponse{
		Profile:    res.Profile,
		Charset:    res.Charset,
		DryRun:     dryRun,
		Posted:     make([]matchResponse, 0, len(res.Posted)),
		Duplicates: make([]matchResponse, 0, len(res.Duplicates)),
		Unresolved: make([]rowResponse, 0, len(res.Unresolved)),
	}

	for _, m := range res.Posted {
		resp.Posted = append(resp.Posted, toMatchResponse(m))
	}

	for _, m := range res.Duplicates {
		resp.Duplicates = append(resp.Duplicates, toMatchResponse(m))
	}

	for _, row := range res.Unresolved {
		resp.Unresolved = append(resp.Unresolved, toRowResponse(row))
	}

	return resp
}
