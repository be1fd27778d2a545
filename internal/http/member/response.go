package member

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/contribution"
	"github.com/MrJamesThe3rd/chama/internal/member"
	"github.com/MrJamesThe3rd/chama/internal/report"
)

type memberResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	CarryForward int64     `json:"carry_forward"`
	JoinedAt     time.Time `json:"joined_at"`
}

func toResponse(m *chama.Member) memberResponse {
	return memberResponse{
		ID:           m.ID,
		Name:         m.Name,
		CarryForward: m.CarryForward,
		JoinedAt:     m.JoinedAt,
	}
}

func toResponseList(members []*chama.Member) []memberResponse {
	resp := make([]memberResponse, len(members))
	for i, m := range members {
		resp[i] = toResponse(m)
	}

	return resp
}

type monthResponse struct {
	Month     string              `json:"month"`
	Expected  int64               `json:"expected"`
	Allocated int64               `json:"allocated"`
	Shortfall int64               `json:"shortfall"`
	Remaining int64               `json:"remaining"`
	Status    contribution.Status `json:"status"`
	IsPast    bool                `json:"is_past"`
}

type financialsResponse struct {
	Member        memberResponse  `json:"member"`
	NetBalance    int64           `json:"net_balance"`
	TotalPaid     int64           `json:"total_paid"`
	TotalExpected int64           `json:"total_expected"`
	InSafeZone    bool            `json:"in_safe_zone"`
	Breakdown     []monthResponse `json:"breakdown"`
}

func toFinancialsResponse(m *chama.Member, fin contribution.Financials, now time.Time) financialsResponse {
	resp := financialsResponse{
		Member:        toResponse(m),
		NetBalance:    fin.NetBalance,
		TotalPaid:     fin.TotalPaid,
		TotalExpected: fin.TotalExpected,
		InSafeZone:    contribution.InSafeZone(now),
		Breakdown:     make([]monthResponse, len(fin.Breakdown)),
	}

	for i, b := range fin.Breakdown {
		resp.Breakdown[i] = monthResponse{
			Month:     chama.PeriodKey(b.Month),
			Expected:  b.Expected,
			Allocated: b.Allocated,
			Shortfall: b.Shortfall,
			Remaining: b.Remaining,
			Status:    b.Status,
			IsPast:    b.IsPast,
		}
	}

	return resp
}

type transactionResponse struct {
	ID          uuid.UUID  `json:"id"`
	MemberID    uuid.UUID  `json:"member_id"`
	LoanID      *uuid.UUID `json:"loan_id,omitempty"`
	Amount      int64      `json:"amount"`
	Kind        chama.Kind `json:"kind"`
	Description string     `json:"description"`
	Period      *time.Time `json:"period,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type receiptResponse struct {
	Transaction  transactionResponse `json:"transaction"`
	CarryForward int64               `json:"carry_forward"`
}

func toReceiptResponse(r *member.Receipt) receiptResponse {
	tx := r.Transaction

	return receiptResponse{
		Transaction: transactionResponse{
			ID:          tx.ID,
			MemberID:    tx.MemberID,
			LoanID:      tx.LoanID,
			Amount:      tx.Amount,
			Kind:        tx.Kind,
			Description: tx.Description,
			Period:      tx.Period,
			CreatedAt:   tx.CreatedAt,
		},
		CarryForward: r.CarryForward,
	}
}

type historyRowResponse struct {
	Date     time.Time `json:"date"`
	Activity string    `json:"activity"`
	Amount   int64     `json:"amount"`
	Details  string    `json:"details"`
}

type historyResponse struct {
	Member      memberResponse       `json:"member"`
	GeneratedAt time.Time            `json:"generated_at"`
	Rows        []historyRowResponse `json:"rows"`
}

func toHistoryResponse(h *report.History) historyResponse {
	resp := historyResponse{
		Member:      toResponse(h.Member),
		GeneratedAt: h.GeneratedAt,
		Rows:        make([]historyRowResponse, len(h.Rows)),
	}

	for i, row := range h.Rows {
		resp.Rows[i] = historyRowResponse(row)
	}

	return resp
}

// historyFilename is the download name of a member's history, e.g.
// "JANE_DOE_History.csv".
func historyFilename(name string) string {
	return strings.ReplaceAll(name, " ", "_") + "_History.csv"
}
