package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/chama/internal/chama"
)

type transactionResponse struct {
	ID          uuid.UUID  `json:"id"`
	MemberID    uuid.UUID  `json:"member_id"`
	LoanID      *uuid.UUID `json:"loan_id,omitempty"`
	Amount      int64      `json:"amount"`
	Kind        chama.Kind `json:"kind"`
	Label       string     `json:"label"`
	Description string     `json:"description"`
	Period      *string    `json:"period,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toResponse(tx *chama.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:          tx.ID,
		MemberID:    tx.MemberID,
		LoanID:      tx.LoanID,
		Amount:      tx.Amount,
		Kind:        tx.Kind,
		Label:       tx.Kind.Label(),
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
	}

	if tx.Period != nil {
		resp.Period = new(chama.PeriodKey(*tx.Period))
	}

	return resp
}

func toResponseList(txs []*chama.Transaction) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
	}

	return resp
}
