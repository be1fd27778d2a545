package view

import (
	"time"

	"github.com/MrJamesThe3rd/chama/internal/alias"
	"github.com/MrJamesThe3rd/chama/internal/auth"
	"github.com/MrJamesThe3rd/chama/internal/importer"
	"github.com/MrJamesThe3rd/chama/internal/latefee"
	"github.com/MrJamesThe3rd/chama/internal/loan"
	"github.com/MrJamesThe3rd/chama/internal/member"
	"github.com/MrJamesThe3rd/chama/internal/snapshot"
	"github.com/MrJamesThe3rd/chama/internal/transaction"
)

// Services is everything the screens read from and post to.
type Services struct {
	Auth         *auth.Service
	Members      *member.Service
	Loans        *loan.Service
	Transactions *transaction.Service
	Aliases      *alias.Service
	Importer     *importer.Service
	Loader       *snapshot.Loader
	Sweeper      *latefee.Sweeper
	Location     *time.Location
}

func (s *Services) now() time.Time {
	return time.Now().In(s.Location)
}
