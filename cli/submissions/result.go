package clisubmissions

import (
	"fmt"
	"time"

	"github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
)

type CmdResult struct {
	Submissions []*core.SubmissionRecord `json:"submissions"`
}

func (r CmdResult) GetOutput() string {
	rows := make([]string, 0, len(r.Submissions)+1)
	rows = append(rows, "ID|Kind|Nonce|Token|Account Nonce|Status|Time|Tx Hash")

	for _, s := range r.Submissions {
		rows = append(rows, fmt.Sprintf("%d|%s|%d|%s|%d|%s|%s|%s",
			s.ID, s.Kind, s.Nonce, s.TokenContract, s.AccountNonce, s.Status,
			s.Time.UTC().Format(time.RFC3339), s.TxHash))
	}

	return common.FormatList(rows) + "\n"
}
