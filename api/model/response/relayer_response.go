package response

import (
	"time"

	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
)

type SubmissionResponse struct {
	ID            uint64 `json:"id"`
	Kind          string `json:"kind"`
	Nonce         uint64 `json:"nonce"`
	TokenContract string `json:"tokenContract,omitempty"`
	TxHash        string `json:"txHash"`
	AccountNonce  uint64 `json:"accountNonce"`
	Status        string `json:"status"`
	Time          string `json:"time"`
}

func NewSubmissionResponse(record *core.SubmissionRecord) *SubmissionResponse {
	return &SubmissionResponse{
		ID:            record.ID,
		Kind:          string(record.Kind),
		Nonce:         record.Nonce,
		TokenContract: record.TokenContract,
		TxHash:        record.TxHash,
		AccountNonce:  record.AccountNonce,
		Status:        string(record.Status),
		Time:          record.Time.UTC().Format(time.RFC3339),
	}
}

type SubmissionsResponse struct {
	Submissions []*SubmissionResponse `json:"submissions"`
}

func NewSubmissionsResponse(records []*core.SubmissionRecord) *SubmissionsResponse {
	items := make([]*SubmissionResponse, len(records))
	for i, record := range records {
		items[i] = NewSubmissionResponse(record)
	}

	return &SubmissionsResponse{Submissions: items}
}

type ValidatorResponse struct {
	EthereumAddress string `json:"ethereumAddress"`
	Power           uint64 `json:"power"`
}

type ValsetResponse struct {
	Nonce      uint64               `json:"nonce"`
	Height     uint64               `json:"height"`
	TotalPower uint64               `json:"totalPower"`
	Members    []*ValidatorResponse `json:"members"`
}

func NewValsetResponse(valset *core.ValidatorSet) *ValsetResponse {
	members := make([]*ValidatorResponse, len(valset.Members))
	total := uint64(0)

	for i, member := range valset.Members {
		members[i] = &ValidatorResponse{
			EthereumAddress: member.EthereumAddress,
			Power:           member.Power,
		}
		total += member.Power
	}

	return &ValsetResponse{
		Nonce:      valset.Nonce,
		Height:     valset.Height,
		TotalPower: total,
		Members:    members,
	}
}
