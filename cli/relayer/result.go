package clirelayer

import (
	"fmt"

	"github.com/Ethernal-Tech/peggy-relayer/common"
)

type CmdResult struct {
	Status       string `json:"status"`
	RelayValsets bool   `json:"relayValsets,omitempty"`
	RelayBatches bool   `json:"relayBatches,omitempty"`
}

func (r CmdResult) GetOutput() string {
	return common.FormatKV([]string{
		fmt.Sprintf("Status|%s", r.Status),
		fmt.Sprintf("Valsets|%v", r.RelayValsets),
		fmt.Sprintf("Batches|%v", r.RelayBatches),
	}) + "\n"
}
