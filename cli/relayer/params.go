package clirelayer

import (
	"errors"

	"github.com/spf13/cobra"
)

const (
	configFlag      = "config"
	skipValsetsFlag = "skip-valsets"
	skipBatchesFlag = "skip-batches"
	configFlagDesc  = "path to config json file, relayer_config.json next to the executable when omitted"
	skipValsetsDesc = "do not relay valset updates"
	skipBatchesDesc = "do not relay transaction batches"
)

type initParams struct {
	config      string
	skipValsets bool
	skipBatches bool
}

func (ip *initParams) validateFlags() error {
	if ip.skipValsets && ip.skipBatches {
		return errors.New("nothing to relay: both valsets and batches are skipped")
	}

	return nil
}

func (ip *initParams) setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&ip.config,
		configFlag,
		"",
		configFlagDesc,
	)
}

func (ip *initParams) setOnceFlags(cmd *cobra.Command) {
	ip.setFlags(cmd)

	cmd.Flags().BoolVar(
		&ip.skipValsets,
		skipValsetsFlag,
		false,
		skipValsetsDesc,
	)

	cmd.Flags().BoolVar(
		&ip.skipBatches,
		skipBatchesFlag,
		false,
		skipBatchesDesc,
	)
}
