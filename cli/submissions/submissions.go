package clisubmissions

import (
	"github.com/Ethernal-Tech/peggy-relayer/common"
	"github.com/spf13/cobra"
)

var submissionsParamsData = &submissionsParams{}

func GetSubmissionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submissions",
		Short: "lists transactions the relayer sent to ethereum",
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return submissionsParamsData.validateFlags()
		},
		Run: common.GetCliRunCommand(submissionsParamsData),
	}

	submissionsParamsData.setFlags(cmd)

	return cmd
}
