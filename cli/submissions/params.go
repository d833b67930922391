package clisubmissions

import (
	"fmt"

	"github.com/Ethernal-Tech/peggy-relayer/common"
	databaseaccess "github.com/Ethernal-Tech/peggy-relayer/relayer/database_access"
	"github.com/spf13/cobra"
)

const (
	dbPathFlag = "db"
	limitFlag  = "limit"

	dbPathFlagDesc = "path to the relayer database file"
	limitFlagDesc  = "how many submissions to show, newest first"

	defaultLimit = 20
)

type submissionsParams struct {
	dbPath string
	limit  int
}

func (ip *submissionsParams) validateFlags() error {
	if ip.dbPath == "" {
		return fmt.Errorf("--%s flag not specified", dbPathFlag)
	}

	if ip.limit <= 0 {
		return fmt.Errorf("invalid --%s flag: %d", limitFlag, ip.limit)
	}

	return nil
}

func (ip *submissionsParams) setFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ip.dbPath, dbPathFlag, "", dbPathFlagDesc)
	cmd.Flags().IntVar(&ip.limit, limitFlag, defaultLimit, limitFlagDesc)
}

func (ip *submissionsParams) Execute() (common.ICommandResult, error) {
	db := &databaseaccess.BBoltDatabase{}
	if err := db.Init(ip.dbPath); err != nil {
		return nil, err
	}

	defer db.Close()

	records, err := db.GetSubmissions(ip.limit)
	if err != nil {
		return nil, err
	}

	return &CmdResult{Submissions: records}, nil
}
