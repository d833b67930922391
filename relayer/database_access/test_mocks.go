package databaseaccess

import (
	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
)

type DBMock struct {
	core.SubmissionJournalMock
}

var _ core.Database = (*DBMock)(nil)

func (d *DBMock) Init(filePath string) error {
	return nil
}

func (d *DBMock) Close() error {
	return nil
}
