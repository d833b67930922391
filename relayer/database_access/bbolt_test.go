package databaseaccess

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	"github.com/stretchr/testify/require"
)

func TestBoltDatabase(t *testing.T) {
	newDB := func(t *testing.T) *BBoltDatabase {
		t.Helper()

		db := &BBoltDatabase{}
		require.NoError(t, db.Init(filepath.Join(t.TempDir(), "temp_test.db")))

		t.Cleanup(func() {
			_ = db.Close()
		})

		return db
	}

	record := func(nonce uint64, hash string) *core.SubmissionRecord {
		return &core.SubmissionRecord{
			Kind:          core.SubmissionKindBatch,
			Nonce:         nonce,
			TokenContract: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			TxHash:        hash,
			AccountNonce:  nonce + 10,
			Status:        core.SubmissionStatusSent,
			Time:          time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		}
	}

	t.Run("Init should fail", func(t *testing.T) {
		db := &BBoltDatabase{}
		require.Error(t, db.Init(""))
	})

	t.Run("NewDatabase creates directory", func(t *testing.T) {
		db, err := NewDatabase(filepath.Join(t.TempDir(), "nested", "relayer.db"))
		require.NoError(t, err)
		require.NoError(t, db.Close())
	})

	t.Run("AddSubmission and GetSubmission", func(t *testing.T) {
		db := newDB(t)

		res, err := db.GetSubmission("0x01")
		require.NoError(t, err)
		require.Nil(t, res)

		require.Error(t, db.AddSubmission(record(1, "")))

		first, second := record(1, "0xAB01"), record(2, "0xab02")
		require.NoError(t, db.AddSubmission(first))
		require.NoError(t, db.AddSubmission(second))
		require.Equal(t, uint64(1), first.ID)
		require.Equal(t, uint64(2), second.ID)

		res, err = db.GetSubmission("0xab01")
		require.NoError(t, err)
		require.Equal(t, first.ID, res.ID)
		require.Equal(t, first.TxHash, res.TxHash)
		require.Equal(t, first.TokenContract, res.TokenContract)
		require.Equal(t, core.SubmissionStatusSent, res.Status)
		require.True(t, first.Time.Equal(res.Time))
	})

	t.Run("UpdateSubmissionStatus", func(t *testing.T) {
		db := newDB(t)

		require.ErrorIs(t, db.UpdateSubmissionStatus("0x01", core.SubmissionStatusIncluded), ErrSubmissionNotFound)

		require.NoError(t, db.AddSubmission(record(1, "0x01")))
		require.NoError(t, db.UpdateSubmissionStatus("0x01", core.SubmissionStatusReverted))

		res, err := db.GetSubmission("0x01")
		require.NoError(t, err)
		require.Equal(t, core.SubmissionStatusReverted, res.Status)
		require.Equal(t, uint64(11), res.AccountNonce)
	})

	t.Run("GetSubmissions newest first", func(t *testing.T) {
		db := newDB(t)

		res, err := db.GetSubmissions(10)
		require.NoError(t, err)
		require.Empty(t, res)

		for i, hash := range []string{"0x01", "0x02", "0x03"} {
			require.NoError(t, db.AddSubmission(record(uint64(i+1), hash)))
		}

		res, err = db.GetSubmissions(2)
		require.NoError(t, err)
		require.Len(t, res, 2)
		require.Equal(t, "0x03", res[0].TxHash)
		require.Equal(t, "0x02", res[1].TxHash)

		res, err = db.GetSubmissions(0)
		require.NoError(t, err)
		require.Len(t, res, 3)
		require.Equal(t, uint64(1), res[2].ID)
	})
}
