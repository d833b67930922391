package databaseaccess

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ethernal-Tech/peggy-relayer/relayer/core"
	"go.etcd.io/bbolt"
)

// openTimeout bounds waiting for the file lock held by another process
const openTimeout = 5 * time.Second

var (
	submissionsBucket      = []byte("submissions")
	submissionHashesBucket = []byte("submissionHashes")

	ErrSubmissionNotFound = errors.New("submission not found")
)

type BBoltDatabase struct {
	db *bbolt.DB
}

var _ core.Database = (*BBoltDatabase)(nil)

func (bd *BBoltDatabase) Init(filePath string) error {
	db, err := bbolt.Open(filePath, 0660, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return fmt.Errorf("could not open db: %w", err)
	}

	bd.db = db

	return db.Update(func(tx *bbolt.Tx) error {
		for _, bn := range [][]byte{submissionsBucket, submissionHashesBucket} {
			_, err := tx.CreateBucketIfNotExists(bn)
			if err != nil {
				return fmt.Errorf("could not bucket: %s, err: %w", string(bn), err)
			}
		}

		return nil
	})
}

func (bd *BBoltDatabase) Close() error {
	return bd.db.Close()
}

// AddSubmission stores the record under the next sequence id and indexes it by tx hash
func (bd *BBoltDatabase) AddSubmission(record *core.SubmissionRecord) error {
	if record.TxHash == "" {
		return errors.New("submission without tx hash")
	}

	return bd.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(submissionsBucket)

		id, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("could not get next submission id: %w", err)
		}

		record.ID = id

		bytes, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("could not marshal submission: %w", err)
		}

		key := idToKey(id)

		if err := bucket.Put(key, bytes); err != nil {
			return fmt.Errorf("submission write error: %w", err)
		}

		if err := tx.Bucket(submissionHashesBucket).Put(hashToKey(record.TxHash), key); err != nil {
			return fmt.Errorf("submission hash write error: %w", err)
		}

		return nil
	})
}

func (bd *BBoltDatabase) UpdateSubmissionStatus(txHash string, status core.SubmissionStatus) error {
	return bd.db.Update(func(tx *bbolt.Tx) error {
		key := tx.Bucket(submissionHashesBucket).Get(hashToKey(txHash))
		if key == nil {
			return fmt.Errorf("%w: %s", ErrSubmissionNotFound, txHash)
		}

		bucket := tx.Bucket(submissionsBucket)

		record, err := unmarshalSubmission(bucket.Get(key))
		if err != nil {
			return err
		}

		record.Status = status

		bytes, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("could not marshal submission: %w", err)
		}

		return bucket.Put(key, bytes)
	})
}

// GetSubmission returns nil when nothing was journaled for txHash
func (bd *BBoltDatabase) GetSubmission(txHash string) (result *core.SubmissionRecord, err error) {
	err = bd.db.View(func(tx *bbolt.Tx) error {
		key := tx.Bucket(submissionHashesBucket).Get(hashToKey(txHash))
		if key == nil {
			return nil
		}

		result, err = unmarshalSubmission(tx.Bucket(submissionsBucket).Get(key))

		return err
	})

	return result, err
}

// GetSubmissions returns up to limit records, newest first. Zero limit means all of them.
func (bd *BBoltDatabase) GetSubmissions(limit int) ([]*core.SubmissionRecord, error) {
	var result []*core.SubmissionRecord

	err := bd.db.View(func(tx *bbolt.Tx) error {
		cursor := tx.Bucket(submissionsBucket).Cursor()

		for k, v := cursor.Last(); k != nil && (limit <= 0 || len(result) < limit); k, v = cursor.Prev() {
			record, err := unmarshalSubmission(v)
			if err != nil {
				return err
			}

			result = append(result, record)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func unmarshalSubmission(bytes []byte) (*core.SubmissionRecord, error) {
	if bytes == nil {
		return nil, ErrSubmissionNotFound
	}

	var record core.SubmissionRecord

	if err := json.Unmarshal(bytes, &record); err != nil {
		return nil, fmt.Errorf("could not unmarshal submission: %w", err)
	}

	return &record, nil
}

func idToKey(id uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, id)

	return key
}

func hashToKey(txHash string) []byte {
	return []byte(strings.ToLower(txHash))
}
