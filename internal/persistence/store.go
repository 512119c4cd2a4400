package persistence

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// RecordWrapper facilitates serialization of polymorphic records
type RecordWrapper struct {
	Type   RecordType      `json:"type"`
	Record json.RawMessage `json:"data"`
}

// Store handles append-only storing of the session audit log.
type Store struct {
	file *os.File
}

// NewStore opens or creates the file at path for appending lines
func NewStore(path string) (*Store, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	return &Store{file: file}, nil
}

// Append takes a Record interface and marshals it to the jsonl log.
func (s *Store) Append(rec Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	wrapper := RecordWrapper{
		Type:   rec.Type(),
		Record: data,
	}

	wrapperData, err := json.Marshal(wrapper)
	if err != nil {
		return err
	}

	if _, err := s.file.Write(append(wrapperData, '\n')); err != nil {
		return err
	}
	return s.file.Sync()
}

// Load replays all jsonl strings and unpacks them to a Record slice.
func (s *Store) Load() ([]Record, error) {
	var records []Record

	// Reset file pointer to beginning
	if _, err := s.file.Seek(0, 0); err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(s.file)
	for scanner.Scan() {
		var wrapper RecordWrapper
		if err := json.Unmarshal(scanner.Bytes(), &wrapper); err != nil {
			return nil, fmt.Errorf("failed to decode wrapper: %w", err)
		}

		var rec Record
		switch wrapper.Type {
		case RecordRoll:
			rec = &RollRecord{}
		case RecordPool:
			rec = &PoolRecord{}
		case RecordExtended:
			rec = &ExtendedRecord{}
		case RecordInitiative:
			rec = &InitiativeRecord{}
		case RecordEncounter:
			rec = &EncounterRecord{}
		case RecordDamage:
			rec = &DamageRecord{}
		case RecordTurn:
			rec = &TurnRecord{}
		case RecordCombatAction:
			rec = &CombatActionRecord{}
		case RecordMatrixAction:
			rec = &MatrixActionRecord{}
		case RecordPerception:
			rec = &PerceptionRecord{}
		default:
			return nil, fmt.Errorf("unknown record type in log: %s", wrapper.Type)
		}

		if err := json.Unmarshal(wrapper.Record, rec); err != nil {
			return nil, fmt.Errorf("failed to parse record data into specific type: %w", err)
		}

		records = append(records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// Close handles safe shutdown.
func (s *Store) Close() error {
	return s.file.Close()
}
