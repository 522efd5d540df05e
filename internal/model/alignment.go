// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Alignment maps token positions in a source sentence to token positions
// in a target sentence. Indices are not checked against sentence length.
type Alignment struct {
	ID             int64     `json:"id"`
	SentencePairID int64     `json:"sentence_pair_id"`
	SourceIndices  Indices   `json:"source_indices"`
	TargetIndices  Indices   `json:"target_indices"`
	CreatedAt      time.Time `json:"created_at"`
}

// String returns a short human-readable label.
func (a *Alignment) String() string {
	return "Alignment for pair " + strconv.FormatInt(a.SentencePairID, 10)
}

// Indices is an ordered sequence of token positions.
// It is stored as a JSON array in a TEXT column.
type Indices []int64

// MarshalJSON encodes a nil slice as an empty array.
func (ix Indices) MarshalJSON() ([]byte, error) {
	if ix == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int64(ix))
}

// Value implements driver.Valuer.
func (ix Indices) Value() (driver.Value, error) {
	b, err := ix.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (ix *Indices) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*ix = Indices{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("scanning indices: unsupported type %T", src)
	}

	var out []int64
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("scanning indices: %w", err)
	}
	if out == nil {
		out = []int64{}
	}
	*ix = out
	return nil
}
