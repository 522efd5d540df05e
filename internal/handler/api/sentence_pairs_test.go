// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/wordalign/internal/model"
)

func TestCreateSentencePair(t *testing.T) {
	_, h := testSetup(t)

	body := `{
		"source_sentence": "  The cat sleeps  ",
		"target_sentence": "Die Katze schläft",
		"source_language": "en",
		"target_language": "de",
		"alignments": [{"source_indices": [0], "target_indices": [0]}]
	}`
	w := executeHandler(t, h.CreateSentencePair, newJSONRequest(t, http.MethodPost, "/api/sentence-pairs", body, nil))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	pair := unmarshalBody[model.SentencePair](t, w)
	assert.NotZero(t, pair.ID)
	assert.Equal(t, "The cat sleeps", pair.SourceSentence)
	assert.Equal(t, "Die Katze schläft", pair.TargetSentence)
	assert.Equal(t, "en", pair.SourceLanguage)
	assert.Equal(t, "de", pair.TargetLanguage)
	assert.False(t, pair.CreatedAt.IsZero())
	assert.NotNil(t, pair.Alignments)
	assert.Empty(t, pair.Alignments, "nested alignments are read-only")

	get := executeHandler(t, h.GetSentencePair, newGetRequest(t, "/api/sentence-pairs/1", idParams(pair.ID)))
	require.Equal(t, http.StatusOK, get.Code)
	fetched := unmarshalBody[model.SentencePair](t, get)
	assert.Equal(t, pair.ID, fetched.ID)
	assert.Equal(t, pair.SourceSentence, fetched.SourceSentence)
	assert.True(t, pair.CreatedAt.Equal(fetched.CreatedAt))
}

func TestCreateSentencePair_Validation(t *testing.T) {
	_, h := testSetup(t)

	tests := []struct {
		name       string
		body       string
		wantFields []string
	}{
		{
			name:       "empty object",
			body:       `{}`,
			wantFields: []string{"source_sentence", "target_sentence", "source_language", "target_language"},
		},
		{
			name:       "blank text",
			body:       `{"source_sentence":"   ","target_sentence":"x","source_language":"en","target_language":"de"}`,
			wantFields: []string{"source_sentence"},
		},
		{
			name:       "language too long",
			body:       `{"source_sentence":"a","target_sentence":"b","source_language":"english-uk-x","target_language":"de"}`,
			wantFields: []string{"source_language"},
		},
		{
			name:       "null field",
			body:       `{"source_sentence":"a","target_sentence":null,"source_language":"en","target_language":"de"}`,
			wantFields: []string{"target_sentence"},
		},
		{
			name:       "wrong type",
			body:       `{"source_sentence":5,"target_sentence":"b","source_language":"en","target_language":"de"}`,
			wantFields: []string{"source_sentence"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := executeHandler(t, h.CreateSentencePair, newJSONRequest(t, http.MethodPost, "/api/sentence-pairs", tt.body, nil))

			detail := assertErrorResponse(t, w, http.StatusUnprocessableEntity, "validation_error")
			for _, f := range tt.wantFields {
				assert.Contains(t, detail.Details, f)
			}
			assert.Len(t, detail.Details, len(tt.wantFields))
		})
	}
}

func TestCreateSentencePair_LanguageAtLimit(t *testing.T) {
	_, h := testSetup(t)

	body := `{"source_sentence":"a","target_sentence":"b","source_language":"zh-Hant-TW","target_language":"de"}`
	w := executeHandler(t, h.CreateSentencePair, newJSONRequest(t, http.MethodPost, "/api/sentence-pairs", body, nil))

	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestCreateSentencePair_InvalidJSON(t *testing.T) {
	_, h := testSetup(t)

	for _, body := range []string{`{"source_sentence":`, ``, `[1,2]`} {
		w := executeHandler(t, h.CreateSentencePair, newJSONRequest(t, http.MethodPost, "/api/sentence-pairs", body, nil))
		assertErrorResponse(t, w, http.StatusBadRequest, "bad_request")
	}
}

func TestListSentencePairs(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.ListSentencePairs, newGetRequest(t, "/api/sentence-pairs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	p1 := createTestPair(t, h, "one", "eins")
	p2 := createTestPair(t, h, "two", "zwei")
	createTestAlignment(t, h, p2.ID, model.Indices{0}, model.Indices{0})

	w = executeHandler(t, h.ListSentencePairs, newGetRequest(t, "/api/sentence-pairs", nil))
	require.Equal(t, http.StatusOK, w.Code)
	pairs := unmarshalBody[[]model.SentencePair](t, w)
	require.Len(t, pairs, 2)
	assert.Equal(t, p1.ID, pairs[0].ID)
	assert.Empty(t, pairs[0].Alignments)
	assert.Equal(t, p2.ID, pairs[1].ID)
	require.Len(t, pairs[1].Alignments, 1)
	assert.Equal(t, p2.ID, pairs[1].Alignments[0].SentencePairID)
}

func TestGetSentencePair_Errors(t *testing.T) {
	_, h := testSetup(t)

	w := executeHandler(t, h.GetSentencePair, newGetRequest(t, "/api/sentence-pairs/abc", map[string]string{"id": "abc"}))
	assertErrorResponse(t, w, http.StatusBadRequest, "bad_request")

	w = executeHandler(t, h.GetSentencePair, newGetRequest(t, "/api/sentence-pairs/99", idParams(99)))
	detail := assertErrorResponse(t, w, http.StatusNotFound, "not_found")
	assert.Equal(t, "Sentence pair not found", detail.Message)
}

func TestReplaceSentencePair_ClearsAlignments(t *testing.T) {
	_, h := testSetup(t)
	pair := createTestPair(t, h, "the house", "das Haus")
	other := createTestPair(t, h, "a tree", "ein Baum")
	a := createTestAlignment(t, h, pair.ID, model.Indices{1}, model.Indices{1})
	kept := createTestAlignment(t, h, other.ID, model.Indices{1}, model.Indices{1})

	body := `{"source_sentence":"the big house","target_sentence":"das große Haus","source_language":"fr"}`
	w := executeHandler(t, h.ReplaceSentencePair, newJSONRequest(t, http.MethodPut, "/api/sentence-pairs/1", body, idParams(pair.ID)))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := unmarshalBody[model.SentencePair](t, w)
	assert.Equal(t, pair.ID, updated.ID)
	assert.Equal(t, "the big house", updated.SourceSentence)
	assert.Equal(t, "das große Haus", updated.TargetSentence)
	assert.Equal(t, "en", updated.SourceLanguage, "language codes are not updatable")
	assert.Empty(t, updated.Alignments)

	_, err := h.svc.GetAlignment(context.Background(), a.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	_, err = h.svc.GetAlignment(context.Background(), kept.ID)
	assert.NoError(t, err)
}

func TestReplaceSentencePair_RequiresBothTexts(t *testing.T) {
	_, h := testSetup(t)
	pair := createTestPair(t, h, "the house", "das Haus")

	w := executeHandler(t, h.ReplaceSentencePair, newJSONRequest(t, http.MethodPut, "/api/sentence-pairs/1", `{"source_sentence":"x"}`, idParams(pair.ID)))

	detail := assertErrorResponse(t, w, http.StatusUnprocessableEntity, "validation_error")
	assert.Equal(t, msgRequired, detail.Details["target_sentence"])
}

func TestPatchSentencePair(t *testing.T) {
	_, h := testSetup(t)
	pair := createTestPair(t, h, "the house", "das Haus")
	createTestAlignment(t, h, pair.ID, model.Indices{0}, model.Indices{0})

	w := executeHandler(t, h.PatchSentencePair, newJSONRequest(t, http.MethodPatch, "/api/sentence-pairs/1", `{"target_sentence":"das Gebäude"}`, idParams(pair.ID)))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := unmarshalBody[model.SentencePair](t, w)
	assert.Equal(t, "the house", updated.SourceSentence)
	assert.Equal(t, "das Gebäude", updated.TargetSentence)
	assert.Empty(t, updated.Alignments)
}

func TestPatchSentencePair_Validation(t *testing.T) {
	_, h := testSetup(t)
	pair := createTestPair(t, h, "the house", "das Haus")

	w := executeHandler(t, h.PatchSentencePair, newJSONRequest(t, http.MethodPatch, "/api/sentence-pairs/1", `{}`, idParams(pair.ID)))
	assertErrorResponse(t, w, http.StatusUnprocessableEntity, "validation_error")

	w = executeHandler(t, h.PatchSentencePair, newJSONRequest(t, http.MethodPatch, "/api/sentence-pairs/1", `{"source_sentence":" "}`, idParams(pair.ID)))
	detail := assertErrorResponse(t, w, http.StatusUnprocessableEntity, "validation_error")
	assert.Equal(t, msgBlank, detail.Details["source_sentence"])
}

func TestUpdateSentencePair_NotFound(t *testing.T) {
	_, h := testSetup(t)

	body := `{"source_sentence":"a","target_sentence":"b"}`
	w := executeHandler(t, h.ReplaceSentencePair, newJSONRequest(t, http.MethodPut, "/api/sentence-pairs/5", body, idParams(5)))
	assertErrorResponse(t, w, http.StatusNotFound, "not_found")
}

func TestDeleteSentencePair_Cascades(t *testing.T) {
	_, h := testSetup(t)
	pair := createTestPair(t, h, "the house", "das Haus")
	a := createTestAlignment(t, h, pair.ID, model.Indices{0, 1}, model.Indices{0, 1})

	w := executeHandler(t, h.DeleteSentencePair, newDeleteRequest(t, "/api/sentence-pairs/1", idParams(pair.ID)))
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = executeHandler(t, h.GetAlignment, newGetRequest(t, "/api/alignments/1", idParams(a.ID)))
	assertErrorResponse(t, w, http.StatusNotFound, "not_found")

	w = executeHandler(t, h.DeleteSentencePair, newDeleteRequest(t, "/api/sentence-pairs/1", idParams(pair.ID)))
	assertErrorResponse(t, w, http.StatusNotFound, "not_found")
}
