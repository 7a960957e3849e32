package smartsheet

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"attendance-sync/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(baseURL string) Client {
	return NewClient(&config.Config{
		SheetBaseURL: baseURL,
		SheetID:      "12345",
		SheetToken:   "secret-token",
	})
}

func TestGetSheet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/sheets/12345", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": 12345,
			"name": "Attendance",
			"columns": [
				{"id": 1, "title": "EmpId"},
				{"id": 2, "title": "Date"},
				{"id": 3, "title": "Total", "formula": "=SUM(A:A)"}
			],
			"rows": [
				{"id": 100, "cells": [{"columnId": 1, "value": "E1"}, {"columnId": 2, "value": "2024-01-01"}]}
			]
		}`))
	}))
	defer srv.Close()

	sheet, err := newTestClient(srv.URL).GetSheet(context.Background())
	require.NoError(t, err)

	require.Len(t, sheet.Columns, 3)
	assert.False(t, sheet.Columns[0].IsFormula())
	assert.True(t, sheet.Columns[2].IsFormula())

	require.Len(t, sheet.Rows, 1)
	v, ok := sheet.Rows[0].CellValue(1)
	require.True(t, ok)
	assert.Equal(t, "E1", v)

	_, ok = sheet.Rows[0].CellValue(99)
	assert.False(t, ok)
}

func TestAddRows(t *testing.T) {
	var got []NewRow
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/sheets/12345/rows", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"SUCCESS"}`))
	}))
	defer srv.Close()

	rows := []NewRow{
		{ToBottom: true, Cells: []Cell{{ColumnID: 1, Value: "E1"}, {ColumnID: 2, Value: "01/01/2024"}}},
	}
	err := newTestClient(srv.URL).AddRows(context.Background(), rows)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].ToBottom)
	assert.Equal(t, int64(1), got[0].Cells[0].ColumnID)
}

func TestAddRowsFailureStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"errorCode":4003}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).AddRows(context.Background(), []NewRow{{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGetSheetUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately closed, connection refused

	_, err := newTestClient(srv.URL).GetSheet(context.Background())
	assert.Error(t, err)
}
